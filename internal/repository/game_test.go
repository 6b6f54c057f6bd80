package repository_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tttlabs/ttt-backend/internal/apperror"
	"github.com/tttlabs/ttt-backend/internal/entity"
	"github.com/tttlabs/ttt-backend/testing/suite"
)

func TestGameRepository_Save(t *testing.T) {
	ctx, st := suite.New(t)

	// Given: a fresh game
	game := entity.NewGame("game-1")

	// When: Save is called
	err := st.Games.Save(ctx, game)

	// Then: no error should be returned
	require.NoError(t, err)
}

func TestGameRepository_GetByID(t *testing.T) {
	t.Run("Returns the stored game with slots and board intact", func(t *testing.T) {
		ctx, st := suite.New(t)

		// Given: a started game with one move made
		game := st.StartedGame(ctx, "game-1")
		require.NoError(t, game.Move(game.Slots[entity.SymbolCross], entity.SymbolCross, 0, 0))
		st.SeedGame(ctx, game)

		// When: GetByID is called with the existing id
		retrieved, err := st.Games.GetByID(ctx, game.ID)

		// Then: the retrieved game matches the saved one
		require.NoError(t, err)
		assert.Equal(t, game, retrieved)
	})

	t.Run("Returns ErrGameNotFound for an unknown id", func(t *testing.T) {
		ctx, st := suite.New(t)

		_, err := st.Games.GetByID(ctx, "missing")

		assert.ErrorIs(t, err, apperror.ErrGameNotFound)
	})
}

func TestGameRepository_SaveIsUpsert(t *testing.T) {
	ctx, st := suite.New(t)

	// Given: a stored game
	game := entity.NewGame("game-1")
	st.SeedGame(ctx, game)

	// When: the same id is saved with a new status
	game.Status = entity.StatusAwaitingStart
	st.SeedGame(ctx, game)

	// Then: the last committed state wins
	retrieved, err := st.Games.GetByID(ctx, game.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusAwaitingStart, retrieved.Status)
}
