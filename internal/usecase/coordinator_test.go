package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tttlabs/ttt-backend/internal/apperror"
	"github.com/tttlabs/ttt-backend/internal/entity"
	"github.com/tttlabs/ttt-backend/internal/event"
	"github.com/tttlabs/ttt-backend/internal/pkg"
	mockedUseCase "github.com/tttlabs/ttt-backend/mocks/usecase"
)

var errRedisDown = errors.New("redis down")

type coordinatorMocks struct {
	userRepo *mockedUseCase.MockuserRepo
	gameRepo *mockedUseCase.MockgameRepo
	broker   *mockedUseCase.Mockbroker
}

func newCoordinator(t *testing.T) (*GameCoordinator, coordinatorMocks) {
	t.Helper()

	m := coordinatorMocks{
		userRepo: mockedUseCase.NewMockuserRepo(t),
		gameRepo: mockedUseCase.NewMockgameRepo(t),
		broker:   mockedUseCase.NewMockbroker(t),
	}

	coordinator := NewGameCoordinator(
		discardLogger(),
		m.userRepo,
		m.gameRepo,
		m.broker,
		pkg.NewSequenceGenerator("user"),
		pkg.NewSequenceGenerator("game"),
	)

	return coordinator, m
}

func TestGameCoordinator_RegisterUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Saves a user under a generated sequential id", func(t *testing.T) {
		// Given: a coordinator with a working user repository
		coordinator, m := newCoordinator(t)

		m.userRepo.EXPECT().
			Save(mock.Anything, mock.AnythingOfType("*entity.User")).
			Return(nil).
			Once()

		// When: registering alice
		user, err := coordinator.RegisterUser(ctx, "alice")

		// Then: the user carries the first generated id
		require.NoError(t, err)
		assert.Equal(t, "user-1", user.ID)
		assert.Equal(t, "alice", user.Name)
	})

	t.Run("Returns error when the repository fails", func(t *testing.T) {
		coordinator, m := newCoordinator(t)

		m.userRepo.EXPECT().
			Save(mock.Anything, mock.AnythingOfType("*entity.User")).
			Return(errRedisDown).
			Once()

		user, err := coordinator.RegisterUser(ctx, "alice")

		require.Error(t, err)
		assert.Nil(t, user)
	})
}

func TestGameCoordinator_CreateGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Saves an empty game under a generated sequential id", func(t *testing.T) {
		coordinator, m := newCoordinator(t)

		m.gameRepo.EXPECT().
			Save(mock.Anything, mock.AnythingOfType("*entity.Game")).
			Return(nil).
			Once()

		game, err := coordinator.CreateGame(ctx)

		require.NoError(t, err)
		assert.Equal(t, "game-1", game.ID)
		assert.Equal(t, entity.StatusCreated, game.Status)
	})
}

func TestGameCoordinator_HandleJoin(t *testing.T) {
	ctx := context.Background()
	alice := &entity.User{ID: "user-1", Name: "alice"}

	t.Run("Seats the user and persists the game", func(t *testing.T) {
		// Given: a stored user and a fresh game
		coordinator, m := newCoordinator(t)

		m.userRepo.EXPECT().GetByID(mock.Anything, "user-1").Return(alice, nil).Once()
		m.gameRepo.EXPECT().GetByID(mock.Anything, "game-1").Return(entity.NewGame("game-1"), nil).Once()
		m.gameRepo.EXPECT().
			Save(mock.Anything, mock.AnythingOfType("*entity.Game")).
			Return(nil).
			Once()

		// When: alice joins as cross
		game, err := coordinator.HandleJoin(ctx, "game-1", "user-1", entity.SymbolCross)

		// Then: the slot is filled; joins emit no event
		require.NoError(t, err)
		assert.Equal(t, alice, game.Slots[entity.SymbolCross])
	})

	t.Run("Denies the join without persisting when the slot is taken", func(t *testing.T) {
		// Given: a game where cross is already held by another user
		coordinator, m := newCoordinator(t)

		stored := entity.NewGame("game-1")
		require.NoError(t, stored.Join(&entity.User{ID: "user-2", Name: "bob"}, entity.SymbolCross))

		m.userRepo.EXPECT().GetByID(mock.Anything, "user-1").Return(alice, nil).Once()
		m.gameRepo.EXPECT().GetByID(mock.Anything, "game-1").Return(stored, nil).Once()

		// When: alice tries to take cross
		game, err := coordinator.HandleJoin(ctx, "game-1", "user-1", entity.SymbolCross)

		// Then: the denial carries the reason and nothing is saved or published
		require.ErrorIs(t, err, apperror.ErrSlotTaken)
		assert.Nil(t, game)
	})

	t.Run("Propagates not-found for an unknown game", func(t *testing.T) {
		coordinator, m := newCoordinator(t)

		m.userRepo.EXPECT().GetByID(mock.Anything, "user-1").Return(alice, nil).Once()
		m.gameRepo.EXPECT().GetByID(mock.Anything, "missing").Return(nil, apperror.ErrGameNotFound).Once()

		_, err := coordinator.HandleJoin(ctx, "missing", "user-1", entity.SymbolCross)

		assert.ErrorIs(t, err, apperror.ErrGameNotFound)
	})
}

func TestGameCoordinator_HandleStart(t *testing.T) {
	ctx := context.Background()

	t.Run("Starts an awaiting game and publishes game-started", func(t *testing.T) {
		// Given: a game with both players joined
		coordinator, m := newCoordinator(t)

		stored := twoPlayerGame(t, "game-1")

		m.gameRepo.EXPECT().GetByID(mock.Anything, "game-1").Return(stored, nil).Once()
		m.gameRepo.EXPECT().
			Save(mock.Anything, mock.AnythingOfType("*entity.Game")).
			Return(nil).
			Once()
		m.broker.EXPECT().
			Publish(mock.Anything, "ttt-events-game-1", event.GameStarted()).
			Return(nil).
			Once()

		// When: the start trigger fires
		err := coordinator.HandleStart(ctx, "game-1")

		// Then: the game is in progress with cross to move
		require.NoError(t, err)
		assert.Equal(t, entity.StatusInProgress, stored.Status)
		assert.Equal(t, entity.SymbolCross, stored.Turn)
	})

	t.Run("Re-publishes game-started for a late observer without saving", func(t *testing.T) {
		// Given: a game that already started
		coordinator, m := newCoordinator(t)

		stored := twoPlayerGame(t, "game-1")
		_, err := stored.Start()
		require.NoError(t, err)

		m.gameRepo.EXPECT().GetByID(mock.Anything, "game-1").Return(stored, nil).Once()
		m.broker.EXPECT().
			Publish(mock.Anything, "ttt-events-game-1", event.GameStarted()).
			Return(nil).
			Once()

		// When: the second observer connects and triggers start again
		err = coordinator.HandleStart(ctx, "game-1")

		// Then: only the event goes out; turn and board are untouched
		require.NoError(t, err)
		assert.Equal(t, entity.SymbolCross, stored.Turn)
	})

	t.Run("Returns ErrGameNotReady before both players joined", func(t *testing.T) {
		coordinator, m := newCoordinator(t)

		m.gameRepo.EXPECT().GetByID(mock.Anything, "game-1").Return(entity.NewGame("game-1"), nil).Once()

		err := coordinator.HandleStart(ctx, "game-1")

		assert.ErrorIs(t, err, apperror.ErrGameNotReady)
	})

	t.Run("Succeeds when game-started cannot be published", func(t *testing.T) {
		// Given: a saved start with the broker down
		coordinator, m := newCoordinator(t)

		stored := twoPlayerGame(t, "game-1")

		m.gameRepo.EXPECT().GetByID(mock.Anything, "game-1").Return(stored, nil).Once()
		m.gameRepo.EXPECT().
			Save(mock.Anything, mock.AnythingOfType("*entity.Game")).
			Return(nil).
			Once()
		m.broker.EXPECT().
			Publish(mock.Anything, "ttt-events-game-1", event.GameStarted()).
			Return(errRedisDown).
			Once()

		// When: the start trigger fires
		err := coordinator.HandleStart(ctx, "game-1")

		// Then: the committed start stands; only the event is lost
		require.NoError(t, err)
		assert.Equal(t, entity.StatusInProgress, stored.Status)
	})
}

func TestGameCoordinator_HandleMove(t *testing.T) {
	ctx := context.Background()

	t.Run("Publishes exactly one new-move for a non-terminal move", func(t *testing.T) {
		// Given: a started game with cross to move
		coordinator, m := newCoordinator(t)

		stored := startedGame(t, "game-1")

		m.userRepo.EXPECT().GetByID(mock.Anything, "user-1").Return(stored.Slots[entity.SymbolCross], nil).Once()
		m.gameRepo.EXPECT().GetByID(mock.Anything, "game-1").Return(stored, nil).Once()
		m.gameRepo.EXPECT().
			Save(mock.Anything, mock.AnythingOfType("*entity.Game")).
			Return(nil).
			Once()
		m.broker.EXPECT().
			Publish(mock.Anything, "ttt-events-game-1", event.NewMove(0, 0, entity.SymbolCross)).
			Return(nil).
			Once()

		// When: cross moves to (0,0)
		game, err := coordinator.HandleMove(ctx, "game-1", "user-1", entity.SymbolCross, 0, 0)

		// Then: the move is committed and no game-ended follows
		require.NoError(t, err)
		assert.Equal(t, entity.SymbolCircle, game.Turn)
	})

	t.Run("Publishes new-move then game-ended on the winning move", func(t *testing.T) {
		// Given: a game where cross completes the top row with (0,2)
		coordinator, m := newCoordinator(t)

		stored := startedGame(t, "game-1")
		cross := stored.Slots[entity.SymbolCross]
		circle := stored.Slots[entity.SymbolCircle]
		require.NoError(t, stored.Move(cross, entity.SymbolCross, 0, 0))
		require.NoError(t, stored.Move(circle, entity.SymbolCircle, 1, 0))
		require.NoError(t, stored.Move(cross, entity.SymbolCross, 0, 1))
		require.NoError(t, stored.Move(circle, entity.SymbolCircle, 1, 1))

		m.userRepo.EXPECT().GetByID(mock.Anything, "user-1").Return(cross, nil).Once()
		m.gameRepo.EXPECT().GetByID(mock.Anything, "game-1").Return(stored, nil).Once()
		m.gameRepo.EXPECT().
			Save(mock.Anything, mock.AnythingOfType("*entity.Game")).
			Return(nil).
			Once()

		var order []string
		m.broker.EXPECT().
			Publish(mock.Anything, "ttt-events-game-1", event.NewMove(0, 2, entity.SymbolCross)).
			Run(func(_ context.Context, _ string, ev event.Event) { order = append(order, ev.Type) }).
			Return(nil).
			Once()
		m.broker.EXPECT().
			Publish(mock.Anything, "ttt-events-game-1", event.GameEnded(&entity.Outcome{Result: entity.ResultWin, Winner: entity.SymbolCross})).
			Run(func(_ context.Context, _ string, ev event.Event) { order = append(order, ev.Type) }).
			Return(nil).
			Once()

		// When: the winning move lands
		game, err := coordinator.HandleMove(ctx, "game-1", "user-1", entity.SymbolCross, 0, 2)

		// Then: both events go out, new-move first
		require.NoError(t, err)
		assert.True(t, game.IsEnded())
		assert.Equal(t, []string{event.TypeNewMove, event.TypeGameEnded}, order)
	})

	t.Run("Accepts the move when event publishing fails after the save", func(t *testing.T) {
		// Given: a started game with the broker down
		coordinator, m := newCoordinator(t)

		stored := startedGame(t, "game-1")

		m.userRepo.EXPECT().GetByID(mock.Anything, "user-1").Return(stored.Slots[entity.SymbolCross], nil).Once()
		m.gameRepo.EXPECT().GetByID(mock.Anything, "game-1").Return(stored, nil).Once()
		m.gameRepo.EXPECT().
			Save(mock.Anything, mock.AnythingOfType("*entity.Game")).
			Return(nil).
			Once()
		m.broker.EXPECT().
			Publish(mock.Anything, "ttt-events-game-1", event.NewMove(0, 0, entity.SymbolCross)).
			Return(errRedisDown).
			Once()

		// When: cross moves and the save succeeds
		game, err := coordinator.HandleMove(ctx, "game-1", "user-1", entity.SymbolCross, 0, 0)

		// Then: the committed move is accepted, so a retry would hit
		// the occupied cell instead of replaying the move
		require.NoError(t, err)
		assert.Equal(t, entity.SymbolCircle, game.Turn)
		assert.Equal(t, entity.SymbolCross, game.Board[0][0])
	})

	t.Run("Denies an out-of-turn move without saving or publishing", func(t *testing.T) {
		coordinator, m := newCoordinator(t)

		stored := startedGame(t, "game-1")
		circle := stored.Slots[entity.SymbolCircle]

		m.userRepo.EXPECT().GetByID(mock.Anything, "user-2").Return(circle, nil).Once()
		m.gameRepo.EXPECT().GetByID(mock.Anything, "game-1").Return(stored, nil).Once()

		_, err := coordinator.HandleMove(ctx, "game-1", "user-2", entity.SymbolCircle, 0, 0)

		assert.ErrorIs(t, err, apperror.ErrNotYourTurn)
	})
}

func TestGameCoordinator_Linearization(t *testing.T) {
	t.Run("Concurrent duplicate moves commit exactly one write", func(t *testing.T) {
		// Given: a started game behind a repository that always hands
		// out the last committed state
		coordinator, m := newCoordinator(t)

		cross := &entity.User{ID: "user-1", Name: "alice"}

		var repoMu sync.Mutex
		stored := startedGame(t, "game-1")

		m.userRepo.EXPECT().GetByID(mock.Anything, "user-1").Return(cross, nil)
		m.gameRepo.EXPECT().
			GetByID(mock.Anything, "game-1").
			RunAndReturn(func(context.Context, string) (*entity.Game, error) {
				repoMu.Lock()
				defer repoMu.Unlock()
				return stored, nil
			})
		m.gameRepo.EXPECT().
			Save(mock.Anything, mock.AnythingOfType("*entity.Game")).
			RunAndReturn(func(_ context.Context, game *entity.Game) error {
				repoMu.Lock()
				defer repoMu.Unlock()
				stored = game
				return nil
			})
		m.broker.EXPECT().Publish(mock.Anything, "ttt-events-game-1", mock.AnythingOfType("event.Event")).Return(nil)

		// When: the same move request lands twice concurrently
		errs := make(chan error, 2)
		var wg sync.WaitGroup
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := coordinator.HandleMove(context.Background(), "game-1", "user-1", entity.SymbolCross, 0, 0)
				errs <- err
			}()
		}
		wg.Wait()
		close(errs)

		// Then: exactly one succeeds, the other is denied, and the
		// board reflects a single write
		var failures []error
		for err := range errs {
			if err != nil {
				failures = append(failures, err)
			}
		}
		require.Len(t, failures, 1)
		assert.True(t,
			errors.Is(failures[0], apperror.ErrNotYourTurn) || errors.Is(failures[0], apperror.ErrCellOccupied),
			"unexpected denial: %v", failures[0])

		occupied := 0
		for x := range stored.Board {
			for y := range stored.Board[x] {
				if stored.Board[x][y] != entity.EmptyCell {
					occupied++
				}
			}
		}
		assert.Equal(t, 1, occupied)
		assert.Equal(t, entity.SymbolCross, stored.Board[0][0])
	})
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// twoPlayerGame returns a game with alice on cross and bob on circle,
// still awaiting the start trigger.
func twoPlayerGame(t *testing.T, id string) *entity.Game {
	t.Helper()

	game := entity.NewGame(id)
	require.NoError(t, game.Join(&entity.User{ID: "user-1", Name: "alice"}, entity.SymbolCross))
	require.NoError(t, game.Join(&entity.User{ID: "user-2", Name: "bob"}, entity.SymbolCircle))

	return game
}

func startedGame(t *testing.T, id string) *entity.Game {
	t.Helper()

	game := twoPlayerGame(t, id)
	started, err := game.Start()
	require.NoError(t, err)
	require.True(t, started)

	return game
}
