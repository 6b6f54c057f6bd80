package repository

import (
	"context"
	"fmt"

	"github.com/tttlabs/ttt-backend/internal/apperror"
	"github.com/tttlabs/ttt-backend/internal/entity"
	"github.com/tttlabs/ttt-backend/internal/repository/storage"
)

// File-backed repositories, keeping games.json / users.json on disk.
// Every operation re-reads the document, so the serialization done by
// the coordinator is the only thing preventing lost updates.

const (
	gamesFile = "games.json"
	usersFile = "users.json"
)

type fileGame struct {
	store *storage.FileStorage
}

func NewFileGameRepository(store *storage.FileStorage) GameRepository {
	return &fileGame{
		store: store,
	}
}

func (that *fileGame) Save(ctx context.Context, game *entity.Game) error {
	games := make(map[string]*entity.Game)
	if err := that.store.Read(gamesFile, &games); err != nil {
		return fmt.Errorf("failed to read games: %w", err)
	}

	games[game.ID] = game

	if err := that.store.Write(gamesFile, games); err != nil {
		return fmt.Errorf("failed to write games: %w", err)
	}

	return nil
}

func (that *fileGame) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	games := make(map[string]*entity.Game)
	if err := that.store.Read(gamesFile, &games); err != nil {
		return nil, fmt.Errorf("failed to read games: %w", err)
	}

	existingGame, ok := games[id]
	if !ok {
		return nil, apperror.ErrGameNotFound
	}

	return existingGame, nil
}

type fileUser struct {
	store *storage.FileStorage
}

func NewFileUserRepository(store *storage.FileStorage) UserRepository {
	return &fileUser{
		store: store,
	}
}

func (that *fileUser) Save(ctx context.Context, user *entity.User) error {
	users := make(map[string]*entity.User)
	if err := that.store.Read(usersFile, &users); err != nil {
		return fmt.Errorf("failed to read users: %w", err)
	}

	users[user.ID] = user

	if err := that.store.Write(usersFile, users); err != nil {
		return fmt.Errorf("failed to write users: %w", err)
	}

	return nil
}

func (that *fileUser) GetByID(ctx context.Context, id string) (*entity.User, error) {
	users := make(map[string]*entity.User)
	if err := that.store.Read(usersFile, &users); err != nil {
		return nil, fmt.Errorf("failed to read users: %w", err)
	}

	existingUser, ok := users[id]
	if !ok {
		return nil, apperror.ErrUserNotFound
	}

	return existingUser, nil
}
