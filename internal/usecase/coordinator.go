package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/tttlabs/ttt-backend/internal/entity"
	"github.com/tttlabs/ttt-backend/internal/event"
)

type userRepo interface {
	Save(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
}

type gameRepo interface {
	Save(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
}

type broker interface {
	Publish(ctx context.Context, topic string, ev event.Event) error
}

type idGenerator interface {
	NextID() string
}

// GameCoordinator serializes all mutations against a single game id
// and turns each committed mutation into the event sequence observers
// must see. Operations on distinct games proceed independently.
type GameCoordinator struct {
	logger *slog.Logger

	userRepo userRepo
	gameRepo gameRepo
	broker   broker

	userIDs idGenerator
	gameIDs idGenerator

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewGameCoordinator(logger *slog.Logger, userRepo userRepo, gameRepo gameRepo, broker broker, userIDs, gameIDs idGenerator) *GameCoordinator {
	return &GameCoordinator{
		logger: logger.With("component", "coordinator"),

		userRepo: userRepo,
		gameRepo: gameRepo,
		broker:   broker,

		userIDs: userIDs,
		gameIDs: gameIDs,

		locks: make(map[string]*sync.Mutex),
	}
}

// lockGame - acquires the mutex owning gameID and returns its release.
// Two concurrent requests against one game both reading "my turn"
// before either commits is the exact hazard this prevents.
func (that *GameCoordinator) lockGame(gameID string) func() {
	that.mu.Lock()
	lock, ok := that.locks[gameID]
	if !ok {
		lock = &sync.Mutex{}
		that.locks[gameID] = lock
	}
	that.mu.Unlock()

	lock.Lock()

	return lock.Unlock
}

// RegisterUser - creates a user under a generated id.
func (that *GameCoordinator) RegisterUser(ctx context.Context, name string) (*entity.User, error) {
	user := &entity.User{
		ID:   that.userIDs.NextID(),
		Name: name,
	}

	if err := that.userRepo.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	return user, nil
}

// CreateGame - creates an empty game under a generated id.
func (that *GameCoordinator) CreateGame(ctx context.Context) (*entity.Game, error) {
	game := entity.NewGame(that.gameIDs.NextID())

	if err := that.gameRepo.Save(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to save game: %w", err)
	}

	return game, nil
}

// HandleJoin - seats the user in the symbol's slot. Joins are not
// broadcast; observers learn about the opponent from game-started.
func (that *GameCoordinator) HandleJoin(ctx context.Context, gameID, userID string, symbol entity.Symbol) (*entity.Game, error) {
	unlock := that.lockGame(gameID)
	defer unlock()

	user, err := that.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	game, err := that.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	if err = game.Join(user, symbol); err != nil {
		return nil, fmt.Errorf("failed to join game: %w", err)
	}

	if err = that.gameRepo.Save(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to save game: %w", err)
	}

	return game, nil
}

// HandleStart - fires the start trigger. The trigger fires once per
// connected observer, so a game that is already in progress still
// publishes game-started for the late subscriber.
func (that *GameCoordinator) HandleStart(ctx context.Context, gameID string) error {
	log := that.logger.With("method", "HandleStart", "gameID", gameID)

	unlock := that.lockGame(gameID)
	defer unlock()

	game, err := that.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return fmt.Errorf("failed to get game by id: %w", err)
	}

	started, err := game.Start()
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	if started {
		if err = that.gameRepo.Save(ctx, game); err != nil {
			return fmt.Errorf("failed to save game: %w", err)
		}

		log.Info("game started")
	}

	// The start is committed at this point; a lost event only affects
	// observers, so it must not fail the trigger.
	if err = that.broker.Publish(ctx, event.Topic(gameID), event.GameStarted()); err != nil {
		log.Error("failed to publish game-started", "error", err)
	}

	return nil
}

// HandleMove - applies one move and, on success, publishes new-move
// followed by game-ended when the move was terminal. Publishing under
// the game lock keeps the event order equal to commit order.
func (that *GameCoordinator) HandleMove(ctx context.Context, gameID, userID string, symbol entity.Symbol, x, y int) (*entity.Game, error) {
	log := that.logger.With("method", "HandleMove", "gameID", gameID)

	unlock := that.lockGame(gameID)
	defer unlock()

	user, err := that.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	game, err := that.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	if err = game.Move(user, symbol, x, y); err != nil {
		return nil, fmt.Errorf("failed to make move: %w", err)
	}

	if err = that.gameRepo.Save(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to save game: %w", err)
	}

	// The move is committed once Save returns. A publish failure loses
	// the event, not the move, so it never turns into a denial.
	if err = that.broker.Publish(ctx, event.Topic(gameID), event.NewMove(x, y, symbol)); err != nil {
		log.Error("failed to publish new-move", "error", err)
	}

	if game.IsEnded() {
		if err = that.broker.Publish(ctx, event.Topic(gameID), event.GameEnded(game.Outcome)); err != nil {
			log.Error("failed to publish game-ended", "error", err)
		}

		log.Info("game ended", "result", game.Outcome.Result)
	}

	return game, nil
}
