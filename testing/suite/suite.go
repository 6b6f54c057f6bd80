package suite

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"

	"github.com/tttlabs/ttt-backend/internal/entity"
	"github.com/tttlabs/ttt-backend/internal/pubsub"
	"github.com/tttlabs/ttt-backend/internal/repository"
)

const (
	expireDuration  = 120
	maxWaitDuration = 120 * time.Second
)

const (
	redisPort  = "6379/tcp"
	redisImage = "redis"
	redisTag   = "alpine"
)

// Suite spins up a disposable redis container and wires the redis-backed
// repositories and event broker against it, so integration tests talk to
// the same stack the application runs on.
type Suite struct {
	*testing.T
	Logger *slog.Logger

	Redis  *redis.Client
	Users  repository.UserRepository
	Games  repository.GameRepository
	Broker *pubsub.RedisBroker
}

func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), maxWaitDuration)
	t.Cleanup(func() {
		cancel()
	})

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("could not connect to docker: %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: redisImage,
		Tag:        redisTag,
		Env:        []string{},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("could not start resource: %v", err)
	}

	// Hard kill the container after expireDuration seconds in case the
	// cleanup below never runs. Expire never returns an error.
	_ = resource.Expire(expireDuration)

	redisHost := resource.GetHostPort(redisPort)

	// Retry with backoff until the container accepts connections.
	pool.MaxWait = maxWaitDuration

	var redisClient *redis.Client
	if err = pool.Retry(func() error {
		redisClient = redis.NewClient(&redis.Options{
			Addr: redisHost,
		})
		return redisClient.Ping(ctx).Err()
	}); err != nil {
		if err = pool.Purge(resource); err != nil {
			t.Fatalf("could not purge resource: %v", err)
		}

		t.Fatalf("could not connect to redis: %v", err)
	}

	if err = redisClient.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("could not flush database: %v", err)
	}

	t.Cleanup(func() {
		t.Helper()

		if err = pool.Purge(resource); err != nil {
			t.Fatalf("could not purge resource: %v", err)
		}
	})

	return ctx, &Suite{
		T:      t,
		Logger: logger,
		Redis:  redisClient,
		Users:  repository.NewUserRepository(redisClient),
		Games:  repository.NewGameRepository(redisClient),
		Broker: pubsub.NewRedisBroker(logger, redisClient),
	}
}

// SeedUser - stores user, failing the test on error.
func (that *Suite) SeedUser(ctx context.Context, user *entity.User) {
	that.Helper()

	if err := that.Users.Save(ctx, user); err != nil {
		that.Fatalf("could not seed user %s: %v", user.ID, err)
	}
}

// SeedGame - stores game, failing the test on error.
func (that *Suite) SeedGame(ctx context.Context, game *entity.Game) {
	that.Helper()

	if err := that.Games.Save(ctx, game); err != nil {
		that.Fatalf("could not seed game %s: %v", game.ID, err)
	}
}

// StartedGame - seeds both players and a started game under id, with
// alice on cross and bob on circle, and returns the game.
func (that *Suite) StartedGame(ctx context.Context, id string) *entity.Game {
	that.Helper()

	alice := &entity.User{ID: "user-1", Name: "alice"}
	bob := &entity.User{ID: "user-2", Name: "bob"}

	game := entity.NewGame(id)
	if err := game.Join(alice, entity.SymbolCross); err != nil {
		that.Fatalf("could not seat cross: %v", err)
	}
	if err := game.Join(bob, entity.SymbolCircle); err != nil {
		that.Fatalf("could not seat circle: %v", err)
	}
	if _, err := game.Start(); err != nil {
		that.Fatalf("could not start game: %v", err)
	}

	that.SeedUser(ctx, alice)
	that.SeedUser(ctx, bob)
	that.SeedGame(ctx, game)

	return game
}
