package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/tttlabs/ttt-backend/internal/config"
	"github.com/tttlabs/ttt-backend/internal/pkg"
	"github.com/tttlabs/ttt-backend/internal/pubsub"
	"github.com/tttlabs/ttt-backend/internal/repository"
	"github.com/tttlabs/ttt-backend/internal/repository/storage"
	"github.com/tttlabs/ttt-backend/internal/usecase"
	"github.com/tttlabs/ttt-backend/transport/rest"
	"github.com/tttlabs/ttt-backend/transport/websocket"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	var (
		userRepo repository.UserRepository
		gameRepo repository.GameRepository
		broker   pubsub.Broker
	)

	switch conf.Storage.Backend {
	case config.StorageRedis:
		client, err := storage.NewRedis(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = client.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		userRepo = repository.NewUserRepository(client)
		gameRepo = repository.NewGameRepository(client)
		broker = pubsub.NewRedisBroker(logger, client)
	case config.StorageFile:
		fileStorage, err := storage.NewFileStorage(conf.Storage.FileDir)
		if err != nil {
			return fmt.Errorf("could not open file storage: %w", err)
		}

		userRepo = repository.NewFileUserRepository(fileStorage)
		gameRepo = repository.NewFileGameRepository(fileStorage)

		// File storage means a single process, so the in-memory
		// broker is enough to reach every subscriber.
		broker = pubsub.NewMemoryBroker()
	default:
		return fmt.Errorf("unknown storage backend: %q", conf.Storage.Backend)
	}

	coordinator := usecase.NewGameCoordinator(
		logger,
		userRepo,
		gameRepo,
		broker,
		pkg.NewSequenceGenerator("user"),
		pkg.NewSequenceGenerator("game"),
	)

	// run REST API server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting REST server", "port", conf.HTTPPort)
		restServer := rest.New(logger, coordinator)
		if httpErr := restServer.Start(ctx, conf.HTTPPort); httpErr != nil {
			log.Error("REST server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run WebSocket subscription server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, coordinator, broker)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err := <-httpErrCh:
		return fmt.Errorf("REST server error: %w", err)
	case err := <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
