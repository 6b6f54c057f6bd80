package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/tttlabs/ttt-backend/internal/entity"
)

type coordinator interface {
	RegisterUser(ctx context.Context, name string) (*entity.User, error)
	CreateGame(ctx context.Context) (*entity.Game, error)
	HandleJoin(ctx context.Context, gameID, userID string, symbol entity.Symbol) (*entity.Game, error)
	HandleMove(ctx context.Context, gameID, userID string, symbol entity.Symbol, x, y int) (*entity.Game, error)
}

type Server struct {
	logger      *slog.Logger
	coordinator coordinator
}

func New(logger *slog.Logger, coordinator coordinator) *Server {
	return &Server{
		logger:      logger.With("component", "rest"),
		coordinator: coordinator,
	}
}

// Router - builds the API route table.
func (that *Server) Router() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/api/registerUser", that.handleRegisterUser).Methods(http.MethodPost)
	router.HandleFunc("/api/createGame", that.handleCreateGame).Methods(http.MethodPost)
	router.HandleFunc("/api/joinGame", that.handleJoinGame).Methods(http.MethodPost)
	router.HandleFunc("/api/makeAMove", that.handleMakeMove).Methods(http.MethodPost)
	router.HandleFunc("/ping", that.handlePing).Methods(http.MethodGet)

	return router
}

// Start - starts the REST API server and blocks until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down REST server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) handlePing(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("pong"))
}
