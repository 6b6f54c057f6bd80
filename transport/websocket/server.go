package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"nhooyr.io/websocket"

	"github.com/tttlabs/ttt-backend/internal/event"
	"github.com/tttlabs/ttt-backend/internal/pkg"
)

type coordinator interface {
	HandleStart(ctx context.Context, gameID string) error
}

type broker interface {
	Subscribe(ctx context.Context, topic string) (<-chan event.Event, func(), error)
}

// Server pushes game events to observers. A client opens a websocket,
// sends {"gameId": "..."} once and from then on only receives: every
// event published on the game's topic, in publish order.
type Server struct {
	logger      *slog.Logger
	coordinator coordinator
	broker      broker
}

func New(logger *slog.Logger, coordinator coordinator, broker broker) *Server {
	return &Server{
		logger:      logger.With("component", "websocket"),
		coordinator: coordinator,
		broker:      broker,
	}
}

// Start - starts the subscription server and blocks until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	serveMux := http.NewServeMux()
	serveMux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.handleSubscription(w, r)
	})

	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     serveMux,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down websocket server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

type observeRequest struct {
	GameID string `json:"gameId"`
}

func (that *Server) handleSubscription(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleSubscription", "connectionID", pkg.GenerateConnectionID())

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		log.Error("failed to accept websocket", "error", err)
		return
	}
	defer conn.CloseNow() //nolint: errcheck // connection teardown

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// The opening message names the game to observe.
	_, data, err := conn.Read(ctx)
	if err != nil {
		log.Error("failed to read opening message", "error", err)
		return
	}

	var req observeRequest
	if err = json.Unmarshal(data, &req); err != nil {
		log.Error("failed to unmarshal opening message", "error", err)
		return
	}

	log = log.With("gameID", req.GameID)

	events, unsubscribe, err := that.broker.Subscribe(ctx, event.Topic(req.GameID))
	if err != nil {
		log.Error("failed to subscribe to game topic", "error", err)
		return
	}
	defer unsubscribe()

	// Both players connected and subscribed is the start condition, so
	// every new observer fires a best-effort start trigger.
	if err = that.coordinator.HandleStart(ctx, req.GameID); err != nil {
		log.Info("start trigger declined", "reason", err)
	}

	// Drain the connection so a client close cancels the subscription.
	go func() {
		for {
			if _, _, readErr := conn.Read(ctx); readErr != nil {
				cancel()
				return
			}
		}
	}()

	log.Info("observer subscribed")

	for ev := range events {
		payload, marshalErr := json.Marshal(ev)
		if marshalErr != nil {
			log.Error("failed to marshal event", "error", marshalErr)
			continue
		}

		if err = conn.Write(ctx, websocket.MessageText, payload); err != nil {
			log.Info("observer disconnected", "error", err)
			return
		}
	}
}
