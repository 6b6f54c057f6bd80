package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/tttlabs/ttt-backend/internal/event"
)

// RedisBroker implements Broker on top of redis pub/sub channels,
// letting several backend instances share one event stream per game.
type RedisBroker struct {
	logger *slog.Logger
	client *redis.Client
}

func NewRedisBroker(logger *slog.Logger, client *redis.Client) *RedisBroker {
	return &RedisBroker{
		logger: logger.With("component", "redis-broker"),
		client: client,
	}
}

func (that *RedisBroker) Publish(ctx context.Context, topic string, ev event.Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err = that.client.Publish(ctx, topic, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

func (that *RedisBroker) Subscribe(ctx context.Context, topic string) (<-chan event.Event, func(), error) {
	log := that.logger.With("topic", topic)

	sub := that.client.Subscribe(ctx, topic)

	// Receive forces the SUBSCRIBE handshake, so events published
	// after Subscribe returns are guaranteed to be delivered.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, nil, fmt.Errorf("failed to subscribe to topic: %w", err)
	}

	out := make(chan event.Event, subscriberBuffer)

	go func() {
		defer close(out)

		for {
			select {
			case msg, ok := <-sub.Channel():
				if !ok {
					return
				}

				var ev event.Event
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					log.Error("failed to unmarshal event", "error", err)
					continue
				}

				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	unsubscribe := func() {
		if err := sub.Close(); err != nil {
			log.Error("failed to close subscription", "error", err)
		}
	}

	return out, unsubscribe, nil
}
