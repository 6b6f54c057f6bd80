package pubsub

import (
	"context"

	"github.com/tttlabs/ttt-backend/internal/event"
)

// Broker is the per-topic publish/subscribe capability the session
// coordinator publishes to and subscriber connections consume from.
// Subscribers of one topic observe events in publish order.
type Broker interface {
	// Publish delivers ev to every current subscriber of topic.
	Publish(ctx context.Context, topic string, ev event.Event) error

	// Subscribe returns a channel of events published on topic after
	// the call, plus a function releasing the subscription. The
	// channel is closed on release or context cancellation.
	Subscribe(ctx context.Context, topic string) (<-chan event.Event, func(), error)
}
