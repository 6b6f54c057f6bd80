package pubsub

import (
	"context"
	"sync"

	"github.com/tttlabs/ttt-backend/internal/event"
)

// subscriberBuffer bounds how far a slow subscriber may lag before
// Publish blocks on it.
const subscriberBuffer = 32

// MemoryBroker is an in-process Broker fanning events out over
// channels. One instance serves all topics.
type MemoryBroker struct {
	mu     sync.RWMutex
	nextID int
	topics map[string]map[int]chan event.Event
}

func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{
		topics: make(map[string]map[int]chan event.Event),
	}
}

func (that *MemoryBroker) Publish(ctx context.Context, topic string, ev event.Event) error {
	that.mu.RLock()
	defer that.mu.RUnlock()

	for _, ch := range that.topics[topic] {
		select {
		case ch <- ev:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return nil
}

func (that *MemoryBroker) Subscribe(ctx context.Context, topic string) (<-chan event.Event, func(), error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.topics[topic] == nil {
		that.topics[topic] = make(map[int]chan event.Event)
	}

	id := that.nextID
	that.nextID++

	ch := make(chan event.Event, subscriberBuffer)
	that.topics[topic][id] = ch

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			that.mu.Lock()
			defer that.mu.Unlock()

			delete(that.topics[topic], id)
			if len(that.topics[topic]) == 0 {
				delete(that.topics, topic)
			}
			close(ch)
		})
	}

	go func() {
		<-ctx.Done()
		unsubscribe()
	}()

	return ch, unsubscribe, nil
}
