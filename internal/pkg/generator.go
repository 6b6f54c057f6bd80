package pkg

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator hands out identifiers for newly created aggregates.
type IDGenerator interface {
	NextID() string
}

// SequenceGenerator issues human-readable sequential ids such as
// "user-1", "game-2". Safe for concurrent use.
type SequenceGenerator struct {
	prefix  string
	counter atomic.Uint64
}

func NewSequenceGenerator(prefix string) *SequenceGenerator {
	return &SequenceGenerator{prefix: prefix}
}

func (that *SequenceGenerator) NextID() string {
	return fmt.Sprintf("%s-%d", that.prefix, that.counter.Add(1))
}

// GenerateConnectionID - returns a random id for a subscriber connection.
func GenerateConnectionID() string {
	return uuid.NewString()
}
