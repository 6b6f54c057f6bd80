package event

import "github.com/tttlabs/ttt-backend/internal/entity"

const (
	TypeGameStarted = "game-started"
	TypeNewMove     = "new-move"
	TypeGameEnded   = "game-ended"
)

// topicPrefix - one topic per game, shared by both players' connections.
const topicPrefix = "ttt-events-"

// Event is the wire shape published on a game topic. The fields are a
// union over the three event types; unused fields stay empty.
type Event struct {
	Type   string        `json:"event"`
	X      *int          `json:"x,omitempty"`
	Y      *int          `json:"y,omitempty"`
	Symbol entity.Symbol `json:"symbol,omitempty"`
	Result string        `json:"result,omitempty"`
	Winner entity.Symbol `json:"winner,omitempty"`
}

func Topic(gameID string) string {
	return topicPrefix + gameID
}

func GameStarted() Event {
	return Event{Type: TypeGameStarted}
}

func NewMove(x, y int, symbol entity.Symbol) Event {
	return Event{Type: TypeNewMove, X: &x, Y: &y, Symbol: symbol}
}

func GameEnded(outcome *entity.Outcome) Event {
	return Event{
		Type:   TypeGameEnded,
		Result: outcome.Result,
		Winner: outcome.Winner,
	}
}
