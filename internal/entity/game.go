package entity

import (
	"github.com/tttlabs/ttt-backend/internal/apperror"
)

const (
	StatusCreated       = "created"
	StatusAwaitingStart = "awaiting_start"
	StatusInProgress    = "in_progress"
	StatusEnded         = "ended"
)

const (
	ResultWin = "win"
	ResultTie = "tie"
)

// startingTurn - cross always moves first.
const startingTurn = SymbolCross

// Outcome is set once and only once, when a game ends.
type Outcome struct {
	Result string `json:"result"`
	Winner Symbol `json:"winner,omitempty"`
}

// Game is the aggregate owning a board, two player slots, the turn
// state and the lifecycle status. All mutations go through Join,
// Start and Move; callers are expected to serialize them per game.
type Game struct {
	ID      string           `json:"id"`
	Board   Board            `json:"board"`
	Slots   map[Symbol]*User `json:"slots,omitempty"`
	Status  string           `json:"status"`
	Turn    Symbol           `json:"turn,omitempty"`
	Outcome *Outcome         `json:"outcome,omitempty"`
}

func NewGame(id string) *Game {
	return &Game{
		ID:     id,
		Slots:  make(map[Symbol]*User),
		Status: StatusCreated,
	}
}

// Join - assigns user to the slot of symbol. Once both slots are
// filled the game becomes eligible to start.
func (that *Game) Join(user *User, symbol Symbol) error {
	switch that.Status {
	case StatusCreated, StatusAwaitingStart:
	case StatusEnded:
		return apperror.ErrGameFinished
	default:
		return apperror.ErrGameStarted
	}

	if that.Slots == nil {
		that.Slots = make(map[Symbol]*User)
	}

	if that.Slots[symbol] != nil {
		return apperror.ErrSlotTaken
	}

	if other := that.Slots[symbol.Other()]; other != nil && other.ID == user.ID {
		return apperror.ErrAlreadyJoined
	}

	that.Slots[symbol] = user

	if that.BothSlotsFilled() {
		that.Status = StatusAwaitingStart
	}

	return nil
}

// Start - moves the game to in_progress and hands the first turn to
// cross. Starting an already started game is a no-op success, so the
// start trigger can fire once per connected observer.
func (that *Game) Start() (bool, error) {
	switch that.Status {
	case StatusAwaitingStart:
		that.Status = StatusInProgress
		that.Turn = startingTurn
		return true, nil
	case StatusInProgress:
		return false, nil
	default:
		return false, apperror.ErrGameNotReady
	}
}

// Move - places symbol at row x, column y on behalf of user, then
// resolves the terminal conditions: win first, tie second, otherwise
// the turn flips to the other symbol.
func (that *Game) Move(user *User, symbol Symbol, x, y int) error {
	switch that.Status {
	case StatusInProgress:
	case StatusEnded:
		return apperror.ErrGameFinished
	default:
		return apperror.ErrGameNotStarted
	}

	if owner := that.Slots[symbol]; owner == nil || owner.ID != user.ID {
		return apperror.ErrWrongPlayer
	}

	if symbol != that.Turn {
		return apperror.ErrNotYourTurn
	}

	if err := that.Board.Place(x, y, symbol); err != nil {
		return err
	}

	if winner, ok := that.Board.WinningLine(); ok {
		that.Status = StatusEnded
		that.Outcome = &Outcome{Result: ResultWin, Winner: winner}
		that.Turn = EmptyCell
		return nil
	}

	if that.Board.IsFull() {
		that.Status = StatusEnded
		that.Outcome = &Outcome{Result: ResultTie}
		that.Turn = EmptyCell
		return nil
	}

	that.Turn = symbol.Other()

	return nil
}

func (that *Game) BothSlotsFilled() bool {
	return that.Slots[SymbolCross] != nil && that.Slots[SymbolCircle] != nil
}

func (that *Game) IsEnded() bool {
	return that.Status == StatusEnded
}

func (that *Game) IsInProgress() bool {
	return that.Status == StatusInProgress
}
