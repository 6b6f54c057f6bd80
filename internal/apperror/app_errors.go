package apperror

import "errors"

var (
	ErrGameNotFound = errors.New("game not found")
	ErrUserNotFound = errors.New("user not found")

	ErrSlotTaken     = errors.New("slot is already taken")
	ErrAlreadyJoined = errors.New("user already joined this game")
	ErrGameNotReady  = errors.New("game is not ready to start")

	ErrGameStarted     = errors.New("game is already started")
	ErrGameNotStarted  = errors.New("game is not started")
	ErrGameFinished    = errors.New("game is already finished")
	ErrWrongPlayer     = errors.New("player does not own this symbol")
	ErrNotYourTurn     = errors.New("it's not your turn")
	ErrCellOccupied    = errors.New("cell is already occupied")
	ErrCellOutOfBounds = errors.New("cell is out of bounds")
)

// IsIllegalCell reports whether err is one of the board placement errors.
func IsIllegalCell(err error) bool {
	return errors.Is(err, ErrCellOccupied) || errors.Is(err, ErrCellOutOfBounds)
}
