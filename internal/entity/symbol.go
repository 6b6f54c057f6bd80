package entity

import (
	"errors"
	"fmt"
)

var ErrUnknownSymbol = errors.New("unknown symbol")

// Symbol is one of the two marks a player can hold in a game.
// Its string value doubles as the wire representation.
type Symbol string

const (
	SymbolCross  Symbol = "cross"
	SymbolCircle Symbol = "circle"
)

// ParseSymbol - converts a wire string into a Symbol.
func ParseSymbol(raw string) (Symbol, error) {
	switch Symbol(raw) {
	case SymbolCross:
		return SymbolCross, nil
	case SymbolCircle:
		return SymbolCircle, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSymbol, raw)
	}
}

// Other - returns the opposing symbol.
func (that Symbol) Other() Symbol {
	if that == SymbolCross {
		return SymbolCircle
	}
	return SymbolCross
}

func (that Symbol) String() string {
	return string(that)
}
