package entity

import "github.com/tttlabs/ttt-backend/internal/apperror"

const BoardSize = 3

const EmptyCell = Symbol("")

// winLines - the 8 possible lines: 3 rows, 3 columns, 2 diagonals.
// Each cell is a {row, column} pair.
var winLines = [8][3][2]int{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// Board is a fixed 3×3 grid of cells. An empty cell holds EmptyCell;
// an occupied cell never becomes empty again.
type Board [BoardSize][BoardSize]Symbol

// Place - writes symbol into the cell at row x, column y.
func (that *Board) Place(x, y int, symbol Symbol) error {
	if x < 0 || x >= BoardSize || y < 0 || y >= BoardSize {
		return apperror.ErrCellOutOfBounds
	}

	if that[x][y] != EmptyCell {
		return apperror.ErrCellOccupied
	}

	that[x][y] = symbol

	return nil
}

// IsFull - reports whether every cell is occupied.
func (that *Board) IsFull() bool {
	for x := range that {
		for y := range that[x] {
			if that[x][y] == EmptyCell {
				return false
			}
		}
	}

	return true
}

// WinningLine - returns the symbol owning a completed line, if any.
// Alternating turns guarantee at most one symbol can own a line.
func (that *Board) WinningLine() (Symbol, bool) {
	for _, line := range winLines {
		a := that[line[0][0]][line[0][1]]
		b := that[line[1][0]][line[1][1]]
		c := that[line[2][0]][line[2][1]]

		if a != EmptyCell && a == b && b == c {
			return a, true
		}
	}

	return EmptyCell, false
}
