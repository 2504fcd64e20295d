// Package board holds the pure 3x3 board rules: applying a move, win
// detection and draw detection. No state, no side effects.
package board

import (
	"errors"
	"strings"

	"github.com/mcdev12/gamehub/go/internal/models"
)

// Size is the number of cells on the board.
const Size = 9

// ErrInvalidMove is returned for an out-of-range index or an occupied cell.
var ErrInvalidMove = errors.New("invalid move")

// winLines are the 8 canonical lines: 3 rows, 3 columns, 2 diagonals.
var winLines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// Apply places symbol at cellIndex and returns the resulting board.
// The input board is never modified; a cell is never overwritten.
func Apply(b string, cellIndex int, symbol models.Symbol) (string, error) {
	if cellIndex < 0 || cellIndex >= Size {
		return "", ErrInvalidMove
	}
	if b[cellIndex] != models.BoardCellEmpty {
		return "", ErrInvalidMove
	}
	cells := []byte(b)
	cells[cellIndex] = symbol[0]
	return string(cells), nil
}

// HasWin reports whether symbol holds any complete line.
func HasWin(b string, symbol models.Symbol) bool {
	s := symbol[0]
	for _, line := range winLines {
		if b[line[0]] == s && b[line[1]] == s && b[line[2]] == s {
			return true
		}
	}
	return false
}

// IsFull reports whether no empty cells remain.
func IsFull(b string) bool {
	return !strings.ContainsRune(b, rune(models.BoardCellEmpty))
}
