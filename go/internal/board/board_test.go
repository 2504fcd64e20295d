package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/gamehub/go/internal/models"
)

func TestApply(t *testing.T) {
	b, err := Apply(models.EmptyBoard, 4, models.SymbolX)
	require.NoError(t, err)
	assert.Equal(t, "____X____", b)

	b, err = Apply(b, 0, models.SymbolO)
	require.NoError(t, err)
	assert.Equal(t, "O___X____", b)
}

func TestApplyRejectsOutOfRange(t *testing.T) {
	for _, idx := range []int{-1, 9, 100} {
		_, err := Apply(models.EmptyBoard, idx, models.SymbolX)
		assert.ErrorIs(t, err, ErrInvalidMove, "index %d", idx)
	}
}

func TestApplyRejectsOccupiedCell(t *testing.T) {
	b, err := Apply(models.EmptyBoard, 4, models.SymbolX)
	require.NoError(t, err)

	_, err = Apply(b, 4, models.SymbolO)
	assert.ErrorIs(t, err, ErrInvalidMove)
	// Original board untouched.
	assert.Equal(t, "____X____", b)
}

func TestHasWinAllLines(t *testing.T) {
	lines := [][3]int{
		{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
		{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
		{0, 4, 8}, {2, 4, 6},
	}
	for _, line := range lines {
		cells := []byte(models.EmptyBoard)
		for _, i := range line {
			cells[i] = 'X'
		}
		b := string(cells)
		assert.True(t, HasWin(b, models.SymbolX), "line %v", line)
		assert.False(t, HasWin(b, models.SymbolO), "line %v", line)
	}
}

func TestHasWinNoFalsePositiveOnFullBoard(t *testing.T) {
	// Full board, no three in a line for either symbol.
	b := "XOXXOOOXX"
	assert.True(t, IsFull(b))
	assert.False(t, HasWin(b, models.SymbolX))
	assert.False(t, HasWin(b, models.SymbolO))
}

func TestIsFull(t *testing.T) {
	assert.False(t, IsFull(models.EmptyBoard))
	assert.False(t, IsFull("XOXXOXO_X"))
	assert.True(t, IsFull("XOXXOXOXX"))
}
