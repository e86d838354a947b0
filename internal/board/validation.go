package board

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedInput reports a grid string of the wrong length or with
	// characters outside '0'-'9' and '.'.
	ErrMalformedInput = errors.New("malformed grid string")

	// ErrContradictoryInput reports two filled cells sharing a value within
	// the same row, column, or box — the puzzle is invalid before any
	// solving begins.
	ErrContradictoryInput = errors.New("grid violates Sudoku constraints")
)

// malformedLength wraps ErrMalformedInput for a bad string length.
func malformedLength(got int) error {
	return fmt.Errorf("%w: must be exactly %d characters, got %d", ErrMalformedInput, CellCount, got)
}

// malformedChar wraps ErrMalformedInput for a character outside the alphabet.
func malformedChar(ch byte, pos int) error {
	return fmt.Errorf("%w: invalid character %q at position %d", ErrMalformedInput, ch, pos)
}

// contradiction wraps ErrContradictoryInput for a duplicated given.
func contradiction(val, pos int, unit string, index int) error {
	return fmt.Errorf("%w: value %d at position %d already in %s %d", ErrContradictoryInput, val, pos, unit, index)
}

// IsValid reports whether the board satisfies Sudoku constraints.
// Empty cells are ignored. The check rebuilds its unit masks from cell
// values alone, so it stays meaningful even if the incremental masks were
// ever to drift.
func (b *Board) IsValid() bool {
	var rowCheck, colCheck, boxCheck [9]uint16

	for pos := 0; pos < CellCount; pos++ {
		val := b.cells[pos]
		if val == EmptyCell {
			continue
		}

		row, col, box := posToRow[pos], posToCol[pos], posToBox[pos]
		mask := uint16(1) << (val - 1)

		if rowCheck[row]&mask != 0 ||
			colCheck[col]&mask != 0 ||
			boxCheck[box]&mask != 0 {
			return false
		}

		rowCheck[row] |= mask
		colCheck[col] |= mask
		boxCheck[box] |= mask
	}

	return true
}

// IsSolved reports whether the board is completely filled and every row,
// column, and box holds each digit exactly once.
func (b *Board) IsSolved() bool {
	return b.emptyCount == 0 && b.IsValid()
}
