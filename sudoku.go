// Package sudokusolver solves standard 9×9 Sudoku puzzles. Given an
// 81-character grid string in row-major order ('0' or '.' for empty cells,
// '1'-'9' for givens) it produces a complete, valid 81-character solution or
// reports that none exists.
//
// The solving engine lives in internal packages; this package is the public
// string-in, string-out surface.
package sudokusolver

import (
	"context"

	"github.com/SFBdragon/sudoku-solver/internal/board"
	"github.com/SFBdragon/sudoku-solver/internal/solver"
)

// Error values distinguishing the failure modes. Construction failures
// (malformed or contradictory input) mean search was never attempted;
// ErrNoSolution means a well-formed puzzle was exhaustively searched.
var (
	ErrMalformedInput     = board.ErrMalformedInput
	ErrContradictoryInput = board.ErrContradictoryInput
	ErrNoSolution         = solver.ErrNoSolution
	ErrCancelled          = solver.ErrCancelled
)

// Solve solves the given 81-character puzzle string and returns the solved
// grid as an 81-character string of '1'-'9'. Deterministic: the same input
// always yields the same solution. The context bounds the search; an expired
// context surfaces ErrCancelled.
func Solve(ctx context.Context, puzzle string) (string, error) {
	b, err := board.FromString(puzzle)
	if err != nil {
		return "", err
	}
	solved, _, err := solver.New().Solve(ctx, b)
	if err != nil {
		return "", err
	}
	return solved.String(), nil
}

// Verify reports whether grid is an 81-character string representing a
// completely filled board satisfying all row, column, and box constraints.
func Verify(grid string) bool {
	b, err := board.FromString(grid)
	return err == nil && b.IsSolved()
}
