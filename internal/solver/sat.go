package solver

import (
	"context"
	"time"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"

	"github.com/SFBdragon/sudoku-solver/internal/board"
)

// SAT is an alternate Engine that encodes the puzzle as CNF and hands it to
// a SAT solver. It exists as an independent cross-check of the backtracking
// engine: the two share no search code, so agreement on a puzzle with a
// unique solution is strong evidence both are correct. Unlike the
// backtracking engine it makes no determinism promise for puzzles with
// multiple solutions.
type SAT struct{}

// NewSAT creates a SAT-based solver.
func NewSAT() *SAT { return &SAT{} }

// lit maps the triple (row, col, digit) to the SAT variable stating that
// digit (0-based) is placed at that cell.
func lit(row, col, digit int) z.Lit {
	return z.Var(row*81 + col*9 + digit + 1).Pos()
}

// Solve encodes b and solves it. The encoding has one variable per
// (cell, digit) triple: a clause per cell requiring some digit, pairwise
// at-most-one clauses per digit within every row, column, and box, and a
// unit clause per given.
func (s *SAT) Solve(ctx context.Context, b *board.Board) (*board.Board, Stats, error) {
	start := time.Now()
	if ctx.Err() != nil {
		return nil, Stats{Duration: time.Since(start)}, ErrCancelled
	}

	g := gini.New()

	// Every cell holds at least one digit.
	for row := 0; row < 9; row++ {
		for col := 0; col < 9; col++ {
			for d := 0; d < 9; d++ {
				g.Add(lit(row, col, d))
			}
			g.Add(0)
		}
	}

	// Each digit appears at most once per group.
	for group := 0; group < board.GroupCount; group++ {
		cells := board.GroupCells(group)
		for d := 0; d < 9; d++ {
			for i := 0; i < 9; i++ {
				a := lit(cells[i]/9, cells[i]%9, d)
				for j := i + 1; j < 9; j++ {
					bl := lit(cells[j]/9, cells[j]%9, d)
					g.Add(a.Not())
					g.Add(bl.Not())
					g.Add(0)
				}
			}
		}
	}

	// Givens as unit clauses.
	for pos := 0; pos < board.CellCount; pos++ {
		if v := b.Value(pos); v != board.EmptyCell {
			g.Add(lit(pos/9, pos%9, v-1))
			g.Add(0)
		}
	}

	if g.Solve() != 1 {
		return nil, Stats{Duration: time.Since(start)}, ErrNoSolution
	}

	// Decode the model back through FromString so the returned board has
	// coherent candidate and unit mask state.
	var out [board.CellCount]byte
	for pos := range out {
		out[pos] = '0'
		for d := 0; d < 9; d++ {
			if g.Value(lit(pos/9, pos%9, d)) {
				out[pos] = byte('1' + d)
				break
			}
		}
	}
	solved, err := board.FromString(string(out[:]))
	if err != nil {
		return nil, Stats{Duration: time.Since(start)}, err
	}
	return solved, Stats{Duration: time.Since(start)}, nil
}
