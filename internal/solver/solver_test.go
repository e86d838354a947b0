package solver

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/SFBdragon/sudoku-solver/internal/board"
)

// Known puzzles with unique solutions, including two of the hardest known
// 9×9 puzzles. All have exactly one valid completion, so every correct
// engine must produce these exact strings.
const (
	classicPuzzle   = "530070000600195000098000060800060003400803001700020006060000280000419005000080079"
	classicSolution = "534678912672195348198342567859761423426853791713924856961537284287419635345286179"

	platinumPuzzle   = "600008940900006100070040000200610000000000200089002000000060005000000030800001600"
	platinumSolution = "625178943948326157371945862257619384463587291189432576792863415516294738834751629"

	escargotPuzzle   = "100007090030020008009600500005300900010080002600004000300000010040000007007000300"
	escargotSolution = "162857493534129678789643521475312986913586742628794135356478219241935867897261354"
)

// unsolvablePuzzle is platinumPuzzle with a second given planted in row 0
// that conflicts with the unique solution (which has 2 there) without
// conflicting pairwise with any other given. Construction succeeds; search
// must exhaust and report no solution.
const unsolvablePuzzle = "650008940900006100070040000200610000000000200089002000000060005000000030800001600"

func mustBoard(t testing.TB, s string) *board.Board {
	t.Helper()
	b, err := board.FromString(s)
	if err != nil {
		t.Fatalf("FromString failed: %v", err)
	}
	return b
}

func TestSolveKnownPuzzles(t *testing.T) {
	cases := []struct {
		name   string
		puzzle string
		want   string
	}{
		{"classic", classicPuzzle, classicSolution},
		{"platinum blonde", platinumPuzzle, platinumSolution},
		{"ai escargot", escargotPuzzle, escargotSolution},
	}

	s := New()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()

			in := mustBoard(t, tc.puzzle)
			out, st, err := s.Solve(ctx, in)
			if err != nil {
				t.Fatalf("Solve failed: %v (nodes=%d dur=%v)", err, st.Nodes, st.Duration)
			}
			if got := out.String(); got != tc.want {
				t.Fatalf("Solve = %s, want %s", got, tc.want)
			}
			if !out.IsSolved() {
				t.Fatal("solution fails validity check")
			}

			// Fidelity: every given survives into the solution.
			for pos := 0; pos < board.CellCount; pos++ {
				if v := in.Value(pos); v != board.EmptyCell && out.Value(pos) != v {
					t.Fatalf("given %d at position %d changed to %d", v, pos, out.Value(pos))
				}
			}

			t.Logf("solved in %v, nodes=%d", st.Duration, st.Nodes)
		})
	}
}

func TestSolveDeterministic(t *testing.T) {
	// The all-zeros grid has many solutions; the fixed cell and value
	// ordering must still make repeated solves byte-identical.
	empty := strings.Repeat("0", board.CellCount)
	s := New()

	first, _, err := s.Solve(context.Background(), mustBoard(t, empty))
	if err != nil {
		t.Fatalf("Solve failed on the empty grid: %v", err)
	}
	if !first.IsSolved() {
		t.Fatal("empty-grid solution fails validity check")
	}

	second, _, err := s.Solve(context.Background(), mustBoard(t, empty))
	if err != nil {
		t.Fatalf("repeat Solve failed: %v", err)
	}
	if first.String() != second.String() {
		t.Fatalf("nondeterministic: %s vs %s", first.String(), second.String())
	}
}

func TestSolveNoSolution(t *testing.T) {
	cases := []struct {
		name   string
		puzzle string
	}{
		// Cell 0 sees digits 1-8 in its row and 9 in its column, so its
		// candidate set is empty from the start.
		{"immediate dead end", "012345678" + "900000000" + strings.Repeat("0", 63)},
		{"over-constrained", unsolvablePuzzle},
	}

	s := New()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, _, err := s.Solve(context.Background(), mustBoard(t, tc.puzzle))
			if !errors.Is(err, ErrNoSolution) {
				t.Fatalf("expected ErrNoSolution, got %v", err)
			}
			if out != nil {
				t.Fatal("expected nil board alongside ErrNoSolution")
			}
		})
	}
}

func TestSolveCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := New().Solve(ctx, mustBoard(t, escargotPuzzle))
	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
}

func TestSolveDoesNotMutateInput(t *testing.T) {
	in := mustBoard(t, classicPuzzle)
	before := in.String()

	if _, _, err := New().Solve(context.Background(), in); err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if in.String() != before {
		t.Fatal("Solve mutated its input board")
	}
}

func BenchmarkSolveHardest(b *testing.B) {
	s := New()
	ctx := context.Background()
	in := mustBoard(b, platinumPuzzle)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := s.Solve(ctx, in); err != nil {
			b.Fatal(err)
		}
	}
}
