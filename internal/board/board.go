// Package board implements the 9×9 Sudoku grid model: cell values, per-cell
// candidate sets, and the row/column/box constraint structure. All candidate
// bookkeeping uses 9-bit masks so membership, removal, and cardinality are
// single instructions.
package board

import (
	"math/bits"
	"strings"
)

// Special cell values
const (
	EmptyCell = 0
	CellCount = 81
)

// Constraint structure constants
const (
	// GroupCount is the number of constraint groups: 9 rows, 9 columns,
	// 9 boxes. Groups 0-8 are rows, 9-17 are columns, 18-26 are boxes.
	GroupCount = 27

	// PeerCount is the number of cells sharing a row, column, or box with
	// any given cell: 8 + 8 + 8 minus the 4 counted twice.
	PeerCount = 20
)

// Bitmask values
const (
	allNine = 0x1ff
)

// Board represents a 9×9 Sudoku board.
//
// Candidate masks are stored per cell and kept in sync by Assign/Unassign.
// Bit i of a mask represents digit i+1 (bit 0 = digit 1, bit 8 = digit 9).
// An assigned cell always has an empty candidate mask.
type Board struct {
	cells [CellCount]uint8
	cand  [CellCount]uint16

	// Bitmasks track placed digits in each unit for O(1) duplicate checks
	// and for the solver's per-group propagation.
	rowMask [9]uint16
	colMask [9]uint16
	boxMask [9]uint16

	// emptyCount tracks unfilled cells for quick completion checks.
	// Once initialized, emptyCount is only touched by Assign and Unassign.
	emptyCount int
}

// New creates an empty Board with full candidate sets.
func New() *Board {
	b := &Board{emptyCount: CellCount}
	for pos := 0; pos < CellCount; pos++ {
		b.cand[pos] = allNine
	}
	return b
}

// FromString creates a Board from an 81-character string in row-major order.
// Use '.' or '0' for empty cells, '1'-'9' for filled cells.
//
// Returns ErrMalformedInput for a string of the wrong length or with
// characters outside the allowed alphabet, and ErrContradictoryInput when
// two filled cells in the same row, column, or box share a value.
func FromString(s string) (*Board, error) {
	if len(s) != CellCount {
		return nil, malformedLength(len(s))
	}

	b := New()
	for pos := 0; pos < CellCount; pos++ {
		ch := s[pos]
		switch {
		case ch == '.' || ch == '0':
			// Empty cell, already initialized
		case ch >= '1' && ch <= '9':
			if err := b.place(pos, int(ch-'0')); err != nil {
				return nil, err
			}
		default:
			return nil, malformedChar(ch, pos)
		}
	}

	// Initial candidate sets: everything not already placed in the cell's
	// row, column, or box. Filled cells keep an empty mask.
	for pos := 0; pos < CellCount; pos++ {
		if b.cells[pos] != EmptyCell {
			b.cand[pos] = 0
			continue
		}
		b.cand[pos] = allNine &^ b.rowMask[posToRow[pos]] &^
			b.colMask[posToCol[pos]] &^ b.boxMask[posToBox[pos]]
	}

	return b, nil
}

// place sets a given during construction, checking only pairwise uniqueness
// within units. Candidate masks are computed afterwards in one pass.
func (b *Board) place(pos, val int) error {
	row, col, box := posToRow[pos], posToCol[pos], posToBox[pos]
	mask := uint16(1) << (val - 1)

	if b.rowMask[row]&mask != 0 {
		return contradiction(val, pos, "row", row)
	}
	if b.colMask[col]&mask != 0 {
		return contradiction(val, pos, "column", col)
	}
	if b.boxMask[box]&mask != 0 {
		return contradiction(val, pos, "box", box)
	}

	b.cells[pos] = uint8(val)
	b.rowMask[row] |= mask
	b.colMask[col] |= mask
	b.boxMask[box] |= mask
	b.emptyCount--
	return nil
}

// Clone creates an independent copy of the Board.
func (b *Board) Clone() *Board {
	if b == nil {
		return nil
	}
	clone := *b
	return &clone
}

// Undo records everything needed to exactly reverse one Assign: the cell,
// its pre-assignment candidate mask, and the peers whose masks lost the
// assigned digit. It is a plain value; no allocation happens during search.
type Undo struct {
	pos     uint8
	val     uint8
	n       uint8
	prev    uint16
	touched [PeerCount]uint8
}

// Assign places val (1-9) at pos and removes val from the candidate mask of
// every peer that still lists it. It reports a dead end when some peer is
// left with no candidates while still unassigned — a normal search outcome
// signalling that this partial assignment cannot be completed.
//
// The caller must only assign values present in the cell's candidate mask.
// Every touched peer is recorded in the returned Undo even on a dead end,
// so Unassign always restores the exact prior state.
func (b *Board) Assign(pos, val int) (Undo, bool) {
	row, col, box := posToRow[pos], posToCol[pos], posToBox[pos]
	mask := uint16(1) << (val - 1)

	u := Undo{pos: uint8(pos), val: uint8(val), prev: b.cand[pos]}

	b.cells[pos] = uint8(val)
	b.cand[pos] = 0
	b.rowMask[row] |= mask
	b.colMask[col] |= mask
	b.boxMask[box] |= mask
	b.emptyCount--

	deadEnd := false
	for _, p := range peers[pos] {
		if b.cand[p]&mask == 0 {
			continue
		}
		b.cand[p] &^= mask
		u.touched[u.n] = p
		u.n++
		if b.cand[p] == 0 {
			deadEnd = true
		}
	}
	return u, deadEnd
}

// Unassign reverses the Assign that produced u, restoring the cell to
// unassigned and every affected peer's candidate mask to its prior value.
func (b *Board) Unassign(u Undo) {
	pos := int(u.pos)
	row, col, box := posToRow[pos], posToCol[pos], posToBox[pos]
	mask := uint16(1) << (u.val - 1)

	for i := 0; i < int(u.n); i++ {
		b.cand[u.touched[i]] |= mask
	}

	b.cells[pos] = EmptyCell
	b.cand[pos] = u.prev
	b.rowMask[row] &^= mask
	b.colMask[col] &^= mask
	b.boxMask[box] &^= mask
	b.emptyCount++
}

// IsComplete reports whether every cell is assigned.
func (b *Board) IsComplete() bool {
	return b.emptyCount == 0
}

// FindMostConstrainedCell returns the unassigned cell with the fewest
// candidates and its candidate mask, breaking ties by lowest position.
// A returned mask of 0 signals a dead end. Returns pos -1 when every cell
// is assigned.
func (b *Board) FindMostConstrainedCell() (int, uint16) {
	bestPos, bestMask, bestCount := -1, uint16(0), 10

	for pos := 0; pos < CellCount; pos++ {
		if b.cells[pos] != EmptyCell {
			continue
		}
		count := bits.OnesCount16(b.cand[pos])
		if count < bestCount {
			bestPos, bestMask, bestCount = pos, b.cand[pos], count
			if count == 0 {
				break
			}
		}
	}

	return bestPos, bestMask
}

// Value returns the value at the given position, EmptyCell if unassigned.
func (b *Board) Value(pos int) int {
	return int(b.cells[pos])
}

// CandidatesMask returns the candidate bitmask for a given position.
// Assigned cells have an empty mask.
func (b *Board) CandidatesMask(pos int) uint16 {
	return b.cand[pos]
}

// GroupCells returns the 9 cell positions of the given constraint group,
// in ascending order. Groups 0-8 are rows, 9-17 columns, 18-26 boxes.
func GroupCells(group int) [9]int {
	return groupCells[group]
}

// GroupMask returns the bitmask of digits already placed in the given group.
func (b *Board) GroupMask(group int) uint16 {
	switch {
	case group < 9:
		return b.rowMask[group]
	case group < 18:
		return b.colMask[group-9]
	default:
		return b.boxMask[group-18]
	}
}

// EmptyCount returns the number of empty cells on the board.
func (b *Board) EmptyCount() int {
	return b.emptyCount
}

// ClueCount returns the number of filled cells on the board.
func (b *Board) ClueCount() int {
	return CellCount - b.emptyCount
}

// String returns the board as an 81-character string in row-major order.
// Empty cells are represented as '0', filled cells as '1'-'9'.
func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow(CellCount)

	for _, cell := range b.cells {
		sb.WriteByte('0' + cell)
	}

	return sb.String()
}

// Format returns a human-readable board representation with grid lines.
func (b *Board) Format() string {
	var sb strings.Builder
	line := "+-------+-------+-------+\n"
	sb.WriteString(line)

	for row := 0; row < 9; row++ {
		sb.WriteString("| ")
		for col := 0; col < 9; col++ {
			val := b.cells[9*row+col]
			if val == EmptyCell {
				sb.WriteByte('.')
			} else {
				sb.WriteByte('0' + val)
			}
			sb.WriteByte(' ')

			if (col+1)%3 == 0 {
				sb.WriteString("| ")
			}
		}
		sb.WriteString("\n")

		if (row+1)%3 == 0 {
			sb.WriteString(line)
		}
	}

	return sb.String()
}

// MakePos transforms a row and column into a linear position.
func MakePos(row, col int) int {
	return 9*row + col
}

// Precomputed lookup tables for the static constraint structure. Rows,
// columns, and boxes never change during solving, so cell-to-unit mapping,
// group membership, and the 20-peer relation are all built once at startup.
var (
	posToRow [CellCount]int
	posToCol [CellCount]int
	posToBox [CellCount]int

	groupCells [GroupCount][9]int
	peers      [CellCount][PeerCount]uint8
)

// init initializes the unit, group, and peer lookup tables.
func init() {
	for pos := 0; pos < CellCount; pos++ {
		posToRow[pos] = pos / 9
		posToCol[pos] = pos % 9
		posToBox[pos] = 3*(pos/27) + (pos%9)/3
	}

	var groupLen [GroupCount]int
	for pos := 0; pos < CellCount; pos++ {
		for _, g := range [3]int{posToRow[pos], 9 + posToCol[pos], 18 + posToBox[pos]} {
			groupCells[g][groupLen[g]] = pos
			groupLen[g]++
		}
	}

	for pos := 0; pos < CellCount; pos++ {
		n := 0
		for q := 0; q < CellCount; q++ {
			if q == pos {
				continue
			}
			if posToRow[q] == posToRow[pos] ||
				posToCol[q] == posToCol[pos] ||
				posToBox[q] == posToBox[pos] {
				peers[pos][n] = uint8(q)
				n++
			}
		}
	}
}
