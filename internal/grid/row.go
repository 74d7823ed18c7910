package grid

import (
	"fmt"

	"github.com/vovakirdan/auto2048/internal/core"
)

// Side selects the end of a line that tiles slide toward.
type Side int

const (
	TowardStart Side = iota // toward index 0
	TowardEnd               // toward index len-1
)

// Row is one line of cells projected from a grid row or column.
type Row struct {
	cells [core.MaxSize]int
	size  int
}

// NewRow builds a row from values ordered from index 0.
// Negative values are read as empty so literal rows like {2, 2, -1, -1} work.
func NewRow(values ...int) Row {
	if len(values) > core.MaxSize {
		panic(fmt.Sprintf("grid: row of %d cells exceeds max size %d", len(values), core.MaxSize))
	}
	r := Row{size: len(values)}
	for i, v := range values {
		if v > 0 {
			r.cells[i] = v
		}
	}
	return r
}

// Len returns the number of cells in the row.
func (r Row) Len() int {
	return r.size
}

// At returns the value at index i.
func (r Row) At(i int) int {
	return r.cells[i]
}

// Values returns a copy of the row cells.
func (r Row) Values() []int {
	out := make([]int, r.size)
	copy(out, r.cells[:r.size])
	return out
}

// Count returns the number of occupied cells.
func (r Row) Count() int {
	n := 0
	for i := range r.size {
		if r.cells[i] != core.Empty {
			n++
		}
	}
	return n
}

// index maps the i-th position counted from the target side to a cell index.
func (r Row) index(side Side, i int) int {
	if side == TowardEnd {
		return r.size - 1 - i
	}
	return i
}

// Valid reports whether moving toward side would change the row: some tile
// has an equal tile as its next occupied neighbour toward the target, or an
// empty cell right next to it on the target side.
func (r Row) Valid(side Side) bool {
	prev := core.Empty
	for i := range r.size {
		v := r.cells[r.index(side, i)]
		if v == core.Empty {
			continue
		}
		if i > 0 && r.cells[r.index(side, i-1)] == core.Empty {
			return true
		}
		if v == prev {
			return true
		}
		prev = v
	}
	return false
}

// Move slides the row toward side and merges equal neighbours.
// It compacts, joins each adjacent equal pair once starting from the target
// side, and compacts again, all in a single scan. A merged tile does not merge
// again in the same move. Returns the new row and the points gained (the sum
// of merged values). An invalid move returns the row unchanged.
func (r Row) Move(side Side) (Row, int) {
	if !r.Valid(side) {
		return r, 0
	}

	out := Row{size: r.size}
	writePos := 0
	points := 0
	canMerge := false // last written tile is not the product of a merge

	for i := range r.size {
		v := r.cells[r.index(side, i)]
		if v == core.Empty {
			continue
		}

		last := out.index(side, writePos-1)
		if canMerge && out.cells[last] == v {
			out.cells[last] = 2 * v
			points += 2 * v
			canMerge = false
			continue
		}

		out.cells[out.index(side, writePos)] = v
		writePos++
		canMerge = true
	}

	return out, points
}

// String returns the row values, empty cells shown as 0.
func (r Row) String() string {
	return fmt.Sprint(r.Values())
}
