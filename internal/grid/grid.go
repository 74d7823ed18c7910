// Package grid implements the square 2048 grid and its move engine.
//
// Grid is a value type backed by a fixed-size array, so assigning a Grid
// copies it. The search relies on this: it can only ever mutate its own
// copies, never the live board.
package grid

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/auto2048/internal/core"
)

var (
	// ErrOccupied is returned when placing a tile on an occupied location.
	ErrOccupied = errors.New("grid: location occupied")
	// ErrOutOfRange is returned for locations outside the grid.
	ErrOutOfRange = errors.New("grid: location out of range")
	// ErrBadTile is returned for values that are not powers of two.
	ErrBadTile = errors.New("grid: tile value is not a power of two")
)

// Grid holds every cell of a size x size board, indexed y*size+x.
// Cells beyond size*size are always empty, so two grids compare equal with ==
// exactly when they hold the same tiles.
type Grid struct {
	size  int
	cells [core.MaxCells]int
}

// New returns an empty grid. It panics if size is outside
// core.MinSize..core.MaxSize; sizes are validated by configuration first.
func New(size int) Grid {
	if size < core.MinSize || size > core.MaxSize {
		panic(fmt.Sprintf("grid: invalid size %d", size))
	}
	return Grid{size: size}
}

// FromRows builds a grid from row-major values; 0 or negative means empty.
func FromRows(rows [][]int) (Grid, error) {
	size := len(rows)
	if size < core.MinSize || size > core.MaxSize {
		return Grid{}, fmt.Errorf("grid: invalid size %d", size)
	}
	g := Grid{size: size}
	for y, row := range rows {
		if len(row) != size {
			return Grid{}, fmt.Errorf("grid: row %d has %d cells, want %d", y, len(row), size)
		}
		for x, v := range row {
			if v <= 0 {
				continue
			}
			if !core.IsPowerOfTwo(v) {
				return Grid{}, fmt.Errorf("%w: %d at %v", ErrBadTile, v, core.Loc(x, y))
			}
			g.cells[y*size+x] = v
		}
	}
	return g, nil
}

// Parse reads a grid written as rows separated by '/' or newlines, cells by
// spaces or commas. Empty cells are written as 0, '.' or '-'.
func Parse(s string) (Grid, error) {
	lines := strings.FieldsFunc(s, func(r rune) bool { return r == '/' || r == '\n' || r == ';' })
	rows := make([][]int, 0, len(lines))
	for _, line := range lines {
		fields := strings.FieldsFunc(line, func(r rune) bool { return r == ' ' || r == ',' || r == '\t' })
		if len(fields) == 0 {
			continue
		}
		row := make([]int, len(fields))
		for i, f := range fields {
			if f == "." || f == "-" {
				continue
			}
			v, err := strconv.Atoi(f)
			if err != nil {
				return Grid{}, fmt.Errorf("grid: bad cell %q: %w", f, err)
			}
			row[i] = v
		}
		rows = append(rows, row)
	}
	return FromRows(rows)
}

// Size returns the grid dimension.
func (g Grid) Size() int {
	return g.size
}

// At returns the value at loc, or core.Empty for locations outside the grid.
func (g Grid) At(loc core.Location) int {
	if !loc.In(g.size) {
		return core.Empty
	}
	return g.cells[loc.Y*g.size+loc.X]
}

// Set writes v at loc, overwriting whatever was there.
func (g *Grid) Set(loc core.Location, v int) error {
	if !loc.In(g.size) {
		return fmt.Errorf("%w: %v", ErrOutOfRange, loc)
	}
	if v < 0 {
		v = core.Empty
	}
	g.cells[loc.Y*g.size+loc.X] = v
	return nil
}

// Place puts a new tile on an empty location.
func (g *Grid) Place(loc core.Location, v int) error {
	if !loc.In(g.size) {
		return fmt.Errorf("%w: %v", ErrOutOfRange, loc)
	}
	if !core.IsPowerOfTwo(v) {
		return fmt.Errorf("%w: %d", ErrBadTile, v)
	}
	idx := loc.Y*g.size + loc.X
	if g.cells[idx] != core.Empty {
		return fmt.Errorf("%w: %v holds %d", ErrOccupied, loc, g.cells[idx])
	}
	g.cells[idx] = v
	return nil
}

// FreeLocations returns all empty locations in row-major order.
func (g Grid) FreeLocations() []core.Location {
	var free []core.Location
	for y := range g.size {
		for x := range g.size {
			if g.cells[y*g.size+x] == core.Empty {
				free = append(free, core.Loc(x, y))
			}
		}
	}
	return free
}

// HasEmptyCell returns true if there's at least one empty cell.
func (g Grid) HasEmptyCell() bool {
	for i := range g.size * g.size {
		if g.cells[i] == core.Empty {
			return true
		}
	}
	return false
}

// HasPossibleMerge returns true if any two adjacent tiles are equal.
func (g Grid) HasPossibleMerge() bool {
	n := g.size
	for y := range n {
		for x := range n {
			val := g.cells[y*n+x]
			if val == core.Empty {
				continue
			}
			if x < n-1 && g.cells[y*n+x+1] == val {
				return true
			}
			if y < n-1 && g.cells[(y+1)*n+x] == val {
				return true
			}
		}
	}
	return false
}

// CanMove returns true if any move is possible.
// A grid that cannot move is game over.
func (g Grid) CanMove() bool {
	return g.HasEmptyCell() || g.HasPossibleMerge()
}

// Count returns the number of tiles on the grid.
func (g Grid) Count() int {
	n := 0
	for i := range g.size * g.size {
		if g.cells[i] != core.Empty {
			n++
		}
	}
	return n
}

// MaxTile returns the maximum tile value on the grid.
func (g Grid) MaxTile() int {
	maxVal := 0
	for i := range g.size * g.size {
		if g.cells[i] > maxVal {
			maxVal = g.cells[i]
		}
	}
	return maxVal
}

// Rows returns the grid as row-major values.
func (g Grid) Rows() [][]int {
	rows := make([][]int, g.size)
	for y := range g.size {
		rows[y] = make([]int, g.size)
		copy(rows[y], g.cells[y*g.size:(y+1)*g.size])
	}
	return rows
}

// String renders the grid as tab-separated rows with empty cells as 0.
func (g Grid) String() string {
	var b strings.Builder
	for y := range g.size {
		for x := range g.size {
			b.WriteByte('\t')
			b.WriteString(strconv.Itoa(g.cells[y*g.size+x]))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
