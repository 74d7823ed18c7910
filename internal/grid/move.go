package grid

import (
	"fmt"

	"github.com/vovakirdan/auto2048/internal/core"
)

// MoveResult reports the outcome of applying a direction to a grid.
type MoveResult struct {
	Changed bool
	Points  int // sum of merged tile values, never negative
}

// line locates one row or column of the grid as seen by a move.
// Cell i of the line lies at start + i*step in the flat cell array.
type line struct {
	start, step int
}

// orientation returns the side tiles slide toward for dir and whether the
// move works on columns. Up slides toward y=0 and Left toward x=0.
func orientation(dir core.Direction) (side Side, vertical bool) {
	switch dir {
	case core.Up:
		return TowardStart, true
	case core.Down:
		return TowardEnd, true
	case core.Left:
		return TowardStart, false
	case core.Right:
		return TowardEnd, false
	default:
		panic(fmt.Errorf("%w: %d", core.ErrInvalidDirection, int(dir)))
	}
}

func (g Grid) lineAt(k int, vertical bool) line {
	if vertical {
		return line{start: k, step: g.size}
	}
	return line{start: k * g.size, step: 1}
}

func (g Grid) load(l line) Row {
	r := Row{size: g.size}
	for i := range g.size {
		r.cells[i] = g.cells[l.start+i*l.step]
	}
	return r
}

func (g *Grid) store(l line, r Row) {
	for i := range g.size {
		g.cells[l.start+i*l.step] = r.cells[i]
	}
}

// Move applies dir to the grid in place. Copy the grid first to keep the
// original. It panics with core.ErrInvalidDirection for codes outside
// Up..Left; callers validate directions before they reach the engine.
func (g *Grid) Move(dir core.Direction) MoveResult {
	side, vertical := orientation(dir)
	var res MoveResult
	for k := range g.size {
		l := g.lineAt(k, vertical)
		row := g.load(l)
		if !row.Valid(side) {
			continue
		}
		moved, points := row.Move(side)
		g.store(l, moved)
		res.Changed = true
		res.Points += points
	}
	return res
}

// Moved returns a copy of the grid with dir applied, leaving g untouched.
func (g Grid) Moved(dir core.Direction) (Grid, MoveResult) {
	res := g.Move(dir)
	return g, res
}

// Valid reports whether moving in dir would change the grid.
// Unknown directions are never valid.
func (g Grid) Valid(dir core.Direction) bool {
	if !dir.Valid() {
		return false
	}
	side, vertical := orientation(dir)
	for k := range g.size {
		if g.load(g.lineAt(k, vertical)).Valid(side) {
			return true
		}
	}
	return false
}

// ValidDirections returns the directions that would change the grid,
// in enumeration order.
func (g Grid) ValidDirections() []core.Direction {
	var dirs []core.Direction
	for _, d := range core.Directions {
		if g.Valid(d) {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// Equal reports whether both grids have the same size and tiles.
func (g Grid) Equal(other Grid) bool {
	return g == other
}
