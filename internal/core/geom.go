// Package core provides the fundamental value types shared by the board,
// the search and the hosting layer. It has no external dependencies so the
// game logic stays pure and testable.
package core

import "fmt"

// Location addresses one cell of a square grid.
// X is the column and Y is the row; (0, 0) is the top-left corner.
type Location struct {
	X, Y int
}

// Loc creates a location from its coordinates.
func Loc(x, y int) Location {
	return Location{X: x, Y: y}
}

// Offset returns the neighbouring location one step in the given direction.
// The result may lie outside the grid; check it with In.
func (l Location) Offset(d Direction) Location {
	return Location{X: l.X + d.DX(), Y: l.Y + d.DY()}
}

// In reports whether the location lies inside a grid of the given size.
func (l Location) In(size int) bool {
	return l.X >= 0 && l.X < size && l.Y >= 0 && l.Y < size
}

// String returns the location as "(x,y)".
func (l Location) String() string {
	return fmt.Sprintf("(%d,%d)", l.X, l.Y)
}
