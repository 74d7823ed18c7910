package core

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidDirection is reported when a direction code outside Up..Left
// reaches a step that applies moves. It always indicates a programming error.
var ErrInvalidDirection = errors.New("invalid direction")

// Direction is a move direction. The numeric codes are stable:
// Up=0, Right=1, Down=2, Left=3.
type Direction int

const (
	Up Direction = iota
	Right
	Down
	Left
)

// Directions lists every direction in enumeration order.
// Search ties are broken in favour of the earlier entry.
var Directions = [4]Direction{Up, Right, Down, Left}

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool {
	return d >= Up && d <= Left
}

// DX returns the horizontal component of the unit vector.
func (d Direction) DX() int {
	switch d {
	case Right:
		return 1
	case Left:
		return -1
	default:
		return 0
	}
}

// DY returns the vertical component of the unit vector (down is positive).
func (d Direction) DY() int {
	switch d {
	case Down:
		return 1
	case Up:
		return -1
	default:
		return 0
	}
}

// Inverse returns the opposite direction.
func (d Direction) Inverse() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	default:
		return d
	}
}

// Vertical reports whether the direction moves along columns.
func (d Direction) Vertical() bool {
	return d == Up || d == Down
}

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case Up:
		return "Up"
	case Right:
		return "Right"
	case Down:
		return "Down"
	case Left:
		return "Left"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection accepts a direction name or its first letter, case-insensitive.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "u":
		return Up, nil
	case "right", "r":
		return Right, nil
	case "down", "d":
		return Down, nil
	case "left", "l":
		return Left, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}
