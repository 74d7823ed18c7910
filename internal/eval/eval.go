// Package eval scores grids for the move search.
package eval

import (
	"math"

	"github.com/vovakirdan/auto2048/internal/core"
	"github.com/vovakirdan/auto2048/internal/grid"
)

// DefaultBase is the per-step decay of the snake weights.
const DefaultBase = 0.25

// Evaluator maps a grid to a score; higher is better.
// Implementations must be pure: the same grid always scores the same.
type Evaluator interface {
	Evaluate(g grid.Grid) float64
}

// Func adapts a plain function to Evaluator.
type Func func(g grid.Grid) float64

// Evaluate calls f(g).
func (f Func) Evaluate(g grid.Grid) float64 {
	return f(g)
}

// Snake weights cells along a boustrophedon path: row 0 left to right,
// row 1 right to left, and so on. The k-th cell on the path weighs base^k,
// counting empty cells too, so large tiles score best near the top-left corner.
type Snake struct {
	base    float64
	weights [core.MaxSize + 1][]float64 // weights[size][y*size+x]
}

// NewSnake returns a snake evaluator. A base outside (0, 1) falls back to
// DefaultBase.
func NewSnake(base float64) *Snake {
	if base <= 0 || base >= 1 {
		base = DefaultBase
	}
	s := &Snake{base: base}
	for size := core.MinSize; size <= core.MaxSize; size++ {
		s.weights[size] = snakeWeights(size, base)
	}
	return s
}

// Base returns the decay base.
func (s *Snake) Base() float64 {
	return s.base
}

func snakeWeights(size int, base float64) []float64 {
	w := make([]float64, size*size)
	k := 0
	for y := range size {
		for i := range size {
			x := i
			if y%2 == 1 {
				x = size - 1 - i
			}
			w[y*size+x] = math.Pow(base, float64(k))
			k++
		}
	}
	return w
}

// Evaluate implements Evaluator.
func (s *Snake) Evaluate(g grid.Grid) float64 {
	n := g.Size()
	w := s.weights[n]
	score := 0.0
	for y := range n {
		for x := range n {
			if v := g.At(core.Loc(x, y)); v != core.Empty {
				score += float64(v) * w[y*n+x]
			}
		}
	}
	return score
}
