// Package search picks moves with a depth-bounded lookahead that assumes
// every new tile lands on the worst free cell.
package search

import (
	"math"
	"time"

	"github.com/vovakirdan/auto2048/internal/core"
	"github.com/vovakirdan/auto2048/internal/eval"
	"github.com/vovakirdan/auto2048/internal/grid"
)

// DefaultDecay discounts deeper plies.
const DefaultDecay = 0.9

// pessimisticTile is the only tile value the lookahead inserts.
const pessimisticTile = 2

// Result is the direction chosen by a search and its backed-up score.
type Result struct {
	Direction core.Direction
	Score     float64
}

// NoMove is returned when no direction changes the grid.
var NoMove = Result{Direction: core.Up, Score: -1}

// Found reports whether the search found a legal move. Backed-up scores
// may be negative, so the sentinel is recognised by value.
func (r Result) Found() bool {
	return r != NoMove
}

// BestMove searches depthRemaining plies below g and returns the best
// direction. Ply k (counted from 1 at the root) adds its subtree score
// scaled by decay^(maxDepth-depthRemaining+1). Ties go to the first
// direction in core.Directions order.
func BestMove(ev eval.Evaluator, g grid.Grid, depthRemaining, maxDepth int, decay float64) Result {
	var nodes int
	return bestMove(ev, g, depthRemaining, maxDepth, decay, &nodes)
}

func bestMove(ev eval.Evaluator, g grid.Grid, depthRemaining, maxDepth int, decay float64, nodes *int) Result {
	best := NoMove
	for _, d := range core.Directions {
		if !g.Valid(d) {
			continue
		}
		candidate, _ := g.Moved(d)

		score := ev.Evaluate(candidate)
		*nodes++
		if depthRemaining > 0 {
			if loc, ok := worstPlacement(ev, candidate, nodes); ok {
				// loc came from FreeLocations, so Place cannot fail.
				_ = candidate.Place(loc, pessimisticTile)
			}
			sub := bestMove(ev, candidate, depthRemaining-1, maxDepth, decay, nodes)
			score += sub.Score * math.Pow(decay, float64(maxDepth-depthRemaining+1))
		}

		if best == NoMove || score > best.Score {
			best = Result{Direction: d, Score: score}
		}
	}
	return best
}

// worstPlacement returns the free location where a new 2 tile scores lowest.
// The first minimum in row-major order wins.
func worstPlacement(ev eval.Evaluator, g grid.Grid, nodes *int) (core.Location, bool) {
	var (
		worst    core.Location
		found    bool
		minScore = math.MaxFloat64
	)
	for _, loc := range g.FreeLocations() {
		trial := g
		_ = trial.Place(loc, pessimisticTile)
		s := ev.Evaluate(trial)
		*nodes++
		if s < minScore {
			minScore = s
			worst = loc
			found = true
		}
	}
	return worst, found
}

// Stats describes the cost of one search.
type Stats struct {
	Nodes   int // evaluator calls
	Elapsed time.Duration
}

// Searcher runs BestMove at a fixed depth.
type Searcher struct {
	Evaluator eval.Evaluator
	Depth     int
	Decay     float64
}

// NewSearcher returns a searcher using the snake evaluator with the given
// base. Depth is clamped to core.MinDepth..core.MaxDepth.
func NewSearcher(depth int, evalBase, decay float64) *Searcher {
	if decay <= 0 {
		decay = DefaultDecay
	}
	return &Searcher{
		Evaluator: eval.NewSnake(evalBase),
		Depth:     max(core.MinDepth, min(depth, core.MaxDepth)),
		Decay:     decay,
	}
}

// Search returns the best move for g along with search statistics.
// The grid is passed by value, so the caller's copy is never modified.
func (s *Searcher) Search(g grid.Grid) (Result, Stats) {
	start := time.Now()
	var st Stats
	res := bestMove(s.Evaluator, g, s.Depth, s.Depth, s.Decay, &st.Nodes)
	st.Elapsed = time.Since(start)
	return res, st
}
