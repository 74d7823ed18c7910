// Package autoplay drives a board with a strategy until the game ends.
package autoplay

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/auto2048/internal/core"
	"github.com/vovakirdan/auto2048/internal/game"
	"github.com/vovakirdan/auto2048/internal/grid"
	"github.com/vovakirdan/auto2048/internal/strategy"
)

// Options configures Run.
type Options struct {
	MaxMoves int           // stop after this many moves; 0 means no limit
	Delay    time.Duration // pause between moves
	OnMove   func(Step)    // called after every committed move
	Logger   *log.Logger   // optional
}

// Step describes one committed move.
type Step struct {
	Dir    core.Direction
	Result grid.MoveResult
	Status game.Status
}

// Summary is the outcome of one game.
type Summary struct {
	Score   int
	MaxTile int
	Moves   int
	Won     bool
	Over    bool
	Elapsed time.Duration
}

// Run plays board with chooser until the game ends, MaxMoves is reached or
// ctx is cancelled. Cancellation is checked between moves; a search in
// flight always completes. On cancellation the summary so far is returned
// together with ctx.Err().
func Run(ctx context.Context, board *game.Board, chooser strategy.Chooser, opts Options) (Summary, error) {
	start := time.Now()
	moves := 0

	summarize := func() Summary {
		st := board.Status()
		return Summary{
			Score:   st.Score,
			MaxTile: st.MaxTile,
			Moves:   moves,
			Won:     st.Won,
			Over:    st.Over,
			Elapsed: time.Since(start),
		}
	}

	for opts.MaxMoves <= 0 || moves < opts.MaxMoves {
		if err := ctx.Err(); err != nil {
			return summarize(), err
		}

		dir, res, err := step(board, chooser)
		if errors.Is(err, game.ErrGameOver) || errors.Is(err, strategy.ErrNoMoves) {
			break
		}
		if err != nil {
			return summarize(), fmt.Errorf("autoplay: move %d: %w", moves+1, err)
		}
		moves++

		st := board.Status()
		if opts.Logger != nil {
			opts.Logger.Debug("move", "n", moves, "dir", dir, "points", res.Points, "score", st.Score)
		}
		if opts.OnMove != nil {
			opts.OnMove(Step{Dir: dir, Result: res, Status: st})
		}

		if opts.Delay > 0 {
			select {
			case <-ctx.Done():
				return summarize(), ctx.Err()
			case <-time.After(opts.Delay):
			}
		}
	}

	sum := summarize()
	if opts.Logger != nil {
		opts.Logger.Info("game finished",
			"score", sum.Score,
			"max_tile", sum.MaxTile,
			"moves", sum.Moves,
			"won", sum.Won,
			"elapsed", sum.Elapsed.Round(time.Millisecond),
		)
	}
	return sum, nil
}

// step reserves the board, asks chooser for a direction on a snapshot and
// commits it.
func step(board *game.Board, chooser strategy.Chooser) (core.Direction, grid.MoveResult, error) {
	if err := board.BeginMove(); err != nil {
		return core.Up, grid.MoveResult{}, err
	}

	dir, err := chooser.ChooseDirection(board.Snapshot())
	if err != nil {
		board.CancelMove()
		return core.Up, grid.MoveResult{}, err
	}

	res, err := board.CommitMove(dir)
	if err != nil {
		return dir, res, err
	}
	if !res.Changed {
		return dir, res, fmt.Errorf("%w: %v left the grid unchanged", strategy.ErrUnreachableState, dir)
	}
	return dir, res, nil
}
