package autoplay

import (
	"context"
	"fmt"
	"runtime"
	"slices"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/auto2048/internal/game"
	"github.com/vovakirdan/auto2048/internal/strategy"
)

// Spec describes a benchmark: Games independent games, each with its own
// board and selector, played by up to Workers goroutines.
type Spec struct {
	Games    int
	Workers  int // 0 means runtime.NumCPU()
	Seed     int64
	MaxMoves int
	Board    game.Options
	Player   strategy.Options
	Logger   *log.Logger // optional
}

// Result is the summary of one benchmark game.
type Result struct {
	Game int
	Seed int64
	Summary
}

// Bench plays spec.Games games concurrently. Game i uses seed spec.Seed+i
// for both the board and the selector, so results are reproducible
// regardless of scheduling. Results are ordered by game index.
func Bench(ctx context.Context, spec Spec) ([]Result, error) {
	if spec.Games <= 0 {
		return nil, fmt.Errorf("autoplay: bench needs at least one game, got %d", spec.Games)
	}
	workers := spec.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]Result, spec.Games)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range spec.Games {
		g.Go(func() error {
			seed := spec.Seed + int64(i)

			boardOpts := spec.Board
			boardOpts.Seed = seed
			board, err := game.New(boardOpts)
			if err != nil {
				return fmt.Errorf("autoplay: game %d: %w", i, err)
			}

			playerOpts := spec.Player
			playerOpts.Seed = seed
			playerOpts.Logger = nil // per-move search logs would interleave
			sel, err := strategy.New(playerOpts)
			if err != nil {
				return fmt.Errorf("autoplay: game %d: %w", i, err)
			}

			sum, err := Run(ctx, board, sel, Options{MaxMoves: spec.MaxMoves})
			if err != nil {
				return fmt.Errorf("autoplay: game %d: %w", i, err)
			}
			results[i] = Result{Game: i, Seed: seed, Summary: sum}

			if spec.Logger != nil {
				spec.Logger.Info("bench game done", "game", i, "seed", seed, "score", sum.Score, "max_tile", sum.MaxTile)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Aggregate summarises a set of games.
type Aggregate struct {
	Games     int
	MeanScore float64
	BestScore int
	BestTile  int
	Wins      int
	MeanMoves float64
	Tiles     map[int]int // max tile -> number of games that ended with it
}

// WinRate returns the fraction of games won.
func (a Aggregate) WinRate() float64 {
	if a.Games == 0 {
		return 0
	}
	return float64(a.Wins) / float64(a.Games)
}

// SortedTiles returns the max tiles seen, largest first.
func (a Aggregate) SortedTiles() []int {
	tiles := make([]int, 0, len(a.Tiles))
	for t := range a.Tiles {
		tiles = append(tiles, t)
	}
	slices.Sort(tiles)
	slices.Reverse(tiles)
	return tiles
}

// Stats aggregates game results.
func Stats(results []Result) Aggregate {
	agg := Aggregate{Games: len(results), Tiles: make(map[int]int)}
	if len(results) == 0 {
		return agg
	}

	totalScore, totalMoves := 0, 0
	for _, r := range results {
		totalScore += r.Score
		totalMoves += r.Moves
		agg.BestScore = max(agg.BestScore, r.Score)
		agg.BestTile = max(agg.BestTile, r.MaxTile)
		agg.Tiles[r.MaxTile]++
		if r.Won {
			agg.Wins++
		}
	}
	agg.MeanScore = float64(totalScore) / float64(len(results))
	agg.MeanMoves = float64(totalMoves) / float64(len(results))
	return agg
}
