package autoplay

import (
	"context"
	"testing"

	"github.com/vovakirdan/auto2048/internal/game"
	"github.com/vovakirdan/auto2048/internal/strategy"
)

func TestBenchDeterministic(t *testing.T) {
	spec := Spec{
		Games:   6,
		Workers: 3,
		Seed:    100,
		Board:   game.Options{Size: 4},
		Player:  strategy.Options{Style: strategy.StyleRandom},
	}

	first, err := Bench(context.Background(), spec)
	if err != nil {
		t.Fatalf("Bench: %v", err)
	}
	second, err := Bench(context.Background(), spec)
	if err != nil {
		t.Fatalf("Bench: %v", err)
	}

	if len(first) != spec.Games {
		t.Fatalf("Bench returned %d results, want %d", len(first), spec.Games)
	}
	for i := range first {
		a, b := first[i], second[i]
		if a.Game != i || a.Seed != spec.Seed+int64(i) {
			t.Errorf("result %d labelled game %d seed %d", i, a.Game, a.Seed)
		}
		if a.Score != b.Score || a.Moves != b.Moves || a.MaxTile != b.MaxTile {
			t.Errorf("game %d differs between runs: %+v vs %+v", i, a.Summary, b.Summary)
		}
		if !a.Over {
			t.Errorf("game %d did not finish: %+v", i, a.Summary)
		}
	}
}

func TestBenchRejectsBadSpec(t *testing.T) {
	if _, err := Bench(context.Background(), Spec{Games: 0}); err == nil {
		t.Error("Bench with zero games succeeded")
	}
	bad := Spec{Games: 2, Player: strategy.Options{Style: strategy.StyleMinimax, Depth: 99}}
	if _, err := Bench(context.Background(), bad); err == nil {
		t.Error("Bench with depth 99 succeeded")
	}
}

func TestStats(t *testing.T) {
	results := []Result{
		{Summary: Summary{Score: 100, MaxTile: 64, Moves: 10}},
		{Summary: Summary{Score: 300, MaxTile: 256, Moves: 30, Won: true}},
		{Summary: Summary{Score: 200, MaxTile: 64, Moves: 20}},
	}

	agg := Stats(results)

	if agg.Games != 3 || agg.MeanScore != 200 || agg.BestScore != 300 || agg.BestTile != 256 {
		t.Errorf("Stats = %+v", agg)
	}
	if agg.MeanMoves != 20 || agg.Wins != 1 {
		t.Errorf("Stats moves/wins = %v/%d", agg.MeanMoves, agg.Wins)
	}
	if agg.Tiles[64] != 2 || agg.Tiles[256] != 1 {
		t.Errorf("Tiles = %v", agg.Tiles)
	}
	if tiles := agg.SortedTiles(); len(tiles) != 2 || tiles[0] != 256 {
		t.Errorf("SortedTiles() = %v", tiles)
	}
	if r := agg.WinRate(); r != 1.0/3.0 {
		t.Errorf("WinRate() = %v, want 1/3", r)
	}

	if empty := Stats(nil); empty.Games != 0 || empty.WinRate() != 0 {
		t.Errorf("Stats(nil) = %+v", empty)
	}
}
