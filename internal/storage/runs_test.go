package storage

import (
	"testing"
	"time"
)

func TestStoreRuns(t *testing.T) {
	store := openStore(t)

	runs := []RunRecord{
		{GameID: "2048-4", Style: "minimax", Depth: 3, Seed: 1, Score: 20000, MaxTile: 2048, Moves: 900, Won: true, Duration: 1500 * time.Millisecond},
		{GameID: "2048-4", Style: "minimax", Depth: 3, Seed: 2, Score: 10000, MaxTile: 1024, Moves: 600},
		{GameID: "2048-4", Style: "random", Seed: 3, Score: 800, MaxTile: 128, Moves: 120},
		{GameID: "2048-3", Style: "blind", Seed: 4, Score: 300, MaxTile: 64, Moves: 80},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	recent, err := store.RecentRuns("2048-4", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("RecentRuns() returned %d runs, want 3", len(recent))
	}
	// Newest first
	if recent[0].Style != "random" || recent[2].Seed != 1 {
		t.Errorf("RecentRuns() order = %+v", recent)
	}
	if !recent[2].Won || recent[2].Duration != 1500*time.Millisecond {
		t.Errorf("first run did not round-trip: %+v", recent[2])
	}

	stats, err := store.RunStats("2048-4")
	if err != nil {
		t.Fatalf("RunStats() failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("RunStats() = %+v, want 2 styles", stats)
	}
	mm := stats[0]
	if mm.Style != "minimax" || mm.Runs != 2 || mm.AvgScore != 15000 || mm.BestTile != 2048 || mm.Wins != 1 {
		t.Errorf("minimax stats = %+v", mm)
	}
}
