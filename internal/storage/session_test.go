package storage

import (
	"errors"
	"testing"

	"github.com/vovakirdan/auto2048/internal/core"
	"github.com/vovakirdan/auto2048/internal/grid"
)

func sampleGrid(t *testing.T) grid.Grid {
	t.Helper()
	g, err := grid.FromRows([][]int{
		{2, 0, 0, 4},
		{0, 16, 0, 0},
		{0, 0, 128, 0},
		{2048, 0, 0, 8},
	})
	if err != nil {
		t.Fatalf("FromRows: %v", err)
	}
	return g
}

func TestEncodeSession(t *testing.T) {
	kv := EncodeSession(sampleGrid(t), 4242)

	if len(kv) != 17 {
		t.Errorf("EncodeSession has %d entries, want 16 cells + score", len(kv))
	}
	tests := map[string]string{
		"Location_0_0": "2",
		"Location_1_0": "0",
		"Location_3_0": "4",
		"Location_0_3": "2048",
		"score":        "4242",
	}
	for k, want := range tests {
		if got := kv[k]; got != want {
			t.Errorf("kv[%q] = %q, want %q", k, got, want)
		}
	}
}

func TestDecodeSessionRoundTrip(t *testing.T) {
	g := sampleGrid(t)

	got, score, err := DecodeSession(4, EncodeSession(g, 99))
	if err != nil {
		t.Fatalf("DecodeSession: %v", err)
	}
	if got != g || score != 99 {
		t.Errorf("DecodeSession = \n%v%d, want \n%v99", got, score, g)
	}
}

func TestDecodeSessionErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(map[string]string)
	}{
		{"missing cell", func(kv map[string]string) { delete(kv, "Location_2_2") }},
		{"missing score", func(kv map[string]string) { delete(kv, "score") }},
		{"bad number", func(kv map[string]string) { kv["Location_0_0"] = "two" }},
		{"not a tile", func(kv map[string]string) { kv["Location_0_0"] = "6" }},
		{"cell outside grid", func(kv map[string]string) { kv["Location_4_0"] = "2" }},
		{"unknown key", func(kv map[string]string) { kv["moves"] = "12" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := EncodeSession(sampleGrid(t), 1)
			tt.mutate(kv)
			if _, _, err := DecodeSession(4, kv); err == nil {
				t.Error("DecodeSession succeeded")
			}
		})
	}
}

func TestStoreSessionRoundTrip(t *testing.T) {
	store := openStore(t)
	g := sampleGrid(t)

	if err := store.SaveSession("default", g, 3000); err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}

	// Saving again replaces the old entries.
	g2 := g
	if err := g2.Place(core.Loc(1, 0), 2); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveSession("default", g2, 3100); err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}

	got, score, err := store.RestoreSession("default", 4)
	if err != nil {
		t.Fatalf("RestoreSession() failed: %v", err)
	}
	if got != g2 || score != 3100 {
		t.Errorf("RestoreSession = \n%v%d, want \n%v3100", got, score, g2)
	}
}

func TestStoreRestoreOtherSize(t *testing.T) {
	store := openStore(t)

	big := grid.New(5)
	for _, p := range []struct {
		loc core.Location
		v   int
	}{{core.Loc(0, 0), 2}, {core.Loc(4, 4), 2048}} {
		if err := big.Place(p.loc, p.v); err != nil {
			t.Fatal(err)
		}
	}
	if err := store.SaveSession("resize", big, 100); err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}

	if _, _, err := store.RestoreSession("resize", 4); !errors.Is(err, ErrSessionSize) {
		t.Errorf("RestoreSession(4) = %v, want ErrSessionSize", err)
	}
	if _, _, err := store.RestoreSession("resize", 6); err == nil {
		t.Error("RestoreSession(6) succeeded on a 5x5 session")
	}

	got, score, err := store.RestoreSession("resize", 5)
	if err != nil {
		t.Fatalf("RestoreSession(5) failed: %v", err)
	}
	if got != big || score != 100 {
		t.Errorf("RestoreSession(5) = \n%v%d, want \n%v100", got, score, big)
	}
}

func TestStoreRestoreMissingSession(t *testing.T) {
	store := openStore(t)

	if _, _, err := store.RestoreSession("nothing", 4); !errors.Is(err, ErrNoSession) {
		t.Errorf("RestoreSession() = %v, want ErrNoSession", err)
	}

	if err := store.SaveSession("gone", sampleGrid(t), 1); err != nil {
		t.Fatal(err)
	}
	if err := store.DeleteSession("gone"); err != nil {
		t.Fatalf("DeleteSession() failed: %v", err)
	}
	if _, _, err := store.RestoreSession("gone", 4); !errors.Is(err, ErrNoSession) {
		t.Errorf("RestoreSession() after delete = %v, want ErrNoSession", err)
	}
}
