package strategy

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/auto2048/internal/core"
	"github.com/vovakirdan/auto2048/internal/grid"
	"github.com/vovakirdan/auto2048/internal/search"
)

func gridOf(t *testing.T, rows [][]int) grid.Grid {
	t.Helper()
	g, err := grid.FromRows(rows)
	if err != nil {
		t.Fatalf("FromRows: %v", err)
	}
	return g
}

func newSelector(t *testing.T, opts Options) *Selector {
	t.Helper()
	s, err := New(opts)
	if err != nil {
		t.Fatalf("New(%+v): %v", opts, err)
	}
	return s
}

// openGrid has every direction valid.
func openGrid(t *testing.T) grid.Grid {
	t.Helper()
	return gridOf(t, [][]int{
		{0, 0, 0, 0},
		{0, 2, 0, 0},
		{0, 0, 4, 0},
		{0, 0, 0, 0},
	})
}

var stuckGrid = [][]int{
	{2, 4, 2, 4},
	{4, 2, 4, 2},
	{2, 4, 2, 4},
	{4, 2, 4, 2},
}

func TestBlindCycle(t *testing.T) {
	s := newSelector(t, Options{Style: StyleBlind})
	g := openGrid(t)

	want := []core.Direction{core.Left, core.Down, core.Right, core.Up, core.Left, core.Down}
	for i, expected := range want {
		got, err := s.ChooseDirection(g)
		if err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
		if got != expected {
			t.Errorf("call %d = %v, want %v", i, got, expected)
		}
	}
}

func TestBlindSkipsInvalid(t *testing.T) {
	s := newSelector(t, Options{Style: StyleBlind})
	// Tiles sit in the bottom-left corner: Left and Down are invalid.
	g := gridOf(t, [][]int{
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{4, 0, 0, 0},
		{2, 8, 0, 0},
	})

	got, err := s.ChooseDirection(g)
	if err != nil || got != core.Right {
		t.Fatalf("ChooseDirection = %v, %v; want Right", got, err)
	}
	// The cycle resumes after Right.
	got, err = s.ChooseDirection(openGrid(t))
	if err != nil || got != core.Up {
		t.Errorf("ChooseDirection = %v, %v; want Up", got, err)
	}
}

func TestRandomReturnsValid(t *testing.T) {
	s := newSelector(t, Options{Style: StyleRandom, Seed: 7})
	// Only Right is valid.
	g := gridOf(t, [][]int{
		{2, 0, 0, 0},
		{4, 0, 0, 0},
		{8, 0, 0, 0},
		{16, 0, 0, 0},
	})

	for i := range 20 {
		got, err := s.ChooseDirection(g)
		if err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
		if got != core.Right {
			t.Fatalf("call %d = %v, want Right", i, got)
		}
	}
}

func TestRandomDeterministicForSeed(t *testing.T) {
	a := newSelector(t, Options{Style: StyleRandom, Seed: 42})
	b := newSelector(t, Options{Style: StyleRandom, Seed: 42})
	g := openGrid(t)

	for i := range 10 {
		da, _ := a.ChooseDirection(g)
		db, _ := b.ChooseDirection(g)
		if da != db {
			t.Fatalf("call %d: %v != %v for the same seed", i, da, db)
		}
	}
}

func TestMinimaxMatchesSearch(t *testing.T) {
	s := newSelector(t, Options{Style: StyleMinimax, Depth: 2})
	g := gridOf(t, [][]int{
		{2, 2, 0, 0},
		{0, 4, 0, 0},
		{0, 0, 8, 0},
		{0, 0, 0, 2},
	})

	want, _ := search.NewSearcher(2, 0, 0).Search(g)
	got, err := s.ChooseDirection(g)
	if err != nil {
		t.Fatalf("ChooseDirection: %v", err)
	}
	if got != want.Direction {
		t.Errorf("ChooseDirection = %v, want %v", got, want.Direction)
	}
}

func TestNoMoves(t *testing.T) {
	for _, style := range []Style{StyleRandom, StyleBlind, StyleMinimax} {
		t.Run(style.String(), func(t *testing.T) {
			s := newSelector(t, Options{Style: style, Depth: 1})
			_, err := s.ChooseDirection(gridOf(t, stuckGrid))
			if !errors.Is(err, ErrNoMoves) {
				t.Errorf("ChooseDirection on stuck grid = %v, want ErrNoMoves", err)
			}
		})
	}
}

func TestNewRejectsBadOptions(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"unknown style", Options{Style: Style(9)}},
		{"depth too deep", Options{Style: StyleMinimax, Depth: core.MaxDepth + 1}},
		{"negative depth", Options{Style: StyleBlind, Depth: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.opts); err == nil {
				t.Errorf("New(%+v) succeeded", tt.opts)
			}
		})
	}
}

func TestNewDefaults(t *testing.T) {
	s := newSelector(t, Options{})
	if s.Style() != StyleMinimax || s.Depth() != core.DefaultDepth {
		t.Errorf("defaults = %v depth %d, want minimax depth %d", s.Style(), s.Depth(), core.DefaultDepth)
	}
}

func TestMinimaxLogsDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	s := newSelector(t, Options{Style: StyleMinimax, Depth: 1, Logger: logger})

	if _, err := s.ChooseDirection(openGrid(t)); err != nil {
		t.Fatalf("ChooseDirection: %v", err)
	}
	if !strings.Contains(buf.String(), "search move") {
		t.Errorf("log output %q lacks the search entry", buf.String())
	}
}

func TestParseStyle(t *testing.T) {
	tests := []struct {
		in      string
		want    Style
		wantErr bool
	}{
		{"random", StyleRandom, false},
		{"Blind", StyleBlind, false},
		{" minimax ", StyleMinimax, false},
		{"expectimax", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseStyle(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseStyle(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseStyle(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestStyleTextRoundTrip(t *testing.T) {
	for s := range styleNames {
		text, err := s.MarshalText()
		if err != nil {
			t.Fatalf("%v.MarshalText(): %v", s, err)
		}
		var back Style
		if err := back.UnmarshalText(text); err != nil || back != s {
			t.Errorf("UnmarshalText(%q) = %v, %v, want %v", text, back, err, s)
		}
	}
	if _, err := Style(0).MarshalText(); err == nil {
		t.Error("Style(0).MarshalText() succeeded")
	}
}
