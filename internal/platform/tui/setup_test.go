package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/auto2048/internal/core"
	"github.com/vovakirdan/auto2048/internal/strategy"
)

func pressSetup(t *testing.T, m SetupModel, msgs ...tea.KeyMsg) SetupModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		sm, ok := next.(SetupModel)
		if !ok {
			t.Fatalf("Update returned %T, want SetupModel", next)
		}
		m = sm
	}
	return m
}

var (
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
)

func TestNewSetupModelClampsSelection(t *testing.T) {
	m := NewSetupModel(Selection{Depth: 99, Size: 1}, 80, 24)
	want := Selection{Style: strategy.DefaultStyle, Depth: core.MaxDepth, Size: core.DefaultSize}
	if m.selection != want {
		t.Errorf("selection = %+v, want %+v", m.selection, want)
	}
	if m.Selected() != nil {
		t.Error("Selected() != nil before start")
	}
}

func TestSetupAdjustsAndStarts(t *testing.T) {
	m := NewSetupModel(Selection{Style: strategy.StyleMinimax, Depth: core.MaxDepth, Size: core.MaxSize}, 80, 24)

	// cursor starts on Start: up to Size, Depth, Style
	m = pressSetup(t, m,
		keyUp, keyRight, // size wraps to the minimum
		keyUp, keyRight, // depth wraps to the minimum
		keyUp, keyLeft, // style steps back and wraps
		keyDown, keyDown, keyDown, keyEnter,
	)

	sel := m.Selected()
	if sel == nil {
		t.Fatal("Selected() = nil after start")
	}
	want := Selection{Style: strategy.StyleRandom, Depth: core.MinDepth, Size: core.MinSize}
	if *sel != want {
		t.Errorf("Selected() = %+v, want %+v", *sel, want)
	}
}

func TestSetupScoresAndQuit(t *testing.T) {
	m := NewSetupModel(Selection{}, 80, 24)

	scores := pressSetup(t, m, keyDown, keyEnter)
	if !scores.WantsScores() || scores.Selected() != nil {
		t.Error("High Scores row did not request the scoreboard")
	}

	quit := pressSetup(t, m, runes("q"))
	if !quit.IsQuitting() {
		t.Error("q did not quit")
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		v, lo, hi, want int
	}{
		{3, 1, 7, 3},
		{0, 1, 7, 7},
		{8, 1, 7, 1},
	}
	for _, tt := range tests {
		if got := wrap(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("wrap(%d, %d, %d) = %d, want %d", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}
