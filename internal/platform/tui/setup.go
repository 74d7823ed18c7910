package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/auto2048/internal/core"
	"github.com/vovakirdan/auto2048/internal/strategy"
)

// Selection holds the choices made on the setup screen.
type Selection struct {
	Style strategy.Style
	Depth int
	Size  int
}

// setup screen rows
const (
	rowStyle = iota
	rowDepth
	rowSize
	rowStart
	rowScores
	rowCount
)

var setupStyles = []strategy.Style{strategy.StyleMinimax, strategy.StyleBlind, strategy.StyleRandom}

// SetupModel lets users pick the strategy, search depth and grid size
// before a game starts.
type SetupModel struct {
	cursor    int
	selection Selection
	keys      MenuKeyMap
	help      help.Model
	width     int
	height    int
	choosing  bool
	scores    bool
	quitting  bool
}

// NewSetupModel creates a setup model preselecting sel.
func NewSetupModel(sel Selection, width, height int) SetupModel {
	if sel.Style == 0 {
		sel.Style = strategy.DefaultStyle
	}
	sel.Depth = min(max(sel.Depth, core.MinDepth), core.MaxDepth)
	if sel.Size < core.MinSize || sel.Size > core.MaxSize {
		sel.Size = core.DefaultSize
	}
	return SetupModel{
		cursor:    rowStart,
		selection: sel,
		keys:      DefaultMenuKeyMap(),
		help:      help.New(),
		width:     width,
		height:    height,
		choosing:  true,
	}
}

// Init initializes the model.
func (m SetupModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m SetupModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Back):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < rowCount-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Left):
		m.adjust(-1)
	case key.Matches(msg, m.keys.Right):
		m.adjust(1)
	case key.Matches(msg, m.keys.Select):
		switch m.cursor {
		case rowStart:
			m.choosing = false
			return m, tea.Quit
		case rowScores:
			m.scores = true
			return m, tea.Quit
		default:
			m.adjust(1)
		}
	}
	return m, nil
}

// adjust steps the value on the current row by delta, wrapping around.
func (m *SetupModel) adjust(delta int) {
	switch m.cursor {
	case rowStyle:
		i := 0
		for j, s := range setupStyles {
			if s == m.selection.Style {
				i = j
			}
		}
		i = (i + delta + len(setupStyles)) % len(setupStyles)
		m.selection.Style = setupStyles[i]
	case rowDepth:
		m.selection.Depth = wrap(m.selection.Depth+delta, core.MinDepth, core.MaxDepth)
	case rowSize:
		m.selection.Size = wrap(m.selection.Size+delta, core.MinSize, core.MaxSize)
	}
}

func wrap(v, lo, hi int) int {
	switch {
	case v < lo:
		return hi
	case v > hi:
		return lo
	}
	return v
}

// View renders the setup screen.
func (m SetupModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("2 0 4 8"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Choose a player:", m.width))
	b.WriteString("\n\n")

	depth := fmt.Sprintf("%d", m.selection.Depth)
	if m.selection.Style != strategy.StyleMinimax {
		depth += " (minimax only)"
	}
	rows := []string{
		fmt.Sprintf("Strategy:  < %s >", m.selection.Style),
		fmt.Sprintf("Depth:     < %s >", depth),
		fmt.Sprintf("Grid:      < %dx%d >", m.selection.Size, m.selection.Size),
		"Start",
		"High Scores",
	}

	for i, row := range rows {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+row, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(helpStyle.Render(m.help.View(m.keys)), m.width))

	return b.String()
}

// Selected returns the selection, or nil if still choosing.
func (m SetupModel) Selected() *Selection {
	if m.choosing {
		return nil
	}
	sel := m.selection
	return &sel
}

// WantsScores returns true if the user asked for the scoreboard.
func (m SetupModel) WantsScores() bool {
	return m.scores
}

// IsQuitting returns true if user wants to quit.
func (m SetupModel) IsQuitting() bool {
	return m.quitting
}
