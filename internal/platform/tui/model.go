package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/auto2048/internal/core"
	"github.com/vovakirdan/auto2048/internal/game"
	"github.com/vovakirdan/auto2048/internal/storage"
	"github.com/vovakirdan/auto2048/internal/strategy"
)

// Options configures a game screen.
type Options struct {
	Board   *game.Board
	Chooser strategy.Chooser
	Store   *storage.Store // optional; disables scores and sessions when nil
	GameID  string         // scoreboard key
	Session string         // name used by save and load
	MoveGap time.Duration  // pause between automatic moves
	Auto    bool           // start in autoplay
	Logger  *log.Logger    // optional
}

// searchDoneMsg carries the direction chosen off the UI goroutine.
type searchDoneMsg struct {
	board *game.Board // board the search was started for
	dir   core.Direction
	err   error
	gen   int
}

// Model is the Bubble Tea model of the game screen. It reads the board
// through Snapshot and Status and changes it only through ApplyMove or a
// BeginMove/CommitMove pair.
type Model struct {
	board   *game.Board
	chooser strategy.Chooser
	store   *storage.Store
	gameID  string
	session string
	moveGap time.Duration
	logger  *log.Logger

	keys KeyMap
	help help.Model

	auto     bool // autoplay enabled
	thinking bool // the chooser is busy; cleared only by its result
	gen      int  // bumped on restart so stale search results are dropped

	status     string
	lastDir    string
	highScore  int
	scoreSaved bool

	width      int
	height     int
	quitting   bool
	backToMenu bool
}

// NewModel creates the game screen model.
func NewModel(opts Options) Model {
	h := help.New()
	h.ShowAll = false

	m := Model{
		board:   opts.Board,
		chooser: opts.Chooser,
		store:   opts.Store,
		gameID:  opts.GameID,
		session: opts.Session,
		moveGap: opts.MoveGap,
		logger:  opts.Logger,
		keys:    DefaultKeyMap(),
		help:    h,
		auto:    opts.Auto,
	}
	if m.store != nil {
		if high, err := m.store.HighScore(m.gameID); err == nil {
			m.highScore = high
		}
	}
	return m
}

// Init starts autoplay when requested.
func (m Model) Init() tea.Cmd {
	if m.auto {
		return autoTickCmd(0, m.gen)
	}
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case searchDoneMsg:
		return m.handleSearchDone(msg)

	case autoTickMsg:
		if msg.gen != m.gen || !m.auto || m.thinking || m.board.Finished() {
			return m, nil
		}
		cmd := m.startSearch()
		return m, cmd
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.backToMenu = true
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Restart):
		// A running search keeps thinking set until its stale result
		// arrives, so the chooser never runs twice at once.
		m.board.Reset()
		m.gen++
		m.auto = false
		m.scoreSaved = false
		m.lastDir = ""
		m.status = "new game"
		return m, nil

	case key.Matches(msg, m.keys.Auto):
		m.auto = !m.auto
		if !m.auto {
			m.status = "autoplay off"
			return m, nil
		}
		m.status = "autoplay on"
		if m.thinking {
			return m, nil
		}
		cmd := m.startSearch()
		return m, cmd

	case key.Matches(msg, m.keys.Hint):
		if m.thinking {
			return m, nil
		}
		cmd := m.startSearch()
		return m, cmd

	case key.Matches(msg, m.keys.Save):
		m.saveSession()
		return m, nil

	case key.Matches(msg, m.keys.Restore):
		m.restoreSession()
		return m, nil
	}

	if dir, ok := m.keys.Direction(msg); ok {
		m.applyMove(dir)
	}
	return m, nil
}

// applyMove plays a human move. Moves during a search are ignored.
func (m *Model) applyMove(dir core.Direction) {
	_, err := m.board.ApplyMove(dir)
	switch {
	case errors.Is(err, game.ErrMoveInProgress):
		m.status = "thinking..."
		return
	case errors.Is(err, game.ErrGameOver):
		return
	case err != nil:
		m.status = err.Error()
		return
	}
	m.lastDir = dir.String()
	m.status = ""
	m.checkFinished()
}

// startSearch reserves the board and runs the chooser in a command so the
// UI keeps handling input while it works.
func (m *Model) startSearch() tea.Cmd {
	if err := m.board.BeginMove(); err != nil {
		m.auto = false
		if !errors.Is(err, game.ErrGameOver) {
			m.status = err.Error()
		}
		return nil
	}
	m.thinking = true

	board := m.board
	snap := board.Snapshot()
	chooser := m.chooser
	gen := m.gen
	return func() tea.Msg {
		dir, err := chooser.ChooseDirection(snap)
		return searchDoneMsg{board: board, dir: dir, err: err, gen: gen}
	}
}

func (m Model) handleSearchDone(msg searchDoneMsg) (tea.Model, tea.Cmd) {
	if msg.board != m.board {
		// Left over from a game this screen no longer shows.
		return m, nil
	}
	m.thinking = false

	if msg.gen != m.gen {
		// The board was reset while searching; its reservation is gone.
		if m.auto && !m.board.Finished() {
			cmd := m.startSearch()
			return m, cmd
		}
		return m, nil
	}

	if msg.err != nil {
		m.board.CancelMove()
		m.auto = false
		if !errors.Is(msg.err, strategy.ErrNoMoves) {
			m.status = msg.err.Error()
			if m.logger != nil {
				m.logger.Error("strategy failed", "error", msg.err)
			}
		}
		m.checkFinished()
		return m, nil
	}

	if _, err := m.board.CommitMove(msg.dir); err != nil {
		m.auto = false
		m.status = err.Error()
		return m, nil
	}
	m.lastDir = msg.dir.String()
	m.checkFinished()

	if m.auto && !m.board.Finished() {
		return m, autoTickCmd(m.moveGap, m.gen)
	}
	return m, nil
}

// checkFinished records the score once when the game ends.
func (m *Model) checkFinished() {
	if !m.board.Finished() || m.scoreSaved {
		return
	}
	m.scoreSaved = true
	m.auto = false

	score := m.board.Score()
	if m.store != nil && score > 0 {
		if _, err := m.store.SaveScore(m.gameID, score); err != nil && m.logger != nil {
			m.logger.Warn("could not save score", "error", err)
		}
	}
	m.highScore = max(m.highScore, score)
}

func (m *Model) saveSession() {
	if m.store == nil {
		m.status = "no database: cannot save"
		return
	}
	if err := m.store.SaveSession(m.session, m.board.Snapshot(), m.board.Score()); err != nil {
		m.status = err.Error()
		return
	}
	m.status = fmt.Sprintf("saved session %q", m.session)
}

func (m *Model) restoreSession() {
	if m.store == nil {
		m.status = "no database: cannot load"
		return
	}
	g, score, err := m.store.RestoreSession(m.session, m.board.Size())
	if err != nil {
		m.status = err.Error()
		return
	}
	if err := m.board.Restore(g, score); err != nil {
		m.status = err.Error()
		return
	}
	m.scoreSaved = false
	m.status = fmt.Sprintf("loaded session %q", m.session)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	st := m.board.Status()
	var b strings.Builder

	b.WriteString(titleStyle.Render("2 0 4 8"))
	b.WriteString("\n")
	b.WriteString(hudStyle.Render(fmt.Sprintf(
		"Score %d   Best %d   Moves %d   Target %d",
		st.Score, max(m.highScore, st.Score), st.Moves, m.board.WinTarget(),
	)))
	b.WriteString("\n\n")
	b.WriteString(RenderGrid(m.board.Snapshot()))
	b.WriteString("\n")

	var line []string
	switch {
	case st.Over:
		line = append(line, "GAME OVER - press r to restart")
	case st.Won && m.board.Finished():
		line = append(line, "YOU WIN! - press r to restart")
	case st.Won:
		line = append(line, "target reached, keep going")
	}
	if m.auto {
		line = append(line, "[auto]")
	}
	if m.thinking {
		line = append(line, "thinking...")
	}
	if m.lastDir != "" {
		line = append(line, "last: "+m.lastDir)
	}
	if m.status != "" {
		line = append(line, m.status)
	}
	b.WriteString(statusStyle.Render(strings.Join(line, "  ")))
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	if m.width == 0 {
		return b.String()
	}
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, b.String())
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the setup menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}
