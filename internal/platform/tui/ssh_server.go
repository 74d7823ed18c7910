package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/auto2048/internal/config"
	"github.com/vovakirdan/auto2048/internal/game"
	"github.com/vovakirdan/auto2048/internal/storage"
	"github.com/vovakirdan/auto2048/internal/strategy"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.auto2048/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Game holds the rules and player settings every session starts from.
	Game config.Config
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
		Game:        config.Default(),
	}
}

// SSHServer wraps a Wish SSH server hosting one game per session.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server. store may be nil, which disables
// scores and saved sessions.
func NewSSHServer(cfg SSHServerConfig, store *storage.Store, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "auto2048-ssh",
		})
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", err)
		}
		hostKeyPath = filepath.Join(home, ".auto2048", "host_key")
	}

	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", err)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	model := NewSessionModel(SessionOptions{
		Config: s.config.Game,
		Store:  s.store,
		User:   sshSession.User(),
		Seed:   time.Now().UnixNano(),
		Width:  pty.Window.Width,
		Height: pty.Window.Height,
		Logger: s.logger.With("user", sshSession.User()),
	})

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server. The store is owned by the caller.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// SessionOptions configures a SessionModel.
type SessionOptions struct {
	Config  config.Config
	Store   *storage.Store
	User    string
	Session string // saved session name, "ssh-<User>" when empty
	Seed    int64
	Width   int
	Height  int
	Logger  *log.Logger
}

// sessionScreen is the screen a SessionModel shows.
type sessionScreen int

const (
	screenSetup sessionScreen = iota
	screenGame
	screenScores
)

// SessionModel manages the full flow of one player:
// setup -> game -> setup, with the scoreboard reachable from setup.
// It is the top-level model of SSH sessions and of the local play command.
type SessionModel struct {
	opts     SessionOptions
	games    int // games started, offsets the seed
	screen   sessionScreen
	setup    SetupModel
	game     Model
	scores   ScoreboardModel
	status   string
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(opts SessionOptions) SessionModel {
	if opts.Session == "" {
		opts.Session = "ssh-" + opts.User
	}
	return SessionModel{
		opts:  opts,
		setup: NewSetupModel(opts.selection(), opts.Width, opts.Height),
	}
}

func (o SessionOptions) selection() Selection {
	return Selection{
		Style: o.Config.Player.Style,
		Depth: o.Config.Player.Depth,
		Size:  o.Config.Grid.Size,
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.setup.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.opts.Width = wsm.Width
		m.opts.Height = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	}
	return m.updateSetup(msg)
}

// updateSetup handles updates on the setup screen. The screen quits its
// own program when done, so its commands are dropped on transitions.
func (m SessionModel) updateSetup(msg tea.Msg) (tea.Model, tea.Cmd) {
	newSetup, cmd := m.setup.Update(msg)
	if setup, ok := newSetup.(SetupModel); ok {
		m.setup = setup
	}

	if m.setup.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.setup.WantsScores() {
		m.scores = NewScoreboardModel(m.opts.Store, m.setup.selection.Size, m.opts.Width, m.opts.Height)
		m.screen = screenScores
		return m, nil
	}

	if sel := m.setup.Selected(); sel != nil {
		gm, err := m.newGame(*sel)
		if err != nil {
			m.status = err.Error()
			m.setup = NewSetupModel(*sel, m.opts.Width, m.opts.Height)
			return m, nil
		}
		m.game = gm
		m.status = ""
		m.screen = screenGame
		return m, m.game.Init()
	}

	return m, cmd
}

// newGame builds a board and a player from the session config and sel.
func (m *SessionModel) newGame(sel Selection) (Model, error) {
	cfg := m.opts.Config
	cfg.Grid.Size = sel.Size
	cfg.Player.Style = sel.Style
	cfg.Player.Depth = sel.Depth

	seed := m.opts.Seed + int64(m.games)
	m.games++

	board, err := game.New(cfg.BoardOptions(seed))
	if err != nil {
		return Model{}, err
	}
	player := cfg.PlayerOptions(seed)
	player.Logger = m.opts.Logger
	chooser, err := strategy.New(player)
	if err != nil {
		return Model{}, err
	}

	gm := NewModel(Options{
		Board:   board,
		Chooser: chooser,
		Store:   m.opts.Store,
		GameID:  cfg.GameID(),
		Session: m.opts.Session,
		MoveGap: cfg.Autoplay.MoveGap,
		Logger:  m.opts.Logger,
	})
	gm.width = m.opts.Width
	gm.height = m.opts.Height
	return gm, nil
}

// updateGame handles updates on the game screen.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gm, ok := newModel.(Model); ok {
		m.game = gm
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		m.screen = screenSetup
		m.setup = NewSetupModel(m.setup.selection, m.opts.Width, m.opts.Height)
		return m, m.setup.Init()
	}

	return m, cmd
}

// updateScores handles updates on the scoreboard.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scores.Update(msg)
	if sm, ok := newModel.(ScoreboardModel); ok {
		m.scores = sm
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.scores.IsGoingBack() {
		m.screen = screenSetup
		m.setup = NewSetupModel(m.setup.selection, m.opts.Width, m.opts.Height)
		return m, nil
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scores.View()
	}

	if m.status != "" {
		return m.setup.View() + "\n" + centerText(statusStyle.Render(m.status), m.opts.Width)
	}
	return m.setup.View()
}

// RunSession runs a full session on the local terminal.
func RunSession(opts SessionOptions) error {
	p := tea.NewProgram(
		NewSessionModel(opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
