package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/auto2048/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play interactively",
	Long: `Start an interactive game. The setup screen picks the automatic
player, its search depth and the grid size.

Controls:
  Arrows/WASD - Move
  P           - Toggle autoplay
  N           - Let the player make one move
  Ctrl+S      - Save session
  Ctrl+L      - Load session
  R           - Restart
  Esc/B       - Back to setup
  ?           - Help
  Q/Ctrl+C    - Quit

Examples:
  auto2048 play
  auto2048 play --seed 42
  auto2048 play --config ./my-auto2048.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		exitf("play needs a terminal; use 'auto2048 run' for headless games")
	}

	cfg, err := loadConfig()
	if err != nil {
		exitf("%v", err)
	}
	logger := newLogger(cfg)

	// Logs would corrupt the alternate screen.
	logger.SetOutput(io.Discard)

	store := openStore(cfg, logger)
	if store != nil {
		defer store.Close()
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	err = tui.RunSession(tui.SessionOptions{
		Config:  cfg,
		Store:   store,
		User:    "local",
		Session: "local",
		Seed:    seed(),
		Width:   width,
		Height:  height,
		Logger:  logger,
	})
	if err != nil {
		exitf("%v", err)
	}
}
