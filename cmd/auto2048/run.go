package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/auto2048/internal/autoplay"
	"github.com/vovakirdan/auto2048/internal/config"
	"github.com/vovakirdan/auto2048/internal/game"
	"github.com/vovakirdan/auto2048/internal/storage"
	"github.com/vovakirdan/auto2048/internal/strategy"
)

var (
	flagStyle    string
	flagDepth    int
	flagSize     int
	flagMaxMoves int
	flagResume   string
	flagSave     string
	flagWatch    bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Play one automatic game headless",
	Long: `Let the automatic player play one game without a UI and print the
final grid. The result is stored with the autoplay statistics.

Styles:
  random   - any direction that changes the grid
  blind    - cycle left, down, right, up
  minimax  - search ahead assuming the worst tile placement

Examples:
  auto2048 run
  auto2048 run --style blind
  auto2048 run --depth 3 --size 5 --watch
  auto2048 run --resume mygame --save mygame --max-moves 100`,
	Args: cobra.NoArgs,
	Run:  runRun,
}

func init() {
	addPlayerFlags(runCmd)
	runCmd.Flags().IntVar(&flagMaxMoves, "max-moves", 0, "Stop after this many moves (0 = config)")
	runCmd.Flags().StringVar(&flagResume, "resume", "", "Start from a saved session")
	runCmd.Flags().StringVar(&flagSave, "save", "", "Save the final position as a session")
	runCmd.Flags().BoolVar(&flagWatch, "watch", false, "Print the grid after every move")
}

// addPlayerFlags registers the flags shared by run and bench.
func addPlayerFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagStyle, "style", "", "Player style: random, blind, minimax (default from config)")
	cmd.Flags().IntVar(&flagDepth, "depth", 0, "Search depth 1..7 (default from config)")
	cmd.Flags().IntVar(&flagSize, "size", 0, "Grid size 2..8 (default from config)")
}

// applyPlayerFlags overrides cfg with the player flags and validates it.
func applyPlayerFlags(cfg *config.Config) error {
	if flagStyle != "" {
		style, err := strategy.ParseStyle(flagStyle)
		if err != nil {
			return err
		}
		cfg.Player.Style = style
	}
	if flagDepth != 0 {
		cfg.Player.Depth = flagDepth
	}
	if flagSize != 0 {
		cfg.Grid.Size = flagSize
	}
	return cfg.Validate()
}

func runRun(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		exitf("%v", err)
	}
	if err := applyPlayerFlags(&cfg); err != nil {
		exitf("%v", err)
	}
	if flagMaxMoves > 0 {
		cfg.Autoplay.MaxMoves = flagMaxMoves
	}
	logger := newLogger(cfg)

	store := openStore(cfg, logger)
	if store != nil {
		defer store.Close()
	}

	s := seed()
	board, err := game.New(cfg.BoardOptions(s))
	if err != nil {
		exitf("%v", err)
	}

	if flagResume != "" {
		if store == nil {
			exitf("cannot resume %q without a database", flagResume)
		}
		g, score, err := store.RestoreSession(flagResume, cfg.Grid.Size)
		if err != nil {
			exitf("%v", err)
		}
		if err := board.Restore(g, score); err != nil {
			exitf("%v", err)
		}
		logger.Info("resumed session", "name", flagResume, "score", score)
	}

	player := cfg.PlayerOptions(s)
	player.Logger = logger
	chooser, err := strategy.New(player)
	if err != nil {
		exitf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := autoplay.Options{
		MaxMoves: cfg.Autoplay.MaxMoves,
		Logger:   logger,
	}
	if flagWatch {
		opts.OnMove = func(step autoplay.Step) {
			fmt.Printf("%s  score %d\n%s\n", step.Dir, step.Status.Score, board.Snapshot())
		}
	}

	logger.Info("starting game", "style", cfg.Player.Style, "depth", cfg.Player.Depth, "size", cfg.Grid.Size, "seed", s)
	sum, err := autoplay.Run(ctx, board, chooser, opts)
	if err != nil && !errors.Is(err, context.Canceled) {
		exitf("%v", err)
	}

	fmt.Print(board.Snapshot())
	fmt.Println()
	printSummary(sum)

	if flagSave != "" && store != nil {
		if err := store.SaveSession(flagSave, board.Snapshot(), board.Score()); err != nil {
			logger.Warn("could not save session", "name", flagSave, "error", err)
		} else {
			logger.Info("saved session", "name", flagSave)
		}
	}

	if store != nil {
		recordRun(store, cfg, s, sum)
	}
}

// recordRun stores the run statistics and, for finished games, the score.
func recordRun(store *storage.Store, cfg config.Config, seed int64, sum autoplay.Summary) {
	_, err := store.SaveRun(storage.RunRecord{
		GameID:   cfg.GameID(),
		Style:    cfg.Player.Style.String(),
		Depth:    cfg.Player.Depth,
		Seed:     seed,
		Score:    sum.Score,
		MaxTile:  sum.MaxTile,
		Moves:    sum.Moves,
		Won:      sum.Won,
		Duration: sum.Elapsed,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not save run: %v\n", err)
	}
	if sum.Over && sum.Score > 0 {
		if _, err := store.SaveScore(cfg.GameID(), sum.Score); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not save score: %v\n", err)
		}
	}
}

func printSummary(sum autoplay.Summary) {
	state := "stopped"
	switch {
	case sum.Over:
		state = "game over"
	case sum.Won:
		state = "won"
	}
	fmt.Printf("Result:   %s\n", state)
	fmt.Printf("Score:    %d\n", sum.Score)
	fmt.Printf("Max tile: %d\n", sum.MaxTile)
	fmt.Printf("Moves:    %d\n", sum.Moves)
	fmt.Printf("Time:     %s\n", sum.Elapsed.Round(time.Millisecond))
}
