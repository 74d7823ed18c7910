package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/auto2048/internal/autoplay"
)

var (
	flagGames   int
	flagWorkers int
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Play many automatic games and report statistics",
	Long: `Play independent automatic games in parallel. Game i uses seed
--seed + i, so a benchmark with a fixed seed is reproducible.
Every game is stored with the autoplay statistics.

Examples:
  auto2048 bench --games 100
  auto2048 bench --games 20 --depth 4 --workers 4 --seed 1
  auto2048 bench --style blind --games 1000`,
	Args: cobra.NoArgs,
	Run:  runBench,
}

func init() {
	addPlayerFlags(benchCmd)
	benchCmd.Flags().IntVar(&flagGames, "games", 10, "Number of games")
	benchCmd.Flags().IntVar(&flagWorkers, "workers", 0, "Concurrent games (0 = number of CPUs)")
}

func runBench(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		exitf("%v", err)
	}
	if err := applyPlayerFlags(&cfg); err != nil {
		exitf("%v", err)
	}
	logger := newLogger(cfg)

	store := openStore(cfg, logger)
	if store != nil {
		defer store.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	s := seed()
	spec := autoplay.Spec{
		Games:    flagGames,
		Workers:  flagWorkers,
		Seed:     s,
		MaxMoves: cfg.Autoplay.MaxMoves,
		Board:    cfg.BoardOptions(s),
		Player:   cfg.PlayerOptions(s),
		Logger:   logger,
	}

	logger.Info("starting benchmark", "games", flagGames, "style", cfg.Player.Style, "depth", cfg.Player.Depth, "seed", s)
	results, err := autoplay.Bench(ctx, spec)
	if err != nil {
		exitf("%v", err)
	}

	if store != nil {
		for _, r := range results {
			recordRun(store, cfg, r.Seed, r.Summary)
		}
	}

	agg := autoplay.Stats(results)
	fmt.Printf("Benchmark - %s depth %d on %dx%d\n\n", cfg.Player.Style, cfg.Player.Depth, cfg.Grid.Size, cfg.Grid.Size)
	fmt.Printf("Games:      %d\n", agg.Games)
	fmt.Printf("Mean score: %.1f\n", agg.MeanScore)
	fmt.Printf("Best score: %d\n", agg.BestScore)
	fmt.Printf("Mean moves: %.1f\n", agg.MeanMoves)
	fmt.Printf("Win rate:   %.1f%% (target %d)\n", 100*agg.WinRate(), cfg.Grid.WinTarget)
	fmt.Println()
	fmt.Printf("  %-8s  %s\n", "Max tile", "Games")
	fmt.Printf("  %-8s  %s\n", "--------", "-----")
	for _, tile := range agg.SortedTiles() {
		fmt.Printf("  %-8d  %d\n", tile, agg.Tiles[tile])
	}
}
