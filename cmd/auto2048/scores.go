package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/auto2048/internal/core"
	"github.com/vovakirdan/auto2048/internal/platform/tui"
)

var (
	flagPlain bool
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [size]",
	Short: "Show high scores and autoplay statistics",
	Long: `Display high scores for a grid size (default from config).
On a terminal an interactive scoreboard opens; use --plain for text.

Examples:
  auto2048 scores
  auto2048 scores 5 --plain
  auto2048 scores 4 --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a plain table instead of the scoreboard")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores of the grid size")
}

func runScores(_ *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		exitf("%v", err)
	}

	size := cfg.Grid.Size
	if len(args) == 1 {
		size, err = strconv.Atoi(args[0])
		if err != nil || size < core.MinSize || size > core.MaxSize {
			exitf("grid size must be %d..%d, got %q", core.MinSize, core.MaxSize, args[0])
		}
	}
	gameID := core.GameID(size)

	store := openStore(cfg, newLogger(cfg))
	if store == nil {
		exitf("cannot open scores database")
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(gameID); err != nil {
			exitf("%v", err)
		}
		fmt.Printf("Cleared scores for %dx%d\n", size, size)
		return
	}

	if !flagPlain && term.IsTerminal(int(os.Stdout.Fd())) {
		if _, err := tui.RunScoreboard(store, size); err != nil {
			exitf("%v", err)
		}
		return
	}

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		exitf("retrieving scores: %v", err)
	}

	fmt.Printf("High Scores - %dx%d\n", size, size)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'auto2048 play' or 'auto2048 run' to set the first high score!")
	} else {
		fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
		fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
		for i, entry := range scores {
			dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
			fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, dateStr)
		}
	}

	if st, err := store.GetGameStats(gameID); err == nil && st.GamesCount > 0 {
		fmt.Println()
		fmt.Printf("Games: %d  Best: %d  Average: %.0f  Last played: %s\n",
			st.GamesCount, st.HighScore, st.AvgScore, st.LastPlayed.Format("2006-01-02 15:04"))
	}

	stats, err := store.RunStats(gameID)
	if err != nil || len(stats) == 0 {
		return
	}
	fmt.Println()
	fmt.Println("Autoplay runs")
	fmt.Printf("  %-8s  %-5s  %-10s  %-9s  %s\n", "Style", "Runs", "Avg score", "Best tile", "Wins")
	fmt.Printf("  %-8s  %-5s  %-10s  %-9s  %s\n", "-----", "----", "---------", "---------", "----")
	for _, st := range stats {
		fmt.Printf("  %-8s  %-5d  %-10.0f  %-9d  %d\n", st.Style, st.Runs, st.AvgScore, st.BestTile, st.Wins)
	}
}
