package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/auto2048/internal/grid"
	"github.com/vovakirdan/auto2048/internal/search"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest <grid>",
	Short: "Print the best move for a grid",
	Long: `Search the given grid and print the best direction with its score.
Rows are separated by '/' or newlines, cells by spaces or commas;
'.' or '0' is an empty cell. Use '-' to read the grid from stdin.

Examples:
  auto2048 suggest "2 2 . . / . 4 . . / . . . . / . . . 2"
  auto2048 suggest --depth 3 "2,4/4,2"
  cat grid.txt | auto2048 suggest -`,
	Args: cobra.ExactArgs(1),
	Run:  runSuggest,
}

func init() {
	suggestCmd.Flags().IntVar(&flagDepth, "depth", 0, "Search depth 1..7 (default from config)")
}

func runSuggest(_ *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		exitf("%v", err)
	}
	if flagDepth != 0 {
		cfg.Player.Depth = flagDepth
	}
	if err := cfg.Validate(); err != nil {
		exitf("%v", err)
	}

	text := args[0]
	if text == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			exitf("cannot read grid: %v", err)
		}
		text = string(data)
	}

	g, err := grid.Parse(text)
	if err != nil {
		exitf("%v", err)
	}

	searcher := search.NewSearcher(cfg.Player.Depth, cfg.Player.EvalBase, cfg.Player.DecayBase)
	res, stats := searcher.Search(g)

	fmt.Print(g)
	fmt.Println()
	if !res.Found() {
		fmt.Println("No move changes this grid: game over.")
		return
	}
	fmt.Printf("Best move: %s\n", strings.ToLower(res.Direction.String()))
	fmt.Printf("Score:     %.4f\n", res.Score)
	fmt.Printf("Searched:  %d positions in %s (depth %d)\n", stats.Nodes, stats.Elapsed, searcher.Depth)
}
