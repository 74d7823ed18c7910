// auto2048 plays 2048 in the terminal, by hand or with an automatic player.
//
// Usage:
//
//	auto2048 play             - Play interactively, with autoplay and hints
//	auto2048 run              - Let the automatic player finish one game headless
//	auto2048 bench            - Play many games concurrently and report statistics
//	auto2048 suggest <grid>   - Print the best move for a given grid
//	auto2048 scores [size]    - Show high scores and autoplay statistics
//	auto2048 serve            - Start SSH server for remote play
//	auto2048 config           - Print the effective configuration
//
// Global flags:
//
//	--config <path>     - Custom config YAML
//	--seed <value>      - Set RNG seed for reproducible games
//	--db <path>         - Set database path (default from config)
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/auto2048/internal/config"
	"github.com/vovakirdan/auto2048/internal/storage"
)

var (
	// Global flags
	flagConfig   string
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "auto2048",
	Short: "auto2048 - 2048 with a lookahead player",
	Long: `auto2048 is a terminal 2048 game with an automatic player that
searches ahead assuming the worst tile placement.

Available commands:
  play     - Interactive game with autoplay and hints
  run      - Headless automatic game
  bench    - Many automatic games in parallel
  suggest  - Best move for a grid
  scores   - High scores and autoplay statistics
  serve    - SSH server for remote play
  config   - Effective configuration

Examples:
  auto2048 play
  auto2048 run --style minimax --depth 4
  auto2048 bench --games 100 --depth 3
  auto2048 suggest "2 2 . . / . 4 . . / . . . . / . . . 2"
  auto2048 serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to database (overrides storage.db_path)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (overrides log.level)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig loads the config and applies the global flags.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	return cfg, nil
}

// newLogger creates the stderr logger at the configured level.
func newLogger(cfg config.Config) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "auto2048",
	})
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", cfg.Log.Level)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// openStore opens the database. Failures are logged and yield a nil store,
// which disables scores and sessions.
func openStore(cfg config.Config, logger *log.Logger) *storage.Store {
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		logger.Warn("could not open database", "path", cfg.Storage.DBPath, "error", err)
		return nil
	}
	return store
}

// seed returns the --seed flag, or a time based seed when it is zero.
func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}

// exitf prints an error and exits.
func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
