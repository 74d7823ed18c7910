package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/auto2048/internal/core"
	"github.com/vovakirdan/auto2048/internal/game"
	"github.com/vovakirdan/auto2048/internal/strategy"
)

//go:embed defaults/auto2048.yaml
var defaultYAML []byte

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Grid: GridConfig{
			Size:      core.DefaultSize,
			WinTarget: 2048,
			StopAtWin: false,
			Spawn4:    game.DefaultSpawn4,
		},
		Player: PlayerConfig{
			Style:     strategy.StyleMinimax,
			Depth:     core.DefaultDepth,
			EvalBase:  0.25,
			DecayBase: 0.9,
		},
		Autoplay: AutoplayConfig{
			MoveGap:  150 * time.Millisecond,
			MaxMoves: 0,
		},
		Storage: StorageConfig{
			DBPath: "~/.auto2048/auto2048.db",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
