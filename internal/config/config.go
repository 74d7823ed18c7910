// Package config provides YAML-based configuration loading and validation
// for the board, the automatic player and the hosting layer.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/auto2048/internal/core"
	"github.com/vovakirdan/auto2048/internal/game"
	"github.com/vovakirdan/auto2048/internal/strategy"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config contains all configuration for auto2048.
type Config struct {
	Grid     GridConfig     `yaml:"grid"`
	Player   PlayerConfig   `yaml:"player"`
	Autoplay AutoplayConfig `yaml:"autoplay"`
	Storage  StorageConfig  `yaml:"storage"`
	Log      LogConfig      `yaml:"log"`
}

// GridConfig defines the board rules.
type GridConfig struct {
	Size      int     `yaml:"size"`
	WinTarget int     `yaml:"win_target"`
	StopAtWin bool    `yaml:"stop_at_win"`
	Spawn4    float64 `yaml:"spawn4"` // probability of a new tile being 4
}

// PlayerConfig defines the automatic player.
type PlayerConfig struct {
	Style     strategy.Style `yaml:"style"`
	Depth     int            `yaml:"depth"`
	EvalBase  float64        `yaml:"eval_base"`  // snake weight decay
	DecayBase float64        `yaml:"decay_base"` // per-ply lookahead discount
}

// AutoplayConfig defines the automatic play loop.
type AutoplayConfig struct {
	MoveGap  time.Duration `yaml:"move_gap"`  // pause between automatic moves
	MaxMoves int           `yaml:"max_moves"` // 0 means unlimited
}

// StorageConfig defines where scores and sessions are kept.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// LogConfig defines logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Validate checks every field and returns an error wrapping
// ErrInvalidConfig for the first bad one.
func (c Config) Validate() error {
	switch {
	case c.Grid.Size < core.MinSize || c.Grid.Size > core.MaxSize:
		return fmt.Errorf("%w: grid.size %d outside %d..%d", ErrInvalidConfig, c.Grid.Size, core.MinSize, core.MaxSize)
	case !core.IsPowerOfTwo(c.Grid.WinTarget) || c.Grid.WinTarget < 8:
		return fmt.Errorf("%w: grid.win_target %d is not a power of two >= 8", ErrInvalidConfig, c.Grid.WinTarget)
	case c.Grid.Spawn4 < 0 || c.Grid.Spawn4 > 1:
		return fmt.Errorf("%w: grid.spawn4 %v outside 0..1", ErrInvalidConfig, c.Grid.Spawn4)
	case c.Player.Style < strategy.StyleRandom || c.Player.Style > strategy.StyleMinimax:
		return fmt.Errorf("%w: player.style %v", ErrInvalidConfig, c.Player.Style)
	case c.Player.Depth < core.MinDepth || c.Player.Depth > core.MaxDepth:
		return fmt.Errorf("%w: player.depth %d outside %d..%d", ErrInvalidConfig, c.Player.Depth, core.MinDepth, core.MaxDepth)
	case c.Player.EvalBase <= 0 || c.Player.EvalBase >= 1:
		return fmt.Errorf("%w: player.eval_base %v outside (0, 1)", ErrInvalidConfig, c.Player.EvalBase)
	case c.Player.DecayBase <= 0 || c.Player.DecayBase > 1:
		return fmt.Errorf("%w: player.decay_base %v outside (0, 1]", ErrInvalidConfig, c.Player.DecayBase)
	case c.Autoplay.MoveGap < 0:
		return fmt.Errorf("%w: autoplay.move_gap %v is negative", ErrInvalidConfig, c.Autoplay.MoveGap)
	case c.Autoplay.MaxMoves < 0:
		return fmt.Errorf("%w: autoplay.max_moves %d is negative", ErrInvalidConfig, c.Autoplay.MaxMoves)
	}
	return nil
}

// GameID returns the scoreboard key for the configured grid size.
func (c Config) GameID() string {
	return core.GameID(c.Grid.Size)
}

// BoardOptions returns the board rules seeded with seed.
func (c Config) BoardOptions(seed int64) game.Options {
	return game.Options{
		Size:      c.Grid.Size,
		WinTarget: c.Grid.WinTarget,
		StopAtWin: c.Grid.StopAtWin,
		Spawn4:    c.Grid.Spawn4,
		Seed:      seed,
	}
}

// PlayerOptions returns the automatic player settings seeded with seed.
func (c Config) PlayerOptions(seed int64) strategy.Options {
	return strategy.Options{
		Style:     c.Player.Style,
		Depth:     c.Player.Depth,
		EvalBase:  c.Player.EvalBase,
		DecayBase: c.Player.DecayBase,
		Seed:      seed,
	}
}
