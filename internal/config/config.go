// Package config provides YAML-based configuration loading and difficulty
// presets for Blast.
package config

import (
	"fmt"

	"github.com/vovakirdan/tui-blast/internal/games/blast/engine"
)

// BlastConfig contains all configuration for a Blast round.
type BlastConfig struct {
	Board    BoardConfig    `yaml:"board"`
	Gameplay GameplayConfig `yaml:"gameplay"`
}

// BoardConfig defines the board dimensions, palette and tier thresholds.
type BoardConfig struct {
	Rows       int              `yaml:"rows"`
	Columns    int              `yaml:"columns"`
	Colors     int              `yaml:"colors"`
	Thresholds ThresholdsConfig `yaml:"thresholds"`
}

// ThresholdsConfig holds the group sizes at which tiers A, B and C begin.
type ThresholdsConfig struct {
	A int `yaml:"a"`
	B int `yaml:"b"`
	C int `yaml:"c"`
}

// GameplayConfig defines scoring and pacing.
type GameplayConfig struct {
	Moves        int     `yaml:"moves"`          // Blasts per round in moves mode
	DropDuration float64 `yaml:"drop_duration"`  // Seconds for a falling cell to land
	ScorePerCell int     `yaml:"score_per_cell"` // Base points per blast unit
}

// Engine converts the board section into an engine configuration.
func (c BlastConfig) Engine() engine.Config {
	return engine.Config{
		Rows:    c.Board.Rows,
		Columns: c.Board.Columns,
		Colors:  c.Board.Colors,
		Thresholds: engine.Thresholds{
			A: c.Board.Thresholds.A,
			B: c.Board.Thresholds.B,
			C: c.Board.Thresholds.C,
		},
	}
}

// FromEngine copies an engine configuration into the board section.
func (c *BlastConfig) FromEngine(e engine.Config) {
	c.Board = BoardConfig{
		Rows:    e.Rows,
		Columns: e.Columns,
		Colors:  e.Colors,
		Thresholds: ThresholdsConfig{
			A: e.A,
			B: e.B,
			C: e.C,
		},
	}
}

// Validate checks the board through the engine rules, then the gameplay
// values. Board errors are *engine.ConfigError so callers can show the
// message as-is.
func (c BlastConfig) Validate() error {
	if err := c.Engine().Validate(); err != nil {
		return err
	}
	switch {
	case c.Gameplay.Moves < 1:
		return fmt.Errorf("config: moves must be at least 1, got %d", c.Gameplay.Moves)
	case c.Gameplay.DropDuration <= 0 || c.Gameplay.DropDuration > 5:
		return fmt.Errorf("config: drop_duration must be in (0, 5] seconds, got %g", c.Gameplay.DropDuration)
	case c.Gameplay.ScorePerCell < 1:
		return fmt.Errorf("config: score_per_cell must be at least 1, got %d", c.Gameplay.ScorePerCell)
	}
	return nil
}

// Overrides carries individual values set on the command line.
// Zero fields are left untouched.
type Overrides struct {
	Rows    int
	Columns int
	Colors  int
	A       int
	B       int
	C       int
	Moves   int
}

// Apply writes every non-zero override into cfg.
func (o Overrides) Apply(cfg *BlastConfig) {
	set := func(dst *int, v int) {
		if v != 0 {
			*dst = v
		}
	}
	set(&cfg.Board.Rows, o.Rows)
	set(&cfg.Board.Columns, o.Columns)
	set(&cfg.Board.Colors, o.Colors)
	set(&cfg.Board.Thresholds.A, o.A)
	set(&cfg.Board.Thresholds.B, o.B)
	set(&cfg.Board.Thresholds.C, o.C)
	set(&cfg.Gameplay.Moves, o.Moves)
}
