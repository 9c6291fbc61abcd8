package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blast/internal/config"
)

// Board flags, shared by every command that builds a board.
var (
	flagConfig     string
	flagDifficulty string
	flagOverrides  config.Overrides
)

func addBoardFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom board config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	cmd.Flags().IntVar(&flagOverrides.Rows, "rows", 0, "Board rows (2-10)")
	cmd.Flags().IntVar(&flagOverrides.Columns, "cols", 0, "Board columns (2-10)")
	cmd.Flags().IntVar(&flagOverrides.Colors, "colors", 0, "Number of colors (1-6)")
	cmd.Flags().IntVar(&flagOverrides.A, "a", 0, "Group size for tier A")
	cmd.Flags().IntVar(&flagOverrides.B, "b", 0, "Group size for tier B")
	cmd.Flags().IntVar(&flagOverrides.C, "c", 0, "Group size for tier C")
	cmd.Flags().IntVar(&flagOverrides.Moves, "moves", 0, "Move budget in moves mode")
}

// boardFlagsChanged reports whether the user set any board flag.
func boardFlagsChanged(cmd *cobra.Command) bool {
	for _, name := range []string{"config", "difficulty", "rows", "cols", "colors", "a", "b", "c", "moves"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

// loadBoardConfig resolves the config file, then the difficulty preset,
// then the individual overrides, and validates the result.
func loadBoardConfig() (config.BlastConfig, error) {
	cfg, err := config.LoadBlast(flagConfig)
	if err != nil {
		return cfg, err
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return cfg, err
	}
	config.ApplyBlastPreset(&cfg, preset)
	flagOverrides.Apply(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
