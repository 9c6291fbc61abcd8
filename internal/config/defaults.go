package config

import (
	_ "embed"
)

//go:embed defaults/blast.yaml
var defaultBlastYAML []byte

// DefaultBlastConfig returns the hardcoded Blast configuration, used when
// even the embedded YAML cannot be parsed.
func DefaultBlastConfig() BlastConfig {
	return BlastConfig{
		Board: BoardConfig{
			Rows:    8,
			Columns: 8,
			Colors:  4,
			Thresholds: ThresholdsConfig{
				A: 4,
				B: 7,
				C: 9,
			},
		},
		Gameplay: GameplayConfig{
			Moves:        30,
			DropDuration: 0.5,
			ScorePerCell: 10,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "blast", "blast_endless":
		return defaultBlastYAML
	default:
		return nil
	}
}
