package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed" // Keep the loaded values
)

// Presets lists the presets in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset resolves a preset name, case-insensitively.
// An empty name means DifficultyFixed.
func ParsePreset(name string) (DifficultyPreset, error) {
	if name == "" {
		return DifficultyFixed, nil
	}
	p := DifficultyPreset(strings.ToLower(name))
	for _, known := range Presets {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", name)
}

// presetValues is the palette size and move budget of each preset.
// More colors mean smaller groups, fewer moves mean less room to recover.
var presetValues = map[DifficultyPreset]struct {
	colors int
	moves  int
}{
	DifficultyEasy:   {colors: 3, moves: 40},
	DifficultyNormal: {colors: 4, moves: 30},
	DifficultyHard:   {colors: 6, moves: 20},
}

// ApplyBlastPreset modifies the config based on a difficulty preset.
// DifficultyFixed leaves cfg unchanged.
func ApplyBlastPreset(cfg *BlastConfig, preset DifficultyPreset) {
	v, ok := presetValues[preset]
	if !ok {
		return
	}
	cfg.Board.Colors = v.colors
	cfg.Gameplay.Moves = v.moves
}
