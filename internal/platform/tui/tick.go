// Package tui runs games in the terminal with Bubble Tea: the game loop,
// input mapping, the menu, settings and scoreboard screens, and SSH hosting.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg advances the game by one tick and drives drop animations.
type TickMsg time.Time

// tickCmd schedules the next tick. A non-positive rate falls back to 60.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	return tea.Tick(time.Second/time.Duration(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
