// Package tui runs fruit drop rounds in a terminal with Bubble Tea. It maps
// keys and mouse to input frames, drives the simulation from a fixed tick,
// and hosts the menu, scoreboard and SSH session flows.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a command that fires one TickMsg after a frame at
// tickRate. Rates below 1 fall back to 60.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
