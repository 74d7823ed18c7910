// Package tui provides the Bubble Tea integration for auto2048.
// It handles the terminal UI loop, input mapping, and the SSH host.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// autoTickMsg asks the model to start the next automatic move.
type autoTickMsg struct {
	gen int
}

// autoTickCmd schedules the next automatic move after gap.
func autoTickCmd(gap time.Duration, gen int) tea.Cmd {
	if gap <= 0 {
		return func() tea.Msg { return autoTickMsg{gen: gen} }
	}
	return tea.Tick(gap, func(time.Time) tea.Msg {
		return autoTickMsg{gen: gen}
	})
}
