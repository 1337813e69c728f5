package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// clockTickMsg refreshes relative times in the header.
type clockTickMsg time.Time

func clockTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return clockTickMsg(t)
	})
}
