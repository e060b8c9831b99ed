package tui

import (
	"time"

	"github.com/bassamadnan/readmail/gmail"
	tea "github.com/charmbracelet/bubbletea"
)

// waitForEventCmd listens on the event channel and sends a ReadEventMsg when an event arrives.
// The model re-queues it after every event until the channel is closed.
func waitForEventCmd(events <-chan gmail.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return ReaderStoppedMsg{}
		}
		return ReadEventMsg(ev)
	}
}

// statusTickCmd creates a ticker for updating the status bar periodically.
func statusTickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return StatusTickMsg{Time: t}
	})
}
