package tui

import (
	"testing"
	"time"

	"github.com/bassamadnan/readmail/gmail"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestProgressModelCollectsLinesUntilTerminalEvent(t *testing.T) {
	events := make(chan gmail.Event, 1)
	m := NewProgressModel(events, "is:unread")

	m, cmd := update(t, m, ReadEventMsg(gmail.Event{Kind: gmail.EventProgress, Text: "Found 3 email(s). Fetching details..."}))
	require.NotNil(t, cmd)
	_, done := m.Outcome()
	assert.False(t, done)

	// The returned command waits on the channel again.
	events <- gmail.Event{Kind: gmail.EventProgress, Text: "Processed 3/3 emails..."}
	next := cmd()
	assert.Equal(t, ReadEventMsg(gmail.Event{Kind: gmail.EventProgress, Text: "Processed 3/3 emails..."}), next)
	m, _ = update(t, m, next)

	result := &gmail.ResultSet{Emails: []gmail.ParsedEmail{{ID: "a"}}, TotalFound: 1, QueryUsed: "is:unread"}
	m, cmd = update(t, m, ReadEventMsg(gmail.Event{Kind: gmail.EventResult, Result: result}))
	assert.True(t, isQuit(cmd))

	outcome, done := m.Outcome()
	require.True(t, done)
	assert.Same(t, result, outcome.Result)

	view := m.View()
	assert.Contains(t, view, "Found 3 email(s). Fetching details...")
	assert.Contains(t, view, "Processed 3/3 emails...")
	assert.Contains(t, view, "Fetched 1 email(s) for 'is:unread'")
}

func TestProgressModelShowsErrorOutcome(t *testing.T) {
	m := NewProgressModel(make(chan gmail.Event), "label:x")
	m, cmd := update(t, m, ReadEventMsg(gmail.Event{Kind: gmail.EventError, Text: "Error: Gmail API returned status 403"}))
	assert.True(t, isQuit(cmd))
	assert.Contains(t, m.View(), "Error: Gmail API returned status 403")
}

func TestProgressModelReaderStopped(t *testing.T) {
	events := make(chan gmail.Event)
	close(events)
	m := NewProgressModel(events, "q")

	msg := waitForEventCmd(events)()
	assert.Equal(t, ReaderStoppedMsg{}, msg)

	m, cmd := update(t, m, msg)
	assert.True(t, isQuit(cmd))
	_, done := m.Outcome()
	assert.False(t, done)
	assert.Contains(t, m.View(), "Reader stopped.")
}

func TestProgressModelQuitKey(t *testing.T) {
	m := NewProgressModel(make(chan gmail.Event), "q")
	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, isQuit(cmd))
}

func TestProgressModelTick(t *testing.T) {
	m := NewProgressModel(make(chan gmail.Event), "q")
	m, cmd := update(t, m, StatusTickMsg{Time: m.started.Add(5 * time.Second)})
	assert.NotNil(t, cmd)
	assert.Contains(t, m.View(), "Working... 5s")
}
