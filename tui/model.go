package tui

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bassamadnan/readmail/gmail"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrInterrupted is returned by RunProgress when the view exits before the
// reader sent its final event.
var ErrInterrupted = errors.New("read interrupted before it finished")

// Model is the bubbletea model that shows a read in progress.
type Model struct {
	events <-chan gmail.Event
	query  string

	started time.Time
	now     time.Time
	width   int

	lines   []string
	outcome *gmail.Event
	stopped bool
}

func NewProgressModel(events <-chan gmail.Event, query string) Model {
	now := time.Now()
	return Model{
		events:  events,
		query:   query,
		started: now,
		now:     now,
	}
}

func (m Model) Init() tea.Cmd {
	log.Println("TUI: progress view started")
	return tea.Batch(
		waitForEventCmd(m.events),
		statusTickCmd(1*time.Second),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			log.Println("TUI: progress view interrupted")
			return m, tea.Quit
		}

	case ReadEventMsg:
		ev := gmail.Event(msg)
		if !ev.Terminal() {
			m.lines = append(m.lines, ev.Text)
			return m, waitForEventCmd(m.events)
		}
		m.outcome = &ev
		return m, tea.Quit

	case ReaderStoppedMsg:
		m.stopped = true
		log.Println("TUI: reader stopped without a final event")
		return m, tea.Quit

	case StatusTickMsg:
		m.now = msg.Time
		return m, statusTickCmd(1 * time.Second)
	}
	return m, nil
}

// Outcome returns the terminal event, if one arrived.
func (m Model) Outcome() (gmail.Event, bool) {
	if m.outcome == nil {
		return gmail.Event{}, false
	}
	return *m.outcome, true
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("readmail"))
	b.WriteString(" ")
	b.WriteString(HeaderValStyle.Render(m.query))
	b.WriteString("\n\n")
	for _, line := range m.lines {
		b.WriteString(ProgressLineStyle.Render("• " + line))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if m.outcome != nil {
		b.WriteString(renderOutcome(*m.outcome, m.width))
	} else {
		b.WriteString(m.renderStatusBar())
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderStatusBar() string {
	if m.stopped {
		return StatusBarErrorStyle.Render("Reader stopped.")
	}
	elapsed := m.now.Sub(m.started).Truncate(time.Second)
	text := fmt.Sprintf("Working... %v | q/ctrl+c: cancel", elapsed)
	if m.width > 0 {
		return StatusBarNormalStyle.Width(m.width).Render(truncate(text, m.width))
	}
	return StatusBarNormalStyle.Render(text)
}

// RunProgress shows events until the reader's final event and returns it.
func RunProgress(events <-chan gmail.Event, query string) (gmail.Event, error) {
	final, err := tea.NewProgram(NewProgressModel(events, query)).Run()
	if err != nil {
		return gmail.Event{}, fmt.Errorf("progress view: %w", err)
	}
	m, ok := final.(Model)
	if !ok {
		return gmail.Event{}, fmt.Errorf("progress view: unexpected model %T", final)
	}
	outcome, ok := m.Outcome()
	if !ok {
		return gmail.Event{}, ErrInterrupted
	}
	return outcome, nil
}
