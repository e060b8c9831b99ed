package tui

import (
	"time"

	"github.com/bassamadnan/readmail/gmail"
)

// A message carrying one event from the reader.
type ReadEventMsg gmail.Event

// Message to signal that the event channel is closed and the reader has returned.
type ReaderStoppedMsg struct{}

// A message for timed status updates.
type StatusTickMsg struct{ Time time.Time }
