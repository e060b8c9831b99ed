package gmail

import "encoding/json"

const (
	DefaultQuery      = "is:unread"
	DefaultMaxResults = 10
	minMaxResults     = 1
	maxMaxResults     = 50
)

// Query describes one search against the mailbox.
type Query struct {
	Text        string
	MaxResults  int64
	IncludeBody bool
}

// ClampMaxResults forces n into the range the list call accepts.
func ClampMaxResults(n int64) int64 {
	if n < minMaxResults {
		return minMaxResults
	}
	if n > maxMaxResults {
		return maxMaxResults
	}
	return n
}

func (q Query) normalized() Query {
	q.MaxResults = ClampMaxResults(q.MaxResults)
	return q
}

// ParsedEmail holds the readable fields extracted from a Gmail message.
// A record with a non-empty Error is the failure variant and only carries ID.
type ParsedEmail struct {
	ID       string
	ThreadID string
	Labels   []string
	Snippet  string
	Subject  string
	From     string
	To       string
	Date     string
	Body     string
	HasBody  bool // Body was requested and extracted
	Error    string
}

// Failed reports whether this is the failure variant.
func (e ParsedEmail) Failed() bool { return e.Error != "" }

type parsedEmailJSON struct {
	ID       string   `json:"id"`
	ThreadID string   `json:"thread_id"`
	Labels   []string `json:"labels"`
	Snippet  string   `json:"snippet"`
	Subject  string   `json:"subject"`
	From     string   `json:"from"`
	To       string   `json:"to"`
	Date     string   `json:"date"`
	Body     *string  `json:"body,omitempty"`
}

type failedEmailJSON struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

func (e ParsedEmail) MarshalJSON() ([]byte, error) {
	if e.Failed() {
		return json.Marshal(failedEmailJSON{ID: e.ID, Error: e.Error})
	}
	out := parsedEmailJSON{
		ID:       e.ID,
		ThreadID: e.ThreadID,
		Labels:   e.Labels,
		Snippet:  e.Snippet,
		Subject:  e.Subject,
		From:     e.From,
		To:       e.To,
		Date:     e.Date,
	}
	if out.Labels == nil {
		out.Labels = []string{}
	}
	if e.HasBody {
		body := e.Body
		out.Body = &body
	}
	return json.Marshal(out)
}

// ResultSet is the structured outcome of a successful read.
type ResultSet struct {
	Emails     []ParsedEmail `json:"emails"`
	TotalFound int           `json:"total_found"`
	QueryUsed  string        `json:"query_used"`
}

type EventKind int

const (
	EventProgress EventKind = iota
	EventNoResults
	EventError
	EventResult
)

// Event is one notification streamed by Reader.Read. Every kind except
// EventProgress ends the invocation.
type Event struct {
	Kind   EventKind
	Text   string
	Result *ResultSet
}

// Terminal reports whether no further events follow this one.
func (e Event) Terminal() bool { return e.Kind != EventProgress }
