package gmail

import (
	"context"
	"errors"
	"fmt"
	"log"

	"google.golang.org/api/gmail/v1"
)

const progressEvery = 3 // emit a progress line after every N attempted messages

const (
	msgNoToken      = "Error: No access token available. Please authorize the Gmail integration."
	msgTokenExpired = "Error: Access token expired. Please re-authorize the Gmail integration."
	msgNoResults    = "No emails found matching your query."
	msgNoDetails    = "Error: Could not retrieve email details."
)

// Request is one read invocation. AccessToken comes from the credential store.
type Request struct {
	Query       Query
	AccessToken string
}

// Reader runs searches against the Gmail API and streams the outcome as events.
type Reader struct {
	opts Options
}

func NewReader(opts Options) *Reader {
	return &Reader{opts: opts}
}

type messageGetter interface {
	Message(ctx context.Context, id string, full bool) (*gmail.Message, error)
}

// Read searches, fetches and parses the matching messages, sending progress
// events followed by exactly one terminal event to out. out is closed when
// Read returns. Read blocks until done; messages are fetched one at a time.
func (r *Reader) Read(ctx context.Context, req Request, out chan<- Event) {
	defer close(out)
	emit := func(ev Event) {
		select {
		case out <- ev:
		case <-ctx.Done():
			log.Printf("Gmail Reader: context cancelled, dropping event %q", ev.Text)
		}
	}
	r.run(ctx, req, emit)
}

func (r *Reader) run(ctx context.Context, req Request, emit func(Event)) {
	if req.AccessToken == "" {
		log.Println("Gmail Reader: no access token, not contacting the API.")
		emit(Event{Kind: EventError, Text: msgNoToken})
		return
	}
	q := req.Query.normalized()

	client, err := NewClient(ctx, req.AccessToken, r.opts)
	if err != nil {
		emit(Event{Kind: EventError, Text: fmt.Sprintf("Error reading emails: %v", err)})
		return
	}

	emit(progress(fmt.Sprintf("Searching Gmail for: '%s' (max %d results)", q.Text, q.MaxResults)))
	candidates, err := client.Search(ctx, q.Text, q.MaxResults)
	if err != nil {
		log.Printf("Gmail Reader: search %q failed: %v", q.Text, err)
		emit(Event{Kind: EventError, Text: searchFailureText(err)})
		return
	}
	if len(candidates) == 0 {
		log.Printf("Gmail Reader: no messages match %q.", q.Text)
		emit(Event{Kind: EventNoResults, Text: msgNoResults})
		return
	}

	emit(progress(fmt.Sprintf("Found %d email(s). Fetching details...", len(candidates))))
	emails, skipped := collect(ctx, client, candidates, q.IncludeBody, emit)
	log.Printf("Gmail Reader: parsed %d of %d messages (%d skipped).", len(emails), len(candidates), skipped)

	if len(emails) == 0 {
		emit(Event{Kind: EventError, Text: msgNoDetails})
		return
	}
	emit(Event{
		Kind: EventResult,
		Result: &ResultSet{
			Emails:     emails,
			TotalFound: len(emails),
			QueryUsed:  q.Text,
		},
	})
}

// collect folds the candidates into parsed emails. A candidate that cannot be
// fetched is counted in skipped and otherwise ignored.
func collect(ctx context.Context, getter messageGetter, candidates []*gmail.Message, includeBody bool, emit func(Event)) (emails []ParsedEmail, skipped int) {
	emails = []ParsedEmail{}
	for i, candidate := range candidates {
		email, err := fetchOne(ctx, getter, candidate, includeBody)
		if err != nil {
			log.Printf("Gmail Reader: skipping message %d/%d: %v", i+1, len(candidates), err)
			skipped++
		} else {
			emails = append(emails, email)
		}
		if attempt := i + 1; attempt%progressEvery == 0 {
			emit(progress(fmt.Sprintf("Processed %d/%d emails...", attempt, len(candidates))))
		}
	}
	return emails, skipped
}

func fetchOne(ctx context.Context, getter messageGetter, candidate *gmail.Message, includeBody bool) (ParsedEmail, error) {
	if candidate == nil || candidate.Id == "" {
		return ParsedEmail{}, errMissingID
	}
	msg, err := getter.Message(ctx, candidate.Id, includeBody)
	if err != nil {
		return ParsedEmail{}, fmt.Errorf("fetching %s: %w", candidate.Id, err)
	}
	return ParseEmail(msg, includeBody), nil
}

func searchFailureText(err error) string {
	var statusErr *StatusError
	var netErr *NetworkError
	switch {
	case errors.Is(err, ErrTokenExpired):
		return msgTokenExpired
	case errors.As(err, &statusErr):
		return fmt.Sprintf("Error: Gmail API returned status %d", statusErr.Code)
	case errors.As(err, &netErr):
		return fmt.Sprintf("Network error: %v", netErr.Err)
	default:
		return fmt.Sprintf("Error reading emails: %v", err)
	}
}

func progress(text string) Event {
	return Event{Kind: EventProgress, Text: text}
}
