package gmail

import (
	"strings"

	"google.golang.org/api/gmail/v1"
)

const (
	ParseFailure = "Failed to parse email"
	unknownID    = "unknown"
)

// ParseEmail maps a message from the API onto a ParsedEmail. It never fails:
// a nil message becomes the failure variant and a missing payload reads as an
// empty one.
func ParseEmail(msg *gmail.Message, includeBody bool) ParsedEmail {
	if msg == nil {
		return failedEmail("")
	}
	payload := msg.Payload
	if payload == nil {
		payload = &gmail.MessagePart{}
	}

	email := ParsedEmail{
		ID:       msg.Id,
		ThreadID: msg.ThreadId,
		Labels:   msg.LabelIds,
		Snippet:  msg.Snippet,
	}
	if email.Labels == nil {
		email.Labels = []string{}
	}
	for _, header := range payload.Headers {
		if header == nil {
			continue
		}
		switch strings.ToLower(header.Name) {
		case "subject":
			email.Subject = header.Value
		case "from":
			email.From = header.Value
		case "to":
			email.To = header.Value
		case "date":
			email.Date = header.Value
		}
	}
	if includeBody {
		email.Body = ExtractBody(payload)
		email.HasBody = true
	}
	return email
}

func failedEmail(id string) ParsedEmail {
	if id == "" {
		id = unknownID
	}
	return ParsedEmail{ID: id, Error: ParseFailure}
}
