package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/bassamadnan/readmail/gmail"
)

// Date header layouts seen in the wild, tried in order.
var dateLayouts = []string{
	time.RFC1123Z,
	"Mon, 2 Jan 2006 15:04:05 -0700 (MST)",
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"2 Jan 2006 15:04:05 -0700",
	time.RFC1123,
	time.RFC822,
}

// truncate shortens a string to a max length in runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// parseEmailDate parses a Date header. The zero time means it could not be parsed.
func parseEmailDate(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	candidates := []string{value}
	// Drop a trailing "(UTC)"-style comment and retry.
	if open := strings.LastIndex(value, " ("); open != -1 {
		if closing := strings.LastIndex(value, ")"); closing > open {
			candidates = append(candidates, strings.TrimSpace(value[:open]+value[closing+1:]))
		}
	}
	for _, candidate := range candidates {
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, candidate); err == nil {
				return t
			}
		}
	}
	return time.Time{}
}

// formatEmailDate formats the date for display in the email list.
func formatEmailDate(t time.Time, now time.Time) string {
	if t.IsZero() {
		return "???"
	}
	local := t.Local()
	if local.Year() == now.Year() && local.YearDay() == now.YearDay() {
		return local.Format("15:04") // Time only for today
	}
	return local.Format("Jan02")
}

// fullEmailDate formats a Date header for the preview, falling back to the raw value.
func fullEmailDate(value string) string {
	t := parseEmailDate(value)
	if t.IsZero() {
		if value == "" {
			return "N/A"
		}
		return value
	}
	return t.Local().Format(time.RFC1123)
}

// shortSender keeps the display name of a From header when there is one.
func shortSender(from string) string {
	if idx := strings.Index(from, "<"); idx > 0 {
		from = strings.TrimSpace(from[:idx])
	}
	from = strings.Trim(from, `"`)
	if from == "" {
		return "(Unknown Sender)"
	}
	return from
}

func subjectOrPlaceholder(subject string) string {
	if subject == "" {
		return "(No Subject)"
	}
	return subject
}

// renderOutcome renders the final event of a read as a one-line status.
func renderOutcome(ev gmail.Event, width int) string {
	style := StatusBarErrorStyle
	text := ev.Text
	switch ev.Kind {
	case gmail.EventResult:
		style = StatusBarSuccessStyle
		if ev.Result != nil {
			text = fmt.Sprintf("Fetched %d email(s) for '%s'", ev.Result.TotalFound, ev.Result.QueryUsed)
		}
	case gmail.EventNoResults, gmail.EventProgress:
		style = StatusBarNormalStyle
	}
	if width > 0 {
		return style.Width(width).Render(truncate(text, width))
	}
	return style.Render(text)
}
