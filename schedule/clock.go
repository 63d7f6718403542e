package schedule

import (
	"strings"
	"time"
)

// Placeholder rendered for a missing or unreadable timestamp.
const Placeholder = "-"

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseTimestamp reads the ISO-8601 forms the backend emits. The returned
// time keeps the offset written in the string, so Hour() is the wall clock
// of the airport the backend reported.
func ParseTimestamp(ts string) (time.Time, bool) {
	ts = strings.TrimSpace(ts)
	if ts == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, ts); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatClock renders a timestamp as 24-hour HH:MM.
func FormatClock(ts string) string {
	t, ok := ParseTimestamp(ts)
	if !ok {
		return Placeholder
	}
	return t.Format("15:04")
}
