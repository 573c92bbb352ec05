package dataset

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ParseDate parses a date or timestamp in any common layout
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	t, err := dateparse.ParseAny(raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// CalendarDay truncates a timestamp to its calendar date in its own location
func CalendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
