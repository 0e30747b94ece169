// Package status derives the lifecycle status of a property from its raw
// contract facts. Everything here is pure: no stores, no clocks beyond the
// caller-supplied "now", and no panics — a malformed record degrades to the
// nearest safe classification instead of breaking a render path.
package status

import (
	"strings"
	"time"
)

// DisplayDateFormat is the dashboard's date display format (MM-DD-YYYY).
const DisplayDateFormat = "01-02-2006"

// dateLayouts are tried in order. ISO first, then the legacy display format
// with and without zero padding.
var dateLayouts = []string{
	"2006-01-02",
	"01-02-2006",
	"1-2-2006",
	"01/02/2006",
	time.RFC3339,
}

// ParseDate parses a stored date string, tolerating the ISO and legacy
// MM-DD-YYYY formats. The result is truncated to midnight UTC. ok is false
// when the value is empty or matches no known layout; callers treat that as
// missing data, never as an error.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return Midnight(t), true
		}
	}

	return time.Time{}, false
}

// FormatDate renders a date in the display format. Parsing the result with
// ParseDate recovers the same calendar day.
func FormatDate(t time.Time) string {
	return t.Format(DisplayDateFormat)
}

// Midnight truncates a time to 00:00 UTC of its calendar day, so that all day
// differences are calendar-day arithmetic rather than wall-clock hours.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the count of calendar days from one midnight to
// another. Negative when to precedes from.
func DaysBetween(from, to time.Time) int {
	return int(Midnight(to).Sub(Midnight(from)).Hours() / 24)
}
