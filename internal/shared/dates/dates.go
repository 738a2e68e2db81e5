// Package dates handles the date-granularity instants used by slot orders
// and visibility resolution.
package dates

import (
	"time"

	"modtok/platform/apperr"
)

// Layout is the wire format for dates.
const Layout = "2006-01-02"

// Parse parses a YYYY-MM-DD date in UTC.
func Parse(raw string) (time.Time, error) {
	parsed, err := time.ParseInLocation(Layout, raw, time.UTC)
	if err != nil {
		return time.Time{}, apperr.Validation("invalid date, expected YYYY-MM-DD: " + raw)
	}
	return parsed, nil
}

// Today returns the current date truncated to UTC midnight.
func Today() time.Time {
	return Truncate(time.Now().UTC())
}

// Truncate drops the time-of-day component, keeping the UTC date.
func Truncate(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Format renders a date in the wire format.
func Format(t time.Time) string {
	return t.Format(Layout)
}
