package utils

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for all calendar dates.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date and normalizes it to midnight UTC.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// Today returns the current date truncated to midnight UTC.
func Today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysUntil returns the whole days from one midnight-normalized date to
// another. Negative when "to" is in the past.
func DaysUntil(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
