package util

import (
	"strings"
	"time"
)

// DateLayout is the calendar day format used in requests and cache keys.
const DateLayout = "2006-01-02"

// NowUTC exposes time.Now for deterministic testing.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// DayIn formats t as a calendar day in loc.
func DayIn(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(DateLayout)
}

// ParseDay parses a YYYY-MM-DD day as midnight UTC.
func ParseDay(raw string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(raw))
}
