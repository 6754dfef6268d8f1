package contract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// AnchorDateFormat is the plain ISO date layout accepted for --anchor.
const AnchorDateFormat = "2006-01-02"

// Define the regular expression to capture "N [units] ago"
// e.g., "2 years ago", "3 months ago", "1 week ago".
var relativeTimeRe = regexp.MustCompile(`^(\d+)\s+(year|month|week|day|hour|minute)s?\s+ago$`)

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now implements the Clock interface.
func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant.
type FixedClock struct {
	T time.Time
}

// Now implements the Clock interface.
func (c FixedClock) Now() time.Time { return c.T }

var (
	_ Clock = SystemClock{}
	_ Clock = FixedClock{}
)

// ParseRelativeTime converts strings like "2 years ago" into a time.Time in the past.
func ParseRelativeTime(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	matches := relativeTimeRe.FindStringSubmatch(s)

	if len(matches) == 0 {
		return time.Time{}, fmt.Errorf("invalid relative time format: %s", s)
	}

	// 1: Value (e.g., "2")
	// 2: Unit (e.g., "year" or "month")
	value, _ := strconv.Atoi(matches[1])
	unit := matches[2]

	switch unit {
	case "year":
		return now.AddDate(-value, 0, 0), nil
	case "month":
		return now.AddDate(0, -value, 0), nil
	case "week":
		return now.AddDate(0, 0, -7*value), nil
	case "day":
		return now.AddDate(0, 0, -value), nil
	case "hour":
		return now.Add(time.Duration(-value) * time.Hour), nil
	default: // minute
		return now.Add(time.Duration(-value) * time.Minute), nil
	}
}

// ParseAnchor resolves the user-facing anchor string into the day the window ends on.
// It accepts an ISO date, an RFC3339 timestamp, "N [units] ago", or an empty string
// for the current day. The result is truncated to midnight.
func ParseAnchor(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	var t time.Time
	switch {
	case s == "":
		t = now
	default:
		if parsed, err := time.Parse(AnchorDateFormat, s); err == nil {
			t = parsed
			break
		}
		if parsed, err := time.Parse(time.RFC3339, s); err == nil {
			t = parsed
			break
		}
		parsed, err := ParseRelativeTime(s, now)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid anchor %q. Expected YYYY-MM-DD, RFC3339 or 'N [units] ago'", s)
		}
		t = parsed
	}
	return TruncateToDay(t), nil
}

// TruncateToDay drops the time-of-day component while keeping the location.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ParseEventDate parses an event timestamp. It accepts RFC3339, "YYYY-MM-DD HH:MM:SS"
// (read as UTC) and anything ParseRecordDate accepts.
func ParseEventDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.DateTime, s); err == nil {
		return t, nil
	}
	if t, err := ParseRecordDate(s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid event date %q. Expected RFC3339, YYYY-MM-DD HH:MM:SS, YYYY-MM-DD or YYYY-MM", s)
}

// ParseRecordDate parses an import date, either a full ISO date or a year-month.
func ParseRecordDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(AnchorDateFormat, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01", s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q. Expected YYYY-MM-DD or YYYY-MM", s)
}
