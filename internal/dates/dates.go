// Package dates provides calendar date parsing and deadline urgency
// classification for the timeline engine. All dates are UTC midnights so
// day arithmetic stays exact.
package dates

import (
	"fmt"
	"time"

	"github.com/Dileep2896/visapath/internal/types"
)

// Urgency bucket boundaries in days. Boundary values belong to the more
// urgent bucket.
const (
	criticalWithinDays = 7
	highWithinDays     = 30
	mediumWithinDays   = 90
)

// Parse parses an optional ISO 8601 calendar date. An empty string is not an
// error; it returns ok=false. A malformed non-empty string is a caller
// error and is reported rather than coerced.
func Parse(s string) (time.Time, bool, error) {
	if s == "" {
		return time.Time{}, false, nil
	}
	d, err := time.ParseInLocation(types.DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return d, true, nil
}

// MustParse parses a date known to be well formed. It panics on malformed
// input and exists for tests and static tables only.
func MustParse(s string) time.Time {
	d, ok, err := Parse(s)
	if err != nil || !ok {
		panic(fmt.Sprintf("dates: MustParse(%q): %v", s, err))
	}
	return d
}

// Truncate drops the time-of-day portion, returning the UTC midnight of t.
func Truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole number of days from 'from' to 'to'.
// Negative when 'to' is earlier.
func DaysBetween(from, to time.Time) int {
	return int(Truncate(to).Sub(Truncate(from)).Hours() / 24)
}

// Urgency buckets a deadline relative to today: passed when the deadline is
// behind us, critical within 7 days, high within 30, medium within 90, low
// beyond that.
func Urgency(today, deadline time.Time) types.Urgency {
	days := DaysBetween(today, deadline)
	switch {
	case days < 0:
		return types.UrgencyPassed
	case days <= criticalWithinDays:
		return types.UrgencyCritical
	case days <= highWithinDays:
		return types.UrgencyHigh
	case days <= mediumWithinDays:
		return types.UrgencyMedium
	default:
		return types.UrgencyLow
	}
}
