package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dileep2896/visapath/internal/types"
)

func TestParse_EmptyIsAbsent(t *testing.T) {
	_, ok, err := Parse("")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestParse_ValidDate(t *testing.T) {
	d, ok, err := Parse("2026-05-15")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2026, d.Year())
	assert.Equal(t, time.May, d.Month())
	assert.Equal(t, 15, d.Day())
	assert.Equal(t, time.UTC, d.Location())
}

func TestParse_MalformedIsError(t *testing.T) {
	for _, input := range []string{"05/15/2026", "2026-13-01", "not-a-date", "2026-02-30"} {
		_, _, err := Parse(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestUrgency_Boundaries(t *testing.T) {
	today := MustParse("2026-01-01")

	tests := []struct {
		offsetDays int
		want       types.Urgency
	}{
		{-1, types.UrgencyPassed},
		{0, types.UrgencyCritical},
		{7, types.UrgencyCritical},
		{8, types.UrgencyHigh},
		{30, types.UrgencyHigh},
		{31, types.UrgencyMedium},
		{90, types.UrgencyMedium},
		{91, types.UrgencyLow},
		{400, types.UrgencyLow},
	}
	for _, tt := range tests {
		deadline := today.AddDate(0, 0, tt.offsetDays)
		assert.Equal(t, tt.want, Urgency(today, deadline), "offset %d days", tt.offsetDays)
	}
}

func TestDaysBetween(t *testing.T) {
	from := MustParse("2026-01-01")
	assert.Equal(t, 31, DaysBetween(from, MustParse("2026-02-01")))
	assert.Equal(t, -1, DaysBetween(from, MustParse("2025-12-31")))
	assert.Equal(t, 0, DaysBetween(from, from))
}

func TestTruncate_DropsTimeOfDay(t *testing.T) {
	noon := time.Date(2026, 6, 1, 12, 30, 45, 0, time.UTC)
	assert.Equal(t, MustParse("2026-06-01"), Truncate(noon))
}
