package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimelineEvent_NilActionItemsSerializeAsEmptyArray(t *testing.T) {
	e := NewTimelineEvent("id", "Title", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EventMilestone, UrgencyNone, "desc", nil)

	require.NotNil(t, e.ActionItems)
	data, err := json.Marshal(e)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"action_items":[]`)
}

func TestNewTimelineEvent_FormatsDate(t *testing.T) {
	e := NewTimelineEvent("id", "Title", time.Date(2026, 3, 1, 15, 4, 5, 0, time.UTC),
		EventDeadline, UrgencyHigh, "desc", []string{"do it"})
	assert.Equal(t, "2026-03-01", e.Date)
}

func TestSortEventsByDate_StableForEqualDates(t *testing.T) {
	events := []TimelineEvent{
		{ID: "c", Date: "2026-05-01"},
		{ID: "a", Date: "2026-01-01"},
		{ID: "b1", Date: "2026-03-01"},
		{ID: "b2", Date: "2026-03-01"},
	}
	SortEventsByDate(events)

	assert.Equal(t, []string{"a", "b1", "b2", "c"},
		[]string{events[0].ID, events[1].ID, events[2].ID, events[3].ID})
}

func TestSortAlertsBySeverity(t *testing.T) {
	alerts := []RiskAlert{
		{Type: "i", Severity: SeverityInfo},
		{Type: "c", Severity: SeverityCritical},
		{Type: "w", Severity: SeverityWarning},
		{Type: "h", Severity: SeverityHigh},
	}
	SortAlertsBySeverity(alerts)

	assert.Equal(t, []string{"c", "h", "w", "i"},
		[]string{alerts[0].Type, alerts[1].Type, alerts[2].Type, alerts[3].Type})
}

func TestSeverityRank_UnknownSortsLast(t *testing.T) {
	assert.Greater(t, SeverityRank("whatever"), SeverityRank(SeverityInfo))
}
