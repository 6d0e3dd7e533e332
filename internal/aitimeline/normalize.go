package aitimeline

import (
	"github.com/Dileep2896/visapath/internal/types"
)

// Normalize brings a model-produced response in line with the
// deterministic generator's contract: events sorted by date, is_past and
// urgency recomputed against today rather than trusted from the model,
// alerts sorted by severity, and nil slices replaced with empty ones.
// The schema has already constrained the enum values; only the
// date-derived fields are recomputed here.
func Normalize(resp *types.TimelineResponse, todayISO string) {
	if resp.TimelineEvents == nil {
		resp.TimelineEvents = []types.TimelineEvent{}
	}
	if resp.RiskAlerts == nil {
		resp.RiskAlerts = []types.RiskAlert{}
	}

	for i := range resp.TimelineEvents {
		ev := &resp.TimelineEvents[i]
		if ev.ActionItems == nil {
			ev.ActionItems = []string{}
		}
		ev.IsPast = ev.Date < todayISO
		if ev.IsPast && ev.Urgency != types.UrgencyNone {
			ev.Urgency = types.UrgencyPassed
		}
	}

	types.SortEventsByDate(resp.TimelineEvents)
	types.SortAlertsBySeverity(resp.RiskAlerts)
}
