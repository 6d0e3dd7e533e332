package schemas

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dileep2896/visapath/internal/types"
)

func validTimelineJSON(t *testing.T) string {
	t.Helper()
	resp := types.TimelineResponse{
		TimelineEvents: []types.TimelineEvent{
			{
				ID:          "opt_application_window_open",
				Title:       "OPT Application Window Opens",
				Date:        "2026-02-14",
				Type:        types.EventDeadline,
				Urgency:     types.UrgencyHigh,
				Description: "You can file Form I-765 starting on this date.",
				ActionItems: []string{"Request an I-20 OPT recommendation from your DSO"},
			},
		},
		RiskAlerts: []types.RiskAlert{
			{
				Type:           "h1b_lottery_risk",
				Severity:       types.SeverityInfo,
				Message:        "H-1B selection is not guaranteed.",
				Recommendation: "Plan a backup for an unselected year.",
			},
		},
		CurrentStatus: types.CurrentStatus{Visa: types.VisaF1, WorkAuth: "Student (CPT/on-campus only)"},
	}
	data, err := json.Marshal(resp)
	require.NoError(t, err)
	return string(data)
}

func TestValidateAITimeline_Valid(t *testing.T) {
	require.NoError(t, ValidateAITimeline(validTimelineJSON(t)))
}

func TestValidateAITimeline_MissingKeys(t *testing.T) {
	err := ValidateAITimeline(`{"timeline_events": []}`)
	require.Error(t, err)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.NotEmpty(t, ve.Errors)
	assert.Contains(t, err.Error(), "risk_alerts")
}

func TestValidateAITimeline_BadDate(t *testing.T) {
	doc := `{
		"timeline_events": [{
			"id": "x", "title": "X", "date": "Feb 14, 2026",
			"type": "deadline", "urgency": "high",
			"description": "", "action_items": [], "is_past": false
		}],
		"risk_alerts": [],
		"current_status": {"visa": "F-1", "work_auth": "none"}
	}`
	err := ValidateAITimeline(doc)
	require.Error(t, err)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	found := false
	for _, fe := range ve.Errors {
		if fe.Field == "timeline_events.0.date" {
			found = true
		}
	}
	assert.True(t, found, "expected a date field error, got %v", ve.Errors)
}

func TestValidateAITimeline_BadEnum(t *testing.T) {
	doc := `{
		"timeline_events": [],
		"risk_alerts": [{
			"type": "x", "severity": "catastrophic",
			"message": "m", "recommendation": "r"
		}],
		"current_status": {"visa": "F-1", "work_auth": "none"}
	}`
	assert.Error(t, ValidateAITimeline(doc))
}

func TestValidateAITimeline_NotJSON(t *testing.T) {
	err := ValidateAITimeline("not json at all")
	require.Error(t, err)

	var ve *ValidationError
	assert.False(t, errors.As(err, &ve))
}

func TestAITimelineSchema_IsValidJSON(t *testing.T) {
	var v map[string]any
	require.NoError(t, json.Unmarshal([]byte(AITimelineSchema()), &v))
	assert.Equal(t, "AI Timeline Response", v["title"])
}
