package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dileep2896/visapath/internal/types"
)

func TestPrintCurrentStatus(t *testing.T) {
	var buf bytes.Buffer
	days := 42
	NewPrinter(&buf).PrintCurrentStatus(types.CurrentStatus{
		Visa:                  types.VisaF1,
		WorkAuth:              "Student (CPT/On-Campus)",
		NextDeadline:          "OPT Application Deadline",
		DaysUntilNextDeadline: &days,
	})

	out := buf.String()
	assert.Contains(t, out, "CURRENT STATUS")
	assert.Contains(t, out, "F-1")
	assert.Contains(t, out, "in 42 days")
	assert.Contains(t, out, "┌")
	assert.Contains(t, out, "└")
}

func TestPrintTimeline(t *testing.T) {
	var buf bytes.Buffer
	events := []types.TimelineEvent{
		{Date: "2025-01-01", Title: "Old Event", IsPast: true, Urgency: types.UrgencyPassed},
		{Date: "2026-02-14", Title: "OPT Deadline", Urgency: types.UrgencyCritical},
		{Date: "2026-05-15", Title: "Graduation", Urgency: types.UrgencyLow},
	}
	NewPrinter(&buf).PrintTimeline(events)

	out := buf.String()
	assert.Contains(t, out, "IMMIGRATION TIMELINE")
	assert.Contains(t, out, "Total events: 3")
	assert.Contains(t, out, "!! OPT Deadline")
	assert.NotContains(t, out, "Old Event")
	assert.NotContains(t, out, "more events")
}

func TestPrintTimeline_TruncatesLongList(t *testing.T) {
	var buf bytes.Buffer
	events := make([]types.TimelineEvent, 12)
	for i := range events {
		events[i] = types.TimelineEvent{Date: "2026-06-01", Title: "Event", Urgency: types.UrgencyMedium}
	}
	NewPrinter(&buf).PrintTimeline(events)

	out := buf.String()
	assert.Contains(t, out, "... and 4 more events")
	assert.Equal(t, maxItemsToShow, strings.Count(out, "2026-06-01"))
}

func TestPrintTimeline_EmptyPrintsNothing(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintTimeline(nil)
	assert.Empty(t, buf.String())
}

func TestPrintRiskAlerts(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintRiskAlerts([]types.RiskAlert{
		{Type: "unemployment_limit", Severity: types.SeverityCritical, Message: "90 day limit approaching"},
		{Type: "backlog_warning", Severity: types.SeverityInfo, Message: "Long green card wait expected"},
	})

	out := buf.String()
	assert.Contains(t, out, "RISK ALERTS")
	assert.Contains(t, out, "Found 2 risks")
	assert.Contains(t, out, "⚠ unemployment_limit")
	assert.Contains(t, out, "• backlog_warning")
}

func TestPrintRiskAlerts_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintRiskAlerts(nil)
	assert.Contains(t, buf.String(), "NO RISKS DETECTED")
}

func TestNewLogger(t *testing.T) {
	for _, development := range []bool{true, false} {
		logger, err := NewLogger(development)
		require.NoError(t, err)
		require.NotNil(t, logger)
	}
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.ObserveRequest("GET", "/health", 200, 0)
	m.ObserveRequest("GET", "/health", 200, 0)
	m.ObserveAIRequest("timeline", "ok")
	m.ObserveAIRequest("chat", "rate_limited")

	assert.Equal(t, float64(2), testutil.ToFloat64(
		m.requestsTotal.WithLabelValues("GET", "/health", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(
		m.aiRequestsTotal.WithLabelValues("timeline", "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(
		m.aiRequestsTotal.WithLabelValues("chat", "rate_limited")))
}
