// Package types provides type definitions for structured data used throughout the visapath system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"sort"
	"time"
)

// EventType classifies a timeline event.
type EventType string

// Timeline event types
const (
	EventDeadline  EventType = "deadline"
	EventMilestone EventType = "milestone"
	EventRisk      EventType = "risk"
)

// Urgency describes how much deadline pressure an event carries.
// "none" means informational: the event has no deadline pressure at all.
type Urgency string

// Urgency levels, from most to least pressing
const (
	UrgencyCritical Urgency = "critical"
	UrgencyHigh     Urgency = "high"
	UrgencyMedium   Urgency = "medium"
	UrgencyLow      Urgency = "low"
	UrgencyNone     Urgency = "none"
	UrgencyPassed   Urgency = "passed"
)

// Severity ranks a risk alert.
type Severity string

// Risk alert severities
const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// SeverityRank returns the sort rank for a severity (critical sorts first).
// Unknown severities sort last.
func SeverityRank(s Severity) int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityHigh:
		return 1
	case SeverityWarning:
		return 2
	case SeverityInfo:
		return 3
	default:
		return 99
	}
}

// DateLayout is the calendar date format used on the wire (ISO 8601).
const DateLayout = "2006-01-02"

// TimelineEvent is a single dated entry in a generated immigration timeline.
// Field names form the JSON contract with callers and must not change.
type TimelineEvent struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Date        string    `json:"date"` // ISO 8601 calendar date
	Type        EventType `json:"type"`
	Urgency     Urgency   `json:"urgency"`
	Description string    `json:"description"`
	ActionItems []string  `json:"action_items"`
	IsPast      bool      `json:"is_past"`
}

// NewTimelineEvent builds a timeline event. This is the only constructor;
// all events flow through it so the date is always formatted consistently
// and action_items serializes as [] rather than null.
func NewTimelineEvent(id, title string, date time.Time, eventType EventType, urgency Urgency, description string, actionItems []string) TimelineEvent {
	if actionItems == nil {
		actionItems = []string{}
	}
	return TimelineEvent{
		ID:          id,
		Title:       title,
		Date:        date.Format(DateLayout),
		Type:        eventType,
		Urgency:     urgency,
		Description: description,
		ActionItems: actionItems,
	}
}

// SortEventsByDate sorts events ascending by date, preserving the original
// order of events sharing a date.
func SortEventsByDate(events []TimelineEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		// ISO dates compare correctly as strings
		return events[i].Date < events[j].Date
	})
}

// RiskAlert is a single prioritized warning produced by the risk analyzer.
type RiskAlert struct {
	Type           string   `json:"type"`
	Severity       Severity `json:"severity"`
	Message        string   `json:"message"`
	Recommendation string   `json:"recommendation"`
}

// NewRiskAlert builds a risk alert.
func NewRiskAlert(riskType string, severity Severity, message, recommendation string) RiskAlert {
	return RiskAlert{
		Type:           riskType,
		Severity:       severity,
		Message:        message,
		Recommendation: recommendation,
	}
}

// SortAlertsBySeverity sorts alerts by severity rank (critical first),
// preserving predicate evaluation order within a rank.
func SortAlertsBySeverity(alerts []RiskAlert) {
	sort.SliceStable(alerts, func(i, j int) bool {
		return SeverityRank(alerts[i].Severity) < SeverityRank(alerts[j].Severity)
	})
}
