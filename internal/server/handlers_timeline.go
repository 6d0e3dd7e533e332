package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Dileep2896/visapath/internal/aitimeline"
	"github.com/Dileep2896/visapath/internal/dates"
	"github.com/Dileep2896/visapath/internal/risk"
	"github.com/Dileep2896/visapath/internal/timeline"
	"github.com/Dileep2896/visapath/internal/types"
)

// workAuthLabels maps a visa type to its current work authorization label.
var workAuthLabels = map[types.VisaType]string{
	types.VisaF1:  "Student (CPT/On-Campus)",
	types.VisaOPT: "OPT EAD",
	types.VisaH1B: "H-1B Employment",
	types.VisaH4:  "H-4 (limited)",
	types.VisaJ1:  "Academic Training",
	types.VisaL1:  "L-1 Employment",
}

func workAuth(visa types.VisaType) string {
	if label, ok := workAuthLabels[visa]; ok {
		return label
	}
	return string(visa)
}

// BuildCurrentStatus summarizes the visa, work authorization, and next
// upcoming deadline from the generated events.
func BuildCurrentStatus(visa types.VisaType, events []types.TimelineEvent, today time.Time) types.CurrentStatus {
	status := types.CurrentStatus{
		Visa:     visa,
		WorkAuth: workAuth(visa),
	}

	for _, e := range events {
		if e.Type != types.EventDeadline || e.IsPast {
			continue
		}
		if d, ok, err := dates.Parse(e.Date); ok && err == nil {
			days := dates.DaysBetween(today, d)
			status.DaysUntilNextDeadline = &days
			status.NextDeadline = e.Title
		}
		break
	}
	return status
}

// handleGenerateTimeline runs the deterministic timeline generator and
// risk analyzer for a submitted profile.
func (s *Server) handleGenerateTimeline(w http.ResponseWriter, r *http.Request) {
	var profile types.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	profile.ApplyDefaults()

	today := time.Now().UTC()

	events, err := timeline.Generate(profile, today)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	alerts, err := risk.Analyze(profile, events, today)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, types.TimelineResponse{
		TimelineEvents: events,
		RiskAlerts:     alerts,
		CurrentStatus:  BuildCurrentStatus(profile.VisaType, events, today),
	})
}

// handleAITimeline generates a timeline with the model, guarded by the
// shared AI budget.
func (s *Server) handleAITimeline(w http.ResponseWriter, r *http.Request) {
	if s.generator == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "AI generation is not configured")
		return
	}

	if err := s.aiBudget.Check(); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	var profile types.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	profile.ApplyDefaults()
	if err := profile.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := s.generator.Generate(r.Context(), &profile, time.Now().UTC())
	if err != nil {
		if errors.Is(err, aitimeline.ErrRateLimited) {
			s.aiBudget.MarkExhausted()
			s.observeAI("timeline", "rate_limited")
			s.errorResponse(w, http.StatusTooManyRequests,
				"AI rate limit reached. Please wait and try again.")
			return
		}
		s.logger.Error("ai timeline failed", zap.Error(err))
		s.observeAI("timeline", "error")
		s.errorResponse(w, http.StatusBadGateway, "Failed to generate timeline. Please try again.")
		return
	}
	s.aiBudget.Record()
	s.observeAI("timeline", "ok")

	s.jsonResponse(w, http.StatusOK, resp)
}

// handleAIUsage reports the state of the shared AI budget so the
// frontend can pre-check before triggering expensive calls.
func (s *Server) handleAIUsage(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.aiBudget.Status())
}
