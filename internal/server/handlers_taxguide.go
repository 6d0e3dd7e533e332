package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Dileep2896/visapath/internal/llm"
	"github.com/Dileep2896/visapath/internal/prompts"
	"github.com/Dileep2896/visapath/internal/taxguide"
	"github.com/Dileep2896/visapath/internal/types"
)

// handleTaxGuide builds a personalized tax guide: the residency, FICA,
// forms, deadline, and treaty determinations are deterministic; the model
// only writes the guidance prose.
func (s *Server) handleTaxGuide(w http.ResponseWriter, r *http.Request) {
	if s.llmClient == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Tax guidance is not configured")
		return
	}

	if err := s.aiBudget.Check(); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	var req types.TaxGuideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validator.New().Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	guide := taxguide.Determine(req, time.Now().UTC())

	prompt, err := prompts.TaxGuidance(req, guide)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	prompt = prompts.TaxGuidanceSystem() + "\n\n" + prompt

	guidance, err := s.llmClient.GenerateText(r.Context(), prompt)
	if err != nil {
		if llm.IsRateLimited(err) {
			s.aiBudget.MarkExhausted()
			s.observeAI("tax_guide", "rate_limited")
			s.errorResponse(w, http.StatusTooManyRequests,
				"AI rate limit reached. Please wait and try again.")
			return
		}
		s.logger.Error("tax guidance generation failed", zap.Error(err))
		s.observeAI("tax_guide", "error")
		s.errorResponse(w, http.StatusBadGateway, "Failed to generate tax guide. Please try again.")
		return
	}
	s.aiBudget.Record()
	s.observeAI("tax_guide", "ok")

	guide.Guidance = guidance
	s.jsonResponse(w, http.StatusOK, guide)
}
