package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/Dileep2896/visapath/internal/server/middleware"
	"github.com/Dileep2896/visapath/internal/types"
)

// handleSaveProfile stores the user's profile on their account.
func (s *Server) handleSaveProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	if s.db == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Persistence is not configured")
		return
	}

	var req types.SaveProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Profile.ApplyDefaults()
	if err := req.Profile.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.db.SaveProfile(r.Context(), userID, req.Profile); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to save profile")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleCacheTimeline stores the latest timeline response on the account
// so the frontend can restore it without regenerating.
func (s *Server) handleCacheTimeline(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	if s.db == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Persistence is not configured")
		return
	}

	var req types.CacheTimelineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.TimelineResponse) == 0 {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.db.CacheTimeline(r.Context(), userID, req.TimelineResponse); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to cache timeline")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleCacheTaxGuide stores the latest tax guide on the account.
func (s *Server) handleCacheTaxGuide(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	if s.db == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Persistence is not configured")
		return
	}

	var req types.CacheTaxGuideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.TaxGuide) == 0 {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.db.CacheTaxGuide(r.Context(), userID, req.TaxGuide); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to cache tax guide")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleSaveTimeline stores a named timeline snapshot.
func (s *Server) handleSaveTimeline(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	if s.db == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Persistence is not configured")
		return
	}

	var req types.SaveTimelineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.TimelineResponse) == 0 {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	userInput, err := json.Marshal(req.UserInput)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	id, err := s.db.SaveTimeline(r.Context(), userID, userInput, req.TimelineResponse)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to save timeline")
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]string{"id": id.String()})
}

// handleMyTimelines lists the account's saved timelines, newest first.
func (s *Server) handleMyTimelines(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	if s.db == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Persistence is not configured")
		return
	}

	timelines, err := s.db.ListTimelines(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list timelines")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"timelines": timelines})
}

// handleDeleteTimeline deletes one saved timeline owned by the account.
func (s *Server) handleDeleteTimeline(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	if s.db == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Persistence is not configured")
		return
	}

	timelineID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid timeline ID")
		return
	}

	if err := s.db.DeleteTimeline(r.Context(), userID, timelineID); err != nil {
		s.errorResponse(w, http.StatusNotFound, "Timeline not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// requireUser extracts the authenticated user ID or writes a 401.
func (s *Server) requireUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return uuid.Nil, false
	}
	return userID, true
}
