package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Dileep2896/visapath/internal/config"
	"github.com/Dileep2896/visapath/internal/types"
)

// newTestServer builds a server with no database and no model client.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret-that-is-long-enough")
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("RATE_LIMIT_ENABLED", "true")

	cfg := &config.App{
		Port:            8080,
		CORSOrigins:     []string{"*"},
		AIDailyBudget:   1500,
		AIRetryAttempts: 3,
	}
	s, err := New(cfg, Deps{Logger: zap.NewNop()})
	require.NoError(t, err)
	t.Cleanup(func() { s.rateLimiter.Stop() })
	return s
}

func TestNew_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := New(&config.App{Port: 8080}, Deps{Logger: zap.NewNop()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.RemoteAddr = "192.0.2.1:12345"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s.Handler(), http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestGenerateTimeline(t *testing.T) {
	s := newTestServer(t)

	graduation := time.Now().UTC().AddDate(0, 4, 0).Format(types.DateLayout)
	rec := doJSON(t, s.Handler(), http.MethodPost, "/api/generate-timeline", map[string]any{
		"visa_type":           "F-1",
		"is_stem":             true,
		"expected_graduation": graduation,
		"career_goal":         "stay_us_longterm",
		"country":             "India",
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp types.TimelineResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	require.NotEmpty(t, resp.TimelineEvents)
	for i := 1; i < len(resp.TimelineEvents); i++ {
		assert.LessOrEqual(t, resp.TimelineEvents[i-1].Date, resp.TimelineEvents[i].Date)
	}
	assert.Equal(t, types.VisaF1, resp.CurrentStatus.Visa)
	assert.Equal(t, "Student (CPT/On-Campus)", resp.CurrentStatus.WorkAuth)
	require.NotNil(t, resp.CurrentStatus.DaysUntilNextDeadline)
	assert.GreaterOrEqual(t, *resp.CurrentStatus.DaysUntilNextDeadline, 0)
}

func TestGenerateTimeline_InvalidVisa(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s.Handler(), http.MethodPost, "/api/generate-timeline", map[string]any{
		"visa_type": "B-2",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "visa_type")
}

func TestAITimeline_Unconfigured(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s.Handler(), http.MethodPost, "/api/ai-timeline", map[string]any{
		"visa_type": "F-1",
	})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAIUsage(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s.Handler(), http.MethodGet, "/api/ai-usage", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var usage types.AIUsage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &usage))
	assert.Equal(t, 1500, usage.Limit)
	assert.Zero(t, usage.Used)
	assert.True(t, usage.Allowed)
}

func TestRequiredDocuments(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s.Handler(), http.MethodGet, "/api/required-documents", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var all struct {
		AvailableSteps []string                     `json:"available_steps"`
		Documents      map[string]DocumentChecklist `json:"documents"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	assert.Len(t, all.AvailableSteps, 4)
	assert.Contains(t, all.Documents, "opt_application")

	rec = doJSON(t, s.Handler(), http.MethodGet, "/api/required-documents?step=h1b_petition", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var checklist DocumentChecklist
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &checklist))
	assert.Equal(t, "H-1B Petition", checklist.Step)
	assert.NotEmpty(t, checklist.Documents)
}

func TestVisaTypes(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s.Handler(), http.MethodGet, "/api/visa-types", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "F-1 Student Visa")
	assert.Contains(t, rec.Body.String(), "Master's")
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/generate-timeline", nil)
	req.RemoteAddr = "192.0.2.1:12345"
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestAuthEndpointRateLimit(t *testing.T) {
	s := newTestServer(t)

	body := map[string]string{"email": "someone@example.com", "password": "hunter2pass"}

	// Login burst capacity is 5; the sixth immediate request is refused.
	var last *httptest.ResponseRecorder
	for i := 0; i < 6; i++ {
		last = doJSON(t, s.Handler(), http.MethodPost, "/api/auth/login", body)
	}
	require.Equal(t, http.StatusTooManyRequests, last.Code)
	assert.Equal(t, "10", last.Header().Get("X-RateLimit-Limit"))
	assert.Contains(t, last.Body.String(), "rate_limit_exceeded")
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	s := newTestServer(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/auth/me"},
		{http.MethodPut, "/api/auth/profile"},
		{http.MethodPost, "/api/auth/save-timeline"},
		{http.MethodGet, "/api/auth/my-timelines"},
	} {
		rec := doJSON(t, s.Handler(), route.method, route.path, nil)
		assert.Equalf(t, http.StatusUnauthorized, rec.Code, "%s %s", route.method, route.path)
	}
}

func TestChat_Unconfigured(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s.Handler(), http.MethodPost, "/api/chat", map[string]string{"message": "hi"})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRateLimitHeadersPresent(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s.Handler(), http.MethodPost, "/api/generate-timeline", map[string]any{
		"visa_type":           "F-1",
		"expected_graduation": time.Now().UTC().AddDate(0, 2, 0).Format(types.DateLayout),
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "120", rec.Header().Get("X-RateLimit-Limit"))
	assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Remaining"))
}

func TestBuildCurrentStatus(t *testing.T) {
	today := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	events := []types.TimelineEvent{
		{ID: "past", Title: "Past Deadline", Date: "2026-01-01", Type: types.EventDeadline, IsPast: true},
		{ID: "milestone", Title: "Graduation", Date: "2026-05-15", Type: types.EventMilestone},
		{ID: "next", Title: "OPT Application Deadline", Date: "2026-02-14", Type: types.EventDeadline},
	}
	// Events arrive sorted from the generator.
	status := BuildCurrentStatus(types.VisaOPT, []types.TimelineEvent{events[0], events[2], events[1]}, today)

	assert.Equal(t, types.VisaOPT, status.Visa)
	assert.Equal(t, "OPT EAD", status.WorkAuth)
	assert.Equal(t, "OPT Application Deadline", status.NextDeadline)
	require.NotNil(t, status.DaysUntilNextDeadline)
	assert.Equal(t, 30, *status.DaysUntilNextDeadline)
}

func TestWorkAuth_UnknownVisaFallsBack(t *testing.T) {
	assert.Equal(t, "E-3", workAuth(types.VisaType("E-3")))
}
