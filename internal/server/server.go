// Package server provides the HTTP REST API for the immigration planner.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Dileep2896/visapath/internal/aitimeline"
	"github.com/Dileep2896/visapath/internal/config"
	"github.com/Dileep2896/visapath/internal/db"
	"github.com/Dileep2896/visapath/internal/llm"
	"github.com/Dileep2896/visapath/internal/observability"
	"github.com/Dileep2896/visapath/internal/server/middleware"
	"github.com/Dileep2896/visapath/internal/server/ratelimit"
)

// Server represents the HTTP server.
type Server struct {
	httpServer  *http.Server
	cfg         *config.App
	db          *db.DB
	llmClient   llm.Client
	generator   *aitimeline.Generator
	aiBudget    *AIBudget
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler
	logger      *zap.Logger
	metrics     *observability.Metrics
}

// Deps carries the external dependencies. DB and LLMClient may be nil;
// the endpoints that need them answer 503 instead.
type Deps struct {
	DB        *db.DB
	LLMClient llm.Client
	Logger    *zap.Logger
	Metrics   *observability.Metrics
}

// New creates a server instance wired to the given dependencies.
func New(cfg *config.App, deps Deps) (*Server, error) {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		cfg:       cfg,
		db:        deps.DB,
		llmClient: deps.LLMClient,
		logger:    logger,
		metrics:   deps.Metrics,
		aiBudget:  NewAIBudget(cfg.AIDailyBudget, 24*time.Hour),
	}

	if deps.LLMClient != nil {
		s.generator = aitimeline.NewGenerator(deps.LLMClient, logger, cfg.AIRetryAttempts)
	}

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	s.userService = NewUserService(deps.DB, passwordConfig)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.routes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Core engines
	mux.HandleFunc("POST /api/generate-timeline", s.handleGenerateTimeline)
	mux.HandleFunc("POST /api/ai-timeline", s.handleAITimeline)
	mux.HandleFunc("GET /api/ai-usage", s.handleAIUsage)
	mux.HandleFunc("POST /api/chat", s.handleChat)
	mux.HandleFunc("POST /api/tax-guide", s.handleTaxGuide)
	mux.HandleFunc("GET /api/required-documents", s.handleRequiredDocuments)
	mux.HandleFunc("GET /api/visa-types", s.handleVisaTypes)

	// Auth
	mux.HandleFunc("POST /api/auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", s.authHandler.Login)

	// Account routes behind JWT auth
	auth := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())
	mux.Handle("GET /api/auth/me", auth(http.HandlerFunc(s.authHandler.Me)))
	mux.Handle("PUT /api/auth/password", auth(http.HandlerFunc(s.authHandler.UpdatePassword)))
	mux.Handle("PUT /api/auth/profile", auth(http.HandlerFunc(s.handleSaveProfile)))
	mux.Handle("PUT /api/auth/cached-timeline", auth(http.HandlerFunc(s.handleCacheTimeline)))
	mux.Handle("PUT /api/auth/cached-tax-guide", auth(http.HandlerFunc(s.handleCacheTaxGuide)))
	mux.Handle("POST /api/auth/save-timeline", auth(http.HandlerFunc(s.handleSaveTimeline)))
	mux.Handle("GET /api/auth/my-timelines", auth(http.HandlerFunc(s.handleMyTimelines)))
	mux.Handle("DELETE /api/auth/my-timelines/{id}", auth(http.HandlerFunc(s.handleDeleteTimeline)))

	return s.withRateLimit(s.withLogging(s.withCORS(mux)))
}

// Start begins listening and blocks until an interrupt, then shuts down
// gracefully.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-stop
	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.db != nil {
		s.db.Close()
	}
	if s.llmClient != nil {
		if err := s.llmClient.Close(); err != nil {
			s.logger.Warn("failed to close model client", zap.Error(err))
		}
	}

	s.logger.Info("server stopped")
	return nil
}

// Handler exposes the full middleware-wrapped handler for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// withCORS adds CORS headers from the configured origin list.
func (s *Server) withCORS(next http.Handler) http.Handler {
	origins := "*"
	if len(s.cfg.CORSOrigins) > 0 {
		origins = s.cfg.CORSOrigins[0]
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origins)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit enforces the per-endpoint request limits.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		if !allowed {
			s.setRateLimitHeaders(w, info)
			s.rateLimitResponse(w, info)
			return
		}

		s.setRateLimitHeaders(w, info)
		next.ServeHTTP(w, r)
	})
}

// withLogging logs each request with its duration and records metrics.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		elapsed := time.Since(start)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("elapsed", elapsed),
			zap.String("remote", r.RemoteAddr))

		if s.metrics != nil {
			s.metrics.ObserveRequest(r.Method, r.URL.Path, rec.status, elapsed)
		}
	})
}

// statusRecorder captures the response status for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// observeAI records an AI request outcome when metrics are configured.
func (s *Server) observeAI(kind, outcome string) {
	if s.metrics != nil {
		s.metrics.ObserveAIRequest(kind, outcome)
	}
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID extracts the client identifier (IP) from the request.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Too many attempts. Please wait a minute and try again.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	s.logger.Warn("rate limit exceeded",
		zap.Int("limit", info.Limit),
		zap.Time("reset", info.ResetTime))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
