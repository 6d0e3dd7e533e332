// Package aitimeline generates immigration timelines with an LLM and
// hardens the output: the model response is schema validated, normalized,
// and re-dated before it reaches a caller. The deterministic generator in
// internal/timeline remains the fallback when the model cannot produce a
// valid payload.
package aitimeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Dileep2896/visapath/internal/llm"
	"github.com/Dileep2896/visapath/internal/prompts"
	"github.com/Dileep2896/visapath/internal/schemas"
	"github.com/Dileep2896/visapath/internal/types"
)

// DefaultRetryAttempts bounds how many times a malformed model response is
// retried before giving up.
const DefaultRetryAttempts = 3

// ErrRateLimited reports that the model provider refused the request for
// quota reasons. Callers fall back to the deterministic generator instead
// of retrying.
var ErrRateLimited = errors.New("model provider rate limited")

// Generator produces AI timelines from a model client.
type Generator struct {
	client   llm.Client
	logger   *zap.Logger
	attempts int
}

// NewGenerator builds a Generator. attempts <= 0 selects the default.
func NewGenerator(client llm.Client, logger *zap.Logger, attempts int) *Generator {
	if attempts <= 0 {
		attempts = DefaultRetryAttempts
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{client: client, logger: logger, attempts: attempts}
}

// Generate asks the model for a timeline for the given profile and
// returns the validated, normalized response. Rate limiting fails fast
// with ErrRateLimited; malformed responses are retried up to the
// configured attempt count.
func (g *Generator) Generate(ctx context.Context, profile *types.UserProfile, today time.Time) (*types.TimelineResponse, error) {
	if profile == nil {
		return nil, fmt.Errorf("profile is required")
	}
	profile.ApplyDefaults()
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	todayISO := today.Format(types.DateLayout)
	prompt, err := prompts.Timeline(profile, todayISO, schemas.AITimelineSchema())
	if err != nil {
		return nil, err
	}
	prompt = prompts.TimelineSystem() + "\n\n" + prompt

	var lastErr error
	for attempt := 1; attempt <= g.attempts; attempt++ {
		raw, err := g.client.GenerateJSON(ctx, prompt)
		if err != nil {
			if llm.IsRateLimited(err) {
				return nil, fmt.Errorf("%w: %v", ErrRateLimited, err)
			}
			lastErr = err
			g.logger.Warn("ai timeline generation failed",
				zap.Int("attempt", attempt),
				zap.String("model", g.client.ActiveModel()),
				zap.Error(err))
			continue
		}

		resp, err := parseResponse(raw, todayISO)
		if err != nil {
			lastErr = err
			g.logger.Warn("ai timeline response rejected",
				zap.Int("attempt", attempt),
				zap.String("model", g.client.ActiveModel()),
				zap.Error(err))
			continue
		}
		return resp, nil
	}

	return nil, fmt.Errorf("ai timeline generation failed after %d attempts: %w", g.attempts, lastErr)
}

// parseResponse validates the raw model output against the schema,
// decodes it, and normalizes the result for the given date.
func parseResponse(raw, todayISO string) (*types.TimelineResponse, error) {
	if err := schemas.ValidateAITimeline(raw); err != nil {
		return nil, err
	}

	var resp types.TimelineResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil, fmt.Errorf("failed to decode timeline response: %w", err)
	}

	Normalize(&resp, todayISO)
	return &resp, nil
}
