package server

import (
	"sync"
	"time"

	"github.com/Dileep2896/visapath/internal/types"
)

// exhaustedCooldown is how long AI pre-checks fail fast after the model
// provider returns a quota error. After the cooldown the next request
// reaches the provider again; if it still fails the cooldown renews.
const exhaustedCooldown = 5 * time.Minute

// AIBudget tracks the shared daily AI request budget. The hard limit
// lives on the provider side; this gives fast-fail behavior and usage
// visibility for the frontend. State is in memory and resets on restart.
// Tracking is server-wide because the API key is shared across users.
type AIBudget struct {
	mu             sync.Mutex
	hits           []time.Time
	limit          int
	window         time.Duration
	exhaustedUntil time.Time
	now            func() time.Time
}

// NewAIBudget creates a budget tracker with the given daily limit.
func NewAIBudget(limit int, window time.Duration) *AIBudget {
	if window <= 0 {
		window = 24 * time.Hour
	}
	return &AIBudget{limit: limit, window: window, now: time.Now}
}

func (b *AIBudget) clean(now time.Time) {
	cutoff := now.Add(-b.window)
	kept := b.hits[:0]
	for _, t := range b.hits {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	b.hits = kept
}

// Record counts a successful AI dispatch against the budget.
func (b *AIBudget) Record() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.hits = append(b.hits, b.now())
}

// MarkExhausted flags the provider quota as externally exhausted so
// pre-checks fail instantly for the cooldown period.
func (b *AIBudget) MarkExhausted() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.exhaustedUntil = b.now().Add(exhaustedCooldown)
}

// Status returns the current usage for the frontend.
func (b *AIBudget) Status() types.AIUsage {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	b.clean(now)

	used := len(b.hits)
	blocked := now.Before(b.exhaustedUntil)

	usage := types.AIUsage{
		Used:    used,
		Limit:   b.limit,
		Allowed: !blocked && used < b.limit,
	}
	if blocked {
		usage.RetryAfter = int(b.exhaustedUntil.Sub(now).Seconds())
	} else {
		usage.Remaining = max(b.limit-used, 0)
	}
	return usage
}

// Check returns an error when the budget does not allow another request.
// Call it before dispatching an AI request.
func (b *AIBudget) Check() error {
	status := b.Status()
	if !status.Allowed {
		return &ErrAIBudgetExceeded{RetryAfter: status.RetryAfter}
	}
	return nil
}
