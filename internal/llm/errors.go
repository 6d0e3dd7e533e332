package llm

import (
	"regexp"
	"strings"
	"time"
)

// retryDelayPattern matches the retry hint Gemini includes in quota errors,
// e.g. `retryDelay:"21s"` or "Please retry in 21.5s".
var retryDelayPattern = regexp.MustCompile(`(?i)retry(?:Delay"?\s*[:=]\s*"?|\s+in\s+)(\d+(?:\.\d+)?)s`)

// IsRateLimited reports whether an error is a provider quota/rate limit
// rejection. Matching is string based because the SDK surfaces these as
// wrapped googleapi errors with varying shapes.
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "RESOURCE_EXHAUSTED") ||
		strings.Contains(strings.ToLower(msg), "quota")
}

// ParseRetryDelay extracts the provider-suggested retry delay from a rate
// limit error. Returns 0 when no hint is present.
func ParseRetryDelay(err error) time.Duration {
	if err == nil {
		return 0
	}
	m := retryDelayPattern.FindStringSubmatch(err.Error())
	if len(m) < 2 {
		return 0
	}
	d, parseErr := time.ParseDuration(m[1] + "s")
	if parseErr != nil {
		return 0
	}
	return d
}
