package github

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// GitHubRateLimit is the authenticated rate limit (5000/hour).
	GitHubRateLimit = 5000

	// DefaultRequestsPerSecond is the default proactive throttle rate.
	DefaultRequestsPerSecond = 5.0

	// HeaderRateLimit is the rate limit header.
	HeaderRateLimit = "X-RateLimit-Limit"

	// HeaderRateRemaining is the remaining requests header.
	HeaderRateRemaining = "X-RateLimit-Remaining"

	// HeaderRateReset is the reset timestamp header (Unix seconds).
	HeaderRateReset = "X-RateLimit-Reset"

	// HeaderRetryAfter is the retry-after header (seconds).
	HeaderRetryAfter = "Retry-After"
)

// RateLimiter throttles requests to the GitHub API.
//
// A token bucket spaces requests out; the X-RateLimit-* headers of the last
// response tell whether the quota is exhausted. When it is, Wait fails with
// a RateLimitError until the reset time instead of sleeping.
type RateLimiter struct {
	mu        sync.Mutex
	remaining int           // From API header
	limit     int           // From API header
	resetTime time.Time     // From API header
	bucket    *rate.Limiter // Proactive throttling
	now       func() time.Time
}

// NewRateLimiter creates a rate limiter allowing rps requests per second.
// A non-positive rps selects DefaultRequestsPerSecond.
func NewRateLimiter(rps float64) *RateLimiter {
	if rps <= 0 {
		rps = DefaultRequestsPerSecond
	}
	return &RateLimiter{
		remaining: GitHubRateLimit, // Assume full quota initially
		limit:     GitHubRateLimit,
		bucket:    rate.NewLimiter(rate.Limit(rps), 1),
		now:       time.Now,
	}
}

// Wait blocks until the token bucket admits a request. It returns a
// RateLimitError without waiting when the API quota is known to be
// exhausted until a future reset.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	remaining := r.remaining
	limit := r.limit
	resetTime := r.resetTime
	now := r.now()
	r.mu.Unlock()

	if remaining <= 0 && now.Before(resetTime) {
		return &RateLimitError{
			ResetAt:   resetTime,
			Remaining: remaining,
			Limit:     limit,
		}
	}

	return r.bucket.Wait(ctx)
}

// UpdateFromResponse records the quota reported by a response. Malformed
// headers are ignored.
func (r *RateLimiter) UpdateFromResponse(resp *http.Response) {
	if resp == nil {
		return
	}
	h := resp.Header

	r.mu.Lock()
	defer r.mu.Unlock()

	if v, ok := headerInt(h, HeaderRateRemaining); ok {
		r.remaining = int(v)
	}
	if v, ok := headerInt(h, HeaderRateLimit); ok {
		r.limit = int(v)
	}
	if v, ok := headerInt(h, HeaderRateReset); ok {
		r.resetTime = time.Unix(v, 0)
	}

	// Secondary limits announce a pause instead of a quota.
	if v, ok := headerInt(h, HeaderRetryAfter); ok {
		r.remaining = 0
		r.resetTime = r.now().Add(time.Duration(v) * time.Second)
	}
}

func headerInt(h http.Header, name string) (int64, bool) {
	raw := h.Get(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Snapshot returns the last known quota: remaining requests, the limit and
// the reset time.
func (r *RateLimiter) Snapshot() (remaining, limit int, resetAt time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.remaining, r.limit, r.resetTime
}
