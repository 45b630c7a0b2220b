package google

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ServiceType identifies a Google API service for rate limiting purposes.
type ServiceType string

const (
	// ServiceSheets is the Google Sheets API service.
	ServiceSheets ServiceType = "sheets"
	// ServicePlaces is the Places API (New) service.
	ServicePlaces ServiceType = "places"
)

// defaultBackoff applies when a 429 response carries no Retry-After.
const defaultBackoff = 60 * time.Second

// RateLimitConfig holds rate limiting configuration for a service.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate limit.
	RequestsPerSecond float64
	// BurstSize is the maximum burst size.
	BurstSize int
}

// DefaultRateLimits provides conservative defaults for each Google service.
// These are well below Google's actual limits to avoid hitting quotas.
var DefaultRateLimits = map[ServiceType]RateLimitConfig{
	ServiceSheets: {RequestsPerSecond: 1.0, BurstSize: 5},   // 60 reads/min/user
	ServicePlaces: {RequestsPerSecond: 10.0, BurstSize: 20}, // 600 QPM per method
}

// RateLimiter provides rate limiting for Google API requests.
// It uses a token bucket algorithm with a backoff window after 429 responses.
type RateLimiter struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	retryAt time.Time
	now     func() time.Time
}

// NewRateLimiter creates a rate limiter with the defaults of the given service.
func NewRateLimiter(service ServiceType) *RateLimiter {
	cfg, ok := DefaultRateLimits[service]
	if !ok {
		cfg = RateLimitConfig{RequestsPerSecond: 5.0, BurstSize: 10}
	}
	return NewRateLimiterWithConfig(cfg)
}

// NewRateLimiterWithConfig creates a rate limiter with custom configuration.
// A non-positive rate disables the token bucket; a burst below 1 becomes 1.
func NewRateLimiterWithConfig(cfg RateLimitConfig) *RateLimiter {
	limit := rate.Limit(cfg.RequestsPerSecond)
	if cfg.RequestsPerSecond <= 0 {
		limit = rate.Inf
	}
	burst := cfg.BurstSize
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(limit, burst),
		now:     time.Now,
	}
}

// Wait blocks until a request can be made without exceeding the rate limit.
// It also respects any backoff period set by RecordRateLimitError.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()

	if wait := retryAt.Sub(r.now()); wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	return r.limiter.Wait(ctx)
}

// RecordRateLimitError opens a backoff window after a 429 response.
// A later window never shortens an earlier one.
func (r *RateLimiter) RecordRateLimitError(retryAfterSeconds int) {
	backoff := defaultBackoff
	if retryAfterSeconds > 0 {
		backoff = time.Duration(retryAfterSeconds) * time.Second
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if until := r.now().Add(backoff); until.After(r.retryAt) {
		r.retryAt = until
	}
}

// Allow checks if a request can be made immediately without blocking.
func (r *RateLimiter) Allow() bool {
	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()

	if r.now().Before(retryAt) {
		return false
	}
	return r.limiter.Allow()
}
