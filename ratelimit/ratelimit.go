// Package ratelimit implements per-user request admission over a true
// sliding window. Exact timestamps are kept and pruned, so bursts
// straddling any boundary are still throttled correctly, unlike a
// fixed-bucket counter.
package ratelimit

import (
	"sync"
	"time"
)

// Defaults matching the admission policy of the front-end.
const (
	DefaultMaxRequests = 10
	DefaultWindow      = time.Minute
)

// Logger is the subset of logging this package needs.
type Logger interface {
	Warn(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Warn(string, ...any) {}

// Option configures a Limiter.
type Option func(*Limiter)

// WithLogger sets the logger used to report rejected requests.
func WithLogger(l Logger) Option {
	return func(rl *Limiter) {
		if l != nil {
			rl.logger = l
		}
	}
}

// WithClock replaces the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(rl *Limiter) {
		if now != nil {
			rl.now = now
		}
	}
}

// Limiter tracks request timestamps per user and admits at most
// maxRequests within the sliding window. Safe for concurrent use.
type Limiter struct {
	mu          sync.Mutex
	maxRequests int
	window      time.Duration
	requests    map[int64][]time.Time
	now         func() time.Time
	logger      Logger
}

// New creates a Limiter admitting at most maxRequests per window.
// Non-positive arguments fall back to the defaults.
func New(maxRequests int, window time.Duration, opts ...Option) *Limiter {
	if maxRequests <= 0 {
		maxRequests = DefaultMaxRequests
	}
	if window <= 0 {
		window = DefaultWindow
	}
	rl := &Limiter{
		maxRequests: maxRequests,
		window:      window,
		requests:    make(map[int64][]time.Time),
		now:         time.Now,
		logger:      nopLogger{},
	}
	for _, opt := range opts {
		opt(rl)
	}
	return rl
}

// Allow reports whether a request from userID may proceed. An admitted
// request is recorded; a rejected one is not, so hammering a full window
// does not extend the lockout.
func (rl *Limiter) Allow(userID int64) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	cutoff := now.Add(-rl.window)

	kept := rl.requests[userID][:0]
	for _, ts := range rl.requests[userID] {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	rl.requests[userID] = kept

	if len(kept) >= rl.maxRequests {
		rl.logger.Warn("rate limit exceeded",
			"user_id", userID,
			"requests", len(kept),
			"window", rl.window.String(),
		)
		return false
	}

	rl.requests[userID] = append(kept, now)
	return true
}
