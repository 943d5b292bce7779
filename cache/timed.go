// Package cache provides a time-boxed get-or-refresh cache around a single
// expensive value, such as a provider catalog listing or a quota lookup.
package cache

import (
	"context"
	"sync"
	"time"
)

// RefreshFunc fetches a fresh value from the external collaborator.
type RefreshFunc[T any] func(ctx context.Context) (T, error)

// Option configures a Timed cache.
type Option func(*settings)

type settings struct {
	now func() time.Time
}

// WithClock replaces the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}

// Timed caches one value for a fixed TTL and refreshes it through the
// callback once the value goes stale. A failed refresh leaves the previous
// entry untouched and surfaces the error to the caller; staleness is
// time-bound only and never used as a fallback on error.
//
// Concurrent callers hitting a stale entry are collapsed into a single
// refresh: the first caller runs the callback while the rest wait, recheck
// freshness and reuse the result. The callback runs outside the entry lock
// so a slow provider never blocks Peek or fresh reads.
type Timed[T any] struct {
	ttl     time.Duration
	refresh RefreshFunc[T]
	now     func() time.Time

	refreshMu sync.Mutex // serializes refresh attempts

	mu        sync.RWMutex // guards the entry below
	value     T
	fetchedAt time.Time
	ok        bool
}

// NewTimed creates a Timed cache with the given TTL and refresh callback.
func NewTimed[T any](ttl time.Duration, refresh RefreshFunc[T], opts ...Option) *Timed[T] {
	s := settings{now: time.Now}
	for _, opt := range opts {
		opt(&s)
	}
	return &Timed[T]{
		ttl:     ttl,
		refresh: refresh,
		now:     s.now,
	}
}

// Get returns the cached value, refreshing it first when absent or stale.
func (c *Timed[T]) Get(ctx context.Context) (T, error) {
	if v, ok := c.fresh(); ok {
		return v, nil
	}

	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	// Another caller may have finished refreshing while we waited.
	if v, ok := c.fresh(); ok {
		return v, nil
	}

	v, err := c.refresh(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	c.mu.Lock()
	c.value = v
	c.fetchedAt = c.now()
	c.ok = true
	c.mu.Unlock()

	return v, nil
}

// Peek returns the cached value without refreshing. The second return is
// false when the entry is absent or stale.
func (c *Timed[T]) Peek() (T, bool) {
	return c.fresh()
}

func (c *Timed[T]) fresh() (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.ok && c.now().Sub(c.fetchedAt) < c.ttl {
		return c.value, true
	}
	var zero T
	return zero, false
}
