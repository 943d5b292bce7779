// Package store implements the TTL-bounded per-user preference store. Any
// user idle for longer than the configured TTL is evicted wholesale; the
// cleanup is lazy, amortized across normal traffic, so no background timer
// is needed.
package store

import (
	"sync"
	"time"
)

// DefaultTTL is the idle duration after which a user's record is evicted.
const DefaultTTL = 24 * time.Hour

// Logger is the subset of logging this package needs.
type Logger interface {
	Info(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...any) {}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used to report evictions.
func WithLogger(l Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock replaces the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Store holds per-user string preferences in memory. All operations are
// safe for concurrent use.
type Store struct {
	mu         sync.Mutex
	data       map[int64]map[string]string
	lastAccess map[int64]time.Time
	ttl        time.Duration
	now        func() time.Time
	logger     Logger
}

// New creates a Store that evicts users idle for longer than ttl. A
// non-positive ttl falls back to DefaultTTL.
func New(ttl time.Duration, opts ...Option) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	s := &Store{
		data:       make(map[int64]map[string]string),
		lastAccess: make(map[int64]time.Time),
		ttl:        ttl,
		now:        time.Now,
		logger:     nopLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the stored value for the user's key, or fallback when unset.
// Any access, including a miss, refreshes the user's liveness.
func (s *Store) Get(userID int64, key, fallback string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cleanup()
	s.lastAccess[userID] = s.now()

	if prefs, ok := s.data[userID]; ok {
		if v, ok := prefs[key]; ok {
			return v
		}
	}
	return fallback
}

// Set stores a key/value for the user, creating the record if absent, and
// refreshes the user's liveness.
func (s *Store) Set(userID int64, key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cleanup()
	if _, ok := s.data[userID]; !ok {
		s.data[userID] = make(map[string]string)
	}
	s.data[userID][key] = value
	s.lastAccess[userID] = s.now()
}

// Len reports how many users currently have a tracked record. It runs the
// same cleanup as Get and Set.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cleanup()
	return len(s.lastAccess)
}

// cleanup drops every user whose last access is older than the TTL. Caller
// must hold s.mu.
func (s *Store) cleanup() {
	now := s.now()
	var expired []int64
	for uid, last := range s.lastAccess {
		if now.Sub(last) > s.ttl {
			expired = append(expired, uid)
		}
	}
	if len(expired) == 0 {
		return
	}
	for _, uid := range expired {
		delete(s.data, uid)
		delete(s.lastAccess, uid)
	}
	s.logger.Info("cleaned up inactive users", "count", len(expired))
}
