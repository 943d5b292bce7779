// Package voiceprefs defines the core types used by the session layer.
package voiceprefs

import (
	"time"
	"unicode/utf8"
)

// CreditsPerChars is the number of characters covered by one provider
// credit.
const CreditsPerChars = 10

// Quota is the remaining character budget reported by the quota provider.
// Known is false when the provider responded but its answer carried no
// usable quota fields (for example when the quota feature is disabled for
// the account). An unknown quota is a valid, cacheable value; it is not an
// error.
type Quota struct {
	Remaining int  `json:"remaining"`
	Known     bool `json:"known"`
}

// Covers reports whether the quota allows synthesizing n characters. An
// unknown quota never blocks a request; enforcement then falls to the
// provider itself.
func (q Quota) Covers(n int) bool {
	if !q.Known {
		return true
	}
	return q.Remaining >= n
}

// EstimateCredits estimates the provider credits needed to synthesize text.
// The provider bills per character, so the count is in runes, not bytes.
// Any non-empty text costs at least one credit.
func EstimateCredits(text string) int {
	credits := utf8.RuneCountInString(text) / CreditsPerChars
	if credits < 1 {
		return 1
	}
	return credits
}

// Config holds the internal configuration for a Manager instance. It is
// populated by applying functional Options when a new Manager is created
// with New(). Not intended to be instantiated directly.
type Config struct {
	catalogProvider VoiceCatalogProvider
	quotaProvider   QuotaProvider
	logger          Logger
	now             func() time.Time

	preferenceTTL time.Duration
	catalogTTL    time.Duration
	quotaTTL      time.Duration
	maxRequests   int
	rateWindow    time.Duration

	definitions map[string]PreferenceDefinition
}

// Option configures a Manager instance. Options are passed to New().
type Option func(*Config)

// WithCatalogProvider sets the voice catalog provider backing the catalog
// cache. Mandatory for a functional Manager.
func WithCatalogProvider(p VoiceCatalogProvider) Option {
	return func(c *Config) {
		c.catalogProvider = p
	}
}

// WithQuotaProvider sets the quota provider backing the quota cache.
// Mandatory for a functional Manager.
func WithQuotaProvider(p QuotaProvider) Option {
	return func(c *Config) {
		c.quotaProvider = p
	}
}

// WithLogger sets the Logger used by the Manager and its components. If
// not set, a default slog-backed logger is used.
func WithLogger(l Logger) Option {
	return func(c *Config) {
		c.logger = l
	}
}

// WithClock replaces the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Config) {
		c.now = now
	}
}

// WithPreferenceTTL sets the idle TTL after which a user's preference
// record is evicted. Defaults to 24 hours.
func WithPreferenceTTL(ttl time.Duration) Option {
	return func(c *Config) {
		c.preferenceTTL = ttl
	}
}

// WithRateLimit sets the admission policy: at most maxRequests per user
// within the sliding window. Defaults to 10 requests per minute.
func WithRateLimit(maxRequests int, window time.Duration) Option {
	return func(c *Config) {
		c.maxRequests = maxRequests
		c.rateWindow = window
	}
}

// WithCatalogTTL sets how long a fetched voice catalog stays fresh.
// Defaults to one hour.
func WithCatalogTTL(ttl time.Duration) Option {
	return func(c *Config) {
		c.catalogTTL = ttl
	}
}

// WithQuotaTTL sets how long a fetched quota value stays fresh. Defaults
// to five minutes.
func WithQuotaTTL(ttl time.Duration) Option {
	return func(c *Config) {
		c.quotaTTL = ttl
	}
}
