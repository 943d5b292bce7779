// manager.go
package voiceprefs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/zerotts/voiceprefs/cache"
	"github.com/zerotts/voiceprefs/catalog"
	"github.com/zerotts/voiceprefs/ratelimit"
	"github.com/zerotts/voiceprefs/store"
)

// Default TTLs for the two provider caches.
const (
	DefaultCatalogTTL = time.Hour
	DefaultQuotaTTL   = 5 * time.Minute
)

// Manager owns the session state of the front-end: the preference store,
// the admission limiter and the two provider caches. It is created once at
// the process composition root and passed by reference to consumers.
type Manager struct {
	mu     sync.RWMutex // guards config.definitions
	config *Config

	prefs        *store.Store
	limiter      *ratelimit.Limiter
	catalogCache *cache.Timed[catalog.Index]
	quotaCache   *cache.Timed[Quota]
}

// New creates a Manager from the given options. Both providers are
// mandatory; construction fails eagerly when one is missing rather than
// deferring the error to first use.
func New(opts ...Option) (*Manager, error) {
	cfg := &Config{
		logger:        NewDefaultLogger(),
		now:           time.Now,
		preferenceTTL: store.DefaultTTL,
		catalogTTL:    DefaultCatalogTTL,
		quotaTTL:      DefaultQuotaTTL,
		maxRequests:   ratelimit.DefaultMaxRequests,
		rateWindow:    ratelimit.DefaultWindow,
		definitions:   make(map[string]PreferenceDefinition),
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.catalogProvider == nil {
		return nil, fmt.Errorf("%w: voice catalog provider", ErrNotConfigured)
	}
	if cfg.quotaProvider == nil {
		return nil, fmt.Errorf("%w: quota provider", ErrNotConfigured)
	}

	m := &Manager{config: cfg}
	m.prefs = store.New(cfg.preferenceTTL,
		store.WithLogger(cfg.logger), store.WithClock(cfg.now))
	m.limiter = ratelimit.New(cfg.maxRequests, cfg.rateWindow,
		ratelimit.WithLogger(cfg.logger), ratelimit.WithClock(cfg.now))
	m.catalogCache = cache.NewTimed(cfg.catalogTTL, m.refreshCatalog,
		cache.WithClock(cfg.now))
	m.quotaCache = cache.NewTimed(cfg.quotaTTL, m.refreshQuota,
		cache.WithClock(cfg.now))

	for _, def := range defaultDefinitions() {
		m.config.definitions[def.Key] = def
	}

	return m, nil
}

// CheckAdmission reports whether a request from the user may proceed under
// the sliding-window rate limit. Admitted requests are recorded.
func (m *Manager) CheckAdmission(userID int64) bool {
	return m.limiter.Allow(userID)
}

// GetPreference returns the user's stored value for key. When the key is
// unset the caller's fallback is returned; an empty fallback falls through
// to the registered definition's default, if any.
func (m *Manager) GetPreference(userID int64, key, fallback string) string {
	if fallback == "" {
		if def, ok := m.GetDefinition(key); ok {
			fallback = def.DefaultValue
		}
	}
	return m.prefs.Get(userID, key, fallback)
}

// SetPreference stores a value for the user. The key must have a
// registered definition, and the value must be among the definition's
// allowed values when that set is closed.
func (m *Manager) SetPreference(userID int64, key, value string) error {
	if key == "" {
		return ErrInvalidInput
	}

	def, exists := m.GetDefinition(key)
	if !exists {
		return ErrPreferenceNotDefined
	}

	if err := validateValue(value, def); err != nil {
		return err
	}

	m.prefs.Set(userID, key, value)
	return nil
}

// DefinePreference registers a preference definition, replacing any
// previous definition for the same key.
func (m *Manager) DefinePreference(def PreferenceDefinition) error {
	if def.Key == "" {
		return ErrInvalidKey
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.config.definitions[def.Key] = def
	return nil
}

// GetDefinition returns the registered definition for key.
func (m *Manager) GetDefinition(key string) (PreferenceDefinition, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	def, exists := m.config.definitions[key]
	return def, exists
}

// GetCatalogIndex returns the categorized voice index, refreshing it
// through the catalog provider when the cached copy is stale. Provider
// failures are propagated unchanged and leave the cache untouched.
func (m *Manager) GetCatalogIndex(ctx context.Context) (catalog.Index, error) {
	return m.catalogCache.Get(ctx)
}

// GetRemainingQuota returns the remaining character budget, refreshing it
// through the quota provider when the cached copy is stale. An unknown
// quota is a regular value, not an error.
func (m *Manager) GetRemainingQuota(ctx context.Context) (Quota, error) {
	return m.quotaCache.Get(ctx)
}

func (m *Manager) refreshCatalog(ctx context.Context) (catalog.Index, error) {
	var idx catalog.Index
	err := Instrument(m.config.logger, "catalog.refresh", func() error {
		m.config.logger.Info("fetching fresh voice catalog")
		records, err := m.config.catalogProvider.Voices(ctx)
		if err != nil {
			return err
		}
		idx = catalog.BuildIndex(records)
		m.config.logger.Debug("voice catalog indexed",
			"male", len(idx.Categories[catalog.CategoryMale]),
			"female", len(idx.Categories[catalog.CategoryFemale]),
		)
		return nil
	})
	return idx, err
}

func (m *Manager) refreshQuota(ctx context.Context) (Quota, error) {
	var q Quota
	err := Instrument(m.config.logger, "quota.refresh", func() error {
		quota, err := m.config.quotaProvider.RemainingQuota(ctx)
		if err != nil {
			return err
		}
		q = quota
		if q.Known {
			m.config.logger.Debug("quota refreshed", "remaining", q.Remaining)
		} else {
			m.config.logger.Debug("quota refreshed", "remaining", "unknown")
		}
		return nil
	})
	return q, err
}
