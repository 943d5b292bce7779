package voiceprefs

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zerotts/voiceprefs/catalog"
)

// fakeCatalogProvider implements VoiceCatalogProvider for tests, counting
// fetches and optionally failing.
type fakeCatalogProvider struct {
	records []catalog.VoiceRecord
	err     error
	calls   int32
}

func (p *fakeCatalogProvider) Voices(_ context.Context) ([]catalog.VoiceRecord, error) {
	atomic.AddInt32(&p.calls, 1)
	if p.err != nil {
		return nil, p.err
	}
	return p.records, nil
}

func (p *fakeCatalogProvider) callCount() int {
	return int(atomic.LoadInt32(&p.calls))
}

// fakeQuotaProvider implements QuotaProvider for tests.
type fakeQuotaProvider struct {
	quota Quota
	err   error
	calls int32
}

func (p *fakeQuotaProvider) RemainingQuota(_ context.Context) (Quota, error) {
	atomic.AddInt32(&p.calls, 1)
	if p.err != nil {
		return Quota{}, p.err
	}
	return p.quota, nil
}

func (p *fakeQuotaProvider) callCount() int {
	return int(atomic.LoadInt32(&p.calls))
}

// mockLogger records messages per level for assertions.
type mockLogger struct {
	mu       sync.Mutex
	messages map[string][]string
}

func newMockLogger() *mockLogger {
	return &mockLogger{messages: make(map[string][]string)}
}

func (l *mockLogger) record(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages[level] = append(l.messages[level], msg)
}

func (l *mockLogger) Debug(msg string, _ ...any) { l.record("debug", msg) }
func (l *mockLogger) Info(msg string, _ ...any)  { l.record("info", msg) }
func (l *mockLogger) Warn(msg string, _ ...any)  { l.record("warn", msg) }
func (l *mockLogger) Error(msg string, _ ...any) { l.record("error", msg) }
func (l *mockLogger) SetLevel(LogLevel)          {}

func (l *mockLogger) count(level string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.messages[level])
}

// fakeClock is a manually advanced time source shared by manager tests.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}
