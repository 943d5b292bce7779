package ratelimit

import (
	"testing"
	"time"
)

type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func TestLimiter_AllowsUpToMax(t *testing.T) {
	clock := newFakeClock()
	rl := New(10, time.Minute, WithClock(clock.Now))

	for i := 1; i <= 10; i++ {
		clock.Advance(time.Second)
		if !rl.Allow(1) {
			t.Fatalf("request %d should be allowed", i)
		}
	}

	clock.Advance(time.Second)
	if rl.Allow(1) {
		t.Error("11th request within the window should be rejected")
	}
}

func TestLimiter_WindowSlides(t *testing.T) {
	clock := newFakeClock()
	rl := New(10, time.Minute, WithClock(clock.Now))

	// Fill the window in one burst.
	for i := 0; i < 10; i++ {
		if !rl.Allow(1) {
			t.Fatalf("warm-up request %d rejected", i)
		}
	}
	if rl.Allow(1) {
		t.Fatal("over-limit request should be rejected")
	}

	// 61 seconds after the burst every timestamp has left the window.
	clock.Advance(61 * time.Second)
	if !rl.Allow(1) {
		t.Error("request after window elapsed should be allowed")
	}
}

func TestLimiter_RejectionsNotRecorded(t *testing.T) {
	clock := newFakeClock()
	rl := New(2, time.Minute, WithClock(clock.Now))

	rl.Allow(1)
	rl.Allow(1)
	// Rejected attempts must not push the window forward.
	for i := 0; i < 5; i++ {
		clock.Advance(time.Second)
		if rl.Allow(1) {
			t.Fatal("expected rejection while window is full")
		}
	}

	// Both admitted timestamps expire together; the hammering above must
	// not have extended the lockout.
	clock.Advance(time.Minute)
	if !rl.Allow(1) {
		t.Error("expected admission once the original requests aged out")
	}
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	clock := newFakeClock()
	rl := New(1, time.Minute, WithClock(clock.Now))

	if !rl.Allow(1) {
		t.Fatal("first request for user 1 should pass")
	}
	if rl.Allow(1) {
		t.Error("second request for user 1 should be rejected")
	}
	if !rl.Allow(2) {
		t.Error("user 2 must not be affected by user 1's window")
	}
}

func TestLimiter_BurstStraddlingBoundary(t *testing.T) {
	clock := newFakeClock()
	rl := New(10, time.Minute, WithClock(clock.Now))

	// 5 requests now, 5 more 50 seconds later: the window holds all 10
	// even though a fixed minute bucket would have reset in between.
	for i := 0; i < 5; i++ {
		if !rl.Allow(1) {
			t.Fatalf("first burst request %d rejected", i)
		}
	}
	clock.Advance(50 * time.Second)
	for i := 0; i < 5; i++ {
		if !rl.Allow(1) {
			t.Fatalf("second burst request %d rejected", i)
		}
	}
	if rl.Allow(1) {
		t.Error("combined bursts fill the sliding window; request must be rejected")
	}

	// 11 seconds later the first burst has aged out.
	clock.Advance(11 * time.Second)
	if !rl.Allow(1) {
		t.Error("expected admission after first burst left the window")
	}
}
