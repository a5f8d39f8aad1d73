// Package ratelimit tames high-frequency page events.
//
// Throttler runs a callback at most once per interval and drops the calls in
// between. Debouncer runs a callback once the calls have stopped for a quiet
// period. Both own their state; wrappers share nothing.
package ratelimit

import (
	"fmt"
	"sync"
	"time"

	"folio/internal/clock"
	"folio/internal/common"
)

// Throttler runs fn on the first call of each window and drops every call
// that arrives before interval has elapsed since the last executed call.
type Throttler[A any] struct {
	clock    clock.Clock
	fn       func(A)
	interval time.Duration

	mu    sync.Mutex
	last  time.Time
	fired bool
}

// NewThrottle wraps fn. It returns a ValidationError when interval is not
// positive.
func NewThrottle[A any](c clock.Clock, interval time.Duration, fn func(A)) (*Throttler[A], error) {
	if interval <= 0 {
		return nil, common.NewValidationError(fmt.Sprintf("throttle interval must be positive, got %s", interval))
	}
	if fn == nil {
		return nil, common.NewValidationError("throttle callback is required")
	}
	return &Throttler[A]{clock: c, fn: fn, interval: interval}, nil
}

// Call runs fn synchronously with arg if the current window is open and
// reports whether it did.
func (t *Throttler[A]) Call(arg A) bool {
	t.mu.Lock()
	now := t.clock.Now()
	if t.fired && now.Sub(t.last) < t.interval {
		t.mu.Unlock()
		return false
	}
	t.fired = true
	t.last = now
	t.mu.Unlock()

	t.fn(arg)
	return true
}

// Func returns Call as a plain callback.
func (t *Throttler[A]) Func() func(A) {
	return func(arg A) { t.Call(arg) }
}

// Interval returns the throttle window.
func (t *Throttler[A]) Interval() time.Duration {
	return t.interval
}
