package ratelimit

import (
	"fmt"
	"sync"
	"time"

	"folio/internal/clock"
	"folio/internal/common"
)

// Debouncer delays fn until wait has passed without another call, then runs
// it once with the arguments of the last call.
type Debouncer[A any] struct {
	clock clock.Clock
	fn    func(A)
	wait  time.Duration

	mu      sync.Mutex
	timer   clock.Timer
	gen     uint64
	pending A
}

// NewDebounce wraps fn. It returns a ValidationError when wait is not
// positive.
func NewDebounce[A any](c clock.Clock, wait time.Duration, fn func(A)) (*Debouncer[A], error) {
	if wait <= 0 {
		return nil, common.NewValidationError(fmt.Sprintf("debounce wait must be positive, got %s", wait))
	}
	if fn == nil {
		return nil, common.NewValidationError("debounce callback is required")
	}
	return &Debouncer[A]{clock: c, fn: fn, wait: wait}, nil
}

// Call cancels any scheduled run and schedules a new one wait from now.
func (d *Debouncer[A]) Call(arg A) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.pending = arg
	d.timer = d.clock.AfterFunc(d.wait, func() { d.fire(gen) })
}

// fire runs fn unless a later Call or Cancel superseded generation gen.
func (d *Debouncer[A]) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || d.timer == nil {
		d.mu.Unlock()
		return
	}
	arg := d.pending
	var zero A
	d.pending = zero
	d.timer = nil
	d.mu.Unlock()

	d.fn(arg)
}

// Cancel drops the scheduled run, if any, and reports whether one was
// pending.
func (d *Debouncer[A]) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer == nil {
		return false
	}
	d.timer.Stop()
	d.timer = nil
	d.gen++
	var zero A
	d.pending = zero
	return true
}

// Pending reports whether a run is scheduled.
func (d *Debouncer[A]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Func returns Call as a plain callback.
func (d *Debouncer[A]) Func() func(A) {
	return d.Call
}

// Wait returns the quiet period.
func (d *Debouncer[A]) Wait() time.Duration {
	return d.wait
}
