// Package eventloop runs page behavior code on a single goroutine.
//
// Browser events, timer callbacks and asynchronous results are all posted to
// the loop and executed one at a time, so behavior code never needs locks.
package eventloop

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"folio/internal/clock"
)

const defaultBuffer = 256

// Loop is a single-goroutine work queue.
type Loop struct {
	queue chan func()

	mu      sync.Mutex
	stopped bool
	done    chan struct{}
}

// New creates a loop whose queue holds up to buffer pending callbacks.
func New(buffer int) *Loop {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Loop{
		queue: make(chan func(), buffer),
		done:  make(chan struct{}),
	}
}

// Post queues f for execution on the loop goroutine. It blocks while the
// queue is full and reports false once the loop has stopped.
func (l *Loop) Post(f func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}

	select {
	case l.queue <- f:
		return true
	case <-l.done:
		return false
	}
}

// Run executes posted callbacks until ctx is cancelled. Callbacks still
// queued when the context ends are discarded.
func (l *Loop) Run(ctx context.Context) error {
	defer l.stop()

	slog.Debug("event loop started")
	for {
		select {
		case <-ctx.Done():
			slog.Debug("event loop stopped")
			return ctx.Err()
		case f := <-l.queue:
			l.exec(f)
		}
	}
}

// Done is closed once Run has returned.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

func (l *Loop) exec(f func()) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("event loop callback panicked", "panic", fmt.Sprint(r))
		}
	}()
	f()
}

func (l *Loop) stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.stopped {
		l.stopped = true
		close(l.done)
	}
}

// Clock returns a clock whose timer callbacks execute on the loop.
func (l *Loop) Clock(base clock.Clock) clock.Clock {
	return &loopClock{loop: l, base: base}
}

type loopClock struct {
	loop *Loop
	base clock.Clock
}

func (c *loopClock) Now() time.Time {
	return c.base.Now()
}

func (c *loopClock) AfterFunc(d time.Duration, f func()) clock.Timer {
	t := &loopTimer{}
	t.inner = c.base.AfterFunc(d, func() {
		c.loop.Post(func() {
			// Stop may have been called after the base timer fired but
			// before the callback reached the loop.
			if t.claim() {
				f()
			}
		})
	})
	return t
}

// loopTimer makes Stop authoritative even when the base timer has already
// fired and its callback is waiting in the queue.
type loopTimer struct {
	mu    sync.Mutex
	inner clock.Timer
	spent bool
}

func (t *loopTimer) claim() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.spent {
		return false
	}
	t.spent = true
	return true
}

func (t *loopTimer) Stop() bool {
	t.inner.Stop()
	return t.claim()
}
