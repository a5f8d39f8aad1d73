// Package clock abstracts wall time and one-shot timers so that the page
// behaviors can be driven by a manual clock in tests.
package clock

import "time"

// Timer is a scheduled one-shot callback.
type Timer interface {
	// Stop cancels the callback. It reports false if the timer already
	// fired or was stopped.
	Stop() bool
}

// Clock tells time and schedules deferred callbacks.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

// Real returns a Clock backed by the time package.
func Real() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
