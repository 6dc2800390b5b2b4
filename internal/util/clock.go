package util

import "time"

// Clock is the source of time for everything that schedules or measures
// durations in the control loop.
type Clock interface {
	Now() time.Time
	// AfterFunc calls f in its own goroutine once d has elapsed
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a scheduled one-shot callback
type Timer interface {
	// Stop prevents the timer from firing, returns false if it
	// already fired or was stopped before
	Stop() bool
}

type systemClock struct{}

// NewSystemClock returns a Clock backed by the time package
func NewSystemClock() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
