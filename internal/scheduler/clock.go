package scheduler

import "time"

// Timer is a cancellable pending callback.
type Timer interface {
	Stop() bool
}

// Clock is the time source for the scheduler. Injected so tests can drive a
// simulated clock.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

// NewClock returns a Clock backed by the system time.
func NewClock() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
