// Package clock abstracts wall-clock reads and one-shot scheduling so the
// timer engine can run against real time in production and a fake clock in
// tests.
package clock

import "time"

// Clock provides the two time primitives the engine needs.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
	// AfterFunc calls f once after d has elapsed. The returned Timer cancels
	// the call if it has not fired yet.
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a pending AfterFunc call.
type Timer interface {
	// Stop prevents the call from firing. It returns false if the call has
	// already fired or been stopped.
	Stop() bool
}

// Real returns a Clock backed by the time package.
func Real() Clock {
	return realClock{}
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
