// Package scheduler abstracts delayed callbacks so retry timing is
// deterministic in tests and wall-clock in production.
package scheduler

import "time"

// Timer is a pending callback that can be cancelled.
type Timer interface {
	// Stop cancels the callback. Returns false if it already fired or
	// was already stopped.
	Stop() bool
}

// Scheduler schedules a function to run after a delay.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Wall schedules on real time.
type Wall struct{}

func (Wall) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
