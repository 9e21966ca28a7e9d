package output

import "time"

// Timer is a cancellable scheduled callback.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d. The production implementation wraps
// time.AfterFunc; tests drive a manual clock.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}
