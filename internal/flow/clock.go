package flow

import "time"

// Clock abstracts wall time so controllers and timers can be tested
// deterministically. Production code uses RealClock.
type Clock interface {
	Now() time.Time
	// After behaves like time.After.
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// RealClock is the Clock used outside of tests.
var RealClock Clock = realClock{}
