// Package sim owns the canonical asteroid state and coordinates the
// deflection effect engines: activation flags, delta accumulation and the
// deferred resets that follow each effect's completion.
package sim

import "time"

// Clock supplies the monotonic time the simulation runs on. Production
// code uses the wall clock; tests advance a ManualClock so cooldowns and
// blink windows can be checked without sleeping.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// NewClock returns the wall clock.
func NewClock() Clock { return realClock{} }

// ManualClock is a hand-advanced clock for tests.
type ManualClock struct {
	now time.Time
}

// NewManualClock creates a manual clock starting at the given time.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now implements Clock.
func (m *ManualClock) Now() time.Time { return m.now }

// Advance moves the clock forward by d.
func (m *ManualClock) Advance(d time.Duration) { m.now = m.now.Add(d) }
