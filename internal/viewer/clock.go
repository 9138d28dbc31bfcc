package viewer

import "time"

// Clock is a monotonic time source.
type Clock interface {
	Ticks() time.Duration
}

// Animator measures the time between animation steps.
type Animator struct {
	clock   Clock
	last    time.Duration
	started bool
}

// NewAnimator creates an animator reading from clock.
func NewAnimator(clock Clock) *Animator {
	return &Animator{clock: clock}
}

// Reset makes the current clock reading the baseline for the next Step.
func (a *Animator) Reset() {
	a.last = a.clock.Ticks()
	a.started = true
}

// Step returns the seconds elapsed since the previous Step or Reset. The first
// Step on an animator that was never reset returns 0.
func (a *Animator) Step() float32 {
	if !a.started {
		a.Reset()
		return 0
	}
	now := a.clock.Ticks()
	dt := now - a.last
	a.last = now
	if dt < 0 {
		return 0
	}
	return float32(dt.Seconds())
}
