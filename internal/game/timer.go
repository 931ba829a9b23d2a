package game

import (
	"time"

	"github.com/benbjohnson/clock"
)

// Timer schedules one-second ticks while a game is in progress. It only
// produces ticks; the Session decides what a tick means.
type Timer struct {
	clock  clock.Clock
	ticker *clock.Ticker
}

// NewTimer returns a stopped timer driven by c.
func NewTimer(c clock.Clock) *Timer {
	if c == nil {
		c = clock.New()
	}
	return &Timer{clock: c}
}

// Start begins ticking. Starting a running timer is a no-op.
func (t *Timer) Start() {
	if t.ticker != nil {
		return
	}
	t.ticker = t.clock.Ticker(time.Second)
}

// Stop cancels pending ticks. Safe to call on a stopped timer.
func (t *Timer) Stop() {
	if t.ticker == nil {
		return
	}
	t.ticker.Stop()
	t.ticker = nil
}

// Running reports whether the timer is started.
func (t *Timer) Running() bool { return t.ticker != nil }

// C is the tick channel, nil while stopped.
func (t *Timer) C() <-chan time.Time {
	if t.ticker == nil {
		return nil
	}
	return t.ticker.C
}
