package timer

import (
	"fmt"
	"sync"
	"time"
)

// Timer counts down from an initial duration. It can be paused, resumed
// and reset. Remaining time never goes below zero.
type Timer struct {
	// initial is the duration restored by Reset.
	initial time.Duration
	// remaining is the time left as of the last pause (or start).
	remaining time.Duration
	// startedAt is when the current run began; meaningful only while running.
	startedAt time.Time
	// running reports whether the countdown is active.
	running bool
	// now is the clock source.
	now func() time.Time
	// mu guards the fields above.
	mu sync.Mutex
}

// Option configures a Timer.
type Option func(*Timer)

// WithNow replaces the clock used to measure elapsed time.
func WithNow(now func() time.Time) Option {
	return func(t *Timer) {
		if now != nil {
			t.now = now
		}
	}
}

// New creates a stopped timer for d.
func New(d time.Duration, opts ...Option) *Timer {
	t := &Timer{
		initial:   d,
		remaining: d,
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Start begins or resumes the countdown. Starting a running timer does nothing.
func (t *Timer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		return
	}

	t.running = true
	t.startedAt = t.now()
}

// Pause freezes the countdown, keeping the time left.
func (t *Timer) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running {
		return
	}

	t.remaining -= t.now().Sub(t.startedAt)
	t.running = false
}

// Reset stops the timer and restores the initial duration.
func (t *Timer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.remaining = t.initial
	t.running = false
	t.startedAt = time.Time{}
}

// Running reports whether the countdown is active.
func (t *Timer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.running
}

// Remaining returns the time left, clamped to zero.
func (t *Timer) Remaining() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	remaining := t.remaining
	if t.running {
		remaining -= t.now().Sub(t.startedAt)
	}

	return max(remaining, 0)
}

// Done reports whether no time is left.
func (t *Timer) Done() bool {
	return t.Remaining() == 0
}

// Left formats the remaining time as MM:SS, truncating partial seconds.
func (t *Timer) Left() string {
	seconds := int(t.Remaining() / time.Second)

	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
