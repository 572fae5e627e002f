// Package clock abstracts wall-clock reads so time-window decisions can be
// tested deterministically. Production code injects Real(); tests inject a
// Fake with manual control over the current time.
package clock

import (
	"sync"
	"time"
)

type Clock interface {
	// Now returns the current UTC time. Successive calls never go backwards.
	Now() time.Time
}

type realClock struct {
	mu   sync.Mutex
	last time.Time
}

// Real returns a clock backed by time.Now. UTC conversion drops Go's
// monotonic reading, so the clock clamps to the last value it handed out
// to stay non-decreasing across wall-clock adjustments.
func Real() Clock {
	return &realClock{}
}

func (c *realClock) Now() time.Time {
	now := time.Now().UTC()

	c.mu.Lock()
	defer c.mu.Unlock()
	if now.Before(c.last) {
		return c.last
	}
	c.last = now
	return now
}
