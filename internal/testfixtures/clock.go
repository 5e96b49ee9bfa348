package testfixtures

import (
	"sync"
	"time"
)

// Clock is a hand-driven time source. Generation defaults and session TTLs
// derive from the injected clock, so tests advance it explicitly instead of
// sleeping.
type Clock struct {
	mu      sync.Mutex
	current time.Time
}

// NewClock returns a clock starting at the supplied instant, or at the
// shared ReferenceTime when start is the zero value.
func NewClock(start time.Time) *Clock {
	if start.IsZero() {
		start = ReferenceTime()
	}
	return &Clock{current: start}
}

// Now returns the current instant tracked by the clock.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// NowFunc exposes Now as an injectable `func() time.Time`. A nil clock
// degrades to the real time.Now.
func (c *Clock) NowFunc() func() time.Time {
	if c == nil {
		return time.Now
	}
	return c.Now
}

// Set jumps the clock to the provided instant.
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	c.current = t
	c.mu.Unlock()
}

// Advance moves the clock forward and returns the updated instant.
func (c *Clock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	c.current = c.current.Add(d)
	updated := c.current
	c.mu.Unlock()
	return updated
}

// AdvanceDays moves the clock forward by whole days, shifting the civil date
// that range defaults are computed from.
func (c *Clock) AdvanceDays(n int) time.Time {
	return c.Advance(time.Duration(n) * 24 * time.Hour)
}
