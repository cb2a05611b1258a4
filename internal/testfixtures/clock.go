package testfixtures

import (
	"sync"
	"time"
)

// Clock is a deterministic time source for tests. Services take their now
// func from it so timestamps in assertions stay stable.
type Clock struct {
	mu      sync.Mutex
	current time.Time
}

// NewClock builds a clock starting at the given instant. A zero start falls
// back to the shared ReferenceTime.
func NewClock(start time.Time) *Clock {
	if start.IsZero() {
		start = ReferenceTime()
	}
	return &Clock{current: start}
}

// Now reports the instant the clock currently holds.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// NowFunc adapts the clock to the func() time.Time shape the services expect.
// A nil clock degrades to the real time.Now.
func (c *Clock) NowFunc() func() time.Time {
	if c == nil {
		return time.Now
	}
	return c.Now
}

// Set pins the clock to t.
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	c.current = t
	c.mu.Unlock()
}

// Advance moves the clock forward by d and returns the new instant.
func (c *Clock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	c.current = c.current.Add(d)
	updated := c.current
	c.mu.Unlock()
	return updated
}

// Current is an alias for Now used where the call site wants to stress that
// no time passes.
func (c *Clock) Current() time.Time {
	return c.Now()
}
