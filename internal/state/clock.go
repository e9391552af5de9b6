package state

import "sync/atomic"

// Clock is a logical clock that stamps every board change with a revision.
type Clock struct {
	counter atomic.Uint64
}

// Tick increments the clock and returns the new revision.
func (c *Clock) Tick() uint64 {
	return c.counter.Add(1)
}

// Current returns the last revision handed out.
func (c *Clock) Current() uint64 {
	return c.counter.Load()
}
