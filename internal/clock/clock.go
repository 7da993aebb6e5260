package clock

import (
	"sync"
	"time"
)

// Source provides the current time in unix seconds. Successive calls never
// go backwards.
type Source interface {
	Now() int64
}

// SystemClock reads the wall clock and clamps it so that it stays
// non-decreasing even if the host clock is stepped back.
type SystemClock struct {
	mu   sync.Mutex
	last int64
}

func NewSystemClock() *SystemClock {
	return &SystemClock{}
}

func (c *SystemClock) Now() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now().Unix()
	if now < c.last {
		return c.last
	}
	c.last = now
	return now
}

// FixedClock returns a settable time. Used by replays and tests.
type FixedClock struct {
	mu  sync.Mutex
	now int64
}

func NewFixedClock(now int64) *FixedClock {
	return &FixedClock{now: now}
}

func (c *FixedClock) Now() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set moves the clock; earlier times are ignored.
func (c *FixedClock) Set(now int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if now > c.now {
		c.now = now
	}
}

func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now += int64(d / time.Second)
}
