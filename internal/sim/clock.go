package sim

import (
	"sync"
	"time"
)

// Clock supplies the timestamps handed to field.State.Advance.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock, including its monotonic reading.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FrameClock is a virtual clock that moves forward by a fixed step every
// time it is read, so a headless run sees exactly one frame of elapsed time
// per call.
type FrameClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

func NewFrameClock(start time.Time, step time.Duration) *FrameClock {
	return &FrameClock{now: start, step: step}
}

func (c *FrameClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(c.step)
	return c.now
}

// Peek returns the current time without stepping.
func (c *FrameClock) Peek() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}
