package testutil

import (
	"sync"
	"time"
)

// Epoch is the fixed starting time of every DeterministicClock.
var Epoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// DeterministicClock is a fake elapsed-time source for tests.
//
// Every call to Now returns a time strictly derived from the number of
// previous calls, so timing output is reproducible byte for byte.
//
// Two modes:
//   - Uniform (NewDeterministicClock): every reading advances by step, so a
//     start/end pair measures exactly step.
//   - Scripted (NewScriptedClock): reading pairs measure the given durations
//     in order, cycling when the script is exhausted.
//
// Unlike engine.SystemClock, DeterministicClock can be reset for test reuse.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type DeterministicClock struct {
	mu       sync.Mutex
	step     time.Duration
	script   []time.Duration
	offset   time.Duration
	readings int64
}

// NewDeterministicClock creates a clock that advances by step on every read.
func NewDeterministicClock(step time.Duration) *DeterministicClock {
	return &DeterministicClock{step: step}
}

// NewScriptedClock creates a clock whose n-th start/end reading pair is
// elapsed[n] apart.
func NewScriptedClock(elapsed ...time.Duration) *DeterministicClock {
	script := make([]time.Duration, len(elapsed))
	copy(script, elapsed)
	return &DeterministicClock{script: script}
}

// Now returns the current fake time and advances the clock.
func (c *DeterministicClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := Epoch.Add(c.offset)
	switch {
	case len(c.script) > 0:
		// Even readings open a measurement; advance so the odd reading closes it.
		if c.readings%2 == 0 {
			pair := (c.readings / 2) % int64(len(c.script))
			c.offset += c.script[pair]
		}
	default:
		c.offset += c.step
	}
	c.readings++
	return now
}

// Readings returns how many times Now has been called.
func (c *DeterministicClock) Readings() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.readings
}

// Reset rewinds the clock to Epoch and clears the reading count.
func (c *DeterministicClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.offset = 0
	c.readings = 0
}
