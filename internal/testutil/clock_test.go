package testutil

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeterministicClock_StartsAtEpoch(t *testing.T) {
	clock := NewDeterministicClock(time.Microsecond)
	assert.Equal(t, Epoch, clock.Now())
	assert.Equal(t, int64(1), clock.Readings())
}

func TestDeterministicClock_UniformStep(t *testing.T) {
	clock := NewDeterministicClock(1500 * time.Nanosecond)

	start := clock.Now()
	end := clock.Now()
	assert.Equal(t, 1500*time.Nanosecond, end.Sub(start))

	start = clock.Now()
	end = clock.Now()
	assert.Equal(t, 1500*time.Nanosecond, end.Sub(start))
}

func TestDeterministicClock_Monotonic(t *testing.T) {
	clock := NewDeterministicClock(time.Nanosecond)

	prev := clock.Now()
	for i := 0; i < 100; i++ {
		next := clock.Now()
		require.True(t, next.After(prev), "reading %d did not advance", i)
		prev = next
	}
}

func TestScriptedClock_PairsFollowScript(t *testing.T) {
	clock := NewScriptedClock(2*time.Microsecond, 5*time.Microsecond)

	var got []time.Duration
	for i := 0; i < 3; i++ {
		start := clock.Now()
		end := clock.Now()
		got = append(got, end.Sub(start))
	}

	// Script cycles once exhausted.
	assert.Equal(t, []time.Duration{2 * time.Microsecond, 5 * time.Microsecond, 2 * time.Microsecond}, got)
}

func TestDeterministicClock_Reset(t *testing.T) {
	clock := NewDeterministicClock(time.Millisecond)
	clock.Now()
	clock.Now()
	clock.Now()

	clock.Reset()
	assert.Equal(t, int64(0), clock.Readings())
	assert.Equal(t, Epoch, clock.Now())
}

func TestDeterministicClock_ThreadSafe(t *testing.T) {
	clock := NewDeterministicClock(time.Nanosecond)
	const numGoroutines = 50
	const callsPerGoroutine = 100

	var wg sync.WaitGroup
	readings := make(chan time.Time, numGoroutines*callsPerGoroutine)
	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < callsPerGoroutine; j++ {
				readings <- clock.Now()
			}
		}()
	}
	wg.Wait()
	close(readings)

	seen := make(map[time.Time]bool)
	for r := range readings {
		assert.False(t, seen[r], "reading %v returned twice", r)
		seen[r] = true
	}
	assert.Len(t, seen, numGoroutines*callsPerGoroutine)
}
