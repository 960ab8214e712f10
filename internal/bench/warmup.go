// Package bench prepares the process for stable timing measurements.
package bench

import (
	"context"
	"log/slog"
	"runtime"
	"time"
)

// DefaultWarmup matches the 1000-1500ms window needed to settle CPU caches
// and frequency scaling before the first measurement.
const DefaultWarmup = 1200 * time.Millisecond

// spinCount is the number of xor rounds per warm-up iteration.
const spinCount = 100_000_000

// Options controls Prepare.
type Options struct {
	// Duration is how long to spin. Zero disables the warm-up loop.
	Duration time.Duration

	// CPU is the processor to pin to. Negative disables pinning.
	CPU int

	// Logger receives debug output about tuning failures.
	Logger *slog.Logger
}

// Prepare locks the calling goroutine to its OS thread, pins and prioritises
// that thread where the platform allows, then spins for opts.Duration.
//
// It returns the warm-up seed so callers can print it; using the value keeps
// the loop from being optimised away. Affinity and priority are best effort:
// failures are logged at debug level and otherwise ignored.
//
// The caller keeps the thread lock for the rest of the session, so every
// later measurement runs on the same pinned thread.
func Prepare(ctx context.Context, opts Options) int64 {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	runtime.LockOSThread()

	if opts.CPU >= 0 {
		if err := pinCPU(opts.CPU); err != nil {
			logger.Debug("cpu affinity unavailable", "cpu", opts.CPU, "error", err)
		}
	}
	if err := raisePriority(); err != nil {
		logger.Debug("priority unchanged", "error", err)
	}

	return Warmup(ctx, opts.Duration)
}

// Warmup spins a xor loop until d has elapsed or ctx is done.
// The loop always runs at least one iteration when d > 0.
func Warmup(ctx context.Context, d time.Duration) int64 {
	seed := time.Now().UnixNano()
	if d <= 0 {
		return seed
	}

	result := seed
	deadline := time.Now().Add(d)
	for {
		result = spin(seed, spinCount)
		if time.Now().After(deadline) || ctx.Err() != nil {
			return result
		}
	}
}

// spin performs count rounds of meaningless bit operations.
func spin(seed int64, count int) int64 {
	result := seed
	for i := 0; i < count; i++ {
		result ^= int64(i) ^ seed
	}
	return result
}
