package engine

import "time"

// Clock is the elapsed-time source used to measure each invocation.
//
// Implementations must be monotonic: elapsed time is always computed as
// end.Sub(start) between two readings from the same clock.
type Clock interface {
	Now() time.Time
}

// SystemClock reads time.Now, which carries Go's monotonic clock reading.
// Resolution is nanoseconds on all supported platforms.
//
// Thread-safety: SystemClock is stateless and safe for concurrent use.
type SystemClock struct{}

// Now returns the current time including its monotonic component.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// NewClock returns the production clock.
func NewClock() Clock {
	return SystemClock{}
}
