package report

import (
	"time"

	"github.com/cockroachdb/apd/v3"
)

// Elapsed durations are measured in nanosecond ticks. Conversion factors
// are exact decimals so no precision is lost to float rounding: 1500ns
// prints as 1.500 microseconds, never 1.4999999.
var (
	microsPerTick = apd.New(1, -3) // 0.001
	millisPerTick = apd.New(1, -6) // 0.000001
)

// decimalContext has enough precision for any int64 tick count times a
// conversion factor.
var decimalContext = apd.BaseContext.WithPrecision(34)

// Microseconds renders d in microseconds with nanosecond precision.
func Microseconds(d time.Duration) string {
	return convert(d, microsPerTick)
}

// Milliseconds renders d in milliseconds with nanosecond precision.
func Milliseconds(d time.Duration) string {
	return convert(d, millisPerTick)
}

// convert panics if the decimal context traps, which should never happen
// in practice.
func convert(d time.Duration, factor *apd.Decimal) string {
	var out apd.Decimal
	if _, err := decimalContext.Mul(&out, apd.New(int64(d), 0), factor); err != nil {
		// 34 digits always hold an int64 times a power of ten.
		panic(err)
	}
	return out.Text('f')
}

// Mean returns the arithmetic mean of ds, truncated to whole ticks.
// Returns 0 for an empty slice.
func Mean(ds []time.Duration) time.Duration {
	if len(ds) == 0 {
		return 0
	}
	return Total(ds) / time.Duration(len(ds))
}

// Total returns the sum of ds.
func Total(ds []time.Duration) time.Duration {
	var total time.Duration
	for _, d := range ds {
		total += d
	}
	return total
}
