package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/roach88/calcbench/internal/engine"
)

// DefaultThreshold is the largest batch whose records are printed one by one.
const DefaultThreshold = 15

// NoneText is printed for nil results and empty sequences.
const NoneText = "none"

// Reporter writes results and timings for one line at a time.
//
// Output for a batch of n records:
//   - n <= threshold: "The answer is: ..." and "Execution time: ..." per record
//   - n > threshold: per-record lines are suppressed; Begin/Report print
//     "Running n executions... done."
//   - n > 1: "Total execution time" (ms) and "Average execution time" (µs)
type Reporter struct {
	w         io.Writer
	threshold int
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithThreshold overrides DefaultThreshold. Values below 1 are ignored.
func WithThreshold(n int) Option {
	return func(r *Reporter) {
		if n > 0 {
			r.threshold = n
		}
	}
}

// New creates a Reporter writing to w.
func New(w io.Writer, opts ...Option) *Reporter {
	r := &Reporter{w: w, threshold: DefaultThreshold}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Threshold returns the per-record printout limit.
func (r *Reporter) Threshold() int {
	return r.threshold
}

// Prepared reports a finished range expansion of n vectors.
func (r *Reporter) Prepared(n int) {
	fmt.Fprintf(r.w, "Preparing %d executions... done.\n", n)
}

// Begin is called before a batch of batchSize runs. For batches above the
// threshold it opens the "Running ..." line that Report closes.
func (r *Reporter) Begin(batchSize int) {
	if batchSize > r.threshold {
		fmt.Fprintf(r.w, "Running %d executions...", batchSize)
	}
}

// Abort terminates the line opened by Begin when a batch fails.
func (r *Reporter) Abort(batchSize int) {
	if batchSize > r.threshold {
		fmt.Fprintln(r.w)
	}
}

// Report prints records for a batch of batchSize vectors.
func (r *Reporter) Report(records []engine.Record, batchSize int) {
	if batchSize > r.threshold {
		fmt.Fprintln(r.w, " done.")
	} else {
		for _, rec := range records {
			fmt.Fprintf(r.w, "The answer is: %s\n", FormatResult(rec.Result))
			fmt.Fprintf(r.w, "Execution time: %s microseconds\n", Microseconds(rec.Elapsed))
		}
	}

	if batchSize > 1 {
		elapsed := Elapsed(records)
		fmt.Fprintf(r.w, "Total execution time: %s milliseconds\n", Milliseconds(Total(elapsed)))
		fmt.Fprintf(r.w, "Average execution time: %s microseconds\n", Microseconds(Mean(elapsed)))
	}
}

// FormatResult renders a calculation result as text.
//
// nil and empty []int32 render as "none"; a non-empty []int32 renders as its
// elements joined by ", "; anything else uses its fmt %v form.
func FormatResult(v any) string {
	switch val := v.(type) {
	case nil:
		return NoneText
	case []int32:
		return joinInt32(val)
	case engine.Int32List:
		return joinInt32(val)
	case string:
		return val
	default:
		return fmt.Sprint(val)
	}
}

func joinInt32(list []int32) string {
	if len(list) == 0 {
		return NoneText
	}
	parts := make([]string, len(list))
	for i, n := range list {
		parts[i] = strconv.FormatInt(int64(n), 10)
	}
	return strings.Join(parts, ", ")
}

// Elapsed extracts the durations of records.
func Elapsed(records []engine.Record) []time.Duration {
	out := make([]time.Duration, len(records))
	for i, rec := range records {
		out[i] = rec.Elapsed
	}
	return out
}
