package engine

import (
	"fmt"
	"time"
)

// Record is the outcome of one invocation: its result and how long it took.
type Record struct {
	Result  any
	Elapsed time.Duration
}

// Runner invokes a calculation once per argument vector and times each call.
type Runner struct {
	clock Clock
}

// NewRunner creates a Runner reading elapsed time from clock.
func NewRunner(clock Clock) *Runner {
	return &Runner{clock: clock}
}

// Run executes entry for every vector in batch, in order.
//
// Each call is bracketed by two clock readings. If a call returns an error
// or panics, Run stops immediately and returns an *Error with
// ErrCodeCalculationFailed wrapping the cause. Records from earlier calls in
// the same batch are discarded: timings from an aborted batch are not
// comparable.
func (r *Runner) Run(entry *Entry, batch Batch) ([]Record, error) {
	records := make([]Record, 0, len(batch))
	for _, args := range batch {
		start := r.clock.Now()
		result, err := invoke(entry.fn, args)
		end := r.clock.Now()
		if err != nil {
			return nil, NewCalculationFailedError(entry.Name, err)
		}
		records = append(records, Record{Result: result, Elapsed: end.Sub(start)})
	}
	return records, nil
}

// invoke calls fn, converting a panic into an error.
func invoke(fn Func, args Args) (result any, err error) {
	defer func() {
		if p := recover(); p != nil {
			if perr, ok := p.(error); ok {
				err = fmt.Errorf("panic: %w", perr)
				return
			}
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return fn(args)
}
