package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/calcbench/internal/engine"
)

func uniformRecords(n int, elapsed time.Duration) []engine.Record {
	records := make([]engine.Record, n)
	for i := range records {
		records[i] = engine.Record{Result: int64(i), Elapsed: elapsed}
	}
	return records
}

func TestReport_SingleRecord(t *testing.T) {
	buf := &bytes.Buffer{}
	r := New(buf)

	r.Begin(1)
	r.Report([]engine.Record{{Result: int64(5), Elapsed: 1500 * time.Nanosecond}}, 1)

	assert.Equal(t, "The answer is: 5\nExecution time: 1.500 microseconds\n", buf.String())
}

func TestReport_ThresholdBoundary(t *testing.T) {
	tests := []struct {
		name          string
		size          int
		wantPerRecord bool
	}{
		{"exactly_threshold", 15, true},
		{"above_threshold", 16, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			r := New(buf)

			r.Begin(tt.size)
			r.Report(uniformRecords(tt.size, time.Microsecond), tt.size)
			out := buf.String()

			answers := strings.Count(out, "The answer is:")
			if tt.wantPerRecord {
				assert.Equal(t, tt.size, answers)
				assert.NotContains(t, out, "Running")
			} else {
				assert.Zero(t, answers)
				assert.Contains(t, out, "Running 16 executions... done.\n")
			}
			// Aggregates print for any batch larger than one.
			assert.Contains(t, out, "Total execution time:")
			assert.Contains(t, out, "Average execution time: 1.000 microseconds\n")
		})
	}
}

func TestReport_AboveThresholdExactOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	r := New(buf)

	r.Begin(16)
	r.Report(uniformRecords(16, time.Microsecond), 16)

	want := "Running 16 executions... done.\n" +
		"Total execution time: 0.016000 milliseconds\n" +
		"Average execution time: 1.000 microseconds\n"
	assert.Equal(t, want, buf.String())
}

func TestReport_NoAggregatesForSingle(t *testing.T) {
	buf := &bytes.Buffer{}
	New(buf).Report(uniformRecords(1, time.Microsecond), 1)
	assert.NotContains(t, buf.String(), "Total")
}

func TestReport_EmptyBatchPrintsNothing(t *testing.T) {
	buf := &bytes.Buffer{}
	r := New(buf)
	r.Begin(0)
	r.Report(nil, 0)
	assert.Empty(t, buf.String())
}

func TestReport_CustomThreshold(t *testing.T) {
	buf := &bytes.Buffer{}
	r := New(buf, WithThreshold(2))
	assert.Equal(t, 2, r.Threshold())

	r.Begin(3)
	r.Report(uniformRecords(3, time.Microsecond), 3)
	assert.NotContains(t, buf.String(), "The answer is")

	assert.Equal(t, DefaultThreshold, New(buf, WithThreshold(0)).Threshold())
}

func TestReport_MeanTruncates(t *testing.T) {
	buf := &bytes.Buffer{}
	records := []engine.Record{
		{Result: nil, Elapsed: 1 * time.Nanosecond},
		{Result: nil, Elapsed: 2 * time.Nanosecond},
	}
	New(buf).Report(records, 2)

	assert.Contains(t, buf.String(), "Total execution time: 0.000003 milliseconds\n")
	assert.Contains(t, buf.String(), "Average execution time: 0.001 microseconds\n")
}

func TestReporter_Prepared(t *testing.T) {
	buf := &bytes.Buffer{}
	New(buf).Prepared(4)
	assert.Equal(t, "Preparing 4 executions... done.\n", buf.String())
}

func TestFormatResult(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, "none"},
		{"empty_list", []int32{}, "none"},
		{"list", []int32{2, 3, 5}, "2, 3, 5"},
		{"int32_list_value", engine.Int32List{1}, "1"},
		{"int64", int64(-42), "-42"},
		{"bool", true, "true"},
		{"float32", float32(1.5), "1.5"},
		{"string", "pong", "pong"},
		{"fraction", engine.Fraction{Numerator: 3, Denominator: 4}, "3/4"},
		{"decimal", engine.MixedDecimal{Whole: 12, Fractional: 5}, "12.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatResult(tt.in))
		})
	}
}

func TestTiming(t *testing.T) {
	assert.Equal(t, "1.500", Microseconds(1500*time.Nanosecond))
	assert.Equal(t, "0.001", Microseconds(time.Nanosecond))
	assert.Equal(t, "1000.000", Microseconds(time.Millisecond))
	assert.Equal(t, "0.001500", Milliseconds(1500*time.Nanosecond))
	assert.Equal(t, "2.000000", Milliseconds(2*time.Millisecond))

	assert.Equal(t, time.Duration(0), Mean(nil))
	assert.Equal(t, 2*time.Nanosecond, Mean([]time.Duration{1, 2, 3}))
	assert.Equal(t, 6*time.Nanosecond, Total([]time.Duration{1, 2, 3}))
}

func TestSummarize(t *testing.T) {
	s := Summarize("fib", uniformRecords(2, time.Microsecond), DefaultThreshold)
	assert.Equal(t, "fib", s.Calculation)
	assert.Equal(t, 2, s.Executions)
	assert.Len(t, s.Results, 2)
	assert.Equal(t, "1.000", s.Results[0].ElapsedMicros)
	assert.Equal(t, "0.002000", s.TotalMillis)
	assert.Equal(t, "1.000", s.MeanMicros)

	big := Summarize("fib", uniformRecords(16, time.Microsecond), DefaultThreshold)
	assert.Empty(t, big.Results)
	assert.NotEmpty(t, big.TotalMillis)

	single := Summarize("fib", uniformRecords(1, time.Microsecond), DefaultThreshold)
	assert.Empty(t, single.TotalMillis)
}

func TestReport_AbortClosesRunningLine(t *testing.T) {
	buf := &bytes.Buffer{}
	r := New(buf)

	r.Begin(20)
	r.Abort(20)
	assert.Equal(t, "Running 20 executions...\n", buf.String())

	buf.Reset()
	r.Begin(3)
	r.Abort(3)
	assert.Empty(t, buf.String())
}
