package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/calcbench/internal/testutil"
)

func TestRunner_RecordsResultAndElapsed(t *testing.T) {
	clock := testutil.NewScriptedClock(3*time.Microsecond, 7*time.Microsecond)
	runner := NewRunner(clock)
	entry := &Entry{Name: "double", fn: func(a Args) (any, error) {
		return a.Int32(0) * 2, nil
	}}

	records, err := runner.Run(entry, Batch{{Int32(1)}, {Int32(2)}})
	require.NoError(t, err)
	assert.Equal(t, []Record{
		{Result: int32(2), Elapsed: 3 * time.Microsecond},
		{Result: int32(4), Elapsed: 7 * time.Microsecond},
	}, records)
	assert.Equal(t, int64(4), clock.Readings())
}

func TestRunner_EmptyBatch(t *testing.T) {
	runner := NewRunner(testutil.NewDeterministicClock(time.Microsecond))
	entry := &Entry{Name: "noop", fn: func(Args) (any, error) {
		t.Fatal("must not be called")
		return nil, nil
	}}

	records, err := runner.Run(entry, Batch{})
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestRunner_FailFast(t *testing.T) {
	cause := errors.New("boom")
	calls := 0
	entry := &Entry{Name: "flaky", fn: func(a Args) (any, error) {
		calls++
		if a.Int32(0) == 2 {
			return nil, cause
		}
		return a.Int32(0), nil
	}}
	runner := NewRunner(testutil.NewDeterministicClock(time.Microsecond))

	records, err := runner.Run(entry, Batch{{Int32(1)}, {Int32(2)}, {Int32(3)}})
	require.Error(t, err)
	assert.Nil(t, records, "partial records must be discarded")
	assert.Equal(t, 2, calls, "remaining vectors must not run")
	assert.True(t, IsCalculationFailed(err))
	assert.ErrorIs(t, err, cause)

	var de *Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "flaky", de.Name)
}

func TestRunner_PanicBecomesCalculationFailed(t *testing.T) {
	entry := &Entry{Name: "divide", fn: func(a Args) (any, error) {
		zero := a.Int32(0)
		return 1 / zero, nil
	}}
	runner := NewRunner(testutil.NewDeterministicClock(time.Microsecond))

	_, err := runner.Run(entry, Batch{{Int32(0)}})
	require.Error(t, err)
	assert.True(t, IsCalculationFailed(err))
	assert.Contains(t, err.Error(), "panic")
}

func TestRunner_PanicWithNonError(t *testing.T) {
	entry := &Entry{Name: "p", fn: func(Args) (any, error) {
		panic("plain string")
	}}
	runner := NewRunner(testutil.NewDeterministicClock(time.Microsecond))

	_, err := runner.Run(entry, Batch{{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "plain string")
}
