package engine

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/calcbench/internal/testutil"
)

func newTestEngine(t *testing.T, ids ...string) *Engine {
	t.Helper()
	r := NewRegistry()
	r.MustRegister("add", Sig(KindInt32, KindInt32), func(a Args) (any, error) {
		return int64(a.Int32(0)) + int64(a.Int32(1)), nil
	})
	r.MustRegister("square", Sig(KindInt32), func(a Args) (any, error) {
		n := int64(a.Int32(0))
		return n * n, nil
	})
	r.MustRegister("sum", Sig(KindVariadicInt32), func(a Args) (any, error) {
		var total int64
		for _, n := range a.Int32List(0) {
			total += int64(n)
		}
		return total, nil
	})
	r.MustRegister("fail", Sig(), func(Args) (any, error) {
		return nil, errors.New("always fails")
	})

	return New(r,
		WithClock(testutil.NewDeterministicClock(time.Microsecond)),
		WithIDGenerator(NewFixedGenerator(ids...)),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
}

func TestEngine_Dispatch(t *testing.T) {
	eng := newTestEngine(t, "line-1")

	plan, records, err := eng.Dispatch("add,2,3")
	require.NoError(t, err)
	assert.Equal(t, "line-1", plan.LineID)
	assert.Equal(t, "add", plan.Entry.Name)
	assert.False(t, plan.Ranged)
	assert.Equal(t, 1, plan.Size())
	require.Len(t, records, 1)
	assert.Equal(t, int64(5), records[0].Result)
	assert.Equal(t, time.Microsecond, records[0].Elapsed)
}

func TestEngine_PrepareRange(t *testing.T) {
	eng := newTestEngine(t, "line-1")

	var progress []int
	plan, err := eng.Prepare("square,3-6", func(n int) { progress = append(progress, n) })
	require.NoError(t, err)
	assert.True(t, plan.Ranged)
	assert.Equal(t, 4, plan.Size())
	assert.Equal(t, []int{1, 2, 3, 4}, progress)

	records, err := eng.Execute(plan)
	require.NoError(t, err)
	results := make([]any, len(records))
	for i, r := range records {
		results[i] = r.Result
	}
	assert.Equal(t, []any{int64(9), int64(16), int64(25), int64(36)}, results)
}

func TestEngine_VariadicEmpty(t *testing.T) {
	eng := newTestEngine(t, "line-1")

	_, records, err := eng.Dispatch("sum")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(0), records[0].Result)
}

func TestEngine_ErrorCodes(t *testing.T) {
	tests := []struct {
		line string
		code ErrorCode
	}{
		{"", ErrCodeMalformedInput},
		{"nope,1", ErrCodeUnknownCalculation},
		{"add,1", ErrCodeMalformedInput},
		{"add,1,x", ErrCodeInvalidNumeric},
		{"fail", ErrCodeCalculationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			eng := newTestEngine(t, "line-1")
			_, _, err := eng.Dispatch(tt.line)
			require.Error(t, err)
			assert.Equal(t, tt.code, CodeOf(err))
		})
	}
}

func TestEngine_CoercionErrorCarriesName(t *testing.T) {
	eng := newTestEngine(t)

	_, err := eng.Prepare("add,1,x", nil)
	var de *Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "add", de.Name)
	assert.Equal(t, 1, de.Position)
}

func TestEngine_UnknownDoesNotAffectNextLine(t *testing.T) {
	eng := newTestEngine(t, "line-1")

	_, _, err := eng.Dispatch("missing")
	require.True(t, IsUnknownCalculation(err))

	// No line ID is consumed by a failed Prepare; the next line still works.
	_, records, err := eng.Dispatch("add,1,1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), records[0].Result)
}

func TestEngine_Defaults(t *testing.T) {
	eng := New(NewRegistry())
	assert.NotNil(t, eng.Registry())
	assert.IsType(t, UUIDv7Generator{}, eng.ids)
	assert.NotNil(t, eng.logger)
}

func TestEngine_MaxBatch(t *testing.T) {
	eng := New(newTestEngine(t).Registry(),
		WithIDGenerator(NewFixedGenerator("line-1")),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithMaxBatch(5),
	)

	_, err := eng.Prepare("square,1-6", nil)
	require.Error(t, err)
	assert.Equal(t, ErrCodeMalformedInput, CodeOf(err))

	var de *Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "square", de.Name)

	plan, err := eng.Prepare("square,1-5", nil)
	require.NoError(t, err)
	assert.Equal(t, 5, plan.Size())
}
