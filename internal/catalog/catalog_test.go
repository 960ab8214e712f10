package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/calcbench/internal/engine"
)

// dispatch runs one line against the default catalog.
func dispatch(t *testing.T, line string) ([]engine.Record, error) {
	t.Helper()
	eng := engine.New(Default(), engine.WithIDGenerator(engine.NewSequenceGenerator("test")))
	_, records, err := eng.Dispatch(line)
	return records, err
}

func result(t *testing.T, line string) any {
	t.Helper()
	records, err := dispatch(t, line)
	require.NoError(t, err, line)
	require.Len(t, records, 1, line)
	return records[0].Result
}

func TestDefault_RegistersCatalog(t *testing.T) {
	r := Default()
	names := make([]string, 0, r.Len())
	for _, e := range r.Entries() {
		names = append(names, e.Name)
		assert.NotEmpty(t, e.Description, "%s has no description", e.Name)
	}
	assert.Contains(t, names, "fib")
	assert.Contains(t, names, "sum")
	assert.Contains(t, names, "simplify")
	assert.Contains(t, names, "tofraction")
}

func TestRegister_TwiceIsDuplicate(t *testing.T) {
	r := Default()
	assert.Panics(t, func() { Register(r) })
}

func TestCalculations(t *testing.T) {
	tests := []struct {
		line string
		want any
	}{
		{"ping", "pong"},
		{"add,2,3", int64(5)},
		{"add,2147483647,1", int64(2147483648)},
		{"fib,0", int64(0)},
		{"fib,1", int64(1)},
		{"fib,10", int64(55)},
		{"fib,92", int64(7540113804746346429)},
		{"factorial,0", int64(1)},
		{"factorial,20", int64(2432902008176640000)},
		{"isprime,2", true},
		{"isprime,97", true},
		{"isprime,1", false},
		{"isprime,91", false},
		{"primes,20", []int32{2, 3, 5, 7, 11, 13, 17, 19}},
		{"primes,1", []int32{}},
		{"divisors,12", []int32{1, 2, 3, 4, 6, 12}},
		{"collatz,6", []int32{6, 3, 10, 5, 16, 8, 4, 2, 1}},
		{"gcd,12,18", int64(6)},
		{"gcd,-4,6", int64(2)},
		{"sqrt,16", float32(4)},
		{"power,2,10", float32(1024)},
		{"simplify,6/8", engine.Fraction{Numerator: 3, Denominator: 4}},
		{"simplify,3/-6", engine.Fraction{Numerator: -1, Denominator: 2}},
		{"addfractions,1/2,1/3", engine.Fraction{Numerator: 5, Denominator: 6}},
		{"tofraction,12.5", engine.Fraction{Numerator: 25, Denominator: 2}},
		{"tofraction,-1.25", engine.Fraction{Numerator: -5, Denominator: 4}},
		{"sum,1,2,3", int64(6)},
		{"sum", int64(0)},
		{"max,4,9,2", int32(9)},
		{"max", nil},
		{"sort,3,1,2", []int32{1, 2, 3}},
		{"scale,3,1,2", []int32{3, 6}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, result(t, tt.line))
		})
	}
}

func TestCalculations_DomainErrors(t *testing.T) {
	tests := []struct {
		line  string
		cause error
	}{
		{"fib,-1", ErrNegativeInput},
		{"fib,93", ErrOverflow},
		{"factorial,21", ErrOverflow},
		{"sqrt,-1", ErrNegativeInput},
		{"simplify,1/0", ErrZeroDenominator},
		{"addfractions,1/0,1/2", ErrZeroDenominator},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			_, err := dispatch(t, tt.line)
			require.Error(t, err)
			assert.True(t, engine.IsCalculationFailed(err))
			assert.ErrorIs(t, err, tt.cause)
		})
	}
}

func TestFib_RangeMode(t *testing.T) {
	records, err := dispatch(t, "fib,3-6")
	require.NoError(t, err)
	require.Len(t, records, 4)

	got := make([]any, len(records))
	for i, r := range records {
		got[i] = r.Result
	}
	assert.Equal(t, []any{int64(2), int64(3), int64(5), int64(8)}, got)
}
