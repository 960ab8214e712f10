package catalog

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/roach88/calcbench/internal/engine"
)

// Domain errors returned by calculations. The engine wraps them in
// CALCULATION_FAILED.
var (
	ErrNegativeInput   = errors.New("input must not be negative")
	ErrZeroDenominator = errors.New("denominator must not be zero")
	ErrOverflow        = errors.New("result overflows int64")
)

// Default returns a new registry populated with every catalog calculation.
func Default() *engine.Registry {
	r := engine.NewRegistry()
	Register(r)
	return r
}

// Register adds the catalog calculations to r.
// Panics if r already holds one of the names.
func Register(r *engine.Registry) {
	r.MustRegister("ping", engine.Sig(), ping,
		engine.WithDescription("returns pong"))
	r.MustRegister("add", engine.Sig(engine.KindInt32, engine.KindInt32), add,
		engine.WithDescription("sum of two integers"))
	r.MustRegister("fib", engine.Sig(engine.KindInt32), fib,
		engine.WithDescription("n-th Fibonacci number"))
	r.MustRegister("factorial", engine.Sig(engine.KindInt64), factorial,
		engine.WithDescription("n!"))
	r.MustRegister("isprime", engine.Sig(engine.KindInt32), isPrime,
		engine.WithDescription("whether n is prime"))
	r.MustRegister("primes", engine.Sig(engine.KindInt32), primes,
		engine.WithDescription("primes up to and including n"))
	r.MustRegister("divisors", engine.Sig(engine.KindInt32), divisors,
		engine.WithDescription("positive divisors of n"))
	r.MustRegister("collatz", engine.Sig(engine.KindInt32), collatz,
		engine.WithDescription("Collatz sequence starting at n"))
	r.MustRegister("gcd", engine.Sig(engine.KindInt64, engine.KindInt64), gcdCalc,
		engine.WithDescription("greatest common divisor"))
	r.MustRegister("sqrt", engine.Sig(engine.KindFloat32), sqrt,
		engine.WithDescription("square root"))
	r.MustRegister("power", engine.Sig(engine.KindFloat32, engine.KindInt32), power,
		engine.WithDescription("x raised to an integer power"))
	r.MustRegister("simplify", engine.Sig(engine.KindFraction), simplify,
		engine.WithDescription("reduce a fraction to lowest terms"))
	r.MustRegister("addfractions", engine.Sig(engine.KindFraction, engine.KindFraction), addFractions,
		engine.WithDescription("sum of two fractions, reduced"))
	r.MustRegister("tofraction", engine.Sig(engine.KindMixedDecimal), toFraction,
		engine.WithDescription("decimal x.y as a reduced fraction"))
	r.MustRegister("sum", engine.Sig(engine.KindVariadicInt32), sum,
		engine.WithDescription("sum of any number of integers"))
	r.MustRegister("max", engine.Sig(engine.KindVariadicInt32), maxCalc,
		engine.WithDescription("largest of any number of integers"))
	r.MustRegister("sort", engine.Sig(engine.KindVariadicInt32), sortCalc,
		engine.WithDescription("integers in ascending order"))
	r.MustRegister("scale", engine.Sig(engine.KindInt32, engine.KindVariadicInt32), scale,
		engine.WithDescription("multiply each integer by a factor"))
}

func ping(engine.Args) (any, error) {
	return "pong", nil
}

func add(a engine.Args) (any, error) {
	return int64(a.Int32(0)) + int64(a.Int32(1)), nil
}

func fib(a engine.Args) (any, error) {
	n := a.Int32(0)
	if n < 0 {
		return nil, ErrNegativeInput
	}
	var prev, cur int64 = 0, 1
	for i := int32(0); i < n; i++ {
		if i == n-1 {
			return cur, nil
		}
		if cur > math.MaxInt64-prev {
			return nil, ErrOverflow
		}
		prev, cur = cur, prev+cur
	}
	return prev, nil
}

func factorial(a engine.Args) (any, error) {
	n := a.Int64(0)
	if n < 0 {
		return nil, ErrNegativeInput
	}
	result := int64(1)
	for i := int64(2); i <= n; i++ {
		if result > math.MaxInt64/i {
			return nil, ErrOverflow
		}
		result *= i
	}
	return result, nil
}

func isPrime(a engine.Args) (any, error) {
	return prime(a.Int32(0)), nil
}

func prime(n int32) bool {
	if n < 2 {
		return false
	}
	if n%2 == 0 {
		return n == 2
	}
	for d := int64(3); d*d <= int64(n); d += 2 {
		if int64(n)%d == 0 {
			return false
		}
	}
	return true
}

func primes(a engine.Args) (any, error) {
	n := a.Int32(0)
	out := []int32{}
	if n < 2 {
		return out, nil
	}
	sieve := make([]bool, int(n)+1)
	for i := 2; i <= int(n); i++ {
		if sieve[i] {
			continue
		}
		out = append(out, int32(i))
		for j := i * i; j <= int(n) && j > 0; j += i {
			sieve[j] = true
		}
	}
	return out, nil
}

func divisors(a engine.Args) (any, error) {
	n := a.Int32(0)
	if n < 0 {
		return nil, ErrNegativeInput
	}
	out := []int32{}
	for d := int32(1); d <= n/2; d++ {
		if n%d == 0 {
			out = append(out, d)
		}
	}
	if n > 0 {
		out = append(out, n)
	}
	return out, nil
}

func collatz(a engine.Args) (any, error) {
	n := int64(a.Int32(0))
	if n < 1 {
		return nil, fmt.Errorf("collatz: start must be positive, got %d", n)
	}
	out := []int32{int32(n)}
	for n != 1 {
		if n%2 == 0 {
			n /= 2
		} else {
			n = 3*n + 1
		}
		if n > math.MaxInt32 {
			return nil, fmt.Errorf("collatz: value %d exceeds int32", n)
		}
		out = append(out, int32(n))
	}
	return out, nil
}

func gcdCalc(a engine.Args) (any, error) {
	return gcd(a.Int64(0), a.Int64(1)), nil
}

func gcd(x, y int64) int64 {
	if x < 0 {
		x = -x
	}
	if y < 0 {
		y = -y
	}
	for y != 0 {
		x, y = y, x%y
	}
	return x
}

func sqrt(a engine.Args) (any, error) {
	x := a.Float32(0)
	if x < 0 {
		return nil, ErrNegativeInput
	}
	return float32(math.Sqrt(float64(x))), nil
}

func power(a engine.Args) (any, error) {
	return float32(math.Pow(float64(a.Float32(0)), float64(a.Int32(1)))), nil
}

func simplify(a engine.Args) (any, error) {
	return reduce(a.Fraction(0))
}

func addFractions(a engine.Args) (any, error) {
	x, y := a.Fraction(0), a.Fraction(1)
	if x.Denominator == 0 || y.Denominator == 0 {
		return nil, ErrZeroDenominator
	}
	return reduce(engine.Fraction{
		Numerator:   x.Numerator*y.Denominator + y.Numerator*x.Denominator,
		Denominator: x.Denominator * y.Denominator,
	})
}

func toFraction(a engine.Args) (any, error) {
	d := a.MixedDecimal(0)
	if d.Fractional < 0 {
		return nil, ErrNegativeInput
	}
	scale := int64(1)
	for f := d.Fractional; f > 0; f /= 10 {
		scale *= 10
	}
	num := d.Whole * scale
	if d.Whole < 0 {
		num -= d.Fractional
	} else {
		num += d.Fractional
	}
	return reduce(engine.Fraction{Numerator: num, Denominator: scale})
}

// reduce returns f in lowest terms with a positive denominator.
func reduce(f engine.Fraction) (engine.Fraction, error) {
	if f.Denominator == 0 {
		return engine.Fraction{}, ErrZeroDenominator
	}
	g := gcd(f.Numerator, f.Denominator)
	if g == 0 {
		g = 1
	}
	num, den := f.Numerator/g, f.Denominator/g
	if den < 0 {
		num, den = -num, -den
	}
	return engine.Fraction{Numerator: num, Denominator: den}, nil
}

func sum(a engine.Args) (any, error) {
	var total int64
	for _, n := range a.Int32List(0) {
		total += int64(n)
	}
	return total, nil
}

func maxCalc(a engine.Args) (any, error) {
	list := a.Int32List(0)
	if len(list) == 0 {
		return nil, nil
	}
	return slices.Max(list), nil
}

func sortCalc(a engine.Args) (any, error) {
	out := slices.Clone(a.Int32List(0))
	slices.Sort(out)
	return out, nil
}

func scale(a engine.Args) (any, error) {
	factor := a.Int32(0)
	list := a.Int32List(1)
	out := make([]int32, len(list))
	for i, n := range list {
		out[i] = n * factor
	}
	return out, nil
}
