package engine

import (
	"fmt"
	"strconv"
)

// Value is a sealed interface for coerced argument values.
// Only Int32, Int64, Float32, Fraction, MixedDecimal and Int32List
// implement it.
type Value interface {
	value() // Sealed
	Kind() Kind
}

// Int32 is a coerced KindInt32 argument.
type Int32 int32

func (Int32) value() {}

// Kind implements Value.
func (Int32) Kind() Kind { return KindInt32 }

// Int64 is a coerced KindInt64 argument.
type Int64 int64

func (Int64) value() {}

// Kind implements Value.
func (Int64) Kind() Kind { return KindInt64 }

// Float32 is a coerced KindFloat32 argument.
type Float32 float32

func (Float32) value() {}

// Kind implements Value.
func (Float32) Kind() Kind { return KindFloat32 }

// Fraction is an ordered numerator/denominator pair.
// No reduction is performed and a zero denominator is not rejected here;
// calculations surface that when they use the value.
type Fraction struct {
	Numerator   int64
	Denominator int64
}

func (Fraction) value() {}

// Kind implements Value.
func (Fraction) Kind() Kind { return KindFraction }

// String renders the fraction as "n/d".
func (f Fraction) String() string {
	return strconv.FormatInt(f.Numerator, 10) + "/" + strconv.FormatInt(f.Denominator, 10)
}

// MixedDecimal is built from an "x.y" token by splitting on the dot.
// Both halves are independent integers: "12.05" and "12.5" both give {12, 5}.
type MixedDecimal struct {
	Whole      int64
	Fractional int64
}

func (MixedDecimal) value() {}

// Kind implements Value.
func (MixedDecimal) Kind() Kind { return KindMixedDecimal }

// String renders the value as "x.y".
func (d MixedDecimal) String() string {
	return strconv.FormatInt(d.Whole, 10) + "." + strconv.FormatInt(d.Fractional, 10)
}

// Int32List is the coerced value of a variadic slot. It may be empty.
type Int32List []int32

func (Int32List) value() {}

// Kind implements Value.
func (Int32List) Kind() Kind { return KindVariadicInt32 }

// Args is one fully coerced argument vector.
type Args []Value

// Batch is every argument vector produced for one input line.
type Batch []Args

// The accessors below panic on a kind mismatch. A mismatch means the
// calculation was registered with a signature that does not match its body,
// which is a programming error; Runner.Run converts the panic into
// CALCULATION_FAILED.

// Int32 returns argument i as an int32.
func (a Args) Int32(i int) int32 { return int32(a.at(i, KindInt32).(Int32)) }

// Int64 returns argument i as an int64.
func (a Args) Int64(i int) int64 { return int64(a.at(i, KindInt64).(Int64)) }

// Float32 returns argument i as a float32.
func (a Args) Float32(i int) float32 { return float32(a.at(i, KindFloat32).(Float32)) }

// Fraction returns argument i as a Fraction.
func (a Args) Fraction(i int) Fraction { return a.at(i, KindFraction).(Fraction) }

// MixedDecimal returns argument i as a MixedDecimal.
func (a Args) MixedDecimal(i int) MixedDecimal { return a.at(i, KindMixedDecimal).(MixedDecimal) }

// Int32List returns argument i as the variadic list.
func (a Args) Int32List(i int) []int32 { return []int32(a.at(i, KindVariadicInt32).(Int32List)) }

func (a Args) at(i int, want Kind) Value {
	if i < 0 || i >= len(a) {
		panic(fmt.Sprintf("argument %d out of range (have %d)", i, len(a)))
	}
	if got := a[i].Kind(); got != want {
		panic(fmt.Sprintf("argument %d is %v, not %v", i, got, want))
	}
	return a[i]
}
