package engine

import "fmt"

// Kind is the declared type of one calculation parameter.
//
// Kinds form a closed set. Coercion dispatches on Kind through a single
// table (see coerce.go) instead of branching on types at call sites.
type Kind int

const (
	// KindInt32 is a signed 32-bit integer parameter.
	KindInt32 Kind = iota + 1

	// KindInt64 is a signed 64-bit integer parameter.
	KindInt64

	// KindFloat32 is a single-precision float parameter.
	KindFloat32

	// KindFraction is a "numerator/denominator" parameter.
	KindFraction

	// KindMixedDecimal is an "x.y" parameter split textually into two integers.
	KindMixedDecimal

	// KindVariadicInt32 consumes every remaining token as an Int32.
	// Only valid as the last element of a Signature.
	KindVariadicInt32
)

var kindNames = map[Kind]string{
	KindInt32:         "int32",
	KindInt64:         "int64",
	KindFloat32:       "float32",
	KindFraction:      "fraction",
	KindMixedDecimal:  "decimal",
	KindVariadicInt32: "...int32",
}

// String returns the short name used in listings and error messages.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// IsInteger reports whether k is a non-variadic integer kind.
// Range mode only activates for these.
func (k Kind) IsInteger() bool {
	return k == KindInt32 || k == KindInt64
}

// Signature is the ordered list of parameter kinds a calculation expects.
// Only the final element may be KindVariadicInt32.
type Signature []Kind

// Sig is a shorthand for building a Signature.
//
//	engine.Sig(engine.KindInt32, engine.KindVariadicInt32)
func Sig(kinds ...Kind) Signature {
	return Signature(kinds)
}

// Variadic reports whether the signature ends in a variadic slot.
func (s Signature) Variadic() bool {
	return len(s) > 0 && s[len(s)-1] == KindVariadicInt32
}

// Fixed returns the number of non-variadic slots.
func (s Signature) Fixed() int {
	if s.Variadic() {
		return len(s) - 1
	}
	return len(s)
}

// validate checks the construction rules for a signature.
func (s Signature) validate() error {
	for i, k := range s {
		if !k.Valid() {
			return fmt.Errorf("%w: parameter %d has unknown kind %v", ErrInvalidSignature, i, k)
		}
		if k == KindVariadicInt32 && i != len(s)-1 {
			return fmt.Errorf("%w: variadic parameter must be last (found at %d of %d)", ErrInvalidSignature, i, len(s))
		}
	}
	return nil
}

// clone returns a copy so callers cannot mutate a registered signature.
func (s Signature) clone() Signature {
	if s == nil {
		return Signature{}
	}
	out := make(Signature, len(s))
	copy(out, s)
	return out
}

// String renders the signature as "(int32, ...int32)".
func (s Signature) String() string {
	out := "("
	for i, k := range s {
		if i > 0 {
			out += ", "
		}
		out += k.String()
	}
	return out + ")"
}
