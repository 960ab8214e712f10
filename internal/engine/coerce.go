package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// coercer converts the raw tokens starting at pos into one Value and reports
// how many tokens it consumed. Scalar kinds consume one token; the variadic
// kind consumes everything that is left.
type coercer func(raw []string, pos int) (Value, int, error)

// coercers is the single dispatch table for parameter kinds.
var coercers = map[Kind]coercer{
	KindInt32:         scalar(parseInt32),
	KindInt64:         scalar(parseInt64),
	KindFloat32:       scalar(parseFloat32),
	KindFraction:      scalar(parseFraction),
	KindMixedDecimal:  scalar(parseMixedDecimal),
	KindVariadicInt32: coerceVariadic,
}

// Coerce converts raw tokens into an argument vector for sig.
//
// The signature is walked positionally. Coercion is all-or-nothing: on the
// first failure an *Error is returned together with a nil vector, so no
// partially coerced arguments ever reach a calculation.
//
// Missing tokens for a non-variadic slot are ErrCodeMalformedInput. Tokens
// beyond the last non-variadic slot of a fixed signature are ignored.
func Coerce(sig Signature, raw []string) (Args, error) {
	args := make(Args, 0, len(sig))
	pos := 0
	for _, kind := range sig {
		c, ok := coercers[kind]
		if !ok {
			return nil, fmt.Errorf("%w: no coercer for kind %v", ErrInvalidSignature, kind)
		}
		if kind != KindVariadicInt32 && pos >= len(raw) {
			return nil, NewMalformedInputError(
				fmt.Sprintf("expected %d arguments, got %d", sig.Fixed(), len(raw)))
		}
		v, n, err := c(raw, pos)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
		pos += n
	}
	return args, nil
}

// scalar adapts a single-token parser to the coercer shape.
func scalar(parse func(pos int, token string) (Value, error)) coercer {
	return func(raw []string, pos int) (Value, int, error) {
		v, err := parse(pos, raw[pos])
		return v, 1, err
	}
}

func coerceVariadic(raw []string, pos int) (Value, int, error) {
	if pos >= len(raw) {
		return Int32List{}, 0, nil
	}
	list := make(Int32List, 0, len(raw)-pos)
	for i := pos; i < len(raw); i++ {
		n, err := strconv.ParseInt(strings.TrimSpace(raw[i]), 10, 32)
		if err != nil {
			return nil, 0, newLiteralError(ErrCodeInvalidNumeric, i, raw[i], err)
		}
		list = append(list, int32(n))
	}
	return list, len(raw) - pos, nil
}

func parseInt32(pos int, token string) (Value, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(token), 10, 32)
	if err != nil {
		return nil, newLiteralError(ErrCodeInvalidNumeric, pos, token, err)
	}
	return Int32(n), nil
}

func parseInt64(pos int, token string) (Value, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(token), 10, 64)
	if err != nil {
		return nil, newLiteralError(ErrCodeInvalidNumeric, pos, token, err)
	}
	return Int64(n), nil
}

func parseFloat32(pos int, token string) (Value, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(token), 32)
	if err != nil {
		return nil, newLiteralError(ErrCodeInvalidNumeric, pos, token, err)
	}
	return Float32(f), nil
}

func parseFraction(pos int, token string) (Value, error) {
	num, den, err := splitPair(token, "/")
	if err != nil {
		return nil, newLiteralError(ErrCodeInvalidFraction, pos, token, err)
	}
	return Fraction{Numerator: num, Denominator: den}, nil
}

func parseMixedDecimal(pos int, token string) (Value, error) {
	whole, frac, err := splitPair(token, ".")
	if err != nil {
		return nil, newLiteralError(ErrCodeInvalidDecimal, pos, token, err)
	}
	return MixedDecimal{Whole: whole, Fractional: frac}, nil
}

// splitPair splits token on sep into exactly two int64 halves.
func splitPair(token, sep string) (int64, int64, error) {
	parts := strings.Split(strings.TrimSpace(token), sep)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("want 2 parts separated by %q, got %d", sep, len(parts))
	}
	left, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil {
		return 0, 0, err
	}
	right, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil {
		return 0, 0, err
	}
	return left, right, nil
}
