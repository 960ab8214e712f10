package engine

import (
	"errors"
	"fmt"
)

// Registry construction errors. These are programming errors caught at
// startup, never reported for an input line.
var (
	// ErrInvalidSignature indicates a malformed signature (e.g. a variadic
	// slot that is not last).
	ErrInvalidSignature = errors.New("invalid signature")

	// ErrDuplicateCalculation indicates a name registered twice.
	ErrDuplicateCalculation = errors.New("duplicate calculation")
)

// Error represents a failure while handling one input line.
//
// Dispatch errors include:
//   - Unknown calculation: the name is not registered
//   - Malformed input: empty line or missing arguments
//   - Invalid literals: a token could not be coerced to its parameter kind
//   - Calculation failed: the calculation itself returned an error or panicked
//
// Every Error is terminal for its line only.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Name is the calculation name, when known.
	Name string

	// Token is the raw token that failed coercion.
	Token string

	// Position is the zero-based argument index of Token, or -1.
	Position int

	// Err is the underlying cause (parse error or calculation error).
	Err error
}

// ErrorCode categorizes dispatch errors.
type ErrorCode string

const (
	// ErrCodeUnknownCalculation indicates the name has no registry entry.
	ErrCodeUnknownCalculation ErrorCode = "UNKNOWN_CALCULATION"

	// ErrCodeMalformedInput indicates an empty line or too few arguments.
	ErrCodeMalformedInput ErrorCode = "MALFORMED_INPUT"

	// ErrCodeInvalidNumeric indicates an Int32/Int64/Float32 parse failure.
	ErrCodeInvalidNumeric ErrorCode = "INVALID_NUMERIC_LITERAL"

	// ErrCodeInvalidFraction indicates a token that is not "n/d".
	ErrCodeInvalidFraction ErrorCode = "INVALID_FRACTION_LITERAL"

	// ErrCodeInvalidDecimal indicates a token that is not "x.y".
	ErrCodeInvalidDecimal ErrorCode = "INVALID_DECIMAL_LITERAL"

	// ErrCodeCalculationFailed wraps an error or panic from a calculation.
	ErrCodeCalculationFailed ErrorCode = "CALCULATION_FAILED"
)

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Token != "" || e.Position >= 0 {
		msg = fmt.Sprintf("%s (arg %d %q)", msg, e.Position, e.Token)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// CodeOf returns the ErrorCode carried by err, or "" if err is not an *Error.
// Uses errors.As to handle wrapped errors.
func CodeOf(err error) ErrorCode {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// IsUnknownCalculation returns true if the name was not found in the registry.
func IsUnknownCalculation(err error) bool {
	return CodeOf(err) == ErrCodeUnknownCalculation
}

// IsCoercionError returns true if a token could not be converted to its
// parameter kind.
func IsCoercionError(err error) bool {
	switch CodeOf(err) {
	case ErrCodeInvalidNumeric, ErrCodeInvalidFraction, ErrCodeInvalidDecimal:
		return true
	}
	return false
}

// IsCalculationFailed returns true if the calculation itself failed.
func IsCalculationFailed(err error) bool {
	return CodeOf(err) == ErrCodeCalculationFailed
}

// NewUnknownCalculationError creates an Error for a missing registry entry.
func NewUnknownCalculationError(name string) *Error {
	return &Error{
		Code:     ErrCodeUnknownCalculation,
		Message:  fmt.Sprintf("no calculation named %q", name),
		Name:     name,
		Position: -1,
	}
}

// NewMalformedInputError creates an Error for structurally bad input.
func NewMalformedInputError(message string) *Error {
	return &Error{
		Code:     ErrCodeMalformedInput,
		Message:  message,
		Position: -1,
	}
}

// newLiteralError creates a coercion Error for the token at position.
func newLiteralError(code ErrorCode, position int, token string, cause error) *Error {
	var message string
	switch code {
	case ErrCodeInvalidFraction:
		message = "expected a fraction of the form n/d"
	case ErrCodeInvalidDecimal:
		message = "expected a decimal of the form x.y"
	default:
		message = "not a valid number"
	}
	return &Error{
		Code:     code,
		Message:  message,
		Token:    token,
		Position: position,
		Err:      cause,
	}
}

// NewCalculationFailedError wraps a failure raised by a calculation.
func NewCalculationFailedError(name string, cause error) *Error {
	return &Error{
		Code:     ErrCodeCalculationFailed,
		Message:  fmt.Sprintf("calculation %q failed", name),
		Name:     name,
		Position: -1,
		Err:      cause,
	}
}
