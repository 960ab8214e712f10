package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DefaultMaxBatch is the largest range expansion Expand accepts.
const DefaultMaxBatch = 1_000_000

// ProgressFunc is called after each argument vector of a range expansion is
// prepared, with the number prepared so far. Rendering is up to the caller.
type ProgressFunc func(prepared int)

// rangePattern matches "start-end" where both ends are signed integers.
// The separator is the first '-' that follows a digit.
var rangePattern = regexp.MustCompile(`^([+-]?\d+)-([+-]?\d+)$`)

// Expand produces the invocation batch for one line.
//
// Range mode activates only when the signature has exactly one slot, that
// slot is KindInt32 or KindInt64, exactly one raw token was given, and the
// token has the form "start-end". Each integer c in [start, end] is then
// formatted and run through Coerce on its own, so the slot's normal rules
// (e.g. Int32 overflow) still apply. start > end yields an empty batch.
//
// Otherwise the batch holds the single vector from Coerce. The boolean
// result reports whether range mode was used. progress may be nil.
//
// Ranges longer than DefaultMaxBatch are rejected; see ExpandLimit.
func Expand(sig Signature, raw []string, progress ProgressFunc) (Batch, bool, error) {
	return ExpandLimit(sig, raw, DefaultMaxBatch, progress)
}

// ExpandLimit is Expand with an explicit cap on the number of vectors a
// range may produce. A range holding more than limit values fails with
// ErrCodeMalformedInput before anything is allocated. limit < 1 means
// DefaultMaxBatch.
func ExpandLimit(sig Signature, raw []string, limit int, progress ProgressFunc) (Batch, bool, error) {
	if limit < 1 {
		limit = DefaultMaxBatch
	}

	start, end, ok := parseRange(sig, raw)
	if !ok {
		args, err := Coerce(sig, raw)
		if err != nil {
			return nil, false, err
		}
		return Batch{args}, false, nil
	}

	batch := Batch{}
	if start > end {
		return batch, true, nil
	}
	// Unsigned difference cannot overflow for start <= end.
	if uint64(end)-uint64(start) >= uint64(limit) {
		return nil, true, NewMalformedInputError(
			fmt.Sprintf("range %d-%d exceeds the limit of %d executions", start, end, limit))
	}
	batch = make(Batch, 0, uint64(end)-uint64(start)+1)
	for c := start; ; c++ {
		args, err := Coerce(sig, []string{strconv.FormatInt(c, 10)})
		if err != nil {
			return nil, true, err
		}
		batch = append(batch, args)
		if progress != nil {
			progress(len(batch))
		}
		// Checked before incrementing so end == MaxInt64 terminates.
		if c == end {
			break
		}
	}
	return batch, true, nil
}

// parseRange reports whether raw is a range-mode invocation for sig.
func parseRange(sig Signature, raw []string) (int64, int64, bool) {
	if len(sig) != 1 || !sig[0].IsInteger() || len(raw) != 1 {
		return 0, 0, false
	}
	m := rangePattern.FindStringSubmatch(strings.TrimSpace(raw[0]))
	if m == nil {
		return 0, 0, false
	}
	start, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, 0, false
	}
	end, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return 0, 0, false
	}
	return start, end, true
}
