package engine

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Tokenize splits one input line into a calculation name and raw argument
// tokens.
//
// The line is split on ','. The first field is the name, trimmed of
// surrounding whitespace and NFC-normalized so that visually identical names
// typed with combining characters resolve to the same entry. The remaining
// fields are returned untouched; type-specific splitting and trimming happen
// during coercion.
//
// A line with no arguments yields an empty (non-nil) token slice.
// Returns ErrCodeMalformedInput only if the line is empty.
func Tokenize(line string) (string, []string, error) {
	if strings.TrimSpace(line) == "" {
		return "", nil, NewMalformedInputError("empty input line")
	}

	fields := strings.Split(line, ",")
	name := norm.NFC.String(strings.TrimSpace(fields[0]))
	raw := make([]string, len(fields)-1)
	copy(raw, fields[1:])
	return name, raw, nil
}
