package harness

import (
	"fmt"
	"strings"
)

// AssertionError is returned when an assertion or expectation fails.
// It includes the transcript to help debug the failure.
type AssertionError struct {
	Type       string // Assertion type, or "expect" for per-line checks
	Expected   string // Human-readable expected outcome
	Actual     string // Human-readable actual outcome
	Transcript string // Full transcript for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if e.Transcript != "" {
		fmt.Fprintf(&buf, "\nTranscript:\n")
		for _, line := range strings.SplitAfter(e.Transcript, "\n") {
			if line != "" {
				fmt.Fprintf(&buf, "  %s", line)
			}
		}
	}

	return buf.String()
}

// checkExpect validates one step against its expect clause.
func checkExpect(index int, step StepResult, expect *ExpectClause) error {
	fail := func(expected, actual string) error {
		return &AssertionError{
			Type:     fmt.Sprintf("steps[%d] %q", index, step.Line),
			Expected: expected,
			Actual:   actual,
		}
	}

	if got := step.Status(); got != expect.Status {
		actual := got
		if step.Code != "" {
			actual = fmt.Sprintf("%s (%s)", got, step.Code)
		}
		return fail("status "+expect.Status, actual)
	}

	if expect.Code != "" && expect.Code != step.Code {
		return fail("code "+expect.Code, "code "+step.Code)
	}

	if expect.Output != "" && expect.Output != step.Output {
		return fail(fmt.Sprintf("output %q", expect.Output), fmt.Sprintf("output %q", step.Output))
	}

	for _, sub := range expect.Contains {
		if !strings.Contains(step.Output, sub) {
			return fail(fmt.Sprintf("output containing %q", sub), fmt.Sprintf("output %q", step.Output))
		}
	}

	return nil
}

// assertOutputContains checks that the transcript includes a substring.
func assertOutputContains(result *Result, assertion Assertion) error {
	if strings.Contains(result.Transcript, assertion.Text) {
		return nil
	}
	return &AssertionError{
		Type:       AssertOutputContains,
		Expected:   fmt.Sprintf("transcript containing %q", assertion.Text),
		Actual:     "not found",
		Transcript: result.Transcript,
	}
}

// assertOutputNotContains checks that the transcript lacks a substring.
func assertOutputNotContains(result *Result, assertion Assertion) error {
	if !strings.Contains(result.Transcript, assertion.Text) {
		return nil
	}
	return &AssertionError{
		Type:       AssertOutputNotContains,
		Expected:   fmt.Sprintf("transcript without %q", assertion.Text),
		Actual:     "found",
		Transcript: result.Transcript,
	}
}

// assertOutputCount checks how often a substring occurs in the output.
// Echoed input lines are not counted.
func assertOutputCount(result *Result, assertion Assertion) error {
	count := 0
	for _, step := range result.Steps {
		count += strings.Count(step.Output, assertion.Text)
	}
	if count == assertion.Count {
		return nil
	}
	return &AssertionError{
		Type:       AssertOutputCount,
		Expected:   fmt.Sprintf("%q exactly %d times", assertion.Text, assertion.Count),
		Actual:     fmt.Sprintf("%d times", count),
		Transcript: result.Transcript,
	}
}

// assertInvalidCount checks how many lines were rejected.
func assertInvalidCount(result *Result, assertion Assertion) error {
	if n := result.Invalid(); n != assertion.Count {
		return &AssertionError{
			Type:       AssertInvalidCount,
			Expected:   fmt.Sprintf("%d invalid lines", assertion.Count),
			Actual:     fmt.Sprintf("%d invalid lines", n),
			Transcript: result.Transcript,
		}
	}
	return nil
}

// EvaluateAssertions runs every assertion against result and returns the
// failure messages, in order.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errs []string
	for _, a := range assertions {
		var err error
		switch a.Type {
		case AssertOutputContains:
			err = assertOutputContains(result, a)
		case AssertOutputNotContains:
			err = assertOutputNotContains(result, a)
		case AssertOutputCount:
			err = assertOutputCount(result, a)
		case AssertInvalidCount:
			err = assertInvalidCount(result, a)
		default:
			err = fmt.Errorf("unknown assertion type %q", a.Type)
		}
		if err != nil {
			errs = append(errs, err.Error())
		}
	}
	return errs
}
