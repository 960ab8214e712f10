package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/calcbench/internal/engine"
)

// Scenario is a scripted session with expectations.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Threshold overrides the per-record printout limit. Zero keeps the
	// default.
	Threshold int `yaml:"threshold,omitempty"`

	// Steps are the input lines, in order.
	Steps []Step `yaml:"steps"`

	// Assertions are evaluated against the whole run after all steps.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Step is one input line.
type Step struct {
	// Line is passed to the session verbatim. It may be empty.
	Line string `yaml:"line"`

	// Expect validates this line's outcome. If nil, any outcome passes.
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// ExpectClause specifies the expected outcome of one line.
type ExpectClause struct {
	// Status is StatusOK or StatusInvalid.
	Status string `yaml:"status"`

	// Code is the expected engine error code. Only valid with StatusInvalid.
	Code string `yaml:"code,omitempty"`

	// Output, if set, must equal the line's output exactly.
	Output string `yaml:"output,omitempty"`

	// Contains lists substrings the line's output must include.
	Contains []string `yaml:"contains,omitempty"`
}

// Assertion validates the run as a whole.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Text is the substring checked by the output_* assertions.
	Text string `yaml:"text,omitempty"`

	// Count is the expected number for output_count and invalid_count.
	Count int `yaml:"count,omitempty"`
}

// Line statuses.
const (
	StatusOK      = "ok"
	StatusInvalid = "invalid"
)

// Assertion type constants.
const (
	AssertOutputContains    = "output_contains"
	AssertOutputNotContains = "output_not_contains"
	AssertOutputCount       = "output_count"
	AssertInvalidCount      = "invalid_count"
)

var knownCodes = map[string]bool{
	string(engine.ErrCodeUnknownCalculation): true,
	string(engine.ErrCodeMalformedInput):     true,
	string(engine.ErrCodeInvalidNumeric):     true,
	string(engine.ErrCodeInvalidFraction):    true,
	string(engine.ErrCodeInvalidDecimal):     true,
	string(engine.ErrCodeCalculationFailed):  true,
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML from memory.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Threshold < 0 {
		return fmt.Errorf("threshold must be non-negative")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if step.Expect == nil {
			continue
		}
		switch step.Expect.Status {
		case StatusOK:
			if step.Expect.Code != "" {
				return fmt.Errorf("steps[%d].expect: code is only allowed with status %q", i, StatusInvalid)
			}
		case StatusInvalid:
			if step.Expect.Code != "" && !knownCodes[step.Expect.Code] {
				return fmt.Errorf("steps[%d].expect: unknown code %q", i, step.Expect.Code)
			}
		case "":
			return fmt.Errorf("steps[%d].expect: status is required", i)
		default:
			return fmt.Errorf("steps[%d].expect: unknown status %q", i, step.Expect.Status)
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertOutputContains, AssertOutputNotContains:
		if a.Text == "" {
			return fmt.Errorf("assertions[%d]: text is required for %s", index, a.Type)
		}
	case AssertOutputCount:
		if a.Text == "" {
			return fmt.Errorf("assertions[%d]: text is required for %s", index, a.Type)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for %s", index, a.Type)
		}
	case AssertInvalidCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for %s", index, a.Type)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
