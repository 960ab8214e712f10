package harness

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/roach88/calcbench/internal/catalog"
	"github.com/roach88/calcbench/internal/engine"
	"github.com/roach88/calcbench/internal/repl"
	"github.com/roach88/calcbench/internal/testutil"
)

// TranscriptPrompt precedes each echoed input line in a transcript.
const TranscriptPrompt = "> "

// StepTime is what every invocation measures under the harness clock.
const StepTime = time.Microsecond

// Harness runs scenarios against a fresh session.
type Harness struct {
	session *repl.Session
	out     *bytes.Buffer
	clock   *testutil.DeterministicClock
	logger  *slog.Logger
}

// newHarness builds a session over the default catalog.
func newHarness(scenario *Scenario) *Harness {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clock := testutil.NewDeterministicClock(StepTime)

	eng := engine.New(catalog.Default(),
		engine.WithClock(clock),
		engine.WithIDGenerator(engine.NewSequenceGenerator(scenario.Name)),
		engine.WithLogger(logger),
	)

	out := &bytes.Buffer{}
	session := repl.New(eng, strings.NewReader(""), out,
		repl.WithPrompt(""),
		repl.WithThreshold(scenario.Threshold),
		repl.WithLogger(logger),
	)

	return &Harness{session: session, out: out, clock: clock, logger: logger}
}

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh session. Steps are processed in order until
// the list ends or an "exit" line is reached. Expectation failures do not
// stop the run; they are collected into Result.Errors. A scenario that
// fails validation is rejected before any step runs.
func Run(scenario *Scenario) (*Result, error) {
	if scenario == nil {
		return nil, errors.New("nil scenario")
	}
	if err := validateScenario(scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario %q: %w", scenario.Name, err)
	}

	h := newHarness(scenario)
	result := NewResult()

	var transcript strings.Builder
	for i, step := range scenario.Steps {
		got := h.process(step.Line)
		result.Steps = append(result.Steps, got)

		transcript.WriteString(TranscriptPrompt + got.Line + "\n")
		transcript.WriteString(got.Output)

		if step.Expect != nil {
			if err := checkExpect(i, got, step.Expect); err != nil {
				result.AddError(err.Error())
			}
		}

		if got.Exit {
			break
		}
	}
	result.Transcript = transcript.String()

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}

	h.logger.Info("scenario completed",
		"scenario", scenario.Name,
		"steps", len(result.Steps),
		"pass", result.Pass,
		"clock_readings", h.clock.Readings(),
	)

	return result, nil
}

// process feeds one line to the session and captures what it printed.
func (h *Harness) process(line string) StepResult {
	h.out.Reset()
	exit, err := h.session.Process(line)

	step := StepResult{
		Line:   line,
		Output: h.out.String(),
		Exit:   exit,
	}
	if err != nil {
		step.Code = string(engine.CodeOf(err))
	}
	return step
}
