package harness

// StepResult is the observed outcome of one scenario line.
type StepResult struct {
	// Line is the raw input line.
	Line string `json:"line"`

	// Output is everything the session printed for the line.
	Output string `json:"output"`

	// Code is the engine error code for a rejected line, empty on success.
	Code string `json:"code,omitempty"`

	// Exit is true for the line that ended the session.
	Exit bool `json:"exit,omitempty"`
}

// Status returns StatusOK or StatusInvalid.
func (s StepResult) Status() string {
	if s.Code != "" {
		return StatusInvalid
	}
	return StatusOK
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true if every expectation and assertion held.
	Pass bool `json:"pass"`

	// Steps holds one entry per line actually processed. Lines after an
	// "exit" line are not processed.
	Steps []StepResult `json:"steps"`

	// Transcript is the session as a user would see it: each line echoed
	// after a "> " prompt, followed by its output.
	Transcript string `json:"transcript"`

	// Errors contains expectation and assertion failure messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Steps:  []StepResult{},
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Invalid returns how many processed lines were rejected.
func (r *Result) Invalid() int {
	n := 0
	for _, s := range r.Steps {
		if s.Code != "" {
			n++
		}
	}
	return n
}
