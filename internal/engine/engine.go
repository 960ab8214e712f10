package engine

import (
	"errors"
	"log/slog"
)

// Engine resolves, coerces, expands and executes one input line at a time.
//
// Processing a line is split in two steps so callers can render progress
// between them:
//
//	plan, err := eng.Prepare(line, progress) // tokenize, lookup, expand
//	records, err := eng.Execute(plan)        // invoke and time each vector
//
// Thread-safety model:
//   - The Registry is read-only after construction
//   - Prepare and Execute keep no state between lines
//   - The engine is designed for a single caller; lines are never
//     processed concurrently
type Engine struct {
	registry *Registry
	runner   *Runner
	ids      IDGenerator
	logger   *slog.Logger
	maxBatch int
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the elapsed-time source. Default: SystemClock.
func WithClock(c Clock) Option {
	return func(e *Engine) {
		e.runner = NewRunner(c)
	}
}

// WithIDGenerator sets the line ID generator. Default: UUIDv7Generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(e *Engine) {
		e.ids = g
	}
}

// WithMaxBatch caps the number of vectors a range may expand to.
// Values below 1 are ignored. Default: DefaultMaxBatch.
func WithMaxBatch(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxBatch = n
		}
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// New creates an Engine dispatching against registry.
func New(registry *Registry, opts ...Option) *Engine {
	e := &Engine{
		registry: registry,
		runner:   NewRunner(NewClock()),
		ids:      UUIDv7Generator{},
		logger:   slog.Default(),
		maxBatch: DefaultMaxBatch,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Registry returns the registry the engine dispatches against.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Plan is a fully coerced line ready to execute.
type Plan struct {
	// LineID identifies this line in logs and JSON output.
	LineID string

	// Entry is the resolved calculation.
	Entry *Entry

	// Batch holds one argument vector per invocation.
	Batch Batch

	// Ranged is true when the batch came from range expansion.
	Ranged bool
}

// Size returns the number of invocations in the plan.
func (p *Plan) Size() int {
	return len(p.Batch)
}

// Prepare tokenizes line, resolves the calculation and builds its batch.
//
// Errors are *Error values: ErrCodeMalformedInput for an empty line or
// missing arguments, ErrCodeUnknownCalculation for an unregistered name, and
// one of the literal codes for a coercion failure. A range longer than the
// engine's batch limit is also ErrCodeMalformedInput. progress is forwarded
// to ExpandLimit and may be nil.
func (e *Engine) Prepare(line string, progress ProgressFunc) (*Plan, error) {
	name, raw, err := Tokenize(line)
	if err != nil {
		return nil, err
	}

	entry, err := e.registry.Lookup(name)
	if err != nil {
		return nil, err
	}

	batch, ranged, err := ExpandLimit(entry.signature, raw, e.maxBatch, progress)
	if err != nil {
		var de *Error
		if errors.As(err, &de) && de.Name == "" {
			de.Name = name
		}
		return nil, err
	}

	plan := &Plan{
		LineID: e.ids.Generate(),
		Entry:  entry,
		Batch:  batch,
		Ranged: ranged,
	}

	e.logger.Debug("line prepared",
		"line_id", plan.LineID,
		"calculation", name,
		"tokens", len(raw),
		"batch", plan.Size(),
		"ranged", ranged,
	)

	return plan, nil
}

// Execute runs every vector of plan and returns one Record per vector.
// The first failing invocation aborts the batch (see Runner.Run).
func (e *Engine) Execute(plan *Plan) ([]Record, error) {
	records, err := e.runner.Run(plan.Entry, plan.Batch)
	if err != nil {
		e.logger.Debug("batch aborted",
			"line_id", plan.LineID,
			"calculation", plan.Entry.Name,
			"error", err,
		)
		return nil, err
	}

	e.logger.Debug("batch executed",
		"line_id", plan.LineID,
		"calculation", plan.Entry.Name,
		"executions", len(records),
	)

	return records, nil
}

// Dispatch prepares and executes line in one call.
func (e *Engine) Dispatch(line string) (*Plan, []Record, error) {
	plan, err := e.Prepare(line, nil)
	if err != nil {
		return nil, nil, err
	}
	records, err := e.Execute(plan)
	if err != nil {
		return plan, nil, err
	}
	return plan, records, nil
}
