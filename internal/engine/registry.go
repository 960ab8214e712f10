package engine

import (
	"errors"
	"fmt"
	"sort"
)

// Func is an invocable calculation. It receives a fully coerced argument
// vector matching its registered Signature.
//
// The result is printed by the reporter: a scalar prints in its fmt form,
// nil prints "none", and []int32 prints as a comma-separated list.
type Func func(args Args) (any, error)

// Entry is one registered calculation.
type Entry struct {
	Name        string
	Description string
	signature   Signature
	fn          Func
}

// Signature returns a copy of the entry's parameter kinds.
func (e *Entry) Signature() Signature {
	return e.signature.clone()
}

// Registry maps calculation names to signatures and invocable targets.
//
// Entries are added at startup and never mutated afterwards, so a populated
// Registry is safe to share read-only.
type Registry struct {
	entries map[string]*Entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*Entry)}
}

// RegisterOption configures an entry at registration time.
type RegisterOption func(*Entry)

// WithDescription attaches a one-line description shown by "calcbench list".
func WithDescription(desc string) RegisterOption {
	return func(e *Entry) {
		e.Description = desc
	}
}

// Register adds a calculation. The signature is copied.
//
// Returns ErrInvalidSignature for an empty name, nil fn, or a variadic slot
// in any position but the last, and ErrDuplicateCalculation if the name is
// already taken.
func (r *Registry) Register(name string, sig Signature, fn Func, opts ...RegisterOption) error {
	if name == "" {
		return fmt.Errorf("%w: empty calculation name", ErrInvalidSignature)
	}
	if fn == nil {
		return fmt.Errorf("%w: calculation %q has no function", ErrInvalidSignature, name)
	}
	if err := sig.validate(); err != nil {
		return fmt.Errorf("register %q: %w", name, err)
	}
	if _, exists := r.entries[name]; exists {
		return fmt.Errorf("register %q: %w", name, ErrDuplicateCalculation)
	}

	entry := &Entry{
		Name:      name,
		signature: sig.clone(),
		fn:        fn,
	}
	for _, opt := range opts {
		opt(entry)
	}
	r.entries[name] = entry
	return nil
}

// MustRegister is like Register but panics on error.
// Intended for static catalogs populated during startup.
func (r *Registry) MustRegister(name string, sig Signature, fn Func, opts ...RegisterOption) {
	if err := r.Register(name, sig, fn, opts...); err != nil {
		panic(err)
	}
}

// Lookup resolves a calculation by exact, case-sensitive name.
// Returns an *Error with ErrCodeUnknownCalculation if no entry matches.
func (r *Registry) Lookup(name string) (*Entry, error) {
	entry, ok := r.entries[name]
	if !ok {
		return nil, NewUnknownCalculationError(name)
	}
	return entry, nil
}

// Entries returns all entries sorted by name.
func (r *Registry) Entries() []*Entry {
	out := make([]*Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len returns the number of registered calculations.
func (r *Registry) Len() int {
	return len(r.entries)
}

// IsRegistrationError reports whether err came from Register.
func IsRegistrationError(err error) bool {
	return errors.Is(err, ErrInvalidSignature) || errors.Is(err, ErrDuplicateCalculation)
}
