// Package engine implements the calcbench dispatch-and-coercion core.
//
// The engine turns one line of text into timed calculation results:
//
//	"fib,3-6" -> Tokenize -> ("fib", ["3-6"])
//	          -> Registry.Lookup -> Signature (int32)
//	          -> Expand -> Batch [[3] [4] [5] [6]]
//	          -> Runner.Run -> []Record{result, elapsed}
//
// ARCHITECTURE:
//
// Static Registry:
// Calculations are registered once at startup with an explicit Signature
// and a Func. Nothing is discovered at runtime and entries are never
// mutated, so the registry needs no locking.
//
// Kind Dispatch:
// Each parameter Kind has exactly one coercer in a table (coerce.go).
// The variadic kind is an ordinary table entry that consumes all remaining
// tokens, and may only appear last in a Signature (checked by Register).
//
// Explicit Errors:
// Every failure for a line is an *Error carrying an ErrorCode. Callers
// decide how to present it; the engine never retries.
//
// CRITICAL PATTERNS:
//
// All-or-nothing coercion:
// A vector is either fully coerced or no invocation happens.
//
// Fail-fast batches:
// The first failing invocation aborts the rest of the batch and discards
// the records gathered so far.
//
// Single caller:
// One line is prepared and executed before the next is read. The engine
// does not run invocations concurrently.
package engine
