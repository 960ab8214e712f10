// Package harness replays scripted calcbench sessions for conformance tests.
//
// A scenario is a YAML file listing input lines, as a user would type them at
// the prompt, with optional per-line expectations and whole-transcript
// assertions:
//
//	name: fraction_basics
//	description: simplify and add fractions
//	steps:
//	  - line: simplify,6/8
//	    expect:
//	      status: ok
//	      output: "The answer is: 3/4\nExecution time: 1.000 microseconds\n"
//	  - line: simplify,6-8
//	    expect:
//	      status: invalid
//	      code: INVALID_FRACTION_LITERAL
//	assertions:
//	  - type: output_contains
//	    text: "3/4"
//
// Each scenario runs in a fresh session over the default catalog with a
// deterministic clock (every invocation measures exactly one microsecond)
// and sequential line IDs, so transcripts are reproducible byte for byte and
// can be compared against golden files.
package harness
