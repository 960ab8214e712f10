// Package catalog provides the default set of calculations shipped with
// calcbench.
//
// Each calculation is registered with an explicit engine.Signature. The
// engine coerces arguments before calling in, so calculation bodies only
// validate domain rules (negative inputs, zero denominators, overflow).
package catalog
