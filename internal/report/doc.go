// Package report formats calculation results and timings as text.
package report
