package cli

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
)

// NewLogger returns a slog logger backed by a charmbracelet/log handler.
// Debug records are emitted only when verbose is set.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}

	handler := log.NewWithOptions(w, log.Options{
		Prefix:          "calcbench",
		Level:           level,
		ReportTimestamp: verbose,
	})
	return slog.New(handler)
}
