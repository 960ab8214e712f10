// Package repl implements the interactive read-dispatch-report loop.
package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/roach88/calcbench/internal/engine"
	"github.com/roach88/calcbench/internal/report"
)

// ExitCommand ends the loop. Matched exactly and case-sensitively, before
// dispatch.
const ExitCommand = "exit"

// InvalidInputNotice is printed for every failed line, whatever the cause.
const InvalidInputNotice = "Invalid input."

// progressLogEvery controls how often range expansion progress is logged.
const progressLogEvery = 10_000

// Session reads lines, dispatches them through the engine and prints
// results. A Session is single-use and not safe for concurrent use.
type Session struct {
	engine   *engine.Engine
	reporter *report.Reporter
	in       io.Reader
	out      io.Writer
	prompt   string
	echo     bool
	logger   *slog.Logger
	styles   styles
}

// Option configures a Session.
type Option func(*sessionConfig)

type sessionConfig struct {
	prompt    string
	echo      bool
	color     bool
	threshold int
	logger    *slog.Logger
}

// WithPrompt sets the text printed before each read. Empty disables it.
func WithPrompt(p string) Option {
	return func(c *sessionConfig) { c.prompt = p }
}

// WithEcho writes each line read back to the output, for transcripts.
func WithEcho(echo bool) Option {
	return func(c *sessionConfig) { c.echo = echo }
}

// WithColor enables lipgloss styling of banner and notices.
func WithColor(color bool) Option {
	return func(c *sessionConfig) { c.color = color }
}

// WithThreshold sets the reporter's per-record printout limit.
func WithThreshold(n int) Option {
	return func(c *sessionConfig) { c.threshold = n }
}

// WithLogger sets the logger used for per-line diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *sessionConfig) { c.logger = l }
}

// New creates a Session reading from in and writing to out.
func New(eng *engine.Engine, in io.Reader, out io.Writer, opts ...Option) *Session {
	cfg := sessionConfig{
		prompt:    "Enter calculation: ",
		threshold: report.DefaultThreshold,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Session{
		engine:   eng,
		reporter: report.New(out, report.WithThreshold(cfg.threshold)),
		in:       in,
		out:      out,
		prompt:   cfg.prompt,
		echo:     cfg.echo,
		logger:   cfg.logger,
		styles:   newStyles(out, cfg.color),
	}
}

// Banner prints the usage summary shown at startup.
func (s *Session) Banner() {
	fmt.Fprintln(s.out, s.styles.title("calcbench"))
	lines := []string{
		`Input name of calculation followed by arguments, all separated by ",", or "exit" to exit.`,
		`To run a calculation for a number range, follow the format "start-end" (both numbers inclusive).`,
		fmt.Sprintf("Running more than %d calculations at a time will disable result printout.", s.reporter.Threshold()),
		`To input fractions, follow the format "x/y". To input decimals, follow the format "x.y".`,
	}
	for _, l := range lines {
		fmt.Fprintln(s.out, s.styles.hint(l))
	}
}

// Run reads lines until "exit", end of input, or ctx is done.
//
// Every error from a line is reported as InvalidInputNotice and the loop
// moves on; no line error ends the session. Run only returns an error if
// reading the input fails.
func (s *Session) Run(ctx context.Context) error {
	reader := bufio.NewReader(s.in)

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		if s.prompt != "" {
			fmt.Fprint(s.out, "\n"+s.prompt)
		}

		// Lines have no length cap; a final line without a newline is
		// still processed.
		raw, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read input: %w", err)
		}
		if raw == "" && err != nil {
			return nil
		}

		line := strings.TrimSuffix(strings.TrimSuffix(raw, "\n"), "\r")
		if s.echo {
			fmt.Fprintln(s.out, line)
		}
		if exit, _ := s.Process(line); exit {
			return nil
		}
		if err != nil {
			return nil
		}
	}
}

// Process handles one line as the loop would: "exit" reports exit without
// output, and a failed line prints InvalidInputNotice. The line's error, if
// any, is returned for callers that inspect it.
func (s *Session) Process(line string) (exit bool, err error) {
	if line == ExitCommand {
		return true, nil
	}
	if err := s.Handle(line); err != nil {
		fmt.Fprintln(s.out, s.styles.notice(InvalidInputNotice))
		return false, err
	}
	return false, nil
}

// Handle dispatches one line and prints its report. The returned error is
// the engine's *engine.Error; Handle does not print a notice for it.
func (s *Session) Handle(line string) error {
	plan, err := s.engine.Prepare(line, s.logProgress)
	if err != nil {
		s.logFailure(line, err)
		return err
	}

	if plan.Ranged {
		s.reporter.Prepared(plan.Size())
	}

	s.reporter.Begin(plan.Size())
	records, err := s.engine.Execute(plan)
	if err != nil {
		s.reporter.Abort(plan.Size())
		s.logFailure(line, err)
		return err
	}
	s.reporter.Report(records, plan.Size())
	return nil
}

func (s *Session) logProgress(prepared int) {
	if prepared%progressLogEvery == 0 {
		s.logger.Debug("expanding range", "prepared", prepared)
	}
}

func (s *Session) logFailure(line string, err error) {
	attrs := []any{"line", line, "code", engine.CodeOf(err), "error", err}
	var de *engine.Error
	if errors.As(err, &de) && de.Err != nil {
		attrs = append(attrs, "cause", de.Err)
	}
	s.logger.Debug("line failed", attrs...)
}
