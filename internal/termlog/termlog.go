// Package termlog is the diagnostic logger for patch operations.
//
// Output is terse by default: only errors are printed. Setting
// EDITFIX_VERBOSE=1 (or constructing with Verbose) enables step-by-step
// progress output, and EDITFIX_DEBUG=1 additionally enables trace lines
// on stderr. The engine never fails because logging fails.
package termlog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Environment toggles. Absence means terse.
const (
	EnvVerbose = "EDITFIX_VERBOSE"
	EnvDebug   = "EDITFIX_DEBUG"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	warnColor    = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	headerColor  = color.New(color.FgBlue, color.Bold)
	dimColor     = color.New(color.FgHiBlack)
)

// Logger writes human-readable progress output for patch operations.
type Logger struct {
	verbose bool
	debug   bool
	out     io.Writer
	errOut  io.Writer
	indent  int
}

// Option configures a Logger.
type Option func(*Logger)

// WithOutput overrides the output writers (stdout/stderr by default).
func WithOutput(out, errOut io.Writer) Option {
	return func(l *Logger) {
		l.out = out
		l.errOut = errOut
	}
}

// WithVerbose forces verbose mode regardless of environment.
func WithVerbose(v bool) Option {
	return func(l *Logger) {
		l.verbose = v
	}
}

// New creates a Logger. Verbosity defaults from the environment:
// EDITFIX_VERBOSE enables progress output, EDITFIX_DEBUG trace output.
func New(opts ...Option) *Logger {
	l := &Logger{
		verbose: envEnabled(EnvVerbose),
		debug:   envEnabled(EnvDebug),
		out:     os.Stdout,
		errOut:  os.Stderr,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func envEnabled(name string) bool {
	switch strings.ToLower(os.Getenv(name)) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// Verbose reports whether progress output is enabled.
func (l *Logger) Verbose() bool {
	return l.verbose
}

func (l *Logger) write(w io.Writer, msg string) {
	pad := strings.Repeat("  ", l.indent)
	_, _ = fmt.Fprintf(w, "%s%s\n", pad, msg)
}

// Section prints a section header in verbose mode.
func (l *Logger) Section(title string) {
	if !l.verbose {
		return
	}
	l.write(l.out, headerColor.Sprintf("▸ %s", title))
}

// Infof prints a progress message in verbose mode.
func (l *Logger) Infof(format string, args ...any) {
	if !l.verbose {
		return
	}
	l.write(l.out, fmt.Sprintf(format, args...))
}

// Successf prints a success message in verbose mode.
func (l *Logger) Successf(format string, args ...any) {
	if !l.verbose {
		return
	}
	l.write(l.out, successColor.Sprint("✓ ")+fmt.Sprintf(format, args...))
}

// Warnf prints a warning message in verbose mode.
func (l *Logger) Warnf(format string, args ...any) {
	if !l.verbose {
		return
	}
	l.write(l.out, warnColor.Sprint("⚠ ")+fmt.Sprintf(format, args...))
}

// Errorf prints an error message. Errors print even in terse mode.
func (l *Logger) Errorf(format string, args ...any) {
	l.write(l.errOut, errorColor.Sprint("✗ ")+fmt.Sprintf(format, args...))
}

// Debugf prints a trace line to stderr when EDITFIX_DEBUG is enabled.
func (l *Logger) Debugf(format string, args ...any) {
	if !l.debug {
		return
	}
	l.write(l.errOut, dimColor.Sprint("[editfix] ")+fmt.Sprintf(format, args...))
}

// List prints items as an indented bullet list in verbose mode.
func (l *Logger) List(items []string) {
	if !l.verbose {
		return
	}
	for _, item := range items {
		l.write(l.out, dimColor.Sprintf("  • %s", item))
	}
}

// Indent returns a Logger writing one level deeper. The receiver is not
// modified.
func (l *Logger) Indent() *Logger {
	child := *l
	child.indent++
	return &child
}
