// Package diag formats parser and evaluator diagnostics with a
// source-line-and-caret view, plus a StackTrace/StackFrame pair for
// rendering an uncaught exception's call chain. The shapes and the
// multi-error wrapper are adapted from the source project's own
// internal/errors package.
package diag

import (
	"fmt"
	"strings"

	"github.com/flc-lang/flc/internal/interp"
	"github.com/flc-lang/flc/internal/token"
)

// SourceError pairs a message with the Position it was raised at and the
// source it came from, the common shape both ParserError and an
// evaluator Exception render through.
type SourceError struct {
	Message string
	Source  string
	Pos     token.Position
}

// New builds a SourceError.
func New(pos token.Position, message, source string) *SourceError {
	return &SourceError{Pos: pos, Message: message, Source: source}
}

func (e *SourceError) Error() string { return e.Format(false) }

// Format renders a header ("path:line:column"), the offending source
// line with a line-number gutter, a caret under the exact column, and
// the message. With color true, the caret and message are wrapped in
// ANSI escapes for terminal output.
func (e *SourceError) Format(color bool) string {
	var sb strings.Builder

	if e.Pos.IsZero() {
		sb.WriteString("error (no position)\n")
	} else {
		sb.WriteString(fmt.Sprintf("error at %s\n", e.Pos.String()))
	}

	if line, ok := sourceLine(e.Source, e.Pos.Line); ok {
		gutter := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(gutter)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(gutter)+max(e.Pos.Column-1, 0)))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}
	return sb.String()
}

func sourceLine(source string, line int) (string, bool) {
	if source == "" || line < 1 {
		return "", false
	}
	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return "", false
	}
	return lines[line-1], true
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// FormatErrors renders a slice of SourceErrors: a single error prints
// bare, multiple errors get a numbered "[N of M]" header per entry.
func FormatErrors(errs []*SourceError, color bool) string {
	switch len(errs) {
	case 0:
		return ""
	case 1:
		return errs[0].Format(color)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d error(s):\n\n", len(errs))
	for i, e := range errs {
		fmt.Fprintf(&sb, "[%d of %d]\n", i+1, len(errs))
		sb.WriteString(e.Format(color))
		if i < len(errs)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}

// StackFrame is one rendered entry of an uncaught Exception's call
// chain: the position the call was made from. A zero Position (per
// token.Position's "never synthesised" contract) renders as "<unknown>".
type StackFrame struct {
	Pos token.Position
}

func (f StackFrame) String() string {
	if f.Pos.IsZero() {
		return "<unknown>"
	}
	return f.Pos.String()
}

// StackTrace is a call chain, innermost frame first — the order
// interp.Exception.Stack is recorded in.
type StackTrace []StackFrame

// FromException builds a StackTrace from an Exception's recorded Frames.
func FromException(exc *interp.Exception) StackTrace {
	st := make(StackTrace, len(exc.Stack))
	for i, f := range exc.Stack {
		st[i] = StackFrame{Pos: f.Pos}
	}
	return st
}

// String renders one frame per line, outermost (oldest) call first, so
// it reads top-to-bottom the way a caller would expect: "where the
// program started" down to "where the exception was raised".
func (st StackTrace) String() string {
	if len(st) == 0 {
		return ""
	}
	var sb strings.Builder
	for i := len(st) - 1; i >= 0; i-- {
		sb.WriteString("  at ")
		sb.WriteString(st[i].String())
		if i > 0 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// FormatException renders an uncaught Exception the way the CLI's `run`
// command reports a program failure: the thrown value, the position it
// was raised at (with source context if available), and its call stack.
func FormatException(exc *interp.Exception, source string) string {
	var sb strings.Builder
	sb.WriteString(New(exc.Pos, exc.Value.String(), source).Format(false))
	if trace := FromException(exc).String(); trace != "" {
		sb.WriteString("\n")
		sb.WriteString(trace)
		sb.WriteString("\n")
	}
	return sb.String()
}
