package interp

import (
	"fmt"

	"github.com/flc-lang/flc/internal/runtime"
	"github.com/flc-lang/flc/internal/token"
)

// argumentsError drives overload resolution: a failed parameter-pattern
// bind or an unsatisfied filter raises this internally so the dispatcher
// can try the next overload. It is never visible to user code — see
// Exception for the language-level equivalent.
type argumentsError struct {
	reason string
}

func (e *argumentsError) Error() string { return "function arguments error: " + e.reason }

func argErrorf(format string, args ...any) error {
	return &argumentsError{reason: fmt.Sprintf(format, args...)}
}

func isArgumentsError(err error) bool {
	_, ok := err.(*argumentsError)
	return ok
}

// ArgumentsError lets a System function (registered from outside this
// package, e.g. internal/builtins) signal a type mismatch that should
// make the dispatcher try the next overload, the same way a failed
// bindParameters match does.
func ArgumentsError(format string, args ...any) error {
	return argErrorf(format, args...)
}

// Exception is the language-visible error raised by `throw` and by the
// built-in predefined exceptions (NotAFunction, IncorrectFunctionArguments,
// RecursionLimitExceeded). It carries the thrown value, the position it
// was raised at, and the call stack at that point; a `try`/`catch` is
// the only thing that consumes it, and an exception raised inside a
// catch handler replaces nothing — the original propagates unchanged.
type Exception struct {
	Value runtime.Data
	Pos   token.Position
	Stack []Frame
}

func (e *Exception) Error() string {
	return fmt.Sprintf("exception at %s: %s", e.Pos, e.Value.String())
}

// Frame is one entry of an Exception's call stack: the position the
// call was made from. Frames are recorded innermost-first.
type Frame struct {
	Pos token.Position
}

// newException builds an Exception carrying value, raised at pos, with
// the given stack trace (a snapshot of the interpreter's call frames).
func newException(value runtime.Data, pos token.Position, stack []Frame) *Exception {
	return &Exception{Value: value, Pos: pos, Stack: stack}
}

// Predefined exception tags, registered into the GlobalContext at
// startup (see Register in builtins). An exception raised under one of
// these names carries the tag as a string in its `tag` property, which
// compares `==` to the registered global of the same name.
const (
	NotAFunction               = "NotAFunction"
	IncorrectFunctionArguments = "IncorrectFunctionArguments"
	RecursionLimitExceeded     = "RecursionLimitExceeded"
	ParserException            = "ParserException"
)
