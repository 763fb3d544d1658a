package parser

import "github.com/flc-lang/flc/internal/token"

// Error is a single accumulated parse failure. Parsing never stops on the
// first Error: the offending subtree is kept (usually as a bare Symbol)
// and parsing continues, matching the tolerant-recovery behaviour callers
// such as `flc parse` depend on.
type Error struct {
	Message string
	Pos     token.Position
}

func (e *Error) Error() string { return e.Message + " at " + e.Pos.String() }

// ErrIncomplete is returned instead of a parse tree when the input ends
// mid-construct — an open bracket, a dangling "\" guard, or a trailing
// operator other than a final ";" with no right operand. It is distinct from Error so an
// interactive caller (a REPL) can tell "this is wrong" from "give me more
// input".
type ErrIncomplete struct {
	Pos token.Position
}

func (e *ErrIncomplete) Error() string { return "incomplete code at " + e.Pos.String() }
