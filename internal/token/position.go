// Package token defines the source-position type shared by the lexer,
// parser, evaluator, and diagnostics packages.
package token

import "fmt"

// Position identifies a single point in a source file by path, line, and
// column. Both line and column are 1-based. Columns are counted in runes,
// not bytes, so multi-byte UTF-8 sequences inside identifiers or operators
// each count as a single column.
type Position struct {
	Path   string
	Line   int
	Column int
}

// String renders the position as "path:line:column", the form used in
// diagnostic messages and stack frames throughout the interpreter.
func (p Position) String() string {
	if p.Path == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.Path, p.Line, p.Column)
}

// IsZero reports whether the position was never set. A zero position
// disables stack-frame reporting for that frame, per the interpreter's
// diagnostics contract: positions are never synthesised.
func (p Position) IsZero() bool {
	return p.Line == 0 && p.Column == 0 && p.Path == ""
}
