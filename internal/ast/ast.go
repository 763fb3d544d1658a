// Package ast defines the expression tree produced by the parser and
// walked by the evaluator.
//
// The language has exactly five node shapes — Symbol, Tuple, FunctionCall,
// FunctionDefinition, and Property — rather than the usual large family of
// statement and declaration nodes. Every control-flow construct (if,
// while, for) is an ordinary FunctionCall whose callee is a System
// function; there is no Statement interface to implement.
package ast

import (
	"strings"

	"github.com/flc-lang/flc/internal/token"
)

// SymbolSet is the set of identifier names lexically visible at a node.
// It is populated by the parser's symbol-set pass (see SymbolSet.Union and
// the parser package), never by the evaluator.
type SymbolSet map[string]struct{}

// NewSymbolSet builds a SymbolSet from the given names.
func NewSymbolSet(names ...string) SymbolSet {
	s := make(SymbolSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Has reports whether name is a member of the set. A nil set has no
// members.
func (s SymbolSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Union returns a new SymbolSet containing every name in s and other.
// Neither operand is mutated.
func (s SymbolSet) Union(other SymbolSet) SymbolSet {
	out := make(SymbolSet, len(s)+len(other))
	for n := range s {
		out[n] = struct{}{}
	}
	for n := range other {
		out[n] = struct{}{}
	}
	return out
}

// Add inserts name into the set, mutating it in place.
func (s SymbolSet) Add(name string) { s[name] = struct{}{} }

// Expression is the single node interface for the expression tree. Every
// node carries a source position and the set of symbols visible there.
type Expression interface {
	// Pos returns the node's source position. Never zero for a
	// successfully parsed node.
	Pos() token.Position

	// Symbols returns the identifier names lexically visible at this
	// node, computed by the parser's symbol-set pass.
	Symbols() SymbolSet

	// String renders the node back to roughly the source form it was
	// parsed from; used for debugging and the `parse` CLI command's
	// default output, not for round-tripping token-for-token.
	String() string

	exprNode()
}

// base is embedded by every node to provide Pos/Symbols storage without
// repeating the boilerplate in each type.
type base struct {
	position token.Position
	symbols  SymbolSet
}

func (b *base) Pos() token.Position   { return b.position }
func (b *base) Symbols() SymbolSet    { return b.symbols }
func (b *base) SetSymbols(s SymbolSet) { b.symbols = s }
func (*base) exprNode()               {}

// Symbol is an identifier, a literal (number, string, true/false), or an
// operator token. Escaped distinguishes a symbol that was wrapped in its
// own bracket group ("(x)") from a bare one, so operator re-association
// does not re-enter it.
type Symbol struct {
	base
	Name    string
	Escaped bool
}

// NewSymbol creates a Symbol at pos. Its own name is its only visible
// symbol until the parser's symbol-set pass runs.
func NewSymbol(name string, pos token.Position) *Symbol {
	s := &Symbol{Name: name}
	s.position = pos
	s.symbols = NewSymbolSet(name)
	return s
}

func (s *Symbol) String() string { return s.Name }

// IsStringLiteral reports whether the symbol's text is a quoted string
// literal, i.e. starts with '"'.
func (s *Symbol) IsStringLiteral() bool {
	return strings.HasPrefix(s.Name, "\"")
}

// Tuple is a comma-separated group of expressions; the empty Tuple is the
// language's unit value.
type Tuple struct {
	base
	Objects []Expression
}

// NewTuple creates a Tuple at pos from the given elements.
func NewTuple(objects []Expression, pos token.Position) *Tuple {
	t := &Tuple{Objects: objects}
	t.position = pos
	set := SymbolSet{}
	for _, o := range objects {
		set = set.Union(o.Symbols())
	}
	t.symbols = set
	return t
}

func (t *Tuple) String() string {
	parts := make([]string, len(t.Objects))
	for i, o := range t.Objects {
		parts[i] = o.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// FunctionCall applies Function to Arguments, a single expression
// (typically a Tuple when there is more than one argument).
type FunctionCall struct {
	base
	Function  Expression
	Arguments Expression
}

// NewFunctionCall creates a FunctionCall at pos.
func NewFunctionCall(function, arguments Expression, pos token.Position) *FunctionCall {
	c := &FunctionCall{Function: function, Arguments: arguments}
	c.position = pos
	c.symbols = function.Symbols().Union(arguments.Symbols())
	return c
}

func (c *FunctionCall) String() string {
	return c.Function.String() + c.Arguments.String()
}

// FunctionDefinition is a parameter pattern, an optional guard (Filter),
// and a body. Parameters, Filter, and Body each open a new lexical scope:
// their symbol sets are computed but do not leak into the enclosing
// node's set (see Symbols on the parent Tuple/FunctionCall).
type FunctionDefinition struct {
	base
	Parameters Expression
	Filter     Expression // nil if unguarded
	Body       Expression
}

// NewFunctionDefinition creates a FunctionDefinition at pos. Its own
// Symbols() is always empty: a function literal introduces no names into
// its enclosing scope.
func NewFunctionDefinition(parameters, filter, body Expression, pos token.Position) *FunctionDefinition {
	f := &FunctionDefinition{Parameters: parameters, Filter: filter, Body: body}
	f.position = pos
	f.symbols = SymbolSet{}
	return f
}

func (f *FunctionDefinition) String() string {
	var sb strings.Builder
	sb.WriteString(f.Parameters.String())
	if f.Filter != nil {
		sb.WriteString(" \\ ")
		sb.WriteString(f.Filter.String())
	}
	sb.WriteString(" |-> ")
	sb.WriteString(f.Body.String())
	return sb.String()
}

// Property is named field access, written "object->name" in source.
type Property struct {
	base
	Object Expression
	Name   string
}

// NewProperty creates a Property at pos.
func NewProperty(object Expression, name string, pos token.Position) *Property {
	p := &Property{Object: object, Name: name}
	p.position = pos
	p.symbols = object.Symbols()
	return p
}

func (p *Property) String() string {
	return p.Object.String() + "->" + p.Name
}
