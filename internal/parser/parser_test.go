package parser_test

import (
	"testing"

	"github.com/flc-lang/flc/internal/ast"
	"github.com/flc-lang/flc/internal/lexer"
	"github.com/flc-lang/flc/internal/parser"
)

func parse(t *testing.T, src string) ast.Expression {
	t.Helper()
	words, lexErrs := lexer.New("test", src).Words()
	if len(lexErrs) != 0 {
		t.Fatalf("unexpected lex errors: %v", lexErrs)
	}
	p := parser.New(words)
	expr, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram(%q): %v", src, err)
	}
	if errs := p.Errors(); len(errs) != 0 {
		t.Fatalf("ParseProgram(%q) accumulated errors: %v", src, errs)
	}
	return expr
}

func TestEmptyProgram(t *testing.T) {
	expr := parse(t, "")
	tup, ok := expr.(*ast.Tuple)
	if !ok || len(tup.Objects) != 0 {
		t.Fatalf("expected empty Tuple, got %#v", expr)
	}
}

func TestSymbolLiteral(t *testing.T) {
	expr := parse(t, "42")
	sym, ok := expr.(*ast.Symbol)
	if !ok || sym.Name != "42" {
		t.Fatalf("expected Symbol(42), got %s", expr.String())
	}
}

func TestJuxtapositionIsLeftAssociativeCall(t *testing.T) {
	expr := parse(t, "f a b")
	call, ok := expr.(*ast.FunctionCall)
	if !ok {
		t.Fatalf("expected FunctionCall, got %T", expr)
	}
	inner, ok := call.Function.(*ast.FunctionCall)
	if !ok {
		t.Fatalf("expected nested FunctionCall as callee, got %T", call.Function)
	}
	if inner.Function.String() != "f" || inner.Arguments.String() != "a" || call.Arguments.String() != "b" {
		t.Fatalf("got %s", expr.String())
	}
}

func TestOperatorPrecedence(t *testing.T) {
	expr := parse(t, "1 + 2 * 3")
	outer, ok := expr.(*ast.FunctionCall)
	if !ok {
		t.Fatalf("expected FunctionCall, got %T", expr)
	}
	if sym, ok := outer.Function.(*ast.Symbol); !ok || sym.Name != "+" {
		t.Fatalf("expected root operator '+', got %s", outer.Function.String())
	}
	args, ok := outer.Arguments.(*ast.Tuple)
	if !ok || len(args.Objects) != 2 {
		t.Fatalf("expected a 2-tuple of operands, got %T", outer.Arguments)
	}
	lhs, ok := args.Objects[0].(*ast.Symbol)
	if !ok || lhs.Name != "1" {
		t.Fatalf("expected left operand 1, got %s", args.Objects[0].String())
	}
	rhsCall, ok := args.Objects[1].(*ast.FunctionCall)
	if !ok {
		t.Fatalf("expected right operand to be the '*' call, got %T", args.Objects[1])
	}
	if sym, ok := rhsCall.Function.(*ast.Symbol); !ok || sym.Name != "*" {
		t.Fatalf("expected right operand operator '*', got %s", rhsCall.Function.String())
	}
}

func TestOperatorLeftAssociativity(t *testing.T) {
	expr := parse(t, "1 - 2 - 3")
	outer, ok := expr.(*ast.FunctionCall)
	if !ok {
		t.Fatalf("expected FunctionCall, got %T", expr)
	}
	args := outer.Arguments.(*ast.Tuple)
	// (1 - 2) - 3: the right operand of the outer call is the literal 3.
	if rhs, ok := args.Objects[1].(*ast.Symbol); !ok || rhs.Name != "3" {
		t.Fatalf("expected right operand 3 at the top level, got %s", args.Objects[1].String())
	}
	if _, ok := args.Objects[0].(*ast.FunctionCall); !ok {
		t.Fatalf("expected left operand to be the nested (1 - 2) call, got %T", args.Objects[0])
	}
}

func TestUnaryPrefixOperator(t *testing.T) {
	expr := parse(t, "-5")
	call, ok := expr.(*ast.FunctionCall)
	if !ok {
		t.Fatalf("expected FunctionCall, got %T", expr)
	}
	if sym, ok := call.Function.(*ast.Symbol); !ok || sym.Name != "-" {
		t.Fatalf("expected operator '-', got %s", call.Function.String())
	}
	if arg, ok := call.Arguments.(*ast.Symbol); !ok || arg.Name != "5" {
		t.Fatalf("expected single argument 5, got %s", call.Arguments.String())
	}
}

func TestTupleCommaGrouping(t *testing.T) {
	expr := parse(t, "1, 2, 3")
	tup, ok := expr.(*ast.Tuple)
	if !ok || len(tup.Objects) != 3 {
		t.Fatalf("expected 3-element Tuple, got %#v", expr)
	}
}

func TestBracketedEmptyTupleIsUnit(t *testing.T) {
	expr := parse(t, "()")
	tup, ok := expr.(*ast.Tuple)
	if !ok || len(tup.Objects) != 0 {
		t.Fatalf("expected empty Tuple, got %#v", expr)
	}
}

func TestPropertyAccess(t *testing.T) {
	expr := parse(t, "x->y")
	prop, ok := expr.(*ast.Property)
	if !ok || prop.Name != "y" {
		t.Fatalf("expected Property access to 'y', got %#v", expr)
	}
	if sym, ok := prop.Object.(*ast.Symbol); !ok || sym.Name != "x" {
		t.Fatalf("expected Property object 'x', got %s", prop.Object.String())
	}
}

func TestPropertyChainOnJuxtaposedCall(t *testing.T) {
	expr := parse(t, "f x->y")
	call, ok := expr.(*ast.FunctionCall)
	if !ok {
		t.Fatalf("expected FunctionCall, got %T", expr)
	}
	if _, ok := call.Arguments.(*ast.Property); !ok {
		t.Fatalf("expected argument to be a Property access, got %T", call.Arguments)
	}
}

func TestFunctionDefinitionNoFilter(t *testing.T) {
	expr := parse(t, "x |-> x")
	fn, ok := expr.(*ast.FunctionDefinition)
	if !ok {
		t.Fatalf("expected FunctionDefinition, got %T", expr)
	}
	if fn.Filter != nil {
		t.Fatalf("expected nil Filter, got %v", fn.Filter)
	}
	if fn.Parameters.String() != "x" || fn.Body.String() != "x" {
		t.Fatalf("got %s", expr.String())
	}
	if len(fn.Symbols()) != 0 {
		t.Fatalf("FunctionDefinition must not leak symbols into its own Symbols(), got %v", fn.Symbols())
	}
}

func TestFunctionDefinitionWithFilter(t *testing.T) {
	expr := parse(t, "x \\ x |-> x")
	fn, ok := expr.(*ast.FunctionDefinition)
	if !ok {
		t.Fatalf("expected FunctionDefinition, got %T", expr)
	}
	if fn.Filter == nil || fn.Filter.String() != "x" {
		t.Fatalf("expected Filter 'x', got %v", fn.Filter)
	}
}

func TestParenthesizedSymbolIsEscaped(t *testing.T) {
	expr := parse(t, "(x)")
	sym, ok := expr.(*ast.Symbol)
	if !ok || !sym.Escaped {
		t.Fatalf("expected an Escaped Symbol, got %#v", expr)
	}
}

func TestReservedTokenIsAnError(t *testing.T) {
	words, _ := lexer.New("test", "x ->").Words()
	p := parser.New(words)
	if _, err := p.ParseProgram(); err == nil && len(p.Errors()) == 0 {
		t.Fatalf("expected a parse error for a dangling '->'")
	}
}

func TestIncompleteCodeUnclosedBracket(t *testing.T) {
	words, _ := lexer.New("test", "(1 + 2").Words()
	p := parser.New(words)
	_, err := p.ParseProgram()
	if err == nil {
		t.Fatalf("expected an incomplete-code error")
	}
	if _, ok := err.(*parser.ErrIncomplete); !ok {
		t.Fatalf("expected *parser.ErrIncomplete, got %T: %v", err, err)
	}
}

func TestIncompleteCodeTrailingOperator(t *testing.T) {
	words, _ := lexer.New("test", "1 +").Words()
	p := parser.New(words)
	_, err := p.ParseProgram()
	if _, ok := err.(*parser.ErrIncomplete); !ok {
		t.Fatalf("expected *parser.ErrIncomplete, got %T: %v", err, err)
	}
}
