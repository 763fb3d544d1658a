package interp_test

import (
	"testing"

	"github.com/flc-lang/flc/internal/ast"
	"github.com/flc-lang/flc/internal/interp"
	"github.com/flc-lang/flc/internal/runtime"
	"github.com/flc-lang/flc/internal/token"
)

func pos() token.Position { return token.Position{Path: "t", Line: 1, Column: 1} }

func sym(name string) *ast.Symbol { return ast.NewSymbol(name, pos()) }

func newInterp() (*interp.Interpreter, *runtime.GlobalContext) {
	g := runtime.NewGlobalContext(0)
	return interp.New(g), g
}

func mustRead(t *testing.T, ref runtime.Reference, err error) runtime.Data {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d, rerr := ref.Read()
	if rerr != nil {
		t.Fatalf("Read: %v", rerr)
	}
	return d
}

func TestEvalIntegerLiteral(t *testing.T) {
	in, g := newInterp()
	ref, err := in.Execute(g, sym("42"))
	d := mustRead(t, ref, err)
	if d.Kind != runtime.KindLong || d.Long != 42 {
		t.Fatalf("expected long 42, got %v", d)
	}
}

func TestEvalFloatLiteral(t *testing.T) {
	in, g := newInterp()
	ref, err := in.Execute(g, sym("3.5"))
	d := mustRead(t, ref, err)
	if d.Kind != runtime.KindDouble || d.Double != 3.5 {
		t.Fatalf("expected double 3.5, got %v", d)
	}
}

func TestEvalStringLiteral(t *testing.T) {
	in, g := newInterp()
	ref, err := in.Execute(g, sym(`"hi\n"`))
	d := mustRead(t, ref, err)
	if d.Kind != runtime.KindObject {
		t.Fatalf("expected an object, got %v", d)
	}
	s, ok := d.Object.GoString()
	if !ok || s != "hi\n" {
		t.Fatalf("expected decoded string %q, got %q (ok=%v)", "hi\n", s, ok)
	}
}

func TestEvalUndefinedSymbolAutoVivifies(t *testing.T) {
	in, g := newInterp()
	if g.HasSymbol("zz") {
		t.Fatalf("zz should not exist yet")
	}
	ref, err := in.Execute(g, sym("zz"))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	d, err := ref.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if d.Defined {
		t.Fatalf("expected an undefined placeholder, got %v", d)
	}
	if !g.HasSymbol("zz") {
		t.Fatalf("looking up zz should have bound it on the global frame")
	}
}

func TestEvalEmptyTupleIsUnit(t *testing.T) {
	in, g := newInterp()
	ref, err := in.Execute(g, ast.NewTuple(nil, pos()))
	d := mustRead(t, ref, err)
	if d.Kind != runtime.KindObject || d.Object == nil || len(d.Object.Array) != 0 {
		t.Fatalf("expected an empty object, got %v", d)
	}
}

func TestEvalPropertyAutoCreates(t *testing.T) {
	in, g := newInterp()
	obj := g.NewObject()
	g.AddSymbol("o", &runtime.Cell{Data: runtime.NewObjectData(obj)})

	prop := ast.NewProperty(sym("o"), "count", pos())
	ref, err := in.Execute(g, prop)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if err := ref.Write(runtime.NewDirectReference(runtime.NewLongData(5))); err != nil {
		t.Fatalf("write: %v", err)
	}
	if obj.Properties["count"].Data.Long != 5 {
		t.Fatalf("expected property write to land on the object, got %v", obj.Properties["count"].Data)
	}
}

// TestFunctionCallIdentity builds `f(5)` where f := (x) |-> x, exercising
// FunctionDefinition capture plus the Simple-name lazy-bind path.
func TestFunctionCallIdentity(t *testing.T) {
	in, g := newInterp()

	defExpr := ast.NewFunctionDefinition(sym("x"), nil, sym("x"), pos())
	fRef, err := in.Execute(g, defExpr)
	if err != nil {
		t.Fatalf("defining f: %v", err)
	}
	fData, _ := fRef.Read()
	g.AddSymbol("f", &runtime.Cell{Data: fData})

	call := ast.NewFunctionCall(sym("f"), sym("5"), pos())
	ref, err := in.Execute(g, call)
	d := mustRead(t, ref, err)
	if d.Kind != runtime.KindLong || d.Long != 5 {
		t.Fatalf("expected f(5) == 5, got %v", d)
	}
}

// TestOverloadResolutionPicksFirstMatch builds an object with two Custom
// overloads — a 2-tuple pattern and a 1-name pattern — front-inserted in
// that order, and checks that a single-argument call dispatches to the
// 1-name overload, which is first in priority.
func TestOverloadResolutionPicksFirstMatch(t *testing.T) {
	in, g := newInterp()

	pairFn := runtime.NewCustomFunction(
		ast.NewTuple([]ast.Expression{sym("a"), sym("b")}, pos()),
		nil,
		ast.NewFunctionCall(sym("$pair"), ast.NewTuple([]ast.Expression{sym("a"), sym("b")}, pos()), pos()),
		map[string]*runtime.Cell{},
	)
	singleFn := runtime.NewCustomFunction(sym("x"), nil, sym("x"), map[string]*runtime.Cell{})

	obj := g.NewObject()
	// Front-insert so the 1-arg overload (added second) has priority;
	// PushFunction always prepends.
	obj.PushFunction(pairFn)
	obj.PushFunction(singleFn)
	g.AddSymbol("f", &runtime.Cell{Data: runtime.NewObjectData(obj)})

	// A single-argument call should match singleFn (it is first in
	// priority) even though pairFn also exists, since pairFn's Tuple
	// pattern only matches a 2-tuple argument.
	call := ast.NewFunctionCall(sym("f"), sym("9"), pos())
	ref, err := in.Execute(g, call)
	d := mustRead(t, ref, err)
	if d.Kind != runtime.KindLong || d.Long != 9 {
		t.Fatalf("expected the single-name overload to match, got %v", d)
	}
}

func TestRecursionLimitExceeded(t *testing.T) {
	g := runtime.NewGlobalContext(3)
	in := interp.New(g)

	// loop := () |-> loop() — infinite recursion, bounded by maxDepth.
	var defExpr ast.Expression
	loopCall := ast.NewFunctionCall(sym("loop"), ast.NewTuple(nil, pos()), pos())
	defExpr = ast.NewFunctionDefinition(ast.NewTuple(nil, pos()), nil, loopCall, pos())

	fRef, err := in.Execute(g, defExpr)
	if err != nil {
		t.Fatalf("defining loop: %v", err)
	}
	fData, _ := fRef.Read()
	cell := &runtime.Cell{Data: fData}
	g.AddSymbol("loop", cell)
	// The closure captured no "loop" binding (it didn't exist yet when
	// defined), so rebind its own captured set to see itself.
	fData.Object.Functions[0].Captured["loop"] = cell

	_, err = in.Execute(g, loopCall)
	if err == nil {
		t.Fatalf("expected a recursion-limit exception")
	}
	exc, ok := err.(*interp.Exception)
	if !ok {
		t.Fatalf("expected *interp.Exception, got %T: %v", err, err)
	}
	_ = exc
}
