// Package builtins registers the system-function library — the
// control-flow primitives (`;`, `if`, `while`, `for`, `try`), the
// assignment and method-definition operators (`:=`, `:`), equality and
// copy (`==`, `===`, `$`, `$==`), the arithmetic/comparison/boolean
// operators, and a minimal I/O and string/array surface — into a fresh
// GlobalContext.
package builtins

import (
	"io"

	"github.com/flc-lang/flc/internal/ast"
	"github.com/flc-lang/flc/internal/interp"
	"github.com/flc-lang/flc/internal/runtime"
	"github.com/flc-lang/flc/internal/token"
)

// Importer resolves and executes an `import`ed source file, returning
// the reference its file-level expression evaluated to. internal/loader
// implements this, tracking the current file's directory itself (so
// nested imports resolve relatively) rather than threading it through
// this call. Register leaves `import` unwired (an ordinary
// IncorrectFunctionArguments failure) when Importer is nil, which suits
// tests that never touch the filesystem.
type Importer interface {
	Import(path string) (runtime.Reference, error)
}

// Options configures the parts of the library that need a host
// resource: where `print`/`println` write to, and how `import` resolves
// a path.
type Options struct {
	Stdout   io.Writer
	Importer Importer
}

// Register installs the library into g, using in to evaluate quoted
// blocks (if/while/for bodies, try's block, the `:=` place expression).
func Register(g *runtime.GlobalContext, in *interp.Interpreter, opts Options) {
	registerControl(g, in)
	registerAssignment(g, in)
	registerExceptions(g, in)
	registerEquality(g)
	registerArithmetic(g)
	registerIO(g, opts.Stdout)
	registerCollections(g)
	registerImport(g, opts.Importer)
}

var builtinPos = token.Position{Path: "<builtin>", Line: 1, Column: 1}

func symAt(name string) *ast.Symbol { return ast.NewSymbol(name, builtinPos) }

// tuplePattern builds the (name1, name2, ...) Parameters pattern shared
// by every binary operator.
func tuplePattern(names ...string) *ast.Tuple {
	objs := make([]ast.Expression, len(names))
	for i, n := range names {
		objs[i] = symAt(n)
	}
	return ast.NewTuple(objs, builtinPos)
}

// blockPattern builds the `name()` FunctionCall pattern that quotes an
// argument as a re-invocable, zero-argument block (see bindParameters'
// FunctionCall case).
func blockPattern(name string) *ast.FunctionCall {
	return ast.NewFunctionCall(symAt(name), ast.NewTuple(nil, builtinPos), builtinPos)
}

// define binds name to a fresh Object whose sole overload is fn,
// front-inserting if name is already bound (so later registrations, and
// any user `:` extension, take priority over earlier ones).
func define(g *runtime.GlobalContext, name string, fn *runtime.Function) {
	cell := g.Lookup(name)
	obj := objectAt(cell)
	obj.PushFunction(fn)
}

// objectAt returns the Object already bound to cell, allocating and
// binding a fresh one if the cell is not yet a callable Object.
func objectAt(cell *runtime.Cell) *runtime.Object {
	if cell.Data.Defined && cell.Data.Kind == runtime.KindObject && cell.Data.Object != nil {
		return cell.Data.Object
	}
	obj := runtime.NewObject()
	cell.Data = runtime.NewObjectData(obj)
	cell.Thunk = nil
	return obj
}

func system(g *runtime.GlobalContext, name string, params ast.Expression, host runtime.SystemFunc) {
	define(g, name, runtime.NewSystemFunction(params, host))
}

func unit(g *runtime.GlobalContext) runtime.Reference {
	return runtime.NewDirectReference(runtime.NewObjectData(g.NewObject()))
}

func call1(fc *runtime.FunctionContext, name string) (runtime.Data, error) {
	return fc.Lookup(name).Force()
}

func asLong(d runtime.Data) (int64, bool) {
	if !d.Defined || d.Kind != runtime.KindLong {
		return 0, false
	}
	return d.Long, true
}

func asDouble(d runtime.Data) (float64, bool) {
	switch {
	case d.Defined && d.Kind == runtime.KindDouble:
		return d.Double, true
	case d.Defined && d.Kind == runtime.KindLong:
		return float64(d.Long), true
	default:
		return 0, false
	}
}

func asBool(d runtime.Data) (bool, bool) { return d.Truthy() }
