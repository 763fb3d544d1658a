// Package interp evaluates an ast.Expression tree against a
// runtime.Context, implementing the multiple-dispatch overload
// resolution, closure capture, and exception propagation the language
// depends on.
package interp

import (
	"strconv"
	"strings"

	"github.com/flc-lang/flc/internal/ast"
	"github.com/flc-lang/flc/internal/runtime"
	"github.com/flc-lang/flc/internal/token"
)

// Interpreter evaluates expressions against a GlobalContext. It is safe
// to reuse across several top-level Execute calls (e.g. one per
// imported file) since all state beyond the call stack trace lives in
// the Context chain itself.
type Interpreter struct {
	Global *runtime.GlobalContext
	stack  []Frame
}

// New creates an Interpreter over an already-constructed GlobalContext.
func New(global *runtime.GlobalContext) *Interpreter {
	return &Interpreter{Global: global}
}

// Execute evaluates expr in ctx and returns the resulting Reference.
// Evaluation is strictly left-to-right, inside-out, matching the
// language's single-threaded ordering guarantee.
func (in *Interpreter) Execute(ctx runtime.Context, expr ast.Expression) (runtime.Reference, error) {
	switch node := expr.(type) {
	case *ast.Symbol:
		return in.evalSymbol(ctx, node)
	case *ast.Tuple:
		return in.evalTuple(ctx, node)
	case *ast.Property:
		return in.evalProperty(ctx, node)
	case *ast.FunctionDefinition:
		return in.evalFunctionDefinition(ctx, node)
	case *ast.FunctionCall:
		return in.evalFunctionCall(ctx, node)
	default:
		return nil, argErrorf("unknown expression node %T", expr)
	}
}

func (in *Interpreter) evalSymbol(ctx runtime.Context, sym *ast.Symbol) (runtime.Reference, error) {
	if sym.IsStringLiteral() {
		s, err := decodeStringLiteral(sym.Name)
		if err != nil {
			return nil, in.raise(sym.Pos(), err.Error())
		}
		return runtime.NewDirectReference(runtime.NewObjectData(runtime.NewStringObject(s))), nil
	}
	if n, err := strconv.ParseInt(sym.Name, 10, 64); err == nil {
		return runtime.NewDirectReference(runtime.NewLongData(n)), nil
	}
	if f, err := strconv.ParseFloat(sym.Name, 64); err == nil {
		return runtime.NewDirectReference(runtime.NewDoubleData(f)), nil
	}
	cell := ctx.Lookup(sym.Name)
	return runtime.NewSymbolReference(cell), nil
}

func (in *Interpreter) evalTuple(ctx runtime.Context, tup *ast.Tuple) (runtime.Reference, error) {
	if len(tup.Objects) == 0 {
		return runtime.NewDirectReference(runtime.NewObjectData(in.Global.NewObject())), nil
	}
	elements := make([]runtime.Reference, len(tup.Objects))
	for i, obj := range tup.Objects {
		ref, err := in.Execute(ctx, obj)
		if err != nil {
			return nil, err
		}
		elements[i] = ref
	}
	return runtime.NewTupleReference(elements), nil
}

func (in *Interpreter) evalProperty(ctx runtime.Context, prop *ast.Property) (runtime.Reference, error) {
	ref, err := in.Execute(ctx, prop.Object)
	if err != nil {
		return nil, err
	}
	d, err := ref.Read()
	if err != nil {
		return nil, err
	}
	if !d.Defined || d.Kind != runtime.KindObject || d.Object == nil {
		return nil, in.raise(prop.Pos(), "'->"+prop.Name+"' requires an object on the left")
	}
	return runtime.NewPropertyReference(d.Object, prop.Name), nil
}

func (in *Interpreter) evalFunctionDefinition(ctx runtime.Context, def *ast.FunctionDefinition) (runtime.Reference, error) {
	free := def.Body.Symbols()
	if def.Filter != nil {
		free = free.Union(def.Filter.Symbols())
	}
	captured := map[string]*runtime.Cell{}
	for name := range free {
		if ctx.HasSymbol(name) {
			captured[name] = ctx.Lookup(name)
		}
	}
	fn := runtime.NewCustomFunction(def.Parameters, def.Filter, def.Body, captured)
	obj := in.Global.NewObject()
	obj.PushFunction(fn)
	return runtime.NewDirectReference(runtime.NewObjectData(obj)), nil
}

func (in *Interpreter) evalFunctionCall(ctx runtime.Context, call *ast.FunctionCall) (runtime.Reference, error) {
	fnRef, err := in.Execute(ctx, call.Function)
	if err != nil {
		return nil, err
	}
	fnData, err := fnRef.Read()
	if err != nil {
		return nil, err
	}
	if !fnData.Defined || fnData.Kind != runtime.KindObject || fnData.Object == nil {
		return nil, in.raiseNamed(call.Pos(), NotAFunction, "call target is not a function")
	}
	return in.Call(ctx, fnData.Object, call.Arguments, call.Pos())
}

// Call invokes obj's overloads (highest priority first) against the
// unevaluated argExpr, resolved in ctx. Builtins that need to re-invoke
// a quoted block (if/while/for/try) use this the same way ordinary
// FunctionCall evaluation does.
func (in *Interpreter) Call(ctx runtime.Context, obj *runtime.Object, argExpr ast.Expression, pos token.Position) (runtime.Reference, error) {
	if len(obj.Functions) == 0 {
		return nil, in.raiseNamed(pos, NotAFunction, "object has no callable overloads")
	}
	return in.dispatch(ctx, obj.Functions, pos, func(fc *runtime.FunctionContext, fn *runtime.Function) error {
		return in.bindParameters(fc, ctx, fn.Parameters, argExpr)
	})
}

// CallWithValue invokes obj's overloads against an already-evaluated
// argument, bypassing the lazy-bind path entirely. `try`/`catch` uses
// this to hand a caught exception's value to the handler function.
func (in *Interpreter) CallWithValue(ctx runtime.Context, obj *runtime.Object, arg runtime.Data, pos token.Position) (runtime.Reference, error) {
	if len(obj.Functions) == 0 {
		return nil, in.raiseNamed(pos, NotAFunction, "object has no callable overloads")
	}
	return in.dispatch(ctx, obj.Functions, pos, func(fc *runtime.FunctionContext, fn *runtime.Function) error {
		return in.bindValue(fc, fn.Parameters, runtime.NewDirectReference(arg))
	})
}

// dispatch tries each overload in priority order, using bind to attempt
// the parameter match for a specific Function. A bind or filter failure,
// or an *argumentsError returned by a System function's body, moves on
// to the next overload;
// any other error (a propagating Exception, a recursion limit) returns
// immediately.
func (in *Interpreter) dispatch(ctx runtime.Context, overloads []*runtime.Function, pos token.Position, bind func(fc *runtime.FunctionContext, fn *runtime.Function) error) (runtime.Reference, error) {
	in.pushFrame(pos)
	defer in.popFrame()

	var lastErr error
	for _, fn := range overloads {
		fc, err := runtime.NewFunctionContext(ctx)
		if err != nil {
			return nil, in.raiseNamed(pos, RecursionLimitExceeded, "maximum call depth exceeded")
		}
		for name, cell := range fn.Captured {
			fc.AddSymbol(name, cell)
		}

		if err := bind(fc, fn); err != nil {
			if !isArgumentsError(err) {
				return nil, err
			}
			lastErr = err
			continue
		}

		if fn.Kind == runtime.Custom && fn.Filter != nil {
			filterRef, err := in.Execute(fc, fn.Filter)
			if err != nil {
				return nil, err
			}
			filterData, err := filterRef.Read()
			if err != nil {
				return nil, err
			}
			ok, isBool := filterData.Truthy()
			if !isBool {
				lastErr = argErrorf("filter did not evaluate to a bool")
				continue
			}
			if !ok {
				lastErr = argErrorf("filter rejected the arguments")
				continue
			}
		}

		if fn.Kind == runtime.System {
			ref, err := fn.Host(fc)
			if err != nil && isArgumentsError(err) {
				lastErr = err
				continue
			}
			return ref, err
		}
		return in.Execute(fc, fn.Body)
	}
	return nil, in.raiseNamed(pos, IncorrectFunctionArguments, lastErr.Error())
}

func (in *Interpreter) pushFrame(pos token.Position) { in.stack = append(in.stack, Frame{Pos: pos}) }
func (in *Interpreter) popFrame() {
	if len(in.stack) > 0 {
		in.stack = in.stack[:len(in.stack)-1]
	}
}

// CurrentPos returns the position of the innermost call frame, for
// builtins (e.g. `throw`) that need to stamp an Exception with a
// position but only have a FunctionContext, not an ast.Expression, in
// hand.
func (in *Interpreter) CurrentPos() token.Position {
	if len(in.stack) == 0 {
		return token.Position{}
	}
	return in.stack[len(in.stack)-1].Pos
}

// Raise builds a language-visible Exception carrying value, for
// builtins that need to throw one directly (`throw`, predefined
// exceptions raised from within a System function body).
func (in *Interpreter) Raise(pos token.Position, value runtime.Data) error {
	return newException(value, pos, in.snapshotStack())
}

func (in *Interpreter) snapshotStack() []Frame {
	frames := make([]Frame, len(in.stack))
	for i := range in.stack {
		frames[i] = in.stack[len(in.stack)-1-i]
	}
	return frames
}

// raise builds a language-visible Exception carrying a plain string
// message as its value, for evaluator-detected errors that have no
// predefined exception tag (e.g. malformed string escapes).
func (in *Interpreter) raise(pos token.Position, message string) error {
	return newException(runtime.NewObjectData(runtime.NewStringObject(message)), pos, in.snapshotStack())
}

// raiseNamed builds an Exception tagged with one of the predefined
// names (NotAFunction, IncorrectFunctionArguments, ...), so `catch` can
// match on it the same way it matches a user-thrown value.
func (in *Interpreter) raiseNamed(pos token.Position, tag, message string) error {
	obj := runtime.NewObject()
	obj.Properties["tag"] = &runtime.Cell{Data: runtime.NewObjectData(runtime.NewStringObject(tag))}
	obj.Properties["message"] = &runtime.Cell{Data: runtime.NewObjectData(runtime.NewStringObject(message))}
	return newException(runtime.NewObjectData(obj), pos, in.snapshotStack())
}

var escapeSequences = map[rune]rune{
	'b': '\b', 'e': 0x1b, 'f': '\f', 'n': '\n', 'r': '\r', 't': '\t', 'v': '\v',
	'\\': '\\', '\'': '\'', '"': '"', '?': '?',
}

// decodeStringLiteral strips the surrounding quotes from a Symbol whose
// text is a string literal and resolves its backslash escapes. The
// lexer preserves literal text raw, including the backslashes, so this
// decoding happens once, here, at evaluation time.
func decodeStringLiteral(raw string) (string, error) {
	if len(raw) < 2 || raw[0] != '"' {
		return "", nil
	}
	body := raw
	if strings.HasSuffix(raw, "\"") && len(raw) >= 2 {
		body = raw[1 : len(raw)-1]
	} else {
		body = raw[1:]
	}

	var sb strings.Builder
	runes := []rune(body)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '\\' || i+1 >= len(runes) {
			sb.WriteRune(r)
			continue
		}
		next := runes[i+1]
		decoded, ok := escapeSequences[next]
		if !ok {
			sb.WriteRune(r)
			continue
		}
		sb.WriteRune(decoded)
		i++
	}
	return sb.String(), nil
}
