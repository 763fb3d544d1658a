package interp

import (
	"strconv"

	"github.com/flc-lang/flc/internal/ast"
	"github.com/flc-lang/flc/internal/runtime"
)

// bindParameters binds argExpr — still unevaluated — against pattern
// inside fc, implementing the three parameter-pattern shapes from
// overload resolution:
//
//   - Simple name: bound lazily. argExpr is evaluated in callerCtx (not
//     fc — the argument's free names resolve at the call site, not
//     inside the callee) the first time the parameter is read, and the
//     result is memoised on the cell.
//   - Tuple vs. Tuple: sizes must match at the AST level; each element
//     pair recurses, so nested Simple names still bind lazily.
//   - Tuple vs. anything else: argExpr is evaluated eagerly to discover
//     its shape (it must resolve to a Tuple Reference or to an Object
//     whose Array matches in length), then each already-evaluated
//     element is bound via bindValue.
//   - FunctionCall `sym(inner)`: argExpr is quoted whole, unevaluated,
//     as a Custom function with parameters = inner and body = argExpr,
//     and sym is bound to it. This is how `if { ... }`/`while { ... }`
//     receive their body as a callable block instead of a value.
//
// A shape mismatch at any level returns an *argumentsError so the
// dispatcher moves on to the next overload; any other failure (a
// propagating Exception, a recursion limit) is returned unchanged.
func (in *Interpreter) bindParameters(fc *runtime.FunctionContext, callerCtx runtime.Context, pattern, argExpr ast.Expression) error {
	switch p := pattern.(type) {
	case *ast.Symbol:
		// A bare identifier argument ("i", not a literal) aliases the
		// same Cell the caller holds for it, rather than copying a
		// snapshot into a fresh one: writes inside the callee (a `for`
		// loop rebinding its own counter, a `:=` through an aliased
		// parameter) are then visible at the call site too, and a
		// closure quoted against the same name in the same call picks
		// up the identical Cell. Anything else (a literal, a compound
		// expression) has no single outer Cell to alias, so it falls
		// back to a memoising thunk.
		if argSym, ok := identifierArg(argExpr); ok {
			fc.AddSymbol(p.Name, callerCtx.Lookup(argSym.Name))
			return nil
		}
		cell := &runtime.Cell{Thunk: func() (runtime.Data, error) {
			ref, err := in.Execute(callerCtx, argExpr)
			if err != nil {
				return runtime.Data{}, err
			}
			return ref.Read()
		}}
		fc.AddSymbol(p.Name, cell)
		return nil

	case *ast.Tuple:
		if argTuple, ok := argExpr.(*ast.Tuple); ok {
			if len(p.Objects) != len(argTuple.Objects) {
				return argErrorf("tuple parameter expects %d elements, argument has %d", len(p.Objects), len(argTuple.Objects))
			}
			for i := range p.Objects {
				if err := in.bindParameters(fc, callerCtx, p.Objects[i], argTuple.Objects[i]); err != nil {
					return err
				}
			}
			return nil
		}

		ref, err := in.Execute(callerCtx, argExpr)
		if err != nil {
			return err
		}
		elements, err := tupleElements(ref)
		if err != nil {
			return err
		}
		if len(elements) != len(p.Objects) {
			return argErrorf("tuple parameter expects %d elements, argument has %d", len(p.Objects), len(elements))
		}
		for i, sub := range p.Objects {
			if err := in.bindValue(fc, sub, elements[i]); err != nil {
				return err
			}
		}
		return nil

	case *ast.FunctionCall:
		sym, ok := p.Function.(*ast.Symbol)
		if !ok {
			return argErrorf("function-call parameter pattern must name a symbol, got %T", p.Function)
		}
		captured := map[string]*runtime.Cell{}
		for name := range argExpr.Symbols() {
			if callerCtx.HasSymbol(name) {
				captured[name] = callerCtx.Lookup(name)
			}
		}
		fn := runtime.NewCustomFunction(p.Arguments, nil, argExpr, captured)
		obj := in.Global.NewObject()
		obj.PushFunction(fn)
		fc.AddSymbol(sym.Name, &runtime.Cell{Data: runtime.NewObjectData(obj)})
		return nil

	default:
		return argErrorf("unsupported parameter pattern %T", pattern)
	}
}

// bindValue binds an already-evaluated Reference against pattern. It
// backs the "Tuple vs. non-Tuple argument" case above, where the
// argument has already been forced to discover its shape and there is
// no unevaluated AST left to bind lazily.
func (in *Interpreter) bindValue(fc *runtime.FunctionContext, pattern ast.Expression, value runtime.Reference) error {
	switch p := pattern.(type) {
	case *ast.Symbol:
		d, err := value.Read()
		if err != nil {
			return err
		}
		fc.AddSymbol(p.Name, &runtime.Cell{Data: d})
		return nil

	case *ast.Tuple:
		elements, err := tupleElements(value)
		if err != nil {
			return err
		}
		if len(elements) != len(p.Objects) {
			return argErrorf("tuple parameter expects %d elements, value has %d", len(p.Objects), len(elements))
		}
		for i, sub := range p.Objects {
			if err := in.bindValue(fc, sub, elements[i]); err != nil {
				return err
			}
		}
		return nil

	default:
		return argErrorf("unsupported nested parameter pattern %T", pattern)
	}
}

// identifierArg reports whether expr is a bare-identifier Symbol — not a
// string literal, not a numeric literal, not parenthesis-escaped — the
// shape that makes Cell aliasing meaningful in bindParameters.
func identifierArg(expr ast.Expression) (*ast.Symbol, bool) {
	s, ok := expr.(*ast.Symbol)
	if !ok || s.Escaped || s.IsStringLiteral() {
		return nil, false
	}
	if _, err := strconv.ParseInt(s.Name, 10, 64); err == nil {
		return nil, false
	}
	if _, err := strconv.ParseFloat(s.Name, 64); err == nil {
		return nil, false
	}
	return s, true
}

// tupleElements extracts the element References of an already-evaluated
// Reference that is expected to be Tuple-shaped: either an actual
// TupleReference, or a Reference that reads to an Object whose Array
// elements stand in for them (Invariant 4).
func tupleElements(ref runtime.Reference) ([]runtime.Reference, error) {
	if tref, ok := ref.(runtime.TupleReference); ok {
		return tref.Elements, nil
	}
	d, err := ref.Read()
	if err != nil {
		return nil, err
	}
	if !d.Defined || d.Kind != runtime.KindObject || d.Object == nil {
		return nil, argErrorf("expected a tuple-shaped value")
	}
	elements := make([]runtime.Reference, len(d.Object.Array))
	for i, cell := range d.Object.Array {
		elements[i] = runtime.NewSymbolReference(cell)
	}
	return elements, nil
}
