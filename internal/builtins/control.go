package builtins

import (
	"github.com/flc-lang/flc/internal/ast"
	"github.com/flc-lang/flc/internal/interp"
	"github.com/flc-lang/flc/internal/runtime"
)

// mixedTuple builds a Parameters Tuple from a mix of plain Symbol names
// and already-built sub-patterns (e.g. a blockPattern), for builtins
// like `for` whose parameter list is not uniformly shaped.
func mixedTuple(elems ...ast.Expression) *ast.Tuple { return ast.NewTuple(elems, builtinPos) }

// callBlock invokes the zero-argument quoted block bound to name in fc,
// returning FunctionArgumentsError if it isn't a callable Object —
// bindParameters' FunctionCall-pattern case is what put it there.
func callBlock(in *interp.Interpreter, fc *runtime.FunctionContext, name string) (runtime.Reference, error) {
	d, err := call1(fc, name)
	if err != nil {
		return nil, err
	}
	if !d.Defined || d.Kind != runtime.KindObject || d.Object == nil {
		return nil, interp.ArgumentsError("%s did not quote a callable block", name)
	}
	return in.Call(fc, d.Object, ast.NewTuple(nil, builtinPos), in.CurrentPos())
}

func registerControl(g *runtime.GlobalContext, in *interp.Interpreter) {
	system(g, ";", tuplePattern("a", "b"), func(fc *runtime.FunctionContext) (runtime.Reference, error) {
		if _, err := call1(fc, "a"); err != nil {
			return nil, err
		}
		d, err := call1(fc, "b")
		if err != nil {
			return nil, err
		}
		return runtime.NewDirectReference(d), nil
	})

	system(g, "if", mixedTuple(blockPattern("cond"), blockPattern("then")),
		func(fc *runtime.FunctionContext) (runtime.Reference, error) {
			return evalIf(in, fc, "els", false)
		})
	system(g, "if", mixedTuple(blockPattern("cond"), blockPattern("then"), blockPattern("els")),
		func(fc *runtime.FunctionContext) (runtime.Reference, error) {
			return evalIf(in, fc, "els", true)
		})

	system(g, "while", mixedTuple(blockPattern("cond"), blockPattern("block")),
		func(fc *runtime.FunctionContext) (runtime.Reference, error) {
			last := unit(g)
			for {
				condRef, err := callBlock(in, fc, "cond")
				if err != nil {
					return nil, err
				}
				condData, err := condRef.Read()
				if err != nil {
					return nil, err
				}
				ok, isBool := asBool(condData)
				if !isBool {
					return nil, interp.ArgumentsError("while condition must evaluate to a bool")
				}
				if !ok {
					return last, nil
				}
				last, err = callBlock(in, fc, "block")
				if err != nil {
					return nil, err
				}
			}
		})

	system(g, "for", mixedTuple(symAt("var"), symAt("begin"), symAt("end"), blockPattern("block")),
		func(fc *runtime.FunctionContext) (runtime.Reference, error) {
			return runFor(in, fc, 1)
		})
	system(g, "for", mixedTuple(symAt("var"), symAt("begin"), symAt("end"), symAt("step"), blockPattern("block")),
		func(fc *runtime.FunctionContext) (runtime.Reference, error) {
			stepData, err := call1(fc, "step")
			if err != nil {
				return nil, err
			}
			step, ok := asLong(stepData)
			if !ok {
				return nil, interp.ArgumentsError("for step must be a long")
			}
			if step == 0 {
				return nil, interp.ArgumentsError("for step must not be zero")
			}
			return runFor(in, fc, step)
		})
}

// evalIf calls "cond"; on true it calls "then", on false it calls els
// (if present, otherwise returns unit). Each branch is an independently
// quoted zero-argument block (see the `if` registrations above) rather
// than one flattened condition/branch Tuple, since a Tuple expression
// evaluates every element eagerly and would defeat short-circuiting.
func evalIf(in *interp.Interpreter, fc *runtime.FunctionContext, elsName string, hasElse bool) (runtime.Reference, error) {
	condRef, err := callBlock(in, fc, "cond")
	if err != nil {
		return nil, err
	}
	condData, err := condRef.Read()
	if err != nil {
		return nil, err
	}
	ok, isBool := asBool(condData)
	if !isBool {
		return nil, interp.ArgumentsError("if condition must evaluate to a bool")
	}
	if ok {
		return callBlock(in, fc, "then")
	}
	if hasElse {
		return callBlock(in, fc, elsName)
	}
	return unit(fc.Global()), nil
}

// runFor binds fc's "var" Cell directly (no per-iteration rebinding to a
// fresh Cell) so a block that closed over it at quote time observes
// every update; this is only reliable when the caller passed a bare
// identifier for `var` (see bindParameters' aliasing rule in
// internal/interp).
func runFor(in *interp.Interpreter, fc *runtime.FunctionContext, step int64) (runtime.Reference, error) {
	beginData, err := call1(fc, "begin")
	if err != nil {
		return nil, err
	}
	begin, ok := asLong(beginData)
	if !ok {
		return nil, interp.ArgumentsError("for begin must be a long")
	}
	endData, err := call1(fc, "end")
	if err != nil {
		return nil, err
	}
	end, ok := asLong(endData)
	if !ok {
		return nil, interp.ArgumentsError("for end must be a long")
	}

	varCell := fc.Lookup("var")
	last := unit(fc.Global())
	if step > 0 {
		for i := begin; i < end; i += step {
			varCell.Data = runtime.NewLongData(i)
			varCell.Thunk = nil
			ref, err := callBlock(in, fc, "block")
			if err != nil {
				return nil, err
			}
			last = ref
		}
	} else {
		for i := begin; i > end; i += step {
			varCell.Data = runtime.NewLongData(i)
			varCell.Thunk = nil
			ref, err := callBlock(in, fc, "block")
			if err != nil {
				return nil, err
			}
			last = ref
		}
	}
	return last, nil
}
