package builtins

import (
	"github.com/flc-lang/flc/internal/ast"
	"github.com/flc-lang/flc/internal/interp"
	"github.com/flc-lang/flc/internal/runtime"
)

func registerAssignment(g *runtime.GlobalContext, in *interp.Interpreter) {
	// `place() := data`: place is quoted so it evaluates to a Reference,
	// not a Data value — assignment needs somewhere to write into, and a
	// plain Simple-name bind would already have collapsed it to a Data
	// by the time the host saw it.
	system(g, ":=", mixedTuple(blockPattern("place"), symAt("data")),
		func(fc *runtime.FunctionContext) (runtime.Reference, error) {
			placeData, err := call1(fc, "place")
			if err != nil {
				return nil, err
			}
			if !placeData.Defined || placeData.Kind != runtime.KindObject || placeData.Object == nil {
				return nil, interp.ArgumentsError(":= place did not quote a callable block")
			}
			placeRef, err := in.Call(fc, placeData.Object, ast.NewTuple(nil, builtinPos), in.CurrentPos())
			if err != nil {
				return nil, err
			}
			dataVal, err := call1(fc, "data")
			if err != nil {
				return nil, err
			}
			if err := placeRef.Write(runtime.NewDirectReference(dataVal)); err != nil {
				return nil, err
			}
			return runtime.NewDirectReference(dataVal), nil
		})

	// `var : data`: prepend data's overloads onto var's, highest
	// priority (data's own front) ending up frontmost on var too.
	system(g, ":", tuplePattern("var", "data"),
		func(fc *runtime.FunctionContext) (runtime.Reference, error) {
			varData, err := call1(fc, "var")
			if err != nil {
				return nil, err
			}
			if !varData.Defined || varData.Kind != runtime.KindObject || varData.Object == nil {
				return nil, interp.ArgumentsError(": left side must be an object")
			}
			dataData, err := call1(fc, "data")
			if err != nil {
				return nil, err
			}
			if !dataData.Defined || dataData.Kind != runtime.KindObject || dataData.Object == nil {
				return nil, interp.ArgumentsError(": right side must be an object")
			}
			fns := dataData.Object.Functions
			for i := len(fns) - 1; i >= 0; i-- {
				varData.Object.PushFunction(fns[i])
			}
			return runtime.NewDirectReference(varData), nil
		})
}
