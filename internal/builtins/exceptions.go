package builtins

import (
	"github.com/flc-lang/flc/internal/ast"
	"github.com/flc-lang/flc/internal/interp"
	"github.com/flc-lang/flc/internal/runtime"
)

func registerExceptions(g *runtime.GlobalContext, in *interp.Interpreter) {
	for _, tag := range []string{
		interp.NotAFunction,
		interp.IncorrectFunctionArguments,
		interp.RecursionLimitExceeded,
		interp.ParserException,
	} {
		cell := g.Lookup(tag)
		cell.Data = runtime.NewObjectData(runtime.NewStringObject(tag))
		cell.Thunk = nil
	}

	system(g, "throw", symAt("value"), func(fc *runtime.FunctionContext) (runtime.Reference, error) {
		d, err := call1(fc, "value")
		if err != nil {
			return nil, err
		}
		return nil, in.Raise(in.CurrentPos(), d)
	})

	system(g, "try", mixedTuple(blockPattern("block"), symAt("handler")),
		func(fc *runtime.FunctionContext) (runtime.Reference, error) {
			blockData, err := call1(fc, "block")
			if err != nil {
				return nil, err
			}
			if !blockData.Defined || blockData.Kind != runtime.KindObject || blockData.Object == nil {
				return nil, interp.ArgumentsError("try block did not quote a callable block")
			}
			result, callErr := in.Call(fc, blockData.Object, ast.NewTuple(nil, builtinPos), in.CurrentPos())
			if callErr == nil {
				return result, nil
			}
			exc, ok := callErr.(*interp.Exception)
			if !ok {
				return nil, callErr
			}

			handlerData, herr := call1(fc, "handler")
			if herr != nil {
				return nil, herr
			}
			if !handlerData.Defined || handlerData.Kind != runtime.KindObject || handlerData.Object == nil {
				return nil, interp.ArgumentsError("try catch handler must be a function")
			}
			handled, herr := in.CallWithValue(fc, handlerData.Object, exc.Value, in.CurrentPos())
			if herr != nil {
				// A raising handler does not replace the original
				// exception — it propagates unchanged.
				return nil, callErr
			}
			return handled, nil
		})
}
