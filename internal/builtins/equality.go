package builtins

import (
	"github.com/flc-lang/flc/internal/interp"
	"github.com/flc-lang/flc/internal/runtime"
)

func registerEquality(g *runtime.GlobalContext) {
	cmp := func(name string, want bool, identity bool) {
		system(g, name, tuplePattern("a", "b"), func(fc *runtime.FunctionContext) (runtime.Reference, error) {
			a, err := call1(fc, "a")
			if err != nil {
				return nil, err
			}
			b, err := call1(fc, "b")
			if err != nil {
				return nil, err
			}
			var eq bool
			if identity {
				eq = runtime.Identical(a, b)
			} else {
				eq = a.Equal(b)
			}
			return runtime.NewDirectReference(runtime.NewBoolData(eq == want)), nil
		})
	}
	cmp("==", true, false)
	cmp("!=", false, false)
	cmp("===", true, true)
	cmp("!==", false, true)

	system(g, "$", symAt("data"), func(fc *runtime.FunctionContext) (runtime.Reference, error) {
		d, err := call1(fc, "data")
		if err != nil {
			return nil, err
		}
		copied, cerr := runtime.Copy(d)
		if cerr != nil {
			return nil, interp.ArgumentsError("%s", cerr.Error())
		}
		return runtime.NewDirectReference(copied), nil
	})

	// $== shares the Object pointer rather than copying: for a primitive
	// it behaves exactly like $, for an Object it is a no-op pass-through
	// (Data already just holds a pointer).
	system(g, "$==", symAt("data"), func(fc *runtime.FunctionContext) (runtime.Reference, error) {
		d, err := call1(fc, "data")
		if err != nil {
			return nil, err
		}
		return runtime.NewDirectReference(d), nil
	})
}
