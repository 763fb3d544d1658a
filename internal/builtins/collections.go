package builtins

import (
	"github.com/flc-lang/flc/internal/interp"
	"github.com/flc-lang/flc/internal/runtime"
)

// registerCollections wires the minimal array/string surface the
// language needs beyond what the Array reference kind already gives an
// implementation for free: a length query, indexed access as a place
// (so `at(arr, 0) := x` works, not just reads), and appending.
func registerCollections(g *runtime.GlobalContext) {
	system(g, "length", symAt("value"), func(fc *runtime.FunctionContext) (runtime.Reference, error) {
		d, err := call1(fc, "value")
		if err != nil {
			return nil, err
		}
		if !d.Defined || d.Kind != runtime.KindObject || d.Object == nil {
			return nil, interp.ArgumentsError("length requires an object, got %s", d.Kind)
		}
		return runtime.NewDirectReference(runtime.NewLongData(int64(len(d.Object.Array)))), nil
	})

	system(g, "at", tuplePattern("value", "index"), func(fc *runtime.FunctionContext) (runtime.Reference, error) {
		d, err := call1(fc, "value")
		if err != nil {
			return nil, err
		}
		if !d.Defined || d.Kind != runtime.KindObject || d.Object == nil {
			return nil, interp.ArgumentsError("at requires an object, got %s", d.Kind)
		}
		idxData, err := call1(fc, "index")
		if err != nil {
			return nil, err
		}
		idx, ok := asLong(idxData)
		if !ok || idx < 0 || int(idx) >= len(d.Object.Array) {
			return nil, interp.ArgumentsError("at index %v out of range for length %d", idxData, len(d.Object.Array))
		}
		return runtime.NewArrayReference(d.Object, int(idx)), nil
	})

	system(g, "push", tuplePattern("value", "item"), func(fc *runtime.FunctionContext) (runtime.Reference, error) {
		d, err := call1(fc, "value")
		if err != nil {
			return nil, err
		}
		if !d.Defined || d.Kind != runtime.KindObject || d.Object == nil {
			return nil, interp.ArgumentsError("push requires an object, got %s", d.Kind)
		}
		item, err := call1(fc, "item")
		if err != nil {
			return nil, err
		}
		d.Object.Array = append(d.Object.Array, &runtime.Cell{Data: item})
		return runtime.NewDirectReference(d), nil
	})
}
