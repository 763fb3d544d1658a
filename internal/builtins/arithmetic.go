package builtins

import (
	"github.com/flc-lang/flc/internal/interp"
	"github.com/flc-lang/flc/internal/runtime"
)

// numeric reads "a" and "b" from fc and reports whether either is a
// double, promoting both to float64 in that case; long/long stays long.
// A non-numeric operand raises an ArgumentsError so a user `:`-extended
// overload for the same operator name gets a chance to match instead.
func numeric(fc *runtime.FunctionContext) (aLong, bLong int64, aDouble, bDouble float64, isDouble bool, err error) {
	a, err := call1(fc, "a")
	if err != nil {
		return
	}
	b, err := call1(fc, "b")
	if err != nil {
		return
	}
	if a.Defined && a.Kind == runtime.KindLong && b.Defined && b.Kind == runtime.KindLong {
		return a.Long, b.Long, 0, 0, false, nil
	}
	ad, aok := asDouble(a)
	bd, bok := asDouble(b)
	if !aok || !bok {
		err = interp.ArgumentsError("expected two numbers, got %s and %s", a.Kind, b.Kind)
		return
	}
	return 0, 0, ad, bd, true, nil
}

func registerArithmetic(g *runtime.GlobalContext) {
	binNumeric := func(name string, onLong func(a, b int64) (runtime.Data, error), onDouble func(a, b float64) (runtime.Data, error)) {
		system(g, name, tuplePattern("a", "b"), func(fc *runtime.FunctionContext) (runtime.Reference, error) {
			al, bl, ad, bd, isDouble, err := numeric(fc)
			if err != nil {
				return nil, err
			}
			var d runtime.Data
			if isDouble {
				d, err = onDouble(ad, bd)
			} else {
				d, err = onLong(al, bl)
			}
			if err != nil {
				return nil, err
			}
			return runtime.NewDirectReference(d), nil
		})
	}

	binNumeric("+",
		func(a, b int64) (runtime.Data, error) { return runtime.NewLongData(a + b), nil },
		func(a, b float64) (runtime.Data, error) { return runtime.NewDoubleData(a + b), nil })
	binNumeric("-",
		func(a, b int64) (runtime.Data, error) { return runtime.NewLongData(a - b), nil },
		func(a, b float64) (runtime.Data, error) { return runtime.NewDoubleData(a - b), nil })
	binNumeric("*",
		func(a, b int64) (runtime.Data, error) { return runtime.NewLongData(a * b), nil },
		func(a, b float64) (runtime.Data, error) { return runtime.NewDoubleData(a * b), nil })
	binNumeric("/",
		func(a, b int64) (runtime.Data, error) {
			if b == 0 {
				return runtime.Data{}, interp.ArgumentsError("division by zero")
			}
			return runtime.NewLongData(a / b), nil
		},
		func(a, b float64) (runtime.Data, error) { return runtime.NewDoubleData(a / b), nil })
	binNumeric("%",
		func(a, b int64) (runtime.Data, error) {
			if b == 0 {
				return runtime.Data{}, interp.ArgumentsError("division by zero")
			}
			return runtime.NewLongData(a % b), nil
		},
		func(a, b float64) (runtime.Data, error) {
			return runtime.Data{}, interp.ArgumentsError("%% requires two longs")
		})

	binCompare := func(name string, onLong func(a, b int64) bool, onDouble func(a, b float64) bool) {
		system(g, name, tuplePattern("a", "b"), func(fc *runtime.FunctionContext) (runtime.Reference, error) {
			al, bl, ad, bd, isDouble, err := numeric(fc)
			if err != nil {
				return nil, err
			}
			var ok bool
			if isDouble {
				ok = onDouble(ad, bd)
			} else {
				ok = onLong(al, bl)
			}
			return runtime.NewDirectReference(runtime.NewBoolData(ok)), nil
		})
	}
	binCompare("<", func(a, b int64) bool { return a < b }, func(a, b float64) bool { return a < b })
	binCompare("<=", func(a, b int64) bool { return a <= b }, func(a, b float64) bool { return a <= b })
	binCompare(">", func(a, b int64) bool { return a > b }, func(a, b float64) bool { return a > b })
	binCompare(">=", func(a, b int64) bool { return a >= b }, func(a, b float64) bool { return a >= b })

	boolBinary := func(name string, op func(a, b bool) bool) {
		system(g, name, tuplePattern("a", "b"), func(fc *runtime.FunctionContext) (runtime.Reference, error) {
			a, err := call1(fc, "a")
			if err != nil {
				return nil, err
			}
			b, err := call1(fc, "b")
			if err != nil {
				return nil, err
			}
			av, aok := asBool(a)
			bv, bok := asBool(b)
			if !aok || !bok {
				return nil, interp.ArgumentsError("%s requires two bools", name)
			}
			return runtime.NewDirectReference(runtime.NewBoolData(op(av, bv))), nil
		})
	}
	boolBinary("&", func(a, b bool) bool { return a && b })
	boolBinary("|", func(a, b bool) bool { return a || b })

	system(g, "-", symAt("x"), func(fc *runtime.FunctionContext) (runtime.Reference, error) {
		x, err := call1(fc, "x")
		if err != nil {
			return nil, err
		}
		if x.Defined && x.Kind == runtime.KindLong {
			return runtime.NewDirectReference(runtime.NewLongData(-x.Long)), nil
		}
		if d, ok := asDouble(x); ok {
			return runtime.NewDirectReference(runtime.NewDoubleData(-d)), nil
		}
		return nil, interp.ArgumentsError("unary - requires a number, got %s", x.Kind)
	})

	system(g, "not", symAt("x"), func(fc *runtime.FunctionContext) (runtime.Reference, error) {
		x, err := call1(fc, "x")
		if err != nil {
			return nil, err
		}
		v, ok := asBool(x)
		if !ok {
			return nil, interp.ArgumentsError("not requires a bool, got %s", x.Kind)
		}
		return runtime.NewDirectReference(runtime.NewBoolData(!v)), nil
	})
}
