package runtime_test

import (
	"testing"

	"github.com/flc-lang/flc/internal/runtime"
)

func TestDataEqualPrimitives(t *testing.T) {
	a := runtime.NewLongData(5)
	b := runtime.NewLongData(5)
	if !a.Equal(b) {
		t.Fatalf("expected 5 == 5")
	}
	c := runtime.NewLongData(6)
	if a.Equal(c) {
		t.Fatalf("expected 5 != 6")
	}
}

func TestDataEqualPrimitiveVsObjectIsFalse(t *testing.T) {
	prim := runtime.NewLongData(5)
	obj := runtime.NewObjectData(runtime.NewObject())
	if prim.Equal(obj) || obj.Equal(prim) {
		t.Fatalf("a primitive must never equal an object")
	}
}

func TestObjectEqualDeep(t *testing.T) {
	a := runtime.NewStringObject("hi")
	b := runtime.NewStringObject("hi")
	if !runtime.NewObjectData(a).Equal(runtime.NewObjectData(b)) {
		t.Fatalf("expected deep equality of equal string objects")
	}
	if runtime.Identical(runtime.NewObjectData(a), runtime.NewObjectData(b)) {
		t.Fatalf("distinct objects must not be identical")
	}
	if !runtime.Identical(runtime.NewObjectData(a), runtime.NewObjectData(a)) {
		t.Fatalf("an object must be identical to itself")
	}
}

func TestObjectEqualCyclic(t *testing.T) {
	a := runtime.NewObject()
	b := runtime.NewObject()
	a.Properties = map[string]*runtime.Cell{"self": {Data: runtime.NewObjectData(a)}}
	b.Properties = map[string]*runtime.Cell{"self": {Data: runtime.NewObjectData(b)}}
	if !runtime.NewObjectData(a).Equal(runtime.NewObjectData(b)) {
		t.Fatalf("cyclic structures should compare equal under the conservative rule rather than diverge")
	}
}

func TestCopyRejectsObjects(t *testing.T) {
	if _, err := runtime.Copy(runtime.NewObjectData(runtime.NewObject())); err == nil {
		t.Fatalf("expected $ to reject an object")
	}
	cp, err := runtime.Copy(runtime.NewLongData(3))
	if err != nil || cp.Long != 3 {
		t.Fatalf("expected $ to copy a primitive by value, got %v, %v", cp, err)
	}
}

func TestDirectReferenceWriteFails(t *testing.T) {
	ref := runtime.NewDirectReference(runtime.NewLongData(1))
	if err := ref.Write(runtime.NewDirectReference(runtime.NewLongData(2))); err != runtime.ErrNotAnLValue {
		t.Fatalf("expected ErrNotAnLValue, got %v", err)
	}
}

func TestSymbolReferenceReadWriteRoundTrip(t *testing.T) {
	cell := runtime.NewCell()
	ref := runtime.NewSymbolReference(cell)
	if err := ref.Write(runtime.NewDirectReference(runtime.NewLongData(7))); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ref.Read()
	if err != nil || got.Long != 7 {
		t.Fatalf("expected read-after-write to see 7, got %v, %v", got, err)
	}
}

func TestTupleDestructuringAssignment(t *testing.T) {
	aCell, bCell := runtime.NewCell(), runtime.NewCell()
	places := runtime.NewTupleReference([]runtime.Reference{
		runtime.NewSymbolReference(aCell),
		runtime.NewSymbolReference(bCell),
	})
	xCell := &runtime.Cell{Data: runtime.NewLongData(1)}
	yCell := &runtime.Cell{Data: runtime.NewLongData(2)}
	values := runtime.NewTupleReference([]runtime.Reference{
		runtime.NewSymbolReference(xCell),
		runtime.NewSymbolReference(yCell),
	})
	if err := places.Write(values); err != nil {
		t.Fatalf("destructuring write: %v", err)
	}
	if aCell.Data.Long != 1 || bCell.Data.Long != 2 {
		t.Fatalf("expected a=1, b=2, got a=%v b=%v", aCell.Data, bCell.Data)
	}
}

func TestTupleDestructuringSizeMismatch(t *testing.T) {
	places := runtime.NewTupleReference([]runtime.Reference{runtime.NewSymbolReference(runtime.NewCell())})
	values := runtime.NewTupleReference([]runtime.Reference{
		runtime.NewSymbolReference(runtime.NewCell()),
		runtime.NewSymbolReference(runtime.NewCell()),
	})
	if err := places.Write(values); err != runtime.ErrTupleSizeMismatch {
		t.Fatalf("expected ErrTupleSizeMismatch, got %v", err)
	}
}

func TestGlobalContextAutoVivifiesOnLookup(t *testing.T) {
	g := runtime.NewGlobalContext(0)
	if g.HasSymbol("x") {
		t.Fatalf("x should not exist yet")
	}
	cell := g.Lookup("x")
	if cell.Data.Defined {
		t.Fatalf("auto-vivified cell should be undefined")
	}
	if !g.HasSymbol("x") {
		t.Fatalf("lookup should have bound x on the global frame")
	}
}

func TestFunctionContextLookupFallsThroughToParent(t *testing.T) {
	g := runtime.NewGlobalContext(0)
	g.AddSymbol("outer", &runtime.Cell{Data: runtime.NewLongData(9)})
	fc, err := runtime.NewFunctionContext(g)
	if err != nil {
		t.Fatalf("NewFunctionContext: %v", err)
	}
	cell := fc.Lookup("outer")
	if cell.Data.Long != 9 {
		t.Fatalf("expected to see the global binding for 'outer', got %v", cell.Data)
	}
}

func TestFunctionContextRecursionLimit(t *testing.T) {
	g := runtime.NewGlobalContext(2)
	var ctx runtime.Context = g
	for i := 0; i < 2; i++ {
		fc, err := runtime.NewFunctionContext(ctx)
		if err != nil {
			t.Fatalf("unexpected error at depth %d: %v", i, err)
		}
		ctx = fc
	}
	if _, err := runtime.NewFunctionContext(ctx); err != runtime.ErrRecursionLimit {
		t.Fatalf("expected ErrRecursionLimit at the configured depth, got %v", err)
	}
}
