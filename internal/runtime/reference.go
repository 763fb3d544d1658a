package runtime

import "errors"

// ErrNotAnLValue is returned by Write on a DirectReference: a bare value
// has no place to write into.
var ErrNotAnLValue = errors.New("not an lvalue")

// ErrTupleSizeMismatch is returned when a Tuple reference is written
// from a value whose shape does not match element-for-element.
var ErrTupleSizeMismatch = errors.New("tuple size mismatch in destructuring assignment")

// Reference is the result of evaluating an expression: either a bare
// Data value (DirectReference) or a named place a later write can reach
// (every other variant). Read fails only when forcing a lazily bound
// cell's thunk fails; Write fails only on DirectReference and on a
// TupleReference whose shape does not match its assigned value.
type Reference interface {
	Read() (Data, error)
	Write(v Reference) error
}

// DirectReference wraps a plain Data value with no backing place.
type DirectReference struct{ Value Data }

func NewDirectReference(d Data) DirectReference { return DirectReference{Value: d} }

func (r DirectReference) Read() (Data, error)     { return r.Value, nil }
func (r DirectReference) Write(Reference) error { return ErrNotAnLValue }

// cellReference is the shared implementation behind Symbol, Property,
// and Array references: all three just name a Cell owned by a Context
// or an Object, and differ only in how that Cell was located.
type cellReference struct{ cell *Cell }

func (r cellReference) Read() (Data, error) { return r.cell.Force() }

func (r cellReference) Write(v Reference) error {
	d, err := v.Read()
	if err != nil {
		return err
	}
	r.cell.Data = d
	r.cell.Thunk = nil
	return nil
}

// SymbolReference borrows a Cell bound to a name in some Context.
type SymbolReference struct{ cellReference }

func NewSymbolReference(cell *Cell) SymbolReference {
	return SymbolReference{cellReference{cell: cell}}
}

func (r SymbolReference) Cell() *Cell { return r.cell }

// PropertyReference names a Cell inside an Object's Properties map.
type PropertyReference struct {
	cellReference
	Object *Object
	Name   string
}

func NewPropertyReference(obj *Object, name string) PropertyReference {
	return PropertyReference{cellReference: cellReference{cell: obj.Property(name)}, Object: obj, Name: name}
}

// ArrayReference names a Cell inside an Object's Array by index.
type ArrayReference struct {
	cellReference
	Object *Object
	Index  int
}

func NewArrayReference(obj *Object, index int) ArrayReference {
	return ArrayReference{cellReference: cellReference{cell: obj.Array[index]}, Object: obj, Index: index}
}

// TupleReference is an ordered group of References, produced by
// evaluating a Tuple expression whose elements are themselves places
// (e.g. the left side of a destructuring assignment, `(a, b) := ...`).
type TupleReference struct{ Elements []Reference }

func NewTupleReference(elements []Reference) TupleReference {
	return TupleReference{Elements: elements}
}

// Read collapses a TupleReference to an Object Data whose Array holds
// each element's current value, mirroring how a Tuple expression
// evaluates to a freshly allocated Object per §4.G.
func (r TupleReference) Read() (Data, error) {
	obj := NewObject()
	for _, el := range r.Elements {
		d, err := el.Read()
		if err != nil {
			return Data{}, err
		}
		obj.Array = append(obj.Array, &Cell{Data: d})
	}
	return NewObjectData(obj), nil
}

// Write destructures v element-wise into this Tuple's places. v may be
// another TupleReference (the common case, `(a,b) := (x,y)`) or any
// Reference that reads to an Object whose Array has matching length —
// Invariant 4: a Tuple Reference and an Object's array are
// interchangeable when sizes match.
func (r TupleReference) Write(v Reference) error {
	var elems []Reference
	if tv, ok := v.(TupleReference); ok {
		elems = tv.Elements
	} else {
		d, err := v.Read()
		if err != nil {
			return err
		}
		if !d.Defined || d.Kind != KindObject || d.Object == nil {
			return ErrTupleSizeMismatch
		}
		for _, cell := range d.Object.Array {
			elems = append(elems, SymbolReference{cellReference{cell: cell}})
		}
	}
	if len(elems) != len(r.Elements) {
		return ErrTupleSizeMismatch
	}
	for i, place := range r.Elements {
		if err := place.Write(elems[i]); err != nil {
			return err
		}
	}
	return nil
}
