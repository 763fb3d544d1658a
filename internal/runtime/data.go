// Package runtime holds the interpreter's value model: Data (the tagged
// union every expression evaluates to), Object (the single heap-allocated
// aggregate type), Function (Custom and System), Reference (the five
// l-value shapes evaluation can produce), and the Context chain that
// owns bindings and the heap.
package runtime

import "fmt"

// Kind tags which arm of Data is populated. The zero Kind is KindObject,
// but a zero Data is not a valid Object value — check Defined first.
type Kind int

const (
	KindObject Kind = iota
	KindBool
	KindChar
	KindLong
	KindDouble
)

func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindBool:
		return "bool"
	case KindChar:
		return "char"
	case KindLong:
		return "long"
	case KindDouble:
		return "double"
	default:
		return "unknown"
	}
}

// Data is the tagged union every expression evaluates to: an Object
// reference, or one of four primitives. Defined distinguishes an
// initialised cell from a placeholder created by auto-vivification —
// reading one yields the undefined Data itself, which operations that
// need a value reject.
type Data struct {
	Defined bool
	Kind    Kind

	Object *Object
	Bool   bool
	Char   rune
	Long   int64
	Double float64
}

// Undefined is the placeholder value auto-vivification binds a symbol
// to before it is ever assigned.
var Undefined = Data{}

func NewObjectData(o *Object) Data  { return Data{Defined: true, Kind: KindObject, Object: o} }
func NewBoolData(b bool) Data       { return Data{Defined: true, Kind: KindBool, Bool: b} }
func NewCharData(c rune) Data       { return Data{Defined: true, Kind: KindChar, Char: c} }
func NewLongData(n int64) Data      { return Data{Defined: true, Kind: KindLong, Long: n} }
func NewDoubleData(f float64) Data  { return Data{Defined: true, Kind: KindDouble, Double: f} }

// Truthy reports whether d is suitable as a condition: only a defined
// bool participates; anything else is a FunctionArgumentsError at the
// call site that asked for it (checked by the caller, not here).
func (d Data) Truthy() (bool, bool) {
	if !d.Defined || d.Kind != KindBool {
		return false, false
	}
	return d.Bool, true
}

func (d Data) String() string {
	if !d.Defined {
		return "<undefined>"
	}
	switch d.Kind {
	case KindObject:
		if d.Object == nil {
			return "<nil object>"
		}
		return d.Object.String()
	case KindBool:
		return fmt.Sprintf("%t", d.Bool)
	case KindChar:
		return fmt.Sprintf("%c", d.Char)
	case KindLong:
		return fmt.Sprintf("%d", d.Long)
	case KindDouble:
		return fmt.Sprintf("%g", d.Double)
	default:
		return "<bad data>"
	}
}

// Equal implements the language's `==`: primitives compare by value,
// Objects compare deep (Cell, identical in shape, visited-pair guarded
// against cycles), and a primitive never equals an Object.
func (d Data) Equal(other Data) bool {
	return dataEqual(d, other, map[[2]*Object]bool{})
}

func dataEqual(a, b Data, visited map[[2]*Object]bool) bool {
	if !a.Defined || !b.Defined {
		return a.Defined == b.Defined
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindObject:
		return objectEqual(a.Object, b.Object, visited)
	case KindBool:
		return a.Bool == b.Bool
	case KindChar:
		return a.Char == b.Char
	case KindLong:
		return a.Long == b.Long
	case KindDouble:
		return a.Double == b.Double
	default:
		return false
	}
}

func objectEqual(a, b *Object, visited map[[2]*Object]bool) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	pair := [2]*Object{a, b}
	if visited[pair] {
		// Already comparing this pair further up the call chain: treat a
		// recurring cycle as equal rather than diverging, per the
		// conservative cyclic-equality rule this interpreter uses.
		return true
	}
	visited[pair] = true

	if len(a.Properties) != len(b.Properties) || len(a.Array) != len(b.Array) {
		return false
	}
	for name, ca := range a.Properties {
		cb, ok := b.Properties[name]
		if !ok || !dataEqual(ca.Data, cb.Data, visited) {
			return false
		}
	}
	for i, ca := range a.Array {
		if !dataEqual(ca.Data, b.Array[i].Data, visited) {
			return false
		}
	}
	return true
}

// Identical implements `===`: pointer equality for Objects, value
// equality for primitives.
func Identical(a, b Data) bool {
	if !a.Defined || !b.Defined {
		return a.Defined == b.Defined
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindObject:
		return a.Object == b.Object
	case KindBool:
		return a.Bool == b.Bool
	case KindChar:
		return a.Char == b.Char
	case KindLong:
		return a.Long == b.Long
	case KindDouble:
		return a.Double == b.Double
	default:
		return false
	}
}

// Copy implements `$`: a primitive copies by value; an Object cannot be
// copied this way (use $== to share the reference instead).
func Copy(d Data) (Data, error) {
	if d.Defined && d.Kind == KindObject {
		return Data{}, fmt.Errorf("$: cannot copy an object, use $== to share it")
	}
	return d, nil
}
