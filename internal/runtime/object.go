package runtime

import "strings"

// Cell is a single addressable Data slot. The Symbol, Property and Array
// References name a Cell rather than owning a Data value directly, so a
// write through one Reference is visible through any other Reference
// that names the same Cell.
//
// Thunk backs lazy parameter binding: when non-nil, the cell's value has
// not been evaluated yet. The first Read forces it (calling Thunk,
// storing the result in Data, and clearing Thunk so later reads and any
// write see the cached value) — this is what "lazily evaluated, memoised
// across the current call attempt" means for a Simple-name parameter.
type Cell struct {
	Data  Data
	Thunk func() (Data, error)
}

// Force resolves a pending Thunk into Data, memoising the result. A cell
// with no Thunk just returns its current Data.
func (c *Cell) Force() (Data, error) {
	if c.Thunk == nil {
		return c.Data, nil
	}
	d, err := c.Thunk()
	if err != nil {
		return Data{}, err
	}
	c.Data = d
	c.Thunk = nil
	return d, nil
}

// NewCell creates an uninitialised Cell.
func NewCell() *Cell { return &Cell{} }

// Object is the interpreter's single heap-allocated aggregate type.
// Strings, arrays, records, and closures are all Objects distinguished
// only by which of Properties/Functions/Array/Host is populated.
type Object struct {
	Properties map[string]*Cell
	Functions  []*Function // front of the slice = highest overload priority
	Array      []*Cell
	Host       any
}

// NewObject allocates an empty Object.
func NewObject() *Object {
	return &Object{Properties: make(map[string]*Cell)}
}

// Property returns the Cell bound to name, allocating it if absent.
// Property access always succeeds; FunctionArgumentsError only arises
// from a subsequent operation that expects a particular shape.
func (o *Object) Property(name string) *Cell {
	if o.Properties == nil {
		o.Properties = make(map[string]*Cell)
	}
	cell, ok := o.Properties[name]
	if !ok {
		cell = NewCell()
		o.Properties[name] = cell
	}
	return cell
}

// PushFunction front-inserts fn, giving it the highest overload
// priority. Both System-function registration and the `:` method-
// definition builtin use this to implement "newest/most specific wins".
func (o *Object) PushFunction(fn *Function) {
	o.Functions = append([]*Function{fn}, o.Functions...)
}

// IsString reports whether o's Array holds only KindChar cells, the
// shape string literals and string-producing builtins construct.
func (o *Object) IsString() bool {
	if len(o.Array) == 0 {
		return false
	}
	for _, c := range o.Array {
		if !c.Data.Defined || c.Data.Kind != KindChar {
			return false
		}
	}
	return true
}

// String renders the object for diagnostics: a quoted string literal
// when the Array is all chars, otherwise an array-like listing.
func (o *Object) String() string {
	if o.IsString() {
		var sb strings.Builder
		sb.WriteByte('"')
		for _, c := range o.Array {
			sb.WriteRune(c.Data.Char)
		}
		sb.WriteByte('"')
		return sb.String()
	}
	var sb strings.Builder
	sb.WriteByte('[')
	for i, c := range o.Array {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(c.Data.String())
	}
	sb.WriteByte(']')
	return sb.String()
}

// NewStringObject allocates an Object whose Array is the rune sequence
// of s, the representation string literals and string builtins use.
func NewStringObject(s string) *Object {
	obj := NewObject()
	for _, r := range s {
		obj.Array = append(obj.Array, &Cell{Data: NewCharData(r)})
	}
	return obj
}

// GoString extracts a Go string from an Object built by NewStringObject.
// Returns false if the object is not all-char.
func (o *Object) GoString() (string, bool) {
	if len(o.Array) == 0 {
		return "", true
	}
	var sb strings.Builder
	for _, c := range o.Array {
		if !c.Data.Defined || c.Data.Kind != KindChar {
			return "", false
		}
		sb.WriteRune(c.Data.Char)
	}
	return sb.String(), true
}
