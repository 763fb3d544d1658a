package runtime

import "fmt"

// ErrRecursionLimit is returned by NewFunctionContext when entering a
// call would exceed the configured maximum call depth.
var ErrRecursionLimit = fmt.Errorf("recursion limit exceeded")

// Context is a lexical binding frame: a mapping from name to a borrowed
// Cell, chained to a parent frame and ultimately to the GlobalContext
// that owns the heap. Lookup walks the chain outward; add_symbol always
// binds in the frame it is called on.
type Context interface {
	// Lookup returns the Cell bound to name in this frame or an
	// ancestor. If no frame binds it, the GlobalContext auto-vivifies an
	// undefined Cell and binds it there, so a lookup never fails.
	Lookup(name string) *Cell

	// HasSymbol reports whether this frame or an ancestor binds name,
	// without auto-vivifying anything.
	HasSymbol(name string) bool

	// AddSymbol binds name to cell in this frame.
	AddSymbol(name string, cell *Cell)

	// Global returns the GlobalContext terminating this frame's chain.
	Global() *GlobalContext

	// Depth returns the number of FunctionContext frames between this
	// context and the GlobalContext, inclusive of this one if it is a
	// FunctionContext.
	Depth() int
}

// GlobalContext is the root of every Context chain. It owns the heap
// (every Object ever allocated) and the top-level symbol table; programs
// and imported files all share one GlobalContext and so can see each
// other's top-level bindings.
type GlobalContext struct {
	symbols  map[string]*Cell
	heap     []*Object
	maxDepth int
}

// NewGlobalContext creates an empty GlobalContext. maxDepth of 0 or less
// uses a default of 4096 nested FunctionContext frames.
func NewGlobalContext(maxDepth int) *GlobalContext {
	if maxDepth <= 0 {
		maxDepth = 4096
	}
	return &GlobalContext{symbols: make(map[string]*Cell), maxDepth: maxDepth}
}

func (g *GlobalContext) Lookup(name string) *Cell {
	cell, ok := g.symbols[name]
	if !ok {
		cell = NewCell()
		g.symbols[name] = cell
	}
	return cell
}

func (g *GlobalContext) HasSymbol(name string) bool {
	_, ok := g.symbols[name]
	return ok
}

func (g *GlobalContext) AddSymbol(name string, cell *Cell) { g.symbols[name] = cell }
func (g *GlobalContext) Global() *GlobalContext             { return g }
func (g *GlobalContext) Depth() int                         { return 0 }

// NewObject allocates an Object on the heap this GlobalContext owns and
// returns it; Objects are never freed individually, only when the whole
// GlobalContext is dropped.
func (g *GlobalContext) NewObject() *Object {
	obj := NewObject()
	g.heap = append(g.heap, obj)
	return obj
}

// NewReference allocates a fresh Cell and returns a SymbolReference to
// it, per the context stack's new_reference operation. The Cell is not
// bound to any name; callers typically bind it themselves via
// AddSymbol.
func (g *GlobalContext) NewReference(initial Data) SymbolReference {
	return NewSymbolReference(&Cell{Data: initial})
}

// FunctionContext is the frame created on entry to a function call. Its
// own symbol map holds the bound parameters (and, transiently, anything
// the body itself introduces); lookup falls through to Parent, and from
// there up the chain to the GlobalContext.
type FunctionContext struct {
	parent  Context
	symbols map[string]*Cell
	depth   int
}

// NewFunctionContext creates a child frame of parent. It fails with
// ErrRecursionLimit if doing so would exceed the GlobalContext's
// configured maximum call depth.
func NewFunctionContext(parent Context) (*FunctionContext, error) {
	depth := parent.Depth() + 1
	if depth > parent.Global().maxDepth {
		return nil, ErrRecursionLimit
	}
	return &FunctionContext{parent: parent, symbols: make(map[string]*Cell), depth: depth}, nil
}

func (f *FunctionContext) Lookup(name string) *Cell {
	if cell, ok := f.symbols[name]; ok {
		return cell
	}
	return f.parent.Lookup(name)
}

func (f *FunctionContext) HasSymbol(name string) bool {
	if _, ok := f.symbols[name]; ok {
		return true
	}
	return f.parent.HasSymbol(name)
}

func (f *FunctionContext) AddSymbol(name string, cell *Cell) { f.symbols[name] = cell }
func (f *FunctionContext) Global() *GlobalContext             { return f.parent.Global() }
func (f *FunctionContext) Depth() int                         { return f.depth }
func (f *FunctionContext) Parent() Context                    { return f.parent }
