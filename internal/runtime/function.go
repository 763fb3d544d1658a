package runtime

import "github.com/flc-lang/flc/internal/ast"

// FuncKind distinguishes a user-defined Custom function from a
// host-provided System function.
type FuncKind int

const (
	Custom FuncKind = iota
	System
)

// SystemFunc is the host callable backing a System function. It
// receives the already-constructed FunctionContext (parameters bound
// per the function's Parameters pattern) and returns the call's result.
type SystemFunc func(fc *FunctionContext) (Reference, error)

// Function is a single overload: a parameter pattern plus either a
// Custom body (evaluated by the interpreter) or a System callable
// (evaluated by Go code). Captured holds, for every free name the
// function's body/filter refers to, a borrowed Cell from the context
// the function literal was created in — this is what makes closures
// work once the defining context itself is gone.
type Function struct {
	Kind       FuncKind
	Parameters ast.Expression
	Filter     ast.Expression // Custom only; nil means unguarded
	Body       ast.Expression // Custom only
	Host       SystemFunc     // System only
	Captured   map[string]*Cell
}

// NewCustomFunction builds a Function from a FunctionDefinition node and
// its captured bindings.
func NewCustomFunction(parameters, filter, body ast.Expression, captured map[string]*Cell) *Function {
	return &Function{
		Kind:       Custom,
		Parameters: parameters,
		Filter:     filter,
		Body:       body,
		Captured:   captured,
	}
}

// NewSystemFunction builds a Function backed by a Go callable. System
// functions carry no filter: a host function is expected to validate
// its own arguments and return a FunctionArgumentsError-shaped error to
// request the next overload.
func NewSystemFunction(parameters ast.Expression, host SystemFunc) *Function {
	return &Function{
		Kind:       System,
		Parameters: parameters,
		Host:       host,
		Captured:   map[string]*Cell{},
	}
}
