package codegen

// FuncRef is an opaque handle identifying one collaborator function within
// a generation session. Handles are arena indices: the dependency record is
// keyed by handle, never by comparing collaborator values.
type FuncRef uint32

// NoFuncRef is the invalid handle.
const NoFuncRef FuncRef = 0

// IsValid reports whether the handle refers to a registered function.
func (r FuncRef) IsValid() bool { return r != NoFuncRef }

// Function is the collaborator-supplied symbolic function the engine
// generates code for. The engine never inspects the function's graph; it
// only asks it to write declarations and a body into the session buffer.
type Function interface {
	// Name is the public name of the function.
	Name() string
	// Signature renders the full C signature for the given generated name.
	Signature(fname string) string
	// CodegenDeclarations writes any forward declarations the body needs.
	CodegenDeclarations(g *Generator) error
	// CodegenBody writes the function body under the generated name.
	CodegenBody(g *Generator, fname string) error
}

// Refcounted is implemented by functions that need reference-count
// increment/decrement wrapper routines generated alongside their body.
type Refcounted interface {
	CodegenIncref(g *Generator) error
	CodegenDecref(g *Generator) error
}

// MetaProvider is implemented by functions contributing metadata text
// after their public wrapper.
type MetaProvider interface {
	CodegenMeta(g *Generator) error
}

// SparsityProvider is implemented by functions whose input and Jacobian
// sparsity patterns can be exported as constant arrays with accessors.
type SparsityProvider interface {
	SparsityIn() []Pattern
	JacobianSparsity() Pattern
}
