package codegen

import (
	"fmt"
	"strconv"
)

// Register adds a collaborator function to the session arena and returns
// its handle. Registering the same function twice yields two handles; the
// collaborator is expected to register each distinct function once and
// reuse the handle.
func (g *Generator) Register(fn Function) FuncRef {
	g.funcs = append(g.funcs, fn)
	return FuncRef(len(g.funcs))
}

func (g *Generator) lookup(ref FuncRef) (Function, error) {
	if !ref.IsValid() || int(ref) > len(g.funcs) {
		return nil, fmt.Errorf("unregistered function handle %d", ref)
	}
	return g.funcs[ref-1], nil
}

// AddDependency ensures the referenced sub-function has been generated,
// returning its generated name. The first call assigns a counter-derived
// name, asks the function to emit its declarations and body, generates
// reference-count wrappers when requested, and flushes the buffer into the
// main-body section; subsequent calls return the stored name without
// emitting anything.
func (g *Generator) AddDependency(ref FuncRef) (string, error) {
	if name, ok := g.added[ref]; ok {
		return name, nil
	}
	fn, err := g.lookup(ref)
	if err != nil {
		return "", err
	}

	fname := g.reg.Shorthand("f" + strconv.Itoa(len(g.added)))
	g.added[ref] = fname

	if err := fn.CodegenDeclarations(g); err != nil {
		return "", err
	}
	if err := fn.CodegenBody(g, fname); err != nil {
		return "", err
	}

	if rc, ok := fn.(Refcounted); ok {
		g.Emit("void " + fname + "_incref(void) {\n")
		if err := rc.CodegenIncref(g); err != nil {
			return "", err
		}
		g.Emit("}\n\n")
		g.Emit("void " + fname + "_decref(void) {\n")
		if err := rc.CodegenDecref(g); err != nil {
			return "", err
		}
		g.Emit("}\n\n")
	}

	if err := g.FlushBody(); err != nil {
		return "", err
	}
	return fname, nil
}

// Add exposes a function: its body is generated at most once, a public
// wrapper forwarding to the generated name is emitted, metadata and
// (optionally) Jacobian sparsity accessors follow, and the public name is
// appended to the exposed list used by the dispatch wrappers. Exposing the
// same public name twice fails with ErrDuplicateSymbol.
func (g *Generator) Add(ref FuncRef, withJacSparsity bool) error {
	fn, err := g.lookup(ref)
	if err != nil {
		return err
	}
	name := fn.Name()
	if _, dup := g.exposedSet[name]; dup {
		return fmt.Errorf("%w: function %q exposed twice", ErrDuplicateSymbol, name)
	}

	codegenName, err := g.AddDependency(ref)
	if err != nil {
		return err
	}

	// Public wrapper forwarding to the generated body
	g.Emit(g.Declare(fn.Signature(name)) + "{\n")
	g.Emit("return " + codegenName + "(arg, res, iw, w, mem);\n")
	g.Emit("}\n\n")

	if m, ok := fn.(MetaProvider); ok {
		if err := m.CodegenMeta(g); err != nil {
			return err
		}
	}

	if withJacSparsity {
		sp, ok := fn.(SparsityProvider)
		if !ok {
			return fmt.Errorf("function %q does not provide sparsity patterns", name)
		}
		jac := sp.JacobianSparsity()
		if err := g.AddIOSparsities("jac_"+name, sp.SparsityIn(), []Pattern{jac}); err != nil {
			return err
		}
	}

	if err := g.FlushBody(); err != nil {
		return err
	}

	g.exposed = append(g.exposed, name)
	g.exposedSet[name] = struct{}{}
	return nil
}

// Exposed returns the public names in exposure order, as used verbatim by
// the dispatch wrappers.
func (g *Generator) Exposed() []string {
	out := make([]string, len(g.exposed))
	copy(out, g.exposed)
	return out
}

// CallFunction renders a call expression to an already-generated
// sub-function.
func (g *Generator) CallFunction(ref FuncRef, arg, res, iw, w, mem string) (string, error) {
	name, ok := g.added[ref]
	if !ok {
		return "", fmt.Errorf("function handle %d has not been generated", ref)
	}
	return name + "(" + arg + ", " + res + ", " + iw + ", " + w + ", " + mem + ")", nil
}

// AddIOSparsities emits paired sparsity accessor functions for the given
// name, interning each pattern as a constant array. Repeated requests for
// the same name are dropped.
func (g *Generator) AddIOSparsities(name string, spIn, spOut []Pattern) error {
	if _, ok := g.sparsityMeta[name]; ok {
		return nil
	}
	g.sparsityMeta[name] = struct{}{}

	g.Emit(g.Declare("const int* "+name+"_sparsity_in(int i)") + " {\n")
	g.Emit("switch (i) {\n")
	for i, sp := range spIn {
		g.Emitf("case %d: return %s;\n", i, g.Sparsity(sp))
	}
	g.Emit("default: return 0;\n}\n")
	g.Emit("}\n\n")

	g.Emit(g.Declare("const int* "+name+"_sparsity_out(int i)") + " {\n")
	g.Emit("switch (i) {\n")
	for i, sp := range spOut {
		g.Emitf("case %d: return %s;\n", i, g.Sparsity(sp))
	}
	g.Emit("default: return 0;\n}\n")
	g.Emit("}\n\n")
	return nil
}
