// Package codegen implements the C source generation engine. A Generator
// is bound to one output target for one session: collaborators declare
// signatures, intern constants, request auxiliary routines and append
// statements; the assembler concatenates the buffered sections in a fixed
// order and optionally appends dispatch wrappers.
//
// A Generator is not safe for concurrent use. Parallelism belongs one
// level up: independent sessions for independent outputs.
package codegen

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"cgen/internal/auxiliary"
	"cgen/internal/emit"
	"cgen/internal/pool"
	"cgen/internal/registry"
)

type localVar struct {
	typ string
	ref string
}

// Generator drives one generation session for one source/header pair.
type Generator struct {
	opts   Options
	name   string // base name, also the default namespace token
	suffix string // ".c", ".cpp" or caller-supplied

	buf         *emit.Buffer
	header      emit.Section
	auxiliaries emit.Section
	body        emit.Section

	reg    *registry.Registry
	engine *auxiliary.Engine

	intPool   *pool.Pool[int]
	floatPool *pool.Pool[float64]

	funcs      []Function
	added      map[FuncRef]string
	exposed    []string
	exposedSet map[string]struct{}

	locals        map[string]localVar
	localDefaults map[string]string
	sparsityMeta  map[string]struct{}
	constantNotes map[string]string // pool symbol ("c0", "s3") to label

	exportMacro string
	err         error // first deferred failure, reported at render time
}

// New creates a session for the given output name ("f" or "f.c"; the
// suffix defaults from the linkage target) with parsed options.
func New(name string, opts Options) (*Generator, error) {
	if opts.Indent < 0 {
		return nil, fmt.Errorf("%w: indent must be non-negative", ErrInvalidOption)
	}
	base, suffix, err := splitName(name, opts.CPP)
	if err != nil {
		return nil, err
	}

	g := &Generator{
		opts:          opts,
		name:          base,
		suffix:        suffix,
		buf:           emit.NewBuffer(opts.Indent),
		reg:           registry.New(),
		intPool:       pool.New[int](),
		floatPool:     pool.New[float64](),
		added:         make(map[FuncRef]string),
		exposedSet:    make(map[string]struct{}),
		locals:        make(map[string]localVar),
		localDefaults: make(map[string]string),
		sparsityMeta:  make(map[string]struct{}),
		constantNotes: make(map[string]string),
	}
	g.engine = auxiliary.NewEngine(&g.auxiliaries, g.reg)

	if opts.WithExport {
		g.exportMacro = "CASADI_SYMBOL_EXPORT "
	}

	// Includes every output needs
	g.AddInclude("math.h", false, "")
	if opts.Main {
		g.AddInclude("stdio.h", false, "")
	}
	if opts.Mex || opts.Main {
		g.AddInclude("string.h", false, "")
	}
	if opts.WithMem {
		g.AddInclude("casadi/mem.h", true, "")
		g.header.WriteString("#include <casadi/mem.h>\n")
	}
	if opts.Mex {
		g.AddInclude("mex.h", false, "MATLAB_MEX_FILE")
	}
	return g, nil
}

// Options returns the session configuration.
func (g *Generator) Options() Options { return g.opts }

// BaseName returns the output base name.
func (g *Generator) BaseName() string { return g.name }

// Suffix returns the source file suffix.
func (g *Generator) Suffix() string { return g.suffix }

// fail records the first deferred failure; it surfaces at render time.
func (g *Generator) fail(err error) {
	if g.err == nil {
		g.err = err
	}
}

// Emit appends text to the session buffer, tracking indentation.
func (g *Generator) Emit(text string) {
	g.buf.Emit(text)
}

// Emitf appends formatted text to the session buffer.
func (g *Generator) Emitf(format string, args ...any) {
	g.buf.Emitf(format, args...)
}

// Comment emits a human-readable annotation when verbose output is on.
func (g *Generator) Comment(s string) {
	if g.opts.Verbose {
		g.Emit("/* " + s + " */\n")
	}
}

// FlushBody moves the buffered text into the main-body section.
func (g *Generator) FlushBody() error {
	return g.buf.Flush(&g.body)
}

// AddInclude requests a header inclusion; repeated requests are dropped.
func (g *Generator) AddInclude(name string, relative bool, guard string) {
	g.reg.AddInclude(name, relative, guard)
}

// AddExternal records a forward declaration of an external symbol.
func (g *Generator) AddExternal(decl string) {
	g.reg.AddExternal(decl)
}

// Shorthand defines (idempotently) a short symbol and returns its
// namespaced spelling.
func (g *Generator) Shorthand(name string) string {
	return g.reg.Shorthand(name)
}

// DefineShorthand strictly defines a short symbol, failing with
// ErrDuplicateSymbol when it already exists.
func (g *Generator) DefineShorthand(name string) (string, error) {
	return g.reg.Define(name)
}

// ResolveShorthand returns the namespaced spelling of a defined shorthand,
// failing with ErrUndefinedSymbol otherwise.
func (g *Generator) ResolveShorthand(name string) (string, error) {
	return g.reg.Resolve(name)
}

// AddAuxiliary requests an auxiliary routine instantiation together with
// its transitive dependencies.
func (g *Generator) AddAuxiliary(kind auxiliary.Kind, inst ...string) {
	if err := g.engine.Request(kind, inst...); err != nil {
		g.fail(err)
	}
}

// Local registers a named local variable for the function being emitted.
// Redeclaring with an identical type and reference form is a no-op;
// diverging redeclaration fails with ErrTypeMismatch.
func (g *Generator) Local(name, typ, ref string) error {
	if prev, ok := g.locals[name]; ok {
		if prev.typ != typ || prev.ref != ref {
			return fmt.Errorf("%w: local %q declared as %q%q and %q%q",
				ErrTypeMismatch, name, prev.typ, prev.ref, typ, ref)
		}
		return nil
	}
	g.locals[name] = localVar{typ: typ, ref: ref}
	return nil
}

// InitLocal records a default initializer for a local variable. A second
// initializer for the same name fails with ErrDuplicateSymbol.
func (g *Generator) InitLocal(name, def string) error {
	if _, ok := g.localDefaults[name]; ok {
		return fmt.Errorf("%w: local %q already has an initializer", ErrDuplicateSymbol, name)
	}
	g.localDefaults[name] = def
	return nil
}

// FlushLocals renders the accumulated local variable declarations, with
// their recorded initializers, and resets the bindings for the next
// function body. Declarations come out sorted by name.
func (g *Generator) FlushLocals() string {
	names := make([]string, 0, len(g.locals))
	for name := range g.locals {
		names = append(names, name)
	}
	sort.Strings(names)

	var s strings.Builder
	for _, name := range names {
		v := g.locals[name]
		s.WriteString(v.typ + " " + v.ref + name)
		if def, ok := g.localDefaults[name]; ok {
			s.WriteString("=" + def)
		}
		s.WriteString(";\n")
	}
	g.locals = make(map[string]localVar)
	g.localDefaults = make(map[string]string)
	return s.String()
}

// Constant interns a floating constant array and returns the namespaced
// name of its rendered storage.
func (g *Generator) Constant(v []float64) string {
	return g.reg.Shorthand("c" + strconv.Itoa(g.floatPool.Intern(v)))
}

// IntConstant interns an integer constant array and returns the
// namespaced name of its rendered storage.
func (g *Generator) IntConstant(v []int) string {
	return g.reg.Shorthand("s" + strconv.Itoa(g.intPool.Intern(v)))
}

// NamedConstant interns a floating constant array under a caller-supplied
// label, annotated next to the rendered array in verbose output.
func (g *Generator) NamedConstant(name string, v []float64) string {
	sym := "c" + strconv.Itoa(g.floatPool.Intern(v))
	g.noteConstant(sym, name)
	return g.reg.Shorthand(sym)
}

// NamedIntConstant interns an integer constant array under a
// caller-supplied label, annotated next to the rendered array in verbose
// output.
func (g *Generator) NamedIntConstant(name string, v []int) string {
	sym := "s" + strconv.Itoa(g.intPool.Intern(v))
	g.noteConstant(sym, name)
	return g.reg.Shorthand(sym)
}

// noteConstant records a label for a pool symbol. The first label wins
// when equal arrays are interned under different names.
func (g *Generator) noteConstant(sym, name string) {
	if name == "" {
		return
	}
	if _, ok := g.constantNotes[sym]; !ok {
		g.constantNotes[sym] = name
	}
}

// AddSparsity interns a sparsity pattern, returning its pool index.
func (g *Generator) AddSparsity(p Pattern) int {
	return g.intPool.Intern([]int(p))
}

// Sparsity interns a pattern and returns the namespaced constant name.
func (g *Generator) Sparsity(p Pattern) string {
	return g.reg.Shorthand("s" + strconv.Itoa(g.AddSparsity(p)))
}

// GetSparsity returns the pool index of an already-interned pattern,
// failing with ErrConstantNotFound otherwise.
func (g *Generator) GetSparsity(p Pattern) (int, error) {
	return g.intPool.Lookup([]int(p))
}

// FloatLiteral renders a scalar floating constant as a portable literal.
func (g *Generator) FloatLiteral(v float64) string {
	return pool.FloatLiteral(v)
}
