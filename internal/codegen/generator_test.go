package codegen

import (
	"errors"
	"testing"
)

func mustNew(t *testing.T, name string, opts Options) *Generator {
	t.Helper()
	g, err := New(name, opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

func TestConstructorIncludes(t *testing.T) {
	opts := DefaultOptions()
	opts.Main = true
	opts.Mex = true
	g := mustNew(t, "f", opts)

	incs := g.reg.Includes()
	names := make(map[string]string)
	for _, inc := range incs {
		names[inc.Name] = inc.Guard
	}
	for _, want := range []string{"math.h", "stdio.h", "string.h", "mex.h"} {
		if _, ok := names[want]; !ok {
			t.Fatalf("missing constructor include %q (got %v)", want, incs)
		}
	}
	if names["mex.h"] != "MATLAB_MEX_FILE" {
		t.Fatalf("mex.h guard = %q", names["mex.h"])
	}
}

func TestConstantInterning(t *testing.T) {
	g := mustNew(t, "f", DefaultOptions())

	if got := g.Constant([]float64{1, 2}); got != "casadi_c0" {
		t.Fatalf("first Constant = %q", got)
	}
	if got := g.Constant([]float64{3}); got != "casadi_c1" {
		t.Fatalf("second Constant = %q", got)
	}
	if got := g.Constant([]float64{1, 2}); got != "casadi_c0" {
		t.Fatalf("repeated Constant = %q", got)
	}
	if got := g.IntConstant([]int{1, 2}); got != "casadi_s0" {
		t.Fatalf("IntConstant = %q", got)
	}
}

func TestSparsityInterning(t *testing.T) {
	g := mustNew(t, "f", DefaultOptions())
	sp := DensePattern(2, 2)

	if got := g.Sparsity(sp); got != "casadi_s0" {
		t.Fatalf("Sparsity = %q", got)
	}
	idx, err := g.GetSparsity(sp)
	if err != nil || idx != 0 {
		t.Fatalf("GetSparsity = %d, %v", idx, err)
	}
	if _, err := g.GetSparsity(ScalarPattern()); !errors.Is(err, ErrConstantNotFound) {
		t.Fatalf("GetSparsity miss = %v, want ErrConstantNotFound", err)
	}
}

func TestLocalBindings(t *testing.T) {
	g := mustNew(t, "f", DefaultOptions())

	if err := g.Local("rr", "casadi_real", "*"); err != nil {
		t.Fatalf("Local: %v", err)
	}
	if err := g.Local("rr", "casadi_real", "*"); err != nil {
		t.Fatalf("identical redeclaration: %v", err)
	}
	if err := g.Local("rr", "int", "*"); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("diverging redeclaration = %v, want ErrTypeMismatch", err)
	}

	if err := g.InitLocal("i", "0"); err != nil {
		t.Fatalf("InitLocal: %v", err)
	}
	if err := g.InitLocal("i", "1"); !errors.Is(err, ErrDuplicateSymbol) {
		t.Fatalf("second InitLocal = %v, want ErrDuplicateSymbol", err)
	}
}

func TestFlushLocalsRendersSortedAndResets(t *testing.T) {
	g := mustNew(t, "f", DefaultOptions())

	if err := g.Local("rr", "casadi_real", "*"); err != nil {
		t.Fatalf("Local: %v", err)
	}
	if err := g.Local("i", "int", ""); err != nil {
		t.Fatalf("Local: %v", err)
	}
	if err := g.InitLocal("i", "0"); err != nil {
		t.Fatalf("InitLocal: %v", err)
	}

	want := "int i=0;\ncasadi_real *rr;\n"
	if got := g.FlushLocals(); got != want {
		t.Fatalf("FlushLocals = %q, want %q", got, want)
	}
	if got := g.FlushLocals(); got != "" {
		t.Fatalf("second FlushLocals = %q, want empty", got)
	}
	// Bindings reset, the name is free again.
	if err := g.Local("rr", "int", ""); err != nil {
		t.Fatalf("Local after flush: %v", err)
	}
}

func TestShorthandDiscipline(t *testing.T) {
	g := mustNew(t, "f", DefaultOptions())

	if got := g.Shorthand("sq_work"); got != "casadi_sq_work" {
		t.Fatalf("Shorthand = %q", got)
	}
	if _, err := g.DefineShorthand("sq_work"); !errors.Is(err, ErrDuplicateSymbol) {
		t.Fatalf("DefineShorthand = %v, want ErrDuplicateSymbol", err)
	}
	got, err := g.ResolveShorthand("sq_work")
	if err != nil || got != "casadi_sq_work" {
		t.Fatalf("ResolveShorthand = %q, %v", got, err)
	}
	if _, err := g.ResolveShorthand("never"); !errors.Is(err, ErrUndefinedSymbol) {
		t.Fatalf("ResolveShorthand miss = %v, want ErrUndefinedSymbol", err)
	}
}

func TestCommentRespectsVerbose(t *testing.T) {
	g := mustNew(t, "f", DefaultOptions())
	g.Comment("note")
	if g.buf.Len() == 0 {
		t.Fatal("verbose session dropped a comment")
	}

	opts := DefaultOptions()
	opts.Verbose = false
	q := mustNew(t, "f", opts)
	q.Comment("note")
	if q.buf.Len() != 0 {
		t.Fatal("quiet session emitted a comment")
	}
}
