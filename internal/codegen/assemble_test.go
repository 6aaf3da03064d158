package codegen

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cgen/internal/auxiliary"
)

// assertOrder fails unless every landmark appears in text in the given
// order.
func assertOrder(t *testing.T, text string, landmarks ...string) {
	t.Helper()
	last := -1
	for _, mark := range landmarks {
		n := strings.Index(text, mark)
		if n < 0 {
			t.Fatalf("landmark %q missing", mark)
		}
		if n < last {
			t.Fatalf("landmark %q out of order", mark)
		}
		last = n
	}
}

func TestRenderSectionOrder(t *testing.T) {
	opts := DefaultOptions()
	opts.Main = true
	g := mustNew(t, "rocket", opts)

	g.IntConstant([]int{2, 1, 0, 2, 0, 1})
	g.Constant([]float64{1.5})
	g.AddAuxiliary(auxiliary.Fill)
	g.AddExternal("int solver(const casadi_real* x);")
	if err := g.Add(g.Register(&testFunc{name: "fun"}), false); err != nil {
		t.Fatalf("Add: %v", err)
	}

	src, err := g.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	assertOrder(t, src,
		"/* This file was automatically generated by CasADi.",
		"extern \"C\" {",
		"/* How to prefix internal symbols */",
		"#define CASADI_PREFIX(ID) rocket_ ## ID",
		"#include <math.h>",
		"#ifndef casadi_real",
		"#define to_double(x) (double) x",
		"/* Pre-c99 compatibility */",
		"/* CasADi extensions */",
		"#define sq CASADI_PREFIX(sq)",
		"/* Add prefix to internal symbols */",
		"#define casadi_fill CASADI_PREFIX(fill)",
		"/* Printing routine */",
		"#define PRINTF printf",
		"/* Symbol visibility in DLLs */",
		"static const int casadi_s0[6] = {2, 1, 0, 2, 0, 1};",
		"static const casadi_real casadi_c0[1] = {1.5000000000000000e+00};",
		"/* External functions */",
		"int solver(const casadi_real* x);",
		"void casadi_fill(casadi_real* x, int n, casadi_real alpha) {",
		"int casadi_f0(const casadi_real** arg",
		"int fun(const casadi_real** arg",
		"int main(int argc, char* argv[]) {",
		"} /* extern \"C\" */",
	)
}

func TestRenderShorthandMacrosSorted(t *testing.T) {
	g := mustNew(t, "f", DefaultOptions())
	g.Shorthand("s1")
	g.Shorthand("copy")

	src, err := g.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	assertOrder(t, src,
		"#define casadi_copy CASADI_PREFIX(copy)",
		"#define casadi_s1 CASADI_PREFIX(s1)",
	)
}

func TestRenderCPPLinkage(t *testing.T) {
	opts := DefaultOptions()
	opts.CPP = true
	g := mustNew(t, "f", opts)

	src, err := g.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(src, "#ifdef __cplusplus") {
		t.Fatal("cpp output should not carry the C linkage guard")
	}
	if !strings.Contains(src, "#define to_double(x) static_cast<double>(x)") {
		t.Fatal("cpp cast macros missing")
	}
	if g.Suffix() != ".cpp" {
		t.Fatalf("Suffix = %q", g.Suffix())
	}
}

func TestRenderMexDispatch(t *testing.T) {
	opts := DefaultOptions()
	opts.Mex = true
	g := mustNew(t, "f", opts)
	if err := g.Add(g.Register(&testFunc{name: "fun"}), false); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := g.Add(g.Register(&testFunc{name: "fun_jac"}), false); err != nil {
		t.Fatalf("Add: %v", err)
	}

	src, err := g.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	// Buffer sized to the longest exposed name plus one.
	if !strings.Contains(src, "char buf[8];") {
		t.Fatalf("mex buffer sizing missing:\n%s", src)
	}
	assertOrder(t, src,
		"#ifdef MATLAB_MEX_FILE\n  #define PRINTF mexPrintf",
		"void mexFunction(int resc, mxArray *resv[], int argc, const mxArray *argv[]) {",
		"int buf_ok = --argc >= 0 && !mxGetString(*argv++, buf, sizeof(buf));",
		"} else if (strcmp(buf, \"fun\")==0) {",
		"return mex_fun(resc, resv, argc, argv);",
		"} else if (strcmp(buf, \"fun_jac\")==0) {",
		"mexErrMsgTxt(\"First input should be a command string. Possible values: 'fun' 'fun_jac'\");",
	)
}

func TestRenderMainDispatchZeroExposed(t *testing.T) {
	opts := DefaultOptions()
	opts.Main = true
	g := mustNew(t, "f", opts)

	src, err := g.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	assertOrder(t, src,
		"int main(int argc, char* argv[]) {",
		"if (argc<2) {",
		"fprintf(stderr, \"First input should be a command string. Possible values:\\n\");",
		"return 1;",
	)
	if strings.Contains(src, "strcmp(argv[1]") {
		t.Fatal("dispatch chain emitted with no exposed names")
	}
}

func TestRenderSurfacesDeferredErrors(t *testing.T) {
	g := mustNew(t, "f", DefaultOptions())
	g.AddAuxiliary(auxiliary.Copy, "a", "b")
	if _, err := g.Render(); err == nil {
		t.Fatal("Render swallowed a deferred auxiliary error")
	}
}

func TestRenderUnbalancedBody(t *testing.T) {
	g := mustNew(t, "f", DefaultOptions())
	g.Emit("int f(void) {\n")
	if err := g.FlushBody(); err != nil {
		t.Fatalf("FlushBody: %v", err)
	}
	if _, err := g.Render(); !errors.Is(err, ErrUnbalancedIndentation) {
		t.Fatalf("Render = %v, want ErrUnbalancedIndentation", err)
	}
}

func TestDeclareMirrorsHeader(t *testing.T) {
	opts := DefaultOptions()
	opts.WithHeader = true
	g := mustNew(t, "f", opts)

	got := g.Declare("int fun(void)")
	if got != "CASADI_SYMBOL_EXPORT int fun(void)" {
		t.Fatalf("Declare = %q", got)
	}
	hdr, err := g.RenderHeader()
	if err != nil {
		t.Fatalf("RenderHeader: %v", err)
	}
	assertOrder(t, hdr,
		"/* This file was automatically generated by CasADi.",
		"#ifndef casadi_real",
		"int fun(void);",
	)
}

func TestDeclareCPPPrefix(t *testing.T) {
	opts := DefaultOptions()
	opts.CPP = true
	opts.WithExport = false
	g := mustNew(t, "f", opts)
	if got := g.Declare("int fun(void)"); got != "extern \"C\" int fun(void)" {
		t.Fatalf("Declare = %q", got)
	}
}

func TestGenerateWritesArtifacts(t *testing.T) {
	dir := t.TempDir()
	opts := DefaultOptions()
	opts.WithHeader = true
	g := mustNew(t, "rocket", opts)
	if err := g.Add(g.Register(&testFunc{name: "fun"}), false); err != nil {
		t.Fatalf("Add: %v", err)
	}

	fullname, err := g.Generate(dir + string(filepath.Separator))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if filepath.Base(fullname) != "rocket.c" {
		t.Fatalf("fullname = %q", fullname)
	}
	if _, err := os.Stat(filepath.Join(dir, "rocket.c")); err != nil {
		t.Fatalf("source artifact: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "rocket.h")); err != nil {
		t.Fatalf("header artifact: %v", err)
	}
}

func TestGenerateRejectsStalePrefix(t *testing.T) {
	g := mustNew(t, "rocket", DefaultOptions())
	if _, err := g.Generate("out/rocket.c"); !errors.Is(err, ErrStaleInterface) {
		t.Fatalf("Generate = %v, want ErrStaleInterface", err)
	}
}

func TestRenderConstantLabels(t *testing.T) {
	g := mustNew(t, "rocket", DefaultOptions())
	g.NamedConstant("thrust", []float64{1.5, 2.5})
	g.NamedIntConstant("stages", []int{1, 2, 3})
	g.NamedConstant("", []float64{9.81})

	src, err := g.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	assertOrder(t, src,
		"/* stages */",
		"static const int casadi_s0[3]",
		"/* thrust */",
		"static const casadi_real casadi_c0[2]",
		"static const casadi_real casadi_c1[1]")
	if strings.Contains(src, "/*  */") {
		t.Fatal("empty label annotated")
	}
}

func TestRenderConstantLabelsSilentUnlessVerbose(t *testing.T) {
	opts := DefaultOptions()
	opts.Verbose = false
	g := mustNew(t, "rocket", opts)
	g.NamedConstant("thrust", []float64{1.5})

	src, err := g.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(src, "thrust") {
		t.Fatal("label rendered with verbose off")
	}
	if !strings.Contains(src, "static const casadi_real casadi_c0[1]") {
		t.Fatal("array missing")
	}
}

func TestNamedConstantKeepsFirstLabel(t *testing.T) {
	g := mustNew(t, "rocket", DefaultOptions())
	g.NamedConstant("thrust", []float64{1.5})
	g.NamedConstant("drag", []float64{1.5})

	src, err := g.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(src, "/* thrust */") || strings.Contains(src, "/* drag */") {
		t.Fatal("duplicate intern did not keep the first label")
	}
}
