package codegen

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"cgen/internal/registry"
)

const banner = "/* This file was automatically generated by CasADi.\n" +
	"   The CasADi copyright holders make no ownership claim of its contents. */\n"

// Declare records a function signature, mirroring it into the header
// section when header generation is on, and returns the spelling used at
// the definition site, with linkage and export decorations applied.
func (g *Generator) Declare(sig string) string {
	var linkage string
	if g.opts.CPP {
		linkage = "extern \"C\" "
	}
	if g.opts.WithHeader {
		g.header.WriteString(linkage + sig + ";\n")
	}
	return linkage + g.exportMacro + sig
}

// Render assembles the complete source file text. It is the point where
// deferred failures surface: any error recorded during emission is
// returned here.
func (g *Generator) Render() (string, error) {
	if g.err != nil {
		return "", g.err
	}
	if err := g.buf.Finalize(); err != nil {
		return "", err
	}
	if g.buf.Len() != 0 {
		return "", fmt.Errorf("%d buffered bytes were never flushed", g.buf.Len())
	}

	var s strings.Builder
	s.WriteString(banner)
	if !g.opts.CPP {
		s.WriteString("#ifdef __cplusplus\nextern \"C\" {\n#endif\n\n")
	}
	g.dump(&s)
	if g.opts.Mex {
		g.dispatchMex(&s)
	}
	if g.opts.Main {
		g.dispatchMain(&s)
	}
	if !g.opts.CPP {
		s.WriteString("#ifdef __cplusplus\n} /* extern \"C\" */\n#endif\n")
	}
	return s.String(), nil
}

// RenderHeader assembles the companion header file text.
func (g *Generator) RenderHeader() (string, error) {
	if g.err != nil {
		return "", g.err
	}
	var s strings.Builder
	s.WriteString(banner)
	if !g.opts.CPP {
		s.WriteString("#ifdef __cplusplus\nextern \"C\" {\n#endif\n\n")
	}
	g.realTypeGuard(&s)
	s.WriteString(g.header.String())
	if !g.opts.CPP {
		s.WriteString("#ifdef __cplusplus\n} /* extern \"C\" */\n#endif\n")
	}
	return s.String(), nil
}

// Artifacts returns the output paths implied by prefix, source first,
// then the header when header generation is on.
func (g *Generator) Artifacts(prefix string) ([]string, error) {
	// The prefix used to be the full output filename. Reject the old
	// calling convention instead of producing a double-named file.
	if strings.Contains(prefix, g.name+g.suffix) {
		return nil, fmt.Errorf("%w: provide a prefix, not the output filename", ErrStaleInterface)
	}
	out := []string{prefix + g.name + g.suffix}
	if g.opts.WithHeader {
		out = append(out, prefix+g.name+".h")
	}
	return out, nil
}

// Generate renders the source file (and the header when requested) under
// prefix, which is a directory or filename prefix, and returns the full
// source path.
func (g *Generator) Generate(prefix string) (string, error) {
	paths, err := g.Artifacts(prefix)
	if err != nil {
		return "", err
	}

	src, err := g.Render()
	if err != nil {
		return "", err
	}
	fullname := paths[0]
	if dir := filepath.Dir(fullname); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", err
		}
	}
	if err := os.WriteFile(fullname, []byte(src), 0o644); err != nil {
		return "", err
	}

	if g.opts.WithHeader {
		hdr, err := g.RenderHeader()
		if err != nil {
			return "", err
		}
		if err := os.WriteFile(paths[1], []byte(hdr), 0o644); err != nil {
			return "", err
		}
	}
	return fullname, nil
}

func (g *Generator) realTypeGuard(s *strings.Builder) {
	s.WriteString("#ifndef casadi_real\n#define casadi_real " + g.opts.Real + "\n#endif\n\n")
}

// dump concatenates the buffered sections in their fixed order.
func (g *Generator) dump(s *strings.Builder) {
	s.WriteString("/* How to prefix internal symbols */\n" +
		"#ifdef CODEGEN_PREFIX\n" +
		"  #define NAMESPACE_CONCAT(NS, ID) _NAMESPACE_CONCAT(NS, ID)\n" +
		"  #define _NAMESPACE_CONCAT(NS, ID) NS ## ID\n" +
		"  #define CASADI_PREFIX(ID) NAMESPACE_CONCAT(CODEGEN_PREFIX, ID)\n" +
		"#else\n" +
		"  #define CASADI_PREFIX(ID) " + g.name + "_ ## ID\n" +
		"#endif\n\n")

	for _, inc := range g.reg.Includes() {
		if inc.Guard != "" {
			s.WriteString("#ifdef " + inc.Guard + "\n")
		}
		if inc.Relative {
			s.WriteString("#include \"" + inc.Name + "\"\n")
		} else {
			s.WriteString("#include <" + inc.Name + ">\n")
		}
		if inc.Guard != "" {
			s.WriteString("#endif\n")
		}
	}
	s.WriteString("\n")

	g.realTypeGuard(s)

	if g.opts.CPP {
		s.WriteString("#define to_double(x) static_cast<double>(x)\n" +
			"#define to_int(x) static_cast<int>(x)\n" +
			"#define CASADI_CAST(x,y) static_cast<x>(y)\n\n")
	} else {
		s.WriteString("#define to_double(x) (double) x\n" +
			"#define to_int(x) (int) x\n" +
			"#define CASADI_CAST(x,y) (x) y\n\n")
	}

	s.WriteString("/* Pre-c99 compatibility */\n" +
		"#if __STDC_VERSION__ < 199901L\n" +
		"  #define fmin CASADI_PREFIX(fmin)\n" +
		"  casadi_real fmin(casadi_real x, casadi_real y) { return x<y ? x : y;}\n" +
		"  #define fmax CASADI_PREFIX(fmax)\n" +
		"  casadi_real fmax(casadi_real x, casadi_real y) { return x>y ? x : y;}\n" +
		"#endif\n\n")

	s.WriteString("/* CasADi extensions */\n" +
		"#define sq CASADI_PREFIX(sq)\n" +
		"casadi_real sq(casadi_real x) { return x*x;}\n" +
		"#define sign CASADI_PREFIX(sign)\n" +
		"casadi_real CASADI_PREFIX(sign)(casadi_real x) { return x<0 ? -1 : x>0 ? 1 : x;}\n" +
		"#define twice CASADI_PREFIX(twice)\n" +
		"casadi_real twice(casadi_real x) { return x+x;}\n\n")

	if shorthands := g.reg.Shorthands(); len(shorthands) != 0 {
		s.WriteString("/* Add prefix to internal symbols */\n")
		for _, name := range shorthands {
			s.WriteString("#define " + registry.Prefix + name + " CASADI_PREFIX(" + name + ")\n")
		}
		s.WriteString("\n")
	}

	s.WriteString("/* Printing routine */\n")
	if g.opts.Mex {
		s.WriteString("#ifdef MATLAB_MEX_FILE\n" +
			"  #define PRINTF mexPrintf\n" +
			"#else\n" +
			"  #define PRINTF printf\n" +
			"#endif\n")
	} else {
		s.WriteString("#define PRINTF printf\n")
	}
	s.WriteString("\n")

	if g.opts.WithExport {
		s.WriteString("/* Symbol visibility in DLLs */\n" +
			"#ifndef CASADI_SYMBOL_EXPORT\n" +
			"  #if defined(_WIN32) || defined(__WIN32__) || defined(__CYGWIN__)\n" +
			"    #if defined(STATIC_LINKED)\n" +
			"      #define CASADI_SYMBOL_EXPORT\n" +
			"    #else\n" +
			"      #define CASADI_SYMBOL_EXPORT __declspec(dllexport)\n" +
			"    #endif\n" +
			"  #elif defined(__GNUC__) && defined(GCC_HASCLASSVISIBILITY)\n" +
			"    #define CASADI_SYMBOL_EXPORT __attribute__ ((visibility (\"default\")))\n" +
			"  #else\n" +
			"    #define CASADI_SYMBOL_EXPORT\n" +
			"  #endif\n" +
			"#endif\n\n")
	}

	if g.intPool.Len() != 0 {
		for i := 0; i < g.intPool.Len(); i++ {
			v := g.intPool.At(i)
			g.writeConstantNote(s, "s"+strconv.Itoa(i))
			s.WriteString(g.Array("static const int", registry.Prefix+"s"+strconv.Itoa(i),
				len(v), IntInitializer(v)))
		}
		s.WriteString("\n")
	}

	if g.floatPool.Len() != 0 {
		for i := 0; i < g.floatPool.Len(); i++ {
			v := g.floatPool.At(i)
			g.writeConstantNote(s, "c"+strconv.Itoa(i))
			s.WriteString(g.Array("static const casadi_real", registry.Prefix+"c"+strconv.Itoa(i),
				len(v), Initializer(v)))
		}
		s.WriteString("\n")
	}

	if externals := g.reg.Externals(); len(externals) != 0 {
		s.WriteString("/* External functions */\n")
		for _, decl := range externals {
			s.WriteString(decl + "\n")
		}
		s.WriteString("\n\n")
	}

	s.WriteString(g.auxiliaries.String())
	s.WriteString(g.body.String())
	s.WriteString("\n")
}

// writeConstantNote annotates a pool array with its caller-supplied label.
func (g *Generator) writeConstantNote(s *strings.Builder, sym string) {
	if !g.opts.Verbose {
		return
	}
	if name, ok := g.constantNotes[sym]; ok {
		s.WriteString("/* " + name + " */\n")
	}
}

// dispatchMex emits the mexFunction entry point, forwarding to the
// per-function mex_ wrappers by name.
func (g *Generator) dispatchMex(s *strings.Builder) {
	s.WriteString("#ifdef MATLAB_MEX_FILE\n")
	if g.opts.CPP {
		s.WriteString("extern \"C\"\n")
	}
	s.WriteString("void mexFunction(int resc, mxArray *resv[], int argc, const mxArray *argv[]) {\n")

	bufLen := 0
	for _, name := range g.exposed {
		if len(name) > bufLen {
			bufLen = len(name)
		}
	}
	s.WriteString("  char buf[" + strconv.Itoa(bufLen+1) + "];\n")
	s.WriteString("  int buf_ok = --argc >= 0 && !mxGetString(*argv++, buf, sizeof(buf));\n")

	s.WriteString("  if (!buf_ok) {\n    /* name error */\n")
	for _, name := range g.exposed {
		s.WriteString("  } else if (strcmp(buf, \"" + name + "\")==0) {\n" +
			"    return mex_" + name + "(resc, resv, argc, argv);\n")
	}
	s.WriteString("  }\n")

	s.WriteString("  mexErrMsgTxt(\"First input should be a command string. Possible values:")
	for _, name := range g.exposed {
		s.WriteString(" '" + name + "'")
	}
	s.WriteString("\");\n")

	s.WriteString("}\n#endif\n")
}

// dispatchMain emits the main entry point, forwarding to the per-function
// main_ wrappers by name.
func (g *Generator) dispatchMain(s *strings.Builder) {
	s.WriteString("int main(int argc, char* argv[]) {\n")

	s.WriteString("  if (argc<2) {\n    /* name error */\n")
	for _, name := range g.exposed {
		s.WriteString("  } else if (strcmp(argv[1], \"" + name + "\")==0) {\n" +
			"    return main_" + name + "(argc-2, argv+2);\n")
	}
	s.WriteString("  }\n")

	s.WriteString("  fprintf(stderr, \"First input should be a command string. Possible values:")
	for _, name := range g.exposed {
		s.WriteString(" '" + name + "'")
	}
	s.WriteString("\\n\");\n")

	s.WriteString("  return 1;\n}\n")
}
