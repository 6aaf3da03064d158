package codegen

import (
	"strconv"
	"strings"

	"cgen/internal/auxiliary"
	"cgen/internal/pool"
)

// requireAux requests an auxiliary instantiation, deferring any failure
// to render time.
func (g *Generator) requireAux(kind auxiliary.Kind, inst ...string) {
	if err := g.engine.Request(kind, inst...); err != nil {
		g.fail(err)
	}
}

// Work renders a pointer to work vector element n of size sz.
func (g *Generator) Work(n, sz int) string {
	switch {
	case n < 0 || sz == 0:
		return "0"
	case sz == 1 && !g.opts.CodegenScalars:
		return "(&w" + strconv.Itoa(n) + ")"
	default:
		return "w" + strconv.Itoa(n)
	}
}

// WorkEl renders work vector element n as a scalar expression.
func (g *Generator) WorkEl(n int) string {
	if n < 0 {
		return "0"
	}
	if g.opts.CodegenScalars {
		return "*w" + strconv.Itoa(n)
	}
	return "w" + strconv.Itoa(n)
}

// Array renders an array declaration, falling back to a null pointer for
// zero length.
func (g *Generator) Array(typ, name string, length int, def string) string {
	var s strings.Builder
	s.WriteString(typ)
	s.WriteString(" ")
	if length == 0 {
		s.WriteString("*" + name + " = 0")
	} else {
		s.WriteString(name + "[" + strconv.Itoa(length) + "]")
		if def != "" {
			s.WriteString(" = " + def)
		}
	}
	s.WriteString(";\n")
	return s.String()
}

// Initializer renders a braced floating initializer list.
func Initializer(v []float64) string {
	var s strings.Builder
	s.WriteString("{")
	for i, x := range v {
		if i != 0 {
			s.WriteString(", ")
		}
		s.WriteString(pool.FloatLiteral(x))
	}
	s.WriteString("}")
	return s.String()
}

// IntInitializer renders a braced integer initializer list.
func IntInitializer(v []int) string {
	var s strings.Builder
	s.WriteString("{")
	for i, x := range v {
		if i != 0 {
			s.WriteString(", ")
		}
		s.WriteString(strconv.Itoa(x))
	}
	s.WriteString("}")
	return s.String()
}

// Copy renders a statement copying n scalars from arg to res.
func (g *Generator) Copy(arg string, n int, res string) string {
	g.requireAux(auxiliary.Copy)
	return "casadi_copy(" + arg + ", " + strconv.Itoa(n) + ", " + res + ");"
}

// Fill renders a statement setting n entries of res to v.
func (g *Generator) Fill(res string, n int, v string) string {
	g.requireAux(auxiliary.Fill)
	return "casadi_fill(" + res + ", " + strconv.Itoa(n) + ", " + v + ");"
}

// Dot renders an inner product expression.
func (g *Generator) Dot(n int, x, y string) string {
	g.requireAux(auxiliary.Dot)
	return "casadi_dot(" + strconv.Itoa(n) + ", " + x + ", " + y + ")"
}

// Axpy renders the statement y += a*x over n entries.
func (g *Generator) Axpy(n int, a, x, y string) string {
	g.requireAux(auxiliary.Axpy)
	return "casadi_axpy(" + strconv.Itoa(n) + ", " + a + ", " + x + ", " + y + ");"
}

// Scal renders the statement x *= alpha over n entries.
func (g *Generator) Scal(n int, alpha, x string) string {
	g.requireAux(auxiliary.Scal)
	return "casadi_scal(" + strconv.Itoa(n) + ", " + alpha + ", " + x + ");"
}

// Bilin renders the bilinear form expression x'*A*y.
func (g *Generator) Bilin(A string, spA Pattern, x, y string) string {
	g.requireAux(auxiliary.Bilin)
	return "casadi_bilin(" + A + ", " + g.Sparsity(spA) + ", " + x + ", " + y + ")"
}

// Rank1 renders the rank-1 update statement A += alpha*x*y'.
func (g *Generator) Rank1(A string, spA Pattern, alpha, x, y string) string {
	g.requireAux(auxiliary.Rank1)
	return "casadi_rank1(" + A + ", " + g.Sparsity(spA) + ", " + alpha + ", " + x + ", " + y + ");"
}

// MV renders a sparse matrix-vector product statement.
func (g *Generator) MV(x string, spX Pattern, y, z string, tr bool) string {
	g.requireAux(auxiliary.MV)
	return "casadi_mv(" + x + ", " + g.Sparsity(spX) + ", " + y + ", " + z + ", " + boolFlag(tr) + ");"
}

// MVDense renders a dense matrix-vector product statement.
func (g *Generator) MVDense(x string, nrowX, ncolX int, y, z string, tr bool) string {
	g.requireAux(auxiliary.MVDense)
	return "casadi_mv_dense(" + x + ", " + strconv.Itoa(nrowX) + ", " + strconv.Itoa(ncolX) + ", " +
		y + ", " + z + ", " + boolFlag(tr) + ");"
}

// MTimes renders a sparse matrix-matrix product statement.
func (g *Generator) MTimes(x string, spX Pattern, y string, spY Pattern, z string, spZ Pattern, w string, tr bool) string {
	g.requireAux(auxiliary.MTimes)
	return "casadi_mtimes(" + x + ", " + g.Sparsity(spX) + ", " + y + ", " + g.Sparsity(spY) + ", " +
		z + ", " + g.Sparsity(spZ) + ", " + w + ", " + boolFlag(tr) + ");"
}

// Project renders a statement projecting arg onto a different sparsity
// pattern. Matching patterns reduce to a plain copy.
func (g *Generator) Project(arg string, spArg Pattern, res string, spRes Pattern, w string) string {
	if spArg.Equal(spRes) {
		return g.Copy(arg, spArg.NNZ(), res)
	}
	g.requireAux(auxiliary.Project)
	return "casadi_project(" + arg + ", " + g.Sparsity(spArg) + ", " + res + ", " +
		g.Sparsity(spRes) + ", " + w + ");"
}

// Trans renders a sparse transpose expression.
func (g *Generator) Trans(x string, spX Pattern, y string, spY Pattern, iw string) string {
	g.requireAux(auxiliary.Trans)
	return "casadi_trans(" + x + "," + g.Sparsity(spX) + ", " + y + ", " + g.Sparsity(spY) + ", " + iw + ")"
}

// Interpn renders an N-dimensional grid interpolation statement.
func (g *Generator) Interpn(ndim int, grid, offset, values, x, lookupMode, iw, w string) string {
	g.requireAux(auxiliary.Interpn)
	return "casadi_interpn(" + strconv.Itoa(ndim) + ", " + grid + ", " + offset + ", " +
		values + ", " + x + ", " + lookupMode + ", " + iw + ", " + w + ");"
}

// InterpnGrad renders the gradient of an N-dimensional grid interpolation.
func (g *Generator) InterpnGrad(grad string, ndim int, grid, offset, values, x, lookupMode, iw, w string) string {
	g.requireAux(auxiliary.InterpnGrad)
	return "casadi_interpn_grad(" + grad + ", " + strconv.Itoa(ndim) + ", " + grid + ", " + offset + ", " +
		values + ", " + x + ", " + lookupMode + ", " + iw + ", " + w + ");"
}

// ToMex renders a statement marshalling a sparse argument to the host.
func (g *Generator) ToMex(sp Pattern, arg string) string {
	g.requireAux(auxiliary.ToMex)
	return "casadi_to_mex(" + g.Sparsity(sp) + ", " + arg + ");"
}

// FromMex renders a statement unmarshalling a host argument into res. A
// nonzero offset is folded into the result operand before emission.
func (g *Generator) FromMex(arg, res string, resOff int, spRes Pattern, w string) string {
	if resOff != 0 {
		res = res + "+" + strconv.Itoa(resOff)
	}
	g.requireAux(auxiliary.FromMex)
	return "casadi_from_mex(" + arg + ", " + res + ", " + g.Sparsity(spRes) + ", " + w + ");"
}

// Printf renders a print statement through the PRINTF macro, which the
// assembler redirects to the host print routine in host-interop mode.
func (g *Generator) Printf(format string, args ...string) string {
	g.AddInclude("stdio.h", false, "")
	var s strings.Builder
	s.WriteString("PRINTF(\"" + format + "\"")
	for _, a := range args {
		s.WriteString(", " + a)
	}
	s.WriteString(");")
	return s.String()
}

func boolFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
