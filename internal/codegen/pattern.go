package codegen

// Pattern is a serialized sparsity pattern in compressed column storage:
// {nrow, ncol, colind[0..ncol], row[0..nnz)}. The collaborator owns the
// representation; the engine only interns patterns as integer constant
// arrays and compares them element-wise.
type Pattern []int

// NRow returns the number of rows.
func (p Pattern) NRow() int { return p[0] }

// NCol returns the number of columns.
func (p Pattern) NCol() int { return p[1] }

// NNZ returns the number of structural nonzeros.
func (p Pattern) NNZ() int { return p[2+p.NCol()] }

// Equal reports element-wise equality.
func (p Pattern) Equal(q Pattern) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// DensePattern builds the pattern of a fully dense nrow-by-ncol matrix.
func DensePattern(nrow, ncol int) Pattern {
	p := make(Pattern, 0, 2+ncol+1+nrow*ncol)
	p = append(p, nrow, ncol)
	for c := 0; c <= ncol; c++ {
		p = append(p, c*nrow)
	}
	for c := 0; c < ncol; c++ {
		for r := 0; r < nrow; r++ {
			p = append(p, r)
		}
	}
	return p
}

// ScalarPattern is the pattern of a dense 1-by-1 matrix.
func ScalarPattern() Pattern { return Pattern{1, 1, 0, 1, 0} }
