// Package auxiliary implements the auxiliary template engine: a fixed catalog of
// reusable numeric routines, each owning a generic source template and a
// static list of other routines it depends on. Requesting a routine
// instantiates its template for a concrete list of type parameters,
// emitting each unique instantiation at most once and all of its
// dependencies before it.
package auxiliary

import "fmt"

// Kind enumerates the closed catalog of auxiliary routines.
type Kind uint8

const (
	Copy Kind = iota
	Swap
	Scal
	Axpy
	Dot
	Bilin
	Rank1
	IAmax
	Interpn
	InterpnGrad
	DeBoor
	NDBoorEval
	Flip
	Low
	InterpnWeights
	InterpnInterpolate
	Norm1
	Norm2
	NormInf
	Fill
	MV
	MVDense
	MTimes
	Project
	Densify
	Trans
	ToMex
	FromMex
	FiniteDiff

	numKinds
)

var kindNames = [numKinds]string{
	Copy:               "copy",
	Swap:               "swap",
	Scal:               "scal",
	Axpy:               "axpy",
	Dot:                "dot",
	Bilin:              "bilin",
	Rank1:              "rank1",
	IAmax:              "iamax",
	Interpn:            "interpn",
	InterpnGrad:        "interpn_grad",
	DeBoor:             "de_boor",
	NDBoorEval:         "nd_boor_eval",
	Flip:               "flip",
	Low:                "low",
	InterpnWeights:     "interpn_weights",
	InterpnInterpolate: "interpn_interpolate",
	Norm1:              "norm_1",
	Norm2:              "norm_2",
	NormInf:            "norm_inf",
	Fill:               "fill",
	MV:                 "mv",
	MVDense:            "mv_dense",
	MTimes:             "mtimes",
	Project:            "project",
	Densify:            "densify",
	Trans:              "trans",
	ToMex:              "to_mex",
	FromMex:            "from_mex",
	FiniteDiff:         "finite_diff",
}

func (k Kind) String() string {
	if k < numKinds {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ParseKind resolves a catalog name as used in recipe files.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown auxiliary routine %q", name)
}
