package auxiliary

import "sort"

// DefaultType is the engine's default scalar type name. Instantiating a
// template with any other type parameter produces suffixed symbol names so
// distinct instantiations cannot collide.
const DefaultType = "casadi_real"

// dep is a statically declared dependency of a catalog entry. A nil inst
// means the dependency's own default instantiation.
type dep struct {
	kind Kind
	inst []string
}

// entry describes one catalog routine: its generic template source, the
// number of type placeholders the template declares, its default
// instantiation, its dependencies, an optional conditional-compilation
// guard around the emitted body, and an optional normalization of the
// instantiation list applied to the body only (the idempotency key keeps
// the caller's original list).
type entry struct {
	src         string
	arity       int
	defaultInst []string
	deps        []dep
	guard       string
	normalize   func([]string) []string
}

var scalarInst = []string{DefaultType}

var catalog = map[Kind]entry{
	Copy:  {src: copySrc, arity: 1, defaultInst: scalarInst},
	Swap:  {src: swapSrc, arity: 1, defaultInst: scalarInst},
	Scal:  {src: scalSrc, arity: 1, defaultInst: scalarInst},
	Axpy:  {src: axpySrc, arity: 1, defaultInst: scalarInst},
	Dot:   {src: dotSrc, arity: 1, defaultInst: scalarInst},
	Bilin: {src: bilinSrc, arity: 1, defaultInst: scalarInst},
	Rank1: {src: rank1Src, arity: 1, defaultInst: scalarInst},
	IAmax: {src: iamaxSrc, arity: 1, defaultInst: scalarInst},
	Interpn: {src: interpnSrc, arity: 1, defaultInst: scalarInst, deps: []dep{
		{kind: InterpnWeights},
		{kind: InterpnInterpolate},
		{kind: Flip, inst: []string{}},
		{kind: Fill},
		{kind: Fill, inst: []string{"int"}},
	}},
	InterpnGrad: {src: interpnGradSrc, arity: 1, defaultInst: scalarInst, deps: []dep{
		{kind: Interpn},
	}},
	DeBoor: {src: deBoorSrc, arity: 1, defaultInst: scalarInst},
	NDBoorEval: {src: ndBoorEvalSrc, arity: 1, defaultInst: scalarInst, deps: []dep{
		{kind: DeBoor},
		{kind: Fill},
		{kind: Fill, inst: []string{"int"}},
		{kind: Low},
	}},
	Flip: {src: flipSrc, arity: 0, defaultInst: []string{}},
	Low:  {src: lowSrc, arity: 1, defaultInst: scalarInst},
	InterpnWeights: {src: interpnWeightsSrc, arity: 1, defaultInst: scalarInst, deps: []dep{
		{kind: Low},
	}},
	InterpnInterpolate: {src: interpnInterpolateSrc, arity: 1, defaultInst: scalarInst},
	Norm1:              {src: norm1Src, arity: 1, defaultInst: scalarInst},
	Norm2:              {src: norm2Src, arity: 1, defaultInst: scalarInst},
	NormInf:            {src: normInfSrc, arity: 1, defaultInst: scalarInst},
	Fill:               {src: fillSrc, arity: 1, defaultInst: scalarInst},
	MV:                 {src: mvSrc, arity: 1, defaultInst: scalarInst},
	MVDense:            {src: mvDenseSrc, arity: 1, defaultInst: scalarInst},
	MTimes:             {src: mtimesSrc, arity: 1, defaultInst: scalarInst},
	Project:            {src: projectSrc, arity: 1, defaultInst: scalarInst},
	Densify: {src: densifySrc, arity: 2, defaultInst: scalarInst, deps: []dep{
		{kind: Fill},
	}, normalize: func(inst []string) []string {
		// A single parameter instantiates input and output alike.
		if len(inst) == 1 {
			return []string{inst[0], inst[0]}
		}
		return inst
	}},
	Trans:      {src: transSrc, arity: 1, defaultInst: scalarInst},
	ToMex:      {src: toMexSrc, arity: 1, defaultInst: scalarInst, guard: "MATLAB_MEX_FILE"},
	FromMex:    {src: fromMexSrc, arity: 1, defaultInst: scalarInst, guard: "MATLAB_MEX_FILE", deps: []dep{{kind: Fill}}},
	FiniteDiff: {src: finiteDiffSrc, arity: 1, defaultInst: scalarInst},
}

// Info is a read-only description of one catalog entry, for listings.
type Info struct {
	Kind   Kind
	Name   string
	Params int
	Deps   []string
	Guard  string
}

// Catalog returns descriptions of every routine kind in name order.
func Catalog() []Info {
	out := make([]Info, 0, len(catalog))
	for k, ent := range catalog {
		info := Info{Kind: k, Name: k.String(), Params: ent.arity, Guard: ent.guard}
		for _, d := range ent.deps {
			info.Deps = append(info.Deps, d.kind.String())
		}
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
