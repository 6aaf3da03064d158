package auxiliary

import (
	"fmt"
	"strings"

	"cgen/internal/emit"
)

// Engine tracks which (kind, type parameters) pairs have been instantiated
// and appends each unique instantiation, preceded by its transitive
// dependencies, to the auxiliary-bodies section exactly once.
type Engine struct {
	out   *emit.Section
	table ShorthandTable
	added map[string]struct{}
}

// NewEngine returns an engine writing instantiated routine bodies to out
// and registering discovered symbols in table.
func NewEngine(out *emit.Section, table ShorthandTable) *Engine {
	return &Engine{
		out:   out,
		table: table,
		added: make(map[string]struct{}),
	}
}

// Request instantiates kind for the given type parameters, first ensuring
// every declared dependency. Passing no parameters selects the kind's
// default instantiation. Repeated requests for the same pair are no-ops.
func (e *Engine) Request(kind Kind, inst ...string) error {
	ent, ok := catalog[kind]
	if !ok {
		return fmt.Errorf("auxiliary catalog has no entry for %s", kind)
	}
	if len(inst) == 0 {
		inst = ent.defaultInst
	}
	if len(inst) != ent.arity && ent.normalize == nil {
		return fmt.Errorf("%s expects %d type parameters, got %d", kind, ent.arity, len(inst))
	}

	key := kind.String() + "<" + strings.Join(inst, ",") + ">"
	if _, done := e.added[key]; done {
		return nil
	}
	e.added[key] = struct{}{}

	for _, d := range ent.deps {
		if err := e.Request(d.kind, d.inst...); err != nil {
			return err
		}
	}

	body := inst
	if ent.normalize != nil {
		body = ent.normalize(inst)
	}
	text := Sanitize(ent.src, body, e.table)
	if ent.guard != "" {
		e.out.WriteString("#ifdef " + ent.guard + "\n")
		e.out.WriteString(text)
		e.out.WriteString("#endif\n\n")
	} else {
		e.out.WriteString(text)
	}
	return nil
}

// Requested reports whether the exact (kind, type parameters) pair has
// already been instantiated.
func (e *Engine) Requested(kind Kind, inst ...string) bool {
	if len(inst) == 0 {
		if ent, ok := catalog[kind]; ok {
			inst = ent.defaultInst
		}
	}
	key := kind.String() + "<" + strings.Join(inst, ",") + ">"
	_, done := e.added[key]
	return done
}
