// Package registry tracks the namespacing bookkeeping of one generation
// session: shorthand symbols mapped to namespaced macro names, requested
// header includes, and forward-declared external symbols.
package registry

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrUndefined reports resolution of a shorthand that was never defined.
	ErrUndefined = errors.New("undefined symbol")
	// ErrDuplicate reports a strict definition of an already-defined shorthand.
	ErrDuplicate = errors.New("duplicate symbol")
)

// Prefix is the short namespace prefix applied to internal symbols in
// generated code. The generated macro block re-targets it at compile time.
const Prefix = "casadi_"

// Include is one requested header inclusion.
type Include struct {
	Name     string
	Relative bool   // quoted include instead of angle brackets
	Guard    string // optional conditional-compilation guard
}

// Registry holds the session's symbol bookkeeping. It stores only short
// names; the namespace prefix strategy is chosen at emission time by the
// assembler.
type Registry struct {
	shorthands map[string]struct{}
	includes   []Include
	included   map[string]struct{}
	externals  map[string]struct{}
}

func New() *Registry {
	return &Registry{
		shorthands: make(map[string]struct{}),
		included:   make(map[string]struct{}),
		externals:  make(map[string]struct{}),
	}
}

// Shorthand defines name if needed and returns its namespaced spelling.
// Defining the same short name again is a no-op.
func (r *Registry) Shorthand(name string) string {
	r.shorthands[name] = struct{}{}
	return Prefix + name
}

// Define registers name, failing with ErrDuplicate if it already exists.
func (r *Registry) Define(name string) (string, error) {
	if _, ok := r.shorthands[name]; ok {
		return "", fmt.Errorf("%w: macro %q", ErrDuplicate, name)
	}
	r.shorthands[name] = struct{}{}
	return Prefix + name, nil
}

// Resolve returns the namespaced spelling of an already-defined shorthand.
func (r *Registry) Resolve(name string) (string, error) {
	if _, ok := r.shorthands[name]; !ok {
		return "", fmt.Errorf("%w: no such macro %q", ErrUndefined, name)
	}
	return Prefix + name, nil
}

// Shorthands returns all defined short names in sorted order.
func (r *Registry) Shorthands() []string {
	out := make([]string, 0, len(r.shorthands))
	for name := range r.shorthands {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// AddInclude requests a header inclusion. It reports whether the header
// was newly added; repeated requests are dropped regardless of the
// relative-path or guard arguments.
func (r *Registry) AddInclude(name string, relative bool, guard string) bool {
	if _, ok := r.included[name]; ok {
		return false
	}
	r.included[name] = struct{}{}
	r.includes = append(r.includes, Include{Name: name, Relative: relative, Guard: guard})
	return true
}

// Includes returns the requested headers in first-request order.
func (r *Registry) Includes() []Include { return r.includes }

// AddExternal records a forward declaration line for an external symbol.
// Lines are deduplicated by exact text equality.
func (r *Registry) AddExternal(decl string) {
	r.externals[decl] = struct{}{}
}

// Externals returns the recorded declarations in sorted order.
func (r *Registry) Externals() []string {
	out := make([]string, 0, len(r.externals))
	for decl := range r.externals {
		out = append(out, decl)
	}
	sort.Strings(out)
	return out
}
