// Package recipe loads TOML recipe files describing one generation
// target: the output name and prefix, engine options, auxiliary routine
// instantiations, named constant arrays and extra header includes. A
// recipe is enough to drive a standalone build of the numeric runtime
// library without a symbolic front end.
package recipe

import (
	"fmt"
	"os"
	"strings"

	"fortio.org/safecast"
	"github.com/BurntSushi/toml"

	"cgen/internal/auxiliary"
)

// Recipe is one parsed and validated recipe file.
type Recipe struct {
	Path   string // file the recipe was loaded from
	Source []byte // raw file contents, for digesting

	Output      Output         `toml:"output"`
	Options     map[string]any `toml:"options"`
	Auxiliaries []Auxiliary    `toml:"auxiliary"`
	Constants   Constants      `toml:"constants"`
	Includes    []Include      `toml:"include"`
}

// Output names the generation target.
type Output struct {
	Name   string `toml:"name"`
	Prefix string `toml:"prefix"`
}

// Auxiliary requests one auxiliary routine instantiation.
type Auxiliary struct {
	Kind   string   `toml:"kind"`
	Params []string `toml:"params"`
}

// Constants holds named constant arrays to intern into the pools.
type Constants struct {
	Int   []IntConstant   `toml:"int"`
	Float []FloatConstant `toml:"float"`
}

// IntConstant is one named integer array.
type IntConstant struct {
	Name   string  `toml:"name"`
	Values []int64 `toml:"values"`
}

// FloatConstant is one named floating array.
type FloatConstant struct {
	Name   string    `toml:"name"`
	Values []float64 `toml:"values"`
}

// Include requests one extra header inclusion.
type Include struct {
	Name     string `toml:"name"`
	Relative bool   `toml:"relative"`
	Guard    string `toml:"guard"`
}

// Load reads and validates a recipe file.
func Load(path string) (*Recipe, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	r, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	r.Path = path
	return r, nil
}

// Parse decodes and validates raw recipe TOML.
func Parse(raw []byte) (*Recipe, error) {
	var r Recipe
	meta, err := toml.Decode(string(raw), &r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	if !meta.IsDefined("output") {
		return nil, fmt.Errorf("missing [output]")
	}
	if !meta.IsDefined("output", "name") || strings.TrimSpace(r.Output.Name) == "" {
		return nil, fmt.Errorf("missing [output].name")
	}
	for i, a := range r.Auxiliaries {
		if _, err := auxiliary.ParseKind(a.Kind); err != nil {
			return nil, fmt.Errorf("[[auxiliary]] %d: %w", i, err)
		}
	}
	seen := make(map[string]struct{})
	for _, c := range r.Constants.Int {
		if err := checkConstName(seen, c.Name); err != nil {
			return nil, err
		}
	}
	for _, c := range r.Constants.Float {
		if err := checkConstName(seen, c.Name); err != nil {
			return nil, err
		}
	}
	for i, inc := range r.Includes {
		if strings.TrimSpace(inc.Name) == "" {
			return nil, fmt.Errorf("[[include]] %d: missing name", i)
		}
	}
	r.Source = raw
	return &r, nil
}

func checkConstName(seen map[string]struct{}, name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("[[constants]]: missing name")
	}
	if _, dup := seen[name]; dup {
		return fmt.Errorf("[[constants]]: duplicate name %q", name)
	}
	seen[name] = struct{}{}
	return nil
}

// IntValues converts a TOML integer array to the engine's index type.
func (c IntConstant) IntValues() ([]int, error) {
	out := make([]int, len(c.Values))
	for i, v := range c.Values {
		n, err := safecast.Conv[int](v)
		if err != nil {
			return nil, fmt.Errorf("constant %q: value %d: %w", c.Name, v, err)
		}
		out[i] = n
	}
	return out, nil
}
