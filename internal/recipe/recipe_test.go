package recipe

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validRecipe = `
[output]
name = "rocket"
prefix = "gen/"

[options]
with_header = true
indent = 2

[[auxiliary]]
kind = "norm_2"

[[auxiliary]]
kind = "fill"
params = ["int"]

[[constants.int]]
name = "pattern0"
values = [2, 1, 0, 2, 0, 1]

[[constants.float]]
name = "weights"
values = [1.0, 2.5]

[[include]]
name = "mex.h"
guard = "MATLAB_MEX_FILE"
`

func TestParseValidRecipe(t *testing.T) {
	r, err := Parse([]byte(validRecipe))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if r.Output.Name != "rocket" || r.Output.Prefix != "gen/" {
		t.Fatalf("output = %+v", r.Output)
	}
	if len(r.Auxiliaries) != 2 || r.Auxiliaries[1].Params[0] != "int" {
		t.Fatalf("auxiliaries = %+v", r.Auxiliaries)
	}
	if len(r.Constants.Int) != 1 || r.Constants.Int[0].Name != "pattern0" {
		t.Fatalf("int constants = %+v", r.Constants.Int)
	}
	if len(r.Includes) != 1 || r.Includes[0].Guard != "MATLAB_MEX_FILE" {
		t.Fatalf("includes = %+v", r.Includes)
	}
	if r.Options["with_header"] != true {
		t.Fatalf("options = %+v", r.Options)
	}
	if len(r.Source) == 0 {
		t.Fatal("raw source not retained")
	}
}

func TestParseMissingOutputName(t *testing.T) {
	if _, err := Parse([]byte("[options]\nverbose = true\n")); err == nil {
		t.Fatal("missing [output] accepted")
	}
	if _, err := Parse([]byte("[output]\nprefix = \"gen/\"\n")); err == nil {
		t.Fatal("missing [output].name accepted")
	}
}

func TestParseUnknownAuxKind(t *testing.T) {
	src := "[output]\nname = \"f\"\n[[auxiliary]]\nkind = \"frobnicate\"\n"
	if _, err := Parse([]byte(src)); err == nil {
		t.Fatal("unknown auxiliary kind accepted")
	}
}

func TestParseDuplicateConstantName(t *testing.T) {
	src := `
[output]
name = "f"

[[constants.int]]
name = "c"
values = [1]

[[constants.float]]
name = "c"
values = [1.0]
`
	_, err := Parse([]byte(src))
	if err == nil || !strings.Contains(err.Error(), "duplicate name") {
		t.Fatalf("Parse = %v, want duplicate name error", err)
	}
}

func TestLoadFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rocket.toml")
	if err := os.WriteFile(path, []byte(validRecipe), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	r, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if r.Path != path {
		t.Fatalf("Path = %q", r.Path)
	}
}

func TestIntValues(t *testing.T) {
	c := IntConstant{Name: "c", Values: []int64{1, -2, 3}}
	got, err := c.IntValues()
	if err != nil {
		t.Fatalf("IntValues: %v", err)
	}
	if len(got) != 3 || got[1] != -2 {
		t.Fatalf("IntValues = %v", got)
	}
}
