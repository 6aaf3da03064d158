package codegen

import (
	"errors"
	"testing"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	if !opts.Verbose || opts.Real != "double" || !opts.WithExport || opts.Indent != 2 {
		t.Fatalf("unexpected defaults: %+v", opts)
	}
	if opts.Mex || opts.CPP || opts.Main || opts.CodegenScalars || opts.WithHeader || opts.WithMem {
		t.Fatalf("boolean defaults should be off: %+v", opts)
	}
}

func TestParseOptions(t *testing.T) {
	opts, err := ParseOptions(map[string]any{
		"mex":         true,
		"casadi_real": "float",
		"indent":      int64(4),
		"with_header": true,
	})
	if err != nil {
		t.Fatalf("ParseOptions: %v", err)
	}
	if !opts.Mex || opts.Real != "float" || opts.Indent != 4 || !opts.WithHeader {
		t.Fatalf("options not applied: %+v", opts)
	}
	// Untouched keys keep their defaults.
	if !opts.Verbose || !opts.WithExport {
		t.Fatalf("defaults clobbered: %+v", opts)
	}
}

func TestParseOptionsUnknownKey(t *testing.T) {
	if _, err := ParseOptions(map[string]any{"fasttrack": true}); !errors.Is(err, ErrInvalidOption) {
		t.Fatalf("unknown key = %v, want ErrInvalidOption", err)
	}
}

func TestParseOptionsWrongType(t *testing.T) {
	if _, err := ParseOptions(map[string]any{"verbose": "yes"}); !errors.Is(err, ErrInvalidOption) {
		t.Fatalf("wrong type = %v, want ErrInvalidOption", err)
	}
	if _, err := ParseOptions(map[string]any{"indent": 2.5}); !errors.Is(err, ErrInvalidOption) {
		t.Fatalf("float indent = %v, want ErrInvalidOption", err)
	}
}

func TestParseOptionsNegativeIndent(t *testing.T) {
	if _, err := ParseOptions(map[string]any{"indent": -1}); !errors.Is(err, ErrInvalidOption) {
		t.Fatalf("negative indent = %v, want ErrInvalidOption", err)
	}
}
