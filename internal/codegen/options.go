package codegen

import (
	"fmt"

	"fortio.org/safecast"
)

// Options configures one generation session.
type Options struct {
	// Verbose adds human-readable comment annotations to the output.
	Verbose bool
	// Mex enables the host-interop dispatch wrapper and the guarded
	// marshalling routines.
	Mex bool
	// CPP targets C++ linkage instead of C linkage, affecting the cast
	// macro spelling and the file suffix.
	CPP bool
	// Main enables the command-line dispatch wrapper.
	Main bool
	// Real names the floating scalar type of generated code.
	Real string
	// CodegenScalars represents single-element work buffers as
	// dereferenced scalars rather than one-element arrays.
	CodegenScalars bool
	// WithHeader also produces a declarations file.
	WithHeader bool
	// WithMem includes the memory-management interop header.
	WithMem bool
	// WithExport wraps public symbols with a visibility macro.
	WithExport bool
	// Indent is the number of spaces per indentation level.
	Indent int
}

// DefaultOptions returns the option defaults.
func DefaultOptions() Options {
	return Options{
		Verbose:    true,
		Real:       "double",
		WithExport: true,
		Indent:     2,
	}
}

// ParseOptions applies a key-value option map on top of the defaults.
// Unknown option names fail with ErrInvalidOption, as do values of the
// wrong type or a negative indent.
func ParseOptions(opts map[string]any) (Options, error) {
	out := DefaultOptions()
	for key, value := range opts {
		switch key {
		case "verbose":
			if err := boolOpt(key, value, &out.Verbose); err != nil {
				return out, err
			}
		case "mex":
			if err := boolOpt(key, value, &out.Mex); err != nil {
				return out, err
			}
		case "cpp":
			if err := boolOpt(key, value, &out.CPP); err != nil {
				return out, err
			}
		case "main":
			if err := boolOpt(key, value, &out.Main); err != nil {
				return out, err
			}
		case "casadi_real":
			s, ok := value.(string)
			if !ok {
				return out, fmt.Errorf("%w: %s expects a string", ErrInvalidOption, key)
			}
			out.Real = s
		case "codegen_scalars":
			if err := boolOpt(key, value, &out.CodegenScalars); err != nil {
				return out, err
			}
		case "with_header":
			if err := boolOpt(key, value, &out.WithHeader); err != nil {
				return out, err
			}
		case "with_mem":
			if err := boolOpt(key, value, &out.WithMem); err != nil {
				return out, err
			}
		case "with_export":
			if err := boolOpt(key, value, &out.WithExport); err != nil {
				return out, err
			}
		case "indent":
			n, err := intOpt(key, value)
			if err != nil {
				return out, err
			}
			out.Indent = n
		default:
			return out, fmt.Errorf("%w: unrecognized option %q", ErrInvalidOption, key)
		}
	}
	if out.Indent < 0 {
		return out, fmt.Errorf("%w: indent must be non-negative", ErrInvalidOption)
	}
	return out, nil
}

func boolOpt(key string, value any, dst *bool) error {
	b, ok := value.(bool)
	if !ok {
		return fmt.Errorf("%w: %s expects a bool", ErrInvalidOption, key)
	}
	*dst = b
	return nil
}

func intOpt(key string, value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		n, err := safecast.Conv[int](v)
		if err != nil {
			return 0, fmt.Errorf("%w: %s out of range", ErrInvalidOption, key)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("%w: %s expects an integer", ErrInvalidOption, key)
	}
}
