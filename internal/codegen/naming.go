package codegen

import (
	"fmt"
	"strings"
)

// CheckName reports whether name is usable as a generated-code namespace
// prefix: a nonempty C identifier that does not begin with a digit.
func CheckName(name string) bool {
	if name == "" {
		return false
	}
	for i, c := range name {
		switch {
		case c == '_',
			c >= 'a' && c <= 'z',
			c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// splitName divides an output name into base and suffix at the last dot.
// Without a dot, the suffix follows from the linkage target.
func splitName(name string, cpp bool) (base, suffix string, err error) {
	if dot := strings.LastIndexByte(name, '.'); dot >= 0 {
		base, suffix = name[:dot], name[dot:]
	} else {
		base = name
		if cpp {
			suffix = ".cpp"
		} else {
			suffix = ".c"
		}
	}
	if !CheckName(base) {
		return "", "", fmt.Errorf("%w: %q is not a valid base name", ErrInvalidName, base)
	}
	return base, suffix, nil
}
