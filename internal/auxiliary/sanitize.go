package auxiliary

import (
	"fmt"
	"strings"

	"cgen/internal/registry"
)

// ShorthandTable registers short symbol names discovered while sanitizing
// templates, so the assembler can later define the namespacing macros.
type ShorthandTable interface {
	Shorthand(name string) string
}

type replacement struct {
	key, sub string
}

// Sanitize rewrites a generic routine source into a concrete routine body.
//
// Scaffolding lines that exist only to keep the generic template
// independently compilable are dropped: template declarations, #define and
// #undef lines, and a line consisting of the inline keyword. A
// `// SYMBOL "name"` directive registers name as a shorthand and, when the
// instantiation differs from the default scalar type, renames it with an
// underscore-joined suffix of all type parameters. A
// `// C-REPLACE "key" "sub"` directive adds a textual replacement applied
// to the remaining lines. All other line comments are stripped, trailing
// spaces removed and blank lines dropped. Type placeholders T1, T2, ... are
// substituted with the concrete type names; replacements are applied in
// reverse declaration order. The result always ends with one blank line to
// separate consecutive instantiations.
func Sanitize(src string, inst []string, table ShorthandTable) string {
	// Suffix used when any parameter deviates from the default scalar type.
	suffix := ""
	for _, s := range inst {
		if s != DefaultType {
			var b strings.Builder
			for _, p := range inst {
				b.WriteString("_")
				b.WriteString(p)
			}
			suffix = b.String()
			break
		}
	}

	reps := make([]replacement, 0, len(inst)+4)
	for i, s := range inst {
		reps = append(reps, replacement{fmt.Sprintf("T%d", i+1), s})
	}

	var out strings.Builder
	for _, line := range strings.Split(src, "\n") {
		switch {
		case strings.HasPrefix(line, "template"),
			strings.HasPrefix(line, "#define"),
			strings.HasPrefix(line, "#undef"),
			line == "inline":
			continue
		case strings.HasPrefix(line, "// SYMBOL"):
			sym, _ := quoted(line, 0)
			// Templates spell the namespaced form; the registry
			// stores only the short name.
			if table != nil {
				table.Shorthand(strings.TrimPrefix(sym, registry.Prefix) + suffix)
			}
			if suffix != "" {
				reps = append(reps, replacement{sym, sym + suffix})
			}
			continue
		case strings.HasPrefix(line, "// C-REPLACE"):
			key, next := quoted(line, 0)
			sub, _ := quoted(line, next)
			reps = append(reps, replacement{key, sub})
			continue
		}

		if n := strings.Index(line, "//"); n >= 0 {
			line = line[:n]
		}
		line = strings.TrimRight(line, " ")
		if line == "" {
			continue
		}
		for i := len(reps) - 1; i >= 0; i-- {
			line = strings.ReplaceAll(line, reps[i].key, reps[i].sub)
		}
		out.WriteString(line)
		out.WriteByte('\n')
	}
	out.WriteByte('\n')
	return out.String()
}

// quoted extracts the next double-quoted string starting at or after off,
// returning the string and the offset just past its closing quote.
func quoted(line string, off int) (string, int) {
	n1 := strings.IndexByte(line[off:], '"')
	if n1 < 0 {
		return "", len(line)
	}
	n1 += off + 1
	n2 := strings.IndexByte(line[n1:], '"')
	if n2 < 0 {
		return line[n1:], len(line)
	}
	return line[n1 : n1+n2], n1 + n2 + 1
}
