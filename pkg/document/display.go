package document

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Display renders a document in a TOML-shaped form for human inspection:
// scalar entries as "key = value" lines, nested sections as bracketed
// headers with dotted paths. Iteration follows insertion order, which is why
// this does not go through a TOML encoder (encoders sort keys).
func Display(m *Mapping) string {
	var b strings.Builder
	writeSection(&b, m, nil)
	return b.String()
}

func writeSection(w io.Writer, m *Mapping, path []string) {
	if m == nil {
		return
	}
	var sections []string
	for _, k := range m.keys {
		v := m.values[k]
		if v.IsMapping() {
			sections = append(sections, k)
			continue
		}
		fmt.Fprintf(w, "%s = %s\n", k, displayValue(v))
	}
	for _, k := range sections {
		child := append(append([]string(nil), path...), k)
		fmt.Fprintf(w, "[%s]\n", strings.Join(child, "."))
		v, _ := m.Get(k)
		writeSection(w, v.Mapping(), child)
	}
}

func displayValue(v Value) string {
	switch v.Kind() {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.Bool())
	case KindNumber:
		return v.NumberText()
	case KindString:
		return strconv.Quote(v.Str())
	case KindArray:
		parts := make([]string, len(v.Items()))
		for i, item := range v.Items() {
			parts[i] = displayValue(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindMapping:
		return "{...}"
	default:
		return ""
	}
}
