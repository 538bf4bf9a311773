package refine

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/refinectl/refinectl/pkg/document"
)

// Mode selects one of the four output conventions for formatted entries.
// Adding a convention means adding a mode constant and its rule set here;
// callers switch on nothing else.
type Mode int

const (
	// ModeURIT1 emits "key=value" pairs and single-quotes string values
	// containing whitespace.
	ModeURIT1 Mode = iota
	// ModeURIT2 emits "key=value" pairs and never quotes.
	ModeURIT2
	// ModeUnixT1 emits "--key" style flags, negating false booleans as
	// "--no<key>".
	ModeUnixT1
	// ModeUnixT3 emits "--key" style flags, rendering false booleans as
	// "--/<key>".
	ModeUnixT3
)

var modeNames = map[Mode]string{
	ModeURIT1:  "uri-t1",
	ModeURIT2:  "uri-t2",
	ModeUnixT1: "unix-t1",
	ModeUnixT3: "unix-t3",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return "unknown"
}

// ErrUnknownMode is returned by ParseMode for an unrecognised mode name.
var ErrUnknownMode = errors.New("unknown format mode")

// ParseMode resolves a mode name such as "uri-t1" or "unix-t3".
func ParseMode(name string) (Mode, error) {
	for mode, n := range modeNames {
		if n == strings.ToLower(strings.TrimSpace(name)) {
			return mode, nil
		}
	}
	return ModeURIT1, fmt.Errorf("%w: %q", ErrUnknownMode, name)
}

// DefaultGlue joins array elements when FormatOptions.Glue is empty.
const DefaultGlue = ","

// FormatOptions configures Format. The zero value means mode uri-t1, glue
// "," and no filtering.
type FormatOptions struct {
	Mode   Mode
	Glue   string
	Filter bool
}

// Format renders a flat mapping as one string per entry, in the mapping's
// insertion order.
//
// When Filter is set, null entries are dropped in every mode and false
// booleans are dropped in every mode except unix-t3, where a false boolean
// always keeps its "--/<key>" form.
func Format(flat *document.Mapping, opts FormatOptions) []string {
	glue := opts.Glue
	if glue == "" {
		glue = DefaultGlue
	}
	if flat == nil {
		return nil
	}
	out := make([]string, 0, flat.Len())
	for _, k := range flat.Keys() {
		v, _ := flat.Get(k)
		if opts.Filter && dropsUnderFilter(opts.Mode, v) {
			continue
		}
		switch opts.Mode {
		case ModeURIT1, ModeURIT2:
			out = append(out, formatURI(k, v, glue, opts.Mode))
		case ModeUnixT1, ModeUnixT3:
			out = append(out, formatUnix(k, v, glue, opts.Mode))
		}
	}
	return out
}

// dropsUnderFilter reports whether a filtered entry is omitted from output.
// unix-t3 keeps false booleans: its "--/<key>" form is the negation itself.
func dropsUnderFilter(mode Mode, v document.Value) bool {
	if mode == ModeUnixT3 && v.Kind() == document.KindBool {
		return false
	}
	return dropWhenFiltered(v)
}

func formatURI(key string, v document.Value, glue string, mode Mode) string {
	if v.Kind() == document.KindString {
		s := v.Str()
		if mode == ModeURIT1 && strings.ContainsFunc(s, unicode.IsSpace) {
			return key + "='" + s + "'"
		}
		return key + "=" + s
	}
	return key + "=" + bareText(v, glue)
}

func formatUnix(key string, v document.Value, glue string, mode Mode) string {
	prefix := "--"
	if len(key) == 1 {
		prefix = "-"
	}
	switch v.Kind() {
	case document.KindBool:
		if v.Bool() {
			return prefix + key
		}
		// Negated single-character keys take the slash form in both unix
		// modes; "--no" only ever prefixes a full word.
		if len(key) == 1 {
			return "-/" + key
		}
		if mode == ModeUnixT3 {
			return "--/" + key
		}
		return "--no" + key
	case document.KindString:
		s := v.Str()
		if unixNeedsQuoting(s) {
			return prefix + key + "='" + s + "'"
		}
		return prefix + key + "=" + s
	default:
		return prefix + key + "=" + bareText(v, glue)
	}
}

// unixNeedsQuoting reports whether a string value must be single-quoted in
// the unix modes. Whitespace inside a balanced pair of backticks does not
// count: such spans are meant to reach the child process verbatim. An odd
// backtick count turns the whole value into a pass-through, with quoting
// left to the caller.
func unixNeedsQuoting(s string) bool {
	if strings.Count(s, "`")%2 != 0 {
		return false
	}
	inSpan := false
	for _, r := range s {
		switch {
		case r == '`':
			inSpan = !inSpan
		case !inSpan && unicode.IsSpace(r):
			return true
		}
	}
	return false
}

func bareText(v document.Value, glue string) string {
	switch v.Kind() {
	case document.KindNull:
		return ""
	case document.KindBool:
		if v.Bool() {
			return "True"
		}
		return "False"
	case document.KindNumber:
		return v.NumberText()
	case document.KindString:
		return v.Str()
	case document.KindArray:
		items := v.Items()
		parts := make([]string, len(items))
		for i, item := range items {
			parts[i] = bareText(item, glue)
		}
		return strings.Join(parts, glue)
	default:
		// Mappings never survive refinement; render nothing.
		return ""
	}
}
