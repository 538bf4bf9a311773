// Package document models a parsed configuration document as a closed set
// of value shapes over insertion-ordered mappings.
package document

import "strconv"

// Kind discriminates the closed set of shapes a document value can take.
type Kind int

const (
	// KindNull marks an absent or explicit-null value.
	KindNull Kind = iota
	// KindBool marks a boolean scalar.
	KindBool
	// KindNumber marks an integer or floating-point scalar.
	KindNumber
	// KindString marks a text scalar.
	KindString
	// KindArray marks an ordered, possibly heterogeneous sequence.
	KindArray
	// KindMapping marks a nested key/value section.
	KindMapping
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindMapping:
		return "mapping"
	default:
		return "unknown"
	}
}

// Value is one node of a configuration document. The zero Value is null.
type Value struct {
	kind  Kind
	b     bool
	i     int64
	f     float64
	isInt bool
	s     string
	items []Value
	m     *Mapping
}

// Null returns the null value.
func Null() Value {
	return Value{kind: KindNull}
}

// Bool wraps a boolean scalar.
func Bool(v bool) Value {
	return Value{kind: KindBool, b: v}
}

// Int wraps an integer scalar.
func Int(v int64) Value {
	return Value{kind: KindNumber, i: v, isInt: true}
}

// Float wraps a floating-point scalar.
func Float(v float64) Value {
	return Value{kind: KindNumber, f: v}
}

// String wraps a text scalar.
func String(v string) Value {
	return Value{kind: KindString, s: v}
}

// Array wraps an ordered sequence of values.
func Array(items ...Value) Value {
	return Value{kind: KindArray, items: items}
}

// Nested wraps a child mapping. A nil mapping becomes an empty one.
func Nested(m *Mapping) Value {
	if m == nil {
		m = NewMapping()
	}
	return Value{kind: KindMapping, m: m}
}

// Kind reports the value's shape.
func (v Value) Kind() Kind { return v.kind }

// IsMapping reports whether the value is a nested section.
func (v Value) IsMapping() bool { return v.kind == KindMapping }

// Bool returns the boolean payload, or false for any other kind.
func (v Value) Bool() bool { return v.kind == KindBool && v.b }

// IsInt reports whether a number value carries an integer payload.
func (v Value) IsInt() bool { return v.kind == KindNumber && v.isInt }

// Int returns the integer payload, truncating a float payload.
func (v Value) Int() int64 {
	if v.kind != KindNumber {
		return 0
	}
	if v.isInt {
		return v.i
	}
	return int64(v.f)
}

// Float returns the floating-point payload, widening an integer payload.
func (v Value) Float() float64 {
	if v.kind != KindNumber {
		return 0
	}
	if v.isInt {
		return float64(v.i)
	}
	return v.f
}

// Str returns the string payload, or "" for any other kind.
func (v Value) Str() string {
	if v.kind != KindString {
		return ""
	}
	return v.s
}

// Items returns the array payload. Callers must not mutate the slice.
func (v Value) Items() []Value {
	if v.kind != KindArray {
		return nil
	}
	return v.items
}

// Mapping returns the nested section, or nil for any other kind.
func (v Value) Mapping() *Mapping {
	if v.kind != KindMapping {
		return nil
	}
	return v.m
}

// NumberText renders a number payload without a trailing fraction for
// integers.
func (v Value) NumberText() string {
	if v.kind != KindNumber {
		return ""
	}
	if v.isInt {
		return strconv.FormatInt(v.i, 10)
	}
	return strconv.FormatFloat(v.f, 'g', -1, 64)
}

// Equal reports deep equality between two values.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindNumber:
		if v.isInt != o.isInt {
			return false
		}
		if v.isInt {
			return v.i == o.i
		}
		return v.f == o.f
	case KindString:
		return v.s == o.s
	case KindArray:
		if len(v.items) != len(o.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(o.items[i]) {
				return false
			}
		}
		return true
	case KindMapping:
		return v.m.Equal(o.m)
	default:
		return false
	}
}

// clone returns a deep copy so callers can mutate nested mappings freely.
func (v Value) clone() Value {
	switch v.kind {
	case KindArray:
		items := make([]Value, len(v.items))
		for i, item := range v.items {
			items[i] = item.clone()
		}
		return Value{kind: KindArray, items: items}
	case KindMapping:
		return Value{kind: KindMapping, m: v.m.Clone()}
	default:
		return v
	}
}
