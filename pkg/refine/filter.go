package refine

import "github.com/refinectl/refinectl/pkg/document"

// Filter returns a new flat mapping without the entries whose value is a
// false boolean or null. Every other value survives unconditionally, empty
// strings and empty arrays included. The input is not mutated and the
// operation is idempotent.
func Filter(flat *document.Mapping) *document.Mapping {
	out := document.NewMapping()
	if flat == nil {
		return out
	}
	for _, k := range flat.Keys() {
		v, _ := flat.Get(k)
		if dropWhenFiltered(v) {
			continue
		}
		out.Set(k, v)
	}
	return out
}

func dropWhenFiltered(v document.Value) bool {
	switch v.Kind() {
	case document.KindNull:
		return true
	case document.KindBool:
		return !v.Bool()
	default:
		return false
	}
}
