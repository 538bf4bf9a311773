package document

// Merge combines two mappings into a new one without mutating either input.
// A key present on only one side is taken as-is. A key present on both sides
// with two nested mappings is merged recursively; any other collision is won
// by b. Result order is a's keys in a's order followed by b-only keys in b's
// order.
func Merge(a, b *Mapping) *Mapping {
	out := NewMapping()
	if a != nil {
		for _, k := range a.keys {
			av := a.values[k]
			bv, ok := b.Get(k)
			switch {
			case !ok:
				out.Set(k, av.clone())
			case av.IsMapping() && bv.IsMapping():
				out.Set(k, Nested(Merge(av.Mapping(), bv.Mapping())))
			default:
				out.Set(k, bv.clone())
			}
		}
	}
	if b != nil {
		for _, k := range b.keys {
			if a != nil && a.Has(k) {
				continue
			}
			out.Set(k, b.values[k].clone())
		}
	}
	return out
}
