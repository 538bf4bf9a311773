// Package refine turns a nested configuration document into a flat option
// set and renders that set as command-line or query-string arguments.
//
// Refinement walks a key path through nested mappings that represent
// configuration layers (global defaults, a named profile, a sub-profile) and
// accumulates every non-nested entry seen along the way. Deeper layers win
// key collisions, which is what makes the outer layers behave as defaults.
package refine

import "github.com/refinectl/refinectl/pkg/document"

// Refine descends root along path and returns the accumulated flat mapping.
//
// At every visited level, including root itself, each entry whose value is
// not a nested mapping is written into the accumulator; a key already present
// keeps its original position but takes the deeper value. A path segment that
// is absent, or that names a non-mapping entry, ends the descent: the partial
// accumulator is the result, never an error. An empty path scans root only.
//
// The result contains no mapping-typed values by construction.
func Refine(root *document.Mapping, path []string) *document.Mapping {
	acc := document.NewMapping()
	node := root
	for _, key := range path {
		scanScalars(node, acc)
		child, ok := node.Get(key)
		if !ok || !child.IsMapping() {
			return acc
		}
		node = child.Mapping()
	}
	scanScalars(node, acc)
	return acc
}

func scanScalars(node *document.Mapping, acc *document.Mapping) {
	if node == nil {
		return
	}
	for _, k := range node.Keys() {
		v, _ := node.Get(k)
		if v.IsMapping() {
			continue
		}
		acc.Set(k, v)
	}
}
