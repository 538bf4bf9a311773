// Package config holds a loaded configuration document and exposes the
// refinement operations over it.
package config

import (
	"errors"

	"github.com/refinectl/refinectl/pkg/document"
	"github.com/refinectl/refinectl/pkg/refine"
)

// ErrNilRoot is returned when a Configuration is constructed without a root
// mapping.
var ErrNilRoot = errors.New("configuration root mapping is required")

// Configuration owns exactly one root mapping for its lifetime. All
// operations are synchronous and perform no I/O. The root is the single
// mutable resource: Merge replaces it in place, so concurrent use requires
// caller-supplied synchronization. The expected lifetime is one CLI
// invocation, not a shared server resource.
type Configuration struct {
	root *document.Mapping
}

// New wraps a parsed document root. The caller keeps no obligation to the
// mapping afterwards; the Configuration treats it as its own.
func New(root *document.Mapping) (*Configuration, error) {
	if root == nil {
		return nil, ErrNilRoot
	}
	return &Configuration{root: root}, nil
}

// Root exposes the held document for direct inspection.
func (c *Configuration) Root() *document.Mapping {
	return c.root
}

// Refine descends the root along path and returns the flat mapping,
// optionally filtered of false-boolean and null entries.
func (c *Configuration) Refine(path []string, filter bool) *document.Mapping {
	flat := refine.Refine(c.root, path)
	if filter {
		flat = refine.Filter(flat)
	}
	return flat
}

// RefineStrings refines along path and renders the result under the given
// format options.
func (c *Configuration) RefineStrings(path []string, opts refine.FormatOptions) []string {
	return refine.Format(refine.Refine(c.root, path), opts)
}

// Merge folds b onto the root, replacing it. Keys present on both sides
// recurse when both values are mappings; otherwise b wins.
func (c *Configuration) Merge(b *document.Mapping) {
	c.root = document.Merge(c.root, b)
}
