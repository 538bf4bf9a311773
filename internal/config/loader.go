package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	pkgconfig "github.com/refinectl/refinectl/pkg/config"
	"github.com/refinectl/refinectl/pkg/document"
	"github.com/refinectl/refinectl/pkg/telemetry"
)

var (
	// ErrParse indicates malformed document text; the parser's own message
	// is carried verbatim.
	ErrParse = errors.New("configuration parse failure")
	// ErrStructure indicates the document's top level is not a mapping.
	ErrStructure = errors.New("top-level document is not a mapping")
	// ErrEmptyConfig indicates the loaded document has no entries.
	ErrEmptyConfig = errors.New("configuration has no entries")
)

// LoadOptions configures Load. The zero value probes "config.toml" along the
// default search path, takes the first match only, and treats an empty
// document as an error.
type LoadOptions struct {
	BaseName     string
	ExplicitPath string
	Locations    []string
	// Merge folds every existing candidate left to right instead of taking
	// the first match; later files win key conflicts.
	Merge bool
	// AllowEmpty suppresses ErrEmptyConfig.
	AllowEmpty bool
	// Logger receives discovery and load diagnostics when set.
	Logger telemetry.StructuredLogger
}

// Load locates, parses, and optionally merges configuration files, returning
// the resulting Configuration.
func Load(opts LoadOptions) (*pkgconfig.Configuration, error) {
	locate := LocateOptions{
		BaseName:     opts.BaseName,
		ExplicitPath: opts.ExplicitPath,
		Locations:    opts.Locations,
	}

	var paths []string
	if opts.Merge {
		found, err := LocateAll(locate)
		if err != nil {
			return nil, err
		}
		paths = found
	} else {
		found, err := Locate(locate)
		if err != nil {
			return nil, err
		}
		paths = []string{found}
	}
	telemetry.Emit(opts.Logger, telemetry.Entry{
		Category: telemetry.CategoryDiscovery,
		Message:  "configuration files located",
		Metadata: map[string]string{"paths": strings.Join(paths, ", ")},
	})

	root := document.NewMapping()
	for _, path := range paths {
		doc, err := ParseFile(path)
		if err != nil {
			return nil, err
		}
		root = document.Merge(root, doc)
	}

	if root.Len() == 0 && !opts.AllowEmpty {
		return nil, fmt.Errorf("%w: %s", ErrEmptyConfig, strings.Join(paths, ", "))
	}
	telemetry.Emit(opts.Logger, telemetry.Entry{
		Category: telemetry.CategoryLoad,
		Message:  "configuration loaded",
		Metadata: map[string]string{
			"layers":  strconv.Itoa(len(paths)),
			"entries": strconv.Itoa(root.Len()),
		},
	})

	return pkgconfig.New(root)
}

// ParseFile reads and parses a single document, choosing the dialect by file
// extension. TOML is the native dialect; .json, .yaml and .yml go through
// the YAML parser, of which JSON is a subset.
func ParseFile(path string) (*document.Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return parseYAML(path, data)
	default:
		return parseTOML(path, string(data))
	}
}

func parseTOML(path, data string) (*document.Mapping, error) {
	raw := map[string]any{}
	md, err := toml.Decode(data, &raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, path, err)
	}
	return tomlMapping(raw, keyOrder(md)), nil
}

// keyOrder rebuilds per-section key order from the decoder metadata, since
// the decoded map itself is unordered. Sections are keyed by their path
// segments joined with NUL so dotted key names cannot collide.
func keyOrder(md toml.MetaData) map[string][]string {
	order := map[string][]string{}
	seen := map[string]bool{}
	for _, key := range md.Keys() {
		full := strings.Join(key, "\x00")
		if seen[full] {
			continue
		}
		seen[full] = true
		parent := strings.Join(key[:len(key)-1], "\x00")
		order[parent] = append(order[parent], key[len(key)-1])
	}
	return order
}

func tomlMapping(raw map[string]any, order map[string][]string) *document.Mapping {
	return tomlSection(raw, nil, order)
}

func tomlSection(raw map[string]any, path []string, order map[string][]string) *document.Mapping {
	m := document.NewMapping()
	placed := map[string]bool{}
	keys := make([]string, 0, len(raw))
	for _, k := range order[strings.Join(path, "\x00")] {
		if _, ok := raw[k]; ok && !placed[k] {
			keys = append(keys, k)
			placed[k] = true
		}
	}
	// Keys the metadata does not cover keep a deterministic sorted order.
	var rest []string
	for k := range raw {
		if !placed[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	keys = append(keys, rest...)

	for _, k := range keys {
		m.Set(k, tomlValue(raw[k], append(path, k), order))
	}
	return m
}

func tomlValue(raw any, path []string, order map[string][]string) document.Value {
	switch v := raw.(type) {
	case map[string]any:
		return document.Nested(tomlSection(v, path, order))
	case []map[string]any:
		items := make([]document.Value, len(v))
		for i, elem := range v {
			items[i] = document.Nested(tomlSection(elem, path, order))
		}
		return document.Array(items...)
	case []any:
		items := make([]document.Value, len(v))
		for i, elem := range v {
			items[i] = tomlValue(elem, path, order)
		}
		return document.Array(items...)
	case bool:
		return document.Bool(v)
	case int64:
		return document.Int(v)
	case float64:
		return document.Float(v)
	case string:
		return document.String(v)
	case time.Time:
		return document.String(v.Format(time.RFC3339))
	case nil:
		return document.Null()
	default:
		return document.String(fmt.Sprint(v))
	}
}

func parseYAML(path string, data []byte) (*document.Mapping, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, path, err)
	}
	if node.Kind == 0 || len(node.Content) == 0 {
		return document.NewMapping(), nil
	}
	root := node.Content[0]
	if root.Kind != yaml.MappingNode {
		if root.Tag == "!!null" {
			return document.NewMapping(), nil
		}
		return nil, fmt.Errorf("%w: %s", ErrStructure, path)
	}
	return yamlMapping(root)
}

// yamlMapping converts a mapping node, whose Content pairs preserve member
// order for both YAML and JSON input.
func yamlMapping(n *yaml.Node) (*document.Mapping, error) {
	m := document.NewMapping()
	for i := 0; i+1 < len(n.Content); i += 2 {
		v, err := yamlValue(n.Content[i+1])
		if err != nil {
			return nil, err
		}
		m.Set(n.Content[i].Value, v)
	}
	return m, nil
}

func yamlValue(n *yaml.Node) (document.Value, error) {
	switch n.Kind {
	case yaml.MappingNode:
		m, err := yamlMapping(n)
		if err != nil {
			return document.Null(), err
		}
		return document.Nested(m), nil
	case yaml.SequenceNode:
		items := make([]document.Value, len(n.Content))
		for i, elem := range n.Content {
			v, err := yamlValue(elem)
			if err != nil {
				return document.Null(), err
			}
			items[i] = v
		}
		return document.Array(items...), nil
	case yaml.AliasNode:
		return yamlValue(n.Alias)
	case yaml.ScalarNode:
		return yamlScalar(n)
	default:
		return document.Null(), nil
	}
}

func yamlScalar(n *yaml.Node) (document.Value, error) {
	switch n.Tag {
	case "!!null":
		return document.Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return document.Null(), fmt.Errorf("%w: %v", ErrParse, err)
		}
		return document.Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return document.Null(), fmt.Errorf("%w: %v", ErrParse, err)
		}
		return document.Int(i), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return document.Null(), fmt.Errorf("%w: %v", ErrParse, err)
		}
		return document.Float(f), nil
	default:
		return document.String(n.Value), nil
	}
}
