package config_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/refinectl/refinectl/internal/config"
	"github.com/refinectl/refinectl/pkg/document"
	"github.com/refinectl/refinectl/pkg/refine"
)

func TestParseFileTOMLPreservesDocumentOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.toml")
	writeFile(t, path, `
zebra = "first"
alpha = "second"

[mongod]
fork = true
port = 65010

[mongod.replica]
votes = 1
`)

	doc, err := config.ParseFile(path)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if diff := cmp.Diff([]string{"zebra", "alpha", "mongod"}, doc.Keys()); diff != "" {
		t.Fatalf("root order mismatch (-want +got):\n%s", diff)
	}
	mongod, _ := doc.Get("mongod")
	if diff := cmp.Diff([]string{"fork", "port", "replica"}, mongod.Mapping().Keys()); diff != "" {
		t.Fatalf("section order mismatch (-want +got):\n%s", diff)
	}
	port, _ := mongod.Mapping().Get("port")
	if !port.IsInt() || port.Int() != 65010 {
		t.Fatalf("expected integer port 65010, got %v", port)
	}
}

func TestParseFileTOMLValueShapes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shapes.toml")
	writeFile(t, path, `
text = "plain"
flag = false
ratio = 0.5
sizes = [1, 2, 3]
`)

	doc, err := config.ParseFile(path)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	want := document.NewMapping()
	want.Set("text", document.String("plain"))
	want.Set("flag", document.Bool(false))
	want.Set("ratio", document.Float(0.5))
	want.Set("sizes", document.Array(document.Int(1), document.Int(2), document.Int(3)))
	if !doc.Equal(want) {
		t.Fatalf("unexpected document:\n%s", document.Display(doc))
	}
}

func TestParseFileJSONThroughYAMLPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.json")
	writeFile(t, path, `{"b": "first", "a": {"nested": true, "n": null}, "list": [1, 2.5, "x"]}`)

	doc, err := config.ParseFile(path)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if diff := cmp.Diff([]string{"b", "a", "list"}, doc.Keys()); diff != "" {
		t.Fatalf("member order mismatch (-want +got):\n%s", diff)
	}
	a, _ := doc.Get("a")
	n, _ := a.Mapping().Get("n")
	if n.Kind() != document.KindNull {
		t.Fatalf("expected null member, got %s", n.Kind())
	}
	list, _ := doc.Get("list")
	items := list.Items()
	if len(items) != 3 || !items[0].IsInt() || items[1].Kind() != document.KindNumber || items[2].Str() != "x" {
		t.Fatalf("unexpected array payload: %v", items)
	}
}

func TestParseFileYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.yaml")
	writeFile(t, path, `
mongod:
  fork: true
  port: 65010
`)

	doc, err := config.ParseFile(path)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	mongod, ok := doc.Get("mongod")
	if !ok || !mongod.IsMapping() {
		t.Fatalf("expected mongod section")
	}
	fork, _ := mongod.Mapping().Get("fork")
	if !fork.Bool() {
		t.Fatalf("expected fork true")
	}
}

func TestParseFileMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	writeFile(t, path, "key = \n")

	_, err := config.ParseFile(path)
	if !errors.Is(err, config.ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}

func TestParseFileTopLevelNotMapping(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.json")
	writeFile(t, path, `[1, 2, 3]`)

	_, err := config.ParseFile(path)
	if !errors.Is(err, config.ErrStructure) {
		t.Fatalf("expected ErrStructure, got %v", err)
	}
}

func TestLoadFirstMatchOnly(t *testing.T) {
	work := t.TempDir()
	home := t.TempDir()
	t.Setenv("HOME", home)
	chdir(t, work)

	writeFile(t, filepath.Join(work, "myapp.toml"), "source = \"workdir\"\n")
	writeFile(t, filepath.Join(home, ".myapp.toml"), "source = \"home\"\nextra = 1\n")

	cfg, err := config.Load(config.LoadOptions{BaseName: "myapp.toml"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	v, _ := cfg.Root().Get("source")
	if v.Str() != "workdir" {
		t.Fatalf("expected first match only, got source=%q", v.Str())
	}
	if cfg.Root().Has("extra") {
		t.Fatalf("home layer leaked into a non-merge load")
	}
}

func TestLoadMergeLaterFilesWin(t *testing.T) {
	work := t.TempDir()
	home := t.TempDir()
	extra := t.TempDir()
	t.Setenv("HOME", home)
	chdir(t, work)

	writeFile(t, filepath.Join(work, "myapp.toml"), `
[mongod]
port = 27017
journal = true
`)
	writeFile(t, filepath.Join(home, ".myapp.toml"), `
[mongod]
port = 65010
`)
	explicit := filepath.Join(extra, "override.toml")
	writeFile(t, explicit, `
[mongod]
fork = true
`)

	cfg, err := config.Load(config.LoadOptions{
		BaseName:     "myapp.toml",
		ExplicitPath: explicit,
		Merge:        true,
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	got := cfg.RefineStrings([]string{"mongod"}, refine.FormatOptions{Mode: refine.ModeURIT2})
	want := []string{"port=65010", "journal=True", "fork=True"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("merged layers mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadNotFound(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	chdir(t, t.TempDir())

	_, err := config.Load(config.LoadOptions{BaseName: "absent.toml"})
	if !errors.Is(err, config.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLoadEmptyConfigIsFatalByDefault(t *testing.T) {
	work := t.TempDir()
	home := t.TempDir()
	t.Setenv("HOME", home)
	chdir(t, work)

	writeFile(t, filepath.Join(work, "empty.toml"), "# nothing here\n")

	_, err := config.Load(config.LoadOptions{BaseName: "empty.toml"})
	if !errors.Is(err, config.ErrEmptyConfig) {
		t.Fatalf("expected ErrEmptyConfig, got %v", err)
	}

	cfg, err := config.Load(config.LoadOptions{BaseName: "empty.toml", AllowEmpty: true})
	if err != nil {
		t.Fatalf("allow-empty load: %v", err)
	}
	if cfg.Root().Len() != 0 {
		t.Fatalf("expected empty root, got %d entries", cfg.Root().Len())
	}
}
