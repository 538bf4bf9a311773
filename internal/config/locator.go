package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultBaseName is probed when the caller supplies no file name.
const DefaultBaseName = "config.toml"

// ErrNotFound is returned when no candidate configuration file exists.
var ErrNotFound = errors.New("no configuration file found")

// LocateOptions describes where to look for a configuration file.
type LocateOptions struct {
	// BaseName is the file name to probe, "config.toml" when empty. A name
	// without an extension gets ".toml" appended.
	BaseName string
	// ExplicitPath is a caller-supplied path probed after every other
	// candidate, so it wins fold-left merges.
	ExplicitPath string
	// Locations are extra directories probed between the home dotfile and
	// the explicit path, in the given order.
	Locations []string
}

func (o LocateOptions) baseName() string {
	name := strings.TrimSpace(o.BaseName)
	if name == "" {
		return DefaultBaseName
	}
	if filepath.Ext(name) == "" {
		name += ".toml"
	}
	return name
}

// Candidates returns every path that will be probed, in probe order: the
// working directory, its dotfile variant, the home-directory dotfile, each
// extra location, then the explicit path. Unresolvable segments (no home
// directory, for example) are skipped rather than reported.
func Candidates(opts LocateOptions) []string {
	base := opts.baseName()
	paths := []string{base, "." + base}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		paths = append(paths, filepath.Join(home, "."+base))
	}
	for _, loc := range opts.Locations {
		if dir := strings.TrimSpace(loc); dir != "" {
			paths = append(paths, filepath.Join(expandHome(dir), base))
		}
	}
	if explicit := strings.TrimSpace(opts.ExplicitPath); explicit != "" {
		paths = append(paths, expandHome(explicit))
	}
	return paths
}

// Locate returns the first existing candidate, or ErrNotFound.
func Locate(opts LocateOptions) (string, error) {
	for _, path := range Candidates(opts) {
		if fileExists(path) {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, opts.baseName())
}

// LocateAll returns every existing candidate in probe order, for a fold-left
// merge where later files win key conflicts. It returns ErrNotFound when
// nothing exists.
func LocateAll(opts LocateOptions) ([]string, error) {
	var found []string
	for _, path := range Candidates(opts) {
		if fileExists(path) {
			found = append(found, path)
		}
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, opts.baseName())
	}
	return found, nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func fileExists(path string) bool {
	stat, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !stat.IsDir()
}
