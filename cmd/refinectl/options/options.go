// Package options implements the refinectl subcommands that turn a located
// configuration document into flat entries or formatted option strings.
package options

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	clilogging "github.com/refinectl/refinectl/internal/cli/logging"
	internalconfig "github.com/refinectl/refinectl/internal/config"
	pkgconfig "github.com/refinectl/refinectl/pkg/config"
	"github.com/refinectl/refinectl/pkg/telemetry"
)

// GlobalOptions carries the configuration-discovery flags shared by every
// subcommand.
type GlobalOptions struct {
	ConfigPath string
	BaseName   string
	Locations  []string
	Merge      bool
	AllowEmpty bool
	Verbose    bool
}

// Bind registers the shared flags on fs.
func (o *GlobalOptions) Bind(fs *pflag.FlagSet) {
	fs.StringVar(&o.ConfigPath, "config", "", "Explicit configuration file path, probed after the search path")
	fs.StringVar(&o.BaseName, "name", "", "Configuration file base name (default "+internalconfig.DefaultBaseName+")")
	fs.StringArrayVar(&o.Locations, "location", nil, "Extra directory to search; repeatable")
	fs.BoolVar(&o.Merge, "merge", false, "Merge every configuration file found instead of taking the first")
	fs.BoolVar(&o.AllowEmpty, "allow-empty", false, "Treat an empty configuration as valid")
	fs.BoolVar(&o.Verbose, "verbose", false, "Emit structured diagnostics to stderr")
}

// Deps configures collaborators for the subcommands; tests substitute Load.
type Deps struct {
	Load func(internalconfig.LoadOptions) (*pkgconfig.Configuration, error)
}

var defaultDeps = Deps{Load: internalconfig.Load}

// loadConfiguration resolves the shared flags into a loaded Configuration
// and, when verbose, a diagnostics logger bound to the command's stderr.
func loadConfiguration(cmd *cobra.Command, global *GlobalOptions, deps Deps) (*pkgconfig.Configuration, telemetry.StructuredLogger, error) {
	var logger telemetry.StructuredLogger
	if global.Verbose {
		l, err := telemetry.NewLogger(cmd.ErrOrStderr())
		if err != nil {
			return nil, nil, err
		}
		logger = l
	}

	load := deps.Load
	if load == nil {
		load = internalconfig.Load
	}
	cfg, err := load(internalconfig.LoadOptions{
		BaseName:     global.BaseName,
		ExplicitPath: global.ConfigPath,
		Locations:    global.Locations,
		Merge:        global.Merge,
		AllowEmpty:   global.AllowEmpty,
		Logger:       logger,
	})
	if err != nil {
		// Parse failures quote the offending document line, which can carry
		// credentials; redact before the text reaches the diagnostics stream.
		telemetry.Emit(logger, telemetry.Entry{
			Category: telemetry.CategoryLoad,
			Severity: telemetry.SeverityError,
			Message:  "configuration load failed",
			Metadata: map[string]string{
				"reason": clilogging.SanitizeText(err.Error()),
			},
		})
		return nil, nil, err
	}
	return cfg, logger, nil
}

// SplitKeyPath turns a dot-separated key path argument into its segments.
// An empty argument means the document root.
func SplitKeyPath(arg string) []string {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return nil
	}
	var path []string
	for _, segment := range strings.Split(arg, ".") {
		if segment != "" {
			path = append(path, segment)
		}
	}
	return path
}

func keyPathArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
