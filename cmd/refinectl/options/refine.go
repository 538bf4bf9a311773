package options

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/refinectl/refinectl/pkg/document"
	"github.com/refinectl/refinectl/pkg/telemetry"
)

// RefineOptions captures CLI flag values for the refine command.
type RefineOptions struct {
	Filter bool
}

// NewRefineCommand constructs the `refinectl refine` command.
func NewRefineCommand(global *GlobalOptions) *cobra.Command {
	opts := RefineOptions{}

	cmd := &cobra.Command{
		Use:   "refine [key-path]",
		Short: "Flatten a configuration sub-tree into key/value entries",
		Long: "Refine descends the loaded document along a dot-separated key path, " +
			"accumulating every non-nested entry on the way. Deeper levels win key " +
			"collisions; a missing path segment ends the descent with the partial result.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return runRefine(cmd, args, global, opts, defaultDeps)
		},
	}

	cmd.Flags().BoolVar(&opts.Filter, "filter", false, "Drop false-boolean and null entries")

	return cmd
}

// RunRefineForTest executes the refine flow with explicit dependencies.
func RunRefineForTest(cmd *cobra.Command, args []string, global *GlobalOptions, opts RefineOptions, deps Deps) error {
	return runRefine(cmd, args, global, opts, deps)
}

func runRefine(cmd *cobra.Command, args []string, global *GlobalOptions, opts RefineOptions, deps Deps) error {
	cfg, logger, err := loadConfiguration(cmd, global, deps)
	if err != nil {
		return err
	}

	path := SplitKeyPath(keyPathArg(args))
	flat := cfg.Refine(path, opts.Filter)

	telemetry.Emit(logger, telemetry.Entry{
		Category: telemetry.CategoryRefine,
		Message:  "sub-tree refined",
		Metadata: map[string]string{
			"keyPath": strings.Join(path, "."),
			"entries": strconv.Itoa(flat.Len()),
			"filter":  strconv.FormatBool(opts.Filter),
		},
	})

	fmt.Fprint(cmd.OutOrStdout(), document.Display(flat))
	return nil
}
