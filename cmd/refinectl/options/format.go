package options

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	clilogging "github.com/refinectl/refinectl/internal/cli/logging"
	"github.com/refinectl/refinectl/pkg/refine"
	"github.com/refinectl/refinectl/pkg/telemetry"
)

// FormatOptions captures CLI flag values for the format command.
type FormatOptions struct {
	Mode   string
	Glue   string
	Filter bool
}

// NewFormatCommand constructs the `refinectl format` command.
func NewFormatCommand(global *GlobalOptions) *cobra.Command {
	opts := FormatOptions{}

	cmd := &cobra.Command{
		Use:   "format [key-path]",
		Short: "Render a refined sub-tree as option strings",
		Long: "Format refines the loaded document along a dot-separated key path and " +
			"renders each surviving entry as one string under the chosen mode: uri-t1, " +
			"uri-t2, unix-t1 or unix-t3.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return runFormat(cmd, args, global, opts, defaultDeps)
		},
	}

	cmd.Flags().StringVar(&opts.Mode, "mode", refine.ModeURIT1.String(), "Output mode: uri-t1, uri-t2, unix-t1 or unix-t3")
	cmd.Flags().StringVar(&opts.Glue, "glue", refine.DefaultGlue, "Separator joining array elements")
	cmd.Flags().BoolVar(&opts.Filter, "filter", false, "Drop false-boolean and null entries before formatting")

	return cmd
}

// RunFormatForTest executes the format flow with explicit dependencies.
func RunFormatForTest(cmd *cobra.Command, args []string, global *GlobalOptions, opts FormatOptions, deps Deps) error {
	return runFormat(cmd, args, global, opts, deps)
}

func runFormat(cmd *cobra.Command, args []string, global *GlobalOptions, opts FormatOptions, deps Deps) error {
	mode, err := refine.ParseMode(opts.Mode)
	if err != nil {
		return err
	}

	cfg, logger, err := loadConfiguration(cmd, global, deps)
	if err != nil {
		return err
	}

	path := SplitKeyPath(keyPathArg(args))
	lines := cfg.RefineStrings(path, refine.FormatOptions{
		Mode:   mode,
		Glue:   opts.Glue,
		Filter: opts.Filter,
	})

	telemetry.Emit(logger, telemetry.Entry{
		Category: telemetry.CategoryRefine,
		Message:  "sub-tree formatted",
		Metadata: map[string]string{
			"keyPath": strings.Join(path, "."),
			"mode":    mode.String(),
			"count":   strconv.Itoa(len(lines)),
			"preview": clilogging.SanitizeArgs(lines),
		},
	})

	for _, line := range lines {
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
	return nil
}
