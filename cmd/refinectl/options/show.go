package options

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/refinectl/refinectl/pkg/document"
)

// NewShowCommand constructs the `refinectl show` command.
func NewShowCommand(global *GlobalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the loaded configuration document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return runShow(cmd, global, defaultDeps)
		},
	}
	return cmd
}

// RunShowForTest executes the show flow with explicit dependencies.
func RunShowForTest(cmd *cobra.Command, global *GlobalOptions, deps Deps) error {
	return runShow(cmd, global, deps)
}

func runShow(cmd *cobra.Command, global *GlobalOptions, deps Deps) error {
	cfg, _, err := loadConfiguration(cmd, global, deps)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), document.Display(cfg.Root()))
	return nil
}
