package cli

import (
	"github.com/spf13/cobra"

	optionscmd "github.com/refinectl/refinectl/cmd/refinectl/options"
)

// NewRootCommand constructs the root refinectl command.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refinectl",
		Short: "refinectl refines layered configuration documents into flat option sets",
	}

	global := &optionscmd.GlobalOptions{}
	global.Bind(cmd.PersistentFlags())

	cmd.AddCommand(optionscmd.NewRefineCommand(global))
	cmd.AddCommand(optionscmd.NewFormatCommand(global))
	cmd.AddCommand(optionscmd.NewShowCommand(global))

	return cmd
}
