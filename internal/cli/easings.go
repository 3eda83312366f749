package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phanxgames/sprites"
)

func (c *CLI) easingsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "easings",
		Short: "List the built-in easing curves",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range sprites.EasingNames() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
