package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <digest>",
		Short: "Print a run stored with replay --save",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")
			return c.app.Show(cmd.Context(), args[0], asJSON)
		},
	}
	cmd.Flags().Bool("json", false, "Print one JSON report per frame")
	return cmd
}
