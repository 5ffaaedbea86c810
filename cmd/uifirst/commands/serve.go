package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/uifirst/internal/app"
)

func (c *CLI) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve <script>",
		Short: "Replay a scene script in a loop and expose the scheduler state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			socket, _ := cmd.Flags().GetString("socket")
			return c.app.Serve(cmd.Context(), args[0], app.ServeOptions{
				ConfigPath: configPath,
				SocketPath: socket,
			})
		},
	}
	cmd.Flags().String("socket", "", "Inspector socket path")
	return cmd
}

func (c *CLI) newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the last frame scheduled by a running serve",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			socket, _ := cmd.Flags().GetString("socket")
			node, _ := cmd.Flags().GetUint64("node")
			asJSON, _ := cmd.Flags().GetBool("json")
			return c.app.Status(cmd.Context(), app.StatusOptions{
				SocketPath: socket,
				Node:       node,
				JSON:       asJSON,
			})
		},
	}
	cmd.Flags().String("socket", "", "Inspector socket path")
	cmd.Flags().Uint64("node", 0, "Print the status of a single node")
	cmd.Flags().Bool("json", false, "Print the report as JSON")
	return cmd
}
