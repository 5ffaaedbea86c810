package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/uifirst/internal/app"
)

func (c *CLI) newReplayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay [script]",
		Short: "Replay a scene script and report every frame",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}
			configPath, _ := cmd.Flags().GetString("config")
			outputMode, _ := cmd.Flags().GetString("output-mode")
			inspect, _ := cmd.Flags().GetBool("inspect")
			save, _ := cmd.Flags().GetBool("save")
			ci, _ := cmd.Flags().GetBool("ci")

			// If --ci is set, override output-mode to "linear"
			if ci {
				outputMode = "linear"
			}

			return c.app.Replay(cmd.Context(), args[0], app.ReplayOptions{
				ConfigPath: configPath,
				OutputMode: outputMode,
				Inspect:    inspect,
				Save:       save,
			})
		},
	}
	cmd.Flags().StringP("output-mode", "o", "auto", "Output mode: auto, tui, linear, or json")
	cmd.Flags().BoolP("inspect", "i", false, "Keep the TUI open after the last frame")
	cmd.Flags().BoolP("save", "s", false, "Store the frame reports under the script digest")
	cmd.Flags().Bool("ci", false, "Use linear output mode (shorthand for --output-mode=linear)")
	return cmd
}
