package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/cask/internal/app"
)

func (c *CLI) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve compiled stylesheets over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			listen, _ := cmd.Flags().GetString("listen")
			debug, _ := cmd.Flags().GetBool("debug")
			logMode, _ := cmd.Flags().GetString("log-mode")
			dir, _ := cmd.Flags().GetString("dir")
			ci, _ := cmd.Flags().GetBool("ci")

			// If --ci is set, override log-mode to "json"
			if ci {
				logMode = "json"
			}

			return c.app.Serve(cmd.Context(), app.ServeOptions{
				Listen:  listen,
				Debug:   debug,
				LogMode: logMode,
				Dir:     dir,
			})
		},
	}
	cmd.Flags().StringP("listen", "l", "", "Listen address, overrides the configured one")
	cmd.Flags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.Flags().StringP("log-mode", "o", "auto", "Log output mode: auto, pretty, or json")
	cmd.Flags().String("dir", ".", "Directory configuration discovery starts from")
	cmd.Flags().Bool("ci", false, "Use JSON log output (shorthand for --log-mode=json)")
	return cmd
}
