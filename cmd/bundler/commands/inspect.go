package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/bundler/internal/app"
)

func (c *CLI) newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <module>",
		Short: "Show the packages, imports and headers computed for a module without writing them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := workingDir(cmd)
			if err != nil {
				return err
			}
			module, result, err := c.app.Inspect(cmd.Context(), cwd, args[0])
			if err != nil {
				return err
			}
			return app.RenderInspection(cmd.OutOrStdout(), module, result)
		},
	}
}
