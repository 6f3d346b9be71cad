package commands

import "github.com/spf13/cobra"

func (c *CLI) newAssembleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "assemble [modules...]",
		Short: "Pack the test bundle jar of each module",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := workingDir(cmd)
			if err != nil {
				return err
			}
			return c.app.Assemble(cmd.Context(), cwd, args)
		},
	}
}
