package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/bundler/internal/app"
)

func (c *CLI) newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [modules...]",
		Short: "Generate the bundle manifest of each module",
		Long: "Generate analyzes the compiled output and the included artifacts of each module " +
			"and writes its MANIFEST.MF. Modules whose inputs are unchanged are skipped.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := workingDir(cmd)
			if err != nil {
				return err
			}
			force, _ := cmd.Flags().GetBool("force")
			parallel, _ := cmd.Flags().GetInt("parallel")

			report, err := c.app.Generate(cmd.Context(), cwd, args, app.GenerateOptions{
				Force:       force,
				Parallelism: parallel,
			})
			if len(report) > 0 {
				if renderErr := app.RenderReport(cmd.OutOrStdout(), report); renderErr != nil && err == nil {
					err = renderErr
				}
			}
			return err
		},
	}
	cmd.Flags().BoolP("force", "f", false, "Regenerate manifests even when inputs are unchanged")
	cmd.Flags().IntP("parallel", "p", 0, "Number of modules generated at once (default: one per CPU)")
	return cmd
}
