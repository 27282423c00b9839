package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scopeplan/scopeplan/internal/app"
	"github.com/scopeplan/scopeplan/internal/usecase"
)

// newExportCommand creates the export command for rendering a plan.
func newExportCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Plan   string
		Output string
	}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render the plan as a Markdown document",
		Long: `Render the plan as a Markdown scope document, with tasks in
hierarchy order and heading levels scaled by nesting depth.

Examples:
  # Print to stdout
  scopeplan export

  # Write to a file
  scopeplan export -o plan.md`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.ExportPlanUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ExportPlanInput{
				PlanPath: planPath(c, opts.Plan),
			})
			if err != nil {
				return err
			}

			if opts.Output == "" {
				fmt.Fprint(cmd.OutOrStdout(), out.Markdown)
				return nil
			}
			if err := os.WriteFile(opts.Output, []byte(out.Markdown), 0o600); err != nil {
				return fmt.Errorf("write %s: %w", opts.Output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d tasks to %s\n", out.TaskCount, opts.Output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Plan, "plan", "p", "", "plan file (default from config)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file (default stdout)")
	return cmd
}
