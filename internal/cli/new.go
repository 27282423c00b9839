package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scopeplan/scopeplan/internal/app"
	"github.com/scopeplan/scopeplan/internal/usecase"
)

// newNewCommand creates the new command for creating a root task.
func newNewCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Plan        string
		Title       string
		Description string
		Outcome     string
		Team        string
		Yes         bool
	}

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a new root task",
		Long: `Create a new root task and add it to the plan file.

When a generation backend is configured, the task's size, time estimate,
urgency and outcome type are estimated from the title and description.
With only a description, a title is generated too.

Examples:
  # Create a task interactively
  scopeplan new

  # Create a task without prompts
  scopeplan new --title "Migrate billing" --yes

  # Let the backend propose a title
  scopeplan new --description "Users cannot find old documents" --yes`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.CreateRootTaskUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.CreateRootTaskInput{
				PlanPath:       planPath(c, opts.Plan),
				Title:          opts.Title,
				Description:    opts.Description,
				Outcome:        opts.Outcome,
				Team:           opts.Team,
				NonInteractive: opts.Yes,
			})
			if err != nil {
				return err
			}
			task := out.Task
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s: %s (%s, %s)\n",
				task.ID, task.Title, task.Scope.Size, task.Scope.TimeEstimate)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Plan, "plan", "p", "", "plan file (default from config)")
	cmd.Flags().StringVarP(&opts.Title, "title", "t", "", "task title")
	cmd.Flags().StringVarP(&opts.Description, "description", "d", "", "what the task is for")
	cmd.Flags().StringVarP(&opts.Outcome, "outcome", "o", "", "what done looks like")
	cmd.Flags().StringVar(&opts.Team, "team", "", "owning team")
	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "never prompt, use defaults")
	return cmd
}
