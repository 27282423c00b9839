package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scopeplan/scopeplan/internal/app"
	"github.com/scopeplan/scopeplan/internal/usecase"
)

// newRunCommand creates the run command for refining a plan.
func newRunCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Plan       string
		Checkpoint string
		MaxDepth   int
		Yes        bool
		NoReview   bool
	}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Decompose the plan until leaves are small enough",
		Long: `Walk the plan and break down every leaf task that is still rated
complex or a sprint and longer, then lift parent estimates so no task
claims to be smaller than its own subtasks.

Progress is checkpointed after each breakdown, so an interrupted run
loses at most one decomposition.

Examples:
  # Refine interactively, reviewing each suggested subtask
  scopeplan run

  # Accept every suggestion
  scopeplan run --yes

  # Limit nesting
  scopeplan run --max-depth 3`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			checkpoint := opts.Checkpoint
			if checkpoint == "" {
				checkpoint = c.Config.Plan.CheckpointPath
			}
			maxDepth := opts.MaxDepth
			if maxDepth == 0 {
				maxDepth = c.Config.Plan.MaxDepth
			}

			uc := c.RunPlanUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.RunPlanInput{
				PlanPath:        planPath(c, opts.Plan),
				CheckpointPath:  checkpoint,
				MaxDepth:        maxDepth,
				NonInteractive:  opts.Yes,
				ReviewLongTasks: !opts.NoReview,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Plan has %d tasks (%d added).\n", out.TaskCount, out.Created)
			if out.Skipped > 0 {
				fmt.Fprintf(w, "Skipped %d invalid records while loading.\n", out.Skipped)
			}
			if len(out.AdjustedIDs) > 0 {
				fmt.Fprintf(w, "Lifted estimates on %d tasks to match their subtasks.\n", len(out.AdjustedIDs))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Plan, "plan", "p", "", "plan file (default from config)")
	cmd.Flags().StringVar(&opts.Checkpoint, "checkpoint", "", "checkpoint file (default from config)")
	cmd.Flags().IntVar(&opts.MaxDepth, "max-depth", 0, "maximum nesting depth (default from config)")
	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "accept all suggestions without review")
	cmd.Flags().BoolVar(&opts.NoReview, "no-long-review", false, "skip the final pass over long-duration leaves")
	return cmd
}
