// Package cli provides the command-line interface for scopeplan.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/scopeplan/scopeplan/internal/app"
)

// NewRootCommand creates the root command for scopeplan.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "scopeplan",
		Short: "Task scoping and decomposition CLI",
		Long: `scopeplan breaks large tasks into actionable plans.

It keeps a flat JSON plan file of tasks with purpose, scope and outcome,
asks a generation backend for candidate subtasks, and keeps parent
estimates consistent with their subtrees.

Typical flow:
  scopeplan new --title "Migrate billing"   # create a root task
  scopeplan run                             # decompose until leaves are small
  scopeplan export -o plan.md               # render the plan as Markdown`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
	}

	root.AddCommand(
		newNewCommand(c),
		newRunCommand(c),
		newExportCommand(c),
	)
	return root
}

// planPath resolves the plan file: the flag when set, the configured
// default otherwise.
func planPath(c *app.Container, flag string) string {
	if flag != "" {
		return flag
	}
	return c.Config.Plan.Path
}
