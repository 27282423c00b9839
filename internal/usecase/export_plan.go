package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/scopeplan/scopeplan/internal/domain"
)

// ExportPlanInput contains the parameters for exporting a plan.
type ExportPlanInput struct {
	PlanPath string // Plan file to export (required)
}

// ExportPlanOutput contains the rendered document.
type ExportPlanOutput struct {
	Markdown  string
	TaskCount int
}

// ExportPlan is the use case for rendering a plan as a Markdown document,
// with tasks in hierarchy order and heading levels scaled by nesting depth.
type ExportPlan struct {
	store  domain.PlanStore
	logger domain.Logger
}

// NewExportPlan creates a new ExportPlan use case.
func NewExportPlan(store domain.PlanStore, logger domain.Logger) *ExportPlan {
	return &ExportPlan{store: store, logger: logger}
}

// Execute loads the plan and renders it.
func (uc *ExportPlan) Execute(_ context.Context, in ExportPlanInput) (*ExportPlanOutput, error) {
	tasks, skipped, err := uc.store.Load(in.PlanPath)
	if err != nil {
		return nil, fmt.Errorf("load plan: %w", err)
	}
	if skipped > 0 && uc.logger != nil {
		uc.logger.Warn("", "export", fmt.Sprintf("skipped %d invalid records in %s", skipped, in.PlanPath))
	}
	md, err := RenderMarkdown(tasks)
	if err != nil {
		return nil, err
	}
	return &ExportPlanOutput{Markdown: md, TaskCount: len(tasks)}, nil
}

// RenderMarkdown renders the task collection as a Markdown scope document.
func RenderMarkdown(tasks []*domain.Task) (string, error) {
	var b strings.Builder
	b.WriteString("# Project Scope Plan\n\n")
	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "This document contains **%d** tasks.\n\n", len(tasks))
	b.WriteString("## Task Details\n\n")

	children := make(map[string][]*domain.Task)
	var roots []*domain.Task
	byID := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = true
	}
	for _, t := range tasks {
		if t.ParentID != nil && byID[*t.ParentID] {
			children[*t.ParentID] = append(children[*t.ParentID], t)
		} else {
			roots = append(roots, t)
		}
	}

	seen := make(map[string]bool, len(tasks))
	var render func(t *domain.Task, depth int) error
	render = func(t *domain.Task, depth int) error {
		if seen[t.ID] {
			return fmt.Errorf("render %s: %w", t.ID, domain.ErrParentCycle)
		}
		seen[t.ID] = true
		writeTaskSection(&b, t, depth)
		for _, c := range children[t.ID] {
			if err := render(c, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	for _, r := range roots {
		if err := render(r, 1); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

func writeTaskSection(b *strings.Builder, t *domain.Task, depth int) {
	level := depth + 2
	if level > 6 {
		level = 6
	}
	fmt.Fprintf(b, "%s %s: %s\n\n", strings.Repeat("#", level), t.ID, t.Title)
	if t.Purpose.DetailedDescription != "" {
		fmt.Fprintf(b, "%s\n\n", t.Purpose.DetailedDescription)
	}
	fmt.Fprintf(b, "*Size:* %s\n\n", titleCase(string(t.Scope.Size)))
	fmt.Fprintf(b, "*Time Estimate:* %s\n\n", titleCase(string(t.Scope.TimeEstimate)))
	fmt.Fprintf(b, "*Status:* %s\n\n", titleCase(string(t.Meta.Status)))
	if t.Meta.Team != "" {
		fmt.Fprintf(b, "*Team:* %s\n\n", t.Meta.Team)
	}
	if len(t.Scope.Risks) > 0 {
		b.WriteString("*Risks:*\n\n")
		for _, r := range t.Scope.Risks {
			fmt.Fprintf(b, "- %s\n", r)
		}
		b.WriteString("\n")
	}
	if t.Outcome.DetailedOutcomeDefinition != "" {
		fmt.Fprintf(b, "*Outcome:* %s\n\n", t.Outcome.DetailedOutcomeDefinition)
	}
}

// titleCase capitalizes each hyphen-separated word, so "multi-sprint"
// renders as "Multi-Sprint".
func titleCase(s string) string {
	parts := strings.Split(s, "-")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, "-")
}
