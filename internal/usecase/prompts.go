// Package usecase contains application use cases.
package usecase

import (
	"fmt"
	"strings"

	"github.com/scopeplan/scopeplan/internal/domain"
)

// breakdownPrompt builds the generation prompt asking for subtasks of
// parent. The response contract matches domain.ExtractCandidates: a JSON
// object with a "subtasks" list of objects.
func breakdownPrompt(parent *domain.Task, count int, reason BreakdownReason) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Break down the following task into %d smaller subtasks.\n", count)
	if reason == ReasonDuration {
		b.WriteString("The task is estimated to take a sprint or longer; split it into stages that can land sooner.\n\n")
	} else {
		b.WriteString("The task is too complex to execute as one unit; split it into more tractable pieces.\n\n")
	}
	fmt.Fprintf(&b, "Task: %s\n", parent.Title)
	fmt.Fprintf(&b, "Purpose: %s\n", parent.Purpose.DetailedDescription)
	fmt.Fprintf(&b, "Size: %s\n", parent.Scope.Size)
	fmt.Fprintf(&b, "Time estimate: %s\n", parent.Scope.TimeEstimate)
	if len(parent.Scope.Risks) > 0 {
		fmt.Fprintf(&b, "Known risks: %s\n", strings.Join(parent.Scope.Risks, "; "))
	}
	b.WriteString("\nEach subtask must be smaller than the parent task.\n")
	fmt.Fprintf(&b, "Valid sizes: %s.\n", joinSizes())
	fmt.Fprintf(&b, "Valid time estimates: %s.\n", joinTimes())
	b.WriteString(`
Respond with ONLY a JSON object of this exact shape, no prose:
{"subtasks": [{"title": "...", "description": "...", "size": "...", "time_estimate": "...", "outcome": "...", "risks": ["..."]}]}
`)
	return b.String()
}

// estimatePrompt asks the backend to rate a task on the two complexity
// scales and classify its purpose and outcome.
func estimatePrompt(title, description string) string {
	var b strings.Builder
	b.WriteString("Estimate the scope of the following task.\n\n")
	fmt.Fprintf(&b, "Task: %s\n", title)
	if description != "" {
		fmt.Fprintf(&b, "Description: %s\n", description)
	}
	fmt.Fprintf(&b, "\nValid sizes: %s.\n", joinSizes())
	fmt.Fprintf(&b, "Valid time estimates: %s.\n", joinTimes())
	b.WriteString("Valid urgencies: strategic, mission-critical, maintenance, exploratory.\n")
	b.WriteString("Valid outcome types: customer-facing, business-metric, technical-debt, learning.\n")
	b.WriteString(`
Respond with ONLY a JSON object of this exact shape, no prose:
{"size": "...", "time_estimate": "...", "urgency": "...", "outcome_type": "...", "risks": ["..."]}
`)
	return b.String()
}

// alternativesPrompt asks for alternative implementation approaches for a
// task. The response contract matches domain.ExtractAlternatives.
func alternativesPrompt(parent *domain.Task) string {
	var b strings.Builder
	b.WriteString("Suggest up to 3 alternative implementation approaches for the following task.\n\n")
	fmt.Fprintf(&b, "Task: %s\n", parent.Title)
	fmt.Fprintf(&b, "Purpose: %s\n", parent.Purpose.DetailedDescription)
	fmt.Fprintf(&b, "Size: %s\n", parent.Scope.Size)
	fmt.Fprintf(&b, "Time estimate: %s\n", parent.Scope.TimeEstimate)
	fmt.Fprintf(&b, "\nValid sizes: %s.\n", joinSizes())
	fmt.Fprintf(&b, "Valid time estimates: %s.\n", joinTimes())
	b.WriteString(`
Respond with ONLY a JSON object of this exact shape, no prose:
{"alternatives": [{"name": "...", "description": "...", "size": "...", "time_estimate": "..."}]}
`)
	return b.String()
}

// parentContextPrompt asks the backend to refine the parent record using a
// subtask the user just authored by hand.
func parentContextPrompt(parent, child *domain.Task) string {
	var b strings.Builder
	b.WriteString("A subtask was just added to the following task. Refine the parent description so it reflects the new subtask.\n\n")
	fmt.Fprintf(&b, "Parent task: %s\n", parent.Title)
	fmt.Fprintf(&b, "Parent purpose: %s\n", parent.Purpose.DetailedDescription)
	fmt.Fprintf(&b, "Parent outcome: %s\n", parent.Outcome.DetailedOutcomeDefinition)
	fmt.Fprintf(&b, "\nNew subtask: %s\n", child.Title)
	fmt.Fprintf(&b, "Subtask purpose: %s\n", child.Purpose.DetailedDescription)
	b.WriteString("\nValid teams: Product, Design, Frontend, Backend, ML, Infra, Testing, Other.\n")
	b.WriteString(`
Respond with ONLY a JSON object of this exact shape, no prose (omit fields you would not change):
{"detailed_description": "...", "risks": ["..."], "detailed_outcome_definition": "...", "team": "..."}
`)
	return b.String()
}

// titlePrompt asks for a concise task title for a purpose and, when given,
// an outcome description.
func titlePrompt(description, outcome string) string {
	var b strings.Builder
	b.WriteString("Write a concise task title (at most 10 words, no quotes, no trailing punctuation) for this work.\n\n")
	if description != "" {
		fmt.Fprintf(&b, "Purpose: %s\n", description)
	}
	if outcome != "" {
		fmt.Fprintf(&b, "Outcome: %s\n", outcome)
	}
	b.WriteString("\nRespond with only the title.")
	return b.String()
}

func joinSizes() string {
	parts := make([]string, 0, len(domain.AllSizes()))
	for _, s := range domain.AllSizes() {
		parts = append(parts, string(s))
	}
	return strings.Join(parts, ", ")
}

func joinTimes() string {
	parts := make([]string, 0, len(domain.AllTimeEstimates()))
	for _, t := range domain.AllTimeEstimates() {
		parts = append(parts, string(t))
	}
	return strings.Join(parts, ", ")
}
