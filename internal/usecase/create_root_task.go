package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/scopeplan/scopeplan/internal/domain"
)

// CreateRootTaskInput contains the parameters for creating a root task.
// Fields are ordered to minimize memory padding.
type CreateRootTaskInput struct {
	PlanPath       string // Plan file to create or append to (required)
	Title          string // Task title (optional when interactive or a description is given)
	Description    string // Free-form purpose description (optional)
	Outcome        string // What done looks like (optional)
	Team           string // Owning team (optional, coerced leniently)
	NonInteractive bool   // Never touch the prompter
}

// CreateRootTaskOutput contains the result of creating a root task.
type CreateRootTaskOutput struct {
	TaskID  string
	Task    *domain.Task
	Created bool // False when the plan file already existed and was appended to
}

// CreateRootTask is the use case for creating a new root task, optionally
// asking the generation backend to estimate its scope and to propose a
// title when only a description was given.
type CreateRootTask struct {
	store    domain.PlanStore
	oracle   domain.Oracle
	prompter domain.Prompter
	clock    domain.Clock
	logger   domain.Logger
}

// NewCreateRootTask creates a new CreateRootTask use case.
func NewCreateRootTask(store domain.PlanStore, oracle domain.Oracle, prompter domain.Prompter, clock domain.Clock, logger domain.Logger) *CreateRootTask {
	return &CreateRootTask{
		store:    store,
		oracle:   oracle,
		prompter: prompter,
		clock:    clock,
		logger:   logger,
	}
}

// Execute creates the root task and persists the plan.
func (uc *CreateRootTask) Execute(ctx context.Context, in CreateRootTaskInput) (*CreateRootTaskOutput, error) {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	outcome := strings.TrimSpace(in.Outcome)

	if title == "" && (description != "" || outcome != "") && uc.oracle != nil {
		title = strings.TrimSpace(uc.oracle.GenerateText(ctx, titlePrompt(description, outcome)))
		if r := []rune(title); len(r) > 60 {
			title = string(r[:57]) + "..."
		}
	}
	if title == "" && (description != "" || outcome != "") && in.NonInteractive {
		// A description-only non-interactive invocation still has to yield
		// a task even when the backend gave no title.
		title = "Task Title"
	}
	if title == "" && !in.NonInteractive && uc.prompter != nil {
		var err error
		title, err = uc.prompter.Input("Task title", "")
		if err != nil {
			return nil, fmt.Errorf("read title: %w", err)
		}
		title = strings.TrimSpace(title)
	}
	if title == "" {
		return nil, domain.ErrEmptyTitle
	}
	if description == "" && !in.NonInteractive && uc.prompter != nil {
		var err error
		description, err = uc.prompter.Input("What is this task for?", "To be refined")
		if err != nil {
			return nil, fmt.Errorf("read description: %w", err)
		}
	}
	if description == "" {
		description = "To be refined"
	}

	task := uc.buildTask(ctx, title, description, outcome, in.Team)
	if err := task.Validate(); err != nil {
		return nil, err
	}

	var tasks []*domain.Task
	existed := uc.store.Exists(in.PlanPath)
	if existed {
		loaded, skipped, err := uc.store.Load(in.PlanPath)
		if err != nil && !errors.Is(err, domain.ErrPlanNotFound) {
			return nil, fmt.Errorf("load plan: %w", err)
		}
		if skipped > 0 && uc.logger != nil {
			uc.logger.Warn("", "plan", fmt.Sprintf("skipped %d invalid records in %s", skipped, in.PlanPath))
		}
		tasks = loaded
	}
	tasks = append(tasks, task)

	if err := uc.store.Save(in.PlanPath, tasks); err != nil {
		return nil, fmt.Errorf("save plan: %w", err)
	}
	if uc.logger != nil {
		uc.logger.Info(task.ID, "task", fmt.Sprintf("created root task: %q", title))
	}
	return &CreateRootTaskOutput{TaskID: task.ID, Task: task, Created: !existed}, nil
}

// buildTask assembles the root task, asking the backend for a scope
// estimate when one is available. A missing or garbled estimate falls back
// to the most conservative defaults, never to an error.
func (uc *CreateRootTask) buildTask(ctx context.Context, title, description, outcome, team string) *domain.Task {
	now := uc.clock.Now()

	size := domain.SizeUncertain
	timeEst := domain.TimeSprint
	urgency := domain.UrgencyStrategic
	outcomeType := domain.OutcomeCustomerFacing
	outcomeDef := outcome
	if outcomeDef == "" {
		outcomeDef = "Completion of: " + title
	}
	var risks []string

	if uc.oracle != nil {
		doc := uc.oracle.GenerateDocument(ctx, estimatePrompt(title, description))
		if doc != nil {
			if s, ok := doc["size"].(string); ok {
				size = domain.CoerceSize(s, size)
			}
			if t, ok := doc["time_estimate"].(string); ok {
				timeEst = domain.CoerceTime(t, timeEst)
			}
			if u, ok := doc["urgency"].(string); ok {
				if candidate := domain.Urgency(u); candidate.IsValid() {
					urgency = candidate
				}
			}
			if o, ok := doc["outcome_type"].(string); ok {
				if candidate := domain.OutcomeType(o); candidate.IsValid() {
					outcomeType = candidate
				}
			}
			if list, ok := doc["risks"].([]any); ok {
				for _, el := range list {
					if r, ok := el.(string); ok && strings.TrimSpace(r) != "" {
						risks = append(risks, strings.TrimSpace(r))
					}
				}
			}
		}
	}

	return &domain.Task{
		ID:    domain.NewTaskID(),
		Title: title,
		Purpose: domain.Purpose{
			DetailedDescription: description,
			Urgency:             urgency,
		},
		Scope: domain.Scope{
			Size:         size,
			TimeEstimate: timeEst,
			Risks:        risks,
		},
		Outcome: domain.Outcome{
			Type:                      outcomeType,
			DetailedOutcomeDefinition: outcomeDef,
		},
		Meta: domain.Meta{
			Status:     domain.StatusBacklog,
			Created:    now,
			Updated:    now,
			Confidence: domain.ConfidenceMedium,
			Team:       domain.CoerceTeam(team, ""),
		},
	}
}
