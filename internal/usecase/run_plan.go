package usecase

import (
	"context"
	"fmt"

	"github.com/scopeplan/scopeplan/internal/domain"
)

// DefaultMaxDepth is how deep the engine will nest subtasks unless told
// otherwise.
const DefaultMaxDepth = 5

// RunPlanInput contains the parameters for running the planning engine.
// Fields are ordered to minimize memory padding.
type RunPlanInput struct {
	PlanPath        string // Plan file to refine (required)
	CheckpointPath  string // Where to save progress after each breakdown ("" = no checkpoints)
	MaxDepth        int    // Depth limit for decomposition (0 = default)
	NonInteractive  bool   // Accept every generated candidate without review
	ReviewLongTasks bool   // Offer one more pass over long-duration leaves at the end
}

// RunPlanOutput summarizes what the engine did.
// Fields are ordered to minimize memory padding.
type RunPlanOutput struct {
	AdjustedIDs []string // Tasks whose estimates were lifted by propagation
	TaskCount   int      // Total tasks in the final plan
	Created     int      // Subtasks added in this run
	Skipped     int      // Invalid records dropped while loading
}

// RunPlan is the engine use case: it walks the plan, decomposes every task
// that warrants it, keeps parent estimates consistent with their subtrees,
// and writes the result back.
type RunPlan struct {
	store     domain.PlanStore
	breakdown *BreakdownTask
	review    *ReviewSubtasks
	prompter  domain.Prompter
	clock     domain.Clock
	logger    domain.Logger
}

// NewRunPlan creates a new RunPlan use case.
func NewRunPlan(store domain.PlanStore, breakdown *BreakdownTask, review *ReviewSubtasks, prompter domain.Prompter, clock domain.Clock, logger domain.Logger) *RunPlan {
	return &RunPlan{
		store:     store,
		breakdown: breakdown,
		review:    review,
		prompter:  prompter,
		clock:     clock,
		logger:    logger,
	}
}

// Execute runs the engine over the plan at in.PlanPath.
func (uc *RunPlan) Execute(ctx context.Context, in RunPlanInput) (*RunPlanOutput, error) {
	maxDepth := in.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	loadPath := in.PlanPath
	if resume, err := uc.shouldResume(in); err != nil {
		return nil, err
	} else if resume {
		loadPath = in.CheckpointPath
		if uc.logger != nil {
			uc.logger.Info("", "plan", "resuming from checkpoint "+in.CheckpointPath)
		}
	}

	tasks, skipped, err := uc.store.Load(loadPath)
	if err != nil {
		return nil, fmt.Errorf("load plan: %w", err)
	}
	if skipped > 0 && uc.logger != nil {
		uc.logger.Warn("", "plan", fmt.Sprintf("skipped %d invalid records in %s", skipped, loadPath))
	}

	created := 0
	// The slice grows while we iterate, so freshly accepted subtasks are
	// themselves considered for further decomposition. The depth limit
	// guarantees termination.
	for i := 0; i < len(tasks); i++ {
		t := tasks[i]
		ok, err := domain.ShouldDecompose(tasks, t, maxDepth, nil)
		if err != nil {
			// A broken parent chain poisons this one traversal, not the
			// whole run. The final propagation pass will still surface it.
			if uc.logger != nil {
				uc.logger.Error(t.ID, "plan", fmt.Sprintf("skipping decomposition: %v", err))
			}
			continue
		}
		if !ok {
			continue
		}
		// A leaf that qualifies only by its long estimate gets the
		// duration-based instruction instead of the complexity one.
		reason := ReasonComplexity
		if t.Scope.Size.Rank() < domain.SizeComplex.Rank() {
			reason = ReasonDuration
		}
		accepted, err := uc.decomposeOne(ctx, t, reason, in.NonInteractive)
		if err != nil {
			return nil, err
		}
		if len(accepted) == 0 {
			continue
		}
		tasks = append(tasks, accepted...)
		created += len(accepted)
		uc.updateParent(t, accepted)

		if in.CheckpointPath != "" {
			if err := uc.store.Save(in.CheckpointPath, tasks); err != nil {
				return nil, fmt.Errorf("save checkpoint: %w", err)
			}
		}
	}

	if in.ReviewLongTasks && !in.NonInteractive && uc.prompter != nil {
		extra, err := uc.reviewLongLeaves(ctx, &tasks)
		if err != nil {
			return nil, err
		}
		created += extra
	}

	adjusted, err := domain.PropagateEstimates(tasks)
	if err != nil {
		return nil, fmt.Errorf("propagate estimates: %w", err)
	}
	if len(adjusted) > 0 && uc.logger != nil {
		uc.logger.Info("", "plan", fmt.Sprintf("lifted estimates on %d tasks", len(adjusted)))
	}
	now := uc.clock.Now()
	for _, t := range tasks {
		for _, id := range adjusted {
			if t.ID == id {
				t.Meta.Updated = now
			}
		}
	}

	if err := uc.store.Save(in.PlanPath, tasks); err != nil {
		return nil, fmt.Errorf("save plan: %w", err)
	}
	if in.CheckpointPath != "" {
		if err := uc.store.Delete(in.CheckpointPath); err != nil && uc.logger != nil {
			uc.logger.Warn("", "plan", fmt.Sprintf("could not remove checkpoint: %v", err))
		}
	}

	return &RunPlanOutput{
		AdjustedIDs: adjusted,
		TaskCount:   len(tasks),
		Created:     created,
		Skipped:     skipped,
	}, nil
}

// shouldResume asks whether to pick up a checkpoint left by an interrupted
// run. Non-interactive runs always resume when a checkpoint is present.
func (uc *RunPlan) shouldResume(in RunPlanInput) (bool, error) {
	if in.CheckpointPath == "" || !uc.store.Exists(in.CheckpointPath) {
		return false, nil
	}
	if in.NonInteractive || uc.prompter == nil {
		return true, nil
	}
	yes, err := uc.prompter.Confirm("A checkpoint from an interrupted run exists. Resume from it?", true)
	if err != nil {
		return false, fmt.Errorf("confirm resume: %w", err)
	}
	return yes, nil
}

// decomposeOne generates and reviews subtasks for a single parent. An
// interactive user who skips every candidate is offered the deterministic
// fallback so the parent is not silently left too coarse.
func (uc *RunPlan) decomposeOne(ctx context.Context, parent *domain.Task, reason BreakdownReason, nonInteractive bool) ([]*domain.Task, error) {
	out, err := uc.breakdown.Execute(ctx, BreakdownTaskInput{Parent: parent, Reason: reason})
	if err != nil {
		return nil, fmt.Errorf("break down task %s: %w", parent.ID, err)
	}
	reviewed, err := uc.review.Execute(ctx, ReviewSubtasksInput{
		Parent:     parent,
		Candidates: out.Candidates,
		AcceptAll:  nonInteractive,
	})
	if err != nil {
		return nil, fmt.Errorf("review subtasks of %s: %w", parent.ID, err)
	}
	accepted := reviewed.Accepted

	if len(accepted) == 0 && !nonInteractive && uc.prompter != nil {
		useDefault, err := uc.prompter.Confirm("No subtasks accepted. Add a default first-stage subtask?", false)
		if err != nil {
			return nil, fmt.Errorf("confirm default subtask: %w", err)
		}
		if useDefault {
			accepted = []*domain.Task{domain.DefaultSubtask(parent, uc.clock)}
		}
	}
	return accepted, nil
}

// updateParent folds the accepted subtasks back into the parent record:
// child risks surface on the parent and the parent counts as touched.
func (uc *RunPlan) updateParent(parent *domain.Task, children []*domain.Task) {
	for _, c := range children {
		parent.Scope.Risks = domain.MergeRisks(parent.Scope.Risks, c.Scope.Risks)
	}
	parent.Meta.Updated = uc.clock.Now()
}

// reviewLongLeaves offers one more decomposition pass over leaves still
// estimated at a sprint or longer. Returns how many subtasks were added.
func (uc *RunPlan) reviewLongLeaves(ctx context.Context, tasks *[]*domain.Task) (int, error) {
	long := domain.FindLongDurationLeafTasks(*tasks)
	if len(long) == 0 {
		return 0, nil
	}
	created := 0
	for _, t := range long {
		prompt := fmt.Sprintf("%s is still estimated at %s. Break it down further?", t.Title, t.Scope.TimeEstimate)
		yes, err := uc.prompter.Confirm(prompt, false)
		if err != nil {
			return created, fmt.Errorf("confirm long task review: %w", err)
		}
		if !yes {
			continue
		}
		accepted, err := uc.decomposeOne(ctx, t, ReasonDuration, false)
		if err != nil {
			return created, err
		}
		if len(accepted) > 0 {
			*tasks = append(*tasks, accepted...)
			created += len(accepted)
			uc.updateParent(t, accepted)
		}
	}
	return created, nil
}
