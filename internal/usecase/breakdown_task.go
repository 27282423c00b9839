package usecase

import (
	"context"
	"fmt"

	"github.com/scopeplan/scopeplan/internal/domain"
)

// DefaultSubtaskCount is how many subtasks a breakdown asks the backend for
// when the caller does not say otherwise.
const DefaultSubtaskCount = 3

// BreakdownReason says what triggered a decomposition. The reason changes
// the instruction sent to the backend; the handling of the resulting
// candidates is identical either way.
type BreakdownReason int

const (
	// ReasonComplexity marks a task rated too complex to execute as one unit.
	ReasonComplexity BreakdownReason = iota
	// ReasonDuration marks a leaf still estimated at a sprint or longer.
	ReasonDuration
)

// BreakdownTaskInput contains the parameters for decomposing a task.
// Fields are ordered to minimize memory padding.
type BreakdownTaskInput struct {
	Parent *domain.Task    // Task to decompose (required)
	Count  int             // Requested number of subtasks (0 = default)
	Reason BreakdownReason // What triggered the decomposition
}

// BreakdownTaskOutput contains the generated candidate subtasks.
type BreakdownTaskOutput struct {
	Candidates []*domain.Task // Normalized candidates, parent links set
	Generated  bool           // False when the deterministic fallback was used
}

// BreakdownTask is the use case for decomposing a task into candidate
// subtasks. Generation failures never fail the use case: when the backend
// yields nothing usable, the single deterministic first-stage subtask is
// returned instead.
type BreakdownTask struct {
	oracle domain.Oracle
	clock  domain.Clock
	logger domain.Logger
}

// NewBreakdownTask creates a new BreakdownTask use case.
func NewBreakdownTask(oracle domain.Oracle, clock domain.Clock, logger domain.Logger) *BreakdownTask {
	return &BreakdownTask{
		oracle: oracle,
		clock:  clock,
		logger: logger,
	}
}

// Execute generates candidate subtasks for the given parent.
func (uc *BreakdownTask) Execute(ctx context.Context, in BreakdownTaskInput) (*BreakdownTaskOutput, error) {
	if in.Parent == nil {
		return nil, domain.ErrTaskNotFound
	}
	count := in.Count
	if count <= 0 {
		count = DefaultSubtaskCount
	}

	var raws []map[string]any
	if uc.oracle != nil {
		doc := uc.oracle.GenerateDocument(ctx, breakdownPrompt(in.Parent, count, in.Reason))
		raws = domain.ExtractCandidates(doc)
	}

	if len(raws) == 0 {
		if uc.logger != nil {
			uc.logger.Warn(in.Parent.ID, "breakdown", "no usable candidates generated, using default subtask")
		}
		return &BreakdownTaskOutput{
			Candidates: []*domain.Task{domain.DefaultSubtask(in.Parent, uc.clock)},
		}, nil
	}

	candidates := make([]*domain.Task, 0, len(raws))
	for _, raw := range raws {
		candidates = append(candidates, domain.NormalizeCandidate(raw, in.Parent, uc.clock))
	}
	if uc.logger != nil {
		uc.logger.Info(in.Parent.ID, "breakdown", fmt.Sprintf("generated %d candidate subtasks", len(candidates)))
	}
	return &BreakdownTaskOutput{Candidates: candidates, Generated: true}, nil
}
