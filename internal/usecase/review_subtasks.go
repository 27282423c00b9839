package usecase

import (
	"context"
	"fmt"

	"github.com/scopeplan/scopeplan/internal/domain"
)

// ReviewSubtasksInput contains the parameters for reviewing candidates.
// Fields are ordered to minimize memory padding.
type ReviewSubtasksInput struct {
	Parent     *domain.Task
	Candidates []*domain.Task
	AcceptAll  bool // Skip interaction and accept every candidate
}

// ReviewSubtasksOutput contains the accepted subtasks after review.
type ReviewSubtasksOutput struct {
	Accepted []*domain.Task
}

// Review menu options presented per candidate.
var reviewOptions = []string{"accept", "skip", "edit"}

const (
	reviewAccept = iota
	reviewSkip
	reviewEdit
)

// ReviewSubtasks is the use case for walking a user through generated
// candidates one at a time. Before the first decision the user may pick an
// alternative implementation approach for the parent; after that, each
// candidate can be accepted as-is, skipped, or rewritten in the editor
// before acceptance.
type ReviewSubtasks struct {
	oracle   domain.Oracle
	prompter domain.Prompter
	clock    domain.Clock
	logger   domain.Logger
}

// NewReviewSubtasks creates a new ReviewSubtasks use case.
func NewReviewSubtasks(oracle domain.Oracle, prompter domain.Prompter, clock domain.Clock, logger domain.Logger) *ReviewSubtasks {
	return &ReviewSubtasks{
		oracle:   oracle,
		prompter: prompter,
		clock:    clock,
		logger:   logger,
	}
}

// Execute reviews the candidates and returns the accepted subset. The
// parent may be mutated: choosing an alternative approach reshapes its
// scope, and a hand-edited subtask can trigger a generated refinement of
// the parent record.
func (uc *ReviewSubtasks) Execute(ctx context.Context, in ReviewSubtasksInput) (*ReviewSubtasksOutput, error) {
	if in.AcceptAll || uc.prompter == nil {
		return &ReviewSubtasksOutput{Accepted: in.Candidates}, nil
	}

	if len(in.Candidates) > 0 {
		if err := uc.offerAlternatives(ctx, in.Parent); err != nil {
			return nil, err
		}
	}

	accepted := make([]*domain.Task, 0, len(in.Candidates))
	for i, cand := range in.Candidates {
		prompt := fmt.Sprintf("[%d/%d] %s (%s, %s)", i+1, len(in.Candidates), cand.Title, cand.Scope.Size, cand.Scope.TimeEstimate)
		choice, err := uc.prompter.Select(prompt, reviewOptions)
		if err != nil {
			return nil, fmt.Errorf("review candidate: %w", err)
		}
		switch choice {
		case reviewAccept:
			accepted = append(accepted, cand)
		case reviewSkip:
			if uc.logger != nil {
				uc.logger.Info(in.Parent.ID, "review", fmt.Sprintf("skipped candidate %q", cand.Title))
			}
		case reviewEdit:
			edited, err := uc.editCandidate(cand)
			if err != nil {
				return nil, err
			}
			accepted = append(accepted, edited)
			uc.refineParent(ctx, in.Parent, edited)
		default:
			return nil, fmt.Errorf("review candidate: unknown choice %d", choice)
		}
	}
	return &ReviewSubtasksOutput{Accepted: accepted}, nil
}

// offerAlternatives asks the backend for alternative implementation
// approaches and lets the user swap one in before reviewing candidates.
// No usable alternatives means the review proceeds without the detour.
func (uc *ReviewSubtasks) offerAlternatives(ctx context.Context, parent *domain.Task) error {
	if uc.oracle == nil {
		return nil
	}
	alts := domain.ExtractAlternatives(uc.oracle.GenerateDocument(ctx, alternativesPrompt(parent)))
	if len(alts) == 0 {
		return nil
	}

	options := make([]string, 0, len(alts)+1)
	options = append(options, "keep current approach")
	for _, alt := range alts {
		name := "unnamed approach"
		if s, ok := alt["name"].(string); ok && s != "" {
			name = s
		}
		options = append(options, name)
	}
	choice, err := uc.prompter.Select(fmt.Sprintf("Implementation approach for %q", parent.Title), options)
	if err != nil {
		return fmt.Errorf("select alternative: %w", err)
	}
	if choice <= 0 || choice > len(alts) {
		return nil
	}

	domain.ApplyAlternative(parent, alts[choice-1], uc.clock.Now())
	if uc.logger != nil {
		uc.logger.Info(parent.ID, "review", fmt.Sprintf("switched to alternative approach %q", options[choice]))
	}
	return nil
}

// refineParent asks the backend to fold a hand-authored subtask back into
// the parent record. Best effort: a missing or garbled response leaves the
// parent untouched.
func (uc *ReviewSubtasks) refineParent(ctx context.Context, parent, child *domain.Task) {
	if uc.oracle == nil {
		return
	}
	doc := uc.oracle.GenerateDocument(ctx, parentContextPrompt(parent, child))
	if domain.ApplyParentContext(parent, doc, uc.clock.Now()) && uc.logger != nil {
		uc.logger.Info(parent.ID, "review", "refined parent from edited subtask")
	}
}

// editCandidate round-trips a candidate through the editor as a draft. The
// edited fields are coerced leniently, with the candidate's current values
// as fallbacks, so a typo in the editor never aborts the review.
func (uc *ReviewSubtasks) editCandidate(cand *domain.Task) (*domain.Task, error) {
	initial, err := domain.RenderDraft(domain.SubtaskDraft{
		Title:        cand.Title,
		Size:         string(cand.Scope.Size),
		TimeEstimate: string(cand.Scope.TimeEstimate),
		Team:         string(cand.Meta.Team),
		Description:  cand.Purpose.DetailedDescription,
	})
	if err != nil {
		return nil, err
	}
	content, err := uc.prompter.EditDraft(initial)
	if err != nil {
		return nil, fmt.Errorf("edit candidate: %w", err)
	}
	draft, err := domain.ParseDraft(content)
	if err != nil {
		if uc.logger != nil {
			uc.logger.Warn(cand.ID, "review", fmt.Sprintf("unparseable draft, keeping candidate as-is: %v", err))
		}
		return cand, nil
	}

	edited := cand.Clone()
	edited.Title = draft.Title
	if draft.Description != "" {
		edited.Purpose.DetailedDescription = draft.Description
	}
	edited.Scope.Size = domain.CoerceSize(draft.Size, cand.Scope.Size)
	edited.Scope.TimeEstimate = domain.CoerceTime(draft.TimeEstimate, cand.Scope.TimeEstimate)
	edited.Meta.Team = domain.CoerceTeam(draft.Team, cand.Meta.Team)
	edited.Meta.Updated = uc.clock.Now()
	return edited, nil
}
