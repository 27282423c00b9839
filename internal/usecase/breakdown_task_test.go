package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scopeplan/scopeplan/internal/domain"
	"github.com/scopeplan/scopeplan/internal/testutil"
)

var testNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func testParent(id string) *domain.Task {
	return &domain.Task{
		ID:    id,
		Title: "Rework ingestion pipeline",
		Purpose: domain.Purpose{
			DetailedDescription: "Replace the batch importer with streaming",
			Urgency:             domain.UrgencyStrategic,
		},
		Scope: domain.Scope{
			Size:         domain.SizeComplex,
			TimeEstimate: domain.TimeSprint,
		},
		Outcome: domain.Outcome{
			Type:                      domain.OutcomeTechnicalDebt,
			DetailedOutcomeDefinition: "Streaming ingestion in production",
		},
		Meta: domain.Meta{
			Status:     domain.StatusBacklog,
			Created:    testNow,
			Updated:    testNow,
			Confidence: domain.ConfidenceMedium,
			Team:       domain.TeamBackend,
		},
	}
}

func TestBreakdownTaskGeneratesCandidates(t *testing.T) {
	oracle := &testutil.MockOracle{
		Documents: []domain.Document{{
			"subtasks": []any{
				map[string]any{"title": "Design stream schema", "size": "straightforward", "time_estimate": "days"},
				map[string]any{"title": "Build consumer"},
			},
		}},
	}
	uc := NewBreakdownTask(oracle, &testutil.MockClock{NowTime: testNow}, domain.NopLogger{})

	parent := testParent("TASK-p")
	out, err := uc.Execute(context.Background(), BreakdownTaskInput{Parent: parent})
	require.NoError(t, err)
	assert.True(t, out.Generated)
	require.Len(t, out.Candidates, 2)

	first := out.Candidates[0]
	assert.Equal(t, "Design stream schema", first.Title)
	assert.Equal(t, domain.SizeStraightforward, first.Scope.Size)
	assert.Equal(t, "TASK-p", *first.ParentID)

	// Unspecified estimates default to simplified versions of the parent's.
	second := out.Candidates[1]
	assert.Equal(t, domain.SizeStraightforward, second.Scope.Size)
	assert.Equal(t, domain.TimeDays, second.Scope.TimeEstimate)

	require.Len(t, oracle.Prompts, 1)
	assert.Contains(t, oracle.Prompts[0], parent.Title)
	assert.Contains(t, oracle.Prompts[0], `"subtasks"`)
}

func TestBreakdownTaskReasonChangesInstruction(t *testing.T) {
	oracle := &testutil.MockOracle{}
	uc := NewBreakdownTask(oracle, &testutil.MockClock{NowTime: testNow}, domain.NopLogger{})

	_, err := uc.Execute(context.Background(), BreakdownTaskInput{
		Parent: testParent("TASK-p"),
		Reason: ReasonDuration,
	})
	require.NoError(t, err)
	require.Len(t, oracle.Prompts, 1)
	assert.Contains(t, oracle.Prompts[0], "sprint or longer")

	_, err = uc.Execute(context.Background(), BreakdownTaskInput{Parent: testParent("TASK-p")})
	require.NoError(t, err)
	require.Len(t, oracle.Prompts, 2)
	assert.Contains(t, oracle.Prompts[1], "too complex")
}

func TestBreakdownTaskFallsBackOnEmptyDocument(t *testing.T) {
	uc := NewBreakdownTask(&testutil.MockOracle{}, &testutil.MockClock{NowTime: testNow}, domain.NopLogger{})

	parent := testParent("TASK-p")
	out, err := uc.Execute(context.Background(), BreakdownTaskInput{Parent: parent})
	require.NoError(t, err)
	assert.False(t, out.Generated)
	require.Len(t, out.Candidates, 1)
	assert.Equal(t, "First stage of "+parent.Title, out.Candidates[0].Title)
}

func TestBreakdownTaskFallsBackOnTaskShapedDocument(t *testing.T) {
	oracle := &testutil.MockOracle{
		Documents: []domain.Document{{"title": "One big task", "size": "complex"}},
	}
	uc := NewBreakdownTask(oracle, &testutil.MockClock{NowTime: testNow}, domain.NopLogger{})

	out, err := uc.Execute(context.Background(), BreakdownTaskInput{Parent: testParent("TASK-p")})
	require.NoError(t, err)
	assert.False(t, out.Generated)
	require.Len(t, out.Candidates, 1)
}

func TestBreakdownTaskWithoutOracle(t *testing.T) {
	uc := NewBreakdownTask(nil, &testutil.MockClock{NowTime: testNow}, domain.NopLogger{})
	out, err := uc.Execute(context.Background(), BreakdownTaskInput{Parent: testParent("TASK-p")})
	require.NoError(t, err)
	assert.False(t, out.Generated)
	require.Len(t, out.Candidates, 1)
}

func TestBreakdownTaskNilParent(t *testing.T) {
	uc := NewBreakdownTask(nil, &testutil.MockClock{NowTime: testNow}, domain.NopLogger{})
	_, err := uc.Execute(context.Background(), BreakdownTaskInput{})
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}
