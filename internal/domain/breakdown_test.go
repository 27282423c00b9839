package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

var testNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func TestExtractCandidates(t *testing.T) {
	doc := Document{
		"subtasks": []any{
			map[string]any{"title": "first"},
			"not a mapping",
			map[string]any{"title": "second"},
			42,
		},
	}
	got := ExtractCandidates(doc)
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0]["title"])
	assert.Equal(t, "second", got[1]["title"])
}

func TestExtractCandidatesStrictShapes(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
	}{
		{"nil document", nil},
		{"missing key", Document{"tasks": []any{}}},
		{"non-list subtasks", Document{"subtasks": map[string]any{"title": "x"}}},
		{"single task-shaped object", Document{"title": "One task", "size": "complex"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, ExtractCandidates(tt.doc))
		})
	}
}

func TestExtractAlternatives(t *testing.T) {
	doc := Document{
		"alternatives": []any{
			map[string]any{"name": "buy"},
			"not a mapping",
			map[string]any{"name": "build"},
		},
	}
	got := ExtractAlternatives(doc)
	require.Len(t, got, 2)
	assert.Equal(t, "buy", got[0]["name"])

	assert.Empty(t, ExtractAlternatives(nil))
	assert.Empty(t, ExtractAlternatives(Document{"name": "not a list"}))
	assert.Empty(t, ExtractAlternatives(Document{"alternatives": "wrong type"}))
}

func TestApplyAlternative(t *testing.T) {
	parent := validTask("TASK-parent") // complex / sprint
	ApplyAlternative(parent, map[string]any{
		"name":          "Managed service",
		"description":   "Rent it instead",
		"size":          "trivial",
		"time_estimate": "days",
	}, testNow)

	assert.Equal(t, SizeTrivial, parent.Scope.Size)
	assert.Equal(t, TimeDays, parent.Scope.TimeEstimate)
	assert.Contains(t, parent.Purpose.DetailedDescription, "Managed service")
	assert.Contains(t, parent.Purpose.DetailedDescription, "Rent it instead")
	assert.Equal(t, testNow, parent.Meta.Updated)
}

func TestApplyAlternativeKeepsScopeOnGarbage(t *testing.T) {
	parent := validTask("TASK-parent")
	before := parent.Scope
	ApplyAlternative(parent, map[string]any{"size": "enormous", "time_estimate": 7}, testNow)
	assert.Equal(t, before, parent.Scope)
}

func TestApplyParentContext(t *testing.T) {
	parent := validTask("TASK-parent")
	parent.Scope.Risks = []string{"old risk"}

	changed := ApplyParentContext(parent, Document{
		"detailed_description":        "Sharper description",
		"risks":                       []any{"old risk", "new risk"},
		"detailed_outcome_definition": "Sharper outcome",
		"team":                        "ML",
	}, testNow)

	assert.True(t, changed)
	assert.Equal(t, "Sharper description", parent.Purpose.DetailedDescription)
	assert.Equal(t, []string{"old risk", "new risk"}, parent.Scope.Risks)
	assert.Equal(t, "Sharper outcome", parent.Outcome.DetailedOutcomeDefinition)
	assert.Equal(t, TeamML, parent.Meta.Team)
	assert.Equal(t, testNow, parent.Meta.Updated)
}

func TestApplyParentContextIgnoresUnusable(t *testing.T) {
	parent := validTask("TASK-parent")
	before := parent.Meta.Updated

	assert.False(t, ApplyParentContext(parent, nil, testNow))
	assert.False(t, ApplyParentContext(parent, Document{"team": "Wizards"}, testNow))
	assert.Equal(t, before, parent.Meta.Updated)
}

func TestNormalizeCandidateFullyPopulated(t *testing.T) {
	parent := validTask("TASK-parent")
	parent.Meta.Team = TeamBackend
	parent.Purpose.Alignment = []string{"q3-goals"}

	raw := map[string]any{
		"title":         "Write schema migration",
		"description":   "Move the old tables over",
		"size":          "straightforward",
		"time_estimate": "days",
		"team":          "Infra",
		"outcome":       "Tables migrated without loss",
	}
	got := NormalizeCandidate(raw, parent, fixedClock{testNow})

	require.NoError(t, got.Validate())
	assert.Equal(t, "Write schema migration", got.Title)
	assert.Equal(t, "Move the old tables over", got.Purpose.DetailedDescription)
	assert.Equal(t, SizeStraightforward, got.Scope.Size)
	assert.Equal(t, TimeDays, got.Scope.TimeEstimate)
	assert.Equal(t, TeamInfra, got.Meta.Team)
	assert.Equal(t, "Tables migrated without loss", got.Outcome.DetailedOutcomeDefinition)
	assert.Equal(t, []string{"q3-goals"}, got.Purpose.Alignment)
	require.NotNil(t, got.ParentID)
	assert.Equal(t, "TASK-parent", *got.ParentID)
	assert.Equal(t, StatusBacklog, got.Meta.Status)
	assert.Equal(t, testNow, got.Meta.Created)
	assert.NotEqual(t, parent.ID, got.ID)
}

func TestNormalizeCandidateDefaults(t *testing.T) {
	parent := validTask("TASK-parent") // complex / sprint
	got := NormalizeCandidate(map[string]any{}, parent, fixedClock{testNow})

	require.NoError(t, got.Validate())
	assert.Equal(t, "Subtask for: "+parent.Title, got.Title)
	assert.Equal(t, "Subtask for: "+parent.Purpose.DetailedDescription, got.Purpose.DetailedDescription)
	assert.Equal(t, SizeStraightforward, got.Scope.Size, "one rank below parent")
	assert.Equal(t, TimeDays, got.Scope.TimeEstimate, "simplified from the parent's sprint")
	assert.Equal(t, parent.Purpose.Urgency, got.Purpose.Urgency)
	assert.Equal(t, parent.Outcome.Type, got.Outcome.Type)
}

func TestNormalizeCandidateFloorsSmallParent(t *testing.T) {
	parent := validTask("TASK-parent")
	parent.Scope.Size = SizeTrivial
	parent.Scope.TimeEstimate = TimeHours

	got := NormalizeCandidate(map[string]any{}, parent, fixedClock{testNow})
	assert.Equal(t, SizeTrivial, got.Scope.Size)
	assert.Equal(t, TimeHours, got.Scope.TimeEstimate)
}

func TestNormalizeCandidateStripsEchoedParentTitle(t *testing.T) {
	parent := validTask("TASK-parent")
	parent.Title = "Ship the new importer"

	tests := []struct {
		raw  string
		want string
	}{
		{"Ship the new importer: design the schema", "design the schema"},
		{"Ship the new importer - write the consumer", "write the consumer"},
		{"Ship the new importer", "Ship the new importer"},
		{"Unrelated cleanup", "Unrelated cleanup"},
	}
	for _, tt := range tests {
		got := NormalizeCandidate(map[string]any{"title": tt.raw}, parent, fixedClock{testNow})
		assert.Equal(t, tt.want, got.Title)
	}
}

func TestNormalizeCandidateKeepsProvidedID(t *testing.T) {
	parent := validTask("TASK-parent")
	raw := map[string]any{
		"id":        "TASK-custom",
		"parent_id": "TASK-elsewhere",
		"status":    "done",
		"title":     "Honest work",
	}
	got := NormalizeCandidate(raw, parent, fixedClock{testNow})
	assert.Equal(t, "TASK-custom", got.ID)

	// The claimed parent and status are still overridden.
	assert.Equal(t, "TASK-parent", *got.ParentID)
	assert.Equal(t, StatusBacklog, got.Meta.Status)

	got = NormalizeCandidate(map[string]any{"title": "Anonymous"}, parent, fixedClock{testNow})
	assert.True(t, strings.HasPrefix(got.ID, "TASK-"), "a missing id is synthesized")
	assert.NotEqual(t, parent.ID, got.ID)
}

func TestNormalizeCandidateReadsNestedScope(t *testing.T) {
	parent := validTask("TASK-parent")
	raw := map[string]any{
		"title": "Wire the queue",
		"scope": map[string]any{
			"size":          "trivial",
			"time_estimate": "hours",
			"dependencies":  []any{"Dependency 1"},
			"risks":         []any{"Risk 1", "Risk 2"},
		},
	}
	got := NormalizeCandidate(raw, parent, fixedClock{testNow})

	require.NoError(t, got.Validate())
	assert.Equal(t, SizeTrivial, got.Scope.Size)
	assert.Equal(t, TimeHours, got.Scope.TimeEstimate)
	assert.Equal(t, []string{"Dependency 1"}, got.Scope.Dependencies)
	assert.Equal(t, []string{"Risk 1", "Risk 2"}, got.Scope.Risks)
}

func TestDefaultSubtask(t *testing.T) {
	parent := validTask("TASK-parent")
	parent.Meta.Confidence = ConfidenceHigh
	got := DefaultSubtask(parent, fixedClock{testNow})

	require.NoError(t, got.Validate())
	assert.Equal(t, "First stage of "+parent.Title, got.Title)
	assert.Equal(t, "Initial phase of work on "+parent.Purpose.DetailedDescription, got.Purpose.DetailedDescription)
	assert.Equal(t, SizeStraightforward, got.Scope.Size)
	assert.Equal(t, TimeDays, got.Scope.TimeEstimate)
	assert.Equal(t, ConfidenceHigh, got.Meta.Confidence, "inherited from the parent")
	assert.Equal(t, "TASK-parent", *got.ParentID)
}

func TestDefaultSubtaskTruncatesLongPurpose(t *testing.T) {
	parent := validTask("TASK-parent")
	long := ""
	for i := 0; i < 10; i++ {
		long += "0123456789"
	}
	parent.Purpose.DetailedDescription = long

	got := DefaultSubtask(parent, fixedClock{testNow})
	assert.Equal(t, "Initial phase of work on "+long[:60], got.Purpose.DetailedDescription)
}
