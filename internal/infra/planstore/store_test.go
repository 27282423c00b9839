package planstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scopeplan/scopeplan/internal/domain"
)

func storeTask(id string) *domain.Task {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	return &domain.Task{
		ID:    id,
		Title: "Build importer",
		Purpose: domain.Purpose{
			DetailedDescription: "Import data",
			Urgency:             domain.UrgencyStrategic,
		},
		Scope: domain.Scope{
			Size:         domain.SizeComplex,
			TimeEstimate: domain.TimeSprint,
		},
		Outcome: domain.Outcome{
			Type:                      domain.OutcomeTechnicalDebt,
			DetailedOutcomeDefinition: "Data imported",
		},
		Meta: domain.Meta{
			Status:     domain.StatusBacklog,
			Created:    now,
			Updated:    now,
			Confidence: domain.ConfidenceMedium,
		},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.json")
	store := New(nil)

	pid := "TASK-a"
	child := storeTask("TASK-b")
	child.ParentID = &pid
	want := []*domain.Task{storeTask("TASK-a"), child}

	require.NoError(t, store.Save(path, want))
	assert.True(t, store.Exists(path))

	got, skipped, err := store.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0, skipped)
	require.Len(t, got, 2)
	assert.Equal(t, want[0], got[0])
	assert.Equal(t, want[1], got[1])
}

func TestLoadMissingFile(t *testing.T) {
	store := New(nil)
	_, _, err := store.Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.ErrorIs(t, err, domain.ErrPlanNotFound)
	assert.False(t, store.Exists(filepath.Join(t.TempDir(), "absent.json")))
}

func TestLoadSkipsInvalidRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.json")
	good, err := json.Marshal(storeTask("TASK-good"))
	require.NoError(t, err)

	content := `{"tasks": [` +
		string(good) + `,` +
		`{"id": "TASK-bad", "title": "no enums at all"},` +
		`"not even an object"` +
		`]}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	got, skipped, err := New(nil).Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, skipped)
	require.Len(t, got, 1)
	assert.Equal(t, "TASK-good", got[0].ID)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))
	_, _, err := New(nil).Load(path)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrPlanNotFound)
}

func TestSaveCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deep", "plan.json")
	store := New(nil)
	require.NoError(t, store.Save(path, []*domain.Task{storeTask("TASK-a")}))
	assert.True(t, store.Exists(path))
}

func TestSaveLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.json")
	require.NoError(t, New(nil).Save(path, nil))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "plan.json", entries[0].Name())
}

func TestDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.json")
	store := New(nil)
	require.NoError(t, store.Save(path, []*domain.Task{storeTask("TASK-a")}))

	require.NoError(t, store.Delete(path))
	assert.False(t, store.Exists(path))

	// Deleting again is not an error.
	assert.NoError(t, store.Delete(path))
}

func TestTimestampsSerializeWithZSuffix(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.json")
	require.NoError(t, New(nil).Save(path, []*domain.Task{storeTask("TASK-a")}))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"created": "2026-03-14T12:00:00Z"`)
}
