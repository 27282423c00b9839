// Package planstore provides a JSON file-based implementation of PlanStore.
package planstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/scopeplan/scopeplan/internal/domain"
)

// fileData represents the plan file structure.
type fileData struct {
	Tasks []json.RawMessage `json:"tasks"`
}

// Store implements domain.PlanStore using one JSON file per plan.
type Store struct {
	logger domain.Logger
}

// New creates a new Store.
func New(logger domain.Logger) *Store {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &Store{logger: logger}
}

// Ensure Store implements PlanStore.
var _ domain.PlanStore = (*Store)(nil)

// Load reads all tasks from the plan file at path. Records that fail to
// decode or validate are skipped, not fatal, so one corrupt entry cannot
// take the whole plan hostage. The skipped count reports how many were
// dropped.
func (s *Store) Load(path string) ([]*domain.Task, int, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, fmt.Errorf("%w: %s", domain.ErrPlanNotFound, path)
		}
		return nil, 0, fmt.Errorf("read plan file: %w", err)
	}

	var data fileData
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, 0, fmt.Errorf("parse plan file: %w", err)
	}

	tasks := make([]*domain.Task, 0, len(data.Tasks))
	skipped := 0
	for i, raw := range data.Tasks {
		var t domain.Task
		if err := json.Unmarshal(raw, &t); err != nil {
			s.logger.Warn("", "store", fmt.Sprintf("skipping record %d: %v", i, err))
			skipped++
			continue
		}
		if err := t.Validate(); err != nil {
			s.logger.Warn(t.ID, "store", fmt.Sprintf("skipping record %d: %v", i, err))
			skipped++
			continue
		}
		tasks = append(tasks, &t)
	}
	return tasks, skipped, nil
}

// Save writes the full task collection to path, replacing the file
// atomically via a temp file and rename.
func (s *Store) Save(path string, tasks []*domain.Task) error {
	raws := make([]json.RawMessage, 0, len(tasks))
	for _, t := range tasks {
		raw, err := json.Marshal(t)
		if err != nil {
			return fmt.Errorf("marshal task %s: %w", t.ID, err)
		}
		raws = append(raws, raw)
	}
	content, err := json.MarshalIndent(fileData{Tasks: raws}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Exists reports whether a plan file is present at path.
func (s *Store) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Delete removes the plan file at path. A file that is already gone is not
// an error.
func (s *Store) Delete(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete plan file: %w", err)
	}
	return nil
}
