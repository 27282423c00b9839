// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"time"

	"github.com/scopeplan/scopeplan/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// Ensure MockClock implements domain.Clock interface.
var _ domain.Clock = (*MockClock)(nil)

// MockPlanStore is a test double for domain.PlanStore keeping tasks per path.
// Fields are ordered to minimize memory padding.
type MockPlanStore struct {
	Plans        map[string][]*domain.Task
	LoadErr      error
	SaveErr      error
	DeleteErr    error
	SavedPaths   []string
	DeletedPaths []string
	Skipped      int
}

// NewMockPlanStore creates a new MockPlanStore with an initialized map.
func NewMockPlanStore() *MockPlanStore {
	return &MockPlanStore{Plans: make(map[string][]*domain.Task)}
}

// Ensure MockPlanStore implements domain.PlanStore interface.
var _ domain.PlanStore = (*MockPlanStore)(nil)

// Load returns the tasks configured for path.
func (m *MockPlanStore) Load(path string) ([]*domain.Task, int, error) {
	if m.LoadErr != nil {
		return nil, 0, m.LoadErr
	}
	tasks, ok := m.Plans[path]
	if !ok {
		return nil, 0, domain.ErrPlanNotFound
	}
	return tasks, m.Skipped, nil
}

// Save records the call and stores the tasks for path.
func (m *MockPlanStore) Save(path string, tasks []*domain.Task) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Plans[path] = tasks
	m.SavedPaths = append(m.SavedPaths, path)
	return nil
}

// Exists reports whether tasks were configured for path.
func (m *MockPlanStore) Exists(path string) bool {
	_, ok := m.Plans[path]
	return ok
}

// Delete records the call and removes the tasks configured for path.
func (m *MockPlanStore) Delete(path string) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	delete(m.Plans, path)
	m.DeletedPaths = append(m.DeletedPaths, path)
	return nil
}

// MockOracle is a test double for domain.Oracle. Documents and Texts are
// consumed in order; once exhausted, calls return empty results, matching
// the degradation contract of real backends.
type MockOracle struct {
	Documents []domain.Document
	Texts     []string
	Prompts   []string
}

// Ensure MockOracle implements domain.Oracle interface.
var _ domain.Oracle = (*MockOracle)(nil)

// GenerateDocument records the prompt and pops the next configured document.
func (m *MockOracle) GenerateDocument(_ context.Context, prompt string) domain.Document {
	m.Prompts = append(m.Prompts, prompt)
	if len(m.Documents) == 0 {
		return nil
	}
	doc := m.Documents[0]
	m.Documents = m.Documents[1:]
	return doc
}

// GenerateText records the prompt and pops the next configured text.
func (m *MockOracle) GenerateText(_ context.Context, prompt string) string {
	m.Prompts = append(m.Prompts, prompt)
	if len(m.Texts) == 0 {
		return ""
	}
	s := m.Texts[0]
	m.Texts = m.Texts[1:]
	return s
}

// ScriptedPrompter is a test double for domain.Prompter that replays
// pre-recorded answers in order. Each answer slice is consumed
// independently per method.
type ScriptedPrompter struct {
	Inputs     []string
	Confirms   []bool
	Selections []int
	Edits      []string

	InputPrompts  []string
	SelectPrompts []string
	EditDrafts    []string

	InputErr   error
	ConfirmErr error
	SelectErr  error
	EditErr    error
}

// Ensure ScriptedPrompter implements domain.Prompter interface.
var _ domain.Prompter = (*ScriptedPrompter)(nil)

// Input pops the next scripted input, falling back when the script answers
// with an empty string.
func (p *ScriptedPrompter) Input(prompt, fallback string) (string, error) {
	p.InputPrompts = append(p.InputPrompts, prompt)
	if p.InputErr != nil {
		return "", p.InputErr
	}
	if len(p.Inputs) == 0 {
		return fallback, nil
	}
	s := p.Inputs[0]
	p.Inputs = p.Inputs[1:]
	if s == "" {
		return fallback, nil
	}
	return s, nil
}

// Confirm pops the next scripted answer, defaulting when exhausted.
func (p *ScriptedPrompter) Confirm(_ string, dflt bool) (bool, error) {
	if p.ConfirmErr != nil {
		return false, p.ConfirmErr
	}
	if len(p.Confirms) == 0 {
		return dflt, nil
	}
	b := p.Confirms[0]
	p.Confirms = p.Confirms[1:]
	return b, nil
}

// Select pops the next scripted selection, defaulting to 0 when exhausted.
func (p *ScriptedPrompter) Select(prompt string, _ []string) (int, error) {
	p.SelectPrompts = append(p.SelectPrompts, prompt)
	if p.SelectErr != nil {
		return 0, p.SelectErr
	}
	if len(p.Selections) == 0 {
		return 0, nil
	}
	n := p.Selections[0]
	p.Selections = p.Selections[1:]
	return n, nil
}

// EditDraft records the initial draft and pops the next scripted edit,
// returning the draft unchanged when exhausted.
func (p *ScriptedPrompter) EditDraft(initial string) (string, error) {
	p.EditDrafts = append(p.EditDrafts, initial)
	if p.EditErr != nil {
		return "", p.EditErr
	}
	if len(p.Edits) == 0 {
		return initial, nil
	}
	s := p.Edits[0]
	p.Edits = p.Edits[1:]
	return s, nil
}

// RecordingLogger is a test double for domain.Logger capturing entries.
type RecordingLogger struct {
	Entries []LogEntry
}

// LogEntry is one captured log call.
type LogEntry struct {
	Level    string
	TaskID   string
	Category string
	Msg      string
}

// Ensure RecordingLogger implements domain.Logger interface.
var _ domain.Logger = (*RecordingLogger)(nil)

func (l *RecordingLogger) record(level, taskID, category, msg string) {
	l.Entries = append(l.Entries, LogEntry{Level: level, TaskID: taskID, Category: category, Msg: msg})
}

// Info captures an INFO entry.
func (l *RecordingLogger) Info(taskID, category, msg string) { l.record("INFO", taskID, category, msg) }

// Warn captures a WARN entry.
func (l *RecordingLogger) Warn(taskID, category, msg string) { l.record("WARN", taskID, category, msg) }

// Error captures an ERROR entry.
func (l *RecordingLogger) Error(taskID, category, msg string) {
	l.record("ERROR", taskID, category, msg)
}

// Debug captures a DEBUG entry.
func (l *RecordingLogger) Debug(taskID, category, msg string) {
	l.record("DEBUG", taskID, category, msg)
}
