package domain

import (
	"context"
	"time"
)

// Document is an untyped JSON-shaped payload returned by a generation
// backend. The core never assumes any structure beyond map and list nesting;
// extraction of candidate subtasks is done defensively on top of it.
type Document map[string]any

// Oracle produces structured suggestions from free-form prompts. An
// implementation must never surface backend failures as errors: anything
// that goes wrong degrades to an empty document, and the caller falls back
// to deterministic defaults.
type Oracle interface {
	// GenerateDocument asks the backend for a JSON document answering the
	// prompt. A nil or empty document means the backend had nothing usable.
	GenerateDocument(ctx context.Context, prompt string) Document

	// GenerateText asks the backend for a short plain-text completion, such
	// as a task title. Empty string on any failure.
	GenerateText(ctx context.Context, prompt string) string
}

// PlanStore persists the flat task collection.
type PlanStore interface {
	// Load reads all tasks from the plan file. Invalid records are skipped,
	// not fatal; the returned count says how many were dropped.
	Load(path string) (tasks []*Task, skipped int, err error)

	// Save writes the full task collection, replacing the file atomically.
	Save(path string, tasks []*Task) error

	// Exists reports whether a plan file is present at path.
	Exists(path string) bool

	// Delete removes the plan file at path. Deleting a file that is
	// already gone is not an error.
	Delete(path string) error
}

// Prompter is the blocking single-turn interaction surface used during
// interactive planning. Every method returns once the user has answered.
type Prompter interface {
	// Input asks for a line of text, returning fallback on empty input.
	Input(prompt, fallback string) (string, error)

	// Confirm asks a yes/no question.
	Confirm(prompt string, dflt bool) (bool, error)

	// Select asks the user to pick one of the options by index.
	Select(prompt string, options []string) (int, error)

	// EditDraft opens a pre-filled draft in the user's editor and returns
	// the edited content.
	EditDraft(initial string) (string, error)
}

// Clock abstracts time to keep timestamp-sensitive logic testable.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock with the system clock, normalized to UTC at
// second precision.
type RealClock struct{}

func (RealClock) Now() time.Time { return UTCNow() }

// Logger is the minimal structured logging surface used across layers.
type Logger interface {
	Info(taskID, category, msg string)
	Warn(taskID, category, msg string)
	Error(taskID, category, msg string)
	Debug(taskID, category, msg string)
}

// NopLogger discards everything. Useful as a default and in tests.
type NopLogger struct{}

func (NopLogger) Info(taskID, category, msg string)  {}
func (NopLogger) Warn(taskID, category, msg string)  {}
func (NopLogger) Error(taskID, category, msg string) {}
func (NopLogger) Debug(taskID, category, msg string) {}

var _ Clock = RealClock{}
var _ Logger = NopLogger{}
