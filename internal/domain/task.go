// Package domain contains core business entities and interfaces.
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Urgency classifies why a task matters now.
type Urgency string

const (
	UrgencyStrategic       Urgency = "strategic"
	UrgencyMissionCritical Urgency = "mission-critical"
	UrgencyMaintenance     Urgency = "maintenance"
	UrgencyExploratory     Urgency = "exploratory"
)

// OutcomeType classifies what kind of result a task produces.
type OutcomeType string

const (
	OutcomeCustomerFacing OutcomeType = "customer-facing"
	OutcomeBusinessMetric OutcomeType = "business-metric"
	OutcomeTechnicalDebt  OutcomeType = "technical-debt"
	OutcomeLearning       OutcomeType = "learning"
)

// Status represents the lifecycle state of a task.
type Status string

const (
	StatusBacklog    Status = "backlog"
	StatusInProgress Status = "in-progress"
	StatusReview     Status = "review"
	StatusDone       Status = "done"
)

// Confidence expresses how much the estimate can be trusted.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// Team identifies the owning team. Empty means unassigned.
type Team string

// Valid team values.
const (
	TeamProduct  Team = "Product"
	TeamDesign   Team = "Design"
	TeamFrontend Team = "Frontend"
	TeamBackend  Team = "Backend"
	TeamML       Team = "ML"
	TeamInfra    Team = "Infra"
	TeamTesting  Team = "Testing"
	TeamOther    Team = "Other"
)

// IsValid returns true if the urgency is a known valid value.
func (u Urgency) IsValid() bool {
	switch u {
	case UrgencyStrategic, UrgencyMissionCritical, UrgencyMaintenance, UrgencyExploratory:
		return true
	}
	return false
}

// IsValid returns true if the outcome type is a known valid value.
func (o OutcomeType) IsValid() bool {
	switch o {
	case OutcomeCustomerFacing, OutcomeBusinessMetric, OutcomeTechnicalDebt, OutcomeLearning:
		return true
	}
	return false
}

// IsValid returns true if the status is a known valid value.
func (s Status) IsValid() bool {
	switch s {
	case StatusBacklog, StatusInProgress, StatusReview, StatusDone:
		return true
	}
	return false
}

// IsValid returns true if the confidence is a known valid value.
func (c Confidence) IsValid() bool {
	switch c {
	case ConfidenceLow, ConfidenceMedium, ConfidenceHigh:
		return true
	}
	return false
}

// IsValid returns true if the team is a known valid value.
func (t Team) IsValid() bool {
	switch t {
	case TeamProduct, TeamDesign, TeamFrontend, TeamBackend, TeamML, TeamInfra, TeamTesting, TeamOther:
		return true
	}
	return false
}

// CoerceTeam applies the lenient coercion policy for team values from
// untrusted sources: a valid value passes through, anything else becomes
// the fallback.
func CoerceTeam(raw string, fallback Team) Team {
	if t := Team(raw); t.IsValid() {
		return t
	}
	return fallback
}

// Purpose describes why a task exists.
type Purpose struct {
	DetailedDescription string   `json:"detailed_description"`
	Alignment           []string `json:"alignment"`
	Urgency             Urgency  `json:"urgency"`
}

// Scope describes how big a task is and what stands in its way.
type Scope struct {
	Size         Size         `json:"size"`
	TimeEstimate TimeEstimate `json:"time_estimate"`
	Dependencies []string     `json:"dependencies"`
	Risks        []string     `json:"risks"`
}

// Outcome describes what "done" looks like.
type Outcome struct {
	Type                      OutcomeType `json:"type"`
	DetailedOutcomeDefinition string      `json:"detailed_outcome_definition"`
	AcceptanceCriteria        []string    `json:"acceptance_criteria"`
	Metric                    string      `json:"metric,omitempty"`
	ValidationMethod          string      `json:"validation_method,omitempty"`
}

// Meta holds bookkeeping fields.
type Meta struct {
	Status     Status     `json:"status"`
	Priority   *int       `json:"priority"`
	Created    time.Time  `json:"created"`
	Updated    time.Time  `json:"updated"`
	DueDate    *time.Time `json:"due_date"`
	Confidence Confidence `json:"confidence"`
	Team       Team       `json:"team,omitempty"`
}

// Task is the unit of work managed by scopeplan. ParentID is a back-reference
// only; the task does not own its parent or children. Ownership of the whole
// set lives in the flat collection held by the plan engine.
type Task struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Purpose  Purpose `json:"purpose"`
	Scope    Scope   `json:"scope"`
	Outcome  Outcome `json:"outcome"`
	Meta     Meta    `json:"meta"`
	ParentID *string `json:"parent_id"`
}

// IsRoot returns true if this is a root task (no parent).
func (t *Task) IsRoot() bool {
	return t.ParentID == nil
}

// Validate checks every enum-typed field against its closed set of values.
// It returns the first violation wrapped in ErrInvalidTask so that callers
// can skip or default the record instead of crashing.
func (t *Task) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidTask)
	}
	if t.Title == "" {
		return fmt.Errorf("%w: task %s: %s", ErrInvalidTask, t.ID, ErrEmptyTitle)
	}
	if !t.Purpose.Urgency.IsValid() {
		return fmt.Errorf("%w: task %s: invalid urgency %q", ErrInvalidTask, t.ID, t.Purpose.Urgency)
	}
	if !t.Scope.Size.IsValid() {
		return fmt.Errorf("%w: task %s: invalid size %q", ErrInvalidTask, t.ID, t.Scope.Size)
	}
	if !t.Scope.TimeEstimate.IsValid() {
		return fmt.Errorf("%w: task %s: invalid time estimate %q", ErrInvalidTask, t.ID, t.Scope.TimeEstimate)
	}
	if !t.Outcome.Type.IsValid() {
		return fmt.Errorf("%w: task %s: invalid outcome type %q", ErrInvalidTask, t.ID, t.Outcome.Type)
	}
	if !t.Meta.Status.IsValid() {
		return fmt.Errorf("%w: task %s: invalid status %q", ErrInvalidTask, t.ID, t.Meta.Status)
	}
	if !t.Meta.Confidence.IsValid() {
		return fmt.Errorf("%w: task %s: invalid confidence %q", ErrInvalidTask, t.ID, t.Meta.Confidence)
	}
	if t.Meta.Team != "" && !t.Meta.Team.IsValid() {
		return fmt.Errorf("%w: task %s: invalid team %q", ErrInvalidTask, t.ID, t.Meta.Team)
	}
	return nil
}

// Clone returns a deep copy of the task.
func (t *Task) Clone() *Task {
	c := *t
	c.Purpose.Alignment = append([]string(nil), t.Purpose.Alignment...)
	c.Scope.Dependencies = append([]string(nil), t.Scope.Dependencies...)
	c.Scope.Risks = append([]string(nil), t.Scope.Risks...)
	c.Outcome.AcceptanceCriteria = append([]string(nil), t.Outcome.AcceptanceCriteria...)
	if t.Meta.Priority != nil {
		p := *t.Meta.Priority
		c.Meta.Priority = &p
	}
	if t.Meta.DueDate != nil {
		d := *t.Meta.DueDate
		c.Meta.DueDate = &d
	}
	if t.ParentID != nil {
		pid := *t.ParentID
		c.ParentID = &pid
	}
	return &c
}

// MergeRisks combines two risk lists as a set, deduplicating by exact string
// value while preserving first-seen order.
func MergeRisks(existing, incoming []string) []string {
	seen := make(map[string]bool, len(existing)+len(incoming))
	merged := make([]string, 0, len(existing)+len(incoming))
	for _, r := range existing {
		if r != "" && !seen[r] {
			merged = append(merged, r)
			seen[r] = true
		}
	}
	for _, r := range incoming {
		if r != "" && !seen[r] {
			merged = append(merged, r)
			seen[r] = true
		}
	}
	return merged
}

// NewTaskID synthesizes a fresh opaque task identifier.
func NewTaskID() string {
	return "TASK-" + uuid.NewString()[:8]
}

// UTCNow returns the current time in UTC at second precision, so that
// serialized timestamps carry a trailing "Z" without sub-second noise.
func UTCNow() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
