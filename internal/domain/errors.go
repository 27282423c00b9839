package domain

import "errors"

// Sentinel errors for the plan domain. Callers match with errors.Is.
var (
	// ErrInvalidTask indicates that a task failed field validation.
	ErrInvalidTask = errors.New("invalid task")

	// ErrEmptyTitle indicates a task without a title.
	ErrEmptyTitle = errors.New("empty title")

	// ErrTaskNotFound indicates that a task with the given ID does not exist.
	ErrTaskNotFound = errors.New("task not found")

	// ErrPlanNotFound indicates that no plan file exists at the given path.
	ErrPlanNotFound = errors.New("plan not found")

	// ErrParentCycle indicates a parent chain that loops back on itself.
	ErrParentCycle = errors.New("cycle detected in task hierarchy")

	// ErrDepthExceeded indicates a parent chain longer than the hard bound,
	// treated the same as a cycle.
	ErrDepthExceeded = errors.New("task hierarchy exceeds depth bound")

	// ErrAborted indicates that the user cancelled an interactive flow.
	ErrAborted = errors.New("aborted by user")
)
