package domain

import "time"

// ScheduledTask represents a recurring background task.
type ScheduledTask struct {
	// ID is the unique identifier for the task.
	ID string

	// Name is a human-readable name for the task.
	Name string

	// Interval defines how often the task should run.
	Interval time.Duration

	// LastRun is when the task last ran.
	LastRun time.Time

	// NextRun is when the task should run next.
	NextRun time.Time

	// LastError contains the last error message, if any.
	LastError string

	// LastSuccess is when the task last completed successfully.
	LastSuccess time.Time

	// Enabled indicates whether the task is active.
	Enabled bool
}

// IsDue returns true if the task is enabled and its next run has passed.
func (t ScheduledTask) IsDue(now time.Time) bool {
	if !t.Enabled {
		return false
	}
	return t.NextRun.IsZero() || !t.NextRun.After(now)
}

// TaskResult represents the outcome of a task execution.
type TaskResult struct {
	// TaskID identifies which task was run.
	TaskID string

	// StartedAt is when the task started.
	StartedAt time.Time

	// EndedAt is when the task completed.
	EndedAt time.Time

	// Success indicates whether the task completed without error.
	Success bool

	// Error contains the error message if Success is false.
	Error string

	// ItemsProcessed is a count of items handled (places for a refresh).
	ItemsProcessed int

	// ItemsFailed is a count of row errors recorded by a refresh.
	ItemsFailed int
}

// Task IDs for built-in tasks.
const (
	TaskIDDatasetRefresh = "dataset-refresh"
)
