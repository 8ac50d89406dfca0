package core

import (
	"time"

	"github.com/google/uuid"
)

// TaskStatus describes the lifecycle state of a task.
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusRunning   TaskStatus = "running"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusFailed    TaskStatus = "failed"
)

// Task is one unit of work executed under a role.
type Task struct {
	ID         string
	Name       string
	Input      string
	Role       RoleKey
	Status     TaskStatus
	Output     string
	Error      string
	CreatedAt  time.Time
	StartedAt  time.Time
	FinishedAt time.Time
}

// NewTask creates a pending task with a generated ID.
func NewTask(name, input string, role RoleKey) *Task {
	return &Task{
		ID:        uuid.NewString(),
		Name:      name,
		Input:     input,
		Role:      role,
		Status:    TaskStatusPending,
		CreatedAt: time.Now().UTC(),
	}
}

// Start marks the task as running.
func (t *Task) Start() {
	t.Status = TaskStatusRunning
	t.StartedAt = time.Now().UTC()
}

// Complete marks the task as completed with an output.
func (t *Task) Complete(output string) {
	t.Status = TaskStatusCompleted
	t.Output = output
	t.FinishedAt = time.Now().UTC()
}

// Fail marks the task as failed.
func (t *Task) Fail(reason string) {
	t.Status = TaskStatusFailed
	t.Error = reason
	t.FinishedAt = time.Now().UTC()
}

// Duration returns the time between start and finish, or zero if unfinished.
func (t *Task) Duration() time.Duration {
	if t.StartedAt.IsZero() || t.FinishedAt.IsZero() {
		return 0
	}
	return t.FinishedAt.Sub(t.StartedAt)
}
