package repository

import (
	"context"
	"deadline-tracker/internal/domain/entity"
	"time"
)

// TaskRepository defines the interface for task data operations.
type TaskRepository interface {
	// FindByID retrieves a task by its ID.
	FindByID(ctx context.Context, id uint) (*entity.Task, error)
	// FindAll retrieves all tasks ordered by due date ascending.
	FindAll(ctx context.Context) ([]*entity.Task, error)
	// FindPending retrieves all not-completed tasks ordered by due date ascending.
	FindPending(ctx context.Context) ([]*entity.Task, error)
	// FindCompleted retrieves all completed tasks ordered by due date ascending.
	FindCompleted(ctx context.Context) ([]*entity.Task, error)
	// FindUpcomingReminders retrieves not-completed tasks whose reminder time is after now
	// (used for rescheduling on startup and periodic resync).
	FindUpcomingReminders(ctx context.Context, now time.Time) ([]*entity.Task, error)
	// Create creates a new task. Returns the ID of the created task.
	Create(ctx context.Context, task *entity.Task) (uint, error)
	// Update updates an existing task.
	Update(ctx context.Context, task *entity.Task) error
	// Delete deletes a task by its ID.
	Delete(ctx context.Context, id uint) error
	// DeleteCompletedBefore deletes completed tasks with a due date older than the
	// threshold. Returns the number of deleted rows.
	DeleteCompletedBefore(ctx context.Context, threshold time.Time) (int64, error)
}
