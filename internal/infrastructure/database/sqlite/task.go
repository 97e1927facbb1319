package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"deadline-tracker/internal/domain/entity"
	"deadline-tracker/internal/domain/repository"
	appErrors "deadline-tracker/internal/pkg/errors"

	"gorm.io/gorm"
)

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new instance of TaskRepository.
func NewTaskRepository(db *gorm.DB) repository.TaskRepository {
	return &taskRepository{db: db}
}

// FindByID retrieves a task by its ID.
func (r *taskRepository) FindByID(ctx context.Context, id uint) (*entity.Task, error) {
	var task entity.Task
	if err := r.db.WithContext(ctx).First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %d", appErrors.ErrTaskNotFound, id)
		}
		return nil, fmt.Errorf("🔴 ERROR: failed to find task by id %d: %w", id, err)
	}
	return &task, nil
}

// FindAll retrieves all tasks ordered by due date ascending.
func (r *taskRepository) FindAll(ctx context.Context) ([]*entity.Task, error) {
	var tasks []*entity.Task
	if err := r.db.WithContext(ctx).Order("due_date asc").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("🔴 ERROR: failed to find all tasks: %w", err)
	}
	return tasks, nil
}

// FindPending retrieves all not-completed tasks ordered by due date ascending.
func (r *taskRepository) FindPending(ctx context.Context) ([]*entity.Task, error) {
	var tasks []*entity.Task
	if err := r.db.WithContext(ctx).Where("completed = ?", false).Order("due_date asc").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("🔴 ERROR: failed to find pending tasks: %w", err)
	}
	return tasks, nil
}

// FindCompleted retrieves all completed tasks ordered by due date ascending.
func (r *taskRepository) FindCompleted(ctx context.Context) ([]*entity.Task, error) {
	var tasks []*entity.Task
	if err := r.db.WithContext(ctx).Where("completed = ?", true).Order("due_date asc").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("🔴 ERROR: failed to find completed tasks: %w", err)
	}
	return tasks, nil
}

// FindUpcomingReminders retrieves not-completed tasks whose reminder time is after now.
func (r *taskRepository) FindUpcomingReminders(ctx context.Context, now time.Time) ([]*entity.Task, error) {
	var tasks []*entity.Task
	if err := r.db.WithContext(ctx).
		Where("completed = ? AND reminder_time IS NOT NULL AND reminder_time > ?", false, now).
		Order("reminder_time asc").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("🔴 ERROR: failed to find upcoming reminders: %w", err)
	}
	return tasks, nil
}

// Create creates a new task. Returns the ID of the created task.
func (r *taskRepository) Create(ctx context.Context, task *entity.Task) (uint, error) {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return 0, fmt.Errorf("🔴 ERROR: failed to create task %q: %w", task.Title, err)
	}
	return task.ID, nil
}

// Update updates an existing task.
func (r *taskRepository) Update(ctx context.Context, task *entity.Task) error {
	if err := r.db.WithContext(ctx).Save(task).Error; err != nil {
		return fmt.Errorf("🔴 ERROR: failed to update task %d: %w", task.ID, err)
	}
	return nil
}

// Delete deletes a task by its ID.
func (r *taskRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&entity.Task{}, id).Error; err != nil {
		return fmt.Errorf("🔴 ERROR: failed to delete task %d: %w", id, err)
	}
	return nil
}

// DeleteCompletedBefore deletes completed tasks with a due date older than the threshold.
func (r *taskRepository) DeleteCompletedBefore(ctx context.Context, threshold time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("completed = ? AND due_date < ?", true, threshold).
		Delete(&entity.Task{})
	if result.Error != nil {
		return 0, fmt.Errorf("🔴 ERROR: failed to delete completed tasks older than %v: %w", threshold, result.Error)
	}
	return result.RowsAffected, nil
}
