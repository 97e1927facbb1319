package service

import (
	"context"

	"deadline-tracker/internal/application/dto"
	"deadline-tracker/internal/domain/constant"
)

// TaskService defines the interface for task-related business logic.
type TaskService interface {
	// CreateTask creates a new task and schedules its reminder when one is set.
	// It returns the ID of the newly created task.
	CreateTask(ctx context.Context, req dto.CreateTaskRequest) (uint, error)
	// UpdateTask updates an existing task and reconciles its reminder.
	UpdateTask(ctx context.Context, req dto.UpdateTaskRequest) error
	// CompleteTask marks a task as completed and cancels its reminder.
	CompleteTask(ctx context.Context, id uint) error
	// DeleteTask deletes a task and cancels its reminder.
	DeleteTask(ctx context.Context, id uint) error
	// GetTask retrieves a task by its ID.
	GetTask(ctx context.Context, id uint) (dto.TaskResponse, error)
	// ListTasks retrieves tasks matching the status filter, due date ascending.
	ListTasks(ctx context.Context, filter constant.StatusFilter) ([]dto.TaskResponse, error)
	// ExportTasks writes all tasks to a JSON collection file.
	ExportTasks(ctx context.Context, path string) error
	// ImportTasks reads a JSON collection file and creates new tasks from it
	// (incoming IDs are ignored). Returns the number of imported tasks.
	ImportTasks(ctx context.Context, path string) (int, error)
	// InitializeReminders re-derives pending reminders from the store. Called on
	// startup and periodically, since the reminder schedule is in-memory only.
	InitializeReminders(ctx context.Context) error
}
