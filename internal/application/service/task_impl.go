package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"deadline-tracker/internal/application/dto"
	"deadline-tracker/internal/domain/constant"
	"deadline-tracker/internal/domain/entity"
	"deadline-tracker/internal/domain/repository"
	"deadline-tracker/internal/pkg/dateutil"
	appErrors "deadline-tracker/internal/pkg/errors"
	"deadline-tracker/internal/pkg/logger"
)

type taskService struct {
	taskRepo        repository.TaskRepository
	notificationSvc NotificationService
	log             logger.Logger
}

// NewTaskService creates a new instance of TaskService implementation.
func NewTaskService(
	taskRepo repository.TaskRepository,
	notificationSvc NotificationService,
	log logger.Logger,
) TaskService {
	return &taskService{
		taskRepo:        taskRepo,
		notificationSvc: notificationSvc,
		log:             log,
	}
}

// CreateTask creates a new task and schedules its reminder when one is set.
func (s *taskService) CreateTask(ctx context.Context, req dto.CreateTaskRequest) (uint, error) {
	if req.Title == "" {
		return 0, fmt.Errorf("%w: title must not be empty", appErrors.ErrInvalidInput)
	}

	dueDate, err := dateutil.ParseTimestamp(req.DueDate)
	if err != nil {
		return 0, fmt.Errorf("%w: due date %q", appErrors.ErrInvalidDateTime, req.DueDate)
	}

	priority := req.Priority
	if priority == "" {
		priority = constant.PriorityMedium
	}
	if !constant.IsValidPriority(priority) {
		return 0, fmt.Errorf("%w: unknown priority %q", appErrors.ErrInvalidInput, req.Priority)
	}

	reminderTime, err := s.resolveReminderTime(req.DueDate, req.ReminderTime, req.ReminderOffset)
	if err != nil {
		return 0, err
	}

	task := &entity.Task{
		Title:        req.Title,
		Description:  req.Description,
		DueDate:      dueDate,
		Course:       req.Course,
		Priority:     priority,
		ReminderTime: reminderTime,
		CreatedAt:    time.Now(),
	}

	taskID, err := s.taskRepo.Create(ctx, task)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to create task %q", req.Title), err)
		return 0, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	s.log.Info(fmt.Sprintf("Created task %d (%q)", taskID, task.Title))

	s.reconcileReminder(task)
	return taskID, nil
}

// UpdateTask updates an existing task and reconciles its reminder.
func (s *taskService) UpdateTask(ctx context.Context, req dto.UpdateTaskRequest) error {
	task, err := s.taskRepo.FindByID(ctx, req.ID)
	if err != nil {
		return err
	}

	if req.Title == "" {
		return fmt.Errorf("%w: title must not be empty", appErrors.ErrInvalidInput)
	}
	dueDate, err := dateutil.ParseTimestamp(req.DueDate)
	if err != nil {
		return fmt.Errorf("%w: due date %q", appErrors.ErrInvalidDateTime, req.DueDate)
	}
	priority := req.Priority
	if priority == "" {
		priority = constant.PriorityMedium
	}
	if !constant.IsValidPriority(priority) {
		return fmt.Errorf("%w: unknown priority %q", appErrors.ErrInvalidInput, req.Priority)
	}
	reminderTime, err := s.resolveReminderTime(req.DueDate, req.ReminderTime, req.ReminderOffset)
	if err != nil {
		return err
	}

	task.Title = req.Title
	task.Description = req.Description
	task.DueDate = dueDate
	task.Course = req.Course
	task.Priority = priority
	task.ReminderTime = reminderTime
	task.Completed = req.Completed

	if err := s.taskRepo.Update(ctx, task); err != nil {
		s.log.Error(fmt.Sprintf("Failed to update task %d", task.ID), err)
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	s.log.Info(fmt.Sprintf("Updated task %d (%q)", task.ID, task.Title))

	s.reconcileReminder(task)
	return nil
}

// CompleteTask marks a task as completed and cancels its reminder.
func (s *taskService) CompleteTask(ctx context.Context, id uint) error {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	task.Completed = true
	if err := s.taskRepo.Update(ctx, task); err != nil {
		s.log.Error(fmt.Sprintf("Failed to complete task %d", id), err)
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}

	s.notificationSvc.Cancel(id)
	s.log.Info(fmt.Sprintf("Completed task %d", id))
	return nil
}

// DeleteTask deletes a task and cancels its reminder.
func (s *taskService) DeleteTask(ctx context.Context, id uint) error {
	if err := s.taskRepo.Delete(ctx, id); err != nil {
		s.log.Error(fmt.Sprintf("Failed to delete task %d", id), err)
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	s.notificationSvc.Cancel(id)
	s.log.Info(fmt.Sprintf("Deleted task %d", id))
	return nil
}

// GetTask retrieves a task by its ID.
func (s *taskService) GetTask(ctx context.Context, id uint) (dto.TaskResponse, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		return dto.TaskResponse{}, err
	}
	return dto.ToTaskResponse(task), nil
}

// ListTasks retrieves tasks matching the status filter.
func (s *taskService) ListTasks(ctx context.Context, filter constant.StatusFilter) ([]dto.TaskResponse, error) {
	if filter == "" {
		filter = constant.StatusAll
	}

	var (
		tasks []*entity.Task
		err   error
	)
	switch filter {
	case constant.StatusAll:
		tasks, err = s.taskRepo.FindAll(ctx)
	case constant.StatusPending:
		tasks, err = s.taskRepo.FindPending(ctx)
	case constant.StatusCompleted:
		tasks, err = s.taskRepo.FindCompleted(ctx)
	default:
		return nil, fmt.Errorf("%w: unknown status filter %q", appErrors.ErrInvalidInput, filter)
	}
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to list tasks with filter %q", filter), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	return dto.ToTaskResponseList(tasks), nil
}

// ExportTasks writes all tasks to a JSON collection file.
func (s *taskService) ExportTasks(ctx context.Context, path string) error {
	tasks, err := s.taskRepo.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}

	exports := make([]dto.TaskExport, len(tasks))
	for i, t := range tasks {
		exports[i] = dto.ToTaskExport(t)
	}

	data, err := json.MarshalIndent(exports, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", appErrors.ErrInternalServer, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: writing %q: %v", appErrors.ErrInvalidInput, path, err)
	}

	s.log.Info(fmt.Sprintf("Exported %d tasks to %s", len(exports), path))
	return nil
}

// ImportTasks reads a JSON collection file and creates new tasks from it.
// Records with an unparseable due date are skipped, not fatal.
func (s *taskService) ImportTasks(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("%w: reading %q: %v", appErrors.ErrInvalidInput, path, err)
	}

	var exports []dto.TaskExport
	if err := json.Unmarshal(data, &exports); err != nil {
		return 0, fmt.Errorf("%w: %q is not a task collection: %v", appErrors.ErrInvalidInput, path, err)
	}

	imported := 0
	for _, exp := range exports {
		dueDate, err := dateutil.ParseTimestamp(exp.DueDate)
		if err != nil {
			s.log.Warn(fmt.Sprintf("Skipping imported task %q: %v", exp.Title, err))
			continue
		}

		createdAt := time.Now()
		if t, err := dateutil.ParseTimestamp(exp.CreatedAt); err == nil {
			createdAt = t
		}

		priority := exp.Priority
		if !constant.IsValidPriority(priority) {
			priority = constant.PriorityMedium
		}

		task := &entity.Task{
			Title:       exp.Title,
			Description: exp.Description,
			DueDate:     dueDate,
			Course:      exp.Course,
			Priority:    priority,
			Completed:   exp.Completed,
			CreatedAt:   createdAt,
		}
		if exp.ReminderTime != nil {
			if t, err := dateutil.ParseTimestamp(*exp.ReminderTime); err == nil {
				task.ReminderTime = &t
			}
		}

		if _, err := s.taskRepo.Create(ctx, task); err != nil {
			s.log.Error(fmt.Sprintf("Failed to import task %q", exp.Title), err)
			continue
		}
		s.reconcileReminder(task)
		imported++
	}

	s.log.Info(fmt.Sprintf("Imported %d of %d tasks from %s", imported, len(exports), path))
	return imported, nil
}

// InitializeReminders re-derives pending reminders from the store.
func (s *taskService) InitializeReminders(ctx context.Context) error {
	tasks, err := s.taskRepo.FindUpcomingReminders(ctx, time.Now())
	if err != nil {
		s.log.Error("Failed to load tasks for reminder initialization", err)
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}

	scheduled := 0
	for _, task := range tasks {
		if err := s.scheduleReminder(task); err != nil {
			s.log.Error(fmt.Sprintf("Failed to schedule reminder for task %d during init", task.ID), err)
			continue
		}
		scheduled++
	}

	s.log.Info(fmt.Sprintf("Reminder initialization complete. Scheduled: %d", scheduled))
	return nil
}

// resolveReminderTime picks the reminder timestamp for a task. An offset
// string wins over an explicit timestamp; a malformed offset yields no
// reminder (permissive), while a malformed explicit timestamp is an error.
func (s *taskService) resolveReminderTime(dueDate, reminderTime, reminderOffset string) (*time.Time, error) {
	if reminderOffset != "" {
		derived, ok := dateutil.CalculateReminderTime(dueDate, reminderOffset)
		if !ok {
			s.log.Warn(fmt.Sprintf("Ignoring malformed reminder offset %q", reminderOffset))
			return nil, nil
		}
		reminderTime = derived
	}
	if reminderTime == "" {
		return nil, nil
	}

	t, err := dateutil.ParseTimestamp(reminderTime)
	if err != nil {
		return nil, fmt.Errorf("%w: reminder time %q", appErrors.ErrInvalidDateTime, reminderTime)
	}
	return &t, nil
}

// reconcileReminder schedules or cancels the pending reminder to match the
// task's current state.
func (s *taskService) reconcileReminder(task *entity.Task) {
	if task.NeedsReminder(time.Now()) {
		if err := s.scheduleReminder(task); err != nil {
			s.log.Error(fmt.Sprintf("Failed to schedule reminder for task %d", task.ID), err)
		}
		return
	}
	s.notificationSvc.Cancel(task.ID)
}

func (s *taskService) scheduleReminder(task *entity.Task) error {
	return s.notificationSvc.Schedule(
		task.ID,
		dateutil.FormatTimestamp(*task.ReminderTime),
		fmt.Sprintf("Reminder: %s", task.Title),
		fmt.Sprintf("Task due: %s", dateutil.FormatTimestamp(task.DueDate)),
	)
}
