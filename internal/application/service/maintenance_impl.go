package service

import (
	"context"
	"fmt"
	"time"

	"deadline-tracker/internal/domain/repository"
	"deadline-tracker/internal/infrastructure/scheduler"
	appErrors "deadline-tracker/internal/pkg/errors"
	"deadline-tracker/internal/pkg/logger"
)

const (
	// Completed tasks are kept for a month before the nightly purge removes them.
	completedRetention = 30 * 24 * time.Hour

	resyncSpec = "0 0 * * * *"  // hourly, on the hour
	purgeSpec  = "0 30 3 * * *" // daily at 03:30
)

type maintenanceService struct {
	cronScheduler *scheduler.Scheduler
	taskRepo      repository.TaskRepository
	taskSvc       TaskService
	log           logger.Logger
}

// NewMaintenanceService creates a new instance of MaintenanceService implementation.
func NewMaintenanceService(
	cronScheduler *scheduler.Scheduler,
	taskRepo repository.TaskRepository,
	taskSvc TaskService,
	log logger.Logger,
) MaintenanceService {
	return &maintenanceService{
		cronScheduler: cronScheduler,
		taskRepo:      taskRepo,
		taskSvc:       taskSvc,
		log:           log,
	}
}

// Start registers the maintenance jobs on the cron scheduler.
func (s *maintenanceService) Start(ctx context.Context) error {
	if _, err := s.cronScheduler.AddJob(resyncSpec, s.resyncReminders); err != nil {
		return fmt.Errorf("%w: %v", appErrors.ErrScheduling, err)
	}
	if _, err := s.cronScheduler.AddJob(purgeSpec, s.purgeOldTasks); err != nil {
		return fmt.Errorf("%w: %v", appErrors.ErrScheduling, err)
	}
	s.log.Info("Maintenance jobs registered.")
	return nil
}

// Stop stops the underlying cron scheduler.
func (s *maintenanceService) Stop() {
	s.cronScheduler.Stop()
}

// resyncReminders re-derives pending reminders from the store. The reminder
// schedule upsert is idempotent and already-fired times are in the past, so
// running this repeatedly cannot duplicate a notification.
func (s *maintenanceService) resyncReminders() {
	if err := s.taskSvc.InitializeReminders(context.Background()); err != nil {
		s.log.Error("Reminder resync failed", err)
	}
}

// purgeOldTasks deletes completed tasks whose due date passed more than the
// retention period ago.
func (s *maintenanceService) purgeOldTasks() {
	threshold := time.Now().Add(-completedRetention)
	deleted, err := s.taskRepo.DeleteCompletedBefore(context.Background(), threshold)
	if err != nil {
		s.log.Error("Old task purge failed", err)
		return
	}
	if deleted > 0 {
		s.log.Info(fmt.Sprintf("Purged %d completed tasks older than %v", deleted, threshold))
	}
}
