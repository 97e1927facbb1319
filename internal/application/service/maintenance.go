package service

import "context"

// MaintenanceService owns the recurring housekeeping jobs: periodic reminder
// resync and purging of long-completed tasks.
type MaintenanceService interface {
	// Start registers the maintenance jobs on the cron scheduler.
	Start(ctx context.Context) error
	// Stop stops the underlying cron scheduler.
	Stop()
}
