package service

// NotificationService is the public entry point for reminder scheduling and
// notification delivery.
type NotificationService interface {
	// SendNow delivers a notification immediately through the delivery backend.
	// Failures are logged and swallowed, never returned.
	SendNow(title, body, token string)
	// Schedule upserts the pending reminder for a task (last write wins) and
	// lazily starts the scan loop. fireAt must be a parseable timestamp;
	// otherwise ErrInvalidDateTime is returned and nothing is inserted.
	Schedule(taskID uint, fireAt, title, body string) error
	// Cancel removes the pending reminder for a task. Safe to call for unknown
	// or already-fired keys.
	Cancel(taskID uint)
	// Start launches the background scan loop. No-op if already running.
	Start()
	// Stop halts the scan loop and blocks until it has exited. No-op if stopped.
	Stop()
}
