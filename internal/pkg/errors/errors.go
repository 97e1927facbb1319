package errors

import "errors"

// Custom application errors
var (
	ErrTaskNotFound      = errors.New("task not found")                 // Task lookup by ID failed
	ErrInvalidDateTime   = errors.New("invalid date/time format")       // Unparseable timestamp from caller
	ErrInvalidInput      = errors.New("invalid input")                  // Malformed request payload
	ErrDatabaseOperation = errors.New("database operation failed")      // Generic database error
	ErrNotificationSend  = errors.New("failed to send notification")    // No delivery channel succeeded
	ErrScheduling        = errors.New("failed to schedule job")         // Generic scheduling error
	ErrInternalServer    = errors.New("internal server error occurred") // Generic internal error
)
