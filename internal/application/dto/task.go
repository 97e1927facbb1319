package dto

import (
	"deadline-tracker/internal/domain/entity"
	"deadline-tracker/internal/pkg/dateutil"
)

// TaskResponse is the DTO for sending task information to the client.
type TaskResponse struct {
	ID           uint   `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	DueDate      string `json:"due_date"`
	Course       string `json:"course"`
	Priority     string `json:"priority"`
	ReminderTime string `json:"reminder_time,omitempty"`
	Completed    bool   `json:"completed"`
	CreatedAt    string `json:"created_at"`
	Countdown    string `json:"countdown"`
}

// ToTaskResponse converts an entity.Task to a TaskResponse DTO.
func ToTaskResponse(t *entity.Task) TaskResponse {
	resp := TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     dateutil.FormatTimestamp(t.DueDate),
		Course:      t.Course,
		Priority:    t.Priority,
		Completed:   t.Completed,
		CreatedAt:   dateutil.FormatTimestamp(t.CreatedAt),
	}
	if t.ReminderTime != nil {
		resp.ReminderTime = dateutil.FormatTimestamp(*t.ReminderTime)
	}
	resp.Countdown = dateutil.FormatCountdown(resp.DueDate)
	return resp
}

// ToTaskResponseList converts a slice of entity.Task to TaskResponse DTOs.
func ToTaskResponseList(tasks []*entity.Task) []TaskResponse {
	list := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		list[i] = ToTaskResponse(t)
	}
	return list
}

// CreateTaskRequest is the DTO for creating a new task. A reminder is taken
// from ReminderTime verbatim, or derived from ReminderOffset (e.g. "48 hours")
// relative to the due date when the offset is supplied.
type CreateTaskRequest struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	DueDate        string `json:"due_date"`
	Course         string `json:"course"`
	Priority       string `json:"priority"`
	ReminderTime   string `json:"reminder_time,omitempty"`
	ReminderOffset string `json:"reminder_offset,omitempty"`
}

// UpdateTaskRequest is the DTO for updating an existing task.
type UpdateTaskRequest struct {
	ID             uint   `json:"-"` // Taken from the URL, not the body
	Title          string `json:"title"`
	Description    string `json:"description"`
	DueDate        string `json:"due_date"`
	Course         string `json:"course"`
	Priority       string `json:"priority"`
	ReminderTime   string `json:"reminder_time,omitempty"`
	ReminderOffset string `json:"reminder_offset,omitempty"`
	Completed      bool   `json:"completed"`
}

// TransferRequest names the file used by import/export operations.
type TransferRequest struct {
	Path string `json:"path"`
}

// TestNotificationRequest is the DTO for the immediate-delivery endpoint.
type TestNotificationRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Token string `json:"token,omitempty"`
}

// TaskExport is the JSON shape of one task in an exported collection file.
type TaskExport struct {
	ID           uint    `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	DueDate      string  `json:"due_date"`
	Course       string  `json:"course"`
	Priority     string  `json:"priority"`
	ReminderTime *string `json:"reminder_time"`
	Completed    bool    `json:"completed"`
	CreatedAt    string  `json:"created_at"`
}

// ToTaskExport converts an entity.Task to its file representation.
func ToTaskExport(t *entity.Task) TaskExport {
	exp := TaskExport{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     dateutil.FormatTimestamp(t.DueDate),
		Course:      t.Course,
		Priority:    t.Priority,
		Completed:   t.Completed,
		CreatedAt:   dateutil.FormatTimestamp(t.CreatedAt),
	}
	if t.ReminderTime != nil {
		s := dateutil.FormatTimestamp(*t.ReminderTime)
		exp.ReminderTime = &s
	}
	return exp
}
