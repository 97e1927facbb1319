package entity

import "time"

// Task represents an academic task (assignment, exam, ...) with its deadline.
type Task struct {
	ID           uint       `gorm:"primaryKey;autoIncrement"`
	Title        string     `gorm:"column:title;not null"`
	Description  string     `gorm:"column:description;type:text"`
	DueDate      time.Time  `gorm:"column:due_date;index"`
	Course       string     `gorm:"column:course"`
	Priority     string     `gorm:"column:priority;default:medium"`
	ReminderTime *time.Time `gorm:"column:reminder_time"` // nil when no reminder is set
	Completed    bool       `gorm:"column:completed;default:false"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
}

// TableName specifies the table name for the Task entity.
func (Task) TableName() string {
	return "tasks"
}

// NeedsReminder reports whether the task still has a reminder to fire after now.
func (t *Task) NeedsReminder(now time.Time) bool {
	return !t.Completed && t.ReminderTime != nil && t.ReminderTime.After(now)
}
