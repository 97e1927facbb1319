// Package dateutil provides date arithmetic helpers for due dates and
// reminder offsets. Parsing is deliberately permissive: malformed input
// yields an absence value instead of an error wherever the caller can
// degrade gracefully.
package dateutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Timestamps are stored and exchanged as ISO-8601 local time without a zone.
const (
	TimestampLayout = "2006-01-02T15:04:05"

	layoutNoSeconds = "2006-01-02T15:04"
	layoutDateTime  = "2006-01-02 15:04"
)

// ParseTimestamp parses an ISO-8601 timestamp (seconds optional) in local
// time. RFC3339 input with an explicit zone is also accepted.
func ParseTimestamp(value string) (time.Time, error) {
	for _, layout := range []string{TimestampLayout, layoutNoSeconds} {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", value)
}

// FormatTimestamp renders a time in the canonical timestamp layout.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// FormatCountdown formats a human-friendly countdown string from a due date,
// e.g. "2 days, 4 hours left".
func FormatCountdown(dueDate string) string {
	due, err := ParseTimestamp(dueDate)
	if err != nil {
		return "Invalid date"
	}

	diff := time.Until(due)
	if diff < 0 {
		return "OVERDUE"
	}

	days := int(diff.Hours()) / 24
	hours := int(diff.Hours()) % 24
	minutes := int(diff.Minutes()) % 60

	var parts []string
	if days > 0 {
		parts = append(parts, pluralize(days, "day"))
	}
	if hours > 0 {
		parts = append(parts, pluralize(hours, "hour"))
	}
	// Minutes only matter on the final day.
	if minutes > 0 && days == 0 {
		parts = append(parts, pluralize(minutes, "minute"))
	}

	if len(parts) == 0 {
		return "Due soon"
	}
	return strings.Join(parts, ", ") + " left"
}

// CalculateReminderTime derives a reminder timestamp by subtracting an
// offset such as "48 hours" or "30 minutes" from the due date. The second
// return value is false when either input is malformed.
func CalculateReminderTime(dueDate, reminderOffset string) (string, bool) {
	due, err := ParseTimestamp(dueDate)
	if err != nil {
		return "", false
	}

	fields := strings.Fields(strings.TrimSpace(reminderOffset))
	if len(fields) != 2 {
		return "", false
	}

	value, err := strconv.Atoi(fields[0])
	if err != nil {
		return "", false
	}

	var offset time.Duration
	switch unit := strings.ToLower(fields[1]); {
	case strings.HasPrefix(unit, "minute"):
		offset = time.Duration(value) * time.Minute
	case strings.HasPrefix(unit, "hour"):
		offset = time.Duration(value) * time.Hour
	case strings.HasPrefix(unit, "day"):
		offset = time.Duration(value) * 24 * time.Hour
	default:
		return "", false
	}

	return FormatTimestamp(due.Add(-offset)), true
}

// ParseDateTime combines "YYYY-MM-DD" and "HH:MM" strings into a canonical
// timestamp. Returns the empty string on failure.
func ParseDateTime(dateStr, timeStr string) string {
	t, err := time.ParseInLocation(layoutDateTime, dateStr+" "+timeStr, time.Local)
	if err != nil {
		return ""
	}
	return FormatTimestamp(t)
}

func pluralize(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
