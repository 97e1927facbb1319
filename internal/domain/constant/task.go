package constant

// Priority levels assignable to a task.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// IsValidPriority reports whether p is one of the known priority levels.
func IsValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// StatusFilter selects which tasks a list operation returns.
type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusPending   StatusFilter = "pending"
	StatusCompleted StatusFilter = "completed"
)

// IsValidStatusFilter reports whether f is a known status filter.
func IsValidStatusFilter(f StatusFilter) bool {
	switch f {
	case StatusAll, StatusPending, StatusCompleted:
		return true
	}
	return false
}
