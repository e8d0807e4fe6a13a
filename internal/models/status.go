package models

// TaskStatus is where a task stands in its status cycle.
type TaskStatus string

const (
	StatusNotStarted TaskStatus = "not_started"
	StatusInProgress TaskStatus = "in_progress"
	StatusDone       TaskStatus = "done"
	StatusMoved      TaskStatus = "moved"
	StatusDropped    TaskStatus = "dropped"
)

// Statuses lists every task status in display order.
var Statuses = []TaskStatus{
	StatusNotStarted,
	StatusInProgress,
	StatusDone,
	StatusMoved,
	StatusDropped,
}

// statusTransitions is the cycle applied when a task's status is advanced.
var statusTransitions = map[TaskStatus]TaskStatus{
	StatusNotStarted: StatusInProgress,
	StatusInProgress: StatusDone,
	StatusDone:       StatusMoved,
	StatusMoved:      StatusDropped,
	StatusDropped:    StatusNotStarted,
}

// NextStatus returns the status that follows s in the cycle.
// Unknown statuses restart the cycle at not_started.
func NextStatus(s TaskStatus) TaskStatus {
	if next, ok := statusTransitions[s]; ok {
		return next
	}
	return StatusNotStarted
}

// Valid reports whether s is one of the five task statuses.
func (s TaskStatus) Valid() bool {
	_, ok := statusTransitions[s]
	return ok
}

// Label returns the human-readable status name.
func (s TaskStatus) Label() string {
	switch s {
	case StatusNotStarted:
		return "Not Started"
	case StatusInProgress:
		return "In Progress"
	case StatusDone:
		return "Done"
	case StatusMoved:
		return "Moved"
	case StatusDropped:
		return "Dropped"
	default:
		return string(s)
	}
}

// Icon returns a single-glyph marker for list views.
func (s TaskStatus) Icon() string {
	switch s {
	case StatusInProgress:
		return "◐"
	case StatusDone:
		return "✓"
	case StatusMoved:
		return "→"
	case StatusDropped:
		return "✗"
	default:
		return "○"
	}
}
