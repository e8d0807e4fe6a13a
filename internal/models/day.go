package models

import (
	"time"

	"github.com/julianstephens/daycompass/internal/constants"
)

// Priority is a task's Eisenhower quadrant.
type Priority string

const (
	PriorityUrgentImportant       Priority = "urgent_important"
	PriorityNotUrgentImportant    Priority = "not_urgent_important"
	PriorityUrgentNotImportant    Priority = "urgent_not_important"
	PriorityNotUrgentNotImportant Priority = "not_urgent_not_important"
)

// Priorities lists the four urgency/importance quadrants in display order.
var Priorities = []Priority{
	PriorityUrgentImportant,
	PriorityNotUrgentImportant,
	PriorityUrgentNotImportant,
	PriorityNotUrgentNotImportant,
}

// Label returns the short action label of the quadrant.
func (p Priority) Label() string {
	switch p {
	case PriorityUrgentImportant:
		return "Do First"
	case PriorityNotUrgentImportant:
		return "Schedule"
	case PriorityUrgentNotImportant:
		return "Minimize"
	case PriorityNotUrgentNotImportant:
		return "Eliminate"
	default:
		return "Unknown"
	}
}

// Valid reports whether p is one of the four quadrants.
func (p Priority) Valid() bool {
	for _, q := range Priorities {
		if p == q {
			return true
		}
	}
	return false
}

type Task struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Category  string     `json:"category"`
	Status    TaskStatus `json:"status"`
	TimeSpent int        `json:"time_spent"` // minutes, never decreases
	Obstacle  string     `json:"obstacle,omitempty"`
	Priority  Priority   `json:"priority"`
	CreatedAt time.Time  `json:"created_at"`
}

// Intention is an implementation intention: "when <trigger>, I will <action>".
type Intention struct {
	Trigger string `json:"trigger"`
	Action  string `json:"action"`
}

// DayEntry is the full planning record of one calendar day.
type DayEntry struct {
	Date       string      `json:"date"`   // YYYY-MM-DD format
	Energy     int         `json:"energy"` // 1-5, 0 = unset
	Tasks      []Task      `json:"tasks"`
	Wins       string      `json:"wins"`
	Reflection string      `json:"reflection"`
	Intentions []Intention `json:"intentions"`
}

// EmptyDay returns the placeholder used when a week has no stored record for date.
func EmptyDay(date string) DayEntry {
	return DayEntry{
		Date:       date,
		Energy:     constants.EnergyUnset,
		Tasks:      []Task{},
		Intentions: []Intention{},
	}
}

// NewDay returns the in-memory default shown for a date that was never saved.
func NewDay(date string) DayEntry {
	day := EmptyDay(date)
	day.Intentions = make([]Intention, constants.DefaultIntentionSlots)
	return day
}

// IsBlank reports whether the day carries neither tasks nor an energy check-in.
func (d DayEntry) IsBlank() bool {
	return len(d.Tasks) == 0 && d.Energy == constants.EnergyUnset
}

// CompletedCount returns the number of tasks with status done.
func (d DayEntry) CompletedCount() int {
	n := 0
	for _, t := range d.Tasks {
		if t.Status == StatusDone {
			n++
		}
	}
	return n
}

// TaskIndex returns the index of the task with the given id, or -1.
func (d DayEntry) TaskIndex(id string) int {
	for i, t := range d.Tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy so callers can mutate tasks and intentions freely.
func (d DayEntry) Clone() DayEntry {
	c := d
	if d.Tasks != nil {
		c.Tasks = make([]Task, len(d.Tasks))
		copy(c.Tasks, d.Tasks)
	}
	if d.Intentions != nil {
		c.Intentions = make([]Intention, len(d.Intentions))
		copy(c.Intentions, d.Intentions)
	}
	return c
}
