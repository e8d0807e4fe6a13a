package models

import (
	"testing"

	"github.com/julianstephens/daycompass/internal/constants"
)

func TestNextStatus_Cycle(t *testing.T) {
	tests := []struct {
		from TaskStatus
		want TaskStatus
	}{
		{StatusNotStarted, StatusInProgress},
		{StatusInProgress, StatusDone},
		{StatusDone, StatusMoved},
		{StatusMoved, StatusDropped},
		{StatusDropped, StatusNotStarted},
		{TaskStatus("blocked"), StatusNotStarted},
		{TaskStatus(""), StatusNotStarted},
	}

	for _, tt := range tests {
		t.Run(string(tt.from), func(t *testing.T) {
			if got := NextStatus(tt.from); got != tt.want {
				t.Errorf("NextStatus(%q) = %q, want %q", tt.from, got, tt.want)
			}
		})
	}
}

func TestNextStatus_FullCycleReturnsToStart(t *testing.T) {
	s := StatusNotStarted
	for i := 0; i < len(Statuses); i++ {
		s = NextStatus(s)
	}
	if s != StatusNotStarted {
		t.Errorf("after %d steps got %q, want %q", len(Statuses), s, StatusNotStarted)
	}
}

func TestEmptyDayAndNewDay(t *testing.T) {
	empty := EmptyDay("2025-03-10")
	if empty.Energy != constants.EnergyUnset {
		t.Errorf("EmptyDay energy = %d, want 0", empty.Energy)
	}
	if empty.Tasks == nil || len(empty.Tasks) != 0 {
		t.Errorf("EmptyDay tasks = %v, want empty non-nil slice", empty.Tasks)
	}
	if empty.Intentions == nil || len(empty.Intentions) != 0 {
		t.Errorf("EmptyDay intentions = %v, want empty non-nil slice", empty.Intentions)
	}
	if !empty.IsBlank() {
		t.Error("EmptyDay should be blank")
	}

	fresh := NewDay("2025-03-10")
	if len(fresh.Intentions) != constants.DefaultIntentionSlots {
		t.Errorf("NewDay intentions = %d, want %d", len(fresh.Intentions), constants.DefaultIntentionSlots)
	}
	if fresh.Date != "2025-03-10" {
		t.Errorf("NewDay date = %q", fresh.Date)
	}
}

func TestDayEntry_CloneIsDeep(t *testing.T) {
	day := NewDay("2025-03-10")
	day.Tasks = append(day.Tasks, Task{ID: "a", Title: "Write", Status: StatusNotStarted})

	clone := day.Clone()
	clone.Tasks[0].Status = StatusDone
	clone.Intentions[0].Action = "stretch"

	if day.Tasks[0].Status != StatusNotStarted {
		t.Error("mutating clone task changed original")
	}
	if day.Intentions[0].Action != "" {
		t.Error("mutating clone intention changed original")
	}
}

func TestDayEntry_CountsAndLookup(t *testing.T) {
	day := DayEntry{
		Date:   "2025-03-10",
		Energy: 3,
		Tasks: []Task{
			{ID: "a", Status: StatusDone},
			{ID: "b", Status: StatusMoved},
			{ID: "c", Status: StatusDone},
		},
	}
	if got := day.CompletedCount(); got != 2 {
		t.Errorf("CompletedCount() = %d, want 2", got)
	}
	if got := day.TaskIndex("b"); got != 1 {
		t.Errorf("TaskIndex(b) = %d, want 1", got)
	}
	if got := day.TaskIndex("zzz"); got != -1 {
		t.Errorf("TaskIndex(zzz) = %d, want -1", got)
	}
	if day.IsBlank() {
		t.Error("day with tasks reported blank")
	}
}

func TestPriority(t *testing.T) {
	if !PriorityUrgentImportant.Valid() {
		t.Error("urgent_important should be valid")
	}
	if Priority("later").Valid() {
		t.Error("unknown priority reported valid")
	}
	if got := PriorityNotUrgentNotImportant.Label(); got != "Eliminate" {
		t.Errorf("Label() = %q", got)
	}
}

func TestWeeklyGoal_Percent(t *testing.T) {
	tests := []struct {
		name string
		goal WeeklyGoal
		want int
		done bool
	}{
		{"zero progress", WeeklyGoal{Target: 4, Current: 0}, 0, false},
		{"half", WeeklyGoal{Target: 4, Current: 2}, 50, false},
		{"over target capped", WeeklyGoal{Target: 4, Current: 9}, 100, true},
		{"invalid target", WeeklyGoal{Target: 0, Current: 3}, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.goal.Percent(); got != tt.want {
				t.Errorf("Percent() = %d, want %d", got, tt.want)
			}
			if got := tt.goal.Done(); got != tt.done {
				t.Errorf("Done() = %v, want %v", got, tt.done)
			}
		})
	}
}
