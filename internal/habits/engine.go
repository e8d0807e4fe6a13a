// Package habits computes streaks and heatmaps from habit completions and
// owns the completion toggle.
package habits

import (
	"sort"
	"time"

	"github.com/julianstephens/daycompass/internal/constants"
	"github.com/julianstephens/daycompass/internal/models"
	"github.com/julianstephens/daycompass/internal/utils"
)

// CompletionSet is the set of dates on which one habit was completed.
type CompletionSet map[string]struct{}

// NewCompletionSet collects the dates of habitID's completions. Records of
// other habits are ignored.
func NewCompletionSet(habitID string, records []models.HabitCompletion) CompletionSet {
	set := make(CompletionSet)
	for _, r := range records {
		if r.HabitID == habitID {
			set[r.Date] = struct{}{}
		}
	}
	return set
}

func (s CompletionSet) Has(date string) bool {
	_, ok := s[date]
	return ok
}

// Streak counts consecutive completed days ending at anchor, walking
// backward. It is 0 when anchor itself is not completed.
func Streak(set CompletionSet, anchor time.Time) int {
	streak := 0
	for d := utils.StartOfDay(anchor); set.Has(utils.DateKey(d)); d = utils.AddDays(d, -1) {
		streak++
	}
	return streak
}

// Cell is one day of a heatmap.
type Cell struct {
	Date   string `json:"date"`
	Filled bool   `json:"filled"`
}

// Heatmap returns n cells for the days anchor-(n-1) through anchor, oldest
// first.
func Heatmap(set CompletionSet, anchor time.Time, n int) []Cell {
	dates := utils.DateRange(anchor, n)
	cells := make([]Cell, len(dates))
	for i, date := range dates {
		cells[i] = Cell{Date: date, Filled: set.Has(date)}
	}
	return cells
}

// LongestStreak returns the longest run of consecutive dates in the set.
func LongestStreak(set CompletionSet) int {
	days := make([]time.Time, 0, len(set))
	for date := range set {
		t, err := time.Parse(constants.DateFormat, date)
		if err != nil {
			continue
		}
		days = append(days, t)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	longest, run := 0, 0
	for i, d := range days {
		if i > 0 && utils.AddDays(days[i-1], 1).Equal(d) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}
