// Package analytics turns a week of day records into summary statistics.
package analytics

import (
	"fmt"
	"time"

	"github.com/julianstephens/daycompass/internal/constants"
	"github.com/julianstephens/daycompass/internal/utils"
)

// Week is a Monday-to-Sunday calendar week.
type Week struct {
	Start time.Time // Monday, midnight in the anchor's location
	End   time.Time // Sunday, midnight in the anchor's location
	Key   string    // YYYY-MM-DD of Start
	Dates [constants.DaysPerWeek]string
}

// ResolveWeek returns the week containing anchor's calendar date. Only the
// year, month and day of anchor in its own location are used.
func ResolveWeek(anchor time.Time) Week {
	day := utils.StartOfDay(anchor)
	// time.Weekday counts from Sunday = 0
	offset := (int(day.Weekday()) + 6) % 7
	start := utils.AddDays(day, -offset)

	w := Week{
		Start: start,
		End:   utils.AddDays(start, constants.DaysPerWeek-1),
		Key:   utils.DateKey(start),
	}
	for i := range w.Dates {
		w.Dates[i] = utils.DateKey(utils.AddDays(start, i))
	}
	return w
}

// WeekKey returns the ISO date of the Monday of anchor's week.
func WeekKey(anchor time.Time) string {
	return ResolveWeek(anchor).Key
}

// ResolveWeekOf resolves the week containing a YYYY-MM-DD date key.
func ResolveWeekOf(date string) (Week, error) {
	t, err := time.Parse(constants.DateFormat, date)
	if err != nil {
		return Week{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return ResolveWeek(t), nil
}

// Previous returns the week before w.
func (w Week) Previous() Week {
	return ResolveWeek(utils.AddDays(w.Start, -constants.DaysPerWeek))
}

// Next returns the week after w.
func (w Week) Next() Week {
	return ResolveWeek(utils.AddDays(w.Start, constants.DaysPerWeek))
}

// Contains reports whether the date key falls inside w.
func (w Week) Contains(date string) bool {
	return date >= w.Dates[0] && date <= w.Dates[len(w.Dates)-1]
}
