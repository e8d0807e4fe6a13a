package analytics

import (
	"time"

	"github.com/julianstephens/daycompass/internal/logger"
	"github.com/julianstephens/daycompass/internal/models"
)

// DayReader batch-fetches stored days by exact date membership.
type DayReader interface {
	GetDays(dates []string) ([]models.DayEntry, error)
}

// LoadWeekDays returns exactly seven days, Monday to Sunday, for anchor's
// week. Dates without a stored record get an unpersisted EmptyDay. A failed
// read is logged and treated as a week with no records.
func LoadWeekDays(store DayReader, anchor time.Time) []models.DayEntry {
	return loadDays(store, ResolveWeek(anchor))
}

func loadDays(store DayReader, week Week) []models.DayEntry {
	stored, err := store.GetDays(week.Dates[:])
	if err != nil {
		logger.Warn("Failed to load week days, using empty week", "week", week.Key, "error", err)
		stored = nil
	}

	byDate := make(map[string]models.DayEntry, len(stored))
	for _, d := range stored {
		byDate[d.Date] = d
	}

	days := make([]models.DayEntry, len(week.Dates))
	for i, date := range week.Dates {
		if d, ok := byDate[date]; ok {
			days[i] = normalizeDay(d)
		} else {
			days[i] = models.EmptyDay(date)
		}
	}
	return days
}

// normalizeDay replaces nil collections so callers never see nil slices.
func normalizeDay(d models.DayEntry) models.DayEntry {
	d = d.Clone()
	if d.Tasks == nil {
		d.Tasks = []models.Task{}
	}
	if d.Intentions == nil {
		d.Intentions = []models.Intention{}
	}
	return d
}
