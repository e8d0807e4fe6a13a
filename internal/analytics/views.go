package analytics

import (
	"math"
	"sort"
	"strings"

	"github.com/julianstephens/daycompass/internal/models"
)

// WeeklyWins returns the days whose wins text is not blank, in week order.
func WeeklyWins(days []models.DayEntry) []models.DayEntry {
	out := []models.DayEntry{}
	for _, d := range days {
		if strings.TrimSpace(d.Wins) != "" {
			out = append(out, d)
		}
	}
	return out
}

// DatedTask is a task together with the day it belongs to.
type DatedTask struct {
	models.Task
	Date string `json:"date"`
}

// TasksByRecency flattens the week's tasks, newest CreatedAt first.
func TasksByRecency(stats WeeklyStats) []DatedTask {
	out := []DatedTask{}
	for _, d := range stats.Days {
		for _, t := range d.Tasks {
			out = append(out, DatedTask{Task: t, Date: d.Date})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// ActiveEnergyPoints drops days with neither an energy check-in nor tasks.
func ActiveEnergyPoints(stats WeeklyStats) []EnergyPoint {
	out := []EnergyPoint{}
	for _, p := range stats.EnergyProductivity {
		if p.Energy > 0 || p.Total > 0 {
			out = append(out, p)
		}
	}
	return out
}

// CategoryRow is one row of the per-category completion table.
type CategoryRow struct {
	Category string
	CategoryStats
	Rate int // percent done
}

// CategoryRows orders the category breakdown by task count, largest first,
// breaking ties by name so the order is stable.
func CategoryRows(stats WeeklyStats) []CategoryRow {
	rows := make([]CategoryRow, 0, len(stats.CategoryBreakdown))
	for name, c := range stats.CategoryBreakdown {
		row := CategoryRow{Category: name, CategoryStats: c}
		if c.Total > 0 {
			row.Rate = int(math.Round(float64(c.Done) / float64(c.Total) * 100))
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Total != rows[j].Total {
			return rows[i].Total > rows[j].Total
		}
		return rows[i].Category < rows[j].Category
	})
	return rows
}
