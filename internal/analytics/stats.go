package analytics

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/daycompass/internal/constants"
	"github.com/julianstephens/daycompass/internal/models"
)

// CategoryStats aggregates the tasks of one category.
type CategoryStats struct {
	Total int `json:"total"`
	Done  int `json:"done"`
	Time  int `json:"time"` // minutes
}

// EnergyPoint pairs a day's energy with its task completion.
type EnergyPoint struct {
	Date      string `json:"date"`
	DayOfWeek string `json:"day_of_week"` // "Mon", "Tue", ...
	Energy    int    `json:"energy"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
}

// ObstacleCount is a normalized obstacle and how often it occurred.
type ObstacleCount struct {
	Text  string `json:"text"`
	Count int    `json:"count"`
}

// WeeklyStats is a snapshot of one week. Treat it as read-only.
type WeeklyStats struct {
	WeekKey   string            `json:"week_key"`
	StartDate string            `json:"start_date"`
	EndDate   string            `json:"end_date"`
	Days      []models.DayEntry `json:"days"`

	TotalTasks     int     `json:"total_tasks"`
	CompletedTasks int     `json:"completed_tasks"`
	CompletionRate int     `json:"completion_rate"`  // percent
	TotalTimeSpent int     `json:"total_time_spent"` // minutes
	AverageEnergy  float64 `json:"average_energy"`

	CategoryBreakdown  map[string]CategoryStats  `json:"category_breakdown"`
	EnergyProductivity []EnergyPoint             `json:"energy_productivity"`
	ObstacleFrequency  []ObstacleCount           `json:"obstacle_frequency"`
	StatusCounts       map[models.TaskStatus]int `json:"status_counts"`
	MostProductiveDay  *string                   `json:"most_productive_day"` // full weekday name, nil without completions
}

type statsOptions struct {
	topObstacles int
}

// StatsOption tunes ComputeWeeklyStats.
type StatsOption func(*statsOptions)

// WithTopObstacles limits ObstacleFrequency to n entries.
func WithTopObstacles(n int) StatsOption {
	return func(o *statsOptions) {
		if n > 0 {
			o.topObstacles = n
		}
	}
}

// ComputeWeeklyStats reduces a week of days to a WeeklyStats snapshot. It
// does no I/O and returns the same result for the same input.
func ComputeWeeklyStats(days []models.DayEntry, anchor time.Time, opts ...StatsOption) WeeklyStats {
	o := statsOptions{topObstacles: constants.TopObstacles}
	for _, opt := range opts {
		opt(&o)
	}

	week := ResolveWeek(anchor)
	stats := WeeklyStats{
		WeekKey:            week.Key,
		StartDate:          week.Dates[0],
		EndDate:            week.Dates[len(week.Dates)-1],
		Days:               make([]models.DayEntry, len(days)),
		CategoryBreakdown:  make(map[string]CategoryStats),
		EnergyProductivity: make([]EnergyPoint, 0, len(days)),
		StatusCounts:       make(map[models.TaskStatus]int, len(models.Statuses)),
	}
	for _, s := range models.Statuses {
		stats.StatusCounts[s] = 0
	}

	energySum, energyDays := 0, 0
	maxCompleted := 0
	obstacles := newObstacleCounter()

	for i, day := range days {
		stats.Days[i] = day.Clone()

		if day.Energy > 0 {
			energySum += day.Energy
			energyDays++
		}

		completed := 0
		for _, task := range day.Tasks {
			stats.TotalTasks++
			stats.TotalTimeSpent += task.TimeSpent

			cat := stats.CategoryBreakdown[task.Category]
			cat.Total++
			cat.Time += task.TimeSpent
			if task.Status == models.StatusDone {
				completed++
				cat.Done++
			}
			stats.CategoryBreakdown[task.Category] = cat

			if _, known := stats.StatusCounts[task.Status]; known {
				stats.StatusCounts[task.Status]++
			}
			obstacles.add(task.Obstacle)
		}
		stats.CompletedTasks += completed

		stats.EnergyProductivity = append(stats.EnergyProductivity, EnergyPoint{
			Date:      day.Date,
			DayOfWeek: weekdayName(day.Date, true),
			Energy:    day.Energy,
			Completed: completed,
			Total:     len(day.Tasks),
		})

		// strict comparison keeps the earliest day on ties
		if completed > maxCompleted {
			maxCompleted = completed
			name := weekdayName(day.Date, false)
			stats.MostProductiveDay = &name
		}
	}

	if stats.TotalTasks > 0 {
		stats.CompletionRate = int(math.Round(float64(stats.CompletedTasks) / float64(stats.TotalTasks) * 100))
	}
	if energyDays > 0 {
		stats.AverageEnergy = roundTo1(float64(energySum) / float64(energyDays))
	}
	stats.ObstacleFrequency = obstacles.top(o.topObstacles)

	return stats
}

// weekdayName parses the date key as a plain calendar date so the result
// does not depend on the local timezone.
func weekdayName(date string, short bool) string {
	t, err := time.Parse(constants.DateFormat, date)
	if err != nil {
		return ""
	}
	name := t.Weekday().String()
	if short {
		return name[:3]
	}
	return name
}

func roundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}

type obstacleCounter struct {
	counts map[string]int
	order  []string // first-seen order
}

func newObstacleCounter() *obstacleCounter {
	return &obstacleCounter{counts: make(map[string]int)}
}

func (c *obstacleCounter) add(raw string) {
	text := strings.ToLower(strings.TrimSpace(raw))
	if text == "" {
		return
	}
	if _, seen := c.counts[text]; !seen {
		c.order = append(c.order, text)
	}
	c.counts[text]++
}

func (c *obstacleCounter) top(n int) []ObstacleCount {
	out := make([]ObstacleCount, 0, len(c.order))
	for _, text := range c.order {
		out = append(out, ObstacleCount{Text: text, Count: c.counts[text]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > n {
		out = out[:n]
	}
	return out
}
