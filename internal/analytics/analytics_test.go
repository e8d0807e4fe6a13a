package analytics

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/daycompass/internal/models"
)

// fakeDays is an in-memory DayReader.
type fakeDays struct {
	days  map[string]models.DayEntry
	err   error
	calls int
}

func newFakeDays(days ...models.DayEntry) *fakeDays {
	f := &fakeDays{days: make(map[string]models.DayEntry)}
	for _, d := range days {
		f.days[d.Date] = d
	}
	return f
}

func (f *fakeDays) GetDays(dates []string) ([]models.DayEntry, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := []models.DayEntry{}
	for _, date := range dates {
		if d, ok := f.days[date]; ok {
			out = append(out, d)
		}
	}
	return out, nil
}

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation("2006-01-02", s, time.Local)
	require.NoError(t, err)
	return d
}

func task(status models.TaskStatus) models.Task {
	return models.Task{ID: string(status), Title: "t", Category: "Coding", Status: status, Priority: models.PriorityUrgentImportant}
}

func dayWith(dateKey string, energy int, tasks ...models.Task) models.DayEntry {
	d := models.EmptyDay(dateKey)
	d.Energy = energy
	d.Tasks = append(d.Tasks, tasks...)
	return d
}

func TestResolveWeek(t *testing.T) {
	tests := []struct {
		anchor string
		key    string
		end    string
	}{
		{"2025-03-10", "2025-03-10", "2025-03-16"}, // Monday
		{"2025-03-13", "2025-03-10", "2025-03-16"}, // Thursday
		{"2025-03-16", "2025-03-10", "2025-03-16"}, // Sunday
		{"2025-01-01", "2024-12-30", "2025-01-05"}, // across new year
		{"2024-02-29", "2024-02-26", "2024-03-03"}, // leap day
	}

	for _, tt := range tests {
		t.Run(tt.anchor, func(t *testing.T) {
			w := ResolveWeek(date(t, tt.anchor))
			assert.Equal(t, tt.key, w.Key)
			assert.Equal(t, tt.key, w.Dates[0])
			assert.Equal(t, tt.end, w.Dates[6])
			assert.Equal(t, time.Monday, w.Start.Weekday())
			assert.Equal(t, time.Sunday, w.End.Weekday())
			assert.True(t, w.Contains(tt.anchor))
		})
	}
}

func TestResolveWeek_DatesAreConsecutiveAcrossDST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// DST starts Sunday 2025-03-09 in New York
	anchor := time.Date(2025, 3, 9, 23, 30, 0, 0, ny)
	w := ResolveWeek(anchor)

	assert.Equal(t, [7]string{
		"2025-03-03", "2025-03-04", "2025-03-05", "2025-03-06",
		"2025-03-07", "2025-03-08", "2025-03-09",
	}, w.Dates)
}

func TestWeekKey_UsesLocalCalendarDate(t *testing.T) {
	kiritimati, err := time.LoadLocation("Pacific/Kiritimati") // UTC+14
	require.NoError(t, err)
	honolulu, err := time.LoadLocation("Pacific/Honolulu") // UTC-10
	require.NoError(t, err)

	// same instant, different calendar dates
	instant := time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-03-10", WeekKey(instant.In(kiritimati)))
	assert.Equal(t, "2025-03-03", WeekKey(instant.In(honolulu)))

	// every day of a week in any location yields the same key
	for _, loc := range []*time.Location{time.UTC, kiritimati, honolulu} {
		for d := 10; d <= 16; d++ {
			assert.Equal(t, "2025-03-10", WeekKey(time.Date(2025, 3, d, 23, 59, 0, 0, loc)))
		}
	}
}

func TestWeekNavigation(t *testing.T) {
	w, err := ResolveWeekOf("2025-03-12")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-03", w.Previous().Key)
	assert.Equal(t, "2025-03-17", w.Next().Key)

	_, err = ResolveWeekOf("12/03/2025")
	assert.Error(t, err)
}

func TestLoadWeekDays_FillsGapsInOrder(t *testing.T) {
	store := newFakeDays(
		dayWith("2025-03-12", 3, task(models.StatusDone)),
		dayWith("2025-03-16", 5),
		dayWith("2025-03-17", 4), // next week, must not appear
	)

	days := LoadWeekDays(store, date(t, "2025-03-14"))
	require.Len(t, days, 7)
	assert.Equal(t, 1, store.calls, "week must be fetched in one batch")

	start := date(t, "2025-03-10")
	for i, d := range days {
		assert.Equal(t, start.AddDate(0, 0, i).Format("2006-01-02"), d.Date)
		assert.NotNil(t, d.Tasks)
		assert.NotNil(t, d.Intentions)
	}
	assert.Equal(t, 3, days[2].Energy)
	assert.Len(t, days[2].Tasks, 1)
	assert.Equal(t, 5, days[6].Energy)

	empty := days[0]
	assert.Equal(t, 0, empty.Energy)
	assert.Empty(t, empty.Tasks)
	assert.Empty(t, empty.Wins)
	assert.Empty(t, empty.Reflection)
	assert.Empty(t, empty.Intentions)

	// synthesized days are never written back
	_, persisted := store.days["2025-03-10"]
	assert.False(t, persisted)
}

func TestLoadWeekDays_ReadFailureYieldsEmptyWeek(t *testing.T) {
	store := newFakeDays()
	store.err = errors.New("database is locked")

	days := LoadWeekDays(store, date(t, "2025-03-10"))
	require.Len(t, days, 7)
	for _, d := range days {
		assert.True(t, d.IsBlank())
	}
}

func TestComputeWeeklyStats_EmptyWeek(t *testing.T) {
	days := LoadWeekDays(newFakeDays(), date(t, "2025-03-10"))
	stats := ComputeWeeklyStats(days, date(t, "2025-03-10"))

	assert.Equal(t, "2025-03-10", stats.WeekKey)
	assert.Equal(t, "2025-03-10", stats.StartDate)
	assert.Equal(t, "2025-03-16", stats.EndDate)
	assert.Zero(t, stats.TotalTasks)
	assert.Zero(t, stats.CompletionRate)
	assert.Zero(t, stats.AverageEnergy)
	assert.Nil(t, stats.MostProductiveDay)
	assert.Empty(t, stats.ObstacleFrequency)
	assert.Empty(t, stats.CategoryBreakdown)
	assert.Len(t, stats.EnergyProductivity, 7)
	assert.Len(t, stats.StatusCounts, 5)
	for _, s := range models.Statuses {
		v, ok := stats.StatusCounts[s]
		assert.True(t, ok, "status %s missing", s)
		assert.Zero(t, v)
	}
}

func TestComputeWeeklyStats_Totals(t *testing.T) {
	coding := func(status models.TaskStatus, minutes int) models.Task {
		tk := task(status)
		tk.TimeSpent = minutes
		return tk
	}
	health := coding(models.StatusDone, 30)
	health.Category = "Health"
	stale := coding(models.StatusDropped, 0)
	stale.Category = "Old Category"

	days := LoadWeekDays(newFakeDays(
		dayWith("2025-03-10", 0, coding(models.StatusDone, 60), coding(models.StatusInProgress, 15)),
		dayWith("2025-03-11", 0, health, stale),
		dayWith("2025-03-12", 3, coding(models.StatusMoved, 0)),
		dayWith("2025-03-13", 5),
	), date(t, "2025-03-10"))

	stats := ComputeWeeklyStats(days, date(t, "2025-03-12"))

	assert.Equal(t, 5, stats.TotalTasks)
	assert.Equal(t, 2, stats.CompletedTasks)
	assert.Equal(t, 40, stats.CompletionRate)
	assert.Equal(t, 105, stats.TotalTimeSpent)
	// energies [0,0,3,5,0,0,0] -> (3+5)/2
	assert.Equal(t, 4.0, stats.AverageEnergy)

	assert.Equal(t, CategoryStats{Total: 3, Done: 1, Time: 75}, stats.CategoryBreakdown["Coding"])
	assert.Equal(t, CategoryStats{Total: 1, Done: 1, Time: 30}, stats.CategoryBreakdown["Health"])
	assert.Equal(t, CategoryStats{Total: 1, Done: 0, Time: 0}, stats.CategoryBreakdown["Old Category"])

	assert.Equal(t, map[models.TaskStatus]int{
		models.StatusNotStarted: 0,
		models.StatusInProgress: 1,
		models.StatusDone:       2,
		models.StatusMoved:      1,
		models.StatusDropped:    1,
	}, stats.StatusCounts)

	assert.Equal(t, EnergyPoint{Date: "2025-03-10", DayOfWeek: "Mon", Energy: 0, Completed: 1, Total: 2}, stats.EnergyProductivity[0])
	assert.Equal(t, EnergyPoint{Date: "2025-03-13", DayOfWeek: "Thu", Energy: 5, Completed: 0, Total: 0}, stats.EnergyProductivity[3])
	assert.Equal(t, "Sun", stats.EnergyProductivity[6].DayOfWeek)
}

func TestComputeWeeklyStats_AverageEnergyRounding(t *testing.T) {
	days := LoadWeekDays(newFakeDays(
		dayWith("2025-03-10", 4),
		dayWith("2025-03-11", 4),
		dayWith("2025-03-12", 5),
	), date(t, "2025-03-10"))

	stats := ComputeWeeklyStats(days, date(t, "2025-03-10"))
	assert.Equal(t, 4.3, stats.AverageEnergy)
}

func TestComputeWeeklyStats_CompletionRateMonotonic(t *testing.T) {
	statuses := []models.TaskStatus{models.StatusNotStarted, models.StatusNotStarted, models.StatusNotStarted}
	prev := -1
	for done := 0; done <= len(statuses); done++ {
		var tasks []models.Task
		for i, s := range statuses {
			if i < done {
				s = models.StatusDone
			}
			tasks = append(tasks, task(s))
		}
		days := LoadWeekDays(newFakeDays(dayWith("2025-03-10", 0, tasks...)), date(t, "2025-03-10"))
		rate := ComputeWeeklyStats(days, date(t, "2025-03-10")).CompletionRate
		assert.GreaterOrEqual(t, rate, prev)
		prev = rate
	}
	assert.Equal(t, 100, prev)
}

func TestComputeWeeklyStats_MostProductiveDayTiesKeepEarliest(t *testing.T) {
	done := task(models.StatusDone)
	days := LoadWeekDays(newFakeDays(
		dayWith("2025-03-10", 0, done, done),
		dayWith("2025-03-11", 0, done, done),
	), date(t, "2025-03-10"))

	stats := ComputeWeeklyStats(days, date(t, "2025-03-10"))
	require.NotNil(t, stats.MostProductiveDay)
	assert.Equal(t, "Monday", *stats.MostProductiveDay)

	days = LoadWeekDays(newFakeDays(
		dayWith("2025-03-10", 0, done),
		dayWith("2025-03-15", 0, done, done),
	), date(t, "2025-03-10"))
	stats = ComputeWeeklyStats(days, date(t, "2025-03-10"))
	require.NotNil(t, stats.MostProductiveDay)
	assert.Equal(t, "Saturday", *stats.MostProductiveDay)
}

func TestComputeWeeklyStats_MostProductiveDayNilWithoutCompletions(t *testing.T) {
	days := LoadWeekDays(newFakeDays(
		dayWith("2025-03-10", 3, task(models.StatusInProgress)),
	), date(t, "2025-03-10"))
	assert.Nil(t, ComputeWeeklyStats(days, date(t, "2025-03-10")).MostProductiveDay)
}

func TestComputeWeeklyStats_ObstacleNormalization(t *testing.T) {
	withObstacle := func(o string) models.Task {
		tk := task(models.StatusMoved)
		tk.Obstacle = o
		return tk
	}

	days := LoadWeekDays(newFakeDays(
		dayWith("2025-03-10", 0, withObstacle("Slack"), withObstacle(" Meetings "), withObstacle("   ")),
		dayWith("2025-03-11", 0, withObstacle("meetings"), withObstacle("tired"), withObstacle("")),
		dayWith("2025-03-12", 0, withObstacle("TIRED")),
	), date(t, "2025-03-10"))

	stats := ComputeWeeklyStats(days, date(t, "2025-03-10"))
	assert.Equal(t, []ObstacleCount{
		{Text: "meetings", Count: 2},
		{Text: "tired", Count: 2},
		{Text: "slack", Count: 1},
	}, stats.ObstacleFrequency)
}

func TestComputeWeeklyStats_ObstacleTopN(t *testing.T) {
	var tasks []models.Task
	for i := 0; i < 12; i++ {
		tk := task(models.StatusMoved)
		tk.Obstacle = string(rune('a' + i))
		tasks = append(tasks, tk)
	}
	days := LoadWeekDays(newFakeDays(dayWith("2025-03-10", 0, tasks...)), date(t, "2025-03-10"))

	stats := ComputeWeeklyStats(days, date(t, "2025-03-10"))
	require.Len(t, stats.ObstacleFrequency, 10)
	assert.Equal(t, "a", stats.ObstacleFrequency[0].Text)
	assert.Equal(t, "j", stats.ObstacleFrequency[9].Text)

	stats = ComputeWeeklyStats(days, date(t, "2025-03-10"), WithTopObstacles(3))
	assert.Len(t, stats.ObstacleFrequency, 3)
}

func TestComputeWeeklyStats_IsPureAndIsolated(t *testing.T) {
	days := LoadWeekDays(newFakeDays(
		dayWith("2025-03-10", 2, task(models.StatusDone), task(models.StatusMoved)),
	), date(t, "2025-03-10"))

	a := ComputeWeeklyStats(days, date(t, "2025-03-10"))
	b := ComputeWeeklyStats(days, date(t, "2025-03-10"))
	assert.Equal(t, a, b)

	// mutating the input afterwards must not leak into the snapshot
	days[0].Tasks[0].Status = models.StatusDropped
	assert.Equal(t, models.StatusDone, a.Days[0].Tasks[0].Status)
}

func TestLoadPreviousWeekStats(t *testing.T) {
	anchor := date(t, "2025-03-12")

	t.Run("absent when previous week is empty", func(t *testing.T) {
		store := newFakeDays(dayWith("2025-03-10", 4, task(models.StatusDone)))
		assert.Nil(t, LoadPreviousWeekStats(store, anchor))
	})

	t.Run("absent when only blank wins recorded", func(t *testing.T) {
		d := dayWith("2025-03-04", 0)
		d.Wins = "text without tasks or energy"
		assert.Nil(t, LoadPreviousWeekStats(newFakeDays(d), anchor))
	})

	t.Run("present when one day has energy", func(t *testing.T) {
		store := newFakeDays(dayWith("2025-03-05", 3))
		prev := LoadPreviousWeekStats(store, anchor)
		require.NotNil(t, prev)
		assert.Equal(t, "2025-03-03", prev.WeekKey)
		assert.Equal(t, 3.0, prev.AverageEnergy)
		assert.Len(t, prev.Days, 7)
	})

	t.Run("present when one day has tasks", func(t *testing.T) {
		store := newFakeDays(dayWith("2025-03-09", 0, task(models.StatusNotStarted)))
		prev := LoadPreviousWeekStats(store, anchor)
		require.NotNil(t, prev)
		assert.Equal(t, 1, prev.TotalTasks)
	})
}

func TestClassifyTrend(t *testing.T) {
	tests := []struct {
		name       string
		curr, prev float64
		invert     bool
		want       Trend
	}{
		{"equal", 50, 50, false, TrendFlat},
		{"below threshold", 4.2, 3.8, false, TrendFlat},
		{"at threshold", 4.5, 4.0, false, TrendUp},
		{"increase", 60, 40, false, TrendUp},
		{"decrease", 40, 60, false, TrendDown},
		{"inverted decrease", 40, 60, true, TrendUp},
		{"inverted increase", 60, 40, true, TrendDown},
		{"inverted flat", 3.1, 3.0, true, TrendFlat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyTrend(tt.curr, tt.prev, tt.invert))
		})
	}
}

func TestCompare(t *testing.T) {
	assert.Nil(t, Compare(WeeklyStats{}, nil))

	current := WeeklyStats{CompletionRate: 75, AverageEnergy: 3.4, TotalTimeSpent: 120}
	previous := WeeklyStats{CompletionRate: 50, AverageEnergy: 3.6, TotalTimeSpent: 180}

	cmp := Compare(current, &previous)
	require.NotNil(t, cmp)
	assert.Equal(t, TrendUp, cmp.CompletionRate.Trend)
	assert.Equal(t, "25% up", cmp.CompletionRate.Label("%"))
	assert.Equal(t, TrendFlat, cmp.AverageEnergy.Trend)
	assert.Equal(t, "Flat", cmp.AverageEnergy.Label(""))
	assert.Equal(t, TrendDown, cmp.TotalTime.Trend)
	assert.Equal(t, "60m down", cmp.TotalTime.Label("m"))

	energy := newDelta(4.5, 3.0, false)
	assert.Equal(t, "1.5 up", energy.Label(""))
}

func TestBuildReport(t *testing.T) {
	store := newFakeDays(
		dayWith("2025-03-04", 2, task(models.StatusDone), task(models.StatusMoved)),
		dayWith("2025-03-11", 4, task(models.StatusDone)),
	)

	report := BuildReport(store, date(t, "2025-03-11"))
	assert.Equal(t, "2025-03-10", report.Stats.WeekKey)
	require.NotNil(t, report.Previous)
	require.NotNil(t, report.Comparison)
	assert.Equal(t, 100.0, report.Comparison.CompletionRate.Current)
	assert.Equal(t, 50.0, report.Comparison.CompletionRate.Previous)
}

func TestViews(t *testing.T) {
	older := task(models.StatusDone)
	older.ID, older.CreatedAt = "older", time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	newer := task(models.StatusMoved)
	newer.ID, newer.CreatedAt = "newer", time.Date(2025, 3, 12, 8, 0, 0, 0, time.UTC)
	admin := task(models.StatusDone)
	admin.ID, admin.Category, admin.CreatedAt = "admin", "Admin", time.Date(2025, 3, 11, 8, 0, 0, 0, time.UTC)

	mon := dayWith("2025-03-10", 3, older)
	mon.Wins = "Finished the draft"
	wed := dayWith("2025-03-12", 0, newer)
	wed.Wins = "   "
	days := LoadWeekDays(newFakeDays(mon, dayWith("2025-03-11", 0, admin), wed), date(t, "2025-03-10"))
	stats := ComputeWeeklyStats(days, date(t, "2025-03-10"))

	wins := WeeklyWins(stats.Days)
	require.Len(t, wins, 1)
	assert.Equal(t, "2025-03-10", wins[0].Date)

	recent := TasksByRecency(stats)
	require.Len(t, recent, 3)
	assert.Equal(t, []string{"newer", "admin", "older"}, []string{recent[0].ID, recent[1].ID, recent[2].ID})
	assert.Equal(t, "2025-03-12", recent[0].Date)

	active := ActiveEnergyPoints(stats)
	assert.Len(t, active, 3)

	rows := CategoryRows(stats)
	require.Len(t, rows, 2)
	assert.Equal(t, "Coding", rows[0].Category)
	assert.Equal(t, 50, rows[0].Rate)
	assert.Equal(t, "Admin", rows[1].Category)
	assert.Equal(t, 100, rows[1].Rate)
}
