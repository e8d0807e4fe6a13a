package storage

import "github.com/julianstephens/daycompass/internal/models"

// Settings is re-exported so callers need not import models for it.
type Settings = models.Settings

// Provider is the local record store. Lookups that may legitimately find
// nothing return an explicit found flag instead of an error.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (Settings, error)
	SaveSettings(Settings) error

	// Days
	GetDay(date string) (models.DayEntry, bool, error)
	SaveDay(models.DayEntry) error
	// GetDays returns the stored days whose date is in dates, in date order.
	// Dates without a record are simply absent from the result.
	GetDays(dates []string) ([]models.DayEntry, error)
	GetDaysInRange(startDay, endDay string) ([]models.DayEntry, error)

	// Moods
	AddMood(models.MoodEntry) (int64, error)
	DeleteMood(id int64) error
	GetMoodsForDay(date string) ([]models.MoodEntry, error)
	GetMoodsInRange(startDay, endDay string) ([]models.MoodEntry, error)

	// Journals
	GetJournal(date string) (models.JournalEntry, bool, error)
	SaveJournal(models.JournalEntry) error
	DeleteJournal(date string) error

	// Habits
	AddHabit(models.Habit) error
	GetHabit(id string) (models.Habit, error)
	GetAllHabits() ([]models.Habit, error)
	// DeleteHabit removes the habit and all of its completions.
	DeleteHabit(id string) error

	// Habit completions
	GetCompletion(habitID, date string) (models.HabitCompletion, bool, error)
	AddCompletion(models.HabitCompletion) (int64, error)
	DeleteCompletion(id int64) error
	GetCompletionsInRange(startDay, endDay string) ([]models.HabitCompletion, error)
	GetCompletionsForHabit(habitID string, startDay, endDay string) ([]models.HabitCompletion, error)

	// Weekly goals
	GetGoals(weekKey string) ([]models.WeeklyGoal, error)
	SaveGoal(models.WeeklyGoal) error
	DeleteGoal(weekKey, id string) error

	// Utils
	GetConfigPath() string
}
