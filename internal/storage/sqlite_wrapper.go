package storage

import (
	"database/sql"

	"github.com/julianstephens/daycompass/internal/migration"
	"github.com/julianstephens/daycompass/internal/models"
	"github.com/julianstephens/daycompass/internal/storage/sqlite"
)

// SQLiteStore adapts sqlite.Store to Provider.
type SQLiteStore struct {
	store *sqlite.Store
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{store: sqlite.NewStore(path)}
}

// Lifecycle methods
func (s *SQLiteStore) Init() error           { return s.store.Init() }
func (s *SQLiteStore) Load() error           { return s.store.Load() }
func (s *SQLiteStore) Close() error          { return s.store.Close() }
func (s *SQLiteStore) GetConfigPath() string { return s.store.GetConfigPath() }
func (s *SQLiteStore) GetDB() *sql.DB        { return s.store.GetDB() }

// Migrate applies pending schema migrations.
func (s *SQLiteStore) Migrate(logFn func(string)) (int, error) { return s.store.Migrate(logFn) }

func (s *SQLiteStore) MigrationStatus() (migration.Status, error) { return s.store.MigrationStatus() }

// tableExists is used by tests to check the migrated schema.
func (s *SQLiteStore) tableExists(tableName string) (bool, error) {
	var count int
	row := s.GetDB().QueryRow("SELECT count(*) FROM sqlite_master WHERE type='table' AND name COLLATE NOCASE = ?", tableName)
	if err := row.Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// Settings methods
func (s *SQLiteStore) GetSettings() (Settings, error)       { return s.store.GetSettings() }
func (s *SQLiteStore) SaveSettings(settings Settings) error { return s.store.SaveSettings(settings) }

// Day methods
func (s *SQLiteStore) GetDay(date string) (models.DayEntry, bool, error) { return s.store.GetDay(date) }
func (s *SQLiteStore) SaveDay(day models.DayEntry) error                 { return s.store.SaveDay(day) }
func (s *SQLiteStore) GetDays(dates []string) ([]models.DayEntry, error) {
	return s.store.GetDays(dates)
}
func (s *SQLiteStore) GetDaysInRange(startDay, endDay string) ([]models.DayEntry, error) {
	return s.store.GetDaysInRange(startDay, endDay)
}

// Mood methods
func (s *SQLiteStore) AddMood(entry models.MoodEntry) (int64, error) { return s.store.AddMood(entry) }
func (s *SQLiteStore) DeleteMood(id int64) error                     { return s.store.DeleteMood(id) }
func (s *SQLiteStore) GetMoodsForDay(date string) ([]models.MoodEntry, error) {
	return s.store.GetMoodsForDay(date)
}
func (s *SQLiteStore) GetMoodsInRange(startDay, endDay string) ([]models.MoodEntry, error) {
	return s.store.GetMoodsInRange(startDay, endDay)
}

// Journal methods
func (s *SQLiteStore) GetJournal(date string) (models.JournalEntry, bool, error) {
	return s.store.GetJournal(date)
}
func (s *SQLiteStore) SaveJournal(entry models.JournalEntry) error { return s.store.SaveJournal(entry) }
func (s *SQLiteStore) DeleteJournal(date string) error             { return s.store.DeleteJournal(date) }

// Habit methods
func (s *SQLiteStore) AddHabit(habit models.Habit) error        { return s.store.AddHabit(habit) }
func (s *SQLiteStore) GetHabit(id string) (models.Habit, error) { return s.store.GetHabit(id) }
func (s *SQLiteStore) GetAllHabits() ([]models.Habit, error)    { return s.store.GetAllHabits() }
func (s *SQLiteStore) DeleteHabit(id string) error              { return s.store.DeleteHabit(id) }

// Habit completion methods
func (s *SQLiteStore) GetCompletion(habitID, date string) (models.HabitCompletion, bool, error) {
	return s.store.GetCompletion(habitID, date)
}
func (s *SQLiteStore) AddCompletion(c models.HabitCompletion) (int64, error) {
	return s.store.AddCompletion(c)
}
func (s *SQLiteStore) DeleteCompletion(id int64) error { return s.store.DeleteCompletion(id) }
func (s *SQLiteStore) GetCompletionsInRange(startDay, endDay string) ([]models.HabitCompletion, error) {
	return s.store.GetCompletionsInRange(startDay, endDay)
}
func (s *SQLiteStore) GetCompletionsForHabit(habitID string, startDay, endDay string) ([]models.HabitCompletion, error) {
	return s.store.GetCompletionsForHabit(habitID, startDay, endDay)
}

// Goal methods
func (s *SQLiteStore) GetGoals(weekKey string) ([]models.WeeklyGoal, error) {
	return s.store.GetGoals(weekKey)
}
func (s *SQLiteStore) SaveGoal(goal models.WeeklyGoal) error { return s.store.SaveGoal(goal) }
func (s *SQLiteStore) DeleteGoal(weekKey, id string) error   { return s.store.DeleteGoal(weekKey, id) }
