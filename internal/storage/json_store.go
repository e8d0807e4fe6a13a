package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/julianstephens/daycompass/internal/constants"
	apperrors "github.com/julianstephens/daycompass/internal/errors"
	"github.com/julianstephens/daycompass/internal/models"
)

// Store is the on-disk document of a JSONStore.
type Store struct {
	Version          int                            `json:"version"`
	Settings         Settings                       `json:"settings"`
	Days             map[string]models.DayEntry     `json:"days"`
	Moods            []models.MoodEntry             `json:"moods"`
	NextMoodID       int64                          `json:"next_mood_id"`
	Journals         map[string]models.JournalEntry `json:"journals"`
	Habits           map[string]models.Habit        `json:"habits"`
	Completions      []models.HabitCompletion       `json:"completions"`
	NextCompletionID int64                          `json:"next_completion_id"`
	Goals            []models.WeeklyGoal            `json:"goals"` // insertion order
}

// JSONStore keeps every record in a single JSON file and rewrites it on each change.
type JSONStore struct {
	path string

	mu    sync.Mutex
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	settings := Settings{}
	models.ApplyDefaultSettings(&settings)

	s.store = &Store{
		Version:  1,
		Settings: settings,
	}
	s.ensureMaps()

	return s.save()
}

func (s *JSONStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run '%s init' first", constants.AppName)
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &Store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	s.ensureMaps()

	return nil
}

func (s *JSONStore) ensureMaps() {
	if s.store.Days == nil {
		s.store.Days = make(map[string]models.DayEntry)
	}
	if s.store.Journals == nil {
		s.store.Journals = make(map[string]models.JournalEntry)
	}
	if s.store.Habits == nil {
		s.store.Habits = make(map[string]models.Habit)
	}
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) checkLoaded() error {
	if s.store == nil {
		return apperrors.ErrStorageNotLoaded
	}
	return nil
}

func (s *JSONStore) GetSettings() (Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkLoaded(); err != nil {
		return Settings{}, err
	}
	settings := s.store.Settings
	settings.Categories = append([]string(nil), settings.Categories...)
	return settings, nil
}

func (s *JSONStore) SaveSettings(settings Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkLoaded(); err != nil {
		return err
	}
	settings.Categories = append([]string(nil), settings.Categories...)
	s.store.Settings = settings
	return s.save()
}

func (s *JSONStore) GetDay(date string) (models.DayEntry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkLoaded(); err != nil {
		return models.DayEntry{}, false, err
	}
	day, ok := s.store.Days[date]
	if !ok {
		return models.DayEntry{}, false, nil
	}
	return day.Clone(), true, nil
}

func (s *JSONStore) SaveDay(day models.DayEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkLoaded(); err != nil {
		return err
	}
	day = day.Clone()
	if day.Tasks == nil {
		day.Tasks = []models.Task{}
	}
	if day.Intentions == nil {
		day.Intentions = []models.Intention{}
	}
	s.store.Days[day.Date] = day
	return s.save()
}

func (s *JSONStore) GetDays(dates []string) ([]models.DayEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkLoaded(); err != nil {
		return nil, err
	}
	days := []models.DayEntry{}
	seen := make(map[string]bool, len(dates))
	for _, date := range dates {
		if seen[date] {
			continue
		}
		seen[date] = true
		if day, ok := s.store.Days[date]; ok {
			days = append(days, day.Clone())
		}
	}
	sortDays(days)
	return days, nil
}

func (s *JSONStore) GetDaysInRange(startDay, endDay string) ([]models.DayEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkLoaded(); err != nil {
		return nil, err
	}
	days := []models.DayEntry{}
	for date, day := range s.store.Days {
		if date >= startDay && date <= endDay {
			days = append(days, day.Clone())
		}
	}
	sortDays(days)
	return days, nil
}

func sortDays(days []models.DayEntry) {
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
}

func (s *JSONStore) AddMood(entry models.MoodEntry) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkLoaded(); err != nil {
		return 0, err
	}
	s.store.NextMoodID++
	entry.ID = s.store.NextMoodID
	s.store.Moods = append(s.store.Moods, entry)
	if err := s.save(); err != nil {
		return 0, err
	}
	return entry.ID, nil
}

func (s *JSONStore) DeleteMood(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkLoaded(); err != nil {
		return err
	}
	for i, m := range s.store.Moods {
		if m.ID == id {
			s.store.Moods = append(s.store.Moods[:i], s.store.Moods[i+1:]...)
			return s.save()
		}
	}
	return apperrors.NotFoundf("mood %d", id)
}

func (s *JSONStore) GetMoodsForDay(date string) ([]models.MoodEntry, error) {
	return s.GetMoodsInRange(date, date)
}

func (s *JSONStore) GetMoodsInRange(startDay, endDay string) ([]models.MoodEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkLoaded(); err != nil {
		return nil, err
	}
	moods := []models.MoodEntry{}
	for _, m := range s.store.Moods {
		if m.Date >= startDay && m.Date <= endDay {
			moods = append(moods, m)
		}
	}
	sort.SliceStable(moods, func(i, j int) bool {
		if !moods[i].Timestamp.Equal(moods[j].Timestamp) {
			return moods[i].Timestamp.Before(moods[j].Timestamp)
		}
		return moods[i].ID < moods[j].ID
	})
	return moods, nil
}

func (s *JSONStore) GetJournal(date string) (models.JournalEntry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkLoaded(); err != nil {
		return models.JournalEntry{}, false, err
	}
	entry, ok := s.store.Journals[date]
	return entry, ok, nil
}

func (s *JSONStore) SaveJournal(entry models.JournalEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkLoaded(); err != nil {
		return err
	}
	s.store.Journals[entry.Date] = entry
	return s.save()
}

func (s *JSONStore) DeleteJournal(date string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkLoaded(); err != nil {
		return err
	}
	if _, ok := s.store.Journals[date]; !ok {
		return nil
	}
	delete(s.store.Journals, date)
	return s.save()
}

func (s *JSONStore) AddHabit(habit models.Habit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkLoaded(); err != nil {
		return err
	}
	if existing, ok := s.store.Habits[habit.ID]; ok {
		habit.CreatedAt = existing.CreatedAt
	}
	s.store.Habits[habit.ID] = habit
	return s.save()
}

func (s *JSONStore) GetHabit(id string) (models.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkLoaded(); err != nil {
		return models.Habit{}, err
	}
	habit, ok := s.store.Habits[id]
	if !ok {
		return models.Habit{}, apperrors.NotFoundf("habit %s", id)
	}
	return habit, nil
}

func (s *JSONStore) GetAllHabits() ([]models.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkLoaded(); err != nil {
		return nil, err
	}
	habits := make([]models.Habit, 0, len(s.store.Habits))
	for _, h := range s.store.Habits {
		habits = append(habits, h)
	}
	sort.Slice(habits, func(i, j int) bool {
		if !habits[i].CreatedAt.Equal(habits[j].CreatedAt) {
			return habits[i].CreatedAt.Before(habits[j].CreatedAt)
		}
		return habits[i].ID < habits[j].ID
	})
	return habits, nil
}

func (s *JSONStore) DeleteHabit(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkLoaded(); err != nil {
		return err
	}
	if _, ok := s.store.Habits[id]; !ok {
		return apperrors.NotFoundf("habit %s", id)
	}
	delete(s.store.Habits, id)

	kept := s.store.Completions[:0]
	for _, c := range s.store.Completions {
		if c.HabitID != id {
			kept = append(kept, c)
		}
	}
	s.store.Completions = kept
	return s.save()
}

func (s *JSONStore) GetCompletion(habitID, date string) (models.HabitCompletion, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getCompletion(habitID, date)
}

func (s *JSONStore) getCompletion(habitID, date string) (models.HabitCompletion, bool, error) {
	if err := s.checkLoaded(); err != nil {
		return models.HabitCompletion{}, false, err
	}
	for _, c := range s.store.Completions {
		if c.HabitID == habitID && c.Date == date {
			return c, true, nil
		}
	}
	return models.HabitCompletion{}, false, nil
}

func (s *JSONStore) AddCompletion(c models.HabitCompletion) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, found, err := s.getCompletion(c.HabitID, c.Date)
	if err != nil {
		return 0, err
	}
	if found {
		return existing.ID, nil
	}
	if _, ok := s.store.Habits[c.HabitID]; !ok {
		return 0, apperrors.NotFoundf("habit %s", c.HabitID)
	}
	s.store.NextCompletionID++
	c.ID = s.store.NextCompletionID
	s.store.Completions = append(s.store.Completions, c)
	if err := s.save(); err != nil {
		return 0, err
	}
	return c.ID, nil
}

func (s *JSONStore) DeleteCompletion(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkLoaded(); err != nil {
		return err
	}
	for i, c := range s.store.Completions {
		if c.ID == id {
			s.store.Completions = append(s.store.Completions[:i], s.store.Completions[i+1:]...)
			return s.save()
		}
	}
	return apperrors.NotFoundf("habit completion %d", id)
}

func (s *JSONStore) GetCompletionsInRange(startDay, endDay string) ([]models.HabitCompletion, error) {
	return s.filterCompletions(func(c models.HabitCompletion) bool {
		return c.Date >= startDay && c.Date <= endDay
	})
}

func (s *JSONStore) GetCompletionsForHabit(habitID string, startDay, endDay string) ([]models.HabitCompletion, error) {
	return s.filterCompletions(func(c models.HabitCompletion) bool {
		return c.HabitID == habitID && c.Date >= startDay && c.Date <= endDay
	})
}

func (s *JSONStore) filterCompletions(keep func(models.HabitCompletion) bool) ([]models.HabitCompletion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkLoaded(); err != nil {
		return nil, err
	}
	out := []models.HabitCompletion{}
	for _, c := range s.store.Completions {
		if keep(c) {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].HabitID < out[j].HabitID
	})
	return out, nil
}

func (s *JSONStore) GetGoals(weekKey string) ([]models.WeeklyGoal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkLoaded(); err != nil {
		return nil, err
	}
	goals := []models.WeeklyGoal{}
	for _, g := range s.store.Goals {
		if g.WeekKey == weekKey {
			goals = append(goals, g)
		}
	}
	return goals, nil
}

func (s *JSONStore) SaveGoal(goal models.WeeklyGoal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkLoaded(); err != nil {
		return err
	}
	for i, g := range s.store.Goals {
		if g.ID == goal.ID {
			goal.WeekKey = g.WeekKey
			s.store.Goals[i] = goal
			return s.save()
		}
	}
	s.store.Goals = append(s.store.Goals, goal)
	return s.save()
}

func (s *JSONStore) DeleteGoal(weekKey, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkLoaded(); err != nil {
		return err
	}
	for i, g := range s.store.Goals {
		if g.ID == id && g.WeekKey == weekKey {
			s.store.Goals = append(s.store.Goals[:i], s.store.Goals[i+1:]...)
			return s.save()
		}
	}
	return apperrors.NotFoundf("goal %s", id)
}
