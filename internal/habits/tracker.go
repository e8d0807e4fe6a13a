package habits

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/daycompass/internal/constants"
	apperrors "github.com/julianstephens/daycompass/internal/errors"
	"github.com/julianstephens/daycompass/internal/logger"
	"github.com/julianstephens/daycompass/internal/models"
	"github.com/julianstephens/daycompass/internal/utils"
	"github.com/julianstephens/daycompass/internal/validation"
)

// Store is the part of storage.Provider the tracker needs.
type Store interface {
	AddHabit(models.Habit) error
	GetAllHabits() ([]models.Habit, error)
	DeleteHabit(id string) error

	GetCompletion(habitID, date string) (models.HabitCompletion, bool, error)
	AddCompletion(models.HabitCompletion) (int64, error)
	DeleteCompletion(id int64) error
	GetCompletionsInRange(startDay, endDay string) ([]models.HabitCompletion, error)
}

// Tracker keeps the completions of a date window in memory and answers
// streak and heatmap queries from it. Toggle is the only way completions
// change.
type Tracker struct {
	store Store

	mu          sync.RWMutex
	completions []models.HabitCompletion
	start, end  string
}

func NewTracker(store Store) *Tracker {
	return &Tracker{store: store}
}

// Habits lists the defined habits, oldest first. A read failure yields an
// empty list.
func (t *Tracker) Habits() []models.Habit {
	habits, err := t.store.GetAllHabits()
	if err != nil {
		logger.Warn("Failed to load habits", "error", err)
		return []models.Habit{}
	}
	return habits
}

// AddHabit validates and stores a new habit definition.
func (t *Tracker) AddHabit(name, emoji, color string) (models.Habit, error) {
	name, err := validation.ValidateHabitName(name)
	if err != nil {
		return models.Habit{}, err
	}
	for _, h := range t.Habits() {
		if strings.EqualFold(h.Name, name) {
			return models.Habit{}, apperrors.Validationf("habit with name %q already exists", name)
		}
	}

	habit := models.Habit{
		ID:        uuid.New().String(),
		Name:      name,
		Emoji:     strings.TrimSpace(emoji),
		Color:     strings.TrimSpace(color),
		CreatedAt: time.Now(),
	}
	if err := t.store.AddHabit(habit); err != nil {
		logger.Error("Failed to save habit", "name", name, "error", err)
		return models.Habit{}, fmt.Errorf("failed to add habit: %w", err)
	}
	return habit, nil
}

// LoadCompletions replaces the in-memory window with the completions dated
// start through end. A read failure is logged and leaves the window empty.
func (t *Tracker) LoadCompletions(start, end string) error {
	if err := validation.ValidateDateRange(start, end); err != nil {
		return err
	}

	records, err := t.store.GetCompletionsInRange(start, end)
	if err != nil {
		logger.Warn("Failed to load completions", "start", start, "end", end, "error", err)
		records = []models.HabitCompletion{}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.completions = records
	t.start, t.end = start, end
	return nil
}

// LoadWindow loads the n days ending at anchor.
func (t *Tracker) LoadWindow(anchor time.Time, n int) error {
	if n <= 0 {
		n = constants.DefaultStreakLookback
	}
	end := utils.StartOfDay(anchor)
	return t.LoadCompletions(utils.DateKey(utils.AddDays(end, -(n-1))), utils.DateKey(end))
}

// Window returns the loaded date range.
func (t *Tracker) Window() (start, end string) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.start, t.end
}

func (t *Tracker) set(habitID string) CompletionSet {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return NewCompletionSet(habitID, t.completions)
}

// IsCompleted reports whether the loaded window has a completion for
// habitID on date.
func (t *Tracker) IsCompleted(habitID, date string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, c := range t.completions {
		if c.HabitID == habitID && c.Date == date {
			return true
		}
	}
	return false
}

// Streak is the current streak of habitID ending at date, bounded by the
// loaded window.
func (t *Tracker) Streak(habitID, date string) (int, error) {
	anchor, err := utils.ParseDate(date)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return Streak(t.set(habitID), anchor), nil
}

// LongestStreak is the longest run of habitID within the loaded window.
func (t *Tracker) LongestStreak(habitID string) int {
	return LongestStreak(t.set(habitID))
}

// HeatmapData returns the completed dates of habitID within the loaded window.
func (t *Tracker) HeatmapData(habitID string) map[string]bool {
	set := t.set(habitID)
	out := make(map[string]bool, len(set))
	for date := range set {
		out[date] = true
	}
	return out
}

// Heatmap returns the n days ending at date, oldest first.
func (t *Tracker) Heatmap(habitID, date string, n int) ([]Cell, error) {
	anchor, err := utils.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return Heatmap(t.set(habitID), anchor, n), nil
}

// Toggle flips the completion of habitID on date and reports whether the
// habit is completed afterwards. The store lookup, not the in-memory
// window, decides which way to flip, so (habitID, date) stays unique.
func (t *Tracker) Toggle(habitID, date string) (bool, error) {
	if err := validation.ValidateDate(date); err != nil {
		return false, err
	}

	existing, found, err := t.store.GetCompletion(habitID, date)
	if err != nil {
		logger.Error("Failed to look up completion", "habit", habitID, "date", date, "error", err)
		return false, fmt.Errorf("failed to toggle completion: %w", err)
	}

	if found {
		if err := t.store.DeleteCompletion(existing.ID); err != nil {
			logger.Error("Failed to delete completion", "habit", habitID, "date", date, "error", err)
			return true, fmt.Errorf("failed to toggle completion: %w", err)
		}
		t.mu.Lock()
		t.removeLocked(func(c models.HabitCompletion) bool {
			return c.HabitID == habitID && c.Date == date
		})
		t.mu.Unlock()
		return false, nil
	}

	record := models.HabitCompletion{HabitID: habitID, Date: date}
	id, err := t.store.AddCompletion(record)
	if err != nil {
		logger.Error("Failed to add completion", "habit", habitID, "date", date, "error", err)
		return false, fmt.Errorf("failed to toggle completion: %w", err)
	}
	record.ID = id

	t.mu.Lock()
	if t.start != "" && date >= t.start && date <= t.end {
		t.completions = append(t.completions, record)
	}
	t.mu.Unlock()
	return true, nil
}

// RemoveHabit deletes the habit and every completion of it.
func (t *Tracker) RemoveHabit(id string) error {
	if err := t.store.DeleteHabit(id); err != nil {
		logger.Error("Failed to remove habit", "habit", id, "error", err)
		return fmt.Errorf("failed to remove habit: %w", err)
	}
	t.mu.Lock()
	t.removeLocked(func(c models.HabitCompletion) bool { return c.HabitID == id })
	t.mu.Unlock()
	return nil
}

func (t *Tracker) removeLocked(match func(models.HabitCompletion) bool) {
	kept := t.completions[:0]
	for _, c := range t.completions {
		if !match(c) {
			kept = append(kept, c)
		}
	}
	t.completions = kept
}
