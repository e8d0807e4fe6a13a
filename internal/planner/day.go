package planner

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/daycompass/internal/autosave"
	"github.com/julianstephens/daycompass/internal/constants"
	apperrors "github.com/julianstephens/daycompass/internal/errors"
	"github.com/julianstephens/daycompass/internal/logger"
	"github.com/julianstephens/daycompass/internal/models"
	"github.com/julianstephens/daycompass/internal/validation"
)

type DayStore interface {
	GetDay(date string) (models.DayEntry, bool, error)
	SaveDay(models.DayEntry) error
}

// NewTask is the user-supplied part of a task.
type NewTask struct {
	Title    string
	Category string
	Priority models.Priority
}

// TaskUpdate changes the non-nil fields of a task.
type TaskUpdate struct {
	Title    *string
	Category *string
	Obstacle *string
}

// DayService edits day records in memory and schedules a debounced save per
// date. The save writes whatever the day looks like when it fires.
type DayService struct {
	store DayStore
	queue *autosave.Queue
	now   clock

	mu   sync.Mutex
	days map[string]models.DayEntry // days edited this session, newer than the store
}

func NewDayService(store DayStore, queue *autosave.Queue) *DayService {
	return &DayService{
		store: store,
		queue: queue,
		now:   time.Now,
		days:  make(map[string]models.DayEntry),
	}
}

// LoadDay returns the day for date. A day that was never saved, or that
// cannot be read, comes back as a fresh NewDay.
func (s *DayService) LoadDay(date string) (models.DayEntry, error) {
	if err := validation.ValidateDate(date); err != nil {
		return models.DayEntry{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentLocked(date).Clone(), nil
}

func (s *DayService) currentLocked(date string) models.DayEntry {
	if d, ok := s.days[date]; ok {
		return d
	}
	day, found, err := s.store.GetDay(date)
	if err != nil {
		logger.Warn("Failed to load day, starting fresh", "date", date, "error", err)
		return models.NewDay(date)
	}
	if !found {
		return models.NewDay(date)
	}
	if day.Tasks == nil {
		day.Tasks = []models.Task{}
	}
	if day.Intentions == nil {
		day.Intentions = []models.Intention{}
	}
	return day
}

// mutate applies fn to a copy of the day, schedules its save and only then
// commits it. The day is left untouched when fn or scheduling fails.
func (s *DayService) mutate(date string, fn func(*models.DayEntry) error) (models.DayEntry, error) {
	if err := validation.ValidateDate(date); err != nil {
		return models.DayEntry{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	day := s.currentLocked(date).Clone()
	if err := fn(&day); err != nil {
		return models.DayEntry{}, err
	}
	// the save reads s.days under s.mu, so it sees the commit below
	if err := s.queue.Schedule(date, func() error { return s.save(date) }); err != nil {
		return models.DayEntry{}, fmt.Errorf("failed to schedule save of %s: %w", date, err)
	}
	s.days[date] = day
	return day.Clone(), nil
}

func (s *DayService) save(date string) error {
	s.mu.Lock()
	day, ok := s.days[date]
	s.mu.Unlock()
	if !ok {
		return nil
	}

	if err := s.store.SaveDay(day); err != nil {
		return fmt.Errorf("failed to save day %s: %w", date, err)
	}
	logger.Debug("Saved day", "date", date, "tasks", len(day.Tasks))
	return nil
}

func (s *DayService) SetEnergy(date string, level int) (models.DayEntry, error) {
	if err := validation.ValidateEnergy(level); err != nil {
		return models.DayEntry{}, err
	}
	return s.mutate(date, func(d *models.DayEntry) error {
		d.Energy = level
		return nil
	})
}

// AddTask appends a not-started task with a fresh id.
func (s *DayService) AddTask(date string, in NewTask) (models.Task, error) {
	title, err := validation.ValidateTaskTitle(in.Title)
	if err != nil {
		return models.Task{}, err
	}
	if err := validation.ValidatePriority(in.Priority); err != nil {
		return models.Task{}, err
	}

	task := models.Task{
		ID:        uuid.New().String(),
		Title:     title,
		Category:  strings.TrimSpace(in.Category),
		Status:    models.StatusNotStarted,
		Priority:  in.Priority,
		CreatedAt: s.now(),
	}
	_, err = s.mutate(date, func(d *models.DayEntry) error {
		d.Tasks = append(d.Tasks, task)
		return nil
	})
	if err != nil {
		return models.Task{}, err
	}
	return task, nil
}

func (s *DayService) withTask(date, id string, fn func(*models.Task) error) (models.Task, error) {
	var out models.Task
	_, err := s.mutate(date, func(d *models.DayEntry) error {
		i := d.TaskIndex(id)
		if i < 0 {
			return apperrors.NotFoundf("task %s on %s", id, date)
		}
		if err := fn(&d.Tasks[i]); err != nil {
			return err
		}
		out = d.Tasks[i]
		return nil
	})
	return out, err
}

// UpdateTask edits title, category or obstacle. Status, priority and time
// have their own operations.
func (s *DayService) UpdateTask(date, id string, upd TaskUpdate) (models.Task, error) {
	var title string
	if upd.Title != nil {
		t, err := validation.ValidateTaskTitle(*upd.Title)
		if err != nil {
			return models.Task{}, err
		}
		title = t
	}
	return s.withTask(date, id, func(t *models.Task) error {
		if upd.Title != nil {
			t.Title = title
		}
		if upd.Category != nil {
			t.Category = strings.TrimSpace(*upd.Category)
		}
		if upd.Obstacle != nil {
			t.Obstacle = strings.TrimSpace(*upd.Obstacle)
		}
		return nil
	})
}

// CycleStatus advances the task to the next status in the cycle.
func (s *DayService) CycleStatus(date, id string) (models.Task, error) {
	return s.withTask(date, id, func(t *models.Task) error {
		t.Status = models.NextStatus(t.Status)
		return nil
	})
}

func (s *DayService) SetStatus(date, id string, status models.TaskStatus) (models.Task, error) {
	if err := validation.ValidateStatus(status); err != nil {
		return models.Task{}, err
	}
	return s.withTask(date, id, func(t *models.Task) error {
		t.Status = status
		return nil
	})
}

func (s *DayService) DeleteTask(date, id string) error {
	_, err := s.mutate(date, func(d *models.DayEntry) error {
		i := d.TaskIndex(id)
		if i < 0 {
			return apperrors.NotFoundf("task %s on %s", id, date)
		}
		d.Tasks = append(d.Tasks[:i], d.Tasks[i+1:]...)
		return nil
	})
	return err
}

// AddTime adds minutes to the task's time spent. Time is never subtracted.
func (s *DayService) AddTime(date, id string, minutes int) (models.Task, error) {
	if err := validation.ValidateMinutes(minutes); err != nil {
		return models.Task{}, err
	}
	return s.withTask(date, id, func(t *models.Task) error {
		t.TimeSpent += minutes
		return nil
	})
}

func (s *DayService) SetWins(date, wins string) (models.DayEntry, error) {
	return s.mutate(date, func(d *models.DayEntry) error {
		d.Wins = wins
		return nil
	})
}

func (s *DayService) SetReflection(date, reflection string) (models.DayEntry, error) {
	return s.mutate(date, func(d *models.DayEntry) error {
		d.Reflection = reflection
		return nil
	})
}

// UpdateIntention replaces the intention at index. Days stored with fewer
// slots are padded up to the default slot count first.
func (s *DayService) UpdateIntention(date string, index int, in models.Intention) (models.DayEntry, error) {
	return s.mutate(date, func(d *models.DayEntry) error {
		for len(d.Intentions) < constants.DefaultIntentionSlots {
			d.Intentions = append(d.Intentions, models.Intention{})
		}
		if err := validation.ValidateIntentionIndex(index, len(d.Intentions)); err != nil {
			return err
		}
		d.Intentions[index] = models.Intention{
			Trigger: strings.TrimSpace(in.Trigger),
			Action:  strings.TrimSpace(in.Action),
		}
		return nil
	})
}

// Unsaved reports whether date has an edit waiting for its autosave.
func (s *DayService) Unsaved(date string) bool {
	return s.queue.IsPending(date)
}

// Flush writes every pending day now.
func (s *DayService) Flush() error {
	return s.queue.Flush()
}
