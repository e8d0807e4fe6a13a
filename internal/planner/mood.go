package planner

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/julianstephens/daycompass/internal/constants"
	"github.com/julianstephens/daycompass/internal/logger"
	"github.com/julianstephens/daycompass/internal/models"
	"github.com/julianstephens/daycompass/internal/utils"
	"github.com/julianstephens/daycompass/internal/validation"
)

type MoodStore interface {
	AddMood(models.MoodEntry) (int64, error)
	DeleteMood(id int64) error
	GetMoodsForDay(date string) ([]models.MoodEntry, error)
	GetMoodsInRange(startDay, endDay string) ([]models.MoodEntry, error)
}

// MoodService logs mood check-ins. Moods are written immediately; they are
// never edited in place.
type MoodService struct {
	store MoodStore
	now   clock
}

func NewMoodService(store MoodStore) *MoodService {
	return &MoodService{store: store, now: time.Now}
}

func (s *MoodService) LogMood(date string, level int, note string) (models.MoodEntry, error) {
	if err := validation.ValidateDate(date); err != nil {
		return models.MoodEntry{}, err
	}
	if err := validation.ValidateMoodLevel(level); err != nil {
		return models.MoodEntry{}, err
	}

	entry := models.MoodEntry{
		Date:      date,
		Timestamp: s.now(),
		Level:     level,
		Note:      strings.TrimSpace(note),
	}
	id, err := s.store.AddMood(entry)
	if err != nil {
		logger.Error("Failed to log mood", "date", date, "error", err)
		return models.MoodEntry{}, fmt.Errorf("failed to log mood: %w", err)
	}
	entry.ID = id
	return entry, nil
}

func (s *MoodService) DeleteMood(id int64) error {
	if err := s.store.DeleteMood(id); err != nil {
		logger.Error("Failed to delete mood", "id", id, "error", err)
		return fmt.Errorf("failed to delete mood %d: %w", id, err)
	}
	return nil
}

// MoodsForDay returns the day's moods by timestamp. A read failure yields
// an empty list.
func (s *MoodService) MoodsForDay(date string) []models.MoodEntry {
	moods, err := s.store.GetMoodsForDay(date)
	if err != nil {
		logger.Warn("Failed to load moods", "date", date, "error", err)
		return []models.MoodEntry{}
	}
	return moods
}

// WeekMoodAverages averages each of the seven days ending at endDate. Days
// without moods are left out.
func (s *MoodService) WeekMoodAverages(endDate string) ([]models.DailyMood, error) {
	if err := validation.ValidateDate(endDate); err != nil {
		return nil, err
	}
	end, _ := time.Parse(constants.DateFormat, endDate)
	dates := utils.DateRange(end, constants.DaysPerWeek)

	moods, err := s.store.GetMoodsInRange(dates[0], dates[len(dates)-1])
	if err != nil {
		logger.Warn("Failed to load week moods", "end", endDate, "error", err)
		return []models.DailyMood{}, nil
	}

	sums := make(map[string]int)
	counts := make(map[string]int)
	for _, m := range moods {
		sums[m.Date] += m.Level
		counts[m.Date]++
	}

	out := []models.DailyMood{}
	for _, date := range dates {
		n := counts[date]
		if n == 0 {
			continue
		}
		avg := float64(sums[date]) / float64(n)
		out = append(out, models.DailyMood{
			Date:    date,
			Average: math.Round(avg*10) / 10,
			Count:   n,
		})
	}
	return out, nil
}
