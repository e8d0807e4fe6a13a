package planner

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/daycompass/internal/analytics"
	apperrors "github.com/julianstephens/daycompass/internal/errors"
	"github.com/julianstephens/daycompass/internal/logger"
	"github.com/julianstephens/daycompass/internal/models"
	"github.com/julianstephens/daycompass/internal/validation"
)

type GoalStore interface {
	GetGoals(weekKey string) ([]models.WeeklyGoal, error)
	SaveGoal(models.WeeklyGoal) error
	DeleteGoal(weekKey, id string) error
}

// GoalService manages countable weekly goals. Any date inside a week may be
// passed as its key; it is normalized to the week's Monday.
type GoalService struct {
	store GoalStore
}

func NewGoalService(store GoalStore) *GoalService {
	return &GoalService{store: store}
}

func weekKeyOf(date string) (string, error) {
	if err := validation.ValidateDate(date); err != nil {
		return "", err
	}
	w, err := analytics.ResolveWeekOf(date)
	if err != nil {
		return "", err
	}
	return w.Key, nil
}

// GoalsForWeek returns the week's goals in creation order. A read failure
// yields an empty list.
func (s *GoalService) GoalsForWeek(date string) []models.WeeklyGoal {
	key, err := weekKeyOf(date)
	if err != nil {
		return []models.WeeklyGoal{}
	}
	goals, err := s.store.GetGoals(key)
	if err != nil {
		logger.Warn("Failed to load goals", "week", key, "error", err)
		return []models.WeeklyGoal{}
	}
	return goals
}

func (s *GoalService) AddGoal(date, text string, target int, category string) (models.WeeklyGoal, error) {
	key, err := weekKeyOf(date)
	if err != nil {
		return models.WeeklyGoal{}, err
	}
	text, err = validation.ValidateGoal(text, target)
	if err != nil {
		return models.WeeklyGoal{}, err
	}

	goal := models.WeeklyGoal{
		ID:       uuid.New().String(),
		WeekKey:  key,
		Text:     text,
		Target:   target,
		Category: strings.TrimSpace(category),
	}
	if err := s.store.SaveGoal(goal); err != nil {
		logger.Error("Failed to save goal", "week", key, "error", err)
		return models.WeeklyGoal{}, fmt.Errorf("failed to add goal: %w", err)
	}
	return goal, nil
}

func (s *GoalService) find(key, id string) (models.WeeklyGoal, error) {
	goals, err := s.store.GetGoals(key)
	if err != nil {
		return models.WeeklyGoal{}, fmt.Errorf("failed to load goals: %w", err)
	}
	for _, g := range goals {
		if g.ID == id {
			return g, nil
		}
	}
	return models.WeeklyGoal{}, apperrors.NotFoundf("goal %s in week %s", id, key)
}

// SetProgress sets the goal's count. Negative values clamp to 0; values
// above the target are kept.
func (s *GoalService) SetProgress(date, id string, current int) (models.WeeklyGoal, error) {
	return s.update(date, id, func(g *models.WeeklyGoal) { g.Current = current })
}

func (s *GoalService) Increment(date, id string) (models.WeeklyGoal, error) {
	return s.update(date, id, func(g *models.WeeklyGoal) { g.Current++ })
}

func (s *GoalService) Decrement(date, id string) (models.WeeklyGoal, error) {
	return s.update(date, id, func(g *models.WeeklyGoal) { g.Current-- })
}

func (s *GoalService) update(date, id string, fn func(*models.WeeklyGoal)) (models.WeeklyGoal, error) {
	key, err := weekKeyOf(date)
	if err != nil {
		return models.WeeklyGoal{}, err
	}
	goal, err := s.find(key, id)
	if err != nil {
		return models.WeeklyGoal{}, err
	}

	fn(&goal)
	if goal.Current < 0 {
		goal.Current = 0
	}

	if err := s.store.SaveGoal(goal); err != nil {
		logger.Error("Failed to save goal progress", "goal", id, "error", err)
		return models.WeeklyGoal{}, fmt.Errorf("failed to update goal: %w", err)
	}
	return goal, nil
}

func (s *GoalService) RemoveGoal(date, id string) error {
	key, err := weekKeyOf(date)
	if err != nil {
		return err
	}
	if err := s.store.DeleteGoal(key, id); err != nil {
		return fmt.Errorf("failed to remove goal: %w", err)
	}
	return nil
}
