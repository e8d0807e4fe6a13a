package sqlite

import (
	"github.com/Masterminds/squirrel"

	"github.com/julianstephens/daycompass/internal/models"
)

// GetGoals returns the goals of a week in creation order.
func (s *Store) GetGoals(weekKey string) ([]models.WeeklyGoal, error) {
	if err := s.checkLoaded(); err != nil {
		return nil, err
	}

	rows, err := s.builder().
		Select("id", "week_key", "text", "target", "current", "category").
		From("weekly_goals").
		Where(squirrel.Eq{"week_key": weekKey}).
		OrderBy("rowid").
		Query()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	goals := []models.WeeklyGoal{}
	for rows.Next() {
		var g models.WeeklyGoal
		if err := rows.Scan(&g.ID, &g.WeekKey, &g.Text, &g.Target, &g.Current, &g.Category); err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func (s *Store) SaveGoal(goal models.WeeklyGoal) error {
	if err := s.checkLoaded(); err != nil {
		return err
	}

	_, err := s.builder().
		Insert("weekly_goals").
		Columns("id", "week_key", "text", "target", "current", "category").
		Values(goal.ID, goal.WeekKey, goal.Text, goal.Target, goal.Current, goal.Category).
		Suffix(`ON CONFLICT(id) DO UPDATE SET
			text = excluded.text,
			target = excluded.target,
			current = excluded.current,
			category = excluded.category`).
		Exec()
	return err
}

func (s *Store) DeleteGoal(weekKey, id string) error {
	if err := s.checkLoaded(); err != nil {
		return err
	}

	res, err := s.builder().
		Delete("weekly_goals").
		Where(squirrel.Eq{"week_key": weekKey, "id": id}).
		Exec()
	if err != nil {
		return err
	}
	return expectAffected(res, "goal "+id)
}
