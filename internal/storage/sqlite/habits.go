package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/julianstephens/daycompass/internal/models"
)

var habitColumns = []string{"id", "name", "emoji", "color", "created_at"}

func (s *Store) AddHabit(habit models.Habit) error {
	if err := s.checkLoaded(); err != nil {
		return err
	}

	_, err := s.builder().
		Insert("habits").
		Columns(habitColumns...).
		Values(habit.ID, habit.Name, habit.Emoji, habit.Color, formatTimestamp(habit.CreatedAt)).
		Suffix(`ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			emoji = excluded.emoji,
			color = excluded.color`).
		Exec()
	return err
}

func (s *Store) GetHabit(id string) (models.Habit, error) {
	if err := s.checkLoaded(); err != nil {
		return models.Habit{}, err
	}

	row := s.builder().Select(habitColumns...).From("habits").
		Where(squirrel.Eq{"id": id}).
		QueryRow()

	h, err := scanHabit(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Habit{}, notFound("habit " + id)
	}
	return h, err
}

func (s *Store) GetAllHabits() ([]models.Habit, error) {
	if err := s.checkLoaded(); err != nil {
		return nil, err
	}

	rows, err := s.builder().Select(habitColumns...).From("habits").
		OrderBy("created_at", "id").
		Query()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	habits := []models.Habit{}
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

// DeleteHabit removes the habit together with its completions in one transaction.
func (s *Store) DeleteHabit(id string) error {
	if err := s.checkLoaded(); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := s.builder().RunWith(tx).
		Delete("habit_completions").
		Where(squirrel.Eq{"habit_id": id}).
		Exec(); err != nil {
		return fmt.Errorf("failed to delete completions for habit %s: %w", id, err)
	}

	res, err := s.builder().RunWith(tx).Delete("habits").Where(squirrel.Eq{"id": id}).Exec()
	if err != nil {
		return err
	}
	if err := expectAffected(res, "habit "+id); err != nil {
		return err
	}

	return tx.Commit()
}

func scanHabit(row rowScanner) (models.Habit, error) {
	var h models.Habit
	var createdAt string
	if err := row.Scan(&h.ID, &h.Name, &h.Emoji, &h.Color, &createdAt); err != nil {
		return models.Habit{}, err
	}
	t, err := parseTimestamp(createdAt)
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse created_at for habit %s: %w", h.ID, err)
	}
	h.CreatedAt = t
	return h, nil
}

func (s *Store) GetCompletion(habitID, date string) (models.HabitCompletion, bool, error) {
	if err := s.checkLoaded(); err != nil {
		return models.HabitCompletion{}, false, err
	}

	var c models.HabitCompletion
	err := s.builder().
		Select("id", "habit_id", "date").
		From("habit_completions").
		Where(squirrel.Eq{"habit_id": habitID, "date": date}).
		QueryRow().
		Scan(&c.ID, &c.HabitID, &c.Date)
	if errors.Is(err, sql.ErrNoRows) {
		return models.HabitCompletion{}, false, nil
	}
	if err != nil {
		return models.HabitCompletion{}, false, err
	}
	return c, true, nil
}

// AddCompletion records a completion. Adding an existing (habit, date) pair
// returns the id of the stored record instead of creating a duplicate.
func (s *Store) AddCompletion(c models.HabitCompletion) (int64, error) {
	if err := s.checkLoaded(); err != nil {
		return 0, err
	}

	res, err := s.builder().
		Insert("habit_completions").
		Columns("habit_id", "date").
		Values(c.HabitID, c.Date).
		Suffix("ON CONFLICT(habit_id, date) DO NOTHING").
		Exec()
	if err != nil {
		return 0, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n == 0 {
		existing, found, err := s.GetCompletion(c.HabitID, c.Date)
		if err != nil {
			return 0, err
		}
		if !found {
			return 0, fmt.Errorf("completion for habit %s on %s was not stored", c.HabitID, c.Date)
		}
		return existing.ID, nil
	}
	return res.LastInsertId()
}

func (s *Store) DeleteCompletion(id int64) error {
	if err := s.checkLoaded(); err != nil {
		return err
	}

	res, err := s.builder().Delete("habit_completions").Where(squirrel.Eq{"id": id}).Exec()
	if err != nil {
		return err
	}
	return expectAffected(res, fmt.Sprintf("habit completion %d", id))
}

func (s *Store) GetCompletionsInRange(startDay, endDay string) ([]models.HabitCompletion, error) {
	if err := s.checkLoaded(); err != nil {
		return nil, err
	}
	return s.queryCompletions(squirrel.And{
		squirrel.GtOrEq{"date": startDay},
		squirrel.LtOrEq{"date": endDay},
	})
}

func (s *Store) GetCompletionsForHabit(habitID string, startDay, endDay string) ([]models.HabitCompletion, error) {
	if err := s.checkLoaded(); err != nil {
		return nil, err
	}
	return s.queryCompletions(squirrel.And{
		squirrel.Eq{"habit_id": habitID},
		squirrel.GtOrEq{"date": startDay},
		squirrel.LtOrEq{"date": endDay},
	})
}

func (s *Store) queryCompletions(where squirrel.Sqlizer) ([]models.HabitCompletion, error) {
	rows, err := s.builder().
		Select("id", "habit_id", "date").
		From("habit_completions").
		Where(where).
		OrderBy("date", "habit_id").
		Query()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	completions := []models.HabitCompletion{}
	for rows.Next() {
		var c models.HabitCompletion
		if err := rows.Scan(&c.ID, &c.HabitID, &c.Date); err != nil {
			return nil, err
		}
		completions = append(completions, c)
	}
	return completions, rows.Err()
}
