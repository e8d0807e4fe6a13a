package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/julianstephens/daycompass/internal/models"
)

var dayColumns = []string{"date", "energy", "tasks", "wins", "reflection", "intentions"}

func (s *Store) GetDay(date string) (models.DayEntry, bool, error) {
	if err := s.checkLoaded(); err != nil {
		return models.DayEntry{}, false, err
	}

	row := s.builder().Select(dayColumns...).From("days").
		Where(squirrel.Eq{"date": date}).
		QueryRow()

	day, err := scanDay(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DayEntry{}, false, nil
	}
	if err != nil {
		return models.DayEntry{}, false, err
	}
	return day, true, nil
}

func (s *Store) SaveDay(day models.DayEntry) error {
	if err := s.checkLoaded(); err != nil {
		return err
	}

	tasks := day.Tasks
	if tasks == nil {
		tasks = []models.Task{}
	}
	intentions := day.Intentions
	if intentions == nil {
		intentions = []models.Intention{}
	}

	tasksJSON, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("failed to encode tasks for %s: %w", day.Date, err)
	}
	intentionsJSON, err := json.Marshal(intentions)
	if err != nil {
		return fmt.Errorf("failed to encode intentions for %s: %w", day.Date, err)
	}

	_, err = s.builder().
		Insert("days").
		Columns(append(dayColumns, "updated_at")...).
		Values(day.Date, day.Energy, string(tasksJSON), day.Wins, day.Reflection, string(intentionsJSON), formatTimestamp(time.Now())).
		Suffix(`ON CONFLICT(date) DO UPDATE SET
			energy = excluded.energy,
			tasks = excluded.tasks,
			wins = excluded.wins,
			reflection = excluded.reflection,
			intentions = excluded.intentions,
			updated_at = excluded.updated_at`).
		Exec()
	return err
}

func (s *Store) GetDays(dates []string) ([]models.DayEntry, error) {
	if err := s.checkLoaded(); err != nil {
		return nil, err
	}
	if len(dates) == 0 {
		return []models.DayEntry{}, nil
	}

	return s.queryDays(squirrel.Eq{"date": dates})
}

func (s *Store) GetDaysInRange(startDay, endDay string) ([]models.DayEntry, error) {
	if err := s.checkLoaded(); err != nil {
		return nil, err
	}

	return s.queryDays(squirrel.And{
		squirrel.GtOrEq{"date": startDay},
		squirrel.LtOrEq{"date": endDay},
	})
}

func (s *Store) queryDays(where squirrel.Sqlizer) ([]models.DayEntry, error) {
	rows, err := s.builder().Select(dayColumns...).From("days").
		Where(where).
		OrderBy("date").
		Query()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	days := []models.DayEntry{}
	for rows.Next() {
		day, err := scanDay(rows)
		if err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	return days, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDay(row rowScanner) (models.DayEntry, error) {
	var day models.DayEntry
	var tasksJSON, intentionsJSON string

	if err := row.Scan(&day.Date, &day.Energy, &tasksJSON, &day.Wins, &day.Reflection, &intentionsJSON); err != nil {
		return models.DayEntry{}, err
	}

	if err := json.Unmarshal([]byte(tasksJSON), &day.Tasks); err != nil {
		return models.DayEntry{}, fmt.Errorf("failed to parse tasks for %s: %w", day.Date, err)
	}
	if err := json.Unmarshal([]byte(intentionsJSON), &day.Intentions); err != nil {
		return models.DayEntry{}, fmt.Errorf("failed to parse intentions for %s: %w", day.Date, err)
	}
	if day.Tasks == nil {
		day.Tasks = []models.Task{}
	}
	if day.Intentions == nil {
		day.Intentions = []models.Intention{}
	}
	return day, nil
}
