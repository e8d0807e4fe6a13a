package sqlite

import (
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/julianstephens/daycompass/internal/models"
)

func (s *Store) AddMood(entry models.MoodEntry) (int64, error) {
	if err := s.checkLoaded(); err != nil {
		return 0, err
	}

	res, err := s.builder().
		Insert("moods").
		Columns("date", "timestamp", "level", "note").
		Values(entry.Date, formatTimestamp(entry.Timestamp), entry.Level, entry.Note).
		Exec()
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *Store) DeleteMood(id int64) error {
	if err := s.checkLoaded(); err != nil {
		return err
	}

	res, err := s.builder().Delete("moods").Where(squirrel.Eq{"id": id}).Exec()
	if err != nil {
		return err
	}
	return expectAffected(res, fmt.Sprintf("mood %d", id))
}

func (s *Store) GetMoodsForDay(date string) ([]models.MoodEntry, error) {
	if err := s.checkLoaded(); err != nil {
		return nil, err
	}
	return s.queryMoods(squirrel.Eq{"date": date})
}

func (s *Store) GetMoodsInRange(startDay, endDay string) ([]models.MoodEntry, error) {
	if err := s.checkLoaded(); err != nil {
		return nil, err
	}
	return s.queryMoods(squirrel.And{
		squirrel.GtOrEq{"date": startDay},
		squirrel.LtOrEq{"date": endDay},
	})
}

func (s *Store) queryMoods(where squirrel.Sqlizer) ([]models.MoodEntry, error) {
	rows, err := s.builder().
		Select("id", "date", "timestamp", "level", "note").
		From("moods").
		Where(where).
		OrderBy("timestamp", "id").
		Query()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	moods := []models.MoodEntry{}
	for rows.Next() {
		var m models.MoodEntry
		var ts string
		if err := rows.Scan(&m.ID, &m.Date, &ts, &m.Level, &m.Note); err != nil {
			return nil, err
		}
		m.Timestamp, err = parseTimestamp(ts)
		if err != nil {
			return nil, fmt.Errorf("failed to parse timestamp for mood %d: %w", m.ID, err)
		}
		moods = append(moods, m)
	}
	return moods, rows.Err()
}
