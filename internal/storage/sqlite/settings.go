package sqlite

import (
	"fmt"

	"github.com/julianstephens/daycompass/internal/models"
)

func (s *Store) GetSettings() (models.Settings, error) {
	if err := s.checkLoaded(); err != nil {
		return models.Settings{}, err
	}

	rows, err := s.builder().Select("key", "value").From("settings").Query()
	if err != nil {
		return models.Settings{}, err
	}
	defer rows.Close()

	data := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Settings{}, err
		}
		data[key] = value
	}
	if err := rows.Err(); err != nil {
		return models.Settings{}, err
	}

	if len(data) == 0 {
		return models.Settings{}, fmt.Errorf("settings not found")
	}

	return models.MapToSettings(data)
}

func (s *Store) SaveSettings(settings models.Settings) error {
	if err := s.checkLoaded(); err != nil {
		return err
	}

	data, err := models.SettingsToMap(settings)
	if err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for key, value := range data {
		_, err := s.builder().RunWith(tx).
			Insert("settings").
			Columns("key", "value").
			Values(key, value).
			Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value").
			Exec()
		if err != nil {
			return fmt.Errorf("failed to save setting %s: %w", key, err)
		}
	}

	return tx.Commit()
}
