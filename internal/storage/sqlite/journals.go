package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/julianstephens/daycompass/internal/models"
)

func (s *Store) GetJournal(date string) (models.JournalEntry, bool, error) {
	if err := s.checkLoaded(); err != nil {
		return models.JournalEntry{}, false, err
	}

	var entry models.JournalEntry
	var updatedAt string
	err := s.builder().
		Select("date", "content", "prompt_used", "updated_at").
		From("journals").
		Where(squirrel.Eq{"date": date}).
		QueryRow().
		Scan(&entry.Date, &entry.Content, &entry.PromptUsed, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.JournalEntry{}, false, nil
	}
	if err != nil {
		return models.JournalEntry{}, false, err
	}

	entry.UpdatedAt, err = parseTimestamp(updatedAt)
	if err != nil {
		return models.JournalEntry{}, false, fmt.Errorf("failed to parse updated_at for journal %s: %w", date, err)
	}
	return entry, true, nil
}

func (s *Store) SaveJournal(entry models.JournalEntry) error {
	if err := s.checkLoaded(); err != nil {
		return err
	}

	_, err := s.builder().
		Insert("journals").
		Columns("date", "content", "prompt_used", "updated_at").
		Values(entry.Date, entry.Content, entry.PromptUsed, formatTimestamp(entry.UpdatedAt)).
		Suffix(`ON CONFLICT(date) DO UPDATE SET
			content = excluded.content,
			prompt_used = excluded.prompt_used,
			updated_at = excluded.updated_at`).
		Exec()
	return err
}

// DeleteJournal removes the entry for date. Deleting a missing entry is not an error.
func (s *Store) DeleteJournal(date string) error {
	if err := s.checkLoaded(); err != nil {
		return err
	}

	_, err := s.builder().Delete("journals").Where(squirrel.Eq{"date": date}).Exec()
	return err
}
