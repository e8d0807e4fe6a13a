package planner

import (
	"fmt"
	"sync"
	"time"

	"github.com/julianstephens/daycompass/internal/autosave"
	"github.com/julianstephens/daycompass/internal/logger"
	"github.com/julianstephens/daycompass/internal/models"
	"github.com/julianstephens/daycompass/internal/validation"
)

type JournalStore interface {
	GetJournal(date string) (models.JournalEntry, bool, error)
	SaveJournal(models.JournalEntry) error
	DeleteJournal(date string) error
}

// JournalService keeps unsaved drafts in memory and upserts them once typing
// goes quiet.
type JournalService struct {
	store JournalStore
	queue *autosave.Queue
	now   clock

	mu     sync.Mutex
	drafts map[string]models.JournalEntry
}

func NewJournalService(store JournalStore, queue *autosave.Queue) *JournalService {
	return &JournalService{
		store:  store,
		queue:  queue,
		now:    time.Now,
		drafts: make(map[string]models.JournalEntry),
	}
}

// Load returns the entry for date, preferring an unsaved draft. found is
// false when there is neither a draft nor a stored entry, or the read fails.
func (s *JournalService) Load(date string) (entry models.JournalEntry, found bool) {
	s.mu.Lock()
	draft, ok := s.drafts[date]
	s.mu.Unlock()
	if ok {
		return draft, true
	}

	entry, found, err := s.store.GetJournal(date)
	if err != nil {
		logger.Warn("Failed to load journal", "date", date, "error", err)
		return models.JournalEntry{Date: date}, false
	}
	if !found {
		return models.JournalEntry{Date: date}, false
	}
	return entry, true
}

// Save replaces the draft for date and schedules its upsert.
func (s *JournalService) Save(date, content, promptUsed string) error {
	if err := validation.ValidateDate(date); err != nil {
		return err
	}

	s.mu.Lock()
	s.drafts[date] = models.JournalEntry{
		Date:       date,
		Content:    content,
		PromptUsed: promptUsed,
		UpdatedAt:  s.now(),
	}
	s.mu.Unlock()

	if err := s.queue.Schedule(date, func() error { return s.write(date) }); err != nil {
		return fmt.Errorf("failed to schedule journal save: %w", err)
	}
	return nil
}

func (s *JournalService) write(date string) error {
	s.mu.Lock()
	entry, ok := s.drafts[date]
	s.mu.Unlock()
	// cleared while the write was pending
	if !ok {
		return nil
	}

	if err := s.store.SaveJournal(entry); err != nil {
		return fmt.Errorf("failed to save journal %s: %w", date, err)
	}

	s.mu.Lock()
	if cur, ok := s.drafts[date]; ok && cur.UpdatedAt.Equal(entry.UpdatedAt) {
		delete(s.drafts, date)
	}
	s.mu.Unlock()
	return nil
}

// Clear drops any draft and deletes the stored entry.
func (s *JournalService) Clear(date string) error {
	if err := validation.ValidateDate(date); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.drafts, date)
	s.mu.Unlock()

	// runs after a save of date that is already under way, never before it
	err := s.queue.Do(date, func() error { return s.store.DeleteJournal(date) })
	if err != nil {
		logger.Error("Failed to clear journal", "date", date, "error", err)
		return fmt.Errorf("failed to clear journal %s: %w", date, err)
	}
	return nil
}

// Flush writes every pending draft now.
func (s *JournalService) Flush() error {
	return s.queue.Flush()
}
