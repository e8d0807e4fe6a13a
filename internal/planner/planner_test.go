package planner

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/daycompass/internal/autosave"
	"github.com/julianstephens/daycompass/internal/config"
	apperrors "github.com/julianstephens/daycompass/internal/errors"
	"github.com/julianstephens/daycompass/internal/models"
	"github.com/julianstephens/daycompass/internal/storage"
)

func setupTestStore(t *testing.T) storage.Provider {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "planner.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize test store: %v", err)
	}
	return store
}

// setupTestPlanner uses hour-long delays so writes only happen on Flush.
func setupTestPlanner(t *testing.T) (*Planner, storage.Provider) {
	t.Helper()
	store := setupTestStore(t)
	cfg := config.Default()
	cfg.Autosave.DayDelay = time.Hour
	cfg.Autosave.JournalDelay = time.Hour
	p := New(store, cfg)
	t.Cleanup(func() { p.Close() })
	return p, store
}

func TestPlanner_CloseFlushesAndRejectsEdits(t *testing.T) {
	p, store := setupTestPlanner(t)

	if _, err := p.Days.SetEnergy("2025-03-10", 4); err != nil {
		t.Fatalf("SetEnergy failed: %v", err)
	}
	if err := p.Journal.Save("2025-03-10", "quiet day", ""); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	day, found, err := store.GetDay("2025-03-10")
	if err != nil || !found {
		t.Fatalf("expected day to be persisted on close, found=%v err=%v", found, err)
	}
	if day.Energy != 4 {
		t.Errorf("expected energy 4, got %d", day.Energy)
	}
	if _, found, _ := store.GetJournal("2025-03-10"); !found {
		t.Error("expected journal to be persisted on close")
	}

	if _, err := p.Days.SetEnergy("2025-03-10", 2); !errors.Is(err, autosave.ErrClosed) {
		t.Errorf("expected ErrClosed after close, got %v", err)
	}
}

type brokenStore struct {
	storage.Provider
}

func (brokenStore) GetDay(string) (models.DayEntry, bool, error) {
	return models.DayEntry{}, false, errors.New("database is locked")
}

func (brokenStore) GetMoodsForDay(string) ([]models.MoodEntry, error) {
	return nil, errors.New("database is locked")
}

func (brokenStore) GetSettings() (models.Settings, error) {
	return models.Settings{}, errors.New("database is locked")
}

func (brokenStore) GetJournal(string) (models.JournalEntry, bool, error) {
	return models.JournalEntry{}, false, errors.New("database is locked")
}

func TestPlanner_ReadFailuresFallBackToDefaults(t *testing.T) {
	p := New(brokenStore{}, nil)
	defer p.Close()

	day, err := p.Days.LoadDay("2025-03-10")
	if err != nil {
		t.Fatalf("LoadDay failed: %v", err)
	}
	if len(day.Intentions) != 3 || len(day.Tasks) != 0 || day.Energy != 0 {
		t.Errorf("expected a fresh day, got %+v", day)
	}

	if moods := p.Moods.MoodsForDay("2025-03-10"); len(moods) != 0 {
		t.Errorf("expected no moods, got %d", len(moods))
	}
	if cats := p.Categories.List(); len(cats) != 6 {
		t.Errorf("expected default categories, got %v", cats)
	}
	if _, found := p.Journal.Load("2025-03-10"); found {
		t.Error("expected no journal entry")
	}
}

func TestPlanner_InvalidDates(t *testing.T) {
	p, _ := setupTestPlanner(t)

	if _, err := p.Days.LoadDay("2025/03/10"); !apperrors.IsValidation(err) {
		t.Errorf("LoadDay: expected validation error, got %v", err)
	}
	if _, err := p.Moods.LogMood("tomorrow", 3, ""); !apperrors.IsValidation(err) {
		t.Errorf("LogMood: expected validation error, got %v", err)
	}
	if err := p.Journal.Save("", "text", ""); !apperrors.IsValidation(err) {
		t.Errorf("Journal.Save: expected validation error, got %v", err)
	}
	if _, err := p.Goals.AddGoal("03-10-2025", "Run", 3, ""); !apperrors.IsValidation(err) {
		t.Errorf("AddGoal: expected validation error, got %v", err)
	}
}
