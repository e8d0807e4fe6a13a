// Package planner holds the day, mood, journal, goal and category services
// that sit between the store and the CLI/TUI.
package planner

import (
	"errors"
	"time"

	"github.com/julianstephens/daycompass/internal/autosave"
	"github.com/julianstephens/daycompass/internal/config"
	"github.com/julianstephens/daycompass/internal/logger"
	"github.com/julianstephens/daycompass/internal/storage"
)

// Planner wires every service to one store. Day and journal edits are
// written back through their own autosave queues.
type Planner struct {
	Days       *DayService
	Moods      *MoodService
	Journal    *JournalService
	Goals      *GoalService
	Categories *CategoryService

	dayQueue     *autosave.Queue
	journalQueue *autosave.Queue
}

func New(store storage.Provider, cfg *config.Config) *Planner {
	if cfg == nil {
		cfg = config.Default()
	}
	dayQueue := autosave.New(cfg.Autosave.DayDelay)
	journalQueue := autosave.New(cfg.Autosave.JournalDelay)

	return &Planner{
		Days:         NewDayService(store, dayQueue),
		Moods:        NewMoodService(store),
		Journal:      NewJournalService(store, journalQueue),
		Goals:        NewGoalService(store),
		Categories:   NewCategoryService(store),
		dayQueue:     dayQueue,
		journalQueue: journalQueue,
	}
}

// Flush writes every pending edit now.
func (p *Planner) Flush() error {
	if n := p.dayQueue.Pending() + p.journalQueue.Pending(); n > 0 {
		logger.Debug("Flushing pending edits", "count", n)
	}
	return errors.Join(p.dayQueue.Flush(), p.journalQueue.Flush())
}

// Close flushes pending edits and stops accepting new ones.
func (p *Planner) Close() error {
	return errors.Join(p.dayQueue.Close(), p.journalQueue.Close())
}

// clock is swapped in tests.
type clock func() time.Time
