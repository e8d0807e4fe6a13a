package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/daycompass/internal/analytics"
	"github.com/julianstephens/daycompass/internal/backup"
	"github.com/julianstephens/daycompass/internal/config"
	"github.com/julianstephens/daycompass/internal/constants"
	apperrors "github.com/julianstephens/daycompass/internal/errors"
	"github.com/julianstephens/daycompass/internal/habits"
	"github.com/julianstephens/daycompass/internal/logger"
	"github.com/julianstephens/daycompass/internal/models"
	"github.com/julianstephens/daycompass/internal/planner"
	"github.com/julianstephens/daycompass/internal/storage"
	"github.com/julianstephens/daycompass/internal/utils"
	"github.com/julianstephens/daycompass/internal/validation"
)

type Context struct {
	Store  storage.Provider
	Config *config.Config

	planner *planner.Planner
	tracker *habits.Tracker
	now     func() time.Time
}

// Conf returns the runtime configuration, falling back to defaults.
func (c *Context) Conf() *config.Config {
	if c.Config == nil {
		c.Config = config.Default()
	}
	return c.Config
}

// Planner returns the day/mood/journal/goal services, created on first use.
func (c *Context) Planner() *planner.Planner {
	if c.planner == nil {
		c.planner = planner.New(c.Store, c.Conf())
	}
	return c.planner
}

// Habits returns the habit tracker, created on first use.
func (c *Context) Habits() *habits.Tracker {
	if c.tracker == nil {
		c.tracker = habits.NewTracker(c.Store)
	}
	return c.tracker
}

// Flush writes every pending day and journal edit.
func (c *Context) Flush() error {
	if c.planner == nil {
		return nil
	}
	return c.planner.Flush()
}

// Close flushes pending edits and stops the autosave queues. The store is
// left open.
func (c *Context) Close() error {
	if c.planner == nil {
		return nil
	}
	err := c.planner.Close()
	c.planner = nil
	return err
}

// Location resolves the configured timezone. "Local" in config.yaml defers to
// the timezone stored in settings.
func (c *Context) Location() *time.Location {
	tz := c.Conf().Timezone
	if tz == "" || tz == constants.DefaultTimezone {
		if settings, err := c.Store.GetSettings(); err == nil {
			tz = settings.Timezone
		}
	}
	loc, err := utils.LoadLocation(tz)
	if err != nil {
		logger.Warn("Invalid timezone, using local time", "timezone", tz, "error", err)
		return time.Local
	}
	return loc
}

// Now is the current time in Location.
func (c *Context) Now() time.Time {
	now := time.Now
	if c.now != nil {
		now = c.now
	}
	return now().In(c.Location())
}

// Today returns today's date key.
func (c *Context) Today() string {
	return utils.DateKey(c.Now())
}

// ResolveDate accepts "", "today", "yesterday", "tomorrow" or a YYYY-MM-DD date.
func (c *Context) ResolveDate(date string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(date)) {
	case "", "today":
		return c.Today(), nil
	case "yesterday":
		return utils.DateKey(utils.AddDays(c.Now(), -1)), nil
	case "tomorrow":
		return utils.DateKey(utils.AddDays(c.Now(), 1)), nil
	}
	if err := validation.ValidateDate(date); err != nil {
		return "", err
	}
	return date, nil
}

// ResolveAnchor returns a time on the resolved date, for week lookups.
func (c *Context) ResolveAnchor(date string) (time.Time, error) {
	key, err := c.ResolveDate(date)
	if err != nil {
		return time.Time{}, err
	}
	return utils.ParseDateInLocation(key, c.Location())
}

// StatsOptions applies the analytics settings from config.
func (c *Context) StatsOptions() []analytics.StatsOption {
	return []analytics.StatsOption{analytics.WithTopObstacles(c.Conf().Analytics.TopObstacles)}
}

// BackupManager returns a backup manager for SQLite stores. JSON stores
// are plain files and have no managed backups.
func (c *Context) BackupManager() (*backup.Manager, error) {
	if _, ok := c.Store.(*storage.SQLiteStore); !ok {
		return nil, fmt.Errorf("backups are only supported for SQLite storage")
	}
	return backup.NewManager(c.Store.GetConfigPath()), nil
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr, err := c.BackupManager()
	if err != nil {
		logger.Debug("Skipping automatic backup", "reason", err)
		return
	}
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ResolveTask finds a task by 1-based position in the day or by id prefix.
func ResolveTask(day models.DayEntry, ref string) (models.Task, error) {
	ref = strings.TrimSpace(ref)
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(day.Tasks) {
			return models.Task{}, apperrors.NotFoundf("task #%d on %s", n, day.Date)
		}
		return day.Tasks[n-1], nil
	}
	if ref == "" {
		return models.Task{}, apperrors.Validationf("task reference is required")
	}

	var match *models.Task
	for i := range day.Tasks {
		if strings.HasPrefix(day.Tasks[i].ID, ref) {
			if match != nil {
				return models.Task{}, apperrors.Validationf("task id prefix %q is ambiguous", ref)
			}
			match = &day.Tasks[i]
		}
	}
	if match == nil {
		return models.Task{}, apperrors.NotFoundf("task %q on %s", ref, day.Date)
	}
	return *match, nil
}

// ResolveHabit finds a habit by name, ignoring case, or by id prefix.
func ResolveHabit(list []models.Habit, ref string) (models.Habit, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return models.Habit{}, apperrors.Validationf("habit name is required")
	}
	for _, h := range list {
		if strings.EqualFold(h.Name, ref) {
			return h, nil
		}
	}
	var matches []models.Habit
	for _, h := range list {
		if strings.HasPrefix(h.ID, ref) {
			matches = append(matches, h)
		}
	}
	switch len(matches) {
	case 0:
		return models.Habit{}, apperrors.NotFoundf("habit %q", ref)
	case 1:
		return matches[0], nil
	default:
		return models.Habit{}, apperrors.Validationf("habit id prefix %q is ambiguous", ref)
	}
}

// ParsePriority accepts a quadrant name, its label ("do first", "schedule",
// "minimize", "eliminate") or its number 1-4.
func ParsePriority(s string) (models.Priority, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	for i, p := range models.Priorities {
		if norm == string(p) || norm == strings.ToLower(p.Label()) || norm == strconv.Itoa(i+1) {
			return p, nil
		}
	}
	if norm == "do" {
		return models.PriorityUrgentImportant, nil
	}
	return "", apperrors.Validationf("unknown priority %q", s)
}

// ParseStatus accepts a status value or its label, ignoring case, spaces and dashes.
func ParseStatus(s string) (models.TaskStatus, error) {
	norm := strings.NewReplacer(" ", "_", "-", "_").Replace(strings.ToLower(strings.TrimSpace(s)))
	for _, st := range models.Statuses {
		if norm == string(st) {
			return st, nil
		}
	}
	return "", apperrors.Validationf("unknown status %q", s)
}

// ShortID trims an id for display.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// FormatMinutes renders 95 as "1h35m" and 40 as "40m".
func FormatMinutes(m int) string {
	if m < 60 {
		return fmt.Sprintf("%dm", m)
	}
	if m%60 == 0 {
		return fmt.Sprintf("%dh", m/60)
	}
	return fmt.Sprintf("%dh%02dm", m/60, m%60)
}
