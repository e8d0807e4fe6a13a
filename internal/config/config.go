// Package config loads daycompass runtime configuration.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/daycompass/internal/constants"
)

// WeekStartMonday is the only supported week start.
const WeekStartMonday = "monday"

// Config holds runtime tuning read from config.yaml and DAYCOMPASS_* variables.
type Config struct {
	Timezone  string          `koanf:"timezone"`
	Week      WeekConfig      `koanf:"week"`
	Autosave  AutosaveConfig  `koanf:"autosave"`
	Habits    HabitsConfig    `koanf:"habits"`
	Analytics AnalyticsConfig `koanf:"analytics"`
	Log       LogConfig       `koanf:"log"`
}

type WeekConfig struct {
	Start string `koanf:"start"`
}

// AutosaveConfig sets the debounce delay of each record kind.
type AutosaveConfig struct {
	DayDelay     time.Duration `koanf:"day_delay"`
	JournalDelay time.Duration `koanf:"journal_delay"`
}

type HabitsConfig struct {
	HeatmapDays      int `koanf:"heatmap_days"`
	StreakWindowDays int `koanf:"streak_window_days"`
}

type AnalyticsConfig struct {
	TopObstacles int `koanf:"top_obstacles"`
}

// LogConfig controls the log file. Zero rotation values fall back to the
// logger defaults.
type LogConfig struct {
	Debug      bool `koanf:"debug"`
	MaxSizeMB  int  `koanf:"max_size_mb"`
	MaxBackups int  `koanf:"max_backups"`
	MaxAgeDays int  `koanf:"max_age_days"`
}

// Default returns the configuration used when no file or environment overrides exist.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Validate checks that all values are usable.
func (c *Config) Validate() error {
	if !strings.EqualFold(c.Week.Start, WeekStartMonday) {
		return fmt.Errorf("week.start %q is not supported (only %q)", c.Week.Start, WeekStartMonday)
	}
	if c.Autosave.DayDelay < 0 || c.Autosave.JournalDelay < 0 {
		return fmt.Errorf("autosave delays cannot be negative")
	}
	if c.Habits.HeatmapDays <= 0 {
		return fmt.Errorf("habits.heatmap_days must be positive, got %d", c.Habits.HeatmapDays)
	}
	if c.Habits.StreakWindowDays <= 0 {
		return fmt.Errorf("habits.streak_window_days must be positive, got %d", c.Habits.StreakWindowDays)
	}
	if c.Analytics.TopObstacles <= 0 {
		return fmt.Errorf("analytics.top_obstacles must be positive, got %d", c.Analytics.TopObstacles)
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 || c.Log.MaxAgeDays < 0 {
		return fmt.Errorf("log rotation settings cannot be negative")
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Timezone == "" {
		cfg.Timezone = constants.DefaultTimezone
	}
	if cfg.Week.Start == "" {
		cfg.Week.Start = WeekStartMonday
	}
	if cfg.Autosave.DayDelay == 0 {
		cfg.Autosave.DayDelay = constants.DefaultDaySaveDelay
	}
	if cfg.Autosave.JournalDelay == 0 {
		cfg.Autosave.JournalDelay = constants.DefaultJournalSaveDelay
	}
	if cfg.Habits.HeatmapDays == 0 {
		cfg.Habits.HeatmapDays = constants.DefaultHeatmapDays
	}
	if cfg.Habits.StreakWindowDays == 0 {
		cfg.Habits.StreakWindowDays = constants.DefaultStreakLookback
	}
	if cfg.Analytics.TopObstacles == 0 {
		cfg.Analytics.TopObstacles = constants.TopObstacles
	}
}
