package constants

import "time"

const (
	AppName             = "daycompass"
	DefaultConfigPath   = "~/.config/daycompass/daycompass.db"
	DefaultSettingsPath = "~/.config/daycompass/config.yaml"
	Version             = "v0.1.0"

	// EnvPrefix is the prefix for environment variable overrides of config.yaml keys
	EnvPrefix = "DAYCOMPASS_"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "daycompass-"
	BackupFileSuffix = ".db"

	// Autosave delays
	DefaultDaySaveDelay     = 500 * time.Millisecond
	DefaultJournalSaveDelay = 600 * time.Millisecond

	// Energy and mood scales
	EnergyUnset = 0
	EnergyMax   = 5
	MoodMin     = 1
	MoodMax     = 5

	// DefaultIntentionSlots is the number of blank intentions on a fresh day
	DefaultIntentionSlots = 3

	// Habit windows
	DefaultHeatmapDays    = 14
	ExtendedHeatmapDays   = 84
	DefaultStreakLookback = 84
	DefaultHabitEmoji     = "✓"
	DefaultHabitColor     = "#7D56F4"

	// Analytics
	DaysPerWeek        = 7
	TopObstacles       = 10
	TrendFlatThreshold = 0.5

	// DefaultGoalTarget is the target suggested when adding a weekly goal
	DefaultGoalTarget = 5
)
