package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/daycompass/internal/cli"
	"github.com/julianstephens/daycompass/internal/cli/backups"
	"github.com/julianstephens/daycompass/internal/cli/days"
	"github.com/julianstephens/daycompass/internal/cli/goals"
	"github.com/julianstephens/daycompass/internal/cli/habits"
	"github.com/julianstephens/daycompass/internal/cli/journals"
	"github.com/julianstephens/daycompass/internal/cli/moods"
	"github.com/julianstephens/daycompass/internal/cli/settings"
	"github.com/julianstephens/daycompass/internal/cli/stats"
	"github.com/julianstephens/daycompass/internal/cli/system"
	"github.com/julianstephens/daycompass/internal/config"
	"github.com/julianstephens/daycompass/internal/constants"
	apperrors "github.com/julianstephens/daycompass/internal/errors"
	"github.com/julianstephens/daycompass/internal/logger"
	"github.com/julianstephens/daycompass/internal/storage"
)

type CLI struct {
	Version      kong.VersionFlag
	Config       string `help:"Database path (.db for SQLite, .json for a JSON file)." type:"path" default:"${db_path}"`
	SettingsFile string `help:"Runtime config file path." name:"settings-file" type:"path" default:"${settings_path}"`
	Debug        bool   `help:"Enable debug logging."`

	Init     system.InitCmd    `cmd:"" help:"Initialize daycompass storage."`
	Migrate  system.MigrateCmd `cmd:"" help:"Apply pending database migrations."`
	Doctor   system.DoctorCmd  `cmd:"" help:"Check the database and data for problems."`
	Tui      system.TuiCmd     `cmd:"" help:"Launch the interactive TUI." default:"1"`
	DebugCmd system.DebugCmd   `cmd:"" name:"debug" help:"Inspect stored records."`

	Day     days.DayCmd         `cmd:"" help:"Plan and review a day."`
	Task    days.TaskCmd        `cmd:"" help:"Manage a day's tasks."`
	Mood    moods.MoodCmd       `cmd:"" help:"Log and review moods."`
	Journal journals.JournalCmd `cmd:"" help:"Write and read journal entries."`
	Habit   habits.HabitCmd     `cmd:"" help:"Track habits."`
	Goal    goals.GoalCmd       `cmd:"" help:"Manage weekly goals."`
	Stats   stats.StatsCmd      `cmd:"" help:"Weekly statistics."`

	Settings settings.SettingsCmd `cmd:"" help:"View and change settings."`

	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
}

func newParser(app *CLI, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name(constants.AppName),
		kong.Description("Daily planner with mood, journal, habit and weekly analytics"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":       constants.Version,
			"db_path":       constants.DefaultConfigPath,
			"settings_path": constants.DefaultSettingsPath,
			"goal_target":   strconv.Itoa(constants.DefaultGoalTarget),
			"habit_emoji":   constants.DefaultHabitEmoji,
			"habit_color":   constants.DefaultHabitColor,
			"heatmap_days":  strconv.Itoa(constants.DefaultHeatmapDays),
		},
	}, options...)
	return kong.New(app, options...)
}

// execute opens the store named by app and runs the selected command.
func execute(ctx *kong.Context, app *CLI) error {
	cfg, err := config.Load(app.SettingsFile)
	if err != nil {
		return err
	}

	if err := logger.Init(logger.Config{
		Debug:      app.Debug || cfg.Log.Debug,
		ConfigDir:  filepath.Dir(app.Config),
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	// Determine storage type based on extension
	var store storage.Provider
	if strings.HasSuffix(app.Config, ".json") {
		store = storage.NewJSONStore(app.Config)
	} else {
		store = storage.NewSQLiteStore(app.Config)
	}

	if ctx.Command() != "init" {
		if err := store.Load(); err != nil {
			return fmt.Errorf("%w (run 'daycompass init' to create the database)", err)
		}
	}
	defer store.Close()

	appCtx := &cli.Context{
		Store:  store,
		Config: cfg,
	}

	err = ctx.Run(appCtx)
	if cerr := appCtx.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

func main() {
	var app CLI
	parser, err := newParser(&app)
	if err != nil {
		panic(err)
	}
	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	apperrors.Fatal(execute(ctx, &app))
}
