package system

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/daycompass/internal/analytics"
	"github.com/julianstephens/daycompass/internal/cli"
	"github.com/julianstephens/daycompass/internal/logger"
	"github.com/julianstephens/daycompass/internal/models"
)

type DebugCmd struct {
	DBPath       DebugDBPathCmd       `cmd:"" name:"db-path" help:"Show storage path."`
	LogPath      DebugLogPathCmd      `cmd:"" name:"log-path" help:"Show log file path."`
	DumpDay      DebugDumpDayCmd      `cmd:"" help:"Dump a day record as JSON."`
	DumpWeek     DebugDumpWeekCmd     `cmd:"" help:"Dump the seven day records of a week as JSON."`
	DumpHabits   DebugDumpHabitsCmd   `cmd:"" help:"Dump habits as JSON."`
	DumpSettings DebugDumpSettingsCmd `cmd:"" help:"Dump settings as JSON."`
}

func printJSON(v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(jsonBytes))
	return nil
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	return printJSON(map[string]string{"path": ctx.Store.GetConfigPath()})
}

type DebugLogPathCmd struct{}

func (cmd *DebugLogPathCmd) Run(ctx *cli.Context) error {
	return printJSON(map[string]string{"path": logger.Path()})
}

type DebugDumpDayCmd struct {
	Date string `arg:"" optional:"" help:"Date of the day to dump (YYYY-MM-DD or 'today')."`
}

func (cmd *DebugDumpDayCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(cmd.Date)
	if err != nil {
		return err
	}
	day, found, err := ctx.Store.GetDay(date)
	if err != nil {
		return fmt.Errorf("failed to get day: %w", err)
	}
	if !found {
		return fmt.Errorf("no record stored for date: %s", date)
	}
	return printJSON(day)
}

type DebugDumpWeekCmd struct {
	Date string `arg:"" optional:"" help:"Any date in the week (YYYY-MM-DD or 'today')."`
}

func (cmd *DebugDumpWeekCmd) Run(ctx *cli.Context) error {
	anchor, err := ctx.ResolveAnchor(cmd.Date)
	if err != nil {
		return err
	}
	return printJSON(analytics.LoadWeekDays(ctx.Store, anchor))
}

type DebugDumpHabitsCmd struct {
	Days int `help:"Include completions from this many days up to today." default:"${heatmap_days}"`
}

type habitDump struct {
	models.Habit
	Completed map[string]bool `json:"completed"`
}

func (cmd *DebugDumpHabitsCmd) Run(ctx *cli.Context) error {
	if cmd.Days <= 0 {
		return fmt.Errorf("--days must be positive")
	}
	tracker := ctx.Habits()
	if err := tracker.LoadWindow(ctx.Now(), cmd.Days); err != nil {
		return fmt.Errorf("failed to get habits: %w", err)
	}
	out := []habitDump{}
	for _, h := range tracker.Habits() {
		out = append(out, habitDump{Habit: h, Completed: tracker.HeatmapData(h.ID)})
	}
	return printJSON(out)
}

type DebugDumpSettingsCmd struct{}

func (cmd *DebugDumpSettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	return printJSON(settings)
}
