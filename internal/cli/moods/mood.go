package moods

import (
	"fmt"
	"strings"

	"github.com/julianstephens/daycompass/internal/cli"
	"github.com/julianstephens/daycompass/internal/constants"
	"github.com/julianstephens/daycompass/internal/models"
)

type MoodCmd struct {
	Log    MoodLogCmd    `cmd:"" help:"Log a mood check-in (1-5)."`
	List   MoodListCmd   `cmd:"" help:"List a day's mood check-ins."`
	Delete MoodDeleteCmd `cmd:"" help:"Delete a mood check-in by id."`
	Week   MoodWeekCmd   `cmd:"" help:"Show daily mood averages for the last 7 days."`
}

type MoodLogCmd struct {
	Level int    `arg:"" help:"Mood level: 1 awful, 2 low, 3 okay, 4 good, 5 great."`
	Note  string `arg:"" optional:"" help:"Optional note."`
	Date  string `help:"Date (YYYY-MM-DD). Defaults to today."`
}

func (c *MoodLogCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	entry, err := ctx.Planner().Moods.LogMood(date, c.Level, c.Note)
	if err != nil {
		return err
	}
	fmt.Printf("Logged mood %d (%s) for %s [#%d]\n", entry.Level, models.MoodLabel(entry.Level), date, entry.ID)
	return nil
}

type MoodListCmd struct {
	Date string `arg:"" optional:"" help:"Date (YYYY-MM-DD). Defaults to today."`
}

func (c *MoodListCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	moods := ctx.Planner().Moods.MoodsForDay(date)
	if len(moods) == 0 {
		fmt.Printf("No moods logged for %s.\n", date)
		return nil
	}

	fmt.Printf("Moods for %s:\n", date)
	for _, m := range moods {
		line := fmt.Sprintf("  #%-4d %s  %d %-5s", m.ID, m.Timestamp.In(ctx.Location()).Format(constants.TimeFormat), m.Level, models.MoodLabel(m.Level))
		if m.Note != "" {
			line += "  " + m.Note
		}
		fmt.Println(line)
	}
	return nil
}

type MoodDeleteCmd struct {
	ID int64 `arg:"" help:"Mood id as shown by 'mood list'."`
}

func (c *MoodDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Planner().Moods.DeleteMood(c.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted mood #%d\n", c.ID)
	return nil
}

type MoodWeekCmd struct {
	Date string `arg:"" optional:"" help:"Last day of the 7-day window. Defaults to today."`
}

func (c *MoodWeekCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	averages, err := ctx.Planner().Moods.WeekMoodAverages(date)
	if err != nil {
		return err
	}
	if len(averages) == 0 {
		fmt.Printf("No moods logged in the 7 days ending %s.\n", date)
		return nil
	}

	fmt.Printf("Mood averages, 7 days ending %s:\n", date)
	for _, d := range averages {
		bar := strings.Repeat("█", int(d.Average*2+0.5))
		fmt.Printf("  %s  %-10s %.1f  (%d)\n", d.Date, bar, d.Average, d.Count)
	}
	return nil
}
