package habits

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/daycompass/internal/cli"
	"github.com/julianstephens/daycompass/internal/constants"
	tracker "github.com/julianstephens/daycompass/internal/habits"
	"github.com/julianstephens/daycompass/internal/models"
	"github.com/julianstephens/daycompass/internal/utils"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	List   HabitListCmd   `cmd:"" help:"List habits with today's status and streak." default:"1"`
	Toggle HabitToggleCmd `cmd:"" help:"Mark or unmark a habit for a day."`
	Streak HabitStreakCmd `cmd:"" help:"Show current and longest streak of a habit."`
	Log    HabitLogCmd    `cmd:"" help:"Show habit log (ASCII history)."`
	Remove HabitRemoveCmd `cmd:"" help:"Delete a habit and all of its completions."`
}

// loadWindow loads enough history to answer streak queries ending at date.
func loadWindow(ctx *cli.Context, date string, days int) (*tracker.Tracker, time.Time, error) {
	anchor, err := utils.ParseDateInLocation(date, ctx.Location())
	if err != nil {
		return nil, time.Time{}, err
	}
	t := ctx.Habits()
	window := ctx.Conf().Habits.StreakWindowDays
	if days > window {
		window = days
	}
	if err := t.LoadWindow(anchor, window); err != nil {
		return nil, time.Time{}, err
	}
	return t, anchor, nil
}

type HabitAddCmd struct {
	Name  string `arg:"" help:"Habit name."`
	Emoji string `help:"Emoji shown next to the name." default:"${habit_emoji}"`
	Color string `help:"Display color (hex or ANSI number)." default:"${habit_color}"`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.Habits().AddHabit(c.Name, c.Emoji, c.Color)
	if err != nil {
		return err
	}
	fmt.Printf("Added habit: %s %s\n", habit.Emoji, habit.Name)
	return nil
}

type HabitListCmd struct {
	Date string `help:"Date (YYYY-MM-DD). Defaults to today."`
}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	t, _, err := loadWindow(ctx, date, 0)
	if err != nil {
		return err
	}

	habits := t.Habits()
	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	fmt.Printf("Habits for %s:\n\n", date)
	recorded := 0
	for _, h := range habits {
		status := "[ ]"
		if t.IsCompleted(h.ID, date) {
			status = "[x]"
			recorded++
		}
		streak, err := t.Streak(h.ID, date)
		if err != nil {
			return err
		}
		fmt.Printf("%s %s %-24s 🔥 %d\n", status, h.Emoji, h.Name, streak)
	}
	fmt.Printf("\nRecorded: %d/%d\n", recorded, len(habits))
	return nil
}

type HabitToggleCmd struct {
	Name string `arg:"" help:"Habit name or id prefix."`
	Date string `help:"Date (YYYY-MM-DD). Defaults to today."`
}

func (c *HabitToggleCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	t, _, err := loadWindow(ctx, date, 0)
	if err != nil {
		return err
	}
	habit, err := cli.ResolveHabit(t.Habits(), c.Name)
	if err != nil {
		return err
	}

	done, err := t.Toggle(habit.ID, date)
	if err != nil {
		return err
	}
	if !done {
		fmt.Printf("Unmarked habit %q for %s\n", habit.Name, date)
		return nil
	}
	streak, err := t.Streak(habit.ID, date)
	if err != nil {
		return err
	}
	fmt.Printf("Marked habit %q for %s (streak: %d)\n", habit.Name, date, streak)
	return nil
}

type HabitStreakCmd struct {
	Name string `arg:"" help:"Habit name or id prefix."`
	Date string `help:"Date (YYYY-MM-DD). Defaults to today."`
}

func (c *HabitStreakCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	t, _, err := loadWindow(ctx, date, constants.ExtendedHeatmapDays)
	if err != nil {
		return err
	}
	habit, err := cli.ResolveHabit(t.Habits(), c.Name)
	if err != nil {
		return err
	}
	streak, err := t.Streak(habit.ID, date)
	if err != nil {
		return err
	}
	start, end := t.Window()
	fmt.Printf("%s %s\n", habit.Emoji, habit.Name)
	fmt.Printf("  Current streak: %d day(s)\n", streak)
	fmt.Printf("  Longest streak: %d day(s) (%s to %s)\n", t.LongestStreak(habit.ID), start, end)
	return nil
}

type HabitLogCmd struct {
	Days  int    `help:"Number of days to show." default:"14"`
	Habit string `help:"Show log for specific habit only."`
	Date  string `help:"Last day shown (YYYY-MM-DD). Defaults to today."`
}

func (c *HabitLogCmd) Run(ctx *cli.Context) error {
	if c.Days <= 0 {
		return fmt.Errorf("--days must be positive")
	}
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	t, _, err := loadWindow(ctx, date, c.Days)
	if err != nil {
		return err
	}

	habits := t.Habits()
	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}
	if c.Habit != "" {
		h, err := cli.ResolveHabit(habits, c.Habit)
		if err != nil {
			return err
		}
		habits = []models.Habit{h}
	}

	fmt.Printf("Habit log (last %d days):\n\n", c.Days)
	for i, h := range habits {
		cells, err := t.Heatmap(h.ID, date, c.Days)
		if err != nil {
			return err
		}
		if i == 0 {
			fmt.Println(logHeader(cells))
		}
		fmt.Println(logRow(h.Name, cells))
	}
	return nil
}

const logNameWidth = 20

func logHeader(cells []tracker.Cell) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%-*s", logNameWidth, "Habit"))
	for _, cell := range cells {
		b.WriteString(fmt.Sprintf(" %5s", cell.Date[5:7]+"/"+cell.Date[8:10]))
	}
	b.WriteString("\n")
	b.WriteString(strings.Repeat("-", logNameWidth+6*len(cells)))
	return b.String()
}

func logRow(name string, cells []tracker.Cell) string {
	runes := []rune(name)
	if len(runes) > logNameWidth {
		name = string(runes[:logNameWidth-3]) + "..."
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%-*s", logNameWidth, name))
	for _, cell := range cells {
		if cell.Filled {
			b.WriteString("  x   ")
		} else {
			b.WriteString("  .   ")
		}
	}
	return b.String()
}

type HabitRemoveCmd struct {
	Name string `arg:"" help:"Habit name or id prefix."`
}

func (c *HabitRemoveCmd) Run(ctx *cli.Context) error {
	t := ctx.Habits()
	habit, err := cli.ResolveHabit(t.Habits(), c.Name)
	if err != nil {
		return err
	}
	if err := t.RemoveHabit(habit.ID); err != nil {
		return err
	}
	fmt.Printf("Removed habit %q and its history\n", habit.Name)
	return nil
}
