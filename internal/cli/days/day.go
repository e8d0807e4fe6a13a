package days

import (
	"fmt"
	"strings"

	"github.com/julianstephens/daycompass/internal/cli"
	"github.com/julianstephens/daycompass/internal/constants"
	"github.com/julianstephens/daycompass/internal/models"
)

type DayCmd struct {
	Show      DayShowCmd      `cmd:"" help:"Show the plan and check-ins for a day." default:"1"`
	Energy    DayEnergyCmd    `cmd:"" help:"Record the day's energy level (1-5, 0 clears)."`
	Wins      DayWinsCmd      `cmd:"" help:"Record the day's wins."`
	Reflect   DayReflectCmd   `cmd:"" help:"Record the day's reflection."`
	Intention DayIntentionCmd `cmd:"" help:"Set an implementation intention (when X, I will Y)."`
}

type DayShowCmd struct {
	Date string `arg:"" optional:"" help:"Date (YYYY-MM-DD, today, yesterday). Defaults to today."`
}

func (c *DayShowCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	p := ctx.Planner()
	day, err := p.Days.LoadDay(date)
	if err != nil {
		return err
	}

	fmt.Printf("📅 %s\n\n", date)
	if day.Energy > 0 {
		fmt.Printf("Energy: %s (%d/5)\n", strings.Repeat("●", day.Energy)+strings.Repeat("○", constants.EnergyMax-day.Energy), day.Energy)
	} else {
		fmt.Println("Energy: not recorded")
	}

	fmt.Println()
	PrintTasks(day)

	var intentions []models.Intention
	for _, in := range day.Intentions {
		if in.Trigger != "" || in.Action != "" {
			intentions = append(intentions, in)
		}
	}
	if len(intentions) > 0 {
		fmt.Println("\nIntentions:")
		for _, in := range intentions {
			fmt.Printf("  When %s, I will %s\n", orDots(in.Trigger), orDots(in.Action))
		}
	}

	if moods := p.Moods.MoodsForDay(date); len(moods) > 0 {
		fmt.Println("\nMoods:")
		for _, m := range moods {
			line := fmt.Sprintf("  %s  %d %s", m.Timestamp.In(ctx.Location()).Format(constants.TimeFormat), m.Level, models.MoodLabel(m.Level))
			if m.Note != "" {
				line += " - " + m.Note
			}
			fmt.Println(line)
		}
	}

	if day.Wins != "" {
		fmt.Printf("\nWins:\n  %s\n", day.Wins)
	}
	if day.Reflection != "" {
		fmt.Printf("\nReflection:\n  %s\n", day.Reflection)
	}
	if _, found := p.Journal.Load(date); found {
		fmt.Printf("\nJournal entry saved (see 'journal show %s').\n", date)
	}
	return nil
}

// PrintTasks lists the day's tasks with their 1-based reference numbers.
func PrintTasks(day models.DayEntry) {
	if len(day.Tasks) == 0 {
		fmt.Println("No tasks.")
		return
	}
	fmt.Printf("Tasks (%d/%d done):\n", day.CompletedCount(), len(day.Tasks))
	for i, t := range day.Tasks {
		line := fmt.Sprintf("  %2d. %s %s", i+1, t.Status.Icon(), t.Title)
		var meta []string
		if t.Category != "" {
			meta = append(meta, t.Category)
		}
		meta = append(meta, t.Priority.Label())
		if t.TimeSpent > 0 {
			meta = append(meta, cli.FormatMinutes(t.TimeSpent))
		}
		line += fmt.Sprintf("  [%s]", strings.Join(meta, ", "))
		fmt.Println(line)
		if t.Obstacle != "" {
			fmt.Printf("      obstacle: %s\n", t.Obstacle)
		}
	}
}

func orDots(s string) string {
	if s == "" {
		return "..."
	}
	return s
}

type DayEnergyCmd struct {
	Level int    `arg:"" help:"Energy level 1-5, or 0 to clear."`
	Date  string `help:"Date (YYYY-MM-DD). Defaults to today."`
}

func (c *DayEnergyCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	if _, err := ctx.Planner().Days.SetEnergy(date, c.Level); err != nil {
		return err
	}
	if c.Level == 0 {
		fmt.Printf("Cleared energy for %s\n", date)
	} else {
		fmt.Printf("Energy for %s set to %d/5\n", date, c.Level)
	}
	return nil
}

type DayWinsCmd struct {
	Text string `arg:"" help:"What went well."`
	Date string `help:"Date (YYYY-MM-DD). Defaults to today."`
}

func (c *DayWinsCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	if _, err := ctx.Planner().Days.SetWins(date, c.Text); err != nil {
		return err
	}
	fmt.Printf("Saved wins for %s\n", date)
	return nil
}

type DayReflectCmd struct {
	Text string `arg:"" help:"Reflection text."`
	Date string `help:"Date (YYYY-MM-DD). Defaults to today."`
}

func (c *DayReflectCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	if _, err := ctx.Planner().Days.SetReflection(date, c.Text); err != nil {
		return err
	}
	fmt.Printf("Saved reflection for %s\n", date)
	return nil
}

type DayIntentionCmd struct {
	Slot    int    `arg:"" help:"Intention slot (1-based)."`
	Trigger string `help:"When ..." short:"w"`
	Action  string `help:"I will ..." short:"a"`
	Date    string `help:"Date (YYYY-MM-DD). Defaults to today."`
}

func (c *DayIntentionCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	in := models.Intention{Trigger: c.Trigger, Action: c.Action}
	if _, err := ctx.Planner().Days.UpdateIntention(date, c.Slot-1, in); err != nil {
		return err
	}
	fmt.Printf("Intention %d for %s: when %s, I will %s\n", c.Slot, date, orDots(c.Trigger), orDots(c.Action))
	return nil
}
