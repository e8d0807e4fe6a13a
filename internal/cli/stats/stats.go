package stats

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/julianstephens/daycompass/internal/analytics"
	"github.com/julianstephens/daycompass/internal/cli"
)

type StatsCmd struct {
	Week    StatsWeekCmd    `cmd:"" help:"Show statistics for a week." default:"1"`
	Compare StatsCompareCmd `cmd:"" help:"Compare a week with the one before it."`
}

type StatsWeekCmd struct {
	Date  string `arg:"" optional:"" help:"Any date in the week (YYYY-MM-DD). Defaults to today."`
	JSON  bool   `help:"Print the statistics as JSON." name:"json"`
	Tasks bool   `help:"Also list every task of the week, newest first."`
}

func (c *StatsWeekCmd) Run(ctx *cli.Context) error {
	anchor, err := ctx.ResolveAnchor(c.Date)
	if err != nil {
		return err
	}
	if err := ctx.Flush(); err != nil {
		return err
	}
	days := analytics.LoadWeekDays(ctx.Store, anchor)
	stats := analytics.ComputeWeeklyStats(days, anchor, ctx.StatsOptions()...)

	if c.JSON {
		return printJSON(stats)
	}
	PrintWeek(stats)
	if c.Tasks {
		PrintTasks(stats)
	}
	return nil
}

type StatsCompareCmd struct {
	Date string `arg:"" optional:"" help:"Any date in the week (YYYY-MM-DD). Defaults to today."`
	JSON bool   `help:"Print the report as JSON." name:"json"`
}

func (c *StatsCompareCmd) Run(ctx *cli.Context) error {
	anchor, err := ctx.ResolveAnchor(c.Date)
	if err != nil {
		return err
	}
	if err := ctx.Flush(); err != nil {
		return err
	}
	report := analytics.BuildReport(ctx.Store, anchor, ctx.StatsOptions()...)

	if c.JSON {
		return printJSON(report)
	}
	PrintComparison(report)
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

var headerStyle = lipgloss.NewStyle().Bold(true)

// PrintWeek renders the summary, per-day energy, categories and obstacles.
func PrintWeek(s analytics.WeeklyStats) {
	fmt.Println(headerStyle.Render(fmt.Sprintf("Week of %s (%s to %s)", s.WeekKey, s.StartDate, s.EndDate)))
	fmt.Println()
	fmt.Printf("Tasks:        %d/%d done (%d%%)\n", s.CompletedTasks, s.TotalTasks, s.CompletionRate)
	fmt.Printf("Time spent:   %s\n", cli.FormatMinutes(s.TotalTimeSpent))
	if s.AverageEnergy > 0 {
		fmt.Printf("Avg energy:   %.1f/5\n", s.AverageEnergy)
	} else {
		fmt.Println("Avg energy:   -")
	}
	if s.MostProductiveDay != nil {
		fmt.Printf("Best day:     %s\n", *s.MostProductiveDay)
	}

	if points := analytics.ActiveEnergyPoints(s); len(points) > 0 {
		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("Day", "Energy", "Done")
		for _, p := range points {
			energy := "-"
			if p.Energy > 0 {
				energy = strconv.Itoa(p.Energy)
			}
			t.Row(p.DayOfWeek+" "+p.Date[5:], energy, fmt.Sprintf("%d/%d", p.Completed, p.Total))
		}
		fmt.Println()
		fmt.Println(t.Render())
	}

	if rows := analytics.CategoryRows(s); len(rows) > 0 {
		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("Category", "Done", "Rate", "Time")
		for _, r := range rows {
			t.Row(r.Category, fmt.Sprintf("%d/%d", r.Done, r.Total), fmt.Sprintf("%d%%", r.Rate), cli.FormatMinutes(r.Time))
		}
		fmt.Println()
		fmt.Println(t.Render())
	}

	if len(s.ObstacleFrequency) > 0 {
		fmt.Println()
		fmt.Println(headerStyle.Render("Top obstacles"))
		for _, o := range s.ObstacleFrequency {
			fmt.Printf("  %2dx %s\n", o.Count, o.Text)
		}
	}

	if wins := analytics.WeeklyWins(s.Days); len(wins) > 0 {
		fmt.Println()
		fmt.Println(headerStyle.Render("Wins"))
		for _, d := range wins {
			fmt.Printf("  %s  %s\n", d.Date, d.Wins)
		}
	}
}

// PrintTasks lists the week's tasks, newest first.
func PrintTasks(s analytics.WeeklyStats) {
	tasks := analytics.TasksByRecency(s)
	if len(tasks) == 0 {
		return
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Day", "Task", "Category", "Status", "Time", "Obstacle")
	for _, dt := range tasks {
		t.Row(dt.Date[5:], dt.Title, dt.Category, dt.Status.Label(), cli.FormatMinutes(dt.TimeSpent), dt.Obstacle)
	}
	fmt.Println()
	fmt.Println(headerStyle.Render("Tasks"))
	fmt.Println(t.Render())
}

// PrintComparison renders the week-over-week deltas under the week summary.
func PrintComparison(r analytics.Report) {
	PrintWeek(r.Stats)
	fmt.Println()
	if r.Comparison == nil {
		fmt.Println("No data for the previous week.")
		return
	}
	fmt.Println(headerStyle.Render("vs previous week"))
	fmt.Printf("  Completion rate: %d%% (%s)\n", r.Stats.CompletionRate, r.Comparison.CompletionRate.Label("%"))
	fmt.Printf("  Average energy:  %.1f (%s)\n", r.Stats.AverageEnergy, r.Comparison.AverageEnergy.Label(""))
	fmt.Printf("  Time spent:      %s (%s)\n", cli.FormatMinutes(r.Stats.TotalTimeSpent), r.Comparison.TotalTime.Label("m"))
}
