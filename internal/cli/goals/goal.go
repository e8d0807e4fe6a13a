package goals

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/julianstephens/daycompass/internal/analytics"
	"github.com/julianstephens/daycompass/internal/cli"
	"github.com/julianstephens/daycompass/internal/constants"
	apperrors "github.com/julianstephens/daycompass/internal/errors"
	"github.com/julianstephens/daycompass/internal/models"
)

type GoalCmd struct {
	Add      GoalAddCmd      `cmd:"" help:"Add a weekly goal."`
	List     GoalListCmd     `cmd:"" help:"List the week's goals." default:"1"`
	Progress GoalProgressCmd `cmd:"" help:"Update a goal's progress."`
	Remove   GoalRemoveCmd   `cmd:"" help:"Remove a goal."`
}

// resolveGoal finds a goal of the week by 1-based position or id prefix.
func resolveGoal(goals []models.WeeklyGoal, ref string) (models.WeeklyGoal, error) {
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(goals) {
			return models.WeeklyGoal{}, apperrors.NotFoundf("goal #%d", n)
		}
		return goals[n-1], nil
	}
	for _, g := range goals {
		if strings.HasPrefix(g.ID, ref) {
			return g, nil
		}
	}
	return models.WeeklyGoal{}, apperrors.NotFoundf("goal %q", ref)
}

type GoalAddCmd struct {
	Text     string `arg:"" help:"What to achieve this week."`
	Target   int    `help:"How many times." short:"t" default:"${goal_target}"`
	Category string `help:"Optional category." short:"c"`
	Date     string `help:"Any date in the week (YYYY-MM-DD). Defaults to today."`
}

func (c *GoalAddCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	target := c.Target
	if target == 0 {
		target = constants.DefaultGoalTarget
	}
	goal, err := ctx.Planner().Goals.AddGoal(date, c.Text, target, c.Category)
	if err != nil {
		return err
	}
	fmt.Printf("Added goal for week of %s: %s (0/%d)\n", goal.WeekKey, goal.Text, goal.Target)
	return nil
}

type GoalListCmd struct {
	Date string `arg:"" optional:"" help:"Any date in the week (YYYY-MM-DD). Defaults to today."`
}

func (c *GoalListCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	week, err := analytics.ResolveWeekOf(date)
	if err != nil {
		return err
	}
	goals := ctx.Planner().Goals.GoalsForWeek(date)
	if len(goals) == 0 {
		fmt.Printf("No goals for the week of %s.\n", week.Key)
		return nil
	}

	fmt.Printf("Goals for the week of %s:\n", week.Key)
	for i, g := range goals {
		mark := " "
		if g.Done() {
			mark = "✓"
		}
		line := fmt.Sprintf("  %2d. %s %-30s %s %d/%d", i+1, mark, g.Text, progressBar(g.Percent(), 10), g.Current, g.Target)
		if g.Category != "" {
			line += "  [" + g.Category + "]"
		}
		fmt.Println(line)
	}
	return nil
}

func progressBar(percent, width int) string {
	filled := percent * width / 100
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

type GoalProgressCmd struct {
	Goal string `arg:"" help:"Goal number from 'goal list' or id prefix."`
	Set  *int   `help:"Set progress to this value."`
	Dec  bool   `help:"Decrement instead of increment."`
	Date string `help:"Any date in the week (YYYY-MM-DD). Defaults to today."`
}

func (c *GoalProgressCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	svc := ctx.Planner().Goals
	goal, err := resolveGoal(svc.GoalsForWeek(date), c.Goal)
	if err != nil {
		return err
	}

	var updated models.WeeklyGoal
	switch {
	case c.Set != nil:
		updated, err = svc.SetProgress(date, goal.ID, *c.Set)
	case c.Dec:
		updated, err = svc.Decrement(date, goal.ID)
	default:
		updated, err = svc.Increment(date, goal.ID)
	}
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d/%d (%d%%)\n", updated.Text, updated.Current, updated.Target, updated.Percent())
	if updated.Done() && !goal.Done() {
		fmt.Println("🎉 Goal reached!")
	}
	return nil
}

type GoalRemoveCmd struct {
	Goal string `arg:"" help:"Goal number from 'goal list' or id prefix."`
	Date string `help:"Any date in the week (YYYY-MM-DD). Defaults to today."`
}

func (c *GoalRemoveCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	svc := ctx.Planner().Goals
	goal, err := resolveGoal(svc.GoalsForWeek(date), c.Goal)
	if err != nil {
		return err
	}
	if err := svc.RemoveGoal(date, goal.ID); err != nil {
		return err
	}
	fmt.Printf("Removed goal %q\n", goal.Text)
	return nil
}
