package days

import (
	"fmt"

	"github.com/julianstephens/daycompass/internal/cli"
	apperrors "github.com/julianstephens/daycompass/internal/errors"
	"github.com/julianstephens/daycompass/internal/models"
	"github.com/julianstephens/daycompass/internal/planner"
)

type TaskCmd struct {
	Add      TaskAddCmd      `cmd:"" help:"Add a task to a day."`
	List     TaskListCmd     `cmd:"" help:"List a day's tasks."`
	Status   TaskStatusCmd   `cmd:"" help:"Set a task's status."`
	Cycle    TaskCycleCmd    `cmd:"" help:"Advance a task to the next status."`
	Time     TaskTimeCmd     `cmd:"" help:"Add minutes spent on a task."`
	Obstacle TaskObstacleCmd `cmd:"" help:"Record what got in the way of a task."`
	Edit     TaskEditCmd     `cmd:"" help:"Rename or recategorize a task."`
	Delete   TaskDeleteCmd   `cmd:"" help:"Delete a task."`
}

// TaskRef is embedded by commands that act on an existing task.
type TaskRef struct {
	Task string `arg:"" help:"Task number from 'task list' or id prefix."`
	Date string `help:"Date (YYYY-MM-DD). Defaults to today."`
}

func (r TaskRef) resolve(ctx *cli.Context) (string, models.Task, error) {
	date, err := ctx.ResolveDate(r.Date)
	if err != nil {
		return "", models.Task{}, err
	}
	day, err := ctx.Planner().Days.LoadDay(date)
	if err != nil {
		return "", models.Task{}, err
	}
	task, err := cli.ResolveTask(day, r.Task)
	if err != nil {
		return "", models.Task{}, err
	}
	return date, task, nil
}

type TaskAddCmd struct {
	Title    string `arg:"" help:"Task title."`
	Category string `help:"Category (defaults to the first configured category)." short:"c"`
	Priority string `help:"Priority: do, schedule, minimize, eliminate (or 1-4)." short:"p" default:"schedule"`
	Date     string `help:"Date (YYYY-MM-DD). Defaults to today."`
}

func (c *TaskAddCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	priority, err := cli.ParsePriority(c.Priority)
	if err != nil {
		return err
	}

	p := ctx.Planner()
	categories := p.Categories.List()
	category := c.Category
	if category == "" && len(categories) > 0 {
		category = categories[0]
	}
	if category != "" && !contains(categories, category) {
		return apperrors.Validationf("unknown category %q (see 'settings categories list')", category)
	}

	task, err := p.Days.AddTask(date, planner.NewTask{
		Title:    c.Title,
		Category: category,
		Priority: priority,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Added task %q to %s (id: %s)\n", task.Title, date, cli.ShortID(task.ID))
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

type TaskListCmd struct {
	Date string `arg:"" optional:"" help:"Date (YYYY-MM-DD). Defaults to today."`
}

func (c *TaskListCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	day, err := ctx.Planner().Days.LoadDay(date)
	if err != nil {
		return err
	}
	fmt.Printf("%s\n", date)
	PrintTasks(day)
	return nil
}

type TaskStatusCmd struct {
	TaskRef `embed:""`
	Status  string `arg:"" help:"not_started, in_progress, done, moved or dropped."`
}

func (c *TaskStatusCmd) Run(ctx *cli.Context) error {
	status, err := cli.ParseStatus(c.Status)
	if err != nil {
		return err
	}
	date, task, err := c.resolve(ctx)
	if err != nil {
		return err
	}
	updated, err := ctx.Planner().Days.SetStatus(date, task.ID, status)
	if err != nil {
		return err
	}
	fmt.Printf("%s %s: %s\n", updated.Status.Icon(), updated.Title, updated.Status.Label())
	return nil
}

type TaskCycleCmd struct {
	TaskRef `embed:""`
}

func (c *TaskCycleCmd) Run(ctx *cli.Context) error {
	date, task, err := c.resolve(ctx)
	if err != nil {
		return err
	}
	updated, err := ctx.Planner().Days.CycleStatus(date, task.ID)
	if err != nil {
		return err
	}
	fmt.Printf("%s %s: %s -> %s\n", updated.Status.Icon(), updated.Title, task.Status.Label(), updated.Status.Label())
	return nil
}

type TaskTimeCmd struct {
	TaskRef `embed:""`
	Minutes int `arg:"" help:"Minutes to add."`
}

func (c *TaskTimeCmd) Run(ctx *cli.Context) error {
	date, task, err := c.resolve(ctx)
	if err != nil {
		return err
	}
	updated, err := ctx.Planner().Days.AddTime(date, task.ID, c.Minutes)
	if err != nil {
		return err
	}
	fmt.Printf("%s: +%s (total %s)\n", updated.Title, cli.FormatMinutes(c.Minutes), cli.FormatMinutes(updated.TimeSpent))
	return nil
}

type TaskObstacleCmd struct {
	TaskRef `embed:""`
	Text    string `arg:"" optional:"" help:"What got in the way. Empty clears it."`
}

func (c *TaskObstacleCmd) Run(ctx *cli.Context) error {
	date, task, err := c.resolve(ctx)
	if err != nil {
		return err
	}
	updated, err := ctx.Planner().Days.UpdateTask(date, task.ID, planner.TaskUpdate{Obstacle: &c.Text})
	if err != nil {
		return err
	}
	if updated.Obstacle == "" {
		fmt.Printf("Cleared obstacle for %s\n", updated.Title)
	} else {
		fmt.Printf("Obstacle for %s: %s\n", updated.Title, updated.Obstacle)
	}
	return nil
}

type TaskEditCmd struct {
	TaskRef  `embed:""`
	Title    *string `help:"New title."`
	Category *string `help:"New category." short:"c"`
}

func (c *TaskEditCmd) Run(ctx *cli.Context) error {
	if c.Title == nil && c.Category == nil {
		return apperrors.Validationf("nothing to change, pass --title or --category")
	}
	if c.Category != nil && *c.Category != "" && !contains(ctx.Planner().Categories.List(), *c.Category) {
		return apperrors.Validationf("unknown category %q (see 'settings categories list')", *c.Category)
	}
	date, task, err := c.resolve(ctx)
	if err != nil {
		return err
	}
	updated, err := ctx.Planner().Days.UpdateTask(date, task.ID, planner.TaskUpdate{
		Title:    c.Title,
		Category: c.Category,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Updated task %s: %s [%s]\n", cli.ShortID(updated.ID), updated.Title, updated.Category)
	return nil
}

type TaskDeleteCmd struct {
	TaskRef `embed:""`
}

func (c *TaskDeleteCmd) Run(ctx *cli.Context) error {
	date, task, err := c.resolve(ctx)
	if err != nil {
		return err
	}
	if err := ctx.Planner().Days.DeleteTask(date, task.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted task %q from %s\n", task.Title, date)
	return nil
}
