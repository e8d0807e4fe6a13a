package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/daycompass/internal/constants"
	"github.com/julianstephens/daycompass/internal/models"
)

func notBlank(what string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", what)
		}
		return nil
	}
}

// NewTaskForm asks for a task title, category and priority.
func NewTaskForm(fm *TaskFormModel, categories []string) *huh.Form {
	priorities := make([]huh.Option[models.Priority], len(models.Priorities))
	for i, p := range models.Priorities {
		priorities[i] = huh.NewOption(p.Label(), p)
	}

	fields := []huh.Field{
		huh.NewInput().
			Title("Task").
			Value(&fm.Title).
			Validate(notBlank("task title")),
	}
	if len(categories) > 0 {
		fields = append(fields, huh.NewSelect[string]().
			Title("Category").
			Options(huh.NewOptions(categories...)...).
			Value(&fm.Category))
	}
	fields = append(fields, huh.NewSelect[models.Priority]().
		Title("Priority").
		Options(priorities...).
		Value(&fm.Priority))

	return huh.NewForm(huh.NewGroup(fields...)).WithTheme(huh.ThemeDracula())
}

// NewMoodForm asks for a mood level and an optional note.
func NewMoodForm(fm *MoodFormModel) *huh.Form {
	levels := make([]huh.Option[int], 0, constants.MoodMax)
	for level := constants.MoodMax; level >= constants.MoodMin; level-- {
		levels = append(levels, huh.NewOption(fmt.Sprintf("%d %s", level, models.MoodLabel(level)), level))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("How are you feeling?").
				Options(levels...).
				Value(&fm.Level),
			huh.NewInput().
				Title("Note").
				Placeholder("optional").
				Value(&fm.Note),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewHabitForm asks for a habit name and emoji.
func NewHabitForm(fm *HabitFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit Name").
				Value(&fm.Name).
				Validate(notBlank("habit name")),
			huh.NewInput().
				Title("Emoji").
				Value(&fm.Emoji),
		),
	).WithTheme(huh.ThemeDracula())
}
