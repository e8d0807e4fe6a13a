package settings

import (
	"fmt"
	"strings"

	"github.com/julianstephens/daycompass/internal/cli"
	apperrors "github.com/julianstephens/daycompass/internal/errors"
	"github.com/julianstephens/daycompass/internal/utils"
)

type SettingsCmd struct {
	Show       SettingsShowCmd     `cmd:"" help:"Show current settings." default:"1"`
	Timezone   SettingsTimezoneCmd `cmd:"" help:"Set the timezone used to decide what 'today' is."`
	Categories CategoriesCmd       `cmd:"" help:"Manage task categories."`
}

type SettingsShowCmd struct{}

func (c *SettingsShowCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	cfg := ctx.Conf()

	fmt.Println("Current Settings:")
	fmt.Printf("  Storage:               %s\n", ctx.Store.GetConfigPath())
	fmt.Printf("  Timezone:              %s\n", settings.Timezone)
	fmt.Printf("  Categories:            %s\n", strings.Join(settings.Categories, ", "))
	fmt.Println("\nRuntime Config:")
	fmt.Printf("  Timezone override:     %s\n", cfg.Timezone)
	fmt.Printf("  Week starts:           %s\n", cfg.Week.Start)
	fmt.Printf("  Day autosave delay:    %s\n", cfg.Autosave.DayDelay)
	fmt.Printf("  Journal autosave:      %s\n", cfg.Autosave.JournalDelay)
	fmt.Printf("  Heatmap days:          %d\n", cfg.Habits.HeatmapDays)
	fmt.Printf("  Streak window:         %d days\n", cfg.Habits.StreakWindowDays)
	fmt.Printf("  Top obstacles:         %d\n", cfg.Analytics.TopObstacles)
	return nil
}

type SettingsTimezoneCmd struct {
	Name string `arg:"" help:"IANA timezone name (e.g. Europe/Berlin) or Local."`
}

func (c *SettingsTimezoneCmd) Run(ctx *cli.Context) error {
	if !utils.ValidateTimezone(c.Name) {
		return apperrors.Validationf("unknown timezone %q", c.Name)
	}
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	settings.Timezone = c.Name
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Printf("Timezone set to %s\n", c.Name)
	return nil
}

type CategoriesCmd struct {
	List    CategoriesListCmd    `cmd:"" help:"List categories in display order." default:"1"`
	Add     CategoriesAddCmd     `cmd:"" help:"Add a category."`
	Remove  CategoriesRemoveCmd  `cmd:"" help:"Remove a category. Existing tasks keep it."`
	Reorder CategoriesReorderCmd `cmd:"" help:"Set the display order of all categories."`
}

func printCategories(categories []string) {
	if len(categories) == 0 {
		fmt.Println("No categories configured.")
		return
	}
	for i, c := range categories {
		fmt.Printf("  %d. %s\n", i+1, c)
	}
}

type CategoriesListCmd struct{}

func (c *CategoriesListCmd) Run(ctx *cli.Context) error {
	printCategories(ctx.Planner().Categories.List())
	return nil
}

type CategoriesAddCmd struct {
	Name string `arg:"" help:"Category name."`
}

func (c *CategoriesAddCmd) Run(ctx *cli.Context) error {
	categories, err := ctx.Planner().Categories.Add(c.Name)
	if err != nil {
		return err
	}
	fmt.Printf("Added category %q\n", strings.TrimSpace(c.Name))
	printCategories(categories)
	return nil
}

type CategoriesRemoveCmd struct {
	Name string `arg:"" help:"Category name."`
}

func (c *CategoriesRemoveCmd) Run(ctx *cli.Context) error {
	categories, err := ctx.Planner().Categories.Remove(c.Name)
	if err != nil {
		return err
	}
	fmt.Printf("Removed category %q\n", c.Name)
	printCategories(categories)
	return nil
}

type CategoriesReorderCmd struct {
	Names []string `arg:"" help:"Every category, in the new order."`
}

func (c *CategoriesReorderCmd) Run(ctx *cli.Context) error {
	categories, err := ctx.Planner().Categories.Reorder(c.Names)
	if err != nil {
		return err
	}
	fmt.Println("Categories reordered:")
	printCategories(categories)
	return nil
}
