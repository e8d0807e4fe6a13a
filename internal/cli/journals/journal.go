package journals

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/daycompass/internal/cli"
	"github.com/julianstephens/daycompass/internal/prompts"
)

type JournalCmd struct {
	Show   JournalShowCmd   `cmd:"" help:"Show a day's journal entry." default:"1"`
	Write  JournalWriteCmd  `cmd:"" help:"Write or replace a day's journal entry."`
	Clear  JournalClearCmd  `cmd:"" help:"Delete a day's journal entry."`
	Prompt JournalPromptCmd `cmd:"" help:"Show the journal prompt for a day."`
}

type JournalShowCmd struct {
	Date string `arg:"" optional:"" help:"Date (YYYY-MM-DD). Defaults to today."`
}

func (c *JournalShowCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	entry, found := ctx.Planner().Journal.Load(date)
	if !found {
		fmt.Printf("No journal entry for %s.\n", date)
		fmt.Printf("Prompt: %s\n", prompts.ForDate(date))
		return nil
	}

	fmt.Printf("📓 %s\n", date)
	if entry.PromptUsed != "" {
		fmt.Printf("Prompt: %s\n", entry.PromptUsed)
	}
	fmt.Println()
	fmt.Println(entry.Content)
	fmt.Printf("\nLast saved %s\n", entry.UpdatedAt.In(ctx.Location()).Format("2006-01-02 15:04"))
	return nil
}

type JournalWriteCmd struct {
	Text     string `arg:"" optional:"" help:"Entry text. Opens an editor form when omitted."`
	Date     string `help:"Date (YYYY-MM-DD). Defaults to today."`
	Append   bool   `help:"Append to the existing entry instead of replacing it." short:"a"`
	NoPrompt bool   `help:"Do not attach the day's prompt to the entry."`
}

func (c *JournalWriteCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	journal := ctx.Planner().Journal
	existing, found := journal.Load(date)

	prompt := existing.PromptUsed
	if prompt == "" && !c.NoPrompt {
		prompt = prompts.ForDate(date)
	}

	content := c.Text
	if content == "" {
		content = existing.Content
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewText().
					Title(date).
					Description(prompt).
					CharLimit(0).
					Lines(12).
					Value(&content),
			),
		)
		if err := form.Run(); err != nil {
			return err
		}
	} else if c.Append && found && existing.Content != "" {
		content = strings.TrimRight(existing.Content, "\n") + "\n\n" + content
	}

	if err := journal.Save(date, content, prompt); err != nil {
		return err
	}
	if err := journal.Flush(); err != nil {
		return err
	}
	fmt.Printf("Saved journal entry for %s (%d words)\n", date, len(strings.Fields(content)))
	return nil
}

type JournalClearCmd struct {
	Date string `arg:"" optional:"" help:"Date (YYYY-MM-DD). Defaults to today."`
	Yes  bool   `help:"Skip the confirmation." short:"y"`
}

func (c *JournalClearCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	if !c.Yes {
		confirmed := false
		err := huh.NewConfirm().
			Title(fmt.Sprintf("Delete the journal entry for %s?", date)).
			Affirmative("Delete").
			Negative("Cancel").
			Value(&confirmed).
			Run()
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Cancelled.")
			return nil
		}
	}
	if err := ctx.Planner().Journal.Clear(date); err != nil {
		return err
	}
	fmt.Printf("Cleared journal entry for %s\n", date)
	return nil
}

type JournalPromptCmd struct {
	Date       string `arg:"" optional:"" help:"Date (YYYY-MM-DD). Defaults to today."`
	Compassion bool   `help:"Show the self-compassion prompt instead."`
	Shuffle    bool   `help:"Pick a random prompt other than the day's."`
}

func (c *JournalPromptCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	switch {
	case c.Compassion:
		fmt.Println(prompts.CompassionForDate(date))
	case c.Shuffle:
		fmt.Println(prompts.Shuffle(prompts.ForDate(date)))
	default:
		fmt.Println(prompts.ForDate(date))
	}
	return nil
}
