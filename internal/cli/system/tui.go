package system

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/daycompass/internal/cli"
	"github.com/julianstephens/daycompass/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	// Perform automatic backup on TUI startup (after successful load)
	ctx.PerformAutomaticBackup()

	model := tui.NewModel(ctx.Store, ctx.Conf(), ctx.Location())
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	// copies of the model share one planner
	if cerr := model.Close(); err == nil {
		err = cerr
	}
	return err
}
