package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/daycompass/internal/constants"
)

var (
	accent = lipgloss.Color(constants.DefaultHabitColor)
	muted  = lipgloss.Color("241")

	activeTabStyle   = lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(lipgloss.Color("230")).Background(accent)
	inactiveTabStyle = lipgloss.NewStyle().Padding(0, 1).Foreground(muted)

	dangerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	warningStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("214"))
	dimStyle     = lipgloss.NewStyle().Foreground(muted)
	docStyle     = lipgloss.NewStyle().Padding(1, 2)

	energyOnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	energyOffStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

// moodColors runs from level 1 (red) to level 5 (green).
var moodColors = [...]lipgloss.Color{"196", "208", "226", "148", "46"}

func moodStyle(level int) lipgloss.Style {
	if level < constants.MoodMin || level > constants.MoodMax {
		return dimStyle
	}
	return lipgloss.NewStyle().Bold(true).Foreground(moodColors[level-constants.MoodMin])
}
