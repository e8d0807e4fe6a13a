package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/daycompass/internal/constants"
	"github.com/julianstephens/daycompass/internal/models"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case StateToday:
		content = m.viewToday()
	case StateWeek:
		content = docStyle.Render(m.weekModel.View())
	case StateHabits:
		content = docStyle.Render(m.habitsModel.View())
	case StateAddTask, StateLogMood, StateAddHabit:
		content = m.viewForm()
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	ui := lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
	return ui
}

func (m Model) viewTabs() string {
	active := m.state
	switch m.state {
	case StateAddTask, StateLogMood, StateAddHabit:
		active = formReturnState(m.state)
	case StateConfirmDelete:
		active = m.previousState
	}

	var tabs []string
	for i, title := range tabTitles {
		if SessionState(i) == StateToday && m.taskList.Len() > 0 {
			title = fmt.Sprintf("%s (%d)", title, m.taskList.Len())
		}
		if active == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	tabs = append(tabs, dimStyle.Render("  "+m.today))
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewToday() string {
	energy := dimStyle.Render("not recorded")
	if m.energy > constants.EnergyUnset {
		energy = energyOnStyle.Render(strings.Repeat("●", m.energy)) +
			energyOffStyle.Render(strings.Repeat("○", constants.EnergyMax-m.energy))
	}
	header := dimStyle.Render("Energy ") + energy
	if m.lastMood != nil {
		header += dimStyle.Render("   Mood ") +
			moodStyle(m.lastMood.Level).Render(fmt.Sprintf("%d %s", m.lastMood.Level, models.MoodLabel(m.lastMood.Level)))
	}
	if m.planner.Days.Unsaved(m.today) {
		header += warningStyle.Render("   saving…")
	}
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.taskList.View(),
	))
}

func (m Model) viewForm() string {
	if m.form == nil {
		return ""
	}
	view := m.form.View()
	if m.formError != "" {
		view = lipgloss.JoinVertical(lipgloss.Left, view, dangerStyle.Render(m.formError))
	}
	return docStyle.Render(view)
}

func (m Model) viewStatus() string {
	if m.status == "" {
		return ""
	}
	return warningStyle.Render(" " + m.status)
}

func (m Model) viewConfirmDelete() string {
	label := ""
	if m.deleting != nil {
		label = m.deleting.label
	}
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Delete %s?", label)),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
