// Package week renders a weekly report in a scrollable viewport.
package week

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/daycompass/internal/analytics"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(14)

	upStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	downStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	flatStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
)

type Model struct {
	viewport viewport.Model
	Report   *analytics.Report
	width    int
	height   int
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.Report == nil {
		return "No report loaded."
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

func (m *Model) SetReport(r analytics.Report) {
	m.Report = &r
	m.Render()
	m.viewport.GotoTop()
}

func (m *Model) Render() {
	if m.Report == nil {
		m.viewport.SetContent("No report loaded.")
		return
	}
	m.viewport.SetContent(Render(*m.Report))
}

// Render formats the report as plain styled text.
func Render(r analytics.Report) string {
	s := r.Stats
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("Week of %s", s.WeekKey)))
	fmt.Fprintf(&b, "  %s to %s\n\n", s.StartDate, s.EndDate)

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label) + value + "\n")
	}
	row("Tasks", fmt.Sprintf("%d/%d done (%d%%)", s.CompletedTasks, s.TotalTasks, s.CompletionRate))
	row("Time spent", fmt.Sprintf("%d min", s.TotalTimeSpent))
	if s.AverageEnergy > 0 {
		row("Avg energy", fmt.Sprintf("%.1f/5", s.AverageEnergy))
	} else {
		row("Avg energy", "-")
	}
	if s.MostProductiveDay != nil {
		row("Best day", *s.MostProductiveDay)
	}

	b.WriteString("\n" + headerStyle.Render("vs previous week") + "\n")
	if r.Comparison == nil {
		b.WriteString(flatStyle.Render("No data for the previous week.") + "\n")
	} else {
		row("Completion", trend(r.Comparison.CompletionRate, "%"))
		row("Energy", trend(r.Comparison.AverageEnergy, ""))
		row("Time", trend(r.Comparison.TotalTime, "m"))
	}

	if points := analytics.ActiveEnergyPoints(s); len(points) > 0 {
		b.WriteString("\n" + headerStyle.Render("Energy and completion") + "\n")
		for _, p := range points {
			dots := strings.Repeat("●", p.Energy) + strings.Repeat("○", 5-p.Energy)
			fmt.Fprintf(&b, "  %s %s  %s  %d/%d\n", p.DayOfWeek, p.Date[5:], dots, p.Completed, p.Total)
		}
	}

	if rows := analytics.CategoryRows(s); len(rows) > 0 {
		b.WriteString("\n" + headerStyle.Render("Categories") + "\n")
		for _, c := range rows {
			fmt.Fprintf(&b, "  %-14s %d/%d  %3d%%  %d min\n", c.Category, c.Done, c.Total, c.Rate, c.Time)
		}
	}

	if len(s.ObstacleFrequency) > 0 {
		b.WriteString("\n" + headerStyle.Render("Top obstacles") + "\n")
		for _, o := range s.ObstacleFrequency {
			fmt.Fprintf(&b, "  %2dx %s\n", o.Count, o.Text)
		}
	}

	if wins := analytics.WeeklyWins(s.Days); len(wins) > 0 {
		b.WriteString("\n" + headerStyle.Render("Wins") + "\n")
		for _, d := range wins {
			fmt.Fprintf(&b, "  %s  %s\n", d.Date, d.Wins)
		}
	}
	return b.String()
}

func trend(d analytics.Delta, suffix string) string {
	label := d.Label(suffix)
	switch d.Trend {
	case analytics.TrendUp:
		return upStyle.Render("▲ " + label)
	case analytics.TrendDown:
		return downStyle.Render("▼ " + label)
	default:
		return flatStyle.Render(label)
	}
}
