package tasklist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/daycompass/internal/models"
)

type AddTaskMsg struct{}

type CycleTaskMsg struct {
	ID string
}

type AddTimeMsg struct {
	ID      string
	Minutes int
}

type DeleteTaskMsg struct {
	ID    string
	Title string
}

type Item struct {
	Task models.Task
}

func (i Item) Title() string {
	return i.Task.Status.Icon() + " " + i.Task.Title
}

func (i Item) Description() string {
	parts := []string{}
	if i.Task.Category != "" {
		parts = append(parts, i.Task.Category)
	}
	parts = append(parts, i.Task.Priority.Label(), i.Task.Status.Label())
	if i.Task.TimeSpent > 0 {
		parts = append(parts, fmt.Sprintf("%d min", i.Task.TimeSpent))
	}
	if i.Task.Obstacle != "" {
		parts = append(parts, "blocked by "+i.Task.Obstacle)
	}
	return strings.Join(parts, " | ")
}

func (i Item) FilterValue() string { return i.Task.Title }

type KeyMap struct {
	Add     key.Binding
	Cycle   key.Binding
	AddTime key.Binding
	Delete  key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Cycle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "next status"),
		),
		AddTime: key.NewBinding(
			key.WithKeys("+"),
			key.WithHelp("+", "15 min"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

// TimeStep is the number of minutes added per AddTime press.
const TimeStep = 15

type Model struct {
	list list.Model
	keys KeyMap
}

func New(tasks []models.Task, width, height int) Model {
	l := list.New(items(tasks), list.NewDefaultDelegate(), width, height)
	l.Title = "Tasks"
	l.SetShowTitle(false)
	l.SetShowHelp(false) // We handle help globally in the main model

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Cycle, keys.AddTime, keys.Delete}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Cycle, keys.AddTime, keys.Delete}
	}

	return Model{list: l, keys: keys}
}

func items(tasks []models.Task) []list.Item {
	out := make([]list.Item, len(tasks))
	for i, t := range tasks {
		out[i] = Item{Task: t}
	}
	return out
}

func (m *Model) SetTasks(tasks []models.Task) {
	m.list.SetItems(items(tasks))
}

func (m Model) Len() int {
	return len(m.list.Items())
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddTaskMsg{} }
		case key.Matches(msg, m.keys.Cycle):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return CycleTaskMsg{ID: i.Task.ID} }
			}
		case key.Matches(msg, m.keys.AddTime):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return AddTimeMsg{ID: i.Task.ID, Minutes: TimeStep} }
			}
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteTaskMsg{ID: i.Task.ID, Title: i.Task.Title} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No tasks for today.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
