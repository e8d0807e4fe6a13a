package habits

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	tracker "github.com/julianstephens/daycompass/internal/habits"
	"github.com/julianstephens/daycompass/internal/models"
)

type AddHabitMsg struct{}

type ToggleHabitMsg struct {
	ID string
}

type DeleteHabitMsg struct {
	ID   string
	Name string
}

// Row is one habit as of the model's date.
type Row struct {
	Habit  models.Habit
	Done   bool
	Streak int
	Cells  []tracker.Cell
}

var emptyCell = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))

type Item struct {
	Row Row
}

func (i Item) Title() string {
	mark := "○"
	if i.Row.Done {
		mark = "✓"
	}
	title := mark + " "
	if i.Row.Habit.Emoji != "" {
		title += i.Row.Habit.Emoji + " "
	}
	return title + i.Row.Habit.Name
}

func (i Item) Description() string {
	return fmt.Sprintf("%s  🔥 %d", Strip(i.Row.Cells, i.Row.Habit.Color), i.Row.Streak)
}

func (i Item) FilterValue() string { return i.Row.Habit.Name }

// Strip renders cells oldest first, filled days in the habit's color.
func Strip(cells []tracker.Cell, color string) string {
	filled := lipgloss.NewStyle()
	if color != "" {
		filled = filled.Foreground(lipgloss.Color(color))
	}
	var b strings.Builder
	for _, c := range cells {
		if c.Filled {
			b.WriteString(filled.Render("■"))
		} else {
			b.WriteString(emptyCell.Render("□"))
		}
	}
	return b.String()
}

type KeyMap struct {
	Add    key.Binding
	Toggle key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "toggle today"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(rows []Row, width, height int) Model {
	l := list.New(items(rows), list.NewDefaultDelegate(), width, height)
	l.Title = "Habits"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Toggle, keys.Delete}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Toggle, keys.Delete}
	}

	return Model{list: l, keys: keys}
}

func items(rows []Row) []list.Item {
	out := make([]list.Item, len(rows))
	for i, r := range rows {
		out[i] = Item{Row: r}
	}
	return out
}

func (m *Model) SetRows(rows []Row) {
	m.list.SetItems(items(rows))
}

// Rows returns the displayed rows in list order.
func (m Model) Rows() []Row {
	out := make([]Row, 0, len(m.list.Items()))
	for _, it := range m.list.Items() {
		if i, ok := it.(Item); ok {
			out = append(out, i.Row)
		}
	}
	return out
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
			return m, func() tea.Msg { return AddHabitMsg{} }
		case key.Matches(msg, m.keys.Toggle):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return ToggleHabitMsg{ID: i.Row.Habit.ID} }
			}
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteHabitMsg{ID: i.Row.Habit.ID, Name: i.Row.Habit.Name} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No habits yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
