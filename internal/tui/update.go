package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/daycompass/internal/constants"
	"github.com/julianstephens/daycompass/internal/logger"
	"github.com/julianstephens/daycompass/internal/models"
	"github.com/julianstephens/daycompass/internal/planner"
	habitlist "github.com/julianstephens/daycompass/internal/tui/components/habits"
	"github.com/julianstephens/daycompass/internal/tui/components/tasklist"
	"github.com/julianstephens/daycompass/internal/utils"
)

// chromeHeight is the space taken by tabs, status line and help.
const chromeHeight = 6

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		w, h := msg.Width-4, msg.Height-chromeHeight
		m.taskList.SetSize(w, h-2)
		m.weekModel.SetSize(w, h)
		m.habitsModel.SetSize(w, h)
		return m, nil
	}

	switch m.state {
	case StateAddTask, StateLogMood, StateAddHabit:
		return m.updateForm(msg)
	case StateConfirmDelete:
		return m.updateConfirm(msg)
	}

	if handled, cmd := m.handleComponentMsg(msg); handled {
		return m, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			if err := m.Close(); err != nil {
				logger.Error("Failed to save pending edits", "error", err)
			}
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.switchTab(1)
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.switchTab(-1)
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			m.refreshToday()
			m.refreshWeek()
			m.refreshHabits()
			m.status = "Refreshed"
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateToday:
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch {
			case key.Matches(msg, m.keys.Energy):
				level, _ := strconv.Atoi(msg.String())
				m.setEnergy(level)
				return m, nil
			case key.Matches(msg, m.keys.Mood):
				m.moodForm = &MoodFormModel{Level: 3}
				m.form = NewMoodForm(m.moodForm)
				m.state = StateLogMood
				return m, m.form.Init()
			}
		}
		m.taskList, cmd = m.taskList.Update(msg)
	case StateWeek:
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch {
			case key.Matches(msg, m.keys.PrevWeek):
				m.shiftWeek(-1)
				return m, nil
			case key.Matches(msg, m.keys.NextWeek):
				m.shiftWeek(1)
				return m, nil
			case key.Matches(msg, m.keys.ThisWeek):
				m.weekAnchor = time.Now().In(m.loc)
				m.refreshWeek()
				return m, nil
			}
		}
		m.weekModel, cmd = m.weekModel.Update(msg)
	case StateHabits:
		m.habitsModel, cmd = m.habitsModel.Update(msg)
	}
	return m, cmd
}

func (m *Model) switchTab(step int) {
	m.state = SessionState((int(m.state) + step + tabCount) % tabCount)
	m.status = ""
	if m.state == StateWeek {
		m.refreshWeek()
	}
}

func (m *Model) shiftWeek(weeks int) {
	m.weekAnchor = utils.AddDays(m.weekAnchor, weeks*constants.DaysPerWeek)
	m.refreshWeek()
}

func (m *Model) setEnergy(level int) {
	if _, err := m.planner.Days.SetEnergy(m.today, level); err != nil {
		m.status = err.Error()
		return
	}
	m.energy = level
	if level == constants.EnergyUnset {
		m.status = "Energy cleared"
	} else {
		m.status = fmt.Sprintf("Energy set to %d/5", level)
	}
}

// handleComponentMsg applies the actions requested by the list components.
func (m *Model) handleComponentMsg(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case tasklist.AddTaskMsg:
		m.taskForm = &TaskFormModel{Priority: models.PriorityNotUrgentImportant}
		categories := m.planner.Categories.List()
		if len(categories) > 0 {
			m.taskForm.Category = categories[0]
		}
		m.form = NewTaskForm(m.taskForm, categories)
		m.state = StateAddTask
		return true, m.form.Init()

	case tasklist.CycleTaskMsg:
		task, err := m.planner.Days.CycleStatus(m.today, msg.ID)
		m.afterTaskEdit(err, fmt.Sprintf("%s: %s", task.Title, task.Status.Label()))
		return true, nil

	case tasklist.AddTimeMsg:
		task, err := m.planner.Days.AddTime(m.today, msg.ID, msg.Minutes)
		m.afterTaskEdit(err, fmt.Sprintf("%s: %d min", task.Title, task.TimeSpent))
		return true, nil

	case tasklist.DeleteTaskMsg:
		id := msg.ID
		m.confirmDelete(fmt.Sprintf("task %q", msg.Title), func(m *Model) error {
			if err := m.planner.Days.DeleteTask(m.today, id); err != nil {
				return err
			}
			m.refreshToday()
			return nil
		})
		return true, nil

	case habitlist.AddHabitMsg:
		m.habitForm = &HabitFormModel{Emoji: constants.DefaultHabitEmoji}
		m.form = NewHabitForm(m.habitForm)
		m.state = StateAddHabit
		return true, m.form.Init()

	case habitlist.ToggleHabitMsg:
		done, err := m.tracker.Toggle(msg.ID, m.today)
		if err != nil {
			m.status = err.Error()
			return true, nil
		}
		m.refreshHabits()
		if done {
			m.status = "Marked done for today"
		} else {
			m.status = "Unmarked for today"
		}
		return true, nil

	case habitlist.DeleteHabitMsg:
		id := msg.ID
		m.confirmDelete(fmt.Sprintf("habit %q and its history", msg.Name), func(m *Model) error {
			if err := m.tracker.RemoveHabit(id); err != nil {
				return err
			}
			m.refreshHabits()
			return nil
		})
		return true, nil
	}
	return false, nil
}

func (m *Model) afterTaskEdit(err error, status string) {
	if err != nil {
		m.status = err.Error()
		return
	}
	m.status = status
	m.refreshToday()
}

func (m *Model) confirmDelete(label string, apply func(*Model) error) {
	m.deleting = &pendingDelete{returnTo: m.state, label: label, apply: apply}
	m.previousState = m.state
	m.state = StateConfirmDelete
}

func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.deleting == nil {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Confirm):
		pending := m.deleting
		m.deleting = nil
		m.state = pending.returnTo
		if err := pending.apply(&m); err != nil {
			m.status = err.Error()
		} else {
			m.status = "Deleted " + pending.label
		}
	case key.Matches(keyMsg, m.keys.Cancel):
		m.state = m.deleting.returnTo
		m.deleting = nil
	}
	return m, nil
}

// formReturnState is the tab a form goes back to.
func formReturnState(s SessionState) SessionState {
	if s == StateAddHabit {
		return StateHabits
	}
	return StateToday
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	back := formReturnState(m.state)
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = back
		m.form = nil
		m.formError = ""
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if err := m.submitForm(); err != nil {
			// Stay in the form so the user can correct it or cancel with ESC
			m.formError = err.Error()
			m.form.State = huh.StateNormal
			return m, cmd
		}
		m.form = nil
		m.formError = ""
		m.state = back
	case huh.StateAborted:
		m.form = nil
		m.state = back
	}
	return m, cmd
}

func (m *Model) submitForm() error {
	switch m.state {
	case StateAddTask:
		task, err := m.planner.Days.AddTask(m.today, planner.NewTask{
			Title:    m.taskForm.Title,
			Category: m.taskForm.Category,
			Priority: m.taskForm.Priority,
		})
		if err != nil {
			return err
		}
		m.refreshToday()
		m.status = "Added " + task.Title
	case StateLogMood:
		entry, err := m.planner.Moods.LogMood(m.today, m.moodForm.Level, m.moodForm.Note)
		if err != nil {
			return err
		}
		m.refreshToday()
		m.status = fmt.Sprintf("Logged mood %d (%s)", entry.Level, models.MoodLabel(entry.Level))
	case StateAddHabit:
		emoji := strings.TrimSpace(m.habitForm.Emoji)
		if emoji == "" {
			emoji = constants.DefaultHabitEmoji
		}
		habit, err := m.tracker.AddHabit(m.habitForm.Name, emoji, constants.DefaultHabitColor)
		if err != nil {
			return err
		}
		m.refreshHabits()
		m.status = "Added habit " + habit.Name
	}
	return nil
}
