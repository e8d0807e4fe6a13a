// Package tui is the interactive dashboard: today's plan, the weekly report
// and the habit tracker.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/daycompass/internal/analytics"
	"github.com/julianstephens/daycompass/internal/config"
	"github.com/julianstephens/daycompass/internal/habits"
	"github.com/julianstephens/daycompass/internal/logger"
	"github.com/julianstephens/daycompass/internal/models"
	"github.com/julianstephens/daycompass/internal/planner"
	"github.com/julianstephens/daycompass/internal/storage"
	habitlist "github.com/julianstephens/daycompass/internal/tui/components/habits"
	"github.com/julianstephens/daycompass/internal/tui/components/tasklist"
	"github.com/julianstephens/daycompass/internal/tui/components/week"
	"github.com/julianstephens/daycompass/internal/utils"
)

type SessionState int

const (
	StateToday SessionState = iota
	StateWeek
	StateHabits
	StateAddTask
	StateLogMood
	StateAddHabit
	StateConfirmDelete
)

// tabCount is the number of states reachable with tab.
const tabCount = 3

var tabTitles = [tabCount]string{"Today", "Week", "Habits"}

type TaskFormModel struct {
	Title    string
	Category string
	Priority models.Priority
}

type MoodFormModel struct {
	Level int
	Note  string
}

type HabitFormModel struct {
	Name  string
	Emoji string
}

// pendingDelete is the record awaiting confirmation.
type pendingDelete struct {
	returnTo SessionState
	label    string
	apply    func(*Model) error
}

type Model struct {
	store   storage.Provider
	cfg     *config.Config
	loc     *time.Location
	planner *planner.Planner
	tracker *habits.Tracker

	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model

	taskList    tasklist.Model
	weekModel   week.Model
	habitsModel habitlist.Model

	form      *huh.Form
	taskForm  *TaskFormModel
	moodForm  *MoodFormModel
	habitForm *HabitFormModel
	formError string
	deleting  *pendingDelete

	today      string
	weekAnchor time.Time
	energy     int
	lastMood   *models.MoodEntry
	status     string

	quitting bool
	width    int
	height   int
}

func NewModel(store storage.Provider, cfg *config.Config, loc *time.Location) Model {
	if cfg == nil {
		cfg = config.Default()
	}
	if loc == nil {
		loc = time.Local
	}
	now := time.Now().In(loc)

	m := Model{
		store:       store,
		cfg:         cfg,
		loc:         loc,
		planner:     planner.New(store, cfg),
		tracker:     habits.NewTracker(store),
		state:       StateToday,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		taskList:    tasklist.New(nil, 0, 0),
		weekModel:   week.New(0, 0),
		habitsModel: habitlist.New(nil, 0, 0),
		today:       utils.DateKey(now),
		weekAnchor:  now,
	}

	m.refreshToday()
	m.refreshWeek()
	m.refreshHabits()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateToday:
		keys = append(keys, m.keys.Energy, m.keys.Mood)
	case StateWeek:
		keys = append(keys, m.keys.PrevWeek, m.keys.NextWeek)
	case StateConfirmDelete:
		return []key.Binding{m.keys.Confirm, m.keys.Cancel}
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help, m.keys.Refresh}
	navigation := []key.Binding{m.keys.Up, m.keys.Down}

	var actions []key.Binding
	switch m.state {
	case StateToday:
		actions = []key.Binding{m.keys.Energy, m.keys.Mood}
	case StateWeek:
		actions = []key.Binding{m.keys.PrevWeek, m.keys.NextWeek, m.keys.ThisWeek}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// refreshToday reloads today's tasks, energy and latest mood.
func (m *Model) refreshToday() {
	day, err := m.planner.Days.LoadDay(m.today)
	if err != nil {
		m.status = err.Error()
		return
	}
	m.taskList.SetTasks(day.Tasks)
	m.energy = day.Energy

	m.lastMood = nil
	if moods := m.planner.Moods.MoodsForDay(m.today); len(moods) > 0 {
		last := moods[len(moods)-1]
		m.lastMood = &last
	}
}

// refreshWeek recomputes the report of the week containing weekAnchor.
// Pending day edits are flushed first so the report reads them back.
func (m *Model) refreshWeek() {
	if err := m.planner.Flush(); err != nil {
		logger.Warn("Failed to flush before building report", "error", err)
	}
	report := analytics.BuildReport(m.store, m.weekAnchor,
		analytics.WithTopObstacles(m.cfg.Analytics.TopObstacles))
	m.weekModel.SetReport(report)
}

// refreshHabits reloads the completion window ending today and rebuilds the rows.
func (m *Model) refreshHabits() {
	anchor, err := utils.ParseDateInLocation(m.today, m.loc)
	if err != nil {
		m.status = err.Error()
		return
	}
	if err := m.tracker.LoadWindow(anchor, m.cfg.Habits.StreakWindowDays); err != nil {
		m.status = err.Error()
		return
	}

	list := m.tracker.Habits()
	rows := make([]habitlist.Row, 0, len(list))
	for _, h := range list {
		streak, _ := m.tracker.Streak(h.ID, m.today)
		cells, _ := m.tracker.Heatmap(h.ID, m.today, m.cfg.Habits.HeatmapDays)
		rows = append(rows, habitlist.Row{
			Habit:  h,
			Done:   m.tracker.IsCompleted(h.ID, m.today),
			Streak: streak,
			Cells:  cells,
		})
	}
	m.habitsModel.SetRows(rows)
}

// Close flushes pending edits and stops autosave.
func (m Model) Close() error {
	return m.planner.Close()
}
