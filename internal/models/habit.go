package models

import "time"

// Habit represents a recurring practice to track
type Habit struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Emoji     string    `json:"emoji"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

// HabitCompletion marks a habit as done on a day. Its existence is the signal.
type HabitCompletion struct {
	ID      int64  `json:"id"`
	HabitID string `json:"habit_id"`
	Date    string `json:"date"` // YYYY-MM-DD format
}
