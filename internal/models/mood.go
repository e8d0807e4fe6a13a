package models

import "time"

// MoodEntry is a single mood check-in. A day may hold many.
type MoodEntry struct {
	ID        int64     `json:"id"`
	Date      string    `json:"date"` // YYYY-MM-DD format
	Timestamp time.Time `json:"timestamp"`
	Level     int       `json:"level"` // 1-5
	Note      string    `json:"note,omitempty"`
}

// DailyMood is the rounded average mood level of one day.
type DailyMood struct {
	Date    string  `json:"date"`
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// MoodLabel returns the display label of a mood level.
func MoodLabel(level int) string {
	switch level {
	case 1:
		return "Awful"
	case 2:
		return "Low"
	case 3:
		return "Okay"
	case 4:
		return "Good"
	case 5:
		return "Great"
	default:
		return "Unknown"
	}
}
