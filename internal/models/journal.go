package models

import "time"

// JournalEntry holds one day's journal text. Each save overwrites the previous content.
type JournalEntry struct {
	Date       string    `json:"date"` // YYYY-MM-DD format
	Content    string    `json:"content"`
	PromptUsed string    `json:"prompt_used"`
	UpdatedAt  time.Time `json:"updated_at"`
}
