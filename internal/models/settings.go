package models

// Settings represents application-wide settings
type Settings struct {
	Categories []string `json:"categories"` // configured task categories, in display order
	Timezone   string   `json:"timezone"`   // IANA timezone name or "Local"
}

// HasCategory reports whether name is one of the configured categories.
func (s Settings) HasCategory(name string) bool {
	for _, c := range s.Categories {
		if c == name {
			return true
		}
	}
	return false
}
