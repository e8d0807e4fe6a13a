package models

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/daycompass/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingCategories:
			if err := json.Unmarshal([]byte(value), &settings.Categories); err != nil {
				return Settings{}, fmt.Errorf("parsing categories: %w", err)
			}
		case constants.SettingTimezone:
			settings.Timezone = value
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) (map[string]string, error) {
	categories := settings.Categories
	if categories == nil {
		categories = []string{}
	}
	raw, err := json.Marshal(categories)
	if err != nil {
		return nil, fmt.Errorf("encoding categories: %w", err)
	}
	return map[string]string{
		constants.SettingCategories: string(raw),
		constants.SettingTimezone:   settings.Timezone,
	}, nil
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.Categories == nil {
		settings.Categories = append([]string(nil), constants.DefaultCategories...)
	}
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
}
