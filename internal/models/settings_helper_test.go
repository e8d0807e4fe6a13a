package models

import (
	"reflect"
	"testing"

	"github.com/julianstephens/daycompass/internal/constants"
)

func TestSettingsMapRoundTrip(t *testing.T) {
	in := Settings{Categories: []string{"Coding", "Health"}, Timezone: "Europe/Berlin"}
	m, err := SettingsToMap(in)
	if err != nil {
		t.Fatalf("SettingsToMap() error = %v", err)
	}
	out, err := MapToSettings(m)
	if err != nil {
		t.Fatalf("MapToSettings() error = %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}

func TestMapToSettings_BadCategories(t *testing.T) {
	_, err := MapToSettings(map[string]string{constants.SettingCategories: "not json"})
	if err == nil {
		t.Error("expected error for malformed categories")
	}
}

func TestApplyDefaultSettings(t *testing.T) {
	var s Settings
	ApplyDefaultSettings(&s)
	if !reflect.DeepEqual(s.Categories, constants.DefaultCategories) {
		t.Errorf("categories = %v", s.Categories)
	}
	if s.Timezone != constants.DefaultTimezone {
		t.Errorf("timezone = %q", s.Timezone)
	}

	// defaults must not alias the package-level slice
	s.Categories[0] = "Changed"
	if constants.DefaultCategories[0] == "Changed" {
		t.Error("ApplyDefaultSettings aliased DefaultCategories")
	}

	kept := Settings{Categories: []string{}, Timezone: "UTC"}
	ApplyDefaultSettings(&kept)
	if len(kept.Categories) != 0 || kept.Timezone != "UTC" {
		t.Errorf("explicit settings overwritten: %+v", kept)
	}
}
