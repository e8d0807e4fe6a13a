package validation

import (
	"strings"

	"github.com/julianstephens/daycompass/internal/constants"
	apperrors "github.com/julianstephens/daycompass/internal/errors"
	"github.com/julianstephens/daycompass/internal/models"
	"github.com/julianstephens/daycompass/internal/utils"
)

const (
	MaxTitleLength     = 200
	MaxCategoryLength  = 50
	MaxHabitNameLength = 60
)

// ValidateDate checks that s is a YYYY-MM-DD date key.
func ValidateDate(s string) error {
	if !utils.ValidateDateFormat(s) {
		return apperrors.Validationf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	return nil
}

// ValidateDateRange checks both bounds and that start is not after end.
func ValidateDateRange(start, end string) error {
	if err := ValidateDate(start); err != nil {
		return err
	}
	if err := ValidateDate(end); err != nil {
		return err
	}
	// YYYY-MM-DD keys sort lexically in calendar order
	if start > end {
		return apperrors.Validationf("range start %s is after end %s", start, end)
	}
	return nil
}

// ValidateTaskTitle trims the title and rejects blank or oversized titles.
func ValidateTaskTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", apperrors.Validationf("task title cannot be empty")
	}
	if len(title) > MaxTitleLength {
		return "", apperrors.Validationf("task title exceeds %d characters", MaxTitleLength)
	}
	return title, nil
}

// ValidatePriority rejects values outside the four quadrants.
func ValidatePriority(p models.Priority) error {
	if !p.Valid() {
		return apperrors.Validationf("invalid priority %q", p)
	}
	return nil
}

// ValidateStatus rejects unknown task statuses.
func ValidateStatus(s models.TaskStatus) error {
	if !s.Valid() {
		return apperrors.Validationf("invalid task status %q", s)
	}
	return nil
}

// ValidateEnergy accepts 0 (unset) through the top of the energy scale.
func ValidateEnergy(level int) error {
	if level < constants.EnergyUnset || level > constants.EnergyMax {
		return apperrors.Validationf("energy must be between %d and %d", constants.EnergyUnset, constants.EnergyMax)
	}
	return nil
}

// ValidateMoodLevel accepts the 1-5 mood scale.
func ValidateMoodLevel(level int) error {
	if level < constants.MoodMin || level > constants.MoodMax {
		return apperrors.Validationf("mood level must be between %d and %d", constants.MoodMin, constants.MoodMax)
	}
	return nil
}

// ValidateMinutes rejects non-positive time additions; time spent never decreases.
func ValidateMinutes(minutes int) error {
	if minutes <= 0 {
		return apperrors.Validationf("minutes must be positive, got %d", minutes)
	}
	return nil
}

// ValidateGoal trims the goal text and checks the target.
func ValidateGoal(text string, target int) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", apperrors.Validationf("goal text cannot be empty")
	}
	if target <= 0 {
		return "", apperrors.Validationf("goal target must be positive, got %d", target)
	}
	return text, nil
}

// ValidateCategoryName trims and bounds a category name.
func ValidateCategoryName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperrors.Validationf("category name cannot be empty")
	}
	if len(name) > MaxCategoryLength {
		return "", apperrors.Validationf("category name exceeds %d characters", MaxCategoryLength)
	}
	return name, nil
}

// ValidateHabitName trims and bounds a habit name.
func ValidateHabitName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperrors.Validationf("habit name cannot be empty")
	}
	if len(name) > MaxHabitNameLength {
		return "", apperrors.Validationf("habit name exceeds %d characters", MaxHabitNameLength)
	}
	return name, nil
}

// ValidateIntentionIndex checks index against the day's intention slots.
func ValidateIntentionIndex(index, slots int) error {
	if index < 0 || index >= slots {
		return apperrors.Validationf("intention index %d out of range [0, %d)", index, slots)
	}
	return nil
}
