package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/daycompass/internal/constants"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}

// ParseDate parses a date key (YYYY-MM-DD) as midnight in the local timezone.
func ParseDate(dateStr string) (time.Time, error) {
	return ParseDateInLocation(dateStr, time.Local)
}

// ParseDateInLocation parses a date string (YYYY-MM-DD) in the specified timezone.
func ParseDateInLocation(dateStr string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, dateStr)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// ValidateDateFormat checks if the string is a YYYY-MM-DD date key.
func ValidateDateFormat(dateStr string) bool {
	_, err := time.Parse(constants.DateFormat, dateStr)
	return err == nil
}

// DateKey formats the calendar date of t as YYYY-MM-DD in t's own location.
func DateKey(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// StartOfDay returns midnight of t's calendar date in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// AddDays shifts a calendar date by n days. Calendar arithmetic keeps DST
// transitions from skipping or repeating a date.
func AddDays(t time.Time, n int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day()+n, 0, 0, 0, 0, t.Location())
}

// ShiftDateKey shifts a YYYY-MM-DD key by n days.
func ShiftDateKey(dateStr string, n int) (string, error) {
	t, err := time.Parse(constants.DateFormat, dateStr)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", dateStr, err)
	}
	return DateKey(AddDays(t, n)), nil
}

// DateRange returns the n date keys ending at end (inclusive), oldest first.
func DateRange(end time.Time, n int) []string {
	if n <= 0 {
		return []string{}
	}
	keys := make([]string, n)
	for i := 0; i < n; i++ {
		keys[i] = DateKey(AddDays(end, i-(n-1)))
	}
	return keys
}
