package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/daycompass/internal/logger"
)

var (
	// ErrNotFound is returned when a record does not exist in the store
	ErrNotFound = errors.New("not found")
	// ErrValidation is wrapped by every input validation failure
	ErrValidation = errors.New("validation failed")
	// ErrStorageNotLoaded is returned when a store is used before Init or Load
	ErrStorageNotLoaded = errors.New("storage not loaded")
)

// Validationf returns an error wrapping ErrValidation with a formatted message
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFoundf returns an error wrapping ErrNotFound with a formatted message
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotFound)
}

// IsValidation reports whether err is a validation failure
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsNotFound reports whether err signals a missing record
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}
