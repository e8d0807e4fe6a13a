package validation

import (
	"strings"
	"testing"

	apperrors "github.com/julianstephens/daycompass/internal/errors"
	"github.com/julianstephens/daycompass/internal/models"
)

func TestValidateTaskTitle(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		want    string
		wantErr bool
	}{
		{"plain", "Write report", "Write report", false},
		{"trimmed", "  Call dentist \n", "Call dentist", false},
		{"empty", "", "", true},
		{"whitespace only", "   \t", "", true},
		{"too long", strings.Repeat("x", MaxTitleLength+1), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateTaskTitle(tt.title)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateTaskTitle() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !apperrors.IsValidation(err) {
				t.Errorf("error %v does not wrap ErrValidation", err)
			}
			if got != tt.want {
				t.Errorf("ValidateTaskTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateEnergy(t *testing.T) {
	for _, level := range []int{0, 1, 3, 5} {
		if err := ValidateEnergy(level); err != nil {
			t.Errorf("ValidateEnergy(%d) unexpected error: %v", level, err)
		}
	}
	for _, level := range []int{-1, 6, 10} {
		if err := ValidateEnergy(level); err == nil {
			t.Errorf("ValidateEnergy(%d) expected error", level)
		}
	}
}

func TestValidateMoodLevel(t *testing.T) {
	if err := ValidateMoodLevel(0); err == nil {
		t.Error("mood level 0 should be rejected")
	}
	if err := ValidateMoodLevel(6); err == nil {
		t.Error("mood level 6 should be rejected")
	}
	if err := ValidateMoodLevel(4); err != nil {
		t.Errorf("mood level 4 rejected: %v", err)
	}
}

func TestValidateGoal(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		target  int
		wantErr bool
	}{
		{"valid", " Run 3 times ", 3, false},
		{"empty text", "  ", 3, true},
		{"zero target", "Read", 0, true},
		{"negative target", "Read", -2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := ValidateGoal(tt.text, tt.target)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateGoal() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && text != strings.TrimSpace(tt.text) {
				t.Errorf("ValidateGoal() text = %q", text)
			}
		})
	}
}

func TestValidatePriorityAndStatus(t *testing.T) {
	if err := ValidatePriority(models.PriorityNotUrgentImportant); err != nil {
		t.Errorf("valid priority rejected: %v", err)
	}
	if err := ValidatePriority("someday"); err == nil {
		t.Error("unknown priority accepted")
	}
	if err := ValidateStatus(models.StatusMoved); err != nil {
		t.Errorf("valid status rejected: %v", err)
	}
	if err := ValidateStatus("blocked"); err == nil {
		t.Error("unknown status accepted")
	}
}

func TestValidateDateRange(t *testing.T) {
	if err := ValidateDateRange("2025-03-01", "2025-03-07"); err != nil {
		t.Errorf("valid range rejected: %v", err)
	}
	if err := ValidateDateRange("2025-03-07", "2025-03-01"); err == nil {
		t.Error("reversed range accepted")
	}
	if err := ValidateDateRange("2025-3-1", "2025-03-07"); err == nil {
		t.Error("malformed start accepted")
	}
}

func TestValidateMinutesAndIndex(t *testing.T) {
	if err := ValidateMinutes(0); err == nil {
		t.Error("zero minutes accepted")
	}
	if err := ValidateMinutes(-15); err == nil {
		t.Error("negative minutes accepted")
	}
	if err := ValidateMinutes(25); err != nil {
		t.Errorf("positive minutes rejected: %v", err)
	}
	if err := ValidateIntentionIndex(3, 3); err == nil {
		t.Error("out of range intention index accepted")
	}
	if err := ValidateIntentionIndex(0, 3); err != nil {
		t.Errorf("valid intention index rejected: %v", err)
	}
}
