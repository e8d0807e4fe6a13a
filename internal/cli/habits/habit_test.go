package habits

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/daycompass/internal/cli"
	apperrors "github.com/julianstephens/daycompass/internal/errors"
	tracker "github.com/julianstephens/daycompass/internal/habits"
	"github.com/julianstephens/daycompass/internal/storage"
)

func setupTestDB(t *testing.T) *cli.Context {
	t.Helper()
	store := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return &cli.Context{Store: store}
}

func addHabit(t *testing.T, ctx *cli.Context, name string) {
	t.Helper()
	if err := (&HabitAddCmd{Name: name, Emoji: "🏃", Color: "#00FF00"}).Run(ctx); err != nil {
		t.Fatalf("habit add failed: %v", err)
	}
}

func TestHabitAddCmd_RejectsDuplicateName(t *testing.T) {
	ctx := setupTestDB(t)
	addHabit(t, ctx, "Run")

	if err := (&HabitAddCmd{Name: "run"}).Run(ctx); err == nil {
		t.Error("expected duplicate habit name to be rejected")
	}
	if err := (&HabitAddCmd{Name: "   "}).Run(ctx); !apperrors.IsValidation(err) {
		t.Errorf("expected validation error for blank name, got %v", err)
	}
}

func TestHabitAddCmd_NameMatchingIDPrefix(t *testing.T) {
	ctx := setupTestDB(t)
	addHabit(t, ctx, "Run")
	habits, _ := ctx.Store.GetAllHabits()

	name := habits[0].ID[:1]
	if err := (&HabitAddCmd{Name: name}).Run(ctx); err != nil {
		t.Fatalf("habit named %q rejected: %v", name, err)
	}
	if habits, _ := ctx.Store.GetAllHabits(); len(habits) != 2 {
		t.Errorf("habits = %d, want 2", len(habits))
	}
}

func TestHabitToggleCmd_StreakAcrossDays(t *testing.T) {
	ctx := setupTestDB(t)
	addHabit(t, ctx, "Run")

	for _, date := range []string{"2025-03-08", "2025-03-09", "2025-03-10"} {
		if err := (&HabitToggleCmd{Name: "Run", Date: date}).Run(ctx); err != nil {
			t.Fatalf("toggle %s failed: %v", date, err)
		}
	}

	habits, _ := ctx.Store.GetAllHabits()
	completions, err := ctx.Store.GetCompletionsForHabit(habits[0].ID, "2025-03-01", "2025-03-31")
	if err != nil {
		t.Fatalf("GetCompletionsForHabit failed: %v", err)
	}
	if len(completions) != 3 {
		t.Fatalf("completions = %d, want 3", len(completions))
	}

	tr := ctx.Habits()
	streak, err := tr.Streak(habits[0].ID, "2025-03-10")
	if err != nil {
		t.Fatalf("Streak failed: %v", err)
	}
	if streak != 3 {
		t.Errorf("streak = %d, want 3", streak)
	}

	// toggling again removes the completion
	if err := (&HabitToggleCmd{Name: "Run", Date: "2025-03-09"}).Run(ctx); err != nil {
		t.Fatalf("untoggle failed: %v", err)
	}
	if err := tr.LoadCompletions("2025-03-01", "2025-03-10"); err != nil {
		t.Fatalf("LoadCompletions failed: %v", err)
	}
	if streak, _ := tr.Streak(habits[0].ID, "2025-03-10"); streak != 1 {
		t.Errorf("streak after untoggle = %d, want 1", streak)
	}
}

func TestHabitToggleCmd_UnknownHabit(t *testing.T) {
	ctx := setupTestDB(t)

	err := (&HabitToggleCmd{Name: "Swim", Date: "2025-03-10"}).Run(ctx)
	if !apperrors.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestHabitReportCommands(t *testing.T) {
	ctx := setupTestDB(t)
	addHabit(t, ctx, "Meditate")
	addHabit(t, ctx, "A habit with a very long descriptive name")

	if err := (&HabitToggleCmd{Name: "Meditate", Date: "2025-03-10"}).Run(ctx); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if err := (&HabitListCmd{Date: "2025-03-10"}).Run(ctx); err != nil {
		t.Errorf("habit list failed: %v", err)
	}
	if err := (&HabitStreakCmd{Name: "Meditate", Date: "2025-03-10"}).Run(ctx); err != nil {
		t.Errorf("habit streak failed: %v", err)
	}
	if err := (&HabitLogCmd{Days: 14, Date: "2025-03-10"}).Run(ctx); err != nil {
		t.Errorf("habit log failed: %v", err)
	}
	if err := (&HabitLogCmd{Days: 0}).Run(ctx); err == nil {
		t.Error("expected error for --days 0")
	}
}

func TestHabitRemoveCmd_CascadesCompletions(t *testing.T) {
	ctx := setupTestDB(t)
	addHabit(t, ctx, "Run")
	if err := (&HabitToggleCmd{Name: "Run", Date: "2025-03-10"}).Run(ctx); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}

	if err := (&HabitRemoveCmd{Name: "Run"}).Run(ctx); err != nil {
		t.Fatalf("habit remove failed: %v", err)
	}
	habits, _ := ctx.Store.GetAllHabits()
	if len(habits) != 0 {
		t.Errorf("habits after remove = %d, want 0", len(habits))
	}
	completions, _ := ctx.Store.GetCompletionsInRange("2025-03-01", "2025-03-31")
	if len(completions) != 0 {
		t.Errorf("completions after remove = %d, want 0", len(completions))
	}
}

func TestLogRowAndHeader(t *testing.T) {
	cells := []tracker.Cell{
		{Date: "2025-03-09", Filled: true},
		{Date: "2025-03-10", Filled: false},
	}

	row := logRow("A habit with a very long descriptive name", cells)
	if got, want := len([]rune(row)), logNameWidth+6*len(cells); got != want {
		t.Errorf("row width = %d, want %d", got, want)
	}
	if !strings.Contains(row, "...") {
		t.Errorf("long name not truncated: %q", row)
	}
	if !strings.HasSuffix(row, "  x     .   ") {
		t.Errorf("row markers = %q", row)
	}

	header := logHeader(cells)
	if !strings.Contains(header, "03/09") || !strings.Contains(header, "03/10") {
		t.Errorf("header missing dates: %q", header)
	}
}
