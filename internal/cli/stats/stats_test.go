package stats

import (
	"path/filepath"
	"testing"

	"github.com/julianstephens/daycompass/internal/analytics"
	"github.com/julianstephens/daycompass/internal/cli"
	"github.com/julianstephens/daycompass/internal/models"
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

func seedDay(t *testing.T, ctx *cli.Context, date string, energy int, tasks ...models.Task) {
	t.Helper()
	day := models.EmptyDay(date)
	day.Energy = energy
	day.Tasks = tasks
	if err := ctx.Store.SaveDay(day); err != nil {
		t.Fatalf("SaveDay failed: %v", err)
	}
}

func TestStatsCommands(t *testing.T) {
	ctx := setupTestDB(t)

	seedDay(t, ctx, "2025-03-03", 2,
		models.Task{ID: "p1", Title: "Old", Category: "Coding", Status: models.StatusDropped, Priority: models.PriorityNotUrgentImportant},
	)
	seedDay(t, ctx, "2025-03-10", 4,
		models.Task{ID: "t1", Title: "Write", Category: "Coding", Status: models.StatusDone, TimeSpent: 50, Priority: models.PriorityUrgentImportant},
		models.Task{ID: "t2", Title: "Call", Category: "Admin", Status: models.StatusNotStarted, Obstacle: "meetings", Priority: models.PriorityNotUrgentImportant},
	)

	tests := []struct {
		name string
		err  error
	}{
		{"week", (&StatsWeekCmd{Date: "2025-03-12"}).Run(ctx)},
		{"week json", (&StatsWeekCmd{Date: "2025-03-12", JSON: true}).Run(ctx)},
		{"week tasks", (&StatsWeekCmd{Date: "2025-03-12", Tasks: true}).Run(ctx)},
		{"compare", (&StatsCompareCmd{Date: "2025-03-12"}).Run(ctx)},
		{"compare json", (&StatsCompareCmd{Date: "2025-03-12", JSON: true}).Run(ctx)},
		{"empty week", (&StatsWeekCmd{Date: "2024-01-01"}).Run(ctx)},
	}
	for _, tt := range tests {
		if tt.err != nil {
			t.Errorf("%s failed: %v", tt.name, tt.err)
		}
	}

	if err := (&StatsWeekCmd{Date: "12/03/2025"}).Run(ctx); err == nil {
		t.Error("expected error for invalid date")
	}
}

func TestPrintComparison_NoPreviousWeek(t *testing.T) {
	ctx := setupTestDB(t)
	seedDay(t, ctx, "2025-03-10", 3)

	anchor, err := ctx.ResolveAnchor("2025-03-10")
	if err != nil {
		t.Fatalf("ResolveAnchor failed: %v", err)
	}
	report := analytics.BuildReport(ctx.Store, anchor)
	if report.Comparison != nil {
		t.Fatalf("comparison = %+v, want nil without a previous week", report.Comparison)
	}
	PrintComparison(report)
}
