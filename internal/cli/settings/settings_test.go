package settings

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/julianstephens/daycompass/internal/cli"
	apperrors "github.com/julianstephens/daycompass/internal/errors"
	"github.com/julianstephens/daycompass/internal/storage"
)

func setupTestDB(t *testing.T) (*cli.Context, func()) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "test.db")

	store := storage.NewSQLiteStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}

	ctx := &cli.Context{Store: store}

	cleanup := func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	}

	return ctx, cleanup
}

func categories(t *testing.T, ctx *cli.Context) []string {
	t.Helper()
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("failed to get settings: %v", err)
	}
	return settings.Categories
}

func TestSettingsShowCmd(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	if err := (&SettingsShowCmd{}).Run(ctx); err != nil {
		t.Errorf("settings show failed: %v", err)
	}
}

func TestSettingsTimezoneCmd(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	if err := (&SettingsTimezoneCmd{Name: "Europe/Berlin"}).Run(ctx); err != nil {
		t.Fatalf("settings timezone failed: %v", err)
	}
	settings, _ := ctx.Store.GetSettings()
	if settings.Timezone != "Europe/Berlin" {
		t.Errorf("timezone = %q, want Europe/Berlin", settings.Timezone)
	}
	if got := ctx.Location().String(); got != "Europe/Berlin" {
		t.Errorf("context location = %q, want Europe/Berlin", got)
	}

	err := (&SettingsTimezoneCmd{Name: "Mars/Olympus"}).Run(ctx)
	if !apperrors.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestCategoriesAddRemove(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	initial := categories(t, ctx)

	if err := (&CategoriesAddCmd{Name: " Reading "}).Run(ctx); err != nil {
		t.Fatalf("categories add failed: %v", err)
	}
	got := categories(t, ctx)
	if len(got) != len(initial)+1 || got[len(got)-1] != "Reading" {
		t.Errorf("categories after add = %v", got)
	}

	if err := (&CategoriesAddCmd{Name: "Reading"}).Run(ctx); !apperrors.IsValidation(err) {
		t.Errorf("expected validation error for duplicate, got %v", err)
	}

	if err := (&CategoriesRemoveCmd{Name: "Reading"}).Run(ctx); err != nil {
		t.Fatalf("categories remove failed: %v", err)
	}
	if got := categories(t, ctx); !reflect.DeepEqual(got, initial) {
		t.Errorf("categories after remove = %v, want %v", got, initial)
	}

	if err := (&CategoriesRemoveCmd{Name: "Reading"}).Run(ctx); !apperrors.IsNotFound(err) {
		t.Errorf("expected not found removing twice, got %v", err)
	}
}

func TestCategoriesReorder(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	initial := categories(t, ctx)
	reversed := make([]string, len(initial))
	for i, c := range initial {
		reversed[len(initial)-1-i] = c
	}

	if err := (&CategoriesReorderCmd{Names: reversed}).Run(ctx); err != nil {
		t.Fatalf("categories reorder failed: %v", err)
	}
	if got := categories(t, ctx); !reflect.DeepEqual(got, reversed) {
		t.Errorf("categories = %v, want %v", got, reversed)
	}

	if err := (&CategoriesReorderCmd{Names: reversed[:2]}).Run(ctx); !apperrors.IsValidation(err) {
		t.Errorf("expected validation error for partial order, got %v", err)
	}
}
