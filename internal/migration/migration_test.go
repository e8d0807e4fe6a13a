package migration

import (
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func memFS(files map[string]string) fstest.MapFS {
	m := fstest.MapFS{}
	for name, content := range files {
		m[name] = &fstest.MapFile{Data: []byte(content)}
	}
	return m
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", name).Scan(&n); err != nil {
		t.Fatalf("query failed: %v", err)
	}
	return n == 1
}

func TestGetCurrentVersion(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, memFS(map[string]string{
		"001_days.sql": "CREATE TABLE days (date TEXT);",
	}))

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 0 {
		t.Errorf("expected version 0, got %d", version)
	}

	if err := runner.setVersion(5); err != nil {
		t.Fatalf("setVersion failed: %v", err)
	}
	version, err = runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 5 {
		t.Errorf("expected version 5, got %d", version)
	}
}

func TestReadMigrationFiles(t *testing.T) {
	runner := NewRunner(setupTestDB(t), memFS(map[string]string{
		"002_moods.sql":   "CREATE TABLE moods (id INTEGER);",
		"001_init.sql":    "CREATE TABLE days (date TEXT);",
		"003_habits.sql":  "CREATE TABLE habits (id TEXT);",
		"README.md":       "ignored",
		"010_goals.sql":   "CREATE TABLE weekly_goals (id TEXT);",
		"004_journal.sql": "CREATE TABLE journals (date TEXT);",
	}))

	migrations, err := runner.ReadMigrationFiles()
	if err != nil {
		t.Fatalf("ReadMigrationFiles failed: %v", err)
	}

	want := []struct {
		version int
		name    string
	}{{1, "init"}, {2, "moods"}, {3, "habits"}, {4, "journal"}, {10, "goals"}}
	if len(migrations) != len(want) {
		t.Fatalf("expected %d migrations, got %d", len(want), len(migrations))
	}
	for i, w := range want {
		if migrations[i].Version != w.version || migrations[i].Name != w.name {
			t.Errorf("migration %d = (%d, %q), want (%d, %q)", i, migrations[i].Version, migrations[i].Name, w.version, w.name)
		}
	}
}

func TestApplyMigrationsFromScratch(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, memFS(map[string]string{
		"001_init.sql":  "CREATE TABLE days (date TEXT PRIMARY KEY, energy INTEGER);",
		"002_moods.sql": "CREATE TABLE moods (id INTEGER PRIMARY KEY AUTOINCREMENT, date TEXT);",
	}))

	var logged []string
	count, err := runner.ApplyMigrations(func(s string) { logged = append(logged, s) })
	if err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 migrations applied, got %d", count)
	}
	if len(logged) == 0 {
		t.Error("expected progress messages")
	}

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 2 {
		t.Errorf("expected version 2, got %d", version)
	}
	if !tableExists(t, db, "days") || !tableExists(t, db, "moods") {
		t.Error("tables were not created")
	}
}

func TestApplyMigrationsIncremental(t *testing.T) {
	db := setupTestDB(t)
	files := memFS(map[string]string{
		"001_init.sql": "CREATE TABLE days (date TEXT PRIMARY KEY);",
	})
	runner := NewRunner(db, files)

	count, err := runner.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("ApplyMigrations (1st) failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 migration applied, got %d", count)
	}

	files["002_habits.sql"] = &fstest.MapFile{Data: []byte("CREATE TABLE habits (id TEXT PRIMARY KEY);")}

	st, err := runner.Status()
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if st.UpToDate() || len(st.Pending) != 1 || st.Latest != 2 {
		t.Errorf("unexpected status %+v", st)
	}

	count, err = runner.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("ApplyMigrations (2nd) failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 more migration applied, got %d", count)
	}
	if !tableExists(t, db, "habits") {
		t.Error("habits table was not created")
	}
}

func TestApplyMigrationsNoOp(t *testing.T) {
	runner := NewRunner(setupTestDB(t), memFS(map[string]string{
		"001_init.sql": "CREATE TABLE days (date TEXT PRIMARY KEY);",
	}))

	if _, err := runner.ApplyMigrations(nil); err != nil {
		t.Fatalf("ApplyMigrations (1st) failed: %v", err)
	}
	count, err := runner.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("ApplyMigrations (2nd) failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 migrations applied on second run, got %d", count)
	}
}

func TestMigrationRollbackOnError(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, memFS(map[string]string{
		"001_init.sql": `
			CREATE TABLE days (date TEXT PRIMARY KEY);
			THIS IS INVALID SQL;
		`,
	}))

	if _, err := runner.ApplyMigrations(nil); err == nil {
		t.Fatal("ApplyMigrations should have failed with invalid SQL")
	}

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 0 {
		t.Errorf("expected version 0 after failed migration, got %d", version)
	}
	if tableExists(t, db, "days") {
		t.Error("table should not exist after failed migration")
	}
}

func TestValidateVersionNewerDatabase(t *testing.T) {
	runner := NewRunner(setupTestDB(t), memFS(map[string]string{
		"001_init.sql": "CREATE TABLE days (date TEXT PRIMARY KEY);",
	}))

	if err := runner.setVersion(10); err != nil {
		t.Fatalf("setVersion failed: %v", err)
	}
	if err := runner.ValidateVersion(); err == nil {
		t.Fatal("ValidateVersion should have failed with newer database version")
	}
	if _, err := runner.ApplyMigrations(nil); err == nil {
		t.Fatal("ApplyMigrations should have failed with newer database version")
	}
}

func TestInvalidMigrationFiles(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		wantErr string
	}{
		{"missing underscore", map[string]string{"001init.sql": "SELECT 1;"}, "invalid migration filename"},
		{"zero version", map[string]string{"000_init.sql": "SELECT 1;"}, "version must be at least 1"},
		{"non numeric", map[string]string{"abc_init.sql": "SELECT 1;"}, "invalid version number"},
		{"duplicate", map[string]string{"001_init.sql": "SELECT 1;", "001_other.sql": "SELECT 2;"}, "duplicate migration version"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := NewRunner(setupTestDB(t), memFS(tt.files))
			_, err := runner.ReadMigrationFiles()
			if err == nil {
				t.Fatal("ReadMigrationFiles should have failed")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}
