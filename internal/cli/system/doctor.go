package system

import (
	"fmt"
	"time"

	"github.com/julianstephens/daycompass/internal/cli"
	"github.com/julianstephens/daycompass/internal/constants"
	"github.com/julianstephens/daycompass/internal/storage"
	"github.com/julianstephens/daycompass/internal/utils"
)

// doctorLookbackDays is how far back data validation scans day records.
const doctorLookbackDays = 28

type DoctorCmd struct{}

type check struct {
	name     string
	fn       func(*cli.Context) error
	warnOnly bool
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	checks := []check{
		{name: "Database reachable", fn: checkDBReachable},
		{name: "Schema version", fn: checkSchemaVersion},
		{name: "Backups present", fn: checkBackupsPresent, warnOnly: true},
		{name: "Data validation", fn: checkValidation},
		{name: "Clock/timezone", fn: checkClockTimezone},
	}

	hasError := false
	reachable := true
	for _, c := range checks {
		if !reachable && c.name != "Clock/timezone" {
			fmt.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.fn(ctx)
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			fmt.Printf("⚠ %s: WARNING\n", c.name)
			fmt.Printf("   %v\n", err)
		default:
			fmt.Printf("❌ %s: FAIL\n", c.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
			if c.name == "Database reachable" {
				reachable = false
			}
		}
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if _, err := ctx.Store.GetSettings(); err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}

	if sqliteStore, ok := ctx.Store.(*storage.SQLiteStore); ok {
		db := sqliteStore.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	sqliteStore, ok := ctx.Store.(*storage.SQLiteStore)
	if !ok {
		// JSON store doesn't have a schema version
		return nil
	}

	st, err := sqliteStore.MigrationStatus()
	if err != nil {
		return err
	}
	if !st.UpToDate() {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run '%s migrate')", st.Current, st.Latest, constants.AppName)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with '%s backup create'", constants.AppName)
	}
	return nil
}

// checkValidation scans recent days and every habit completion for values
// the services would never write.
func checkValidation(ctx *cli.Context) error {
	end := ctx.Today()
	start, err := utils.ShiftDateKey(end, -(doctorLookbackDays - 1))
	if err != nil {
		return err
	}

	days, err := ctx.Store.GetDaysInRange(start, end)
	if err != nil {
		return fmt.Errorf("failed to get days: %w", err)
	}
	taskIDs := make(map[string]bool)
	for _, d := range days {
		if d.Energy < constants.EnergyUnset || d.Energy > constants.EnergyMax {
			return fmt.Errorf("day %s has energy %d outside 0-%d", d.Date, d.Energy, constants.EnergyMax)
		}
		for _, t := range d.Tasks {
			if taskIDs[t.ID] {
				return fmt.Errorf("duplicate task ID found: %s", t.ID)
			}
			taskIDs[t.ID] = true
			if !t.Status.Valid() {
				return fmt.Errorf("task %s on %s has unknown status %q", t.ID, d.Date, t.Status)
			}
			if t.TimeSpent < 0 {
				return fmt.Errorf("task %s on %s has negative time spent", t.ID, d.Date)
			}
		}
	}

	habits, err := ctx.Store.GetAllHabits()
	if err != nil {
		return fmt.Errorf("failed to get habits: %w", err)
	}
	known := make(map[string]bool, len(habits))
	for _, h := range habits {
		known[h.ID] = true
	}
	completions, err := ctx.Store.GetCompletionsInRange(start, end)
	if err != nil {
		return fmt.Errorf("failed to get habit completions: %w", err)
	}
	seen := make(map[string]bool, len(completions))
	for _, c := range completions {
		if !known[c.HabitID] {
			return fmt.Errorf("completion %d references missing habit %s", c.ID, c.HabitID)
		}
		key := c.HabitID + "|" + c.Date
		if seen[key] {
			return fmt.Errorf("habit %s completed twice on %s", c.HabitID, c.Date)
		}
		seen[key] = true
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	loc := ctx.Location()
	now := time.Now()
	if now.Year() < 2020 {
		return fmt.Errorf("system clock looks wrong: %s", now.Format(time.RFC3339))
	}
	_, offset := now.In(loc).Zone()
	if offset%(15*60) != 0 {
		return fmt.Errorf("timezone %s has an unusual UTC offset of %ds", loc, offset)
	}
	return nil
}
