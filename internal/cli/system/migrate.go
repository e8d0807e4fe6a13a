package system

import (
	"fmt"

	"github.com/julianstephens/daycompass/internal/cli"
	"github.com/julianstephens/daycompass/internal/storage"
)

type MigrateCmd struct {
	Status bool `help:"Only report the schema version and pending migrations."`
}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	sqliteStore, ok := ctx.Store.(*storage.SQLiteStore)
	if !ok {
		return fmt.Errorf("migrate command only supports SQLite storage")
	}

	if c.Status {
		st, err := sqliteStore.MigrationStatus()
		if err != nil {
			return fmt.Errorf("failed to read schema version: %w", err)
		}
		fmt.Printf("Schema version: %d (latest %d)\n", st.Current, st.Latest)
		for _, m := range st.Pending {
			fmt.Printf("  pending: %03d_%s\n", m.Version, m.Name)
		}
		if st.UpToDate() {
			fmt.Println("Database is up to date.")
		}
		return nil
	}

	// Take a backup before touching the schema
	ctx.PerformAutomaticBackup()

	count, err := sqliteStore.Migrate(func(msg string) {
		fmt.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		fmt.Println("No migrations to apply. Database is up to date.")
	} else {
		fmt.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}
	return nil
}
