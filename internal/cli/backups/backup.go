package backups

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/julianstephens/daycompass/internal/backup"
	"github.com/julianstephens/daycompass/internal/cli"
	"github.com/julianstephens/daycompass/internal/constants"
)

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}
	// debounced day and journal edits belong in the snapshot
	if err := ctx.Flush(); err != nil {
		return err
	}
	path, err := mgr.CreateBackup()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}
	fmt.Printf("✓ Snapshot written to %s\n", path)
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}
	list, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(list) == 0 {
		fmt.Printf("No snapshots in %s yet. Run 'daycompass backup' to take one.\n", mgr.GetBackupDir())
		return nil
	}
	fmt.Println(backupTable(list, ctx).Render())
	fmt.Printf("%d of %d slots used in %s\n", len(list), constants.MaxBackups, mgr.GetBackupDir())
	return nil
}

// backupTable lists snapshots newest first; the first row is what
// 'backup restore latest' picks.
func backupTable(list []backup.BackupInfo, ctx *cli.Context) *table.Table {
	loc := ctx.Location()
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "Taken", "File", "Size")
	for i, b := range list {
		t.Row(
			fmt.Sprint(i+1),
			b.Timestamp.In(loc).Format(constants.DateFormat+" "+constants.TimeFormat),
			b.Name,
			humanSize(b.Size),
		)
	}
	return t
}

func humanSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" help:"Snapshot to restore: a path, a file name in the backup directory, or 'latest'."`
	Yes        bool   `help:"Skip the confirmation prompt." short:"y"`

	in io.Reader `kong:"-"`
}

// resolve prefers an existing path over a name in the backup directory.
func (c *BackupRestoreCmd) resolve(mgr *backup.Manager) (string, error) {
	if c.BackupFile != "latest" {
		if _, err := os.Stat(c.BackupFile); err == nil {
			return filepath.Abs(c.BackupFile)
		}
	}
	path, err := mgr.Resolve(c.BackupFile)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("no snapshot %q in the working directory or %s", c.BackupFile, mgr.GetBackupDir())
	}
	return path, nil
}

func (c *BackupRestoreCmd) confirm(path string) (bool, error) {
	fmt.Printf("Replace the current database with %s?\n", filepath.Base(path))
	fmt.Println("Quit any running 'daycompass tui' first. The current database is snapshotted before it is replaced.")
	fmt.Print("Restore? [y/N]: ")

	in := c.in
	if in == nil {
		in = os.Stdin
	}
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}
	path, err := c.resolve(mgr)
	if err != nil {
		return fmt.Errorf("failed to resolve backup: %w", err)
	}

	if !c.Yes {
		ok, err := c.confirm(path)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Restore cancelled.")
			return nil
		}
	}

	// pending edits land in the current database, which the safety snapshot keeps
	if err := ctx.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to flush pending edits: %v\n", err)
	}
	if err := ctx.Store.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to close database connection: %v\n", err)
	}

	safety, err := mgr.RestoreBackup(path)
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}
	fmt.Printf("✓ Restored %s\n", filepath.Base(path))
	if safety != "" {
		fmt.Printf("  Previous database kept as %s\n", filepath.Base(safety))
	}
	return nil
}
