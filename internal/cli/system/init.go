package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/rihla/internal/cli"
	"github.com/julianstephens/rihla/internal/storage"
	"github.com/julianstephens/rihla/internal/storage/sqlite"
)

type InitCmd struct {
	Force  bool   `help:"Delete an existing store file before initialization."`
	Source string `help:"Store path or connection string to copy the ledger and settings from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	path := ctx.Store.GetConfigPath()
	fileBacked := false
	switch ctx.Store.(type) {
	case *storage.JSONStore, *sqlite.Store:
		fileBacked = true
	}

	if c.Force && fileBacked {
		if c.Source != "" {
			absPath, _ := filepath.Abs(path)
			absSource, _ := filepath.Abs(c.Source)
			if absPath == absSource {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", path)
			}
		}
		if _, err := os.Stat(path); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing store: %w", err)
			}
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to delete existing store: %w", err)
			}
			fmt.Printf("Deleted existing store at: %s\n", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing store: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized rihla storage at: %s\n", path)

	if c.Source != "" {
		fmt.Printf("Copying data from: %s\n", c.Source)
		if err := copySnapshots(ctx.Store, c.Source); err != nil {
			return fmt.Errorf("copy failed: %w", err)
		}
		fmt.Println("Copy completed successfully!")
	}

	return ctx.Seed()
}

// copySnapshots replaces the destination's snapshots with the source's.
// Missing source snapshots are skipped.
func copySnapshots(dst storage.Provider, source string) error {
	if err := storage.ValidateTarget(source); err != nil {
		if errors.Is(err, storage.ErrEmbeddedCredentials) {
			return fmt.Errorf("PostgreSQL source connection string contains embedded credentials. Use environment variables or .pgpass instead")
		}
		return err
	}
	src, err := storage.Open(source)
	if err != nil {
		return err
	}
	if err := src.Load(); err != nil {
		return fmt.Errorf("failed to load source store: %w", err)
	}
	defer src.Close()

	fmt.Println("  Copying ledger...")
	l, err := src.GetLedger()
	switch {
	case errors.Is(err, storage.ErrSnapshotNotFound):
		fmt.Println("    (none)")
	case err != nil:
		return fmt.Errorf("failed to get ledger from source: %w", err)
	default:
		if err := dst.SaveLedger(l); err != nil {
			return fmt.Errorf("failed to save ledger to destination: %w", err)
		}
	}

	fmt.Println("  Copying settings...")
	st, err := src.GetSettings()
	switch {
	case errors.Is(err, storage.ErrSnapshotNotFound):
		fmt.Println("    (none)")
	case err != nil:
		return fmt.Errorf("failed to get settings from source: %w", err)
	default:
		if err := dst.SaveSettings(st); err != nil {
			return fmt.Errorf("failed to save settings to destination: %w", err)
		}
	}
	return nil
}
