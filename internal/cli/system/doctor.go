package system

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/rihla/internal/catalog"
	"github.com/julianstephens/rihla/internal/cli"
	"github.com/julianstephens/rihla/internal/keyring"
	"github.com/julianstephens/rihla/internal/models"
	"github.com/julianstephens/rihla/internal/storage"
	"github.com/julianstephens/rihla/internal/storage/sqlite"
	"github.com/julianstephens/rihla/internal/validation"
)

type DoctorCmd struct{}

// warning marks a check result that is reported but does not fail doctor.
type warning struct{ msg string }

func (w warning) Error() string { return w.msg }

type check struct {
	name string
	run  func(ctx *cli.Context) error
	// needsStore checks are skipped when the store cannot be loaded
	needsStore bool
}

var checks = []check{
	{name: "Store reachable", run: checkStoreReachable},
	{name: "Schema version", run: checkSchemaVersion, needsStore: true},
	{name: "Snapshot integrity", run: checkSnapshotIntegrity, needsStore: true},
	{name: "Data validation", run: checkValidation, needsStore: true},
	{name: "OS keyring", run: checkKeyring},
	{name: "Challenge provider", run: checkChallengeProvider},
	{name: "Clock/timezone", run: func(*cli.Context) error { return checkClockTimezone(time.Now()) }},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	storeOK := true
	for _, c := range checks {
		if c.needsStore && !storeOK {
			fmt.Printf("⊘ %s: SKIPPED (store not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		var w warning
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", c.name)
		case errors.As(err, &w):
			fmt.Printf("⚠ %s: WARNING\n", c.name)
			fmt.Printf("   %s\n", indent(w.msg))
		default:
			fmt.Printf("❌ %s: FAIL\n", c.name)
			fmt.Printf("   Error: %s\n", indent(err.Error()))
			hasError = true
			if c.name == "Store reachable" {
				storeOK = false
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

func indent(s string) string {
	return strings.ReplaceAll(strings.TrimRight(s, "\n"), "\n", "\n   ")
}

func checkStoreReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load store: %w", err)
	}
	if sq, ok := ctx.Store.(*sqlite.Store); ok {
		db := sq.GetDB()
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
	m, ok := ctx.Store.(storage.Migrator)
	if !ok {
		return nil
	}
	current, latest, err := m.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d; run 'rihla migrate'", current, latest)
	}
	return nil
}

func checkSnapshotIntegrity(ctx *cli.Context) error {
	v, ok := ctx.Store.(storage.Verifier)
	if !ok {
		return nil
	}
	bad, err := v.VerifySnapshots()
	if err != nil {
		return fmt.Errorf("failed to verify snapshots: %w", err)
	}
	if len(bad) > 0 {
		return warning{fmt.Sprintf("snapshot(s) edited outside rihla: %s", strings.Join(bad, ", "))}
	}
	return nil
}

// rawSnapshots reads both snapshots without defaults or normalization.
// A missing snapshot validates as the default a fresh store would write.
func rawSnapshots(ctx *cli.Context) (models.Ledger, models.Settings, error) {
	l, err := ctx.Store.GetLedger()
	if errors.Is(err, storage.ErrSnapshotNotFound) {
		l = models.NewLedger()
	} else if err != nil {
		return models.Ledger{}, models.Settings{}, fmt.Errorf("failed to get ledger: %w", err)
	}
	st, err := ctx.Store.GetSettings()
	if errors.Is(err, storage.ErrSnapshotNotFound) {
		st = catalog.DefaultSettings()
	} else if err != nil {
		return models.Ledger{}, models.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}
	return l, st, nil
}

func checkValidation(ctx *cli.Context) error {
	l, st, err := rawSnapshots(ctx)
	if err != nil {
		return err
	}
	result := validation.New().Validate(l, st)
	if result.HasConflicts() {
		return fmt.Errorf("%s", result.FormatReport())
	}
	return nil
}

func checkKeyring(*cli.Context) error {
	if !keyring.IsAvailable() {
		return warning{"OS keyring is not available; use RIHLA_DB_CONNECTION and the API key environment variable instead"}
	}
	return nil
}

func checkChallengeProvider(ctx *cli.Context) error {
	if ctx.Config.ChallengeDisabled {
		return warning{"challenge provider disabled in config; built-in texts are used"}
	}
	if ctx.Config.APIKey() == "" {
		return warning{fmt.Sprintf("no API key in $%s or the keyring; built-in texts are used", ctx.Config.APIKeyEnv)}
	}
	return nil
}

func checkClockTimezone(now time.Time) error {
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}
