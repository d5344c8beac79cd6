package storage

import (
	"github.com/julianstephens/rihla/internal/models"
	"github.com/julianstephens/rihla/internal/storage/snapshot"
)

var (
	ErrSnapshotNotFound = snapshot.ErrNotFound
	ErrNotInitialized   = snapshot.ErrNotInitialized
	ErrNotLoaded        = snapshot.ErrNotLoaded
)

// Provider persists the two independent snapshots: the progress ledger and
// the user settings. Each Save replaces the whole snapshot.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Ledger
	GetLedger() (models.Ledger, error)
	SaveLedger(models.Ledger) error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Utils
	GetConfigPath() string
}

// Migrator is implemented by the SQL backends.
type Migrator interface {
	// Migrate applies pending schema migrations and returns how many ran.
	Migrate(logFn func(string)) (int, error)
	// SchemaVersion reports the stored and the latest embedded version.
	SchemaVersion() (current, latest int, err error)
}

// Verifier is implemented by stores that keep a checksum per snapshot.
type Verifier interface {
	// VerifySnapshots returns the names of snapshots whose payload no longer
	// matches the stored checksum.
	VerifySnapshots() ([]string, error)
}
