// Package sqlite implements the snapshot store on a local SQLite file.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/rihla/internal/constants"
	"github.com/julianstephens/rihla/internal/logger"
	"github.com/julianstephens/rihla/internal/migration"
	"github.com/julianstephens/rihla/internal/models"
	"github.com/julianstephens/rihla/internal/storage/snapshot"
	"github.com/julianstephens/rihla/migrations"
)

type Store struct {
	path string
	db   *sql.DB
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) open() error {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	// one writer; avoids SQLITE_BUSY between the TUI and a concurrent CLI call
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return fmt.Errorf("failed to configure database: %w", err)
	}
	s.db = db
	return nil
}

// Init creates the database file and applies every pending migration.
func (s *Store) Init() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	if s.db == nil {
		if err := s.open(); err != nil {
			return err
		}
	}
	if _, err := s.Migrate(nil); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return snapshot.ErrNotInitialized
	}
	if err := s.open(); err != nil {
		return err
	}

	runner, err := s.runner()
	if err != nil {
		return err
	}
	current, err := runner.GetCurrentVersion()
	if err != nil {
		return err
	}
	if current == 0 {
		return snapshot.ErrNotInitialized
	}
	return runner.ValidateVersion()
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *Store) runner() (*migration.Runner, error) {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	return migration.NewRunner(s.db, subFS, migration.DriverSQLite)
}

// Migrate applies pending schema migrations.
func (s *Store) Migrate(logFn func(string)) (int, error) {
	if s.db == nil {
		return 0, snapshot.ErrNotLoaded
	}
	runner, err := s.runner()
	if err != nil {
		return 0, err
	}
	return runner.ApplyMigrations(logFn)
}

// SchemaVersion reports the stored and latest embedded schema versions.
func (s *Store) SchemaVersion() (int, int, error) {
	if s.db == nil {
		return 0, 0, snapshot.ErrNotLoaded
	}
	runner, err := s.runner()
	if err != nil {
		return 0, 0, err
	}
	current, err := runner.GetCurrentVersion()
	if err != nil {
		return 0, 0, err
	}
	latest, err := runner.GetLatestVersion()
	if err != nil {
		return 0, 0, err
	}
	return current, latest, nil
}

func (s *Store) getSnapshot(name string) ([]byte, error) {
	if s.db == nil {
		return nil, snapshot.ErrNotLoaded
	}
	var payload string
	err := s.db.QueryRow("SELECT payload FROM snapshots WHERE name = ?", name).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, snapshot.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read %s snapshot: %w", name, err)
	}
	return []byte(payload), nil
}

func (s *Store) putSnapshot(name string, v any) error {
	if s.db == nil {
		return snapshot.ErrNotLoaded
	}
	data, err := snapshot.Encode(v)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT INTO snapshots (name, payload, updated_at, checksum)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at,
			checksum = excluded.checksum`,
		name, string(data), time.Now().UTC().Format(time.RFC3339), snapshot.Checksum(data))
	if err != nil {
		logger.Error("Failed to save snapshot", "name", name, "error", err)
		return fmt.Errorf("failed to save %s snapshot: %w", name, err)
	}
	return nil
}

func (s *Store) GetLedger() (models.Ledger, error) {
	data, err := s.getSnapshot(constants.LedgerSnapshot)
	if err != nil {
		return models.Ledger{}, err
	}
	return snapshot.DecodeLedger(data)
}

func (s *Store) SaveLedger(l models.Ledger) error {
	return s.putSnapshot(constants.LedgerSnapshot, l)
}

func (s *Store) GetSettings() (models.Settings, error) {
	data, err := s.getSnapshot(constants.SettingsSnapshot)
	if err != nil {
		return models.Settings{}, err
	}
	return snapshot.DecodeSettings(data)
}

func (s *Store) SaveSettings(st models.Settings) error {
	return s.putSnapshot(constants.SettingsSnapshot, st)
}

// VerifySnapshots lists snapshots whose payload no longer matches its checksum.
func (s *Store) VerifySnapshots() ([]string, error) {
	if s.db == nil {
		return nil, snapshot.ErrNotLoaded
	}
	rows, err := s.db.Query("SELECT name, payload, checksum FROM snapshots ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bad []string
	for rows.Next() {
		var name, payload, checksum string
		if err := rows.Scan(&name, &payload, &checksum); err != nil {
			return nil, err
		}
		if checksum != "" && checksum != snapshot.Checksum([]byte(payload)) {
			bad = append(bad, name)
		}
	}
	return bad, rows.Err()
}

func (s *Store) GetConfigPath() string {
	return s.path
}

func (s *Store) GetDB() *sql.DB {
	return s.db
}
