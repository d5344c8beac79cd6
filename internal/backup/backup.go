// Package backup keeps rotating copies of a file-backed snapshot store.
package backup

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/natefinch/atomic"
	_ "modernc.org/sqlite"

	"github.com/julianstephens/rihla/internal/logger"
	"github.com/julianstephens/rihla/internal/storage"
)

const (
	// MaxBackups is the number of backups kept after rotation.
	MaxBackups = 14
	// BackupDirName is created next to the store file.
	BackupDirName    = "backups"
	BackupFilePrefix = "rihla-"

	minuteLayout = "20060102-1504"
	secondLayout = "20060102-150405"
)

var ErrUnsupportedStore = errors.New("backups are only available for JSON and SQLite stores")

type BackupInfo struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager backs up a single JSON or SQLite store file.
type Manager struct {
	storePath string
	backupDir string
	kind      storage.Kind
	now       func() time.Time
}

type Option func(*Manager)

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager returns a manager for the store at storePath. Backups live in
// a "backups" directory beside it.
func NewManager(storePath string, opts ...Option) (*Manager, error) {
	kind := storage.KindOf(storePath)
	if kind != storage.KindJSON && kind != storage.KindSQLite {
		return nil, ErrUnsupportedStore
	}
	m := &Manager{
		storePath: storePath,
		backupDir: filepath.Join(filepath.Dir(storePath), BackupDirName),
		kind:      kind,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

func (m *Manager) suffix() string {
	if m.kind == storage.KindSQLite {
		return ".db"
	}
	return ".json"
}

// CreateBackup copies the store into a new timestamped file and rotates
// old backups.
func (m *Manager) CreateBackup() (string, error) {
	return m.createBackup(false)
}

func (m *Manager) createBackup(skipRotation bool) (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}
	if _, err := os.Stat(m.storePath); os.IsNotExist(err) {
		return "", fmt.Errorf("store does not exist: %s", m.storePath)
	}

	backupPath, err := m.nextName()
	if err != nil {
		return "", err
	}

	if m.kind == storage.KindSQLite {
		err = m.backupDatabase(backupPath)
	} else {
		err = m.backupJSON(backupPath)
	}
	if err != nil {
		return "", fmt.Errorf("failed to back up store: %w", err)
	}

	if !skipRotation {
		if err := m.rotateBackups(); err != nil {
			logger.Warn("Failed to rotate old backups", "dir", m.backupDir, "error", err)
		}
	}

	logger.Info("Store backed up", "path", backupPath)
	return backupPath, nil
}

// nextName picks minute precision and falls back to seconds, then a counter.
func (m *Manager) nextName() (string, error) {
	now := m.now()
	path := filepath.Join(m.backupDir, BackupFilePrefix+now.Format(minuteLayout)+m.suffix())
	if !exists(path) {
		return path, nil
	}

	stamp := now.Format(secondLayout)
	path = filepath.Join(m.backupDir, BackupFilePrefix+stamp+m.suffix())
	for counter := 1; exists(path); counter++ {
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
		path = filepath.Join(m.backupDir, fmt.Sprintf("%s%s-%d%s", BackupFilePrefix, stamp, counter, m.suffix()))
	}
	return path, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (m *Manager) backupDatabase(dest string) error {
	src, err := sql.Open("sqlite", m.storePath+"?mode=ro")
	if err != nil {
		return fmt.Errorf("failed to open source database: %w", err)
	}
	defer src.Close()

	var count int
	if err := src.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count); err != nil {
		return fmt.Errorf("source database appears to be corrupted: %w", err)
	}

	if _, err := src.Exec("VACUUM INTO ?", dest); err != nil {
		logger.Debug("VACUUM INTO failed, copying file", "error", err)
		_ = src.Close()
		return copyFile(m.storePath, dest)
	}
	return nil
}

func (m *Manager) backupJSON(dest string) error {
	if err := verifyJSON(m.storePath); err != nil {
		return fmt.Errorf("source store appears to be corrupted: %w", err)
	}
	return copyFile(m.storePath, dest)
}

// ListBackups returns the backups of this store kind, newest first.
func (m *Manager) ListBackups() ([]BackupInfo, error) {
	entries, err := os.ReadDir(m.backupDir)
	if os.IsNotExist(err) {
		return []BackupInfo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []BackupInfo
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, BackupFilePrefix) || !strings.HasSuffix(name, m.suffix()) {
			continue
		}
		ts, ok := parseStamp(strings.TrimSuffix(strings.TrimPrefix(name, BackupFilePrefix), m.suffix()))
		if !ok {
			continue
		}
		path := filepath.Join(m.backupDir, name)
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		backups = append(backups, BackupInfo{Path: path, Timestamp: ts, Size: info.Size()})
	}

	slices.SortStableFunc(backups, func(a, b BackupInfo) int {
		if c := b.Timestamp.Compare(a.Timestamp); c != 0 {
			return c
		}
		return strings.Compare(b.Path, a.Path)
	})
	return backups, nil
}

// parseStamp accepts YYYYMMDD-HHMM or YYYYMMDD-HHMMSS with an optional -N counter.
func parseStamp(s string) (time.Time, bool) {
	if parts := strings.Split(s, "-"); len(parts) == 3 {
		s = parts[0] + "-" + parts[1]
	}
	for _, layout := range []string{minuteLayout, secondLayout} {
		if ts, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}
	for i := MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

// RestoreBackup replaces the store with a backup. The current store is
// backed up first. SQLite stores must be closed by the caller.
func (m *Manager) RestoreBackup(backupPath string) (string, error) {
	if !exists(backupPath) {
		return "", fmt.Errorf("backup file does not exist: %s", backupPath)
	}
	if err := m.verify(backupPath); err != nil {
		return "", fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	var previous string
	if exists(m.storePath) {
		var err error
		if previous, err = m.createBackup(true); err != nil {
			return "", fmt.Errorf("failed to back up current store before restore: %w", err)
		}
	}

	data, err := os.ReadFile(backupPath)
	if err != nil {
		return "", fmt.Errorf("failed to read backup file: %w", err)
	}
	if err := atomic.WriteFile(m.storePath, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("failed to restore store: %w", err)
	}
	if err := os.Chmod(m.storePath, 0600); err != nil {
		return "", fmt.Errorf("failed to set store permissions: %w", err)
	}

	logger.Info("Store restored", "from", backupPath, "previous", previous)
	return previous, nil
}

func (m *Manager) verify(path string) error {
	if m.kind == storage.KindJSON {
		return verifyJSON(path)
	}
	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return err
	}
	defer db.Close()

	var count int
	return db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count)
}

// verifyJSON loads the file as a JSON store.
func verifyJSON(path string) error {
	return storage.NewJSONStore(path).Load()
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return atomic.WriteFile(dst, bytes.NewReader(data))
}
