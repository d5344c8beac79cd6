package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"

	"github.com/julianstephens/rihla/internal/logger"
	"github.com/julianstephens/rihla/internal/models"
	"github.com/julianstephens/rihla/internal/storage/snapshot"
)

const jsonStoreVersion = 1

// jsonDocument is the on-disk layout. Snapshots are kept raw so a malformed
// ledger does not prevent settings from loading.
type jsonDocument struct {
	Version  int             `json:"version"`
	Ledger   json.RawMessage `json:"ledger,omitempty"`
	Settings json.RawMessage `json:"settings,omitempty"`
}

// JSONStore keeps both snapshots in one file, replaced atomically on save.
// The file may carry comments and trailing commas.
type JSONStore struct {
	path string
	doc  *jsonDocument
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

// Init creates the store file. Re-running it on an existing file only loads it.
func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return s.Load()
	}

	s.doc = &jsonDocument{Version: jsonStoreVersion}
	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotInitialized
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	std, err := snapshot.Standardize(data)
	if err != nil {
		return err
	}
	doc := &jsonDocument{}
	if err := json.Unmarshal(std, doc); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if doc.Version > jsonStoreVersion {
		return fmt.Errorf("storage version (%d) is newer than supported version (%d) - please upgrade rihla", doc.Version, jsonStoreVersion)
	}
	doc.Version = jsonStoreVersion
	s.doc = doc
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := atomic.WriteFile(s.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Chmod(s.path, 0600); err != nil {
		return fmt.Errorf("failed to set storage permissions: %w", err)
	}
	return nil
}

func isEmpty(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func (s *JSONStore) GetLedger() (models.Ledger, error) {
	if s.doc == nil {
		return models.Ledger{}, ErrNotLoaded
	}
	if isEmpty(s.doc.Ledger) {
		return models.Ledger{}, ErrSnapshotNotFound
	}
	return snapshot.DecodeLedger(s.doc.Ledger)
}

func (s *JSONStore) SaveLedger(l models.Ledger) error {
	if s.doc == nil {
		return ErrNotLoaded
	}
	data, err := snapshot.Encode(l)
	if err != nil {
		return err
	}
	prev := s.doc.Ledger
	s.doc.Ledger = data
	if err := s.save(); err != nil {
		s.doc.Ledger = prev
		logger.Error("Failed to save ledger snapshot", "path", s.path, "error", err)
		return err
	}
	return nil
}

func (s *JSONStore) GetSettings() (models.Settings, error) {
	if s.doc == nil {
		return models.Settings{}, ErrNotLoaded
	}
	if isEmpty(s.doc.Settings) {
		return models.Settings{}, ErrSnapshotNotFound
	}
	return snapshot.DecodeSettings(s.doc.Settings)
}

func (s *JSONStore) SaveSettings(st models.Settings) error {
	if s.doc == nil {
		return ErrNotLoaded
	}
	data, err := snapshot.Encode(st)
	if err != nil {
		return err
	}
	prev := s.doc.Settings
	s.doc.Settings = data
	if err := s.save(); err != nil {
		s.doc.Settings = prev
		logger.Error("Failed to save settings snapshot", "path", s.path, "error", err)
		return err
	}
	return nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

// Exists reports whether the store file is present.
func (s *JSONStore) Exists() bool {
	_, err := os.Stat(s.path)
	return !errors.Is(err, os.ErrNotExist)
}
