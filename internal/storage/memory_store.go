package storage

import (
	"github.com/julianstephens/rihla/internal/constants"
	"github.com/julianstephens/rihla/internal/models"
	"github.com/julianstephens/rihla/internal/storage/snapshot"
)

// MemoryTarget selects the MemoryStore from the --store flag.
const MemoryTarget = ":memory:"

// MemoryStore keeps encoded snapshots in memory for ephemeral sessions.
// Snapshots go through the same codec as the persistent stores.
type MemoryStore struct {
	loaded    bool
	snapshots map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init() error {
	if s.snapshots == nil {
		s.snapshots = make(map[string][]byte)
	}
	s.loaded = true
	return nil
}

func (s *MemoryStore) Load() error { return s.Init() }

func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) get(name string) ([]byte, error) {
	if !s.loaded {
		return nil, ErrNotLoaded
	}
	data, ok := s.snapshots[name]
	if !ok {
		return nil, ErrSnapshotNotFound
	}
	return data, nil
}

func (s *MemoryStore) put(name string, v any) error {
	if !s.loaded {
		return ErrNotLoaded
	}
	data, err := snapshot.Encode(v)
	if err != nil {
		return err
	}
	s.snapshots[name] = data
	return nil
}

func (s *MemoryStore) GetLedger() (models.Ledger, error) {
	data, err := s.get(constants.LedgerSnapshot)
	if err != nil {
		return models.Ledger{}, err
	}
	return snapshot.DecodeLedger(data)
}

func (s *MemoryStore) SaveLedger(l models.Ledger) error { return s.put(constants.LedgerSnapshot, l) }

func (s *MemoryStore) GetSettings() (models.Settings, error) {
	data, err := s.get(constants.SettingsSnapshot)
	if err != nil {
		return models.Settings{}, err
	}
	return snapshot.DecodeSettings(data)
}

func (s *MemoryStore) SaveSettings(st models.Settings) error {
	return s.put(constants.SettingsSnapshot, st)
}

func (s *MemoryStore) GetConfigPath() string { return MemoryTarget }
