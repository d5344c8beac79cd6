// Package snapshot holds the wire format shared by every storage backend:
// the ledger and settings are each persisted as one JSON document.
package snapshot

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tailscale/hujson"

	"github.com/julianstephens/rihla/internal/constants"
	"github.com/julianstephens/rihla/internal/logger"
	"github.com/julianstephens/rihla/internal/models"
)

var (
	// ErrNotFound is returned when a named snapshot has never been saved.
	ErrNotFound = errors.New("snapshot not found")
	// ErrNotInitialized is returned by Load when the backing store does not exist yet.
	ErrNotInitialized = errors.New("storage not initialized, run 'rihla init' first")
	// ErrNotLoaded is returned when a store is used before Init or Load.
	ErrNotLoaded = errors.New("storage not loaded")
)

// Names lists every snapshot a store holds.
var Names = []string{constants.LedgerSnapshot, constants.SettingsSnapshot}

// Encode serializes a snapshot payload.
func Encode(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize snapshot: %w", err)
	}
	return data, nil
}

// Standardize accepts hand-edited JSON (comments, trailing commas) and
// returns plain JSON.
func Standardize(data []byte) ([]byte, error) {
	out, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	return out, nil
}

// decode unmarshals a payload into v. A field of the wrong type is left at
// its zero value and the rest of the payload is still decoded, so a single
// hand-edited field never makes the snapshot unreadable.
func decode(name string, data []byte, v any) error {
	std, err := Standardize(data)
	if err != nil {
		return err
	}
	err = json.Unmarshal(std, v)
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		logger.Warn("Ignoring malformed snapshot field", "snapshot", name, "field", typeErr.Field, "value", typeErr.Value)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return nil
}

// DecodeLedger parses a ledger payload as stored. Missing or invalid fields
// are patched by the ledger service on load, so validation can still see them.
func DecodeLedger(data []byte) (models.Ledger, error) {
	var l models.Ledger
	if err := decode(constants.LedgerSnapshot, data, &l); err != nil {
		return models.Ledger{}, err
	}
	return l, nil
}

// DecodeSettings parses a settings payload. Ordering and selection are
// normalized by the settings store, not here.
func DecodeSettings(data []byte) (models.Settings, error) {
	var s models.Settings
	if err := decode(constants.SettingsSnapshot, data, &s); err != nil {
		return models.Settings{}, err
	}
	return s, nil
}

// Checksum returns the hex sha256 of a payload, stored next to it so doctor
// can spot rows edited outside rihla.
func Checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
