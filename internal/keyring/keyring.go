// Package keyring stores rihla's secrets (database connection string, Gemini
// API key) in the OS keyring.
package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/rihla/internal/constants"
)

var (
	// ErrNotFound is returned when no secret is stored for the entry
	ErrNotFound = errors.New("secret not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Entry names a secret slot under the rihla keyring service.
type Entry string

const (
	ConnectionString Entry = Entry(constants.DefaultKeyringUser)
	GeminiAPIKey     Entry = Entry(constants.GeminiKeyringUser)
)

// Entries lists every slot rihla knows about, for status output.
var Entries = []Entry{ConnectionString, GeminiAPIKey}

// ParseEntry maps a user-facing name ("db", "gemini") to an entry.
func ParseEntry(name string) (Entry, bool) {
	switch name {
	case "db", "database", string(ConnectionString):
		return ConnectionString, true
	case "gemini", "api-key", string(GeminiAPIKey):
		return GeminiAPIKey, true
	}
	return "", false
}

// Get retrieves a secret. Returns ErrNotFound if nothing is stored.
func Get(e Entry) (string, error) {
	v, err := keyring.Get(constants.AppName, string(e))
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return v, nil
}

// Set stores a secret, replacing any previous value.
func Set(e Entry, value string) error {
	if value == "" {
		return fmt.Errorf("%s cannot be empty", e)
	}
	if err := keyring.Set(constants.AppName, string(e), value); err != nil {
		return fmt.Errorf("failed to store %s in keyring: %w", e, err)
	}
	return nil
}

// Delete removes a secret.
func Delete(e Entry) error {
	if err := keyring.Delete(constants.AppName, string(e)); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete %s from keyring: %w", e, err)
	}
	return nil
}

// GetConnectionString retrieves the database connection string.
func GetConnectionString() (string, error) { return Get(ConnectionString) }

// SetConnectionString stores the database connection string.
func SetConnectionString(connStr string) error { return Set(ConnectionString, connStr) }

// DeleteConnectionString removes the database connection string.
func DeleteConnectionString() error { return Delete(ConnectionString) }

// GetAPIKey retrieves the Gemini API key.
func GetAPIKey() (string, error) { return Get(GeminiAPIKey) }

// IsAvailable reports whether the OS keyring answers at all. Best effort.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
