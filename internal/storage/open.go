package storage

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	pq "github.com/lib/pq"

	"github.com/julianstephens/rihla/internal/storage/postgres"
	"github.com/julianstephens/rihla/internal/storage/sqlite"
)

// Kind names a storage backend.
type Kind string

const (
	KindJSON     Kind = "json"
	KindSQLite   Kind = "sqlite"
	KindPostgres Kind = "postgres"
	KindMemory   Kind = "memory"
)

var ErrEmbeddedCredentials = postgres.ErrEmbeddedCredentials

// KindOf picks the backend for a --store value: ":memory:", PostgreSQL
// URLs, SQLite files by extension, and a JSON snapshot file otherwise.
func KindOf(target string) Kind {
	if target == MemoryTarget {
		return KindMemory
	}
	if postgres.IsConnString(target) {
		return KindPostgres
	}
	switch strings.ToLower(filepath.Ext(target)) {
	case ".db", ".sqlite", ".sqlite3":
		return KindSQLite
	}
	return KindJSON
}

// HasEmbeddedCredentials reports whether a PostgreSQL URL carries a password.
func HasEmbeddedCredentials(connStr string) bool {
	if !postgres.IsConnString(connStr) {
		return false
	}
	u, err := url.Parse(connStr)
	if err != nil {
		return false
	}
	_, set := u.User.Password()
	return set
}

// ValidateTarget rejects a user-supplied --store value that embeds a
// PostgreSQL password. Resolved connection strings from the environment or
// the keyring are not checked.
func ValidateTarget(target string) error {
	if KindOf(target) != KindPostgres {
		return nil
	}
	_, err := postgres.ValidateConnString(target)
	return err
}

// Open returns an unloaded provider for target. Callers run Init or Load.
func Open(target string) (Provider, error) {
	switch KindOf(target) {
	case KindPostgres:
		if _, err := pq.NewConnector(target); err != nil {
			return nil, fmt.Errorf("%w: %v", postgres.ErrInvalidConnectionString, err)
		}
		return postgres.New(target), nil
	case KindSQLite:
		return sqlite.NewStore(target), nil
	case KindMemory:
		return NewMemoryStore(), nil
	default:
		return NewJSONStore(target), nil
	}
}
