package system

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/rihla/internal/cli"
	"github.com/julianstephens/rihla/internal/keyring"
	"github.com/julianstephens/rihla/internal/storage"
)

type KeyringCmd struct {
	Set    KeyringSetCmd    `cmd:"" help:"Store a secret in the OS keyring."`
	Delete KeyringDeleteCmd `cmd:"" help:"Remove a secret from the OS keyring."`
	Status KeyringStatusCmd `cmd:"" default:"1" help:"Show keyring availability and stored secrets."`
}

func parseEntry(name string) (keyring.Entry, error) {
	e, ok := keyring.ParseEntry(strings.ToLower(name))
	if !ok {
		return "", fmt.Errorf("unknown secret %q (one of: db, gemini)", name)
	}
	return e, nil
}

// KeyringSetCmd stores the database connection string or the Gemini API key
type KeyringSetCmd struct {
	Name  string `arg:"" help:"Secret to store: db or gemini."`
	Value string `arg:"" help:"Connection string or API key."`
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	e, err := parseEntry(cmd.Name)
	if err != nil {
		return err
	}

	if e == keyring.ConnectionString {
		if storage.KindOf(cmd.Value) != storage.KindPostgres && !strings.Contains(cmd.Value, "host=") {
			return errors.New("connection string must be a valid PostgreSQL connection string")
		}
		if storage.HasEmbeddedCredentials(cmd.Value) {
			fmt.Println("⚠️  Warning: Connection string contains embedded credentials.")
			fmt.Println("   It will be stored as-is in the encrypted OS keyring.")
		}
	}

	if err := keyring.Set(e, cmd.Value); err != nil {
		return fmt.Errorf("failed to store %s in keyring: %w", e, err)
	}
	fmt.Printf("✓ %s stored successfully in OS keyring\n", e)
	return nil
}

// KeyringDeleteCmd removes a secret from the OS keyring
type KeyringDeleteCmd struct {
	Name string `arg:"" help:"Secret to delete: db or gemini."`
}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	e, err := parseEntry(cmd.Name)
	if err != nil {
		return err
	}
	if err := keyring.Delete(e); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("no %s found in keyring", e)
		}
		return fmt.Errorf("failed to delete %s from keyring: %w", e, err)
	}
	fmt.Printf("✓ %s deleted from OS keyring\n", e)
	return nil
}

// KeyringStatusCmd checks the availability of the OS keyring
type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		fmt.Println("❌ OS keyring is not available on this system")
		return errors.New("keyring unavailable")
	}
	fmt.Println("✓ OS keyring is available")
	for _, e := range keyring.Entries {
		v, err := keyring.Get(e)
		switch {
		case err == nil && e == keyring.ConnectionString:
			fmt.Printf("✓ %s is stored: %s\n", e, maskPassword(v))
		case err == nil:
			fmt.Printf("✓ %s is stored\n", e)
		case errors.Is(err, keyring.ErrNotFound):
			fmt.Printf("ℹ No %s stored\n", e)
		default:
			fmt.Printf("❌ %s: %v\n", e, err)
		}
	}
	return nil
}

// maskPassword masks passwords in connection strings for display
func maskPassword(connStr string) string {
	if storage.KindOf(connStr) == storage.KindPostgres {
		if idx := strings.Index(connStr, "://"); idx != -1 {
			remaining := connStr[idx+3:]
			if atIdx := strings.LastIndex(remaining, "@"); atIdx != -1 {
				userInfo := remaining[:atIdx]
				if colonIdx := strings.Index(userInfo, ":"); colonIdx != -1 {
					return connStr[:idx+3] + userInfo[:colonIdx] + ":****" + connStr[idx+3+atIdx:]
				}
			}
		}
	}

	if strings.Contains(connStr, "password=") {
		parts := strings.Fields(connStr)
		for i, part := range parts {
			if strings.HasPrefix(part, "password=") {
				parts[i] = "password=****"
			}
		}
		return strings.Join(parts, " ")
	}

	return connStr
}
