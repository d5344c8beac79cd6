// Package config resolves rihla's runtime configuration from CLI flags, the
// environment, an optional TOML file and built-in defaults, in that order.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/julianstephens/rihla/internal/constants"
	"github.com/julianstephens/rihla/internal/keyring"
	"github.com/julianstephens/rihla/internal/logger"
	"github.com/julianstephens/rihla/internal/storage"
)

// Environment variables consulted after flags.
const (
	EnvStore     = "RIHLA_STORE"
	EnvDebug     = "RIHLA_DEBUG"
	EnvModel     = "RIHLA_GEMINI_MODEL"
	EnvConfigDir = "RIHLA_CONFIG_DIR"
)

// Flags carries the values given on the command line; zero means unset.
type Flags struct {
	Store      string
	ConfigFile string
	Debug      bool
}

type Config struct {
	ConfigDir  string
	ConfigFile string
	Store      string
	AutoBackup bool
	Debug      bool
	LogLevel   string

	Model             string
	APIKeyEnv         string
	ChallengeDisabled bool
}

// LoadDotEnv loads .env from the working directory. A missing file is fine.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("Failed to load .env", "error", err)
	}
}

// Resolve merges flags, environment, TOML and defaults.
func Resolve(f Flags) (Config, error) {
	cfg := Config{
		ConfigDir:  DefaultConfigDir(),
		Store:      DefaultStorePath(),
		AutoBackup: true,
		Model:      constants.DefaultGeminiModel,
		APIKeyEnv:  constants.DefaultAPIKeyEnv,
	}
	if v := os.Getenv(EnvConfigDir); v != "" {
		cfg.ConfigDir = v
	}

	cfg.ConfigFile = filepath.Join(cfg.ConfigDir, "config.toml")
	if f.ConfigFile != "" {
		cfg.ConfigFile = ExpandHome(f.ConfigFile)
	}

	file, err := LoadFile(cfg.ConfigFile)
	if err != nil {
		return Config{}, err
	}
	if file.Storage.Path != nil && *file.Storage.Path != "" {
		cfg.Store = *file.Storage.Path
	}
	if file.Storage.AutoBackup != nil {
		cfg.AutoBackup = *file.Storage.AutoBackup
	}
	if file.Challenge.Model != nil && *file.Challenge.Model != "" {
		cfg.Model = *file.Challenge.Model
	}
	if file.Challenge.APIKeyEnv != nil && *file.Challenge.APIKeyEnv != "" {
		cfg.APIKeyEnv = *file.Challenge.APIKeyEnv
	}
	if file.Challenge.Disabled != nil {
		cfg.ChallengeDisabled = *file.Challenge.Disabled
	}
	if file.Log.Debug != nil {
		cfg.Debug = *file.Log.Debug
	}
	if file.Log.Level != nil {
		cfg.LogLevel = *file.Log.Level
	}

	if v := os.Getenv(EnvStore); v != "" {
		cfg.Store = v
	}
	if v := os.Getenv(EnvModel); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv(EnvDebug); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Debug = b
		}
	}

	if f.Store != "" {
		cfg.Store = f.Store
	}
	if f.Debug {
		cfg.Debug = true
	}

	cfg.Store = ExpandHome(cfg.Store)
	return cfg, nil
}

// ConnString returns the string used to open the configured store. For
// PostgreSQL the full connection string may come from RIHLA_DB_CONNECTION or
// the keyring, so that the --store value itself never carries a password.
func (c Config) ConnString() string {
	if storage.KindOf(c.Store) != storage.KindPostgres {
		return c.Store
	}
	if v := os.Getenv(constants.DefaultDBConnEnv); v != "" {
		return v
	}
	if v, err := keyring.GetConnectionString(); err == nil && v != "" {
		return v
	} else if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		logger.Debug("Keyring lookup for connection string failed", "error", err)
	}
	return c.Store
}

// APIKey resolves the Gemini key: the env var named by APIKeyEnv, then the
// keyring. Empty means the static challenge provider is used.
func (c Config) APIKey() string {
	if c.ChallengeDisabled {
		return ""
	}
	if c.APIKeyEnv != "" {
		if v := os.Getenv(c.APIKeyEnv); v != "" {
			return v
		}
	}
	v, err := keyring.GetAPIKey()
	if err != nil {
		if !errors.Is(err, keyring.ErrNotFound) {
			logger.Debug("Keyring lookup for API key failed", "error", err)
		}
		return ""
	}
	return v
}
