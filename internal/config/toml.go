package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file. Nil means unset.
type FileConfig struct {
	Storage   StorageConfig   `toml:"storage"`
	Challenge ChallengeConfig `toml:"challenge"`
	Log       LogConfig       `toml:"log"`
}

type StorageConfig struct {
	Path       *string `toml:"path"`
	AutoBackup *bool   `toml:"auto_backup"`
}

type ChallengeConfig struct {
	Model     *string `toml:"model"`
	APIKeyEnv *string `toml:"api_key_env"`
	Disabled  *bool   `toml:"disabled"`
}

type LogConfig struct {
	Debug *bool   `toml:"debug"`
	Level *string `toml:"level"`
}

// LoadFile reads a TOML config from the given path. Missing file is not an error.
func LoadFile(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q in %s", undecoded[0].String(), path)
	}
	return cfg, nil
}
