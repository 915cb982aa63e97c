package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dioritemc/diorite-go/internal/infra/confloader"
	"github.com/dioritemc/diorite-go/internal/telemetry/logger"
)

// EnvPrefix is the environment prefix for CLI settings.
const EnvPrefix = "DIORITE_CLI_"

func homeDir() string {
	dir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, ".diorite")
}

// DefaultConfigPath returns the default CLI config file path.
func DefaultConfigPath() string {
	return filepath.Join(homeDir(), "cli.yaml")
}

// DefaultHistoryPath returns the shell history file.
func DefaultHistoryPath() string {
	return filepath.Join(homeDir(), "history")
}

// DefaultDataDir returns the default snapshot directory.
func DefaultDataDir() string {
	return filepath.Join(homeDir(), "data")
}

// Load reads path on top of the defaults, then the environment. An empty
// path means DefaultConfigPath, which may be absent. An explicit path
// must exist.
func Load(path string) (*CLIConfig, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}

	opts := []confloader.Option{confloader.WithEnvPrefix(EnvPrefix)}
	if _, err := os.Stat(path); err == nil {
		opts = append(opts, confloader.WithFile(path))
	} else if explicit || !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	cfg := Default()
	if err := confloader.NewLoader(opts...).Load(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Verify(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Verify checks enumerated fields.
func (c *CLIConfig) Verify() error {
	switch c.Output {
	case "table", "json", "yaml":
	default:
		return fmt.Errorf("config: output %q: want table, json or yaml", c.Output)
	}
	if !logger.ValidLevel(c.LogLevel) {
		return fmt.Errorf("config: log_level %q", c.LogLevel)
	}
	return nil
}
