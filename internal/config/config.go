package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/editfix/editfix/internal/fsops"
)

// Config is the optional on-disk configuration.
type Config struct {
	// ScanDirs are extra package-registry directories scanned for
	// descriptor files, in addition to the ones derived from the host's
	// module search list.
	ScanDirs []string `yaml:"scan_dirs"`

	// Verbose enables progress output without setting EDITFIX_VERBOSE.
	Verbose bool `yaml:"verbose"`

	// StartupDir overrides where the startup artifact is installed.
	// Empty means the first scanned registry directory.
	StartupDir string `yaml:"startup_dir"`
}

// Load reads the config file at path. A missing file is not an error and
// yields the zero Config; a malformed file is an error.
func Load(fs fsops.FS, path string) (*Config, error) {
	exists, err := fs.Exists(path)
	if err != nil {
		return nil, fmt.Errorf("failed to check config file: %w", err)
	}
	if !exists {
		return &Config{}, nil
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return &cfg, nil
}

// Save writes the config to path as YAML.
func Save(fs fsops.FS, path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := fs.AtomicWrite(path, data, os.FileMode(0644)); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
