// Package config manages editfix configuration and filesystem paths.
//
// The default root is ~/.editfix/ holding config.yaml. The root can be
// overridden with EDITFIX_ROOT. The config file itself is optional;
// a missing file yields defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnvRoot overrides the editfix root directory.
const EnvRoot = "EDITFIX_ROOT"

// Paths contains the filesystem paths used by editfix.
type Paths struct {
	// Root is the base directory for editfix data (default: ~/.editfix)
	Root string

	// Config is the path to the config file
	Config string
}

// DefaultPaths returns the default paths, honoring EDITFIX_ROOT.
func DefaultPaths() (*Paths, error) {
	root := os.Getenv(EnvRoot)
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		root = filepath.Join(home, ".editfix")
	}

	return &Paths{
		Root:   root,
		Config: filepath.Join(root, "config.yaml"),
	}, nil
}

// EnsureDirectories creates the root directory if it does not exist.
func (p *Paths) EnsureDirectories() error {
	if err := os.MkdirAll(p.Root, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", p.Root, err)
	}
	return nil
}
