package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/editfix/editfix/internal/config"
	"github.com/editfix/editfix/internal/discovery"
	"github.com/editfix/editfix/internal/engine"
	"github.com/editfix/editfix/internal/fsops"
	"github.com/editfix/editfix/internal/host"
	"github.com/editfix/editfix/internal/startup"
	"github.com/editfix/editfix/internal/termlog"
)

// newEngine creates an engine bound to a detached runtime. Outside an
// embedding host there are no interception points to override, but
// discovery, status, and verification still operate on the descriptor
// directories from configuration.
func newEngine(extraDirs []string) (*engine.Engine, error) {
	cfg, _, err := loadConfig()
	if err != nil {
		return nil, err
	}

	rt := host.Detached()

	scanDirs := append([]string(nil), cfg.ScanDirs...)
	scanDirs = append(scanDirs, extraDirs...)
	scanDirs = append(scanDirs, discovery.RegistryDirs(rt.SearchList())...)
	if len(scanDirs) == 0 {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		scanDirs = []string{cwd}
	}

	log := newLogger(cfg.Verbose)
	disc := discovery.NewEngine(scanDirs, discovery.WithLogger(log))

	return engine.New(rt, disc, engine.WithLogger(log)), nil
}

// newLogger builds the diagnostic logger. The flag and config can only
// raise verbosity; when both are unset the environment toggle decides.
func newLogger(cfgVerbose bool) *termlog.Logger {
	var opts []termlog.Option
	if verbose || cfgVerbose {
		opts = append(opts, termlog.WithVerbose(true))
	}
	return termlog.New(opts...)
}

// newInstaller creates the startup artifact installer. destDir resolves
// in order: the flag value, configuration, editfix's own root.
func newInstaller(destDir string) (*startup.Installer, error) {
	cfg, paths, err := loadConfig()
	if err != nil {
		return nil, err
	}

	if destDir == "" {
		destDir = cfg.StartupDir
	}
	if destDir == "" {
		destDir = paths.Root
	}

	binary, err := os.Executable()
	if err != nil {
		binary = ""
	}

	return startup.NewInstaller(fsops.NewRealFS(), destDir, binary), nil
}

func loadConfig() (*config.Config, *config.Paths, error) {
	paths, err := config.DefaultPaths()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get config paths: %w", err)
	}
	if err := paths.EnsureDirectories(); err != nil {
		return nil, nil, fmt.Errorf("failed to ensure directories: %w", err)
	}

	cfg, err := config.Load(fsops.NewRealFS(), paths.Config)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, paths, nil
}

// outputJSON outputs a value as JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
