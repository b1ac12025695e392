package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/editfix/editfix/internal/fsops"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(fsops.NewRealFS(), filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	require.Empty(t, cfg.ScanDirs)
	require.False(t, cfg.Verbose)
	require.Empty(t, cfg.StartupDir)
}

func TestLoad_MalformedFileIsAnError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scan_dirs: [unclosed"), 0644))

	_, err := Load(fsops.NewRealFS(), path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to parse config file")
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	fs := fsops.NewRealFS()
	path := filepath.Join(t.TempDir(), "config.yaml")

	want := &Config{
		ScanDirs:   []string{"/opt/registry", "/home/user/site-packages"},
		Verbose:    true,
		StartupDir: "/opt/startup",
	}
	require.NoError(t, Save(fs, path, want))

	got, err := Load(fs, path)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestDefaultPaths_HonorsRootOverride(t *testing.T) {
	root := t.TempDir()
	t.Setenv(EnvRoot, root)

	paths, err := DefaultPaths()
	require.NoError(t, err)
	require.Equal(t, root, paths.Root)
	require.Equal(t, filepath.Join(root, "config.yaml"), paths.Config)

	require.NoError(t, paths.EnsureDirectories())
	info, err := os.Stat(paths.Root)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}
