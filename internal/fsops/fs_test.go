package fsops

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAtomicWrite(t *testing.T) {
	t.Parallel()

	fs := NewRealFS()
	path := filepath.Join(t.TempDir(), "nested", "artifact.py")

	require.NoError(t, fs.AtomicWrite(path, []byte("first"), 0644))

	data, err := fs.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "first", string(data))

	// Overwrite replaces content in one step and leaves no temp files.
	require.NoError(t, fs.AtomicWrite(path, []byte("second"), 0644))
	data, err = fs.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "second", string(data))

	entries, err := fs.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestExists(t *testing.T) {
	t.Parallel()

	fs := NewRealFS()
	dir := t.TempDir()

	ok, err := fs.Exists(dir)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = fs.Exists(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRemove(t *testing.T) {
	t.Parallel()

	fs := NewRealFS()
	path := filepath.Join(t.TempDir(), "f")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	require.NoError(t, fs.Remove(path))

	ok, err := fs.Exists(path)
	require.NoError(t, err)
	require.False(t, ok)
}
