package startup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/editfix/editfix/internal/fsops"
)

func newInstaller(t *testing.T) (*Installer, string) {
	t.Helper()
	dir := t.TempDir()
	return NewInstaller(fsops.NewRealFS(), dir, "/opt/editfix/bin/editfix"), dir
}

func TestInstall_WritesArtifact(t *testing.T) {
	t.Parallel()

	inst, dir := newInstaller(t)

	result, err := inst.Install(false)
	require.NoError(t, err)
	require.False(t, result.AlreadyInstalled)
	require.Equal(t, filepath.Join(dir, ArtifactName), result.Path)

	data, err := os.ReadFile(result.Path)
	require.NoError(t, err)
	require.Contains(t, string(data), marker)
	require.Contains(t, string(data), "/opt/editfix/bin/editfix")
	require.Contains(t, string(data), "apply")
}

func TestInstall_QuotesAwkwardBinaryPaths(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	inst := NewInstaller(fsops.NewRealFS(), dir, `C:\tools\edit"fix.exe`)

	result, err := inst.Install(false)
	require.NoError(t, err)

	data, err := os.ReadFile(result.Path)
	require.NoError(t, err)
	require.Contains(t, string(data), `["C:\\tools\\edit\"fix.exe", "apply"]`)
}

func TestInstall_IsIdempotent(t *testing.T) {
	t.Parallel()

	inst, _ := newInstaller(t)

	first, err := inst.Install(false)
	require.NoError(t, err)

	second, err := inst.Install(false)
	require.NoError(t, err)
	require.True(t, second.AlreadyInstalled)
	require.Empty(t, second.BackupPath)

	firstData, err := os.ReadFile(first.Path)
	require.NoError(t, err)
	secondData, err := os.ReadFile(second.Path)
	require.NoError(t, err)
	require.Equal(t, firstData, secondData)
}

func TestInstall_RefusesForeignFile(t *testing.T) {
	t.Parallel()

	inst, dir := newInstaller(t)
	foreign := filepath.Join(dir, ArtifactName)
	require.NoError(t, os.WriteFile(foreign, []byte("import antigravity\n"), 0644))

	_, err := inst.Install(false)
	require.ErrorIs(t, err, ErrArtifactExists)

	// Untouched.
	data, err := os.ReadFile(foreign)
	require.NoError(t, err)
	require.Equal(t, "import antigravity\n", string(data))
}

func TestInstall_ForceBacksUpForeignFile(t *testing.T) {
	t.Parallel()

	inst, dir := newInstaller(t)
	foreign := filepath.Join(dir, ArtifactName)
	require.NoError(t, os.WriteFile(foreign, []byte("import antigravity\n"), 0644))

	result, err := inst.Install(true)
	require.NoError(t, err)
	require.Equal(t, foreign+".backup", result.BackupPath)

	backup, err := os.ReadFile(result.BackupPath)
	require.NoError(t, err)
	require.Equal(t, "import antigravity\n", string(backup))

	data, err := os.ReadFile(foreign)
	require.NoError(t, err)
	require.Contains(t, string(data), marker)
}

func TestInstall_ForceOverOwnArtifactSkipsBackup(t *testing.T) {
	t.Parallel()

	inst, _ := newInstaller(t)
	_, err := inst.Install(false)
	require.NoError(t, err)

	result, err := inst.Install(true)
	require.NoError(t, err)
	require.Empty(t, result.BackupPath)
	require.False(t, result.AlreadyInstalled)
}

func TestUninstall(t *testing.T) {
	t.Parallel()

	inst, _ := newInstaller(t)

	removed, err := inst.Uninstall()
	require.NoError(t, err)
	require.False(t, removed)

	_, err = inst.Install(false)
	require.NoError(t, err)

	removed, err = inst.Uninstall()
	require.NoError(t, err)
	require.True(t, removed)

	exists, err := fsops.NewRealFS().Exists(inst.Path())
	require.NoError(t, err)
	require.False(t, exists)
}

func TestUninstall_LeavesForeignFile(t *testing.T) {
	t.Parallel()

	inst, dir := newInstaller(t)
	foreign := filepath.Join(dir, ArtifactName)
	require.NoError(t, os.WriteFile(foreign, []byte("not ours"), 0644))

	_, err := inst.Uninstall()
	require.ErrorIs(t, err, ErrArtifactExists)

	_, err = os.Stat(foreign)
	require.NoError(t, err)
}

func TestStatus(t *testing.T) {
	t.Parallel()

	inst, dir := newInstaller(t)

	status, err := inst.Status()
	require.NoError(t, err)
	require.False(t, status.Installed)

	_, err = inst.Install(false)
	require.NoError(t, err)

	status, err = inst.Status()
	require.NoError(t, err)
	require.True(t, status.Installed)
	require.True(t, status.Ours)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ArtifactName), []byte("foreign"), 0644))
	status, err = inst.Status()
	require.NoError(t, err)
	require.True(t, status.Installed)
	require.False(t, status.Ours)
}
