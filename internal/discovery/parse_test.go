package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func mkdir(t *testing.T, path string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(path, 0755))
	return path
}

func TestParsePathFile_LineRules(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	src := mkdir(t, filepath.Join(base, "src"))
	other := mkdir(t, filepath.Join(base, "other"))

	file := filepath.Join(base, "pkg.pth")
	writeFile(t, file, "# a comment line\n"+
		"\n"+
		"import site; site.main()\n"+
		"import\tos\n"+
		src+"\n"+
		other+"\n"+
		filepath.Join(base, "does-not-exist")+"\n")

	paths, err := parsePathFile(file)
	require.NoError(t, err)
	require.Equal(t, []string{src, other}, paths)
}

func TestParsePathFile_RelativeResolvesAgainstDescriptorDir(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	registry := mkdir(t, filepath.Join(base, "registry"))
	src := mkdir(t, filepath.Join(base, "checkout", "src"))

	file := filepath.Join(registry, "pkg.pth")
	writeFile(t, file, "../checkout/src\n")

	paths, err := parsePathFile(file)
	require.NoError(t, err)
	require.Equal(t, []string{src}, paths)
}

func TestParsePathFile_FileThatIsNotDirRejected(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	plain := filepath.Join(base, "regular.txt")
	writeFile(t, plain, "data")

	file := filepath.Join(base, "pkg.pth")
	writeFile(t, file, plain+"\n")

	paths, err := parsePathFile(file)
	require.NoError(t, err)
	require.Empty(t, paths)
}

func TestParseLinkFile_FirstNonEmptyLineOnly(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	src := mkdir(t, filepath.Join(base, "src"))
	extra := mkdir(t, filepath.Join(base, "extra"))

	file := filepath.Join(base, "pkg.egg-link")
	writeFile(t, file, "\n"+src+"\n.\n"+extra+"\n")

	paths, err := parseLinkFile(file)
	require.NoError(t, err)
	require.Equal(t, []string{src}, paths)
}

func TestParseLinkFile_MissingTargetYieldsNothing(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	file := filepath.Join(base, "pkg.egg-link")
	writeFile(t, file, filepath.Join(base, "gone")+"\n")

	paths, err := parseLinkFile(file)
	require.NoError(t, err)
	require.Empty(t, paths)
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		kind Kind
		ok   bool
	}{
		{"pkg.egg-link", KindLegacyLink, true},
		{"__editable__.pkg-1.0.pth", KindMarker, true},
		{"easy-install.pth", KindPlain, true},
		{"pkg.dist-info", "", false},
		{"README.md", "", false},
	}

	for _, tt := range tests {
		kind, ok := classify(tt.name)
		require.Equal(t, tt.ok, ok, tt.name)
		require.Equal(t, tt.kind, kind, tt.name)
	}
}
