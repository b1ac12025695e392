package discovery

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/editfix/editfix/internal/hash"
	"github.com/editfix/editfix/internal/host"
)

// fixture builds a registry dir holding one legacy link file and one
// marker path file, pointing at two source checkouts.
func fixture(t *testing.T) (registry, srcA, srcB string) {
	t.Helper()

	base := t.TempDir()
	registry = mkdir(t, filepath.Join(base, "site-packages"))
	srcA = mkdir(t, filepath.Join(base, "checkout-a", "src"))
	srcB = mkdir(t, filepath.Join(base, "checkout-b"))

	writeFile(t, filepath.Join(registry, "pkg-a.egg-link"), srcA+"\n.")
	writeFile(t, filepath.Join(registry, "__editable__.pkg_b-1.0.pth"), srcB+"\n")
	return registry, srcA, srcB
}

func TestDiscover_FindsAllDescriptorKinds(t *testing.T) {
	t.Parallel()

	registry, srcA, srcB := fixture(t)

	eng := NewEngine([]string{registry})
	set := eng.Discover()

	require.Equal(t, 2, set.Len())
	require.True(t, set.Contains(srcA))
	require.True(t, set.Contains(srcB))
	require.Equal(t, uint64(1), set.Generation())
}

func TestDiscover_DeterministicAcrossBaseDirOrder(t *testing.T) {
	t.Parallel()

	regA, srcA, _ := fixture(t)

	base := t.TempDir()
	regB := mkdir(t, filepath.Join(base, "dist-packages"))
	srcC := mkdir(t, filepath.Join(base, "checkout-c"))
	writeFile(t, filepath.Join(regB, "pkg-c.pth"), srcC+"\n")

	forward := NewEngine([]string{regA, regB}).Discover()
	backward := NewEngine([]string{regB, regA}).Discover()

	require.Equal(t, forward.Paths(), backward.Paths())
	require.True(t, forward.Contains(srcA))
	require.True(t, forward.Contains(srcC))
}

func TestDiscover_DuplicateTargetsCollapse(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	registry := mkdir(t, filepath.Join(base, "site-packages"))
	src := mkdir(t, filepath.Join(base, "src"))

	writeFile(t, filepath.Join(registry, "pkg.egg-link"), src+"\n")
	writeFile(t, filepath.Join(registry, "pkg.pth"), src+"\n")

	set := NewEngine([]string{registry}).Discover()
	require.Equal(t, []string{src}, set.Paths())
}

func TestDiscover_UnreadableBaseDirSkipped(t *testing.T) {
	t.Parallel()

	registry, _, _ := fixture(t)
	missing := filepath.Join(t.TempDir(), "nope")

	set := NewEngine([]string{missing, registry}).Discover()
	require.Equal(t, 2, set.Len())
}

func TestRefresh_GenerationAlwaysIncreases(t *testing.T) {
	t.Parallel()

	registry, _, _ := fixture(t)
	eng := NewEngine([]string{registry})

	first := eng.Refresh(false)
	second := eng.Refresh(false)

	require.Equal(t, uint64(1), first.Generation())
	require.Equal(t, uint64(2), second.Generation())
	require.True(t, first.Equal(second))
}

func TestRefresh_UnchangedFingerprintReusesParse(t *testing.T) {
	t.Parallel()

	registry, srcA, srcB := fixture(t)

	fp := hash.NewFakeFingerprinter("digest-1")
	eng := NewEngine([]string{registry}, WithFingerprinter(fp))

	first := eng.Refresh(false)
	require.Equal(t, 2, first.Len())

	// New descriptor on disk, but the fingerprint says nothing changed:
	// the cached parse is reused.
	base := filepath.Dir(srcB)
	srcNew := mkdir(t, filepath.Join(base, "checkout-new"))
	writeFile(t, filepath.Join(registry, "pkg-new.pth"), srcNew+"\n")

	cached := eng.Refresh(false)
	require.True(t, first.Equal(cached))
	require.Equal(t, uint64(2), cached.Generation())

	fp.Set("digest-2")
	fresh := eng.Refresh(false)
	require.Equal(t, 3, fresh.Len())
	require.True(t, fresh.Contains(srcA))
	require.True(t, fresh.Contains(srcNew))
}

func TestRefresh_ForceAlwaysReparses(t *testing.T) {
	t.Parallel()

	registry, _, _ := fixture(t)

	fp := hash.NewFakeFingerprinter("constant")
	eng := NewEngine([]string{registry}, WithFingerprinter(fp))

	eng.Refresh(false)

	base := filepath.Dir(registry)
	srcNew := mkdir(t, filepath.Join(base, "checkout-new"))
	writeFile(t, filepath.Join(registry, "pkg-new.pth"), srcNew+"\n")

	set := eng.Refresh(true)
	require.True(t, set.Contains(srcNew))
}

func TestCurrent_ScansOnFirstUse(t *testing.T) {
	t.Parallel()

	registry, _, _ := fixture(t)
	eng := NewEngine([]string{registry})

	set := eng.Current()
	require.Equal(t, 2, set.Len())
	require.Same(t, set, eng.Current())
}

func TestRegistryDirs(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	site := mkdir(t, filepath.Join(base, "lib", "site-packages"))
	dist := mkdir(t, filepath.Join(base, "lib", "dist-packages"))
	plain := mkdir(t, filepath.Join(base, "lib", "plain"))

	rt := host.NewMemoryRuntime(host.WithSearchPaths(
		site,
		dist,
		plain,
		filepath.Join(base, "gone", "site-packages"),
	))

	require.Equal(t, []string{site, dist}, RegistryDirs(rt.SearchList()))
}

func TestPathSet_ContainsAndEqual(t *testing.T) {
	t.Parallel()

	a := newPathSet([]string{"/b", "/a", "/b"}, 1)
	b := newPathSet([]string{"/a", "/b"}, 7)

	require.Equal(t, []string{"/a", "/b"}, a.Paths())
	require.True(t, a.Contains("/a"))
	require.False(t, a.Contains("/c"))
	require.True(t, a.Equal(b))
	require.False(t, a.Equal(newPathSet([]string{"/a"}, 1)))
	require.False(t, a.Equal(nil))
}
