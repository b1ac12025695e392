package patch

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/editfix/editfix/internal/host"
)

func TestRegistry_OneInstancePerTarget(t *testing.T) {
	t.Parallel()

	src, _, _ := newSource(t)
	rt := host.NewMemoryRuntime()
	reg := NewRegistry()

	var builds atomic.Int32
	build := func() Patch {
		builds.Add(1)
		return NewAuthPatch(rt, src, nil)
	}

	var wg sync.WaitGroup
	results := make([]Patch, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = reg.Get(host.PointImportAuth, build)
		}(i)
	}
	wg.Wait()

	require.Equal(t, int32(1), builds.Load())
	for _, p := range results {
		require.Same(t, results[0], p)
	}
}

func TestRegistry_SharedStateAcrossCallers(t *testing.T) {
	t.Parallel()

	src, _, _ := newSource(t)
	rt := host.NewMemoryRuntime()
	reg := NewRegistry()

	build := func() Patch { return NewAuthPatch(rt, src, nil) }

	first := reg.Get(host.PointImportAuth, build)
	require.True(t, first.Apply().Success)

	second := reg.Get(host.PointImportAuth, build)
	require.True(t, second.IsApplied())
	require.True(t, second.Apply().AlreadyApplied)
}

func TestRegistry_Lookup(t *testing.T) {
	t.Parallel()

	src, _, _ := newSource(t)
	rt := host.NewMemoryRuntime()
	reg := NewRegistry()

	_, ok := reg.Lookup(host.PointImportAuth)
	require.False(t, ok)

	built := reg.Get(host.PointImportAuth, func() Patch { return NewAuthPatch(rt, src, nil) })

	found, ok := reg.Lookup(host.PointImportAuth)
	require.True(t, ok)
	require.Same(t, built, found)
}
