package patch

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/editfix/editfix/internal/host"
)

func TestLookupCheck_DefaultHelperVerifies(t *testing.T) {
	t.Parallel()

	src, _, _ := newSource(t)
	rt := host.NewMemoryRuntime()

	result := NewLookupCheck(rt, src, nil).Verify()
	require.True(t, result.Verified)
	require.True(t, result.TargetFound)
}

func TestLookupCheck_ClaimingHelperFails(t *testing.T) {
	t.Parallel()

	src, _, editable := newSource(t)
	rt := host.NewMemoryRuntime()

	slot, ok := rt.PathLookup()
	require.True(t, ok)
	slot.Set(func(dir string) bool {
		return dir == editable
	})

	result := NewLookupCheck(rt, src, nil).Verify()
	require.False(t, result.Verified)
	require.True(t, result.TargetFound)
	require.Contains(t, result.Detail, editable)
}

func TestLookupCheck_AbsentTarget(t *testing.T) {
	t.Parallel()

	src, _, _ := newSource(t)
	rt := host.NewMemoryRuntime(host.WithoutPoints(host.PointPathLookup))

	result := NewLookupCheck(rt, src, nil).Verify()
	require.False(t, result.Verified)
	require.False(t, result.TargetFound)
}

func TestLookupCheck_PanickingHelperFailsVerification(t *testing.T) {
	t.Parallel()

	src, _, _ := newSource(t)
	rt := host.NewMemoryRuntime()

	slot, _ := rt.PathLookup()
	slot.Set(func(string) bool {
		panic("helper broke")
	})

	result := NewLookupCheck(rt, src, nil).Verify()
	require.False(t, result.Verified)
	require.True(t, result.TargetFound)
}

func TestResolveCheck_AcceptingCallbackVerifies(t *testing.T) {
	t.Parallel()

	src, _, _ := newSource(t)
	rt := host.NewMemoryRuntime()

	result := NewResolveCheck(rt, src, nil).Verify()
	require.True(t, result.Verified)
	require.True(t, result.TargetFound)
}

func TestResolveCheck_RejectingCallbackFails(t *testing.T) {
	t.Parallel()

	src, _, editable := newSource(t)
	rt := host.NewMemoryRuntime()

	slot, ok := rt.PostResolve()
	require.True(t, ok)
	slot.Set(func(module, origin string) error {
		if filepath.Dir(origin) == editable {
			return errors.New("origin not permitted")
		}
		return nil
	})

	result := NewResolveCheck(rt, src, nil).Verify()
	require.False(t, result.Verified)
	require.True(t, result.TargetFound)
	require.Contains(t, result.Detail, "rejected")
}
