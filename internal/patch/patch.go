// Package patch implements the reversible behavioral overrides applied
// to host interception points, the per-target singleton registry, and
// the read-only verification checks.
//
// Every override follows the same state machine: locate the target slot
// (absent target means not applicable, never an error), snapshot the
// original behavior, install a wrapper that calls the original and adds
// path-aware logic, and restore the snapshot exactly on removal. All
// operations are idempotent: applying twice installs one wrapper,
// removing an unapplied patch is a no-op.
package patch

import (
	"os"
	"strings"
	"sync"

	"github.com/editfix/editfix/internal/discovery"
	"github.com/editfix/editfix/internal/host"
	"github.com/editfix/editfix/internal/termlog"
)

// PathSource provides the editable path set a patch caches and consults.
// *discovery.Engine satisfies it.
type PathSource interface {
	// Current returns the latest discovered path set.
	Current() *discovery.PathSet

	// Refresh re-runs discovery and returns the new set.
	Refresh(force bool) *discovery.PathSet
}

// Result is the outcome of one patch operation.
type Result struct {
	// Success reports whether the operation took (or had already taken)
	// effect.
	Success bool `json:"success"`

	// AlreadyApplied is set when Apply found the patch in place.
	AlreadyApplied bool `json:"already_applied"`

	// TargetFound is false when the host does not expose the target
	// interception point. Not an error: it signals the engine is not
	// running inside the expected host.
	TargetFound bool `json:"target_found"`

	// PathCount and Paths describe the editable paths considered.
	PathCount int      `json:"path_count"`
	Paths     []string `json:"paths,omitempty"`

	// Err carries a failure description when Success is false for a
	// reason other than a missing target.
	Err string `json:"error,omitempty"`
}

// Patch is one reversible override of a host interception point.
type Patch interface {
	// Target returns the stable identity of the patched point.
	Target() host.Point

	// Apply installs the override. Never panics; failures degrade to
	// result flags.
	Apply() Result

	// Remove restores the saved original behavior. Returns false if the
	// patch was not applied.
	Remove() bool

	// IsApplied reports the current state.
	IsApplied() bool

	// RefreshPaths re-queries the path source and replaces the cached
	// view used by the override, returning the new count. Callable in
	// any state.
	RefreshPaths() int
}

// base carries the state shared by all patches: applied flag, cached
// path view, and the generation of the path set last consumed.
type base struct {
	mu         sync.Mutex
	applied    bool
	cached     []string
	generation uint64
	src        PathSource
	log        *termlog.Logger
}

func newBase(src PathSource, log *termlog.Logger) base {
	if log == nil {
		log = termlog.New()
	}
	return base{src: src, log: log}
}

// IsApplied reports whether the override is installed.
func (b *base) IsApplied() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.applied
}

// RefreshPaths replaces the cached path view with a fresh discovery
// pass. Safe to call whether or not the patch is applied; an installed
// wrapper picks up the new view on its next invocation.
func (b *base) RefreshPaths() int {
	set := b.src.Refresh(false)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.cached = set.Paths()
	b.generation = set.Generation()
	return len(b.cached)
}

// cacheLocked pulls the current path set into the cache. Callers hold
// b.mu.
func (b *base) cacheLocked() {
	set := b.src.Current()
	b.cached = set.Paths()
	b.generation = set.Generation()
}

// snapshotPaths returns a copy of the cached view.
func (b *base) snapshotPaths() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.cached...)
}

// underCached reports whether origin lies under any cached editable
// directory.
func (b *base) underCached(origin string) bool {
	if origin == "" {
		return false
	}
	b.mu.Lock()
	dirs := b.cached
	b.mu.Unlock()
	return underAny(origin, dirs)
}

func underAny(path string, dirs []string) bool {
	for _, dir := range dirs {
		if path == dir || strings.HasPrefix(path, dir+string(os.PathSeparator)) {
			return true
		}
	}
	return false
}

// appliedResult builds the result for an already-applied Apply call.
func (b *base) appliedResult() Result {
	return Result{
		Success:        true,
		AlreadyApplied: true,
		TargetFound:    true,
		PathCount:      len(b.cached),
		Paths:          append([]string(nil), b.cached...),
	}
}

// okResult builds the result for a successful first Apply.
func (b *base) okResult() Result {
	return Result{
		Success:     true,
		TargetFound: true,
		PathCount:   len(b.cached),
		Paths:       append([]string(nil), b.cached...),
	}
}

// MergePaths appends every missing path to the host search list and
// returns the number actually added. Existing entries are left in
// place: the list is a shared resource and only the delta is written.
func MergePaths(list host.SearchList, paths []string) int {
	added := 0
	for _, p := range paths {
		if !list.Contains(p) {
			list.Append(p)
			added++
		}
	}
	return added
}
