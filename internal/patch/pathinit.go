package patch

import (
	"github.com/editfix/editfix/internal/host"
	"github.com/editfix/editfix/internal/termlog"
)

// InitPatch overrides the host's search-list initialization routine so
// that every future invocation also merges the discovered editable
// paths into the search list, after the host's own logic has run.
type InitPatch struct {
	base
	rt       host.Runtime
	original host.InitFunc
}

// NewInitPatch creates the initialization override.
func NewInitPatch(rt host.Runtime, src PathSource, log *termlog.Logger) *InitPatch {
	return &InitPatch{base: newBase(src, log), rt: rt}
}

// Target returns the patched interception point.
func (p *InitPatch) Target() host.Point {
	return host.PointPathInit
}

// Apply installs the override.
func (p *InitPatch) Apply() Result {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.applied {
		return p.appliedResult()
	}

	slot, ok := p.rt.PathInit()
	if !ok {
		p.log.Debugf("path-init: target not exposed by host")
		return Result{TargetFound: false}
	}

	original := slot.Get()
	if original == nil {
		return Result{TargetFound: true, Err: "path-init slot holds no behavior to wrap"}
	}

	p.cacheLocked()
	p.original = original
	slot.Set(p.wrap(original))
	p.applied = true

	p.log.Debugf("path-init: override installed, %d editable path(s) cached", len(p.cached))
	return p.okResult()
}

// wrap builds the overriding behavior: host initialization first, then
// the merge pass. The merge reads the cached view at call time so path
// refreshes take effect without reapplying.
func (p *InitPatch) wrap(original host.InitFunc) host.InitFunc {
	return func() {
		defer func() {
			if r := recover(); r != nil {
				if initFailDirection == FailClosed {
					panic(r)
				}
				p.log.Debugf("path-init: wrapped initialization panicked: %v", r)
			}
		}()

		original()
		MergePaths(p.rt.SearchList(), p.snapshotPaths())
	}
}

// Remove restores the original initialization routine.
func (p *InitPatch) Remove() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.applied {
		return false
	}

	slot, ok := p.rt.PathInit()
	if !ok {
		return false
	}

	slot.Set(p.original)
	p.original = nil
	p.applied = false

	p.log.Debugf("path-init: original behavior restored")
	return true
}
