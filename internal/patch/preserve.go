package patch

import (
	"github.com/editfix/editfix/internal/host"
	"github.com/editfix/editfix/internal/termlog"
)

// PreservePatch overrides the host's search-list mutation handler so
// that after the host rewrites the list (directory or context changes),
// any cached editable path the rewrite dropped is appended back.
type PreservePatch struct {
	base
	rt       host.Runtime
	original host.UpdateFunc
}

// NewPreservePatch creates the path-preservation override.
func NewPreservePatch(rt host.Runtime, src PathSource, log *termlog.Logger) *PreservePatch {
	return &PreservePatch{base: newBase(src, log), rt: rt}
}

// Target returns the patched interception point.
func (p *PreservePatch) Target() host.Point {
	return host.PointPathUpdate
}

// Apply installs the override.
func (p *PreservePatch) Apply() Result {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.applied {
		return p.appliedResult()
	}

	slot, ok := p.rt.PathUpdate()
	if !ok {
		p.log.Debugf("path-update: target not exposed by host")
		return Result{TargetFound: false}
	}

	original := slot.Get()
	if original == nil {
		return Result{TargetFound: true, Err: "path-update slot holds no behavior to wrap"}
	}

	p.cacheLocked()
	p.original = original
	slot.Set(p.wrap(original))
	p.applied = true

	p.log.Debugf("path-update: override installed, preserving %d editable path(s)", len(p.cached))
	return p.okResult()
}

// wrap builds the overriding handler: the host's mutation runs first,
// then cached editable paths missing from the result are appended back.
// Appending keeps host-owned entries ahead of editable ones.
func (p *PreservePatch) wrap(original host.UpdateFunc) host.UpdateFunc {
	return func() {
		defer func() {
			if r := recover(); r != nil {
				if preserveFailDirection == FailClosed {
					panic(r)
				}
				p.log.Debugf("path-update: wrapped handler panicked: %v", r)
			}
		}()

		original()

		restored := MergePaths(p.rt.SearchList(), p.snapshotPaths())
		if restored > 0 {
			p.log.Debugf("path-update: restored %d editable path(s) after host rewrite", restored)
		}
	}
}

// Remove restores the original mutation handler.
func (p *PreservePatch) Remove() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.applied {
		return false
	}

	slot, ok := p.rt.PathUpdate()
	if !ok {
		return false
	}

	slot.Set(p.original)
	p.original = nil
	p.applied = false

	p.log.Debugf("path-update: original behavior restored")
	return true
}
