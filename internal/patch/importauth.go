package patch

import (
	"github.com/editfix/editfix/internal/host"
	"github.com/editfix/editfix/internal/termlog"
)

// AuthPatch overrides the host's per-import authorization check so that
// imports originating under an editable path are authorized in addition
// to whatever the host already permits.
type AuthPatch struct {
	base
	rt       host.Runtime
	original host.AuthFunc
}

// NewAuthPatch creates the import-authorization override.
func NewAuthPatch(rt host.Runtime, src PathSource, log *termlog.Logger) *AuthPatch {
	return &AuthPatch{base: newBase(src, log), rt: rt}
}

// Target returns the patched interception point.
func (p *AuthPatch) Target() host.Point {
	return host.PointImportAuth
}

// Apply installs the override.
func (p *AuthPatch) Apply() Result {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.applied {
		return p.appliedResult()
	}

	slot, ok := p.rt.ImportAuth()
	if !ok {
		p.log.Debugf("import-auth: target not exposed by host")
		return Result{TargetFound: false}
	}

	original := slot.Get()
	if original == nil {
		return Result{TargetFound: true, Err: "import-auth slot holds no behavior to wrap"}
	}

	p.cacheLocked()
	p.original = original
	slot.Set(p.wrap(original))
	p.applied = true

	p.log.Debugf("import-auth: override installed (%s), %d editable path(s) cached",
		authFailDirection, len(p.cached))
	return p.okResult()
}

// wrap builds the overriding check: editable origins are authorized
// outright, everything else defers to the host's original decision.
func (p *AuthPatch) wrap(original host.AuthFunc) host.AuthFunc {
	return func(origin string) (allowed bool) {
		defer func() {
			if r := recover(); r != nil {
				p.log.Debugf("import-auth: wrapped check panicked for %s: %v", origin, r)
				allowed = authFailDirection == FailOpen
			}
		}()

		if p.underCached(origin) {
			return true
		}
		return original(origin)
	}
}

// Remove restores the original authorization check.
func (p *AuthPatch) Remove() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.applied {
		return false
	}

	slot, ok := p.rt.ImportAuth()
	if !ok {
		return false
	}

	slot.Set(p.original)
	p.original = nil
	p.applied = false

	p.log.Debugf("import-auth: original behavior restored")
	return true
}
