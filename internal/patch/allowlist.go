package patch

import (
	"github.com/editfix/editfix/internal/host"
	"github.com/editfix/editfix/internal/termlog"
)

// AllowlistPatch registers an additional allow check through the host's
// registration slot, when the host exposes one. Registration is
// preferred over a full override wherever available: the host composes
// registered checks itself, so there is no original behavior to save
// or restore; removal just cancels the registration.
type AllowlistPatch struct {
	base
	rt     host.Runtime
	cancel func()
}

// NewAllowlistPatch creates the allow-check registration.
func NewAllowlistPatch(rt host.Runtime, src PathSource, log *termlog.Logger) *AllowlistPatch {
	return &AllowlistPatch{base: newBase(src, log), rt: rt}
}

// Target returns the registration slot identity.
func (p *AllowlistPatch) Target() host.Point {
	return host.PointAllowRegistry
}

// Apply registers the editable-path check.
func (p *AllowlistPatch) Apply() Result {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.applied {
		return p.appliedResult()
	}

	registry, ok := p.rt.AllowRegistry()
	if !ok {
		p.log.Debugf("allow-registry: registration slot not exposed by host")
		return Result{TargetFound: false}
	}

	p.cacheLocked()
	p.cancel = registry.Register(p.underCached)
	p.applied = true

	p.log.Debugf("allow-registry: check registered for %d editable path(s)", len(p.cached))
	return p.okResult()
}

// Remove cancels the registration.
func (p *AllowlistPatch) Remove() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.applied || p.cancel == nil {
		return false
	}

	p.cancel()
	p.cancel = nil
	p.applied = false

	p.log.Debugf("allow-registry: check deregistered")
	return true
}
