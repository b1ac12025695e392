// Package engine orchestrates editable-install patching.
//
// The engine sequences discovery, ordered override application,
// verification, and aggregate reporting, and handles bulk removal and
// refresh. Apply order is significant: later overrides depend on path
// state the earlier ones establish or preserve. Every step is isolated
// so one failing step never prevents the rest from running, and nothing
// in this package raises during interpreter startup; defects degrade
// to "that one patch did not apply".
package engine

import (
	"fmt"

	"github.com/editfix/editfix/internal/clock"
	"github.com/editfix/editfix/internal/discovery"
	"github.com/editfix/editfix/internal/host"
	"github.com/editfix/editfix/internal/patch"
	"github.com/editfix/editfix/internal/termlog"
)

// Step names, in apply priority order. Removal runs in reverse.
const (
	StepPathInit  = "path-init-override"
	StepMerge     = "discovery-merge"
	StepAuth      = "import-auth-override"
	StepPreserve  = "path-preserve-override"
	StepAllowlist = "allowlist-registration"
	StepVerify    = "verification"
)

// Engine coordinates the discovery engine, the patch registry, and the
// host runtime. It is the main API surface called by the CLI and by
// the startup artifact.
type Engine struct {
	rt   host.Runtime
	disc *discovery.Engine
	reg  *patch.Registry
	log  *termlog.Logger
	clk  clock.Clock
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger overrides the diagnostic logger.
func WithLogger(log *termlog.Logger) Option {
	return func(e *Engine) {
		e.log = log
	}
}

// WithClock overrides the clock used for result timestamps.
func WithClock(clk clock.Clock) Option {
	return func(e *Engine) {
		e.clk = clk
	}
}

// New creates an Engine patching rt with paths discovered by disc.
// The Engine owns its patch registry: all patch state is reachable only
// through the Engine, one instance per target for the Engine's (and in
// practice the process's) lifetime.
func New(rt host.Runtime, disc *discovery.Engine, opts ...Option) *Engine {
	e := &Engine{
		rt:   rt,
		disc: disc,
		reg:  patch.NewRegistry(),
		log:  termlog.New(),
		clk:  &clock.RealClock{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Discovery returns the engine's discovery engine.
func (e *Engine) Discovery() *discovery.Engine {
	return e.disc
}

// initPatch, authPatch, preservePatch, and allowlistPatch return the
// per-target singletons, constructing them on first use.
func (e *Engine) initPatch() patch.Patch {
	return e.reg.Get(host.PointPathInit, func() patch.Patch {
		return patch.NewInitPatch(e.rt, e.disc, e.log)
	})
}

func (e *Engine) authPatch() patch.Patch {
	return e.reg.Get(host.PointImportAuth, func() patch.Patch {
		return patch.NewAuthPatch(e.rt, e.disc, e.log)
	})
}

func (e *Engine) preservePatch() patch.Patch {
	return e.reg.Get(host.PointPathUpdate, func() patch.Patch {
		return patch.NewPreservePatch(e.rt, e.disc, e.log)
	})
}

func (e *Engine) allowlistPatch() patch.Patch {
	return e.reg.Get(host.PointAllowRegistry, func() patch.Patch {
		return patch.NewAllowlistPatch(e.rt, e.disc, e.log)
	})
}

// orderedPatches returns the override patches in apply priority order.
func (e *Engine) orderedPatches() []patch.Patch {
	return []patch.Patch{
		e.initPatch(),
		e.authPatch(),
		e.preservePatch(),
		e.allowlistPatch(),
	}
}

// checks returns the verification-only checks.
func (e *Engine) checks() []patch.Check {
	return []patch.Check{
		patch.NewLookupCheck(e.rt, e.disc, e.log),
		patch.NewResolveCheck(e.rt, e.disc, e.log),
	}
}

// RefreshPaths re-runs discovery and pushes the new path view into
// every constructed patch, returning the new path count. Safe to call
// in any state; applied overrides pick up the new view on their next
// invocation without being reapplied.
func (e *Engine) RefreshPaths() int {
	count := e.disc.Refresh(false).Len()
	for _, target := range []host.Point{
		host.PointPathInit,
		host.PointImportAuth,
		host.PointPathUpdate,
		host.PointAllowRegistry,
	} {
		if p, ok := e.reg.Lookup(target); ok {
			count = p.RefreshPaths()
		}
	}
	return count
}

// runStep executes fn with panic isolation: a panicking step degrades
// to a failed StepResult instead of aborting the pass.
func runStep(name string, rank int, fn func() StepResult) (sr StepResult) {
	defer func() {
		if r := recover(); r != nil {
			sr = StepResult{
				Name:        name,
				Rank:        rank,
				TargetFound: true,
				Err:         fmt.Sprintf("step panicked: %v", r),
			}
		}
	}()

	sr = fn()
	sr.Name = name
	sr.Rank = rank
	return sr
}
