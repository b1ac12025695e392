package patch

import (
	"fmt"
	"path/filepath"

	"github.com/editfix/editfix/internal/host"
	"github.com/editfix/editfix/internal/termlog"
)

// CheckResult is the outcome of one read-only verification.
type CheckResult struct {
	// Verified is true when the probed interception point tolerates
	// every current editable path without modification.
	Verified bool `json:"verified"`

	// TargetFound is false when the host does not expose the point.
	TargetFound bool `json:"target_found"`

	// Detail is a human-readable explanation of the outcome.
	Detail string `json:"detail,omitempty"`
}

// Check is a read-only confirmation that a host interception point
// needs no override. Checks never mutate host state; they guard against
// silent regressions if host behavior changes shape.
type Check interface {
	Name() string
	Verify() CheckResult
}

// LookupCheck probes the host's path-lookup helper: it must not claim
// ownership of any editable directory, or it would shadow the packages
// inside.
type LookupCheck struct {
	rt  host.Runtime
	src PathSource
	log *termlog.Logger
}

// NewLookupCheck creates the path-lookup verification.
func NewLookupCheck(rt host.Runtime, src PathSource, log *termlog.Logger) *LookupCheck {
	if log == nil {
		log = termlog.New()
	}
	return &LookupCheck{rt: rt, src: src, log: log}
}

// Name returns the probed point's identity.
func (c *LookupCheck) Name() string {
	return string(host.PointPathLookup)
}

// Verify probes the helper against every current editable path.
func (c *LookupCheck) Verify() (result CheckResult) {
	defer func() {
		if r := recover(); r != nil {
			result = CheckResult{TargetFound: true, Detail: fmt.Sprintf("lookup helper panicked: %v", r)}
		}
	}()

	slot, ok := c.rt.PathLookup()
	if !ok {
		return CheckResult{Detail: "path-lookup helper not exposed by host"}
	}

	lookup := slot.Get()
	if lookup == nil {
		return CheckResult{TargetFound: true, Detail: "path-lookup slot holds no behavior"}
	}

	for _, dir := range c.src.Current().Paths() {
		if lookup(dir) {
			return CheckResult{
				TargetFound: true,
				Detail:      fmt.Sprintf("lookup helper claims editable directory %s", dir),
			}
		}
	}

	return CheckResult{
		Verified:    true,
		TargetFound: true,
		Detail:      "lookup helper claims no editable directories",
	}
}

// ResolveCheck probes the host's post-resolution callback: invoked with
// a module resolved from an editable directory, it must not reject the
// resolution.
type ResolveCheck struct {
	rt  host.Runtime
	src PathSource
	log *termlog.Logger
}

// NewResolveCheck creates the post-resolution verification.
func NewResolveCheck(rt host.Runtime, src PathSource, log *termlog.Logger) *ResolveCheck {
	if log == nil {
		log = termlog.New()
	}
	return &ResolveCheck{rt: rt, src: src, log: log}
}

// Name returns the probed point's identity.
func (c *ResolveCheck) Name() string {
	return string(host.PointPostResolve)
}

// probeModule is the synthetic module name used for resolve probes.
const probeModule = "editfix_probe"

// Verify invokes the callback with synthetic editable origins.
func (c *ResolveCheck) Verify() (result CheckResult) {
	defer func() {
		if r := recover(); r != nil {
			result = CheckResult{TargetFound: true, Detail: fmt.Sprintf("resolve callback panicked: %v", r)}
		}
	}()

	slot, ok := c.rt.PostResolve()
	if !ok {
		return CheckResult{Detail: "post-resolution callback not exposed by host"}
	}

	resolve := slot.Get()
	if resolve == nil {
		return CheckResult{TargetFound: true, Detail: "post-resolution slot holds no behavior"}
	}

	for _, dir := range c.src.Current().Paths() {
		origin := filepath.Join(dir, probeModule+".py")
		if err := resolve(probeModule, origin); err != nil {
			return CheckResult{
				TargetFound: true,
				Detail:      fmt.Sprintf("resolve callback rejected %s: %v", origin, err),
			}
		}
	}

	return CheckResult{
		Verified:    true,
		TargetFound: true,
		Detail:      "resolve callback accepts editable origins",
	}
}
