package engine

import (
	"time"

	"github.com/editfix/editfix/internal/host"
)

// StepResult records the outcome of one orchestrated step.
type StepResult struct {
	// Name identifies the step.
	Name string `json:"name"`

	// Rank is the step's apply priority (1-based).
	Rank int `json:"rank"`

	// Success reports whether the step took effect.
	Success bool `json:"success"`

	// AlreadyApplied is set when the step found its override in place.
	AlreadyApplied bool `json:"already_applied,omitempty"`

	// TargetFound is false when the host does not expose the step's
	// interception point.
	TargetFound bool `json:"target_found"`

	// PathCount is the number of editable paths the step considered.
	PathCount int `json:"path_count,omitempty"`

	// Detail is a human-readable note about the outcome.
	Detail string `json:"detail,omitempty"`

	// Err carries a failure description.
	Err string `json:"error,omitempty"`

	// Checks holds per-check outcomes for the verification step.
	Checks []CheckStepResult `json:"checks,omitempty"`
}

// CheckStepResult records one verification check within the
// verification step.
type CheckStepResult struct {
	Name        string `json:"name"`
	Verified    bool   `json:"verified"`
	TargetFound bool   `json:"target_found"`
	Detail      string `json:"detail,omitempty"`
}

// AggregateResult enumerates the outcome of a full apply or remove
// pass: which steps succeeded, which were not applicable, and which
// failed with a message.
type AggregateResult struct {
	// Steps are the per-step outcomes in execution order.
	Steps []StepResult `json:"steps"`

	// Paths is the editable path set the pass worked from.
	Paths []string `json:"paths"`

	// PathCount is len(Paths).
	PathCount int `json:"path_count"`

	// Generation is the discovery generation the pass consumed.
	Generation uint64 `json:"generation"`

	// Success is the overall outcome. For apply: the merge succeeded
	// and at least one override took effect. For remove: at least one
	// override was removed.
	Success bool `json:"success"`

	// CompletedAt is when the pass finished.
	CompletedAt time.Time `json:"completed_at"`
}

// Step returns the step result with the given name, if present.
func (r *AggregateResult) Step(name string) (StepResult, bool) {
	for _, s := range r.Steps {
		if s.Name == name {
			return s, true
		}
	}
	return StepResult{}, false
}

// PatchStatus is one patch's state in a status report.
type PatchStatus struct {
	// Target is the interception point identity.
	Target host.Point `json:"target"`

	// Applied reports whether the override is installed.
	Applied bool `json:"applied"`
}

// StatusResult is the non-mutating status report.
type StatusResult struct {
	// Patches lists each override's state in priority order.
	Patches []PatchStatus `json:"patches"`

	// PathCount is the current editable path count.
	PathCount int `json:"path_count"`

	// Paths is the current editable path set.
	Paths []string `json:"paths"`

	// Generation is the current discovery generation.
	Generation uint64 `json:"generation"`
}

// Applied reports whether the override for target is installed.
func (r *StatusResult) Applied(target host.Point) bool {
	for _, p := range r.Patches {
		if p.Target == target {
			return p.Applied
		}
	}
	return false
}

// VerifyResult reports whether editable installs are usable right now.
type VerifyResult struct {
	// EditablePaths is the discovered set.
	EditablePaths []string `json:"editable_paths"`

	// InSearchList are the discovered paths currently present in the
	// host's module search list.
	InSearchList []string `json:"in_search_list"`

	// Missing are the discovered paths absent from the search list.
	Missing []string `json:"missing"`

	// Patches lists each override's state.
	Patches []PatchStatus `json:"patches"`

	// Status is "ok" when every path is in the search list and at least
	// one path exists, "warning" otherwise.
	Status string `json:"status"`
}
