package engine

import (
	"fmt"

	"github.com/editfix/editfix/internal/patch"
)

// ApplyAll runs discovery and applies every override in priority order:
//
//  1. path-init override, so future host initializations re-merge
//  2. an immediate merge into the search list
//  3. import-auth override
//  4. path-preserve override
//  5. allowlist registration
//  6. verification-only checks
//
// When forceRefresh is false a cached, unchanged descriptor set is
// reused. Steps are independent: a failing or inapplicable step never
// stops the ones after it.
func (e *Engine) ApplyAll(forceRefresh bool) *AggregateResult {
	e.log.Section("Applying editable-install overrides")

	set := e.disc.Refresh(forceRefresh)

	steps := []StepResult{
		runStep(StepPathInit, 1, func() StepResult {
			return patchStep(e.initPatch())
		}),
		runStep(StepMerge, 2, func() StepResult {
			return e.mergeStep()
		}),
		runStep(StepAuth, 3, func() StepResult {
			return patchStep(e.authPatch())
		}),
		runStep(StepPreserve, 4, func() StepResult {
			return patchStep(e.preservePatch())
		}),
		runStep(StepAllowlist, 5, func() StepResult {
			return patchStep(e.allowlistPatch())
		}),
		runStep(StepVerify, 6, func() StepResult {
			return e.verifyStep()
		}),
	}

	result := &AggregateResult{
		Steps:       steps,
		Paths:       set.Paths(),
		PathCount:   set.Len(),
		Generation:  set.Generation(),
		CompletedAt: e.clk.Now(),
	}

	merge, _ := result.Step(StepMerge)
	overrides := 0
	for _, name := range []string{StepPathInit, StepAuth, StepPreserve, StepAllowlist} {
		if s, ok := result.Step(name); ok && s.Success {
			overrides++
		}
	}
	result.Success = merge.Success && overrides > 0

	e.logApplyOutcome(result, overrides)
	return result
}

// patchStep applies one patch and converts its result.
func patchStep(p patch.Patch) StepResult {
	r := p.Apply()
	return StepResult{
		Success:        r.Success,
		AlreadyApplied: r.AlreadyApplied,
		TargetFound:    r.TargetFound,
		PathCount:      r.PathCount,
		Err:            r.Err,
	}
}

// mergeStep appends the discovered paths to the host search list now,
// without waiting for the next host-triggered initialization.
func (e *Engine) mergeStep() StepResult {
	set := e.disc.Current()
	added := patch.MergePaths(e.rt.SearchList(), set.Paths())

	return StepResult{
		Success:     true,
		TargetFound: true,
		PathCount:   set.Len(),
		Detail:      fmt.Sprintf("added %d path(s) to the module search list", added),
	}
}

// verifyStep runs the read-only checks and aggregates them into one
// step result: found checks must all verify for the step to succeed.
func (e *Engine) verifyStep() StepResult {
	var (
		outcomes []CheckStepResult
		found    int
		verified int
	)
	for _, c := range e.checks() {
		r := c.Verify()
		outcomes = append(outcomes, CheckStepResult{
			Name:        c.Name(),
			Verified:    r.Verified,
			TargetFound: r.TargetFound,
			Detail:      r.Detail,
		})
		if r.TargetFound {
			found++
			if r.Verified {
				verified++
			}
		}
	}

	return StepResult{
		Success:     found > 0 && verified == found,
		TargetFound: found > 0,
		Checks:      outcomes,
	}
}

func (e *Engine) logApplyOutcome(result *AggregateResult, overrides int) {
	if overrides > 0 {
		e.log.Successf("applied %d override(s)", overrides)
	} else {
		e.log.Warnf("no overrides applied (host interception points not found)")
	}

	if result.PathCount > 0 {
		e.log.Infof("editable install paths (%d):", result.PathCount)
		e.log.List(result.Paths)
	} else {
		e.log.Warnf("no editable installs detected")
	}
}
