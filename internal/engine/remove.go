package engine

import "github.com/editfix/editfix/internal/patch"

// RemoveAll restores original behavior for every applied override, in
// reverse priority order. Overrides that were never applied report
// success=false with a note; that is informational, not a failure.
func (e *Engine) RemoveAll() *AggregateResult {
	e.log.Section("Removing editable-install overrides")

	ordered := e.orderedPatches()

	var steps []StepResult
	rank := 1
	for i := len(ordered) - 1; i >= 0; i-- {
		p := ordered[i]
		name := removeStepName(p)
		steps = append(steps, runStep(name, rank, func() StepResult {
			removed := p.Remove()
			sr := StepResult{Success: removed, TargetFound: true}
			if !removed {
				sr.Detail = "not applied"
			}
			return sr
		}))
		rank++
	}

	set := e.disc.Current()
	result := &AggregateResult{
		Steps:       steps,
		Paths:       set.Paths(),
		PathCount:   set.Len(),
		Generation:  set.Generation(),
		CompletedAt: e.clk.Now(),
	}

	for _, s := range steps {
		if s.Success {
			result.Success = true
		}
	}

	if result.Success {
		e.log.Successf("overrides removed")
	} else {
		e.log.Warnf("no overrides were active")
	}
	return result
}

func removeStepName(p patch.Patch) string {
	return "remove-" + string(p.Target())
}
