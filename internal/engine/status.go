package engine

// Status reports each override's applied state and the cached path
// count. It performs no mutation: patches are queried, discovery is
// not re-run.
func (e *Engine) Status() *StatusResult {
	set := e.disc.Current()

	var patches []PatchStatus
	for _, p := range e.orderedPatches() {
		patches = append(patches, PatchStatus{
			Target:  p.Target(),
			Applied: p.IsApplied(),
		})
	}

	return &StatusResult{
		Patches:    patches,
		PathCount:  set.Len(),
		Paths:      set.Paths(),
		Generation: set.Generation(),
	}
}
