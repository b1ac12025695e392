package engine

// Verify reports whether editable installs are usable right now: which
// discovered paths made it into the host's module search list, and
// which overrides are active. Read-only apart from the discovery scan.
func (e *Engine) Verify() *VerifyResult {
	e.log.Section("Verifying editable-install configuration")

	set := e.disc.Refresh(false)
	list := e.rt.SearchList()

	var present, missing []string
	for _, p := range set.Paths() {
		if list.Contains(p) {
			present = append(present, p)
		} else {
			missing = append(missing, p)
		}
	}

	var patches []PatchStatus
	for _, p := range e.orderedPatches() {
		patches = append(patches, PatchStatus{
			Target:  p.Target(),
			Applied: p.IsApplied(),
		})
	}

	status := "ok"
	if set.Len() == 0 || len(missing) > 0 {
		status = "warning"
	}

	result := &VerifyResult{
		EditablePaths: set.Paths(),
		InSearchList:  present,
		Missing:       missing,
		Patches:       patches,
		Status:        status,
	}

	e.log.Infof("editable paths detected: %d", set.Len())
	e.log.Infof("paths in search list: %d", len(present))
	for _, m := range missing {
		e.log.Warnf("not in search list: %s", m)
	}
	if status == "ok" {
		e.log.Successf("editable install configuration looks good")
	} else {
		e.log.Warnf("issues detected, run apply to fix")
	}

	return result
}
