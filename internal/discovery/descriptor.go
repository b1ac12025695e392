// Package discovery locates editable-install descriptor files under
// package registry directories and resolves them to the set of source
// directories they point at.
//
// Three descriptor kinds are recognized, in fixed priority order:
//
//  1. legacy link files (*.egg-link) - the first non-empty line is the
//     installed source path, metadata lines after it are ignored
//  2. marker path files (__editable__*.pth) - modern editable installs,
//     one candidate path per line
//  3. plain path files (*.pth) - same line rules as marker files, minus
//     the marker name requirement
//
// Discovery is read-only: it never touches the host's module search
// list. A descriptor that cannot be read is skipped, never fatal.
package discovery

import "strings"

// Descriptor file naming.
const (
	// LegacyLinkSuffix marks legacy link files.
	LegacyLinkSuffix = ".egg-link"

	// PathFileSuffix marks per-line path files, both marker and plain.
	PathFileSuffix = ".pth"

	// MarkerToken distinguishes marker path files from plain ones.
	MarkerToken = "__editable__"
)

// Kind classifies a descriptor file.
type Kind string

// Descriptor kinds in priority order.
const (
	KindLegacyLink Kind = "legacy-link"
	KindMarker     Kind = "marker"
	KindPlain      Kind = "plain"
)

// Descriptor is one discovered descriptor file with its extracted,
// validated directory paths. Descriptors are created during a scan pass
// and discarded after their paths merge into the PathSet.
type Descriptor struct {
	// File is the descriptor file path.
	File string

	// Kind is the detection method.
	Kind Kind

	// Paths are the extracted absolute directory paths. May be empty.
	Paths []string
}

// classify returns the descriptor kind for a file name, or false if the
// name is not a descriptor.
func classify(name string) (Kind, bool) {
	switch {
	case strings.HasSuffix(name, LegacyLinkSuffix):
		return KindLegacyLink, true
	case strings.HasSuffix(name, PathFileSuffix) && strings.Contains(name, MarkerToken):
		return KindMarker, true
	case strings.HasSuffix(name, PathFileSuffix):
		return KindPlain, true
	}
	return "", false
}
