package discovery

import "sort"

// PathSet is a deduplicated, sorted collection of absolute directory
// paths, each validated to exist and be a directory at scan time. The
// generation counter increases on every refresh so consumers can tell
// which pass their cached view came from.
//
// A PathSet is immutable after construction; the discovery engine hands
// out the same instance to every consumer.
type PathSet struct {
	paths      []string
	generation uint64
}

func newPathSet(paths []string, generation uint64) *PathSet {
	seen := make(map[string]struct{}, len(paths))
	unique := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		unique = append(unique, p)
	}
	sort.Strings(unique)

	return &PathSet{paths: unique, generation: generation}
}

// Paths returns a copy of the paths in sorted order.
func (s *PathSet) Paths() []string {
	return append([]string(nil), s.paths...)
}

// Contains reports whether path is in the set.
func (s *PathSet) Contains(path string) bool {
	i := sort.SearchStrings(s.paths, path)
	return i < len(s.paths) && s.paths[i] == path
}

// Len returns the number of paths.
func (s *PathSet) Len() int {
	return len(s.paths)
}

// Generation returns the refresh pass this set was produced by.
func (s *PathSet) Generation() uint64 {
	return s.generation
}

// Equal reports value equality of the path collections, ignoring
// generations.
func (s *PathSet) Equal(o *PathSet) bool {
	if o == nil || len(s.paths) != len(o.paths) {
		return false
	}
	for i, p := range s.paths {
		if o.paths[i] != p {
			return false
		}
	}
	return true
}

func (s *PathSet) withGeneration(generation uint64) *PathSet {
	return &PathSet{paths: s.paths, generation: generation}
}
