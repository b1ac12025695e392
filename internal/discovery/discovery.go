package discovery

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/editfix/editfix/internal/hash"
	"github.com/editfix/editfix/internal/host"
	"github.com/editfix/editfix/internal/termlog"
)

// Engine scans base directories for editable-install descriptors and
// owns the resulting PathSet. Consumers hold read-only views.
type Engine struct {
	mu       sync.Mutex
	baseDirs []string
	fp       hash.Fingerprinter
	log      *termlog.Logger

	current    *PathSet
	lastDigest string
	generation uint64
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithFingerprinter overrides the descriptor-set fingerprinter.
func WithFingerprinter(fp hash.Fingerprinter) EngineOption {
	return func(e *Engine) {
		e.fp = fp
	}
}

// WithLogger overrides the diagnostic logger.
func WithLogger(log *termlog.Logger) EngineOption {
	return func(e *Engine) {
		e.log = log
	}
}

// NewEngine creates an Engine scanning the given base directories.
func NewEngine(baseDirs []string, opts ...EngineOption) *Engine {
	e := &Engine{
		baseDirs: append([]string(nil), baseDirs...),
		fp:       hash.NewSHA256Fingerprinter(),
		log:      termlog.New(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// BaseDirs returns the scanned base directories.
func (e *Engine) BaseDirs() []string {
	return append([]string(nil), e.baseDirs...)
}

// Discover performs a full scan pass and returns the new PathSet.
func (e *Engine) Discover() *PathSet {
	return e.Refresh(true)
}

// Refresh returns the current PathSet under a new generation. When
// force is false and the descriptor files are unchanged since the last
// pass, the previously parsed paths are reused; otherwise every
// descriptor is re-parsed. The returned set is always equal by value to
// what a full scan would produce.
func (e *Engine) Refresh(force bool) *PathSet {
	e.mu.Lock()
	defer e.mu.Unlock()

	files := e.listDescriptorFiles()
	digest := e.fp.FingerprintFiles(files)

	e.generation++

	if !force && e.current != nil && digest == e.lastDigest {
		e.log.Debugf("discovery: descriptors unchanged, reusing %d path(s)", e.current.Len())
		e.current = e.current.withGeneration(e.generation)
		return e.current
	}

	descriptors := e.parseAll(files)

	var all []string
	for _, d := range descriptors {
		all = append(all, d.Paths...)
	}

	e.current = newPathSet(all, e.generation)
	e.lastDigest = digest

	e.log.Debugf("discovery: %d descriptor(s) across %d base dir(s), %d unique path(s)",
		len(descriptors), len(e.baseDirs), e.current.Len())

	return e.current
}

// Current returns the most recent PathSet, scanning first if no pass
// has run yet.
func (e *Engine) Current() *PathSet {
	e.mu.Lock()
	cur := e.current
	e.mu.Unlock()

	if cur == nil {
		return e.Refresh(true)
	}
	return cur
}

// Paths returns the current paths. It satisfies the path source
// contract consumed by hook patches.
func (e *Engine) Paths() []string {
	return e.Current().Paths()
}

// listDescriptorFiles enumerates descriptor files across all base
// directories, grouped by kind priority within each directory.
// Unreadable directories are skipped.
func (e *Engine) listDescriptorFiles() []string {
	var files []string
	for _, dir := range e.baseDirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			e.log.Debugf("discovery: cannot scan %s: %v", dir, err)
			continue
		}

		byKind := map[Kind][]string{}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			kind, ok := classify(entry.Name())
			if !ok {
				continue
			}
			byKind[kind] = append(byKind[kind], filepath.Join(dir, entry.Name()))
		}

		for _, kind := range []Kind{KindLegacyLink, KindMarker, KindPlain} {
			group := byKind[kind]
			sort.Strings(group)
			files = append(files, group...)
		}
	}
	return files
}

// parseAll parses every descriptor file, skipping unreadable ones.
func (e *Engine) parseAll(files []string) []Descriptor {
	var descriptors []Descriptor
	for _, file := range files {
		kind, ok := classify(filepath.Base(file))
		if !ok {
			continue
		}

		var (
			paths []string
			err   error
		)
		switch kind {
		case KindLegacyLink:
			paths, err = parseLinkFile(file)
		default:
			paths, err = parsePathFile(file)
		}
		if err != nil {
			e.log.Debugf("discovery: skipping %s: %v", file, err)
			continue
		}

		descriptors = append(descriptors, Descriptor{File: file, Kind: kind, Paths: paths})
	}
	return descriptors
}

// RegistryDirs extracts likely package-registry directories from a host
// search list: entries naming a site-packages or dist-packages
// directory that exist on disk.
func RegistryDirs(list host.SearchList) []string {
	var dirs []string
	for _, p := range list.Paths() {
		if !strings.Contains(p, "site-packages") && !strings.Contains(p, "dist-packages") {
			continue
		}
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			dirs = append(dirs, p)
		}
	}
	return dirs
}
