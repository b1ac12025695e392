package host

import (
	"os"
	"strings"
	"sync"
)

// MemoryRuntime is an in-process Runtime implementation.
//
// Its default behaviors reproduce the restrictive shape of the managed
// hosts this tool targets: initialization resets the search list to its
// seed, authorization admits only configured system roots, and the
// mutation handler prunes everything it does not recognize. Tests and
// embedding programs can replace any of that through the slots, and
// individual points can be marked absent to simulate running outside
// the expected host.
type MemoryRuntime struct {
	mu       sync.RWMutex
	baseline []string
	paths    []string
	sysRoots []string

	absent map[Point]bool

	initFn    InitFunc
	authFn    AuthFunc
	updateFn  UpdateFunc
	lookupFn  LookupFunc
	resolveFn ResolveFunc

	checks    map[int]AllowCheck
	nextCheck int
}

// MemoryOption configures a MemoryRuntime.
type MemoryOption func(*MemoryRuntime)

// WithSearchPaths seeds the module search list. The seed is also the
// baseline the default initialization routine resets to.
func WithSearchPaths(paths ...string) MemoryOption {
	return func(rt *MemoryRuntime) {
		rt.baseline = append([]string(nil), paths...)
		rt.paths = append([]string(nil), paths...)
	}
}

// WithSystemRoots configures the directories the default authorization
// check admits.
func WithSystemRoots(roots ...string) MemoryOption {
	return func(rt *MemoryRuntime) {
		rt.sysRoots = append([]string(nil), roots...)
	}
}

// WithoutPoints marks interception points as absent.
func WithoutPoints(points ...Point) MemoryOption {
	return func(rt *MemoryRuntime) {
		for _, p := range points {
			rt.absent[p] = true
		}
	}
}

// NewMemoryRuntime creates a MemoryRuntime with restrictive defaults.
func NewMemoryRuntime(opts ...MemoryOption) *MemoryRuntime {
	rt := &MemoryRuntime{
		absent: make(map[Point]bool),
		checks: make(map[int]AllowCheck),
	}
	for _, opt := range opts {
		opt(rt)
	}

	rt.initFn = rt.defaultInit
	rt.authFn = rt.defaultAuth
	rt.updateFn = rt.defaultUpdate
	rt.lookupFn = func(string) bool { return false }
	rt.resolveFn = func(string, string) error { return nil }

	return rt
}

// Detached returns a runtime with every interception point absent and an
// empty search list. The CLI uses it when no embedding host is bound:
// discovery and the immediate merge still function, while every patch
// reports its target as not found.
func Detached() *MemoryRuntime {
	return NewMemoryRuntime(WithoutPoints(
		PointPathInit,
		PointImportAuth,
		PointPathUpdate,
		PointAllowRegistry,
		PointPathLookup,
		PointPostResolve,
	))
}

func (rt *MemoryRuntime) defaultInit() {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.paths = append([]string(nil), rt.baseline...)
}

func (rt *MemoryRuntime) defaultAuth(origin string) bool {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	for _, root := range rt.sysRoots {
		if underDir(origin, root) {
			return true
		}
	}
	return false
}

func (rt *MemoryRuntime) defaultUpdate() {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	keep := rt.paths[:0]
	for _, p := range rt.paths {
		if rt.recognizedLocked(p) {
			keep = append(keep, p)
		}
	}
	rt.paths = keep
}

func (rt *MemoryRuntime) recognizedLocked(path string) bool {
	for _, b := range rt.baseline {
		if path == b {
			return true
		}
	}
	for _, root := range rt.sysRoots {
		if underDir(path, root) {
			return true
		}
	}
	return false
}

func underDir(path, dir string) bool {
	if dir == "" {
		return false
	}
	return path == dir || strings.HasPrefix(path, dir+string(os.PathSeparator))
}

// SearchList returns the live module search list.
func (rt *MemoryRuntime) SearchList() SearchList {
	return (*memorySearchList)(rt)
}

// PathInit returns the initialization slot.
func (rt *MemoryRuntime) PathInit() (Slot[InitFunc], bool) {
	if rt.absent[PointPathInit] {
		return nil, false
	}
	return funcSlot[InitFunc]{mu: &rt.mu, fn: &rt.initFn}, true
}

// ImportAuth returns the import authorization slot.
func (rt *MemoryRuntime) ImportAuth() (Slot[AuthFunc], bool) {
	if rt.absent[PointImportAuth] {
		return nil, false
	}
	return funcSlot[AuthFunc]{mu: &rt.mu, fn: &rt.authFn}, true
}

// PathUpdate returns the mutation handler slot.
func (rt *MemoryRuntime) PathUpdate() (Slot[UpdateFunc], bool) {
	if rt.absent[PointPathUpdate] {
		return nil, false
	}
	return funcSlot[UpdateFunc]{mu: &rt.mu, fn: &rt.updateFn}, true
}

// AllowRegistry returns the allow-check registration slot.
func (rt *MemoryRuntime) AllowRegistry() (AllowRegistry, bool) {
	if rt.absent[PointAllowRegistry] {
		return nil, false
	}
	return (*memoryAllowRegistry)(rt), true
}

// PathLookup returns the path-lookup helper slot.
func (rt *MemoryRuntime) PathLookup() (Slot[LookupFunc], bool) {
	if rt.absent[PointPathLookup] {
		return nil, false
	}
	return funcSlot[LookupFunc]{mu: &rt.mu, fn: &rt.lookupFn}, true
}

// PostResolve returns the post-resolution callback slot.
func (rt *MemoryRuntime) PostResolve() (Slot[ResolveFunc], bool) {
	if rt.absent[PointPostResolve] {
		return nil, false
	}
	return funcSlot[ResolveFunc]{mu: &rt.mu, fn: &rt.resolveFn}, true
}

// InvokePathInit runs the current initialization behavior, as the host
// would on startup or a context reset.
func (rt *MemoryRuntime) InvokePathInit() {
	rt.mu.RLock()
	fn := rt.initFn
	rt.mu.RUnlock()
	if fn != nil {
		fn()
	}
}

// InvokePathUpdate runs the current mutation handler, as the host would
// after rewriting the search list.
func (rt *MemoryRuntime) InvokePathUpdate() {
	rt.mu.RLock()
	fn := rt.updateFn
	rt.mu.RUnlock()
	if fn != nil {
		fn()
	}
}

// Authorized reports whether an import from origin would be allowed,
// combining the authorization slot with every registered allow check.
// This is the composite the host consults per import.
func (rt *MemoryRuntime) Authorized(origin string) bool {
	rt.mu.RLock()
	auth := rt.authFn
	checks := make([]AllowCheck, 0, len(rt.checks))
	for _, c := range rt.checks {
		checks = append(checks, c)
	}
	rt.mu.RUnlock()

	if auth != nil && auth(origin) {
		return true
	}
	for _, c := range checks {
		if c(origin) {
			return true
		}
	}
	return false
}

// RegisteredChecks returns the number of registered allow checks.
func (rt *MemoryRuntime) RegisteredChecks() int {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	return len(rt.checks)
}

// funcSlot adapts a guarded function pointer to the Slot interface.
type funcSlot[T any] struct {
	mu *sync.RWMutex
	fn *T
}

func (s funcSlot[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return *s.fn
}

func (s funcSlot[T]) Set(fn T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	*s.fn = fn
}

// memorySearchList exposes the runtime's path slice as a SearchList.
type memorySearchList MemoryRuntime

func (l *memorySearchList) Paths() []string {
	rt := (*MemoryRuntime)(l)
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	return append([]string(nil), rt.paths...)
}

func (l *memorySearchList) Contains(path string) bool {
	rt := (*MemoryRuntime)(l)
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	for _, p := range rt.paths {
		if p == path {
			return true
		}
	}
	return false
}

func (l *memorySearchList) Append(path string) {
	rt := (*MemoryRuntime)(l)
	rt.mu.Lock()
	defer rt.mu.Unlock()
	for _, p := range rt.paths {
		if p == path {
			return
		}
	}
	rt.paths = append(rt.paths, path)
}

// memoryAllowRegistry exposes the runtime's check table.
type memoryAllowRegistry MemoryRuntime

func (r *memoryAllowRegistry) Register(check AllowCheck) func() {
	rt := (*MemoryRuntime)(r)
	rt.mu.Lock()
	id := rt.nextCheck
	rt.nextCheck++
	rt.checks[id] = check
	rt.mu.Unlock()

	return func() {
		rt.mu.Lock()
		delete(rt.checks, id)
		rt.mu.Unlock()
	}
}
