// Package host models the surface of the embedding interpreter runtime
// that editfix patches.
//
// The runtimes this tool targets replace the interpreter's normal module
// search initialization with their own interception logic: a path
// initialization routine, a per-import authorization check, a handler
// that rewrites the module search list on context changes, and a few
// auxiliary hooks. Go cannot reassign methods on foreign objects at
// runtime, so every interception point is modeled as a function-valued
// Slot the embedding program wires up and the patch engine reads,
// wraps, and restores explicitly.
//
// A point that the embedding host does not expose is simply absent:
// the accessor returns ok=false and the engine records the patch as
// not applicable rather than failing.
package host

// Point is the stable identity of one host interception point.
type Point string

// Interception points, ordered by patch priority.
const (
	// PointPathInit is the host's module-search-list initialization
	// routine, invoked by the host on startup and context resets.
	PointPathInit Point = "path-init"

	// PointImportAuth is the host's per-import authorization check.
	PointImportAuth Point = "import-auth"

	// PointPathUpdate is the host's search-list mutation handler, run
	// after the host rewrites the search list (directory or notebook
	// context changes).
	PointPathUpdate Point = "path-update"

	// PointAllowRegistry is an optional registration slot for extra
	// allow checks, offered by some hosts instead of requiring a full
	// override.
	PointAllowRegistry Point = "allow-registry"

	// PointPathLookup is the host's path-lookup helper. Verified only,
	// never overridden.
	PointPathLookup Point = "path-lookup"

	// PointPostResolve is the host's post-resolution callback. Verified
	// only, never overridden.
	PointPostResolve Point = "post-resolve"
)

// InitFunc is the host's search-list initialization routine.
type InitFunc func()

// AuthFunc reports whether an import whose code originates at the given
// file path is authorized.
type AuthFunc func(origin string) bool

// UpdateFunc is the host's search-list mutation handler.
type UpdateFunc func()

// AllowCheck reports whether resolution from the given file path is
// allowed. Checks registered through an AllowRegistry extend, never
// replace, the host's own authorization.
type AllowCheck func(origin string) bool

// LookupFunc reports whether the host's path-lookup helper claims
// ownership of files under the given directory. A helper that claims an
// editable directory would shadow its packages.
type LookupFunc func(dir string) bool

// ResolveFunc is the host's post-resolution callback, invoked with the
// resolved module name and its originating file. A non-nil error rejects
// the resolution.
type ResolveFunc func(module, origin string) error

// Slot is one function-valued interception point. Get returns the
// current behavior; Set replaces it. The patch engine always saves the
// value returned by Get before calling Set, and restores it on removal.
type Slot[T any] interface {
	Get() T
	Set(fn T)
}

// SearchList is the host's ordered module search list. It is a shared,
// externally mutated resource: consumers must read the current state and
// append only what is missing, never overwrite wholesale.
type SearchList interface {
	// Paths returns a copy of the current entries in order.
	Paths() []string

	// Contains reports whether path is currently an entry.
	Contains(path string) bool

	// Append adds path at the end if it is not already present.
	Append(path string)
}

// AllowRegistry is the registration slot for additional allow checks.
type AllowRegistry interface {
	// Register adds a check and returns a cancel function that removes
	// exactly that registration.
	Register(check AllowCheck) (cancel func())
}

// Runtime is the full host surface. Accessors return ok=false when the
// embedding host does not expose the corresponding point.
type Runtime interface {
	SearchList() SearchList

	PathInit() (Slot[InitFunc], bool)
	ImportAuth() (Slot[AuthFunc], bool)
	PathUpdate() (Slot[UpdateFunc], bool)
	AllowRegistry() (AllowRegistry, bool)

	PathLookup() (Slot[LookupFunc], bool)
	PostResolve() (Slot[ResolveFunc], bool)
}
