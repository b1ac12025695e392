package patch

// FailDirection is the explicit policy for what an installed wrapper
// does when the behavior it wraps panics. Each override names its own
// direction; the directions are deliberately not uniform.
type FailDirection int

const (
	// FailOpen permits the operation when the outcome cannot be
	// determined.
	FailOpen FailDirection = iota

	// FailClosed blocks the operation when the outcome cannot be
	// determined.
	FailClosed
)

// Per-override fail directions.
//
// The initialization and preservation wrappers run during interpreter
// startup and context switches: a defect there must never abort the
// host, so they swallow the failure and leave the search list as the
// original behavior produced it. The authorization wrapper keeps the
// historical deny-on-failure behavior of the hosts it wraps.
const (
	initFailDirection     = FailOpen
	authFailDirection     = FailClosed
	preserveFailDirection = FailOpen
)

func (d FailDirection) String() string {
	if d == FailClosed {
		return "fail-closed"
	}
	return "fail-open"
}
