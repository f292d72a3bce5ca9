package groupsig

import "errors"

// Outcome is the cryptographic predicate half of the three-valued result
// spec.md §4.9/§7 asks for. A well-formed input always yields an Outcome;
// a malformed one yields an error instead (see the sentinel errors below).
// This disambiguates the source's conflated IERROR into
// Result<Outcome, error>, per the REDESIGN FLAG in spec.md §9.
type Outcome int

const (
	// Accept means the cryptographic predicate evaluated true (OK).
	Accept Outcome = iota
	// Reject means the predicate evaluated false (FAIL) on well-formed input.
	Reject
)

func (o Outcome) Bool() bool { return o == Accept }

// OutcomeOf converts a plain boolean predicate result into an Outcome.
func OutcomeOf(ok bool) Outcome {
	if ok {
		return Accept
	}
	return Reject
}

// Sentinel errors distinguishing the ERROR paths of spec.md §7 from one
// another, so callers can branch on the specific invariant violated rather
// than parsing error text.
var (
	// ErrSchemeMismatch is returned when a call mixes objects whose scheme
	// codes differ, or an object's code does not match the table used to
	// build it (spec.md §3, §4.1: "Cross-scheme object mixing ... is a
	// type error and must fail").
	ErrSchemeMismatch = errors.New("groupsig: scheme code mismatch")

	// ErrKeyTypeMismatch is returned when a serialized key's type byte does
	// not match what the importer expected (spec.md §3, §4.3).
	ErrKeyTypeMismatch = errors.New("groupsig: key type mismatch")

	// ErrUnsupported is returned by an operation a scheme's vtable does not
	// implement (spec.md §4.1: "Operations not supported by a scheme must
	// be a recognizable unsupported outcome (not a crash)").
	ErrUnsupported = errors.New("groupsig: operation not supported by this scheme")

	// ErrNotFound is the FAIL outcome of an opening operation whose GML
	// contains no matching entry (spec.md §4.9, §7: "Opening that finds no
	// matching GML entry returns FAIL; the out-identity is untouched").
	ErrNotFound = errors.New("groupsig: no matching membership entry")

	// ErrTruncated is returned by the canonical importer when a present
	// field's declared length exceeds the remaining buffer (spec.md §4.3).
	ErrTruncated = errors.New("groupsig: truncated or over-length buffer")

	// ErrMissingField is returned when signing, joining, or opening is
	// attempted on a key with required fields left absent (spec.md §4.9:
	// "Sign/join with a key missing required fields → ERROR").
	ErrMissingField = errors.New("groupsig: required key field is absent")

	// ErrOutOfOrder is returned when a join-protocol message arrives out of
	// sequence (spec.md §5: "invoking a step out of order is ERROR").
	ErrOutOfOrder = errors.New("groupsig: join message out of order")

	// ErrAlreadySetUp is returned by a two-phase setup entry point (KLAP20)
	// invoked again on an already-complete group key (spec.md §4.7).
	ErrAlreadySetUp = errors.New("groupsig: setup phase already completed")
)
