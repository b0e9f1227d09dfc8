// Package errs implements curvecore's error-kind taxonomy (spec.md
// section 7): every fallible API boundary — codec, subgroup check,
// verification, setup loading, aggregation — tags its failure with one
// of a fixed set of kinds rather than returning an ad hoc sentinel, so a
// caller can discriminate "malformed input" from "verification failed"
// from "trusted setup missing" without string-matching an error message.
//
// Grounded on the teacher's JrnlError (pkg/txpool/tx_jrnl.go): a small
// struct wrapping an inner error with Error()/Unwrap(), rather than a
// deep custom error hierarchy.
package errs

import "fmt"

// Kind is the discriminated status spec.md section 7 calls for.
type Kind int

const (
	// Codec: wrong-length input, non-canonical flag bits, a field
	// element >= p, a scalar >= r, or a point failing the curve equation.
	Codec Kind = iota
	// Subgroup: on-curve but outside the prime-order subgroup.
	Subgroup
	// Verification: a pairing check, signature, or KZG proof was
	// evaluated and found invalid. Not an internal failure — a normal
	// result that happens to be "no".
	Verification
	// Setup: a trusted setup file is missing, malformed, or wrong-sized.
	Setup
	// Aggregation: mismatched array lengths, or an empty set where the
	// operation requires at least one element. A caller bug, reported
	// immediately without partial work.
	Aggregation
)

func (k Kind) String() string {
	switch k {
	case Codec:
		return "codec"
	case Subgroup:
		return "subgroup"
	case Verification:
		return "verification"
	case Setup:
		return "setup"
	case Aggregation:
		return "aggregation"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is a tagged error: every non-nil error this module's API
// boundary returns can be type-asserted to *Error to recover its Kind.
type Error struct {
	Kind Kind
	Op   string // the failing operation, e.g. "DeserializeG1", "VerifyBlobKZGProof"
	Err  error  // underlying cause, may be nil
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s error", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s error: %s", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds a tagged *Error. err may be nil when the kind itself is the
// whole explanation (e.g. a bare Aggregation length mismatch).
func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Is reports whether err is an *Error of the given Kind, looking through
// any wrapping via errors.Unwrap semantics (implemented directly here
// rather than via errors.As to avoid importing "errors" for one call).
func Is(err error, kind Kind) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Kind == kind
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
