package columnar

import (
	"errors"
	"fmt"
)

// Sentinel error kinds, compared with errors.Is. These are the checked,
// recoverable failures a caller can expect back from a constructor or a
// mutating operation; they never leave the array in a state that breaks an
// invariant (the mutation is either fully applied or not applied at all).
var (
	// ErrInvariantViolation is returned when a construction input would
	// break one of the layout invariants (non-monotone offsets, an
	// oversized element for a fixed-width slot, a dictionary index out of
	// range, and so on).
	ErrInvariantViolation = errors.New("columnar: invariant violation")

	// ErrFormatMismatch is returned when a format string does not
	// correspond to the layout being constructed, or is not a format
	// string this registry recognizes at all.
	ErrFormatMismatch = errors.New("columnar: format mismatch")

	// ErrOutOfRange is returned by a checked index operation (At) when the
	// index exceeds Size().
	ErrOutOfRange = errors.New("columnar: index out of range")

	// ErrLengthError is returned when a requested allocation is larger
	// than can be satisfied.
	ErrLengthError = errors.New("columnar: length error")

	// ErrBadAccess is returned by Nullable.Get(), the checked accessor,
	// when called on a Nullable that is absent. Nullable.Value(), the
	// unchecked convenience, does not return this error: it panics via
	// ContractViolation instead, the same checked/unchecked split every
	// layout's At/AtUnchecked pair already follows.
	ErrBadAccess = errors.New("columnar: bad access on null value")
)

// WrapInvariant builds an ErrInvariantViolation carrying a specific reason.
func WrapInvariant(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvariantViolation, reason)
}

// WrapFormatMismatch builds an ErrFormatMismatch carrying the offending
// format string and the layout that rejected it.
func WrapFormatMismatch(format, wantLayout string) error {
	return fmt.Errorf("%w: format %q is not valid for a %s layout", ErrFormatMismatch, format, wantLayout)
}

// WrapOutOfRange builds an ErrOutOfRange carrying the offending index and
// the array's size.
func WrapOutOfRange(index, size int) error {
	return fmt.Errorf("%w: index %d, size %d", ErrOutOfRange, index, size)
}

// WrapLengthError builds an ErrLengthError carrying the requested size.
func WrapLengthError(requested int) error {
	return fmt.Errorf("%w: requested %d elements", ErrLengthError, requested)
}

// ContractViolation panics with a precondition message. It is used on the
// unchecked fast paths (the analog of operator[] in the source library)
// where the caller is trusted to have validated the index or the layout
// kind already; panicking here mirrors the teacher's asNode5/asNode51/
// asNode256 family, which panics rather than returning an error when an
// internal cast assumption is violated.
func ContractViolation(format string, args ...any) {
	panic("columnar: contract violation: " + fmt.Sprintf(format, args...))
}
