package buffer

import (
	"unsafe"

	"github.com/TomTonic/columnar"
)

// View is a non-owning window over a contiguous run of another buffer's
// elements. It never allocates and outlives neither the buffer it
// references nor a reallocation of that buffer.
type View[T any] struct {
	elems []T
}

// NewView returns a View over b's [offset, offset+length) elements.
func NewView[T any](b *AlignedBuffer[T], offset, length int) View[T] {
	if offset < 0 || length < 0 || offset+length > b.Len() {
		columnar.ContractViolation("buffer.NewView: range [%d,%d) out of bounds for length %d", offset, offset+length, b.Len())
	}
	return View[T]{elems: b.elems[offset : offset+length]}
}

// ViewOfSlice returns a View directly over a plain Go slice, used when
// wrapping storage that did not originate from an AlignedBuffer (e.g. a
// slab handed in through the C Data Interface).
func ViewOfSlice[T any](s []T) View[T] {
	return View[T]{elems: s}
}

// Len returns the number of elements in the view.
func (v View[T]) Len() int { return len(v.elems) }

// At is the checked element accessor.
func (v View[T]) At(i int) (T, error) {
	if i < 0 || i >= len(v.elems) {
		var zero T
		return zero, columnar.WrapOutOfRange(i, len(v.elems))
	}
	return v.elems[i], nil
}

// AtUnchecked is the unchecked element accessor.
func (v View[T]) AtUnchecked(i int) T { return v.elems[i] }

// Data returns a pointer to the first element, or nil if the view is
// empty.
func (v View[T]) Data() unsafe.Pointer {
	if len(v.elems) == 0 {
		return nil
	}
	return unsafe.Pointer(&v.elems[0])
}

// Values returns the underlying slice.
func (v View[T]) Values() []T { return v.elems }

// Slice returns the sub-view [i, j).
func (v View[T]) Slice(i, j int) View[T] {
	if i < 0 || j < i || j > len(v.elems) {
		columnar.ContractViolation("buffer.View.Slice: invalid range [%d,%d) over length %d", i, j, len(v.elems))
	}
	return View[T]{elems: v.elems[i:j]}
}
