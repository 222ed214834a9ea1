package array

import (
	"github.com/TomTonic/columnar"
	"github.com/TomTonic/columnar/bitmap"
	"github.com/TomTonic/columnar/buffer"
)

// ListView is the list-view / large-list-view layout (spec.md §4.11):
// offsets O and sizes Z, with element(i) = C[O[i]:O[i]+Z[i]]. Unlike
// List, elements may overlap or appear out of order; validity of (O[i],
// Z[i]) against the child's length is checked at construction/push time.
type ListView[Off Offset] struct {
	offsets *buffer.AlignedBuffer[Off]
	sizes   *buffer.AlignedBuffer[Off]
	child   Array
	valid   *bitmap.Bitmap
}

// NewListView returns an empty list-view array over child.
func NewListView[Off Offset](child Array) *ListView[Off] {
	return &ListView[Off]{offsets: buffer.New[Off](), sizes: buffer.New[Off](), child: child, valid: bitmap.New()}
}

// Len returns the number of elements.
func (l *ListView[Off]) Len() int { return l.offsets.Len() }

// NullCount returns the number of absent elements.
func (l *ListView[Off]) NullCount() int { return l.valid.Len() - l.valid.CountSet() }

// IsValid reports whether element i is present.
func (l *ListView[Off]) IsValid(i int) bool { return l.valid.Get(i) }

// Child returns the nested child array.
func (l *ListView[Off]) Child() Array { return l.child }

func (l *ListView[Off]) rangeOf(i int) ListValue {
	start := int(l.offsets.AtUnchecked(i))
	size := int(l.sizes.AtUnchecked(i))
	return ListValue{Child: l.child, Start: start, End: start + size}
}

// At is the checked element accessor.
func (l *ListView[Off]) At(i int) (columnar.Nullable[ListValue], error) {
	n := l.Len()
	if i < 0 || i >= n {
		return columnar.Nullable[ListValue]{}, columnar.WrapOutOfRange(i, n)
	}
	if !l.IsValid(i) {
		return columnar.None[ListValue](), nil
	}
	return columnar.Some(l.rangeOf(i)), nil
}

// AtUnchecked is the unchecked element accessor.
func (l *ListView[Off]) AtUnchecked(i int) columnar.Nullable[ListValue] {
	return columnar.FromPair(l.rangeOf(i), l.IsValid(i))
}

// PushRange appends a present element referencing [offset, offset+size)
// of the child array. It fails with InvariantViolation if that range
// falls outside the child's valid length (spec.md §3 invariant 3).
func (l *ListView[Off]) PushRange(offset, size int) error {
	if offset < 0 || size < 0 || offset+size > l.child.Len() {
		return columnar.WrapInvariant("list-view range lies outside the child array's valid length")
	}
	l.offsets.Push(Off(offset))
	l.sizes.Push(Off(size))
	l.valid.Resize(l.Len(), true)
	return nil
}

// PushNull appends an absent element (an empty, zero-offset span).
func (l *ListView[Off]) PushNull() {
	l.offsets.Push(0)
	l.sizes.Push(0)
	l.valid.Resize(l.Len(), false)
}
