package array

import (
	"github.com/TomTonic/columnar"
	"github.com/TomTonic/columnar/bitmap"
	"github.com/TomTonic/columnar/buffer"
)

// ListValue is the proxy range spec.md §4.10 describes: element(i)
// "exposes a proxy range over C's operator[]" rather than copying the
// child's values out.
type ListValue struct {
	Child      Array
	Start, End int
}

// Len returns the number of elements the range spans.
func (r ListValue) Len() int { return r.End - r.Start }

// List is the list / large-list layout (spec.md §4.10): an offsets
// buffer O and a single nested child array C, with element(i) = C[O[i]
// :O[i+1]]. Off is int32 for "+l" and int64 for "+L" (large-list).
type List[Off Offset] struct {
	offsets *buffer.AlignedBuffer[Off]
	child   Array
	valid   *bitmap.Bitmap
}

// NewList returns an empty list array over child.
func NewList[Off Offset](child Array) *List[Off] {
	offsets := buffer.New[Off]()
	offsets.Push(0)
	return &List[Off]{offsets: offsets, child: child, valid: bitmap.New()}
}

// Len returns the number of elements.
func (l *List[Off]) Len() int { return l.offsets.Len() - 1 }

// NullCount returns the number of absent elements.
func (l *List[Off]) NullCount() int { return l.valid.Len() - l.valid.CountSet() }

// IsValid reports whether element i is present.
func (l *List[Off]) IsValid(i int) bool { return l.valid.Get(i) }

// Child returns the nested child array.
func (l *List[Off]) Child() Array { return l.child }

// At is the checked element accessor.
func (l *List[Off]) At(i int) (columnar.Nullable[ListValue], error) {
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
func (l *List[Off]) AtUnchecked(i int) columnar.Nullable[ListValue] {
	return columnar.FromPair(l.rangeOf(i), l.IsValid(i))
}

func (l *List[Off]) rangeOf(i int) ListValue {
	start := int(l.offsets.AtUnchecked(i))
	end := int(l.offsets.AtUnchecked(i + 1))
	return ListValue{Child: l.child, Start: start, End: end}
}

// PushRange appends a present element spanning count elements of the
// child array that the caller has already appended.
func (l *List[Off]) PushRange(count int) {
	last := l.offsets.AtUnchecked(l.offsets.Len() - 1)
	l.offsets.Push(last + Off(count))
	l.valid.Resize(l.Len(), true)
}

// PushNull appends an absent element (zero-length span).
func (l *List[Off]) PushNull() {
	last := l.offsets.AtUnchecked(l.offsets.Len() - 1)
	l.offsets.Push(last)
	l.valid.Resize(l.Len(), false)
}

// FixedSizeList is the fixed-size-list layout (spec.md §4.12): no offset
// buffer, element(i) = C[k*i:k*(i+1)] where k comes from the "+w:k"
// format string.
type FixedSizeList struct {
	child  Array
	width  int
	valid  *bitmap.Bitmap
	length int
}

// NewFixedSizeList returns an empty fixed-size-list array of the given
// per-element width over child.
func NewFixedSizeList(child Array, width int) *FixedSizeList {
	if width <= 0 {
		columnar.ContractViolation("array.NewFixedSizeList: non-positive width %d", width)
	}
	return &FixedSizeList{child: child, width: width, valid: bitmap.New()}
}

// Width returns k, the fixed child-span width.
func (f *FixedSizeList) Width() int { return f.width }

// Len returns the number of elements.
func (f *FixedSizeList) Len() int { return f.length }

// NullCount returns the number of absent elements.
func (f *FixedSizeList) NullCount() int { return f.valid.Len() - f.valid.CountSet() }

// IsValid reports whether element i is present.
func (f *FixedSizeList) IsValid(i int) bool { return f.valid.Get(i) }

// Child returns the nested child array. Its length must equal
// Width()*Len() (spec.md §3 invariant 8).
func (f *FixedSizeList) Child() Array { return f.child }

// At is the checked element accessor.
func (f *FixedSizeList) At(i int) (columnar.Nullable[ListValue], error) {
	if i < 0 || i >= f.length {
		return columnar.Nullable[ListValue]{}, columnar.WrapOutOfRange(i, f.length)
	}
	if !f.IsValid(i) {
		return columnar.None[ListValue](), nil
	}
	return columnar.Some(f.rangeOf(i)), nil
}

// AtUnchecked is the unchecked element accessor.
func (f *FixedSizeList) AtUnchecked(i int) columnar.Nullable[ListValue] {
	return columnar.FromPair(f.rangeOf(i), f.IsValid(i))
}

func (f *FixedSizeList) rangeOf(i int) ListValue {
	return ListValue{Child: f.child, Start: i * f.width, End: (i + 1) * f.width}
}

// PushElement records one more present element; the caller must have
// already appended Width() values to the child array.
func (f *FixedSizeList) PushElement() {
	f.length++
	f.valid.Resize(f.length, true)
}

// PushNull records one more absent element; the caller must still append
// Width() (typically zero/default) values to the child array to keep the
// invariant child.length == width*length.
func (f *FixedSizeList) PushNull() {
	f.length++
	f.valid.Resize(f.length, false)
}
