package array

import (
	"github.com/TomTonic/columnar"
	"github.com/TomTonic/columnar/bitmap"
)

// FixedSizeList is the fixed-size-list layout (spec.md §4.12): no offset
// buffer, a single nested child array C, and a fixed width k read from
// the format string "+w:k". element(i) = C[k*i : k*(i+1)].
type FixedSizeList struct {
	child  Array
	width  int
	valid  *bitmap.Bitmap
	length int
}

// NewFixedSizeList returns a FixedSizeList of length over child, width
// elements per list. child must already have length width*length,
// otherwise this fails with InvariantViolation (spec.md §3 invariant 8).
func NewFixedSizeList(length, width int, child Array) (*FixedSizeList, error) {
	if width <= 0 {
		return nil, columnar.WrapInvariant("fixed-size-list width must be positive")
	}
	if child.Len() != width*length {
		return nil, columnar.WrapInvariant("fixed-size-list child length must equal width*length")
	}
	return &FixedSizeList{child: child, width: width, valid: bitmap.NewWithLength(length, true), length: length}, nil
}

// Len returns the number of elements.
func (f *FixedSizeList) Len() int { return f.length }

// NullCount returns the number of absent elements.
func (f *FixedSizeList) NullCount() int { return f.valid.Len() - f.valid.CountSet() }

// IsValid reports whether element i is present.
func (f *FixedSizeList) IsValid(i int) bool { return f.valid.Get(i) }

// Width returns k, the fixed number of child elements per list element.
func (f *FixedSizeList) Width() int { return f.width }

// Child returns the nested child array.
func (f *FixedSizeList) Child() Array { return f.child }

func (f *FixedSizeList) rangeOf(i int) ListValue {
	start := i * f.width
	return ListValue{Child: f.child, Start: start, End: start + f.width}
}

// At is the checked element accessor.
func (f *FixedSizeList) At(i int) (columnar.Nullable[ListValue], error) {
	n := f.Len()
	if i < 0 || i >= n {
		return columnar.Nullable[ListValue]{}, columnar.WrapOutOfRange(i, n)
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

// SetValid sets the validity bit for element i.
func (f *FixedSizeList) SetValid(i int, v bool) { f.valid.Set(i, v) }
