package array

import (
	"github.com/TomTonic/columnar"
	"github.com/TomTonic/columnar/bitmap"
	"github.com/TomTonic/columnar/buffer"
)

// FixedWidthBinary is the fixed-width-binary layout ("w:<w>" in spec.md
// §4.5): a single data buffer of N*width bytes, one width-byte slot per
// element, plus an optional validity bitmap.
type FixedWidthBinary struct {
	data  *buffer.AlignedBuffer[byte]
	valid *bitmap.Bitmap
	width int
}

// NewFixedWidthBinary returns an empty array whose elements are exactly
// width bytes each.
func NewFixedWidthBinary(width int) *FixedWidthBinary {
	if width <= 0 {
		columnar.ContractViolation("array.NewFixedWidthBinary: non-positive width %d", width)
	}
	return &FixedWidthBinary{data: buffer.New[byte](), valid: bitmap.New(), width: width}
}

// Width returns the fixed element width in bytes.
func (f *FixedWidthBinary) Width() int { return f.width }

// Len returns the number of elements.
func (f *FixedWidthBinary) Len() int { return f.data.Len() / f.width }

// NullCount returns the number of absent elements.
func (f *FixedWidthBinary) NullCount() int { return f.valid.Len() - f.valid.CountSet() }

// IsValid reports whether element i is present.
func (f *FixedWidthBinary) IsValid(i int) bool { return f.valid.Get(i) }

// At is the checked element accessor.
func (f *FixedWidthBinary) At(i int) (columnar.Nullable[[]byte], error) {
	n := f.Len()
	if i < 0 || i >= n {
		return columnar.Nullable[[]byte]{}, columnar.WrapOutOfRange(i, n)
	}
	if !f.IsValid(i) {
		return columnar.None[[]byte](), nil
	}
	return columnar.Some(f.slice(i)), nil
}

// AtUnchecked is the unchecked element accessor.
func (f *FixedWidthBinary) AtUnchecked(i int) columnar.Nullable[[]byte] {
	return columnar.FromPair(f.slice(i), f.IsValid(i))
}

func (f *FixedWidthBinary) slice(i int) []byte {
	start := i * f.width
	return f.data.Values()[start : start+f.width]
}

// Push appends a present element. val must be exactly Width() bytes,
// otherwise this fails with InvariantViolation (spec.md "Failure
// semantics").
func (f *FixedWidthBinary) Push(val []byte) error {
	if len(val) != f.width {
		return columnar.WrapInvariant("fixed-width-binary element must be exactly the configured width")
	}
	f.data.InsertRange(f.data.Len(), val)
	f.valid.Resize(f.Len(), true)
	return nil
}

// PushNull appends an absent element (a zero-filled width-byte slot).
func (f *FixedWidthBinary) PushNull() {
	f.data.InsertRange(f.data.Len(), make([]byte, f.width))
	f.valid.Resize(f.Len(), false)
}

// Set overwrites element i in place. val must be exactly Width() bytes.
func (f *FixedWidthBinary) Set(i int, val []byte) error {
	if len(val) != f.width {
		return columnar.WrapInvariant("fixed-width-binary element must be exactly the configured width")
	}
	copy(f.slice(i), val)
	f.valid.Set(i, true)
	return nil
}
