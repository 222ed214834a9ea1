package array

import (
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/TomTonic/columnar"
	"github.com/TomTonic/columnar/bitmap"
	"github.com/TomTonic/columnar/buffer"
)

// VarBinary is the variable-size-binary layout (spec.md §4.8): an offsets
// buffer O and a data buffer D, with element(i) = D[O[i]:O[i+1]]. Off is
// int32 for the "z"/"u" formats and int64 for the "Z"/"U" (large) forms.
type VarBinary[Off Offset] struct {
	offsets *buffer.AlignedBuffer[Off]
	data    *buffer.AlignedBuffer[byte]
	valid   *bitmap.Bitmap
	utf8    bool // true for utf-8 formats: Push/Set/Insert validate UTF-8
}

// NewVarBinary returns an empty variable-size-binary array. utf8
// selects whether mutations are validated as UTF-8 (the "u"/"U" formats)
// or accepted as opaque bytes (the "z"/"Z" formats).
func NewVarBinary[Off Offset](utf8 bool) *VarBinary[Off] {
	offsets := buffer.New[Off]()
	offsets.Push(0)
	return &VarBinary[Off]{offsets: offsets, data: buffer.New[byte](), valid: bitmap.New(), utf8: utf8}
}

// Len returns the number of elements.
func (v *VarBinary[Off]) Len() int { return v.offsets.Len() - 1 }

// NullCount returns the number of absent elements.
func (v *VarBinary[Off]) NullCount() int { return v.valid.Len() - v.valid.CountSet() }

// IsValid reports whether element i is present.
func (v *VarBinary[Off]) IsValid(i int) bool { return v.valid.Get(i) }

func validateUTF8(b []byte) error {
	if _, _, err := transform.Bytes(unicode.UTF8Validator, b); err != nil {
		return columnar.WrapInvariant("value is not valid UTF-8")
	}
	return nil
}

// At is the checked element accessor.
func (v *VarBinary[Off]) At(i int) (columnar.Nullable[[]byte], error) {
	n := v.Len()
	if i < 0 || i >= n {
		return columnar.Nullable[[]byte]{}, columnar.WrapOutOfRange(i, n)
	}
	if !v.IsValid(i) {
		return columnar.None[[]byte](), nil
	}
	return columnar.Some(v.AtUnchecked(i).Value()), nil
}

// AtUnchecked is the unchecked element accessor.
func (v *VarBinary[Off]) AtUnchecked(i int) columnar.Nullable[[]byte] {
	start := int64(v.offsets.AtUnchecked(i))
	end := int64(v.offsets.AtUnchecked(i + 1))
	return columnar.FromPair(v.data.Values()[start:end], v.IsValid(i))
}

// Values returns the element bytes ignoring validity.
func (v *VarBinary[Off]) Values(i int) []byte {
	start := int64(v.offsets.AtUnchecked(i))
	end := int64(v.offsets.AtUnchecked(i + 1))
	return v.data.Values()[start:end]
}

// Push appends a present element.
func (v *VarBinary[Off]) Push(val []byte) error {
	if v.utf8 {
		if err := validateUTF8(val); err != nil {
			return err
		}
	}
	n := len(v.data.Values())
	v.data.InsertRange(n, val)
	v.offsets.Push(Off(n + len(val)))
	v.valid.Resize(v.Len(), true)
	return nil
}

// PushNull appends an absent element (zero-length span).
func (v *VarBinary[Off]) PushNull() {
	n := len(v.data.Values())
	v.offsets.Push(Off(n))
	v.valid.Resize(v.Len(), false)
}

// Set overwrites element i following spec.md §4.8's grow/shift/shrink
// assignment rule: old := O[i+1]-O[i], new := len(val), delta := new-old;
// D is grown or shrunk by delta and every later offset shifts by delta.
func (v *VarBinary[Off]) Set(i int, val []byte) error {
	if v.utf8 {
		if err := validateUTF8(val); err != nil {
			return err
		}
	}
	start := int64(v.offsets.AtUnchecked(i))
	end := int64(v.offsets.AtUnchecked(i + 1))
	old := int(end - start)
	newLen := len(val)
	delta := newLen - old

	switch {
	case delta > 0:
		v.data.InsertRange(int(end), make([]byte, delta))
	case delta < 0:
		v.data.EraseRange(int(end+int64(delta)), int(end))
	}
	copy(v.data.Values()[start:start+int64(newLen)], val)

	for j := i + 1; j < v.offsets.Len(); j++ {
		v.offsets.Set(j, v.offsets.AtUnchecked(j)+Off(delta))
	}
	v.valid.Set(i, true)
	return nil
}

// SetNull marks element i as absent without touching its data span.
func (v *VarBinary[Off]) SetNull(i int) {
	v.valid.Set(i, false)
}

// Insert inserts a present element at index i, shifting its data span
// into D and every later offset and validity bit right by one (spec.md
// §4.8: "insertion and erasure are analogous" to Set's grow/shift rule).
func (v *VarBinary[Off]) Insert(i int, val []byte) error {
	if v.utf8 {
		if err := validateUTF8(val); err != nil {
			return err
		}
	}
	start := v.offsets.AtUnchecked(i)
	v.data.InsertRange(int(start), val)
	v.offsets.Insert(i, start)
	for j := i + 1; j < v.offsets.Len(); j++ {
		v.offsets.Set(j, v.offsets.AtUnchecked(j)+Off(len(val)))
	}
	v.valid.Insert(i, true)
	return nil
}

// InsertNull inserts an absent (zero-length) element at index i.
func (v *VarBinary[Off]) InsertNull(i int) {
	start := v.offsets.AtUnchecked(i)
	v.offsets.Insert(i, start)
	v.valid.Insert(i, false)
}

// Erase removes the element at index i, shifting its data span out of D
// and every later offset and validity bit left by one.
func (v *VarBinary[Off]) Erase(i int) {
	start := v.offsets.AtUnchecked(i)
	end := v.offsets.AtUnchecked(i + 1)
	v.data.EraseRange(int(start), int(end))
	delta := end - start
	v.offsets.Erase(i)
	for j := i; j < v.offsets.Len(); j++ {
		v.offsets.Set(j, v.offsets.AtUnchecked(j)-delta)
	}
	v.valid.Erase(i)
}
