package array

import (
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/TomTonic/columnar"
	"github.com/TomTonic/columnar/bitmap"
	"github.com/TomTonic/columnar/buffer"
)

const viewInlineCapacity = 12

// viewEntry is one variable-size-binary-view element (spec.md §4.9): a
// length, then either up to 12 inlined bytes (length <= 12) or a 4-byte
// prefix plus a buffer index plus an offset. It is a plain Go struct with a
// separate field for each part, not the packed 16-byte C view layout.
type viewEntry struct {
	length int32
	inline [viewInlineCapacity]byte // used when length <= viewInlineCapacity
	prefix [4]byte                  // used when length > viewInlineCapacity
	bufIdx int32
	offset int32
}

// VarBinaryView is the variable-size-binary-view layout: a fixed array of
// viewEntry views plus a set of variadic data buffers the long views point
// into (spec.md §4.9). Stale buffer regions from overwritten values are
// not reclaimed within a single array's lifetime, per spec.
type VarBinaryView struct {
	views       *buffer.AlignedBuffer[viewEntry]
	dataBuffers [][]byte
	valid       *bitmap.Bitmap
	utf8        bool
}

// NewVarBinaryView returns an empty variable-size-binary-view array.
func NewVarBinaryView(utf8 bool) *VarBinaryView {
	return &VarBinaryView{views: buffer.New[viewEntry](), valid: bitmap.New(), utf8: utf8}
}

// Len returns the number of elements.
func (v *VarBinaryView) Len() int { return v.views.Len() }

// NullCount returns the number of absent elements.
func (v *VarBinaryView) NullCount() int { return v.valid.Len() - v.valid.CountSet() }

// IsValid reports whether element i is present.
func (v *VarBinaryView) IsValid(i int) bool { return v.valid.Get(i) }

func (v *VarBinaryView) bytesOf(e viewEntry) []byte {
	if e.length <= viewInlineCapacity {
		return e.inline[:e.length]
	}
	buf := v.dataBuffers[e.bufIdx]
	return buf[e.offset : e.offset+e.length]
}

// At is the checked element accessor.
func (v *VarBinaryView) At(i int) (columnar.Nullable[[]byte], error) {
	if i < 0 || i >= v.views.Len() {
		return columnar.Nullable[[]byte]{}, columnar.WrapOutOfRange(i, v.views.Len())
	}
	if !v.IsValid(i) {
		return columnar.None[[]byte](), nil
	}
	return columnar.Some(v.bytesOf(v.views.AtUnchecked(i))), nil
}

// AtUnchecked is the unchecked element accessor.
func (v *VarBinaryView) AtUnchecked(i int) columnar.Nullable[[]byte] {
	return columnar.FromPair(v.bytesOf(v.views.AtUnchecked(i)), v.IsValid(i))
}

// Prefix returns the 4-byte fast-compare prefix stored inline in the
// view, without materializing the full payload.
func (v *VarBinaryView) Prefix(i int) [4]byte {
	e := v.views.AtUnchecked(i)
	if e.length <= viewInlineCapacity {
		var p [4]byte
		n := e.length
		if n > 4 {
			n = 4
		}
		copy(p[:], e.inline[:n])
		return p
	}
	return e.prefix
}

func (v *VarBinaryView) validate(val []byte) error {
	if !v.utf8 {
		return nil
	}
	if _, _, err := transform.Bytes(unicode.UTF8Validator, val); err != nil {
		return columnar.WrapInvariant("value is not valid UTF-8")
	}
	return nil
}

// Push appends a present element, inlining it if it fits in 12 bytes or
// else appending it to the growing variadic data buffer (spec.md §4.9).
func (v *VarBinaryView) Push(val []byte) error {
	if err := v.validate(val); err != nil {
		return err
	}
	var e viewEntry
	e.length = int32(len(val))
	if len(val) <= viewInlineCapacity {
		copy(e.inline[:], val)
	} else {
		copy(e.prefix[:], val[:4])
		if len(v.dataBuffers) == 0 {
			v.dataBuffers = append(v.dataBuffers, nil)
		}
		last := len(v.dataBuffers) - 1
		e.bufIdx = int32(last)
		e.offset = int32(len(v.dataBuffers[last]))
		v.dataBuffers[last] = append(v.dataBuffers[last], val...)
	}
	v.views.Push(e)
	v.valid.Resize(v.views.Len(), true)
	return nil
}

// PushNull appends an absent element.
func (v *VarBinaryView) PushNull() {
	v.views.Push(viewEntry{})
	v.valid.Resize(v.views.Len(), false)
}
