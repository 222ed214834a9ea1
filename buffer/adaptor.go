package buffer

import (
	"unsafe"

	"github.com/TomTonic/columnar"
)

// Adaptor exposes an AlignedBuffer[T] of byte-like elements as a typed
// sequence of a wider element type U, without copying (spec.md §4.2). It
// generalizes the teacher's art package's unsafe.Pointer type-punning
// between *node[T] and the concrete *node5[T]/*node256[T]/*leafNode[T]
// shapes (art_node5.go, art_nodeLeaf.go) from a fixed closed set of node
// shapes into an arbitrary byte-width reinterpretation.
type Adaptor[T any, U any] struct {
	underlying *AlignedBuffer[T]
}

// NewAdaptor wraps underlying, asserting its byte length divides evenly by
// sizeof(U).
func NewAdaptor[T any, U any](underlying *AlignedBuffer[T]) *Adaptor[T, U] {
	tsz := elemSize[T]()
	usz := elemSize[U]()
	totalBytes := uintptr(underlying.Len()) * tsz
	if totalBytes%usz != 0 {
		columnar.ContractViolation("buffer.NewAdaptor: underlying byte length %d does not divide evenly by sizeof(U)=%d", totalBytes, usz)
	}
	return &Adaptor[T, U]{underlying: underlying}
}

// Size returns underlying.Len() * sizeof(T) / sizeof(U).
func (a *Adaptor[T, U]) Size() int {
	tsz := elemSize[T]()
	usz := elemSize[U]()
	return int(uintptr(a.underlying.Len()) * tsz / usz)
}

func (a *Adaptor[T, U]) view() []U {
	n := a.Size()
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*U)(a.underlying.Data()), n)
}

// At is the checked element accessor in U's element space.
func (a *Adaptor[T, U]) At(i int) (U, error) {
	v := a.view()
	if i < 0 || i >= len(v) {
		var zero U
		return zero, columnar.WrapOutOfRange(i, len(v))
	}
	return v[i], nil
}

// AtUnchecked is the unchecked element accessor in U's element space.
func (a *Adaptor[T, U]) AtUnchecked(i int) U { return a.view()[i] }

// Set overwrites the i'th U-element in place.
func (a *Adaptor[T, U]) Set(i int, val U) { a.view()[i] = val }

// ratio returns how many T elements make up one U element.
func (a *Adaptor[T, U]) ratio() int {
	tsz := elemSize[T]()
	usz := elemSize[U]()
	return int(usz / tsz)
}

// InsertAt inserts val at index i, translated into a ratio-sized insertion
// of zero T elements in the underlying buffer followed by writing val at
// the correct offset (spec.md §4.2).
func (a *Adaptor[T, U]) InsertAt(i int, val U) {
	r := a.ratio()
	var zero T
	zeros := make([]T, r)
	for j := range zeros {
		zeros[j] = zero
	}
	a.underlying.InsertRange(i*r, zeros)
	a.Set(i, val)
}

// EraseAt removes the i'th U-element, translated into erasing its ratio-
// sized run of underlying T elements.
func (a *Adaptor[T, U]) EraseAt(i int) {
	r := a.ratio()
	a.underlying.EraseRange(i*r, i*r+r)
}

// FromRawBytes reconstructs an owned AlignedBuffer[U] from a raw byte
// slice handed across a boundary such as the C Data Interface (spec.md
// §6). It adopts raw as foreign storage and decodes it through an
// Adaptor[byte, U] rather than a direct pointer reinterpretation, so a
// length that does not divide evenly, or that is simply too large to be a
// legitimate buffer, surfaces as ErrLengthError/ContractViolation at this
// single boundary instead of propagating into every later unchecked
// access.
func FromRawBytes[U any](raw []byte) (*AlignedBuffer[U], error) {
	if len(raw) == 0 {
		return New[U](), nil
	}
	foreign := AdoptForeign[byte](unsafe.Pointer(&raw[0]), len(raw), nil)
	ad := NewAdaptor[byte, U](foreign)
	out := New[U]()
	if err := out.TryReserve(ad.Size()); err != nil {
		return nil, err
	}
	for i := 0; i < ad.Size(); i++ {
		out.Push(ad.AtUnchecked(i))
	}
	return out, nil
}
