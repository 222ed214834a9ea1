// Package buffer provides the growable, 64-byte-aligned storage that every
// array layout is built on top of (spec.md §4.1, §4.2). The alignment and
// exact-capacity bookkeeping generalizes the fixed, cache-line-sized node
// layouts of the teacher's art package (Node64/Node512/Node1024, each padded
// to an exact power-of-two byte count) into a single runtime-sized
// abstraction: instead of a fixed struct shape, AlignedBuffer computes its
// aligned region at allocation time.
package buffer

import (
	"unsafe"

	"github.com/TomTonic/columnar"
)

// Alignment is the byte alignment every AlignedBuffer's data pointer
// satisfies, matching the 64-byte cache-line alignment spec.md §4.1
// requires of reserve/reallocation.
const Alignment = 64

// growthFactor is the multiplier applied to capacity when a reallocation
// is triggered by an operation that exceeds the current capacity.
const growthFactor = 2

// maxBufferBytes bounds any single AlignedBuffer's backing allocation. It
// stands in for "the allocator's maximum" spec.md §4.1/§7 requires
// reserve/resize to fail against with LengthError rather than crash inside
// make(); real allocators fail long before this, but the bound must be
// checked before make() is called, not discovered from its panic.
const maxBufferBytes = 1 << 40

func exceedsLengthBound[T any](n int) bool {
	if n < 0 {
		return true
	}
	return uintptr(n)*elemSize[T]() > maxBufferBytes
}

// AlignedBuffer is an owned or foreign-adopted, 64-byte-aligned growable
// array of T. Mutating operations require exclusive access; concurrent use
// through a View must be externally synchronized (spec.md §4.1).
type AlignedBuffer[T any] struct {
	slab    []byte // owned raw storage; nil when empty or foreign
	elems   []T    // typed view over slab's aligned region, or over foreign storage
	foreign bool
	release func()
}

func elemSize[T any]() uintptr {
	var zero T
	return unsafe.Sizeof(zero)
}

func alignUp(n, align uintptr) uintptr {
	return (n + align - 1) &^ (align - 1)
}

// New returns an empty, unallocated AlignedBuffer.
func New[T any]() *AlignedBuffer[T] {
	return &AlignedBuffer[T]{}
}

// NewWithCount returns an AlignedBuffer of length n, every element set to
// fill.
func NewWithCount[T any](n int, fill T) *AlignedBuffer[T] {
	b := New[T]()
	b.Resize(n, fill)
	return b
}

// NewFromSlice copies src into a freshly allocated AlignedBuffer.
func NewFromSlice[T any](src []T) *AlignedBuffer[T] {
	b := New[T]()
	b.Reserve(len(src))
	b.elems = b.elems[:len(src)]
	copy(b.elems, src)
	return b
}

// AdoptForeign wraps length elements of externally owned storage starting
// at ptr. release is invoked exactly once, by Release, to hand the storage
// back to its owner. A nil ptr with non-zero length is a precondition
// violation (spec.md §4.1).
func AdoptForeign[T any](ptr unsafe.Pointer, length int, release func()) *AlignedBuffer[T] {
	if ptr == nil && length != 0 {
		columnar.ContractViolation("buffer.AdoptForeign: nil pointer with non-zero length %d", length)
	}
	b := &AlignedBuffer[T]{foreign: true, release: release}
	if length > 0 {
		b.elems = unsafe.Slice((*T)(ptr), length)
	}
	return b
}

// IsForeign reports whether b wraps storage it does not own.
func (b *AlignedBuffer[T]) IsForeign() bool { return b.foreign }

// Len returns the number of live elements.
func (b *AlignedBuffer[T]) Len() int { return len(b.elems) }

// Cap returns the number of elements the current allocation can hold
// without reallocating.
func (b *AlignedBuffer[T]) Cap() int { return cap(b.elems) }

// Data returns a pointer to the first element, or nil iff Len is zero and
// no storage is allocated (none was ever allocated, or ShrinkToFit
// released it) (spec.md §4.1).
func (b *AlignedBuffer[T]) Data() unsafe.Pointer {
	if cap(b.elems) == 0 {
		return nil
	}
	return unsafe.Pointer(unsafe.SliceData(b.elems))
}

// Values returns the live backing slice. Callers must not retain it across
// a mutating call, since reallocation replaces the backing array.
func (b *AlignedBuffer[T]) Values() []T { return b.elems }

func (b *AlignedBuffer[T]) realloc(capElems int) {
	size := elemSize[T]()
	nbytes := alignUp(uintptr(capElems)*size, Alignment)
	slab := make([]byte, int(nbytes)+Alignment-1)
	addr := uintptr(unsafe.Pointer(&slab[0]))
	off := alignUp(addr, Alignment) - addr
	ptr := unsafe.Pointer(&slab[off])
	full := unsafe.Slice((*T)(ptr), capElems)
	n := copy(full, b.elems)
	b.slab = slab
	b.elems = full[:n]
}

func (b *AlignedBuffer[T]) growTo(n int) {
	if n <= cap(b.elems) {
		return
	}
	newCap := cap(b.elems) * growthFactor
	if newCap < n {
		newCap = n
	}
	if newCap < 1 {
		newCap = 1
	}
	b.realloc(newCap)
}

// Reserve ensures capacity for at least n elements. reserve(0) on an
// unallocated buffer is a no-op (spec.md §4.1). n is trusted to be a
// sane, internally computed request; TryReserve is the checked
// counterpart for requests derived from untrusted input.
func (b *AlignedBuffer[T]) Reserve(n int) {
	if b.foreign {
		columnar.ContractViolation("buffer.Reserve called on foreign-owned storage")
	}
	if n <= cap(b.elems) || n == 0 {
		return
	}
	if exceedsLengthBound[T](n) {
		columnar.ContractViolation("buffer.Reserve: requested %d elements exceeds the allocator's maximum", n)
	}
	b.realloc(n)
}

// TryReserve is the checked counterpart to Reserve: instead of panicking,
// it returns ErrLengthError when n would exceed the allocator's sanity
// bound (spec.md §4.1, §7), the right entry point when n is derived from
// an untrusted source such as a length carried across the C Data
// Interface.
func (b *AlignedBuffer[T]) TryReserve(n int) error {
	if b.foreign {
		columnar.ContractViolation("buffer.TryReserve called on foreign-owned storage")
	}
	if n <= cap(b.elems) || n == 0 {
		return nil
	}
	if exceedsLengthBound[T](n) {
		return columnar.WrapLengthError(n)
	}
	b.realloc(n)
	return nil
}

// ShrinkToFit reallocates the buffer's storage to exactly its current
// length (rounded up to the alignment boundary).
func (b *AlignedBuffer[T]) ShrinkToFit() {
	if b.foreign {
		return
	}
	n := len(b.elems)
	if n == cap(b.elems) {
		return
	}
	if n == 0 {
		b.slab = nil
		b.elems = nil
		return
	}
	b.realloc(n)
}

// Resize sets the logical length to n, filling any newly exposed elements
// with fill. Shrinking never deallocates. n is trusted to be a sane,
// internally computed request; TryResize is the checked counterpart.
func (b *AlignedBuffer[T]) Resize(n int, fill T) {
	if n < 0 {
		columnar.ContractViolation("buffer.Resize: negative length %d", n)
	}
	if n <= len(b.elems) {
		b.elems = b.elems[:n]
		return
	}
	if exceedsLengthBound[T](n) {
		columnar.ContractViolation("buffer.Resize: requested %d elements exceeds the allocator's maximum", n)
	}
	b.growTo(n)
	old := len(b.elems)
	b.elems = b.elems[:n]
	for i := old; i < n; i++ {
		b.elems[i] = fill
	}
}

// TryResize is the checked counterpart to Resize: it returns
// ErrLengthError instead of panicking when n would exceed the allocator's
// sanity bound.
func (b *AlignedBuffer[T]) TryResize(n int, fill T) error {
	if n < 0 {
		return columnar.WrapLengthError(n)
	}
	if n <= len(b.elems) {
		b.elems = b.elems[:n]
		return nil
	}
	if exceedsLengthBound[T](n) {
		return columnar.WrapLengthError(n)
	}
	b.growTo(n)
	old := len(b.elems)
	b.elems = b.elems[:n]
	for i := old; i < n; i++ {
		b.elems[i] = fill
	}
	return nil
}

// Clear truncates the buffer to length zero without releasing storage.
func (b *AlignedBuffer[T]) Clear() {
	b.elems = b.elems[:0]
}

// At is the checked element accessor.
func (b *AlignedBuffer[T]) At(i int) (T, error) {
	if i < 0 || i >= len(b.elems) {
		var zero T
		return zero, columnar.WrapOutOfRange(i, len(b.elems))
	}
	return b.elems[i], nil
}

// AtUnchecked is the unchecked element accessor; out-of-range i is
// undefined behavior, matching the teacher's direct-index node accessors.
func (b *AlignedBuffer[T]) AtUnchecked(i int) T { return b.elems[i] }

// Set overwrites the element at i. i must be in range.
func (b *AlignedBuffer[T]) Set(i int, v T) { b.elems[i] = v }

// Push appends v, growing storage if needed.
func (b *AlignedBuffer[T]) Push(v T) {
	n := len(b.elems)
	b.growTo(n + 1)
	b.elems = b.elems[:n+1]
	b.elems[n] = v
}

// Pop removes and returns the last element. Popping an empty buffer is a
// precondition violation.
func (b *AlignedBuffer[T]) Pop() T {
	n := len(b.elems)
	if n == 0 {
		columnar.ContractViolation("buffer.Pop called on an empty buffer")
	}
	v := b.elems[n-1]
	b.elems = b.elems[:n-1]
	return v
}

// InsertRange inserts vs starting at index i, shifting existing elements
// right.
func (b *AlignedBuffer[T]) InsertRange(i int, vs []T) {
	n := len(b.elems)
	if i < 0 || i > n {
		columnar.ContractViolation("buffer.InsertRange: index %d out of range [0,%d]", i, n)
	}
	m := len(vs)
	if m == 0 {
		return
	}
	b.growTo(n + m)
	b.elems = b.elems[:n+m]
	copy(b.elems[i+m:], b.elems[i:n])
	copy(b.elems[i:i+m], vs)
}

// Insert inserts a single value at index i.
func (b *AlignedBuffer[T]) Insert(i int, v T) {
	b.InsertRange(i, []T{v})
}

// InsertCount inserts count copies of v at index i.
func (b *AlignedBuffer[T]) InsertCount(i, count int, v T) {
	if count == 0 {
		return
	}
	vs := make([]T, count)
	for j := range vs {
		vs[j] = v
	}
	b.InsertRange(i, vs)
}

// EraseRange removes elements in [i, j), shifting the remainder left.
func (b *AlignedBuffer[T]) EraseRange(i, j int) {
	n := len(b.elems)
	if i < 0 || j < i || j > n {
		columnar.ContractViolation("buffer.EraseRange: invalid range [%d,%d) over length %d", i, j, n)
	}
	copy(b.elems[i:], b.elems[j:])
	b.elems = b.elems[:n-(j-i)]
}

// Erase removes the element at index i.
func (b *AlignedBuffer[T]) Erase(i int) {
	b.EraseRange(i, i+1)
}

// Swap exchanges the storage of a and b atomically; neither reallocates.
func (a *AlignedBuffer[T]) Swap(b *AlignedBuffer[T]) {
	*a, *b = *b, *a
}

// Bytes reinterprets the live elements as a raw byte slice, zero-copy, for
// handing a buffer out through an interchange boundary like the C Data
// Interface (spec.md §4.1/§6). The returned slice aliases b's storage and
// is invalidated by any subsequent mutating call.
func (b *AlignedBuffer[T]) Bytes() []byte {
	n := len(b.elems)
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&b.elems[0])), int(uintptr(n)*elemSize[T]()))
}

// Release hands foreign storage back to its owner by invoking the
// release callback exactly once. It is a no-op for owned storage beyond
// dropping the buffer's references.
func (b *AlignedBuffer[T]) Release() {
	if b.foreign && b.release != nil {
		r := b.release
		b.release = nil
		r()
	}
	b.elems = nil
	b.slab = nil
}
