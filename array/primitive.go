package array

import (
	"github.com/TomTonic/columnar"
	"github.com/TomTonic/columnar/bitmap"
	"github.com/TomTonic/columnar/buffer"
)

// Primitive is the layout for every fixed-width scalar type except
// boolean (spec.md §4.7): a single data buffer of N cells plus an
// optional validity bitmap.
type Primitive[T any] struct {
	data  *buffer.AlignedBuffer[T]
	valid *bitmap.Bitmap // nil means "no nulls possible", matching the optional bitmap in spec.md §4.7
}

// NewPrimitive returns an empty, non-nullable Primitive.
func NewPrimitive[T any]() *Primitive[T] {
	return &Primitive[T]{data: buffer.New[T]()}
}

// NewPrimitiveNullable returns an empty Primitive with a validity bitmap.
func NewPrimitiveNullable[T any]() *Primitive[T] {
	return &Primitive[T]{data: buffer.New[T](), valid: bitmap.New()}
}

// NewPrimitiveFromSlice builds a non-nullable Primitive from plain values.
func NewPrimitiveFromSlice[T any](values []T) *Primitive[T] {
	return &Primitive[T]{data: buffer.NewFromSlice(values)}
}

// Len returns the number of elements.
func (p *Primitive[T]) Len() int { return p.data.Len() }

// NullCount returns the number of absent elements, or 0 if p carries no
// validity bitmap.
func (p *Primitive[T]) NullCount() int {
	if p.valid == nil {
		return 0
	}
	return p.valid.Len() - p.valid.CountSet()
}

// IsValid reports whether element i is present.
func (p *Primitive[T]) IsValid(i int) bool {
	if p.valid == nil {
		return true
	}
	return p.valid.Get(i)
}

// Bitmap returns the validity bitmap, or nil if p carries none.
func (p *Primitive[T]) Bitmap() *bitmap.Bitmap { return p.valid }

// Values returns the plain value buffer, ignoring validity.
func (p *Primitive[T]) Values() []T { return p.data.Values() }

// At is the checked element accessor.
func (p *Primitive[T]) At(i int) (columnar.Nullable[T], error) {
	if i < 0 || i >= p.data.Len() {
		return columnar.Nullable[T]{}, columnar.WrapOutOfRange(i, p.data.Len())
	}
	return columnar.FromPair(p.data.AtUnchecked(i), p.IsValid(i)), nil
}

// AtUnchecked is the unchecked element accessor.
func (p *Primitive[T]) AtUnchecked(i int) columnar.Nullable[T] {
	return columnar.FromPair(p.data.AtUnchecked(i), p.IsValid(i))
}

// Push appends a present value.
func (p *Primitive[T]) Push(v T) {
	p.data.Push(v)
	if p.valid != nil {
		p.valid.Resize(p.data.Len(), true)
	}
}

// PushNull appends an absent value. p must carry a validity bitmap.
func (p *Primitive[T]) PushNull() {
	if p.valid == nil {
		columnar.ContractViolation("array.Primitive.PushNull: no validity bitmap attached")
	}
	var zero T
	p.data.Push(zero)
	p.valid.Resize(p.data.Len(), false)
}

// Pop removes and returns the last element.
func (p *Primitive[T]) Pop() columnar.Nullable[T] {
	n := p.data.Len()
	v := p.AtUnchecked(n - 1)
	p.data.Pop()
	if p.valid != nil {
		p.valid.Resize(n-1, false)
	}
	return v
}

// Insert inserts a present value at index i, shifting later elements
// right and propagating the reallocation through the underlying buffer
// (spec.md §4.7's insert/erase).
func (p *Primitive[T]) Insert(i int, v T) {
	p.data.Insert(i, v)
	if p.valid != nil {
		p.valid.Insert(i, true)
	}
}

// InsertNull inserts an absent value at index i. p must carry a validity
// bitmap.
func (p *Primitive[T]) InsertNull(i int) {
	if p.valid == nil {
		columnar.ContractViolation("array.Primitive.InsertNull: no validity bitmap attached")
	}
	var zero T
	p.data.Insert(i, zero)
	p.valid.Insert(i, false)
}

// Erase removes the element at index i, shifting the remainder left.
func (p *Primitive[T]) Erase(i int) {
	p.data.Erase(i)
	if p.valid != nil {
		p.valid.Erase(i)
	}
}

// AssignFromRange replaces p's entire contents with vs, discarding any
// existing elements (spec.md §4.7's assign-from-range). The result is
// always fully present if p carries a validity bitmap; PushNull/InsertNull
// afterward add new absent elements but do not mark existing ones absent.
func (p *Primitive[T]) AssignFromRange(vs []T) {
	p.data = buffer.NewFromSlice(vs)
	if p.valid != nil {
		p.valid = bitmap.NewWithLength(len(vs), true)
	}
}

// Boolean is the bit-packed boolean layout (spec.md §4.7: "Bool is
// bit-packed (same encoding as validity)"). It reuses columnar/bitmap for
// both the value bits and the optional validity bits, generalizing the
// teacher's bitfield256/PresenceBitmap pattern to both roles at once.
type Boolean struct {
	values *bitmap.Bitmap
	valid  *bitmap.Bitmap
}

// NewBoolean returns an empty, non-nullable Boolean array.
func NewBoolean() *Boolean {
	return &Boolean{values: bitmap.New()}
}

// NewBooleanNullable returns an empty Boolean array with a validity
// bitmap.
func NewBooleanNullable() *Boolean {
	return &Boolean{values: bitmap.New(), valid: bitmap.New()}
}

// Len returns the number of elements.
func (b *Boolean) Len() int { return b.values.Len() }

// NullCount returns the number of absent elements.
func (b *Boolean) NullCount() int {
	if b.valid == nil {
		return 0
	}
	return b.valid.Len() - b.valid.CountSet()
}

// IsValid reports whether element i is present.
func (b *Boolean) IsValid(i int) bool {
	if b.valid == nil {
		return true
	}
	return b.valid.Get(i)
}

// At is the checked element accessor.
func (b *Boolean) At(i int) (columnar.Nullable[bool], error) {
	if i < 0 || i >= b.values.Len() {
		return columnar.Nullable[bool]{}, columnar.WrapOutOfRange(i, b.values.Len())
	}
	return columnar.FromPair(b.values.Get(i), b.IsValid(i)), nil
}

// AtUnchecked is the unchecked element accessor.
func (b *Boolean) AtUnchecked(i int) columnar.Nullable[bool] {
	return columnar.FromPair(b.values.Get(i), b.IsValid(i))
}

// Push appends a present value.
func (b *Boolean) Push(v bool) {
	n := b.values.Len()
	b.values.Resize(n+1, false)
	b.values.Set(n, v)
	if b.valid != nil {
		b.valid.Resize(n+1, true)
	}
}

// PushNull appends an absent value. b must carry a validity bitmap.
func (b *Boolean) PushNull() {
	if b.valid == nil {
		columnar.ContractViolation("array.Boolean.PushNull: no validity bitmap attached")
	}
	n := b.values.Len()
	b.values.Resize(n+1, false)
	b.valid.Resize(n+1, false)
}

// Insert inserts a present value at index i, shifting later elements
// right.
func (b *Boolean) Insert(i int, v bool) {
	b.values.Insert(i, v)
	if b.valid != nil {
		b.valid.Insert(i, true)
	}
}

// InsertNull inserts an absent value at index i. b must carry a validity
// bitmap.
func (b *Boolean) InsertNull(i int) {
	if b.valid == nil {
		columnar.ContractViolation("array.Boolean.InsertNull: no validity bitmap attached")
	}
	b.values.Insert(i, false)
	b.valid.Insert(i, false)
}

// Erase removes the element at index i, shifting the remainder left.
func (b *Boolean) Erase(i int) {
	b.values.Erase(i)
	if b.valid != nil {
		b.valid.Erase(i)
	}
}

// AssignFromRange replaces b's entire contents with vs, discarding any
// existing elements.
func (b *Boolean) AssignFromRange(vs []bool) {
	b.values = bitmap.NewWithLength(len(vs), false)
	for i, v := range vs {
		b.values.Set(i, v)
	}
	if b.valid != nil {
		b.valid = bitmap.NewWithLength(len(vs), true)
	}
}
