package array

import (
	"github.com/dolthub/maphash"

	"github.com/TomTonic/columnar"
	"github.com/TomTonic/columnar/bitmap"
	"github.com/TomTonic/columnar/buffer"
)

// Dictionary is the dictionary-encoded layout (spec.md §4.17): an index
// child of logical length, a dictionary child of unique values, and an
// index-level validity bitmap. element(i) is null if index bit i is not
// set, else dictionary[index[i]]. The dictionary is attached as the
// schema/array's dedicated dictionary slot, not as an ordinary child.
type Dictionary[Idx Offset, T comparable] struct {
	indices     *buffer.AlignedBuffer[Idx]
	valid       *bitmap.Bitmap
	values      []T
	valuesValid *bitmap.Bitmap // validity of the dictionary's own entries; a value slot can itself be null (spec.md §8 scenario 6)
	hasher      maphash.Hasher[T]
	lookup      map[uint64][]int // hash(value) -> candidate indices into values, for AppendValue dedup
}

// NewDictionary returns an empty dictionary-encoded array.
func NewDictionary[Idx Offset, T comparable]() *Dictionary[Idx, T] {
	return &Dictionary[Idx, T]{
		indices:     buffer.New[Idx](),
		valid:       bitmap.New(),
		valuesValid: bitmap.New(),
		hasher:      maphash.NewHasher[T](),
		lookup:      make(map[uint64][]int),
	}
}

// Len returns the number of logical (index-space) elements.
func (d *Dictionary[Idx, T]) Len() int { return d.indices.Len() }

// NullCount returns the number of absent elements.
func (d *Dictionary[Idx, T]) NullCount() int { return d.valid.Len() - d.valid.CountSet() }

// IsValid reports whether element i is present.
func (d *Dictionary[Idx, T]) IsValid(i int) bool { return d.valid.Get(i) }

// DictionaryLen returns the number of unique values in the dictionary.
func (d *Dictionary[Idx, T]) DictionaryLen() int { return len(d.values) }

// DictionaryValues returns the dictionary's unique values in index
// order.
func (d *Dictionary[Idx, T]) DictionaryValues() []T { return d.values }

// At is the checked element accessor.
func (d *Dictionary[Idx, T]) At(i int) (columnar.Nullable[T], error) {
	n := d.indices.Len()
	if i < 0 || i >= n {
		return columnar.Nullable[T]{}, columnar.WrapOutOfRange(i, n)
	}
	if !d.IsValid(i) {
		return columnar.None[T](), nil
	}
	idx := int(d.indices.AtUnchecked(i))
	if idx < 0 || idx >= len(d.values) {
		return columnar.Nullable[T]{}, columnar.WrapInvariant("dictionary index out of range")
	}
	if !d.valuesValid.Get(idx) {
		return columnar.None[T](), nil
	}
	return columnar.Some(d.values[idx]), nil
}

// AtUnchecked is the unchecked element accessor. An element can be absent
// either because its index bit is unset, or because the dictionary entry
// it references is itself a null value (spec.md §8 scenario 6).
func (d *Dictionary[Idx, T]) AtUnchecked(i int) columnar.Nullable[T] {
	idx := int(d.indices.AtUnchecked(i))
	present := d.IsValid(i) && d.valuesValid.Get(idx)
	return columnar.FromPair(d.values[idx], present)
}

// AppendValue looks up val in the dictionary (adding it if not already
// present, hashed via dolthub/maphash for O(1) average dedup) and
// appends an index element referencing it.
func (d *Dictionary[Idx, T]) AppendValue(val T) {
	idx := d.internOrAdd(val)
	d.indices.Push(Idx(idx))
	d.valid.Resize(d.indices.Len(), true)
}

// AppendNull appends a null index element.
func (d *Dictionary[Idx, T]) AppendNull() {
	d.indices.Push(0)
	d.valid.Resize(d.indices.Len(), false)
}

func (d *Dictionary[Idx, T]) internOrAdd(val T) int {
	h := d.hasher.Hash(val)
	for _, candidate := range d.lookup[h] {
		if d.valuesValid.Get(candidate) && d.values[candidate] == val {
			return candidate
		}
	}
	idx := len(d.values)
	d.values = append(d.values, val)
	d.valuesValid.Resize(len(d.values), true)
	d.lookup[h] = append(d.lookup[h], idx)
	return idx
}

// AppendNullValue adds a null entry to the dictionary itself (distinct
// from a null index element: the dictionary slot a valid index can
// legally reference is itself absent, spec.md §8 scenario 6) and returns
// its index. A zero value of T occupies the slot but is never compared
// against by internOrAdd's dedup, since valuesValid marks it absent.
func (d *Dictionary[Idx, T]) AppendNullValue() int {
	var zero T
	idx := len(d.values)
	d.values = append(d.values, zero)
	d.valuesValid.Resize(len(d.values), false)
	return idx
}

// AppendIndex appends an index directly, referencing an existing
// dictionary entry without a value lookup. idx must be in
// [0, DictionaryLen()) — out of range fails with InvariantViolation
// (spec.md §3 invariant 7).
func (d *Dictionary[Idx, T]) AppendIndex(idx int) error {
	if idx < 0 || idx >= len(d.values) {
		return columnar.WrapInvariant("dictionary index out of range")
	}
	d.indices.Push(Idx(idx))
	d.valid.Resize(d.indices.Len(), true)
	return nil
}
