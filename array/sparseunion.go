package array

import (
	set3 "github.com/TomTonic/Set3"

	"github.com/TomTonic/columnar"
	"github.com/TomTonic/columnar/buffer"
)

// SparseUnion is the sparse-union layout (spec.md §4.15): an 8-bit
// type-id buffer T only. Every child has the same length as the union;
// element(i) = children[map(T[i])][i]. No top-level validity bitmap.
type SparseUnion struct {
	typeIDs       *buffer.AlignedBuffer[int8]
	children      []Array
	typeIDToChild map[int8]int
}

// NewSparseUnion returns an empty sparse union. typeIDs lists the format
// string's type ids in child order ("+us:i1,i2,..."); duplicates are
// rejected with InvariantViolation, checked with a Set3 as in
// NewDenseUnion.
func NewSparseUnion(typeIDs []int8, children []Array) (*SparseUnion, error) {
	if len(typeIDs) != len(children) {
		return nil, columnar.WrapInvariant("sparse union type-id list and child count must match")
	}
	seen := set3.EmptyWithCapacity[int8](uint32(len(typeIDs)))
	mapping := make(map[int8]int, len(typeIDs))
	for i, tid := range typeIDs {
		if seen.Contains(tid) {
			return nil, columnar.WrapInvariant("duplicate type id in sparse union format string")
		}
		seen.Add(tid)
		mapping[tid] = i
	}
	return &SparseUnion{typeIDs: buffer.New[int8](), children: append([]Array(nil), children...), typeIDToChild: mapping}, nil
}

// Len returns the number of elements, equal to every child's length
// (spec.md §3 invariant 6).
func (u *SparseUnion) Len() int { return u.typeIDs.Len() }

// NullCount always reports 0 at the top level.
func (u *SparseUnion) NullCount() int { return 0 }

// IsValid always reports true at the top level.
func (u *SparseUnion) IsValid(i int) bool { return true }

// ChildCount returns the number of children.
func (u *SparseUnion) ChildCount() int { return len(u.children) }

// Child returns the i'th child array.
func (u *SparseUnion) Child(i int) Array { return u.children[i] }

// Selected returns the child index selected by logical index i.
func (u *SparseUnion) Selected(i int) (int, error) {
	n := u.typeIDs.Len()
	if i < 0 || i >= n {
		return 0, columnar.WrapOutOfRange(i, n)
	}
	idx, ok := u.typeIDToChild[u.typeIDs.AtUnchecked(i)]
	if !ok {
		return 0, columnar.WrapFormatMismatch("sparse union", "unknown type id")
	}
	return idx, nil
}

// PushSelection appends an element selecting type id tid. Every child
// buffer must already hold a value at this new index (spec.md §3
// invariant 6: all children share the union's length).
func (u *SparseUnion) PushSelection(tid int8) error {
	if _, ok := u.typeIDToChild[tid]; !ok {
		return columnar.WrapFormatMismatch("sparse union", "unknown type id")
	}
	u.typeIDs.Push(tid)
	return nil
}
