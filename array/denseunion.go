package array

import (
	set3 "github.com/TomTonic/Set3"

	"github.com/TomTonic/columnar"
	"github.com/TomTonic/columnar/buffer"
)

// DenseUnion is the dense-union layout (spec.md §4.14): an 8-bit type-id
// buffer T and a 32-bit offset buffer O. For logical index i, the
// selected child is children[map(T[i])], and the value is that child's
// O[i]-th element. Children may have independent lengths; there is no
// top-level validity bitmap, since nulls live inside each child.
type DenseUnion struct {
	typeIDs       *buffer.AlignedBuffer[int8]
	offsets       *buffer.AlignedBuffer[int32]
	children      []Array
	typeIDToChild map[int8]int
}

// NewDenseUnion returns an empty dense union whose format-string type-id
// list is typeIDs (in child order, per spec.md §4.15's "+ud:" grammar).
// Duplicate type ids are rejected with InvariantViolation; the dedup
// check is performed with a Set3, the one general-purpose set the
// example corpus supplies.
func NewDenseUnion(typeIDs []int8, children []Array) (*DenseUnion, error) {
	if len(typeIDs) != len(children) {
		return nil, columnar.WrapInvariant("dense union type-id list and child count must match")
	}
	seen := set3.EmptyWithCapacity[int8](uint32(len(typeIDs)))
	mapping := make(map[int8]int, len(typeIDs))
	for i, tid := range typeIDs {
		if seen.Contains(tid) {
			return nil, columnar.WrapInvariant("duplicate type id in dense union format string")
		}
		seen.Add(tid)
		mapping[tid] = i
	}
	return &DenseUnion{
		typeIDs:       buffer.New[int8](),
		offsets:       buffer.New[int32](),
		children:      append([]Array(nil), children...),
		typeIDToChild: mapping,
	}, nil
}

// Len returns the number of logical elements.
func (u *DenseUnion) Len() int { return u.typeIDs.Len() }

// NullCount always reports 0 at the top level: nulls live inside children
// (spec.md §4.14).
func (u *DenseUnion) NullCount() int { return 0 }

// IsValid always reports true at the top level.
func (u *DenseUnion) IsValid(i int) bool { return true }

// ChildCount returns the number of children.
func (u *DenseUnion) ChildCount() int { return len(u.children) }

// ChildForTypeID returns the child index selected by a raw type id.
func (u *DenseUnion) ChildForTypeID(tid int8) (int, error) {
	idx, ok := u.typeIDToChild[tid]
	if !ok {
		return 0, columnar.WrapFormatMismatch("dense union", "unknown type id")
	}
	return idx, nil
}

// Selected returns the (child index, child-local offset) pair for
// logical index i.
func (u *DenseUnion) Selected(i int) (childIndex int, childOffset int, err error) {
	n := u.typeIDs.Len()
	if i < 0 || i >= n {
		return 0, 0, columnar.WrapOutOfRange(i, n)
	}
	idx, err := u.ChildForTypeID(u.typeIDs.AtUnchecked(i))
	if err != nil {
		return 0, 0, err
	}
	return idx, int(u.offsets.AtUnchecked(i)), nil
}

// Child returns the i'th child array.
func (u *DenseUnion) Child(i int) Array { return u.children[i] }

// PushSelection appends an element selecting type id tid at childOffset
// within that child.
func (u *DenseUnion) PushSelection(tid int8, childOffset int) error {
	if _, ok := u.typeIDToChild[tid]; !ok {
		return columnar.WrapFormatMismatch("dense union", "unknown type id")
	}
	u.typeIDs.Push(tid)
	u.offsets.Push(int32(childOffset))
	return nil
}
