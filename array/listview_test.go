package array

import "testing"

func TestListViewOverlappingRanges(t *testing.T) {
	child := NewPrimitiveFromSlice([]int32{1, 2, 3, 4, 5})
	lv := NewListView[int32](child)
	if err := lv.PushRange(0, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := lv.PushRange(1, 3); err != nil { // overlaps with the first range
		t.Fatalf("unexpected error: %v", err)
	}

	if lv.Len() != 2 {
		t.Fatalf("got length %d, want 2", lv.Len())
	}
	v, _ := lv.At(0)
	if r := v.Value(); r.Start != 0 || r.End != 3 {
		t.Fatalf("got range %+v", r)
	}
	v, _ = lv.At(1)
	if r := v.Value(); r.Start != 1 || r.End != 4 {
		t.Fatalf("got range %+v", r)
	}
}

func TestListViewOutOfBoundsRangeRejected(t *testing.T) {
	child := NewPrimitiveFromSlice([]int32{1, 2, 3})
	lv := NewListView[int32](child)
	if err := lv.PushRange(1, 10); err == nil {
		t.Fatalf("expected an invariant violation for a range past the child's length")
	}
}

func TestListViewNull(t *testing.T) {
	child := NewPrimitiveFromSlice([]int32{1, 2, 3})
	lv := NewListView[int32](child)
	lv.PushNull()
	v, err := lv.At(0)
	if err != nil || v.HasValue() {
		t.Fatalf("element 0 should be null")
	}
}
