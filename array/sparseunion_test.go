package array

import "testing"

func TestSparseUnionSelection(t *testing.T) {
	ints := NewPrimitiveFromSlice([]int32{1, 2, 3})
	floats := NewPrimitiveFromSlice([]float64{1.1, 2.2, 3.3})

	u, err := NewSparseUnion([]int8{5, 7}, []Array{ints, floats})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := u.PushSelection(5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := u.PushSelection(7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	idx, err := u.Selected(0)
	if err != nil || idx != 0 {
		t.Fatalf("got %d, %v, want child 0", idx, err)
	}
	idx, err = u.Selected(1)
	if err != nil || idx != 1 {
		t.Fatalf("got %d, %v, want child 1", idx, err)
	}
}

func TestSparseUnionDuplicateTypeIDRejected(t *testing.T) {
	ints := NewPrimitiveFromSlice([]int32{1})
	strs := NewPrimitiveFromSlice([]int32{1})
	if _, err := NewSparseUnion([]int8{3, 3}, []Array{ints, strs}); err == nil {
		t.Fatalf("expected an error for a duplicate type id")
	}
}
