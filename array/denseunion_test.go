package array

import "testing"

func TestDenseUnionSelection(t *testing.T) {
	ints := NewPrimitiveFromSlice([]int32{10, 20})
	strs := NewVarBinary[int32](true)
	strs.Push([]byte("hi"))

	u, err := NewDenseUnion([]int8{0, 1}, []Array{ints, strs})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := u.PushSelection(0, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := u.PushSelection(1, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := u.PushSelection(0, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	childIdx, childOff, err := u.Selected(1)
	if err != nil || childIdx != 1 || childOff != 0 {
		t.Fatalf("got %d, %d, %v", childIdx, childOff, err)
	}
	childIdx, childOff, err = u.Selected(2)
	if err != nil || childIdx != 0 || childOff != 1 {
		t.Fatalf("got %d, %d, %v", childIdx, childOff, err)
	}
}

func TestDenseUnionDuplicateTypeIDRejected(t *testing.T) {
	ints := NewPrimitiveFromSlice([]int32{1})
	strs := NewPrimitiveFromSlice([]int32{1})
	if _, err := NewDenseUnion([]int8{0, 0}, []Array{ints, strs}); err == nil {
		t.Fatalf("expected an error for a duplicate type id")
	}
}

func TestDenseUnionUnknownTypeIDRejected(t *testing.T) {
	ints := NewPrimitiveFromSlice([]int32{1})
	u, err := NewDenseUnion([]int8{0}, []Array{ints})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := u.PushSelection(9, 0); err == nil {
		t.Fatalf("expected an error selecting an unknown type id")
	}
}
