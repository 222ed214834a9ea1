package array

import (
	"bytes"
	"testing"
)

func TestFixedWidthBinaryPushAndAt(t *testing.T) {
	f := NewFixedWidthBinary(4)
	if err := f.Push([]byte{1, 2, 3, 4}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f.PushNull()
	if err := f.Push([]byte{5, 6, 7, 8}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if f.Len() != 3 {
		t.Fatalf("got length %d, want 3", f.Len())
	}
	got, err := f.At(0)
	if err != nil || !bytes.Equal(got.Value(), []byte{1, 2, 3, 4}) {
		t.Fatalf("got %v, %v", got, err)
	}
	got, err = f.At(1)
	if err != nil || got.HasValue() {
		t.Fatalf("element 1 should be null")
	}
}

func TestFixedWidthBinaryWrongSizeRejected(t *testing.T) {
	f := NewFixedWidthBinary(4)
	if err := f.Push([]byte{1, 2}); err == nil {
		t.Fatalf("expected an invariant violation for the wrong-sized push")
	}
}

func TestFixedWidthBinarySet(t *testing.T) {
	f := NewFixedWidthBinary(2)
	f.Push([]byte{1, 2})
	if err := f.Set(0, []byte{9, 9}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := f.At(0)
	if !bytes.Equal(got.Value(), []byte{9, 9}) {
		t.Fatalf("got %v", got.Value())
	}
	if err := f.Set(0, []byte{1, 2, 3}); err == nil {
		t.Fatalf("expected an invariant violation for the wrong-sized set")
	}
}
