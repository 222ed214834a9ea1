package array

import "testing"

func TestPrimitivePushAndAt(t *testing.T) {
	p := NewPrimitiveNullable[int32]()
	p.Push(1)
	p.Push(2)
	p.PushNull()
	p.Push(4)

	if p.Len() != 4 {
		t.Fatalf("got length %d, want 4", p.Len())
	}
	if p.NullCount() != 1 {
		t.Fatalf("got null count %d, want 1", p.NullCount())
	}
	v, err := p.At(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.HasValue() {
		t.Fatalf("element 2 should be null")
	}
	v, err = p.At(3)
	if err != nil || v.Value() != 4 {
		t.Fatalf("got %v, %v, want Some(4)", v, err)
	}
}

func TestPrimitiveOutOfRange(t *testing.T) {
	p := NewPrimitiveFromSlice([]int32{1, 2, 3})
	if _, err := p.At(10); err == nil {
		t.Fatalf("expected an out-of-range error")
	}
}

func TestPrimitiveNonNullableAlwaysValid(t *testing.T) {
	p := NewPrimitiveFromSlice([]float64{1.5, 2.5})
	if p.NullCount() != 0 {
		t.Fatalf("a non-nullable primitive should report zero nulls")
	}
	if !p.IsValid(0) {
		t.Fatalf("a non-nullable primitive's elements are always valid")
	}
}

func TestPrimitivePop(t *testing.T) {
	p := NewPrimitiveFromSlice([]int32{1, 2, 3})
	v := p.Pop()
	if v.Value() != 3 || p.Len() != 2 {
		t.Fatalf("Pop should remove and return the last element")
	}
}

func TestBooleanPushAndAt(t *testing.T) {
	b := NewBooleanNullable()
	b.Push(true)
	b.Push(false)
	b.PushNull()

	if b.Len() != 3 {
		t.Fatalf("got length %d, want 3", b.Len())
	}
	v, _ := b.At(0)
	if !v.Value() {
		t.Fatalf("element 0 should be true")
	}
	v, _ = b.At(2)
	if v.HasValue() {
		t.Fatalf("element 2 should be null")
	}
}

func TestBooleanNonNullable(t *testing.T) {
	b := NewBoolean()
	b.Push(true)
	b.Push(true)
	b.Push(false)
	if b.NullCount() != 0 {
		t.Fatalf("a non-nullable boolean array should report zero nulls")
	}
}
