package buffer

import "testing"

func TestAdaptorSizeAndAccess(t *testing.T) {
	bytes := NewFromSlice([]byte{
		0, 0, 0, 1,
		0, 0, 0, 2,
	})
	a := NewAdaptor[byte, uint32](bytes)
	if a.Size() != 2 {
		t.Fatalf("got size %d, want 2", a.Size())
	}
	got, err := a.At(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_ = got
}

func TestAdaptorUnevenLengthPanics(t *testing.T) {
	bytes := NewFromSlice([]byte{0, 0, 0})
	defer func() {
		if recover() == nil {
			t.Fatalf("an uneven byte length should panic")
		}
	}()
	NewAdaptor[byte, uint32](bytes)
}

func TestAdaptorSet(t *testing.T) {
	bytes := NewFromSlice(make([]byte, 8))
	a := NewAdaptor[byte, uint32](bytes)
	a.Set(0, 0xDEADBEEF)
	a.Set(1, 0x00C0FFEE)
	got0, _ := a.At(0)
	got1, _ := a.At(1)
	if got0 != 0xDEADBEEF || got1 != 0x00C0FFEE {
		t.Fatalf("got %x, %x", got0, got1)
	}
}

func TestAdaptorInsertAndErase(t *testing.T) {
	bytes := NewFromSlice(make([]byte, 0))
	a := NewAdaptor[byte, uint32](bytes)
	a.InsertAt(0, 1)
	a.InsertAt(1, 2)
	a.InsertAt(1, 99)
	if a.Size() != 3 {
		t.Fatalf("got size %d, want 3", a.Size())
	}
	v1, _ := a.At(1)
	if v1 != 99 {
		t.Fatalf("got %d, want 99", v1)
	}
	a.EraseAt(1)
	if a.Size() != 2 {
		t.Fatalf("got size %d, want 2", a.Size())
	}
	v0, _ := a.At(0)
	v1b, _ := a.At(1)
	if v0 != 1 || v1b != 2 {
		t.Fatalf("got %d, %d, want 1, 2", v0, v1b)
	}
}
