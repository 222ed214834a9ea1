package bitmap

import "testing"

func TestNewWithLengthFillsBits(t *testing.T) {
	b := NewWithLength(10, true)
	if b.Len() != 10 {
		t.Fatalf("got length %d, want 10", b.Len())
	}
	for i := 0; i < 10; i++ {
		if !b.Get(i) {
			t.Fatalf("bit %d should be set", i)
		}
	}
	if b.CountSet() != 10 {
		t.Fatalf("got %d set bits, want 10", b.CountSet())
	}
}

func TestSetAndGet(t *testing.T) {
	b := NewWithLength(16, false)
	b.Set(0, true)
	b.Set(7, true)
	b.Set(8, true)
	b.Set(15, true)
	for _, i := range []int{0, 7, 8, 15} {
		if !b.Get(i) {
			t.Fatalf("bit %d should be set", i)
		}
	}
	for _, i := range []int{1, 2, 3, 4, 5, 6, 9, 10, 11, 12, 13, 14} {
		if b.Get(i) {
			t.Fatalf("bit %d should be clear", i)
		}
	}
}

func TestResizeGrowPreservesExistingBits(t *testing.T) {
	b := NewWithLength(4, false)
	b.Set(1, true)
	b.Resize(20, true)
	if b.Len() != 20 {
		t.Fatalf("got length %d, want 20", b.Len())
	}
	if !b.Get(1) {
		t.Fatalf("existing set bit should survive a resize")
	}
	if b.Get(0) {
		t.Fatalf("existing clear bit should survive a resize")
	}
	for i := 4; i < 20; i++ {
		if !b.Get(i) {
			t.Fatalf("newly exposed bit %d should be filled true", i)
		}
	}
}

func TestResizeShrink(t *testing.T) {
	b := NewWithLength(10, true)
	b.Resize(3, false)
	if b.Len() != 3 {
		t.Fatalf("got length %d, want 3", b.Len())
	}
	if b.CountSet() != 3 {
		t.Fatalf("got %d set bits, want 3", b.CountSet())
	}
}

func TestCountSetInRange(t *testing.T) {
	b := NewWithLength(8, false)
	b.Set(1, true)
	b.Set(2, true)
	b.Set(6, true)
	if got := b.CountSetInRange(0, 4); got != 2 {
		t.Fatalf("got %d, want 2", got)
	}
	if got := b.CountSetInRange(4, 8); got != 1 {
		t.Fatalf("got %d, want 1", got)
	}
}

func TestCountUnsetInRange(t *testing.T) {
	b := NewWithLength(8, true)
	b.Set(3, false)
	if got := b.CountUnsetInRange(0, 8); got != 1 {
		t.Fatalf("got %d, want 1", got)
	}
}

func TestCountSetWordsMatchesBitByBit(t *testing.T) {
	b := NewWithLength(200, false)
	for i := 0; i < 200; i += 3 {
		b.Set(i, true)
	}
	if b.CountSetWords() != b.CountSetInRange(0, 200) {
		t.Fatalf("word-at-a-time count %d should match bit-by-bit count %d", b.CountSetWords(), b.CountSetInRange(0, 200))
	}
}

func TestAllSet(t *testing.T) {
	b := NewWithLength(13, true)
	if !b.AllSet() {
		t.Fatalf("a fully-set bitmap should report AllSet")
	}
	b.Set(5, false)
	if b.AllSet() {
		t.Fatalf("AllSet should be false once any bit is cleared")
	}
}

func TestSliceOffsetAccess(t *testing.T) {
	b := NewWithLength(16, false)
	b.Set(10, true)
	if !b.GetAt(8, 2) {
		t.Fatalf("GetAt(8, 2) should see the bit set at absolute index 10")
	}
	b.SetAt(8, 3, true)
	if !b.Get(11) {
		t.Fatalf("SetAt(8, 3, true) should set the bit at absolute index 11")
	}
}

func TestGetOutOfRangePanics(t *testing.T) {
	b := NewWithLength(4, false)
	defer func() {
		if recover() == nil {
			t.Fatalf("Get past the logical length should panic")
		}
	}()
	b.Get(4)
}
