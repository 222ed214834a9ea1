package array

import (
	"bytes"
	"strings"
	"testing"
)

func TestVarBinaryViewInlineAndLong(t *testing.T) {
	v := NewVarBinaryView(false)
	short := []byte("short")
	long := []byte(strings.Repeat("x", 40))

	if err := v.Push(short); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := v.Push(long); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v.PushNull()

	if v.Len() != 3 {
		t.Fatalf("got length %d, want 3", v.Len())
	}
	got, err := v.At(0)
	if err != nil || !bytes.Equal(got.Value(), short) {
		t.Fatalf("got %v, %v, want %q", got, err, short)
	}
	got, err = v.At(1)
	if err != nil || !bytes.Equal(got.Value(), long) {
		t.Fatalf("long value did not round trip")
	}
	got, err = v.At(2)
	if err != nil || got.HasValue() {
		t.Fatalf("element 2 should be null")
	}
}

func TestVarBinaryViewPrefix(t *testing.T) {
	v := NewVarBinaryView(false)
	v.Push([]byte(strings.Repeat("y", 30)))
	prefix := v.Prefix(0)
	if prefix != [4]byte{'y', 'y', 'y', 'y'} {
		t.Fatalf("got prefix %v", prefix)
	}
}

func TestVarBinaryViewUTF8Validation(t *testing.T) {
	v := NewVarBinaryView(true)
	if err := v.Push([]byte("ok")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := v.Push([]byte{0xff, 0xfe}); err == nil {
		t.Fatalf("expected an error for invalid utf-8")
	}
}
