package cdata

import (
	"testing"

	"github.com/TomTonic/columnar"
)

func TestNewOwnedBasicAccessors(t *testing.T) {
	p := NewOwned("i", "amount")
	if p.Format() != "i" || p.Name() != "amount" {
		t.Fatalf("got format %q name %q", p.Format(), p.Name())
	}
	p.SetLength(10)
	p.SetNullCount(2)
	p.SetOffset(1)
	if p.Length() != 10 || p.NullCount() != 2 || p.Offset() != 1 {
		t.Fatalf("accessor round trip failed: %d %d %d", p.Length(), p.NullCount(), p.Offset())
	}
}

func TestProxyMetadataRoundTrip(t *testing.T) {
	p := NewOwned("u", "")
	m := columnar.NewMetadata([]string{"k"}, []string{"v"})
	p.SetMetadata(m)
	got := p.Metadata()
	if got.Len() != 1 {
		t.Fatalf("got %d pairs, want 1", got.Len())
	}
	k, v := got.At(0)
	if k != "k" || v != "v" {
		t.Fatalf("got (%q, %q)", k, v)
	}
}

func TestProxyChildren(t *testing.T) {
	p := NewOwned("+s", "")
	childSchema := &Schema{Format: "i", Name: "a"}
	childArray := &Array{Length: 3}
	p.AddChild(childSchema, childArray)
	if p.ChildCount() != 1 {
		t.Fatalf("got %d children, want 1", p.ChildCount())
	}
	s, a, err := p.Child(0)
	if err != nil || s != childSchema || a != childArray {
		t.Fatalf("got %v %v %v", s, a, err)
	}
	newSchema := &Schema{Format: "l", Name: "b"}
	newArray := &Array{Length: 5}
	oldS, oldA, err := p.ReplaceChild(0, newSchema, newArray)
	if err != nil || oldS != childSchema || oldA != childArray {
		t.Fatalf("ReplaceChild did not return the previous pair")
	}
	if err := p.RemoveChild(0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ChildCount() != 0 {
		t.Fatalf("got %d children after removal, want 0", p.ChildCount())
	}
}

func TestProxyDictionary(t *testing.T) {
	p := NewOwned("c", "")
	if p.HasDictionary() {
		t.Fatalf("a fresh proxy should have no dictionary")
	}
	dictSchema := &Schema{Format: "u"}
	dictArray := &Array{Length: 3}
	p.AttachDictionary(dictSchema, dictArray)
	if !p.HasDictionary() {
		t.Fatalf("dictionary should be attached")
	}
	s, a := p.DetachDictionary()
	if s != dictSchema || a != dictArray {
		t.Fatalf("DetachDictionary did not return the attached pair")
	}
	if p.HasDictionary() {
		t.Fatalf("dictionary should be gone after detaching")
	}
}

func TestProxyBuffers(t *testing.T) {
	p := NewOwned("i", "")
	p.PushBuffer(nil)
	p.PushBuffer([]byte{1, 2, 3, 4})
	if p.BufferCount() != 2 {
		t.Fatalf("got %d buffers, want 2", p.BufferCount())
	}
	if err := p.RepointBuffer(1, []byte{5, 6, 7, 8}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	popped := p.PopBuffer()
	if popped[0] != 5 {
		t.Fatalf("got %v, want buffer starting with 5", popped)
	}
}

func TestProxyUpdateBuffersIsIdempotent(t *testing.T) {
	backing := []byte{1, 2, 3, 4}
	p := NewOwned("i", "")
	p.PushBuffer(backing)
	p.UpdateBuffers([][]byte{backing})
	buf, _ := p.array.BufferAt(0)
	if &buf[0] != &backing[0] {
		t.Fatalf("UpdateBuffers should leave an unchanged buffer's identity alone")
	}
	grown := make([]byte, 8)
	copy(grown, backing)
	p.UpdateBuffers([][]byte{grown})
	buf, _ = p.array.BufferAt(0)
	if len(buf) != 8 {
		t.Fatalf("UpdateBuffers should adopt the refreshed buffer view")
	}
}

func TestProxyTransferOutForbidsFurtherOps(t *testing.T) {
	p := NewOwned("i", "")
	schema, array := p.TransferOut()
	if schema == nil || array == nil {
		t.Fatalf("TransferOut should return both structs")
	}
	defer func() {
		if recover() == nil {
			t.Fatalf("operating on a transferred-out proxy should panic")
		}
	}()
	p.Length()
}

func TestAdoptForeignNilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("adopting a nil schema or array should panic")
		}
	}()
	AdoptForeign(nil, nil)
}

func TestProxyReleaseIsAllOrNothing(t *testing.T) {
	schemaReleased, arrayReleased := false, false
	schema := &Schema{Format: "i"}
	schema.SetRelease(func(*Schema) { schemaReleased = true })
	array := &Array{}
	array.SetRelease(func(*Array) { arrayReleased = true })
	p := AdoptForeign(schema, array)
	p.Release()
	if !schemaReleased || !arrayReleased {
		t.Fatalf("Release should release both structs together")
	}
}
