package columnar

import "testing"

func TestMetadataEncodeDecodeRoundTrip(t *testing.T) {
	m := NewMetadata([]string{"k1", "k2"}, []string{"v1", "v2"})
	buf := m.Encode()
	got := DecodeMetadata(buf)
	if got.Len() != 2 {
		t.Fatalf("got %d pairs, want 2", got.Len())
	}
	k, v := got.At(0)
	if k != "k1" || v != "v1" {
		t.Fatalf("got (%q, %q), want (k1, v1)", k, v)
	}
	k, v = got.At(1)
	if k != "k2" || v != "v2" {
		t.Fatalf("got (%q, %q), want (k2, v2)", k, v)
	}
}

func TestMetadataEmpty(t *testing.T) {
	m := NewMetadata(nil, nil)
	if m.Encode() != nil {
		t.Fatalf("an empty Metadata should encode to a nil buffer")
	}
	got := DecodeMetadata(nil)
	if got.Len() != 0 {
		t.Fatalf("decoding a nil buffer should produce an empty Metadata")
	}
}

func TestMetadataWithEmptyStrings(t *testing.T) {
	m := NewMetadata([]string{"", "k"}, []string{"v", ""})
	buf := m.Encode()
	got := DecodeMetadata(buf)
	k, v := got.At(0)
	if k != "" || v != "v" {
		t.Fatalf("got (%q, %q), want (\"\", v)", k, v)
	}
	k, v = got.At(1)
	if k != "k" || v != "" {
		t.Fatalf("got (%q, %q), want (k, \"\")", k, v)
	}
}
