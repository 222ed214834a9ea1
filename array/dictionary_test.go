package array

import "testing"

func TestDictionaryAppendValueDedups(t *testing.T) {
	d := NewDictionary[int32, string]()
	d.AppendValue("red")
	d.AppendValue("green")
	d.AppendValue("red")
	d.AppendNull()

	if d.Len() != 4 {
		t.Fatalf("got length %d, want 4", d.Len())
	}
	if d.DictionaryLen() != 2 {
		t.Fatalf("got dictionary length %d, want 2 (red, green deduped)", d.DictionaryLen())
	}

	v0, err := d.At(0)
	if err != nil || v0.Value() != "red" {
		t.Fatalf("got %v, %v, want red", v0, err)
	}
	v2, err := d.At(2)
	if err != nil || v2.Value() != "red" {
		t.Fatalf("element 2 should also resolve to red")
	}
	v3, err := d.At(3)
	if err != nil || v3.HasValue() {
		t.Fatalf("element 3 should be null")
	}
}

func TestDictionaryAppendIndexOutOfRange(t *testing.T) {
	d := NewDictionary[int32, string]()
	d.AppendValue("a")
	if err := d.AppendIndex(0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := d.AppendIndex(5); err == nil {
		t.Fatalf("expected an out-of-range dictionary index error")
	}
}

func TestDictionaryIntegerValues(t *testing.T) {
	d := NewDictionary[int32, int64]()
	d.AppendValue(1000)
	d.AppendValue(2000)
	d.AppendValue(1000)
	if d.DictionaryLen() != 2 {
		t.Fatalf("got dictionary length %d, want 2", d.DictionaryLen())
	}
}
