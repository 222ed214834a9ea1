package array

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// These round-trip the richer nested layouts end to end (build, then read
// every element back out) and diff the whole reconstructed structure at
// once with go-cmp, rather than comparing field by field.
func TestListOfVarBinaryRoundTrip(t *testing.T) {
	child := NewVarBinary[int32](true)
	want := [][]string{{"a", "bb"}, {}, {"ccc"}}

	l := NewList[int32](child)
	for _, group := range want {
		for _, s := range group {
			if err := child.Push([]byte(s)); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}
		l.PushRange(len(group))
	}

	got := make([][]string, l.Len())
	for i := 0; i < l.Len(); i++ {
		nv, err := l.At(i)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		rng := nv.Value()
		group := make([]string, 0, rng.Len())
		for j := rng.Start; j < rng.End; j++ {
			group = append(group, string(child.Values(j)))
		}
		got[i] = group
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("list-of-varbinary round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDictionaryRoundTrip(t *testing.T) {
	d := NewDictionary[int32, string]()
	want := []string{"red", "green", "red", "blue", "green"}
	for _, v := range want {
		d.AppendValue(v)
	}

	got := make([]string, d.Len())
	for i := 0; i < d.Len(); i++ {
		nv, err := d.At(i)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got[i] = nv.Value()
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("dictionary round trip mismatch (-want +got):\n%s", diff)
	}
	if d.DictionaryLen() != 3 {
		t.Fatalf("got dictionary length %d, want 3 (red, green, blue)", d.DictionaryLen())
	}
}

func TestStructOfPrimitivesRoundTrip(t *testing.T) {
	ids := NewPrimitiveFromSlice([]int32{1, 2, 3})
	scores := NewPrimitiveFromSlice([]float64{9.5, 8.0, 7.25})
	s := NewStruct(3, []string{"id", "score"}, []Array{ids, scores})

	type row struct {
		ID    int32
		Score float64
	}
	want := []row{{1, 9.5}, {2, 8.0}, {3, 7.25}}

	got := make([]row, s.Len())
	for i := 0; i < s.Len(); i++ {
		_, idArr := s.ChildAt(0)
		_, scoreArr := s.ChildAt(1)
		got[i] = row{
			ID:    idArr.(*Primitive[int32]).AtUnchecked(i).Value(),
			Score: scoreArr.(*Primitive[float64]).AtUnchecked(i).Value(),
		}
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("struct round trip mismatch (-want +got):\n%s", diff)
	}
}
