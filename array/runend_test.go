package array

import "testing"

func TestRunEndEncodedLookup(t *testing.T) {
	values := NewPrimitiveFromSlice([]int32{100, 200, 300})
	r, err := NewRunEndEncoded([]int32{3, 5, 9}, values)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Len() != 9 {
		t.Fatalf("got length %d, want 9", r.Len())
	}
	cases := []struct {
		i   int
		run int
	}{
		{0, 0}, {2, 0}, {3, 1}, {4, 1}, {5, 2}, {8, 2},
	}
	for _, c := range cases {
		got, err := r.RunIndexFor(c.i)
		if err != nil || got != c.run {
			t.Fatalf("RunIndexFor(%d) = %d, %v, want %d", c.i, got, err, c.run)
		}
	}
}

func TestRunEndEncodedMismatchedLengthRejected(t *testing.T) {
	values := NewPrimitiveFromSlice([]int32{1, 2})
	if _, err := NewRunEndEncoded([]int32{1, 2, 3}, values); err == nil {
		t.Fatalf("expected an error for mismatched run-ends/values length")
	}
}

func TestRunEndEncodedNonIncreasingRejected(t *testing.T) {
	values := NewPrimitiveFromSlice([]int32{1, 2})
	if _, err := NewRunEndEncoded([]int32{3, 3}, values); err == nil {
		t.Fatalf("expected an error for non-strictly-increasing run-ends")
	}
}

func TestRunEndEncodedPushRun(t *testing.T) {
	values := NewPrimitiveFromSlice([]int32{})
	r, _ := NewRunEndEncoded([]int32{}, values)
	if err := r.PushRun(5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.PushRun(5); err == nil {
		t.Fatalf("expected an error for a non-increasing run-end")
	}
}
