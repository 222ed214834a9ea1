package columnar

import "testing"

func TestNullableSomeNone(t *testing.T) {
	n := Some(42)
	if !n.HasValue() {
		t.Fatalf("Some should have a value")
	}
	if n.Value() != 42 {
		t.Fatalf("got %d, want 42", n.Value())
	}

	var none Nullable[int]
	none = None[int]()
	if none.HasValue() {
		t.Fatalf("None should not have a value")
	}
}

func TestNullableValuePanicsWhenAbsent(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("Value() on an absent Nullable should panic")
		}
	}()
	None[string]().Value()
}

func TestNullableGet(t *testing.T) {
	if _, err := None[int]().Get(); err == nil {
		t.Fatalf("Get() on an absent Nullable should return an error")
	}
	v, err := Some(7).Get()
	if err != nil || v != 7 {
		t.Fatalf("got %d, %v, want 7, nil", v, err)
	}
}

func TestNullableValueOr(t *testing.T) {
	if got := None[int]().ValueOr(9); got != 9 {
		t.Fatalf("got %d, want 9", got)
	}
	if got := Some(3).ValueOr(9); got != 3 {
		t.Fatalf("got %d, want 3", got)
	}
}

func TestNullableFromPair(t *testing.T) {
	n := FromPair(5, true)
	if !n.HasValue() || n.Value() != 5 {
		t.Fatalf("FromPair(5, true) should carry value 5")
	}
	n = FromPair(5, false)
	if n.HasValue() {
		t.Fatalf("FromPair(5, false) should be absent")
	}
}

func TestCompareNullable(t *testing.T) {
	cmp := func(a, b int) int { return a - b }
	if CompareNullable(None[int](), None[int](), cmp) != 0 {
		t.Fatalf("two absent nullables should compare equal")
	}
	if CompareNullable(None[int](), Some(1), cmp) >= 0 {
		t.Fatalf("absent should sort before present")
	}
	if CompareNullable(Some(1), None[int](), cmp) <= 0 {
		t.Fatalf("present should sort after absent")
	}
	if CompareNullable(Some(2), Some(3), cmp) >= 0 {
		t.Fatalf("Some(2) should be less than Some(3)")
	}
}

func TestEqualNullable(t *testing.T) {
	eq := func(a, b int) bool { return a == b }
	if !EqualNullable(None[int](), None[int](), eq) {
		t.Fatalf("two absent nullables should be equal")
	}
	if EqualNullable(Some(1), None[int](), eq) {
		t.Fatalf("present and absent should not be equal")
	}
	if !EqualNullable(Some(4), Some(4), eq) {
		t.Fatalf("Some(4) should equal Some(4)")
	}
}
