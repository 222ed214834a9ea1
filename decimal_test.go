package columnar

import "testing"

func TestDecimal128FromInt64AndString(t *testing.T) {
	d := Decimal128FromInt64(12345, 10, 2)
	if got, want := d.String(), "123.45"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestDecimal128Negative(t *testing.T) {
	d := Decimal128FromInt64(-12345, 10, 2)
	if got, want := d.String(), "-123.45"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestDecimal128ZeroScale(t *testing.T) {
	d := Decimal128FromInt64(42, 10, 0)
	if got, want := d.String(), "42"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestDecimal128Negate(t *testing.T) {
	d := Decimal128FromInt64(100, 10, 0)
	n := d.Negate()
	if got, want := n.String(), "-100"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if n.Negate().Cmp(d) != 0 {
		t.Fatalf("double negation should return the original value")
	}
}

func TestDecimal128Cmp(t *testing.T) {
	a := Decimal128FromInt64(5, 10, 0)
	b := Decimal128FromInt64(10, 10, 0)
	if a.Cmp(b) >= 0 {
		t.Fatalf("5 should compare less than 10")
	}
	if b.Cmp(a) <= 0 {
		t.Fatalf("10 should compare greater than 5")
	}
	if a.Cmp(a) != 0 {
		t.Fatalf("a value should compare equal to itself")
	}
	neg := Decimal128FromInt64(-1, 10, 0)
	if neg.Cmp(a) >= 0 {
		t.Fatalf("a negative value should compare less than a positive one")
	}
}

func TestNewDecimal128FromLittleEndianBytes(t *testing.T) {
	var le [16]byte
	le[0] = 100
	d := NewDecimal128(le, 10, 0)
	if got, want := d.String(), "100"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestDecimal256FromInt64AndString(t *testing.T) {
	d := Decimal256FromInt64(987654321, 40, 3)
	if got, want := d.String(), "987654.321"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestDecimal256Negate(t *testing.T) {
	d := Decimal256FromInt64(7, 40, 0)
	n := d.Negate()
	if got, want := n.String(), "-7"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestDecimal256Cmp(t *testing.T) {
	a := Decimal256FromInt64(1, 40, 0)
	b := Decimal256FromInt64(2, 40, 0)
	if a.Cmp(b) >= 0 {
		t.Fatalf("1 should compare less than 2")
	}
}
