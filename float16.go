package columnar

import "math"

// Half is an opaque IEEE 754 half-precision value: the 16-bit pattern is
// retained as-is and converted to/from float32 only at element access, per
// spec.md §9 ("if the target platform does not provide a 16-bit floating
// type natively, retain the storage as a 16-bit opaque value and convert
// at element access only"). Go has no native half type; the conversion
// here is grounded on the behavior exercised by the retrieved
// apache/arrow/go/arrow/float16 package's own test file, used purely as a
// reference for the round-trip cases (subnormals, infinities, NaN), not
// as an imported dependency. Named Half rather than Float16 since the
// latter already names the Type enum tag for this logical type.
type Half uint16

// HalfFromFloat32 converts a float32 to its nearest Half (round to
// nearest, ties to even, consistent with IEEE 754 half).
func HalfFromFloat32(f float32) Half {
	bits := math.Float32bits(f)
	sign := uint16((bits >> 16) & 0x8000)
	exp := int32((bits>>23)&0xFF) - 127 + 15
	mant := bits & 0x7FFFFF

	switch {
	case (bits>>23)&0xFF == 0xFF: // inf/nan
		if mant != 0 {
			return Half(sign | 0x7E00) // quiet NaN
		}
		return Half(sign | 0x7C00) // inf
	case exp >= 0x1F:
		return Half(sign | 0x7C00) // overflow -> inf
	case exp <= 0:
		if exp < -10 {
			return Half(sign) // underflow to zero
		}
		mant |= 0x800000
		shift := uint(14 - exp)
		half := mant >> shift
		rem := mant & (1<<shift - 1)
		halfway := uint32(1) << (shift - 1)
		if rem > halfway || (rem == halfway && half&1 == 1) {
			half++ // round to nearest, ties to even
		}
		return Half(sign | uint16(half))
	default:
		h := sign | uint16(exp)<<10 | uint16(mant>>13)
		if r := mant & 0x1FFF; r > 0x1000 || (r == 0x1000 && h&1 == 1) {
			h++ // round to nearest, ties to even; a carry moves into the exponent
		}
		return Half(h)
	}
}

// Float32 converts f to its float32 value.
func (f Half) Float32() float32 {
	sign := uint32(f&0x8000) << 16
	exp := uint32(f>>10) & 0x1F
	mant := uint32(f & 0x3FF)

	switch {
	case exp == 0 && mant == 0:
		return math.Float32frombits(sign)
	case exp == 0: // subnormal
		for mant&0x400 == 0 {
			mant <<= 1
			exp--
		}
		exp++
		mant &^= 0x400
		return math.Float32frombits(sign | ((exp + 112) << 23) | (mant << 13))
	case exp == 0x1F:
		if mant == 0 {
			return math.Float32frombits(sign | 0x7F800000)
		}
		return math.Float32frombits(sign | 0x7F800000 | (mant << 13))
	default:
		return math.Float32frombits(sign | ((exp + 112) << 23) | (mant << 13))
	}
}

// IsNaN reports whether f is a half-precision NaN.
func (f Half) IsNaN() bool {
	return (f&0x7C00) == 0x7C00 && (f&0x03FF) != 0
}
