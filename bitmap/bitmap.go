// Package bitmap implements the dense-packed, LSB-first validity bitmap
// described in spec.md §4.3. It generalizes the teacher's fixed 256-bit
// bitfield256/PresenceBitmap (bitfield.go, art/presence_bitmap.go) — four
// uint64 words addressed by a single byte index — to an arbitrary logical
// length stored over a growable aligned buffer.
package bitmap

import (
	"math/bits"

	"github.com/TomTonic/columnar"
	"github.com/TomTonic/columnar/buffer"
)

// Bitmap is a validity bitmap: one bit per logical element, packed
// LSB-first within each byte, stored separately from any value buffer.
type Bitmap struct {
	bytes  *buffer.AlignedBuffer[byte]
	length int
}

// New returns an empty Bitmap.
func New() *Bitmap {
	return &Bitmap{bytes: buffer.New[byte]()}
}

// NewWithLength returns a Bitmap of the given logical length with every
// bit set to fill.
func NewWithLength(length int, fill bool) *Bitmap {
	b := New()
	b.Resize(length, fill)
	return b
}

// Len returns the bitmap's logical length, independent of its backing
// byte-buffer's capacity (spec.md §4.3).
func (b *Bitmap) Len() int { return b.length }

func byteCountFor(length int) int { return (length + 7) / 8 }

// Get reports whether bit i is set. i is relative to an optional logical
// offset o via Get with the slicing formula in spec.md §4.3: byte
// (o+i)/8, bit (o+i) mod 8; callers needing an offset should use
// GetAt(offset, i).
func (b *Bitmap) Get(i int) bool {
	return b.GetAt(0, i)
}

// GetAt reports whether the bit at logical offset o, index i is set.
func (b *Bitmap) GetAt(o, i int) bool {
	pos := o + i
	if pos < 0 || pos >= b.length {
		columnar.ContractViolation("bitmap.GetAt: index %d out of range for length %d", pos, b.length)
	}
	byteIdx := pos >> 3
	bitOff := uint(pos & 0x7)
	return (b.bytes.AtUnchecked(byteIdx) & (1 << bitOff)) != 0
}

// Set assigns bit i to v.
func (b *Bitmap) Set(i int, v bool) {
	b.SetAt(0, i, v)
}

// SetAt assigns the bit at logical offset o, index i to v.
func (b *Bitmap) SetAt(o, i int, v bool) {
	pos := o + i
	if pos < 0 || pos >= b.length {
		columnar.ContractViolation("bitmap.SetAt: index %d out of range for length %d", pos, b.length)
	}
	byteIdx := pos >> 3
	bitOff := uint(pos & 0x7)
	b.setUnchecked(byteIdx, bitOff, v)
}

func (b *Bitmap) setUnchecked(byteIdx int, bitOff uint, v bool) {
	cur := b.bytes.AtUnchecked(byteIdx)
	if v {
		cur |= 1 << bitOff
	} else {
		cur &^= 1 << bitOff
	}
	b.bytes.Set(byteIdx, cur)
}

// Resize changes the logical length to n, filling any newly exposed bits
// with fill. The byte-buffer grows in whole bytes.
func (b *Bitmap) Resize(n int, fill bool) {
	if n < 0 {
		columnar.ContractViolation("bitmap.Resize: negative length %d", n)
	}
	newBytes := byteCountFor(n)
	old := b.length
	b.bytes.Resize(newBytes, 0)
	for i := old; i < n; i++ {
		b.setUnchecked(i>>3, uint(i&0x7), fill)
	}
	b.length = n
}

// Insert inserts bit v at logical index i, shifting every later bit right
// by one. Used by the array layouts' Insert operations (spec.md §4.7) to
// keep a validity bitmap in step with its value buffer.
func (b *Bitmap) Insert(i int, v bool) {
	if i < 0 || i > b.length {
		columnar.ContractViolation("bitmap.Insert: index %d out of range for length %d", i, b.length)
	}
	b.Resize(b.length+1, false)
	for j := b.length - 1; j > i; j-- {
		b.setUnchecked(j>>3, uint(j&0x7), b.GetAt(0, j-1))
	}
	b.setUnchecked(i>>3, uint(i&0x7), v)
}

// Erase removes the bit at logical index i, shifting every later bit left
// by one.
func (b *Bitmap) Erase(i int) {
	if i < 0 || i >= b.length {
		columnar.ContractViolation("bitmap.Erase: index %d out of range for length %d", i, b.length)
	}
	for j := i; j < b.length-1; j++ {
		b.setUnchecked(j>>3, uint(j&0x7), b.GetAt(0, j+1))
	}
	b.Resize(b.length-1, false)
}

// FromBytes reconstructs a Bitmap of the given logical length from raw
// packed bytes, e.g. a validity buffer handed across the C Data Interface
// (spec.md §6). raw must carry at least byteCountFor(length) bytes.
func FromBytes(raw []byte, length int) (*Bitmap, error) {
	if length == 0 {
		return New(), nil
	}
	need := byteCountFor(length)
	if len(raw) < need {
		return nil, columnar.WrapInvariant("bitmap.FromBytes: buffer too short for declared length")
	}
	b := &Bitmap{bytes: buffer.NewFromSlice(raw[:need]), length: length}
	return b, nil
}

// CountSet returns the number of set bits across the whole bitmap.
func (b *Bitmap) CountSet() int {
	return b.CountSetInRange(0, b.length)
}

// CountSetInRange returns the number of set bits in [i, j).
func (b *Bitmap) CountSetInRange(i, j int) int {
	if i < 0 || j < i || j > b.length {
		columnar.ContractViolation("bitmap.CountSetInRange: invalid range [%d,%d) over length %d", i, j, b.length)
	}
	count := 0
	for k := i; k < j; k++ {
		if b.GetAt(0, k) {
			count++
		}
	}
	return count
}

// CountSetWords is a word-at-a-time variant of CountSet over the whole
// bitmap (full bytes in 64-bit words, then the bits of a partial trailing
// byte), mirroring the teacher's totalBitCount's use of
// math/bits.OnesCount64 over whole words rather than bit-by-bit counting.
func (b *Bitmap) CountSetWords() int {
	full := b.length / 8
	count := 0
	vals := b.bytes.Values()
	i := 0
	for ; i+8 <= full; i += 8 {
		word := uint64(vals[i]) | uint64(vals[i+1])<<8 | uint64(vals[i+2])<<16 | uint64(vals[i+3])<<24 |
			uint64(vals[i+4])<<32 | uint64(vals[i+5])<<40 | uint64(vals[i+6])<<48 | uint64(vals[i+7])<<56
		count += bits.OnesCount64(word)
	}
	for ; i < full; i++ {
		count += bits.OnesCount8(vals[i])
	}
	for k := full * 8; k < b.length; k++ {
		if b.GetAt(0, k) {
			count++
		}
	}
	return count
}

// CountUnsetInRange returns the number of cleared bits in [i, j).
func (b *Bitmap) CountUnsetInRange(i, j int) int {
	return (j - i) - b.CountSetInRange(i, j)
}

// AllSet reports whether every bit in the bitmap is set.
func (b *Bitmap) AllSet() bool {
	return b.CountSetWords() == b.length
}

// Bytes returns the packed backing bytes, suitable for handing out through
// the C Data Interface.
func (b *Bitmap) Bytes() []byte {
	return b.bytes.Values()
}
