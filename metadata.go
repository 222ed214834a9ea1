package columnar

import "encoding/binary"

// Metadata is an ordered list of arbitrary byte-string key/value pairs,
// the in-memory form of the C Data Interface's metadata blob (spec.md §6).
// Keys are not required to be unique; order is preserved.
type Metadata struct {
	keys   []string
	values []string
}

// NewMetadata builds a Metadata from parallel key/value slices.
func NewMetadata(keys, values []string) Metadata {
	k := append([]string(nil), keys...)
	v := append([]string(nil), values...)
	return Metadata{keys: k, values: v}
}

// Len returns the number of key/value pairs.
func (m Metadata) Len() int { return len(m.keys) }

// At returns the i'th key/value pair.
func (m Metadata) At(i int) (key, value string) { return m.keys[i], m.values[i] }

// Encode renders m using the little-endian length-prefixed wire format
// from spec.md §6:
//
//	int32 number_of_key_value_pairs
//	for each pair: int32 key_byte_length, key bytes,
//	               int32 value_byte_length, value bytes
//
// Encode returns nil (not an error: the C struct's metadata pointer is
// simply left null) when m has no pairs.
func (m Metadata) Encode() []byte {
	if len(m.keys) == 0 {
		return nil
	}
	size := 4
	for i := range m.keys {
		size += 4 + len(m.keys[i]) + 4 + len(m.values[i])
	}
	buf := make([]byte, size)
	off := 0
	binary.LittleEndian.PutUint32(buf[off:], uint32(len(m.keys)))
	off += 4
	for i := range m.keys {
		k, v := m.keys[i], m.values[i]
		binary.LittleEndian.PutUint32(buf[off:], uint32(len(k)))
		off += 4
		off += copy(buf[off:], k)
		binary.LittleEndian.PutUint32(buf[off:], uint32(len(v)))
		off += 4
		off += copy(buf[off:], v)
	}
	return buf
}

// DecodeMetadata parses the wire format Encode produces. A nil or empty
// buf decodes to an empty Metadata.
func DecodeMetadata(buf []byte) Metadata {
	if len(buf) < 4 {
		return Metadata{}
	}
	off := 0
	n := int(int32(binary.LittleEndian.Uint32(buf[off:])))
	off += 4
	if n <= 0 {
		return Metadata{}
	}
	keys := make([]string, n)
	values := make([]string, n)
	for i := 0; i < n; i++ {
		kl := int(int32(binary.LittleEndian.Uint32(buf[off:])))
		off += 4
		keys[i] = string(buf[off : off+kl])
		off += kl
		vl := int(int32(binary.LittleEndian.Uint32(buf[off:])))
		off += 4
		values[i] = string(buf[off : off+vl])
		off += vl
	}
	return Metadata{keys: keys, values: values}
}
