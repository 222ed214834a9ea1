// Package cdata implements the Arrow C Data Interface (spec.md §3, §6):
// mirrors of the ArrowSchema/ArrowArray structs and the release-once
// protocol governing them. The teacher never uses cgo, so the structs are
// modeled as plain Go structs with a Go func release callback rather than
// a C function pointer; this keeps the remainder of the library in safe
// code while still matching the field order and semantics the Apache
// Arrow C Data Interface specifies (grounded on the retrieved
// apache/arrow/go/arrow/cdata/cdata.go field layout). The mirrors are not
// bit-exact: their fields use Go types (strings, slices, a func), so their
// in-memory byte layout is not that of the C structs.
package cdata

import "github.com/TomTonic/columnar"

// Schema mirrors the Arrow C Data Interface's ArrowSchema: format string,
// optional name, optional metadata blob, flags, children, optional
// dictionary schema, and a release callback (spec.md §3).
type Schema struct {
	Format      string
	Name        string
	MetadataRaw []byte // encoded per spec.md §6; nil means "no metadata"
	Flags       SchemaFlags
	Children    []*Schema
	Dictionary  *Schema
	release     func(*Schema)
	PrivateData any
}

// SchemaFlags packs the three ArrowSchema flag bits (spec.md §3).
type SchemaFlags uint64

const (
	FlagDictionaryOrdered SchemaFlags = 1 << 0
	FlagNullable          SchemaFlags = 1 << 1
	FlagMapKeysSorted     SchemaFlags = 1 << 2
)

// Released reports whether s.release has already fired.
func (s *Schema) Released() bool { return s.release == nil }

// Release invokes the release callback exactly once. Calling Release on an
// already-released Schema is a no-op, matching the consumer-facing
// contract in spec.md §6 ("the callback must set struct.release to null
// as its final act").
func (s *Schema) Release() {
	if s.release == nil {
		return
	}
	r := s.release
	s.release = nil
	r(s)
}

// SetRelease installs fn as s's release callback. Used by producers when
// constructing a Schema for export.
func (s *Schema) SetRelease(fn func(*Schema)) { s.release = fn }

// Array mirrors the Arrow C Data Interface's ArrowArray: logical length,
// null count, logical offset, buffer pointers, children, optional
// dictionary, and a release callback (spec.md §3).
type Array struct {
	Length      int64
	NullCount   int64 // -1 means unknown; recompute from the bitmap on demand
	Offset      int64
	Buffers     [][]byte // raw buffer views; a nil entry means "missing/empty"
	Children    []*Array
	Dictionary  *Array
	release     func(*Array)
	PrivateData any
}

// Released reports whether a.release has already fired.
func (a *Array) Released() bool { return a.release == nil }

// Release invokes the release callback exactly once.
func (a *Array) Release() {
	if a.release == nil {
		return
	}
	r := a.release
	a.release = nil
	r(a)
}

// SetRelease installs fn as a's release callback.
func (a *Array) SetRelease(fn func(*Array)) { a.release = fn }

// BufferAt returns the i'th raw buffer view, checked.
func (a *Array) BufferAt(i int) ([]byte, error) {
	if i < 0 || i >= len(a.Buffers) {
		return nil, columnar.WrapOutOfRange(i, len(a.Buffers))
	}
	return a.Buffers[i], nil
}
