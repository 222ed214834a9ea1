package array

import (
	"github.com/TomTonic/columnar"
	"github.com/TomTonic/columnar/bitmap"
)

// Struct is the struct layout (spec.md §4.13): no data buffer, N named
// children each of length equal to the struct's own length, plus a
// struct-level validity bitmap in addition to each child's own.
type Struct struct {
	names    []string
	children []Array
	valid    *bitmap.Bitmap
	length   int
}

// NewStruct returns a Struct array over the given named children. Every
// child must already have length equal to length.
func NewStruct(length int, names []string, children []Array) *Struct {
	if len(names) != len(children) {
		columnar.ContractViolation("array.NewStruct: %d names but %d children", len(names), len(children))
	}
	for i, c := range children {
		if c.Len() != length {
			columnar.ContractViolation("array.NewStruct: child %q has length %d, want %d", names[i], c.Len(), length)
		}
	}
	return &Struct{names: append([]string(nil), names...), children: append([]Array(nil), children...), valid: bitmap.NewWithLength(length, true), length: length}
}

// Len returns the struct's length.
func (s *Struct) Len() int { return s.length }

// NullCount returns the number of absent struct-level elements.
func (s *Struct) NullCount() int { return s.valid.Len() - s.valid.CountSet() }

// IsValid reports whether the struct-level element i is present. A child
// may still carry its own, independent nulls.
func (s *Struct) IsValid(i int) bool { return s.valid.Get(i) }

// ChildCount returns the number of named children.
func (s *Struct) ChildCount() int { return len(s.children) }

// ChildAt returns the i'th child array and its name.
func (s *Struct) ChildAt(i int) (string, Array) { return s.names[i], s.children[i] }

// ChildByName returns the named child, or (nil, false) if no child has
// that name.
func (s *Struct) ChildByName(name string) (Array, bool) {
	for i, n := range s.names {
		if n == name {
			return s.children[i], true
		}
	}
	return nil, false
}

// SetValid sets the struct-level validity bit for element i.
func (s *Struct) SetValid(i int, v bool) { s.valid.Set(i, v) }
