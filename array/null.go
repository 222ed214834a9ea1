package array

// Null is the null layout (spec.md §4.18): no buffers at all. size is
// its only state; every access returns null.
type Null struct {
	length int
}

// NewNull returns a Null array of the given length.
func NewNull(length int) *Null { return &Null{length: length} }

// Len returns the array's length.
func (n *Null) Len() int { return n.length }

// NullCount always equals Len: every element is null.
func (n *Null) NullCount() int { return n.length }

// IsValid always reports false.
func (n *Null) IsValid(i int) bool { return false }
