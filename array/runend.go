package array

import (
	"github.com/TomTonic/columnar"
	"github.com/TomTonic/columnar/buffer"
)

// RunEndEncoded is the run-end-encoded layout (spec.md §4.16): no
// top-level buffer, two children — run-ends E (strictly increasing) and
// values V of the same length as E. The logical length equals the last
// run-end. Lookup binary-searches E for the smallest j with E[j] > i and
// returns V[j]. There is no top-level validity bitmap; nulls are encoded
// inside V.
type RunEndEncoded[E Offset] struct {
	runEnds *buffer.AlignedBuffer[E]
	values  Array
}

// NewRunEndEncoded returns a run-end-encoded array over the given
// run-ends and values children. The run-ends must be strictly increasing
// and of the same length as values (spec.md §3 invariant 4); violating
// either fails with InvariantViolation.
func NewRunEndEncoded[E Offset](runEnds []E, values Array) (*RunEndEncoded[E], error) {
	if len(runEnds) != values.Len() {
		return nil, columnar.WrapInvariant("run-ends and values must have the same length")
	}
	for i := 1; i < len(runEnds); i++ {
		if runEnds[i] <= runEnds[i-1] {
			return nil, columnar.WrapInvariant("run-ends must strictly increase")
		}
	}
	return &RunEndEncoded[E]{runEnds: buffer.NewFromSlice(runEnds), values: values}, nil
}

// Len returns the logical length: the last run-end, or 0 if there are no
// runs.
func (r *RunEndEncoded[E]) Len() int {
	n := r.runEnds.Len()
	if n == 0 {
		return 0
	}
	return int(r.runEnds.AtUnchecked(n - 1))
}

// RunCount returns the number of runs.
func (r *RunEndEncoded[E]) RunCount() int { return r.runEnds.Len() }

// Values returns the values child.
func (r *RunEndEncoded[E]) Values() Array { return r.values }

// NullCount always reports 0 at the top level: nulls are encoded inside
// the values child.
func (r *RunEndEncoded[E]) NullCount() int { return 0 }

// IsValid always reports true at the top level.
func (r *RunEndEncoded[E]) IsValid(i int) bool { return true }

// RunIndexFor returns the run index j such that logical index i falls
// within run j (i.e. the values child's j'th element is the logical
// value at i).
func (r *RunEndEncoded[E]) RunIndexFor(i int) (int, error) {
	n := r.Len()
	if i < 0 || i >= n {
		return 0, columnar.WrapOutOfRange(i, n)
	}
	return searchRunEnds(r.runEnds.Values(), i), nil
}

// PushRun appends a new run ending at runEnd (matching values.Len()
// after the caller has appended the run's value).
func (r *RunEndEncoded[E]) PushRun(runEnd E) error {
	n := r.runEnds.Len()
	if n > 0 && runEnd <= r.runEnds.AtUnchecked(n-1) {
		return columnar.WrapInvariant("run-ends must strictly increase")
	}
	r.runEnds.Push(runEnd)
	return nil
}
