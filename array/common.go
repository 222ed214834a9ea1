// Package array implements the thirteen Arrow array layouts from spec.md
// §4.7-§4.18, each as its own file following the teacher's one-file-per-
// node-kind convention (art_node5.go, art_node51.go, art_node256.go,
// art_nodeLeaf.go all share one dispatch interface; every layout here
// shares the Array interface below the same way).
package array

// Array is implemented by every layout in this package. Layout-specific
// typed element access is exposed by each concrete type's own At/
// AtUnchecked methods; Array itself only carries the operations common to
// every layout (spec.md §3 "array façades").
type Array interface {
	Len() int
	NullCount() int
	IsValid(i int) bool
}

// Offset is the integer constraint satisfied by every offset/run-end/
// index buffer in this package: the 32- and 64-bit variants the format
// string grammar distinguishes (spec.md §4.5).
type Offset interface {
	~int32 | ~int64
}

// searchRunEnds returns the smallest j such that runEnds[j] > i, the
// lookup rule for run-end-encoded arrays (spec.md §4.16).
func searchRunEnds[E Offset](runEnds []E, i int) int {
	lo, hi := 0, len(runEnds)
	for lo < hi {
		mid := (lo + hi) / 2
		if int64(runEnds[mid]) > int64(i) {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}
