// Package merge implements the per-row interval merge: given two sorted,
// non-overlapping interval runs, it produces their intersection in a
// single linear two-pointer pass, in ascending Begin order. This is the
// textbook half-open-interval merge (the same shape as a sorted-range
// rangeset.Intersect), adapted here to run in either a counting or an
// emitting mode over one shared traversal.
package merge

import "github.com/chazu/lignin/pkg/lattice"

// Count returns the number of intersection intervals between a and b
// without writing them anywhere. It runs the same traversal as Emit; the
// two are kept as separate entry points over one shared core (mergeRow)
// so that COUNT-mode calls never pay for an emit closure, while still
// guaranteeing the count always agrees with what Emit would write.
func Count(a, b []lattice.Interval) int {
	return mergeRow(a, b, nil)
}

// Emit writes the intersection intervals between a and b into out,
// starting at out[0], and returns how many were written. out must have
// room for at least as many intervals as Count(a, b) would report; the
// caller is expected to have sized it from a prior Count call (that is
// exactly how pkg/intersect uses it: count phase sizes the buffer, emit
// phase fills it).
func Emit(a, b []lattice.Interval, out []lattice.Interval) int {
	n := 0
	mergeRow(a, b, func(iv lattice.Interval) {
		out[n] = iv
		n++
	})
	return n
}

// mergeRow is the single traversal both Count and Emit delegate to. When
// emit is nil it only counts; otherwise it calls emit once per overlap in
// ascending Begin order. Passing nil avoids allocating or calling a
// closure in the hot counting path while keeping one algorithm body, so
// the two modes cannot drift apart.
func mergeRow(a, b []lattice.Interval, emit func(lattice.Interval)) int {
	i, j, n := 0, 0, 0
	for i < len(a) && j < len(b) {
		av, bv := a[i], b[j]

		s := av.Begin
		if bv.Begin > s {
			s = bv.Begin
		}
		e := av.End
		if bv.End < e {
			e = bv.End
		}

		if s < e {
			if emit != nil {
				emit(lattice.Interval{Begin: s, End: e})
			}
			n++
		}

		switch {
		case av.End < bv.End:
			i++
		case bv.End < av.End:
			j++
		default:
			i++
			j++
		}
	}
	return n
}
