// Package intersect implements the mesh intersection engine: row mapping,
// counting, offset scan, emission, and compaction, dispatched as a
// bulk-synchronous sequence of parallel phases over golang.org/x/sync's
// errgroup, each phase separated by a Wait() fence before the next phase
// reads its outputs. It is the boolean intersection of a solid-modeling
// kernel, implemented for discrete CSR interval meshes.
package intersect

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/chazu/lignin/internal/fail"
	"github.com/chazu/lignin/pkg/lattice"
	"github.com/chazu/lignin/pkg/merge"
	"github.com/chazu/lignin/pkg/meshcsr"
	"github.com/chazu/lignin/pkg/workspace"
)

// Intersect computes the intersection of a and b, allocating a fresh
// Workspace for the call. It is the convenience form; callers making many
// intersections back to back should prefer IntersectWith with a
// Workspace they reuse.
func Intersect(a, b *meshcsr.Mesh) (*meshcsr.Mesh, error) {
	return IntersectWith(a, b, workspace.New())
}

// IntersectWith computes the intersection of a and b using ws for scratch
// storage. It is the authoritative form: Intersect is defined in terms of
// it. a and b must be in the same Region; the result is in that Region.
//
// Failure is fatal and total: invariant violations, allocation failures,
// and region mismatches panic internally via internal/fail and are
// recovered here, so no panic crosses this function's return. The
// caller always receives either a well-formed mesh or a plain error,
// never a partial result.
func IntersectWith(a, b *meshcsr.Mesh, ws *workspace.Workspace) (out *meshcsr.Mesh, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = fail.Recover(r)
		}
	}()

	fail.Check(a != nil && b != nil, "intersect", -1, "nil input mesh")
	fail.Check(a.Region == b.Region, "intersect", -1, "region mismatch: %s vs %s", a.Region, b.Region)

	if a.IsEmpty() || b.IsEmpty() {
		return meshcsr.Empty(a.Region), nil
	}

	rowKeys, idxA, idxB := mapRows(a, b, ws)
	r := len(rowKeys)
	if r == 0 {
		return meshcsr.Empty(a.Region), nil
	}

	counts, rowPtrOut := countRows(a, b, idxA, idxB, ws)
	total := scanOffsets(counts, rowPtrOut)
	if total == 0 {
		return meshcsr.Empty(a.Region), nil
	}

	intervalsOut := emitRows(a, b, idxA, idxB, rowPtrOut, total)

	return compact(rowKeys, rowPtrOut, intervalsOut, a.Region, ws), nil
}

// parallelFor dispatches fn(i) for every i in [0, n) across an errgroup,
// fencing on Wait before returning. It is the bulk-synchronous dispatch
// primitive every phase below is built from: independent iterations, no
// cross-iteration communication, one fence at the end.
func parallelFor(n int, fn func(i int)) {
	if n == 0 {
		return
	}
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}

	g, _ := errgroup.WithContext(context.Background())
	chunk := (n + workers - 1) / workers
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		if lo >= hi {
			continue
		}
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					v, ok := r.(*fail.Violation)
					if !ok {
						panic(r)
					}
					err = v
				}
			}()
			for i := lo; i < hi; i++ {
				fn(i)
			}
			return nil
		})
	}
	// fn has no error return: the phases below report failures via
	// internal/fail panics, since a data-parallel kernel has no
	// per-iteration error channel. A panic in a worker goroutine would not
	// reach IntersectWith's recover, so each worker turns a *fail.Violation
	// into its error and it is re-raised here, on the caller's goroutine.
	// Any other panic is re-panicked in the worker and not recovered.
	if err := g.Wait(); err != nil {
		panic(err)
	}
}

// mapRows is phase 1: pick the smaller mesh as the driver, binary search
// each of its row keys into the larger mesh, and compact the matches
// into packed (rowKeys, idxA, idxB) arrays restored to A/B roles.
func mapRows(a, b *meshcsr.Mesh, ws *workspace.Workspace) (rowKeys []lattice.RowKey, idxA, idxB []int32) {
	small, large := a, b
	smallIsA := true
	if b.NumRows() < a.NumRows() {
		small, large = b, a
		smallIsA = false
	}

	n := small.NumRows()
	flags, matchSmall, matchLarge := ws.RowMapBuffers(n)

	parallelFor(n, func(i int) {
		if j, ok := large.FindRow(small.RowKeys[i]); ok {
			flags[i] = true
			matchSmall[i] = int32(i)
			matchLarge[i] = int32(j)
		} else {
			flags[i] = false
		}
	})

	r := 0
	for i := 0; i < n; i++ {
		if flags[i] {
			r++
		}
	}

	outKeys, outA, outB := ws.MatchedRowBuffers(r)
	pos := 0
	for i := 0; i < n; i++ {
		if !flags[i] {
			continue
		}
		outKeys[pos] = small.RowKeys[matchSmall[i]]
		if smallIsA {
			outA[pos] = matchSmall[i]
			outB[pos] = matchLarge[i]
		} else {
			outA[pos] = matchLarge[i]
			outB[pos] = matchSmall[i]
		}
		pos++
	}

	return outKeys, outA, outB
}

// countRows is phase 2: for each matched row, run the merge in COUNT
// mode to size the output.
func countRows(a, b *meshcsr.Mesh, idxA, idxB []int32, ws *workspace.Workspace) (counts []int32, rowPtrOut []uint32) {
	r := len(idxA)
	counts, rowPtrOut = ws.CountBuffers(r)

	parallelFor(r, func(i int) {
		rowA := a.Row(int(idxA[i]))
		rowB := b.Row(int(idxB[i]))
		counts[i] = int32(merge.Count(rowA, rowB))
	})

	return counts, rowPtrOut
}

// scanOffsets is phase 3: exclusive prefix scan over per-row counts into
// rowPtrOut, returning the total interval count. This is a sequential
// scalar scan, not a parallel one: an exclusive scan over a few thousand
// int32s is not where a CPU port needs to spend parallelism, and R,
// total, and R' are exactly the handful of scalars this engine reads
// back synchronously anyway.
func scanOffsets(counts []int32, rowPtrOut []uint32) uint32 {
	var sum uint32
	for i, c := range counts {
		fail.Check(c >= 0, "scan", i, "negative row count %d", c)
		rowPtrOut[i] = sum
		sum += uint32(c)
	}
	rowPtrOut[len(counts)] = sum
	return sum
}

// emitRows is phase 4: for each matched row, re-run the merge in EMIT
// mode at the offset scanOffsets computed for it. Each row writes a
// disjoint contiguous slice of intervalsOut, so no synchronisation beyond
// the fence at the end of parallelFor is required.
func emitRows(a, b *meshcsr.Mesh, idxA, idxB []int32, rowPtrOut []uint32, total uint32) []lattice.Interval {
	intervalsOut := make([]lattice.Interval, total)
	r := len(idxA)

	parallelFor(r, func(i int) {
		rowA := a.Row(int(idxA[i]))
		rowB := b.Row(int(idxB[i]))
		lo, hi := rowPtrOut[i], rowPtrOut[i+1]
		n := merge.Emit(rowA, rowB, intervalsOut[lo:hi])
		fail.Check(uint32(n) == hi-lo, "emit", i, "emitted %d intervals, count phase sized %d", n, hi-lo)
	})

	return intervalsOut
}

// compact is phase 5: drop matched rows whose emitted count was zero
// (rows with no overlap at all) and renumber the survivors. Interval
// payloads are never relocated, only the row_ptr/row_keys index mapping
// changes.
//
// rowKeys and rowPtrOut are workspace-owned scratch (from mapRows and
// countRows); a Mesh's arrays are exclusively its own, so both are always
// copied into fresh backing arrays before being handed to a caller, even
// on the no-rows-dropped path, or a later call reusing the same Workspace
// would overwrite a mesh this function already returned. intervalsOut
// needs no such copy: emitRows allocates it fresh per call.
func compact(rowKeys []lattice.RowKey, rowPtrOut []uint32, intervalsOut []lattice.Interval, region meshcsr.Region, ws *workspace.Workspace) *meshcsr.Mesh {
	r := len(rowKeys)
	keep, pos := ws.KeepBuffers(r)

	parallelFor(r, func(i int) {
		keep[i] = rowPtrOut[i] < rowPtrOut[i+1]
	})

	rPrime := 0
	for i := 0; i < r; i++ {
		pos[i] = int32(rPrime)
		if keep[i] {
			rPrime++
		}
	}

	if rPrime == r {
		finalKeys := make([]lattice.RowKey, r)
		copy(finalKeys, rowKeys)
		finalPtr := make([]uint32, r+1)
		copy(finalPtr, rowPtrOut)
		return &meshcsr.Mesh{
			RowKeys:   finalKeys,
			RowPtr:    finalPtr,
			Intervals: intervalsOut,
			Region:    region,
		}
	}
	if rPrime == 0 {
		return meshcsr.Empty(region)
	}

	compactedKeys := make([]lattice.RowKey, rPrime)
	compactedPtr := make([]uint32, rPrime+1)
	for i := 0; i < r; i++ {
		if !keep[i] {
			continue
		}
		compactedKeys[pos[i]] = rowKeys[i]
		compactedPtr[pos[i]] = rowPtrOut[i]
	}
	compactedPtr[rPrime] = rowPtrOut[r]

	return &meshcsr.Mesh{
		RowKeys:   compactedKeys,
		RowPtr:    compactedPtr,
		Intervals: intervalsOut,
		Region:    region,
	}
}
