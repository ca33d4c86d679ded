// Package workspace holds the reusable scratch buffers an intersection
// needs between its phases (row-mapping flags, matched-row index pairs,
// per-row counts, scan offsets, compaction positions). A Workspace is a
// plain value threaded explicitly by the caller, never global state, and
// its buffers are grown on demand and never shrunk mid-call. Buffer
// reuse across separate Intersect calls is the whole point of the type,
// but the caller must serialise access if the same Workspace is shared
// across concurrent calls (the engine performs no locking of its own).
package workspace

import "github.com/chazu/lignin/pkg/lattice"

// Workspace is an opaque handle over a fixed set of scratch buffers. Its
// only observable behaviour is that repeated calls reuse the same
// backing arrays when they are large enough.
type Workspace struct {
	matchFlags  []bool
	matchA      []int32
	matchB      []int32
	rowKeysOut  []lattice.RowKey
	idxA        []int32
	idxB        []int32
	rowCounts   []int32
	rowPtrOut   []uint32
	keepFlags   []bool
	keepPos     []int32
}

// New returns a Workspace with no preallocated capacity; its buffers grow
// on first use.
func New() *Workspace {
	return &Workspace{}
}

func growBool(buf []bool, n int) []bool {
	if cap(buf) < n {
		return make([]bool, n)
	}
	return buf[:n]
}

func growInt32(buf []int32, n int) []int32 {
	if cap(buf) < n {
		return make([]int32, n)
	}
	return buf[:n]
}

func growUint32(buf []uint32, n int) []uint32 {
	if cap(buf) < n {
		return make([]uint32, n)
	}
	return buf[:n]
}

func growRowKey(buf []lattice.RowKey, n int) []lattice.RowKey {
	if cap(buf) < n {
		return make([]lattice.RowKey, n)
	}
	return buf[:n]
}

// RowMapBuffers returns flags and matched-index scratch sized for n
// candidate rows (the smaller input mesh's row count), growing the
// backing arrays if needed. It is exported for pkg/intersect's use, not
// for external callers, who only ever pass a Workspace through unopened.
func (w *Workspace) RowMapBuffers(n int) (flags []bool, matchA, matchB []int32) {
	w.matchFlags = growBool(w.matchFlags, n)
	w.matchA = growInt32(w.matchA, n)
	w.matchB = growInt32(w.matchB, n)
	return w.matchFlags, w.matchA, w.matchB
}

// MatchedRowBuffers returns scratch sized for r matched rows: packed row
// keys and the restored A/B index pairs.
func (w *Workspace) MatchedRowBuffers(r int) (rowKeys []lattice.RowKey, idxA, idxB []int32) {
	w.rowKeysOut = growRowKey(w.rowKeysOut, r)
	w.idxA = growInt32(w.idxA, r)
	w.idxB = growInt32(w.idxB, r)
	return w.rowKeysOut, w.idxA, w.idxB
}

// CountBuffers returns the per-row count buffer and the row_ptr_out
// buffer (length r+1) used by the counting and offset-scan phases.
func (w *Workspace) CountBuffers(r int) (counts []int32, rowPtrOut []uint32) {
	w.rowCounts = growInt32(w.rowCounts, r)
	w.rowPtrOut = growUint32(w.rowPtrOut, r+1)
	return w.rowCounts, w.rowPtrOut
}

// KeepBuffers returns the compaction keep-flags and keep-position scratch
// sized for r matched rows.
func (w *Workspace) KeepBuffers(r int) (keep []bool, pos []int32) {
	w.keepFlags = growBool(w.keepFlags, r)
	w.keepPos = growInt32(w.keepPos, r)
	return w.keepFlags, w.keepPos
}
