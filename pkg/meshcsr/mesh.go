// Package meshcsr defines the CSR-shaped sparse occupancy mesh: a sorted
// row-key sequence, a row-offset array, and a flat interval array, along
// with the region it lives in and the invariant checks that must hold on
// any mesh produced or accepted by the rest of this module.
package meshcsr

import (
	"fmt"

	"github.com/chazu/lignin/pkg/lattice"
)

// Region names the memory region a mesh's arrays live in.
type Region int

const (
	// Host is ordinary process memory.
	Host Region = iota
	// Accelerator is a second named arena (e.g. GPU device memory) with
	// its own allocator. This module has no real accelerator backend; the
	// region split exists so that region.Transfer has something real to
	// move data between.
	Accelerator
)

func (r Region) String() string {
	switch r {
	case Host:
		return "host"
	case Accelerator:
		return "accelerator"
	default:
		return fmt.Sprintf("Region(%d)", int(r))
	}
}

// Mesh is a sparse 3-D occupancy set in compressed-sparse-row form over
// per-row interval sets. RowKeys has length NumRows(), RowPtr has length
// NumRows()+1, Intervals has length NumIntervals(). A Mesh is immutable
// from the caller's perspective once built and exclusively owns its three
// arrays; they must not be shared across Mesh values.
type Mesh struct {
	RowKeys   []lattice.RowKey
	RowPtr    []uint32
	Intervals []lattice.Interval
	Region    Region
}

// New builds a Mesh from already-assembled CSR arrays. It does not
// validate them; call Validate explicitly where that is warranted (input
// from an untrusted loader, a test fixture, etc.). The engine itself
// trusts its inputs and only checks what it can for free along the way.
func New(rowKeys []lattice.RowKey, rowPtr []uint32, intervals []lattice.Interval, region Region) *Mesh {
	return &Mesh{RowKeys: rowKeys, RowPtr: rowPtr, Intervals: intervals, Region: region}
}

// Empty returns a well-formed mesh with zero rows and zero intervals, the
// absorbing element of intersection.
func Empty(region Region) *Mesh {
	return &Mesh{
		RowKeys:   []lattice.RowKey{},
		RowPtr:    []uint32{0},
		Intervals: []lattice.Interval{},
		Region:    region,
	}
}

// NumRows returns the number of rows in the mesh.
func (m *Mesh) NumRows() int {
	return len(m.RowKeys)
}

// NumIntervals returns the total number of intervals across all rows.
func (m *Mesh) NumIntervals() int {
	return len(m.Intervals)
}

// IsEmpty reports whether the mesh has no rows.
func (m *Mesh) IsEmpty() bool {
	return m.NumRows() == 0
}

// Row returns the interval subrange belonging to row r. It does not copy.
func (m *Mesh) Row(r int) []lattice.Interval {
	return m.Intervals[m.RowPtr[r]:m.RowPtr[r+1]]
}

// FindRow returns the index of key in RowKeys and true if present, under
// RowKey order via binary search, or (0, false) if key is not a row of
// the mesh. This returns a boolean rather than a sentinel index to keep
// "not found" unambiguous across the full Coord range.
func (m *Mesh) FindRow(key lattice.RowKey) (int, bool) {
	lo, hi := 0, len(m.RowKeys)
	for lo < hi {
		mid := lo + (hi-lo)/2
		switch {
		case m.RowKeys[mid].Less(key):
			lo = mid + 1
		case key.Less(m.RowKeys[mid]):
			hi = mid
		default:
			return mid, true
		}
	}
	return 0, false
}

// Equal reports whether m and other are structurally identical: same
// region, same row keys in the same order, same row_ptr, same intervals.
func (m *Mesh) Equal(other *Mesh) bool {
	if m.Region != other.Region {
		return false
	}
	if m.NumRows() != other.NumRows() || m.NumIntervals() != other.NumIntervals() {
		return false
	}
	for i := range m.RowKeys {
		if m.RowKeys[i] != other.RowKeys[i] {
			return false
		}
	}
	for i := range m.RowPtr {
		if m.RowPtr[i] != other.RowPtr[i] {
			return false
		}
	}
	for i := range m.Intervals {
		if m.Intervals[i] != other.Intervals[i] {
			return false
		}
	}
	return true
}
