// Package region implements memory-region transfer: lifting or lowering
// a whole mesh between the host and accelerator regions defined by
// pkg/meshcsr. One small operation, selected by a Region tag rather than
// by which concrete type is passed in.
package region

import (
	"github.com/chazu/lignin/internal/fail"
	"github.com/chazu/lignin/pkg/lattice"
	"github.com/chazu/lignin/pkg/meshcsr"
)

// Transfer returns a mesh whose three arrays are bulk copies of src's,
// living in target. Sizes and contents, and every structural invariant
// they satisfy, are preserved verbatim because the arrays are copied,
// not rebuilt. Transferring into src's own region still returns a fresh
// copy: this models an accelerator mirror, where even a same-region
// "transfer" is a real allocate-and-copy, not a no-op alias.
func Transfer(src *meshcsr.Mesh, target meshcsr.Region) (out *meshcsr.Mesh, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = fail.Recover(r)
		}
	}()

	fail.Check(src != nil, "transfer", -1, "nil input mesh")

	if src.IsEmpty() {
		return meshcsr.Empty(target), nil
	}

	rowKeys := make([]lattice.RowKey, len(src.RowKeys))
	copy(rowKeys, src.RowKeys)

	rowPtr := make([]uint32, len(src.RowPtr))
	copy(rowPtr, src.RowPtr)

	intervals := make([]lattice.Interval, len(src.Intervals))
	copy(intervals, src.Intervals)

	return meshcsr.New(rowKeys, rowPtr, intervals, target), nil
}

// RoundTrip lowers src to an intermediate region and lifts it back to
// src's region. It does not itself compare the result with src; it exists
// as a convenience for tests and callers that want to exercise both legs
// of a transfer in one call and check the result themselves.
func RoundTrip(src *meshcsr.Mesh, via meshcsr.Region) (*meshcsr.Mesh, error) {
	mid, err := Transfer(src, via)
	if err != nil {
		return nil, err
	}
	return Transfer(mid, src.Region)
}
