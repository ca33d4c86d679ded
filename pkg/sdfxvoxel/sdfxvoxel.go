// Package sdfxvoxel loads a meshcsr.Mesh from a continuous
// github.com/deadsy/sdfx solid: it samples the solid's signed distance
// field along X-axis scanlines, one per (y, z) row, and run-length
// encodes the inside spans into intervals. It does not participate in
// intersection itself, it only knows how to sample a solid and produce
// a flat CSR buffer.
package sdfxvoxel

import (
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/lignin/pkg/lattice"
	"github.com/chazu/lignin/pkg/meshcsr"
)

// Resolution controls the lattice step size used to sample a solid.
type Resolution struct {
	// Step is the world-space distance between adjacent lattice cells
	// on every axis.
	Step float64
}

// DefaultResolution is the resolution Voxelize falls back to when given a
// non-positive step: one lattice cell per world-space unit.
var DefaultResolution = Resolution{Step: 1.0}

// Voxelize samples s's bounding box on the lattice defined by res and
// returns a well-formed meshcsr.Mesh of the cells where s is inside
// (signed distance <= 0). The returned mesh is in the meshcsr.Host
// region; callers wanting it on the Accelerator region should pass it
// through pkg/region.Transfer.
func Voxelize(s sdf.SDF3, res Resolution) *meshcsr.Mesh {
	bb := s.BoundingBox()
	step := res.Step
	if step <= 0 {
		step = DefaultResolution.Step
	}

	yMin := coordFloor(bb.Min.Y, step)
	yMax := coordCeil(bb.Max.Y, step)
	zMin := coordFloor(bb.Min.Z, step)
	zMax := coordCeil(bb.Max.Z, step)
	xMin := coordFloor(bb.Min.X, step)
	xMax := coordCeil(bb.Max.X, step)

	var rowKeys []lattice.RowKey
	rowPtr := []uint32{0}
	var intervals []lattice.Interval

	for y := yMin; y <= yMax; y++ {
		for z := zMin; z <= zMax; z++ {
			row := scanRow(s, step, y, z, xMin, xMax)
			if len(row) == 0 {
				continue
			}
			rowKeys = append(rowKeys, lattice.RowKey{Y: y, Z: z})
			intervals = append(intervals, row...)
			rowPtr = append(rowPtr, uint32(len(intervals)))
		}
	}

	if len(rowKeys) == 0 {
		return meshcsr.Empty(meshcsr.Host)
	}
	return meshcsr.New(rowKeys, rowPtr, intervals, meshcsr.Host)
}

// scanRow samples s along one (y, z) scanline from xMin to xMax and
// run-length-encodes the inside spans into half-open intervals on the
// lattice coordinate.
func scanRow(s sdf.SDF3, step float64, y, z lattice.Coord, xMin, xMax lattice.Coord) []lattice.Interval {
	var out []lattice.Interval
	inside := false
	var spanStart lattice.Coord

	for x := xMin; x <= xMax; x++ {
		p := v3.Vec{X: float64(x) * step, Y: float64(y) * step, Z: float64(z) * step}
		isInside := s.Evaluate(p) <= 0

		switch {
		case isInside && !inside:
			spanStart = x
			inside = true
		case !isInside && inside:
			out = append(out, lattice.Interval{Begin: spanStart, End: x})
			inside = false
		}
	}
	if inside {
		out = append(out, lattice.Interval{Begin: spanStart, End: xMax + 1})
	}
	return out
}

func coordFloor(v, step float64) lattice.Coord {
	q := v / step
	i := int32(q)
	if q < float64(i) {
		i--
	}
	return lattice.Coord(i)
}

func coordCeil(v, step float64) lattice.Coord {
	q := v / step
	i := int32(q)
	if q > float64(i) {
		i++
	}
	return lattice.Coord(i)
}
