// Package kernel defines the abstract geometry kernel interface used to
// build the fixtures pkg/sdfxvoxel samples. Implementations (sdfx)
// provide solid modeling behind this interface; the kernel abstraction
// allows swapping backends without changing the rest of the system. Only
// the solid-construction surface pkg/sdfxvoxel's callers actually need
// (building a box, placing it) lives here; a solid built through it is
// handed to sdfx.Unwrap and then to pkg/sdfxvoxel.Voxelize, not to a
// triangle tessellator.
package kernel

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract geometry kernel interface.
// Implementations (sdfx) provide solid modeling behind this interface.
type Kernel interface {
	// Box creates a solid with the given dimensions.
	Box(x, y, z float64) Solid

	// Translate moves a solid by (x, y, z).
	Translate(s Solid, x, y, z float64) Solid
}
