// Package lattice defines the coordinate primitives the rest of the module
// builds on: a signed lattice coordinate, a half-open interval on that
// coordinate, and a row key identifying one (y, z) line of the lattice.
package lattice

import "fmt"

// Coord is a signed lattice coordinate. The full int32 range is valid,
// including negative values; callers must not assume coordinates are
// non-negative.
type Coord int32

// Interval is a half-open range [Begin, End) on the X axis. It denotes the
// cells X ∈ {Begin, ..., End-1}. An Interval must never be stored with
// Begin >= End; use Empty to check before storing one built from
// untrusted input.
type Interval struct {
	Begin Coord
	End   Coord
}

// Empty reports whether the interval denotes no cells.
func (iv Interval) Empty() bool {
	return iv.Begin >= iv.End
}

// Len returns the number of cells the interval denotes. It is zero for an
// empty interval. The subtraction widens to int before subtracting so
// that an interval spanning close to the full Coord range (e.g. near
// math.MinInt32 to math.MaxInt32) does not overflow in int32 arithmetic.
func (iv Interval) Len() int {
	if iv.Empty() {
		return 0
	}
	return int(iv.End) - int(iv.Begin)
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%d, %d)", iv.Begin, iv.End)
}

// RowKey identifies one row of the lattice: all cells sharing a given
// (Y, Z). Ordering is lexicographic, Y-major then Z-minor.
type RowKey struct {
	Y Coord
	Z Coord
}

// Less reports whether k sorts strictly before other under RowKey order.
func (k RowKey) Less(other RowKey) bool {
	if k.Y != other.Y {
		return k.Y < other.Y
	}
	return k.Z < other.Z
}

// Compare returns -1, 0, or 1 as k sorts before, equal to, or after other.
func (k RowKey) Compare(other RowKey) int {
	switch {
	case k.Y < other.Y:
		return -1
	case k.Y > other.Y:
		return 1
	case k.Z < other.Z:
		return -1
	case k.Z > other.Z:
		return 1
	default:
		return 0
	}
}

func (k RowKey) String() string {
	return fmt.Sprintf("(%d,%d)", k.Y, k.Z)
}
