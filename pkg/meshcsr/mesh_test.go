package meshcsr

import (
	"testing"

	"github.com/chazu/lignin/pkg/lattice"
)

func row(y, z lattice.Coord) lattice.RowKey { return lattice.RowKey{Y: y, Z: z} }
func iv(b, e lattice.Coord) lattice.Interval { return lattice.Interval{Begin: b, End: e} }

func TestEmptyMesh(t *testing.T) {
	m := Empty(Host)
	if !m.IsEmpty() {
		t.Error("Empty() mesh should report IsEmpty() true")
	}
	if m.NumRows() != 0 || m.NumIntervals() != 0 {
		t.Errorf("Empty() mesh has NumRows=%d NumIntervals=%d, want 0, 0", m.NumRows(), m.NumIntervals())
	}
	if problems := Validate(m); len(problems) != 0 {
		t.Errorf("Validate(Empty()) = %v, want no problems", problems)
	}
}

func TestFindRow(t *testing.T) {
	m := New(
		[]lattice.RowKey{row(0, 0), row(1, 0), row(2, 0)},
		[]uint32{0, 1, 2, 3},
		[]lattice.Interval{iv(0, 1), iv(0, 1), iv(0, 1)},
		Host,
	)
	if idx, ok := m.FindRow(row(1, 0)); !ok || idx != 1 {
		t.Errorf("FindRow((1,0)) = (%d, %v), want (1, true)", idx, ok)
	}
	if _, ok := m.FindRow(row(5, 5)); ok {
		t.Error("FindRow((5,5)) found a row that does not exist")
	}
}

func TestRow(t *testing.T) {
	m := New(
		[]lattice.RowKey{row(0, 0), row(1, 0)},
		[]uint32{0, 2, 3},
		[]lattice.Interval{iv(0, 5), iv(10, 15), iv(0, 20)},
		Host,
	)
	got := m.Row(0)
	want := []lattice.Interval{iv(0, 5), iv(10, 15)}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Row(0) = %v, want %v", got, want)
	}
}

func TestEqual(t *testing.T) {
	a := New([]lattice.RowKey{row(0, 0)}, []uint32{0, 1}, []lattice.Interval{iv(0, 5)}, Host)
	b := New([]lattice.RowKey{row(0, 0)}, []uint32{0, 1}, []lattice.Interval{iv(0, 5)}, Host)
	c := New([]lattice.RowKey{row(0, 0)}, []uint32{0, 1}, []lattice.Interval{iv(0, 6)}, Host)

	if !a.Equal(b) {
		t.Error("identical meshes should be Equal")
	}
	if a.Equal(c) {
		t.Error("meshes with different intervals should not be Equal")
	}
}

func TestValidateDetectsViolations(t *testing.T) {
	tests := []struct {
		name string
		m    *Mesh
	}{
		{
			"row keys not increasing",
			New([]lattice.RowKey{row(1, 0), row(0, 0)}, []uint32{0, 1, 2},
				[]lattice.Interval{iv(0, 1), iv(0, 1)}, Host),
		},
		{
			"empty row",
			New([]lattice.RowKey{row(0, 0), row(1, 0)}, []uint32{0, 1, 1},
				[]lattice.Interval{iv(0, 1)}, Host),
		},
		{
			"overlapping intervals",
			New([]lattice.RowKey{row(0, 0)}, []uint32{0, 2},
				[]lattice.Interval{iv(0, 10), iv(5, 15)}, Host),
		},
		{
			"inverted interval",
			New([]lattice.RowKey{row(0, 0)}, []uint32{0, 1},
				[]lattice.Interval{iv(10, 5)}, Host),
		},
		{
			"row_ptr[0] nonzero",
			New([]lattice.RowKey{row(0, 0)}, []uint32{1, 2},
				[]lattice.Interval{iv(0, 1)}, Host),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if problems := Validate(tt.m); len(problems) == 0 {
				t.Error("Validate() found no problems, want at least one")
			}
		})
	}
}

func TestValidateAcceptsWellFormedMesh(t *testing.T) {
	m := New(
		[]lattice.RowKey{row(0, 0), row(0, 1), row(1, 0)},
		[]uint32{0, 2, 3, 4},
		[]lattice.Interval{iv(0, 5), iv(10, 15), iv(0, 3), iv(-5, -1)},
		Host,
	)
	if problems := Validate(m); len(problems) != 0 {
		t.Errorf("Validate() = %v, want no problems", problems)
	}
}
