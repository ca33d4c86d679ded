package lattice

import (
	"math"
	"testing"
)

func TestIntervalEmpty(t *testing.T) {
	tests := []struct {
		name string
		iv   Interval
		want bool
	}{
		{"normal", Interval{Begin: 0, End: 5}, false},
		{"touching is empty", Interval{Begin: 5, End: 5}, true},
		{"inverted is empty", Interval{Begin: 5, End: 3}, true},
		{"negative span", Interval{Begin: -5, End: -1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.iv.Empty(); got != tt.want {
				t.Errorf("Empty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIntervalLen(t *testing.T) {
	tests := []struct {
		name string
		iv   Interval
		want int
	}{
		{"five wide", Interval{Begin: 0, End: 5}, 5},
		{"empty", Interval{Begin: 5, End: 5}, 0},
		{"inverted", Interval{Begin: 5, End: 0}, 0},
		{"negative span", Interval{Begin: -5, End: -1}, 4},
		{
			"near full range does not overflow int32",
			Interval{Begin: math.MinInt32, End: math.MaxInt32},
			math.MaxInt32 - math.MinInt32,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.iv.Len(); got != tt.want {
				t.Errorf("Len() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRowKeyLess(t *testing.T) {
	tests := []struct {
		name string
		a, b RowKey
		want bool
	}{
		{"y major", RowKey{Y: 0, Z: 5}, RowKey{Y: 1, Z: 0}, true},
		{"z minor", RowKey{Y: 0, Z: 0}, RowKey{Y: 0, Z: 1}, true},
		{"equal", RowKey{Y: 1, Z: 1}, RowKey{Y: 1, Z: 1}, false},
		{"reverse y", RowKey{Y: 2, Z: 0}, RowKey{Y: 1, Z: 0}, false},
		{"negative coords", RowKey{Y: -5, Z: 0}, RowKey{Y: -3, Z: 0}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Less(tt.b); got != tt.want {
				t.Errorf("Less() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRowKeyCompare(t *testing.T) {
	a := RowKey{Y: 1, Z: 2}
	b := RowKey{Y: 1, Z: 3}
	if a.Compare(b) != -1 {
		t.Errorf("Compare(a,b) = %d, want -1", a.Compare(b))
	}
	if b.Compare(a) != 1 {
		t.Errorf("Compare(b,a) = %d, want 1", b.Compare(a))
	}
	if a.Compare(a) != 0 {
		t.Errorf("Compare(a,a) = %d, want 0", a.Compare(a))
	}
}
