package partials_test

import (
	"math"
	"testing"

	"github.com/dikadissss/scrtdd/partials"
)

// TestRoundTripToLocalFromLocal covers spec.md §8 invariant 6: round-trip
// geographic → local-km → geographic reproduces the original lat/lon to
// within 1e-9 degrees.
func TestRoundTripToLocalFromLocal(t *testing.T) {
	c := partials.NewCentroid([]float64{46.0, 46.02}, []float64{7.0, 7.05}, []float64{5, 8})
	cases := [][3]float64{
		{46.01, 7.02, 6.5},
		{45.98, 6.91, 3.2},
		{46.0, 7.0, 5.0},
	}
	for _, tc := range cases {
		x, y, z := c.ToLocal(tc[0], tc[1], tc[2])
		lat, lon, depth := c.FromLocal(x, y, z)
		if math.Abs(lat-tc[0]) > 1e-9 {
			t.Fatalf("lat round-trip: got %v want %v", lat, tc[0])
		}
		if math.Abs(lon-tc[1]) > 1e-9 {
			t.Fatalf("lon round-trip: got %v want %v", lon, tc[1])
		}
		if math.Abs(depth-tc[2]) > 1e-9 {
			t.Fatalf("depth round-trip: got %v want %v", depth, tc[2])
		}
	}
}

func TestComputeOriginTimePartialIsOne(t *testing.T) {
	row := partials.Compute(45, 30, 6.0)
	if row[3] != 1 {
		t.Fatalf("origin-time partial = %v, want 1", row[3])
	}
}

func TestComputeStraightDownDip(t *testing.T) {
	// Straight-down ray (dip=0): no horizontal partials, full vertical slowness.
	row := partials.Compute(0, 0, 5.0)
	if math.Abs(row[0]) > 1e-12 || math.Abs(row[1]) > 1e-12 {
		t.Fatalf("expected zero horizontal partials, got %v %v", row[0], row[1])
	}
	want := -1.0 / 5.0
	if math.Abs(row[2]-want) > 1e-12 {
		t.Fatalf("∂t/∂z = %v, want %v", row[2], want)
	}
}
