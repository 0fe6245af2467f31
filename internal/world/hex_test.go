package world

import (
	"math"
	"testing"
)

func TestDiskCoordsCountAndBounds(t *testing.T) {
	for radius := 0; radius <= 8; radius++ {
		coords := DiskCoords(radius)
		want := 3*radius*radius + 3*radius + 1
		if len(coords) != want {
			t.Fatalf("radius %d: got %d coords, want %d", radius, len(coords), want)
		}
		if DiskSize(radius) != want {
			t.Fatalf("DiskSize(%d) = %d, want %d", radius, DiskSize(radius), want)
		}

		seen := make(map[AxialCoord]bool, len(coords))
		for _, c := range coords {
			if seen[c] {
				t.Fatalf("radius %d: duplicate coord %+v", radius, c)
			}
			seen[c] = true
			if !c.InDisk(radius) {
				t.Fatalf("radius %d: coord %+v outside disk", radius, c)
			}
			if d := Distance(AxialCoord{}, c); d > radius {
				t.Fatalf("radius %d: coord %+v at distance %d", radius, c, d)
			}
		}
	}
}

func TestDiskCoordsOrder(t *testing.T) {
	coords := DiskCoords(2)
	for i := 1; i < len(coords); i++ {
		a, b := coords[i-1], coords[i]
		if a.Q > b.Q || (a.Q == b.Q && a.R >= b.R) {
			t.Fatalf("coords not ordered at %d: %+v then %+v", i, a, b)
		}
	}
	if coords[0] != (AxialCoord{Q: -2, R: 0}) {
		t.Fatalf("first coord = %+v, want (-2, 0)", coords[0])
	}
}

func TestDiskCoordsNegativeRadius(t *testing.T) {
	if got := DiskCoords(-1); len(got) != 0 {
		t.Fatalf("DiskCoords(-1) returned %d coords", len(got))
	}
	if DiskSize(-1) != 0 {
		t.Fatalf("DiskSize(-1) = %d, want 0", DiskSize(-1))
	}
}

func TestDiskSizeSaturates(t *testing.T) {
	for _, r := range []int{1 << 31, math.MaxUint32, math.MaxInt} {
		if got := DiskSize(r); got != math.MaxInt {
			t.Errorf("DiskSize(%d) = %d, want math.MaxInt", r, got)
		}
	}
	if got := DiskSize(maxExactRadius); got <= 0 {
		t.Errorf("DiskSize(%d) overflowed to %d", maxExactRadius, got)
	}
	if got := sizeHint(math.MaxUint32); got != 1<<20 {
		t.Errorf("sizeHint = %d, want capped at %d", got, 1<<20)
	}
	if got := sizeHint(3); got != DiskSize(3) {
		t.Errorf("sizeHint(3) = %d, want %d", got, DiskSize(3))
	}
}

func TestInDiskMatchesAxialBounds(t *testing.T) {
	const radius = 4
	for q := -6; q <= 6; q++ {
		for r := -6; r <= 6; r++ {
			c := AxialCoord{Q: q, R: r}
			want := abs(q) <= radius && abs(r) <= radius && abs(q+r) <= radius
			if got := c.InDisk(radius); got != want {
				t.Errorf("InDisk(%+v, %d) = %v, want %v", c, radius, got, want)
			}
		}
	}
	if d := Distance(AxialCoord{Q: 2, R: -1}, AxialCoord{Q: -1, R: 3}); d != 4 {
		t.Errorf("Distance = %d, want 4", d)
	}
}

func TestCenter(t *testing.T) {
	cases := []struct {
		coord AxialCoord
		x, z  float64
	}{
		{AxialCoord{0, 0}, 0, 0},
		{AxialCoord{1, 0}, math.Sqrt(3), 0},
		{AxialCoord{0, 1}, math.Sqrt(3) / 2, 1.5},
		{AxialCoord{-1, 2}, 0, 3},
	}
	for _, tc := range cases {
		p := tc.coord.Center()
		if math.Abs(p.X-tc.x) > 1e-12 || math.Abs(p.Z-tc.z) > 1e-12 {
			t.Errorf("Center(%+v) = (%f, %f), want (%f, %f)", tc.coord, p.X, p.Z, tc.x, tc.z)
		}
	}
}

func TestEdgePointDistanceAndDirection(t *testing.T) {
	center := AxialCoord{Q: 2, R: -3}.Center()
	for i := 0; i < 6; i++ {
		p := EdgePoint(center, i)
		d := math.Hypot(p.X-center.X, p.Z-center.Z)
		if math.Abs(d-TileSize) > 1e-12 {
			t.Errorf("edge %d at distance %f, want %f", i, d, TileSize)
		}
	}

	north := EdgePoint(Point{}, 0)
	if math.Abs(north.X) > 1e-12 || math.Abs(north.Z+TileSize) > 1e-12 {
		t.Errorf("edge 0 = (%f, %f), want (0, -%f)", north.X, north.Z, TileSize)
	}
	east := EdgePoint(Point{}, 1)
	if east.X <= 0 {
		t.Errorf("edge 1 should turn clockwise toward +x, got x=%f", east.X)
	}
}
