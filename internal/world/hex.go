// Package world provides the hex grid, terrain generator, and tile data.
// Uses axial coordinates (q, r) for the hex grid and pointy-top layout for
// the planar (x, z) sample space.
package world

import "math"

// TileSize is the circumscribed radius of one hex tile in planar units.
const TileSize = 1.0

var sqrt3 = math.Sqrt(3.0)

// AxialCoord represents a position on the hex grid using axial coordinates.
// The third cube coordinate s is derived: s = -q - r.
type AxialCoord struct {
	Q int `json:"q"`
	R int `json:"r"`
}

// S returns the implicit third cube coordinate.
func (c AxialCoord) S() int {
	return -c.Q - c.R
}

// Distance returns the hex distance between two coordinates.
func Distance(a, b AxialCoord) int {
	dq := abs(a.Q - b.Q)
	dr := abs(a.R - b.R)
	ds := abs(a.S() - b.S())
	// Max of the three absolute differences in cube coordinates.
	return max(dq, dr, ds)
}

// InDisk reports whether c lies within radius of the origin.
func (c AxialCoord) InDisk(radius int) bool {
	return Distance(AxialCoord{}, c) <= radius
}

// Point is a position in the planar sample space.
type Point struct {
	X float64
	Z float64
}

// Center converts an axial coordinate to the planar center of its tile.
// Pointy-top: x = S*sqrt3*q + sqrt3/2*S*r, z = S*1.5*r.
func (c AxialCoord) Center() Point {
	return Point{
		X: TileSize*sqrt3*float64(c.Q) + sqrt3/2.0*TileSize*float64(c.R),
		Z: TileSize * 1.5 * float64(c.R),
	}
}

// EdgePoint returns the point TileSize away from center at 60*i degrees,
// measured clockwise from north (-z).
func EdgePoint(center Point, i int) Point {
	angle := float64(i) * 60.0 * math.Pi / 180.0
	return Point{
		X: center.X + math.Sin(angle)*TileSize,
		Z: center.Z - math.Cos(angle)*TileSize,
	}
}

// DiskCoords enumerates every coordinate within radius of the origin.
// Order is q ascending, then r ascending within its bounds.
func DiskCoords(radius int) []AxialCoord {
	if radius < 0 {
		return nil
	}
	coords := make([]AxialCoord, 0, sizeHint(radius))
	for q := -radius; q <= radius; q++ {
		rmin := max(-radius, -q-radius)
		rmax := min(radius, radius-q)
		for r := rmin; r <= rmax; r++ {
			coords = append(coords, AxialCoord{Q: q, R: r})
		}
	}
	return coords
}

// DiskSize is the number of cells in a hex disk: 3r^2 + 3r + 1.
// It saturates at math.MaxInt for radii whose count would overflow.
func DiskSize(radius int) int {
	if radius < 0 {
		return 0
	}
	if radius > maxExactRadius {
		return math.MaxInt
	}
	return 3*radius*radius + 3*radius + 1
}

// maxExactRadius keeps 3r^2 + 3r + 1 within int64.
const maxExactRadius = 1 << 30

// sizeHint caps preallocation; larger disks grow as they fill.
func sizeHint(radius int) int {
	return min(DiskSize(radius), 1<<20)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
