package world

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrOutOfBounds is returned when a lookup falls outside the world radius.
var ErrOutOfBounds = errors.New("coordinate outside world radius")

// Tile is one generated hex cell.
type Tile struct {
	Coord     AxialCoord   `json:"coord"`
	Class     TerrainClass `json:"class"`
	Elevation float64      `json:"elevation"`

	// EdgeSlopes[i] is center elevation minus the elevation sampled at
	// EdgePoint(center, i). Positive means the ground drops toward that edge.
	EdgeSlopes [6]float64 `json:"edge_slopes"`
}

// MaxDrop returns the largest positive edge slope, or 0 if none drop.
func (t Tile) MaxDrop() float64 {
	drop := 0.0
	for _, s := range t.EdgeSlopes {
		drop = math.Max(drop, s)
	}
	return drop
}

// MaxRise returns the largest climb from the center to an edge, or 0 if none rise.
func (t Tile) MaxRise() float64 {
	rise := 0.0
	for _, s := range t.EdgeSlopes {
		rise = math.Max(rise, -s)
	}
	return rise
}

// World holds every tile of a generated hex disk. It is read-only once
// Generate returns it.
type World struct {
	radius int
	tiles  map[AxialCoord]Tile
}

func newWorld(radius int) *World {
	return &World{
		radius: radius,
		tiles:  make(map[AxialCoord]Tile, sizeHint(radius)),
	}
}

func (w *World) set(t Tile) {
	w.tiles[t.Coord] = t
}

// Radius returns the hex radius of the world.
func (w *World) Radius() int { return w.radius }

// Len returns the total number of tiles.
func (w *World) Len() int { return len(w.tiles) }

// InBounds returns true if the coordinate is within the world radius.
func (w *World) InBounds(c AxialCoord) bool {
	return c.InDisk(w.radius)
}

// Get returns the tile at c and whether it exists.
func (w *World) Get(c AxialCoord) (Tile, bool) {
	t, ok := w.tiles[c]
	return t, ok
}

// Lookup returns the tile at c, or ErrOutOfBounds for coordinates outside
// the radius. An in-range coordinate with no tile is a generator defect and panics.
func (w *World) Lookup(c AxialCoord) (Tile, error) {
	if !w.InBounds(c) {
		return Tile{}, fmt.Errorf("lookup (%d, %d) radius %d: %w", c.Q, c.R, w.radius, ErrOutOfBounds)
	}
	return w.MustGet(c), nil
}

// MustGet returns the tile at c and panics if it is missing.
func (w *World) MustGet(c AxialCoord) Tile {
	t, ok := w.tiles[c]
	if !ok {
		panic(fmt.Sprintf("world: no tile at (%d, %d) in radius %d", c.Q, c.R, w.radius))
	}
	return t
}

// Coords returns all tile coordinates sorted by q, then r.
func (w *World) Coords() []AxialCoord {
	coords := make([]AxialCoord, 0, len(w.tiles))
	for c := range w.tiles {
		coords = append(coords, c)
	}
	sort.Slice(coords, func(i, j int) bool {
		if coords[i].Q != coords[j].Q {
			return coords[i].Q < coords[j].Q
		}
		return coords[i].R < coords[j].R
	})
	return coords
}

// Range calls fn for each tile in Coords order until fn returns false.
func (w *World) Range(fn func(AxialCoord, Tile) bool) {
	for _, c := range w.Coords() {
		if !fn(c, w.tiles[c]) {
			return
		}
	}
}

// ClassCounts returns a summary of terrain class distribution.
func (w *World) ClassCounts() map[TerrainClass]int {
	counts := make(map[TerrainClass]int)
	for _, t := range w.tiles {
		counts[t.Class]++
	}
	return counts
}

// Digest is a SHA-256 over every tile in Coords order. Equal worlds have
// equal digests.
func (w *World) Digest() string {
	h := sha256.New()
	var buf [8]byte
	put := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}

	put(uint64(w.radius))
	w.Range(func(c AxialCoord, t Tile) bool {
		put(uint64(int64(c.Q)))
		put(uint64(int64(c.R)))
		put(uint64(t.Class))
		put(math.Float64bits(t.Elevation))
		for _, s := range t.EdgeSlopes {
			put(math.Float64bits(s))
		}
		return true
	})
	return hex.EncodeToString(h.Sum(nil))
}

// String returns a summary of the world.
func (w *World) String() string {
	return fmt.Sprintf("World(radius=%d, tiles=%d)", w.radius, w.Len())
}
