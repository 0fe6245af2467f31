// World generation using four layered fBm noise fields.
// Coarse fields pick an elevation band; the fine terrain field places the
// elevation inside it. Slopes come from extra samples at the six edge points.
package world

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"
)

// seedMix is multiplied into seed*radius to form the base seed.
const seedMix uint32 = 0xAFB333FE

// GenConfig holds world generation parameters.
type GenConfig struct {
	Seed   uint32
	Radius uint32 // Hex grid radius; 0 yields a single tile
	Noise  NoiseConfig
}

// DefaultGenConfig returns the standard world size with the default fBm.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Seed:   0,
		Radius: 64,
		Noise:  DefaultNoiseConfig(),
	}
}

// SmallTestConfig returns a tiny world for rapid iteration.
func SmallTestConfig() GenConfig {
	return GenConfig{
		Seed:   42,
		Radius: 5,
		Noise:  DefaultNoiseConfig(),
	}
}

// Band is the [Min, Max] elevation range chosen for a location.
type Band struct {
	Min int
	Max int
}

// Generator produces worlds from a fixed set of noise fields.
// Sampling never mutates it, so one generator may be queried repeatedly.
type Generator struct {
	radius int
	seeds  [4]uint32
	fields [4]Field
}

// New constructs a generator with the default noise configuration.
func New(seed, radius uint32) *Generator {
	g, _ := NewWithConfig(GenConfig{Seed: seed, Radius: radius, Noise: DefaultNoiseConfig()})
	return g
}

// NewWithConfig constructs a generator, deriving one seed per channel.
func NewWithConfig(cfg GenConfig) (*Generator, error) {
	if err := cfg.Noise.Validate(); err != nil {
		return nil, fmt.Errorf("noise config: %w", err)
	}

	seeds := DeriveSeeds(cfg.Seed, cfg.Radius)
	g := &Generator{radius: int(cfg.Radius), seeds: seeds}
	for i, s := range seeds {
		g.fields[i] = NewField(int64(s), cfg.Noise)
	}

	slog.Debug("generator seeded",
		"seed", cfg.Seed,
		"radius", cfg.Radius,
		"basis", cfg.Noise.Basis,
		"continentalness", seeds[ChannelContinentalness],
		"erosion", seeds[ChannelErosion],
		"peaks", seeds[ChannelPeaks],
		"terrain", seeds[ChannelTerrain],
	)
	return g, nil
}

// NewWithFields builds a generator over caller-supplied fields, indexed by Channel.
func NewWithFields(radius uint32, fields [4]Field) *Generator {
	return &Generator{radius: int(radius), fields: fields}
}

// DeriveSeeds computes the per-channel seeds. All multiplies wrap at 32 bits.
//
//	base = seed * radius * 0xAFB333FE
//	channel[i] = base * rng(base).Uint32()   (drawn in Channels order)
func DeriveSeeds(seed, radius uint32) [4]uint32 {
	base := seed * radius * seedMix
	rng := rand.New(rand.NewSource(int64(base)))

	var seeds [4]uint32
	for _, ch := range Channels {
		seeds[ch] = base * rng.Uint32()
	}
	return seeds
}

// Radius returns the hex radius this generator covers.
func (g *Generator) Radius() int { return g.radius }

// Seeds returns the derived per-channel seeds (zero for stubbed generators).
func (g *Generator) Seeds() [4]uint32 { return g.seeds }

// sample reads a channel at its own scale.
func (g *Generator) sample(ch Channel, x, z float64) float64 {
	s := ch.Scale()
	return g.fields[ch].Sample(x/s, z/s)
}

// ElevationRange selects the elevation band for planar point (x, z).
func (g *Generator) ElevationRange(x, z float64) Band {
	cont := g.sample(ChannelContinentalness, x, z)
	if cont < 0 {
		return Band{0, 10} // deep ocean
	}
	if cont < 0.2 {
		return Band{10, 20} // shallow sea
	}

	erosion := g.sample(ChannelErosion, x, z)
	if erosion < -0.3 {
		peaks := g.sample(ChannelPeaks, x, z)
		if math.Abs(peaks) < 0.1 {
			return Band{240, 256} // sharp peak
		}
		return Band{80, 224}
	}
	if cont < 0.9 {
		return Band{20, 144}
	}
	return Band{96, 208}
}

// RemapTerrain shifts terrain noise from [-1, 1] to [0, 2].
// This is (t + 1) / 1, not the usual (t + 1) / 2, so elevations can reach
// 2*Max - Min. Existing worlds depend on it; do not halve without a migration.
func RemapTerrain(t float64) float64 {
	return (t + 1) / 1
}

// Elevation returns the elevation at planar point (x, z).
func (g *Generator) Elevation(x, z float64) float64 {
	band := g.ElevationRange(x, z)
	t := RemapTerrain(g.sample(ChannelTerrain, x, z))
	return t*float64(band.Max-band.Min) + float64(band.Min)
}

// Generate builds the complete world: one tile per coordinate in the hex disk.
func (g *Generator) Generate() *World {
	w := newWorld(g.radius)
	for _, coord := range DiskCoords(g.radius) {
		w.set(g.buildTile(coord))
	}
	return w
}

func (g *Generator) buildTile(coord AxialCoord) Tile {
	center := coord.Center()
	elevation := g.Elevation(center.X, center.Z)

	var slopes [6]float64
	for i := range slopes {
		p := EdgePoint(center, i)
		slopes[i] = elevation - g.Elevation(p.X, p.Z)
	}

	return Tile{
		Coord:      coord,
		Class:      Classify(elevation),
		Elevation:  elevation,
		EdgeSlopes: slopes,
	}
}

// DebugSample returns the raw value of one channel at every tile center,
// bypassing banding and classification.
func (g *Generator) DebugSample(ch Channel) map[AxialCoord]float64 {
	coords := DiskCoords(g.radius)
	out := make(map[AxialCoord]float64, len(coords))
	for _, coord := range coords {
		c := coord.Center()
		out[coord] = g.sample(ch, c.X, c.Z)
	}
	return out
}

// DebugSampleAll returns DebugSample for every channel, indexed by Channel.
func (g *Generator) DebugSampleAll() [4]map[AxialCoord]float64 {
	var out [4]map[AxialCoord]float64
	for _, ch := range Channels {
		out[ch] = g.DebugSample(ch)
	}
	return out
}
