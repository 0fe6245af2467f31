package world

import (
	"fmt"
	"math"

	"github.com/aquilax/go-perlin"
	opensimplex "github.com/ojrac/opensimplex-go"
)

// Field is a deterministic 2D noise function with output roughly in [-1, 1].
type Field interface {
	Sample(x, z float64) float64
}

// FieldFunc adapts a plain function to Field.
type FieldFunc func(x, z float64) float64

// Sample implements Field.
func (f FieldFunc) Sample(x, z float64) float64 { return f(x, z) }

// Channel identifies one of the four noise fields of a generator.
type Channel uint8

const (
	ChannelContinentalness Channel = iota
	ChannelErosion
	ChannelPeaks
	ChannelTerrain
)

// Channels lists the noise channels in seed-derivation order.
var Channels = [...]Channel{
	ChannelContinentalness,
	ChannelErosion,
	ChannelPeaks,
	ChannelTerrain,
}

// Scale is the divisor applied to planar coordinates before sampling the channel.
func (c Channel) Scale() float64 {
	switch c {
	case ChannelContinentalness, ChannelErosion:
		return 64.0
	case ChannelPeaks:
		return 16.0
	case ChannelTerrain:
		return 32.0
	default:
		return 1.0
	}
}

func (c Channel) String() string {
	switch c {
	case ChannelContinentalness:
		return "continentalness"
	case ChannelErosion:
		return "erosion"
	case ChannelPeaks:
		return "peaks"
	case ChannelTerrain:
		return "terrain"
	default:
		return "unknown"
	}
}

// ParseChannel returns the channel with the given name.
func ParseChannel(name string) (Channel, error) {
	for _, c := range Channels {
		if c.String() == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown noise channel %q", name)
}

// Basis selects the coherent-noise primitive under each fBm field.
type Basis string

const (
	BasisPerlin  Basis = "perlin"
	BasisSimplex Basis = "simplex"
)

// NoiseConfig holds the fractal parameters shared by all four channels.
type NoiseConfig struct {
	Basis       Basis
	Octaves     int
	Lacunarity  float64 // Frequency multiplier per octave
	Persistence float64 // Amplitude multiplier per octave
}

// DefaultNoiseConfig matches a classic fBm: 6 octaves, lacunarity 2, persistence 0.5.
func DefaultNoiseConfig() NoiseConfig {
	return NoiseConfig{
		Basis:       BasisPerlin,
		Octaves:     6,
		Lacunarity:  2.0,
		Persistence: 0.5,
	}
}

// Validate reports whether the configuration can build fields.
func (nc NoiseConfig) Validate() error {
	switch nc.Basis {
	case BasisPerlin, BasisSimplex:
	default:
		return fmt.Errorf("unknown noise basis %q", nc.Basis)
	}
	if nc.Octaves < 1 {
		return fmt.Errorf("octaves must be >= 1, got %d", nc.Octaves)
	}
	if nc.Lacunarity <= 0 {
		return fmt.Errorf("lacunarity must be > 0, got %g", nc.Lacunarity)
	}
	if nc.Persistence <= 0 {
		return fmt.Errorf("persistence must be > 0, got %g", nc.Persistence)
	}
	return nil
}

// NewField builds one fBm field for the given seed.
func NewField(seed int64, nc NoiseConfig) Field {
	if nc.Basis == BasisSimplex {
		return &simplexFBM{
			noise:       opensimplex.New(seed),
			octaves:     nc.Octaves,
			lacunarity:  nc.Lacunarity,
			persistence: nc.Persistence,
		}
	}
	return newPerlinFBM(seed, nc)
}

// Post-normalization gains. After dividing by the total octave amplitude,
// 6-octave fBm peaks near +-0.44 (perlin) and +-0.69 (simplex) over 160k
// samples. Each gain lifts that peak to about 1.2 so the +-0.9 tails used by
// the band tree are reachable; the clamp trims the rest.
const (
	perlinGain  = 2.75
	simplexGain = 1.75
)

// perlinFBM wraps go-perlin, whose octave sum is not normalized.
type perlinFBM struct {
	p    *perlin.Perlin
	norm float64
}

func newPerlinFBM(seed int64, nc NoiseConfig) *perlinFBM {
	// go-perlin divides each octave by alpha^i, so alpha = 1/persistence.
	alpha := 1.0 / nc.Persistence
	total := 0.0
	amp := 1.0
	for i := 0; i < nc.Octaves; i++ {
		total += amp
		amp *= nc.Persistence
	}
	return &perlinFBM{
		p:    perlin.NewPerlin(alpha, nc.Lacunarity, int32(nc.Octaves), seed),
		norm: total,
	}
}

func (f *perlinFBM) Sample(x, z float64) float64 {
	return clampUnit(f.p.Noise2D(x, z) / f.norm * perlinGain)
}

type simplexFBM struct {
	noise       opensimplex.Noise
	octaves     int
	lacunarity  float64
	persistence float64
}

// Sample layers octaves the same way as the perlin field.
func (f *simplexFBM) Sample(x, z float64) float64 {
	total := 0.0
	amplitude := 1.0
	frequency := 1.0
	maxVal := 0.0

	for i := 0; i < f.octaves; i++ {
		total += f.noise.Eval2(x*frequency, z*frequency) * amplitude
		maxVal += amplitude
		amplitude *= f.persistence
		frequency *= f.lacunarity
	}

	return clampUnit(total / maxVal * simplexGain)
}

func clampUnit(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
