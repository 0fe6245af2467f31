package world

import (
	"strings"
	"testing"
)

func TestFieldDeterminism(t *testing.T) {
	for _, basis := range []Basis{BasisPerlin, BasisSimplex} {
		nc := DefaultNoiseConfig()
		nc.Basis = basis
		a := NewField(12345, nc)
		b := NewField(12345, nc)
		for i := 0; i < 200; i++ {
			x := float64(i)*0.37 - 20
			z := float64(i)*0.53 - 30
			if a.Sample(x, z) != b.Sample(x, z) {
				t.Fatalf("%s: Sample not deterministic at (%f, %f)", basis, x, z)
			}
		}
	}
}

func TestFieldRange(t *testing.T) {
	for _, basis := range []Basis{BasisPerlin, BasisSimplex} {
		nc := DefaultNoiseConfig()
		nc.Basis = basis
		f := NewField(42, nc)

		lo, hi := 1.0, -1.0
		for i := 0; i < 150; i++ {
			for j := 0; j < 150; j++ {
				x := float64(i)*0.37 - 27
				z := float64(j)*0.41 - 31
				v := f.Sample(x, z)
				if v < -1 || v > 1 {
					t.Fatalf("%s: Sample(%f, %f) = %f, outside [-1, 1]", basis, x, z, v)
				}
				lo = min(lo, v)
				hi = max(hi, v)
			}
		}
		// The field must use most of its range, not sit in a narrow middle band.
		if lo > -0.7 || hi < 0.7 {
			t.Errorf("%s: sampled range [%f, %f], want to reach past +-0.7", basis, lo, hi)
		}
	}
}

func TestFieldSeedsDiffer(t *testing.T) {
	nc := DefaultNoiseConfig()
	a := NewField(1, nc)
	b := NewField(2, nc)
	same := 0
	for i := 0; i < 100; i++ {
		x := float64(i)*0.5 + 0.25
		z := float64(i)*0.3 + 0.25
		if a.Sample(x, z) == b.Sample(x, z) {
			same++
		}
	}
	if same > 10 {
		t.Errorf("different seeds produced %d identical samples out of 100", same)
	}
}

func TestNoiseConfigValidate(t *testing.T) {
	if err := DefaultNoiseConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*NoiseConfig)
		want   string
	}{
		{"basis", func(nc *NoiseConfig) { nc.Basis = "worley" }, "basis"},
		{"octaves", func(nc *NoiseConfig) { nc.Octaves = 0 }, "octaves"},
		{"lacunarity", func(nc *NoiseConfig) { nc.Lacunarity = 0 }, "lacunarity"},
		{"persistence", func(nc *NoiseConfig) { nc.Persistence = -1 }, "persistence"},
	}
	for _, tc := range cases {
		nc := DefaultNoiseConfig()
		tc.mutate(&nc)
		err := nc.Validate()
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Errorf("%s: Validate() = %v, want error mentioning %q", tc.name, err, tc.want)
		}
	}
}

func TestParseChannel(t *testing.T) {
	for _, ch := range Channels {
		got, err := ParseChannel(ch.String())
		if err != nil || got != ch {
			t.Errorf("ParseChannel(%q) = %v, %v", ch.String(), got, err)
		}
	}
	if _, err := ParseChannel("humidity"); err == nil {
		t.Errorf("ParseChannel should reject unknown names")
	}
}

func TestChannelScales(t *testing.T) {
	want := map[Channel]float64{
		ChannelContinentalness: 64,
		ChannelErosion:         64,
		ChannelPeaks:           16,
		ChannelTerrain:         32,
	}
	for ch, s := range want {
		if ch.Scale() != s {
			t.Errorf("%s.Scale() = %g, want %g", ch, ch.Scale(), s)
		}
	}
}
