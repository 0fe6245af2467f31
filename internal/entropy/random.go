// Package entropy picks world seeds when none is configured.
// Uses crypto/rand, falling back to the math/rand global source.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
	"io"
	"log/slog"
	mrand "math/rand"
)

// Source is where seed bytes come from. Replaced in tests.
var Source io.Reader = rand.Reader

// Seed returns a fresh 32-bit world seed.
func Seed() uint32 {
	var buf [4]byte
	if _, err := io.ReadFull(Source, buf[:]); err != nil {
		// This should never happen with crypto/rand.
		slog.Debug("entropy read failed, using math/rand", "error", err)
		return mrand.Uint32()
	}
	return binary.LittleEndian.Uint32(buf[:])
}
