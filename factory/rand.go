package factory

import (
	"encoding/binary"

	"lukechampine.com/frand"
)

// RandSource is the randomness a TileSupply draws tile colors from.
// *frand.RNG and *math/rand.Rand both satisfy it.
type RandSource interface {
	Intn(n int) int
}

// NewRand returns a deterministic ChaCha-based generator for seed.
func NewRand(seed uint64) *frand.RNG {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:8], seed)
	return frand.NewCustom(key[:], 1024, 12)
}

// RandomSeed returns a fresh nonzero seed from the system entropy source.
func RandomSeed() uint64 {
	return frand.Uint64n(1<<63-1) + 1
}
