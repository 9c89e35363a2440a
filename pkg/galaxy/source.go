package galaxy

import (
	"math"
	"math/rand/v2"
)

// Source supplies uniform draws in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// NewSource returns a seeded PCG generator.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// signedOffset draws u^power with a random sign.
func signedOffset(rng Source, power float64) float64 {
	v := math.Pow(rng.Float64(), power)
	if rng.Float64() < 0.5 {
		return v
	}
	return -v
}

// NewChunkSource returns the random stream for one chunk of a parallel
// generation.
func NewChunkSource(seed uint64, chunk int) *rand.Rand {
	return rand.New(rand.NewPCG(seed, uint64(chunk)))
}
