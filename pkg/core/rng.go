package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Float64 returns a random value in [0, 1).
func (r *RNG) Float64() float64 {
	return r.r.Float64()
}

// Signed returns a random value in [-1, 1).
func (r *RNG) Signed() float64 {
	return r.r.Float64()*2 - 1
}

// FillSigned fills the buffer with values in [-1, 1) using the RNG.
func FillSigned(r *rand.Rand, buf []float64) {
	for i := range buf {
		buf[i] = r.Float64()*2 - 1
	}
}

// FillBinary sets each cell to 1 with the given probability, 0 otherwise.
func FillBinary(r *rand.Rand, buf []uint8, density float64) {
	for i := range buf {
		buf[i] = 0
		if r.Float64() < density {
			buf[i] = 1
		}
	}
}

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }
