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

// Float64 returns a uniform draw from [0, 1).
func (r *RNG) Float64() float64 {
	return r.r.Float64()
}

// FillSpins fills the buffer with independent ±1 values.
func FillSpins(r *rand.Rand, buf []int8) {
	for i := range buf {
		if r.IntN(2) == 1 {
			buf[i] = 1
			continue
		}
		buf[i] = -1
	}
}

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }
