// Package random provides the seedable generator and the Gaussian sampling
// primitives every behavioural decision draws from.
package random

import "math/rand"

// Source is the subset of *rand.Rand the simulation draws from.
type Source interface {
	Float64() float64     // uniform in [0, 1)
	NormFloat64() float64 // standard normal
}

// RNG wraps math/rand.Rand with its seed and a draw counter.
// A fixed seed yields the same sequence of draws for a whole run.
type RNG struct {
	seed  int64
	src   *rand.Rand
	draws int64
}

// New creates a deterministic generator from a seed.
func New(seed int64) *RNG {
	return &RNG{
		seed: seed,
		src:  rand.New(rand.NewSource(seed)),
	}
}

// Float64 returns a uniform draw in [0, 1).
func (r *RNG) Float64() float64 {
	r.draws++
	return r.src.Float64()
}

// NormFloat64 returns a standard normal draw.
func (r *RNG) NormFloat64() float64 {
	r.draws++
	return r.src.NormFloat64()
}

// Seed returns the seed the generator was created with.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Draws returns the number of values drawn since creation.
func (r *RNG) Draws() int64 {
	return r.draws
}
