// Package randutil holds the seeded random helpers shared by the selection,
// transform and filter packages.
package randutil

import "math/rand/v2"

// New returns a PCG-backed generator. The same seed always yields the same
// sequence, which keeps exported renders reproducible.
func New(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Int returns a uniform integer in [min, max] (inclusive). If max < min the
// bounds are swapped.
func Int(r *rand.Rand, min, max int) int {
	if max < min {
		min, max = max, min
	}
	return min + r.IntN(max-min+1)
}

// Float returns a uniform float in [min, max).
func Float(r *rand.Rand, min, max float64) float64 {
	return min + r.Float64()*(max-min)
}

// Sign returns -1 or 1 with equal probability.
func Sign(r *rand.Rand) int {
	if r.IntN(2) == 0 {
		return -1
	}
	return 1
}

// Jitter returns a value in [-amount/2, amount/2).
func Jitter(r *rand.Rand, amount float64) float64 {
	return (r.Float64() - 0.5) * amount
}
