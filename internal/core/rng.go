package core

import (
	"math/rand"
	"time"
)

// RNG is the source of randomness used by the engine.
// *rand.Rand satisfies it; tests can supply scripted sequences.
type RNG interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// Intn returns a uniform value in [0, n). Panics if n <= 0.
	Intn(n int) int
}

// NewRNG returns a seeded RNG. A zero seed means "seed from the clock".
func NewRNG(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// IntBetween returns a uniform integer in [lo, hi] inclusive.
// If hi <= lo it returns lo without consuming randomness.
func IntBetween(r RNG, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.Intn(hi-lo+1)
}

// FloatBetween returns a uniform float in [lo, hi).
func FloatBetween(r RNG, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}
