package core

import "math"

// Rand is the random source consumed by the simulation.
// *math/rand.Rand satisfies it; tests substitute scripted sources.
type Rand interface {
	// Float64 returns a number in [0.0, 1.0).
	Float64() float64
}

// Range is an inclusive numeric interval.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// RandomInRange returns min + r*(max-min) for one draw r from rng.
// The result spans [min, max) and reaches max only if the source returns 1.
func RandomInRange(rng Rand, rg Range) float64 {
	return rg.Min + rng.Float64()*(rg.Max-rg.Min)
}

// RandomSpeed draws a walking speed from the given range.
func RandomSpeed(rng Rand, rg Range) float64 {
	return RandomInRange(rng, rg)
}

// RandomFloor returns floor(r*extent), an integral coordinate in [0, extent).
func RandomFloor(rng Rand, extent float64) float64 {
	if extent <= 0 {
		return 0
	}
	return math.Floor(rng.Float64() * extent)
}
