package common

import "math"

// SeededRNG implements a Mulberry32 seeded pseudo-random number generator.
// Every random decision in the particle engine draws from one of these so a
// given seed reproduces the same clouds, scatters and flashes.
type SeededRNG struct {
	state       uint32
	initialSeed uint32
}

// NewSeededRNG creates a new seeded random number generator.
func NewSeededRNG(seed uint32) *SeededRNG {
	return &SeededRNG{
		state:       seed,
		initialSeed: seed,
	}
}

// Random generates the next random number using Mulberry32 algorithm.
// Returns a float64 between 0 (inclusive) and 1 (exclusive).
func (r *SeededRNG) Random() float64 {
	r.state += 0x6D2B79F5
	t := r.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296.0
}

// RandomFloat generates a random float in the specified range [min, max).
func (r *SeededRNG) RandomFloat(min, max float64) float64 {
	return r.Random()*(max-min) + min
}

// Signed returns a random float in [-amount, amount).
func (r *SeededRNG) Signed(amount float64) float64 {
	return (r.Random()*2 - 1) * amount
}

// UnitVector returns a uniformly distributed direction on the unit sphere.
func (r *SeededRNG) UnitVector() Point3 {
	z := r.Random()*2 - 1
	theta := r.Random() * 2 * math.Pi
	s := math.Sqrt(1 - z*z)
	return Point3{X: s * math.Cos(theta), Y: s * math.Sin(theta), Z: z}
}

// InShell returns a point uniformly distributed by volume between two
// concentric spheres of radius inner and outer.
func (r *SeededRNG) InShell(inner, outer float64) Point3 {
	if outer < inner {
		inner, outer = outer, inner
	}
	i3 := inner * inner * inner
	o3 := outer * outer * outer
	radius := math.Cbrt(i3 + r.Random()*(o3-i3))
	return r.UnitVector().Scale(radius)
}

// Fork derives an independent generator for a named subsystem so adding
// draws in one place does not shift the sequence seen by another.
func (r *SeededRNG) Fork(stream int) *SeededRNG {
	return NewSeededRNG(MixSeed(r.initialSeed, stream))
}

// MixSeed generates a deterministic seed for a numbered stream.
func MixSeed(baseSeed uint32, stream int) uint32 {
	seed := baseSeed ^ (uint32(stream) * 2654435761)
	seed = (seed ^ (seed >> 16)) * 0x85ebca6b
	seed = (seed ^ (seed >> 13)) * 0xc2b2ae35
	return seed ^ (seed >> 16)
}
