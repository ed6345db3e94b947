package ising

import "math/rand/v2"

// Random is the draw contract the update engines consume.
type Random interface {
	// IntN returns a uniform integer in [0, n).
	IntN(n int) int
	// Float64 returns a uniform float in [0, 1).
	Float64() float64
}

// Source is a deterministic PCG stream. The same seed always yields the same
// sequence; any int64 is accepted.
type Source struct {
	seed int64
	r    *rand.Rand
}

func NewSource(seed int64) *Source {
	return &Source{seed: seed, r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

func (s *Source) Seed() int64 { return s.seed }

func (s *Source) IntN(n int) int { return s.r.IntN(n) }

func (s *Source) Float64() float64 { return s.r.Float64() }

// Spin returns -1 or +1 with equal probability.
func (s *Source) Spin() int8 {
	return int8(s.r.IntN(2)*2 - 1)
}

// DeriveSeed mixes a parent seed and a stream id into an independent seed
// (SplitMix64 finalizer).
func DeriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}
