package network

import (
	"math/rand/v2"
	"time"
)

// Source is the only randomness the generator consumes
type Source interface {
	// Float64 returns a value in [0, 1)
	Float64() float64
	// IntN returns a value in [0, n)
	IntN(n int) int
}

// seededSource wraps a PCG generator and remembers its seed
type seededSource struct {
	*rand.Rand
	seed uint64
}

// NewSource returns a deterministic source for the given seed
func NewSource(seed uint64) Source {
	return &seededSource{
		Rand: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		seed: seed,
	}
}

// NewTimeSource returns a source seeded from the wall clock
func NewTimeSource() Source {
	return NewSource(uint64(time.Now().UnixNano()))
}

// SeedOf reports the seed of a source created by NewSource, or 0
func SeedOf(src Source) uint64 {
	if s, ok := src.(*seededSource); ok {
		return s.seed
	}
	return 0
}
