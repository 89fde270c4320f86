// Package rng provides a shared, concurrency-safe random source. It is
// passed explicitly to every component that draws random values (synthetic
// data, delay simulation, response rotation) so concurrent use is a visible
// contract rather than an implicit global.
package rng

import (
	mathrand "math/rand/v2"
	"sync"
)

// Source is a mutex-guarded PRNG handle, safe for use from many concurrent
// requests.
type Source struct {
	mu sync.Mutex
	r  *mathrand.Rand
}

// New creates a Source seeded from the system's random state.
func New() *Source {
	return &Source{r: mathrand.New(mathrand.NewPCG(mathrand.Uint64(), mathrand.Uint64()))}
}

// NewSeeded creates a deterministic Source for tests.
func NewSeeded(seed uint64) *Source {
	return &Source{r: mathrand.New(mathrand.NewPCG(seed, 0))}
}

// IntN returns a uniform int in [0, n). n <= 0 returns 0.
func (s *Source) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.IntN(n)
}

// Int64N returns a uniform int64 in [0, n). n <= 0 returns 0.
func (s *Source) Int64N(n int64) int64 {
	if n <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Int64N(n)
}

// Float64 returns a uniform float64 in [0, 1).
func (s *Source) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}

// Between returns a uniform int in [min, max]. Swapped bounds are corrected.
func (s *Source) Between(min, max int) int {
	if min > max {
		min, max = max, min
	}
	return min + s.IntN(max-min+1)
}
