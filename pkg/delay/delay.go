// Package delay simulates configurable response latency.
package delay

import (
	"context"
	"time"

	"github.com/mockhub/mockhub/internal/rng"
)

// Range is a [Min, Max] latency window in milliseconds. A zero Range means
// no delay.
type Range struct {
	MinMs int
	MaxMs int
}

// IsZero reports whether the range specifies no delay at all.
func (r Range) IsZero() bool {
	return r.MinMs <= 0 && r.MaxMs <= 0
}

// Simulator suspends response emission for a duration drawn uniformly from
// a configured range. The random source is shared and concurrency-safe; the
// sleep itself holds no locks, so concurrent requests delay independently.
type Simulator struct {
	rnd *rng.Source
}

// NewSimulator creates a Simulator drawing from the given random source.
func NewSimulator(rnd *rng.Source) *Simulator {
	if rnd == nil {
		rnd = rng.New()
	}
	return &Simulator{rnd: rnd}
}

// Pick draws a delay duration from the range. Swapped bounds are corrected;
// a max below min collapses to min.
func (s *Simulator) Pick(r Range) time.Duration {
	if r.IsZero() {
		return 0
	}
	min, max := r.MinMs, r.MaxMs
	if min < 0 {
		min = 0
	}
	if max < min {
		max = min
	}
	ms := min
	if max > min {
		ms = s.rnd.Between(min, max)
	}
	return time.Duration(ms) * time.Millisecond
}

// Wait suspends until the drawn delay elapses or the request context is
// cancelled, returning the context error in the latter case so the pipeline
// can abort before emitting.
func (s *Simulator) Wait(ctx context.Context, r Range) error {
	d := s.Pick(r)
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
