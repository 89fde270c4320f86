package dispatch

import (
	"sort"
	"sync"

	"github.com/mockhub/mockhub/internal/rng"
	"github.com/mockhub/mockhub/pkg/project"
)

// fallbackBody is served when a matched endpoint has no responses at all,
// so the pipeline never emits without a body.
const fallbackBody = `{"message": "No response configured"}`

// Selector picks which of an endpoint's candidate responses to serve.
// Sequential rotation state is owned here, keyed by endpoint id, so the
// endpoint records themselves stay read-only.
type Selector struct {
	rnd     *rng.Source
	mu      sync.Mutex
	cursors map[string]int
}

// NewSelector creates a Selector drawing random picks from rnd.
func NewSelector(rnd *rng.Source) *Selector {
	if rnd == nil {
		rnd = rng.New()
	}
	return &Selector{rnd: rnd, cursors: make(map[string]int)}
}

// Select returns the response to serve for the endpoint. The endpoint's
// responseMode chooses the strategy; an empty response list synthesizes a
// 200/JSON placeholder.
func (s *Selector) Select(e *project.Endpoint) *project.Response {
	if len(e.Responses) == 0 {
		return &project.Response{
			StatusCode:  200,
			ContentType: "application/json",
			Body:        fallbackBody,
		}
	}

	ordered := make([]*project.Response, len(e.Responses))
	copy(ordered, e.Responses)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Order < ordered[j].Order
	})

	switch e.ResponseMode {
	case project.ModeSequential:
		s.mu.Lock()
		idx := s.cursors[e.ID]
		s.cursors[e.ID] = (idx + 1) % len(ordered)
		s.mu.Unlock()
		return ordered[idx%len(ordered)]

	case project.ModeRandom:
		return ordered[s.rnd.IntN(len(ordered))]

	default:
		for _, r := range ordered {
			if r.IsDefault {
				return r
			}
		}
		return ordered[0]
	}
}

// ResetRotation clears the sequential cursor for an endpoint, for example
// after its response set changes.
func (s *Selector) ResetRotation(endpointID string) {
	s.mu.Lock()
	delete(s.cursors, endpointID)
	s.mu.Unlock()
}
