package routing

import (
	"sort"

	"github.com/mockhub/mockhub/pkg/project"
)

// Resolution is the outcome of endpoint resolution: the winning endpoint and
// the route parameters its match extracted.
type Resolution struct {
	Endpoint *project.Endpoint
	Params   map[string]string
}

// Resolve picks the single endpoint serving the given method and normalized
// path, or nil when none matches.
//
// Candidates are the active endpoints whose method matches case-insensitively,
// ordered by specificity: non-wildcard before wildcard, then descending count
// of '/' separators in the route pattern, then the endpoint's own order as a
// stable tie-break. The first candidate whose route matches wins, so the
// selection is deterministic for identical inputs.
func Resolve(endpoints []*project.Endpoint, method, path string) *Resolution {
	candidates := make([]*project.Endpoint, 0, len(endpoints))
	for _, e := range endpoints {
		if e != nil && e.IsActive && e.MethodMatches(method) {
			candidates = append(candidates, e)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.IsWildcard != b.IsWildcard {
			return !a.IsWildcard
		}
		if sa, sb := a.SeparatorCount(), b.SeparatorCount(); sa != sb {
			return sa > sb
		}
		return a.Order < b.Order
	})

	for _, e := range candidates {
		result := Match(e.CompiledRoute(), path)
		if result.Matched {
			return &Resolution{Endpoint: e, Params: result.Params}
		}
	}
	return nil
}
