// Package routing matches normalized request paths against compiled endpoint
// routes and resolves the winning endpoint for a request.
package routing

import (
	"strings"

	"github.com/mockhub/mockhub/pkg/project"
)

// MatchResult carries the outcome of matching one route against one path.
// It is request-scoped and never persisted.
type MatchResult struct {
	Matched bool
	Params  map[string]string
}

// noMatch is the shared negative result.
var noMatch = MatchResult{}

// Match tests a compiled route against a normalized path. A nil route (an
// endpoint whose regex failed to compile) is a configuration error and
// yields no match rather than failing the request.
func Match(route project.Route, path string) MatchResult {
	switch r := route.(type) {
	case project.LiteralRoute:
		return matchLiteral(r.Segments, splitSegments(path))
	case project.WildcardRoute:
		return matchWildcard(r.Prefix, splitSegments(path))
	case project.RegexRoute:
		return matchRegex(r, path)
	default:
		return noMatch
	}
}

// matchLiteral requires equal segment counts; {name} segments bind any
// single non-empty segment, everything else compares case-sensitively.
func matchLiteral(pattern, path []string) MatchResult {
	if len(pattern) != len(path) {
		return noMatch
	}
	params := make(map[string]string)
	for i, seg := range pattern {
		if isParam(seg) {
			params[paramName(seg)] = path[i]
			continue
		}
		if seg != path[i] {
			return noMatch
		}
	}
	return MatchResult{Matched: true, Params: params}
}

// matchWildcard matches the fixed prefix like a literal route and accepts
// any remainder of the path, including none.
func matchWildcard(prefix, path []string) MatchResult {
	if len(path) < len(prefix) {
		return noMatch
	}
	params := make(map[string]string)
	for i, seg := range prefix {
		if isParam(seg) {
			params[paramName(seg)] = path[i]
			continue
		}
		if seg != path[i] {
			return noMatch
		}
	}
	return MatchResult{Matched: true, Params: params}
}

// matchRegex tests the full path and binds named capture groups.
func matchRegex(r project.RegexRoute, path string) MatchResult {
	if r.Expr == nil {
		return noMatch
	}
	m := r.Expr.FindStringSubmatch(path)
	if m == nil {
		return noMatch
	}
	params := make(map[string]string)
	for i, name := range r.Expr.SubexpNames() {
		if i > 0 && name != "" && i < len(m) {
			params[name] = m[i]
		}
	}
	return MatchResult{Matched: true, Params: params}
}

func splitSegments(path string) []string {
	var segs []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return segs
}

func isParam(seg string) bool {
	return len(seg) > 2 && strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}")
}

func paramName(seg string) string {
	return seg[1 : len(seg)-1]
}
