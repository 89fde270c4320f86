package project

import (
	"fmt"
	"regexp"
	"strings"
)

// Route is the compiled matching strategy for an endpoint. Exactly one
// variant is chosen at load time, so the literal/wildcard/regex fields on
// the stored record can never be combined inconsistently.
type Route interface {
	isRoute()
}

// LiteralRoute matches segment by segment. A {name} segment matches any
// single non-empty path segment and binds it.
type LiteralRoute struct {
	Segments []string
}

// WildcardRoute matches a fixed prefix of segments (literals or {name}
// parameters) and then any remainder, including an empty one.
type WildcardRoute struct {
	Prefix []string
}

// RegexRoute tests the whole path against a compiled expression. Named
// capture groups become route parameters.
type RegexRoute struct {
	Expr *regexp.Regexp
}

func (LiteralRoute) isRoute()  {}
func (WildcardRoute) isRoute() {}
func (RegexRoute) isRoute()    {}

// CompileRoute builds the matching strategy for the given pattern fields.
// A non-empty regexPattern wins over everything else; otherwise isWildcard
// selects the wildcard strategy. A malformed regex yields an error so the
// caller can degrade to "no match".
func CompileRoute(routePattern string, isWildcard bool, regexPattern string) (Route, error) {
	if regexPattern != "" {
		re, err := regexp.Compile(regexPattern)
		if err != nil {
			return nil, fmt.Errorf("compile route regex %q: %w", regexPattern, err)
		}
		return RegexRoute{Expr: re}, nil
	}

	segments := splitPath(routePattern)
	if isWildcard {
		// The trailing "*" is only a marker; the prefix is what gets matched.
		if n := len(segments); n > 0 && segments[n-1] == "*" {
			segments = segments[:n-1]
		}
		return WildcardRoute{Prefix: segments}, nil
	}
	return LiteralRoute{Segments: segments}, nil
}

// Compile derives and caches the endpoint's matching strategy. Stores call
// it once per load; a malformed regex is surfaced here and the endpoint
// simply never matches.
func (e *Endpoint) Compile() error {
	r, err := CompileRoute(e.RoutePattern, e.IsWildcard, e.RegexPattern)
	if err != nil {
		e.compiled = nil
		return err
	}
	e.compiled = r
	return nil
}

// CompiledRoute returns the cached strategy, compiling on first use.
// Returns nil when the endpoint's configuration cannot be compiled.
func (e *Endpoint) CompiledRoute() Route {
	if e.compiled == nil {
		_ = e.Compile()
	}
	return e.compiled
}

// splitPath splits a path into segments, dropping empty ones. "/" and ""
// both yield no segments.
func splitPath(p string) []string {
	var segs []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return segs
}
