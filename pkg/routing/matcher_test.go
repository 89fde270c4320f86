package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mockhub/mockhub/pkg/project"
)

func compile(t *testing.T, pattern string, wildcard bool, regex string) project.Route {
	t.Helper()
	route, err := project.CompileRoute(pattern, wildcard, regex)
	require.NoError(t, err)
	return route
}

func TestMatchLiteral(t *testing.T) {
	tests := []struct {
		name       string
		pattern    string
		path       string
		want       bool
		wantParams map[string]string
	}{
		{"exact match", "/users", "/users", true, map[string]string{}},
		{"exact mismatch", "/users", "/orders", false, nil},
		{"param binds segment", "/users/{id}", "/users/42", true, map[string]string{"id": "42"}},
		{"param mismatch on literal", "/users/{id}", "/orders/42", false, nil},
		{"missing segment", "/users/{id}", "/users", false, nil},
		{"extra segment", "/users/{id}", "/users/42/posts", false, nil},
		{"multiple params", "/teams/{team}/users/{id}", "/teams/red/users/7", true,
			map[string]string{"team": "red", "id": "7"}},
		{"case sensitive literals", "/Users", "/users", false, nil},
		{"trailing slash normalized", "/users", "/users/", true, map[string]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			route := compile(t, tt.pattern, false, "")
			result := Match(route, tt.path)

			assert.Equal(t, tt.want, result.Matched)
			if tt.want && len(tt.wantParams) > 0 {
				assert.Equal(t, tt.wantParams, result.Params)
			}
		})
	}
}

func TestMatchWildcard(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		path    string
		want    bool
	}{
		{"matches remainder", "/files/*", "/files/a/b/c", true},
		{"matches empty remainder", "/files/*", "/files", true},
		{"prefix mismatch", "/files/*", "/docs/a", false},
		{"param in prefix", "/users/{id}/*", "/users/42/anything/here", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			route := compile(t, tt.pattern, true, "")
			assert.Equal(t, tt.want, Match(route, tt.path).Matched)
		})
	}
}

func TestMatchRegex(t *testing.T) {
	route := compile(t, "", false, `^/orders/(?P<id>\d+)$`)

	result := Match(route, "/orders/123")
	require.True(t, result.Matched)
	assert.Equal(t, "123", result.Params["id"])

	assert.False(t, Match(route, "/orders/abc").Matched)
}

func TestRegexOverridesRoutePattern(t *testing.T) {
	// A configured regex wins even when a route pattern is also present.
	route := compile(t, "/users/{id}", false, `^/v(?P<version>\d+)/ping$`)

	result := Match(route, "/v2/ping")
	require.True(t, result.Matched)
	assert.Equal(t, "2", result.Params["version"])
	assert.False(t, Match(route, "/users/42").Matched)
}

func TestCompileRouteBadRegex(t *testing.T) {
	_, err := project.CompileRoute("", false, `(unclosed`)
	assert.Error(t, err)
}
