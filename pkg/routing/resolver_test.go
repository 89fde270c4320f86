package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mockhub/mockhub/pkg/project"
)

func newEndpoint(id, method, route string, wildcard bool, order int) *project.Endpoint {
	e := &project.Endpoint{
		ID:           id,
		Method:       method,
		RoutePattern: route,
		IsWildcard:   wildcard,
		IsActive:     true,
		Order:        order,
	}
	_ = e.Compile()
	return e
}

func TestResolvePrefersNonWildcard(t *testing.T) {
	endpoints := []*project.Endpoint{
		newEndpoint("wild", "GET", "/users/*", true, 0),
		newEndpoint("exact", "GET", "/users/{id}", false, 0),
	}

	res := Resolve(endpoints, "GET", "/users/42")
	require.NotNil(t, res)
	assert.Equal(t, "exact", res.Endpoint.ID)
	assert.Equal(t, "42", res.Params["id"])
}

func TestResolvePrefersLongerRoute(t *testing.T) {
	endpoints := []*project.Endpoint{
		newEndpoint("short", "GET", "/users/{id}", false, 0),
		newEndpoint("long", "GET", "/users/{id}/posts/{postId}", false, 0),
	}

	res := Resolve(endpoints, "GET", "/users/1/posts/2")
	require.NotNil(t, res)
	assert.Equal(t, "long", res.Endpoint.ID)
	assert.Equal(t, map[string]string{"id": "1", "postId": "2"}, res.Params)
}

func TestResolveOrderBreaksTies(t *testing.T) {
	endpoints := []*project.Endpoint{
		newEndpoint("second", "GET", "/ping", false, 5),
		newEndpoint("first", "GET", "/ping", false, 1),
	}

	res := Resolve(endpoints, "GET", "/ping")
	require.NotNil(t, res)
	assert.Equal(t, "first", res.Endpoint.ID)
}

func TestResolveMethodCaseInsensitive(t *testing.T) {
	endpoints := []*project.Endpoint{
		newEndpoint("e", "get", "/ping", false, 0),
	}

	require.NotNil(t, Resolve(endpoints, "GET", "/ping"))
	assert.Nil(t, Resolve(endpoints, "POST", "/ping"))
}

func TestResolveSkipsInactive(t *testing.T) {
	inactive := newEndpoint("off", "GET", "/ping", false, 0)
	inactive.IsActive = false

	assert.Nil(t, Resolve([]*project.Endpoint{inactive}, "GET", "/ping"))
}

func TestResolveFallsThroughToWildcard(t *testing.T) {
	endpoints := []*project.Endpoint{
		newEndpoint("exact", "GET", "/users/{id}", false, 0),
		newEndpoint("wild", "GET", "/users/*", true, 0),
	}

	// Deeper path only the wildcard can claim.
	res := Resolve(endpoints, "GET", "/users/1/avatar/large")
	require.NotNil(t, res)
	assert.Equal(t, "wild", res.Endpoint.ID)
}

func TestResolveNoMatch(t *testing.T) {
	endpoints := []*project.Endpoint{
		newEndpoint("e", "GET", "/users", false, 0),
	}
	assert.Nil(t, Resolve(endpoints, "GET", "/orders"))
}

func TestResolveDeterministic(t *testing.T) {
	endpoints := []*project.Endpoint{
		newEndpoint("a", "GET", "/x/{p}", false, 2),
		newEndpoint("b", "GET", "/x/{p}", false, 1),
		newEndpoint("c", "GET", "/x/*", true, 0),
	}

	for i := 0; i < 10; i++ {
		res := Resolve(endpoints, "GET", "/x/1")
		require.NotNil(t, res)
		assert.Equal(t, "b", res.Endpoint.ID)
	}
}
