package dispatch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mockhub/mockhub/pkg/project"
	"github.com/mockhub/mockhub/pkg/requestlog"
	"github.com/mockhub/mockhub/pkg/store"
)

// fallthroughMarker identifies requests that reached the next handler.
const fallthroughMarker = "fell-through"

type fixture struct {
	mem        *store.Memory
	notifier   *requestlog.Notifier
	dispatcher *Dispatcher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mem := store.NewMemory()
	notifier := requestlog.NewNotifier()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(fallthroughMarker))
	})
	d := New(mem, requestlog.NewRecorder(mem, notifier, nil), next)
	return &fixture{mem: mem, notifier: notifier, dispatcher: d}
}

func (f *fixture) addProject(t *testing.T, p *project.Project) {
	t.Helper()
	require.NoError(t, f.mem.PutProject(p))
}

func (f *fixture) addEndpoint(t *testing.T, e *project.Endpoint) {
	t.Helper()
	require.NoError(t, f.mem.PutEndpoint(e))
}

func acmeProject() *project.Project {
	return &project.Project{
		ID:            "p-acme",
		Slug:          "acme",
		IsActive:      true,
		EnableCORS:    true,
		EnableLogging: true,
	}
}

func widgetEndpoint() *project.Endpoint {
	return &project.Endpoint{
		ID:           "e-widget",
		ProjectID:    "p-acme",
		Method:       "GET",
		RoutePattern: "/widgets/{id}",
		IsActive:     true,
		Responses: []*project.Response{{
			ID:         "r-1",
			StatusCode: 200,
			Body:       `{"id": "{{request.params.id}}"}`,
		}},
	}
}

func (f *fixture) do(method, target string, body string, header map[string]string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	r := httptest.NewRequest(method, target, reader)
	for k, v := range header {
		r.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	f.dispatcher.ServeHTTP(w, r)
	return w
}

func (f *fixture) logEntries(t *testing.T) []*requestlog.Entry {
	t.Helper()
	entries, err := f.mem.List(context.Background(), &requestlog.Filter{})
	require.NoError(t, err)
	return entries
}

func TestDispatchMatchedEndpoint(t *testing.T) {
	f := newFixture(t)
	f.addProject(t, acmeProject())
	f.addEndpoint(t, widgetEndpoint())

	w := f.do("GET", "/acme/widgets/7", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id": "7"}`, w.Body.String())
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	entries := f.logEntries(t)
	require.Len(t, entries, 1)
	e := entries[0]
	assert.True(t, e.IsMatched)
	assert.Equal(t, "/widgets/{id}", e.MatchedRoute)
	assert.Equal(t, "/widgets/7", e.Path)
	assert.Equal(t, "p-acme", e.ProjectID)
	assert.Equal(t, 200, e.ResponseStatus)
	assert.JSONEq(t, `{"id": "7"}`, e.ResponseBody)
}

func TestDispatchUnmatchedReturnsStructured404(t *testing.T) {
	f := newFixture(t)
	f.addProject(t, acmeProject())
	f.addEndpoint(t, widgetEndpoint())

	w := f.do("GET", "/acme/nonexistent", "", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	var payload struct {
		Error              string `json:"error"`
		Project            string `json:"project"`
		Path               string `json:"path"`
		AvailableEndpoints []struct {
			Method string `json:"method"`
			Route  string `json:"route"`
		} `json:"availableEndpoints"`
		Timestamp string `json:"timestamp"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, "Endpoint not found", payload.Error)
	assert.Equal(t, "acme", payload.Project)
	assert.Equal(t, "/nonexistent", payload.Path)
	require.Len(t, payload.AvailableEndpoints, 1)
	assert.Equal(t, "GET", payload.AvailableEndpoints[0].Method)
	assert.Equal(t, "/widgets/{id}", payload.AvailableEndpoints[0].Route)
	assert.NotEmpty(t, payload.Timestamp)

	entries := f.logEntries(t)
	require.Len(t, entries, 1)
	assert.False(t, entries[0].IsMatched)
	assert.Equal(t, http.StatusNotFound, entries[0].ResponseStatus)
}

func TestDispatchPreflight(t *testing.T) {
	f := newFixture(t)
	f.addProject(t, acmeProject())
	f.addEndpoint(t, widgetEndpoint())

	w := f.do("OPTIONS", "/acme/widgets/7", "", nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST, PUT, PATCH, DELETE, OPTIONS, HEAD", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "86400", w.Header().Get("Access-Control-Max-Age"))

	// Preflights are not logged.
	assert.Empty(t, f.logEntries(t))
}

func TestDispatchUnknownTenantFallsThrough(t *testing.T) {
	f := newFixture(t)
	f.addProject(t, acmeProject())

	w := f.do("GET", "/nobody/widgets/7", "", nil)
	assert.Equal(t, fallthroughMarker, w.Body.String())
	assert.Empty(t, f.logEntries(t))
}

func TestDispatchReservedAndStaticBypass(t *testing.T) {
	f := newFixture(t)
	f.addProject(t, acmeProject())
	f.addEndpoint(t, widgetEndpoint())

	for _, target := range []string{"/", "/api/logs", "/metrics", "/acme/logo.png", "/favicon.ico"} {
		w := f.do("GET", target, "", nil)
		assert.Equal(t, fallthroughMarker, w.Body.String(), target)
	}

	// .json paths are legitimate mock routes, not static assets.
	f.addEndpoint(t, &project.Endpoint{
		ID: "e-json", ProjectID: "p-acme", Method: "GET",
		RoutePattern: "/data.json", IsActive: true,
		Responses: []*project.Response{{StatusCode: 200, Body: `{}`}},
	})
	w := f.do("GET", "/acme/data.json", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDispatchTeamProject(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.mem.PutTeam(&project.Team{ID: "t-blue", Slug: "blue", IsActive: true}))
	f.addProject(t, &project.Project{
		ID: "p-api", Slug: "api", TeamID: "t-blue", IsActive: true, EnableLogging: true,
	})
	f.addEndpoint(t, &project.Endpoint{
		ID: "e-ping", ProjectID: "p-api", Method: "GET",
		RoutePattern: "/ping", IsActive: true,
		Responses: []*project.Response{{StatusCode: 200, Body: `pong`, ContentType: "text/plain"}},
	})

	w := f.do("GET", "/blue/api/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
	assert.Equal(t, "text/plain", w.Header().Get("Content-Type"))

	// A matching team slug removes the personal-project fallback.
	w = f.do("GET", "/blue/missing/ping", "", nil)
	assert.Equal(t, fallthroughMarker, w.Body.String())
}

func TestDispatchTemplateUsesRequestBody(t *testing.T) {
	f := newFixture(t)
	f.addProject(t, acmeProject())
	f.addEndpoint(t, &project.Endpoint{
		ID: "e-echo", ProjectID: "p-acme", Method: "POST",
		RoutePattern: "/echo", IsActive: true,
		Responses: []*project.Response{{
			StatusCode: 201,
			Body:       `{"hello": "{{request.body.name}}"}`,
		}},
	})

	w := f.do("POST", "/acme/echo", `{"name": "Ada"}`, map[string]string{"Content-Type": "application/json"})
	assert.Equal(t, 201, w.Code)
	assert.JSONEq(t, `{"hello": "Ada"}`, w.Body.String())
}

func TestDispatchResponseHeaders(t *testing.T) {
	f := newFixture(t)
	f.addProject(t, acmeProject())
	f.addEndpoint(t, &project.Endpoint{
		ID: "e-h", ProjectID: "p-acme", Method: "GET",
		RoutePattern: "/h", IsActive: true,
		Responses: []*project.Response{{
			StatusCode: 200,
			Body:       "ok",
			Headers:    `{"X-Custom": "yes"}`,
		}},
	})

	w := f.do("GET", "/acme/h", "", nil)
	assert.Equal(t, "yes", w.Header().Get("X-Custom"))
}

func TestDispatchAuthRequired(t *testing.T) {
	f := newFixture(t)
	p := acmeProject()
	p.AuthSecret = "sekrit"
	f.addProject(t, p)
	f.addEndpoint(t, widgetEndpoint())

	w := f.do("GET", "/acme/widgets/7", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "tester"}).
		SignedString([]byte("sekrit"))
	require.NoError(t, err)

	w = f.do("GET", "/acme/widgets/7", "", map[string]string{"Authorization": "Bearer " + token})
	assert.Equal(t, http.StatusOK, w.Code)

	// Wrong secret fails signature verification.
	bad, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{}).
		SignedString([]byte("other"))
	require.NoError(t, err)
	w = f.do("GET", "/acme/widgets/7", "", map[string]string{"Authorization": "Bearer " + bad})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDispatchLoggingDisabled(t *testing.T) {
	f := newFixture(t)
	p := acmeProject()
	p.EnableLogging = false
	f.addProject(t, p)
	f.addEndpoint(t, widgetEndpoint())

	w := f.do("GET", "/acme/widgets/7", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, f.logEntries(t))
}

func TestDispatchNotifiesSubscribers(t *testing.T) {
	f := newFixture(t)
	f.addProject(t, acmeProject())
	f.addEndpoint(t, widgetEndpoint())

	ch, cancel := f.notifier.Subscribe()
	defer cancel()

	f.do("GET", "/acme/widgets/7", "", nil)

	select {
	case notif := <-ch:
		assert.Equal(t, "GET", notif.Method)
		assert.Equal(t, "/widgets/7", notif.Path)
		assert.True(t, notif.IsMatched)
	default:
		t.Fatal("expected a notification")
	}
}

func TestDispatchInactiveProjectFallsThrough(t *testing.T) {
	f := newFixture(t)
	p := acmeProject()
	p.IsActive = false
	f.addProject(t, p)
	f.addEndpoint(t, widgetEndpoint())

	w := f.do("GET", "/acme/widgets/7", "", nil)
	assert.Equal(t, fallthroughMarker, w.Body.String())
}

func TestDispatchFallbackResponseBody(t *testing.T) {
	f := newFixture(t)
	f.addProject(t, acmeProject())
	f.addEndpoint(t, &project.Endpoint{
		ID: "e-empty", ProjectID: "p-acme", Method: "GET",
		RoutePattern: "/empty", IsActive: true,
	})

	w := f.do("GET", "/acme/empty", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message": "No response configured"}`, w.Body.String())
}

func TestDispatchTemplatePathExcludesTenantPrefix(t *testing.T) {
	f := newFixture(t)
	f.addProject(t, acmeProject())
	f.addEndpoint(t, &project.Endpoint{
		ID:           "e-path",
		ProjectID:    "p-acme",
		Method:       "GET",
		RoutePattern: "/pathcheck",
		IsActive:     true,
		Responses: []*project.Response{{
			ID:         "r-path",
			StatusCode: 200,
			Body:       `{{request.path}}`,
		}},
	})

	w := f.do("GET", "/acme/pathcheck", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/pathcheck", w.Body.String())
}

func TestDispatchCancelledDuringDelayEmitsNothing(t *testing.T) {
	f := newFixture(t)
	f.addProject(t, acmeProject())
	f.addEndpoint(t, &project.Endpoint{
		ID:           "e-slow",
		ProjectID:    "p-acme",
		Method:       "GET",
		RoutePattern: "/slow",
		IsActive:     true,
		DelayMinMs:   5000,
		DelayMaxMs:   5000,
		Responses: []*project.Response{{
			ID:         "r-slow",
			StatusCode: 200,
			Body:       `{"slow": true}`,
		}},
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := httptest.NewRequest("GET", "/acme/slow", nil).WithContext(ctx)
	w := httptest.NewRecorder()
	f.dispatcher.ServeHTTP(w, r)

	assert.Zero(t, w.Body.Len())
	assert.Empty(t, f.logEntries(t))
}
