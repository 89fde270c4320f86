package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mockhub/mockhub/pkg/config"
)

const testSeed = `
projects:
  - slug: acme
    endpoints:
      - method: GET
        route: /widgets/{id}
        responses:
          - status: 200
            body: '{"id": "{{request.params.id}}"}'
`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	seedPath := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(seedPath, []byte(testSeed), 0o644))

	cfg := config.Default()
	cfg.SeedFile = seedPath

	srv, err := New(cfg, WithVersion("test"))
	require.NoError(t, err)
	return srv
}

func TestServerServesSeededMock(t *testing.T) {
	handler := newTestServer(t).Handler()

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/acme/widgets/7", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id": "7"}`, w.Body.String())
}

func TestServerAdminAndMetricsSurfaces(t *testing.T) {
	handler := newTestServer(t).Handler()

	// Mock request first so a log entry exists.
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/acme/widgets/1", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/api/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/api/logs", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var logs struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &logs))
	assert.Equal(t, 1, logs.Count)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "mockhub_requests_total")
}

func TestServerBoltBackedStore(t *testing.T) {
	seedPath := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(seedPath, []byte(testSeed), 0o644))

	cfg := config.Default()
	cfg.SeedFile = seedPath
	cfg.StorePath = filepath.Join(t.TempDir(), "hub.db")

	srv, err := New(cfg)
	require.NoError(t, err)
	defer func() { _ = srv.boltStore.Close() }()

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/acme/widgets/9", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id": "9"}`, w.Body.String())
}

func TestServerUnknownPathIs404(t *testing.T) {
	handler := newTestServer(t).Handler()

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/api/unknown", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
