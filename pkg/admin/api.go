// Package admin exposes the management HTTP API: health, configured
// projects, recorded request logs and the live request stream. It is
// mounted under the reserved /api prefix on the same listener as mock
// traffic.
package admin

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/mockhub/mockhub/pkg/logging"
	"github.com/mockhub/mockhub/pkg/requestlog"
	"github.com/mockhub/mockhub/pkg/store"
)

// API is the management surface over the configuration and log stores.
type API struct {
	config   store.ConfigStore
	logs     requestlog.Store
	notifier *requestlog.Notifier
	log      *slog.Logger
	version  string
	started  time.Time
}

// Option configures the API.
type Option func(*API)

// WithLogger sets the operational logger.
func WithLogger(log *slog.Logger) Option {
	return func(a *API) {
		if log != nil {
			a.log = log
		}
	}
}

// WithVersion sets the version reported by the health endpoint.
func WithVersion(v string) Option {
	return func(a *API) { a.version = v }
}

// New creates the management API.
func New(cfg store.ConfigStore, logs requestlog.Store, notifier *requestlog.Notifier, opts ...Option) *API {
	a := &API{
		config:   cfg,
		logs:     logs,
		notifier: notifier,
		log:      logging.Nop(),
		version:  "dev",
		started:  time.Now(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Handler returns the API routes as an http.Handler rooted at /.
func (a *API) Handler() http.Handler {
	mux := http.NewServeMux()
	a.registerRoutes(mux)
	return mux
}

// registerRoutes sets up all API routes.
func (a *API) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", a.handleHealth)

	mux.HandleFunc("GET /projects", a.handleListProjects)

	mux.HandleFunc("GET /logs", a.handleListLogs)
	mux.HandleFunc("GET /logs/stream", a.handleStreamLogs)
	mux.HandleFunc("DELETE /logs", a.handleClearLogs)
}

// Uptime returns how long the API has been running.
func (a *API) Uptime() time.Duration {
	return time.Since(a.started)
}
