// Package dispatch orchestrates the per-request mock serving pipeline:
// tenant resolution, endpoint resolution, response selection, delay
// simulation, template rendering, response emission, and request logging.
package dispatch

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/mockhub/mockhub/internal/id"
	"github.com/mockhub/mockhub/internal/rng"
	"github.com/mockhub/mockhub/pkg/delay"
	"github.com/mockhub/mockhub/pkg/logging"
	"github.com/mockhub/mockhub/pkg/metrics"
	"github.com/mockhub/mockhub/pkg/project"
	"github.com/mockhub/mockhub/pkg/requestlog"
	"github.com/mockhub/mockhub/pkg/routing"
	"github.com/mockhub/mockhub/pkg/store"
	"github.com/mockhub/mockhub/pkg/template"
)

// maxBodyBytes bounds how much request body is read for templating and
// logging.
const maxBodyBytes = 10 << 20 // 10MB

// Dispatcher serves mock traffic. Requests it cannot claim (reserved
// prefixes, static assets, unknown tenants) fall through to next.
type Dispatcher struct {
	store    store.ConfigStore
	renderer *template.Engine
	delayer  *delay.Simulator
	selector *Selector
	recorder *requestlog.Recorder
	next     http.Handler
	log      *slog.Logger
	reserved []string
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the operational logger.
func WithLogger(log *slog.Logger) Option {
	return func(d *Dispatcher) {
		if log != nil {
			d.log = log
		}
	}
}

// WithReservedPrefixes overrides the default reserved path prefixes.
func WithReservedPrefixes(prefixes []string) Option {
	return func(d *Dispatcher) { d.reserved = prefixes }
}

// WithRandSource shares one random source across rendering, delay and
// response rotation.
func WithRandSource(rnd *rng.Source) Option {
	return func(d *Dispatcher) {
		d.renderer = template.New(rnd)
		d.delayer = delay.NewSimulator(rnd)
		d.selector = NewSelector(rnd)
	}
}

// New creates a Dispatcher reading configuration from cfg, recording served
// requests through rec, and passing unclaimed requests to next.
func New(cfg store.ConfigStore, rec *requestlog.Recorder, next http.Handler, opts ...Option) *Dispatcher {
	rnd := rng.New()
	d := &Dispatcher{
		store:    cfg,
		renderer: template.New(rnd),
		delayer:  delay.NewSimulator(rnd),
		selector: NewSelector(rnd),
		recorder: rec,
		next:     next,
		log:      logging.Nop(),
		reserved: DefaultReservedPrefixes,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.renderer.SetLogger(d.log)
	return d
}

// ServeHTTP implements http.Handler. The pipeline is strictly sequential
// per request; concurrent requests share nothing but the stores, the
// notifier and the random source.
func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	if path == "/" || isReservedPath(path, d.reserved) || isStaticAsset(path) {
		d.next.ServeHTTP(w, r)
		return
	}

	segments := splitSegments(path)
	if len(segments) == 0 {
		d.next.ServeHTTP(w, r)
		return
	}

	proj, endpointPath, err := d.resolveTenant(r.Context(), segments)
	if err != nil {
		d.log.Error("tenant lookup failed", "path", path, "error", err)
		d.next.ServeHTTP(w, r)
		return
	}
	if proj == nil {
		d.next.ServeHTTP(w, r)
		return
	}

	d.serveMock(w, r, proj, endpointPath)
}

// resolveTenant interprets the leading path segments as either
// {team-slug}/{project-slug} or {project-slug} for a personal project, and
// returns the project plus the remaining endpoint path.
func (d *Dispatcher) resolveTenant(ctx context.Context, segments []string) (*project.Project, string, error) {
	team, err := d.store.GetTeamBySlug(ctx, segments[0])
	if err != nil {
		return nil, "", err
	}

	if team != nil && len(segments) >= 2 {
		proj, err := d.store.GetProjectBySlug(ctx, team.ID, segments[1])
		if err != nil || proj == nil {
			return nil, "", err
		}
		proj.TeamSlug = team.Slug
		return proj, joinSegments(segments[2:]), nil
	}

	proj, err := d.store.GetProjectBySlug(ctx, "", segments[0])
	if err != nil || proj == nil {
		return nil, "", err
	}
	return proj, joinSegments(segments[1:]), nil
}

// serveMock runs the pipeline for a resolved tenant. From here on the
// request is always answered by this handler.
func (d *Dispatcher) serveMock(w http.ResponseWriter, r *http.Request, proj *project.Project, endpointPath string) {
	start := time.Now()
	tw := &trackedWriter{ResponseWriter: w}

	// CORS preflight short-circuits before anything else.
	if r.Method == http.MethodOptions && proj.EnableCORS {
		writePreflight(tw)
		return
	}

	body := readBody(r)

	defer func() {
		if rec := recover(); rec != nil {
			d.log.Error("panic while serving mock request",
				"project", proj.Slug, "path", endpointPath, "panic", rec)
			if !tw.wrote {
				writeJSON(tw, http.StatusInternalServerError,
					map[string]string{"error": "Internal mock server error"})
			}
			d.record(r, proj, nil, endpointPath, body, tw.status, "", "internal error while constructing response", start)
		}
	}()

	if proj.AuthSecret != "" {
		if err := validateBearer(r.Header.Get("Authorization"), proj.AuthSecret); err != nil {
			writeJSON(tw, http.StatusUnauthorized, map[string]string{"error": "Invalid or missing token"})
			d.record(r, proj, nil, endpointPath, body, http.StatusUnauthorized, "", err.Error(), start)
			return
		}
	}

	endpoints, err := d.store.ListEndpoints(r.Context(), proj.ID)
	if err != nil {
		d.log.Error("endpoint lookup failed", "project", proj.Slug, "error", err)
		writeJSON(tw, http.StatusInternalServerError,
			map[string]string{"error": "Mock configuration unavailable"})
		d.record(r, proj, nil, endpointPath, body, http.StatusInternalServerError, "", err.Error(), start)
		return
	}

	resolution := routing.Resolve(endpoints, r.Method, endpointPath)
	if resolution == nil {
		d.log.Debug("no endpoint matched",
			"method", r.Method, "path", endpointPath, "project", proj.Slug)
		d.writeNotFound(tw, proj, endpointPath, endpoints)
		metrics.RecordUnmatched(proj.Slug, r.Method)
		metrics.RecordRequest(proj.Slug, r.Method, http.StatusNotFound, time.Since(start).Seconds())
		d.record(r, proj, nil, endpointPath, body, http.StatusNotFound, "", "", start)
		return
	}

	endpoint := resolution.Endpoint
	d.log.Info("mock request matched",
		"method", r.Method, "path", endpointPath,
		"project", proj.Slug, "endpoint", endpoint.Name)

	// Simulated latency; a client that goes away mid-delay aborts the
	// pipeline with nothing emitted and nothing logged.
	if err := d.delayer.Wait(r.Context(), delayRange(endpoint, proj)); err != nil {
		d.log.Debug("request cancelled during delay",
			"project", proj.Slug, "path", endpointPath, "error", err)
		return
	}

	response := d.selector.Select(endpoint)
	rendered := d.renderer.Render(response.Body, template.NewContext(r, endpointPath, body, resolution.Params))

	contentType := response.ContentType
	if contentType == "" {
		contentType = "application/json"
	}
	tw.Header().Set("Content-Type", contentType)
	for name, value := range response.HeaderMap() {
		tw.Header().Set(name, value)
	}
	if proj.EnableCORS {
		setCORSHeaders(tw.Header())
	}
	tw.WriteHeader(response.StatusCode)
	_, _ = io.WriteString(tw, rendered)

	metrics.RecordRequest(proj.Slug, r.Method, response.StatusCode, time.Since(start).Seconds())
	d.recordMatched(r, proj, endpoint, endpointPath, body, response, rendered, start)
}

// writeNotFound emits the structured 404 payload listing the project's
// active endpoints.
func (d *Dispatcher) writeNotFound(w http.ResponseWriter, proj *project.Project, path string, endpoints []*project.Endpoint) {
	type endpointRef struct {
		Method string `json:"method"`
		Route  string `json:"route"`
	}
	available := make([]endpointRef, 0, len(endpoints))
	for _, e := range endpoints {
		if e.IsActive {
			available = append(available, endpointRef{Method: strings.ToUpper(e.Method), Route: e.RoutePattern})
		}
	}

	if proj.EnableCORS {
		w.Header().Set("Access-Control-Allow-Origin", corsAllowOrigin)
	}
	writeJSON(w, http.StatusNotFound, map[string]any{
		"error":              "Endpoint not found",
		"project":            proj.Slug,
		"path":               path,
		"availableEndpoints": available,
		"timestamp":          time.Now().UTC(),
	})
}

// record builds and hands off a log entry for an unmatched or failed
// request, when the project has logging enabled.
func (d *Dispatcher) record(r *http.Request, proj *project.Project, endpoint *project.Endpoint, path string, body []byte, status int, responseBody, errMsg string, start time.Time) {
	if !proj.EnableLogging {
		return
	}
	entry := baseEntry(r, proj, path, body, start)
	entry.ResponseStatus = status
	entry.ResponseBody = responseBody
	entry.ErrorMessage = errMsg
	if endpoint != nil {
		entry.EndpointID = endpoint.ID
		entry.IsMatched = true
		entry.MatchedRoute = endpoint.RoutePattern
	}
	d.recorder.Record(context.WithoutCancel(r.Context()), entry)
}

// recordMatched builds and hands off the log entry for a served response.
func (d *Dispatcher) recordMatched(r *http.Request, proj *project.Project, endpoint *project.Endpoint, path string, body []byte, response *project.Response, rendered string, start time.Time) {
	if !proj.EnableLogging {
		return
	}
	entry := baseEntry(r, proj, path, body, start)
	entry.EndpointID = endpoint.ID
	entry.IsMatched = true
	entry.MatchedRoute = endpoint.RoutePattern
	entry.ResponseStatus = response.StatusCode
	entry.ResponseHeaders = response.Headers
	entry.ResponseBody = rendered
	d.recorder.Record(context.WithoutCancel(r.Context()), entry)
}

// baseEntry fills the request-side fields shared by all log entries.
func baseEntry(r *http.Request, proj *project.Project, path string, body []byte, start time.Time) *requestlog.Entry {
	return &requestlog.Entry{
		ID:             id.New(),
		ProjectID:      proj.ID,
		Method:         r.Method,
		Path:           path,
		QueryString:    r.URL.RawQuery,
		RequestHeaders: serializeHeaders(r.Header),
		RequestBody:    string(body),
		DurationMs:     time.Since(start).Milliseconds(),
		ClientIP:       clientIP(r.RemoteAddr),
		UserAgent:      r.UserAgent(),
		CreatedAt:      time.Now().UTC(),
	}
}

// delayRange picks the endpoint's latency override, falling back to the
// project default when the endpoint specifies none.
func delayRange(e *project.Endpoint, p *project.Project) delay.Range {
	if e.DelayMinMs > 0 || e.DelayMaxMs > 0 {
		return delay.Range{MinMs: e.DelayMinMs, MaxMs: e.DelayMaxMs}
	}
	return delay.Range{MinMs: p.DelayMinMs, MaxMs: p.DelayMaxMs}
}

// readBody captures up to maxBodyBytes of the request body and restores it
// for any later reader.
func readBody(r *http.Request) []byte {
	if r.Body == nil {
		return nil
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil
	}
	_ = r.Body.Close()
	r.Body = io.NopCloser(strings.NewReader(string(body)))
	return body
}

// serializeHeaders flattens request headers to a JSON object of first
// values for the log record.
func serializeHeaders(h http.Header) string {
	flat := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			flat[k] = v[0]
		}
	}
	data, err := json.Marshal(flat)
	if err != nil {
		return ""
	}
	return string(data)
}

// clientIP strips the port from a remote address.
func clientIP(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	_, _ = w.Write(data)
}

// trackedWriter remembers whether a response has been started, so the
// panic recovery path can guarantee exactly one write.
type trackedWriter struct {
	http.ResponseWriter
	wrote  bool
	status int
}

func (t *trackedWriter) WriteHeader(status int) {
	if t.wrote {
		return
	}
	t.wrote = true
	t.status = status
	t.ResponseWriter.WriteHeader(status)
}

func (t *trackedWriter) Write(p []byte) (int, error) {
	if !t.wrote {
		t.WriteHeader(http.StatusOK)
	}
	return t.ResponseWriter.Write(p)
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

func joinSegments(segments []string) string {
	if len(segments) == 0 {
		return "/"
	}
	return "/" + strings.Join(segments, "/")
}
