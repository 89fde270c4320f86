package admin

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/mockhub/mockhub/pkg/requestlog"
)

// ErrorResponse is the error envelope returned by all API failures.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// HealthResponse reports server liveness.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

// LogListResponse is a page of recorded request log entries, newest first.
// Total is the number of stored entries before filtering.
type LogListResponse struct {
	Logs   []*requestlog.Entry `json:"logs"`
	Count  int                 `json:"count"`
	Total  int                 `json:"total"`
	Limit  int                 `json:"limit"`
	Offset int                 `json:"offset"`
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, errCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Error:   errCode,
		Message: message,
	})
}

// handleHealth handles GET /health.
func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: a.version,
		Uptime:  a.Uptime().String(),
	})
}

// handleListProjects handles GET /projects.
func (a *API) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := a.config.ListProjects(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"projects": projects,
		"count":    len(projects),
	})
}

// handleListLogs handles GET /logs. Filters: project (slug), method,
// matched (true/false), limit, offset.
func (a *API) handleListLogs(w http.ResponseWriter, r *http.Request) {
	filter, err := a.parseLogFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_filter", err.Error())
		return
	}

	entries, err := a.logs.List(r.Context(), &filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	total, err := a.logs.Count(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	if entries == nil {
		entries = []*requestlog.Entry{}
	}

	writeJSON(w, http.StatusOK, LogListResponse{
		Logs:   entries,
		Count:  len(entries),
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	})
}

// handleClearLogs handles DELETE /logs.
func (a *API) handleClearLogs(w http.ResponseWriter, r *http.Request) {
	if err := a.logs.Clear(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	a.log.Info("request logs cleared")
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logs cleared"})
}

// parseLogFilter builds a log filter from query parameters. A project
// filter is given by slug and resolved to its ID.
func (a *API) parseLogFilter(r *http.Request) (requestlog.Filter, error) {
	q := r.URL.Query()
	filter := requestlog.Filter{
		Method: q.Get("method"),
	}

	if slug := q.Get("project"); slug != "" {
		projects, err := a.config.ListProjects(r.Context())
		if err != nil {
			return filter, err
		}
		// An unknown slug filters to nothing rather than erroring.
		filter.ProjectID = "\x00unknown"
		for _, p := range projects {
			if p.Slug == slug {
				filter.ProjectID = p.ID
				break
			}
		}
	}

	if v := q.Get("matched"); v != "" {
		matched, err := strconv.ParseBool(v)
		if err != nil {
			return filter, err
		}
		filter.Matched = &matched
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return filter, err
		}
		filter.Limit = limit
	}
	if v := q.Get("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil {
			return filter, err
		}
		filter.Offset = offset
	}
	return filter, nil
}
