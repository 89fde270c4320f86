package admin

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/mockhub/mockhub/pkg/metrics"
)

// keepaliveInterval spaces SSE comment lines so idle connections survive
// intermediaries that time out quiet streams.
const keepaliveInterval = 15 * time.Second

// handleStreamLogs handles GET /logs/stream: a Server-Sent Events feed of
// request notifications, one "request" event per served mock request.
func (a *API) handleStreamLogs(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "sse_error", "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := a.notifier.Subscribe()
	defer cancel()
	metrics.LogSubscribers.Inc()
	defer metrics.LogSubscribers.Dec()

	a.log.Debug("log stream subscriber connected", "remote", r.RemoteAddr)

	_, _ = fmt.Fprint(w, "event: connected\ndata: {\"message\": \"Connected to request stream\"}\n\n")
	flusher.Flush()

	ticker := time.NewTicker(keepaliveInterval)
	defer ticker.Stop()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			a.log.Debug("log stream subscriber disconnected", "remote", r.RemoteAddr)
			return
		case <-ticker.C:
			_, _ = fmt.Fprint(w, ": keepalive\n\n")
			flusher.Flush()
		case notif, open := <-ch:
			if !open {
				return
			}
			data, err := json.Marshal(notif)
			if err != nil {
				continue
			}
			_, _ = fmt.Fprintf(w, "event: request\ndata: %s\n\n", data)
			flusher.Flush()
		}
	}
}
