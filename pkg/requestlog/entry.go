// Package requestlog records served mock requests and fans out live
// notifications to subscribers.
package requestlog

import "time"

// Entry is the persisted record of one served request. It is built once
// per request and immutable after hand-off.
type Entry struct {
	// ID uniquely identifies the log entry.
	ID string `json:"id"`

	// ProjectID is the tenant that served the request.
	ProjectID string `json:"projectId"`

	// EndpointID is the matched endpoint, empty when nothing matched.
	EndpointID string `json:"endpointId,omitempty"`

	Method      string `json:"method"`
	Path        string `json:"path"`
	QueryString string `json:"queryString,omitempty"`

	// RequestHeaders is the serialized header map (JSON object of
	// name to first value).
	RequestHeaders string `json:"requestHeaders,omitempty"`
	RequestBody    string `json:"requestBody,omitempty"`

	ResponseStatus  int    `json:"responseStatus"`
	ResponseHeaders string `json:"responseHeaders,omitempty"`
	ResponseBody    string `json:"responseBody,omitempty"`

	// DurationMs is the total serving time in milliseconds.
	DurationMs int64 `json:"durationMs"`

	ClientIP  string `json:"clientIp,omitempty"`
	UserAgent string `json:"userAgent,omitempty"`

	// IsMatched reports whether an endpoint served the request.
	IsMatched bool `json:"isMatched"`

	// MatchedRoute is the matched endpoint's route pattern.
	MatchedRoute string `json:"matchedRoute,omitempty"`

	// ErrorMessage carries an internal failure description, if any.
	ErrorMessage string `json:"errorMessage,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// Notification is the reduced payload broadcast to live subscribers when a
// request is logged.
type Notification struct {
	ProjectID    string    `json:"projectId"`
	EndpointID   string    `json:"endpointId,omitempty"`
	Method       string    `json:"method"`
	Path         string    `json:"path"`
	QueryString  string    `json:"queryString,omitempty"`
	StatusCode   int       `json:"statusCode"`
	DurationMs   int64     `json:"durationMs"`
	IsMatched    bool      `json:"isMatched"`
	ClientIP     string    `json:"clientIp,omitempty"`
	ErrorMessage string    `json:"errorMessage,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// NotificationFromEntry reduces a log entry to its broadcast form.
func NotificationFromEntry(e *Entry) Notification {
	return Notification{
		ProjectID:    e.ProjectID,
		EndpointID:   e.EndpointID,
		Method:       e.Method,
		Path:         e.Path,
		QueryString:  e.QueryString,
		StatusCode:   e.ResponseStatus,
		DurationMs:   e.DurationMs,
		IsMatched:    e.IsMatched,
		ClientIP:     e.ClientIP,
		ErrorMessage: e.ErrorMessage,
		Timestamp:    e.CreatedAt,
	}
}
