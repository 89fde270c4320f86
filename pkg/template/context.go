package template

import (
	"encoding/json"
	"net/http"
	"strings"
)

// Context holds the per-request data a template can reference. It is built
// once per render and discarded with the request.
type Context struct {
	Method  string
	Path    string
	Query   map[string][]string
	Headers http.Header

	// Params are the route parameters extracted by the matcher.
	Params map[string]string

	// Body is the parsed JSON request body, or nil when the body is absent
	// or not JSON.
	Body any

	// RawBody is the body exactly as received.
	RawBody string
}

// NewContext builds a template context from an HTTP request, the path the
// matcher resolved (tenant prefix already stripped), the captured body
// bytes, and the extracted route parameters.
func NewContext(r *http.Request, path string, body []byte, params map[string]string) *Context {
	ctx := &Context{
		Method:  r.Method,
		Path:    path,
		Query:   r.URL.Query(),
		Headers: r.Header,
		Params:  params,
		RawBody: string(body),
	}
	if ctx.Params == nil {
		ctx.Params = map[string]string{}
	}

	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/json") && len(body) > 0 {
		var parsed any
		if err := json.Unmarshal(body, &parsed); err == nil {
			ctx.Body = parsed
		}
	}
	return ctx
}

// queryValue returns the first value for a query key.
func (c *Context) queryValue(key string) (string, bool) {
	if vals, ok := c.Query[key]; ok && len(vals) > 0 {
		return vals[0], true
	}
	return "", false
}

// headerValue returns the first value for a header key, canonicalized.
func (c *Context) headerValue(key string) (string, bool) {
	if c.Headers == nil {
		return "", false
	}
	if vals, ok := c.Headers[http.CanonicalHeaderKey(key)]; ok && len(vals) > 0 {
		return vals[0], true
	}
	return "", false
}

// flatQuery collapses the query map to first values for expression
// evaluation.
func (c *Context) flatQuery() map[string]string {
	m := make(map[string]string, len(c.Query))
	for k, v := range c.Query {
		if len(v) > 0 {
			m[k] = v[0]
		}
	}
	return m
}

// flatHeaders collapses the header map to first values for expression
// evaluation.
func (c *Context) flatHeaders() map[string]string {
	m := make(map[string]string, len(c.Headers))
	for k, v := range c.Headers {
		if len(v) > 0 {
			m[k] = v[0]
		}
	}
	return m
}
