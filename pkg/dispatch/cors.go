package dispatch

import "net/http"

// CORS header values emitted for CORS-enabled projects.
const (
	corsAllowOrigin  = "*"
	corsAllowMethods = "GET, POST, PUT, PATCH, DELETE, OPTIONS, HEAD"
	corsAllowHeaders = "*"
	corsMaxAge       = "86400"
)

// setCORSHeaders attaches the permissive CORS headers to a mock response.
func setCORSHeaders(h http.Header) {
	h.Set("Access-Control-Allow-Origin", corsAllowOrigin)
	h.Set("Access-Control-Allow-Methods", corsAllowMethods)
	h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
}

// writePreflight answers an OPTIONS request against a CORS-enabled project
// with a fixed 204, bypassing endpoint resolution entirely.
func writePreflight(w http.ResponseWriter) {
	setCORSHeaders(w.Header())
	w.Header().Set("Access-Control-Max-Age", corsMaxAge)
	w.WriteHeader(http.StatusNoContent)
}
