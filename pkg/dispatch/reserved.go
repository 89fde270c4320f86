package dispatch

import "strings"

// DefaultReservedPrefixes are path prefixes that always bypass the mock
// pipeline: the management API and UI, static assets, and internal paths.
var DefaultReservedPrefixes = []string{
	"/api",
	"/account",
	"/admin",
	"/assets",
	"/css",
	"/favicon",
	"/import-export",
	"/js",
	"/lib",
	"/logs",
	"/metrics",
	"/mockhub",
	"/projects",
	"/servers",
	"/settings",
	"/setup",
	"/static",
	"/teams",
	"/variables",
}

// isReservedPath reports whether the path equals or nests under a reserved
// prefix, case-insensitively.
func isReservedPath(path string, reserved []string) bool {
	lower := strings.ToLower(path)
	for _, prefix := range reserved {
		if lower == prefix || strings.HasPrefix(lower, prefix+"/") {
			return true
		}
	}
	return false
}

// isStaticAsset reports whether the path looks like a static file request.
// Paths with an extension pass through to the host, except .json and .xml
// which are legitimate mock routes.
func isStaticAsset(path string) bool {
	if !strings.Contains(path, ".") {
		return false
	}
	return !strings.HasSuffix(path, ".json") && !strings.HasSuffix(path, ".xml")
}
