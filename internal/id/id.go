// Package id is the canonical source for identifier generation.
package id

import (
	"strings"

	"github.com/google/uuid"
)

// New returns a random UUID v4 string.
func New() string {
	return uuid.New().String()
}

// RequestID returns a short per-request correlation id: the first 12 hex
// characters of a UUID without dashes.
func RequestID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
}
