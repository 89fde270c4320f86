package dispatch

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Errors returned by bearer-token validation.
var (
	errMissingToken = errors.New("missing bearer token")
	errInvalidToken = errors.New("invalid bearer token")
)

// validateBearer checks the Authorization header against a project's HMAC
// secret. The token itself is externally supplied; only signature and
// standard time claims are verified here.
func validateBearer(authorization, secret string) error {
	const prefix = "Bearer "
	if !strings.HasPrefix(authorization, prefix) {
		return errMissingToken
	}
	raw := strings.TrimSpace(authorization[len(prefix):])
	if raw == "" {
		return errMissingToken
	}

	_, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return fmt.Errorf("%w: %w", errInvalidToken, err)
	}
	return nil
}
