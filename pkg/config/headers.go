package config

import (
	"encoding/json"
	"fmt"
)

// encodeHeaders serializes a header map to the JSON blob form the response
// model stores.
func encodeHeaders(h map[string]string) (string, error) {
	data, err := json.Marshal(h)
	if err != nil {
		return "", fmt.Errorf("encode headers: %w", err)
	}
	return string(data), nil
}
