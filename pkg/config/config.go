// Package config loads and validates the server configuration and the seed
// file of mock definitions. Both are YAML (JSON also accepted for seeds,
// detected by extension).
package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Common errors for configuration loading.
var (
	ErrFileNotFound = errors.New("configuration file not found")
	ErrInvalidYAML  = errors.New("invalid YAML syntax")
	ErrInvalidJSON  = errors.New("invalid JSON syntax")
	ErrEmptyFile    = errors.New("configuration file is empty")
)

// Config is the top-level server configuration.
type Config struct {
	// Listen is the address the combined mock and admin listener binds to.
	Listen string `yaml:"listen" json:"listen"`

	// StorePath is the bbolt database file. Empty selects the in-memory
	// store; configuration then lives only as long as the process.
	StorePath string `yaml:"storePath,omitempty" json:"storePath,omitempty"`

	// SeedFile is an optional mock-definition file loaded at startup.
	SeedFile string `yaml:"seedFile,omitempty" json:"seedFile,omitempty"`

	// ReservedPrefixes overrides the built-in list of path prefixes that
	// never resolve to mock tenants.
	ReservedPrefixes []string `yaml:"reservedPrefixes,omitempty" json:"reservedPrefixes,omitempty"`

	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// LoggingConfig controls operational log output.
type LoggingConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Listen: ":4520",
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// slugPattern constrains team and project slugs: lowercase alphanumerics
// and hyphens, starting with an alphanumeric.
var slugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// ValidSlug reports whether s is usable as a tenant path segment.
func ValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}

// Validate checks the configuration for basic sanity.
func (c *Config) Validate() error {
	if c.Listen == "" {
		return errors.New("listen address is required")
	}
	for _, p := range c.ReservedPrefixes {
		if !strings.HasPrefix(p, "/") {
			return fmt.Errorf("reserved prefix %q must start with /", p)
		}
	}
	return nil
}
