// Package project defines the mock configuration data model: teams, projects
// (tenants), endpoints, responses and validation rules. Records are owned by
// the configuration store; the serving pipeline only reads them.
package project

import (
	"encoding/json"
	"strings"
)

// Team is a namespace owner. Team projects are addressed as
// /{team-slug}/{project-slug}/... on the mock listener.
type Team struct {
	ID       string `json:"id" yaml:"id"`
	Slug     string `json:"slug" yaml:"slug"`
	Name     string `json:"name" yaml:"name"`
	IsActive bool   `json:"isActive" yaml:"isActive"`
}

// Project is a mock tenant: a named namespace owning endpoint definitions.
// A project with an empty TeamID is a personal project addressed directly
// by its slug.
type Project struct {
	ID            string `json:"id" yaml:"id"`
	Slug          string `json:"slug" yaml:"slug"`
	Name          string `json:"name" yaml:"name"`
	TeamID        string `json:"teamId,omitempty" yaml:"teamId,omitempty"`
	TeamSlug      string `json:"teamSlug,omitempty" yaml:"teamSlug,omitempty"`
	IsActive      bool   `json:"isActive" yaml:"isActive"`
	EnableCORS    bool   `json:"enableCors" yaml:"enableCors"`
	EnableLogging bool   `json:"enableLogging" yaml:"enableLogging"`

	// DelayMinMs/DelayMaxMs are the tenant-default simulated latency range,
	// used when a matched endpoint specifies none.
	DelayMinMs int `json:"delayMinMs,omitempty" yaml:"delayMinMs,omitempty"`
	DelayMaxMs int `json:"delayMaxMs,omitempty" yaml:"delayMaxMs,omitempty"`

	// AuthSecret, when set, requires mocked traffic to carry a bearer token
	// signed with this HMAC secret. Empty means no token validation.
	AuthSecret string `json:"authSecret,omitempty" yaml:"authSecret,omitempty"`
}

// ResponseMode selects how a response is picked when an endpoint carries
// several candidates.
type ResponseMode string

// Response selection modes.
const (
	// ModeDefault returns the default-flagged response, or the lowest-order
	// one when none is flagged.
	ModeDefault ResponseMode = "default"
	// ModeSequential round-robins over the responses in order.
	ModeSequential ResponseMode = "sequential"
	// ModeRandom picks a response uniformly at random.
	ModeRandom ResponseMode = "random"
)

// Endpoint is one configured (method, route) rule within a project.
type Endpoint struct {
	ID        string `json:"id" yaml:"id"`
	ProjectID string `json:"projectId" yaml:"projectId"`
	Name      string `json:"name,omitempty" yaml:"name,omitempty"`
	Method    string `json:"method" yaml:"method"`

	// RoutePattern is the literal path template, e.g. /users/{id}. A trailing
	// /* segment together with IsWildcard makes the endpoint match any
	// remainder of the path.
	RoutePattern string `json:"route" yaml:"route"`
	IsWildcard   bool   `json:"isWildcard,omitempty" yaml:"isWildcard,omitempty"`

	// RegexPattern, when non-empty, overrides RoutePattern entirely. Named
	// capture groups become route parameters.
	RegexPattern string `json:"regexPattern,omitempty" yaml:"regexPattern,omitempty"`

	IsActive bool `json:"isActive" yaml:"isActive"`

	// Order breaks specificity ties between endpoints; lower wins.
	Order int `json:"order" yaml:"order"`

	// DelayMinMs/DelayMaxMs override the project default latency range.
	// Both zero means inherit.
	DelayMinMs int `json:"delayMinMs,omitempty" yaml:"delayMinMs,omitempty"`
	DelayMaxMs int `json:"delayMaxMs,omitempty" yaml:"delayMaxMs,omitempty"`

	ResponseMode ResponseMode `json:"responseMode,omitempty" yaml:"responseMode,omitempty"`

	Responses       []*Response       `json:"responses,omitempty" yaml:"responses,omitempty"`
	ValidationRules []*ValidationRule `json:"validationRules,omitempty" yaml:"validationRules,omitempty"`

	// compiled is the matching strategy derived from the pattern fields at
	// load time. Nil until Compile succeeds.
	compiled Route
}

// MethodMatches reports whether the endpoint's method equals the request
// method, case-insensitively.
func (e *Endpoint) MethodMatches(method string) bool {
	return strings.EqualFold(e.Method, method)
}

// SeparatorCount counts '/' separators in the route pattern. The resolver
// uses it as a specificity measure (longer routes first).
func (e *Endpoint) SeparatorCount() int {
	return strings.Count(e.RoutePattern, "/")
}

// Response is one candidate payload a matched endpoint may return.
type Response struct {
	ID         string `json:"id" yaml:"id"`
	EndpointID string `json:"endpointId" yaml:"endpointId"`
	StatusCode int    `json:"statusCode" yaml:"statusCode"`

	// Body is the response template text, rendered per request.
	Body        string `json:"body" yaml:"body"`
	ContentType string `json:"contentType,omitempty" yaml:"contentType,omitempty"`

	// Headers is a serialized JSON object of header name to value. Malformed
	// or empty data means no extra headers.
	Headers   string `json:"headers,omitempty" yaml:"headers,omitempty"`
	IsDefault bool   `json:"isDefault,omitempty" yaml:"isDefault,omitempty"`
	Order     int    `json:"order" yaml:"order"`
}

// HeaderMap decodes the stored header blob. Absent or malformed data yields
// nil rather than an error; a broken header map must never fail a request.
func (r *Response) HeaderMap() map[string]string {
	if strings.TrimSpace(r.Headers) == "" {
		return nil
	}
	var m map[string]string
	if err := json.Unmarshal([]byte(r.Headers), &m); err != nil {
		return nil
	}
	return m
}

// ParameterLocation identifies where a validated parameter lives.
type ParameterLocation string

// Validation parameter locations.
const (
	LocationQuery  ParameterLocation = "query"
	LocationHeader ParameterLocation = "header"
	LocationPath   ParameterLocation = "path"
	LocationBody   ParameterLocation = "body"
)

// ValidationRule describes an input constraint on an endpoint. The serving
// core carries rules through for downstream collaborators; it does not
// enforce them.
type ValidationRule struct {
	ID            string            `json:"id" yaml:"id"`
	EndpointID    string            `json:"endpointId" yaml:"endpointId"`
	ParameterName string            `json:"parameterName" yaml:"parameterName"`
	Location      ParameterLocation `json:"location" yaml:"location"`
	IsRequired    bool              `json:"isRequired,omitempty" yaml:"isRequired,omitempty"`
	DataType      string            `json:"dataType,omitempty" yaml:"dataType,omitempty"`
	RegexPattern  string            `json:"regexPattern,omitempty" yaml:"regexPattern,omitempty"`
	MinValue      string            `json:"minValue,omitempty" yaml:"minValue,omitempty"`
	MaxValue      string            `json:"maxValue,omitempty" yaml:"maxValue,omitempty"`
	DefaultValue  string            `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`
	ErrorMessage  string            `json:"errorMessage,omitempty" yaml:"errorMessage,omitempty"`
	IsActive      bool              `json:"isActive,omitempty" yaml:"isActive,omitempty"`
}
