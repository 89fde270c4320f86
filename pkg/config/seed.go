package config

import (
	"fmt"
	"strings"

	"github.com/mockhub/mockhub/internal/id"
	"github.com/mockhub/mockhub/pkg/project"
)

// Seed is a declarative set of mock definitions loaded at startup. Seed
// types mirror the runtime model but stay loader-friendly: omitted
// activity flags default to active, omitted IDs are generated.
type Seed struct {
	Teams    []*SeedTeam    `yaml:"teams,omitempty" json:"teams,omitempty"`
	Projects []*SeedProject `yaml:"projects,omitempty" json:"projects,omitempty"`
}

// SeedTeam declares a team namespace.
type SeedTeam struct {
	ID     string `yaml:"id,omitempty" json:"id,omitempty"`
	Slug   string `yaml:"slug" json:"slug"`
	Name   string `yaml:"name,omitempty" json:"name,omitempty"`
	Active *bool  `yaml:"active,omitempty" json:"active,omitempty"`
}

// SeedProject declares a mock tenant. TeamSlug links it to a declared
// team; empty makes it a personal project.
type SeedProject struct {
	ID            string          `yaml:"id,omitempty" json:"id,omitempty"`
	Slug          string          `yaml:"slug" json:"slug"`
	Name          string          `yaml:"name,omitempty" json:"name,omitempty"`
	TeamSlug      string          `yaml:"team,omitempty" json:"team,omitempty"`
	Active        *bool           `yaml:"active,omitempty" json:"active,omitempty"`
	EnableCORS    *bool           `yaml:"cors,omitempty" json:"cors,omitempty"`
	EnableLogging *bool           `yaml:"logging,omitempty" json:"logging,omitempty"`
	DelayMinMs    int             `yaml:"delayMinMs,omitempty" json:"delayMinMs,omitempty"`
	DelayMaxMs    int             `yaml:"delayMaxMs,omitempty" json:"delayMaxMs,omitempty"`
	AuthSecret    string          `yaml:"authSecret,omitempty" json:"authSecret,omitempty"`
	Endpoints     []*SeedEndpoint `yaml:"endpoints,omitempty" json:"endpoints,omitempty"`
}

// SeedEndpoint declares one (method, route) rule.
type SeedEndpoint struct {
	ID           string          `yaml:"id,omitempty" json:"id,omitempty"`
	Name         string          `yaml:"name,omitempty" json:"name,omitempty"`
	Method       string          `yaml:"method" json:"method"`
	Route        string          `yaml:"route" json:"route"`
	Wildcard     bool            `yaml:"wildcard,omitempty" json:"wildcard,omitempty"`
	RegexPattern string          `yaml:"regex,omitempty" json:"regex,omitempty"`
	Active       *bool           `yaml:"active,omitempty" json:"active,omitempty"`
	Order        int             `yaml:"order,omitempty" json:"order,omitempty"`
	DelayMinMs   int             `yaml:"delayMinMs,omitempty" json:"delayMinMs,omitempty"`
	DelayMaxMs   int             `yaml:"delayMaxMs,omitempty" json:"delayMaxMs,omitempty"`
	ResponseMode string          `yaml:"responseMode,omitempty" json:"responseMode,omitempty"`
	Responses    []*SeedResponse `yaml:"responses,omitempty" json:"responses,omitempty"`
}

// SeedResponse declares one candidate response.
type SeedResponse struct {
	ID          string            `yaml:"id,omitempty" json:"id,omitempty"`
	StatusCode  int               `yaml:"status,omitempty" json:"status,omitempty"`
	Body        string            `yaml:"body,omitempty" json:"body,omitempty"`
	ContentType string            `yaml:"contentType,omitempty" json:"contentType,omitempty"`
	Headers     map[string]string `yaml:"headers,omitempty" json:"headers,omitempty"`
	Default     bool              `yaml:"default,omitempty" json:"default,omitempty"`
	Order       int               `yaml:"order,omitempty" json:"order,omitempty"`
}

// Validate checks slugs, method/route presence and team references.
func (s *Seed) Validate() error {
	teamSlugs := make(map[string]bool, len(s.Teams))
	for i, t := range s.Teams {
		if !ValidSlug(t.Slug) {
			return fmt.Errorf("teams[%d]: invalid slug %q", i, t.Slug)
		}
		if teamSlugs[t.Slug] {
			return fmt.Errorf("teams[%d]: duplicate slug %q", i, t.Slug)
		}
		teamSlugs[t.Slug] = true
	}

	for i, p := range s.Projects {
		if !ValidSlug(p.Slug) {
			return fmt.Errorf("projects[%d]: invalid slug %q", i, p.Slug)
		}
		if p.TeamSlug != "" && !teamSlugs[p.TeamSlug] {
			return fmt.Errorf("projects[%d]: unknown team %q", i, p.TeamSlug)
		}
		for j, e := range p.Endpoints {
			if e.Method == "" {
				return fmt.Errorf("projects[%d].endpoints[%d]: method is required", i, j)
			}
			if e.Route == "" && e.RegexPattern == "" {
				return fmt.Errorf("projects[%d].endpoints[%d]: route or regex is required", i, j)
			}
			if e.Route != "" && !strings.HasPrefix(e.Route, "/") {
				return fmt.Errorf("projects[%d].endpoints[%d]: route %q must start with /", i, j, e.Route)
			}
			switch project.ResponseMode(e.ResponseMode) {
			case "", project.ModeDefault, project.ModeSequential, project.ModeRandom:
			default:
				return fmt.Errorf("projects[%d].endpoints[%d]: unknown response mode %q", i, j, e.ResponseMode)
			}
		}
	}
	return nil
}

// Seeder is the write surface a seed populates.
type Seeder interface {
	PutTeam(t *project.Team) error
	PutProject(p *project.Project) error
	PutEndpoint(e *project.Endpoint) error
}

// Apply converts the seed to runtime records and writes them to dst.
// Missing IDs are generated; endpoint routes are compiled by the store.
func (s *Seed) Apply(dst Seeder) error {
	teamIDs := make(map[string]string, len(s.Teams))
	for _, t := range s.Teams {
		team := &project.Team{
			ID:       orGenerate(t.ID),
			Slug:     t.Slug,
			Name:     t.Name,
			IsActive: boolOr(t.Active, true),
		}
		teamIDs[team.Slug] = team.ID
		if err := dst.PutTeam(team); err != nil {
			return fmt.Errorf("seed team %s: %w", team.Slug, err)
		}
	}

	for _, p := range s.Projects {
		proj := &project.Project{
			ID:            orGenerate(p.ID),
			Slug:          p.Slug,
			Name:          p.Name,
			TeamID:        teamIDs[p.TeamSlug],
			TeamSlug:      p.TeamSlug,
			IsActive:      boolOr(p.Active, true),
			EnableCORS:    boolOr(p.EnableCORS, true),
			EnableLogging: boolOr(p.EnableLogging, true),
			DelayMinMs:    p.DelayMinMs,
			DelayMaxMs:    p.DelayMaxMs,
			AuthSecret:    p.AuthSecret,
		}
		if err := dst.PutProject(proj); err != nil {
			return fmt.Errorf("seed project %s: %w", proj.Slug, err)
		}

		for _, e := range p.Endpoints {
			endpoint, err := e.toEndpoint(proj.ID)
			if err != nil {
				return fmt.Errorf("seed project %s: %w", proj.Slug, err)
			}
			if err := dst.PutEndpoint(endpoint); err != nil {
				return fmt.Errorf("seed endpoint %s %s: %w", endpoint.Method, endpoint.RoutePattern, err)
			}
		}
	}
	return nil
}

func (e *SeedEndpoint) toEndpoint(projectID string) (*project.Endpoint, error) {
	endpoint := &project.Endpoint{
		ID:           orGenerate(e.ID),
		ProjectID:    projectID,
		Name:         e.Name,
		Method:       strings.ToUpper(e.Method),
		RoutePattern: e.Route,
		IsWildcard:   e.Wildcard || strings.HasSuffix(e.Route, "/*"),
		RegexPattern: e.RegexPattern,
		IsActive:     boolOr(e.Active, true),
		Order:        e.Order,
		DelayMinMs:   e.DelayMinMs,
		DelayMaxMs:   e.DelayMaxMs,
		ResponseMode: project.ResponseMode(e.ResponseMode),
	}

	for i, r := range e.Responses {
		resp := &project.Response{
			ID:          orGenerate(r.ID),
			EndpointID:  endpoint.ID,
			StatusCode:  r.StatusCode,
			Body:        r.Body,
			ContentType: r.ContentType,
			IsDefault:   r.Default,
			Order:       r.Order,
		}
		if resp.StatusCode == 0 {
			resp.StatusCode = 200
		}
		if resp.Order == 0 {
			resp.Order = i
		}
		if len(r.Headers) > 0 {
			blob, err := encodeHeaders(r.Headers)
			if err != nil {
				return nil, fmt.Errorf("response %d: %w", i, err)
			}
			resp.Headers = blob
		}
		endpoint.Responses = append(endpoint.Responses, resp)
	}
	return endpoint, nil
}

func orGenerate(v string) string {
	if v != "" {
		return v
	}
	return id.New()
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
