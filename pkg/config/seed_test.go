package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mockhub/mockhub/pkg/project"
)

const sampleSeed = `
teams:
  - slug: blue
    name: Blue Team
projects:
  - slug: acme
    endpoints:
      - method: get
        route: /widgets/{id}
        responses:
          - status: 200
            body: '{"id": "{{request.params.id}}"}'
            headers:
              X-Mock: "1"
  - slug: api
    team: blue
    cors: false
    endpoints:
      - method: GET
        route: /files/*
        wildcard: true
`

func loadSampleSeed(t *testing.T) *Seed {
	t.Helper()
	path := writeFile(t, "seed.yaml", sampleSeed)
	seed, err := LoadSeedFile(path)
	require.NoError(t, err)
	return seed
}

// collectingSeeder records applied records for assertions.
type collectingSeeder struct {
	teams     []*project.Team
	projects  []*project.Project
	endpoints []*project.Endpoint
}

func (c *collectingSeeder) PutTeam(t *project.Team) error         { c.teams = append(c.teams, t); return nil }
func (c *collectingSeeder) PutProject(p *project.Project) error   { c.projects = append(c.projects, p); return nil }
func (c *collectingSeeder) PutEndpoint(e *project.Endpoint) error { c.endpoints = append(c.endpoints, e); return nil }

func TestSeedApply(t *testing.T) {
	seed := loadSampleSeed(t)
	var dst collectingSeeder
	require.NoError(t, seed.Apply(&dst))

	require.Len(t, dst.teams, 1)
	team := dst.teams[0]
	assert.NotEmpty(t, team.ID)
	assert.True(t, team.IsActive)

	require.Len(t, dst.projects, 2)
	acme, api := dst.projects[0], dst.projects[1]
	assert.Empty(t, acme.TeamID)
	assert.True(t, acme.EnableCORS)
	assert.True(t, acme.EnableLogging)
	assert.Equal(t, team.ID, api.TeamID)
	assert.False(t, api.EnableCORS)

	require.Len(t, dst.endpoints, 2)
	widget := dst.endpoints[0]
	assert.Equal(t, "GET", widget.Method)
	assert.Equal(t, acme.ID, widget.ProjectID)
	require.Len(t, widget.Responses, 1)
	resp := widget.Responses[0]
	assert.Equal(t, 200, resp.StatusCode)
	assert.JSONEq(t, `{"X-Mock": "1"}`, resp.Headers)
	assert.Equal(t, widget.ID, resp.EndpointID)

	files := dst.endpoints[1]
	assert.True(t, files.IsWildcard)
}

func TestSeedWildcardInferredFromRoute(t *testing.T) {
	seed := &Seed{Projects: []*SeedProject{{
		Slug: "acme",
		Endpoints: []*SeedEndpoint{{
			Method: "GET",
			Route:  "/files/*",
		}},
	}}}
	require.NoError(t, seed.Validate())

	var dst collectingSeeder
	require.NoError(t, seed.Apply(&dst))
	require.Len(t, dst.endpoints, 1)
	assert.True(t, dst.endpoints[0].IsWildcard)
}

func TestSeedDefaultsStatusAndOrder(t *testing.T) {
	seed := &Seed{Projects: []*SeedProject{{
		Slug: "acme",
		Endpoints: []*SeedEndpoint{{
			Method: "GET",
			Route:  "/x",
			Responses: []*SeedResponse{
				{Body: "first"},
				{Body: "second"},
			},
		}},
	}}}

	var dst collectingSeeder
	require.NoError(t, seed.Apply(&dst))
	responses := dst.endpoints[0].Responses
	require.Len(t, responses, 2)
	assert.Equal(t, 200, responses[0].StatusCode)
	assert.Equal(t, 0, responses[0].Order)
	assert.Equal(t, 1, responses[1].Order)
}

func TestSeedValidation(t *testing.T) {
	tests := []struct {
		name string
		seed Seed
	}{
		{"invalid team slug", Seed{Teams: []*SeedTeam{{Slug: "Bad Slug"}}}},
		{"duplicate team slug", Seed{Teams: []*SeedTeam{{Slug: "blue"}, {Slug: "blue"}}}},
		{"invalid project slug", Seed{Projects: []*SeedProject{{Slug: "UPPER"}}}},
		{"unknown team reference", Seed{Projects: []*SeedProject{{Slug: "a", TeamSlug: "ghost"}}}},
		{"endpoint missing method", Seed{Projects: []*SeedProject{{
			Slug: "a", Endpoints: []*SeedEndpoint{{Route: "/x"}},
		}}}},
		{"endpoint missing route", Seed{Projects: []*SeedProject{{
			Slug: "a", Endpoints: []*SeedEndpoint{{Method: "GET"}},
		}}}},
		{"route without leading slash", Seed{Projects: []*SeedProject{{
			Slug: "a", Endpoints: []*SeedEndpoint{{Method: "GET", Route: "x"}},
		}}}},
		{"unknown response mode", Seed{Projects: []*SeedProject{{
			Slug: "a", Endpoints: []*SeedEndpoint{{Method: "GET", Route: "/x", ResponseMode: "spiral"}},
		}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.seed.Validate())
		})
	}
}

func TestLoadSeedFileJSON(t *testing.T) {
	path := writeFile(t, "seed.json", `{
  "projects": [
    {"slug": "acme", "endpoints": [{"method": "GET", "route": "/ping"}]}
  ]
}`)

	seed, err := LoadSeedFile(path)
	require.NoError(t, err)
	require.Len(t, seed.Projects, 1)
	assert.Equal(t, "acme", seed.Projects[0].Slug)
}
