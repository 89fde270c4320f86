package store

import (
	"context"
	"sort"
	"sync"

	"github.com/mockhub/mockhub/pkg/project"
	"github.com/mockhub/mockhub/pkg/requestlog"
)

// Memory is an in-memory ConfigStore and request log store. It backs
// seed-file serving and tests.
type Memory struct {
	mu        sync.RWMutex
	teams     map[string]*project.Team     // by id
	projects  map[string]*project.Project  // by id
	endpoints map[string][]*project.Endpoint // by project id
	logs      []*requestlog.Entry
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		teams:     make(map[string]*project.Team),
		projects:  make(map[string]*project.Project),
		endpoints: make(map[string][]*project.Endpoint),
	}
}

// PutTeam adds or replaces a team.
func (m *Memory) PutTeam(t *project.Team) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.teams[t.ID] = t
	return nil
}

// PutProject adds or replaces a project.
func (m *Memory) PutProject(p *project.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.projects[p.ID] = p
	return nil
}

// PutEndpoint adds an endpoint to its project, compiling its route. A
// malformed regex leaves the endpoint stored but permanently unmatched,
// mirroring how the pipeline treats broken route configuration.
func (m *Memory) PutEndpoint(e *project.Endpoint) error {
	err := e.Compile()
	m.mu.Lock()
	m.endpoints[e.ProjectID] = append(m.endpoints[e.ProjectID], e)
	m.mu.Unlock()
	return err
}

// GetTeamBySlug implements ConfigStore.
func (m *Memory) GetTeamBySlug(_ context.Context, slug string) (*project.Team, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, t := range m.teams {
		if t.Slug == slug && t.IsActive {
			return t, nil
		}
	}
	return nil, nil
}

// GetProjectBySlug implements ConfigStore.
func (m *Memory) GetProjectBySlug(_ context.Context, teamID, slug string) (*project.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.projects {
		if p.Slug == slug && p.TeamID == teamID && p.IsActive {
			return p, nil
		}
	}
	return nil, nil
}

// ListEndpoints implements ConfigStore.
func (m *Memory) ListEndpoints(_ context.Context, projectID string) ([]*project.Endpoint, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	eps := m.endpoints[projectID]
	out := make([]*project.Endpoint, 0, len(eps))
	for _, e := range eps {
		if e.IsActive {
			out = append(out, e)
		}
	}
	return out, nil
}

// ListProjects implements ConfigStore.
func (m *Memory) ListProjects(_ context.Context) ([]*project.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*project.Project, 0, len(m.projects))
	for _, p := range m.projects {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out, nil
}

// Save implements requestlog.Store.
func (m *Memory) Save(_ context.Context, e *requestlog.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = append(m.logs, e)
	return nil
}

// List implements requestlog.Store, newest first.
func (m *Memory) List(_ context.Context, f *requestlog.Filter) ([]*requestlog.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var matched []*requestlog.Entry
	for i := len(m.logs) - 1; i >= 0; i-- {
		if f.Matches(m.logs[i]) {
			matched = append(matched, m.logs[i])
		}
	}

	offset, limit := 0, len(matched)
	if f != nil {
		if f.Offset > 0 {
			offset = f.Offset
		}
		if f.Limit > 0 {
			limit = f.Limit
		}
	}
	if offset >= len(matched) {
		return nil, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

// Count implements requestlog.Store.
func (m *Memory) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.logs), nil
}

// Clear implements requestlog.Store.
func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = nil
	return nil
}
