// Package store defines the read contracts the serving pipeline uses to
// reach mock configuration, plus an in-memory implementation used for
// seed-file serving and tests. The embedded persistent backend lives in
// the bolt subpackage.
package store

import (
	"context"

	"github.com/mockhub/mockhub/pkg/project"
)

// ConfigStore is the read-only contract the dispatcher queries per request.
// Lookups that find nothing return (nil, nil); errors are reserved for I/O
// failures.
type ConfigStore interface {
	// GetTeamBySlug returns the active team with the given slug.
	GetTeamBySlug(ctx context.Context, slug string) (*project.Team, error)

	// GetProjectBySlug returns the active project with the given slug.
	// teamID is empty for personal projects.
	GetProjectBySlug(ctx context.Context, teamID, slug string) (*project.Project, error)

	// ListEndpoints returns the project's active endpoints, each carrying
	// its ordered responses and validation rules, with routes compiled.
	ListEndpoints(ctx context.Context, projectID string) ([]*project.Endpoint, error)

	// ListProjects returns all projects, for inspection surfaces.
	ListProjects(ctx context.Context) ([]*project.Project, error)
}
