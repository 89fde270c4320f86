// Package bolt persists mock configuration and request logs in an embedded
// bbolt database.
package bolt

import (
	"context"
	"encoding/json"
	"fmt"

	bbolt "go.etcd.io/bbolt"

	"github.com/mockhub/mockhub/pkg/project"
	"github.com/mockhub/mockhub/pkg/requestlog"
)

var (
	bucketTeams     = []byte("teams")
	bucketProjects  = []byte("projects")
	bucketEndpoints = []byte("endpoints")
	bucketLogs      = []byte("logs")
)

// defaultListLimit caps log listings when a filter specifies no limit.
const defaultListLimit = 100

// Store is a bbolt-backed implementation of store.ConfigStore and
// requestlog.Store. bbolt serializes writers internally; readers run in
// their own transactions, so the serving hot path never blocks on it.
type Store struct {
	db *bbolt.DB
}

// Open opens (or creates) the database at path and ensures all buckets
// exist.
func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("open bolt db: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketTeams, bucketProjects, bucketEndpoints, bucketLogs} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create buckets: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// PutTeam persists a team.
func (s *Store) PutTeam(t *project.Team) error {
	return s.put(bucketTeams, t.ID, t)
}

// PutProject persists a project.
func (s *Store) PutProject(p *project.Project) error {
	return s.put(bucketProjects, p.ID, p)
}

// PutEndpoint persists an endpoint under its project.
func (s *Store) PutEndpoint(e *project.Endpoint) error {
	return s.put(bucketEndpoints, e.ProjectID+"/"+e.ID, e)
}

func (s *Store) put(bucket []byte, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s record: %w", bucket, err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucket).Put([]byte(key), data)
	})
}

// GetTeamBySlug implements store.ConfigStore.
func (s *Store) GetTeamBySlug(_ context.Context, slug string) (*project.Team, error) {
	var found *project.Team
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketTeams).ForEach(func(_, v []byte) error {
			var t project.Team
			if err := json.Unmarshal(v, &t); err != nil {
				return err
			}
			if t.Slug == slug && t.IsActive {
				found = &t
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// GetProjectBySlug implements store.ConfigStore.
func (s *Store) GetProjectBySlug(_ context.Context, teamID, slug string) (*project.Project, error) {
	var found *project.Project
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketProjects).ForEach(func(_, v []byte) error {
			var p project.Project
			if err := json.Unmarshal(v, &p); err != nil {
				return err
			}
			if p.Slug == slug && p.TeamID == teamID && p.IsActive {
				found = &p
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// ListEndpoints implements store.ConfigStore. Routes are compiled on load;
// an endpoint whose regex no longer compiles is returned uncompiled and
// treated as never matching.
func (s *Store) ListEndpoints(_ context.Context, projectID string) ([]*project.Endpoint, error) {
	prefix := []byte(projectID + "/")
	var out []*project.Endpoint
	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(bucketEndpoints).Cursor()
		for k, v := c.Seek(prefix); k != nil && hasPrefix(k, prefix); k, v = c.Next() {
			var e project.Endpoint
			if err := json.Unmarshal(v, &e); err != nil {
				return err
			}
			if !e.IsActive {
				continue
			}
			_ = e.Compile()
			out = append(out, &e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListProjects implements store.ConfigStore.
func (s *Store) ListProjects(_ context.Context) ([]*project.Project, error) {
	var out []*project.Project
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketProjects).ForEach(func(_, v []byte) error {
			var p project.Project
			if err := json.Unmarshal(v, &p); err != nil {
				return err
			}
			out = append(out, &p)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Save implements requestlog.Store. Keys are creation-time ordered so a
// backwards cursor walk yields newest first.
func (s *Store) Save(_ context.Context, e *requestlog.Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode log entry: %w", err)
	}
	key := fmt.Sprintf("%020d-%s", e.CreatedAt.UnixNano(), e.ID)
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketLogs).Put([]byte(key), data)
	})
}

// List implements requestlog.Store, newest first.
func (s *Store) List(_ context.Context, f *requestlog.Filter) ([]*requestlog.Entry, error) {
	limit := defaultListLimit
	offset := 0
	if f != nil {
		if f.Limit > 0 {
			limit = f.Limit
		}
		if f.Offset > 0 {
			offset = f.Offset
		}
	}

	var out []*requestlog.Entry
	skipped := 0
	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(bucketLogs).Cursor()
		for k, v := c.Last(); k != nil && len(out) < limit; k, v = c.Prev() {
			var e requestlog.Entry
			if err := json.Unmarshal(v, &e); err != nil {
				return err
			}
			if !f.Matches(&e) {
				continue
			}
			if skipped < offset {
				skipped++
				continue
			}
			out = append(out, &e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Count implements requestlog.Store.
func (s *Store) Count(_ context.Context) (int, error) {
	var n int
	err := s.db.View(func(tx *bbolt.Tx) error {
		n = tx.Bucket(bucketLogs).Stats().KeyN
		return nil
	})
	return n, err
}

// Clear implements requestlog.Store.
func (s *Store) Clear(_ context.Context) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(bucketLogs); err != nil {
			return err
		}
		_, err := tx.CreateBucket(bucketLogs)
		return err
	})
}

func hasPrefix(b, prefix []byte) bool {
	if len(b) < len(prefix) {
		return false
	}
	for i := range prefix {
		if b[i] != prefix[i] {
			return false
		}
	}
	return true
}
