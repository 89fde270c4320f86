package requestlog

import "context"

// Store persists request log entries. Implementations live outside the
// serving core; failures are reported to the operator and never affect the
// served response.
type Store interface {
	// Save persists one entry.
	Save(ctx context.Context, e *Entry) error

	// List returns entries newest first, optionally filtered.
	List(ctx context.Context, f *Filter) ([]*Entry, error)

	// Count returns the number of stored entries.
	Count(ctx context.Context) (int, error)

	// Clear removes all entries.
	Clear(ctx context.Context) error
}

// Filter narrows a List call.
type Filter struct {
	// ProjectID restricts to one tenant.
	ProjectID string

	// Method restricts to one HTTP method.
	Method string

	// Matched restricts by matched flag when non-nil.
	Matched *bool

	// Limit caps the number of returned entries; 0 means the store default.
	Limit int

	// Offset skips entries for paging.
	Offset int
}

// Matches reports whether an entry satisfies the filter criteria (paging
// excluded).
func (f *Filter) Matches(e *Entry) bool {
	if f == nil {
		return true
	}
	if f.ProjectID != "" && e.ProjectID != f.ProjectID {
		return false
	}
	if f.Method != "" && e.Method != f.Method {
		return false
	}
	if f.Matched != nil && e.IsMatched != *f.Matched {
		return false
	}
	return true
}
