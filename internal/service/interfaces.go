package service

import (
	"context"
	"time"

	"github.com/swoodhull82/labflow/internal/domain"
	"github.com/swoodhull82/labflow/internal/store"
)

// QuickEditFields is the subset of task fields the quick-edit surface may
// change. Nil fields are untouched.
type QuickEditFields struct {
	Title    *string
	Status   *domain.TaskStatus
	Progress *int
}

// IsEmpty reports whether the edit carries no changes.
func (f QuickEditFields) IsEmpty() bool {
	return f.Title == nil && f.Status == nil && f.Progress == nil
}

// TaskService is the commit/sync surface of the timeline: every mutation is
// a partial update sent upstream, and callers refetch afterwards rather
// than patching local state.
type TaskService interface {
	List(ctx context.Context, filter store.Filter) ([]domain.Task, error)

	// Reschedule updates exactly the two date fields.
	Reschedule(ctx context.Context, id string, start, end time.Time) error

	// AddDependency appends predecessorID to the successor's dependency
	// list and writes the list back for the successor only. Degenerate
	// links (self, duplicate) are rejected before any store call.
	AddDependency(ctx context.Context, successor domain.Task, predecessorID string) error

	// QuickEdit updates an arbitrary subset of {title, status, progress}.
	QuickEdit(ctx context.Context, id string, fields QuickEditFields) error

	// Seed inserts tasks into the store. Used by local-mode seeding only.
	Seed(ctx context.Context, tasks []domain.Task) error
}
