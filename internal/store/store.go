// Package store defines the record-store collaborator the timeline talks
// to, plus the closed error-kind taxonomy every implementation maps its
// failures onto. Tasks are created and deleted only by the store; the
// application proposes partial field mutations and refetches.
package store

import (
	"context"
	"time"

	"github.com/swoodhull82/labflow/internal/domain"
)

// Filter narrows a task fetch. Zero value fetches everything.
type Filter struct {
	Category string
}

// TaskFields is a partial update: nil fields are left untouched.
type TaskFields struct {
	Title        *string
	Status       *domain.TaskStatus
	Progress     *int
	StartDate    *time.Time
	EndDate      *time.Time
	Dependencies *[]string
}

// IsEmpty reports whether the update carries no changes.
func (f TaskFields) IsEmpty() bool {
	return f.Title == nil && f.Status == nil && f.Progress == nil &&
		f.StartDate == nil && f.EndDate == nil && f.Dependencies == nil
}

// Store is the record-store interface. Implementations must tolerate
// records with missing dates; the timeline filters those itself.
type Store interface {
	// ListTasks returns all tasks matching the filter.
	ListTasks(ctx context.Context, filter Filter) ([]domain.Task, error)

	// UpdateTask applies a partial update and returns the updated record.
	// Callers treat any non-error return as success and refetch regardless
	// of the returned body.
	UpdateTask(ctx context.Context, id string, fields TaskFields) (*domain.Task, error)

	// CreateTask inserts a new record. Used by seeding and tests; the
	// timeline itself never originates tasks.
	CreateTask(ctx context.Context, t *domain.Task) error
}
