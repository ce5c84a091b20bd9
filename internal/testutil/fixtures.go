package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/swoodhull82/labflow/internal/domain"
)

// Task options
type TaskOption func(*domain.Task)

func WithDates(start, end time.Time) TaskOption {
	return func(t *domain.Task) {
		s, e := domain.DateOnly(start), domain.DateOnly(end)
		t.StartDate = &s
		t.EndDate = &e
	}
}

func WithStatus(s domain.TaskStatus) TaskOption {
	return func(t *domain.Task) {
		t.Status = s
	}
}

func WithProgress(p int) TaskOption {
	return func(t *domain.Task) {
		t.Progress = p
	}
}

func WithCategory(c string) TaskOption {
	return func(t *domain.Task) {
		t.Category = c
	}
}

func WithDependencies(ids ...string) TaskOption {
	return func(t *domain.Task) {
		t.Dependencies = ids
	}
}

func AsMilestone() TaskOption {
	return func(t *domain.Task) {
		t.Milestone = true
	}
}

// NewTestTask builds a schedulable task with sensible defaults. Options
// override individual fields.
func NewTestTask(title string, opts ...TaskOption) *domain.Task {
	now := time.Now().UTC()
	start := domain.DateOnly(now)
	end := domain.DateOnly(now.AddDate(0, 0, 2))
	t := &domain.Task{
		ID:        uuid.New().String(),
		Title:     title,
		StartDate: &start,
		EndDate:   &end,
		Status:    domain.TaskTodo,
		Category:  "general",
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}
