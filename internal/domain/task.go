package domain

import "time"

// Task is the unit of work rendered on the scheduling timeline.
type Task struct {
	ID    string
	Title string

	// Schedule. Dates are calendar-day granularity, held at UTC midnight.
	// Either may be nil for records that were never scheduled; such tasks
	// are excluded from the timeline rather than rejected.
	StartDate *time.Time
	EndDate   *time.Time

	// Milestone marks a task that renders as a point marker instead of a
	// duration bar. Tasks whose start and end fall on the same day are
	// treated as milestones even without the explicit flag.
	Milestone bool

	Progress int // 0-100
	Status   TaskStatus

	// Dependencies lists predecessor task IDs, in the order the store
	// returned them.
	Dependencies []string

	// Lab context
	Category string
	Assignee string
	Priority int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Schedulable reports whether the task carries a renderable date interval:
// both dates present and start not after end.
func (t *Task) Schedulable() bool {
	if t.StartDate == nil || t.EndDate == nil {
		return false
	}
	return !t.StartDate.After(*t.EndDate)
}

// IsMilestone reports whether the task renders as a milestone marker:
// explicitly flagged, or a schedulable single-day interval.
func (t *Task) IsMilestone() bool {
	if t.Milestone {
		return true
	}
	if t.StartDate == nil || t.EndDate == nil {
		return false
	}
	return DateEqual(*t.StartDate, *t.EndDate)
}

// DependsOn reports whether predecessorID is already in the dependency list.
func (t *Task) DependsOn(predecessorID string) bool {
	for _, id := range t.Dependencies {
		if id == predecessorID {
			return true
		}
	}
	return false
}

// EffectiveStatus derives the rendered status: a task past its end date that
// is not done shows as overdue regardless of its stored status.
func (t *Task) EffectiveStatus(today time.Time) TaskStatus {
	if t.Status != TaskDone && t.EndDate != nil && t.EndDate.Before(DateOnly(today)) {
		return TaskOverdue
	}
	return t.Status
}

// ClampProgress normalizes a progress value into [0, 100].
func ClampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// DateOnly truncates t to UTC midnight of its calendar day.
func DateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DateEqual reports whether a and b fall on the same calendar day.
func DateEqual(a, b time.Time) bool {
	return DateOnly(a).Equal(DateOnly(b))
}

// DaysBetween returns the whole-day distance from a to b (negative when b
// precedes a).
func DaysBetween(a, b time.Time) int {
	return int(DateOnly(b).Sub(DateOnly(a)).Hours() / 24)
}
