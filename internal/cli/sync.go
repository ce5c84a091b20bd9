package cli

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/swoodhull82/labflow/internal/domain"
	"github.com/swoodhull82/labflow/internal/service"
)

// tasksLoadedMsg carries the result of a schedule fetch. seq identifies the
// fetch generation; results from superseded fetches are dropped.
type tasksLoadedMsg struct {
	tasks []domain.Task
	seq   int
	err   error
}

// commitDoneMsg carries the result of a mutation. The schedule refetches
// after every commit, success or failure, rather than patching local state.
type commitDoneMsg struct {
	err error
}

// commitReschedule writes a task's new date range upstream.
func commitReschedule(app *App, id string, start, end time.Time) tea.Cmd {
	return func() tea.Msg {
		err := app.Tasks.Reschedule(context.Background(), id, start, end)
		return commitDoneMsg{err: err}
	}
}

// commitLink appends a predecessor to the successor's dependency list.
func commitLink(app *App, successor domain.Task, predecessorID string) tea.Cmd {
	return func() tea.Msg {
		err := app.Tasks.AddDependency(context.Background(), successor, predecessorID)
		return commitDoneMsg{err: err}
	}
}

// commitQuickEdit writes the quick-edit field subset upstream.
func commitQuickEdit(app *App, id string, fields service.QuickEditFields) tea.Cmd {
	return func() tea.Msg {
		err := app.Tasks.QuickEdit(context.Background(), id, fields)
		return commitDoneMsg{err: err}
	}
}
