package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swoodhull82/labflow/internal/db"
	"github.com/swoodhull82/labflow/internal/domain"
	"github.com/swoodhull82/labflow/internal/store"
	"github.com/swoodhull82/labflow/internal/testutil"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newStore(t *testing.T) *SQLiteTaskStore {
	t.Helper()
	return NewSQLiteTaskStore(testutil.NewTestDB(t))
}

func TestCreateAndListTasks(t *testing.T) {
	r := newStore(t)
	ctx := context.Background()

	first := testutil.NewTestTask("Calibrate spectrometer",
		testutil.WithDates(date(2024, 7, 1), date(2024, 7, 3)),
		testutil.WithCategory("calibration"))
	require.NoError(t, r.CreateTask(ctx, first))

	second := testutil.NewTestTask("Run assay",
		testutil.WithDates(date(2024, 7, 5), date(2024, 7, 8)),
		testutil.WithDependencies(first.ID))
	require.NoError(t, r.CreateTask(ctx, second))

	tasks, err := r.ListTasks(ctx, store.Filter{})
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	assert.Equal(t, "Calibrate spectrometer", tasks[0].Title, "ordered by start date")
	require.NotNil(t, tasks[0].StartDate)
	assert.Equal(t, date(2024, 7, 1), *tasks[0].StartDate)
	assert.Equal(t, []string{first.ID}, tasks[1].Dependencies)
}

func TestListTasksCategoryFilter(t *testing.T) {
	r := newStore(t)
	ctx := context.Background()

	require.NoError(t, r.CreateTask(ctx, testutil.NewTestTask("a", testutil.WithCategory("analysis"))))
	require.NoError(t, r.CreateTask(ctx, testutil.NewTestTask("b", testutil.WithCategory("maintenance"))))

	tasks, err := r.ListTasks(ctx, store.Filter{Category: "analysis"})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "a", tasks[0].Title)
}

func TestListTasksToleratesNullDates(t *testing.T) {
	r := newStore(t)
	ctx := context.Background()

	unscheduled := testutil.NewTestTask("backlog item")
	unscheduled.StartDate = nil
	unscheduled.EndDate = nil
	require.NoError(t, r.CreateTask(ctx, unscheduled))

	tasks, err := r.ListTasks(ctx, store.Filter{})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Nil(t, tasks[0].StartDate)
	assert.Nil(t, tasks[0].EndDate)
	assert.False(t, tasks[0].Schedulable())
}

func TestUpdateTaskDates(t *testing.T) {
	r := newStore(t)
	ctx := context.Background()

	task := testutil.NewTestTask("Reschedule me",
		testutil.WithDates(date(2024, 7, 1), date(2024, 7, 3)))
	require.NoError(t, r.CreateTask(ctx, task))

	start, end := date(2024, 7, 3), date(2024, 7, 5)
	updated, err := r.UpdateTask(ctx, task.ID, store.TaskFields{StartDate: &start, EndDate: &end})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, start, *updated.StartDate)
	assert.Equal(t, end, *updated.EndDate)
	assert.Equal(t, "Reschedule me", updated.Title, "untouched fields survive")
}

func TestUpdateTaskDependenciesPreservesOrder(t *testing.T) {
	r := newStore(t)
	ctx := context.Background()

	a := testutil.NewTestTask("a")
	b := testutil.NewTestTask("b")
	c := testutil.NewTestTask("c")
	for _, task := range []*domain.Task{a, b, c} {
		require.NoError(t, r.CreateTask(ctx, task))
	}

	deps := []string{c.ID, a.ID}
	updated, err := r.UpdateTask(ctx, b.ID, store.TaskFields{Dependencies: &deps})
	require.NoError(t, err)
	assert.Equal(t, deps, updated.Dependencies)

	// Replacing the list drops rows that are no longer present.
	deps = []string{a.ID}
	updated, err = r.UpdateTask(ctx, b.ID, store.TaskFields{Dependencies: &deps})
	require.NoError(t, err)
	assert.Equal(t, deps, updated.Dependencies)
}

func TestUpdateTaskQuickEditFields(t *testing.T) {
	r := newStore(t)
	ctx := context.Background()

	task := testutil.NewTestTask("edit me")
	require.NoError(t, r.CreateTask(ctx, task))

	title := "edited"
	status := domain.TaskInProgress
	progress := 250 // clamped on write
	updated, err := r.UpdateTask(ctx, task.ID, store.TaskFields{
		Title: &title, Status: &status, Progress: &progress,
	})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Title)
	assert.Equal(t, domain.TaskInProgress, updated.Status)
	assert.Equal(t, 100, updated.Progress)
}

func TestUpdateTaskNotFound(t *testing.T) {
	r := newStore(t)
	title := "x"
	_, err := r.UpdateTask(context.Background(), "ghost", store.TaskFields{Title: &title})
	require.Error(t, err)
	assert.Equal(t, store.KindNotFound, store.Classify(err))
}

func TestUpdateTaskEmptyFields(t *testing.T) {
	r := newStore(t)
	_, err := r.UpdateTask(context.Background(), "any", store.TaskFields{})
	require.Error(t, err)
	assert.Equal(t, store.KindValidation, store.Classify(err))
}

func TestGetTaskReadsThroughOpenTransaction(t *testing.T) {
	r := newStore(t)
	ctx := context.Background()

	task := testutil.NewTestTask("tx read")
	require.NoError(t, r.CreateTask(ctx, task))

	err := db.RunInTx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `UPDATE tasks SET title = 'renamed' WHERE id = ?`, task.ID)
		require.NoError(t, err)

		// The uncommitted write is visible through the transaction handle.
		inTx, err := getTask(ctx, tx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, "renamed", inTx.Title)
		return nil
	})
	require.NoError(t, err)
}

func TestCreateTaskAssignsID(t *testing.T) {
	r := newStore(t)
	task := testutil.NewTestTask("auto id")
	task.ID = ""
	require.NoError(t, r.CreateTask(context.Background(), task))
	assert.NotEmpty(t, task.ID)
}
