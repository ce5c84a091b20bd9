package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swoodhull82/labflow/internal/domain"
)

func runTasksCmd(t *testing.T, fake *fakeTaskService, args ...string) (string, error) {
	t.Helper()
	app := &App{Tasks: fake}
	root := NewRootCmd(app)
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(append([]string{"tasks"}, args...))
	err := root.Execute()
	return buf.String(), err
}

func TestTasksCommandShowsRelativeDue(t *testing.T) {
	start := domain.DateOnly(time.Now())
	end := start.AddDate(0, 0, 1)
	fake := &fakeTaskService{tasks: []domain.Task{
		{ID: "t1", Title: "Prep samples", StartDate: &start, EndDate: &end, Status: domain.TaskTodo},
	}}

	out, err := runTasksCmd(t, fake)
	require.NoError(t, err)
	assert.Contains(t, out, "Due")
	assert.Contains(t, out, "Tomorrow")
}

func TestTasksCommandUnscheduledHasNoDue(t *testing.T) {
	fake := &fakeTaskService{tasks: []domain.Task{
		{ID: "t1", Title: "Backlog item", Status: domain.TaskTodo},
	}}

	out, err := runTasksCmd(t, fake)
	require.NoError(t, err)
	assert.Contains(t, out, "unscheduled")
	assert.NotContains(t, out, "Tomorrow")
}

func TestCategoryFlagRejectsUnknownValue(t *testing.T) {
	fake := &fakeTaskService{}

	_, err := runTasksCmd(t, fake, "--category", "chemistry")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown category "chemistry"`)
	assert.Empty(t, fake.filters, "no fetch on a rejected flag")
}

func TestCategoryFlagPassedToList(t *testing.T) {
	fake := &fakeTaskService{}

	_, err := runTasksCmd(t, fake, "-c", "calibration")
	require.NoError(t, err)
	require.Len(t, fake.filters, 1)
	assert.Equal(t, "calibration", fake.filters[0])
}

func TestSampleTasksUseKnownCategories(t *testing.T) {
	for _, task := range sampleTasks(time.Now()) {
		assert.True(t, domain.ValidTaskCategories[task.Category],
			"task %s has unknown category %q", task.ID, task.Category)
	}
}
