package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swoodhull82/labflow/internal/domain"
	"github.com/swoodhull82/labflow/internal/teatest"
)

func TestHeaderShowsBreadcrumbAndCategory(t *testing.T) {
	fake := &fakeTaskService{tasks: []domain.Task{
		scheduledTask("a", "Sample prep", 0, 4),
	}}
	app := &App{Tasks: fake, IsInteractive: func() bool { return true }}
	d := teatest.New(t, newAppModel(app, "calibration"), teatest.WithSize(120, 32))
	d.DrainInit()

	view := d.View()
	assert.Contains(t, view, "labflow")
	assert.Contains(t, view, "Schedule")
	assert.Contains(t, view, "calibration")
}

func TestEscOnHomeViewIsNoOp(t *testing.T) {
	fake := &fakeTaskService{tasks: []domain.Task{
		scheduledTask("a", "Sample prep", 0, 4),
	}}
	d := startGantt(t, fake)

	d.PressEsc()

	assert.False(t, d.Quitting)
	assert.Equal(t, ViewGantt, topViewID(t, d))
}

func TestCtrlCQuitsFromForm(t *testing.T) {
	fake := &fakeTaskService{tasks: []domain.Task{
		scheduledTask("a", "Sample prep", 0, 4),
	}}
	d := startGantt(t, fake)

	d.Click(mouseX(2), mouseY(0))
	require.Equal(t, ViewForm, topViewID(t, d))

	d.PressCtrlC()
	assert.True(t, d.Quitting)
}

func TestCategoryFilterPassedToFetch(t *testing.T) {
	fake := &fakeTaskService{}
	app := &App{Tasks: fake, IsInteractive: func() bool { return true }}
	d := teatest.New(t, newAppModel(app, "sampling"), teatest.WithSize(120, 32))
	d.DrainInit()

	require.Len(t, fake.filters, 1)
	assert.Equal(t, "sampling", fake.filters[0])
}
