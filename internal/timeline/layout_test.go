package timeline

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swoodhull82/labflow/internal/domain"
)

func dp(y int, m time.Month, day int) *time.Time {
	t := d(y, m, day)
	return &t
}

func task(id string, start, end *time.Time) domain.Task {
	return domain.Task{ID: id, Title: id, StartDate: start, EndDate: end, Status: domain.TaskTodo}
}

// julyViewport is the fixture window most tests share: starting
// 2024-07-01 at 30 px per day.
func julyViewport() Viewport {
	return Viewport{Start: d(2024, 7, 1), Months: 3, CellWidth: 30}
}

func TestComputeReferenceScenario(t *testing.T) {
	l := Compute(julyViewport(), DefaultMetrics(), []domain.Task{
		task("a", dp(2024, 7, 1), dp(2024, 7, 3)),
	}, nil)

	require.Len(t, l.Bars, 1)
	bar := l.Bars[0]
	assert.Equal(t, 0, bar.Left)
	assert.Equal(t, 90, bar.Width, "3 inclusive days at 30px")
	assert.Equal(t, 0, bar.Row)
}

func TestComputeWidthProperty(t *testing.T) {
	vp := julyViewport()
	cases := []struct {
		start, end time.Time
		wantDays   int
	}{
		{d(2024, 7, 1), d(2024, 7, 1), 1},
		{d(2024, 7, 5), d(2024, 7, 14), 10},
		{d(2024, 6, 20), d(2024, 7, 4), 4},  // clipped at window start
		{d(2024, 9, 25), d(2024, 10, 9), 6}, // clipped at window end
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%s..%s", tc.start.Format("0102"), tc.end.Format("0102")), func(t *testing.T) {
			s, e := tc.start, tc.end
			tsk := domain.Task{ID: "x", StartDate: &s, EndDate: &e}
			if tc.wantDays == 1 {
				tsk.Milestone = false // single-day tasks become milestones; test bars only below
			}
			l := Compute(vp, DefaultMetrics(), []domain.Task{tsk}, nil)
			require.Len(t, l.Bars, 1)
			bar := l.Bars[0]
			if bar.Milestone {
				assert.Equal(t, DefaultMetrics().MilestoneSize, bar.Width)
			} else {
				assert.Equal(t, tc.wantDays*vp.CellWidth, bar.Width)
			}
			assert.GreaterOrEqual(t, bar.Width, 0, "width is never negative")
		})
	}
}

func TestComputeExcludesInvalidAndOffscreen(t *testing.T) {
	l := Compute(julyViewport(), DefaultMetrics(), []domain.Task{
		task("visible1", dp(2024, 7, 1), dp(2024, 7, 3)),
		task("inverted", dp(2024, 7, 9), dp(2024, 7, 2)),
		task("no-dates", nil, nil),
		task("half", dp(2024, 7, 5), nil),
		task("before", dp(2024, 5, 1), dp(2024, 6, 30)),
		task("after", dp(2024, 10, 1), dp(2024, 10, 5)),
		task("visible2", dp(2024, 8, 10), dp(2024, 8, 12)),
	}, nil)

	require.Len(t, l.Bars, 2)
	// Dense row indices over included tasks only.
	assert.Equal(t, "visible1", l.Bars[0].TaskID)
	assert.Equal(t, 0, l.Bars[0].Row)
	assert.Equal(t, "visible2", l.Bars[1].TaskID)
	assert.Equal(t, 1, l.Bars[1].Row)
}

func TestComputeRowOrdering(t *testing.T) {
	l := Compute(julyViewport(), DefaultMetrics(), []domain.Task{
		task("late", dp(2024, 7, 20), dp(2024, 7, 25)),
		task("tie-b", dp(2024, 7, 5), dp(2024, 7, 8)),
		task("early", dp(2024, 7, 2), dp(2024, 7, 4)),
		task("tie-a", dp(2024, 7, 5), dp(2024, 7, 6)),
	}, nil)

	require.Len(t, l.Bars, 4)
	assert.Equal(t, "early", l.Bars[0].TaskID)
	assert.Equal(t, "tie-b", l.Bars[1].TaskID, "ties keep fetch order")
	assert.Equal(t, "tie-a", l.Bars[2].TaskID)
	assert.Equal(t, "late", l.Bars[3].TaskID)
}

func TestComputeMilestoneGeometry(t *testing.T) {
	m := DefaultMetrics()
	l := Compute(julyViewport(), m, []domain.Task{
		task("ms", dp(2024, 7, 3), dp(2024, 7, 3)),
	}, nil)

	require.Len(t, l.Bars, 1)
	bar := l.Bars[0]
	assert.True(t, bar.Milestone)
	assert.Equal(t, m.MilestoneSize, bar.Width)
	// Centered within the 2024-07-03 cell: offset 2 days * 30px + centering.
	assert.Equal(t, 2*30+(30-m.MilestoneSize)/2, bar.Left)
}

func TestComputeOverrideTracksGesture(t *testing.T) {
	tasks := []domain.Task{task("a", dp(2024, 7, 1), dp(2024, 7, 3))}
	ov := &Override{TaskID: "a", Range: DateRange{Start: d(2024, 7, 3), End: d(2024, 7, 5)}}
	l := Compute(julyViewport(), DefaultMetrics(), tasks, ov)

	require.Len(t, l.Bars, 1)
	assert.Equal(t, 60, l.Bars[0].Left, "bar follows the tentative dates")
	assert.Equal(t, 90, l.Bars[0].Width)
}

func TestComputeOverrideOtherTaskUntouched(t *testing.T) {
	tasks := []domain.Task{
		task("a", dp(2024, 7, 1), dp(2024, 7, 3)),
		task("b", dp(2024, 7, 10), dp(2024, 7, 12)),
	}
	ov := &Override{TaskID: "b", Range: DateRange{Start: d(2024, 7, 11), End: d(2024, 7, 13)}}
	l := Compute(julyViewport(), DefaultMetrics(), tasks, ov)

	a, ok := l.Bar("a")
	require.True(t, ok)
	assert.Equal(t, 0, a.Left)
}

func TestComputeVerticalGeometry(t *testing.T) {
	m := Metrics{RowHeight: 10, BarPadding: 2, MilestoneSize: 4, ConnectorStub: 2}
	l := Compute(julyViewport(), m, []domain.Task{
		task("a", dp(2024, 7, 1), dp(2024, 7, 3)),
		task("b", dp(2024, 7, 5), dp(2024, 7, 8)),
	}, nil)

	require.Len(t, l.Bars, 2)
	assert.Equal(t, 2, l.Bars[0].Top)
	assert.Equal(t, 6, l.Bars[0].Height)
	assert.Equal(t, 5, l.Bars[0].CenterY)
	assert.Equal(t, 12, l.Bars[1].Top)
	assert.Equal(t, 15, l.Bars[1].CenterY)
	assert.Equal(t, 20, l.HeightPx())
}

func TestHitTest(t *testing.T) {
	vp := Viewport{Start: d(2024, 7, 1), Months: 1, CellWidth: 30}
	m := Metrics{RowHeight: 10, BarPadding: 2, MilestoneSize: 4, ConnectorStub: 2}
	l := Compute(vp, m, []domain.Task{
		task("a", dp(2024, 7, 1), dp(2024, 7, 3)), // left 0, width 90, row 0
	}, nil)

	h := l.handlePx()
	require.Equal(t, 8, h, "30px cells cap the handle at 8px")

	bar, zone := l.HitTest(45, 5)
	assert.Equal(t, "a", bar.TaskID)
	assert.Equal(t, HitBody, zone)

	_, zone = l.HitTest(3, 5)
	assert.Equal(t, HitHandleStart, zone)

	_, zone = l.HitTest(89, 5)
	assert.Equal(t, HitHandleEnd, zone)

	_, zone = l.HitTest(92, 5)
	assert.Equal(t, HitLinkSource, zone)

	_, zone = l.HitTest(300, 5)
	assert.Equal(t, HitNone, zone)

	_, zone = l.HitTest(45, 50)
	assert.Equal(t, HitNone, zone, "below all rows")
}

func TestHitTestMilestoneHasNoHandles(t *testing.T) {
	vp := Viewport{Start: d(2024, 7, 1), Months: 1, CellWidth: 30}
	l := Compute(vp, DefaultMetrics(), []domain.Task{
		task("ms", dp(2024, 7, 2), dp(2024, 7, 2)),
	}, nil)

	bar, ok := l.Bar("ms")
	require.True(t, ok)
	got, zone := l.HitTest(bar.Left, bar.CenterY)
	assert.Equal(t, "ms", got.TaskID)
	assert.Equal(t, HitBody, zone)

	_, zone = l.HitTest(bar.Right(), bar.CenterY)
	assert.Equal(t, HitNone, zone, "milestones expose no link source")
}

func TestLinkTargetAt(t *testing.T) {
	vp := Viewport{Start: d(2024, 7, 1), Months: 1, CellWidth: 30}
	l := Compute(vp, DefaultMetrics(), []domain.Task{
		task("a", dp(2024, 7, 1), dp(2024, 7, 3)),
		task("b", dp(2024, 7, 10), dp(2024, 7, 12)), // row 1, left 270
	}, nil)

	b, ok := l.LinkTargetAt(275, 3, "a")
	require.True(t, ok)
	assert.Equal(t, "b", b.TaskID)

	_, ok = l.LinkTargetAt(220, 3, "a")
	assert.True(t, ok, "near-left-edge slack accepts the drop")

	_, ok = l.LinkTargetAt(45, 1, "a")
	assert.False(t, ok, "source task is never its own target")

	_, ok = l.LinkTargetAt(275, 40, "a")
	assert.False(t, ok, "no row band at this y")
}
