package timeline

import (
	"sort"
	"time"

	"github.com/swoodhull82/labflow/internal/domain"
)

// Metrics holds the fixed vertical and connector geometry of the timeline.
// CellWidth lives on the Viewport because it is the zoom level.
type Metrics struct {
	RowHeight     int
	BarPadding    int // subtracted symmetrically from row height
	MilestoneSize int
	ConnectorStub int // horizontal exit segment length of dependency paths
}

// DefaultMetrics is tuned for terminal rendering where 1 px = 1 cell.
func DefaultMetrics() Metrics {
	return Metrics{
		RowHeight:     2,
		BarPadding:    0,
		MilestoneSize: 1,
		ConnectorStub: 2,
	}
}

// DateRange is an inclusive calendar-day interval.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Override carries a gesture's tentative dates for a single task. While an
// override is active the layout uses its range instead of the committed one,
// so the bar tracks the pointer before any write occurs.
type Override struct {
	TaskID string
	Range  DateRange
}

// Bar is the render geometry of one task inside the current window.
type Bar struct {
	TaskID string
	Title  string

	Row     int
	Left    int // px from window start
	Width   int // px
	Top     int
	Height  int
	CenterY int

	Milestone bool
	Progress  int
	Status    domain.TaskStatus

	// Effective (possibly tentative) dates before window clipping.
	Start time.Time
	End   time.Time
}

// Right returns the x coordinate just past the bar's last pixel column.
func (b Bar) Right() int { return b.Left + b.Width }

// Layout maps every task whose interval intersects the window to pixel
// geometry. Row indices are dense: tasks outside the window are filtered
// before assignment.
type Layout struct {
	Viewport Viewport
	Metrics  Metrics
	Bars     []Bar

	byID map[string]int
}

// Compute lays out the given tasks inside the viewport. Tasks without a
// valid schedule and tasks entirely outside the window are excluded. Order
// is ascending by effective start date, ties broken by input order.
func Compute(vp Viewport, m Metrics, tasks []domain.Task, override *Override) *Layout {
	l := &Layout{
		Viewport: vp,
		Metrics:  m,
		byID:     make(map[string]int),
	}

	type candidate struct {
		task  *domain.Task
		start time.Time
		end   time.Time
		order int
	}
	var cands []candidate
	for i := range tasks {
		t := &tasks[i]
		start, end, ok := effectiveRange(t, override)
		if !ok {
			continue
		}
		// Entirely outside the window: excluded before row assignment.
		if end.Before(vp.Start) || start.After(vp.End()) {
			continue
		}
		cands = append(cands, candidate{task: t, start: start, end: end, order: i})
	}

	sort.SliceStable(cands, func(i, j int) bool {
		if !cands[i].start.Equal(cands[j].start) {
			return cands[i].start.Before(cands[j].start)
		}
		return cands[i].order < cands[j].order
	})

	for row, c := range cands {
		bar := l.makeBar(c.task, c.start, c.end, row)
		l.byID[bar.TaskID] = len(l.Bars)
		l.Bars = append(l.Bars, bar)
	}
	return l
}

// effectiveRange resolves the dates used for layout: the override's tentative
// range when the gesture targets this task, otherwise the committed dates.
// Returns ok=false for tasks that must not render.
func effectiveRange(t *domain.Task, override *Override) (time.Time, time.Time, bool) {
	if override != nil && override.TaskID == t.ID {
		return domain.DateOnly(override.Range.Start), domain.DateOnly(override.Range.End), true
	}
	if !t.Schedulable() {
		return time.Time{}, time.Time{}, false
	}
	return domain.DateOnly(*t.StartDate), domain.DateOnly(*t.EndDate), true
}

func (l *Layout) makeBar(t *domain.Task, start, end time.Time, row int) Bar {
	vp, m := l.Viewport, l.Metrics
	bar := Bar{
		TaskID:    t.ID,
		Title:     t.Title,
		Row:       row,
		Top:       row*m.RowHeight + m.BarPadding,
		Height:    m.RowHeight - 2*m.BarPadding,
		CenterY:   row*m.RowHeight + m.RowHeight/2,
		Milestone: t.Milestone || domain.DateEqual(start, end),
		Progress:  domain.ClampProgress(t.Progress),
		Status:    t.Status,
		Start:     start,
		End:       end,
	}

	// Clip the interval to the window before measuring; the bar only ever
	// renders the portion inside the window.
	clipStart, clipEnd := start, end
	if clipStart.Before(vp.Start) {
		clipStart = vp.Start
	}
	if clipEnd.After(vp.End()) {
		clipEnd = vp.End()
	}

	dayOffset := domain.DaysBetween(vp.Start, clipStart)
	if bar.Milestone {
		// Fixed-size marker centered in its day cell; no duration math.
		bar.Left = dayOffset*vp.CellWidth + (vp.CellWidth-m.MilestoneSize)/2
		bar.Width = m.MilestoneSize
		return bar
	}

	visibleDays := domain.DaysBetween(clipStart, clipEnd) + 1
	bar.Left = dayOffset * vp.CellWidth
	bar.Width = visibleDays * vp.CellWidth
	return bar
}

// Bar returns the geometry for the given task ID.
func (l *Layout) Bar(taskID string) (Bar, bool) {
	i, ok := l.byID[taskID]
	if !ok {
		return Bar{}, false
	}
	return l.Bars[i], true
}

// RowAt inverts a y coordinate to a row index, or -1 when below all rows.
func (l *Layout) RowAt(y int) int {
	if y < 0 || l.Metrics.RowHeight <= 0 {
		return -1
	}
	row := y / l.Metrics.RowHeight
	if row >= len(l.Bars) {
		return -1
	}
	return row
}

// HeightPx returns the total pixel height of all rows.
func (l *Layout) HeightPx() int {
	return len(l.Bars) * l.Metrics.RowHeight
}

// HitZone classifies what part of a bar a coordinate lands on.
type HitZone int

const (
	HitNone HitZone = iota
	HitBody
	HitHandleStart
	HitHandleEnd
	HitLinkSource
)

// handlePx is the width of the edge resize zones for the current zoom.
func (l *Layout) handlePx() int {
	w := l.Viewport.CellWidth / 3
	if w < 1 {
		w = 1
	}
	if w > 8 {
		w = 8
	}
	return w
}

// HitTest resolves a coordinate to a bar and the zone hit. The link-source
// affordance sits just past the bar's right edge and is absent on milestones.
func (l *Layout) HitTest(x, y int) (Bar, HitZone) {
	row := l.RowAt(y)
	if row < 0 {
		return Bar{}, HitNone
	}
	bar := l.Bars[row]
	h := l.handlePx()

	if !bar.Milestone && x >= bar.Right() && x < bar.Right()+h {
		return bar, HitLinkSource
	}
	if x < bar.Left || x >= bar.Right() {
		return Bar{}, HitNone
	}
	if bar.Milestone {
		return bar, HitBody
	}
	if x < bar.Left+h {
		return bar, HitHandleStart
	}
	if x >= bar.Right()-h {
		return bar, HitHandleEnd
	}
	return bar, HitBody
}

// linkSlackPx widens the link-drop target zone around a bar's left edge.
func (l *Layout) linkSlackPx() int {
	return 2 * l.Viewport.CellWidth
}

// LinkTargetAt resolves a link-draw release coordinate to a drop target: the
// bar whose row band contains y, with x inside the bar or near its left
// edge. The source task is never its own target.
func (l *Layout) LinkTargetAt(x, y int, sourceID string) (Bar, bool) {
	row := l.RowAt(y)
	if row < 0 {
		return Bar{}, false
	}
	bar := l.Bars[row]
	if bar.TaskID == sourceID {
		return Bar{}, false
	}
	slack := l.linkSlackPx()
	if x < bar.Left-slack || x >= bar.Right()+slack {
		return Bar{}, false
	}
	return bar, true
}
