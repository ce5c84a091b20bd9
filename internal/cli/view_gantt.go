package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/swoodhull82/labflow/internal/cli/formatter"
	"github.com/swoodhull82/labflow/internal/domain"
	"github.com/swoodhull82/labflow/internal/store"
	"github.com/swoodhull82/labflow/internal/timeline"
)

const (
	// labelWidth is the left gutter holding task titles.
	labelWidth = 22

	// headerRows is the two-tier month/tick header above the first bar row.
	headerRows = 2

	// appChromeRows is the app header rendered above this view.
	appChromeRows = 2

	// clickSlopPx separates a click from a drag: pointer travel at or below
	// this distance on release opens the quick editor instead of committing.
	clickSlopPx = 2
)

// ganttView is the interactive schedule: a horizontal time axis, one row
// per task, and elbow connectors for dependencies. All geometry comes from
// the timeline package; this view only wires terminal events to gestures
// and paints the result.
type ganttView struct {
	state   *SharedState
	vp      timeline.Viewport
	metrics timeline.Metrics
	machine timeline.Machine

	tasks []domain.Task
	byID  map[string]int
	today time.Time

	loading bool
	syncing bool
	errText string

	// Fetch generation tracking: a newer fetch cancels and supersedes the
	// old one, and stale results are dropped by sequence number.
	fetchSeq int
	cancel   context.CancelFunc

	hoverID      string
	hoverDay     time.Time
	linkTargetID string
}

func newGanttView(state *SharedState) *ganttView {
	return &ganttView{
		state:   state,
		vp:      timeline.NewViewport(time.Now(), timeline.DefaultMonths),
		metrics: timeline.DefaultMetrics(),
		today:   domain.DateOnly(time.Now()),
		loading: true,
	}
}

func (v *ganttView) ID() ViewID    { return ViewGantt }
func (v *ganttView) Title() string { return "Schedule" }

func (v *ganttView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("h"), key.WithHelp("h/l", "pan")),
		key.NewBinding(key.WithKeys("+"), key.WithHelp("+/-", "zoom")),
		key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		key.NewBinding(key.WithKeys("click"), key.WithHelp("click", "edit")),
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

func (v *ganttView) Init() tea.Cmd {
	return v.loadTasks()
}

// Close cancels any in-flight fetch. Called when the view leaves the stack.
func (v *ganttView) Close() {
	if v.cancel != nil {
		v.cancel()
	}
}

// loadTasks starts a fresh fetch, cancelling the previous one. The returned
// message carries the generation so superseded results are ignored.
func (v *ganttView) loadTasks() tea.Cmd {
	if v.cancel != nil {
		v.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	v.cancel = cancel
	v.fetchSeq++
	seq := v.fetchSeq

	app := v.state.App
	filter := store.Filter{Category: v.state.Category}
	return func() tea.Msg {
		tasks, err := app.Tasks.List(ctx, filter)
		return tasksLoadedMsg{tasks: tasks, seq: seq, err: err}
	}
}

func (v *ganttView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tasksLoadedMsg:
		if msg.seq != v.fetchSeq {
			return v, nil // superseded fetch
		}
		if msg.err != nil {
			// An aborted fetch is not an error the user caused.
			if store.IsCancelled(msg.err) {
				return v, nil
			}
			v.loading = false
			v.errText = store.Classify(msg.err).Message()
			return v, nil
		}
		v.loading = false
		v.errText = ""
		v.setTasks(msg.tasks)
		return v, nil

	case commitDoneMsg:
		v.syncing = false
		if msg.err != nil && !store.IsCancelled(msg.err) {
			v.errText = store.Classify(msg.err).Message()
		}
		// The upstream record is authoritative: refetch after every commit,
		// whether it succeeded or not.
		return v, v.loadTasks()

	case tea.KeyMsg:
		return v.handleKey(msg)

	case tea.MouseMsg:
		return v.handleMouse(msg)
	}
	return v, nil
}

func (v *ganttView) setTasks(tasks []domain.Task) {
	v.tasks = tasks
	v.byID = make(map[string]int, len(tasks))
	for i := range tasks {
		v.byID[tasks[i].ID] = i
	}
	v.hoverID = ""
	v.hoverDay = time.Time{}
	v.linkTargetID = ""
}

func (v *ganttView) task(id string) (domain.Task, bool) {
	i, ok := v.byID[id]
	if !ok {
		return domain.Task{}, false
	}
	return v.tasks[i], true
}

// ── input handling ──────────────────────────────────────────────────────────

func (v *ganttView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "h", "left":
		v.machine.Discard()
		v.vp.Shift(-1)
	case "l", "right":
		v.machine.Discard()
		v.vp.Shift(1)
	case "+", "=":
		v.machine.Discard()
		v.vp.SetZoom(v.vp.CellWidth + 1)
	case "-", "_":
		v.machine.Discard()
		v.vp.SetZoom(v.vp.CellWidth - 1)
	case "t":
		v.machine.Discard()
		v.vp = timeline.NewViewport(time.Now(), v.vp.Months)
	case "r":
		v.errText = ""
		return v, v.loadTasks()
	}
	return v, nil
}

func (v *ganttView) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	// Wheel zoom works anywhere over the view.
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		v.vp.SetZoom(v.vp.CellWidth + 1)
		return v, nil
	case tea.MouseButtonWheelDown:
		v.vp.SetZoom(v.vp.CellWidth - 1)
		return v, nil
	}

	x := msg.X - labelWidth
	y := msg.Y - appChromeRows - headerRows

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			v.beginGesture(x, y)
		}
	case tea.MouseActionMotion:
		v.trackPointer(x, y)
	case tea.MouseActionRelease:
		return v, v.endGesture(x, y)
	}
	return v, nil
}

func (v *ganttView) beginGesture(x, y int) {
	l := v.layout(nil)
	bar, zone := l.HitTest(x, y)
	if zone == timeline.HitNone {
		return
	}

	var kind timeline.GestureKind
	switch zone {
	case timeline.HitHandleStart:
		kind = timeline.GestureResizeStart
	case timeline.HitHandleEnd:
		kind = timeline.GestureResizeEnd
	case timeline.HitLinkSource:
		kind = timeline.GestureLinkDraw
	default:
		kind = timeline.GestureMove
	}
	v.machine.Begin(kind, bar.TaskID, x, y, bar.Start, bar.End)
}

func (v *ganttView) trackPointer(x, y int) {
	g := v.machine.Active()
	if g == nil {
		// Hover only: no gesture in progress.
		bar, zone := v.layout(nil).HitTest(x, y)
		if zone == timeline.HitNone {
			v.hoverID = ""
			v.hoverDay = time.Time{}
			if x >= 0 && x < v.vp.WidthPx() && y >= 0 {
				v.hoverDay = v.vp.DayAt(x)
			}
		} else {
			v.hoverID = bar.TaskID
			v.hoverDay = time.Time{}
		}
		return
	}

	v.machine.Update(x, y)
	if g.Kind == timeline.GestureLinkDraw {
		if target, ok := v.layout(nil).LinkTargetAt(x, y, g.TaskID); ok {
			v.linkTargetID = target.TaskID
		} else {
			v.linkTargetID = ""
		}
	}
}

func (v *ganttView) endGesture(x, y int) tea.Cmd {
	g, ok := v.machine.Release(x, y)
	v.linkTargetID = ""
	if !ok {
		return nil
	}

	// Small pointer travel is a click. Only a body click opens the quick
	// editor; a motionless press on a handle or the link affordance is
	// discarded.
	if !g.Moved(clickSlopPx) {
		if g.Kind != timeline.GestureMove {
			return nil
		}
		if task, ok := v.task(g.TaskID); ok {
			return v.openQuickEdit(task)
		}
		return nil
	}

	if g.Kind == timeline.GestureLinkDraw {
		target, ok := v.layout(nil).LinkTargetAt(x, y, g.TaskID)
		if !ok {
			return nil // released over nothing: drop silently
		}
		if err := timeline.ValidateLink(v.tasks, g.TaskID, target.TaskID); err != nil {
			v.errText = "Link rejected: " + err.Error()
			return nil
		}
		successor, ok := v.task(target.TaskID)
		if !ok {
			return nil
		}
		v.syncing = true
		return commitLink(v.state.App, successor, g.TaskID)
	}

	r := g.TentativeRange(v.vp.CellWidth)
	if r.Start.Equal(g.OrigStart) && r.End.Equal(g.OrigEnd) {
		return nil // drag landed back on the original dates
	}
	v.syncing = true
	return commitReschedule(v.state.App, g.TaskID, r.Start, r.End)
}

// ── layout & rendering ──────────────────────────────────────────────────────

// layout computes bar geometry for the current window. A non-nil override
// makes the dragged task's bar track the pointer before any write occurs.
func (v *ganttView) layout(override *timeline.Override) *timeline.Layout {
	return timeline.Compute(v.vp, v.metrics, v.tasks, override)
}

func (v *ganttView) View() string {
	if v.loading && v.tasks == nil {
		return "\n  " + formatter.Dim("Loading schedule...") + v.renderBanner()
	}
	if len(v.tasks) == 0 {
		return "\n  " + formatter.Dim("No tasks to schedule.") + v.renderBanner()
	}

	var override *timeline.Override
	if g := v.machine.Active(); g != nil {
		override = g.Override(v.vp.CellWidth)
	}
	l := v.layout(override)

	w := labelWidth + v.vp.WidthPx()
	if v.state.Width > 0 && w > v.state.Width {
		w = v.state.Width
	}
	h := headerRows + l.HeightPx()
	c := newCanvas(w, h)

	v.drawHeader(c)
	v.drawTodayMarker(c, l)
	for _, conn := range timeline.Connectors(l, v.tasks) {
		c.drawConnector(conn.Points, labelWidth, headerRows, paintDim)
	}
	v.drawBars(c, l)
	v.drawRubberBand(c)

	out := c.render(ganttPalette())
	out += "\n" + v.renderInfoLine()
	return out + v.renderBanner()
}

func (v *ganttView) drawHeader(c *canvas) {
	x := labelWidth
	c.hline(0, c.w-1, 1, '─', paintDim)
	for _, span := range v.vp.MonthSpans() {
		width := span.Days * v.vp.CellWidth
		c.text(x, 0, formatter.Truncate(span.Label, width-1), paintHeader)
		c.set(x, 1, '┬', paintDim)
		x += width
	}
}

func (v *ganttView) drawTodayMarker(c *canvas, l *timeline.Layout) {
	if !v.vp.Contains(v.today) {
		return
	}
	x := labelWidth + domain.DaysBetween(v.vp.Start, v.today)*v.vp.CellWidth
	c.vline(x, headerRows, headerRows+l.HeightPx()-1, '┊', paintDim)
}

func (v *ganttView) drawBars(c *canvas, l *timeline.Layout) {
	for _, bar := range l.Bars {
		y := headerRows + bar.Top
		p := v.barPaint(bar)

		labelPaint := paintNone
		if bar.TaskID == v.hoverID {
			labelPaint = paintHover
		}
		c.text(1, y, formatter.PadRight(bar.Title, labelWidth-2), labelPaint)

		if bar.Milestone {
			c.hline(labelWidth+bar.Left, labelWidth+bar.Right()-1, y, '◆', p)
			continue
		}

		filled := (bar.Width*domain.ClampProgress(bar.Progress) + 50) / 100
		for px := 0; px < bar.Width; px++ {
			r := '░'
			if px < filled {
				r = '█'
			}
			c.set(labelWidth+bar.Left+px, y, r, p)
		}
	}
}

func (v *ganttView) barPaint(bar timeline.Bar) paint {
	if bar.TaskID == v.linkTargetID {
		return paintTarget
	}
	if bar.TaskID == v.hoverID {
		return paintHover
	}
	task, ok := v.task(bar.TaskID)
	if !ok {
		return paintTodo
	}
	switch task.EffectiveStatus(v.today) {
	case domain.TaskDone:
		return paintDone
	case domain.TaskInProgress:
		return paintInProgress
	case domain.TaskBlocked:
		return paintBlocked
	case domain.TaskOverdue:
		return paintOverdue
	default:
		return paintTodo
	}
}

// drawRubberBand traces the in-progress link draw from the source handle to
// the pointer as an L-shaped dotted path.
func (v *ganttView) drawRubberBand(c *canvas) {
	g := v.machine.Active()
	if g == nil || g.Kind != timeline.GestureLinkDraw {
		return
	}
	x1, y1 := labelWidth+g.OriginX, headerRows+g.OriginY
	x2, y2 := labelWidth+g.PointerX, headerRows+g.PointerY
	c.hline(x1, x2, y1, '·', paintRubber)
	c.vline(x2, y1, y2, '·', paintRubber)
}

func (v *ganttView) renderInfoLine() string {
	var info string
	if g := v.machine.Active(); g != nil && g.Kind != timeline.GestureLinkDraw {
		if task, ok := v.task(g.TaskID); ok {
			r := g.TentativeRange(v.vp.CellWidth)
			info = fmt.Sprintf("%s  %s %s",
				formatter.Bold(task.Title),
				formatter.Dim("→"),
				formatter.StyleYellow.Render(formatter.DateSpan(r.Start, r.End)))
		}
	} else if task, ok := v.task(v.hoverID); ok && task.Schedulable() {
		info = fmt.Sprintf("%s  %s  %s  %s",
			formatter.Bold(task.Title),
			formatter.Dim(formatter.DateSpan(*task.StartDate, *task.EndDate)),
			formatter.StatusPill(task.EffectiveStatus(v.today)),
			formatter.Dim(fmt.Sprintf("%d%%", task.Progress)))
	} else if !v.hoverDay.IsZero() {
		info = formatter.Dim(formatter.HumanDate(v.hoverDay))
	}
	if v.syncing {
		if info != "" {
			info += "  "
		}
		info += formatter.Dim("syncing…")
	}
	return info
}

func (v *ganttView) renderBanner() string {
	if v.errText == "" {
		return ""
	}
	return "\n" + formatter.StyleRed.Render(v.errText) + "  " + formatter.Dim("r: reload")
}

func ganttPalette() map[paint]lipgloss.Style {
	return map[paint]lipgloss.Style{
		paintDim:        formatter.StyleDim,
		paintHeader:     formatter.StyleHeader,
		paintTodo:       formatter.StatusColor(domain.TaskTodo),
		paintInProgress: formatter.StatusColor(domain.TaskInProgress),
		paintDone:       formatter.StatusColor(domain.TaskDone),
		paintBlocked:    formatter.StatusColor(domain.TaskBlocked),
		paintOverdue:    formatter.StatusColor(domain.TaskOverdue),
		paintHover:      formatter.StyleBold,
		paintTarget:     formatter.StyleGreen.Bold(true),
		paintRubber:     formatter.StyleYellow,
	}
}
