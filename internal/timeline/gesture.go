package timeline

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/swoodhull82/labflow/internal/domain"
)

// GestureKind enumerates the pointer gestures the timeline recognizes.
type GestureKind int

const (
	GestureMove GestureKind = iota
	GestureResizeStart
	GestureResizeEnd
	GestureLinkDraw
)

func (k GestureKind) String() string {
	switch k {
	case GestureMove:
		return "move"
	case GestureResizeStart:
		return "resize-start"
	case GestureResizeEnd:
		return "resize-end"
	case GestureLinkDraw:
		return "link-draw"
	default:
		return "unknown"
	}
}

// MinDurationDays is the shortest interval a resize may produce.
const MinDurationDays = 1

// Gesture is the transient state of one pointer-down to pointer-up sequence.
type Gesture struct {
	Kind   GestureKind
	TaskID string

	// Origin pointer coordinate in layout-grid px.
	OriginX int
	OriginY int

	// Pre-gesture committed dates of the target task.
	OrigStart time.Time
	OrigEnd   time.Time

	// Live pointer position, updated on every motion event. Used for the
	// link-draw rubber band and for click-vs-drag disambiguation.
	PointerX int
	PointerY int
}

// DeltaX returns the horizontal pointer travel since the gesture began.
func (g Gesture) DeltaX() int { return g.PointerX - g.OriginX }

// Moved reports whether the pointer travelled beyond slop pixels on either
// axis. A release without movement is a click, not a drag; the distinction
// is distance, never timing.
func (g Gesture) Moved(slop int) bool {
	return abs(g.PointerX-g.OriginX) > slop || abs(g.PointerY-g.OriginY) > slop
}

// dayShift converts the pointer travel into whole days at the given zoom.
func (g Gesture) dayShift(cellWidth int) int {
	if cellWidth <= 0 {
		return 0
	}
	return int(math.Round(float64(g.DeltaX()) / float64(cellWidth)))
}

// TentativeRange computes the dates the gesture currently proposes. Moving
// shifts both ends together, preserving duration. Resizing moves one end,
// clamped so the interval never shrinks below MinDurationDays. LinkDraw
// proposes no date change.
func (g Gesture) TentativeRange(cellWidth int) DateRange {
	shift := g.dayShift(cellWidth)
	start, end := g.OrigStart, g.OrigEnd

	switch g.Kind {
	case GestureMove:
		start = start.AddDate(0, 0, shift)
		end = end.AddDate(0, 0, shift)
	case GestureResizeStart:
		start = start.AddDate(0, 0, shift)
		latest := g.OrigEnd.AddDate(0, 0, -(MinDurationDays - 1))
		if start.After(latest) {
			start = latest
		}
	case GestureResizeEnd:
		end = end.AddDate(0, 0, shift)
		earliest := g.OrigStart.AddDate(0, 0, MinDurationDays-1)
		if end.Before(earliest) {
			end = earliest
		}
	}
	return DateRange{Start: start, End: end}
}

// Override exposes the tentative range in the form the layout engine
// consumes, or nil when the gesture does not reschedule.
func (g Gesture) Override(cellWidth int) *Override {
	if g.Kind == GestureLinkDraw {
		return nil
	}
	return &Override{TaskID: g.TaskID, Range: g.TentativeRange(cellWidth)}
}

// Machine tracks the single in-progress gesture.
//
// States: Idle -> {Moving, ResizingStart, ResizingEnd, LinkDrawing} -> Idle.
// Begin while a gesture is active is last-writer-wins; Release and Discard
// return to Idle unconditionally.
type Machine struct {
	active *Gesture
}

// Active returns the in-progress gesture, or nil when idle.
func (m *Machine) Active() *Gesture { return m.active }

// Begin starts a gesture at the given pointer coordinate. Any previously
// active gesture is replaced.
func (m *Machine) Begin(kind GestureKind, taskID string, x, y int, origStart, origEnd time.Time) {
	m.active = &Gesture{
		Kind:      kind,
		TaskID:    taskID,
		OriginX:   x,
		OriginY:   y,
		OrigStart: domain.DateOnly(origStart),
		OrigEnd:   domain.DateOnly(origEnd),
		PointerX:  x,
		PointerY:  y,
	}
}

// Update records a pointer motion. No-op when idle.
func (m *Machine) Update(x, y int) {
	if m.active == nil {
		return
	}
	m.active.PointerX = x
	m.active.PointerY = y
}

// Release ends the gesture at the given coordinate and returns it. The
// machine returns to Idle whether or not the caller commits the result.
func (m *Machine) Release(x, y int) (Gesture, bool) {
	if m.active == nil {
		return Gesture{}, false
	}
	g := *m.active
	g.PointerX = x
	g.PointerY = y
	m.active = nil
	return g, true
}

// Discard drops the active gesture without producing a result.
func (m *Machine) Discard() { m.active = nil }

// Link validation errors. These reject a proposed dependency locally,
// before any store call.
var (
	ErrSelfLink      = errors.New("a task cannot depend on itself")
	ErrDuplicateLink = errors.New("dependency already exists")
	ErrReverseLink   = errors.New("tasks already depend on each other")
)

// ValidateLink checks a proposed predecessor -> successor dependency against
// the committed task set. It guards self-links, direct duplicates, and the
// immediate two-node cycle (successor already a predecessor of predecessor).
// Longer cycles are not detected.
func ValidateLink(tasks []domain.Task, predecessorID, successorID string) error {
	if predecessorID == successorID {
		return ErrSelfLink
	}
	var pred, succ *domain.Task
	for i := range tasks {
		switch tasks[i].ID {
		case predecessorID:
			pred = &tasks[i]
		case successorID:
			succ = &tasks[i]
		}
	}
	if pred == nil || succ == nil {
		return fmt.Errorf("unknown task in dependency %s -> %s", predecessorID, successorID)
	}
	if succ.DependsOn(predecessorID) {
		return ErrDuplicateLink
	}
	if pred.DependsOn(successorID) {
		return ErrReverseLink
	}
	return nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
