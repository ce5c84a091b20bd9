// Package timeline implements the scheduling timeline core: the visible
// time window, the date-to-pixel layout engine, the pointer gesture state
// machine, and the dependency connector renderer.
//
// Everything in this package is pure computation over domain tasks and
// integer pixel coordinates. The TUI maps terminal cells onto pixels 1:1;
// nothing here knows about rendering, terminals, or the store.
package timeline

import (
	"time"

	"github.com/swoodhull82/labflow/internal/domain"
)

// Zoom bounds in pixels per day cell.
const (
	MinCellWidth     = 2
	MaxCellWidth     = 12
	DefaultCellWidth = 4
)

// DefaultMonths is the initial window length.
const DefaultMonths = 3

// Viewport owns the visible date range and zoom level. All derived values
// are pure functions of (Start, Months, CellWidth).
type Viewport struct {
	Start     time.Time // first visible day, always month-aligned UTC midnight
	Months    int
	CellWidth int
}

// NewViewport creates a viewport whose window starts at the first day of
// anchor's month.
func NewViewport(anchor time.Time, months int) Viewport {
	if months < 1 {
		months = 1
	}
	return Viewport{
		Start:     monthStart(anchor),
		Months:    months,
		CellWidth: DefaultCellWidth,
	}
}

func monthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// Shift moves the window start by whole months. Unbounded in both directions.
func (v *Viewport) Shift(deltaMonths int) {
	v.Start = v.Start.AddDate(0, deltaMonths, 0)
}

// SetZoom sets the day-cell width, clamped to [MinCellWidth, MaxCellWidth].
func (v *Viewport) SetZoom(cellWidth int) {
	if cellWidth < MinCellWidth {
		cellWidth = MinCellWidth
	}
	if cellWidth > MaxCellWidth {
		cellWidth = MaxCellWidth
	}
	v.CellWidth = cellWidth
}

// End returns the last visible day (inclusive).
func (v Viewport) End() time.Time {
	return v.Start.AddDate(0, v.Months, 0).AddDate(0, 0, -1)
}

// Days returns the number of days in the visible window.
func (v Viewport) Days() int {
	return domain.DaysBetween(v.Start, v.Start.AddDate(0, v.Months, 0))
}

// WidthPx returns the total pixel width of the visible window.
func (v Viewport) WidthPx() int {
	return v.Days() * v.CellWidth
}

// DayAt inverts an x coordinate to the calendar day it falls in. Coordinates
// left of the window map to days before Start.
func (v Viewport) DayAt(x int) time.Time {
	d := x / v.CellWidth
	if x < 0 && x%v.CellWidth != 0 {
		d-- // floor division for negative coordinates
	}
	return v.Start.AddDate(0, 0, d)
}

// Contains reports whether day falls inside the visible window.
func (v Viewport) Contains(day time.Time) bool {
	d := domain.DateOnly(day)
	return !d.Before(v.Start) && !d.After(v.End())
}

// MonthSpan is one cell of the two-tier header's month row.
type MonthSpan struct {
	Label string
	Days  int
}

// MonthSpans walks every day of the window and groups consecutive days by
// month. Grouping by walked days (not by the window's calendar months) means
// partial months at the window edges get a correctly reduced span.
func (v Viewport) MonthSpans() []MonthSpan {
	var spans []MonthSpan
	end := v.Start.AddDate(0, v.Months, 0)
	for d := v.Start; d.Before(end); d = d.AddDate(0, 0, 1) {
		label := d.Format("Jan 2006")
		if len(spans) > 0 && spans[len(spans)-1].Label == label {
			spans[len(spans)-1].Days++
			continue
		}
		spans = append(spans, MonthSpan{Label: label, Days: 1})
	}
	return spans
}
