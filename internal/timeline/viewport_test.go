package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func TestNewViewportAlignsToMonthStart(t *testing.T) {
	vp := NewViewport(time.Date(2024, 7, 19, 15, 4, 0, 0, time.UTC), 3)
	assert.Equal(t, d(2024, 7, 1), vp.Start)
	assert.Equal(t, 3, vp.Months)
	assert.Equal(t, DefaultCellWidth, vp.CellWidth)
}

func TestShiftIsUnbounded(t *testing.T) {
	vp := NewViewport(d(2024, 7, 1), 2)
	vp.Shift(-30)
	assert.Equal(t, d(2022, 1, 1), vp.Start)
	vp.Shift(31)
	assert.Equal(t, d(2024, 8, 1), vp.Start)
}

func TestSetZoomClamps(t *testing.T) {
	vp := NewViewport(d(2024, 7, 1), 1)
	vp.SetZoom(1)
	assert.Equal(t, MinCellWidth, vp.CellWidth)
	vp.SetZoom(100)
	assert.Equal(t, MaxCellWidth, vp.CellWidth)
	vp.SetZoom(6)
	assert.Equal(t, 6, vp.CellWidth)
}

func TestDaysAndEnd(t *testing.T) {
	vp := NewViewport(d(2024, 7, 1), 2)
	assert.Equal(t, 62, vp.Days(), "July + August")
	assert.Equal(t, d(2024, 8, 31), vp.End())

	feb := NewViewport(d(2024, 2, 1), 1)
	assert.Equal(t, 29, feb.Days(), "2024 is a leap year")
}

func TestMonthSpansCoverWindow(t *testing.T) {
	vp := NewViewport(d(2024, 7, 1), 3)
	spans := vp.MonthSpans()
	require.Len(t, spans, 3)
	assert.Equal(t, MonthSpan{Label: "Jul 2024", Days: 31}, spans[0])
	assert.Equal(t, MonthSpan{Label: "Aug 2024", Days: 31}, spans[1])
	assert.Equal(t, MonthSpan{Label: "Sep 2024", Days: 30}, spans[2])

	total := 0
	for _, s := range spans {
		total += s.Days
	}
	assert.Equal(t, vp.Days(), total)
}

func TestMonthSpansAcrossYearBoundary(t *testing.T) {
	vp := NewViewport(d(2024, 12, 1), 2)
	spans := vp.MonthSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, "Dec 2024", spans[0].Label)
	assert.Equal(t, "Jan 2025", spans[1].Label)
}

func TestDayAt(t *testing.T) {
	vp := NewViewport(d(2024, 7, 1), 1)
	vp.SetZoom(4)
	assert.Equal(t, d(2024, 7, 1), vp.DayAt(0))
	assert.Equal(t, d(2024, 7, 1), vp.DayAt(3))
	assert.Equal(t, d(2024, 7, 2), vp.DayAt(4))
	assert.Equal(t, d(2024, 6, 30), vp.DayAt(-1), "left of the window maps to earlier days")
}

func TestContains(t *testing.T) {
	vp := NewViewport(d(2024, 7, 1), 1)
	assert.True(t, vp.Contains(d(2024, 7, 1)))
	assert.True(t, vp.Contains(d(2024, 7, 31)))
	assert.False(t, vp.Contains(d(2024, 6, 30)))
	assert.False(t, vp.Contains(d(2024, 8, 1)))
}
