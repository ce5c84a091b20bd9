package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/swoodhull82/labflow/internal/timeline"
)

// paint selects the style a canvas cell is rendered with.
type paint uint8

const (
	paintNone paint = iota
	paintDim
	paintHeader
	paintTodo
	paintInProgress
	paintDone
	paintBlocked
	paintOverdue
	paintHover
	paintTarget
	paintRubber
)

// canvas is a fixed-size cell grid the schedule is composed onto. Writes
// outside the grid are dropped, which is how window clipping against a
// narrow terminal happens.
type canvas struct {
	w, h   int
	runes  []rune
	paints []paint
}

func newCanvas(w, h int) *canvas {
	c := &canvas{
		w:      w,
		h:      h,
		runes:  make([]rune, w*h),
		paints: make([]paint, w*h),
	}
	for i := range c.runes {
		c.runes[i] = ' '
	}
	return c
}

func (c *canvas) set(x, y int, r rune, p paint) {
	if x < 0 || x >= c.w || y < 0 || y >= c.h {
		return
	}
	i := y*c.w + x
	c.runes[i] = r
	c.paints[i] = p
}

func (c *canvas) hline(x1, x2, y int, r rune, p paint) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		c.set(x, y, r, p)
	}
}

func (c *canvas) vline(x, y1, y2 int, r rune, p paint) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		c.set(x, y, r, p)
	}
}

// text writes s starting at (x, y), clipped to the grid.
func (c *canvas) text(x, y int, s string, p paint) {
	for i, r := range []rune(s) {
		c.set(x+i, y, r, p)
	}
}

// render flattens the grid into styled terminal lines, grouping runs of
// equal paint to keep escape sequences down.
func (c *canvas) render(palette map[paint]lipgloss.Style) string {
	var b strings.Builder
	for y := 0; y < c.h; y++ {
		var run []rune
		cur := paintNone
		flush := func() {
			if len(run) == 0 {
				return
			}
			s := string(run)
			if cur != paintNone {
				s = palette[cur].Render(s)
			}
			b.WriteString(s)
			run = run[:0]
		}
		for x := 0; x < c.w; x++ {
			i := y*c.w + x
			if c.paints[i] != cur {
				flush()
				cur = c.paints[i]
			}
			run = append(run, c.runes[i])
		}
		flush()
		if y < c.h-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// drawConnector traces a polyline with box-drawing runes: straight runs,
// corners where the direction turns, and an arrowhead at the entry point.
func (c *canvas) drawConnector(pts []timeline.Point, dx, dy int, p paint) {
	if len(pts) < 2 {
		return
	}
	for i := 0; i < len(pts)-1; i++ {
		a, b := pts[i], pts[i+1]
		if a.Y == b.Y {
			c.hline(a.X+dx, b.X+dx, a.Y+dy, '─', p)
		} else {
			c.vline(a.X+dx, a.Y+dy, b.Y+dy, '│', p)
		}
	}
	// Corners overwrite the straight runs at every interior point.
	for i := 1; i < len(pts)-1; i++ {
		r := cornerRune(pts[i-1], pts[i], pts[i+1])
		if r != 0 {
			c.set(pts[i].X+dx, pts[i].Y+dy, r, p)
		}
	}
	last, prev := pts[len(pts)-1], pts[len(pts)-2]
	arrow := '▶'
	if last.X < prev.X {
		arrow = '◀'
	}
	c.set(last.X+dx, last.Y+dy, arrow, p)
}

// cornerRune picks the box-drawing corner for a turn at mid, based on the
// incoming and outgoing directions.
func cornerRune(prev, mid, next timeline.Point) rune {
	inX, inY := sign(mid.X-prev.X), sign(mid.Y-prev.Y)
	outX, outY := sign(next.X-mid.X), sign(next.Y-mid.Y)

	switch {
	case inX == 1 && outY == 1, inY == -1 && outX == -1:
		return '┐'
	case inX == 1 && outY == -1, inY == 1 && outX == -1:
		return '┘'
	case inX == -1 && outY == 1, inY == -1 && outX == 1:
		return '┌'
	case inX == -1 && outY == -1, inY == 1 && outX == 1:
		return '└'
	}
	return 0
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}
