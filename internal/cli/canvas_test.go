package cli

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/swoodhull82/labflow/internal/timeline"
)

func plainRender(c *canvas) string {
	return c.render(map[paint]lipgloss.Style{})
}

func TestCanvasClipsOutOfRangeWrites(t *testing.T) {
	c := newCanvas(4, 2)
	c.set(-1, 0, 'x', paintNone)
	c.set(4, 0, 'x', paintNone)
	c.set(0, 2, 'x', paintNone)
	c.hline(-5, 10, 0, '─', paintNone)
	c.vline(2, -3, 7, '│', paintNone)

	lines := strings.Split(plainRender(c), "\n")
	assert.Len(t, lines, 2)
	assert.Equal(t, "──│─", lines[0])
}

func TestCanvasTextPlacement(t *testing.T) {
	c := newCanvas(10, 1)
	c.text(2, 0, "Jul", paintNone)
	assert.Equal(t, "  Jul     ", plainRender(c))
}

func TestDrawConnectorElbow(t *testing.T) {
	c := newCanvas(12, 5)
	pts := []timeline.Point{{X: 2, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 3}, {X: 9, Y: 3}}
	c.drawConnector(pts, 0, 0, paintNone)

	out := plainRender(c)
	lines := strings.Split(out, "\n")
	// Horizontal stub, corner turning down, vertical run, corner turning
	// right, and an arrowhead at the entry point.
	assert.Equal(t, '┐', []rune(lines[0])[4])
	assert.Equal(t, '│', []rune(lines[1])[4])
	assert.Equal(t, '└', []rune(lines[3])[4])
	assert.Equal(t, '▶', []rune(lines[3])[9])
}

func TestDrawConnectorStraightRun(t *testing.T) {
	c := newCanvas(10, 1)
	pts := []timeline.Point{{X: 1, Y: 0}, {X: 6, Y: 0}}
	c.drawConnector(pts, 0, 0, paintNone)

	assert.Equal(t, " ─────▶   ", plainRender(c))
}

func TestDrawConnectorLeftwardArrow(t *testing.T) {
	c := newCanvas(10, 1)
	pts := []timeline.Point{{X: 8, Y: 0}, {X: 3, Y: 0}}
	c.drawConnector(pts, 0, 0, paintNone)

	assert.Equal(t, '◀', []rune(strings.Split(plainRender(c), "\n")[0])[3])
}
