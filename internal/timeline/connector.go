package timeline

import (
	"fmt"
	"strings"

	"github.com/swoodhull82/labflow/internal/domain"
)

// Point is a layout-grid coordinate.
type Point struct {
	X int
	Y int
}

// Connector is one elbow path from a predecessor's exit point to a
// successor's entry point: a fixed horizontal stub out of the predecessor,
// a vertical segment bridging the rows, and a horizontal run into the
// successor. Points are the polyline corners in drawing order.
type Connector struct {
	Key    string
	From   string // predecessor task ID
	To     string // successor task ID
	Points []Point
}

// Connectors derives the dependency paths for the current layout. For every
// laid-out successor, each predecessor that is also present in the layout
// yields exactly one connector; predecessors outside the layout are skipped
// silently so no line dangles. Output carries no state and is recomputed
// from the committed layout on every render.
func Connectors(l *Layout, tasks []domain.Task) []Connector {
	byID := make(map[string]*domain.Task, len(tasks))
	for i := range tasks {
		byID[tasks[i].ID] = &tasks[i]
	}

	var out []Connector
	for _, succ := range l.Bars {
		task := byID[succ.TaskID]
		if task == nil {
			continue
		}
		for _, predID := range task.Dependencies {
			pred, ok := l.Bar(predID)
			if !ok {
				continue
			}
			c, ok := elbow(l.Metrics, pred, succ)
			if !ok {
				continue
			}
			out = append(out, c)
		}
	}
	return out
}

// elbow computes the path between one predecessor/successor pair. Milestones
// connect at their center; bars exit on the right edge and enter on the
// left. Same-row pairs whose exit point is already at or past the entry
// point are degenerate and produce no connector (it would point backwards).
func elbow(m Metrics, pred, succ Bar) (Connector, bool) {
	exitX, exitY := pred.Right(), pred.CenterY
	if pred.Milestone {
		exitX = pred.Left + pred.Width/2
	}
	entryX, entryY := succ.Left, succ.CenterY
	if succ.Milestone {
		entryX = succ.Left + succ.Width/2
	}

	if exitY == entryY && exitX >= entryX {
		return Connector{}, false
	}

	stub := m.ConnectorStub
	if exitY == entryY && exitX+stub > entryX {
		stub = entryX - exitX
	}

	c := Connector{
		Key:  pred.TaskID + "->" + succ.TaskID,
		From: pred.TaskID,
		To:   succ.TaskID,
	}
	if exitY == entryY {
		c.Points = []Point{{exitX, exitY}, {entryX, entryY}}
		return c, true
	}
	c.Points = []Point{
		{exitX, exitY},
		{exitX + stub, exitY},
		{exitX + stub, entryY},
		{entryX, entryY},
	}
	return c, true
}

// PathData renders the connector as an SVG path description, for consumers
// that draw outside the terminal.
func (c Connector) PathData() string {
	var b strings.Builder
	for i, p := range c.Points {
		if i == 0 {
			fmt.Fprintf(&b, "M%d,%d", p.X, p.Y)
			continue
		}
		fmt.Fprintf(&b, " L%d,%d", p.X, p.Y)
	}
	return b.String()
}
