// Package resize turns a pointer-drag gesture into a single committed column
// width.
//
// While a drag is in progress the controller only tracks a preview width
// that the renderer may draw directly; the layout store is not touched
// until the gesture ends, and then exactly once.
package resize

import (
	"log/slog"

	"github.com/zhubert/datagrid/internal/logger"
)

// Direction is the horizontal layout direction of the table.
type Direction int

const (
	LeftToRight Direction = iota
	RightToLeft
)

// ParseDirection converts "rtl" to RightToLeft; anything else is LeftToRight.
func ParseDirection(s string) Direction {
	if s == "rtl" {
		return RightToLeft
	}
	return LeftToRight
}

func (d Direction) String() string {
	if d == RightToLeft {
		return "rtl"
	}
	return "ltr"
}

// Phase is the state of the controller.
type Phase int

const (
	Idle Phase = iota
	Dragging
)

// CommitFunc receives the final width of a gesture.
type CommitFunc func(columnID string, width int)

// drag holds everything captured at drag start.
type drag struct {
	columnID   string
	startX     int
	startWidth int
	min, max   int
	last       int
}

// Controller is the two-state resize machine: Idle or Dragging.
type Controller struct {
	dir    Direction
	commit CommitFunc
	active *drag
	log    *slog.Logger
}

// New creates an idle controller. commit is called once per completed
// gesture and once per Reset.
func New(dir Direction, commit CommitFunc) *Controller {
	return &Controller{
		dir:    dir,
		commit: commit,
		log:    logger.WithComponent("resize"),
	}
}

// SetDirection changes the layout direction. It does not affect a drag that
// is already in progress.
func (c *Controller) SetDirection(dir Direction) {
	c.dir = dir
}

// Phase reports whether a drag is in progress.
func (c *Controller) Phase() Phase {
	if c.active != nil {
		return Dragging
	}
	return Idle
}

// Begin starts a drag on columnID at pointer position x with the column's
// current width. A Begin while already dragging abandons the previous drag
// without committing it.
func (c *Controller) Begin(columnID string, x, width, min, max int) {
	if c.active != nil {
		c.log.Warn("drag restarted before end", "column", c.active.columnID)
	}
	if max < min {
		max = min
	}
	c.active = &drag{
		columnID:   columnID,
		startX:     x,
		startWidth: width,
		min:        min,
		max:        max,
		last:       width,
	}
	c.log.Debug("drag begin", "column", columnID, "x", x, "width", width)
}

// Move updates the preview width for pointer position x. It returns the
// clamped width and false when no drag is active.
func (c *Controller) Move(x int) (int, bool) {
	d := c.active
	if d == nil {
		return 0, false
	}
	delta := x - d.startX
	if c.dir == RightToLeft {
		delta = -delta
	}
	d.last = min(d.max, max(d.min, d.startWidth+delta))
	return d.last, true
}

// End finishes the drag and commits the last computed width. It returns
// false when no drag was active.
func (c *Controller) End() (int, bool) {
	d := c.active
	if d == nil {
		return 0, false
	}
	c.active = nil
	c.log.Debug("drag end", "column", d.columnID, "from", d.startWidth, "to", d.last)
	if c.commit != nil {
		c.commit(d.columnID, d.last)
	}
	return d.last, true
}

// Cancel abandons the drag without committing.
func (c *Controller) Cancel() {
	if c.active != nil {
		c.log.Debug("drag cancelled", "column", c.active.columnID)
	}
	c.active = nil
}

// Reset handles a double activation on a column's handle: the width goes
// straight back to defaultWidth without entering the drag state. Any drag in
// progress is abandoned first.
func (c *Controller) Reset(columnID string, defaultWidth int) {
	c.active = nil
	c.log.Debug("width reset", "column", columnID, "width", defaultWidth)
	if c.commit != nil {
		c.commit(columnID, defaultWidth)
	}
}

// Preview returns the live width of the column being dragged.
func (c *Controller) Preview() (string, int, bool) {
	if c.active == nil {
		return "", 0, false
	}
	return c.active.columnID, c.active.last, true
}
