package ui

import "time"

const (
	doubleClickThreshold = 500 * time.Millisecond
	clickTolerance       = 2 // cells
)

// ClickTracker counts rapid clicks at the same spot. The table uses it to
// tell a resize-handle drag from a double click that resets the width.
type ClickTracker struct {
	lastClickTime time.Time
	lastClickX    int
	lastClickY    int
	clickCount    int

	now func() time.Time
}

// NewClickTracker creates a tracker using the wall clock.
func NewClickTracker() *ClickTracker {
	return &ClickTracker{now: time.Now}
}

// Click records a press at (x, y) and returns how many clicks in a row it
// completes. The count restarts after a double click.
func (c *ClickTracker) Click(x, y int) int {
	now := c.now()

	if c.clickCount > 0 &&
		now.Sub(c.lastClickTime) <= doubleClickThreshold &&
		abs(x-c.lastClickX) <= clickTolerance &&
		abs(y-c.lastClickY) <= clickTolerance {
		c.clickCount++
	} else {
		c.clickCount = 1
	}

	c.lastClickTime = now
	c.lastClickX = x
	c.lastClickY = y

	n := c.clickCount
	if n >= 2 {
		c.clickCount = 0
	}
	return n
}

// Reset forgets the previous click.
func (c *ClickTracker) Reset() {
	c.clickCount = 0
}

// abs returns the absolute value of an integer
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
