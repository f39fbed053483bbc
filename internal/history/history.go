package history

import (
	"log/slog"

	"github.com/zhubert/datagrid/internal/logger"
)

// DefaultLimit is the number of undoable actions kept.
const DefaultLimit = 20

// Controller keeps past and future action stacks.
//
// past is ordered oldest first. future is ordered next-to-redo first.
type Controller struct {
	applier Applier
	limit   int
	past    []Action
	future  []Action
	log     *slog.Logger
}

// New creates a controller. A limit below 1 uses DefaultLimit.
func New(applier Applier, limit int) *Controller {
	if limit < 1 {
		limit = DefaultLimit
	}
	return &Controller{
		applier: applier,
		limit:   limit,
		log:     logger.WithComponent("history"),
	}
}

// Limit returns the stack capacity.
func (c *Controller) Limit() int { return c.limit }

// Record pushes an already-applied action. The redo chain is dropped and the
// oldest entry is evicted once the stack is over capacity.
func (c *Controller) Record(a Action) {
	if a == nil {
		return
	}
	c.past = append(c.past, a)
	if over := len(c.past) - c.limit; over > 0 {
		c.log.Debug("history full, evicting oldest", "evicted", c.past[0].Kind().String())
		c.past = append([]Action(nil), c.past[over:]...)
	}
	c.future = nil
	c.log.Debug("recorded", "kind", a.Kind().String(), "depth", len(c.past))
}

// Undo reverses the most recent action. It reports false when there is
// nothing to undo.
func (c *Controller) Undo() bool {
	if len(c.past) == 0 {
		return false
	}
	a := c.past[len(c.past)-1]
	c.past = c.past[:len(c.past)-1]
	a.apply(c.applier, false)
	c.future = append([]Action{a}, c.future...)
	c.log.Debug("undo", "kind", a.Kind().String())
	return true
}

// Redo re-applies the most recently undone action.
func (c *Controller) Redo() bool {
	if len(c.future) == 0 {
		return false
	}
	a := c.future[0]
	c.future = c.future[1:]
	a.apply(c.applier, true)
	c.past = append(c.past, a)
	c.log.Debug("redo", "kind", a.Kind().String())
	return true
}

// Clear drops both stacks without touching any store.
func (c *Controller) Clear() {
	c.past = nil
	c.future = nil
}

func (c *Controller) CanUndo() bool { return len(c.past) > 0 }
func (c *Controller) CanRedo() bool { return len(c.future) > 0 }

// Len returns the past and future depths.
func (c *Controller) Len() (past, future int) {
	return len(c.past), len(c.future)
}

// Peek returns the action Undo would reverse.
func (c *Controller) Peek() (Action, bool) {
	if len(c.past) == 0 {
		return nil, false
	}
	return c.past[len(c.past)-1], true
}
