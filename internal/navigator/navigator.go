// Package navigator tracks the keyboard-focused row and the anchor of a
// shift-extended range selection.
//
// The navigator does not own the selection. Key handling produces an Outcome
// describing what the selection should do, and the caller applies it so the
// change is recorded once.
package navigator

import (
	"log/slog"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/datagrid/internal/keys"
	"github.com/zhubert/datagrid/internal/logger"
)

// None marks an unset focus or anchor index.
const None = -1

// Key is a navigation key the navigator understands.
type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeySpace
	KeyEscape
)

func (k Key) String() string {
	switch k {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyHome:
		return "home"
	case KeyEnd:
		return "end"
	case KeySpace:
		return "space"
	case KeyEscape:
		return "escape"
	default:
		return "none"
	}
}

// Event is a key together with the shift modifier.
type Event struct {
	Key   Key
	Shift bool
}

// EventFromKeyPress maps a Bubble Tea key press to a navigator event.
func EventFromKeyPress(msg tea.KeyPressMsg) (Event, bool) {
	switch msg.String() {
	case keys.Up, "k":
		return Event{Key: KeyUp}, true
	case keys.Down, "j":
		return Event{Key: KeyDown}, true
	case keys.ShiftUp:
		return Event{Key: KeyUp, Shift: true}, true
	case keys.ShiftDown:
		return Event{Key: KeyDown, Shift: true}, true
	case keys.Home, "g":
		return Event{Key: KeyHome}, true
	case keys.End, "G":
		return Event{Key: KeyEnd}, true
	case keys.Space:
		return Event{Key: KeySpace}, true
	case keys.Escape:
		return Event{Key: KeyEscape}, true
	}
	return Event{}, false
}

// FocusHandle is implemented by the presentation layer. It is called whenever
// focus moves so the row can be scrolled into view.
type FocusHandle interface {
	ScrollIntoView(index int)
}

// Outcome describes the effect of one event.
type Outcome struct {
	// Handled is false when the event did nothing.
	Handled bool

	FocusChanged bool
	Focused      int

	// Extend holds row ids to union into the selection.
	Extend []string
	// Toggle is a row id whose selection membership should flip.
	Toggle string
	// Clear asks for the whole selection to be cleared.
	Clear bool
}

// Navigator holds focus and anchor indexes into the current row list.
type Navigator struct {
	focused int
	anchor  int
	handle  FocusHandle
	log     *slog.Logger
}

// New creates a navigator with no focus. handle may be nil.
func New(handle FocusHandle) *Navigator {
	return &Navigator{
		focused: None,
		anchor:  None,
		handle:  handle,
		log:     logger.WithComponent("navigator"),
	}
}

// SetHandle replaces the focus handle.
func (n *Navigator) SetHandle(h FocusHandle) { n.handle = h }

// Focused returns the focused row index or None.
func (n *Navigator) Focused() int { return n.focused }

// Anchor returns the range anchor index or None.
func (n *Navigator) Anchor() int { return n.anchor }

// HandleKey applies ev against the current page's row ids.
func (n *Navigator) HandleKey(ev Event, rowIDs []string) Outcome {
	count := len(rowIDs)

	switch ev.Key {
	case KeyEscape:
		return Outcome{Handled: true, Focused: n.focused, Clear: true}

	case KeySpace:
		if n.focused == None || n.focused >= count {
			return Outcome{Focused: n.focused}
		}
		n.anchor = n.focused
		return Outcome{Handled: true, Focused: n.focused, Toggle: rowIDs[n.focused]}

	case KeyUp, KeyDown, KeyHome, KeyEnd:
		if count == 0 {
			return Outcome{Focused: n.focused}
		}
		target := n.target(ev.Key, count)
		out := Outcome{Handled: true, Focused: target}
		if target != n.focused {
			n.focus(target)
			out.FocusChanged = true
		}
		if ev.Shift && n.anchor != None && n.anchor < count && (ev.Key == KeyUp || ev.Key == KeyDown) {
			lo, hi := min(n.anchor, target), max(n.anchor, target)
			out.Extend = append([]string(nil), rowIDs[lo:hi+1]...)
		}
		return out
	}

	return Outcome{Focused: n.focused}
}

func (n *Navigator) target(k Key, count int) int {
	switch k {
	case KeyHome:
		return 0
	case KeyEnd:
		return count - 1
	}
	if n.focused == None {
		return 0
	}
	next := n.focused + 1
	if k == KeyUp {
		next = n.focused - 1
	}
	return max(0, min(next, count-1))
}

// Click focuses the clicked row and makes it the anchor.
func (n *Navigator) Click(index, count int) bool {
	if index < 0 || index >= count {
		return false
	}
	n.anchor = index
	n.focus(index)
	return true
}

// Reset clears focus and anchor. It is called when the row set changes
// identity.
func (n *Navigator) Reset() {
	if n.focused != None || n.anchor != None {
		n.log.Debug("navigator reset", "focused", n.focused, "anchor", n.anchor)
	}
	n.focused = None
	n.anchor = None
}

// Clamp pulls focus and anchor back into a row list of length count.
func (n *Navigator) Clamp(count int) {
	if count == 0 {
		n.Reset()
		return
	}
	if n.focused >= count {
		n.focused = count - 1
	}
	if n.anchor >= count {
		n.anchor = count - 1
	}
}

// Restore re-announces the focused row to the handle, e.g. after undo
// re-renders the grid.
func (n *Navigator) Restore() {
	if n.focused != None && n.handle != nil {
		n.handle.ScrollIntoView(n.focused)
	}
}

func (n *Navigator) focus(index int) {
	n.focused = index
	if n.handle != nil {
		n.handle.ScrollIntoView(index)
	}
}
