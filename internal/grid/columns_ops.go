package grid

import (
	"github.com/zhubert/datagrid/internal/history"
	"github.com/zhubert/datagrid/internal/layout"
)

// SetVisibility shows or hides a column. Hiding a column that cannot be
// hidden is inert.
func (t *Table[T]) SetVisibility(id string, visible bool) bool {
	d, ok := t.layout.Descriptor(id)
	if !ok || (!visible && !d.Hideable()) {
		return false
	}
	prev := t.layout.IsVisible(id)
	if !t.layout.SetVisibility(id, visible) {
		return false
	}
	t.record(history.Visibility{ColumnID: id, Prev: prev, Next: visible})
	return true
}

// ToggleVisibility flips a column's visibility.
func (t *Table[T]) ToggleVisibility(id string) bool {
	return t.SetVisibility(id, !t.layout.IsVisible(id))
}

// SetPin pins a column to side or unpins it with layout.SideNone.
func (t *Table[T]) SetPin(id string, side layout.Side) bool {
	d, ok := t.layout.Descriptor(id)
	if !ok || !d.Pinnable() {
		return false
	}
	prevSide, prevIdx := t.layout.PinSide(id)
	if !t.layout.SetPin(id, side) {
		return false
	}
	nextSide, nextIdx := t.layout.PinSide(id)
	t.record(history.Pin{
		ColumnID:  id,
		Prev:      prevSide,
		Next:      nextSide,
		PrevIndex: prevIdx,
		NextIndex: nextIdx,
	})
	return true
}

// MoveColumn moves a column one step or to an end of the base order.
func (t *Table[T]) MoveColumn(id string, dir layout.Direction) bool {
	prev := t.layout.Order()
	if !t.layout.MoveColumn(id, dir) {
		return false
	}
	t.record(history.Order{Prev: prev, Next: t.layout.Order()})
	return true
}

// SetOrder replaces the base column order.
func (t *Table[T]) SetOrder(order []string) bool {
	prev := t.layout.Order()
	if !t.layout.SetOrder(order) {
		return false
	}
	t.record(history.Order{Prev: prev, Next: t.layout.Order()})
	return true
}

// ResetView returns every column to its defaults.
func (t *Table[T]) ResetView() bool {
	prev := t.layout.State()
	if !t.layout.Reset() {
		return false
	}
	t.record(history.ViewReset{Prev: prev, Next: t.layout.State()})
	return true
}

// BeginResize starts a width drag on a column at pointer position x.
func (t *Table[T]) BeginResize(id string, x int) bool {
	d, ok := t.layout.Descriptor(id)
	if !ok || !d.Resizable() {
		return false
	}
	t.resizer.Begin(id, x, t.layout.ResolvedWidth(id), d.Min(), d.Max())
	return true
}

// MoveResize updates the live drag width. Committed state is untouched.
func (t *Table[T]) MoveResize(x int) (int, bool) {
	return t.resizer.Move(x)
}

// EndResize commits the drag's final width, recording one history action.
func (t *Table[T]) EndResize() (int, bool) {
	return t.resizer.End()
}

// CancelResize drops a drag without committing.
func (t *Table[T]) CancelResize() {
	t.resizer.Cancel()
}

// Resizing reports the column being dragged, if any.
func (t *Table[T]) Resizing() (string, bool) {
	id, _, ok := t.resizer.Preview()
	return id, ok
}

// ResetWidth puts a column back to its default width without a drag.
func (t *Table[T]) ResetWidth(id string) bool {
	d, ok := t.layout.Descriptor(id)
	if !ok || !d.Resizable() {
		return false
	}
	t.committed = false
	t.resizer.Reset(id, d.DefaultWidth())
	return t.committed
}

// SetWidth commits an explicit width, clamped to the column's bounds.
func (t *Table[T]) SetWidth(id string, width int) bool {
	d, ok := t.layout.Descriptor(id)
	if !ok || !d.Resizable() {
		return false
	}
	return t.commitWidth(id, d.Clamp(width))
}

// commitWidth is the resize controller's commit hook.
func (t *Table[T]) commitWidth(id string, width int) bool {
	prev := t.layout.ResolvedWidth(id)
	unset := !t.layout.HasWidthOverride(id)
	if width == prev {
		return false
	}
	if !t.layout.SetWidth(id, width) {
		return false
	}
	t.record(history.Resize{ColumnID: id, Prev: prev, Next: width, PrevUnset: unset})
	return true
}

func (t *Table[T]) record(a history.Action) {
	t.history.Record(a)
}

// Undo reverses the last recorded action and restores keyboard focus.
func (t *Table[T]) Undo() bool {
	if !t.history.Undo() {
		return false
	}
	t.nav.Restore()
	return true
}

// Redo re-applies the last undone action and restores keyboard focus.
func (t *Table[T]) Redo() bool {
	if !t.history.Redo() {
		return false
	}
	t.nav.Restore()
	return true
}

func (t *Table[T]) CanUndo() bool { return t.history.CanUndo() }
func (t *Table[T]) CanRedo() bool { return t.history.CanRedo() }

// HistoryLen returns the undo and redo depths.
func (t *Table[T]) HistoryLen() (past, future int) { return t.history.Len() }

// ClearHistory drops all undo/redo state.
func (t *Table[T]) ClearHistory() { t.history.Clear() }

// VisibleColumnIDs lists visible column ids in base order.
func (t *Table[T]) VisibleColumnIDs() []string {
	var ids []string
	for _, d := range t.layout.VisibleColumns() {
		ids = append(ids, d.ID)
	}
	return ids
}
