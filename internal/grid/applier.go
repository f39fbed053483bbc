package grid

import (
	"github.com/zhubert/datagrid/internal/layout"
)

// applier writes undo/redo values straight into the stores, bypassing the
// recording Table methods.
type applier[T any] struct {
	t *Table[T]
}

func (a applier[T]) ApplySelection(ids []string) { a.t.selection.SetAll(ids) }

func (a applier[T]) ApplyExpansion(ids []string) { a.t.expansion.SetAll(ids) }

func (a applier[T]) ApplyVisibility(id string, visible bool) {
	a.t.layout.SetVisibility(id, visible)
}

func (a applier[T]) ApplyPin(id string, side layout.Side, index int) {
	a.t.layout.SetPinAt(id, side, index)
}

func (a applier[T]) ApplyOrder(order []string) { a.t.layout.SetOrder(order) }

func (a applier[T]) ApplyResize(id string, width int) {
	if width <= 0 {
		a.t.layout.ClearWidth(id)
		return
	}
	a.t.layout.SetWidth(id, width)
}

func (a applier[T]) ApplyView(st layout.State) { a.t.layout.Restore(st) }
