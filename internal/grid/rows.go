package grid

import (
	"slices"

	"github.com/zhubert/datagrid/internal/history"
	"github.com/zhubert/datagrid/internal/navigator"
	"github.com/zhubert/datagrid/internal/rowstate"
)

// SelectionMode returns the selection policy.
func (t *Table[T]) SelectionMode() rowstate.Mode { return t.selection.Mode() }

func (t *Table[T]) SelectedIDs() []string { return t.selection.IDs() }
func (t *Table[T]) SelectedCount() int { return t.selection.Count() }
func (t *Table[T]) IsSelected(id string) bool { return t.selection.IsSelected(id) }
func (t *Table[T]) IsExpanded(id string) bool { return t.expansion.IsExpanded(id) }
func (t *Table[T]) ExpandedIDs() []string { return t.expansion.IDs() }
func (t *Table[T]) Focused() int { return t.nav.Focused() }
func (t *Table[T]) Anchor() int { return t.nav.Anchor() }
func (t *Table[T]) AllowMultipleExpanded() bool { return t.expansion.AllowMultiple() }

// IsAllSelected reports whether every row on the current page is selected.
func (t *Table[T]) IsAllSelected() bool { return t.selection.IsAllSelected(t.rowIDs) }

// IsSomeSelected reports a partial selection of the current page.
func (t *Table[T]) IsSomeSelected() bool { return t.selection.IsSomeSelected(t.rowIDs) }

// ToggleRow flips the selection of one row.
func (t *Table[T]) ToggleRow(id string) bool {
	prev := t.selection.IDs()
	return t.recordSelection(prev, t.selection.Toggle(id))
}

// ToggleAllRows selects (or deselects) every row on the current page. It is
// inert in single selection mode.
func (t *Table[T]) ToggleAllRows(selected bool) bool {
	prev := t.selection.IDs()
	next, ok := t.selection.ToggleAll(selected, t.rowIDs)
	if !ok {
		return false
	}
	return t.recordSelection(prev, next)
}

// SetSelection replaces the selection.
func (t *Table[T]) SetSelection(ids []string) bool {
	prev := t.selection.IDs()
	return t.recordSelection(prev, t.selection.SetAll(ids))
}

// ClearSelection empties the selection.
func (t *Table[T]) ClearSelection() bool {
	prev := t.selection.IDs()
	if len(prev) == 0 {
		return false
	}
	return t.recordSelection(prev, t.selection.Clear())
}

func (t *Table[T]) recordSelection(prev, next []string) bool {
	if slices.Equal(prev, next) {
		return false
	}
	t.record(history.Selection{Prev: prev, Next: next})
	return true
}

// ToggleExpanded expands or collapses one row.
func (t *Table[T]) ToggleExpanded(id string) bool {
	prev := t.expansion.IDs()
	return t.recordExpansion(prev, t.expansion.Toggle(id))
}

// ExpandRows expands ids, honoring the single-expansion policy.
func (t *Table[T]) ExpandRows(ids []string) bool {
	prev := t.expansion.IDs()
	return t.recordExpansion(prev, t.expansion.Expand(ids))
}

// CollapseAll collapses every row.
func (t *Table[T]) CollapseAll() bool {
	prev := t.expansion.IDs()
	if len(prev) == 0 {
		return false
	}
	return t.recordExpansion(prev, t.expansion.CollapseAll())
}

func (t *Table[T]) recordExpansion(prev, next []string) bool {
	if slices.Equal(prev, next) {
		return false
	}
	t.record(history.Expansion{Prev: prev, Next: next})
	return true
}

// ExpandedText renders the detail line of an expanded row.
func (t *Table[T]) ExpandedText(rowIndex int) (string, bool) {
	if rowIndex < 0 || rowIndex >= len(t.rowIDs) || !t.expansion.IsExpanded(t.rowIDs[rowIndex]) {
		return "", false
	}
	if t.opts.RenderExpanded == nil {
		return "", false
	}
	return t.opts.RenderExpanded(t.data.Rows[rowIndex]), true
}

// HandleKey runs a navigation key through the navigator and applies the
// resulting selection change as a single history action.
func (t *Table[T]) HandleKey(ev navigator.Event) bool {
	out := t.nav.HandleKey(ev, t.rowIDs)
	if !out.Handled {
		return false
	}

	switch {
	case out.Clear:
		t.ClearSelection()
	case out.Toggle != "":
		t.ToggleRow(out.Toggle)
	case len(out.Extend) > 0:
		// Range extension has no meaning when only one row may be selected.
		if t.selection.Mode() == rowstate.ModeSingle {
			break
		}
		prev := t.selection.IDs()
		if next, ok := t.selection.ToggleAll(true, out.Extend); ok {
			t.recordSelection(prev, next)
		}
	}
	return true
}

// ClickRow focuses and anchors the clicked row and reports the click.
func (t *Table[T]) ClickRow(index int) bool {
	if !t.nav.Click(index, len(t.rowIDs)) {
		return false
	}
	if t.opts.OnRowClick != nil {
		t.opts.OnRowClick(t.data.Rows[index])
	}
	return true
}

// FocusedRowID returns the id of the focused row.
func (t *Table[T]) FocusedRowID() (string, bool) {
	i := t.nav.Focused()
	if i < 0 || i >= len(t.rowIDs) {
		return "", false
	}
	return t.rowIDs[i], true
}
