package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/datagrid/internal/ui"
)

// wheelStep is how many rows or cells one wheel notch scrolls.
const wheelStep = 3

// tablePoint converts screen coordinates to table panel coordinates. The
// panel spans the full width, so only Y needs adjusting.
func (m *Model) tablePoint(x, y int) (int, int) {
	return x, y - ui.GetViewContext().TableTop()
}

// handleMouseClick maps a left click onto the table: handles start a resize
// drag (a double click resets the width), headers sort, the gutter toggles
// selection and expansion, and rows take focus.
func (m *Model) handleMouseClick(msg tea.MouseClickMsg) tea.Cmd {
	if m.modal.IsVisible() || msg.Button != tea.MouseLeft {
		return nil
	}
	x, y := m.tablePoint(msg.X, msg.Y)
	hit := m.view.HitTest(x, y)
	count := m.clicks.Click(msg.X, msg.Y)
	m.log.Debug("mouse click", "x", x, "y", y, "hit", hit.Kind, "column", hit.Column, "row", hit.Row, "count", count)

	if m.toolbar.IsSearching() && hit.Kind != ui.HitNone {
		m.toolbar.BlurSearch()
	}

	rowID := func() (string, bool) {
		ids := m.table.RowIDs()
		if hit.Row < 0 || hit.Row >= len(ids) {
			return "", false
		}
		return ids[hit.Row], true
	}

	switch hit.Kind {
	case ui.HitHandle:
		if count >= 2 {
			m.table.CancelResize()
			m.table.ResetWidth(hit.Column)
			m.clicks.Reset()
			return nil
		}
		m.view.SetActiveColumn(hit.Column)
		m.table.BeginResize(hit.Column, x*ui.PixelsPerCell)

	case ui.HitHeader:
		m.view.SetActiveColumn(hit.Column)
		m.table.CycleSort(hit.Column)

	case ui.HitSelectAll:
		m.table.ToggleAllRows(!m.table.IsAllSelected())

	case ui.HitCheckbox:
		if id, ok := rowID(); ok {
			m.table.ToggleRow(id)
		}

	case ui.HitExpand:
		if id, ok := rowID(); ok {
			m.table.ToggleExpanded(id)
		}

	case ui.HitRow, ui.HitExpanded:
		m.table.ClickRow(hit.Row)
		if count >= 2 {
			if id, ok := rowID(); ok {
				m.table.ToggleExpanded(id)
			}
			m.clicks.Reset()
		}
	}
	return nil
}

// handleMouseMotion feeds an active resize drag.
func (m *Model) handleMouseMotion(msg tea.MouseMotionMsg) {
	if _, resizing := m.table.Resizing(); !resizing {
		return
	}
	x, _ := m.tablePoint(msg.X, msg.Y)
	m.table.MoveResize(x * ui.PixelsPerCell)
}

// handleMouseRelease commits an active resize drag at the release point.
func (m *Model) handleMouseRelease(msg tea.MouseReleaseMsg) {
	if _, resizing := m.table.Resizing(); !resizing {
		return
	}
	x, _ := m.tablePoint(msg.X, msg.Y)
	m.table.MoveResize(x * ui.PixelsPerCell)
	if w, ok := m.table.EndResize(); ok {
		m.log.Debug("resize committed", "width", w)
	}
}

func (m *Model) handleMouseWheel(msg tea.MouseWheelMsg) {
	if m.modal.IsVisible() {
		return
	}
	switch msg.Button {
	case tea.MouseWheelUp:
		m.view.ScrollBy(-wheelStep)
	case tea.MouseWheelDown:
		m.view.ScrollBy(wheelStep)
	case tea.MouseWheelLeft:
		m.view.ScrollHorizontal(m.visualStep(-wheelStep))
	case tea.MouseWheelRight:
		m.view.ScrollHorizontal(m.visualStep(wheelStep))
	}
}
