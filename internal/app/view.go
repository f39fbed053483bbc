package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/datagrid/internal/ui"
)

// updateSizes recalculates and applies dimensions to all UI components
func (m *Model) updateSizes() {
	ctx := ui.GetViewContext()
	ctx.UpdateTerminalSize(m.width, m.height)

	m.header.SetWidth(ctx.TerminalWidth)
	m.toolbar.SetWidth(ctx.TerminalWidth)
	m.footer.SetWidth(ctx.TerminalWidth)
	m.view.SetSize(ctx.TableWidth, ctx.ContentHeight)
	if m.table.Focused() >= 0 {
		m.view.ScrollIntoView(m.table.Focused())
	}
}

// syncChrome pushes table state into the bars around it.
func (m *Model) syncChrome() {
	d := m.table.Data()

	status := ""
	switch {
	case d.Loading:
		status = "loading"
	case d.Refetching:
		status = "refreshing"
	}
	m.header.SetStatus(status)

	sortName := ""
	if c, ok := m.table.Column(d.SortColumn); ok {
		sortName = c.Header()
	}
	sortDir := ""
	if sortName != "" {
		sortDir = d.SortDirection.String()
	}
	m.toolbar.SetStatus(ui.ToolbarStatus{
		Page:       d.Page,
		TotalPages: d.TotalPages(),
		TotalCount: d.TotalCount,
		PageSize:   d.PageSize,
		SortColumn: sortName,
		SortDir:    sortDir,
		Query:      d.SearchQuery,
		Density:    m.config.GetDensity(),
	})

	_, resizing := m.table.Resizing()
	m.footer.SetContext(
		m.table.SelectedCount(),
		m.toolbar.IsSearching(),
		resizing,
		m.table.CanUndo(),
		m.table.CanRedo(),
	)
	m.view.SetFocused(!m.modal.IsVisible() && !m.toolbar.IsSearching())
}

// render lays out the header, toolbar, table and footer.
func (m *Model) render() string {
	m.syncChrome()
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.header.View(),
		m.toolbar.View(),
		m.view.View(),
		m.footer.View(),
	)
}

// View renders the app
func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion

	if m.width == 0 || m.height == 0 {
		v.SetContent("Loading...")
		return v
	}

	view := m.render()

	// Overlay modal if visible
	if m.modal.IsVisible() {
		v.SetContent(m.modal.View(m.width, m.height))
		return v
	}

	v.SetContent(view)
	return v
}

// RenderToString renders the current view as a string.
// This is useful for demos and testing.
func (m *Model) RenderToString() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	view := m.render()
	if m.modal.IsVisible() {
		return m.modal.View(m.width, m.height)
	}
	return view
}
