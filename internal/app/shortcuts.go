package app

import (
	"fmt"
	"slices"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/datagrid/internal/grid"
	"github.com/zhubert/datagrid/internal/keys"
	"github.com/zhubert/datagrid/internal/layout"
	"github.com/zhubert/datagrid/internal/resize"
	"github.com/zhubert/datagrid/internal/rowstate"
	"github.com/zhubert/datagrid/internal/source"
	"github.com/zhubert/datagrid/internal/ui"
)

// Shortcut represents a keyboard shortcut with its metadata and handler.
// This is the single source of truth for all shortcuts in the application.
type Shortcut struct {
	Key         string                              // The key binding (e.g., "c", "ctrl+z")
	DisplayKey  string                              // Display name in help; defaults to Key
	Description string                              // Human-readable description
	Category    string                              // Section for help modal grouping
	Handler     func(m *Model) (tea.Model, tea.Cmd) // Action to perform
	Condition   func(m *Model) bool                 // Optional guard
}

// Categories for organizing shortcuts in the help modal
const (
	CategoryNavigation = "Navigation"
	CategoryRows       = "Rows"
	CategoryColumns    = "Columns"
	CategoryPaging     = "Paging"
	CategoryView       = "View"
	CategoryGeneral    = "General"
)

// categoryOrder defines the display order of categories in the help modal
var categoryOrder = []string{
	CategoryNavigation,
	CategoryRows,
	CategoryColumns,
	CategoryPaging,
	CategoryView,
	CategoryGeneral,
}

// Column step for keyboard resizing, in stored width units.
const keyboardResizeStep = 2 * ui.PixelsPerCell

// hscrollStep is how far ctrl+left/right scroll the unpinned columns.
const hscrollStep = 8

// ShortcutRegistry is the central registry of all keyboard shortcuts.
// Add new shortcuts here and they will automatically appear in the help modal
// and be executable from both direct key presses and the help modal.
var ShortcutRegistry = []Shortcut{
	// Navigation
	{
		Key:         keys.Left,
		DisplayKey:  "←",
		Description: "Previous column",
		Category:    CategoryNavigation,
		Handler:     func(m *Model) (tea.Model, tea.Cmd) { return m.stepColumn(-1) },
	},
	{
		Key:         keys.Right,
		DisplayKey:  "→",
		Description: "Next column",
		Category:    CategoryNavigation,
		Handler:     func(m *Model) (tea.Model, tea.Cmd) { return m.stepColumn(1) },
	},
	{
		Key:         keys.CtrlLeft,
		DisplayKey:  "ctrl+←",
		Description: "Scroll columns left",
		Category:    CategoryNavigation,
		Handler:     func(m *Model) (tea.Model, tea.Cmd) { return m.scrollColumns(-hscrollStep) },
	},
	{
		Key:         keys.CtrlRight,
		DisplayKey:  "ctrl+→",
		Description: "Scroll columns right",
		Category:    CategoryNavigation,
		Handler:     func(m *Model) (tea.Model, tea.Cmd) { return m.scrollColumns(hscrollStep) },
	},
	{
		Key:         "/",
		Description: "Search rows",
		Category:    CategoryNavigation,
		Handler:     shortcutSearch,
	},

	// Rows
	{
		Key:         keys.Enter,
		Description: "Expand or collapse focused row",
		Category:    CategoryRows,
		Handler:     shortcutToggleExpanded,
		Condition:   hasFocusedRow,
	},
	{
		Key:         "x",
		Description: "Collapse all rows",
		Category:    CategoryRows,
		Handler:     shortcutCollapseAll,
		Condition:   func(m *Model) bool { return len(m.table.ExpandedIDs()) > 0 },
	},
	{
		Key:         "X",
		Description: "Expand selected rows",
		Category:    CategoryRows,
		Handler:     shortcutExpandSelected,
		Condition:   func(m *Model) bool { return len(m.selectedOnPage()) > 0 },
	},
	{
		Key:         "a",
		Description: "Select or clear the whole page",
		Category:    CategoryRows,
		Handler:     shortcutToggleAll,
		Condition: func(m *Model) bool {
			return m.table.SelectionMode() == rowstate.ModeMultiple && len(m.table.RowIDs()) > 0
		},
	},
	{
		Key:         "y",
		Description: "Copy selected rows",
		Category:    CategoryRows,
		Handler:     shortcutCopyRows,
		Condition: func(m *Model) bool {
			return m.table.SelectedCount() > 0 || hasFocusedRow(m)
		},
	},
	{
		Key:         "E",
		Description: "Export rows to a spreadsheet",
		Category:    CategoryRows,
		Handler:     shortcutExportRows,
		Condition: func(m *Model) bool {
			return len(m.table.RowIDs()) > 0
		},
	},

	// Columns
	{
		Key:         "c",
		Description: "Manage columns",
		Category:    CategoryColumns,
		Handler:     shortcutColumns,
	},
	{
		Key:         "s",
		Description: "Sort by column (asc, desc, off)",
		Category:    CategoryColumns,
		Handler:     shortcutCycleSort,
		Condition: func(m *Model) bool {
			d, ok := m.activeDescriptor()
			return ok && d.Sortable()
		},
	},
	{
		Key:         "p",
		Description: "Pin column (start, end, off)",
		Category:    CategoryColumns,
		Handler:     shortcutCyclePin,
		Condition: func(m *Model) bool {
			d, ok := m.activeDescriptor()
			return ok && d.Pinnable()
		},
	},
	{
		Key:         "h",
		Description: "Hide column",
		Category:    CategoryColumns,
		Handler:     shortcutHideColumn,
		Condition: func(m *Model) bool {
			d, ok := m.activeDescriptor()
			return ok && d.Hideable() && len(m.table.VisibleColumnIDs()) > 1
		},
	},
	{
		Key:         keys.ShiftLeft,
		DisplayKey:  "shift+←",
		Description: "Move column left",
		Category:    CategoryColumns,
		Handler:     func(m *Model) (tea.Model, tea.Cmd) { return m.moveActiveColumn(-1) },
		Condition:   hasActiveColumn,
	},
	{
		Key:         keys.ShiftRight,
		DisplayKey:  "shift+→",
		Description: "Move column right",
		Category:    CategoryColumns,
		Handler:     func(m *Model) (tea.Model, tea.Cmd) { return m.moveActiveColumn(1) },
		Condition:   hasActiveColumn,
	},
	{
		Key:         "<",
		Description: "Narrow column",
		Category:    CategoryColumns,
		Handler:     func(m *Model) (tea.Model, tea.Cmd) { return m.resizeActiveColumn(-keyboardResizeStep) },
		Condition:   activeResizable,
	},
	{
		Key:         ">",
		Description: "Widen column",
		Category:    CategoryColumns,
		Handler:     func(m *Model) (tea.Model, tea.Cmd) { return m.resizeActiveColumn(keyboardResizeStep) },
		Condition:   activeResizable,
	},
	{
		Key:         "=",
		Description: "Reset column width",
		Category:    CategoryColumns,
		Handler:     shortcutResetWidth,
		Condition:   activeResizable,
	},

	// Paging
	{
		Key:         "]",
		Description: "Next page",
		Category:    CategoryPaging,
		Handler:     shortcutNextPage,
		Condition:   func(m *Model) bool { return m.table.Data().CanNext() },
	},
	{
		Key:         "[",
		Description: "Previous page",
		Category:    CategoryPaging,
		Handler:     shortcutPrevPage,
		Condition:   func(m *Model) bool { return m.table.Data().CanPrev() },
	},
	{
		Key:         ":",
		Description: "Go to page",
		Category:    CategoryPaging,
		Handler:     shortcutPageJump,
		Condition:   func(m *Model) bool { return m.table.Data().TotalPages() > 1 },
	},
	{
		Key:         "#",
		Description: "Change rows per page",
		Category:    CategoryPaging,
		Handler:     shortcutCyclePageSize,
	},
	{
		Key:         keys.CtrlR,
		Description: "Reload page",
		Category:    CategoryPaging,
		Handler:     shortcutRefresh,
	},

	// View
	{
		Key:         keys.CtrlZ,
		Description: "Undo",
		Category:    CategoryView,
		Handler:     shortcutUndo,
		Condition:   func(m *Model) bool { return m.table.CanUndo() },
	},
	{
		Key:         keys.CtrlShiftZ,
		Description: "Redo",
		Category:    CategoryView,
		Handler:     shortcutRedo,
		Condition:   func(m *Model) bool { return m.table.CanRedo() },
	},
	{
		Key:         keys.CtrlY,
		Description: "Redo",
		Category:    CategoryView,
		Handler:     shortcutRedo,
		Condition:   func(m *Model) bool { return m.table.CanRedo() },
	},
	{
		Key:         "d",
		Description: "Change row density",
		Category:    CategoryView,
		Handler:     shortcutDensity,
	},
	{
		Key:         "S",
		Description: "Toggle striped rows",
		Category:    CategoryView,
		Handler:     shortcutStripes,
	},
	{
		Key:         "L",
		Description: "Toggle right-to-left layout",
		Category:    CategoryView,
		Handler:     shortcutDirection,
	},
	{
		Key:         "t",
		Description: "Change theme",
		Category:    CategoryView,
		Handler:     shortcutTheme,
	},
	{
		Key:         "R",
		Description: "Reset column layout",
		Category:    CategoryView,
		Handler:     shortcutResetView,
	},

	// General
	{
		Key:         ",",
		Description: "Settings",
		Category:    CategoryGeneral,
		Handler:     shortcutSettings,
	},
	{
		Key:         "q",
		Description: "Quit",
		Category:    CategoryGeneral,
		Handler:     shortcutQuit,
	},
}

// helpShortcut is defined separately to avoid initialization cycle.
// shortcutHelp lists it, so it carries no Handler; ExecuteShortcut
// dispatches "?" directly.
var helpShortcut = Shortcut{
	Key:         "?",
	Description: "Show this help",
	Category:    CategoryGeneral,
}

// DisplayOnlyShortcuts are keys handled outside the registry, listed so the
// help modal is complete.
var DisplayOnlyShortcuts = []Shortcut{
	{DisplayKey: "↑/↓ j/k", Description: "Move focus", Category: CategoryNavigation},
	{DisplayKey: "home/g end/G", Description: "First or last row", Category: CategoryNavigation},
	{DisplayKey: "space", Description: "Select focused row", Category: CategoryRows},
	{DisplayKey: "shift+↑/↓", Description: "Extend selection", Category: CategoryRows},
	{DisplayKey: "esc", Description: "Clear selection", Category: CategoryRows},
	{DisplayKey: "click header", Description: "Sort by column", Category: CategoryColumns},
	{DisplayKey: "drag │", Description: "Resize column (esc cancels)", Category: CategoryColumns},
	{DisplayKey: "double-click │", Description: "Reset column width", Category: CategoryColumns},
	{DisplayKey: "ctrl+c", Description: "Quit", Category: CategoryGeneral},
}

func hasFocusedRow(m *Model) bool {
	_, ok := m.table.FocusedRowID()
	return ok
}

func hasActiveColumn(m *Model) bool {
	_, ok := m.activeDescriptor()
	return ok
}

func activeResizable(m *Model) bool {
	d, ok := m.activeDescriptor()
	return ok && d.Resizable()
}

// isShortcutApplicable checks if a shortcut is applicable given the current model state.
// This is used to filter which shortcuts appear in the help modal.
func (m *Model) isShortcutApplicable(s Shortcut) bool {
	return s.Condition == nil || s.Condition(m)
}

// ExecuteShortcut finds and executes a shortcut by key.
// Returns (model, cmd, true) if the shortcut was found and executed.
// Returns (model, nil, false) if the shortcut was not found or its guard failed.
func (m *Model) ExecuteShortcut(key string) (tea.Model, tea.Cmd, bool) {
	// Handle help shortcut specially (defined outside registry to avoid init cycle)
	if key == helpShortcut.Key {
		result, cmd := shortcutHelp(m)
		return result, cmd, true
	}

	for _, s := range ShortcutRegistry {
		if s.Key != key {
			continue
		}
		if !m.isShortcutApplicable(s) {
			m.log.Debug("shortcut guard failed", "key", key)
			return m, nil, false
		}
		m.log.Debug("executing shortcut", "key", key, "desc", s.Description)
		result, cmd := s.Handler(m)
		return result, cmd, true
	}
	return m, nil, false
}

// getApplicableHelpSections generates help modal sections from shortcuts that are
// applicable in the current state, followed by the display-only keys.
func (m *Model) getApplicableHelpSections(registry []Shortcut, displayOnly []Shortcut) []ui.HelpSection {
	categories := make(map[string][]ui.HelpShortcut)

	add := func(s Shortcut) {
		displayKey := s.DisplayKey
		if displayKey == "" {
			displayKey = s.Key
		}
		categories[s.Category] = append(categories[s.Category], ui.HelpShortcut{
			Key:  displayKey,
			Desc: s.Description,
		})
	}
	for _, s := range registry {
		if m.isShortcutApplicable(s) {
			add(s)
		}
	}
	for _, s := range displayOnly {
		add(s)
	}

	var sections []ui.HelpSection
	for _, cat := range categoryOrder {
		if shortcuts, ok := categories[cat]; ok && len(shortcuts) > 0 {
			sections = append(sections, ui.HelpSection{
				Title:     cat,
				Shortcuts: shortcuts,
			})
		}
	}
	return sections
}

// =============================================================================
// Column cursor
// =============================================================================

// activeDescriptor returns the column under the header cursor, if it is
// still drawn.
func (m *Model) activeDescriptor() (layout.Descriptor, bool) {
	id := m.view.ActiveColumn()
	if id == "" || !m.table.IsVisible(id) {
		return layout.Descriptor{}, false
	}
	c, ok := m.table.Column(id)
	return c.Descriptor, ok
}

// ensureActiveColumn keeps the header cursor on a drawn column after a
// layout change.
func (m *Model) ensureActiveColumn() {
	if _, ok := m.activeDescriptor(); ok {
		return
	}
	ordered := m.table.OrderedColumns()
	if len(ordered) == 0 {
		m.view.SetActiveColumn("")
		return
	}
	m.view.SetActiveColumn(ordered[0].ID)
}

// visualStep turns an on-screen step into a step through the column
// order, which runs the other way in right-to-left layouts.
func (m *Model) visualStep(delta int) int {
	if m.table.Direction() == resize.RightToLeft {
		return -delta
	}
	return delta
}

func (m *Model) stepColumn(delta int) (tea.Model, tea.Cmd) {
	ordered := m.table.OrderedColumns()
	if len(ordered) == 0 {
		return m, nil
	}
	i := slices.IndexFunc(ordered, func(c grid.Column[source.Record]) bool {
		return c.ID == m.view.ActiveColumn()
	})
	i = min(max(0, i+m.visualStep(delta)), len(ordered)-1)
	m.view.SetActiveColumn(ordered[i].ID)
	m.view.ScrollColumnIntoView(ordered[i].ID)
	return m, nil
}

func (m *Model) scrollColumns(delta int) (tea.Model, tea.Cmd) {
	m.view.ScrollHorizontal(m.visualStep(delta))
	return m, nil
}

func (m *Model) moveActiveColumn(delta int) (tea.Model, tea.Cmd) {
	dir := layout.MoveRight
	if m.visualStep(delta) < 0 {
		dir = layout.MoveLeft
	}
	id := m.view.ActiveColumn()
	if m.table.MoveColumn(id, dir) {
		m.view.ScrollColumnIntoView(id)
	}
	return m, nil
}

func (m *Model) resizeActiveColumn(delta int) (tea.Model, tea.Cmd) {
	id := m.view.ActiveColumn()
	m.table.SetWidth(id, m.table.ColumnWidth(id)+delta)
	return m, nil
}

// =============================================================================
// Shortcut Handlers
// =============================================================================

func shortcutSearch(m *Model) (tea.Model, tea.Cmd) {
	m.searchBefore = m.table.Data().SearchQuery
	return m, m.toolbar.FocusSearch(m.searchBefore)
}

func shortcutToggleExpanded(m *Model) (tea.Model, tea.Cmd) {
	if id, ok := m.table.FocusedRowID(); ok {
		m.table.ToggleExpanded(id)
		m.view.ScrollIntoView(m.table.Focused())
	}
	return m, nil
}

func shortcutCollapseAll(m *Model) (tea.Model, tea.Cmd) {
	m.table.CollapseAll()
	return m, nil
}

func shortcutExpandSelected(m *Model) (tea.Model, tea.Cmd) {
	ids := m.selectedOnPage()
	if !m.table.ExpandRows(ids) {
		return m, nil
	}
	if !m.table.AllowMultipleExpanded() && len(ids) > 1 {
		return m, m.ShowFlashInfo("Only one row can be expanded at a time")
	}
	return m, nil
}

// selectedOnPage returns the selected ids of the current page, in page order.
func (m *Model) selectedOnPage() []string {
	var ids []string
	for _, id := range m.table.RowIDs() {
		if m.table.IsSelected(id) {
			ids = append(ids, id)
		}
	}
	return ids
}

func shortcutToggleAll(m *Model) (tea.Model, tea.Cmd) {
	m.table.ToggleAllRows(!m.table.IsAllSelected())
	return m, nil
}

func shortcutCopyRows(m *Model) (tea.Model, tea.Cmd) {
	return m, m.copyRows()
}

func shortcutExportRows(m *Model) (tea.Model, tea.Cmd) {
	return m, m.exportRows()
}

func shortcutColumns(m *Model) (tea.Model, tea.Cmd) {
	state := ui.NewColumnsState(m.columnItems())
	if i := slices.IndexFunc(state.Items, func(it ui.ColumnItem) bool {
		return it.ID == m.view.ActiveColumn()
	}); i >= 0 {
		state.SelectedIndex = i
		state.SetItems(state.Items)
	}
	m.modal.Show(state)
	return m, nil
}

func shortcutCycleSort(m *Model) (tea.Model, tea.Cmd) {
	m.table.CycleSort(m.view.ActiveColumn())
	return m, nil
}

func shortcutCyclePin(m *Model) (tea.Model, tea.Cmd) {
	id := m.view.ActiveColumn()
	next := layout.SideLeft
	switch m.table.PinSide(id) {
	case layout.SideLeft:
		next = layout.SideRight
	case layout.SideRight:
		next = layout.SideNone
	}
	m.table.SetPin(id, next)
	m.view.ScrollColumnIntoView(id)
	return m, nil
}

func shortcutHideColumn(m *Model) (tea.Model, tea.Cmd) {
	id := m.view.ActiveColumn()
	name := id
	if c, ok := m.table.Column(id); ok {
		name = c.Header()
	}
	if !m.table.SetVisibility(id, false) {
		return m, nil
	}
	m.ensureActiveColumn()
	return m, m.ShowFlashInfo(fmt.Sprintf("Hid %s (c to show it again)", name))
}

func shortcutResetWidth(m *Model) (tea.Model, tea.Cmd) {
	m.table.ResetWidth(m.view.ActiveColumn())
	return m, nil
}

func shortcutNextPage(m *Model) (tea.Model, tea.Cmd) {
	m.table.NextPage()
	return m, nil
}

func shortcutPrevPage(m *Model) (tea.Model, tea.Cmd) {
	m.table.PrevPage()
	return m, nil
}

func shortcutPageJump(m *Model) (tea.Model, tea.Cmd) {
	d := m.table.Data()
	state := ui.NewPageJumpState(d.Page, d.TotalPages())
	m.modal.Show(state)
	return m, state.Input.Focus()
}

func shortcutCyclePageSize(m *Model) (tea.Model, tea.Cmd) {
	if !m.table.CyclePageSize() {
		return m, nil
	}
	return m, m.ShowFlashInfo(rowCount(m.query.PageSize) + " per page")
}

// shortcutRefresh refetches the page. Undo entries may name rows the reload
// drops, so history starts over.
func shortcutRefresh(m *Model) (tea.Model, tea.Cmd) {
	m.table.ClearHistory()
	m.needsFetch = true
	return m, nil
}

func shortcutUndo(m *Model) (tea.Model, tea.Cmd) {
	m.table.Undo()
	m.ensureActiveColumn()
	return m, nil
}

func shortcutRedo(m *Model) (tea.Model, tea.Cmd) {
	m.table.Redo()
	m.ensureActiveColumn()
	return m, nil
}

func shortcutDensity(m *Model) (tea.Model, tea.Cmd) {
	density := m.config.CycleDensity()
	m.applyDensity(density)
	return m, m.flashSetting("Row density", density)
}

func (m *Model) applyDensity(density string) {
	m.config.SetDensity(density)
	m.view.SetDensity(density)
	m.view.ScrollIntoView(max(0, m.table.Focused()))
	m.configDirty = true
}

func shortcutStripes(m *Model) (tea.Model, tea.Cmd) {
	m.applyStriped(!m.config.GetStriped())
	return m, nil
}

func (m *Model) applyStriped(striped bool) {
	m.config.SetStriped(striped)
	m.view.SetStriped(striped)
	m.configDirty = true
}

func shortcutDirection(m *Model) (tea.Model, tea.Cmd) {
	dir := resize.RightToLeft
	if m.table.Direction() == resize.RightToLeft {
		dir = resize.LeftToRight
	}
	m.applyDirection(dir)
	return m, m.flashSetting("Layout direction", dir.String())
}

// applyDirection drops any drag in progress; its pointer math assumed the
// old direction.
func (m *Model) applyDirection(dir resize.Direction) {
	m.table.CancelResize()
	m.table.SetDirection(dir)
	m.view.ResetScroll()
	m.config.SetDirection(dir.String())
	m.configDirty = true
}

func shortcutTheme(m *Model) (tea.Model, tea.Cmd) {
	name := ui.NextTheme()
	m.applyTheme(name)
	return m, m.flashSetting("Theme", ui.GetTheme(name).Name)
}

func (m *Model) applyTheme(name ui.ThemeName) {
	ui.SetTheme(name)
	m.config.SetTheme(string(name))
	m.configDirty = true
}

func shortcutSettings(m *Model) (tea.Model, tea.Cmd) {
	m.modal.Show(ui.NewSettingsState(m.currentSettings(), grid.PageSizeOptions))
	return m, nil
}

// currentSettings snapshots the preferences the settings modal edits.
func (m *Model) currentSettings() ui.Settings {
	return ui.Settings{
		Theme:         string(ui.CurrentThemeName()),
		SelectionMode: m.config.GetSelectionMode(),
		PageSize:      m.query.PageSize,
		HistoryLimit:  m.config.GetHistoryLimit(),
		Density:       m.config.GetDensity(),
		Striped:       m.config.GetStriped(),
		Direction:     m.table.Direction().String(),
	}
}

func shortcutResetView(m *Model) (tea.Model, tea.Cmd) {
	m.modal.Show(&ui.ConfirmState{
		Message: "Reset visibility, widths, pinning and order to the defaults?",
		Action:  confirmResetView,
	})
	return m, nil
}

func shortcutHelp(m *Model) (tea.Model, tea.Cmd) {
	// Include help shortcut in the registry for display purposes
	allShortcuts := append(slices.Clone(ShortcutRegistry), helpShortcut)
	sections := m.getApplicableHelpSections(allShortcuts, DisplayOnlyShortcuts)
	m.modal.Show(ui.NewHelpStateFromSections(sections))
	return m, nil
}

func shortcutQuit(m *Model) (tea.Model, tea.Cmd) {
	return m, tea.Quit
}
