package app

import (
	"fmt"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/datagrid/internal/keys"
	"github.com/zhubert/datagrid/internal/layout"
	"github.com/zhubert/datagrid/internal/resize"
	"github.com/zhubert/datagrid/internal/ui"
)

// confirmResetView is the ConfirmState action that restores the default layout.
const confirmResetView = "reset-view"

// handleModalKey handles key events when a modal is visible
func (m *Model) handleModalKey(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()

	switch s := m.modal.State.(type) {
	case *ui.HelpState:
		return m.handleHelpModal(key, msg, s)
	case *ui.ColumnsState:
		return m.handleColumnsModal(key, msg, s)
	case *ui.PageJumpState:
		return m.handlePageJumpModal(key, msg, s)
	case *ui.ConfirmState:
		return m.handleConfirmModal(key, msg, s)
	case *ui.ChangelogState:
		return m.handleChangelogModal(key, msg)
	case *ui.SettingsState:
		return m.handleSettingsModal(key, msg, s)
	}

	// Default: update modal
	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return cmd
}

// handleHelpModal handles key events for the Help modal.
func (m *Model) handleHelpModal(key string, msg tea.KeyPressMsg, state *ui.HelpState) tea.Cmd {
	// While filtering, every key belongs to the filter input
	if state.IsFiltering() {
		modal, cmd := m.modal.Update(msg)
		m.modal = modal
		return cmd
	}

	switch key {
	case keys.Escape, "?", "q":
		m.modal.Hide()
		return nil
	case keys.Enter:
		sc := state.GetSelectedShortcut()
		m.modal.Hide()
		if sc == nil {
			return nil
		}
		trigger := sc.Key
		return func() tea.Msg {
			return ui.HelpShortcutTriggeredMsg{Key: trigger}
		}
	}

	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return cmd
}

// handleColumnsModal applies column manager keys to the table and refreshes
// the list from the result.
func (m *Model) handleColumnsModal(_ string, msg tea.KeyPressMsg, state *ui.ColumnsState) tea.Cmd {
	if key.Matches(msg, state.Keys.Close) {
		m.modal.Hide()
		m.ensureActiveColumn()
		return nil
	}

	item, ok := state.Selected()
	if !ok {
		modal, cmd := m.modal.Update(msg)
		m.modal = modal
		return cmd
	}

	m.modal.SetError("")
	switch {
	case key.Matches(msg, state.Keys.Toggle):
		if !item.Hideable {
			m.modal.SetError(fmt.Sprintf("%s can't be hidden", item.Name))
			return nil
		}
		if item.Visible && len(m.table.VisibleColumnIDs()) == 1 {
			m.modal.SetError("At least one column must stay visible")
			return nil
		}
		m.table.ToggleVisibility(item.ID)
	case key.Matches(msg, state.Keys.PinLeft):
		m.pinFromModal(item, layout.SideLeft)
	case key.Matches(msg, state.Keys.PinRight):
		m.pinFromModal(item, layout.SideRight)
	case key.Matches(msg, state.Keys.Unpin):
		m.table.SetPin(item.ID, layout.SideNone)
	case key.Matches(msg, state.Keys.MoveUp):
		m.table.MoveColumn(item.ID, layout.MoveLeft)
	case key.Matches(msg, state.Keys.MoveDown):
		m.table.MoveColumn(item.ID, layout.MoveRight)
	case key.Matches(msg, state.Keys.First):
		m.table.MoveColumn(item.ID, layout.MoveStart)
	case key.Matches(msg, state.Keys.Last):
		m.table.MoveColumn(item.ID, layout.MoveEnd)
	case key.Matches(msg, state.Keys.Sort):
		if !m.table.CycleSort(item.ID) {
			m.modal.SetError(fmt.Sprintf("%s can't be sorted", item.Name))
		}
	case key.Matches(msg, state.Keys.Reset):
		m.table.ResetView()
	default:
		modal, cmd := m.modal.Update(msg)
		m.modal = modal
		return cmd
	}

	state.SetItems(m.columnItems())
	return nil
}

func (m *Model) pinFromModal(item ui.ColumnItem, side layout.Side) {
	if !item.Pinnable {
		m.modal.SetError(fmt.Sprintf("%s can't be pinned", item.Name))
		return
	}
	m.table.SetPin(item.ID, side)
}

// columnItems lists every column, hidden ones included, in layout order.
func (m *Model) columnItems() []ui.ColumnItem {
	st := m.table.View()
	items := make([]ui.ColumnItem, 0, len(st.Order))
	for _, id := range st.Order {
		c, ok := m.table.Column(id)
		if !ok {
			continue
		}
		items = append(items, ui.ColumnItem{
			ID:       id,
			Name:     c.Header(),
			Visible:  m.table.IsVisible(id),
			Pin:      m.table.PinSide(id),
			Hideable: c.Hideable(),
			Pinnable: c.Pinnable(),
		})
	}
	return items
}

// handlePageJumpModal handles key events for the go-to-page prompt.
func (m *Model) handlePageJumpModal(key string, msg tea.KeyPressMsg, state *ui.PageJumpState) tea.Cmd {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return nil
	case keys.Enter:
		page, err := state.Page()
		if err != nil {
			m.modal.SetError(err.Error())
			return nil
		}
		m.modal.Hide()
		m.table.SetPage(page)
		return nil
	}

	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return cmd
}

// handleConfirmModal runs the confirmed action; any other key cancels.
func (m *Model) handleConfirmModal(key string, _ tea.KeyPressMsg, state *ui.ConfirmState) tea.Cmd {
	m.modal.Hide()
	if !state.Confirmed(key) {
		return nil
	}

	switch state.Action {
	case confirmResetView:
		if !m.table.ResetView() {
			return m.ShowFlashInfo("Column layout is already the default")
		}
		m.view.ResetScroll()
		m.ensureActiveColumn()
		return m.ShowFlashSuccess("Column layout reset (ctrl+z to undo)")
	}
	m.log.Warn("unknown confirm action", "action", state.Action)
	return nil
}

// handleSettingsModal saves the settings form on Enter and discards it on Esc.
func (m *Model) handleSettingsModal(key string, msg tea.KeyPressMsg, state *ui.SettingsState) tea.Cmd {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return nil
	case keys.Enter:
		next, err := state.Values()
		if err != nil {
			m.modal.SetError(err.Error())
			return nil
		}
		m.modal.Hide()
		if !m.applySettings(state.Original(), next) {
			return nil
		}
		return m.ShowFlashSuccess("Settings saved")
	}

	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return cmd
}

// applySettings applies what changed between prev and next and reports
// whether anything did.
func (m *Model) applySettings(prev, next ui.Settings) bool {
	if prev == next {
		return false
	}
	if next.Theme != prev.Theme {
		m.applyTheme(ui.ThemeName(next.Theme))
	}
	if next.Density != prev.Density {
		m.applyDensity(next.Density)
	}
	if next.Striped != prev.Striped {
		m.applyStriped(next.Striped)
	}
	if next.Direction != prev.Direction {
		m.applyDirection(resize.ParseDirection(next.Direction))
	}
	if next.PageSize != prev.PageSize {
		m.table.SetPageSize(next.PageSize)
	}
	if next.SelectionMode != prev.SelectionMode {
		m.config.SetSelectionMode(next.SelectionMode)
	}
	if next.HistoryLimit != prev.HistoryLimit {
		m.config.SetHistoryLimit(next.HistoryLimit)
	}
	m.configDirty = true
	m.log.Debug("settings applied", "settings", fmt.Sprintf("%+v", next))
	return true
}

// handleChangelogModal handles key events for the Changelog modal.
func (m *Model) handleChangelogModal(key string, msg tea.KeyPressMsg) tea.Cmd {
	switch key {
	case keys.Enter, keys.Escape:
		m.markChangelogSeen()
		m.modal.Hide()
		return nil
	case keys.Up, "k", keys.Down, "j":
		modal, cmd := m.modal.Update(msg)
		m.modal = modal
		return cmd
	}
	return nil
}
