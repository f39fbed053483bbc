package app

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/datagrid/internal/keys"
	"github.com/zhubert/datagrid/internal/navigator"
	"github.com/zhubert/datagrid/internal/ui"
)

// Update handles messages. This is the core Bubble Tea update function that routes
// all messages to appropriate handlers.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()

	case tea.KeyPressMsg:
		cmds = append(cmds, m.handleKeyPress(msg))

	case tea.MouseClickMsg:
		cmds = append(cmds, m.handleMouseClick(msg))

	case tea.MouseMotionMsg:
		m.handleMouseMotion(msg)

	case tea.MouseReleaseMsg:
		m.handleMouseRelease(msg)

	case tea.MouseWheelMsg:
		m.handleMouseWheel(msg)

	case RowsFetchedMsg:
		cmds = append(cmds, m.handleRowsFetched(msg))

	case SearchDebounceMsg:
		if msg.Seq == m.searchSeq && m.toolbar.IsSearching() {
			m.table.Search(m.toolbar.SearchValue())
		}

	case ClipboardResultMsg:
		cmds = append(cmds, m.handleClipboardResult(msg))

	case ExportResultMsg:
		cmds = append(cmds, m.handleExportResult(msg))

	case ui.FlashTickMsg:
		m.footer.ClearIfExpired()
		if m.footer.HasFlash() {
			cmds = append(cmds, ui.FlashTick())
		}

	case ui.HelpShortcutTriggeredMsg:
		_, cmd, _ := m.ExecuteShortcut(msg.Key)
		cmds = append(cmds, cmd)

	default:
		// Cursor blinks and other input internals
		switch {
		case m.modal.IsVisible():
			modal, cmd := m.modal.Update(msg)
			m.modal = modal
			cmds = append(cmds, cmd)
		case m.toolbar.IsSearching():
			cmds = append(cmds, m.toolbar.Update(msg))
		}
	}

	cmds = append(cmds, m.flushPending()...)
	return m, tea.Batch(cmds...)
}

// handleKeyPress routes a key to the modal, the search box, the row
// navigator or the shortcut registry, in that order.
func (m *Model) handleKeyPress(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()
	m.log.Debug("key press",
		"key", key,
		"modal", m.modal.IsVisible(),
		"searching", m.toolbar.IsSearching())

	// ctrl+c always quits
	if key == keys.CtrlC {
		return tea.Quit
	}

	if m.modal.IsVisible() {
		return m.handleModalKey(msg)
	}

	if m.toolbar.IsSearching() {
		return m.handleSearchKey(msg)
	}

	// Keys are ignored mid-drag except esc, which abandons it.
	if _, resizing := m.table.Resizing(); resizing {
		if key == keys.Escape {
			m.table.CancelResize()
			m.log.Debug("resize cancelled from keyboard")
		}
		return nil
	}

	if ev, ok := navigator.EventFromKeyPress(msg); ok && m.table.HandleKey(ev) {
		return nil
	}

	_, cmd, _ := m.ExecuteShortcut(key)
	return cmd
}

// handleSearchKey edits the search query. Typing sends the query after a
// pause; enter sends it at once and esc restores the previous one.
func (m *Model) handleSearchKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case keys.Enter:
		m.toolbar.BlurSearch()
		m.table.Search(m.toolbar.SearchValue())
		return nil
	case keys.Escape:
		m.toolbar.BlurSearch()
		m.table.Search(m.searchBefore)
		return nil
	}

	before := m.toolbar.SearchValue()
	cmd := m.toolbar.Update(msg)
	if m.toolbar.SearchValue() == before {
		return cmd
	}
	m.searchSeq++
	seq := m.searchSeq
	return tea.Batch(cmd, tea.Tick(SearchDebounce, func(time.Time) tea.Msg {
		return SearchDebounceMsg{Seq: seq}
	}))
}

// handleRowsFetched installs a fetched page. Results of superseded fetches
// are dropped.
func (m *Model) handleRowsFetched(msg RowsFetchedMsg) tea.Cmd {
	if msg.Seq != m.fetchSeq {
		m.log.Debug("dropping stale rows", "seq", msg.Seq, "current", m.fetchSeq)
		return nil
	}
	m.cancelFetch = nil

	if msg.Err != nil {
		d := m.table.Data()
		d.Loading, d.Refetching = false, false
		m.table.SetServerData(d)
		if errors.Is(msg.Err, context.Canceled) {
			return nil
		}
		m.log.Warn("fetch failed", "seq", msg.Seq, "error", msg.Err)
		return m.ShowFlashError("Failed to load rows: " + msg.Err.Error())
	}

	res := msg.Result
	// A filter or size change can leave the requested page past the end.
	if len(res.Rows) == 0 && res.TotalCount > 0 && res.Query.Page > 1 && res.Query.PageSize > 0 {
		m.query.Page = (res.TotalCount + res.Query.PageSize - 1) / res.Query.PageSize
		m.needsFetch = true
		m.log.Debug("page past the end", "page", res.Query.Page, "last", m.query.Page)
		return nil
	}

	prev := m.table.Data()
	m.table.SetServerData(m.serverData(res.Query, res.Rows, res.TotalCount))
	if prev.Page != res.Query.Page || prev.SortColumn != res.Query.SortColumn ||
		prev.SortDirection != res.Query.SortDirection || prev.SearchQuery != res.Query.Search {
		m.view.ScrollBy(-m.view.Offset())
	}
	m.log.Debug("rows installed", "seq", msg.Seq, "rows", len(res.Rows), "total", res.TotalCount)
	return nil
}
