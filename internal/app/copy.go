package app

import (
	"path/filepath"
	"slices"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/datagrid/internal/clipboard"
	"github.com/zhubert/datagrid/internal/export"
)

// copyRows copies the selected rows of the current page, or the focused row
// when nothing is selected, as tab-separated text under a header line.
func (m *Model) copyRows() tea.Cmd {
	ids := m.table.SelectedIDs()
	if len(ids) == 0 {
		if id, ok := m.table.FocusedRowID(); ok {
			ids = []string{id}
		}
	}
	sheet := m.sheet(ids)
	if len(sheet.Rows) == 0 {
		return m.ShowFlashWarning("No selected rows on this page")
	}

	text := clipboard.FormatRows(sheet.Header, sheet.Rows)
	n := len(sheet.Rows)
	m.log.Debug("copying rows", "rows", n, "bytes", len(text))
	return func() tea.Msg {
		return ClipboardResultMsg{Rows: n, Err: clipboard.WriteText(text)}
	}
}

// exportRows writes the selected rows of the current page, or the whole page
// when nothing is selected, to a new workbook in the export directory.
func (m *Model) exportRows() tea.Cmd {
	sheet := m.sheet(m.table.SelectedIDs())
	if len(sheet.Rows) == 0 {
		return m.ShowFlashWarning("No rows to export on this page")
	}

	dir := m.opts.ExportDir
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, export.FileName(m.opts.TableID, time.Now()))
	n := len(sheet.Rows)
	m.log.Debug("exporting rows", "rows", n, "path", path)
	return func() tea.Msg {
		return ExportResultMsg{Path: path, Rows: n, Err: export.Save(path, sheet)}
	}
}

// sheet collects the rows of the current page whose ids are in ids, or the
// whole page when ids is empty.
func (m *Model) sheet(ids []string) export.Sheet {
	if len(ids) == 0 {
		return export.FromTable(m.table, m.title(), nil)
	}
	return export.FromTable(m.table, m.title(), func(id string) bool {
		return slices.Contains(ids, id)
	})
}

func (m *Model) handleClipboardResult(msg ClipboardResultMsg) tea.Cmd {
	return m.flashRowsResult("Copy", "Copied", msg.Rows, "", msg.Err)
}

func (m *Model) handleExportResult(msg ExportResultMsg) tea.Cmd {
	return m.flashRowsResult("Export", "Exported", msg.Rows, msg.Path, msg.Err)
}
