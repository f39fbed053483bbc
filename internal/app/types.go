package app

import "github.com/zhubert/datagrid/internal/source"

// RowsFetchedMsg carries the result of one page fetch. Seq identifies the
// fetch so results that arrive after a newer request are dropped.
type RowsFetchedMsg struct {
	Seq    int
	Result source.Result
	Err    error
}

// SearchDebounceMsg fires after the user stops typing in the search box.
type SearchDebounceMsg struct {
	Seq int
}

// ClipboardResultMsg is sent when a copy to the clipboard completes.
type ClipboardResultMsg struct {
	Rows int
	Err  error
}

// ExportResultMsg is sent when an export file has been written.
type ExportResultMsg struct {
	Path string
	Rows int
	Err  error
}
