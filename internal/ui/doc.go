// Package ui provides the user interface components for the datagrid TUI.
//
// # Overview
//
// The ui package draws a grid.Table using the Bubble Tea framework and the
// Lipgloss styling library. Components are plain structs with SetSize/View
// methods; the app package owns the Bubble Tea model and routes messages.
//
// # Layout System
//
//	┌─────────────────────────────────────────────────────┐
//	│ Header (1 line)                                     │
//	├─────────────────────────────────────────────────────┤
//	│ Toolbar: search, page, sort (1 line)                │
//	├──────────┬──────────────────────────────┬───────────┤
//	│ pinned   │   scrolling columns          │ pinned    │
//	│ left     │                              │ right     │
//	├──────────┴──────────────────────────────┴───────────┤
//	│ Footer: flash, selection bar or bindings (1 line)   │
//	└─────────────────────────────────────────────────────┘
//
// # Components
//
// ViewContext: Singleton holding the terminal size and derived heights.
//
// TableView: Renders column headers, rows, checkboxes and expanded detail
// blocks. It is the table's focus handle: the navigator asks it to scroll
// the focused row into view. It also maps mouse coordinates back to
// columns, resize handles and rows (HitTest).
//
// Modal: Popup dialogs (help, column manager, go-to-page).
//
// # Geometry
//
// Column widths are pixels in the layout store and cells on screen; one
// cell is PixelsPerCell pixels. Pinned columns stay put while the middle
// band scrolls horizontally. In right-to-left mode the whole row is
// mirrored, so left-pinned columns sit at the right edge.
package ui
