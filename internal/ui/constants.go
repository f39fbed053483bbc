package ui

// Layout constants for panel sizing
const (
	// HeaderHeight is the height of the header in lines
	HeaderHeight = 1

	// ToolbarHeight is the height of the search/pagination bar
	ToolbarHeight = 1

	// FooterHeight is the height of the footer in lines
	FooterHeight = 1

	// BorderSize is the total border width (1 on each side)
	BorderSize = 2

	// TableHeaderHeight is the column header row plus its rule
	TableHeaderHeight = 2

	// MinTerminalWidth and MinTerminalHeight bound the layout from below
	MinTerminalWidth  = 40
	MinTerminalHeight = 10
)

// Column geometry. Widths are stored in pixels; the terminal draws them in cells.
const (
	// PixelsPerCell converts a stored column width to terminal cells
	PixelsPerCell = 10

	// CheckboxWidth is the selection gutter at the start of every row
	CheckboxWidth = 4

	// HandleGlyph marks the resize handle at a column's trailing edge
	HandleGlyph = "│"

	// ExpandedMaxLines caps the detail block drawn under an expanded row
	ExpandedMaxLines = 6
)

// Modal dimensions
const (
	// ModalWidth is the default width of modals
	ModalWidth = 60

	// ModalInputCharLimit is the character limit for modal text inputs
	ModalInputCharLimit = 256

	// ModalInputWidth is the width of modal text inputs
	ModalInputWidth = 50

	// SearchInputCharLimit caps the toolbar search query
	SearchInputCharLimit = 120

	// HelpModalMaxVisible is the maximum number of help rows shown at once
	HelpModalMaxVisible = 16

	// ColumnsModalMaxVisible is the maximum number of columns listed at once
	ColumnsModalMaxVisible = 12
)

// CellsForWidth converts a pixel width to at least one terminal cell.
func CellsForWidth(px int) int {
	return max(1, px/PixelsPerCell)
}
