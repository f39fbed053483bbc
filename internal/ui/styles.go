package ui

import "charm.land/lipgloss/v2"

// Color palette, updated by regenerateStyles when the theme changes.
var (
	ColorPrimary     = lipgloss.Color("#7C3AED") // Purple
	ColorSecondary   = lipgloss.Color("#06B6D4") // Cyan
	ColorMuted       = lipgloss.Color("#9CA3AF") // Gray
	ColorBorder      = lipgloss.Color("#374151") // Dark gray
	ColorBorderFocus = lipgloss.Color("#7C3AED") // Purple when focused
	ColorBg          = lipgloss.Color("#1F2937") // Dark background
	ColorBgSelected  = lipgloss.Color("#4C1D95") // Selected rows
	ColorBgStripe    = lipgloss.Color("#243041") // Alternate rows
	ColorBgPinned    = lipgloss.Color("#1B2330") // Pinned bands
	ColorText        = lipgloss.Color("#F9FAFB") // Light text
	ColorTextMuted   = lipgloss.Color("#9CA3AF") // Muted text
	ColorTextInverse = lipgloss.Color("#1F2937") // Dark text for light backgrounds
	ColorWarning     = lipgloss.Color("#F59E0B") // Amber
	ColorInfo        = lipgloss.Color("#06B6D4") // Cyan
	ColorError       = lipgloss.Color("#EF4444") // Red
	ColorSuccess     = lipgloss.Color("#10B981") // Green
)

// Header styles
var (
	HeaderStyle      lipgloss.Style
	HeaderTitleStyle lipgloss.Style
)

// Toolbar styles
var (
	ToolbarStyle      lipgloss.Style
	ToolbarLabelStyle lipgloss.Style
	ToolbarValueStyle lipgloss.Style
)

// Footer styles
var (
	FooterStyle     lipgloss.Style
	FooterKeyStyle  lipgloss.Style
	FooterDescStyle lipgloss.Style

	// SelectionBarStyle is the action bar shown while rows are selected.
	SelectionBarStyle lipgloss.Style
)

// Panel styles
var (
	PanelStyle        lipgloss.Style
	PanelFocusedStyle lipgloss.Style
)

// Table styles
var (
	ColumnHeaderStyle       lipgloss.Style
	ColumnHeaderPinnedStyle lipgloss.Style
	ColumnRuleStyle         lipgloss.Style
	ResizeHandleStyle       lipgloss.Style
	ResizeActiveStyle       lipgloss.Style
	SortIndicatorStyle      lipgloss.Style

	CellStyle        lipgloss.Style
	PinnedCellStyle  lipgloss.Style
	StripeRowStyle   lipgloss.Style
	SelectedRowStyle lipgloss.Style
	FocusedRowStyle  lipgloss.Style
	CheckboxStyle    lipgloss.Style
	ExpandedStyle    lipgloss.Style
	EmptyStateStyle  lipgloss.Style
)

// Modal styles
var (
	ModalStyle         lipgloss.Style
	ModalTitleStyle    lipgloss.Style
	ModalHelpStyle     lipgloss.Style
	ModalItemStyle     lipgloss.Style
	ModalSelectedStyle lipgloss.Style
)

// Status styles
var (
	StatusLoadingStyle lipgloss.Style
	StatusErrorStyle   lipgloss.Style
)

func init() {
	buildStyles()
}

// buildStyles derives every style from the current color variables.
func buildStyles() {
	HeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorText).
		Background(ColorPrimary).
		Padding(0, 1)

	HeaderTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorText)

	ToolbarStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Padding(0, 1)

	ToolbarLabelStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true)

	ToolbarValueStyle = lipgloss.NewStyle().
		Foreground(ColorText)

	FooterStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Padding(0, 1)

	FooterKeyStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSecondary)

	FooterDescStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	SelectionBarStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorText).
		Background(ColorBgSelected).
		Padding(0, 1)

	PanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder)

	PanelFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorderFocus)

	ColumnHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary)

	ColumnHeaderPinnedStyle = ColumnHeaderStyle.
		Background(ColorBgPinned)

	ColumnRuleStyle = lipgloss.NewStyle().
		Foreground(ColorBorder)

	ResizeHandleStyle = lipgloss.NewStyle().
		Foreground(ColorBorder)

	ResizeActiveStyle = lipgloss.NewStyle().
		Foreground(ColorBorderFocus).
		Bold(true)

	SortIndicatorStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary)

	CellStyle = lipgloss.NewStyle().
		Foreground(ColorText)

	PinnedCellStyle = lipgloss.NewStyle().
		Foreground(ColorText).
		Background(ColorBgPinned)

	StripeRowStyle = lipgloss.NewStyle().
		Background(ColorBgStripe)

	SelectedRowStyle = lipgloss.NewStyle().
		Background(ColorBgSelected)

	FocusedRowStyle = lipgloss.NewStyle().
		Foreground(ColorBorderFocus).
		Bold(true)

	CheckboxStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary)

	ExpandedStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true).
		PaddingLeft(CheckboxWidth)

	EmptyStateStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2).
		Width(ModalWidth)

	ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		MarginBottom(1)

	ModalHelpStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true).
		MarginTop(1)

	ModalItemStyle = lipgloss.NewStyle().
		Padding(0, 1)

	ModalSelectedStyle = lipgloss.NewStyle().
		Background(ColorBgSelected).
		Foreground(ColorText).
		Bold(true).
		Padding(0, 1)

	StatusLoadingStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Italic(true)

	StatusErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError).
		Bold(true)
}
