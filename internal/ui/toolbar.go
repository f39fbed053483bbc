package ui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// ToolbarStatus is the paging and sort summary shown on the right.
type ToolbarStatus struct {
	Page       int
	TotalPages int
	TotalCount int
	PageSize   int
	SortColumn string // display name
	SortDir    string // "asc", "desc" or ""
	Query      string
	Density    string
}

// Toolbar holds the search input and the paging summary.
type Toolbar struct {
	width     int
	input     textinput.Model
	searching bool
	status    ToolbarStatus
}

// NewToolbar creates a toolbar with an unfocused search input.
func NewToolbar() *Toolbar {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "search rows"
	ti.CharLimit = SearchInputCharLimit
	return &Toolbar{input: ti}
}

// SetWidth sets the toolbar width
func (t *Toolbar) SetWidth(width int) {
	t.width = width
	t.input.SetWidth(max(10, width/2))
}

// SetStatus updates the paging summary.
func (t *Toolbar) SetStatus(s ToolbarStatus) {
	t.status = s
}

// FocusSearch starts editing the query, seeded with the active one.
func (t *Toolbar) FocusSearch(current string) tea.Cmd {
	t.searching = true
	t.input.SetValue(current)
	t.input.CursorEnd()
	return t.input.Focus()
}

// BlurSearch stops editing without touching the value.
func (t *Toolbar) BlurSearch() {
	t.searching = false
	t.input.Blur()
}

// IsSearching reports whether the search input has focus.
func (t *Toolbar) IsSearching() bool {
	return t.searching
}

// SearchValue returns the text in the search input.
func (t *Toolbar) SearchValue() string {
	return strings.TrimSpace(t.input.Value())
}

// Update forwards a message to the search input while it is focused.
func (t *Toolbar) Update(msg tea.Msg) tea.Cmd {
	if !t.searching {
		return nil
	}
	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	return cmd
}

func (t *Toolbar) summary() string {
	s := t.status
	var parts []string
	if s.SortColumn != "" && s.SortDir != "" {
		arrow := "▲"
		if s.SortDir == "desc" {
			arrow = "▼"
		}
		parts = append(parts, ToolbarLabelStyle.Render("sort ")+ToolbarValueStyle.Render(s.SortColumn+" "+arrow))
	}
	parts = append(parts,
		ToolbarLabelStyle.Render("page ")+ToolbarValueStyle.Render(fmt.Sprintf("%d/%d", s.Page, max(1, s.TotalPages))),
		ToolbarValueStyle.Render(fmt.Sprintf("%d rows", s.TotalCount)),
		ToolbarValueStyle.Render(fmt.Sprintf("%d/page", s.PageSize)),
	)
	if s.Density != "" && s.Density != "short" {
		parts = append(parts, ToolbarValueStyle.Render(s.Density))
	}
	return strings.Join(parts, "  ")
}

// View renders the toolbar
func (t *Toolbar) View() string {
	var left string
	switch {
	case t.searching:
		left = t.input.View()
	case t.status.Query != "":
		left = ToolbarLabelStyle.Render("search ") + ToolbarValueStyle.Render(t.status.Query)
	default:
		left = lipgloss.NewStyle().Foreground(ColorTextMuted).Render("/ to search")
	}
	right := t.summary()

	// Two cells of padding from ToolbarStyle
	gap := t.width - 2 - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return ToolbarStyle.Width(t.width).Render(left + strings.Repeat(" ", gap) + right)
}
