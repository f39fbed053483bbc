package ui

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/list"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/datagrid/internal/keys"
	"github.com/zhubert/datagrid/internal/layout"
)

// ModalState is a discriminated union interface for modal-specific state.
// Each modal type implements this interface with its own state struct,
// ensuring type-safe access to modal-specific fields.
type ModalState interface {
	modalState() // marker method to restrict implementations
	Title() string
	Help() string
	Render() string
	Update(msg tea.Msg) (ModalState, tea.Cmd)
}

// ModalWithSize is implemented by modals that size themselves to the screen.
type ModalWithSize interface {
	ModalState
	SetSize(width, height int)
}

// Modal represents a popup dialog with type-safe state management.
// The State field is nil when no modal is visible.
type Modal struct {
	State ModalState
	error string
}

// NewModal creates a new modal
func NewModal() *Modal {
	return &Modal{}
}

// Show displays a modal with the given state
func (m *Modal) Show(state ModalState) {
	m.State = state
	m.error = ""
}

// Hide hides the modal
func (m *Modal) Hide() {
	m.State = nil
	m.error = ""
}

// IsVisible returns whether the modal is visible
func (m *Modal) IsVisible() bool {
	return m.State != nil
}

// SetError sets an error message
func (m *Modal) SetError(err string) {
	m.error = err
}

// GetError returns the current error message
func (m *Modal) GetError() string {
	return m.error
}

// Update handles messages by delegating to the current state
func (m *Modal) Update(msg tea.Msg) (*Modal, tea.Cmd) {
	if m.State == nil {
		return m, nil
	}
	var cmd tea.Cmd
	m.State, cmd = m.State.Update(msg)
	return m, cmd
}

// View renders the modal centered on the screen
func (m *Modal) View(screenWidth, screenHeight int) string {
	if m.State == nil {
		return ""
	}
	if sized, ok := m.State.(ModalWithSize); ok {
		sized.SetSize(ModalWidth-6, screenHeight-8)
	}

	content := m.State.Render()

	// Add error if present
	if m.error != "" {
		content += "\n" + StatusErrorStyle.Render(m.error)
	}

	modal := ModalStyle.Render(content)

	return lipgloss.Place(
		screenWidth, screenHeight,
		lipgloss.Center, lipgloss.Center,
		modal,
	)
}

// =============================================================================
// HelpState - keyboard shortcuts, filterable (bubbles list)
// =============================================================================

// HelpShortcut represents a single keyboard shortcut for display
type HelpShortcut struct {
	Key  string
	Desc string
}

// HelpSection represents a group of related shortcuts
type HelpSection struct {
	Title     string
	Shortcuts []HelpShortcut
}

// HelpShortcutTriggeredMsg is sent when the user picks a shortcut in the help modal
type HelpShortcutTriggeredMsg struct {
	Key string
}

type helpShortcutItem struct {
	shortcut HelpShortcut
}

func (i helpShortcutItem) FilterValue() string {
	return i.shortcut.Key + " " + i.shortcut.Desc
}

// helpSectionItem is a section header. It is neither selectable nor filterable.
type helpSectionItem struct {
	title string
}

func (i helpSectionItem) FilterValue() string { return "" }

type helpDelegate struct{}

func (d helpDelegate) Height() int                              { return 1 }
func (d helpDelegate) Spacing() int                             { return 0 }
func (d helpDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d helpDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	switch i := item.(type) {
	case helpSectionItem:
		fmt.Fprint(w, lipgloss.NewStyle().Bold(true).Foreground(ColorSecondary).Render(i.title))

	case helpShortcutItem:
		keyStyle := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true).Width(16)
		descStyle := lipgloss.NewStyle().Foreground(ColorText)
		prefix := "  "
		if index == m.Index() {
			keyStyle = keyStyle.Foreground(ColorTextInverse).Background(ColorPrimary)
			descStyle = descStyle.Foreground(ColorTextInverse).Background(ColorPrimary)
			prefix = "> "
		}
		fmt.Fprint(w, prefix+keyStyle.Render(i.shortcut.Key)+descStyle.Render(i.shortcut.Desc))
	}
}

// HelpState lists the keyboard shortcuts.
type HelpState struct {
	list list.Model
}

func (*HelpState) modalState() {}

func (s *HelpState) Title() string { return "Keyboard Shortcuts" }

func (s *HelpState) Help() string {
	if s.list.SettingFilter() {
		return "Type to filter  Enter: apply  Esc: cancel"
	}
	return "/: filter  up/down: navigate  Enter: trigger  Esc: close"
}

func (s *HelpState) Render() string {
	title := ModalTitleStyle.Render(s.Title())
	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, s.list.View(), help)
}

func (s *HelpState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.list, cmd = s.list.Update(msg)
	return s, cmd
}

// SetSize fits the list below the title and above the help line.
func (s *HelpState) SetSize(width, height int) {
	const titleAndHelpOverhead = 4
	s.list.SetSize(width, max(1, min(height-titleAndHelpOverhead, HelpModalMaxVisible)))
}

// GetSelectedShortcut returns the highlighted shortcut, or nil on a header.
func (s *HelpState) GetSelectedShortcut() *HelpShortcut {
	if si, ok := s.list.SelectedItem().(helpShortcutItem); ok {
		return &si.shortcut
	}
	return nil
}

// IsFiltering reports whether the user is typing a filter.
func (s *HelpState) IsFiltering() bool {
	return s.list.SettingFilter()
}

// NewHelpStateFromSections builds the help modal from grouped shortcuts.
func NewHelpStateFromSections(sections []HelpSection) *HelpState {
	var items []list.Item
	for _, section := range sections {
		items = append(items, helpSectionItem{title: section.Title})
		for _, shortcut := range section.Shortcuts {
			items = append(items, helpShortcutItem{shortcut: shortcut})
		}
	}

	l := list.New(items, helpDelegate{}, ModalWidth-6, HelpModalMaxVisible)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetShowPagination(false)
	l.DisableQuitKeybindings()
	l.SetFilteringEnabled(true)

	// Start on the first shortcut, skipping a leading header
	for i, item := range items {
		if _, ok := item.(helpShortcutItem); ok {
			l.Select(i)
			break
		}
	}

	return &HelpState{list: l}
}

// =============================================================================
// ColumnsState - show, hide, pin and reorder columns
// =============================================================================

// ColumnItem is one row of the column manager.
type ColumnItem struct {
	ID       string
	Name     string
	Visible  bool
	Pin      layout.Side
	Hideable bool
	Pinnable bool
}

// ColumnsState is the column manager. The app applies the edits and feeds
// the refreshed columns back through SetItems.
type ColumnsState struct {
	Items         []ColumnItem
	SelectedIndex int
	ScrollOffset  int
	Keys          ColumnKeyMap

	help       help.Model
	maxVisible int
}

func (*ColumnsState) modalState() {}

func (s *ColumnsState) Title() string { return "Columns" }

func (s *ColumnsState) Help() string {
	return s.help.View(s.Keys)
}

func (s *ColumnsState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	if len(s.Items) == 0 {
		empty := EmptyStateStyle.Render("No columns")
		return lipgloss.JoinVertical(lipgloss.Left, title, empty, ModalHelpStyle.Render(s.Help()))
	}

	end := min(len(s.Items), s.ScrollOffset+s.maxVisible)
	lines := make([]string, 0, end-s.ScrollOffset+2)
	if s.ScrollOffset > 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(ColorTextMuted).Render("  ↑ more above"))
	}
	for i := s.ScrollOffset; i < end; i++ {
		item := s.Items[i]

		check := "[x]"
		if !item.Visible {
			check = "[ ]"
		}
		if !item.Hideable {
			check = "[•]"
		}
		name := item.Name
		if name == "" {
			name = item.ID
		}
		var pin string
		switch item.Pin {
		case layout.SideLeft:
			pin = "pinned start"
		case layout.SideRight:
			pin = "pinned end"
		}

		line := check + " " + fit(name, 28) + " " + pin
		style := ModalItemStyle
		prefix := "  "
		if i == s.SelectedIndex {
			style = ModalSelectedStyle
			prefix = "> "
		}
		lines = append(lines, style.Render(prefix+line))
	}
	if end < len(s.Items) {
		lines = append(lines, lipgloss.NewStyle().Foreground(ColorTextMuted).Render("  ↓ more below"))
	}

	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, strings.Join(lines, "\n"), help)
}

func (s *ColumnsState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	switch {
	case key.Matches(keyMsg, s.Keys.Up):
		s.selectIndex(s.SelectedIndex - 1)
	case key.Matches(keyMsg, s.Keys.Down):
		s.selectIndex(s.SelectedIndex + 1)
	}
	return s, nil
}

func (s *ColumnsState) selectIndex(i int) {
	if len(s.Items) == 0 {
		s.SelectedIndex, s.ScrollOffset = 0, 0
		return
	}
	s.SelectedIndex = min(max(0, i), len(s.Items)-1)
	if s.SelectedIndex < s.ScrollOffset {
		s.ScrollOffset = s.SelectedIndex
	} else if s.SelectedIndex >= s.ScrollOffset+s.maxVisible {
		s.ScrollOffset = s.SelectedIndex - s.maxVisible + 1
	}
}

// Selected returns the highlighted column.
func (s *ColumnsState) Selected() (ColumnItem, bool) {
	if s.SelectedIndex < 0 || s.SelectedIndex >= len(s.Items) {
		return ColumnItem{}, false
	}
	return s.Items[s.SelectedIndex], true
}

// SetItems replaces the column list, keeping the highlight on the same
// column when it still exists.
func (s *ColumnsState) SetItems(items []ColumnItem) {
	var current string
	if sel, ok := s.Selected(); ok {
		current = sel.ID
	}
	s.Items = items
	for i, item := range items {
		if item.ID == current {
			s.selectIndex(i)
			return
		}
	}
	s.selectIndex(s.SelectedIndex)
}

// NewColumnsState creates the column manager over items.
func NewColumnsState(items []ColumnItem) *ColumnsState {
	s := &ColumnsState{
		Keys:       DefaultColumnKeyMap(),
		help:       help.New(),
		maxVisible: ColumnsModalMaxVisible,
	}
	s.SetItems(items)
	return s
}

// =============================================================================
// PageJumpState - go to a page by number
// =============================================================================

type PageJumpState struct {
	Input      textinput.Model
	TotalPages int
}

func (*PageJumpState) modalState() {}

func (s *PageJumpState) Title() string { return "Go to Page" }

func (s *PageJumpState) Help() string {
	return fmt.Sprintf("1-%d  Enter: go  Esc: cancel", s.TotalPages)
}

func (s *PageJumpState) Render() string {
	title := ModalTitleStyle.Render(s.Title())
	inputStyle := lipgloss.NewStyle().
		BorderLeft(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorPrimary).
		PaddingLeft(1)
	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, inputStyle.Render(s.Input.View()), help)
}

func (s *PageJumpState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.Input, cmd = s.Input.Update(msg)
	return s, cmd
}

// Page parses the entered page number.
func (s *PageJumpState) Page() (int, error) {
	page, err := strconv.Atoi(strings.TrimSpace(s.Input.Value()))
	if err != nil || page < 1 || page > s.TotalPages {
		return 0, fmt.Errorf("page must be between 1 and %d", s.TotalPages)
	}
	return page, nil
}

// NewPageJumpState creates the page prompt prefilled with the current page.
func NewPageJumpState(current, total int) *PageJumpState {
	ti := textinput.New()
	ti.Placeholder = "page number"
	ti.CharLimit = 9
	ti.SetWidth(ModalInputWidth)
	ti.SetValue(strconv.Itoa(current))
	ti.Focus()

	return &PageJumpState{Input: ti, TotalPages: max(1, total)}
}

// =============================================================================
// ConfirmState - yes/no prompt for destructive actions
// =============================================================================

// ConfirmState asks before running Action, such as resetting the view.
type ConfirmState struct {
	Message string
	Action  string
}

func (*ConfirmState) modalState() {}

func (s *ConfirmState) Title() string { return "Confirm" }

func (s *ConfirmState) Help() string { return "y: confirm  n/Esc: cancel" }

func (s *ConfirmState) Render() string {
	title := ModalTitleStyle.Render(s.Title())
	msg := lipgloss.NewStyle().Foreground(ColorText).Render(s.Message)
	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, msg, help)
}

func (s *ConfirmState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	return s, nil
}

// Confirmed reports whether a key accepts the prompt.
func (s *ConfirmState) Confirmed(k string) bool {
	return k == "y" || k == keys.Enter
}

// =============================================================================
// ChangelogState - "What's New" after an upgrade
// =============================================================================

// ChangelogEntry is one release shown in the changelog modal.
type ChangelogEntry struct {
	Version string
	Date    string
	Changes []string
}

type ChangelogState struct {
	Entries      []ChangelogEntry
	ScrollOffset int
	MaxVisible   int
}

func (*ChangelogState) modalState() {}

func (s *ChangelogState) Title() string { return "What's New" }

func (s *ChangelogState) Help() string {
	if len(s.Entries) > s.MaxVisible {
		return "↑/↓ scroll  Enter/Esc: dismiss"
	}
	return "Press Enter or Esc to dismiss"
}

func (s *ChangelogState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	versionStyle := lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	bullet := lipgloss.NewStyle().Foreground(ColorSecondary).Render("  - ")
	changeStyle := lipgloss.NewStyle().Foreground(ColorText).Width(ModalInputWidth)

	var b strings.Builder
	end := min(len(s.Entries), s.ScrollOffset+s.MaxVisible)
	for i := s.ScrollOffset; i < end; i++ {
		entry := s.Entries[i]
		header := "v" + entry.Version
		if entry.Date != "" {
			header += " (" + entry.Date + ")"
		}
		b.WriteString(versionStyle.Render(header))
		b.WriteByte('\n')
		for _, change := range entry.Changes {
			b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, bullet, changeStyle.Render(change)))
			b.WriteByte('\n')
		}
		if i < end-1 {
			b.WriteByte('\n')
		}
	}

	if len(s.Entries) > s.MaxVisible {
		b.WriteString(lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			Render("(scroll for more)"))
	}

	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, b.String(), help)
}

func (s *ChangelogState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case keys.Up, "k":
			if s.ScrollOffset > 0 {
				s.ScrollOffset--
			}
		case keys.Down, "j":
			if s.ScrollOffset < len(s.Entries)-s.MaxVisible {
				s.ScrollOffset++
			}
		}
	}
	return s, nil
}

// NewChangelogState creates a new ChangelogState
func NewChangelogState(entries []ChangelogEntry) *ChangelogState {
	return &ChangelogState{
		Entries:    entries,
		MaxVisible: 3,
	}
}
