package ui

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// FlashType is the severity of a flash message.
type FlashType int

const (
	FlashInfo FlashType = iota
	FlashSuccess
	FlashWarning
	FlashError
)

// DefaultFlashDuration is how long a flash message stays visible.
const DefaultFlashDuration = 3 * time.Second

// FlashMessage is a transient message shown in place of the bindings.
type FlashMessage struct {
	Text      string
	Type      FlashType
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired reports whether the message has outlived its duration.
func (f *FlashMessage) IsExpired() bool {
	return time.Since(f.CreatedAt) > f.Duration
}

// FlashTickMsg drives flash expiry.
type FlashTickMsg time.Time

// FlashTick returns a command that fires once a second so expired flashes
// can be cleared.
func FlashTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return FlashTickMsg(t)
	})
}

// Footer represents the bottom footer bar with keybindings
type Footer struct {
	width        int
	bindings     []KeyBinding
	flashMessage *FlashMessage

	selectedCount int  // Rows currently selected
	searching     bool // Whether the search input has focus
	resizing      bool // Whether a column drag is in progress
	canUndo       bool
	canRedo       bool
}

// NewFooter creates a new footer
func NewFooter() *Footer {
	return &Footer{bindings: DefaultBindings()}
}

// DefaultBindings returns the hints shown when nothing is selected.
func DefaultBindings() []KeyBinding {
	return []KeyBinding{
		{Key: "↑/↓", Desc: "move"},
		{Key: "space", Desc: "select"},
		{Key: "enter", Desc: "expand"},
		{Key: "/", Desc: "search"},
		{Key: "s", Desc: "sort"},
		{Key: "c", Desc: "columns"},
		{Key: "ctrl+z", Desc: "undo"},
		{Key: "?", Desc: "help"},
		{Key: "q", Desc: "quit"},
	}
}

// SetContext updates the footer's context for conditional bindings
func (f *Footer) SetContext(selectedCount int, searching, resizing, canUndo, canRedo bool) {
	f.selectedCount = selectedCount
	f.searching = searching
	f.resizing = resizing
	f.canUndo = canUndo
	f.canRedo = canRedo
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// SetBindings replaces the idle hints
func (f *Footer) SetBindings(bindings []KeyBinding) {
	f.bindings = bindings
}

// SetFlash shows a message for DefaultFlashDuration.
func (f *Footer) SetFlash(text string, flashType FlashType) {
	f.SetFlashWithDuration(text, flashType, DefaultFlashDuration)
}

// SetFlashWithDuration shows a message for d.
func (f *Footer) SetFlashWithDuration(text string, flashType FlashType, d time.Duration) {
	f.flashMessage = &FlashMessage{
		Text:      text,
		Type:      flashType,
		CreatedAt: time.Now(),
		Duration:  d,
	}
}

// ClearFlash removes the flash message.
func (f *Footer) ClearFlash() {
	f.flashMessage = nil
}

// HasFlash reports whether a flash message is showing.
func (f *Footer) HasFlash() bool {
	return f.flashMessage != nil
}

// Flash returns the flash message being shown.
func (f *Footer) Flash() (FlashMessage, bool) {
	if f.flashMessage == nil {
		return FlashMessage{}, false
	}
	return *f.flashMessage, true
}

// ClearIfExpired drops an expired flash and reports whether it did.
func (f *Footer) ClearIfExpired() bool {
	if f.flashMessage != nil && f.flashMessage.IsExpired() {
		f.flashMessage = nil
		return true
	}
	return false
}

func flashIcon(t FlashType) (string, lipgloss.Style) {
	switch t {
	case FlashError:
		return "✕", lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	case FlashWarning:
		return "⚠", lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	case FlashSuccess:
		return "✓", lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
	default:
		return "ℹ", lipgloss.NewStyle().Foreground(ColorInfo).Bold(true)
	}
}

func renderBindings(bindings []KeyBinding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		key := FooterKeyStyle.Render(b.Key)
		desc := FooterDescStyle.Render(": " + b.Desc)
		parts = append(parts, key+desc)
	}
	return strings.Join(parts, "  "+lipgloss.NewStyle().Foreground(ColorBorder).Render("|")+"  ")
}

// View renders the footer
func (f *Footer) View() string {
	if f.flashMessage != nil {
		icon, style := flashIcon(f.flashMessage.Type)
		content := style.Render(icon) + " " + lipgloss.NewStyle().Foreground(ColorText).Render(f.flashMessage.Text)
		return FooterStyle.Width(f.width).Render(content)
	}

	if f.resizing {
		return FooterStyle.Width(f.width).Render(renderBindings([]KeyBinding{
			{Key: "drag", Desc: "resize"},
			{Key: "release", Desc: "commit"},
			{Key: "esc", Desc: "cancel"},
		}))
	}

	if f.searching {
		return FooterStyle.Width(f.width).Render(renderBindings([]KeyBinding{
			{Key: "enter", Desc: "apply"},
			{Key: "esc", Desc: "cancel"},
		}))
	}

	if f.selectedCount > 0 {
		bar := SelectionBarStyle.Render(fmt.Sprintf("%d selected", f.selectedCount))
		actions := []KeyBinding{
			{Key: "y", Desc: "copy"},
			{Key: "a", Desc: "toggle page"},
			{Key: "esc", Desc: "clear"},
		}
		if f.canUndo {
			actions = append(actions, KeyBinding{Key: "ctrl+z", Desc: "undo"})
		}
		return FooterStyle.Width(f.width).Render(bar + "  " + renderBindings(actions))
	}

	bindings := make([]KeyBinding, 0, len(f.bindings)+1)
	for _, b := range f.bindings {
		if b.Key == "ctrl+z" && !f.canUndo {
			continue
		}
		bindings = append(bindings, b)
	}
	if f.canRedo {
		bindings = append(bindings, KeyBinding{Key: "ctrl+shift+z", Desc: "redo"})
	}
	return FooterStyle.Width(f.width).Render(renderBindings(bindings))
}
