package ui

import (
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/zhubert/datagrid/internal/layout"
)

func TestNewModal(t *testing.T) {
	modal := NewModal()

	if modal == nil {
		t.Fatal("NewModal() returned nil")
	}
	if modal.IsVisible() {
		t.Error("New modal should not be visible")
	}
	if modal.State != nil {
		t.Error("New modal should have nil state")
	}
}

func TestModal_ShowHide(t *testing.T) {
	modal := NewModal()

	modal.Show(&ConfirmState{Message: "Reset the view?"})
	if !modal.IsVisible() {
		t.Error("Modal should be visible after Show")
	}

	modal.Hide()
	if modal.IsVisible() {
		t.Error("Modal should not be visible after Hide")
	}
}

func TestModal_Error(t *testing.T) {
	modal := NewModal()

	modal.SetError("Something went wrong")
	if modal.GetError() != "Something went wrong" {
		t.Errorf("Expected error message, got %q", modal.GetError())
	}

	// Show clears error
	modal.Show(NewPageJumpState(1, 5))
	if modal.GetError() != "" {
		t.Error("Show should clear error")
	}

	modal.SetError("New error")
	modal.Hide()
	if modal.GetError() != "" {
		t.Error("Hide should clear error")
	}
}

func TestModal_View(t *testing.T) {
	modal := NewModal()

	if view := modal.View(80, 24); view != "" {
		t.Error("View should return empty string when not visible")
	}

	modal.Show(&ConfirmState{Message: "Reset the view?"})
	modal.SetError("Test error")
	view := modal.View(80, 24)
	stripped := ansi.Strip(view)
	for _, want := range []string{"Confirm", "Reset the view?", "Test error"} {
		if !strings.Contains(stripped, want) {
			t.Errorf("modal view should contain %q", want)
		}
	}
	for i, line := range strings.Split(view, "\n") {
		if w := lipgloss.Width(line); w > 80 {
			t.Errorf("line %d exceeds screen width: %d > 80", i, w)
		}
	}
}

func testColumnItems(n int) []ColumnItem {
	items := make([]ColumnItem, n)
	for i := range items {
		items[i] = ColumnItem{
			ID:       fmt.Sprintf("c%d", i),
			Name:     fmt.Sprintf("Column %d", i),
			Visible:  true,
			Hideable: true,
			Pinnable: true,
		}
	}
	return items
}

func TestColumnsState_Navigation(t *testing.T) {
	s := NewColumnsState(testColumnItems(3))

	steps := []struct {
		key  tea.KeyPressMsg
		want int
	}{
		{tea.KeyPressMsg{Code: tea.KeyUp}, 0},
		{tea.KeyPressMsg{Code: tea.KeyDown}, 1},
		{tea.KeyPressMsg{Code: 'j', Text: "j"}, 2},
		{tea.KeyPressMsg{Code: tea.KeyDown}, 2},
		{tea.KeyPressMsg{Code: 'k', Text: "k"}, 1},
	}
	for i, step := range steps {
		s.Update(step.key)
		if s.SelectedIndex != step.want {
			t.Errorf("step %d (%s): selected = %d, want %d", i, step.key.String(), s.SelectedIndex, step.want)
		}
	}
}

func TestColumnsState_SetItemsKeepsSelection(t *testing.T) {
	s := NewColumnsState(testColumnItems(3))
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})

	// c1 moved to the front
	items := testColumnItems(3)
	items[0], items[1] = items[1], items[0]
	s.SetItems(items)

	sel, ok := s.Selected()
	if !ok || sel.ID != "c1" || s.SelectedIndex != 0 {
		t.Errorf("selected = %+v at %d, want c1 at 0", sel, s.SelectedIndex)
	}

	s.SetItems(testColumnItems(1))
	if sel, _ := s.Selected(); sel.ID != "c0" {
		t.Errorf("selected = %q, want clamped to c0", sel.ID)
	}

	s.SetItems(nil)
	if _, ok := s.Selected(); ok {
		t.Error("no selection expected for an empty list")
	}
}

func TestColumnsState_Render(t *testing.T) {
	items := testColumnItems(3)
	items[0].Pin = layout.SideLeft
	items[1].Visible = false
	items[2].Hideable = false
	items[2].Pin = layout.SideRight

	view := ansi.Strip(NewColumnsState(items).Render())
	for _, want := range []string{"Columns", "[x] Column 0", "pinned start", "[ ] Column 1", "[•] Column 2", "pinned end"} {
		if !strings.Contains(view, want) {
			t.Errorf("render should contain %q:\n%s", want, view)
		}
	}
}

func TestColumnsState_Scrolls(t *testing.T) {
	s := NewColumnsState(testColumnItems(ColumnsModalMaxVisible + 5))
	for range ColumnsModalMaxVisible + 2 {
		s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}

	if s.ScrollOffset != 3 {
		t.Errorf("scroll offset = %d, want 3", s.ScrollOffset)
	}
	view := ansi.Strip(s.Render())
	if !strings.Contains(view, "more above") || !strings.Contains(view, "more below") {
		t.Errorf("expected scroll indicators:\n%s", view)
	}
	if strings.Contains(view, "Column 2 ") {
		t.Error("scrolled-off column should not render")
	}
}

func TestPageJumpState_Page(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"3", 3, false},
		{" 5 ", 5, false},
		{"1", 1, false},
		{"0", 0, true},
		{"6", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			s := NewPageJumpState(1, 5)
			s.Input.SetValue(tt.input)
			got, err := s.Page()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Page() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Page() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNewPageJumpState(t *testing.T) {
	s := NewPageJumpState(4, 0)
	if s.Input.Value() != "4" {
		t.Errorf("input = %q, want prefilled 4", s.Input.Value())
	}
	if s.TotalPages != 1 {
		t.Errorf("total pages = %d, want at least 1", s.TotalPages)
	}
	if !strings.Contains(s.Help(), "1-1") {
		t.Errorf("help = %q, want the page range", s.Help())
	}
}

func TestHelpState(t *testing.T) {
	s := NewHelpStateFromSections([]HelpSection{
		{Title: "Rows", Shortcuts: []HelpShortcut{{Key: "space", Desc: "select row"}, {Key: "enter", Desc: "expand"}}},
		{Title: "Columns", Shortcuts: []HelpShortcut{{Key: "c", Desc: "manage columns"}}},
	})

	sc := s.GetSelectedShortcut()
	if sc == nil || sc.Key != "space" {
		t.Fatalf("selected = %+v, want the first shortcut", sc)
	}
	if s.IsFiltering() {
		t.Error("should not start filtering")
	}

	s.SetSize(54, 20)
	view := ansi.Strip(s.Render())
	for _, want := range []string{"Keyboard Shortcuts", "Rows", "select row", "manage columns"} {
		if !strings.Contains(view, want) {
			t.Errorf("render should contain %q:\n%s", want, view)
		}
	}
}

func TestConfirmState_Confirmed(t *testing.T) {
	s := &ConfirmState{Message: "Reset?", Action: "reset-view"}
	tests := []struct {
		key  string
		want bool
	}{
		{"y", true},
		{"enter", true},
		{"n", false},
		{"esc", false},
	}
	for _, tt := range tests {
		if got := s.Confirmed(tt.key); got != tt.want {
			t.Errorf("Confirmed(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestChangelogState(t *testing.T) {
	entries := make([]ChangelogEntry, 5)
	for i := range entries {
		entries[i] = ChangelogEntry{
			Version: fmt.Sprintf("0.%d.0", 5-i),
			Changes: []string{fmt.Sprintf("change %d", i)},
		}
	}
	entries[0].Date = "2026-09-28"
	s := NewChangelogState(entries)

	out := ansi.Strip(s.Render())
	for _, want := range []string{"What's New", "v0.5.0 (2026-09-28)", "change 0", "v0.3.0", "scroll for more"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "v0.2.0") {
		t.Error("entries past MaxVisible should not render")
	}

	tests := []struct {
		key  tea.KeyPressMsg
		want int
	}{
		{tea.KeyPressMsg{Code: tea.KeyUp}, 0},
		{tea.KeyPressMsg{Code: tea.KeyDown}, 1},
		{tea.KeyPressMsg{Code: 'j', Text: "j"}, 2},
		{tea.KeyPressMsg{Code: tea.KeyDown}, 2},
		{tea.KeyPressMsg{Code: 'k', Text: "k"}, 1},
	}
	for _, tt := range tests {
		s.Update(tt.key)
		if s.ScrollOffset != tt.want {
			t.Errorf("after %s ScrollOffset = %d, want %d", tt.key.String(), s.ScrollOffset, tt.want)
		}
	}
}

func TestChangelogState_Help(t *testing.T) {
	s := NewChangelogState([]ChangelogEntry{{Version: "0.1.0"}})
	if got := s.Help(); got != "Press Enter or Esc to dismiss" {
		t.Errorf("Help() = %q", got)
	}
}
