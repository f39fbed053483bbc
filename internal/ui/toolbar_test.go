package ui

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
)

func TestToolbar_View(t *testing.T) {
	tests := []struct {
		name    string
		status  ToolbarStatus
		want    []string
		notWant []string
	}{
		{
			name:    "idle",
			status:  ToolbarStatus{Page: 1, TotalPages: 3, TotalCount: 50, PageSize: 20},
			want:    []string{"/ to search", "page 1/3", "50 rows", "20/page"},
			notWant: []string{"sort"},
		},
		{
			name:   "sorted and filtered",
			status: ToolbarStatus{Page: 2, TotalPages: 2, TotalCount: 25, PageSize: 20, SortColumn: "Name", SortDir: "desc", Query: "ada"},
			want:   []string{"search ada", "sort Name ▼", "page 2/2"},
		},
		{
			name:   "density shown when not default",
			status: ToolbarStatus{Page: 1, TotalPages: 1, PageSize: 10, Density: "tall"},
			want:   []string{"tall", "page 1/1"},
		},
		{
			name:   "zero pages reads as one",
			status: ToolbarStatus{Page: 1, PageSize: 10},
			want:   []string{"page 1/1", "0 rows"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tb := NewToolbar()
			tb.SetWidth(120)
			tb.SetStatus(tt.status)

			view := ansi.Strip(tb.View())
			for _, w := range tt.want {
				if !strings.Contains(view, w) {
					t.Errorf("toolbar should contain %q, got %q", w, view)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(view, w) {
					t.Errorf("toolbar should not contain %q, got %q", w, view)
				}
			}
		})
	}
}

func TestToolbar_Search(t *testing.T) {
	tb := NewToolbar()
	tb.SetWidth(80)

	if tb.Update(tea.KeyPressMsg{Code: 'x', Text: "x"}) != nil || tb.SearchValue() != "" {
		t.Error("input should ignore keys while not searching")
	}

	tb.FocusSearch("ad")
	if !tb.IsSearching() {
		t.Fatal("expected searching after FocusSearch")
	}
	tb.Update(tea.KeyPressMsg{Code: 'a', Text: "a"})
	if got := tb.SearchValue(); got != "ada" {
		t.Errorf("search value = %q, want ada", got)
	}

	tb.BlurSearch()
	if tb.IsSearching() {
		t.Error("expected not searching after BlurSearch")
	}
	if got := tb.SearchValue(); got != "ada" {
		t.Errorf("blur should keep the value, got %q", got)
	}
}
