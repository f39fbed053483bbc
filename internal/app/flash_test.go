package app

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/datagrid/internal/config"
	"github.com/zhubert/datagrid/internal/ui"
)

func TestShowFlash(t *testing.T) {
	m := testModel(t, 5)

	tests := []struct {
		name string
		show func(string) tea.Cmd
		want ui.FlashType
	}{
		{"error", func(s string) tea.Cmd { return m.ShowFlashError(s) }, ui.FlashError},
		{"warning", func(s string) tea.Cmd { return m.ShowFlashWarning(s) }, ui.FlashWarning},
		{"info", func(s string) tea.Cmd { return m.ShowFlashInfo(s) }, ui.FlashInfo},
		{"success", func(s string) tea.Cmd { return m.ShowFlashSuccess(s) }, ui.FlashSuccess},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if cmd := tt.show(tt.name); cmd == nil {
				t.Error("expected a tick command")
			}
			flash, ok := m.footer.Flash()
			if !ok || flash.Text != tt.name || flash.Type != tt.want {
				t.Errorf("flash = %+v", flash)
			}
		})
	}
}

func TestShowFlash_ErrorsLinger(t *testing.T) {
	m := testModel(t, 5)

	m.ShowFlashError("boom")
	if flash, _ := m.footer.Flash(); flash.Duration != ErrorFlashDuration {
		t.Errorf("error duration = %v, want %v", flash.Duration, ErrorFlashDuration)
	}
	m.ShowFlashInfo("fine")
	if flash, _ := m.footer.Flash(); flash.Duration != ui.DefaultFlashDuration {
		t.Errorf("info duration = %v, want %v", flash.Duration, ui.DefaultFlashDuration)
	}
}

func TestFlashRowsResult(t *testing.T) {
	tests := []struct {
		name     string
		action   string
		verb     string
		n        int
		dest     string
		err      error
		want     string
		wantType ui.FlashType
	}{
		{"one copied", "Copy", "Copied", 1, "", nil, "Copied 1 row", ui.FlashSuccess},
		{"many exported", "Export", "Exported", 4, "out.xlsx", nil, "Exported 4 rows to out.xlsx", ui.FlashSuccess},
		{"failed", "Export", "Exported", 4, "out.xlsx", errors.New("disk full"), "Export failed: disk full", ui.FlashError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := testModel(t, 5)
			if cmd := m.flashRowsResult(tt.action, tt.verb, tt.n, tt.dest, tt.err); cmd == nil {
				t.Error("expected a tick command")
			}
			flash, _ := m.footer.Flash()
			if flash.Text != tt.want || flash.Type != tt.wantType {
				t.Errorf("flash = %q (%v), want %q (%v)", flash.Text, flash.Type, tt.want, tt.wantType)
			}
		})
	}
}

func TestFlashTick_ClearsExpired(t *testing.T) {
	m := testModel(t, 5)
	m.footer.SetFlashWithDuration("gone", ui.FlashInfo, 0)

	m.Update(ui.FlashTickMsg{})
	if m.footer.HasFlash() {
		t.Error("expected the expired flash to be cleared")
	}
}

func TestSaveConfigOrFlash(t *testing.T) {
	m := testModel(t, 5)
	if cmd := m.saveConfigOrFlash(); cmd != nil {
		t.Error("expected a clean save")
	}
	if _, err := os.Stat(m.config.Path()); err != nil {
		t.Errorf("config not written: %v", err)
	}

	// A directory where the config file should be
	path := filepath.Join(t.TempDir(), "config.json")
	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if err := os.Mkdir(path, 0755); err != nil {
		t.Fatal(err)
	}
	m.config = cfg
	if cmd := m.saveConfigOrFlash(); cmd == nil {
		t.Error("expected a flash command")
	}
	if got := flashText(t, m); !strings.HasPrefix(got, "Failed to save settings: ") {
		t.Errorf("flash = %q", got)
	}
}
