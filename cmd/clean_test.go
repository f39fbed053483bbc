package cmd

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"lowercase y", "y\n", true},
		{"uppercase YES", "YES\n", true},
		{"y with spaces", "  y  \n", true},
		{"lowercase n", "n\n", false},
		{"empty input", "\n", false},
		{"random text", "maybe\n", false},
		{"eof", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := confirm(strings.NewReader(tt.input), io.Discard, "Test?"); got != tt.expected {
				t.Errorf("confirm(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

// stubClean replaces the log remover and resets the clean flags.
func stubClean(t *testing.T, yes, views bool) *int {
	t.Helper()
	calls := 0
	prevClear, prevYes, prevViews := clearLogs, skipConfirm, cleanViews
	clearLogs = func() (int, error) {
		calls++
		return 2, nil
	}
	skipConfirm, cleanViews = yes, views
	t.Cleanup(func() {
		clearLogs, skipConfirm, cleanViews = prevClear, prevYes, prevViews
	})
	return &calls
}

func TestRunClean(t *testing.T) {
	tests := []struct {
		name        string
		yes, views  bool
		input       string
		wantCleared bool
		wantViews   int
		wantOut     []string
	}{
		{"aborted", false, true, "n\n", false, 1, []string{"1 saved layout(s)", "Aborted."}},
		{"confirmed logs only", false, false, "y\n", true, 1, []string{"2 log file(s) removed"}},
		{"yes with views", true, true, "", true, 0, []string{"2 log file(s) removed", "1 saved layout(s) removed"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := stubClean(t, tt.yes, tt.views)
			cfg := configWithView(t)

			var buf bytes.Buffer
			if err := runClean(strings.NewReader(tt.input), &buf, cfg); err != nil {
				t.Fatalf("runClean: %v", err)
			}
			if got := *calls > 0; got != tt.wantCleared {
				t.Errorf("logs cleared = %v, want %v", got, tt.wantCleared)
			}
			if got := len(cfg.ViewTables()); got != tt.wantViews {
				t.Errorf("saved layouts = %d, want %d", got, tt.wantViews)
			}
			for _, want := range tt.wantOut {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output missing %q:\n%s", want, buf.String())
				}
			}
		})
	}
}
