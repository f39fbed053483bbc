package logger

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// setupTestLogger creates a temp log file and initializes the logger with it.
func setupTestLogger(t *testing.T) string {
	t.Helper()
	Reset()

	logPath := filepath.Join(t.TempDir(), "test-debug.log")
	if err := Init(logPath); err != nil {
		t.Fatalf("Failed to init logger: %v", err)
	}
	t.Cleanup(Reset)
	return logPath
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	return string(content)
}

func TestInit_WritesHeader(t *testing.T) {
	logPath := setupTestLogger(t)

	if !strings.Contains(readLog(t, logPath), "Logger initialized") {
		t.Error("log file should contain the initialization line")
	}
	if Path() != logPath {
		t.Errorf("Path() = %q, want %q", Path(), logPath)
	}
}

func TestInit_SecondCallIsNoop(t *testing.T) {
	logPath := setupTestLogger(t)

	other := filepath.Join(t.TempDir(), "other.log")
	if err := Init(other); err != nil {
		t.Fatalf("second Init returned error: %v", err)
	}
	if Path() != logPath {
		t.Errorf("Path() = %q, want %q", Path(), logPath)
	}
}

func TestLevels(t *testing.T) {
	tests := []struct {
		name      string
		debug     bool
		wantDebug bool
	}{
		{"info level hides debug", false, false},
		{"debug level shows debug", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logPath := setupTestLogger(t)
			SetDebug(tt.debug)

			Debug("debug-marker-%d", 1)
			Info("info-marker")
			Warn("warn-marker")
			Error("error-marker")

			content := readLog(t, logPath)
			if got := strings.Contains(content, "debug-marker-1"); got != tt.wantDebug {
				t.Errorf("debug line present = %v, want %v", got, tt.wantDebug)
			}
			for _, marker := range []string{"info-marker", "warn-marker", "error-marker"} {
				if !strings.Contains(content, marker) {
					t.Errorf("log should contain %q", marker)
				}
			}
		})
	}
}

func TestWithComponent(t *testing.T) {
	logPath := setupTestLogger(t)

	WithComponent("layout").Info("column moved", "column", "name")

	content := readLog(t, logPath)
	if !strings.Contains(content, "component=layout") {
		t.Error("log line should carry the component attribute")
	}
	if !strings.Contains(content, "column=name") {
		t.Error("log line should carry the structured attribute")
	}
}

func TestWithTable(t *testing.T) {
	logPath := setupTestLogger(t)

	WithTable("orders").Info("rows loaded")

	if !strings.Contains(readLog(t, logPath), "table=orders") {
		t.Error("log line should carry the table attribute")
	}
}

func TestClose_ThenLogDoesNotPanic(t *testing.T) {
	setupTestLogger(t)
	Close()

	Info("after close")
	WithComponent("x").Info("after close")
}

func TestConcurrentLogging(t *testing.T) {
	setupTestLogger(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				Info("goroutine %d message %d", n, j)
			}
		}(i)
	}
	wg.Wait()
}

func TestClearLogs(t *testing.T) {
	dir := t.TempDir()
	prev := logGlob
	logGlob = filepath.Join(dir, "datagrid-*.log")
	t.Cleanup(func() { logGlob = prev })

	for _, name := range []string{"datagrid-debug.log", "datagrid-export.log", "other.log"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	n, err := ClearLogs()
	if err != nil {
		t.Fatalf("ClearLogs: %v", err)
	}
	if n != 2 {
		t.Errorf("ClearLogs removed %d files, want 2", n)
	}
	if _, err := os.Stat(filepath.Join(dir, "other.log")); err != nil {
		t.Errorf("unrelated file removed: %v", err)
	}
}
