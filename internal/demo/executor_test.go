package demo

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/zhubert/datagrid/internal/layout"
)

// Screen cells of the demo grid at the default size.
const (
	headerRowY  = 3
	firstRowY   = 5
	checkboxX   = 2
	nameHandleX = 22 // Name is 180px wide, 18 cells after the gutter
)

func TestExecutorDefaultConfig(t *testing.T) {
	cfg := DefaultExecutorConfig()

	if cfg.CaptureEveryStep {
		t.Error("CaptureEveryStep should be false by default")
	}

	if cfg.TypeDelay != 50*time.Millisecond {
		t.Errorf("TypeDelay = %v, want 50ms", cfg.TypeDelay)
	}

	if cfg.KeyDelay != 100*time.Millisecond {
		t.Errorf("KeyDelay = %v, want 100ms", cfg.KeyDelay)
	}

	if cfg.MouseDelay != 150*time.Millisecond {
		t.Errorf("MouseDelay = %v, want 150ms", cfg.MouseDelay)
	}
}

func TestExecutorRun(t *testing.T) {
	scenario := &Scenario{
		Name:        "test",
		Description: "Test scenario",
		Setup:       &ScenarioSetup{Rows: 50, Seed: 3, PageSize: 10},
		Steps: []Step{
			Wait(100 * time.Millisecond),
			KeyWithDesc("s", "Sort by name"),
			Wait(100 * time.Millisecond),
		},
	}

	cfg := DefaultExecutorConfig()
	cfg.CaptureEveryStep = true

	executor := NewExecutor(cfg)
	frames, err := executor.Run(context.Background(), scenario)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// Initial frame plus one per step
	if len(frames) != 4 {
		t.Errorf("Expected 4 frames, got %d", len(frames))
	}

	// First frame should have initial delay
	if frames[0].Delay != 500*time.Millisecond {
		t.Errorf("First frame delay = %v, want 500ms", frames[0].Delay)
	}

	d := executor.Model().Table().Data()
	if d.SortColumn != "name" {
		t.Errorf("SortColumn = %q, want name", d.SortColumn)
	}
	if len(d.Rows) != 10 || d.TotalCount != 50 {
		t.Errorf("rows = %d of %d, want 10 of 50", len(d.Rows), d.TotalCount)
	}
}

func TestExecutorRunInvalidScenario(t *testing.T) {
	scenario := &Scenario{
		// Missing Name - should fail validation
		Description: "Invalid",
	}

	executor := NewExecutor(DefaultExecutorConfig())
	_, err := executor.Run(context.Background(), scenario)

	if err == nil {
		t.Error("Run() should return error for invalid scenario")
	}
}

func TestExecutorRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	executor := NewExecutor(DefaultExecutorConfig())
	_, err := executor.Run(ctx, &Scenario{Name: "canceled", Steps: []Step{Key("s")}})
	if err == nil {
		t.Error("Run() should fail once the context is done")
	}
}

func TestExecutorNoCaptureEveryStep(t *testing.T) {
	scenario := func() *Scenario {
		return &Scenario{
			Name: "minimal",
			Steps: []Step{
				Key("down"),
				Key("down"),
				Key("up"),
				Wait(100 * time.Millisecond),
			},
		}
	}

	cfg := DefaultExecutorConfig()
	cfg.CaptureEveryStep = true
	framesWithCapture, err := NewExecutor(cfg).Run(context.Background(), scenario())
	if err != nil {
		t.Fatal(err)
	}

	cfg.CaptureEveryStep = false
	framesWithoutCapture, err := NewExecutor(cfg).Run(context.Background(), scenario())
	if err != nil {
		t.Fatal(err)
	}

	// 3 fewer for the 3 key presses
	if len(framesWithCapture)-len(framesWithoutCapture) != 3 {
		t.Errorf("with=%d, without=%d", len(framesWithCapture), len(framesWithoutCapture))
	}
}

func TestExecutorTypeAlwaysCaptures(t *testing.T) {
	executor := NewExecutor(DefaultExecutorConfig())
	frames, err := executor.Run(context.Background(), &Scenario{
		Name:  "search",
		Steps: []Step{Key("/"), TypeWithDesc("Ada", "Search for Ada")},
	})
	if err != nil {
		t.Fatal(err)
	}

	// Initial frame plus one per character
	if len(frames) != 4 {
		t.Errorf("Expected 4 frames, got %d", len(frames))
	}
	for _, f := range frames[1:] {
		if f.StepIndex != 1 || f.Delay != 50*time.Millisecond {
			t.Errorf("frame = step %d delay %v", f.StepIndex, f.Delay)
		}
	}
}

func TestExecutorMouseSteps(t *testing.T) {
	executor := NewExecutor(DefaultExecutorConfig())
	frames, err := executor.Run(context.Background(), &Scenario{
		Name: "mouse",
		Steps: []Step{
			Click(checkboxX, firstRowY),
			Drag(Point{X: nameHandleX, Y: headerRowY}, Point{X: nameHandleX + 5, Y: headerRowY}),
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	table := executor.Model().Table()
	ids := table.RowIDs()
	if len(ids) == 0 || !table.IsSelected(ids[0]) {
		t.Errorf("first row not selected: %v", table.SelectedIDs())
	}
	if w := table.ColumnWidth("name"); w != 230 {
		t.Errorf("name width = %d, want 230", w)
	}

	// The drag always captures its result
	if len(frames) != 2 {
		t.Errorf("Expected 2 frames, got %d", len(frames))
	}
}

func TestExecutorInitialView(t *testing.T) {
	setup := DefaultSetup()
	setup.InitialView = &layout.State{
		Visibility: map[string]bool{"email": false},
	}

	executor := NewExecutor(DefaultExecutorConfig())
	if _, err := executor.Run(context.Background(), &Scenario{Name: "view", Setup: setup}); err != nil {
		t.Fatal(err)
	}
	if executor.Model().Table().IsVisible("email") {
		t.Error("email should start hidden")
	}
}

func TestExecutorAnnotation(t *testing.T) {
	executor := NewExecutor(DefaultExecutorConfig())
	frames, err := executor.Run(context.Background(), &Scenario{
		Name: "annotated",
		Steps: []Step{
			Annotate("This is an annotation"),
			Capture(),
			Capture(),
		},
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(frames) != 3 {
		t.Fatalf("Expected 3 frames, got %d", len(frames))
	}
	if frames[1].Annotation != "This is an annotation" {
		t.Errorf("annotation = %q", frames[1].Annotation)
	}
	// Annotations apply to one frame only
	if frames[2].Annotation != "" {
		t.Errorf("annotation leaked into next frame: %q", frames[2].Annotation)
	}
}

func TestExecutorCleanup(t *testing.T) {
	executor := NewExecutor(DefaultExecutorConfig())
	if err := executor.setup(context.Background(), &Scenario{Name: "x", Width: 80, Height: 24, Setup: DefaultSetup()}); err != nil {
		t.Fatal(err)
	}
	dir := executor.configDir
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("config dir missing: %v", err)
	}

	executor.Cleanup()
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("config dir not removed: %v", err)
	}
}

func TestKeyPress(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"enter", "enter"},
		{"tab", "tab"},
		{"escape", "esc"},
		{"esc", "esc"},
		{"backspace", "backspace"},
		{"up", "up"},
		{"pgdown", "pgdown"},
		{"space", "space"},
		{"shift+down", "shift+down"},
		{"ctrl+left", "ctrl+left"},
		{"ctrl+z", "ctrl+z"},
		{"ctrl+shift+z", "ctrl+shift+z"},
		{"a", "a"},
		{"1", "1"},
		{"/", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := keyPress(tt.key).String(); got != tt.want {
				t.Errorf("keyPress(%q).String() = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}
