package demo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/datagrid/internal/app"
	"github.com/zhubert/datagrid/internal/config"
	"github.com/zhubert/datagrid/internal/keys"
	"github.com/zhubert/datagrid/internal/logger"
	"github.com/zhubert/datagrid/internal/source"
)

// TableID is the table the demo grid saves its layout under.
const TableID = "demo"

// Frame represents a captured frame from the demo.
type Frame struct {
	Content    string        // ANSI-encoded terminal content
	Delay      time.Duration // Delay before this frame
	Annotation string        // Optional annotation/caption
	StepIndex  int           // Index of the step that produced this frame
}

// ExecutorConfig configures the demo executor.
type ExecutorConfig struct {
	// CaptureEveryStep captures a frame after every key, character and
	// click (default: false)
	CaptureEveryStep bool

	// TypeDelay is the delay between characters when typing (default: 50ms)
	TypeDelay time.Duration

	// KeyDelay is the delay after key presses (default: 100ms)
	KeyDelay time.Duration

	// MouseDelay is the delay after clicks and drags (default: 150ms)
	MouseDelay time.Duration
}

// DefaultExecutorConfig returns the default executor configuration.
func DefaultExecutorConfig() ExecutorConfig {
	return ExecutorConfig{
		CaptureEveryStep: false, // Don't capture every step by default for cleaner demos
		TypeDelay:        50 * time.Millisecond,
		KeyDelay:         100 * time.Millisecond,
		MouseDelay:       150 * time.Millisecond,
	}
}

// Executor runs demo scenarios and captures frames.
type Executor struct {
	config ExecutorConfig
	model  *app.Model
	frames []Frame

	currentAnnotation string

	// configDir holds the throwaway config file the demo grid saves to
	configDir string
}

// NewExecutor creates a new demo executor.
func NewExecutor(cfg ExecutorConfig) *Executor {
	return &Executor{
		config: cfg,
		frames: []Frame{},
	}
}

// Cleanup removes the demo's config directory.
func (e *Executor) Cleanup() {
	if e.configDir != "" {
		os.RemoveAll(e.configDir)
		e.configDir = ""
	}
}

// Model returns the model of the last run.
func (e *Executor) Model() *app.Model {
	return e.model
}

// Run executes a scenario and returns the captured frames.
func (e *Executor) Run(ctx context.Context, scenario *Scenario) ([]Frame, error) {
	if err := scenario.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	// Ensure cleanup is called when we're done
	defer e.Cleanup()

	if err := e.setup(ctx, scenario); err != nil {
		return nil, fmt.Errorf("setup failed: %w", err)
	}

	// Capture initial frame
	e.captureFrame(0, 500*time.Millisecond)

	log := logger.WithComponent("demo")
	for i, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		log.Debug("demo step", "index", i, "type", step.Type.String(), "desc", step.Description)
		if err := e.executeStep(ctx, i, step); err != nil {
			return nil, fmt.Errorf("step %d failed: %w", i, err)
		}
	}

	return e.frames, nil
}

// setup builds the model for the scenario and loads its first page.
func (e *Executor) setup(ctx context.Context, scenario *Scenario) error {
	dir, err := os.MkdirTemp("", "datagrid-demo-")
	if err != nil {
		return err
	}
	e.configDir = dir

	cfg, err := config.LoadFrom(filepath.Join(dir, "config.json"))
	if err != nil {
		return err
	}

	s := scenario.Setup
	mem := source.NewMemory(source.Generate(s.Rows, s.Seed), "id")
	e.model = app.New(cfg, app.Options{
		TableID:               TableID,
		Title:                 scenario.Description,
		Columns:               source.DemoColumns(),
		Provider:              mem,
		RowID:                 mem.RowID,
		PageSize:              s.PageSize,
		InitialView:           s.InitialView,
		SelectionMode:         s.SelectionMode,
		AllowMultipleExpanded: s.AllowMultipleExpanded,
		Direction:             s.Direction,
	})

	e.update(tea.WindowSizeMsg{
		Width:  scenario.Width,
		Height: scenario.Height,
	})
	e.model.Init()
	return e.settle(ctx)
}

// executeStep executes a single demo step.
func (e *Executor) executeStep(ctx context.Context, index int, step Step) error {
	switch step.Type {
	case StepWait:
		e.captureFrame(index, step.Duration)

	case StepKey:
		e.update(keyPress(step.Key))
		if err := e.settle(ctx); err != nil {
			return err
		}
		if e.config.CaptureEveryStep {
			e.captureFrame(index, e.config.KeyDelay)
		}

	case StepTypeText:
		for _, ch := range step.Text {
			e.update(keyPress(string(ch)))
			if err := e.settle(ctx); err != nil {
				return err
			}
			// Typing always animates
			e.captureFrame(index, e.config.TypeDelay)
		}

	case StepClick:
		e.update(tea.MouseClickMsg{X: step.At.X, Y: step.At.Y, Button: tea.MouseLeft})
		e.update(tea.MouseReleaseMsg{X: step.At.X, Y: step.At.Y, Button: tea.MouseLeft})
		if err := e.settle(ctx); err != nil {
			return err
		}
		if e.config.CaptureEveryStep {
			e.captureFrame(index, e.config.MouseDelay)
		}

	case StepDrag:
		e.update(tea.MouseClickMsg{X: step.At.X, Y: step.At.Y, Button: tea.MouseLeft})
		e.update(tea.MouseMotionMsg{X: step.To.X, Y: step.To.Y, Button: tea.MouseLeft})
		if e.config.CaptureEveryStep {
			e.captureFrame(index, e.config.MouseDelay)
		}
		e.update(tea.MouseReleaseMsg{X: step.To.X, Y: step.To.Y, Button: tea.MouseLeft})
		if err := e.settle(ctx); err != nil {
			return err
		}
		e.captureFrame(index, e.config.MouseDelay)

	case StepAnnotate:
		e.currentAnnotation = step.Annotation
		// Don't capture, annotation applies to next frame

	case StepCapture:
		e.captureFrame(index, 0)

	default:
		return fmt.Errorf("unknown step type %d", step.Type)
	}

	return nil
}

// update feeds a message to the model. Commands are dropped: fetches are
// completed by settle and timers never fire in a recording.
func (e *Executor) update(msg tea.Msg) {
	result, _ := e.model.Update(msg)
	e.model = result.(*app.Model)
}

func (e *Executor) settle(ctx context.Context) error {
	if !e.model.Settle(ctx) {
		return fmt.Errorf("rows did not finish loading")
	}
	return nil
}

// captureFrame captures the current view as a frame.
func (e *Executor) captureFrame(stepIndex int, delay time.Duration) {
	frame := Frame{
		Content:    e.model.RenderToString(),
		Delay:      delay,
		Annotation: e.currentAnnotation,
		StepIndex:  stepIndex,
	}
	e.frames = append(e.frames, frame)

	// Clear annotation after use
	e.currentAnnotation = ""
}

// keyPress converts a key string to a tea.KeyPressMsg.
func keyPress(key string) tea.KeyPressMsg {
	switch key {
	case keys.Enter:
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case keys.Tab:
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case keys.Escape, "escape":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case keys.Backspace:
		return tea.KeyPressMsg{Code: tea.KeyBackspace}
	case keys.Up:
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case keys.Down:
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case keys.Left:
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case keys.Right:
		return tea.KeyPressMsg{Code: tea.KeyRight}
	case keys.Home:
		return tea.KeyPressMsg{Code: tea.KeyHome}
	case keys.End:
		return tea.KeyPressMsg{Code: tea.KeyEnd}
	case keys.PgUp:
		return tea.KeyPressMsg{Code: tea.KeyPgUp}
	case keys.PgDown:
		return tea.KeyPressMsg{Code: tea.KeyPgDown}
	case keys.Space:
		return tea.KeyPressMsg{Code: tea.KeySpace}
	case " ":
		return tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
	case keys.ShiftUp:
		return tea.KeyPressMsg{Code: tea.KeyUp, Mod: tea.ModShift}
	case keys.ShiftDown:
		return tea.KeyPressMsg{Code: tea.KeyDown, Mod: tea.ModShift}
	case keys.ShiftLeft:
		return tea.KeyPressMsg{Code: tea.KeyLeft, Mod: tea.ModShift}
	case keys.ShiftRight:
		return tea.KeyPressMsg{Code: tea.KeyRight, Mod: tea.ModShift}
	case keys.CtrlLeft:
		return tea.KeyPressMsg{Code: tea.KeyLeft, Mod: tea.ModCtrl}
	case keys.CtrlRight:
		return tea.KeyPressMsg{Code: tea.KeyRight, Mod: tea.ModCtrl}
	case keys.CtrlC:
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	case keys.CtrlZ:
		return tea.KeyPressMsg{Code: 'z', Mod: tea.ModCtrl}
	case keys.CtrlShiftZ:
		return tea.KeyPressMsg{Code: 'z', Mod: tea.ModCtrl | tea.ModShift}
	case keys.CtrlY:
		return tea.KeyPressMsg{Code: 'y', Mod: tea.ModCtrl}
	case keys.CtrlR:
		return tea.KeyPressMsg{Code: 'r', Mod: tea.ModCtrl}
	default:
		if len(key) == 1 {
			return tea.KeyPressMsg{Code: rune(key[0]), Text: key}
		}
		return tea.KeyPressMsg{Text: key}
	}
}
