package app

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/datagrid/internal/config"
	"github.com/zhubert/datagrid/internal/keys"
	"github.com/zhubert/datagrid/internal/layout"
	"github.com/zhubert/datagrid/internal/source"
)

const testTableID = "people"

// testConfig creates an empty config saved under a temp dir.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadFrom(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	return cfg
}

// testColumns draws as name 10 cells, age 5 cells and team 8 cells.
func testColumns() []layout.Descriptor {
	return []layout.Descriptor{
		{ID: "name", DisplayName: "Name", Size: 100, DisableHiding: true},
		{ID: "age", DisplayName: "Age", Size: 50},
		{ID: "team", DisplayName: "Team", Size: 80, DisableSorting: true},
	}
}

// testRows returns n records with ids r01, r02, ...; names sort in id order
// and ages in reverse.
func testRows(n int) []source.Record {
	rows := make([]source.Record, n)
	for i := range rows {
		rows[i] = source.Record{
			"id":   fmt.Sprintf("r%02d", i+1),
			"name": fmt.Sprintf("person %02d", i+1),
			"age":  100 - i,
			"team": []string{"blue", "green", "red"}[i%3],
		}
	}
	return rows
}

func testOptions(provider source.Provider) Options {
	mem, _ := provider.(*source.Memory)
	opts := Options{
		TableID:  testTableID,
		Title:    "People",
		Columns:  testColumns(),
		Provider: provider,
		PageSize: 10,
	}
	if mem != nil {
		opts.RowID = mem.RowID
	}
	return opts
}

// testModelWithOptions creates a sized model and completes its first fetch.
func testModelWithOptions(t *testing.T, cfg *config.Config, opts Options) *Model {
	t.Helper()
	m := New(cfg, opts)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 24})
	m.Init()
	settle(t, m)
	return m
}

// testModel creates a model over n test rows with ten rows per page.
func testModel(t *testing.T, n int) *Model {
	t.Helper()
	return testModelWithOptions(t, testConfig(t), testOptions(source.NewMemory(testRows(n), "id")))
}

// settle completes the fetch in flight, if any, the way the runtime would
// deliver it. Follow-up fetches are completed too.
func settle(t *testing.T, m *Model) {
	t.Helper()
	if !m.Settle(context.Background()) {
		t.Fatal("fetches did not settle")
	}
}

// sendKey delivers a key press and completes any fetch it started.
func sendKey(t *testing.T, m *Model, key string) tea.Cmd {
	t.Helper()
	_, cmd := m.Update(keyPress(key))
	settle(t, m)
	return cmd
}

// typeText sends each character as a key press.
func typeText(t *testing.T, m *Model, text string) {
	t.Helper()
	for _, r := range text {
		sendKey(t, m, string(r))
	}
}

// keyPress creates a tea.KeyPressMsg for the given key string.
// Examples: "a", "enter", "esc", "ctrl+z", "up", "shift+left"
func keyPress(key string) tea.KeyPressMsg {
	switch key {
	case keys.Enter:
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case keys.Tab:
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case keys.Escape:
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
	case keys.Space:
		return tea.KeyPressMsg{Code: tea.KeySpace}
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
		// Regular character - for single characters, set both Code and Text
		if len(key) == 1 {
			return tea.KeyPressMsg{Code: rune(key[0]), Text: key}
		}
		// Fallback for unknown keys
		return tea.KeyPressMsg{Text: key}
	}
}

// =============================================================================
// Mouse Event Helpers
// =============================================================================

// Screen rows of the table at 100x24: the panel border sits under the header
// and toolbar, then the column headers, the rule and the first body row.
const (
	headerRowY = 3
	firstRowY  = 5
)

// mouseClick creates a tea.MouseClickMsg at the given coordinates.
func mouseClick(x, y int) tea.MouseClickMsg {
	return tea.MouseClickMsg{
		X:      x,
		Y:      y,
		Button: tea.MouseLeft,
	}
}

// mouseMotion creates a tea.MouseMotionMsg at the given coordinates.
func mouseMotion(x, y int) tea.MouseMotionMsg {
	return tea.MouseMotionMsg{
		X:      x,
		Y:      y,
		Button: tea.MouseLeft,
	}
}

// mouseRelease creates a tea.MouseReleaseMsg at the given coordinates.
func mouseRelease(x, y int) tea.MouseReleaseMsg {
	return tea.MouseReleaseMsg{
		X:      x,
		Y:      y,
		Button: tea.MouseLeft,
	}
}

// failingProvider always fails to fetch.
type failingProvider struct {
	err error
}

func (p failingProvider) Fetch(context.Context, source.Query) (source.Result, error) {
	return source.Result{}, p.err
}
