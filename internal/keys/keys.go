// Package keys provides string constants for Bubble Tea v2 key press events.
//
// These constants are derived from tea.KeyPressMsg{...}.String() and are
// guaranteed to match the actual runtime values. Using these constants
// instead of hardcoded strings prevents typo bugs (e.g., "escape" vs "esc").
//
// Single-character keys like "h", "p", "/" are not included here because they
// are unambiguous and cannot be misspelled in a meaningful way.
package keys

import tea "charm.land/bubbletea/v2"

// Navigation keys
var (
	Up        = tea.KeyPressMsg{Code: tea.KeyUp}.String()                       // "up"
	Down      = tea.KeyPressMsg{Code: tea.KeyDown}.String()                     // "down"
	Left      = tea.KeyPressMsg{Code: tea.KeyLeft}.String()                     // "left"
	Right     = tea.KeyPressMsg{Code: tea.KeyRight}.String()                    // "right"
	Home      = tea.KeyPressMsg{Code: tea.KeyHome}.String()                     // "home"
	End       = tea.KeyPressMsg{Code: tea.KeyEnd}.String()                      // "end"
	PgUp      = tea.KeyPressMsg{Code: tea.KeyPgUp}.String()                     // "pgup"
	PgDown    = tea.KeyPressMsg{Code: tea.KeyPgDown}.String()                   // "pgdown"
	ShiftUp   = (tea.KeyPressMsg{Code: tea.KeyUp, Mod: tea.ModShift}).String()  // "shift+up"
	ShiftDown = (tea.KeyPressMsg{Code: tea.KeyDown, Mod: tea.ModShift}).String() // "shift+down"

	ShiftLeft  = (tea.KeyPressMsg{Code: tea.KeyLeft, Mod: tea.ModShift}).String()  // "shift+left"
	ShiftRight = (tea.KeyPressMsg{Code: tea.KeyRight, Mod: tea.ModShift}).String() // "shift+right"
)

// Action keys
var (
	Enter     = tea.KeyPressMsg{Code: tea.KeyEnter}.String()                    // "enter"
	Tab       = tea.KeyPressMsg{Code: tea.KeyTab}.String()                      // "tab"
	ShiftTab  = (tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift}).String() // "shift+tab"
	Space     = tea.KeyPressMsg{Code: tea.KeySpace}.String()                    // "space"
	Backspace = tea.KeyPressMsg{Code: tea.KeyBackspace}.String()                // "backspace"
	Escape    = tea.KeyPressMsg{Code: tea.KeyEscape}.String()                   // "esc"
)

// Ctrl combinations
var (
	CtrlC      = (tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}).String()                // "ctrl+c"
	CtrlZ      = (tea.KeyPressMsg{Code: 'z', Mod: tea.ModCtrl}).String()                // "ctrl+z"
	CtrlShiftZ = (tea.KeyPressMsg{Code: 'z', Mod: tea.ModCtrl | tea.ModShift}).String() // "ctrl+shift+z"
	CtrlR      = (tea.KeyPressMsg{Code: 'r', Mod: tea.ModCtrl}).String()                // "ctrl+r"
	CtrlY      = (tea.KeyPressMsg{Code: 'y', Mod: tea.ModCtrl}).String()                // "ctrl+y"
	CtrlLeft   = (tea.KeyPressMsg{Code: tea.KeyLeft, Mod: tea.ModCtrl}).String()        // "ctrl+left"
	CtrlRight  = (tea.KeyPressMsg{Code: tea.KeyRight, Mod: tea.ModCtrl}).String()       // "ctrl+right"
)
