// Package demo drives the grid through scripted scenarios and captures the
// rendered frames. Rows come from the seeded demo generator, so recordings
// are reproducible.
package demo

import (
	"fmt"
	"time"

	"github.com/zhubert/datagrid/internal/layout"
	"github.com/zhubert/datagrid/internal/resize"
	"github.com/zhubert/datagrid/internal/rowstate"
)

// StepType represents the type of action in a demo step.
type StepType int

const (
	// StepWait pauses for a duration (for timing/pacing).
	StepWait StepType = iota
	// StepKey sends a single key press.
	StepKey
	// StepTypeText types a string character by character.
	StepTypeText
	// StepClick clicks the left button at a cell.
	StepClick
	// StepDrag presses at one cell, moves to another and releases there.
	StepDrag
	// StepCapture captures the current frame (for selective capture).
	StepCapture
	// StepAnnotate adds an annotation/caption to the next frame.
	StepAnnotate
)

func (t StepType) String() string {
	switch t {
	case StepWait:
		return "wait"
	case StepKey:
		return "key"
	case StepTypeText:
		return "type"
	case StepClick:
		return "click"
	case StepDrag:
		return "drag"
	case StepCapture:
		return "capture"
	case StepAnnotate:
		return "annotate"
	}
	return "unknown"
}

// Point is a terminal cell.
type Point struct {
	X, Y int
}

// Step represents a single action in a demo scenario.
type Step struct {
	Type        StepType
	Description string // Human-readable description of what this step does

	// For StepKey
	Key string

	// For StepTypeText
	Text string

	// For StepWait
	Duration time.Duration

	// For StepClick and StepDrag. To is only used by StepDrag.
	At Point
	To Point

	// For StepAnnotate
	Annotation string
}

// Scenario defines a complete demo scenario.
type Scenario struct {
	Name        string
	Description string
	Width       int // Terminal width (default 120)
	Height      int // Terminal height (default 40)
	Setup       *ScenarioSetup
	Steps       []Step
}

// ScenarioSetup describes the grid a scenario starts from.
type ScenarioSetup struct {
	Rows     int   // generated demo rows
	Seed     int64 // generator seed
	PageSize int

	SelectionMode         rowstate.Mode
	AllowMultipleExpanded bool
	Direction             resize.Direction

	// InitialView is applied before the first frame.
	InitialView *layout.State
}

// DefaultSetup returns a minimal setup for demos.
func DefaultSetup() *ScenarioSetup {
	return &ScenarioSetup{
		Rows:     200,
		Seed:     1,
		PageSize: 20,
	}
}

// Validate checks that the scenario is valid and fills in defaults.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return &ValidationError{Field: "Name", Message: "scenario name is required"}
	}
	if s.Width <= 0 {
		s.Width = 120
	}
	if s.Height <= 0 {
		s.Height = 40
	}
	if s.Setup == nil {
		s.Setup = DefaultSetup()
	}
	if s.Setup.Rows < 0 {
		return &ValidationError{Field: "Setup.Rows", Message: "row count can't be negative"}
	}
	for i, step := range s.Steps {
		switch step.Type {
		case StepKey:
			if step.Key == "" {
				return &ValidationError{Field: stepField(i, "Key"), Message: "key step needs a key"}
			}
		case StepClick, StepDrag:
			if step.At.X < 0 || step.At.Y < 0 || step.To.X < 0 || step.To.Y < 0 {
				return &ValidationError{Field: stepField(i, "At"), Message: "mouse steps need cells on screen"}
			}
		}
	}
	return nil
}

func stepField(i int, field string) string {
	return fmt.Sprintf("Steps[%d].%s", i, field)
}

// ValidationError represents a scenario validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Field + ": " + e.Message
}

// Step builder functions for fluent scenario construction

// Wait creates a wait step.
func Wait(d time.Duration) Step {
	return Step{
		Type:     StepWait,
		Duration: d,
	}
}

// Key creates a key press step.
func Key(key string) Step {
	return Step{
		Type: StepKey,
		Key:  key,
	}
}

// KeyWithDesc creates a key press step with a description.
func KeyWithDesc(key, description string) Step {
	return Step{
		Type:        StepKey,
		Key:         key,
		Description: description,
	}
}

// Type creates a text typing step.
func Type(text string) Step {
	return Step{
		Type: StepTypeText,
		Text: text,
	}
}

// TypeWithDesc creates a text typing step with a description.
func TypeWithDesc(text, description string) Step {
	return Step{
		Type:        StepTypeText,
		Text:        text,
		Description: description,
	}
}

// Click creates a left click at x, y.
func Click(x, y int) Step {
	return Step{
		Type: StepClick,
		At:   Point{X: x, Y: y},
	}
}

// Drag creates a press at from, a move to to and a release there.
func Drag(from, to Point) Step {
	return Step{
		Type: StepDrag,
		At:   from,
		To:   to,
	}
}

// Annotate creates an annotation step.
func Annotate(text string) Step {
	return Step{
		Type:       StepAnnotate,
		Annotation: text,
	}
}

// Capture creates a frame capture step.
func Capture() Step {
	return Step{
		Type: StepCapture,
	}
}
