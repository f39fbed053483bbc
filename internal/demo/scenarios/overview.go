// Package scenarios contains built-in demo scenarios for the grid.
package scenarios

import (
	"time"

	"github.com/zhubert/datagrid/internal/demo"
)

// Screen cells of the demo grid. The header row sits under the title and
// toolbar, the gutter holds the checkbox and expand marker, and Name is the
// first column at 18 cells.
const (
	headerRowY  = 3
	firstRowY   = 5
	checkboxX   = 2
	nameHandleX = 22
)

// Overview walks through a typical session with the demo dataset:
// - Sorting by clicking a header and from the keyboard
// - Selecting rows with the mouse and extending the selection
// - Expanding a row to see its details
// - Searching and paging
var Overview = &demo.Scenario{
	Name:        "overview",
	Description: "Sort, select, expand, search and page through rows",
	Width:       120,
	Height:      40,
	Setup:       demo.DefaultSetup(),
	Steps: []demo.Step{
		// Initial view
		demo.Wait(1 * time.Second),
		demo.Capture(),

		// Sort by name, then flip to descending
		demo.Annotate("Click a header to sort"),
		demo.Click(nameHandleX-10, headerRowY),
		demo.Wait(600 * time.Millisecond),
		demo.Capture(),
		demo.KeyWithDesc("s", "Sort descending"),
		demo.Wait(600 * time.Millisecond),
		demo.Capture(),

		// Select a row with the checkbox and extend the selection
		demo.Annotate("Select rows with the mouse or keyboard"),
		demo.Click(checkboxX, firstRowY),
		demo.Wait(400 * time.Millisecond),
		demo.Capture(),
		demo.Key("shift+down"),
		demo.Wait(300 * time.Millisecond),
		demo.Key("shift+down"),
		demo.Wait(600 * time.Millisecond),
		demo.Capture(),

		// Expand the focused row
		demo.Key("esc"),
		demo.Annotate("Expand a row for its details"),
		demo.KeyWithDesc("enter", "Expand row"),
		demo.Wait(1 * time.Second),
		demo.Capture(),
		demo.KeyWithDesc("x", "Collapse all"),
		demo.Wait(400 * time.Millisecond),

		// Search
		demo.KeyWithDesc("/", "Search"),
		demo.Wait(300 * time.Millisecond),
		demo.TypeWithDesc("Hopper", "Type a search"),
		demo.Key("enter"),
		demo.Wait(1 * time.Second),
		demo.Capture(),
		demo.Key("/"),
		demo.Key("esc"),
		demo.Wait(400 * time.Millisecond),

		// Page forward and change the page size
		demo.Annotate("Page through the results"),
		demo.KeyWithDesc("]", "Next page"),
		demo.Wait(600 * time.Millisecond),
		demo.Capture(),
		demo.KeyWithDesc("#", "More rows per page"),
		demo.Wait(1 * time.Second),
		demo.Capture(),

		// Final pause
		demo.Wait(3 * time.Second),
	},
}

// All returns all built-in scenarios.
func All() []*demo.Scenario {
	return []*demo.Scenario{
		Overview,
		Columns,
	}
}

// Get returns a scenario by name, or nil if not found.
func Get(name string) *demo.Scenario {
	for _, s := range All() {
		if s.Name == name {
			return s
		}
	}
	return nil
}
