package scenarios

import (
	"time"

	"github.com/zhubert/datagrid/internal/demo"
)

// Columns shows the column layout tools and how history undoes them:
// resizing by drag and by key, pinning, hiding, reordering, then undo and
// redo, and finally a confirmed reset.
var Columns = &demo.Scenario{
	Name:        "columns",
	Description: "Resize, pin, hide and reorder columns with undo",
	Width:       120,
	Height:      40,
	Setup: &demo.ScenarioSetup{
		Rows:     200,
		Seed:     7,
		PageSize: 20,
	},
	Steps: []demo.Step{
		demo.Wait(1 * time.Second),
		demo.Capture(),

		// Drag the Name handle wider
		demo.Annotate("Drag a column edge to resize"),
		demo.Drag(demo.Point{X: nameHandleX, Y: headerRowY}, demo.Point{X: nameHandleX + 6, Y: headerRowY}),
		demo.Wait(600 * time.Millisecond),

		// Move to Email and widen it from the keyboard
		demo.Key("right"),
		demo.KeyWithDesc(">", "Widen column"),
		demo.Key(">"),
		demo.Wait(600 * time.Millisecond),
		demo.Capture(),

		// Pin Email to the start
		demo.Annotate("Pin a column so it stays in view"),
		demo.KeyWithDesc("p", "Pin column"),
		demo.Wait(1 * time.Second),
		demo.Capture(),

		// Hide Status
		demo.Key("right"),
		demo.Key("right"),
		demo.KeyWithDesc("h", "Hide column"),
		demo.Wait(1 * time.Second),
		demo.Capture(),

		// Move Team right
		demo.Key("left"),
		demo.KeyWithDesc("shift+right", "Move column right"),
		demo.Wait(1 * time.Second),
		demo.Capture(),

		// Step back through history and forward again
		demo.Annotate("Every layout change can be undone"),
		demo.KeyWithDesc("ctrl+z", "Undo"),
		demo.Wait(500 * time.Millisecond),
		demo.Key("ctrl+z"),
		demo.Wait(1 * time.Second),
		demo.Capture(),
		demo.KeyWithDesc("ctrl+shift+z", "Redo"),
		demo.Wait(1 * time.Second),
		demo.Capture(),

		// Reset the layout, with confirmation
		demo.KeyWithDesc("R", "Reset layout"),
		demo.Wait(1 * time.Second),
		demo.Capture(),
		demo.Key("y"),
		demo.Wait(1 * time.Second),
		demo.Capture(),

		// Final pause
		demo.Wait(3 * time.Second),
	},
}
