// Package grid is the composition root of the data-grid engine.
//
// A Table wires the layout, selection, expansion, navigation, resize and
// history stores together. It is the only writer of those stores: every
// user-visible mutation goes through a Table method, which records exactly
// one history action for it (none when the call changed nothing).
package grid

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/zhubert/datagrid/internal/errors"
	"github.com/zhubert/datagrid/internal/history"
	"github.com/zhubert/datagrid/internal/layout"
	"github.com/zhubert/datagrid/internal/logger"
	"github.com/zhubert/datagrid/internal/navigator"
	"github.com/zhubert/datagrid/internal/resize"
	"github.com/zhubert/datagrid/internal/rowstate"
)

// Options configures a Table.
type Options[T any] struct {
	// ID scopes logs and persisted views. A random id is used when empty.
	ID string

	Columns []Column[T]

	// RowID maps a row to a stable id. When it fails, panics or returns an
	// empty id, the row gets a positional id (see FallbackRowID).
	RowID func(row T) (string, error)

	InitialView  *layout.State
	OnViewChange func(layout.State)

	SelectionMode       rowstate.Mode
	InitialSelection    []string
	ControlledSelection func() []string
	OnSelectionChange   func(ids []string)

	AllowMultipleExpanded bool
	InitialExpanded       []string
	ControlledExpansion   func() []string
	OnExpansionChange     func(ids []string)
	RenderExpanded        func(row T) string

	OnRowClick func(row T)

	HistoryLimit int
	Direction    resize.Direction
	FocusHandle  navigator.FocusHandle
}

// Table is one grid instance.
type Table[T any] struct {
	id   string
	opts Options[T]

	columns map[string]Column[T]

	layout    *layout.Store
	selection *rowstate.Selection
	expansion *rowstate.Expansion
	nav       *navigator.Navigator
	resizer   *resize.Controller
	history   *history.Controller

	data    ServerData[T]
	hasData bool
	rowIDs  []string

	// committed is set by the resize commit hook.
	committed bool

	log *slog.Logger
}

// New builds a table. It never fails: malformed input is repaired or ignored.
func New[T any](opts Options[T]) *Table[T] {
	if opts.ID == "" {
		opts.ID = uuid.NewString()
	}
	t := &Table[T]{
		id:   opts.ID,
		opts: opts,
		log:  logger.WithTable(opts.ID),
	}
	t.indexColumns(opts.Columns)

	t.layout = layout.NewStore(descriptors(opts.Columns), opts.InitialView, opts.OnViewChange)
	t.selection = rowstate.NewSelection(rowstate.SelectionOptions{
		Mode:       opts.SelectionMode,
		Initial:    opts.InitialSelection,
		Controlled: opts.ControlledSelection,
		OnChange:   opts.OnSelectionChange,
	})
	t.expansion = rowstate.NewExpansion(rowstate.ExpansionOptions{
		AllowMultiple: opts.AllowMultipleExpanded,
		Initial:       opts.InitialExpanded,
		Controlled:    opts.ControlledExpansion,
		OnChange:      opts.OnExpansionChange,
	})
	t.nav = navigator.New(opts.FocusHandle)
	t.resizer = resize.New(opts.Direction, func(id string, width int) {
		t.committed = t.commitWidth(id, width)
	})
	t.history = history.New(applier[T]{t}, opts.HistoryLimit)

	t.log.Debug("table created",
		"columns", len(opts.Columns),
		"selection", opts.SelectionMode.String(),
		"controlledSelection", opts.ControlledSelection != nil,
		"historyLimit", t.history.Limit())
	return t
}

func (t *Table[T]) indexColumns(cols []Column[T]) {
	t.columns = make(map[string]Column[T], len(cols))
	for _, c := range cols {
		if _, dup := t.columns[c.ID]; !dup {
			t.columns[c.ID] = c
		}
	}
}

// ID returns the table instance id.
func (t *Table[T]) ID() string { return t.id }

// SetColumns re-supplies the column list. The layout is repaired against the
// new column set.
func (t *Table[T]) SetColumns(cols []Column[T]) {
	t.opts.Columns = cols
	t.indexColumns(cols)
	t.layout.SetDescriptors(descriptors(cols))
}

// SetFocusHandle attaches the presentation layer's focus handle.
func (t *Table[T]) SetFocusHandle(h navigator.FocusHandle) {
	t.nav.SetHandle(h)
}

// SetDirection changes the layout direction used for resize drags.
func (t *Table[T]) SetDirection(dir resize.Direction) {
	t.opts.Direction = dir
	t.resizer.SetDirection(dir)
}

// Direction returns the layout direction.
func (t *Table[T]) Direction() resize.Direction { return t.opts.Direction }

// Column looks up a column by id.
func (t *Table[T]) Column(id string) (Column[T], bool) {
	c, ok := t.columns[id]
	return c, ok
}

// Columns returns every column in declaration order.
func (t *Table[T]) Columns() []Column[T] {
	return slices.Clone(t.opts.Columns)
}

// OrderedColumns returns the columns to render: pinned-left, unpinned
// visible, pinned-right.
func (t *Table[T]) OrderedColumns() []Column[T] {
	descs := t.layout.OrderedColumns()
	out := make([]Column[T], 0, len(descs))
	for _, d := range descs {
		if c, ok := t.columns[d.ID]; ok {
			out = append(out, c)
		}
	}
	return out
}

// Offsets returns sticky offsets for the visible pinned columns. A column
// being resized counts at its live width.
func (t *Table[T]) Offsets() layout.Offsets {
	if col, w, ok := t.resizer.Preview(); ok {
		return t.layout.PreviewOffsets(col, w)
	}
	return t.layout.Offsets()
}

// View returns a snapshot of the column layout.
func (t *Table[T]) View() layout.State {
	return t.layout.State()
}

func (t *Table[T]) IsVisible(id string) bool { return t.layout.IsVisible(id) }

func (t *Table[T]) PinSide(id string) layout.Side {
	side, _ := t.layout.PinSide(id)
	return side
}

// ColumnWidth is the width to draw a column at: the live drag width while it
// is being resized, its resolved width otherwise.
func (t *Table[T]) ColumnWidth(id string) int {
	if col, w, ok := t.resizer.Preview(); ok && col == id {
		return w
	}
	return t.layout.ResolvedWidth(id)
}

// SetServerData installs a new page of rows. A change of page, page size or
// sort clears history; any change of the row set resets keyboard focus.
func (t *Table[T]) SetServerData(d ServerData[T]) {
	prev, had := t.data.query(), t.hasData
	next := d.query()

	ids := make([]string, len(d.Rows))
	failed := 0
	for i, row := range d.Rows {
		var ok bool
		ids[i], ok = t.rowID(row, i)
		if !ok {
			failed++
		}
	}
	if failed > 0 {
		t.log.Warn("row ids fell back to positions", "rows", failed, "page", d.Page)
	}

	if had && (prev.page != next.page || prev.pageSize != next.pageSize ||
		prev.sortCol != next.sortCol || prev.sortDir != next.sortDir) {
		t.history.Clear()
		t.log.Debug("history cleared by row set change", "page", next.page, "sort", next.sortCol)
	}
	if !had || prev != next || !slices.Equal(ids, t.rowIDs) {
		t.nav.Reset()
	}

	t.data = d
	t.hasData = true
	t.rowIDs = ids
}

// Data returns the current server data.
func (t *Table[T]) Data() ServerData[T] { return t.data }

// Rows returns the current page of rows.
func (t *Table[T]) Rows() []T { return t.data.Rows }

// RowIDs returns the ids of the current page, in row order.
func (t *Table[T]) RowIDs() []string { return slices.Clone(t.rowIDs) }

// Row returns the row at index in the current page.
func (t *Table[T]) Row(index int) (T, bool) {
	var zero T
	if index < 0 || index >= len(t.data.Rows) {
		return zero, false
	}
	return t.data.Rows[index], true
}

// CellText renders one cell of the current page.
func (t *Table[T]) CellText(rowIndex int, columnID string) string {
	row, ok := t.Row(rowIndex)
	if !ok {
		return ""
	}
	c, ok := t.columns[columnID]
	if !ok {
		return ""
	}
	return c.Text(row, rowIndex)
}

// FallbackRowID is the positional id given to a row whose id could not be
// extracted. It depends only on where the row was delivered in the page.
func FallbackRowID(index int) string {
	return fmt.Sprintf("row-%d", index)
}

func (t *Table[T]) rowID(row T, index int) (id string, ok bool) {
	if t.opts.RowID == nil {
		return FallbackRowID(index), true
	}
	defer func() {
		if r := recover(); r != nil {
			err := errors.RowIDFailed(index, fmt.Errorf("panic: %v", r))
			t.log.Debug("row id recovered", "error", err)
			id, ok = FallbackRowID(index), false
		}
	}()

	id, err := t.opts.RowID(row)
	if err == nil && id == "" {
		err = fmt.Errorf("empty id")
	}
	if err != nil {
		t.log.Debug("row id recovered", "error", errors.RowIDFailed(index, err))
		return FallbackRowID(index), false
	}
	return id, true
}
