package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/datagrid/internal/changelog"
	"github.com/zhubert/datagrid/internal/config"
	"github.com/zhubert/datagrid/internal/grid"
	"github.com/zhubert/datagrid/internal/layout"
	"github.com/zhubert/datagrid/internal/logger"
	"github.com/zhubert/datagrid/internal/resize"
	"github.com/zhubert/datagrid/internal/rowstate"
	"github.com/zhubert/datagrid/internal/source"
	"github.com/zhubert/datagrid/internal/ui"
)

const (
	// FetchTimeout bounds a single page fetch.
	FetchTimeout = 10 * time.Second

	// SearchDebounce is how long typing must pause before the query is sent.
	SearchDebounce = 300 * time.Millisecond

	// DefaultPageSize is used when neither the caller nor the config picks one.
	DefaultPageSize = 20
)

// Options describes the grid the app shows.
type Options struct {
	// TableID keys the persisted view in the config file.
	TableID string
	Title   string

	Columns  []layout.Descriptor
	Provider source.Provider

	// RowID extracts a row's id. Rows it fails on get positional ids.
	RowID func(source.Record) (string, error)

	// PageSize overrides the saved page size when positive.
	PageSize int

	// InitialView is used when the config holds no saved view for TableID.
	InitialView *layout.State

	SelectionMode         rowstate.Mode
	AllowMultipleExpanded bool
	Direction             resize.Direction
	HistoryLimit          int

	// ExportDir is where exported workbooks are written. Defaults to the
	// working directory.
	ExportDir string

	// Version is the running release. After an upgrade the changes since
	// the last seen version are shown once.
	Version string
}

// Model is the main Bubble Tea model
type Model struct {
	config *config.Config
	opts   Options

	header  *ui.Header
	toolbar *ui.Toolbar
	footer  *ui.Footer
	modal   *ui.Modal

	table  *grid.Table[source.Record]
	view   *ui.TableView[source.Record]
	clicks *ui.ClickTracker

	provider    source.Provider
	query       source.Query // the page the user asked for last
	fetchSeq    int
	cancelFetch context.CancelFunc

	searchSeq    int
	searchBefore string // query to restore when search is cancelled

	// Set by table callbacks during Update and flushed once at its end.
	needsFetch  bool
	configDirty bool

	lastClicked source.Record

	width  int
	height int

	log *slog.Logger
}

// New creates a new app model
func New(cfg *config.Config, opts Options) *Model {
	// Load saved theme from config, or use default
	if savedTheme := cfg.GetTheme(); savedTheme != "" {
		ui.SetThemeByName(savedTheme)
	}
	if opts.PageSize <= 0 {
		opts.PageSize = cfg.GetPageSize(DefaultPageSize)
	}
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = cfg.GetHistoryLimit()
	}

	m := &Model{
		config:   cfg,
		opts:     opts,
		header:   ui.NewHeader(),
		toolbar:  ui.NewToolbar(),
		footer:   ui.NewFooter(),
		modal:    ui.NewModal(),
		clicks:   ui.NewClickTracker(),
		provider: opts.Provider,
		query:    source.Query{Page: 1, PageSize: opts.PageSize},
		log:      logger.WithComponent("app"),
	}

	initial := opts.InitialView
	if saved, ok := cfg.GetView(opts.TableID); ok {
		initial = &saved
	}

	cols := make([]grid.Column[source.Record], len(opts.Columns))
	for i, d := range opts.Columns {
		cols[i] = grid.Column[source.Record]{Descriptor: d, Key: d.ID}
	}

	m.table = grid.New(grid.Options[source.Record]{
		ID:                    opts.TableID,
		Columns:               cols,
		RowID:                 opts.RowID,
		InitialView:           initial,
		OnViewChange:          m.onViewChange,
		SelectionMode:         opts.SelectionMode,
		AllowMultipleExpanded: opts.AllowMultipleExpanded,
		RenderExpanded:        m.renderDetails,
		OnRowClick:            func(r source.Record) { m.lastClicked = r },
		HistoryLimit:          opts.HistoryLimit,
		Direction:             opts.Direction,
	})
	m.table.SetServerData(m.serverData(m.query, nil, 0))

	m.view = ui.NewTableView(m.table)
	m.view.SetDensity(cfg.GetDensity())
	m.view.SetStriped(cfg.GetStriped())
	if ordered := m.table.OrderedColumns(); len(ordered) > 0 {
		m.view.SetActiveColumn(ordered[0].ID)
	}

	m.header.SetTableName(m.title())
	m.footer.SetBindings(m.footerBindings())

	m.log.Debug("app created",
		"table", opts.TableID,
		"columns", len(opts.Columns),
		"pageSize", opts.PageSize,
		"savedView", initial != nil)
	return m
}

// footerBindings drops the idle hints for gestures this table cannot perform.
func (m *Model) footerBindings() []ui.KeyBinding {
	sortable := false
	for _, c := range m.table.Columns() {
		if c.Sortable() {
			sortable = true
			break
		}
	}
	var out []ui.KeyBinding
	for _, b := range ui.DefaultBindings() {
		switch b.Key {
		case "s":
			if !sortable {
				continue
			}
		case "space":
			if m.table.SelectionMode() == rowstate.ModeSingle {
				b.Desc = "select one"
			}
		}
		out = append(out, b)
	}
	return out
}

// Init starts the first fetch
func (m *Model) Init() tea.Cmd {
	m.showChangelog()
	return m.fetchRows()
}

// showChangelog opens "What's New" when the version changed since the last
// run. Dev builds never show it.
func (m *Model) showChangelog() {
	v := m.opts.Version
	if !changelog.IsRelease(v) {
		return
	}
	lastSeen := m.config.GetLastSeenVersion()
	if lastSeen != "" && changelog.CompareVersions(lastSeen, v) == 0 {
		return
	}

	entries := changelog.Since(lastSeen, v)
	if len(entries) == 0 {
		m.markChangelogSeen()
		return
	}
	m.log.Info("showing changelog", "from", lastSeen, "to", v, "releases", len(entries))

	items := make([]ui.ChangelogEntry, len(entries))
	for i, e := range entries {
		items[i] = ui.ChangelogEntry{Version: e.Version, Date: e.Date, Changes: e.Changes}
	}
	m.modal.Show(ui.NewChangelogState(items))
}

// markChangelogSeen records the running version so the changelog isn't
// shown again.
func (m *Model) markChangelogSeen() {
	m.config.SetLastSeenVersion(m.opts.Version)
	if err := m.config.Save(); err != nil {
		m.log.Warn("failed to save last-seen version", "error", err)
	}
}

// title names the grid in the header and in exports.
func (m *Model) title() string {
	if m.opts.Title != "" {
		return m.opts.Title
	}
	return m.opts.TableID
}

// Table exposes the grid for hosts and tests.
func (m *Model) Table() *grid.Table[source.Record] {
	return m.table
}

// LastClicked returns the row most recently reported by the row click
// callback.
func (m *Model) LastClicked() (source.Record, bool) {
	return m.lastClicked, m.lastClicked != nil
}

// onViewChange persists the layout under the table id. The file is written
// once at the end of the Update that changed it.
func (m *Model) onViewChange(st layout.State) {
	if m.config.SetView(m.opts.TableID, st) {
		m.configDirty = true
	}
}

// renderDetails is the expanded-row renderer: one "Header: value" line per
// column with a value.
func (m *Model) renderDetails(r source.Record) string {
	var b strings.Builder
	for _, d := range m.opts.Columns {
		v, ok := r[d.ID]
		if !ok || v == nil {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s: %v", d.Header(), v)
	}
	return b.String()
}

// serverData builds the data contract for a page. The callbacks record the
// request and leave the fetch to the end of the current Update.
func (m *Model) serverData(q source.Query, rows []source.Record, total int) grid.ServerData[source.Record] {
	return grid.ServerData[source.Record]{
		Rows:          rows,
		TotalCount:    total,
		Page:          q.Page,
		PageSize:      q.PageSize,
		SortColumn:    q.SortColumn,
		SortDirection: q.SortDirection,
		SearchQuery:   q.Search,
		OnPageChange: func(page int) {
			m.query.Page = page
			m.needsFetch = true
		},
		OnPageSizeChange: func(size int) {
			m.query.PageSize = size
			m.query.Page = 1
			m.config.SetPageSize(size)
			m.configDirty = true
			m.needsFetch = true
		},
		OnSortChange: func(column string, dir grid.SortDirection) {
			m.query.SortColumn = column
			m.query.SortDirection = dir
			m.query.Page = 1
			m.needsFetch = true
		},
		OnSearchChange: func(query string) {
			m.query.Search = query
			m.query.Page = 1
			m.needsFetch = true
		},
	}
}

// fetchRows requests the page described by m.query. A fetch still in
// flight is cancelled and its late result dropped by sequence number.
func (m *Model) fetchRows() tea.Cmd {
	if m.provider == nil {
		return nil
	}
	if m.cancelFetch != nil {
		m.cancelFetch()
	}
	ctx, cancel := context.WithTimeout(context.Background(), FetchTimeout)
	m.cancelFetch = cancel
	m.fetchSeq++
	seq, q, provider := m.fetchSeq, m.query, m.provider

	d := m.table.Data()
	if len(d.Rows) == 0 {
		d.Loading = true
	} else {
		d.Refetching = true
	}
	m.table.SetServerData(d)

	m.log.Debug("fetching rows",
		"seq", seq,
		"page", q.Page,
		"size", q.PageSize,
		"sort", q.SortColumn,
		"dir", q.SortDirection.String(),
		"search", q.Search)

	return func() tea.Msg {
		defer cancel()
		res, err := provider.Fetch(ctx, q)
		return RowsFetchedMsg{Seq: seq, Result: res, Err: err}
	}
}

// Settle completes any fetch in flight synchronously, including fetches the
// result itself triggers, and reports whether the model came to rest. Demos
// use it to step the model without a running program.
func (m *Model) Settle(ctx context.Context) bool {
	for range 5 {
		if m.cancelFetch == nil {
			return true
		}
		res, err := m.provider.Fetch(ctx, m.query)
		m.Update(RowsFetchedMsg{Seq: m.fetchSeq, Result: res, Err: err})
	}
	return m.cancelFetch == nil
}

// flushPending runs the work table callbacks asked for during this Update.
func (m *Model) flushPending() []tea.Cmd {
	var cmds []tea.Cmd
	if m.needsFetch {
		m.needsFetch = false
		cmds = append(cmds, m.fetchRows())
	}
	if m.configDirty {
		m.configDirty = false
		cmds = append(cmds, m.saveConfigOrFlash())
	}
	return cmds
}

// saveConfigOrFlash writes the config file and reports a failure in the
// footer.
func (m *Model) saveConfigOrFlash() tea.Cmd {
	if err := m.config.Save(); err != nil {
		m.log.Error("failed to save config", "error", err)
		return m.ShowFlashError("Failed to save settings: " + err.Error())
	}
	return nil
}
