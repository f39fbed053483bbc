package ui

import (
	"sort"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/zhubert/datagrid/internal/grid"
	"github.com/zhubert/datagrid/internal/layout"
	"github.com/zhubert/datagrid/internal/logger"
	"github.com/zhubert/datagrid/internal/resize"
)

// Row densities, matching the config values.
var densityExtraLines = map[string]int{
	"short":      0,
	"medium":     1,
	"tall":       2,
	"extra-tall": 3,
}

// HitKind is what a mouse position landed on.
type HitKind int

const (
	HitNone HitKind = iota
	HitSelectAll
	HitHeader
	HitHandle
	HitCheckbox
	HitExpand
	HitRow
	HitExpanded
)

// Hit is the result of TableView.HitTest.
type Hit struct {
	Kind   HitKind
	Column string
	Row    int
}

// colSpan is one visible column in inner-area cell coordinates.
type colSpan struct {
	ID   string
	Side layout.Side
	X    int
	W    int
}

// geometry places the gutter and every column on screen. The middle band
// is clipped to [midLo, midHi).
type geometry struct {
	gutterX      int
	midLo, midHi int
	spans        []colSpan
}

// lineKind tags body lines for hit testing.
type lineKind int

const (
	lineRow lineKind = iota
	lineSpacer
	lineExpanded
)

type bodyLine struct {
	row  int
	kind lineKind
	text string // expanded detail text
}

// TableView renders a grid.Table and serves as its focus handle.
type TableView[T any] struct {
	table *grid.Table[T]

	width, height int
	offset        int // first visible row
	hscroll       int // cells scrolled in the middle band
	density       string
	striped       bool
	focused       bool
	activeCol     string // header cursor for keyboard column actions
}

// NewTableView creates a view over table and registers itself as the
// table's focus handle.
func NewTableView[T any](table *grid.Table[T]) *TableView[T] {
	v := &TableView[T]{table: table, density: "short", focused: true}
	table.SetFocusHandle(v)
	return v
}

// SetSize sets the panel size including its border.
func (v *TableView[T]) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.clampHScroll()
}

func (v *TableView[T]) Width() int  { return v.width }
func (v *TableView[T]) Height() int { return v.height }

// SetDensity sets the row density; unknown values fall back to short.
func (v *TableView[T]) SetDensity(d string) {
	if _, ok := densityExtraLines[d]; !ok {
		d = "short"
	}
	v.density = d
}

func (v *TableView[T]) SetStriped(striped bool) { v.striped = striped }

func (v *TableView[T]) SetFocused(focused bool) { v.focused = focused }

// Offset returns the first visible row index.
func (v *TableView[T]) Offset() int { return v.offset }

// HScroll returns the horizontal scroll of the middle band in cells.
func (v *TableView[T]) HScroll() int { return v.hscroll }

func (v *TableView[T]) innerWidth() int  { return max(0, v.width-BorderSize) }
func (v *TableView[T]) innerHeight() int { return max(0, v.height-BorderSize) }
func (v *TableView[T]) bodyHeight() int  { return max(0, v.innerHeight()-TableHeaderHeight) }

// ScrollIntoView adjusts the vertical offset so row index is fully visible.
func (v *TableView[T]) ScrollIntoView(index int) {
	rows := len(v.table.RowIDs())
	if index < 0 || index >= rows {
		return
	}
	if index < v.offset {
		v.offset = index
		return
	}
	body := v.bodyHeight()
	for v.offset < index {
		used := 0
		for i := v.offset; i <= index; i++ {
			used += v.rowHeight(i)
		}
		if used <= body {
			break
		}
		v.offset++
	}
}

// ScrollBy moves the vertical offset by delta rows.
func (v *TableView[T]) ScrollBy(delta int) {
	rows := len(v.table.RowIDs())
	v.offset = min(max(0, v.offset+delta), max(0, rows-1))
}

// ScrollHorizontal moves the middle band by delta cells.
func (v *TableView[T]) ScrollHorizontal(delta int) bool {
	prev := v.hscroll
	v.hscroll += delta
	v.clampHScroll()
	return v.hscroll != prev
}

func (v *TableView[T]) clampHScroll() {
	g := v.layoutColumns()
	midTotal := 0
	for _, s := range g.spans {
		if s.Side == layout.SideNone {
			midTotal += s.W
		}
	}
	maxScroll := max(0, midTotal-(g.midHi-g.midLo))
	v.hscroll = min(max(0, v.hscroll), maxScroll)
}

// SetActiveColumn moves the header cursor to column id.
func (v *TableView[T]) SetActiveColumn(id string) { v.activeCol = id }

func (v *TableView[T]) ActiveColumn() string { return v.activeCol }

// ScrollColumnIntoView scrolls the middle band until column id is fully
// drawn. Pinned columns are always drawn and need no scrolling.
func (v *TableView[T]) ScrollColumnIntoView(id string) {
	g := v.layoutColumns()
	rtl := v.table.Direction() == resize.RightToLeft
	for _, s := range g.spans {
		if s.ID != id || s.Side != layout.SideNone {
			continue
		}
		// Scrolling moves middle columns left in LTR and right in RTL.
		sign := 1
		if rtl {
			sign = -1
		}
		switch {
		case s.X < g.midLo:
			v.hscroll -= sign * (g.midLo - s.X)
		case s.X+s.W > g.midHi:
			v.hscroll += sign * (s.X + s.W - g.midHi)
		}
		v.clampHScroll()
		return
	}
}

// ResetScroll returns to the top-left of the table.
func (v *TableView[T]) ResetScroll() {
	v.offset = 0
	v.hscroll = 0
}

func (v *TableView[T]) extraLines() int {
	return densityExtraLines[v.density]
}

// expandedLines wraps the detail text of row i, or returns nil when the row
// is not expanded.
func (v *TableView[T]) expandedLines(i int) []string {
	text, ok := v.table.ExpandedText(i)
	if !ok {
		return nil
	}
	lines := wrapText(text, max(1, v.innerWidth()-CheckboxWidth))
	if len(lines) > ExpandedMaxLines {
		lines = append(lines[:ExpandedMaxLines-1], "…")
	}
	return lines
}

func (v *TableView[T]) rowHeight(i int) int {
	return 1 + v.extraLines() + len(v.expandedLines(i))
}

// bodyLines lists what each visible body line shows.
func (v *TableView[T]) bodyLines() []bodyLine {
	body := v.bodyHeight()
	rows := len(v.table.RowIDs())
	out := make([]bodyLine, 0, body)
	for i := v.offset; i < rows && len(out) < body; i++ {
		out = append(out, bodyLine{row: i, kind: lineRow})
		for _, l := range v.expandedLines(i) {
			out = append(out, bodyLine{row: i, kind: lineExpanded, text: l})
		}
		for range v.extraLines() {
			out = append(out, bodyLine{row: i, kind: lineSpacer})
		}
	}
	if len(out) > body {
		out = out[:body]
	}
	return out
}

// layoutColumns computes where every visible column is drawn. Pinned
// columns are placed from the table's sticky offsets.
func (v *TableView[T]) layoutColumns() geometry {
	w := v.innerWidth()
	rtl := v.table.Direction() == resize.RightToLeft
	offs := v.table.Offsets()
	leftBand, rightBand := offs.LeftWidth/PixelsPerCell, offs.RightWidth/PixelsPerCell

	var left, mid, right []colSpan
	for _, c := range v.table.OrderedColumns() {
		px := v.table.ColumnWidth(c.ID)
		side, off, ok := offs.Offset(c.ID)
		if !ok {
			mid = append(mid, colSpan{ID: c.ID, Side: layout.SideNone, W: CellsForWidth(px)})
			continue
		}
		// near is the cell distance from the band's outer edge to the
		// column's outer side, far to its inner side.
		near, far := off/PixelsPerCell, (off+px)/PixelsPerCell
		s := colSpan{ID: c.ID, Side: side, X: far, W: max(1, far-near)}
		if side == layout.SideLeft {
			left = append(left, s)
		} else {
			right = append(right, s)
		}
	}

	g := geometry{}
	if !rtl {
		g.gutterX = 0
		for i := range left {
			left[i].X = CheckboxWidth + left[i].X - left[i].W
		}
		g.midLo = CheckboxWidth + leftBand
		g.midHi = max(g.midLo, w-rightBand)
		for i := range right {
			right[i].X = g.midHi + rightBand - right[i].X
		}
		x := g.midLo - v.hscroll
		for i := range mid {
			mid[i].X = x
			x += mid[i].W
		}
	} else {
		g.gutterX = max(0, w-CheckboxWidth)
		for i := range left {
			left[i].X = g.gutterX - left[i].X
		}
		g.midHi = max(0, g.gutterX-leftBand)
		for i := range right {
			right[i].X -= right[i].W
		}
		g.midLo = min(rightBand, g.midHi)
		x := g.midHi + v.hscroll
		for i := range mid {
			x -= mid[i].W
			mid[i].X = x
		}
	}

	g.spans = append(append(append(g.spans, left...), mid...), right...)
	return g
}

// visible clips a span to what is drawn on screen.
func (g geometry) visible(s colSpan) (lo, hi int) {
	lo, hi = s.X, s.X+s.W
	if s.Side == layout.SideNone {
		lo, hi = max(lo, g.midLo), min(hi, g.midHi)
	}
	return lo, hi
}

// HitTest maps a position inside the panel (border included) to what is
// drawn there.
func (v *TableView[T]) HitTest(x, y int) Hit {
	ix, iy := x-1, y-1
	if ix < 0 || iy < 0 || ix >= v.innerWidth() || iy >= v.innerHeight() {
		return Hit{Kind: HitNone, Row: -1}
	}
	g := v.layoutColumns()
	rtl := v.table.Direction() == resize.RightToLeft

	if iy == 0 {
		if ix >= g.gutterX && ix < g.gutterX+CheckboxWidth {
			return Hit{Kind: HitSelectAll, Row: -1}
		}
		for _, s := range g.spans {
			lo, hi := g.visible(s)
			if ix < lo || ix >= hi {
				continue
			}
			handle := s.X + s.W - 1
			if rtl {
				handle = s.X
			}
			if ix == handle {
				return Hit{Kind: HitHandle, Column: s.ID, Row: -1}
			}
			return Hit{Kind: HitHeader, Column: s.ID, Row: -1}
		}
		return Hit{Kind: HitNone, Row: -1}
	}
	if iy < TableHeaderHeight {
		return Hit{Kind: HitNone, Row: -1}
	}

	lines := v.bodyLines()
	li := iy - TableHeaderHeight
	if li >= len(lines) {
		return Hit{Kind: HitNone, Row: -1}
	}
	bl := lines[li]
	if bl.kind == lineExpanded {
		return Hit{Kind: HitExpanded, Row: bl.row}
	}
	if ix >= g.gutterX && ix < g.gutterX+CheckboxWidth {
		pos := ix - g.gutterX
		if rtl {
			pos = CheckboxWidth - 1 - pos
		}
		switch pos {
		case 1:
			return Hit{Kind: HitCheckbox, Row: bl.row}
		case 2:
			return Hit{Kind: HitExpand, Row: bl.row}
		}
		return Hit{Kind: HitRow, Row: bl.row}
	}
	for _, s := range g.spans {
		lo, hi := g.visible(s)
		if ix >= lo && ix < hi {
			return Hit{Kind: HitRow, Column: s.ID, Row: bl.row}
		}
	}
	return Hit{Kind: HitRow, Row: bl.row}
}

// piece is a styled run of cells at a fixed x.
type piece struct {
	x     int
	text  string
	style lipgloss.Style
}

// composeLine draws pieces onto a line of width w, filling gaps with fill.
func composeLine(w int, pieces []piece, fill lipgloss.Style) string {
	sort.SliceStable(pieces, func(i, j int) bool { return pieces[i].x < pieces[j].x })
	var b strings.Builder
	cur := 0
	for _, p := range pieces {
		if p.x < cur || p.x >= w {
			continue
		}
		if p.x > cur {
			b.WriteString(fill.Render(strings.Repeat(" ", p.x-cur)))
			cur = p.x
		}
		text := p.text
		if tw := ansi.StringWidth(text); cur+tw > w {
			text = ansi.Cut(text, 0, w-cur)
		}
		b.WriteString(p.style.Render(text))
		cur += ansi.StringWidth(text)
	}
	if cur < w {
		b.WriteString(fill.Render(strings.Repeat(" ", w-cur)))
	}
	return b.String()
}

// fit truncates s to w cells with an ellipsis and pads it to exactly w.
func fit(s string, w int) string {
	if w <= 0 {
		return ""
	}
	s = strings.ReplaceAll(s, "\n", " ")
	if runewidth.StringWidth(s) > w {
		s = runewidth.Truncate(s, w, "…")
	}
	return runewidth.FillRight(s, w)
}

// wrapText breaks text into lines of at most w cells on grapheme boundaries.
func wrapText(text string, w int) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		var line strings.Builder
		width := 0
		gr := uniseg.NewGraphemes(para)
		for gr.Next() {
			gw := gr.Width()
			if width+gw > w && width > 0 {
				lines = append(lines, line.String())
				line.Reset()
				width = 0
			}
			line.WriteString(gr.Str())
			width += gw
		}
		lines = append(lines, line.String())
	}
	return lines
}

// cellPiece clips a column's text to its visible window.
func cellPiece(g geometry, s colSpan, text string, style lipgloss.Style) (piece, bool) {
	lo, hi := g.visible(s)
	if hi <= lo {
		return piece{}, false
	}
	return piece{x: lo, text: ansi.Cut(text, lo-s.X, hi-s.X), style: style}, true
}

// headerText lays out a column title with its sort marker and resize handle.
func headerText(title string, w int, marker string, rtl bool) string {
	if w <= 1 {
		return HandleGlyph
	}
	label := title
	if marker != "" {
		label = title + " " + marker
	}
	if rtl {
		return HandleGlyph + fit(label, w-1)
	}
	return fit(label, w-1) + HandleGlyph
}

func (v *TableView[T]) renderHeader(g geometry) string {
	w := v.innerWidth()
	rtl := v.table.Direction() == resize.RightToLeft
	data := v.table.Data()
	dragging, isDragging := v.table.Resizing()

	allMark := "○"
	switch {
	case v.table.IsAllSelected():
		allMark = "●"
	case v.table.IsSomeSelected():
		allMark = "◐"
	}
	gutter := " " + allMark + "  "
	if rtl {
		gutter = reverseCells(gutter)
	}
	pieces := []piece{{x: g.gutterX, text: gutter, style: CheckboxStyle}}

	for _, s := range g.spans {
		col, _ := v.table.Column(s.ID)
		title := col.DisplayName
		if title == "" {
			title = col.ID
		}
		marker := ""
		if data.SortColumn == s.ID {
			switch data.SortDirection {
			case grid.SortAsc:
				marker = "▲"
			case grid.SortDesc:
				marker = "▼"
			}
		}
		style := ColumnHeaderStyle
		if s.Side != layout.SideNone {
			style = ColumnHeaderPinnedStyle
		}
		if s.ID == v.activeCol {
			style = style.Underline(true)
		}
		if isDragging && dragging == s.ID {
			style = ResizeActiveStyle.Inherit(style)
		}
		if p, ok := cellPiece(g, s, headerText(title, s.W, marker, rtl), style); ok {
			pieces = append(pieces, p)
		}
	}
	return composeLine(w, pieces, lipgloss.NewStyle())
}

// reverseCells mirrors a plain single-width string.
func reverseCells(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}

func (v *TableView[T]) rowStyle(i int, id string) lipgloss.Style {
	style := lipgloss.NewStyle()
	if v.striped && i%2 == 1 {
		style = style.Background(ColorBgStripe)
	}
	if v.table.IsSelected(id) {
		style = style.Background(ColorBgSelected)
	}
	if v.focused && v.table.Focused() == i {
		style = style.Bold(true)
	}
	return style
}

func (v *TableView[T]) renderRow(g geometry, i int, id string) string {
	w := v.innerWidth()
	rtl := v.table.Direction() == resize.RightToLeft
	base := v.rowStyle(i, id)

	focus := " "
	if v.focused && v.table.Focused() == i {
		focus = "›"
		if rtl {
			focus = "‹"
		}
	}
	check := "○"
	if v.table.IsSelected(id) {
		check = "●"
	}
	expand := " "
	if v.table.IsExpanded(id) {
		expand = "▾"
	}
	gutter := focus + check + expand + " "
	if rtl {
		gutter = reverseCells(gutter)
	}
	pieces := []piece{{x: g.gutterX, text: gutter, style: base.Inherit(CheckboxStyle)}}

	for _, s := range g.spans {
		cell := CellStyle
		if s.Side != layout.SideNone {
			cell = PinnedCellStyle
		}
		text := fit(v.table.CellText(i, s.ID), s.W-1) + " "
		if rtl {
			text = " " + fit(v.table.CellText(i, s.ID), s.W-1)
		}
		if p, ok := cellPiece(g, s, text, base.Inherit(cell)); ok {
			pieces = append(pieces, p)
		}
	}
	return composeLine(w, pieces, base)
}

// View renders the table panel.
func (v *TableView[T]) View() string {
	w, h := v.innerWidth(), v.innerHeight()
	if w <= 0 || h <= 0 {
		return ""
	}
	g := v.layoutColumns()
	data := v.table.Data()

	lines := make([]string, 0, h)
	lines = append(lines, v.renderHeader(g))
	lines = append(lines, ColumnRuleStyle.Render(strings.Repeat("─", w)))

	ids := v.table.RowIDs()
	if len(ids) == 0 {
		msg := "No rows"
		switch {
		case data.Loading:
			msg = "Loading…"
		case data.SearchQuery != "":
			msg = "No rows match \"" + data.SearchQuery + "\""
		}
		lines = append(lines, EmptyStateStyle.Render(fit(msg, w)))
	}

	for _, bl := range v.bodyLines() {
		switch bl.kind {
		case lineRow:
			lines = append(lines, v.renderRow(g, bl.row, ids[bl.row]))
		case lineExpanded:
			lines = append(lines, ExpandedStyle.Render(fit(bl.text, max(0, w-CheckboxWidth))))
		default:
			lines = append(lines, v.rowStyle(bl.row, ids[bl.row]).Render(strings.Repeat(" ", w)))
		}
	}
	for len(lines) < h {
		lines = append(lines, strings.Repeat(" ", w))
	}
	if len(lines) > h {
		lines = lines[:h]
	}

	style := PanelStyle
	if v.focused {
		style = PanelFocusedStyle
	}
	logger.WithComponent("ui").Debug("table rendered",
		"rows", len(ids), "offset", v.offset, "hscroll", v.hscroll, "columns", len(g.spans))
	return style.Width(v.width).Height(v.height).Render(strings.Join(lines, "\n"))
}
