package layout

import (
	"log/slog"
	"slices"

	"github.com/zhubert/datagrid/internal/logger"
)

// Store owns the column layout of one table instance.
//
// Every setter is total: unknown column ids are inert and return false.
// Setters return true only when the state actually changed, and every change
// is reported through the onChange callback with a deep-copied snapshot.
type Store struct {
	descs    []Descriptor
	byID     map[string]int
	state    State
	onChange func(State)

	// cached derivation, rebuilt lazily after any change
	ordered []Descriptor
	dirty   bool

	log *slog.Logger
}

// NewStore creates a layout store for descs seeded from an optional partial
// initial view. onChange may be nil.
func NewStore(descs []Descriptor, initial *State, onChange func(State)) *Store {
	s := &Store{
		onChange: onChange,
		dirty:    true,
		log:      logger.WithComponent("layout"),
	}
	s.setDescriptors(descs)

	seed := State{}
	if initial != nil {
		seed = *initial
	}
	s.state = s.normalize(seed)
	return s
}

func (s *Store) setDescriptors(descs []Descriptor) {
	s.descs = slices.Clone(descs)
	s.byID = make(map[string]int, len(descs))
	for i, d := range s.descs {
		if _, dup := s.byID[d.ID]; dup {
			s.log.Warn("duplicate column id ignored", "column", d.ID)
			continue
		}
		s.byID[d.ID] = i
	}
}

// normalize repairs a (possibly partial or stale) state so the invariants
// hold: order is a permutation of the descriptor ids, pin lists only contain
// known ids and no id is pinned on both sides. Visibility only keeps hidden
// columns, so two layouts that look the same compare equal.
func (s *Store) normalize(in State) State {
	out := State{
		Visibility: make(map[string]bool),
		Widths:     make(map[string]int),
	}
	for id, v := range in.Visibility {
		if s.known(id) && !v {
			out.Visibility[id] = false
		}
	}
	for id, w := range in.Widths {
		if s.known(id) && w > 0 {
			out.Widths[id] = w
		}
	}

	seen := make(map[string]bool, len(s.byID))
	for _, id := range in.Order {
		if s.known(id) && !seen[id] {
			seen[id] = true
			out.Order = append(out.Order, id)
		}
	}
	for _, d := range s.descs {
		if !seen[d.ID] {
			seen[d.ID] = true
			out.Order = append(out.Order, d.ID)
		}
	}

	pinned := make(map[string]bool)
	for _, id := range in.Pinning.Left {
		if s.known(id) && !pinned[id] {
			pinned[id] = true
			out.Pinning.Left = append(out.Pinning.Left, id)
		}
	}
	for _, id := range in.Pinning.Right {
		if s.known(id) && !pinned[id] {
			pinned[id] = true
			out.Pinning.Right = append(out.Pinning.Right, id)
		}
	}
	if out.Pinning.Left == nil {
		out.Pinning.Left = []string{}
	}
	if out.Pinning.Right == nil {
		out.Pinning.Right = []string{}
	}
	if out.Order == nil {
		out.Order = []string{}
	}
	return out
}

func (s *Store) known(id string) bool {
	_, ok := s.byID[id]
	return ok
}

func (s *Store) changed(what string, args ...any) {
	s.dirty = true
	s.log.Debug("layout changed", append([]any{"field", what}, args...)...)
	if s.onChange != nil {
		s.onChange(s.state.Clone())
	}
}

// SetVisibility shows or hides a column.
func (s *Store) SetVisibility(id string, visible bool) bool {
	if !s.known(id) || s.IsVisible(id) == visible {
		return false
	}
	if visible {
		delete(s.state.Visibility, id)
	} else {
		s.state.Visibility[id] = false
	}
	s.changed("visibility", "column", id, "visible", visible)
	return true
}

// SetWidth stores an explicit width override. Non-positive widths are inert.
func (s *Store) SetWidth(id string, width int) bool {
	if !s.known(id) || width <= 0 {
		return false
	}
	if cur, ok := s.state.Widths[id]; ok && cur == width {
		return false
	}
	s.state.Widths[id] = width
	s.changed("width", "column", id, "width", width)
	return true
}

// ClearWidth drops a column's width override so the descriptor default
// applies again.
func (s *Store) ClearWidth(id string) bool {
	if _, ok := s.state.Widths[id]; !ok {
		return false
	}
	delete(s.state.Widths, id)
	s.changed("width", "column", id, "width", "default")
	return true
}

// HasWidthOverride reports whether a column has an explicit width.
func (s *Store) HasWidthOverride(id string) bool {
	_, ok := s.state.Widths[id]
	return ok
}

// SetPin pins a column to side (appending to that side's list) or unpins it
// with SideNone. Re-pinning to the side a column is already on is a no-op.
func (s *Store) SetPin(id string, side Side) bool {
	return s.SetPinAt(id, side, -1)
}

// SetPinAt is SetPin with an explicit position in the target pin list.
// A negative index appends. It is used to restore exact pin positions.
func (s *Store) SetPinAt(id string, side Side, index int) bool {
	if !s.known(id) {
		return false
	}
	cur, curIdx := s.state.Pinning.Side(id)
	if cur == side && (side == SideNone || index < 0 || index == curIdx) {
		return false
	}

	p := &s.state.Pinning
	p.Left = slices.DeleteFunc(p.Left, func(c string) bool { return c == id })
	p.Right = slices.DeleteFunc(p.Right, func(c string) bool { return c == id })

	switch side {
	case SideLeft:
		p.Left = insertAt(p.Left, id, index)
	case SideRight:
		p.Right = insertAt(p.Right, id, index)
	}
	s.changed("pinning", "column", id, "side", side.String())
	return true
}

func insertAt(list []string, id string, index int) []string {
	if index < 0 || index > len(list) {
		return append(list, id)
	}
	return slices.Insert(list, index, id)
}

// MoveColumn moves a column within the base order. left/right move by one
// position (clamped), start/end move to the ends. This is an array move,
// not a swap.
func (s *Store) MoveColumn(id string, dir Direction) bool {
	order := s.state.Order
	from := slices.Index(order, id)
	if from < 0 {
		return false
	}

	to := from
	switch dir {
	case MoveLeft:
		to = max(0, from-1)
	case MoveRight:
		to = min(len(order)-1, from+1)
	case MoveStart:
		to = 0
	case MoveEnd:
		to = len(order) - 1
	}
	if to == from {
		return false
	}

	next := slices.Delete(slices.Clone(order), from, from+1)
	s.state.Order = slices.Insert(next, to, id)
	s.changed("order", "column", id, "from", from, "to", to)
	return true
}

// SetOrder replaces the base order. The input is normalized: unknown and
// duplicate ids are dropped and missing ids are appended.
func (s *Store) SetOrder(order []string) bool {
	next := s.normalize(State{Order: order}).Order
	if slices.Equal(next, s.state.Order) {
		return false
	}
	s.state.Order = next
	s.changed("order", "order", next)
	return true
}

// Restore replaces the whole layout with st (normalized).
func (s *Store) Restore(st State) bool {
	next := s.normalize(st)
	if next.Equal(s.state) {
		return false
	}
	s.state = next
	s.changed("all")
	return true
}

// Reset returns every column to its defaults. A layout already at its
// defaults is left alone and nothing is reported.
func (s *Store) Reset() bool {
	next := s.normalize(State{})
	if next.Equal(s.state) {
		return false
	}
	s.state = next
	s.changed("reset")
	return true
}

// SetDescriptors re-supplies the column universe and repairs the current
// state against it. Reports a change only if the state had to be repaired.
func (s *Store) SetDescriptors(descs []Descriptor) bool {
	s.setDescriptors(descs)
	s.dirty = true
	next := s.normalize(s.state)
	if next.Equal(s.state) {
		return false
	}
	s.state = next
	s.changed("descriptors")
	return true
}

// State returns a deep copy of the current layout.
func (s *Store) State() State {
	return s.state.Clone()
}

// Order returns a copy of the base order.
func (s *Store) Order() []string {
	return slices.Clone(s.state.Order)
}

// Descriptor looks up a column by id.
func (s *Store) Descriptor(id string) (Descriptor, bool) {
	i, ok := s.byID[id]
	if !ok {
		return Descriptor{}, false
	}
	return s.descs[i], true
}

// Descriptors returns the column universe in declaration order.
func (s *Store) Descriptors() []Descriptor {
	return slices.Clone(s.descs)
}

// Width returns the explicit override, else the descriptor default.
// ok is false when neither is set.
func (s *Store) Width(id string) (int, bool) {
	if w, ok := s.state.Widths[id]; ok {
		return w, true
	}
	if d, ok := s.Descriptor(id); ok && d.Size > 0 {
		return d.Size, true
	}
	return 0, false
}

// ResolvedWidth applies override → descriptor default → fallback constant.
func (s *Store) ResolvedWidth(id string) int {
	if w, ok := s.Width(id); ok {
		return w
	}
	return DefaultFallbackWidth
}

// PinSide reports the edge a column is pinned to and its position there.
func (s *Store) PinSide(id string) (Side, int) {
	return s.state.Pinning.Side(id)
}

// IsVisible reports whether a column is shown. Unknown ids are not visible.
func (s *Store) IsVisible(id string) bool {
	if !s.known(id) {
		return false
	}
	v, ok := s.state.Visibility[id]
	return !ok || v
}

// VisibleColumns returns the visible columns in base order.
func (s *Store) VisibleColumns() []Descriptor {
	var out []Descriptor
	for _, id := range s.state.Order {
		if s.IsVisible(id) {
			out = append(out, s.descs[s.byID[id]])
		}
	}
	return out
}

// OrderedColumns returns pinned-left (in pin order), then unpinned visible
// columns (in base order), then pinned-right (in pin order). Hidden columns
// are excluded entirely.
func (s *Store) OrderedColumns() []Descriptor {
	if !s.dirty && s.ordered != nil {
		return slices.Clone(s.ordered)
	}

	visible := s.VisibleColumns()
	isVisible := make(map[string]bool, len(visible))
	for _, d := range visible {
		isVisible[d.ID] = true
	}

	out := make([]Descriptor, 0, len(visible))
	for _, id := range s.state.Pinning.Left {
		if isVisible[id] {
			out = append(out, s.descs[s.byID[id]])
		}
	}
	for _, d := range visible {
		if !s.state.Pinning.IsPinned(d.ID) {
			out = append(out, d)
		}
	}
	for _, id := range s.state.Pinning.Right {
		if isVisible[id] {
			out = append(out, s.descs[s.byID[id]])
		}
	}

	s.ordered = out
	s.dirty = false
	return slices.Clone(out)
}

// Offsets derives sticky offsets for the visible pinned columns.
func (s *Store) Offsets() Offsets {
	return s.offsets(s.Width)
}

// PreviewOffsets is Offsets with column id drawn at width w, as it is while
// a resize is in progress.
func (s *Store) PreviewOffsets(id string, w int) Offsets {
	return s.offsets(func(col string) (int, bool) {
		if col == id {
			return w, true
		}
		return s.Width(col)
	})
}

func (s *Store) offsets(width func(id string) (int, bool)) Offsets {
	visible := Pinning{}
	for _, id := range s.state.Pinning.Left {
		if s.IsVisible(id) {
			visible.Left = append(visible.Left, id)
		}
	}
	for _, id := range s.state.Pinning.Right {
		if s.IsVisible(id) {
			visible.Right = append(visible.Right, id)
		}
	}
	return ComputeOffsets(visible, width, DefaultFallbackWidth)
}
