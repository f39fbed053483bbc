package layout

// Offsets maps pinned column ids to their distance from the edge they are
// pinned to. LeftWidth and RightWidth are the total widths of each band.
type Offsets struct {
	Left       map[string]int
	Right      map[string]int
	LeftWidth  int
	RightWidth int
}

// ComputeOffsets accumulates widths along each pin list. Left offsets start
// at 0 in list order; right offsets start at 0 from the end of the right
// list, so the column nearest the right edge is at 0.
//
// width reports a column's width; when it has none, fallback is used.
func ComputeOffsets(p Pinning, width func(id string) (int, bool), fallback int) Offsets {
	resolve := func(id string) int {
		if w, ok := width(id); ok {
			return w
		}
		return fallback
	}

	o := Offsets{
		Left:  make(map[string]int, len(p.Left)),
		Right: make(map[string]int, len(p.Right)),
	}
	for _, id := range p.Left {
		o.Left[id] = o.LeftWidth
		o.LeftWidth += resolve(id)
	}
	for i := len(p.Right) - 1; i >= 0; i-- {
		id := p.Right[i]
		o.Right[id] = o.RightWidth
		o.RightWidth += resolve(id)
	}
	return o
}

// Offset returns the side and offset of a pinned column.
func (o Offsets) Offset(id string) (Side, int, bool) {
	if v, ok := o.Left[id]; ok {
		return SideLeft, v, true
	}
	if v, ok := o.Right[id]; ok {
		return SideRight, v, true
	}
	return SideNone, 0, false
}
