package layout

import (
	"fmt"
	"maps"
	"slices"
)

// Side is the edge a column is pinned to.
type Side int

const (
	SideNone Side = iota
	SideLeft
	SideRight
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "none"
	}
}

// ParseSide converts "left", "right" or "none" (or "") to a Side.
func ParseSide(s string) (Side, error) {
	switch s {
	case "left":
		return SideLeft, nil
	case "right":
		return SideRight, nil
	case "none", "":
		return SideNone, nil
	default:
		return SideNone, fmt.Errorf("unknown pin side %q", s)
	}
}

// Direction is the target of a MoveColumn call.
type Direction int

const (
	MoveLeft Direction = iota
	MoveRight
	MoveStart
	MoveEnd
)

func (d Direction) String() string {
	switch d {
	case MoveLeft:
		return "left"
	case MoveRight:
		return "right"
	case MoveStart:
		return "start"
	case MoveEnd:
		return "end"
	default:
		return "unknown"
	}
}

// Pinning lists pinned column ids per edge. A column is in at most one list.
type Pinning struct {
	Left  []string `json:"left" yaml:"left"`
	Right []string `json:"right" yaml:"right"`
}

// State is the full column layout. It doubles as the serialisable view that
// hosts persist: the field names match what the view-changed callback reports.
//
// Absence from Visibility means visible; absence from Widths means the
// descriptor default applies.
type State struct {
	Visibility map[string]bool `json:"columnVisibility" yaml:"columnVisibility"`
	Widths     map[string]int  `json:"columnWidths" yaml:"columnWidths"`
	Pinning    Pinning         `json:"columnPinning" yaml:"columnPinning"`
	Order      []string        `json:"columnOrder" yaml:"columnOrder"`
}

// Clone returns a deep copy with all maps and slices non-nil.
func (s State) Clone() State {
	out := State{
		Visibility: make(map[string]bool, len(s.Visibility)),
		Widths:     make(map[string]int, len(s.Widths)),
		Pinning: Pinning{
			Left:  append([]string{}, s.Pinning.Left...),
			Right: append([]string{}, s.Pinning.Right...),
		},
		Order: append([]string{}, s.Order...),
	}
	maps.Copy(out.Visibility, s.Visibility)
	maps.Copy(out.Widths, s.Widths)
	return out
}

// Equal reports whether two states describe the same layout.
func (s State) Equal(o State) bool {
	return maps.Equal(s.Visibility, o.Visibility) &&
		maps.Equal(s.Widths, o.Widths) &&
		slices.Equal(s.Pinning.Left, o.Pinning.Left) &&
		slices.Equal(s.Pinning.Right, o.Pinning.Right) &&
		slices.Equal(s.Order, o.Order)
}

// Side reports which edge id is pinned to and its position in that list.
// Unpinned columns return (SideNone, -1).
func (p Pinning) Side(id string) (Side, int) {
	if i := slices.Index(p.Left, id); i >= 0 {
		return SideLeft, i
	}
	if i := slices.Index(p.Right, id); i >= 0 {
		return SideRight, i
	}
	return SideNone, -1
}

// IsPinned reports whether id appears in either pin list.
func (p Pinning) IsPinned(id string) bool {
	side, _ := p.Side(id)
	return side != SideNone
}
