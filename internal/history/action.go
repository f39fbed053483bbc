// Package history is a bounded undo/redo stack over reversible actions.
package history

import (
	"fmt"

	"github.com/zhubert/datagrid/internal/layout"
)

// Kind tags an action variant.
type Kind int

const (
	KindSelection Kind = iota
	KindExpansion
	KindVisibility
	KindPin
	KindOrder
	KindResize
	KindViewReset
)

func (k Kind) String() string {
	switch k {
	case KindSelection:
		return "selection"
	case KindExpansion:
		return "expansion"
	case KindVisibility:
		return "visibility"
	case KindPin:
		return "pin"
	case KindOrder:
		return "order"
	case KindResize:
		return "resize"
	case KindViewReset:
		return "view-reset"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Applier writes a recorded value back into the store that owns it. Every
// action variant has exactly one Applier method, and the apply calls must not
// record history themselves.
type Applier interface {
	ApplySelection(ids []string)
	ApplyExpansion(ids []string)
	ApplyVisibility(columnID string, visible bool)
	ApplyPin(columnID string, side layout.Side, index int)
	ApplyOrder(order []string)
	// ApplyResize sets a width override; width <= 0 clears it.
	ApplyResize(columnID string, width int)
	ApplyView(state layout.State)
}

// Action is a self-contained reversible delta. The set of actions is closed:
// apply is unexported so only this package can add variants.
type Action interface {
	Kind() Kind
	apply(a Applier, forward bool)
}

// Selection replaces the selected id list.
type Selection struct {
	Prev, Next []string
}

func (Selection) Kind() Kind { return KindSelection }

func (s Selection) apply(a Applier, forward bool) {
	a.ApplySelection(pick(forward, s.Prev, s.Next))
}

// Expansion replaces the expanded id list.
type Expansion struct {
	Prev, Next []string
}

func (Expansion) Kind() Kind { return KindExpansion }

func (e Expansion) apply(a Applier, forward bool) {
	a.ApplyExpansion(pick(forward, e.Prev, e.Next))
}

// Visibility shows or hides one column.
type Visibility struct {
	ColumnID   string
	Prev, Next bool
}

func (Visibility) Kind() Kind { return KindVisibility }

func (v Visibility) apply(a Applier, forward bool) {
	a.ApplyVisibility(v.ColumnID, pick(forward, v.Prev, v.Next))
}

// Pin moves a column between pin sides. The indexes are the column's
// position inside its pin list, so undo puts it back exactly where it was.
type Pin struct {
	ColumnID             string
	Prev, Next           layout.Side
	PrevIndex, NextIndex int
}

func (Pin) Kind() Kind { return KindPin }

func (p Pin) apply(a Applier, forward bool) {
	if forward {
		a.ApplyPin(p.ColumnID, p.Next, p.NextIndex)
		return
	}
	a.ApplyPin(p.ColumnID, p.Prev, p.PrevIndex)
}

// Order replaces the base column order.
type Order struct {
	Prev, Next []string
}

func (Order) Kind() Kind { return KindOrder }

func (o Order) apply(a Applier, forward bool) {
	a.ApplyOrder(pick(forward, o.Prev, o.Next))
}

// Resize sets one column's width override. Prev is the resolved width
// before the change; PrevUnset marks that it came from the descriptor
// default rather than an override, so undo clears the override instead.
type Resize struct {
	ColumnID   string
	Prev, Next int
	PrevUnset  bool
}

func (Resize) Kind() Kind { return KindResize }

func (r Resize) apply(a Applier, forward bool) {
	if !forward && r.PrevUnset {
		a.ApplyResize(r.ColumnID, 0)
		return
	}
	a.ApplyResize(r.ColumnID, pick(forward, r.Prev, r.Next))
}

// ViewReset swaps the whole column layout.
type ViewReset struct {
	Prev, Next layout.State
}

func (ViewReset) Kind() Kind { return KindViewReset }

func (v ViewReset) apply(a Applier, forward bool) {
	if forward {
		a.ApplyView(v.Next.Clone())
		return
	}
	a.ApplyView(v.Prev.Clone())
}

func pick[T any](forward bool, prev, next T) T {
	if forward {
		return next
	}
	return prev
}
