package rowstate

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/zhubert/datagrid/internal/logger"
)

// Mode is the selection policy.
type Mode int

const (
	ModeMultiple Mode = iota
	ModeSingle
)

func (m Mode) String() string {
	if m == ModeSingle {
		return "single"
	}
	return "multiple"
}

// ParseMode parses "single" or "multiple".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "single":
		return ModeSingle, nil
	case "multiple", "":
		return ModeMultiple, nil
	default:
		return ModeMultiple, fmt.Errorf("unknown selection mode %q", s)
	}
}

// SelectionOptions configures a Selection.
type SelectionOptions struct {
	Mode Mode
	// Initial seeds an uncontrolled selection. It is ignored when Controlled
	// is set; single mode keeps only its first id.
	Initial []string
	// Controlled, when set, makes the host the owner of the selected ids.
	Controlled func() []string
	// OnChange receives the full next id list after every mutation.
	OnChange func(ids []string)
}

// Selection is the selected-row-id set.
//
// Mutations return the next id list. In controlled mode that list is only
// reported; IDs keeps returning whatever the host supplies.
type Selection struct {
	mode Mode
	src  *source
	log  *slog.Logger
}

// NewSelection creates a selection store.
func NewSelection(opts SelectionOptions) *Selection {
	initial := opts.Initial
	if opts.Mode == ModeSingle && len(initial) > 1 {
		initial = initial[:1]
	}
	return &Selection{
		mode: opts.Mode,
		src:  newSource(opts.Controlled, initial, opts.OnChange),
		log:  logger.WithComponent("selection"),
	}
}

// Mode returns the selection policy.
func (s *Selection) Mode() Mode { return s.mode }

// Controlled reports whether the host owns the selection.
func (s *Selection) Controlled() bool { return s.src.isControlled() }

// Toggle flips membership of id. In single mode toggling the sole member
// clears the selection and anything else replaces it with {id}.
func (s *Selection) Toggle(id string) []string {
	if id == "" {
		return s.IDs()
	}
	cur := s.src.current()
	var next []string
	switch {
	case s.mode == ModeSingle:
		next = soleToggle(cur, id)
	case slices.Contains(cur, id):
		next = without(cur, id)
	default:
		next = append(cur, id)
	}
	s.commit("toggle", next)
	return next
}

// ToggleAll unions candidates into the selection (selected=true) or
// subtracts them (selected=false) and reports whether the set changed. It
// is a no-op in single mode.
func (s *Selection) ToggleAll(selected bool, candidates []string) ([]string, bool) {
	if s.mode == ModeSingle {
		return s.IDs(), false
	}
	cur := s.src.current()
	var next []string
	if selected {
		next = union(cur, candidates...)
	} else {
		next = without(cur, candidates...)
	}
	return next, s.commit("toggleAll", next)
}

// SetAll replaces the selection. In single mode only the first id is kept.
func (s *Selection) SetAll(ids []string) []string {
	next := dedupe(ids)
	if s.mode == ModeSingle && len(next) > 1 {
		next = next[:1]
	}
	s.commit("setAll", next)
	return next
}

// Clear empties the selection.
func (s *Selection) Clear() []string {
	s.commit("clear", []string{})
	return []string{}
}

func (s *Selection) commit(op string, next []string) bool {
	if !s.src.commit(next) {
		return false
	}
	s.log.Debug("selection changed", "op", op, "count", len(next), "controlled", s.src.isControlled())
	return true
}

// IDs returns the current selection.
func (s *Selection) IDs() []string {
	return s.src.current()
}

// Count returns the number of selected ids.
func (s *Selection) Count() int {
	return len(s.src.current())
}

// IsSelected reports membership of id.
func (s *Selection) IsSelected(id string) bool {
	return slices.Contains(s.src.current(), id)
}

// IsAllSelected reports whether every id in ids is selected. It is false for
// an empty list.
func (s *Selection) IsAllSelected(ids []string) bool {
	if len(ids) == 0 {
		return false
	}
	cur := s.src.current()
	for _, id := range ids {
		if !slices.Contains(cur, id) {
			return false
		}
	}
	return true
}

// IsSomeSelected reports whether some, but not all, of ids are selected.
func (s *Selection) IsSomeSelected(ids []string) bool {
	if len(ids) == 0 {
		return false
	}
	cur := s.src.current()
	n := 0
	for _, id := range ids {
		if slices.Contains(cur, id) {
			n++
		}
	}
	return n > 0 && n < len(ids)
}
