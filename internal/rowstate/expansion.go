package rowstate

import (
	"log/slog"
	"slices"

	"github.com/zhubert/datagrid/internal/logger"
)

// ExpansionOptions configures an Expansion.
type ExpansionOptions struct {
	// AllowMultiple lets more than one row be expanded at once.
	AllowMultiple bool
	// Initial seeds an uncontrolled set. Only its first id is kept when
	// AllowMultiple is false.
	Initial    []string
	Controlled func() []string
	OnChange      func(ids []string)
}

// Expansion is the expanded-row-id set.
type Expansion struct {
	allowMultiple bool
	src           *source
	log           *slog.Logger
}

// NewExpansion creates an expansion store.
func NewExpansion(opts ExpansionOptions) *Expansion {
	initial := opts.Initial
	if !opts.AllowMultiple && len(initial) > 1 {
		initial = initial[:1]
	}
	return &Expansion{
		allowMultiple: opts.AllowMultiple,
		src:           newSource(opts.Controlled, initial, opts.OnChange),
		log:           logger.WithComponent("expansion"),
	}
}

// AllowMultiple reports the expansion policy.
func (e *Expansion) AllowMultiple() bool { return e.allowMultiple }

// Toggle collapses an expanded row or expands a collapsed one. When only one
// row may be expanded, the sole expanded row collapses and any other toggle
// leaves just id expanded.
func (e *Expansion) Toggle(id string) []string {
	if id == "" {
		return e.IDs()
	}
	cur := e.src.current()
	var next []string
	switch {
	case !e.allowMultiple:
		next = soleToggle(cur, id)
	case slices.Contains(cur, id):
		next = without(cur, id)
	default:
		next = append(cur, id)
	}
	e.commit("toggle", next)
	return next
}

// Expand adds ids. When only one row may be expanded, the set becomes the
// first of ids.
func (e *Expansion) Expand(ids []string) []string {
	var next []string
	if e.allowMultiple {
		next = union(e.src.current(), ids...)
	} else {
		next = dedupe(ids)
		if len(next) > 1 {
			next = next[:1]
		}
	}
	e.commit("expand", next)
	return next
}

// SetAll replaces the expanded set, honoring the single-row policy.
func (e *Expansion) SetAll(ids []string) []string {
	next := dedupe(ids)
	if !e.allowMultiple && len(next) > 1 {
		next = next[:1]
	}
	e.commit("setAll", next)
	return next
}

// CollapseAll empties the set.
func (e *Expansion) CollapseAll() []string {
	e.commit("collapseAll", []string{})
	return []string{}
}

func (e *Expansion) commit(op string, next []string) {
	if e.src.commit(next) {
		e.log.Debug("expansion changed", "op", op, "count", len(next))
	}
}

// IDs returns the expanded ids.
func (e *Expansion) IDs() []string {
	return e.src.current()
}

// Count returns the number of expanded rows.
func (e *Expansion) Count() int {
	return len(e.src.current())
}

// IsExpanded reports whether id is expanded.
func (e *Expansion) IsExpanded(id string) bool {
	return slices.Contains(e.src.current(), id)
}
