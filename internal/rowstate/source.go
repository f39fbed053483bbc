// Package rowstate holds per-row id sets: which rows are selected and which
// are expanded.
//
// Both stores can run uncontrolled (they own their set) or controlled (the
// host owns the set and the store only reads it back). The choice is made
// once, at construction, by the source a store is built on.
package rowstate

import "slices"

// source is the "current value + report" contract both stores are built on.
type source struct {
	controlled func() []string
	internal   []string
	report     func([]string)
}

// newSource builds a source. A non-nil controlled getter makes the host the
// owner of the set; otherwise initial seeds it without being reported.
func newSource(controlled func() []string, initial []string, report func([]string)) *source {
	s := &source{controlled: controlled, report: report}
	if controlled == nil {
		s.internal = dedupe(initial)
	}
	return s
}

func (s *source) isControlled() bool {
	return s.controlled != nil
}

// current returns the visible truth as a fresh slice.
func (s *source) current() []string {
	if s.controlled != nil {
		return dedupe(s.controlled())
	}
	return slices.Clone(s.internal)
}

// commit publishes next and reports whether it differs from the current
// set. An unchanged set is neither stored nor reported. In controlled mode
// the report is the only mutation path.
func (s *source) commit(next []string) bool {
	if slices.Equal(next, s.current()) {
		return false
	}
	if s.controlled == nil {
		s.internal = slices.Clone(next)
	}
	if s.report != nil {
		s.report(slices.Clone(next))
	}
	return true
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func without(ids []string, drop ...string) []string {
	return slices.DeleteFunc(slices.Clone(ids), func(id string) bool {
		return slices.Contains(drop, id)
	})
}

// soleToggle is the single-member toggle: clear when id is the only member,
// otherwise replace the set with {id}.
func soleToggle(cur []string, id string) []string {
	if len(cur) == 1 && cur[0] == id {
		return []string{}
	}
	return []string{id}
}

func union(ids []string, add ...string) []string {
	return dedupe(append(slices.Clone(ids), add...))
}
