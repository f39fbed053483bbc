package rowstate

import (
	"math/rand"
	"slices"
	"testing"
)

func TestSelection_ToggleMultiple(t *testing.T) {
	s := NewSelection(SelectionOptions{Mode: ModeMultiple})

	s.Toggle("r1")
	s.Toggle("r2")
	if got := s.IDs(); !slices.Equal(got, []string{"r1", "r2"}) {
		t.Errorf("IDs() = %v, want [r1 r2]", got)
	}

	s.Toggle("r1")
	if got := s.IDs(); !slices.Equal(got, []string{"r2"}) {
		t.Errorf("IDs() after untoggle = %v, want [r2]", got)
	}
}

func TestSelection_ToggleSingle(t *testing.T) {
	s := NewSelection(SelectionOptions{Mode: ModeSingle})

	s.Toggle("r1")
	s.Toggle("r2")
	if got := s.IDs(); !slices.Equal(got, []string{"r2"}) {
		t.Errorf("IDs() = %v, want [r2] (replace, not append)", got)
	}

	s.Toggle("r2")
	if s.Count() != 0 {
		t.Errorf("toggling the sole member should clear, got %v", s.IDs())
	}
}

func TestSelection_SingleNeverExceedsOne(t *testing.T) {
	s := NewSelection(SelectionOptions{Mode: ModeSingle})
	ids := []string{"a", "b", "c", "d"}

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 300; i++ {
		s.Toggle(ids[rng.Intn(len(ids))])
		if s.Count() > 1 {
			t.Fatalf("step %d: selection %v exceeds one member", i, s.IDs())
		}
	}
}

func TestSelection_ToggleAllRoundTrip(t *testing.T) {
	s := NewSelection(SelectionOptions{Mode: ModeMultiple})
	s.Toggle("x")
	s.Toggle("y")
	before := s.IDs()

	page := []string{"p1", "p2", "p3"}
	if _, ok := s.ToggleAll(true, page); !ok {
		t.Fatal("ToggleAll should apply in multiple mode")
	}
	if !s.IsAllSelected(page) {
		t.Errorf("all page rows should be selected, got %v", s.IDs())
	}

	s.ToggleAll(false, page)
	if got := s.IDs(); !slices.Equal(got, before) {
		t.Errorf("IDs() = %v, want %v", got, before)
	}
}

func TestSelection_ToggleAllSingleIsNoop(t *testing.T) {
	calls := 0
	s := NewSelection(SelectionOptions{Mode: ModeSingle, OnChange: func([]string) { calls++ }})

	if _, ok := s.ToggleAll(true, []string{"a", "b"}); ok {
		t.Error("ToggleAll should be a no-op in single mode")
	}
	if s.Count() != 0 || calls != 0 {
		t.Errorf("single-mode ToggleAll mutated: ids=%v calls=%d", s.IDs(), calls)
	}
}

func TestSelection_SetAllSingleKeepsFirst(t *testing.T) {
	s := NewSelection(SelectionOptions{Mode: ModeSingle})

	s.SetAll([]string{"a", "b"})
	if got := s.IDs(); !slices.Equal(got, []string{"a"}) {
		t.Errorf("IDs() = %v, want [a]", got)
	}
}

func TestSelection_Controlled(t *testing.T) {
	host := []string{"r1"}
	var reported [][]string
	s := NewSelection(SelectionOptions{
		Mode:       ModeMultiple,
		Controlled: func() []string { return host },
		OnChange:   func(ids []string) { reported = append(reported, ids) },
	})

	if !s.Controlled() {
		t.Fatal("store should be controlled")
	}

	next := s.Toggle("r2")
	if !slices.Equal(next, []string{"r1", "r2"}) {
		t.Errorf("Toggle() = %v, want [r1 r2]", next)
	}
	// The store does not keep its own truth.
	if got := s.IDs(); !slices.Equal(got, []string{"r1"}) {
		t.Errorf("IDs() before host applies = %v, want [r1]", got)
	}
	if len(reported) != 1 || !slices.Equal(reported[0], []string{"r1", "r2"}) {
		t.Errorf("reported = %v, want one [r1 r2]", reported)
	}

	host = reported[0]
	if !s.IsSelected("r2") {
		t.Error("IsSelected(r2) should follow the host set")
	}
}

func TestSelection_UncontrolledReportsToo(t *testing.T) {
	var reported []string
	s := NewSelection(SelectionOptions{OnChange: func(ids []string) { reported = ids }})

	s.Toggle("a")
	if !slices.Equal(reported, []string{"a"}) {
		t.Errorf("reported = %v, want [a]", reported)
	}
	reported[0] = "mutated"
	if !s.IsSelected("a") {
		t.Error("mutating the reported slice leaked into the store")
	}
}

func TestSelection_AllAndSome(t *testing.T) {
	s := NewSelection(SelectionOptions{})
	page := []string{"a", "b", "c"}

	tests := []struct {
		name     string
		selected []string
		all      bool
		some     bool
	}{
		{"none", nil, false, false},
		{"some", []string{"a"}, false, true},
		{"all", []string{"a", "b", "c"}, true, false},
		{"all plus other page", []string{"a", "b", "c", "z"}, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.SetAll(tt.selected)
			if got := s.IsAllSelected(page); got != tt.all {
				t.Errorf("IsAllSelected() = %v, want %v", got, tt.all)
			}
			if got := s.IsSomeSelected(page); got != tt.some {
				t.Errorf("IsSomeSelected() = %v, want %v", got, tt.some)
			}
		})
	}

	if s.IsAllSelected(nil) {
		t.Error("IsAllSelected(nil) should be false")
	}
}

func TestSelection_EmptyIDIsInert(t *testing.T) {
	calls := 0
	s := NewSelection(SelectionOptions{OnChange: func([]string) { calls++ }})

	s.Toggle("")
	if calls != 0 || s.Count() != 0 {
		t.Errorf("empty id toggled: calls=%d ids=%v", calls, s.IDs())
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"single", ModeSingle, false},
		{"multiple", ModeMultiple, false},
		{"", ModeMultiple, false},
		{"many", ModeMultiple, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSelection_SingleToggleWithControlledSet(t *testing.T) {
	tests := []struct {
		name string
		host []string
		id   string
		want []string
	}{
		{"member of a larger set", []string{"a", "b", "c"}, "a", []string{"a"}},
		{"non-member of a larger set", []string{"a", "b"}, "c", []string{"c"}},
		{"sole member", []string{"a"}, "a", []string{}},
		{"empty", nil, "a", []string{"a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var reported []string
			s := NewSelection(SelectionOptions{
				Mode:       ModeSingle,
				Controlled: func() []string { return tt.host },
				OnChange:   func(ids []string) { reported = ids },
			})
			if got := s.Toggle(tt.id); !slices.Equal(got, tt.want) {
				t.Errorf("Toggle(%q) = %v, want %v", tt.id, got, tt.want)
			}
			if !slices.Equal(reported, tt.want) {
				t.Errorf("reported = %v, want %v", reported, tt.want)
			}
		})
	}
}

func TestSelection_Initial(t *testing.T) {
	calls := 0
	s := NewSelection(SelectionOptions{Initial: []string{"a", "b", "a"}, OnChange: func([]string) { calls++ }})
	if got := s.IDs(); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("IDs() = %v, want [a b]", got)
	}
	if calls != 0 {
		t.Errorf("seeding reported %d changes", calls)
	}

	single := NewSelection(SelectionOptions{Mode: ModeSingle, Initial: []string{"x", "y"}})
	if got := single.IDs(); !slices.Equal(got, []string{"x"}) {
		t.Errorf("single IDs() = %v, want [x]", got)
	}

	controlled := NewSelection(SelectionOptions{Initial: []string{"a"}, Controlled: func() []string { return nil }})
	if controlled.Count() != 0 {
		t.Error("Initial must be ignored when the host owns the selection")
	}
}

func TestSelection_UnchangedCommitNotReported(t *testing.T) {
	calls := 0
	s := NewSelection(SelectionOptions{OnChange: func([]string) { calls++ }})
	s.SetAll([]string{"a", "b"})

	s.SetAll([]string{"a", "b"})
	s.ToggleAll(true, []string{"a"})
	if _, changed := s.ToggleAll(true, []string{"b"}); changed {
		t.Error("ToggleAll over selected rows should report no change")
	}
	s.Clear()
	s.Clear()

	if calls != 2 {
		t.Errorf("OnChange calls = %d, want 2 (set, clear)", calls)
	}
}
