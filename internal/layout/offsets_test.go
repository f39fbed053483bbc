package layout

import "testing"

func widthsFrom(m map[string]int) func(string) (int, bool) {
	return func(id string) (int, bool) {
		w, ok := m[id]
		return w, ok
	}
}

func TestComputeOffsets_Left(t *testing.T) {
	p := Pinning{Left: []string{"A", "B", "C"}}
	o := ComputeOffsets(p, widthsFrom(map[string]int{"A": 100, "B": 150, "C": 80}), DefaultFallbackWidth)

	want := map[string]int{"A": 0, "B": 100, "C": 250}
	for id, w := range want {
		if o.Left[id] != w {
			t.Errorf("Left[%s] = %d, want %d", id, o.Left[id], w)
		}
	}
	if o.LeftWidth != 330 {
		t.Errorf("LeftWidth = %d, want 330", o.LeftWidth)
	}
}

func TestComputeOffsets_RightNearestEdgeIsZero(t *testing.T) {
	p := Pinning{Right: []string{"X", "Y", "Z"}}
	o := ComputeOffsets(p, widthsFrom(map[string]int{"X": 60, "Y": 70, "Z": 90}), DefaultFallbackWidth)

	want := map[string]int{"Z": 0, "Y": 90, "X": 160}
	for id, w := range want {
		if o.Right[id] != w {
			t.Errorf("Right[%s] = %d, want %d", id, o.Right[id], w)
		}
	}
	if o.RightWidth != 220 {
		t.Errorf("RightWidth = %d, want 220", o.RightWidth)
	}
}

func TestComputeOffsets_FallbackWidth(t *testing.T) {
	p := Pinning{Left: []string{"unsized", "B"}}
	o := ComputeOffsets(p, widthsFrom(map[string]int{"B": 10}), DefaultFallbackWidth)

	if o.Left["B"] != DefaultFallbackWidth {
		t.Errorf("Left[B] = %d, want %d", o.Left["B"], DefaultFallbackWidth)
	}
}

func TestStoreOffsets_Scenario(t *testing.T) {
	s := NewStore(abcDescriptors(), nil, nil)
	s.MoveColumn("C", MoveStart)
	s.SetPin("A", SideLeft)
	s.SetPin("B", SideLeft)

	o := s.Offsets()
	if o.Left["A"] != 0 || o.Left["B"] != 100 {
		t.Errorf("Left offsets = %v, want A:0 B:100", o.Left)
	}
}

func TestStoreOffsets_SkipsHiddenColumns(t *testing.T) {
	s := NewStore(abcDescriptors(), nil, nil)
	s.SetPin("A", SideLeft)
	s.SetPin("B", SideLeft)
	s.SetVisibility("A", false)

	o := s.Offsets()
	if _, ok := o.Left["A"]; ok {
		t.Error("hidden pinned column should have no offset")
	}
	if o.Left["B"] != 0 {
		t.Errorf("Left[B] = %d, want 0", o.Left["B"])
	}
}

func TestStoreOffsets_Preview(t *testing.T) {
	s := NewStore(abcDescriptors(), nil, nil)
	s.SetPin("A", SideLeft)
	s.SetPin("B", SideLeft)
	s.SetPin("C", SideRight)

	o := s.PreviewOffsets("A", 130)
	if o.Left["B"] != 130 || o.LeftWidth != 280 {
		t.Errorf("preview offsets = %+v, want B at 130 and band 280", o)
	}
	if o.Right["C"] != 0 || o.RightWidth != 100 {
		t.Errorf("right band = %+v", o)
	}
	if got := s.Offsets(); got.Left["B"] != 100 {
		t.Errorf("committed Left[B] = %d, want 100", got.Left["B"])
	}
}

func TestOffsets_Offset(t *testing.T) {
	o := ComputeOffsets(Pinning{Left: []string{"A"}, Right: []string{"B"}}, widthsFrom(nil), 150)

	if side, v, ok := o.Offset("B"); !ok || side != SideRight || v != 0 {
		t.Errorf("Offset(B) = (%v, %d, %v), want (right, 0, true)", side, v, ok)
	}
	if _, _, ok := o.Offset("C"); ok {
		t.Error("Offset(C) should report not pinned")
	}
}
