package config

import (
	"fmt"
	"maps"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/zhubert/datagrid/internal/errors"
	"github.com/zhubert/datagrid/internal/layout"
	"github.com/zhubert/datagrid/internal/rowstate"
)

// GridFile is a YAML table definition: columns, an optional initial view and
// an inline dataset.
//
//	table: people
//	row_id: id
//	columns:
//	  - id: name
//	    name: Name
//	    size: 200
//	    pin: left
//	  - id: email
//	    pinnable: false
//	initial_view:
//	  columnVisibility:
//	    email: false
//	rows:
//	  - {id: p1, name: Ada}
type GridFile struct {
	Table        string           `yaml:"table"`
	RowID        string           `yaml:"row_id"`
	Selection    string           `yaml:"selection"`
	SingleExpand bool             `yaml:"single_expand"`
	PageSize     int              `yaml:"page_size"`
	Columns      []ColumnDef      `yaml:"columns"`
	InitialView  *layout.State    `yaml:"initial_view"`
	Rows         []map[string]any `yaml:"rows"`
}

// ColumnDef is one column in a GridFile. Capability flags default to true.
type ColumnDef struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	Size      int    `yaml:"size"`
	Min       int    `yaml:"min"`
	Max       int    `yaml:"max"`
	Resizable *bool  `yaml:"resizable"`
	Hideable  *bool  `yaml:"hideable"`
	Pinnable  *bool  `yaml:"pinnable"`
	Sortable  *bool  `yaml:"sortable"`
	// Pin is "left", "right" or "none". Pinned columns join the initial
	// view's pin lists after any the view already names.
	Pin string `yaml:"pin"`
}

// Descriptor converts the definition into a layout descriptor.
func (d ColumnDef) Descriptor() layout.Descriptor {
	return layout.Descriptor{
		ID:              d.ID,
		DisplayName:     d.Name,
		Size:            d.Size,
		MinSize:         d.Min,
		MaxSize:         d.Max,
		DisableResizing: disabled(d.Resizable),
		DisableHiding:   disabled(d.Hideable),
		DisablePinning:  disabled(d.Pinnable),
		DisableSorting:  disabled(d.Sortable),
	}
}

func disabled(flag *bool) bool {
	return flag != nil && !*flag
}

// LoadGridFile reads and validates a grid definition.
func LoadGridFile(path string) (*GridFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.GridFileFailed(path, err)
	}

	var gf GridFile
	if err := yaml.Unmarshal(data, &gf); err != nil {
		return nil, errors.GridFileFailed(path, err)
	}
	if err := gf.Validate(); err != nil {
		return nil, errors.GridFileFailed(path, err)
	}
	return &gf, nil
}

// Validate checks the definition has usable, unique column ids.
func (g *GridFile) Validate() error {
	if len(g.Columns) == 0 {
		return fmt.Errorf("no columns defined")
	}
	seen := make(map[string]bool, len(g.Columns))
	for i, c := range g.Columns {
		if c.ID == "" {
			return fmt.Errorf("column %d has no id", i)
		}
		if seen[c.ID] {
			return fmt.Errorf("duplicate column id: %s", c.ID)
		}
		seen[c.ID] = true
		if c.Min > 0 && c.Max > 0 && c.Max < c.Min {
			return fmt.Errorf("column %s: max %d is below min %d", c.ID, c.Max, c.Min)
		}
		side, err := layout.ParseSide(c.Pin)
		if err != nil {
			return fmt.Errorf("column %s: %w", c.ID, err)
		}
		if side != layout.SideNone && disabled(c.Pinnable) {
			return fmt.Errorf("column %s: pinned but not pinnable", c.ID)
		}
	}
	if _, err := rowstate.ParseMode(g.Selection); err != nil {
		return err
	}
	return g.validateView(seen)
}

// validateView rejects an initial view that names columns the file does not
// define, or pins a column to both edges.
func (g *GridFile) validateView(known map[string]bool) error {
	v := g.InitialView
	if v == nil {
		return nil
	}
	check := func(field string, ids []string) error {
		for _, id := range ids {
			if !known[id] {
				return fmt.Errorf("initial_view %s: unknown column %q", field, id)
			}
		}
		return nil
	}
	fields := []struct {
		name string
		ids  []string
	}{
		{"columnPinning.left", v.Pinning.Left},
		{"columnPinning.right", v.Pinning.Right},
		{"columnOrder", v.Order},
		{"columnVisibility", slices.Sorted(maps.Keys(v.Visibility))},
		{"columnWidths", slices.Sorted(maps.Keys(v.Widths))},
	}
	for _, f := range fields {
		if err := check(f.name, f.ids); err != nil {
			return err
		}
	}
	for _, id := range v.Pinning.Left {
		if slices.Contains(v.Pinning.Right, id) {
			return fmt.Errorf("initial_view: column %q pinned to both edges", id)
		}
	}
	return nil
}

// View returns the initial view with the per-column pins folded in, or nil
// when the file sets neither.
func (g *GridFile) View() *layout.State {
	var st layout.State
	if g.InitialView != nil {
		st = g.InitialView.Clone()
	}
	pinned := false
	for _, c := range g.Columns {
		side, _ := layout.ParseSide(c.Pin)
		if side == layout.SideNone || st.Pinning.IsPinned(c.ID) {
			continue
		}
		pinned = true
		if side == layout.SideLeft {
			st.Pinning.Left = append(st.Pinning.Left, c.ID)
		} else {
			st.Pinning.Right = append(st.Pinning.Right, c.ID)
		}
	}
	if g.InitialView == nil && !pinned {
		return nil
	}
	return &st
}

// Descriptors returns the layout descriptors in declaration order.
func (g *GridFile) Descriptors() []layout.Descriptor {
	out := make([]layout.Descriptor, len(g.Columns))
	for i, c := range g.Columns {
		out[i] = c.Descriptor()
	}
	return out
}
