// Package layout owns column layout state for a grid: which columns are
// visible, how wide they are, which edge they are pinned to, and the base
// order they appear in. It also derives the ordered column sequence and the
// sticky offsets of pinned columns.
package layout

import "strings"

// Size defaults applied when a descriptor leaves them unset.
const (
	DefaultMinSize       = 50
	DefaultMaxSize       = 500
	DefaultFallbackWidth = 150
)

// Descriptor is the layout-relevant part of a column definition.
// Capability flags are expressed as Disable* so the zero value enables them.
type Descriptor struct {
	ID          string
	DisplayName string

	Size    int // default width; 0 means unset
	MinSize int
	MaxSize int

	DisableResizing bool
	DisableHiding   bool
	DisablePinning  bool
	DisableSorting  bool
}

func (d Descriptor) Resizable() bool { return !d.DisableResizing }
func (d Descriptor) Hideable() bool  { return !d.DisableHiding }
func (d Descriptor) Pinnable() bool  { return !d.DisablePinning }
func (d Descriptor) Sortable() bool  { return !d.DisableSorting }

// Min returns the minimum width, falling back to DefaultMinSize.
func (d Descriptor) Min() int {
	if d.MinSize > 0 {
		return d.MinSize
	}
	return DefaultMinSize
}

// Max returns the maximum width, falling back to DefaultMaxSize.
// A max below the min is raised to the min.
func (d Descriptor) Max() int {
	hi := DefaultMaxSize
	if d.MaxSize > 0 {
		hi = d.MaxSize
	}
	if lo := d.Min(); hi < lo {
		return lo
	}
	return hi
}

// Clamp limits width to the descriptor's [Min, Max] range.
func (d Descriptor) Clamp(width int) int {
	return min(d.Max(), max(d.Min(), width))
}

// DefaultWidth is the width a column returns to when its override is reset.
func (d Descriptor) DefaultWidth() int {
	if d.Size > 0 {
		return d.Size
	}
	return d.Min()
}

// Header returns the display name, or the id with underscores as spaces.
func (d Descriptor) Header() string {
	if d.DisplayName != "" {
		return d.DisplayName
	}
	return strings.ReplaceAll(d.ID, "_", " ")
}
