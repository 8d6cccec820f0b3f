package grid

import (
	"github.com/rivo/uniseg"

	"github.com/lixenwraith/cellframe/core"
	"github.com/lixenwraith/cellframe/style"
)

// Region is a CellWriter over a rectangular sub-area of another writer
// Positions are relative to the area origin; writes outside the area fail with OutOfBounds
type Region struct {
	parent CellWriter
	area   core.Area // In parent coordinates
}

// NewRegion returns a writer for area, clipped to the parent
func NewRegion(parent CellWriter, area core.Area) *Region {
	size := parent.Size()
	full := core.Area{Width: size.Width, Height: size.Height}
	return &Region{parent: parent, area: area.Intersect(full)}
}

// Size returns the writable dimensions
func (r *Region) Size() core.Size {
	return r.area.Size()
}

// Area returns the region in parent coordinates
func (r *Region) Area() core.Area {
	return r.area
}

// Set writes c at pos within the region
func (r *Region) Set(pos core.Position, c style.Stylized) (int, error) {
	if err := r.check(pos, c); err != nil {
		return 0, err
	}
	return r.parent.Set(pos.Add(r.area.Origin()), c)
}

// Overwrite writes c at pos within the region regardless of occupancy
func (r *Region) Overwrite(pos core.Position, c style.Stylized) (int, error) {
	if err := r.check(pos, c); err != nil {
		return 0, err
	}
	return r.parent.Overwrite(pos.Add(r.area.Origin()), c)
}

func (r *Region) check(pos core.Position, c style.Stylized) error {
	size := r.area.Size()
	if !size.Contains(pos) || pos.X+c.Width() > size.Width {
		return core.OutOfBounds(pos, size)
	}
	return nil
}

// Sub returns a nested region, area relative to r
func (r *Region) Sub(area core.Area) *Region {
	area.X += r.area.X
	area.Y += r.area.Y
	return &Region{parent: r.parent, area: area.Intersect(r.area)}
}

// Print writes s starting at pos, one grapheme cluster per cell, and returns the columns written
// Clusters keep only their base rune since a cell holds a single rune
// A cluster wider than its base rune (emoji presentation selector) is padded with blanks to its full width
// Stops at the first glyph that does not fit
func Print(w CellWriter, pos core.Position, s string, st style.Style) (int, error) {
	x := pos.X
	state := -1
	for len(s) > 0 {
		var (
			cluster string
			width   int
		)
		cluster, s, width, state = uniseg.FirstGraphemeClusterInString(s, state)
		c := style.New([]rune(cluster)[0], st)

		at := core.Position{X: x, Y: pos.Y}
		if width > c.Width() && x+width > w.Size().Width {
			return x - pos.X, core.OutOfBounds(at, w.Size())
		}
		n, err := w.Overwrite(at, c)
		if err != nil {
			return x - pos.X, err
		}
		x += n
		for ; n < width; n++ {
			if _, err := w.Overwrite(core.Position{X: x, Y: pos.Y}, style.New(' ', st)); err != nil {
				return x - pos.X, err
			}
			x++
		}
	}
	return x - pos.X, nil
}

// Fill overwrites every cell of w with c
func Fill(w CellWriter, c style.Stylized) {
	size := w.Size()
	step := c.Width()
	for y := range size.Height {
		for x := 0; x+step <= size.Width; x += step {
			w.Overwrite(core.Position{X: x, Y: y}, c)
		}
	}
}
