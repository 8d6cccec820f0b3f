package grid

import (
	"github.com/lixenwraith/cellframe/style"
)

// Cell is one grid position: an anchor holding a glyph, or a continuation slot claimed by a wide glyph to its left
// Equality covers occupancy and owner so that continuation cells of an unchanged glyph compare equal
type Cell struct {
	Content  style.Stylized
	Occupied bool // Continuation of a wide glyph, Content is filler
	Owner    int  // Anchor index, valid only when Occupied
}

// blankCell is an unoccupied space
var blankCell = Cell{Content: style.Blank}

// NewCell returns an anchor cell holding c
func NewCell(c style.Stylized) Cell {
	return Cell{Content: c}
}

// Width returns the display width of the anchor glyph, 1 or 2
func (c Cell) Width() int {
	return c.Content.Width()
}

// Equal reports full equality including occupancy bookkeeping
func (c Cell) Equal(o Cell) bool {
	return c == o
}

// IsBlank reports whether c is an unoccupied unstyled space
func (c Cell) IsBlank() bool {
	return c == blankCell
}
