package grid

import (
	"github.com/lixenwraith/cellframe/core"
	"github.com/lixenwraith/cellframe/style"
)

// CellWriter is the drawing surface handed to render targets
type CellWriter interface {
	// Set writes c at pos and returns its width, failing on bounds or an occupied continuation
	Set(pos core.Position, c style.Stylized) (int, error)
	// Overwrite writes c at pos regardless of occupancy, failing only on bounds
	Overwrite(pos core.Position, c style.Stylized) (int, error)
	// Size returns the writable dimensions
	Size() core.Size
}

// Buffer is a row-major cell grid for the current frame with an optional snapshot of the previous frame
// Not safe for concurrent use; the render goroutine owns it
type Buffer struct {
	size     core.Size
	content  []Cell
	previous []Cell // nil until the first Clear, and after Resize or ResetDiff
}

// NewBuffer creates a blank buffer with no previous frame
func NewBuffer(size core.Size) *Buffer {
	size = normalize(size)
	return &Buffer{
		size:    size,
		content: blankCells(size.Area()),
	}
}

func normalize(size core.Size) core.Size {
	return core.Size{Width: max(size.Width, 0), Height: max(size.Height, 0)}
}

func blankCells(n int) []Cell {
	cells := make([]Cell, n)
	fillBlank(cells)
	return cells
}

// fillBlank resets cells using doubling copies
func fillBlank(cells []Cell) {
	if len(cells) == 0 {
		return
	}
	cells[0] = blankCell
	for filled := 1; filled < len(cells); filled *= 2 {
		copy(cells[filled:], cells[:filled])
	}
}

// Size returns the grid dimensions
func (b *Buffer) Size() core.Size { return b.size }

// Width returns the column count
func (b *Buffer) Width() int { return b.size.Width }

// Height returns the row count
func (b *Buffer) Height() int { return b.size.Height }

// HasPrevious reports whether a previous frame snapshot exists
func (b *Buffer) HasPrevious() bool { return b.previous != nil }

// Index returns the flat index of pos without bounds checking
func (b *Buffer) Index(pos core.Position) int {
	return pos.Y*b.size.Width + pos.X
}

// PositionOf returns the position of flat index i
func (b *Buffer) PositionOf(i int) core.Position {
	if b.size.Width == 0 {
		return core.Position{}
	}
	return core.Position{X: i % b.size.Width, Y: i / b.size.Width}
}

// Get returns the cell at pos
func (b *Buffer) Get(pos core.Position) (Cell, bool) {
	if !b.size.Contains(pos) {
		return Cell{}, false
	}
	return b.content[b.Index(pos)], true
}

// IsOccupied reports whether pos is a continuation slot
func (b *Buffer) IsOccupied(pos core.Position) bool {
	c, ok := b.Get(pos)
	return ok && c.Occupied
}

// Set writes c at pos and returns its display width
// Fails with OutOfBounds when pos is outside the grid or the glyph overruns its row,
// and with PositionOccupied when pos is a continuation of another glyph
func (b *Buffer) Set(pos core.Position, c style.Stylized) (int, error) {
	width, err := b.checkBounds(pos, c)
	if err != nil {
		return 0, err
	}
	i := b.Index(pos)
	if b.content[i].Occupied {
		return 0, core.PositionOccupied(pos)
	}
	b.write(i, c, width)
	return width, nil
}

// Overwrite writes c at pos, first restoring to blank any glyph pos was a continuation of
func (b *Buffer) Overwrite(pos core.Position, c style.Stylized) (int, error) {
	width, err := b.checkBounds(pos, c)
	if err != nil {
		return 0, err
	}
	i := b.Index(pos)
	if cur := b.content[i]; cur.Occupied {
		for j := cur.Owner; j < i; j++ {
			b.content[j] = blankCell
		}
	}
	b.write(i, c, width)
	return width, nil
}

func (b *Buffer) checkBounds(pos core.Position, c style.Stylized) (int, error) {
	if !b.size.Contains(pos) {
		return 0, core.OutOfBounds(pos, b.size)
	}
	width := c.Width()
	if pos.X+width > b.size.Width {
		return 0, core.OutOfBounds(pos, b.size)
	}
	return width, nil
}

// write places an anchor at i and claims width-1 continuation slots
// Stale continuations of glyphs being replaced are blanked so no occupied cell loses its owner
func (b *Buffer) write(i int, c style.Stylized, width int) {
	b.releaseContinuations(i, i+width)
	for j := i + 1; j < i+width; j++ {
		b.releaseContinuations(j, j+1)
	}

	b.content[i] = NewCell(c)
	for j := i + 1; j < i+width; j++ {
		b.content[j] = Cell{Content: style.Blank, Occupied: true, Owner: i}
	}
}

// releaseContinuations blanks continuation cells owned by anchor at or after from
func (b *Buffer) releaseContinuations(anchor, from int) {
	rowEnd := (anchor/b.size.Width + 1) * b.size.Width
	for j := from; j < rowEnd; j++ {
		cell := b.content[j]
		if !cell.Occupied || cell.Owner != anchor {
			return
		}
		b.content[j] = blankCell
	}
}

// Clear snapshots the current frame as previous and blanks the current frame
func (b *Buffer) Clear() {
	if b.previous == nil || len(b.previous) != len(b.content) {
		b.previous = make([]Cell, len(b.content))
	}
	b.previous, b.content = b.content, b.previous
	fillBlank(b.content)
}

// Resize reallocates to size and drops the previous frame, no-op when size is unchanged
func (b *Buffer) Resize(size core.Size) {
	size = normalize(size)
	if size == b.size {
		return
	}
	b.size = size
	b.content = blankCells(size.Area())
	b.previous = nil
}

// ResetDiff drops the previous frame so the next diff is a full redraw
func (b *Buffer) ResetDiff() {
	b.previous = nil
}

// Previous returns the previous frame cell at pos
func (b *Buffer) Previous(pos core.Position) (Cell, bool) {
	if b.previous == nil || !b.size.Contains(pos) {
		return Cell{}, false
	}
	return b.previous[b.Index(pos)], true
}

// Row returns the current cells of row y, nil when out of range
func (b *Buffer) Row(y int) []Cell {
	if y < 0 || y >= b.size.Height {
		return nil
	}
	start := y * b.size.Width
	return b.content[start : start+b.size.Width]
}
