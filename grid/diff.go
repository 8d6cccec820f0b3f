package grid

import (
	"iter"
	"slices"

	"github.com/lixenwraith/cellframe/core"
)

// Change is a cell to be drawn at a position
type Change struct {
	Pos  core.Position
	Cell Cell
}

// Diff yields cells that differ from the previous frame, skipping continuations
// ok is false when there is no previous frame; callers then draw AllCells
func (b *Buffer) Diff() (seq iter.Seq[Change], ok bool) {
	if b.previous == nil {
		return nil, false
	}
	content, previous := b.content, b.previous
	return func(yield func(Change) bool) {
		for i, cell := range content {
			if cell.Occupied || cell == previous[i] {
				continue
			}
			if !yield(Change{Pos: b.PositionOf(i), Cell: cell}) {
				return
			}
		}
	}, true
}

// AllCells yields every anchor cell, for first render or forced redraw
func (b *Buffer) AllCells() iter.Seq[Change] {
	content := b.content
	return func(yield func(Change) bool) {
		for i, cell := range content {
			if cell.Occupied {
				continue
			}
			if !yield(Change{Pos: b.PositionOf(i), Cell: cell}) {
				return
			}
		}
	}
}

// LineState describes one row of a line diff
type LineState struct {
	Row     int
	Changed bool

	// Display width of the row's anchor glyphs, set only when Changed
	CurrentLen  int
	PreviousLen int

	cells []Cell
}

// Cells yields the row's anchor cells; each call starts a fresh pass
// Unchanged rows yield nothing
func (l LineState) Cells() iter.Seq[Change] {
	row, cells := l.Row, l.cells
	return func(yield func(Change) bool) {
		for x, cell := range cells {
			if cell.Occupied {
				continue
			}
			if !yield(Change{Pos: core.Position{X: x, Y: row}, Cell: cell}) {
				return
			}
		}
	}
}

// DiffLines yields one LineState per row
// A row is unchanged only when its whole slice, bookkeeping fields included, equals the previous row
// Without a previous frame every row is changed with PreviousLen 0
func (b *Buffer) DiffLines() iter.Seq[LineState] {
	content, previous, size := b.content, b.previous, b.size
	return func(yield func(LineState) bool) {
		for y := range size.Height {
			start, end := y*size.Width, (y+1)*size.Width
			cur := content[start:end]

			var prev []Cell
			if previous != nil {
				prev = previous[start:end]
				if slices.Equal(cur, prev) {
					if !yield(LineState{Row: y}) {
						return
					}
					continue
				}
			}

			line := LineState{
				Row:         y,
				Changed:     true,
				CurrentLen:  displayWidth(cur),
				PreviousLen: displayWidth(prev),
				cells:       cur,
			}
			if !yield(line) {
				return
			}
		}
	}
}

// displayWidth sums the glyph widths of anchor cells
func displayWidth(cells []Cell) int {
	n := 0
	for _, c := range cells {
		if !c.Occupied {
			n += c.Width()
		}
	}
	return n
}
